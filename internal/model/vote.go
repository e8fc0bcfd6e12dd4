package model

// Vote slots a user may fill.
const (
	SlotTop      = "top"
	SlotRunnerUp = "runner_up"
	SlotOverall  = "overall"
)

// CategoryVote holds one user's two slots for a single category.
// Invariant: TopID != RunnerUpID unless both are empty.
type CategoryVote struct {
	TopID      string `json:"topId,omitempty"`
	RunnerUpID string `json:"runnerUpId,omitempty"`
}

// IsEmpty reports whether both slots are clear.
func (cv CategoryVote) IsEmpty() bool {
	return cv.TopID == "" && cv.RunnerUpID == ""
}

// UserVoteRecord is one user's full set of selections: per-category slots plus
// the single cross-category overall pick.
type UserVoteRecord struct {
	Categories  map[string]CategoryVote `json:"categories"`
	OverallPick string                  `json:"overallPick,omitempty"`
}

// NewUserVoteRecord returns an empty record ready for transitions.
func NewUserVoteRecord() *UserVoteRecord {
	return &UserVoteRecord{Categories: make(map[string]CategoryVote)}
}

// Clone returns a deep copy of the record.
func (r *UserVoteRecord) Clone() *UserVoteRecord {
	out := &UserVoteRecord{
		Categories:  make(map[string]CategoryVote, len(r.Categories)),
		OverallPick: r.OverallPick,
	}
	for cat, cv := range r.Categories {
		out.Categories[cat] = cv
	}
	return out
}

// Delta is a signed point adjustment destined for the global tally.
type Delta struct {
	RestaurantID string `json:"restaurantId"`
	Points       int64  `json:"points"`
}

// VoteRequest is the API request body for a category-slot vote.
type VoteRequest struct {
	UserID       string `json:"userId,omitempty"`
	DeviceID     string `json:"deviceId,omitempty"`
	Category     string `json:"category"`
	RestaurantID string `json:"restaurantId"`
	Slot         string `json:"slot"`
}

// OverallVoteRequest is the API request body for the overall top pick.
type OverallVoteRequest struct {
	UserID       string `json:"userId,omitempty"`
	DeviceID     string `json:"deviceId,omitempty"`
	RestaurantID string `json:"restaurantId"`
}

// VoteResponse is returned after a vote transition is applied.
type VoteResponse struct {
	Success bool            `json:"success"`
	Record  *UserVoteRecord `json:"record"`
	Deltas  []Delta         `json:"deltas"`
	Live    bool            `json:"live"`
}
