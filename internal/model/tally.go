package model

// TallySnapshot is a full read of the global tally: restaurant id → points.
// Each emission from the sync subscription replaces the previous snapshot
// wholesale; it is never patched incrementally on the client side.
type TallySnapshot map[string]int64

// Get returns the tally for a restaurant, zero when absent.
func (s TallySnapshot) Get(restaurantID string) int64 {
	if s == nil {
		return 0
	}
	return s[restaurantID]
}

// TallySyncResponse is the API response for a wholesale tally read.
type TallySyncResponse struct {
	Tallies     TallySnapshot `json:"tallies"`
	Live        bool          `json:"live"`
	GeneratedAt string        `json:"generatedAt"`
}

// StatsResponse is the API response for platform statistics.
type StatsResponse struct {
	TotalRestaurants int64            `json:"totalRestaurants"`
	TotalVotes       int64            `json:"totalVotes"`
	TotalVoters      int64            `json:"totalVoters"`
	TotalPoints      int64            `json:"totalPoints"`
	Categories       map[string]int64 `json:"categories"`
}
