package service

import (
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
)

// Point weights for each vote slot. These are business rules, not configuration.
const (
	WeightTop      int64 = 100
	WeightRunnerUp int64 = 25
	WeightOverall  int64 = 500
)

// SlotWeight returns the point weight for a slot name.
func SlotWeight(slot string) int64 {
	switch slot {
	case model.SlotTop:
		return WeightTop
	case model.SlotRunnerUp:
		return WeightRunnerUp
	case model.SlotOverall:
		return WeightOverall
	}
	return 0
}

// LedgerService applies vote transitions to a UserVoteRecord and computes the
// signed point deltas each transition owes the global tally. Every transition
// is a total function: any (category, restaurantID, slot) input has a defined
// resulting state, so there are no error paths here. Deltas are emitted
// remove-before-add so a partially applied sequence never double-charges a
// restaurant.
type LedgerService struct{}

func NewLedgerService() *LedgerService {
	return &LedgerService{}
}

// ApplyCategoryVote mutates rec to place restaurantID into the given slot of
// category, returning the deltas to push. Semantics:
//   - same restaurant already in that slot: toggle off (one negative delta)
//   - same restaurant in the other slot: clear the other slot, then set
//   - different restaurant in the target slot: clear it, then set
//
// Unknown categories are created implicitly on first vote.
func (s *LedgerService) ApplyCategoryVote(rec *model.UserVoteRecord, category, restaurantID, slot string) []model.Delta {
	if rec.Categories == nil {
		rec.Categories = make(map[string]model.CategoryVote)
	}
	cv := rec.Categories[category]

	weight := SlotWeight(slot)
	var deltas []model.Delta

	current, other := cv.TopID, cv.RunnerUpID
	otherWeight := WeightRunnerUp
	if slot == model.SlotRunnerUp {
		current, other = cv.RunnerUpID, cv.TopID
		otherWeight = WeightTop
	}

	// Toggle off: voting the current holder again clears the slot.
	if current == restaurantID {
		deltas = append(deltas, model.Delta{RestaurantID: restaurantID, Points: -weight})
		current = ""
		s.storeCategory(rec, category, slot, current, other)
		return deltas
	}

	// The same restaurant may not hold both slots: vacate the other one first.
	if other == restaurantID {
		deltas = append(deltas, model.Delta{RestaurantID: restaurantID, Points: -otherWeight})
		other = ""
	}

	// Displace whichever restaurant currently holds the target slot.
	if current != "" {
		deltas = append(deltas, model.Delta{RestaurantID: current, Points: -weight})
	}

	current = restaurantID
	deltas = append(deltas, model.Delta{RestaurantID: restaurantID, Points: weight})
	s.storeCategory(rec, category, slot, current, other)
	return deltas
}

// ApplyOverallPick mutates rec to set the single cross-category overall pick.
// Picking the current holder again toggles it off; picking a different
// restaurant clears the previous holder first.
func (s *LedgerService) ApplyOverallPick(rec *model.UserVoteRecord, restaurantID string) []model.Delta {
	var deltas []model.Delta

	if rec.OverallPick == restaurantID {
		rec.OverallPick = ""
		return append(deltas, model.Delta{RestaurantID: restaurantID, Points: -WeightOverall})
	}

	if rec.OverallPick != "" {
		deltas = append(deltas, model.Delta{RestaurantID: rec.OverallPick, Points: -WeightOverall})
	}
	rec.OverallPick = restaurantID
	return append(deltas, model.Delta{RestaurantID: restaurantID, Points: WeightOverall})
}

// storeCategory writes the slot pair back, dropping categories whose slots are
// both empty so toggling a lone vote off returns the record to its prior shape.
func (s *LedgerService) storeCategory(rec *model.UserVoteRecord, category, slot, current, other string) {
	cv := model.CategoryVote{}
	if slot == model.SlotRunnerUp {
		cv.RunnerUpID, cv.TopID = current, other
	} else {
		cv.TopID, cv.RunnerUpID = current, other
	}
	if cv.IsEmpty() {
		delete(rec.Categories, category)
		return
	}
	rec.Categories[category] = cv
}
