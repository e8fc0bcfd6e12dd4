package service

import (
	"testing"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
)

// sumDeltas returns the net emitted points per restaurant across a delta list.
func sumDeltas(batches ...[]model.Delta) map[string]int64 {
	out := make(map[string]int64)
	for _, batch := range batches {
		for _, d := range batch {
			out[d.RestaurantID] += d.Points
		}
	}
	return out
}

// expectedContribution computes what the final ledger state says each
// restaurant should have received, for checking delta conservation.
func expectedContribution(rec *model.UserVoteRecord) map[string]int64 {
	out := make(map[string]int64)
	for _, cv := range rec.Categories {
		if cv.TopID != "" {
			out[cv.TopID] += WeightTop
		}
		if cv.RunnerUpID != "" {
			out[cv.RunnerUpID] += WeightRunnerUp
		}
	}
	if rec.OverallPick != "" {
		out[rec.OverallPick] += WeightOverall
	}
	return out
}

func TestCategoryVote_FirstVote(t *testing.T) {
	svc := NewLedgerService()
	rec := model.NewUserVoteRecord()

	deltas := svc.ApplyCategoryVote(rec, "bbq", "aaaa", model.SlotTop)

	if len(deltas) != 1 {
		t.Fatalf("deltas = %d, want 1", len(deltas))
	}
	if deltas[0] != (model.Delta{RestaurantID: "aaaa", Points: 100}) {
		t.Errorf("delta = %+v, want {aaaa +100}", deltas[0])
	}
	if rec.Categories["bbq"].TopID != "aaaa" {
		t.Errorf("topId = %q, want aaaa", rec.Categories["bbq"].TopID)
	}
}

func TestCategoryVote_ToggleIdempotence(t *testing.T) {
	svc := NewLedgerService()
	rec := model.NewUserVoteRecord()

	d1 := svc.ApplyCategoryVote(rec, "bbq", "aaaa", model.SlotTop)
	d2 := svc.ApplyCategoryVote(rec, "bbq", "aaaa", model.SlotTop)

	if len(d2) != 1 || d2[0].Points != -100 {
		t.Fatalf("toggle-off deltas = %+v, want single -100", d2)
	}
	if net := sumDeltas(d1, d2)["aaaa"]; net != 0 {
		t.Errorf("net deltas for aaaa = %d, want 0", net)
	}
	if len(rec.Categories) != 0 {
		t.Errorf("record not back to empty: %+v", rec.Categories)
	}
}

func TestCategoryVote_SlotDisplacement(t *testing.T) {
	svc := NewLedgerService()
	rec := model.NewUserVoteRecord()

	svc.ApplyCategoryVote(rec, "bbq", "aaaa", model.SlotTop)
	deltas := svc.ApplyCategoryVote(rec, "bbq", "bbbb", model.SlotTop)

	// Old holder removed before new holder added.
	if len(deltas) != 2 {
		t.Fatalf("deltas = %d, want 2", len(deltas))
	}
	if deltas[0] != (model.Delta{RestaurantID: "aaaa", Points: -100}) {
		t.Errorf("first delta = %+v, want remove of previous holder", deltas[0])
	}
	if deltas[1] != (model.Delta{RestaurantID: "bbbb", Points: 100}) {
		t.Errorf("second delta = %+v, want add of new holder", deltas[1])
	}
	if rec.Categories["bbq"].TopID != "bbbb" {
		t.Errorf("topId = %q, want bbbb", rec.Categories["bbq"].TopID)
	}
}

func TestCategoryVote_SameRestaurantSlotSwap(t *testing.T) {
	svc := NewLedgerService()
	rec := model.NewUserVoteRecord()

	svc.ApplyCategoryVote(rec, "bbq", "aaaa", model.SlotRunnerUp)
	deltas := svc.ApplyCategoryVote(rec, "bbq", "aaaa", model.SlotTop)

	// Vacate the runner-up slot, then take top: -25 before +100.
	if len(deltas) != 2 {
		t.Fatalf("deltas = %d, want 2", len(deltas))
	}
	if deltas[0].Points != -25 || deltas[1].Points != 100 {
		t.Errorf("deltas = %+v, want [-25, +100]", deltas)
	}

	cv := rec.Categories["bbq"]
	if cv.TopID != "aaaa" || cv.RunnerUpID != "" {
		t.Errorf("category state = %+v, want top=aaaa runnerUp empty", cv)
	}
}

func TestCategoryVote_MutualExclusion(t *testing.T) {
	svc := NewLedgerService()
	rec := model.NewUserVoteRecord()

	// An arbitrary churn of votes across two categories.
	moves := []struct {
		cat, id, slot string
	}{
		{"bbq", "aaaa", model.SlotTop},
		{"bbq", "aaaa", model.SlotRunnerUp},
		{"bbq", "bbbb", model.SlotTop},
		{"bbq", "bbbb", model.SlotRunnerUp},
		{"tacos", "cccc", model.SlotTop},
		{"tacos", "cccc", model.SlotTop},
		{"tacos", "aaaa", model.SlotRunnerUp},
		{"bbq", "aaaa", model.SlotTop},
	}
	for _, m := range moves {
		svc.ApplyCategoryVote(rec, m.cat, m.id, m.slot)
		for cat, cv := range rec.Categories {
			if cv.TopID == cv.RunnerUpID && !cv.IsEmpty() {
				t.Fatalf("after %+v: category %q has topId == runnerUpId == %q", m, cat, cv.TopID)
			}
		}
	}
}

func TestCategoryVote_DeltaConservation(t *testing.T) {
	svc := NewLedgerService()
	rec := model.NewUserVoteRecord()

	var all [][]model.Delta
	moves := []struct {
		cat, id, slot string
	}{
		{"bbq", "aaaa", model.SlotTop},
		{"bbq", "bbbb", model.SlotRunnerUp},
		{"bbq", "bbbb", model.SlotTop},
		{"tacos", "aaaa", model.SlotTop},
		{"tacos", "aaaa", model.SlotTop}, // toggle off
		{"pizza", "cccc", model.SlotRunnerUp},
		{"bbq", "aaaa", model.SlotRunnerUp},
	}
	for _, m := range moves {
		all = append(all, svc.ApplyCategoryVote(rec, m.cat, m.id, m.slot))
	}
	all = append(all, svc.ApplyOverallPick(rec, "bbbb"))

	want := expectedContribution(rec)
	got := sumDeltas(all...)
	for id, pts := range got {
		if pts != want[id] {
			t.Errorf("restaurant %s: net deltas = %d, final state says %d", id, pts, want[id])
		}
	}
	for id, pts := range want {
		if got[id] != pts {
			t.Errorf("restaurant %s: final state says %d, net deltas = %d", id, pts, got[id])
		}
	}
}

func TestOverallPick_Toggle(t *testing.T) {
	svc := NewLedgerService()
	rec := model.NewUserVoteRecord()

	d1 := svc.ApplyOverallPick(rec, "aaaa")
	if len(d1) != 1 || d1[0].Points != 500 {
		t.Fatalf("first pick deltas = %+v, want single +500", d1)
	}

	d2 := svc.ApplyOverallPick(rec, "aaaa")
	if len(d2) != 1 || d2[0].Points != -500 {
		t.Fatalf("toggle-off deltas = %+v, want single -500", d2)
	}
	if rec.OverallPick != "" {
		t.Errorf("overallPick = %q, want empty", rec.OverallPick)
	}
}

func TestOverallPick_MoveBetweenRestaurants(t *testing.T) {
	svc := NewLedgerService()
	rec := model.NewUserVoteRecord()

	svc.ApplyOverallPick(rec, "aaaa")
	deltas := svc.ApplyOverallPick(rec, "bbbb")

	if len(deltas) != 2 {
		t.Fatalf("deltas = %d, want 2", len(deltas))
	}
	if deltas[0] != (model.Delta{RestaurantID: "aaaa", Points: -500}) {
		t.Errorf("first delta = %+v, want aaaa -500", deltas[0])
	}
	if deltas[1] != (model.Delta{RestaurantID: "bbbb", Points: 500}) {
		t.Errorf("second delta = %+v, want bbbb +500", deltas[1])
	}
	if rec.OverallPick != "bbbb" {
		t.Errorf("overallPick = %q, want bbbb", rec.OverallPick)
	}
}

func TestOverallPick_SingleAcrossSequence(t *testing.T) {
	svc := NewLedgerService()
	rec := model.NewUserVoteRecord()

	// The invariant: total overall contribution across the record is 0 or 500.
	for _, id := range []string{"aaaa", "bbbb", "cccc", "cccc", "aaaa"} {
		svc.ApplyOverallPick(rec, id)
		picks := 0
		if rec.OverallPick != "" {
			picks = 1
		}
		if picks > 1 {
			t.Fatalf("more than one overall pick after picking %s", id)
		}
	}
	if rec.OverallPick != "aaaa" {
		t.Errorf("overallPick = %q, want aaaa", rec.OverallPick)
	}
}

func TestCategoryVote_UnknownCategoryCreated(t *testing.T) {
	svc := NewLedgerService()
	rec := model.NewUserVoteRecord()

	svc.ApplyCategoryVote(rec, "late night ramen", "aaaa", model.SlotRunnerUp)

	cv, ok := rec.Categories["late night ramen"]
	if !ok {
		t.Fatal("category was not implicitly created")
	}
	if cv.RunnerUpID != "aaaa" {
		t.Errorf("runnerUpId = %q, want aaaa", cv.RunnerUpID)
	}
}
