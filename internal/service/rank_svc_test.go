package service

import (
	"testing"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
)

func rankFixture() []model.Restaurant {
	return []model.Restaurant{
		{ID: "aaaa", Name: "Smoke Ring", Category: "bbq", BaseScore: 100, Address: "12 Elm St"},
		{ID: "bbbb", Name: "Pit Stop", Category: "bbq", BaseScore: 100, Address: "48 Oak Ave"},
		{ID: "cccc", Name: "Taco Norte", Category: "tacos", BaseScore: 100, Address: "3 Main St"},
		{ID: "dddd", Name: "Taco Sur", Category: "tacos", BaseScore: 100, Address: "99 Main St"},
	}
}

func TestGroupAndRank_SortsWithinCategory(t *testing.T) {
	rank := NewRankService(NewScoreService())
	snap := model.TallySnapshot{"bbbb": 200, "aaaa": 50}

	boards := rank.GroupAndRank(rankFixture(), nil, snap, nil)

	bbq := boards["bbq"]
	if len(bbq) != 2 {
		t.Fatalf("bbq bucket size = %d, want 2", len(bbq))
	}
	if bbq[0].ID != "bbbb" || bbq[0].Total != 300 {
		t.Errorf("bbq[0] = %s/%d, want bbbb/300", bbq[0].ID, bbq[0].Total)
	}
	if bbq[1].ID != "aaaa" || bbq[1].Total != 150 {
		t.Errorf("bbq[1] = %s/%d, want aaaa/150", bbq[1].ID, bbq[1].Total)
	}
}

func TestGroupAndRank_TiesKeepInputOrder(t *testing.T) {
	rank := NewRankService(NewScoreService())

	// All equal totals: the listing order (insertion order upstream) must
	// survive the sort.
	boards := rank.GroupAndRank(rankFixture(), nil, nil, nil)

	tacos := boards["tacos"]
	if len(tacos) != 2 {
		t.Fatalf("tacos bucket size = %d, want 2", len(tacos))
	}
	if tacos[0].ID != "cccc" || tacos[1].ID != "dddd" {
		t.Errorf("tie order = [%s %s], want [cccc dddd]", tacos[0].ID, tacos[1].ID)
	}
}

func TestGroupAndRank_FilterBeforeGrouping(t *testing.T) {
	rank := NewRankService(NewScoreService())
	snap := model.TallySnapshot{"cccc": 1000}

	boards := rank.GroupAndRank(rankFixture(), nil, snap, SearchFilter("norte"))

	if len(boards) != 1 {
		t.Fatalf("board categories = %d, want only tacos", len(boards))
	}
	tacos := boards["tacos"]
	if len(tacos) != 1 || tacos[0].ID != "cccc" {
		t.Fatalf("filtered tacos = %+v, want just cccc", tacos)
	}
	// The excluded restaurants appear in no bucket at all.
	if _, ok := boards["bbq"]; ok {
		t.Error("bbq bucket exists despite every entry being filtered out")
	}
}

func TestTopN_FlatRankingAndClamp(t *testing.T) {
	rank := NewRankService(NewScoreService())
	snap := model.TallySnapshot{"dddd": 500, "aaaa": 300, "cccc": 100}

	top := rank.TopN(rankFixture(), nil, snap, nil, 3)

	if len(top) != 3 {
		t.Fatalf("top size = %d, want 3", len(top))
	}
	want := []string{"dddd", "aaaa", "cccc"}
	for i, id := range want {
		if top[i].ID != id {
			t.Errorf("top[%d] = %s, want %s", i, top[i].ID, id)
		}
	}

	// n larger than the pool returns everything.
	all := rank.TopN(rankFixture(), nil, snap, nil, 50)
	if len(all) != 4 {
		t.Errorf("oversized n returned %d entries, want 4", len(all))
	}
}

func TestTopN_SameTotalsAsCategoryBoards(t *testing.T) {
	rank := NewRankService(NewScoreService())

	rec := model.NewUserVoteRecord()
	rec.Categories["bbq"] = model.CategoryVote{TopID: "aaaa"}
	rec.OverallPick = "cccc"
	snap := model.TallySnapshot{"aaaa": 40, "cccc": 10}

	boards := rank.GroupAndRank(rankFixture(), rec, snap, nil)
	top := rank.TopN(rankFixture(), rec, snap, nil, 10)

	byID := make(map[string]int64)
	for _, bucket := range boards {
		for _, r := range bucket {
			byID[r.ID] = r.Total
		}
	}
	for _, r := range top {
		if byID[r.ID] != r.Total {
			t.Errorf("restaurant %s: top total %d != board total %d", r.ID, r.Total, byID[r.ID])
		}
	}
}

func TestSearchFilter(t *testing.T) {
	tests := []struct {
		query string
		r     model.Restaurant
		want  bool
	}{
		{"taco", model.Restaurant{Name: "Taco Norte", Category: "tacos"}, true},
		{"TACO norte", model.Restaurant{Name: "Taco Norte", Category: "tacos"}, true},
		{"taco elm", model.Restaurant{Name: "Taco Norte", Address: "3 Main St"}, false},
		{"main tacos", model.Restaurant{Name: "Taco Sur", Category: "tacos", Address: "99 Main St"}, true},
		{"smoke", model.Restaurant{Name: "Pit Stop", Category: "bbq"}, false},
	}
	for _, tt := range tests {
		f := SearchFilter(tt.query)
		if got := f(tt.r); got != tt.want {
			t.Errorf("SearchFilter(%q)(%s) = %v, want %v", tt.query, tt.r.Name, got, tt.want)
		}
	}

	if SearchFilter("   ") != nil {
		t.Error("blank query should produce a nil predicate")
	}
}
