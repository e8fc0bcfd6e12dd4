package service

import (
	"sort"
	"strings"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
)

// RankService turns the compositor's totals into sorted, filtered views:
// per-category leaderboards and the flat cross-category top list.
type RankService struct {
	score *ScoreService
}

func NewRankService(score *ScoreService) *RankService {
	return &RankService{score: score}
}

// GroupAndRank partitions restaurants into category buckets and sorts each
// bucket descending by composed total. The filter is applied before grouping,
// so an excluded restaurant never appears in any bucket. Ties keep input
// order; no secondary sort key is defined.
func (s *RankService) GroupAndRank(restaurants []model.Restaurant, rec *model.UserVoteRecord, snap model.TallySnapshot, filter func(model.Restaurant) bool) map[string][]model.RankedRestaurant {
	buckets := make(map[string][]model.RankedRestaurant)
	for _, r := range restaurants {
		if filter != nil && !filter(r) {
			continue
		}
		buckets[r.Category] = append(buckets[r.Category], model.RankedRestaurant{
			Restaurant: r,
			Total:      s.score.ComputeTotal(r, rec, snap),
		})
	}
	for cat := range buckets {
		b := buckets[cat]
		sort.SliceStable(b, func(i, j int) bool { return b[i].Total > b[j].Total })
	}
	return buckets
}

// TopN flattens all filtered restaurants, sorts them descending by the same
// composed total the category boards use, and returns the first n.
func (s *RankService) TopN(restaurants []model.Restaurant, rec *model.UserVoteRecord, snap model.TallySnapshot, filter func(model.Restaurant) bool, n int) []model.RankedRestaurant {
	ranked := make([]model.RankedRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if filter != nil && !filter(r) {
			continue
		}
		ranked = append(ranked, model.RankedRestaurant{
			Restaurant: r,
			Total:      s.score.ComputeTotal(r, rec, snap),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Total > ranked[j].Total })
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// SearchFilter builds a predicate matching restaurants whose name, category or
// address contains every whitespace-separated term, case-insensitively. An
// empty query matches everything.
func SearchFilter(query string) func(model.Restaurant) bool {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil
	}
	return func(r model.Restaurant) bool {
		haystack := strings.ToLower(r.Name + " " + r.Category + " " + r.Address)
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				return false
			}
		}
		return true
	}
}
