package service

import (
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
)

// ScoreService composes a restaurant's displayable total from its three score
// layers:
//
//	total = base listing score
//	      + global tally (0 when no snapshot is live, or the id is absent)
//	      + the viewing user's own contribution
//
// Every method is a pure function of its inputs, so the compositor is safe to
// call repeatedly during re-renders.
type ScoreService struct{}

func NewScoreService() *ScoreService {
	return &ScoreService{}
}

// ComputeTotal returns the composed display total for one restaurant. A nil
// snapshot means local-only mode: the global layer contributes nothing. A nil
// record means an anonymous viewer with no votes cast.
func (s *ScoreService) ComputeTotal(r model.Restaurant, rec *model.UserVoteRecord, snap model.TallySnapshot) int64 {
	return r.BaseScore + snap.Get(r.ID) + s.LocalContribution(r, rec)
}

// LocalContribution returns the viewing user's own points for a restaurant:
// top and runner-up count only within the restaurant's own category, the
// overall pick is category-independent. A restaurant can never earn both top
// and runner-up at once (the ledger forbids it) but may stack either with the
// overall bonus.
func (s *ScoreService) LocalContribution(r model.Restaurant, rec *model.UserVoteRecord) int64 {
	if rec == nil {
		return 0
	}
	var pts int64
	if cv, ok := rec.Categories[r.Category]; ok {
		if cv.TopID == r.ID {
			pts += WeightTop
		}
		if cv.RunnerUpID == r.ID {
			pts += WeightRunnerUp
		}
	}
	if rec.OverallPick == r.ID {
		pts += WeightOverall
	}
	return pts
}
