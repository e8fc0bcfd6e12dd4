package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/repository"
)

// VoteService drives a vote transition end to end: load the caller's record,
// apply the transition locally, persist the new record, then hand the deltas
// to the tally worker. The local record is authoritative the moment it is
// persisted; the tally push is best-effort and never blocks or rolls the
// record back.
type VoteService struct {
	ledger *LedgerService
	votes  *repository.VoteRepo
	cache  *CacheService
	worker *TallyWorker
	sync   *SyncService

	onVote func(slot string) // optional hook, used by metrics
}

func NewVoteService(ledger *LedgerService, votes *repository.VoteRepo, cache *CacheService, worker *TallyWorker, sync *SyncService) *VoteService {
	return &VoteService{ledger: ledger, votes: votes, cache: cache, worker: worker, sync: sync}
}

// SetVoteHook registers a callback invoked once per applied transition.
func (s *VoteService) SetVoteHook(fn func(slot string)) {
	s.onVote = fn
}

// SubmitCategoryVote applies a (category, restaurant, slot) transition for
// the caller identified by userID (authenticated) or deviceID (anonymous).
func (s *VoteService) SubmitCategoryVote(ctx context.Context, userID, deviceID, category, restaurantID, slot string) (*model.VoteResponse, error) {
	rec, err := s.loadRecord(ctx, userID, deviceID)
	if err != nil {
		return nil, err
	}

	deltas := s.ledger.ApplyCategoryVote(rec, category, restaurantID, slot)

	if userID != "" {
		err = s.votes.SaveCategoryVote(ctx, userID, category, rec.Categories[category])
	} else {
		err = s.cache.SetLedger(ctx, deviceID, rec)
	}
	if err != nil {
		return nil, err
	}

	s.finish(ctx, slot, deltas)
	return s.response(rec, deltas), nil
}

// SubmitOverallPick applies the single cross-category overall-pick transition.
func (s *VoteService) SubmitOverallPick(ctx context.Context, userID, deviceID, restaurantID string) (*model.VoteResponse, error) {
	rec, err := s.loadRecord(ctx, userID, deviceID)
	if err != nil {
		return nil, err
	}

	deltas := s.ledger.ApplyOverallPick(rec, restaurantID)

	if userID != "" {
		err = s.votes.SaveOverallPick(ctx, userID, rec.OverallPick)
	} else {
		err = s.cache.SetLedger(ctx, deviceID, rec)
	}
	if err != nil {
		return nil, err
	}

	s.finish(ctx, model.SlotOverall, deltas)
	return s.response(rec, deltas), nil
}

// Record returns the caller's current vote record without mutating it.
func (s *VoteService) Record(ctx context.Context, userID, deviceID string) (*model.UserVoteRecord, error) {
	return s.loadRecord(ctx, userID, deviceID)
}

func (s *VoteService) loadRecord(ctx context.Context, userID, deviceID string) (*model.UserVoteRecord, error) {
	if userID != "" {
		return s.votes.LoadRecord(ctx, userID)
	}
	return s.cache.GetLedger(ctx, deviceID)
}

func (s *VoteService) finish(ctx context.Context, slot string, deltas []model.Delta) {
	s.worker.Enqueue(deltas)
	if s.onVote != nil {
		s.onVote(slot)
	}
	if err := s.cache.InvalidateBoards(ctx); err != nil {
		log.Warn().Err(err).Msg("vote: board cache invalidation failed")
	}
}

func (s *VoteService) response(rec *model.UserVoteRecord, deltas []model.Delta) *model.VoteResponse {
	_, live := s.sync.Current()
	if deltas == nil {
		deltas = []model.Delta{}
	}
	return &model.VoteResponse{Success: true, Record: rec, Deltas: deltas, Live: live}
}
