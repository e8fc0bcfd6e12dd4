package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/repository"
)

// BoardService builds the leaderboard views: restaurants are loaded from the
// listing repo, composed against the last-known tally snapshot and the
// caller's own record, then grouped and ranked. Anonymous, unfiltered views
// are served cache-aside from Redis.
type BoardService struct {
	restaurants *repository.RestaurantRepo
	rank        *RankService
	votes       *VoteService
	sync        *SyncService
	cache       *CacheService
}

func NewBoardService(restaurants *repository.RestaurantRepo, rank *RankService, votes *VoteService, sync *SyncService, cache *CacheService) *BoardService {
	return &BoardService{restaurants: restaurants, rank: rank, votes: votes, sync: sync, cache: cache}
}

// Board returns the category-grouped leaderboard for the caller. userID and
// deviceID identify whose local contributions to fold in; query is the
// multi-term search filter.
func (s *BoardService) Board(ctx context.Context, userID, deviceID, query string) (*model.BoardResponse, error) {
	cacheable := userID == "" && deviceID == "" && query == ""
	if cacheable {
		if cached, err := s.cache.GetBoard(ctx, "all"); err == nil && cached != nil {
			var resp model.BoardResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	restaurants, rec, snap, live, err := s.load(ctx, userID, deviceID)
	if err != nil {
		return nil, err
	}

	resp := &model.BoardResponse{
		Categories:  s.rank.GroupAndRank(restaurants, rec, snap, SearchFilter(query)),
		Live:        live,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if cacheable {
		if err := s.cache.SetBoard(ctx, "all", resp); err != nil {
			log.Warn().Err(err).Msg("board: cache write failed")
		}
	}
	return resp, nil
}

// Top returns the cross-category top-N view ("Best This Week").
func (s *BoardService) Top(ctx context.Context, userID, deviceID, query string, n int) (*model.TopResponse, error) {
	cacheable := userID == "" && deviceID == "" && query == ""
	cacheKey := fmt.Sprintf("top:%d", n)
	if cacheable {
		if cached, err := s.cache.GetBoard(ctx, cacheKey); err == nil && cached != nil {
			var resp model.TopResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	restaurants, rec, snap, live, err := s.load(ctx, userID, deviceID)
	if err != nil {
		return nil, err
	}

	resp := &model.TopResponse{
		Restaurants: s.rank.TopN(restaurants, rec, snap, SearchFilter(query), n),
		Live:        live,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if cacheable {
		if err := s.cache.SetBoard(ctx, cacheKey, resp); err != nil {
			log.Warn().Err(err).Msg("board: cache write failed")
		}
	}
	return resp, nil
}

func (s *BoardService) load(ctx context.Context, userID, deviceID string) ([]model.Restaurant, *model.UserVoteRecord, model.TallySnapshot, bool, error) {
	restaurants, err := s.restaurants.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, false, err
	}

	var rec *model.UserVoteRecord
	if userID != "" || deviceID != "" {
		rec, err = s.votes.Record(ctx, userID, deviceID)
		if err != nil {
			return nil, nil, nil, false, err
		}
	}

	snap, live := s.sync.Current()
	return restaurants, rec, snap, live, nil
}
