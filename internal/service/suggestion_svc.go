package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/repository"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/pkg/hash"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/pkg/places"
)

// DefaultBaseScore is the base listing score every approved restaurant starts
// with; admins may change it afterwards.
const DefaultBaseScore int64 = 100

var (
	ErrNoCandidates = errors.New("no matching place found")
	ErrNotPending   = errors.New("suggestion is not pending")
)

// SuggestionService runs the community suggestion flow: resolve the free-text
// submission against the places service, hold the best candidate for review,
// and on approval create the restaurant under its deterministic id.
type SuggestionService struct {
	suggestions *repository.SuggestionRepo
	restaurants *repository.RestaurantRepo
	places      *places.Client
	bounds      places.Bounds
}

func NewSuggestionService(suggestions *repository.SuggestionRepo, restaurants *repository.RestaurantRepo, placesClient *places.Client, bounds places.Bounds) *SuggestionService {
	return &SuggestionService{suggestions: suggestions, restaurants: restaurants, places: placesClient, bounds: bounds}
}

// Submit resolves a free-text suggestion and stores the best candidate as
// pending. When no places client is configured the raw submission is stored
// as-is; review still happens either way.
func (s *SuggestionService) Submit(ctx context.Context, req model.SuggestionRequest) (*model.Suggestion, error) {
	sug := model.Suggestion{
		Name:    req.Name,
		Address: req.Location,
		Status:  model.SuggestionPending,
	}

	if s.places != nil {
		candidates, err := s.places.Search(ctx, req.Name, req.Location, s.bounds)
		if err != nil {
			// Lookup failure is not fatal: keep the raw submission for review.
			log.Warn().Err(err).Msg("suggestion: places lookup failed, storing raw submission")
		} else {
			if len(candidates) == 0 {
				return nil, ErrNoCandidates
			}
			best := candidates[0]
			sug.Name = best.Name
			sug.Address = best.Address
			sug.CategoryHint = best.CategoryHint
			lat, lng, rating := best.Lat, best.Lng, best.Rating
			sug.Lat, sug.Lng, sug.Rating = &lat, &lng, &rating
		}
	}

	id, err := s.suggestions.Create(ctx, sug)
	if err != nil {
		return nil, err
	}
	sug.ID = id
	return &sug, nil
}

// Approve turns a pending suggestion into a listed restaurant. The restaurant
// id is derived from name+address, so approving a duplicate suggestion merges
// into the existing listing instead of minting a second one.
func (s *SuggestionService) Approve(ctx context.Context, suggestionID, category string) (*model.Restaurant, error) {
	sug, err := s.suggestions.FindByID(ctx, suggestionID)
	if err != nil {
		return nil, err
	}
	if sug.Status != model.SuggestionPending {
		return nil, ErrNotPending
	}

	if category == "" {
		category = sug.CategoryHint
	}
	if category == "" {
		category = "uncategorized"
	}

	rest := model.Restaurant{
		ID:        hash.RestaurantID(sug.Name, sug.Address),
		Name:      sug.Name,
		Category:  category,
		BaseScore: DefaultBaseScore,
		Address:   sug.Address,
		Lat:       sug.Lat,
		Lng:       sug.Lng,
	}

	if err := s.restaurants.Upsert(ctx, rest); err != nil {
		return nil, err
	}
	if err := s.suggestions.SetStatus(ctx, suggestionID, model.SuggestionApproved); err != nil {
		return nil, err
	}
	return &rest, nil
}

// Reject marks a pending suggestion rejected.
func (s *SuggestionService) Reject(ctx context.Context, suggestionID string) error {
	sug, err := s.suggestions.FindByID(ctx, suggestionID)
	if err != nil {
		return err
	}
	if sug.Status != model.SuggestionPending {
		return ErrNotPending
	}
	return s.suggestions.SetStatus(ctx, suggestionID, model.SuggestionRejected)
}
