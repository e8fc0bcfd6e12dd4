package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/middleware"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/repository"
)

type StatsHandler struct {
	restaurants *repository.RestaurantRepo
	votes       *repository.VoteRepo
	tallies     *repository.TallyRepo
}

func NewStatsHandler(restaurants *repository.RestaurantRepo, votes *repository.VoteRepo, tallies *repository.TallyRepo) *StatsHandler {
	return &StatsHandler{restaurants: restaurants, votes: votes, tallies: tallies}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	totalRestaurants, byCategory, err := h.restaurants.Count(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}
	totalVotes, totalVoters, err := h.votes.CountVotes(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}
	totalPoints, err := h.tallies.TotalPoints(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}

	return c.JSON(model.StatsResponse{
		TotalRestaurants: totalRestaurants,
		TotalVotes:       totalVotes,
		TotalVoters:      totalVoters,
		TotalPoints:      totalPoints,
		Categories:       byCategory,
	})
}
