package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/middleware"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/repository"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/service"
)

// AdminHandler carries the admin-only operations: reviewing suggestions,
// recategorizing, base-score edits, and delisting.
type AdminHandler struct {
	restaurants *repository.RestaurantRepo
	suggestions *repository.SuggestionRepo
	sugSvc      *service.SuggestionService
	cache       *service.CacheService
}

func NewAdminHandler(restaurants *repository.RestaurantRepo, suggestions *repository.SuggestionRepo, sugSvc *service.SuggestionService, cache *service.CacheService) *AdminHandler {
	return &AdminHandler{restaurants: restaurants, suggestions: suggestions, sugSvc: sugSvc, cache: cache}
}

// ListSuggestions handles GET /api/admin/suggestions
func (h *AdminHandler) ListSuggestions(c fiber.Ctx) error {
	pending, err := h.suggestions.ListPending(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list suggestions")
	}
	if pending == nil {
		pending = []model.Suggestion{}
	}
	return c.JSON(pending)
}

// ApproveSuggestion handles POST /api/admin/suggestions/:id/approve
func (h *AdminHandler) ApproveSuggestion(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateSuggestionID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.RecategorizeRequest
	_ = c.Bind().JSON(&req) // optional body: category override

	rest, err := h.sugSvc.Approve(c.Context(), id, strings.TrimSpace(req.Category))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Suggestion not found")
		case errors.Is(err, service.ErrNotPending):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "NOT_PENDING", "Suggestion has already been reviewed")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to approve suggestion")
	}

	h.invalidateBoards(c)
	return c.Status(fiber.StatusCreated).JSON(rest)
}

// RejectSuggestion handles POST /api/admin/suggestions/:id/reject
func (h *AdminHandler) RejectSuggestion(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateSuggestionID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.sugSvc.Reject(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Suggestion not found")
		case errors.Is(err, service.ErrNotPending):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "NOT_PENDING", "Suggestion has already been reviewed")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reject suggestion")
	}

	return c.JSON(fiber.Map{"success": true})
}

// Recategorize handles PATCH /api/admin/restaurants/:id/category.
// Moving a restaurant to a new category purges the votes cast on it under the
// old one; the response reports how many were purged so the admin can decide
// whether to compensate the tally via a base-score edit.
func (h *AdminHandler) Recategorize(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateRestaurantID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.RecategorizeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	category, errMsg := middleware.ValidateCategory(req.Category)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	purged, err := h.restaurants.Recategorize(c.Context(), id, category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Restaurant not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to recategorize")
	}

	h.invalidateBoards(c)
	return c.JSON(fiber.Map{"success": true, "purgedVotes": purged})
}

// SetBaseScore handles PATCH /api/admin/restaurants/:id/base-score
func (h *AdminHandler) SetBaseScore(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateRestaurantID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.BaseScoreRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if err := h.restaurants.SetBaseScore(c.Context(), id, req.BaseScore); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to set base score")
	}

	h.invalidateBoards(c)
	return c.JSON(fiber.Map{"success": true})
}

// Delete handles DELETE /api/admin/restaurants/:id
func (h *AdminHandler) Delete(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateRestaurantID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.restaurants.Delete(c.Context(), id); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete restaurant")
	}

	h.invalidateBoards(c)
	return c.JSON(fiber.Map{"success": true})
}

func (h *AdminHandler) invalidateBoards(c fiber.Ctx) {
	if err := h.cache.InvalidateBoards(c.Context()); err != nil {
		log.Warn().Err(err).Msg("admin: board cache invalidation failed")
	}
}
