package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/middleware"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/service"
)

type SuggestionHandler struct {
	svc *service.SuggestionService
}

func NewSuggestionHandler(svc *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{svc: svc}
}

// Submit handles POST /api/suggestions
func (h *SuggestionHandler) Submit(c fiber.Ctx) error {
	var req model.SuggestionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	if req.Name == "" || req.Location == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "name and location are required")
	}

	sug, err := h.svc.Submit(c.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNoCandidates) {
			return middleware.ErrorResponse(c, fiber.StatusUnprocessableEntity, "NO_MATCH", "No matching place found for that name and location")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit suggestion")
	}

	return c.Status(fiber.StatusCreated).JSON(sug)
}
