package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/middleware"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/service"
)

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// Submit handles POST /api/votes
func (h *VoteHandler) Submit(c fiber.Ctx) error {
	var req model.VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	userID, deviceID, errMsg := middleware.ValidateCallerID(req.UserID, req.DeviceID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	category, errMsg := middleware.ValidateCategory(req.Category)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	restaurantID, errMsg := middleware.ValidateRestaurantID(req.RestaurantID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	slot, errMsg := middleware.ValidateSlot(req.Slot)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.SubmitCategoryVote(c.Context(), userID, deviceID, category, restaurantID, slot)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to apply vote")
	}

	return c.JSON(resp)
}

// SubmitOverall handles POST /api/votes/overall
func (h *VoteHandler) SubmitOverall(c fiber.Ctx) error {
	var req model.OverallVoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	userID, deviceID, errMsg := middleware.ValidateCallerID(req.UserID, req.DeviceID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	restaurantID, errMsg := middleware.ValidateRestaurantID(req.RestaurantID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.SubmitOverallPick(c.Context(), userID, deviceID, restaurantID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to apply overall pick")
	}

	return c.JSON(resp)
}

// Record handles GET /api/votes/record — returns the caller's current record.
func (h *VoteHandler) Record(c fiber.Ctx) error {
	userID, deviceID, errMsg := middleware.ValidateCallerID(c.Get("X-User-ID"), c.Get("X-Device-ID"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	rec, err := h.svc.Record(c.Context(), userID, deviceID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load vote record")
	}

	return c.JSON(rec)
}
