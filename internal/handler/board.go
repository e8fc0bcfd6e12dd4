package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/middleware"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/service"
)

// DefaultTopN is how many restaurants the "Best This Week" view returns when
// the caller does not say otherwise.
const DefaultTopN = 10

type BoardHandler struct {
	svc *service.BoardService
}

func NewBoardHandler(svc *service.BoardService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

// Board handles GET /api/board?q=…
// Caller identity (for folding in local contributions) comes from the
// X-User-ID / X-Device-ID headers; anonymous requests get the shared view.
func (h *BoardHandler) Board(c fiber.Ctx) error {
	userID, deviceID := callerHeaders(c)
	query := fiber.Query[string](c, "q")

	resp, err := h.svc.Board(c.Context(), userID, deviceID, query)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build board")
	}
	return c.JSON(resp)
}

// Top handles GET /api/board/top?n=…&q=…
func (h *BoardHandler) Top(c fiber.Ctx) error {
	userID, deviceID := callerHeaders(c)
	query := fiber.Query[string](c, "q")

	n := DefaultTopN
	if raw := fiber.Query[string](c, "n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", "n must be an integer between 1 and 100")
		}
		n = parsed
	}

	resp, err := h.svc.Top(c.Context(), userID, deviceID, query, n)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build top list")
	}
	return c.JSON(resp)
}

// callerHeaders pulls the optional identity headers. Both empty is fine for
// board reads; malformed values are treated as absent rather than rejected.
func callerHeaders(c fiber.Ctx) (userID, deviceID string) {
	userID, deviceID, errMsg := middleware.ValidateCallerID(c.Get("X-User-ID"), c.Get("X-Device-ID"))
	if errMsg != "" {
		return "", ""
	}
	return userID, deviceID
}
