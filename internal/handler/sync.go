package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/service"
)

type SyncHandler struct {
	svc *service.SyncService
}

func NewSyncHandler(svc *service.SyncService) *SyncHandler {
	return &SyncHandler{svc: svc}
}

// Tallies handles GET /api/sync/tallies — the wholesale tally read clients
// use to (re)build their local snapshot. The live flag tells them whether the
// mapping is current or last-known (degraded mode).
func (h *SyncHandler) Tallies(c fiber.Ctx) error {
	snap, live := h.svc.Current()
	if snap == nil {
		snap = model.TallySnapshot{}
	}
	return c.JSON(model.TallySyncResponse{
		Tallies:     snap,
		Live:        live,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
