package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/handler"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Vote       *handler.VoteHandler
	Board      *handler.BoardHandler
	Restaurant *handler.RestaurantHandler
	Suggestion *handler.SuggestionHandler
	Admin      *handler.AdminHandler
	Sync       *handler.SyncHandler
	Stats      *handler.StatsHandler
	Health     *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins, adminToken string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	api := app.Group("/api")

	// Vote routes
	voteLimit := middleware.NewVoteRateLimiter().Handler()
	api.Post("/votes", h.Vote.Submit, voteLimit)
	api.Post("/votes/overall", h.Vote.SubmitOverall, voteLimit)
	api.Get("/votes/record", h.Vote.Record)

	// Board routes
	boardLimit := middleware.NewBoardRateLimiter().Handler()
	api.Get("/board", h.Board.Board, boardLimit)
	api.Get("/board/top", h.Board.Top, boardLimit)

	// Restaurant routes
	api.Get("/restaurants", h.Restaurant.List)
	api.Get("/restaurants/:id", h.Restaurant.Get)

	// Suggestion routes
	api.Post("/suggestions", h.Suggestion.Submit, middleware.NewSuggestionRateLimiter().Handler())

	// Sync routes
	api.Get("/sync/tallies", h.Sync.Tallies, middleware.NewSyncRateLimiter().Handler())

	// Stats routes
	api.Get("/stats", h.Stats.GetStats)

	// Admin routes
	admin := api.Group("/admin", middleware.RequireAdmin(adminToken))
	admin.Get("/suggestions", h.Admin.ListSuggestions)
	admin.Post("/suggestions/:id/approve", h.Admin.ApproveSuggestion)
	admin.Post("/suggestions/:id/reject", h.Admin.RejectSuggestion)
	admin.Patch("/restaurants/:id/category", h.Admin.Recategorize)
	admin.Patch("/restaurants/:id/base-score", h.Admin.SetBaseScore)
	admin.Delete("/restaurants/:id", h.Admin.Delete)
}
