package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/config"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/db"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/handler"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/middleware"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/migrate"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/repository"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/router"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/service"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/pkg/places"
)

func main() {
	_ = godotenv.Load() // best-effort
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "platewatchers-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer pool.Close()

	if err := migrate.Up(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	handler.InitMetrics(pool)

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	restaurantRepo := repository.NewRestaurantRepo(pool)
	voteRepo := repository.NewVoteRepo(pool)
	tallyRepo := repository.NewTallyRepo(pool)
	suggestionRepo := repository.NewSuggestionRepo(pool)

	tallyWorker := service.NewTallyWorker(tallyRepo, cfg.TallyFlushInterval)
	tallyWorker.SetFlushErrorHook(func() { handler.Metrics.TallyPushFailures.Inc() })

	syncSvc := service.NewSyncService(pool, tallyRepo, cfg.TallySyncInterval)

	voteSvc := service.NewVoteService(service.NewLedgerService(), voteRepo, cache, tallyWorker, syncSvc)
	voteSvc.SetVoteHook(func(slot string) { handler.Metrics.VotesTotal.WithLabelValues(slot).Inc() })

	boardSvc := service.NewBoardService(restaurantRepo, service.NewRankService(service.NewScoreService()), voteSvc, syncSvc, cache)

	var placesClient *places.Client
	if cfg.PlacesAPIKey != "" {
		placesClient = places.New(cfg.PlacesAPIKey, cfg.PlacesBaseURL)
	}
	bounds := places.Bounds{
		MinLat: cfg.BoundsMinLat, MaxLat: cfg.BoundsMaxLat,
		MinLng: cfg.BoundsMinLng, MaxLng: cfg.BoundsMaxLng,
	}
	suggestionSvc := service.NewSuggestionService(suggestionRepo, restaurantRepo, placesClient, bounds)

	go tallyWorker.Start(ctx)
	go syncSvc.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "PlateWatchers API",
		ServerHeader: "PlateWatchers",
	})

	router.Setup(app, &router.Handlers{
		Vote:       handler.NewVoteHandler(voteSvc),
		Board:      handler.NewBoardHandler(boardSvc),
		Restaurant: handler.NewRestaurantHandler(restaurantRepo),
		Suggestion: handler.NewSuggestionHandler(suggestionSvc),
		Admin:      handler.NewAdminHandler(restaurantRepo, suggestionRepo, suggestionSvc, cache),
		Sync:       handler.NewSyncHandler(syncSvc),
		Stats:      handler.NewStatsHandler(restaurantRepo, voteRepo, tallyRepo),
		Health:     handler.NewHealthHandler(pool, cache.Client(), syncSvc),
	}, cfg.CORSOrigins, cfg.AdminToken)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Environment).Msg("listening")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}

	// Give the tally worker a moment to run its final flush.
	time.Sleep(200 * time.Millisecond)
}
