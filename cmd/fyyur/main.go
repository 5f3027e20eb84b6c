package main // listing site entry point

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/stagebook/stagebook/internal/config"
	"github.com/stagebook/stagebook/internal/database"
	"github.com/stagebook/stagebook/internal/handler"
	"github.com/stagebook/stagebook/internal/logging"
	"github.com/stagebook/stagebook/internal/middleware"
	"github.com/stagebook/stagebook/internal/render"
	"github.com/stagebook/stagebook/internal/repository"
	"github.com/stagebook/stagebook/internal/router"
	"github.com/stagebook/stagebook/internal/service"
)

func main() {
	cfg, err := config.Load("5000")
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "fyyur"})

	db, err := database.Open(cfg.DB)
	if err != nil {
		logging.Fatal().Err(err).Msg("database connection failed")
	}
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logging.Fatal().Err(err).Msg("migration failed")
		}
	}

	rdb, err := config.OpenRedis(context.Background())
	if err != nil {
		// cache and rate limiter pass requests through without a client
		logging.Warn().Err(err).Msg("running without redis")
	}
	cacheCfg := config.LoadCacheConfig("fyyur")

	tmpl, err := render.New()
	if err != nil {
		logging.Fatal().Err(err).Msg("template parsing failed")
	}

	hooks := handler.Hooks{
		Events:     service.NewEventPublisher(cfg.RabbitURL, "fyyur", cfg.EventsEnabled),
		Invalidate: middleware.NewCacheInvalidator(rdb, cacheCfg.Prefix),
		Log:        logging.WithComponent("listing"),
	}
	h := handler.NewListingHandler(
		repository.NewVenueRepo(db),
		repository.NewArtistRepo(db),
		repository.NewShowRepo(db),
		repository.NewGenreRepo(db),
		hooks,
	)

	e := router.New(router.Options{
		CORSOrigins:  cfg.CORSOrigins,
		RateLimit:    config.LoadRateLimitConfig("fyyur"),
		Redis:        rdb,
		ErrorHandler: handler.HTMLErrorHandler,
		Renderer:     tmpl,
	})
	e.GET("/readyz", handler.Ready(db))
	router.RegisterListing(e, h, middleware.NewRedisCache(cacheCfg, rdb), middleware.AdminGate(cfg.AdminJWTSecret))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.Port
	logging.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listing service listening")
	if err := router.Serve(ctx, e, addr); err != nil {
		logging.Error().Err(err).Msg("server stopped")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	logging.Info().Msg("listing service stopped")
}
