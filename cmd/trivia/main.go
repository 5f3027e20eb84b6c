package main // trivia API entry point

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
	"github.com/stagebook/stagebook/internal/repository"
	"github.com/stagebook/stagebook/internal/router"
	"github.com/stagebook/stagebook/internal/service"
)

func main() {
	cfg, err := config.Load("5001")
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "trivia"})

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
	cacheCfg := config.LoadCacheConfig("trivia")

	hooks := handler.Hooks{
		Events:     service.NewEventPublisher(cfg.RabbitURL, "trivia", cfg.EventsEnabled),
		Invalidate: middleware.NewCacheInvalidator(rdb, cacheCfg.Prefix),
		Log:        logging.WithComponent("trivia"),
	}
	h := handler.NewTriviaHandler(repository.NewQuestionRepo(db), repository.NewCategoryRepo(db), hooks)

	e := router.New(router.Options{
		CORSOrigins:  cfg.CORSOrigins,
		RateLimit:    config.LoadRateLimitConfig("trivia"),
		Redis:        rdb,
		ErrorHandler: handler.JSONErrorHandler,
	})
	e.GET("/readyz", handler.Ready(db))
	router.RegisterTrivia(e, h, middleware.NewRedisCache(cacheCfg, rdb), middleware.AdminGate(cfg.AdminJWTSecret))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.Port
	logging.Info().Str("addr", addr).Str("env", cfg.Env).Msg("trivia service listening")
	if err := router.Serve(ctx, e, addr); err != nil {
		logging.Error().Err(err).Msg("server stopped")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	logging.Info().Msg("trivia service stopped")
}
