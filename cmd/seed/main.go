package main // creates the schema and loads the sample data

import (
	"context"
	"time"

	"github.com/stagebook/stagebook/internal/config"
	"github.com/stagebook/stagebook/internal/database"
	"github.com/stagebook/stagebook/internal/logging"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "seed"})

	db, err := database.Open(cfg.DB)
	if err != nil {
		logging.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("migration failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := database.Seed(ctx, db); err != nil {
		logging.Fatal().Err(err).Msg("seeding failed")
	}
	logging.Info().Str("driver", cfg.DB.Driver).Msg("database seeded")
}
