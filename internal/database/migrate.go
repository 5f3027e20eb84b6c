package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/stagebook/stagebook/internal/model"
)

// Migrate creates or upgrades every table used by the listing and trivia
// services, including the venues_genres and artists_genres join tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Genre{},
		&model.Venue{},
		&model.Artist{},
		&model.Show{},
		&model.Category{},
		&model.Question{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
