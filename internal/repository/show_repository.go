package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stagebook/stagebook/internal/model"
)

// ShowRepo encapsulates queries on the shows table.
type ShowRepo struct {
	db *gorm.DB
}

// NewShowRepo constructs a ShowRepo with the provided gorm handle.
func NewShowRepo(db *gorm.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// ListUpcoming returns shows starting after now with their artist and venue
// loaded, soonest first.
func (r *ShowRepo) ListUpcoming(ctx context.Context, now time.Time) ([]model.Show, error) {
	var out []model.Show
	err := r.db.WithContext(ctx).
		Preload("Artist").Preload("Venue").
		Where("start_time > ?", now.UTC()).
		Order("start_time, artist_id, venue_id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByVenue returns every show of a venue with the artist loaded.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.Show, error) {
	var out []model.Show
	err := r.db.WithContext(ctx).Preload("Artist").
		Where("venue_id = ?", venueID).Order("start_time").Find(&out).Error
	return out, err
}

// ListByArtist returns every show of an artist with the venue loaded.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.Show, error) {
	var out []model.Show
	err := r.db.WithContext(ctx).Preload("Venue").
		Where("artist_id = ?", artistID).Order("start_time").Find(&out).Error
	return out, err
}

// Create books the artist at the venue.  Both must exist; otherwise
// ErrInvalidReference is returned and nothing is written.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	s.StartTime = s.StartTime.UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.Artist{}, s.ArtistID); err != nil {
			return err
		}
		if err := mustExist(tx, &model.Venue{}, s.VenueID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(s).Error; err != nil {
			return fmt.Errorf("insert show: %w", err)
		}
		return nil
	})
}

func mustExist(tx *gorm.DB, m interface{}, id uint64) error {
	err := tx.Model(m).Select("id").Where("id = ?", id).Take(m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidReference
	}
	return err
}
