package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/stagebook/stagebook/internal/model"
)

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *gorm.DB
}

// NewArtistRepo constructs an ArtistRepo with the provided gorm handle.
func NewArtistRepo(db *gorm.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// List returns every artist as an id/name pair ordered by id.
func (r *ArtistRepo) List(ctx context.Context) ([]Choice, error) {
	var out []Choice
	err := r.db.WithContext(ctx).Model(&model.Artist{}).Select("id", "name").Order("id").Scan(&out).Error
	return out, err
}

// Choices returns id/name pairs sorted by name for the show form.
func (r *ArtistRepo) Choices(ctx context.Context) ([]Choice, error) {
	var out []Choice
	err := r.db.WithContext(ctx).Model(&model.Artist{}).Select("id", "name").Order("name, id").Scan(&out).Error
	return out, err
}

// Search returns artists whose name contains term, case-insensitively.
func (r *ArtistRepo) Search(ctx context.Context, term string, now time.Time) ([]Summary, error) {
	db := r.db.WithContext(ctx)
	var artists []model.Artist
	if err := db.Select("id", "name").Where(likeClause("name"), likeTerm(term)).Order("id").Find(&artists).Error; err != nil {
		return nil, err
	}
	counts, err := upcomingCounts(db, "artist_id", now)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(artists))
	for _, a := range artists {
		out = append(out, Summary{ID: a.ID, Name: a.Name, NumUpcomingShows: counts[a.ID]})
	}
	return out, nil
}

// GetByID loads an artist with its genres or returns ErrArtistNotFound.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	var a model.Artist
	if err := r.db.WithContext(ctx).Preload("Genres").First(&a, id).Error; err != nil {
		return nil, notFound(err, ErrArtistNotFound)
	}
	return &a, nil
}

// Create inserts the artist and its genre links in one transaction.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist, genreIDs []uint64) error {
	if a.ImageLink == "" {
		a.ImageLink = model.DefaultArtistImage
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genres, err := findGenres(tx, genreIDs)
		if err != nil {
			return err
		}
		a.Genres = genres
		if err := tx.Omit("Genres.*").Create(a).Error; err != nil {
			return fmt.Errorf("insert artist: %w", err)
		}
		return nil
	})
}

// Update overwrites the mutable columns of artist a.ID and replaces its
// genres.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist, genreIDs []uint64) error {
	if a.ImageLink == "" {
		a.ImageLink = model.DefaultArtistImage
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.Artist
		if err := tx.Select("id").First(&cur, a.ID).Error; err != nil {
			return notFound(err, ErrArtistNotFound)
		}
		genres, err := findGenres(tx, genreIDs)
		if err != nil {
			return err
		}
		err = tx.Model(&cur).
			Select("name", "city", "state", "phone", "website_link", "facebook_link",
				"seeking_venue", "seeking_description", "image_link").
			Updates(model.Artist{
				Name: a.Name, City: a.City, State: a.State, Phone: a.Phone,
				WebsiteLink: a.WebsiteLink, FacebookLink: a.FacebookLink, SeekingVenue: a.SeekingVenue,
				SeekingDescription: a.SeekingDescription, ImageLink: a.ImageLink,
			}).Error
		if err != nil {
			return fmt.Errorf("update artist: %w", err)
		}
		return replaceGenres(tx, &cur, genres)
	})
}

// Delete removes the artist with its shows and genre links.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a model.Artist
		if err := tx.Select("id").First(&a, id).Error; err != nil {
			return notFound(err, ErrArtistNotFound)
		}
		if err := tx.Where("artist_id = ?", id).Delete(&model.Show{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&a).Association("Genres").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.Artist{}, id).Error
	})
}
