package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/stagebook/stagebook/internal/model"
)

// Area groups the venues of one (city, state) pair.
type Area struct {
	City   string
	State  string
	Venues []Summary
}

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *gorm.DB
}

// NewVenueRepo constructs a VenueRepo with the provided gorm handle.
func NewVenueRepo(db *gorm.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// ListAreas returns every venue grouped by (state, city).  Each venue
// carries the number of its shows starting after now.
func (r *VenueRepo) ListAreas(ctx context.Context, now time.Time) ([]Area, error) {
	db := r.db.WithContext(ctx)
	var venues []model.Venue
	if err := db.Select("id", "name", "city", "state").Order("state, city, id").Find(&venues).Error; err != nil {
		return nil, err
	}
	counts, err := upcomingCounts(db, "venue_id", now)
	if err != nil {
		return nil, err
	}

	var out []Area
	for _, v := range venues {
		n := len(out)
		if n == 0 || out[n-1].City != v.City || out[n-1].State != v.State {
			out = append(out, Area{City: v.City, State: v.State})
			n++
		}
		out[n-1].Venues = append(out[n-1].Venues, Summary{ID: v.ID, Name: v.Name, NumUpcomingShows: counts[v.ID]})
	}
	return out, nil
}

// Search returns venues whose name contains term, case-insensitively.
func (r *VenueRepo) Search(ctx context.Context, term string, now time.Time) ([]Summary, error) {
	db := r.db.WithContext(ctx)
	var venues []model.Venue
	if err := db.Select("id", "name").Where(likeClause("name"), likeTerm(term)).Order("id").Find(&venues).Error; err != nil {
		return nil, err
	}
	counts, err := upcomingCounts(db, "venue_id", now)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(venues))
	for _, v := range venues {
		out = append(out, Summary{ID: v.ID, Name: v.Name, NumUpcomingShows: counts[v.ID]})
	}
	return out, nil
}

// GetByID loads a venue with its genres.  It returns ErrVenueNotFound if
// no row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	var v model.Venue
	if err := r.db.WithContext(ctx).Preload("Genres").First(&v, id).Error; err != nil {
		return nil, notFound(err, ErrVenueNotFound)
	}
	return &v, nil
}

// Choices returns id/name pairs for the show form.
func (r *VenueRepo) Choices(ctx context.Context) ([]Choice, error) {
	var out []Choice
	err := r.db.WithContext(ctx).Model(&model.Venue{}).Select("id", "name").Order("name, id").Scan(&out).Error
	return out, err
}

// Create inserts the venue and links it to genreIDs in one transaction.
// On success v.ID holds the generated id.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue, genreIDs []uint64) error {
	if v.ImageLink == "" {
		v.ImageLink = model.DefaultVenueImage
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genres, err := findGenres(tx, genreIDs)
		if err != nil {
			return err
		}
		v.Genres = genres
		// link existing genres without upserting them
		if err := tx.Omit("Genres.*").Create(v).Error; err != nil {
			return fmt.Errorf("insert venue: %w", err)
		}
		return nil
	})
}

// Update overwrites every mutable column of the venue identified by v.ID
// and replaces its genre set.  The last writer wins.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue, genreIDs []uint64) error {
	if v.ImageLink == "" {
		v.ImageLink = model.DefaultVenueImage
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.Venue
		if err := tx.Select("id").First(&cur, v.ID).Error; err != nil {
			return notFound(err, ErrVenueNotFound)
		}
		genres, err := findGenres(tx, genreIDs)
		if err != nil {
			return err
		}
		// Select forces zero values (unchecked boxes, cleared links) to be written
		err = tx.Model(&cur).
			Select("name", "city", "state", "address", "phone", "website_link",
				"facebook_link", "seeking_talent", "seeking_description", "image_link").
			Updates(model.Venue{
				Name: v.Name, City: v.City, State: v.State, Address: v.Address, Phone: v.Phone,
				WebsiteLink: v.WebsiteLink, FacebookLink: v.FacebookLink, SeekingTalent: v.SeekingTalent,
				SeekingDescription: v.SeekingDescription, ImageLink: v.ImageLink,
			}).Error
		if err != nil {
			return fmt.Errorf("update venue: %w", err)
		}
		return replaceGenres(tx, &cur, genres)
	})
}

// Delete removes the venue, its shows and its genre links.  It returns
// ErrVenueNotFound when nothing matches id.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v model.Venue
		if err := tx.Select("id").First(&v, id).Error; err != nil {
			return notFound(err, ErrVenueNotFound)
		}
		// Cascade delete: shows first, then genre links, then the venue itself
		if err := tx.Where("venue_id = ?", id).Delete(&model.Show{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&v).Association("Genres").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.Venue{}, id).Error
	})
}

// replaceGenres swaps the whole genre set of owner (a *model.Venue or
// *model.Artist) for genres.
func replaceGenres(tx *gorm.DB, owner interface{}, genres []model.Genre) error {
	assoc := tx.Omit("Genres.*").Model(owner).Association("Genres")
	if err := assoc.Clear(); err != nil {
		return err
	}
	if len(genres) == 0 {
		return nil
	}
	return assoc.Append(genres)
}
