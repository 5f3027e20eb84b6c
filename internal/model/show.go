package model

import "time"

// Show represents one booking of an artist at a venue.  There is no
// surrogate id: the composite key (artist_id, venue_id, start_time)
// identifies a show.  Both foreign keys cascade on delete so removing a
// venue or an artist removes its shows.
//
// Fields:
//  ArtistID  – artist playing the show.
//  VenueID   – venue hosting the show.
//  StartTime – when the show begins (stored in UTC).
//  Artist    – loaded on demand for list and detail pages.
//  Venue     – loaded on demand for list and detail pages.
type Show struct {
    ArtistID  uint64    `gorm:"primaryKey;autoIncrement:false"` // shows.artist_id
    VenueID   uint64    `gorm:"primaryKey;autoIncrement:false"` // shows.venue_id
    StartTime time.Time `gorm:"primaryKey;not null"`            // shows.start_time
    Artist    Artist    `gorm:"constraint:OnDelete:CASCADE"`
    Venue     Venue     `gorm:"constraint:OnDelete:CASCADE"`
}

func (Show) TableName() string { return "shows" }

// Upcoming reports whether the show starts after now.
func (s Show) Upcoming(now time.Time) bool { return s.StartTime.After(now) }
