package model

// DefaultArtistImage is stored when an artist is listed without an image link.
const DefaultArtistImage = "https://www.pexels.com/photo/mic-microphone-recording-audio-14166/"

// Artist represents a performer that can be booked at venues.  It mirrors
// Venue without an address and with SeekingVenue instead of SeekingTalent.
// Genres are linked through the artists_genres join table.
type Artist struct {
    ID                 uint64  `gorm:"primaryKey"`        // artists.id
    Name               string  `gorm:"size:120;not null"` // artists.name
    City               string  `gorm:"size:120;not null"` // artists.city
    State              string  `gorm:"size:120;not null"` // artists.state
    Phone              string  `gorm:"size:120;not null"` // artists.phone
    WebsiteLink        string  `gorm:"size:120;not null"` // artists.website_link
    FacebookLink       string  `gorm:"size:120;not null"` // artists.facebook_link
    SeekingVenue       bool    `gorm:"not null"`          // artists.seeking_venue
    SeekingDescription string  `gorm:"size:500;not null"` // artists.seeking_description
    ImageLink          string  `gorm:"size:500;not null"` // artists.image_link
    Genres             []Genre `gorm:"many2many:artists_genres;constraint:OnDelete:CASCADE"`
}

func (Artist) TableName() string { return "artists" }

// GenreNames returns the names of the attached genres in their loaded order.
func (a Artist) GenreNames() []string { return genreNames(a.Genres) }

// GenreIDs returns the ids of the attached genres.
func (a Artist) GenreIDs() []uint64 { return genreIDs(a.Genres) }
