package model

// DefaultVenueImage is stored when a venue is listed without an image link.
const DefaultVenueImage = "https://images.all-free-download.com/images/graphiclarge/scene_layout_04_hd_picture_167802.jpg"

// Venue represents a place that books artists for shows.  A venue is
// tagged with any number of genres through the venues_genres join table
// and is referenced by shows.  This struct corresponds to a row in the
// `venues` table.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name of the venue.
//  City, State        – location; venues are grouped by this pair.
//  Address            – street address.
//  Phone              – contact phone number.
//  WebsiteLink        – optional website URL ("" when absent).
//  FacebookLink       – optional facebook URL ("" when absent).
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free-text pitch shown when SeekingTalent is set.
//  ImageLink          – picture shown on the venue page.
type Venue struct {
    ID                 uint64  `gorm:"primaryKey"`                              // venues.id
    Name               string  `gorm:"size:120;not null"`                       // venues.name
    City               string  `gorm:"size:120;not null;index:idx_venue_area"`  // venues.city
    State              string  `gorm:"size:120;not null;index:idx_venue_area"`  // venues.state
    Address            string  `gorm:"size:120;not null"`                       // venues.address
    Phone              string  `gorm:"size:120;not null"`                       // venues.phone
    WebsiteLink        string  `gorm:"size:120;not null"`                       // venues.website_link
    FacebookLink       string  `gorm:"size:120;not null"`                       // venues.facebook_link
    SeekingTalent      bool    `gorm:"not null"`                                // venues.seeking_talent
    SeekingDescription string  `gorm:"size:500;not null"`                       // venues.seeking_description
    ImageLink          string  `gorm:"size:500;not null"`                       // venues.image_link
    Genres             []Genre `gorm:"many2many:venues_genres;constraint:OnDelete:CASCADE"`
}

func (Venue) TableName() string { return "venues" }

// GenreNames returns the names of the attached genres in their loaded order.
func (v Venue) GenreNames() []string { return genreNames(v.Genres) }

// GenreIDs returns the ids of the attached genres.
func (v Venue) GenreIDs() []uint64 { return genreIDs(v.Genres) }
