package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/stagebook/stagebook/internal/model"
	"github.com/stagebook/stagebook/internal/validator"
)

// ShowTimeLayout is the start_time format accepted by the show form.
const ShowTimeLayout = "2006-01-02 15:04:05"

// browsers submit datetime-local inputs in this shape
const showTimeLocalLayout = "2006-01-02T15:04"

// venueForm is the urlencoded body of the venue create and edit forms.
type venueForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,usstate"`
	Address            string   `form:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" validate:"required,phone"`
	Genres             []uint64 `form:"genres" validate:"required,min=1"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=120"`
	SeekingTalent      string   `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// Seeking reports whether the checkbox was ticked.
func (f venueForm) Seeking() bool { return checked(f.SeekingTalent) }

// trim strips surrounding whitespace so that a blank required field fails
// validation instead of being stored empty.
func (f *venueForm) trim() {
	trimAll(&f.Name, &f.City, &f.State, &f.Address, &f.Phone,
		&f.ImageLink, &f.FacebookLink, &f.WebsiteLink, &f.SeekingDescription)
}

func (f venueForm) toModel() model.Venue {
	return model.Venue{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              strings.ToUpper(f.State),
		Address:            strings.TrimSpace(f.Address),
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingTalent:      f.Seeking(),
		SeekingDescription: f.SeekingDescription,
	}
}

func venueFormFrom(v *model.Venue) venueForm {
	f := venueForm{
		Name: v.Name, City: v.City, State: v.State, Address: v.Address, Phone: v.Phone,
		Genres: v.GenreIDs(), ImageLink: v.ImageLink, FacebookLink: v.FacebookLink,
		WebsiteLink: v.WebsiteLink, SeekingDescription: v.SeekingDescription,
	}
	if v.SeekingTalent {
		f.SeekingTalent = "True"
	}
	return f
}

// artistForm is the urlencoded body of the artist create and edit forms.
type artistForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,usstate"`
	Phone              string   `form:"phone" validate:"required,phone"`
	Genres             []uint64 `form:"genres" validate:"required,min=1"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=120"`
	SeekingVenue       string   `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

func (f artistForm) Seeking() bool { return checked(f.SeekingVenue) }

func (f *artistForm) trim() {
	trimAll(&f.Name, &f.City, &f.State, &f.Phone,
		&f.ImageLink, &f.FacebookLink, &f.WebsiteLink, &f.SeekingDescription)
}

func (f artistForm) toModel() model.Artist {
	return model.Artist{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              strings.ToUpper(f.State),
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingVenue:       f.Seeking(),
		SeekingDescription: f.SeekingDescription,
	}
}

func artistFormFrom(a *model.Artist) artistForm {
	f := artistForm{
		Name: a.Name, City: a.City, State: a.State, Phone: a.Phone,
		Genres: a.GenreIDs(), ImageLink: a.ImageLink, FacebookLink: a.FacebookLink,
		WebsiteLink: a.WebsiteLink, SeekingDescription: a.SeekingDescription,
	}
	if a.SeekingVenue {
		f.SeekingVenue = "True"
	}
	return f
}

// showForm is the urlencoded body of the show create form.
type showForm struct {
	ArtistID  uint64 `form:"artist_id" validate:"required"`
	VenueID   uint64 `form:"venue_id" validate:"required"`
	StartTime string `form:"start_time" validate:"required"`
}

func (f showForm) startTime() (time.Time, error) {
	s := strings.TrimSpace(f.StartTime)
	for _, layout := range []string{ShowTimeLayout, showTimeLocalLayout} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid start time")
}

// checked accepts the values browsers and the legacy forms send for a
// ticked checkbox.
func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "y", "yes", "on", "1":
		return true
	}
	return false
}

// formErrors validates f and returns the per-field messages, or nil.
func formErrors(f interface{}) map[string]string {
	err := validator.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.Errors
	if errors.As(err, &verrs) {
		return verrs.Messages()
	}
	return map[string]string{"form": err.Error()}
}

func trimAll(fields ...*string) {
	for _, p := range fields {
		*p = strings.TrimSpace(*p)
	}
}

func selectedSet(ids []uint64) map[uint64]bool {
	m := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
