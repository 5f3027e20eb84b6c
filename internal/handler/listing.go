package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stagebook/stagebook/internal/model"
	"github.com/stagebook/stagebook/internal/repository"
	"github.com/stagebook/stagebook/internal/validator"
)

// ListingHandler serves the server-rendered venue, artist and show pages.
type ListingHandler struct {
	Venues  *repository.VenueRepo
	Artists *repository.ArtistRepo
	Shows   *repository.ShowRepo
	Genres  *repository.GenreRepo
	Hooks   Hooks
	Now     func() time.Time // server clock; replaced in tests
}

// NewListingHandler constructs a ListingHandler and panics if a repository is nil.
func NewListingHandler(venues *repository.VenueRepo, artists *repository.ArtistRepo, shows *repository.ShowRepo, genres *repository.GenreRepo, hooks Hooks) *ListingHandler {
	if venues == nil || artists == nil || shows == nil || genres == nil {
		panic("nil repository passed to NewListingHandler")
	}
	return &ListingHandler{
		Venues: venues, Artists: artists, Shows: shows, Genres: genres,
		Hooks: hooks,
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

// showRow is one line of a show list.
type showRow struct {
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	VenueID         uint64
	VenueName       string
	VenueImageLink  string
	StartTime       time.Time
}

func rowOf(s model.Show) showRow {
	return showRow{
		ArtistID: s.ArtistID, ArtistName: s.Artist.Name, ArtistImageLink: s.Artist.ImageLink,
		VenueID: s.VenueID, VenueName: s.Venue.Name, VenueImageLink: s.Venue.ImageLink,
		StartTime: s.StartTime,
	}
}

// splitShows partitions shows into past and upcoming relative to now.
func splitShows(shows []model.Show, now time.Time) (past, upcoming []showRow) {
	past, upcoming = []showRow{}, []showRow{}
	for _, s := range shows {
		if s.Upcoming(now) {
			upcoming = append(upcoming, rowOf(s))
		} else {
			past = append(past, rowOf(s))
		}
	}
	return past, upcoming
}

type searchResults struct {
	Count int
	Data  []repository.Summary
}

// Home renders the landing page.
func (h *ListingHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "pages/home", echo.Map{})
}

// home renders the landing page with a single flash message.
func home(c echo.Context, status int, msg string) error {
	return c.Render(status, "pages/home", echo.Map{"flash": []string{msg}})
}

// formPage assembles the data every venue/artist form needs.
func (h *ListingHandler) formPage(c echo.Context, form interface{}, genreIDs []uint64, errs map[string]string, flash ...string) (echo.Map, error) {
	ctx, cancel := requestCtx(c)
	defer cancel()
	genres, err := h.Genres.List(ctx)
	if err != nil {
		return nil, err
	}
	if errs == nil {
		errs = map[string]string{}
	}
	return echo.Map{
		"form":     form,
		"errors":   errs,
		"genres":   genres,
		"states":   validator.States,
		"selected": selectedSet(genreIDs),
		"flash":    flash,
	}, nil
}
