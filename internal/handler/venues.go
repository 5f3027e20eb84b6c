package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stagebook/stagebook/internal/model"
	"github.com/stagebook/stagebook/internal/queue"
	"github.com/stagebook/stagebook/internal/repository"
)

type venuePage struct {
	model.Venue
	PastShows          []showRow
	UpcomingShows      []showRow
	PastShowsCount     int
	UpcomingShowsCount int
}

// ListVenues renders venues grouped by city and state.
func (h *ListingHandler) ListVenues(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	areas, err := h.Venues.ListAreas(ctx, h.Now())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/venues", echo.Map{"areas": areas})
}

// SearchVenues renders venues whose name contains search_term.
func (h *ListingHandler) SearchVenues(c echo.Context) error {
	term := c.FormValue("search_term")
	ctx, cancel := requestCtx(c)
	defer cancel()
	hits, err := h.Venues.Search(ctx, term, h.Now())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/search_venues", echo.Map{
		"results":     searchResults{Count: len(hits), Data: hits},
		"search_term": term,
		"base":        "/venues",
	})
}

// ShowVenue renders one venue with its past and upcoming shows.
func (h *ListingHandler) ShowVenue(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return echo.ErrNotFound
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	v, err := h.Venues.GetByID(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	shows, err := h.Shows.ListByVenue(ctx, id)
	if err != nil {
		return err
	}
	for i := range shows {
		shows[i].Venue = *v
	}
	past, upcoming := splitShows(shows, h.Now())
	return c.Render(http.StatusOK, "pages/show_venue", echo.Map{"venue": venuePage{
		Venue:     *v,
		PastShows: past, UpcomingShows: upcoming,
		PastShowsCount: len(past), UpcomingShowsCount: len(upcoming),
	}})
}

// NewVenueForm renders the empty venue form.
func (h *ListingHandler) NewVenueForm(c echo.Context) error {
	data, err := h.formPage(c, venueForm{}, nil, nil)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "forms/new_venue", data)
}

// CreateVenue validates the form and lists the venue.  Validation errors
// re-render the form with 400; an insert failure renders the home page
// with an error flash and 422.
func (h *ListingHandler) CreateVenue(c echo.Context) error {
	var f venueForm
	if err := c.Bind(&f); err != nil {
		return h.renderVenueForm(c, "forms/new_venue", f, map[string]string{"form": "invalid form submission"}, "Failed to create venue.")
	}
	f.trim()
	if errs := formErrors(f); errs != nil {
		return h.renderVenueForm(c, "forms/new_venue", f, errs, "Failed to create venue.")
	}

	v := f.toModel()
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Venues.Create(ctx, &v, f.Genres); err != nil {
		h.Hooks.Log.Error().Err(err).Str("venue", v.Name).Msg("create venue failed")
		return home(c, http.StatusUnprocessableEntity, "An error occurred. Venue "+v.Name+" could not be listed.")
	}
	h.Hooks.committed(ctx, queue.Event{Type: queue.VenueCreated, EntityID: v.ID, Name: v.Name})
	return home(c, http.StatusOK, "Venue "+v.Name+" was successfully listed!")
}

// EditVenueForm renders the venue form populated from the row.
func (h *ListingHandler) EditVenueForm(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return echo.ErrNotFound
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	v, err := h.Venues.GetByID(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	f := venueFormFrom(v)
	data, err := h.formPage(c, f, f.Genres, nil)
	if err != nil {
		return err
	}
	data["id"] = id
	return c.Render(http.StatusOK, "forms/edit_venue", data)
}

// UpdateVenue overwrites the venue and its genres, then redirects to the
// venue page.
func (h *ListingHandler) UpdateVenue(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return echo.ErrNotFound
	}
	var f venueForm
	if err := c.Bind(&f); err != nil {
		return h.renderVenueEdit(c, id, f, map[string]string{"form": "invalid form submission"}, "Failed to update venue.")
	}
	f.trim()
	if errs := formErrors(f); errs != nil {
		return h.renderVenueEdit(c, id, f, errs, "Failed to update venue.")
	}

	v := f.toModel()
	v.ID = id
	ctx, cancel := requestCtx(c)
	defer cancel()
	err := h.Venues.Update(ctx, &v, f.Genres)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		h.Hooks.Log.Error().Err(err).Uint64("venue_id", id).Msg("update venue failed")
		return home(c, http.StatusUnprocessableEntity, "An error occurred. Venue "+v.Name+" could not be updated.")
	}
	h.Hooks.committed(ctx, queue.Event{Type: queue.VenueUpdated, EntityID: id, Name: v.Name})
	return c.Redirect(http.StatusSeeOther, "/venues/"+strconv.FormatUint(id, 10))
}

// DeleteVenue removes the venue with its shows and answers JSON.
func (h *ListingHandler) DeleteVenue(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return jsonError(c, http.StatusNotFound)
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	err := h.Venues.Delete(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return jsonError(c, http.StatusNotFound)
	}
	if err != nil {
		h.Hooks.Log.Error().Err(err).Uint64("venue_id", id).Msg("delete venue failed")
		return jsonError(c, http.StatusUnprocessableEntity)
	}
	h.Hooks.committed(ctx, queue.Event{Type: queue.VenueDeleted, EntityID: id})
	return c.JSON(http.StatusOK, echo.Map{"success": true, "deleted_id": id})
}

func (h *ListingHandler) renderVenueForm(c echo.Context, page string, f venueForm, errs map[string]string, flash string) error {
	data, err := h.formPage(c, f, f.Genres, errs, flash)
	if err != nil {
		return err
	}
	return c.Render(http.StatusBadRequest, page, data)
}

func (h *ListingHandler) renderVenueEdit(c echo.Context, id uint64, f venueForm, errs map[string]string, flash string) error {
	data, err := h.formPage(c, f, f.Genres, errs, flash)
	if err != nil {
		return err
	}
	data["id"] = id
	return c.Render(http.StatusBadRequest, "forms/edit_venue", data)
}
