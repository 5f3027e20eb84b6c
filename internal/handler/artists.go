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

type artistPage struct {
	model.Artist
	PastShows          []showRow
	UpcomingShows      []showRow
	PastShowsCount     int
	UpcomingShowsCount int
}

func (h *ListingHandler) ListArtists(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	artists, err := h.Artists.List(ctx)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/artists", echo.Map{"artists": artists})
}

func (h *ListingHandler) SearchArtists(c echo.Context) error {
	term := c.FormValue("search_term")
	ctx, cancel := requestCtx(c)
	defer cancel()
	hits, err := h.Artists.Search(ctx, term, h.Now())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/search_artists", echo.Map{
		"results":     searchResults{Count: len(hits), Data: hits},
		"search_term": term,
		"base":        "/artists",
	})
}

func (h *ListingHandler) ShowArtist(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return echo.ErrNotFound
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	a, err := h.Artists.GetByID(ctx, id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	shows, err := h.Shows.ListByArtist(ctx, id)
	if err != nil {
		return err
	}
	for i := range shows {
		shows[i].Artist = *a
	}
	past, upcoming := splitShows(shows, h.Now())
	return c.Render(http.StatusOK, "pages/show_artist", echo.Map{"artist": artistPage{
		Artist:    *a,
		PastShows: past, UpcomingShows: upcoming,
		PastShowsCount: len(past), UpcomingShowsCount: len(upcoming),
	}})
}

func (h *ListingHandler) NewArtistForm(c echo.Context) error {
	data, err := h.formPage(c, artistForm{}, nil, nil)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "forms/new_artist", data)
}

// CreateArtist mirrors CreateVenue.
func (h *ListingHandler) CreateArtist(c echo.Context) error {
	var f artistForm
	if err := c.Bind(&f); err != nil {
		return h.renderArtistForm(c, 0, f, map[string]string{"form": "invalid form submission"}, "Failed to create artist.")
	}
	f.trim()
	if errs := formErrors(f); errs != nil {
		return h.renderArtistForm(c, 0, f, errs, "Failed to create artist.")
	}

	a := f.toModel()
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Artists.Create(ctx, &a, f.Genres); err != nil {
		h.Hooks.Log.Error().Err(err).Str("artist", a.Name).Msg("create artist failed")
		return home(c, http.StatusUnprocessableEntity, "An error occurred. Artist "+a.Name+" could not be listed.")
	}
	h.Hooks.committed(ctx, queue.Event{Type: queue.ArtistCreated, EntityID: a.ID, Name: a.Name})
	return home(c, http.StatusOK, "Artist "+a.Name+" was successfully listed!")
}

func (h *ListingHandler) EditArtistForm(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return echo.ErrNotFound
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	a, err := h.Artists.GetByID(ctx, id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	f := artistFormFrom(a)
	data, err := h.formPage(c, f, f.Genres, nil)
	if err != nil {
		return err
	}
	data["id"] = id
	return c.Render(http.StatusOK, "forms/edit_artist", data)
}

func (h *ListingHandler) UpdateArtist(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return echo.ErrNotFound
	}
	var f artistForm
	if err := c.Bind(&f); err != nil {
		return h.renderArtistForm(c, id, f, map[string]string{"form": "invalid form submission"}, "Failed to update artist.")
	}
	f.trim()
	if errs := formErrors(f); errs != nil {
		return h.renderArtistForm(c, id, f, errs, "Failed to update artist.")
	}

	a := f.toModel()
	a.ID = id
	ctx, cancel := requestCtx(c)
	defer cancel()
	err := h.Artists.Update(ctx, &a, f.Genres)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		h.Hooks.Log.Error().Err(err).Uint64("artist_id", id).Msg("update artist failed")
		return home(c, http.StatusUnprocessableEntity, "An error occurred. Artist "+a.Name+" could not be updated.")
	}
	h.Hooks.committed(ctx, queue.Event{Type: queue.ArtistUpdated, EntityID: id, Name: a.Name})
	return c.Redirect(http.StatusSeeOther, "/artists/"+strconv.FormatUint(id, 10))
}

func (h *ListingHandler) DeleteArtist(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return jsonError(c, http.StatusNotFound)
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	err := h.Artists.Delete(ctx, id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return jsonError(c, http.StatusNotFound)
	}
	if err != nil {
		h.Hooks.Log.Error().Err(err).Uint64("artist_id", id).Msg("delete artist failed")
		return jsonError(c, http.StatusUnprocessableEntity)
	}
	h.Hooks.committed(ctx, queue.Event{Type: queue.ArtistDeleted, EntityID: id})
	return c.JSON(http.StatusOK, echo.Map{"success": true, "deleted_id": id})
}

// renderArtistForm re-renders the new (id == 0) or edit form with 400.
func (h *ListingHandler) renderArtistForm(c echo.Context, id uint64, f artistForm, errs map[string]string, flash string) error {
	data, err := h.formPage(c, f, f.Genres, errs, flash)
	if err != nil {
		return err
	}
	page := "forms/new_artist"
	if id != 0 {
		page = "forms/edit_artist"
		data["id"] = id
	}
	return c.Render(http.StatusBadRequest, page, data)
}
