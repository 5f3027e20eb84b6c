package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stagebook/stagebook/internal/model"
	"github.com/stagebook/stagebook/internal/queue"
	"github.com/stagebook/stagebook/internal/repository"
)

// ListShows renders upcoming shows.
func (h *ListingHandler) ListShows(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	shows, err := h.Shows.ListUpcoming(ctx, h.Now())
	if err != nil {
		return err
	}
	rows := make([]showRow, 0, len(shows))
	for _, s := range shows {
		rows = append(rows, rowOf(s))
	}
	return c.Render(http.StatusOK, "pages/shows", echo.Map{"shows": rows})
}

func (h *ListingHandler) showFormPage(c echo.Context, f showForm, errs map[string]string, flash ...string) (echo.Map, error) {
	ctx, cancel := requestCtx(c)
	defer cancel()
	artists, err := h.Artists.Choices(ctx)
	if err != nil {
		return nil, err
	}
	venues, err := h.Venues.Choices(ctx)
	if err != nil {
		return nil, err
	}
	if errs == nil {
		errs = map[string]string{}
	}
	return echo.Map{"form": f, "errors": errs, "artists": artists, "venues": venues, "flash": flash}, nil
}

// NewShowForm renders the show form with artist and venue choices.
func (h *ListingHandler) NewShowForm(c echo.Context) error {
	data, err := h.showFormPage(c, showForm{}, nil)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "forms/new_show", data)
}

// CreateShow books an artist at a venue.  Both must exist.
func (h *ListingHandler) CreateShow(c echo.Context) error {
	var f showForm
	errs := map[string]string{}
	if err := c.Bind(&f); err != nil {
		errs["form"] = "invalid form submission"
	} else if msgs := formErrors(f); msgs != nil {
		errs = msgs
	}
	start, err := f.startTime()
	if err != nil && errs["start_time"] == "" {
		errs["start_time"] = "use the format YYYY-MM-DD HH:MM:SS"
	}
	if len(errs) > 0 {
		data, err := h.showFormPage(c, f, errs, "Failed to create show.")
		if err != nil {
			return err
		}
		return c.Render(http.StatusBadRequest, "forms/new_show", data)
	}

	s := model.Show{ArtistID: f.ArtistID, VenueID: f.VenueID, StartTime: start}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Shows.Create(ctx, &s); err != nil {
		if !errors.Is(err, repository.ErrInvalidReference) {
			h.Hooks.Log.Error().Err(err).Msg("create show failed")
		}
		return home(c, http.StatusUnprocessableEntity, "An error occurred. Show could not be listed.")
	}
	h.Hooks.committed(ctx, queue.Event{Type: queue.ShowCreated, EntityID: s.VenueID, ArtistID: s.ArtistID, Name: s.StartTime.Format(ShowTimeLayout)})
	return home(c, http.StatusOK, "Show was successfully listed!")
}
