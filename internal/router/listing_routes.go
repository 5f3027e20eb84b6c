package router

import (
	"github.com/labstack/echo/v4"

	"github.com/stagebook/stagebook/internal/handler"
)

// RegisterListing registers the listing site.  cache wraps the read-only
// pages; admin guards the delete endpoints.
func RegisterListing(e *echo.Echo, h *handler.ListingHandler, cache, admin echo.MiddlewareFunc) {
	e.GET("/", h.Home)

	// venues
	e.GET("/venues", h.ListVenues, cache)
	e.POST("/venues/search", h.SearchVenues)
	e.GET("/venues/create", h.NewVenueForm)
	e.POST("/venues/create", h.CreateVenue)
	e.GET("/venues/:id", h.ShowVenue, cache)
	e.GET("/venues/:id/edit", h.EditVenueForm)
	e.POST("/venues/:id/edit", h.UpdateVenue)
	e.DELETE("/venues/:id", h.DeleteVenue, admin)

	// artists
	e.GET("/artists", h.ListArtists, cache)
	e.POST("/artists/search", h.SearchArtists)
	e.GET("/artists/create", h.NewArtistForm)
	e.POST("/artists/create", h.CreateArtist)
	e.GET("/artists/:id", h.ShowArtist, cache)
	e.GET("/artists/:id/edit", h.EditArtistForm)
	e.POST("/artists/:id/edit", h.UpdateArtist)
	e.DELETE("/artists/:id", h.DeleteArtist, admin)

	// shows
	e.GET("/shows", h.ListShows, cache)
	e.GET("/shows/create", h.NewShowForm)
	e.POST("/shows/create", h.CreateShow)
}
