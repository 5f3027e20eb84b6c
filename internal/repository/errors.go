// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrVenueNotFound becomes a 404 page on the listing site while
// ErrQuestionNotFound on delete becomes a 422 from the trivia API.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrVenueNotFound    = errors.New("venue not found")
	ErrArtistNotFound   = errors.New("artist not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidReference is returned when a row points at a genre, artist
	// or venue that does not exist.
	ErrInvalidReference = errors.New("invalid reference")
)

// notFound maps gorm's record-not-found onto the repository sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
