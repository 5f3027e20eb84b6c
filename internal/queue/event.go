// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import "time"

// EventsQueue is the durable queue both services publish to.
const EventsQueue = "stagebook.events"

// Event types.
const (
    VenueCreated    = "venue.created"
    VenueUpdated    = "venue.updated"
    VenueDeleted    = "venue.deleted"
    ArtistCreated   = "artist.created"
    ArtistUpdated   = "artist.updated"
    ArtistDeleted   = "artist.deleted"
    ShowCreated     = "show.created"
    QuestionCreated = "question.created"
    QuestionDeleted = "question.deleted"
)

// Event is published after a mutation commits.  It carries enough to
// write an audit line without querying the primary database.
type Event struct {
    Type       string    `json:"type"`
    Service    string    `json:"service"`
    EntityID   uint64    `json:"entity_id,omitempty"`
    Name       string    `json:"name,omitempty"`
    ArtistID   uint64    `json:"artist_id,omitempty"` // show.created only; EntityID is the venue
    OccurredAt time.Time `json:"occurred_at"`
}
