// Package handler holds the echo handlers of the listing site and the
// trivia API together with their error handlers.
package handler

import (
    "context"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"

    "github.com/stagebook/stagebook/internal/queue"
)

// dbTimeout bounds every repository call made by a handler.
const dbTimeout = 5 * time.Second

// Publisher sends domain events; *service.EventPublisher implements it.
type Publisher interface {
    Publish(ctx context.Context, ev queue.Event) error
}

// Invalidator drops cached responses after a committed mutation.
type Invalidator func(ctx context.Context) error

// Hooks run after a mutation commits.  Both fields are optional.
type Hooks struct {
    Events     Publisher
    Invalidate Invalidator
    Log        zerolog.Logger
}

// committed clears the response cache and publishes ev in the background.
// Neither step can fail the request that triggered it.
func (h Hooks) committed(ctx context.Context, ev queue.Event) {
    if h.Invalidate != nil {
        if err := h.Invalidate(ctx); err != nil {
            h.Log.Warn().Err(err).Str("event", ev.Type).Msg("cache invalidation failed")
        }
    }
    if h.Events == nil {
        return
    }
    go func() {
        pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if err := h.Events.Publish(pctx, ev); err != nil {
            h.Log.Warn().Err(err).Str("event", ev.Type).Msg("event publish failed")
        }
    }()
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}

func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), dbTimeout)
}
