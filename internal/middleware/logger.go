package middleware

import (
    "time"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"

    "github.com/stagebook/stagebook/internal/logging"
    "github.com/stagebook/stagebook/internal/metrics"
)

// RequestLogger logs one line per request and records the HTTP metrics.
// Errors returned by handlers are passed to c.Error first so the logged
// status is the one the client sees.
func RequestLogger() echo.MiddlewareFunc {
    log := logging.WithComponent("http")
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            if err != nil {
                c.Error(err)
            }
            elapsed := time.Since(start)

            req, res := c.Request(), c.Response()
            route := c.Path()
            if route == "" {
                route = "unmatched"
            }
            metrics.RecordHTTPRequest(req.Method, route, res.Status, elapsed)

            var ev *zerolog.Event
            switch {
            case res.Status >= 500:
                ev = log.Error().Err(err)
            case res.Status >= 400:
                ev = log.Warn()
            default:
                ev = log.Info()
            }
            ev.Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
                Str("method", req.Method).
                Str("route", route).
                Str("path", req.URL.Path).
                Int("status", res.Status).
                Dur("latency", elapsed).
                Str("remote_ip", c.RealIP()).
                Msg("request")
            return nil
        }
    }
}
