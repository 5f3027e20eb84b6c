package middleware

import (
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/stagebook/stagebook/internal/config"
    "github.com/stagebook/stagebook/internal/logging"
    "github.com/stagebook/stagebook/internal/metrics"
)

// takeToken refills the bucket at KEYS[1] for the whole intervals elapsed
// since its last refill and then tries to take one token.
//
// ARGV: now_ms, capacity, refill_tokens, interval_ms, ttl_s
// returns {allowed (0|1), tokens_left, retry_after_ms}
var takeToken = redis.NewScript(`
local now, cap, add, every, ttl = tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3]), tonumber(ARGV[4]), tonumber(ARGV[5])
local b = redis.call('HMGET', KEYS[1], 't', 'at')
local tokens, at = tonumber(b[1]), tonumber(b[2])
if not tokens or not at then
  tokens, at = cap, now
end
local steps = math.floor(math.max(0, now - at) / every)
if steps > 0 then
  tokens = math.min(cap, tokens + steps * add)
  at = at + steps * every
end
local ok, wait = 0, 0
if tokens >= 1 then
  ok, tokens = 1, tokens - 1
else
  wait = math.max(0, every - (now - at))
end
redis.call('HSET', KEYS[1], 't', tokens, 'at', at)
redis.call('EXPIRE', KEYS[1], ttl)
return {ok, tokens, wait}
`)

// NewTokenBucket limits requests per key (see buildRateKey) with a Redis
// token bucket.  Routes listed in cfg.Exempt are never counted.  Rejected
// requests get a 429 HTTPError so each service's error handler shapes the
// body.  When Redis fails the request is let through.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passThrough
    }
    log := logging.WithComponent("ratelimit")
    limit := strconv.Itoa(cfg.Capacity)
    ttlSeconds := int64(cfg.TTL / time.Second)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if cfg.Exempt[c.Path()] {
                return next(c)
            }
            key := buildRateKey(cfg, c)
            res, err := takeToken.Run(c.Request().Context(), rdb, []string{key},
                time.Now().UnixMilli(), cfg.Capacity, cfg.RefillTokens,
                cfg.RefillInterval.Milliseconds(), ttlSeconds,
            ).Int64Slice()
            if err != nil || len(res) != 3 {
                log.Warn().Err(err).Str("key", key).Msg("rate limit check failed; allowing request")
                return next(c)
            }

            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", limit)
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(res[1], 10))
            if cfg.Debug {
                h.Set("X-RateLimit-Key", key)
            }
            if res[0] == 1 {
                return next(c)
            }

            retry := int(math.Ceil(float64(res[2]) / 1000))
            h.Set("Retry-After", strconv.Itoa(retry))
            metrics.RateLimited.Inc()
            log.Debug().Str("key", key).Int("retry_after_s", retry).Msg("request limited")
            return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
        }
    }
}

// buildRateKey joins cfg.Prefix with the parts KeyStrategy names: client
// ip, route pattern, or both.  Unknown strategies key on ip and route.
// The limiter runs ahead of route-level auth, so there is no token subject
// to key on here.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    route := c.Request().Method + " " + c.Path()

    parts := []string{cfg.Prefix}
    switch cfg.KeyStrategy {
    case "ip":
        parts = append(parts, "ip", ip)
    case "route":
        parts = append(parts, "route", route)
    default:
        parts = append(parts, "ip", ip, "route", route)
    }
    return strings.Join(parts, ":")
}
