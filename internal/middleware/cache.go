package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/hex"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/goccy/go-json"
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "github.com/rs/zerolog"

    "github.com/stagebook/stagebook/internal/config"
    "github.com/stagebook/stagebook/internal/logging"
    "github.com/stagebook/stagebook/internal/metrics"
)

// cachedResponse is what the cache stores per key.
type cachedResponse struct {
    Status int         `json:"status"`
    Header http.Header `json:"header"`
    Body   []byte      `json:"body"`
}

// bodyRecorder tees the response into a buffer of at most limit bytes.
// overflow is set once the body no longer fits.
type bodyRecorder struct {
    http.ResponseWriter
    status   int
    buf      bytes.Buffer
    limit    int
    overflow bool
}

func (r *bodyRecorder) WriteHeader(code int) {
    r.status = code
    r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
    if !r.overflow {
        if r.limit > 0 && r.buf.Len()+len(b) > r.limit {
            r.overflow = true
            r.buf.Reset()
        } else {
            r.buf.Write(b)
        }
    }
    return r.ResponseWriter.Write(b)
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

type responseCache struct {
    cfg config.CacheConfig
    rdb *redis.Client
    ttl time.Duration
    log zerolog.Logger
}

// key hashes the request path (and query, unless KeyStrategy is "route")
// under cfg.Prefix so NewCacheInvalidator can find it again.
func (rc *responseCache) key(c echo.Context) string {
    u := c.Request().URL
    raw := u.Path
    if rc.cfg.KeyStrategy != "route" {
        raw += "?" + u.RawQuery
    }
    sum := sha1.Sum([]byte(raw))
    return rc.cfg.Prefix + ":" + hex.EncodeToString(sum[:])
}

func (rc *responseCache) lookup(ctx context.Context, key string) (*cachedResponse, bool) {
    bs, err := rc.rdb.Get(ctx, key).Bytes()
    if err != nil {
        if !errors.Is(err, redis.Nil) {
            rc.log.Warn().Err(err).Msg("cache read failed")
        }
        return nil, false
    }
    var cr cachedResponse
    if err := json.Unmarshal(bs, &cr); err != nil {
        rc.log.Warn().Err(err).Str("key", key).Msg("dropping undecodable cache entry")
        return nil, false
    }
    return &cr, true
}

func (rc *responseCache) store(key string, cr cachedResponse) {
    bs, err := json.Marshal(cr)
    if err != nil {
        return
    }
    // the request context may already be cancelled once the body is written
    ctx, cancel := context.WithTimeout(context.Background(), time.Second)
    defer cancel()
    if err := rc.rdb.Set(ctx, key, bs, rc.ttl).Err(); err != nil {
        rc.log.Warn().Err(err).Msg("cache write failed")
    }
}

func replay(c echo.Context, cr *cachedResponse) error {
    h := c.Response().Header()
    for k, vals := range cr.Header {
        if strings.EqualFold(k, echo.HeaderContentLength) {
            continue
        }
        for _, v := range vals {
            h.Add(k, v)
        }
    }
    h.Set("X-Cache", "HIT")
    c.Response().WriteHeader(cr.Status)
    _, err := c.Response().Write(cr.Body)
    return err
}

// NewRedisCache serves repeated reads from Redis.  Only complete 200
// responses of the configured methods are stored; every response carries
// X-Cache: HIT or MISS.  Without a client it does nothing.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passThrough
    }
    rc := &responseCache{cfg: cfg, rdb: rdb, ttl: cfg.TTL, log: logging.WithComponent("cache")}
    if rc.ttl <= 0 {
        rc.ttl = 30 * time.Second
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[c.Request().Method] {
                return next(c)
            }
            key := rc.key(c)
            if cr, ok := rc.lookup(c.Request().Context(), key); ok {
                metrics.RecordCacheLookup(true)
                return replay(c, cr)
            }
            metrics.RecordCacheLookup(false)

            rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
            c.Response().Writer = rec
            c.Response().Header().Set("X-Cache", "MISS")
            if err := next(c); err != nil {
                return err
            }
            if rec.status != http.StatusOK || rec.overflow {
                return nil
            }
            hdr := c.Response().Header().Clone()
            hdr.Del("X-Cache")
            rc.store(key, cachedResponse{Status: rec.status, Header: hdr, Body: rec.buf.Bytes()})
            return nil
        }
    }
}

// NewCacheInvalidator returns a function that deletes every entry under
// prefix.  Handlers call it after a committed mutation.  A nil client
// yields a no-op.
func NewCacheInvalidator(rdb *redis.Client, prefix string) func(ctx context.Context) error {
    if rdb == nil {
        return func(context.Context) error { return nil }
    }
    return func(ctx context.Context) error {
        iter := rdb.Scan(ctx, 0, prefix+":*", 100).Iterator()
        var keys []string
        for iter.Next(ctx) {
            keys = append(keys, iter.Val())
        }
        if err := iter.Err(); err != nil {
            return err
        }
        if len(keys) > 0 {
            if err := rdb.Del(ctx, keys...).Err(); err != nil {
                return err
            }
        }
        metrics.CacheInvalidations.Inc()
        return nil
    }
}
