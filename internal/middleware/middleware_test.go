package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/stagebook/stagebook/internal/config"
	"github.com/stagebook/stagebook/internal/utils"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func do(e *echo.Echo, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRedisCache_MissThenHit(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{http.MethodGet: true},
		TTL:         time.Minute,
		KeyStrategy: "route_query",
		Prefix:      "trivia",
	}

	calls := 0
	e := echo.New()
	e.Use(NewRedisCache(cfg, rdb))
	e.GET("/categories", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"success": true, "calls": calls})
	})
	e.POST("/categories", func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusCreated)
	})

	first := do(e, http.MethodGet, "/categories", nil)
	if first.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("first X-Cache = %q", first.Header().Get("X-Cache"))
	}
	second := do(e, http.MethodGet, "/categories", nil)
	if second.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("second X-Cache = %q", second.Header().Get("X-Cache"))
	}
	if calls != 1 {
		t.Errorf("handler ran %d times, want 1", calls)
	}
	if second.Body.String() != first.Body.String() {
		t.Errorf("cached body %q != %q", second.Body.String(), first.Body.String())
	}
	if ct := second.Header().Get(echo.HeaderContentType); ct != first.Header().Get(echo.HeaderContentType) {
		t.Errorf("cached content type = %q", ct)
	}

	do(e, http.MethodPost, "/categories", nil)
	do(e, http.MethodPost, "/categories", nil)
	if calls != 3 {
		t.Errorf("POST should bypass the cache; calls = %d", calls)
	}
}

func TestRedisCache_SkipsErrors(t *testing.T) {
	mr, rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{http.MethodGet: true}, TTL: time.Minute, Prefix: "trivia"}

	e := echo.New()
	e.Use(NewRedisCache(cfg, rdb))
	e.GET("/questions", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false})
	})
	do(e, http.MethodGet, "/questions?page=99", nil)
	if keys := mr.Keys(); len(keys) != 0 {
		t.Errorf("404 response was cached: %v", keys)
	}
}

func TestRedisCache_KeysIncludeQuery(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{http.MethodGet: true}, TTL: time.Minute, Prefix: "trivia"}

	e := echo.New()
	e.Use(NewRedisCache(cfg, rdb))
	e.GET("/questions", func(c echo.Context) error {
		return c.String(http.StatusOK, "page "+c.QueryParam("page"))
	})

	do(e, http.MethodGet, "/questions?page=1", nil)
	rec := do(e, http.MethodGet, "/questions?page=2", nil)
	if rec.Header().Get("X-Cache") != "MISS" || rec.Body.String() != "page 2" {
		t.Errorf("page 2 served from page 1 entry: %q %q", rec.Header().Get("X-Cache"), rec.Body.String())
	}
}

func TestRedisCache_SkipsOversizedBodies(t *testing.T) {
	mr, rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{http.MethodGet: true}, TTL: time.Minute, Prefix: "fyyur", MaxBodyBytes: 4}

	e := echo.New()
	e.Use(NewRedisCache(cfg, rdb))
	e.GET("/venues", func(c echo.Context) error { return c.String(http.StatusOK, "far too long") })

	if rec := do(e, http.MethodGet, "/venues", nil); rec.Body.String() != "far too long" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Errorf("oversized body cached: %v", keys)
	}
}

func TestCacheInvalidator(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()
	for _, k := range []string{"trivia:a", "trivia:b", "fyyur:c"} {
		if err := mr.Set(k, "x"); err != nil {
			t.Fatal(err)
		}
	}

	if err := NewCacheInvalidator(rdb, "trivia")(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if mr.Exists("trivia:a") || mr.Exists("trivia:b") {
		t.Error("trivia keys survived")
	}
	if !mr.Exists("fyyur:c") {
		t.Error("other prefix was dropped")
	}

	if err := NewCacheInvalidator(nil, "trivia")(ctx); err != nil {
		t.Errorf("nil client: %v", err)
	}
}

func TestTokenBucket_Blocks(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            2 * time.Hour,
		KeyStrategy:    "ip_route",
		Prefix:         "rl",
	}

	e := echo.New()
	e.Use(NewTokenBucket(cfg, rdb))
	e.GET("/quizzes", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for i := 0; i < 2; i++ {
		if rec := do(e, http.MethodGet, "/quizzes", nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i+1, rec.Code)
		}
	}
	rec := do(e, http.MethodGet, "/quizzes", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: status %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("remaining = %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestTokenBucket_ExemptRoutes(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       1,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            2 * time.Hour,
		KeyStrategy:    "ip",
		Prefix:         "rl:trivia",
		Exempt:         map[string]bool{"/healthz": true},
	}
	e := echo.New()
	e.Use(NewTokenBucket(cfg, rdb))
	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/categories", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for i := 0; i < 3; i++ {
		if rec := do(e, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
			t.Fatalf("healthz %d limited: %d", i+1, rec.Code)
		}
	}
	if rec := do(e, http.MethodGet, "/categories", nil); rec.Code != http.StatusOK {
		t.Fatalf("first request: %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/categories", nil); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: %d, want 429", rec.Code)
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/quizzes", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer whatever")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/quizzes")

	tests := []struct {
		strategy string
		want     string
	}{
		{"ip", "rl:ip:192.0.2.1"},
		{"route", "rl:route:POST /quizzes"},
		{"ip_route", "rl:ip:192.0.2.1:route:POST /quizzes"},
		{"subject", "rl:ip:192.0.2.1:route:POST /quizzes"},
		{"", "rl:ip:192.0.2.1:route:POST /quizzes"},
	}
	for _, tt := range tests {
		got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: tt.strategy}, c)
		if got != tt.want {
			t.Errorf("%q: key = %q, want %q", tt.strategy, got, tt.want)
		}
	}
}

func TestTokenBucket_DisabledWithoutRedis(t *testing.T) {
	e := echo.New()
	e.Use(NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	for i := 0; i < 3; i++ {
		if rec := do(e, http.MethodGet, "/", nil); rec.Code != http.StatusOK {
			t.Fatalf("status %d", rec.Code)
		}
	}
}

func TestAdminGate(t *testing.T) {
	const secret = "gate-secret"
	admin, err := utils.NewAccessToken(secret, "ops", utils.RoleAdmin, 5)
	if err != nil {
		t.Fatal(err)
	}
	viewer, err := utils.NewAccessToken(secret, "guest", "VIEWER", 5)
	if err != nil {
		t.Fatal(err)
	}
	forged, err := utils.NewAccessToken("other", "ops", utils.RoleAdmin, 5)
	if err != nil {
		t.Fatal(err)
	}

	e := echo.New()
	e.DELETE("/questions/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, claimsOf(c).Subject)
	}, AdminGate(secret))

	tests := []struct {
		name   string
		auth   string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + forged.Token, http.StatusUnauthorized},
		{"wrong role", "Bearer " + viewer.Token, http.StatusForbidden},
		{"admin", "Bearer " + admin.Token, http.StatusOK},
	}
	for _, tt := range tests {
		h := http.Header{}
		if tt.auth != "" {
			h.Set(echo.HeaderAuthorization, tt.auth)
		}
		rec := do(e, http.MethodDelete, "/questions/1", h)
		if rec.Code != tt.status {
			t.Errorf("%s: status %d, want %d", tt.name, rec.Code, tt.status)
		}
		if tt.status == http.StatusOK && rec.Body.String() != "ops" {
			t.Errorf("%s: subject = %q", tt.name, rec.Body.String())
		}
	}

	open := echo.New()
	open.DELETE("/questions/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, AdminGate(""))
	if rec := do(open, http.MethodDelete, "/questions/1", nil); rec.Code != http.StatusOK {
		t.Errorf("disabled gate: status %d", rec.Code)
	}
}

func TestRequestLogger_RecordsHandlerError(t *testing.T) {
	e := echo.New()
	e.Use(RequestLogger())
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "unprocessable")
	})
	rec := do(e, http.MethodGet, "/boom", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status %d, want 422", rec.Code)
	}
}
