package config

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoad_MySQLRequiresConnectionVars(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")

	_, err := Load("5000")
	if err == nil {
		t.Fatal("expected error for missing mysql settings")
	}
	for _, key := range []string{"DB_USER", "DB_HOST", "DB_NAME"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not mention %s", err, key)
		}
	}
}

func TestLoad_MySQLDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_USER", "fyyur")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "fyyur")
	t.Setenv("DB_PORT", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load("5000")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want default 5000", cfg.Port)
	}
	if cfg.DB.Port != "3306" {
		t.Errorf("DB.Port = %q, want 3306", cfg.DB.Port)
	}
	if !cfg.DB.AutoMigrate {
		t.Error("AutoMigrate should default to true")
	}
}

func TestLoad_SQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/trivia.db")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, http://example.com,")
	t.Setenv("EVENTS_ENABLED", "yes")

	cfg, err := Load("5001")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Driver != DriverSQLite || cfg.DB.SQLitePath != "/tmp/trivia.db" {
		t.Errorf("unexpected db config: %+v", cfg.DB)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if !cfg.EventsEnabled {
		t.Error("EventsEnabled should be true")
	}
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	if _, err := Load("5000"); err == nil || !strings.Contains(err.Error(), "oracle") {
		t.Fatalf("expected unsupported driver error, got %v", err)
	}
}

func TestLoadRateLimitConfig_Normalizes(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig("fyyur")
	if cfg.Capacity != 1 {
		t.Errorf("Capacity = %d, want 1", cfg.Capacity)
	}
	if cfg.TTL != 10*time.Second {
		t.Errorf("TTL = %v, want 10s", cfg.TTL)
	}
	if cfg.Prefix != "rl:fyyur" {
		t.Errorf("Prefix = %q", cfg.Prefix)
	}
	if !cfg.Exempt["/healthz"] || !cfg.Exempt["/metrics"] {
		t.Errorf("Exempt = %v", cfg.Exempt)
	}
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "bogus")
	t.Setenv("CACHE_PREFIX", "")

	cfg := LoadCacheConfig("trivia")
	if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] {
		t.Errorf("Methods = %v", cfg.Methods)
	}
	if cfg.TTL != 30*time.Second {
		t.Errorf("TTL = %v, want 30s fallback", cfg.TTL)
	}
	if cfg.Prefix != "cache:trivia" {
		t.Errorf("Prefix = %q, want cache:trivia", cfg.Prefix)
	}
}

func TestRedisOptions(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_TLS", "true")

	opts, err := RedisOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Addr != "cache:6380" || opts.DB != 2 || opts.TLSConfig == nil {
		t.Errorf("options = %+v", opts)
	}

	t.Setenv("REDIS_URL", "redis://:pw@example:6390/3")
	opts, err = RedisOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Addr != "example:6390" || opts.Password != "pw" || opts.DB != 3 {
		t.Errorf("url options = %+v", opts)
	}
}

func TestOpenRedis_Disabled(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "false")
	if _, err := OpenRedis(context.Background()); !errors.Is(err, ErrRedisDisabled) {
		t.Fatalf("err = %v, want ErrRedisDisabled", err)
	}
}
