package config

import (
    "context"
    "crypto/tls"
    "errors"
    "fmt"
    "net"
    "os"
    "time"

    "github.com/redis/go-redis/v9"
)

// ErrRedisDisabled is returned by OpenRedis when REDIS_ENABLED is false.
var ErrRedisDisabled = errors.New("redis disabled")

// RedisOptions builds client options from the environment.  REDIS_URL
// (redis:// or rediss://) wins; otherwise REDIS_ADDR or REDIS_HOST and
// REDIS_PORT, REDIS_PASSWORD, REDIS_DB and REDIS_TLS are used.
func RedisOptions() (*redis.Options, error) {
    if raw := os.Getenv("REDIS_URL"); raw != "" {
        opts, err := redis.ParseURL(raw)
        if err != nil {
            return nil, fmt.Errorf("parse REDIS_URL: %w", err)
        }
        return opts, nil
    }

    addr := envStr("REDIS_ADDR", "localhost:6379")
    if host := os.Getenv("REDIS_HOST"); host != "" {
        addr = net.JoinHostPort(host, envStr("REDIS_PORT", "6379"))
    }
    opts := &redis.Options{
        Addr:     addr,
        Password: os.Getenv("REDIS_PASSWORD"),
        DB:       envInt("REDIS_DB", 0),
    }
    if envBool("REDIS_TLS", false) {
        opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
    }
    return opts, nil
}

// OpenRedis connects to the cache store and pings it.  Callers treat any
// error as "run without Redis": the cache and the rate limiter then pass
// requests straight through.
func OpenRedis(ctx context.Context) (*redis.Client, error) {
    if !envBool("REDIS_ENABLED", true) {
        return nil, ErrRedisDisabled
    }
    opts, err := RedisOptions()
    if err != nil {
        return nil, err
    }
    client := redis.NewClient(opts)

    pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
    defer cancel()
    if err := client.Ping(pingCtx).Err(); err != nil {
        _ = client.Close()
        return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
    }
    return client, nil
}
