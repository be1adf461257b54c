package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"resume-ats/internal/shared/telemetry"
)

// Cache stores JSON values under string keys with a TTL.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Ping(ctx context.Context) error
}

var ErrUnavailable = errors.New("cache unavailable")

// Redis is a Cache backed by redis. When the server cannot be reached at
// construction time every call becomes a miss.
type Redis struct {
	client *redis.Client

	warnedUnavailable atomic.Bool
}

// NewRedis parses a redis:// URL and pings the server. An empty URL or a
// failed ping yields a bypassing cache rather than an error.
func NewRedis(ctx context.Context, url string) *Redis {
	url = strings.TrimSpace(url)
	if url == "" {
		return &Redis{}
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		telemetry.Warn("cache.invalid_url", map[string]any{"err": err})
		return &Redis{}
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		telemetry.Warn("cache.unavailable", map[string]any{"addr": opts.Addr, "err": err})
		_ = client.Close()
		return &Redis{}
	}
	return NewRedisFromClient(client)
}

// NewRedisFromClient wraps an existing client without pinging it.
func NewRedisFromClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		telemetry.Warn("cache.unavailable", map[string]any{"err": err})
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

// Nop never stores anything.
type Nop struct{}

func (Nop) GetJSON(context.Context, string, any) (bool, error)        { return false, nil }
func (Nop) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (Nop) Ping(context.Context) error                                { return ErrUnavailable }

var (
	_ Cache = (*Redis)(nil)
	_ Cache = Nop{}
)
