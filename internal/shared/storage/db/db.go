package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"resume-ats/internal/shared/telemetry"
)

const defaultPingTimeout = 5 * time.Second

// Options controls database pool and connectivity behavior.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// Profile names the kind of process a pool is sized for.
type Profile int

const (
	ProfileServer Profile = iota
	ProfileLambda
	ProfileMigrate
)

// Options returns the pool defaults for the profile.
func (p Profile) Options() Options {
	switch p {
	case ProfileLambda:
		// Many concurrent sandboxes share one Postgres.
		return Options{
			MaxOpenConns:    2,
			MaxIdleConns:    1,
			ConnMaxIdleTime: 30 * time.Second,
			ConnMaxLifetime: 15 * time.Minute,
			PingTimeout:     3 * time.Second,
		}
	case ProfileMigrate:
		return Options{
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxIdleTime: 2 * time.Minute,
			ConnMaxLifetime: time.Hour,
			PingTimeout:     defaultPingTimeout,
		}
	default:
		return Options{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxIdleTime: 2 * time.Minute,
			ConnMaxLifetime: time.Hour,
			PingTimeout:     defaultPingTimeout,
		}
	}
}

// IsLambdaRuntime reports whether the process runs inside AWS Lambda.
func IsLambdaRuntime() bool {
	return strings.TrimSpace(os.Getenv("AWS_LAMBDA_FUNCTION_NAME")) != ""
}

type envOverride struct {
	key   string
	apply func(o *Options, raw string) error
}

var envOverrides = []envOverride{
	{"DB_MAX_OPEN_CONNS", intSetter(func(o *Options) *int { return &o.MaxOpenConns })},
	{"DB_MAX_IDLE_CONNS", intSetter(func(o *Options) *int { return &o.MaxIdleConns })},
	{"DB_CONN_MAX_LIFETIME", durationSetter(func(o *Options) *time.Duration { return &o.ConnMaxLifetime })},
	{"DB_CONN_MAX_IDLE_TIME", durationSetter(func(o *Options) *time.Duration { return &o.ConnMaxIdleTime })},
	{"DB_PING_TIMEOUT", durationSetter(func(o *Options) *time.Duration { return &o.PingTimeout })},
}

// OptionsFromEnv applies DB_* overrides on top of base. Unparseable values
// are logged and skipped.
func OptionsFromEnv(base Options) Options {
	opts := base
	for _, ov := range envOverrides {
		raw := strings.TrimSpace(os.Getenv(ov.key))
		if raw == "" {
			continue
		}
		if err := ov.apply(&opts, raw); err != nil {
			telemetry.Warn("db.invalid_env", map[string]any{"key": ov.key, "value": raw, "err": err})
		}
	}
	return opts
}

func intSetter(field func(*Options) *int) func(*Options, string) error {
	return func(o *Options, raw string) error {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		*field(o) = n
		return nil
	}
}

func durationSetter(field func(*Options) *time.Duration) func(*Options, string) error {
	return func(o *Options, raw string) error {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		*field(o) = d
		return nil
	}
}

// openDB is swapped in tests.
var openDB = sql.Open

// Connect opens a Postgres pool for databaseURL and pings it.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	pool, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	configurePool(pool, opts)

	if err := pingWithin(ctx, pool, opts.PingTimeout); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	logPoolStats(pool, "db.connected")
	return pool, nil
}

func configurePool(pool *sql.DB, opts Options) {
	maxOpen, maxIdle, lifetime := opts.MaxOpenConns, opts.MaxIdleConns, opts.ConnMaxLifetime
	if maxOpen <= 0 {
		maxOpen = 10
	}
	if maxIdle <= 0 {
		maxIdle = 5
	}
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	pool.SetMaxOpenConns(maxOpen)
	pool.SetMaxIdleConns(maxIdle)
	pool.SetConnMaxLifetime(lifetime)
	if opts.ConnMaxIdleTime > 0 {
		pool.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}
}

func pingWithin(ctx context.Context, pool *sql.DB, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return pool.PingContext(pingCtx)
}

// sharedPool holds one *sql.DB per process. ready is non-nil while a
// connect is in flight; waiters block on it and then re-check.
type sharedPool struct {
	mu    sync.Mutex
	db    *sql.DB
	ready chan struct{}
}

var shared sharedPool

// GetSingleton returns the process-wide Postgres pool, reused across warm
// Lambda invocations. A failed connect is retried by the next caller.
func GetSingleton(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	return shared.get(ctx, func(ctx context.Context) (*sql.DB, error) {
		return Connect(ctx, databaseURL, opts)
	})
}

func (p *sharedPool) get(ctx context.Context, connect func(context.Context) (*sql.DB, error)) (*sql.DB, error) {
	for {
		p.mu.Lock()
		if p.db != nil {
			pool := p.db
			p.mu.Unlock()
			return pool, nil
		}
		if wait := p.ready; wait != nil {
			p.mu.Unlock()
			select {
			case <-wait:
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		done := make(chan struct{})
		p.ready = done
		p.mu.Unlock()

		pool, err := connect(ctx)

		p.mu.Lock()
		if err == nil {
			p.db = pool
		}
		p.ready = nil
		p.mu.Unlock()
		close(done)

		if err != nil {
			return nil, err
		}
		telemetry.Info("db.shared_pool_ready", nil)
		return pool, nil
	}
}

func logPoolStats(pool *sql.DB, msg string) {
	stats := pool.Stats()
	telemetry.Info(msg, map[string]any{
		"open":     stats.OpenConnections,
		"in_use":   stats.InUse,
		"idle":     stats.Idle,
		"max_open": stats.MaxOpenConnections,
	})
}
