package health

import (
	"context"
	"time"
)

// Pinger is anything that can report reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a plain ping function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// Status is the body of the health endpoint.
type Status struct {
	Status   string `json:"status"`
	Database bool   `json:"database"`
	Cache    bool   `json:"cache"`
}

// Service reports dependency health. Nil dependencies report false; the
// service itself stays healthy because both are optional.
type Service struct {
	DB      Pinger
	Cache   Pinger
	Timeout time.Duration
}

// NewService constructs a health service.
func NewService(db, cache Pinger) *Service {
	return &Service{DB: db, Cache: cache, Timeout: 2 * time.Second}
}

// Status pings each dependency.
func (s *Service) Status(ctx context.Context) Status {
	return Status{
		Status:   "healthy",
		Database: s.ping(ctx, s.DB),
		Cache:    s.ping(ctx, s.Cache),
	}
}

func (s *Service) ping(ctx context.Context, p Pinger) bool {
	if p == nil {
		return false
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.PingContext(ctx) == nil
}
