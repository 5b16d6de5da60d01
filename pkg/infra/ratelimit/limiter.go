package ratelimit

import (
	"context"
	"time"
)

const (
	DefaultWindow           = 60 * time.Second
	DefaultMaxRequests      = 5
	DefaultCleanupThreshold = 10000
)

// Result describes the outcome of a single check.
type Result struct {
	Allowed    bool
	Count      int
	Limit      int
	RetryAfter time.Duration
}

// Limiter is a per-client sliding window. Check records the request when it
// is allowed and returns domain.ErrRateLimitExceeded when it is not.
//
//go:generate mockery --name=Limiter --dir=. --output=./mocks --filename=limiter_mock.go --case=underscore --with-expecter
type Limiter interface {
	Check(ctx context.Context, clientID string, now time.Time) (*Result, error)
}

type Options struct {
	Window           time.Duration
	MaxRequests      int
	CleanupThreshold int
}

func (o Options) withDefaults() Options {
	if o.Window <= 0 {
		o.Window = DefaultWindow
	}
	if o.MaxRequests <= 0 {
		o.MaxRequests = DefaultMaxRequests
	}
	if o.CleanupThreshold <= 0 {
		o.CleanupThreshold = DefaultCleanupThreshold
	}
	return o
}
