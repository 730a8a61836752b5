// Package ratelimit implements fixed-window request limits keyed by client.
package ratelimit

import (
	"context"
	"time"
)

// Result describes the state of a key's window after one request was counted.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the time left until the window resets, never negative.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if d := r.ResetAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

type Limiter interface {
	// Allow counts one request for key. Implementations fail open: when the
	// backing store errors, the result is Allowed and the error is returned
	// for logging.
	Allow(ctx context.Context, key string) (Result, error)
}

func remaining(limit, count int) int {
	if count >= limit {
		return 0
	}
	return limit - count
}
