package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter keeps one counter per key for the current window.
// Expired windows are dropped lazily on the next hit and in bulk by Sweep.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int
	length  time.Duration
	now     func() time.Time
}

type window struct {
	start time.Time
	count int
}

func NewMemoryLimiter(maxRequests int, length time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*window),
		max:     maxRequests,
		length:  length,
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.start.Add(l.length)) {
		w = &window{start: now}
		l.windows[key] = w
	}
	w.count++

	return Result{
		Allowed:   w.count <= l.max,
		Limit:     l.max,
		Remaining: remaining(l.max, w.count),
		ResetAt:   w.start.Add(l.length),
	}, nil
}

// Sweep removes every expired window and returns how many were removed.
func (l *MemoryLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	var removed int
	for key, w := range l.windows {
		if !now.Before(w.start.Add(l.length)) {
			delete(l.windows, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
