// Package ratelimit decides accept/reject for caller identities under a
// fixed-window policy. Two interchangeable backends exist: a Redis-backed
// shared counter (atomic across instances) and an in-process map used when
// Redis is not configured. Selection happens once at startup; nothing else
// branches on which backend is in use.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one rate-limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter gates requests by identity.
type Limiter interface {
	// Check records one request for identity and reports whether it is
	// within the window's quota.
	Check(ctx context.Context, identity string) (Result, error)
}

// Policy holds the window configuration shared by both backends.
type Policy struct {
	Limit  int
	Window time.Duration
}

// RetryAfterSeconds converts a reset timestamp into a Retry-After value,
// clamped to at least one second.
func RetryAfterSeconds(resetAt, now time.Time) int {
	secs := int(resetAt.Sub(now).Seconds())
	if secs < 1 {
		secs = 1
	}
	return secs
}
