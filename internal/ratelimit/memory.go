package ratelimit

import (
	"context"
	"sync"
	"time"
)

// maxEntries bounds the fallback map. Crossing it triggers a sweep of
// expired records; live records are never evicted.
const maxEntries = 1000

type record struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is the in-process fallback backend. Its state is
// per-process and non-persistent: in a multi-instance deployment each
// instance enforces the quota independently, so the effective global limit
// is limit*instances. The Redis backend is the production path.
type MemoryLimiter struct {
	mu      sync.Mutex
	policy  Policy
	records map[string]*record
	now     func() time.Time
}

// NewMemoryLimiter creates an in-memory limiter.
func NewMemoryLimiter(policy Policy) *MemoryLimiter {
	return &MemoryLimiter{
		policy:  policy,
		records: make(map[string]*record),
		now:     time.Now,
	}
}

// NewMemoryLimiterWithClock creates an in-memory limiter with an injected
// clock so tests can roll the window forward without sleeping.
func NewMemoryLimiterWithClock(policy Policy, now func() time.Time) *MemoryLimiter {
	l := NewMemoryLimiter(policy)
	l.now = now
	return l
}

func (l *MemoryLimiter) Check(_ context.Context, identity string) (Result, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[identity]
	if !ok || now.After(rec.resetAt) {
		// First request of a new window
		rec = &record{count: 1, resetAt: now.Add(l.policy.Window)}
		l.records[identity] = rec
		if len(l.records) > maxEntries {
			l.sweep(now)
		}
		return l.result(true, rec), nil
	}

	if rec.count >= l.policy.Limit {
		return l.result(false, rec), nil
	}

	rec.count++
	return l.result(true, rec), nil
}

func (l *MemoryLimiter) result(allowed bool, rec *record) Result {
	remaining := l.policy.Limit - rec.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   allowed,
		Limit:     l.policy.Limit,
		Remaining: remaining,
		ResetAt:   rec.resetAt,
	}
}

// sweep deletes expired records. Caller must hold l.mu.
func (l *MemoryLimiter) sweep(now time.Time) {
	for key, rec := range l.records {
		if now.After(rec.resetAt) {
			delete(l.records, key)
		}
	}
}

// Len reports the number of tracked identities.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
