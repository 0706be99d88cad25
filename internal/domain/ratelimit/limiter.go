// Package ratelimit implements the process-local submission limiter.
//
// Each key owns one Record counting submissions in a fixed window that
// starts at the key's first submission. State lives only in memory and is
// never shared between processes, so every instance enforces its own budget.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"

	"github.com/galactis/web/pkg/logger"
	"github.com/galactis/web/pkg/metrics"
)

// Defaults for the submission policy.
const (
	DefaultLimit  = 10
	DefaultWindow = time.Hour
)

// Record is one key's current counting window.
type Record struct {
	Count     int
	ResetTime time.Time
}

// expired reports whether now is past the window end. now == ResetTime is
// still inside the window.
func (r Record) expired(now time.Time) bool {
	return now.After(r.ResetTime)
}

// Limiter holds one Record per key. The check-and-increment in Allow runs
// under a single mutex so concurrent handlers cannot exceed the limit.
type Limiter struct {
	mu      sync.Mutex
	records map[string]Record

	limit  int
	window time.Duration
	clock  clock.Clock
	logger logger.Logger
}

// New creates a Limiter with configuration options.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		records: make(map[string]Record),
		limit:   DefaultLimit,
		window:  DefaultWindow,
		clock:   clock.NewClock(),
		logger:  logger.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow records one submission attempt for key and reports whether it is
// within budget. A denied attempt leaves the record untouched.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[key]
	if !ok || rec.expired(now) {
		l.records[key] = Record{Count: 1, ResetTime: now.Add(l.window)}
		metrics.UpdateRateLimitRecords(len(l.records))
		return true
	}

	if rec.Count >= l.limit {
		l.logger.Debug(ctx, "rate limit exceeded",
			logger.String("key", key),
			logger.Int("count", rec.Count),
			logger.Any("reset_time", rec.ResetTime),
		)
		return false
	}

	rec.Count++
	l.records[key] = rec
	return true
}

// Sweep deletes every record whose window has ended and returns how many
// were removed. It never affects Allow decisions: an expired record is
// replaced on the next attempt whether or not it was swept.
func (l *Limiter) Sweep(ctx context.Context) int {
	now := l.clock.Now()

	l.mu.Lock()
	removed := 0
	for key, rec := range l.records {
		if rec.expired(now) {
			delete(l.records, key)
			removed++
		}
	}
	remaining := len(l.records)
	l.mu.Unlock()

	metrics.UpdateRateLimitRecords(remaining)
	if removed > 0 {
		metrics.RecordRateLimitSwept(removed)
		l.logger.Debug(ctx, "swept expired rate-limit records",
			logger.Int("removed", removed),
			logger.Int("remaining", remaining),
		)
	}
	return removed
}

// Run sweeps once per window until ctx is canceled.
func (l *Limiter) Run(ctx context.Context) {
	ticker := l.clock.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			l.Sweep(ctx)
		}
	}
}

// Get returns a copy of the record held for key.
func (l *Limiter) Get(key string) (Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.records[key]
	return rec, ok
}

// Len returns the number of records currently held, expired or not.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Limit returns the per-window submission budget.
func (l *Limiter) Limit() int { return l.limit }

// Window returns the window length.
func (l *Limiter) Window() time.Duration { return l.window }

// Scope returns a view of l whose keys are prefixed with namespace, giving
// each form its own budget on shared policy constants.
func (l *Limiter) Scope(namespace string) Scope {
	return Scope{limiter: l, namespace: namespace}
}

// Scope is a namespaced view of a Limiter.
type Scope struct {
	limiter   *Limiter
	namespace string
}

// Allow is Limiter.Allow on the namespaced key.
func (s Scope) Allow(ctx context.Context, identifier string) bool {
	return s.limiter.Allow(ctx, s.Key(identifier))
}

// Key returns the limiter key used for identifier.
func (s Scope) Key(identifier string) string {
	return s.namespace + ":" + identifier
}

// Namespace returns the scope's key prefix.
func (s Scope) Namespace() string { return s.namespace }
