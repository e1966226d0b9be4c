package rate

import (
	"context"
	"time"
)

// Decision is the outcome of one recorded attempt.
type Decision struct {
	// Allowed reports whether the attempt is within budget.
	Allowed bool
	// Remaining is the number of further attempts the key may make in the
	// current window. Zero when blocked.
	Remaining int
	// ResetAt is when the current window expires and the key unblocks.
	ResetAt time.Time
}

// Store holds per-key window state. Implementations must treat Hit as the
// atomic record-and-read step: it counts the attempt and reports the updated
// counter together with the window expiry.
type Store interface {
	// Hit records one attempt for key, opening a new window of the given
	// length if none is active, and returns the attempt count inside the
	// current window and the window's expiry time.
	Hit(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
	// Clear removes all state for key. Clearing an absent key is a no-op.
	Clear(ctx context.Context, key string) error
	// Close releases background resources. The store is unusable afterwards.
	Close() error
}

// Limiter applies an attempt budget per key on top of a [Store].
type Limiter struct {
	store Store
	max   int
	win   time.Duration
}

// NewLimiter builds a limiter allowing max attempts per window for each key.
func NewLimiter(store Store, max int, window time.Duration) *Limiter {
	return &Limiter{store: store, max: max, win: window}
}

// Check records an attempt for key and reports whether it is within budget.
// The attempt is counted even when the answer is a block, so retrying against
// a closed window extends nothing but also forgives nothing.
func (l *Limiter) Check(ctx context.Context, key string) (Decision, error) {
	count, resetAt, err := l.store.Hit(ctx, key, l.win)
	if err != nil {
		return Decision{}, err
	}

	if count > l.max {
		return Decision{Allowed: false, Remaining: 0, ResetAt: resetAt}, nil
	}
	return Decision{Allowed: true, Remaining: l.max - count, ResetAt: resetAt}, nil
}

// Clear forgets all attempts for key. Called after a successful attempt so
// earlier failures stop counting against the caller.
func (l *Limiter) Clear(ctx context.Context, key string) error {
	return l.store.Clear(ctx, key)
}

// Close shuts down the underlying store.
func (l *Limiter) Close() error {
	return l.store.Close()
}
