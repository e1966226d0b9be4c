package rate

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	count       int
	windowStart time.Time
	lastSeen    time.Time
}

// MemoryStore keeps window state in process memory. It is the default store
// for single-instance deployments; counters are lost on restart, which only
// ever errs in the caller's favor.
//
// A background sweep drops entries that have been idle longer than the
// retention period so abandoned keys cannot grow the map without bound.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry

	stop chan struct{}
	done chan struct{}

	// now is swapped in tests to drive window expiry deterministically.
	now func() time.Time
}

const (
	defaultSweepInterval = 5 * time.Minute
	defaultRetention     = time.Hour
)

// NewMemoryStore creates a memory store and starts its sweep goroutine.
// Non-positive arguments fall back to 5 minutes and 1 hour. Close must be
// called to stop the sweep.
func NewMemoryStore(sweepInterval, retention time.Duration) *MemoryStore {
	if sweepInterval <= 0 {
		sweepInterval = defaultSweepInterval
	}
	if retention <= 0 {
		retention = defaultRetention
	}

	s := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go s.sweepLoop(sweepInterval, retention)
	return s
}

// Hit implements [Store].
func (s *MemoryStore) Hit(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || now.Sub(e.windowStart) >= window {
		e = &memoryEntry{count: 1, windowStart: now}
		s.entries[key] = e
	} else {
		e.count++
	}
	e.lastSeen = now

	return e.count, e.windowStart.Add(window), nil
}

// Clear implements [Store].
func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Close stops the sweep goroutine and waits for it to exit. Safe to call once.
func (s *MemoryStore) Close() error {
	close(s.stop)
	<-s.done
	return nil
}

func (s *MemoryStore) sweepLoop(interval, retention time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep(retention)
		}
	}
}

func (s *MemoryStore) sweep(retention time.Duration) {
	cutoff := s.now().Add(-retention)

	s.mu.Lock()
	for key, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// size is a test hook; callers outside this package have no business counting
// entries.
func (s *MemoryStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
