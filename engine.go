package authgate

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rophpad/alx-polly/internal/audit"
	"github.com/Rophpad/alx-polly/internal/rate"
	"github.com/Rophpad/alx-polly/provider"
)

// Engine orchestrates the authentication flows: it rate-limits, validates and
// sanitizes input, calls the identity provider, and translates every failure
// into the closed error vocabulary of this package.
//
// Engine instances are built once via [Builder] and treated as immutable;
// all methods are safe for concurrent use.
type Engine struct {
	config   Config
	provider provider.Client
	verifier *provider.TokenVerifier

	loginLimiter    *rate.Limiter
	registerLimiter *rate.Limiter
	limitStore      rate.Store
	ownsLimitStore  bool

	audit   *audit.Dispatcher
	metrics *Metrics
	log     zerolog.Logger

	unknownBucketOnce sync.Once
}

// Close flushes the audit dispatcher and stops the rate limiter's background
// sweep. The engine must not be used afterwards.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
	if e.ownsLimitStore && e.limitStore != nil {
		if err := e.limitStore.Close(); err != nil {
			e.log.Warn().Err(err).Msg("rate limit store close failed")
		}
	}
}

// AuditDropped reports how many audit events were discarded because the
// dispatcher buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot copies the engine's counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// observeProvider wraps a provider call with the latency histogram.
func (e *Engine) observeProvider(f func() error) error {
	if e.metrics == nil || !e.metrics.LatencyEnabled() {
		return f()
	}
	start := time.Now()
	err := f()
	e.metrics.Observe(MetricProviderLatency, time.Since(start))
	return err
}

// rateIdentifier resolves the caller identity the limiter keys on. A request
// whose origin cannot be determined lands in the shared "unknown" bucket,
// which is logged once per process because it means every such caller shares
// one budget.
func (e *Engine) rateIdentifier(ctx context.Context) string {
	if ip := clientIPFromContext(ctx); ip != "" {
		return ip
	}
	e.unknownBucketOnce.Do(func() {
		e.log.Warn().Msg("client IP missing from context; rate limiting degraded to a shared bucket")
	})
	return "unknown"
}

// checkLimiter records an attempt against the given limiter and key. Store
// failure fails open: a broken limiter backend must not lock every caller out
// of authentication, so the attempt is allowed and the failure logged.
func (e *Engine) checkLimiter(ctx context.Context, limiter *rate.Limiter, key string) (rate.Decision, bool) {
	if limiter == nil {
		return rate.Decision{Allowed: true}, true
	}
	d, err := limiter.Check(ctx, key)
	if err != nil {
		e.log.Warn().Err(err).Str("key", key).Msg("rate limit check failed, allowing attempt")
		return rate.Decision{Allowed: true}, true
	}
	return d, d.Allowed
}

// clearLimiter forgets a key's attempts after success. Best-effort: a failure
// here must not undo an otherwise successful flow.
func (e *Engine) clearLimiter(ctx context.Context, limiter *rate.Limiter, key string) {
	if limiter == nil {
		return
	}
	if err := limiter.Clear(ctx, key); err != nil {
		e.log.Warn().Err(err).Str("key", key).Msg("rate limit clear failed")
	}
}
