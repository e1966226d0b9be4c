package authgate

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Rophpad/alx-polly/internal/audit"
	"github.com/Rophpad/alx-polly/internal/rate"
	"github.com/Rophpad/alx-polly/provider"
)

// Builder assembles an [Engine]. Zero or more With* calls, then Build; a
// builder is single-use.
type Builder struct {
	config    Config
	provider  provider.Client
	redis     redis.UniversalClient
	store     rate.Store
	logger    *zerolog.Logger
	auditSink AuditSink

	built bool
}

// New starts a builder with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithProvider injects the identity provider client. When omitted, Build
// constructs an HTTP client from Config.Provider.
func (b *Builder) WithProvider(p provider.Client) *Builder {
	b.provider = p
	return b
}

// WithRedis shares rate-limit counters across replicas through the given
// Redis client. The client's lifecycle stays with the caller.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithRateLimitStore injects a custom limiter store, overriding both the
// default in-memory store and WithRedis. The caller keeps ownership.
func (b *Builder) WithRateLimitStore(store rate.Store) *Builder {
	b.store = store
	return b
}

// WithLogger sets the operator log destination. Defaults to a no-op logger.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = &logger
	return b
}

// WithAuditSink sets the consumer for audit events.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and wires the engine together.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config

	// A caller-supplied provider client stands in for URL and key, which only
	// the HTTP client needs.
	if b.provider == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	} else if err := cfg.Limits.validate(); err != nil {
		return nil, err
	}

	engine := &Engine{
		config:   cfg,
		provider: b.provider,
		log:      zerolog.Nop(),
	}
	if b.logger != nil {
		engine.log = *b.logger
	}

	if engine.provider == nil {
		engine.provider = provider.NewHTTPClient(cfg.Provider.URL, cfg.Provider.APIKey, cfg.Provider.Timeout)
	}
	engine.verifier = provider.NewTokenVerifier(cfg.Provider.JWTSecret)

	switch {
	case b.store != nil:
		engine.limitStore = b.store
	case b.redis != nil:
		engine.limitStore = rate.NewRedisStore(b.redis, "")
	default:
		engine.limitStore = rate.NewMemoryStore(cfg.Limits.SweepInterval, cfg.Limits.Retention)
		engine.ownsLimitStore = true
	}

	engine.loginLimiter = rate.NewLimiter(engine.limitStore, cfg.Limits.LoginMaxAttempts, cfg.Limits.LoginWindow)
	engine.registerLimiter = rate.NewLimiter(engine.limitStore, cfg.Limits.RegisterMaxAttempts, cfg.Limits.RegisterWindow)

	engine.audit = audit.NewDispatcher(audit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return engine, nil
}
