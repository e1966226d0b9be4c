package authgate

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds engine tuning parameters. Instances are intended to be
// configured during initialization and then treated as immutable.
type Config struct {
	Provider ProviderConfig
	Limits   LimitsConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

// ProviderConfig locates the external identity provider. URL and APIKey are
// required at process start; a missing value is a startup failure, never a
// per-request error.
type ProviderConfig struct {
	// URL is the base URL of the identity provider's auth API.
	URL string
	// APIKey is the public (anon) API key sent with every provider call.
	APIKey string
	// JWTSecret optionally enables local verification of provider-issued
	// access tokens (HS256). When empty, principal resolution falls back to a
	// provider round trip.
	JWTSecret string
	// Timeout bounds every provider call so a slow identity provider cannot
	// stall the request gate.
	Timeout time.Duration
}

// LimitsConfig tunes the per-identifier attempt budgets. Registration is
// throttled harder than login because account creation is higher-value abuse.
type LimitsConfig struct {
	LoginMaxAttempts    int
	LoginWindow         time.Duration
	RegisterMaxAttempts int
	RegisterWindow      time.Duration

	// SweepInterval and Retention bound limiter memory: entries idle longer
	// than Retention are deleted by a background sweep every SweepInterval.
	SweepInterval time.Duration
	Retention     time.Duration
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled bool
	// EnableLatencyHistograms adds provider-call latency buckets on top of the
	// plain counters.
	EnableLatencyHistograms bool
}

// DefaultConfig returns the budgets the application ships with: 5 login
// attempts per 15 minutes and 3 registrations per hour per caller identity.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderConfig{
			Timeout: 10 * time.Second,
		},
		Limits: LimitsConfig{
			LoginMaxAttempts:    5,
			LoginWindow:         15 * time.Minute,
			RegisterMaxAttempts: 3,
			RegisterWindow:      60 * time.Minute,
			SweepInterval:       5 * time.Minute,
			Retention:           time.Hour,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if c.Provider.URL == "" {
		return errors.New("provider URL required")
	}
	if c.Provider.APIKey == "" {
		return errors.New("provider API key required")
	}
	if c.Provider.Timeout <= 0 {
		return errors.New("provider timeout must be positive")
	}
	return c.Limits.validate()
}

func (l LimitsConfig) validate() error {
	if l.LoginMaxAttempts <= 0 || l.LoginWindow <= 0 {
		return errors.New("login attempt budget must be positive")
	}
	if l.RegisterMaxAttempts <= 0 || l.RegisterWindow <= 0 {
		return errors.New("register attempt budget must be positive")
	}
	if l.SweepInterval <= 0 || l.Retention <= 0 {
		return errors.New("limiter sweep interval and retention must be positive")
	}
	return nil
}

// ConfigFromEnv builds a Config from the process environment, loading a .env
// file first when one exists. AUTH_PROVIDER_URL and AUTH_PROVIDER_KEY are
// required; everything else falls back to [DefaultConfig].
func ConfigFromEnv() (Config, error) {
	// Missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	cfg := DefaultConfig()
	cfg.Provider.URL = os.Getenv("AUTH_PROVIDER_URL")
	cfg.Provider.APIKey = os.Getenv("AUTH_PROVIDER_KEY")
	cfg.Provider.JWTSecret = os.Getenv("AUTH_PROVIDER_JWT_SECRET")

	if raw := os.Getenv("AUTH_PROVIDER_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("AUTH_PROVIDER_TIMEOUT: %w", err)
		}
		cfg.Provider.Timeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
