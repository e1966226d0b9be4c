package authgate

import (
	"testing"
	"time"
)

func TestDefaultConfigBudgets(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Limits.LoginMaxAttempts != 5 || cfg.Limits.LoginWindow != 15*time.Minute {
		t.Errorf("login budget = %d/%v", cfg.Limits.LoginMaxAttempts, cfg.Limits.LoginWindow)
	}
	if cfg.Limits.RegisterMaxAttempts != 3 || cfg.Limits.RegisterWindow != time.Hour {
		t.Errorf("register budget = %d/%v", cfg.Limits.RegisterMaxAttempts, cfg.Limits.RegisterWindow)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("config without provider URL must not validate")
	}

	cfg.Provider.URL = "https://auth.example.com"
	if err := cfg.Validate(); err == nil {
		t.Error("config without API key must not validate")
	}

	cfg.Provider.APIKey = "anon-key"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg.Limits.LoginMaxAttempts = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero login budget must not validate")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("AUTH_PROVIDER_URL", "https://auth.example.com")
	t.Setenv("AUTH_PROVIDER_KEY", "anon-key")
	t.Setenv("AUTH_PROVIDER_JWT_SECRET", "jwt-secret")
	t.Setenv("AUTH_PROVIDER_TIMEOUT", "3s")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.Provider.URL != "https://auth.example.com" {
		t.Errorf("URL = %q", cfg.Provider.URL)
	}
	if cfg.Provider.JWTSecret != "jwt-secret" {
		t.Errorf("JWTSecret = %q", cfg.Provider.JWTSecret)
	}
	if cfg.Provider.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", cfg.Provider.Timeout)
	}
	// Untouched fields keep the defaults.
	if cfg.Limits.LoginMaxAttempts != 5 {
		t.Errorf("LoginMaxAttempts = %d", cfg.Limits.LoginMaxAttempts)
	}
}

func TestConfigFromEnvBadTimeout(t *testing.T) {
	t.Setenv("AUTH_PROVIDER_URL", "https://auth.example.com")
	t.Setenv("AUTH_PROVIDER_KEY", "anon-key")
	t.Setenv("AUTH_PROVIDER_TIMEOUT", "not-a-duration")

	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("expected an error for a malformed timeout")
	}
}

func TestConfigFromEnvMissingRequired(t *testing.T) {
	t.Setenv("AUTH_PROVIDER_URL", "")
	t.Setenv("AUTH_PROVIDER_KEY", "")

	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("expected an error when the provider URL is missing")
	}
}
