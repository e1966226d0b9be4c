package authgate

import (
	"context"
	"errors"
	"testing"

	"github.com/Rophpad/alx-polly/provider"
)

func TestLogoutWithoutSessionIsNoOp(t *testing.T) {
	p := &mockProvider{
		signOut: func(context.Context, string) error {
			t.Fatal("provider must not be called without a token")
			return nil
		},
	}
	engine := newTestEngine(t, p)

	if err := engine.Logout(context.Background(), ""); err != nil {
		t.Fatalf("Logout: %v", err)
	}
}

func TestLogoutSuccess(t *testing.T) {
	var revoked string
	p := &mockProvider{
		signOut: func(_ context.Context, accessToken string) error {
			revoked = accessToken
			return nil
		},
	}
	engine := newTestEngine(t, p)

	if err := engine.Logout(context.Background(), "access-token"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if revoked != "access-token" {
		t.Errorf("revoked token = %q", revoked)
	}
	if got := engine.MetricsSnapshot().Counters[MetricLogout]; got != 1 {
		t.Errorf("MetricLogout = %d, want 1", got)
	}
}

func TestLogoutExpiredSessionCountsAsSignedOut(t *testing.T) {
	p := &mockProvider{
		signOut: func(context.Context, string) error {
			return &provider.Error{Kind: provider.KindSessionInvalid}
		},
	}
	engine := newTestEngine(t, p)

	if err := engine.Logout(context.Background(), "stale-token"); err != nil {
		t.Fatalf("Logout of a dead session should succeed, got %v", err)
	}
}

func TestLogoutProviderFailure(t *testing.T) {
	p := &mockProvider{
		signOut: func(context.Context, string) error {
			return &provider.Error{Kind: provider.KindUnavailable}
		},
	}
	engine := newTestEngine(t, p)

	err := engine.Logout(context.Background(), "access-token")
	if !errors.Is(err, ErrSignOutFailed) {
		t.Fatalf("err = %v, want ErrSignOutFailed", err)
	}
}
