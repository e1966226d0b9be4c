package provider

import (
	"context"
	"time"
)

// VerificationType selects which kind of confirmation email Resend triggers.
type VerificationType string

const (
	// VerificationSignup re-sends the initial signup confirmation email.
	VerificationSignup VerificationType = "signup"
	// VerificationEmailChange re-sends an email-change confirmation.
	VerificationEmailChange VerificationType = "email_change"
)

// User is the provider's account record, reduced to the fields the gateway
// reads. EmailConfirmedAt is zero until the address has been verified.
type User struct {
	ID               string
	Email            string
	EmailConfirmedAt time.Time
}

// Session holds the token pair the provider issued. The access token is an
// opaque bearer credential from the gateway's point of view; only the
// provider (or [TokenVerifier] when the shared secret is configured) may
// interpret it.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         User
}

// Expired reports whether the access token has passed its expiry, with a
// small skew allowance so a token about to expire is refreshed proactively.
func (s *Session) Expired(skew time.Duration) bool {
	if s == nil || s.ExpiresAt.IsZero() {
		return true
	}
	return time.Now().Add(skew).After(s.ExpiresAt)
}

// SignUpResult is returned by [Client.SignUp]. Session is nil when the
// provider requires email verification before issuing tokens; the account
// exists either way.
type SignUpResult struct {
	User    User
	Session *Session
}

// Client is the identity-provider capability the gateway consumes. Every
// method takes a context; callers are expected to attach a deadline so a slow
// provider cannot stall the request path. Failures are *[Error] values.
type Client interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*SignUpResult, error)
	SignOut(ctx context.Context, accessToken string) error
	Resend(ctx context.Context, typ VerificationType, email string) error
	GetUser(ctx context.Context, accessToken string) (*User, error)
	RefreshSession(ctx context.Context, refreshToken string) (*Session, error)
}
