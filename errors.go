package authgate

import (
	"errors"
	"fmt"
	"time"
)

// The error vocabulary below is closed on purpose: every failure leaving the
// Engine is one of these values (or a *RateLimitError wrapping
// [ErrRateLimited]), and the message text is the user-facing copy. Provider
// detail never reaches callers, so a failed login cannot reveal whether the
// account exists.
var (
	// ErrInvalidCredentials covers both unknown-account and wrong-password
	// outcomes. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailNotVerified is an exported constant or variable used by the authentication gateway.
	ErrEmailNotVerified = errors.New("please verify your email address before signing in")
	// ErrProviderRateLimited surfaces the identity provider's own throttling.
	ErrProviderRateLimited = errors.New("too many attempts, please wait a moment and try again")
	// ErrRateLimited is the local limiter verdict; callers that need the reset
	// time should errors.As into *RateLimitError.
	ErrRateLimited = errors.New("too many attempts, please try again later")
	// ErrAccountExists is an exported constant or variable used by the authentication gateway.
	ErrAccountExists = errors.New("an account with this email already exists")
	// ErrWeakPassword is an exported constant or variable used by the authentication gateway.
	ErrWeakPassword = errors.New("password does not meet the security requirements")
	// ErrInvalidEmail is an exported constant or variable used by the authentication gateway.
	ErrInvalidEmail = errors.New("please enter a valid email address")
	// ErrSignupDisabled is an exported constant or variable used by the authentication gateway.
	ErrSignupDisabled = errors.New("new registrations are currently disabled")
	// ErrSignOutFailed is an exported constant or variable used by the authentication gateway.
	ErrSignOutFailed = errors.New("failed to sign out, please try again")
	// ErrVerificationRateLimited maps the provider's resend throttle.
	ErrVerificationRateLimited = errors.New("too many verification emails requested, please wait before trying again")
	// ErrAuthUnavailable is the generic catch-all for provider or network
	// failure. Full detail is logged server-side only.
	ErrAuthUnavailable = errors.New("something went wrong, please try again")
	// ErrSessionInvalid is returned when a session cannot be resolved or
	// refreshed from the presented tokens.
	ErrSessionInvalid = errors.New("your session has expired, please sign in again")
	// ErrEngineNotReady is an exported constant or variable used by the authentication gateway.
	ErrEngineNotReady = errors.New("engine not initialized")
)

// RateLimitError is returned by Engine pipelines when the local limiter denies
// an attempt. It wraps [ErrRateLimited] and carries the machine-usable reset
// timestamp so callers can render a retry time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
}

func (e *RateLimitError) Error() string {
	wait := time.Until(e.ResetAt).Round(time.Minute)
	if wait < time.Minute {
		wait = time.Minute
	}
	return fmt.Sprintf("too many attempts, please try again in %s", wait)
}

// Unwrap makes errors.Is(err, ErrRateLimited) hold for every limiter denial.
func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}
