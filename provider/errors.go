package provider

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a provider failure. The orchestrator branches on kinds
// instead of matching provider message substrings, so a provider wording
// change cannot silently break error translation.
type ErrorKind int

const (
	// KindOther is the zero value: a failure the client could not classify.
	KindOther ErrorKind = iota
	// KindInvalidCredentials covers unknown-account and wrong-password alike.
	KindInvalidCredentials
	// KindEmailNotConfirmed means the credentials were valid but the address
	// is still unverified.
	KindEmailNotConfirmed
	// KindAlreadyRegistered means an account with the address already exists.
	KindAlreadyRegistered
	// KindWeakPassword means the password failed the provider's policy.
	KindWeakPassword
	// KindInvalidEmail means the provider rejected the address itself.
	KindInvalidEmail
	// KindSignupDisabled means the project has registrations turned off.
	KindSignupDisabled
	// KindRateLimited means the provider itself throttled the call.
	KindRateLimited
	// KindSessionInvalid means the presented access or refresh token was
	// rejected or expired.
	KindSessionInvalid
	// KindUnavailable covers network failure and provider 5xx responses.
	KindUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindEmailNotConfirmed:
		return "email_not_confirmed"
	case KindAlreadyRegistered:
		return "already_registered"
	case KindWeakPassword:
		return "weak_password"
	case KindInvalidEmail:
		return "invalid_email"
	case KindSignupDisabled:
		return "signup_disabled"
	case KindRateLimited:
		return "rate_limited"
	case KindSessionInvalid:
		return "session_invalid"
	case KindUnavailable:
		return "unavailable"
	default:
		return "other"
	}
}

// Error is the tagged failure every [Client] method returns. Detail holds the
// provider's original wording for operator logs and must never be shown to
// end users.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return "provider: " + e.Kind.String()
	}
	return fmt.Sprintf("provider: %s: %s", e.Kind, e.Detail)
}

// KindOf extracts the ErrorKind from err, unwrapping as needed. Nil and
// non-provider errors map to KindOther.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindOther
}

func errf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
