package authgate

import (
	"io"

	"github.com/Rophpad/alx-polly/internal/audit"
	"github.com/Rophpad/alx-polly/provider"
)

// Credentials carries the raw input of a login or register form. Values are
// transient: the Engine sanitizes and validates copies, forwards them to the
// identity provider, and never persists them.
type Credentials struct {
	Email    string
	Password string
	Name     string
}

// Principal is the read-only projection of the current caller's identity that
// the core holds per request. It is derived from provider state, never
// mutated, and discarded at request end.
type Principal struct {
	UserID   string
	Email    string
	Verified bool
}

// LoginResult is returned by [Engine.Login] on success. The session is
// established by the provider; callers that manage cookies take the tokens
// from Session.
type LoginResult struct {
	Session *provider.Session
}

// RegisterResult is returned by [Engine.Register] on success. When the
// provider requires email verification the account exists but no session was
// created; callers must branch on RequiresVerification, not on error
// presence.
type RegisterResult struct {
	UserID               string
	RequiresVerification bool
	Session              *provider.Session
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = audit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = audit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = audit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = audit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = audit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}
