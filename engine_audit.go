package authgate

import (
	"context"
	"errors"
	"time"

	"github.com/Rophpad/alx-polly/validate"
)

const (
	auditEventLoginSuccess          = "login_success"
	auditEventLoginFailure          = "login_failure"
	auditEventLoginRateLimited      = "login_rate_limited"
	auditEventRegisterSuccess       = "register_success"
	auditEventRegisterFailure       = "register_failure"
	auditEventRegisterDuplicate     = "register_duplicate"
	auditEventRegisterRateLimited   = "register_rate_limited"
	auditEventLogout                = "logout"
	auditEventVerificationResend    = "verification_resend"
	auditEventSessionRefreshSuccess = "session_refresh_success"
	auditEventSessionRefreshFailure = "session_refresh_failure"
	auditEventRateLimitTriggered    = "rate_limit_triggered"
)

// AuditErrorCode is the stable machine-readable failure label carried in
// audit events. Codes never contain provider wording.
type AuditErrorCode string

const (
	auditErrInvalidCredentials  AuditErrorCode = "invalid_credentials"
	auditErrEmailNotVerified    AuditErrorCode = "email_not_verified"
	auditErrRateLimited         AuditErrorCode = "rate_limited"
	auditErrProviderRateLimited AuditErrorCode = "provider_rate_limited"
	auditErrDuplicate           AuditErrorCode = "duplicate"
	auditErrWeakPassword        AuditErrorCode = "weak_password"
	auditErrInvalidEmail        AuditErrorCode = "invalid_email"
	auditErrSignupDisabled      AuditErrorCode = "signup_disabled"
	auditErrSignOutFailed       AuditErrorCode = "sign_out_failed"
	auditErrSessionInvalid      AuditErrorCode = "session_invalid"
	auditErrValidation          AuditErrorCode = "validation_failed"
	auditErrUnavailable         AuditErrorCode = "backend_unavailable"
	auditErrInternal            AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	email string,
	userID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Email:     email,
		UserID:    userID,
		IP:        clientIPFromContext(ctx),
		UserAgent: userAgentFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func (e *Engine) emitRateLimit(ctx context.Context, scope, email string, resetAt time.Time) {
	e.metricInc(MetricRateLimitHit)
	e.emitAudit(ctx, auditEventRateLimitTriggered, false, email, "", ErrRateLimited, func() map[string]string {
		return map[string]string{
			"scope":    scope,
			"reset_at": resetAt.UTC().Format(time.RFC3339),
		}
	})
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	var ve *validate.Error
	if errors.As(err, &ve) {
		return auditErrValidation
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredentials
	case errors.Is(err, ErrEmailNotVerified):
		return auditErrEmailNotVerified
	case errors.Is(err, ErrRateLimited):
		return auditErrRateLimited
	case errors.Is(err, ErrProviderRateLimited),
		errors.Is(err, ErrVerificationRateLimited):
		return auditErrProviderRateLimited
	case errors.Is(err, ErrAccountExists):
		return auditErrDuplicate
	case errors.Is(err, ErrWeakPassword):
		return auditErrWeakPassword
	case errors.Is(err, ErrInvalidEmail):
		return auditErrInvalidEmail
	case errors.Is(err, ErrSignupDisabled):
		return auditErrSignupDisabled
	case errors.Is(err, ErrSignOutFailed):
		return auditErrSignOutFailed
	case errors.Is(err, ErrSessionInvalid):
		return auditErrSessionInvalid
	case errors.Is(err, ErrAuthUnavailable):
		return auditErrUnavailable
	default:
		return auditErrInternal
	}
}
