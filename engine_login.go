package authgate

import (
	"context"

	"github.com/Rophpad/alx-polly/provider"
	"github.com/Rophpad/alx-polly/validate"
)

// Login authenticates an email/password pair and returns the established
// session.
//
// The pipeline is fixed: local rate limit, input validation, provider call,
// error translation, limiter clear. Unknown-account and wrong-password
// outcomes are indistinguishable in the returned error.
func (e *Engine) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if e == nil || e.provider == nil {
		return nil, ErrEngineNotReady
	}

	identifier := e.rateIdentifier(ctx)
	key := "login:" + identifier

	decision, allowed := e.checkLimiter(ctx, e.loginLimiter, key)
	if !allowed {
		e.metricInc(MetricLoginRateLimited)
		e.emitAudit(ctx, auditEventLoginRateLimited, false, "", "", ErrRateLimited, nil)
		e.emitRateLimit(ctx, "login", "", decision.ResetAt)
		return nil, &RateLimitError{ResetAt: decision.ResetAt}
	}

	email := validate.Sanitize(creds.Email)
	if err := validate.Email(email); err != nil {
		e.metricInc(MetricValidationRejected)
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, email, "", err, func() map[string]string {
			return map[string]string{"reason": "invalid_email"}
		})
		return nil, err
	}
	if creds.Password == "" {
		e.metricInc(MetricValidationRejected)
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, email, "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{"reason": "empty_password"}
		})
		return nil, &validate.Error{Field: "password", Reason: "password is required"}
	}

	var session *provider.Session
	err := e.observeProvider(func() error {
		var err error
		session, err = e.provider.SignInWithPassword(ctx, email, creds.Password)
		return err
	})
	if err != nil {
		mapped := e.translateLoginError(err)
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, email, "", mapped, func() map[string]string {
			return map[string]string{"reason": provider.KindOf(err).String()}
		})
		return nil, mapped
	}

	e.clearLimiter(ctx, e.loginLimiter, key)

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, email, session.User.ID, nil, nil)

	return &LoginResult{Session: session}, nil
}

// translateLoginError maps a provider failure to the closed vocabulary. The
// provider's wording is logged here and goes no further.
func (e *Engine) translateLoginError(err error) error {
	switch provider.KindOf(err) {
	case provider.KindInvalidCredentials:
		return ErrInvalidCredentials
	case provider.KindEmailNotConfirmed:
		return ErrEmailNotVerified
	case provider.KindRateLimited:
		return ErrProviderRateLimited
	default:
		e.metricInc(MetricProviderUnavailable)
		e.log.Error().Err(err).Str("op", "login").Msg("provider call failed")
		return ErrAuthUnavailable
	}
}
