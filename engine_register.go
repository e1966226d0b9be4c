package authgate

import (
	"context"

	"github.com/Rophpad/alx-polly/provider"
	"github.com/Rophpad/alx-polly/validate"
)

// Register creates a new account. On success the account may still require
// email verification; callers must branch on RequiresVerification rather than
// on error presence.
//
// Registration is throttled harder than login (3 per hour per caller by
// default) because disposable-account creation is the cheaper abuse.
func (e *Engine) Register(ctx context.Context, creds Credentials) (*RegisterResult, error) {
	if e == nil || e.provider == nil {
		return nil, ErrEngineNotReady
	}

	identifier := e.rateIdentifier(ctx)
	key := "register:" + identifier

	decision, allowed := e.checkLimiter(ctx, e.registerLimiter, key)
	if !allowed {
		e.metricInc(MetricRegisterRateLimited)
		e.emitAudit(ctx, auditEventRegisterRateLimited, false, "", "", ErrRateLimited, nil)
		e.emitRateLimit(ctx, "register", "", decision.ResetAt)
		return nil, &RateLimitError{ResetAt: decision.ResetAt}
	}

	email := validate.Sanitize(creds.Email)
	name := validate.Sanitize(creds.Name)

	if err := e.validateRegistration(email, creds.Password, name); err != nil {
		e.metricInc(MetricValidationRejected)
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, email, "", err, func() map[string]string {
			return map[string]string{"reason": "validation"}
		})
		return nil, err
	}

	var result *provider.SignUpResult
	err := e.observeProvider(func() error {
		var err error
		result, err = e.provider.SignUp(ctx, email, creds.Password, map[string]any{
			"name": name,
		})
		return err
	})
	if err != nil {
		mapped := e.translateRegisterError(err)
		if mapped == ErrAccountExists {
			e.metricInc(MetricRegisterDuplicate)
			e.emitAudit(ctx, auditEventRegisterDuplicate, false, email, "", mapped, nil)
		} else {
			e.metricInc(MetricRegisterFailure)
			e.emitAudit(ctx, auditEventRegisterFailure, false, email, "", mapped, func() map[string]string {
				return map[string]string{"reason": provider.KindOf(err).String()}
			})
		}
		return nil, mapped
	}

	e.clearLimiter(ctx, e.registerLimiter, key)

	res := &RegisterResult{
		UserID:               result.User.ID,
		RequiresVerification: result.Session == nil,
		Session:              result.Session,
	}

	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventRegisterSuccess, true, email, res.UserID, nil, func() map[string]string {
		if res.RequiresVerification {
			return map[string]string{"verification": "pending"}
		}
		return map[string]string{"verification": "auto_confirmed"}
	})

	return res, nil
}

// validateRegistration applies the full input policy. First failure wins;
// rules run in email, password, name order.
func (e *Engine) validateRegistration(email, password, name string) error {
	if err := validate.Email(email); err != nil {
		return err
	}
	if err := validate.Password(password); err != nil {
		return err
	}
	return validate.Name(name)
}

func (e *Engine) translateRegisterError(err error) error {
	switch provider.KindOf(err) {
	case provider.KindAlreadyRegistered:
		return ErrAccountExists
	case provider.KindWeakPassword:
		return ErrWeakPassword
	case provider.KindInvalidEmail:
		return ErrInvalidEmail
	case provider.KindSignupDisabled:
		return ErrSignupDisabled
	case provider.KindRateLimited:
		return ErrProviderRateLimited
	default:
		e.metricInc(MetricProviderUnavailable)
		e.log.Error().Err(err).Str("op", "register").Msg("provider call failed")
		return ErrAuthUnavailable
	}
}
