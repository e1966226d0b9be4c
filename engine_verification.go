package authgate

import (
	"context"

	"github.com/Rophpad/alx-polly/provider"
	"github.com/Rophpad/alx-polly/validate"
)

// ResendVerification requests another signup-verification email.
//
// The outcome must not reveal whether an account exists, so every provider
// response other than throttling or outage reports success. The provider only
// sends mail to addresses it knows, which keeps the non-enumeration property
// without lying to legitimate callers.
func (e *Engine) ResendVerification(ctx context.Context, email string) error {
	if e == nil || e.provider == nil {
		return ErrEngineNotReady
	}

	email = validate.Sanitize(email)
	if err := validate.Email(email); err != nil {
		e.metricInc(MetricValidationRejected)
		e.metricInc(MetricVerificationFailure)
		e.emitAudit(ctx, auditEventVerificationResend, false, email, "", err, nil)
		return err
	}

	err := e.observeProvider(func() error {
		return e.provider.Resend(ctx, provider.VerificationSignup, email)
	})
	if err != nil {
		switch provider.KindOf(err) {
		case provider.KindRateLimited:
			e.metricInc(MetricVerificationFailure)
			e.emitAudit(ctx, auditEventVerificationResend, false, email, "", ErrVerificationRateLimited, nil)
			return ErrVerificationRateLimited
		case provider.KindUnavailable:
			e.metricInc(MetricVerificationFailure)
			e.metricInc(MetricProviderUnavailable)
			e.log.Error().Err(err).Str("op", "resend_verification").Msg("provider call failed")
			e.emitAudit(ctx, auditEventVerificationResend, false, email, "", ErrAuthUnavailable, nil)
			return ErrAuthUnavailable
		default:
			// Unknown address, already-verified account, and similar outcomes
			// report success to keep accounts non-enumerable.
			e.log.Debug().Err(err).Str("op", "resend_verification").Msg("provider rejection suppressed")
		}
	}

	e.metricInc(MetricVerificationResent)
	e.emitAudit(ctx, auditEventVerificationResend, true, email, "", nil, nil)
	return nil
}
