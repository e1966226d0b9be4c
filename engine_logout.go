package authgate

import (
	"context"

	"github.com/Rophpad/alx-polly/provider"
)

// Logout revokes the session behind the given access token. Logging out
// without a session is a no-op success, and a token the provider no longer
// recognizes counts as already signed out.
func (e *Engine) Logout(ctx context.Context, accessToken string) error {
	if e == nil || e.provider == nil {
		return ErrEngineNotReady
	}
	if accessToken == "" {
		return nil
	}

	err := e.observeProvider(func() error {
		return e.provider.SignOut(ctx, accessToken)
	})
	if err != nil && provider.KindOf(err) != provider.KindSessionInvalid {
		e.metricInc(MetricLogoutFailure)
		e.log.Error().Err(err).Str("op", "logout").Msg("provider call failed")
		e.emitAudit(ctx, auditEventLogout, false, "", "", ErrSignOutFailed, nil)
		return ErrSignOutFailed
	}

	e.metricInc(MetricLogout)
	e.emitAudit(ctx, auditEventLogout, true, "", "", nil, nil)
	return nil
}
