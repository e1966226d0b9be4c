package authgate

import (
	"context"

	"github.com/Rophpad/alx-polly/provider"
)

// RefreshSession rotates the token pair using a refresh token. The provider
// invalidates the presented refresh token on use; callers must store the
// returned pair.
func (e *Engine) RefreshSession(ctx context.Context, refreshToken string) (*provider.Session, error) {
	if e == nil || e.provider == nil {
		return nil, ErrEngineNotReady
	}
	if refreshToken == "" {
		return nil, ErrSessionInvalid
	}

	var session *provider.Session
	err := e.observeProvider(func() error {
		var err error
		session, err = e.provider.RefreshSession(ctx, refreshToken)
		return err
	})
	if err != nil {
		mapped := e.translateSessionError(err, "refresh_session")
		e.metricInc(MetricSessionRefreshFailure)
		e.emitAudit(ctx, auditEventSessionRefreshFailure, false, "", "", mapped, func() map[string]string {
			return map[string]string{"reason": provider.KindOf(err).String()}
		})
		return nil, mapped
	}

	e.metricInc(MetricSessionRefreshSuccess)
	e.emitAudit(ctx, auditEventSessionRefreshSuccess, true, session.User.Email, session.User.ID, nil, nil)

	return session, nil
}

// CurrentUser resolves the principal behind an access token. With a JWT
// secret configured the token is verified locally; otherwise the provider is
// asked, which costs a network round trip per call.
func (e *Engine) CurrentUser(ctx context.Context, accessToken string) (*Principal, error) {
	if e == nil || e.provider == nil {
		return nil, ErrEngineNotReady
	}
	if accessToken == "" {
		return nil, ErrSessionInvalid
	}

	if e.verifier != nil {
		user, _, err := e.verifier.Verify(accessToken)
		if err != nil {
			return nil, ErrSessionInvalid
		}
		return principalFromUser(user), nil
	}

	var user *provider.User
	err := e.observeProvider(func() error {
		var err error
		user, err = e.provider.GetUser(ctx, accessToken)
		return err
	})
	if err != nil {
		return nil, e.translateSessionError(err, "current_user")
	}
	return principalFromUser(user), nil
}

func principalFromUser(u *provider.User) *Principal {
	return &Principal{
		UserID:   u.ID,
		Email:    u.Email,
		Verified: !u.EmailConfirmedAt.IsZero(),
	}
}

func (e *Engine) translateSessionError(err error, op string) error {
	switch provider.KindOf(err) {
	case provider.KindSessionInvalid:
		return ErrSessionInvalid
	case provider.KindRateLimited:
		return ErrProviderRateLimited
	default:
		e.metricInc(MetricProviderUnavailable)
		e.log.Error().Err(err).Str("op", op).Msg("provider call failed")
		return ErrAuthUnavailable
	}
}
