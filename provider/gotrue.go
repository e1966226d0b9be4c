package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HTTPClient implements [Client] against a GoTrue-compatible identity API
// (the auth service behind Supabase deployments).
//
// Every outbound request carries the public API key and a generated
// X-Request-ID so a failed call can be correlated in provider logs.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewHTTPClient creates a provider client for the given base URL and public
// API key. The timeout bounds every call end to end; contexts passed to
// individual methods may shorten it further.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	baseURL = strings.TrimRight(baseURL, "/")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// SignInWithPassword exchanges an email/password pair for a session.
func (c *HTTPClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body, err := c.do(ctx, http.MethodPost, "/token?grant_type=password", "", passwordGrantRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, errf(KindOther, "decode token response: %v", err)
	}
	if tok.AccessToken == "" {
		return nil, errf(KindOther, "token response missing access token")
	}
	return tok.toSession(), nil
}

// SignUp creates an account. When the provider requires email verification
// the result carries the new user and a nil session; otherwise the session is
// established immediately.
func (c *HTTPClient) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*SignUpResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/signup", "", signUpRequest{
		Email:    email,
		Password: password,
		Data:     metadata,
	})
	if err != nil {
		return nil, err
	}

	// The signup endpoint returns a session object when the account is
	// auto-confirmed and a bare user object when verification is pending.
	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err == nil && tok.AccessToken != "" {
		return &SignUpResult{
			User:    tok.User.toUser(),
			Session: tok.toSession(),
		}, nil
	}

	var user wireUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, errf(KindOther, "decode signup response: %v", err)
	}
	if user.ID == "" {
		return nil, errf(KindOther, "signup response missing user id")
	}
	return &SignUpResult{User: user.toUser()}, nil
}

// SignOut revokes the session behind the given access token.
func (c *HTTPClient) SignOut(ctx context.Context, accessToken string) error {
	_, err := c.do(ctx, http.MethodPost, "/logout", accessToken, nil)
	return err
}

// Resend triggers another verification email of the given type.
func (c *HTTPClient) Resend(ctx context.Context, typ VerificationType, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/resend", "", resendRequest{
		Type:  string(typ),
		Email: email,
	})
	return err
}

// GetUser resolves the account behind an access token. This is the
// authoritative principal lookup when local token verification is not
// configured.
func (c *HTTPClient) GetUser(ctx context.Context, accessToken string) (*User, error) {
	body, err := c.do(ctx, http.MethodGet, "/user", accessToken, nil)
	if err != nil {
		return nil, err
	}

	var user wireUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, errf(KindOther, "decode user response: %v", err)
	}
	if user.ID == "" {
		return nil, errf(KindSessionInvalid, "user response missing id")
	}
	u := user.toUser()
	return &u, nil
}

// RefreshSession rotates the token pair using a refresh token.
func (c *HTTPClient) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	body, err := c.do(ctx, http.MethodPost, "/token?grant_type=refresh_token", "", refreshGrantRequest{
		RefreshToken: refreshToken,
	})
	if err != nil {
		return nil, err
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, errf(KindOther, "decode refresh response: %v", err)
	}
	if tok.AccessToken == "" {
		return nil, errf(KindSessionInvalid, "refresh response missing access token")
	}
	return tok.toSession(), nil
}

// do performs one provider call and returns the raw response body for 2xx
// responses. Non-2xx responses and transport failures come back as *Error.
func (c *HTTPClient) do(ctx context.Context, method, path, bearer string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, errf(KindOther, "marshal request: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, errf(KindOther, "build request: %v", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, errf(KindUnavailable, "provider call aborted: %v", err)
		}
		return nil, errf(KindUnavailable, "provider connection error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, mapHTTPError(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errf(KindUnavailable, "read response: %v", err)
	}
	return body, nil
}

// mapHTTPError classifies a non-2xx provider response into an *Error. The
// error_code field is authoritative; the HTTP status is the fallback for
// older provider versions that only send free-form text.
func mapHTTPError(resp *http.Response) *Error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var wire errorResponse
	_ = json.Unmarshal(data, &wire)
	detail := wire.message()
	if detail == "" {
		detail = strings.TrimSpace(string(data))
	}

	if kind, ok := kindFromErrorCode(wire.ErrorCode); ok {
		return &Error{Kind: kind, Detail: detail}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimited, Detail: detail}
	case resp.StatusCode == http.StatusUnauthorized:
		return &Error{Kind: KindSessionInvalid, Detail: detail}
	case resp.StatusCode >= http.StatusInternalServerError:
		return &Error{Kind: KindUnavailable, Detail: detail}
	default:
		return &Error{Kind: KindOther, Detail: detail}
	}
}

func kindFromErrorCode(code string) (ErrorKind, bool) {
	switch code {
	case "invalid_credentials":
		return KindInvalidCredentials, true
	case "email_not_confirmed", "phone_not_confirmed":
		return KindEmailNotConfirmed, true
	case "user_already_exists", "email_exists":
		return KindAlreadyRegistered, true
	case "weak_password":
		return KindWeakPassword, true
	case "validation_failed", "email_address_invalid":
		return KindInvalidEmail, true
	case "signup_disabled":
		return KindSignupDisabled, true
	case "over_request_rate_limit", "over_email_send_rate_limit", "over_sms_send_rate_limit":
		return KindRateLimited, true
	case "refresh_token_not_found", "refresh_token_already_used", "session_not_found", "bad_jwt", "session_expired":
		return KindSessionInvalid, true
	default:
		return KindOther, false
	}
}
