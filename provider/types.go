package provider

import "time"

// Wire representations of the GoTrue-compatible auth API. Only the fields the
// gateway reads are declared; unknown fields are ignored on decode.

type wireUser struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	EmailConfirmedAt   string `json:"email_confirmed_at"`
	ConfirmationSentAt string `json:"confirmation_sent_at"`
}

func (u wireUser) toUser() User {
	out := User{
		ID:    u.ID,
		Email: u.Email,
	}
	if u.EmailConfirmedAt != "" {
		if ts, err := time.Parse(time.RFC3339, u.EmailConfirmedAt); err == nil {
			out.EmailConfirmedAt = ts
		}
	}
	return out
}

type tokenResponse struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
	ExpiresAt    int64    `json:"expires_at"`
	RefreshToken string   `json:"refresh_token"`
	User         wireUser `json:"user"`
}

func (t tokenResponse) toSession() *Session {
	expiresAt := time.Unix(t.ExpiresAt, 0)
	if t.ExpiresAt == 0 && t.ExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return &Session{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    expiresAt,
		User:         t.User.toUser(),
	}
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshGrantRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type signUpRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

type resendRequest struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

// errorResponse covers both the modern {code, error_code, msg} and the legacy
// {error, error_description} shapes the provider emits.
type errorResponse struct {
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e errorResponse) message() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.ErrorDescription != "":
		return e.ErrorDescription
	default:
		return e.Error
	}
}
