package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authgate "github.com/Rophpad/alx-polly"
	"github.com/Rophpad/alx-polly/provider"
)

type stubProvider struct {
	refreshCalls int
}

func (s *stubProvider) SignInWithPassword(ctx context.Context, email, password string) (*provider.Session, error) {
	return nil, &provider.Error{Kind: provider.KindInvalidCredentials}
}

func (s *stubProvider) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*provider.SignUpResult, error) {
	return nil, &provider.Error{Kind: provider.KindSignupDisabled}
}

func (s *stubProvider) SignOut(ctx context.Context, accessToken string) error {
	return nil
}

func (s *stubProvider) Resend(ctx context.Context, typ provider.VerificationType, email string) error {
	return nil
}

func (s *stubProvider) GetUser(ctx context.Context, accessToken string) (*provider.User, error) {
	if accessToken != "good-token" {
		return nil, &provider.Error{Kind: provider.KindSessionInvalid}
	}
	return &provider.User{
		ID:               "user-1",
		Email:            "user@example.com",
		EmailConfirmedAt: time.Now(),
	}, nil
}

func (s *stubProvider) RefreshSession(ctx context.Context, refreshToken string) (*provider.Session, error) {
	s.refreshCalls++
	if refreshToken != "good-refresh" {
		return nil, &provider.Error{Kind: provider.KindSessionInvalid}
	}
	return &provider.Session{
		AccessToken:  "rotated-access",
		RefreshToken: "rotated-refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
		User: provider.User{
			ID:               "user-1",
			Email:            "user@example.com",
			EmailConfirmedAt: time.Now(),
		},
	}, nil
}

func newTestGate(t *testing.T, stub *stubProvider) *Gate {
	t.Helper()
	engine, err := authgate.New().WithProvider(stub).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(engine.Close)
	return NewGate(engine, GateConfig{CookieSecure: false})
}

func serveThrough(g *Gate, r *http.Request) (*httptest.ResponseRecorder, *authgate.Principal) {
	var got *authgate.Principal
	handler := g.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := PrincipalFromContext(r.Context()); ok {
			got = p
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	return rec, got
}

func TestGateSetsSecurityHeaders(t *testing.T) {
	g := newTestGate(t, &stubProvider{})

	for _, target := range []string{"/", "/dashboard", "/static/app.css"} {
		rec, _ := serveThrough(g, httptest.NewRequest(http.MethodGet, target, nil))

		want := map[string]string{
			"X-Frame-Options":        "DENY",
			"X-Content-Type-Options": "nosniff",
			"Referrer-Policy":        "strict-origin-when-cross-origin",
			"X-XSS-Protection":       "1; mode=block",
		}
		for name, value := range want {
			if got := rec.Header().Get(name); got != value {
				t.Errorf("%s: header %s = %q, want %q", target, name, got, value)
			}
		}
	}
}

func TestGatePublicPathsPassAnonymously(t *testing.T) {
	g := newTestGate(t, &stubProvider{})

	for _, target := range []string{"/", "/login", "/register", "/polls", "/polls/abc123"} {
		rec, principal := serveThrough(g, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", target, rec.Code)
		}
		if principal != nil {
			t.Errorf("%s: anonymous request must not carry a principal", target)
		}
	}
}

func TestGateProtectedPathRedirects(t *testing.T) {
	g := newTestGate(t, &stubProvider{})

	rec, _ := serveThrough(g, httptest.NewRequest(http.MethodGet, "/dashboard?tab=mine", nil))
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if got, want := rec.Header().Get("Location"), "/login?redirect=%2Fdashboard%3Ftab%3Dmine"; got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
}

func TestGateValidAccessCookieYieldsPrincipal(t *testing.T) {
	g := newTestGate(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "sb-access-token", Value: "good-token"})

	rec, principal := serveThrough(g, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if principal == nil {
		t.Fatal("expected a principal in the handler context")
	}
	if principal.UserID != "user-1" || !principal.Verified {
		t.Errorf("principal = %+v", principal)
	}
}

func TestGateRefreshRotatesCookies(t *testing.T) {
	stub := &stubProvider{}
	g := newTestGate(t, stub)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "sb-access-token", Value: "stale-token"})
	req.AddCookie(&http.Cookie{Name: "sb-refresh-token", Value: "good-refresh"})

	rec, principal := serveThrough(g, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if principal == nil {
		t.Fatal("expected a principal after refresh")
	}
	if stub.refreshCalls != 1 {
		t.Errorf("refresh calls = %d, want 1", stub.refreshCalls)
	}

	cookies := rec.Result().Cookies()
	values := map[string]string{}
	for _, c := range cookies {
		values[c.Name] = c.Value
	}
	if values["sb-access-token"] != "rotated-access" {
		t.Errorf("access cookie = %q, want rotated-access", values["sb-access-token"])
	}
	if values["sb-refresh-token"] != "rotated-refresh" {
		t.Errorf("refresh cookie = %q, want rotated-refresh", values["sb-refresh-token"])
	}
}

func TestGateFailedRefreshClearsCookiesAndRedirects(t *testing.T) {
	g := newTestGate(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "sb-access-token", Value: "stale-token"})
	req.AddCookie(&http.Cookie{Name: "sb-refresh-token", Value: "revoked"})

	rec, _ := serveThrough(g, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge != -1 {
			t.Errorf("cookie %s should be cleared, got MaxAge %d", c.Name, c.MaxAge)
		}
	}
}

func TestGateStaticAssetsSkipSessionLookup(t *testing.T) {
	stub := &stubProvider{}
	g := newTestGate(t, stub)

	req := httptest.NewRequest(http.MethodGet, "/logo.svg", nil)
	req.AddCookie(&http.Cookie{Name: "sb-access-token", Value: "stale-token"})
	req.AddCookie(&http.Cookie{Name: "sb-refresh-token", Value: "good-refresh"})

	rec, _ := serveThrough(g, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stub.refreshCalls != 0 {
		t.Errorf("static asset triggered %d refresh calls", stub.refreshCalls)
	}
}
