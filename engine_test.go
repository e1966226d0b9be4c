package authgate

import (
	"context"
	"testing"
	"time"

	"github.com/Rophpad/alx-polly/provider"
)

// mockProvider implements provider.Client with overridable behavior per test.
// Unset hooks fail loudly so a test cannot silently exercise the wrong flow.
type mockProvider struct {
	signIn  func(ctx context.Context, email, password string) (*provider.Session, error)
	signUp  func(ctx context.Context, email, password string, metadata map[string]any) (*provider.SignUpResult, error)
	signOut func(ctx context.Context, accessToken string) error
	resend  func(ctx context.Context, typ provider.VerificationType, email string) error
	getUser func(ctx context.Context, accessToken string) (*provider.User, error)
	refresh func(ctx context.Context, refreshToken string) (*provider.Session, error)

	signInCalls int
	signUpCalls int
}

func (m *mockProvider) SignInWithPassword(ctx context.Context, email, password string) (*provider.Session, error) {
	m.signInCalls++
	if m.signIn == nil {
		panic("mockProvider: SignInWithPassword not stubbed")
	}
	return m.signIn(ctx, email, password)
}

func (m *mockProvider) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*provider.SignUpResult, error) {
	m.signUpCalls++
	if m.signUp == nil {
		panic("mockProvider: SignUp not stubbed")
	}
	return m.signUp(ctx, email, password, metadata)
}

func (m *mockProvider) SignOut(ctx context.Context, accessToken string) error {
	if m.signOut == nil {
		panic("mockProvider: SignOut not stubbed")
	}
	return m.signOut(ctx, accessToken)
}

func (m *mockProvider) Resend(ctx context.Context, typ provider.VerificationType, email string) error {
	if m.resend == nil {
		panic("mockProvider: Resend not stubbed")
	}
	return m.resend(ctx, typ, email)
}

func (m *mockProvider) GetUser(ctx context.Context, accessToken string) (*provider.User, error) {
	if m.getUser == nil {
		panic("mockProvider: GetUser not stubbed")
	}
	return m.getUser(ctx, accessToken)
}

func (m *mockProvider) RefreshSession(ctx context.Context, refreshToken string) (*provider.Session, error) {
	if m.refresh == nil {
		panic("mockProvider: RefreshSession not stubbed")
	}
	return m.refresh(ctx, refreshToken)
}

func testSession() *provider.Session {
	return &provider.Session{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(time.Hour),
		User: provider.User{
			ID:               "user-1",
			Email:            "user@example.com",
			EmailConfirmedAt: time.Now(),
		},
	}
}

func newTestEngine(t *testing.T, p provider.Client) *Engine {
	t.Helper()
	engine, err := New().WithProvider(p).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

func newTestEngineWithSink(t *testing.T, p provider.Client, sink AuditSink) *Engine {
	t.Helper()
	engine, err := New().WithProvider(p).WithAuditSink(sink).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

func ipContext(ip string) context.Context {
	return WithClientIP(context.Background(), ip)
}

func waitForAudit(t *testing.T, sink *ChannelSink, eventType string) AuditEvent {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-sink.Events():
			if event.EventType == eventType {
				return event
			}
		case <-deadline:
			t.Fatalf("audit event %q not observed", eventType)
		}
	}
}
