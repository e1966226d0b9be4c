package authgate

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestClientIdentifierPrecedence(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.1:4711"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	r.Header.Set("X-Real-IP", "198.51.100.9")

	if got := ClientIdentifier(r); got != "203.0.113.7" {
		t.Errorf("ClientIdentifier = %q, want first X-Forwarded-For entry", got)
	}

	r.Header.Del("X-Forwarded-For")
	if got := ClientIdentifier(r); got != "198.51.100.9" {
		t.Errorf("ClientIdentifier = %q, want X-Real-IP", got)
	}

	r.Header.Del("X-Real-IP")
	if got := ClientIdentifier(r); got != "192.0.2.1" {
		t.Errorf("ClientIdentifier = %q, want remote host", got)
	}

	r.RemoteAddr = ""
	if got := ClientIdentifier(r); got != "unknown" {
		t.Errorf("ClientIdentifier = %q, want unknown", got)
	}
}

func TestClientIdentifierWhitespaceInForwardedFor(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", "  203.0.113.7 , 10.0.0.1")

	if got := ClientIdentifier(r); got != "203.0.113.7" {
		t.Errorf("ClientIdentifier = %q", got)
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := WithClientIP(context.Background(), "203.0.113.7")
	ctx = WithUserAgent(ctx, "poll-client/1.0")

	if got := clientIPFromContext(ctx); got != "203.0.113.7" {
		t.Errorf("clientIPFromContext = %q", got)
	}
	if got := userAgentFromContext(ctx); got != "poll-client/1.0" {
		t.Errorf("userAgentFromContext = %q", got)
	}
	if got := clientIPFromContext(context.Background()); got != "" {
		t.Errorf("empty context returned %q", got)
	}
}
