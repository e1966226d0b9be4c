package middleware

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"

	authgate "github.com/Rophpad/alx-polly"
)

type principalContextKey struct{}

// PrincipalFromContext returns the authenticated caller attached by
// [Gate.Wrap], or false for anonymous requests.
func PrincipalFromContext(ctx context.Context) (*authgate.Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(*authgate.Principal)
	return p, ok
}

// securityHeaders are stamped on every response, including redirects and
// static assets.
var securityHeaders = map[string]string{
	"X-Frame-Options":        "DENY",
	"X-Content-Type-Options": "nosniff",
	"Referrer-Policy":        "strict-origin-when-cross-origin",
	"X-XSS-Protection":       "1; mode=block",
}

// staticExtensions short-circuit the gate: assets are always public and never
// worth a session lookup.
var staticExtensions = map[string]bool{
	".css":   true,
	".js":    true,
	".map":   true,
	".png":   true,
	".jpg":   true,
	".jpeg":  true,
	".gif":   true,
	".svg":   true,
	".ico":   true,
	".woff":  true,
	".woff2": true,
	".ttf":   true,
}

// GateConfig tunes the request gate. The zero value is completed by
// [NewGate] with the application's defaults.
type GateConfig struct {
	// LoginPath is where anonymous callers of protected paths are sent.
	LoginPath string
	// RedirectParam is the query parameter carrying the original destination.
	RedirectParam string

	// PublicPaths are exact paths that never require a session. Poll viewing
	// and voting stay public so shared links work for signed-out visitors.
	PublicPaths []string
	// PublicPrefixes open up whole subtrees. Include the trailing slash so
	// "/polls/" does not also match "/polls-admin".
	PublicPrefixes []string

	// AccessCookie and RefreshCookie name the session token cookies.
	AccessCookie  string
	RefreshCookie string
	// CookieSecure marks rotated cookies Secure; leave false only for local
	// development over plain HTTP.
	CookieSecure bool
}

func defaultGateConfig() GateConfig {
	return GateConfig{
		LoginPath:     "/login",
		RedirectParam: "redirect",
		PublicPaths: []string{
			"/",
			"/login",
			"/register",
			"/auth/callback",
			"/polls",
		},
		PublicPrefixes: []string{
			"/polls/",
			"/static/",
			"/assets/",
		},
		AccessCookie:  "sb-access-token",
		RefreshCookie: "sb-refresh-token",
		CookieSecure:  true,
	}
}

// Gate is the per-request session middleware. Build one with [NewGate] and
// install it with [Gate.Wrap].
type Gate struct {
	engine *authgate.Engine
	cfg    GateConfig
}

// NewGate creates a gate around the given engine. Zero-value config fields
// fall back to the application defaults; explicitly set fields win.
func NewGate(engine *authgate.Engine, cfg GateConfig) *Gate {
	def := defaultGateConfig()
	if cfg.LoginPath == "" {
		cfg.LoginPath = def.LoginPath
	}
	if cfg.RedirectParam == "" {
		cfg.RedirectParam = def.RedirectParam
	}
	if cfg.PublicPaths == nil {
		cfg.PublicPaths = def.PublicPaths
	}
	if cfg.PublicPrefixes == nil {
		cfg.PublicPrefixes = def.PublicPrefixes
	}
	if cfg.AccessCookie == "" {
		cfg.AccessCookie = def.AccessCookie
	}
	if cfg.RefreshCookie == "" {
		cfg.RefreshCookie = def.RefreshCookie
	}
	return &Gate{engine: engine, cfg: cfg}
}

// Wrap installs the gate in front of next.
func (g *Gate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for name, value := range securityHeaders {
			w.Header().Set(name, value)
		}

		if staticExtensions[strings.ToLower(path.Ext(r.URL.Path))] {
			next.ServeHTTP(w, r)
			return
		}

		ctx := authgate.WithClientIP(r.Context(), authgate.ClientIdentifier(r))
		ctx = authgate.WithUserAgent(ctx, r.UserAgent())

		principal := g.resolveSession(ctx, w, r)
		if principal != nil {
			ctx = context.WithValue(ctx, principalContextKey{}, principal)
		} else if !g.isPublic(r.URL.Path) {
			g.redirectToLogin(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveSession turns the request's token cookies into a principal. An
// expired access token is refreshed in place: the gate rotates the cookies on
// the outgoing response so the browser carries the new pair. Any failure
// yields an anonymous request, never an error response.
func (g *Gate) resolveSession(ctx context.Context, w http.ResponseWriter, r *http.Request) *authgate.Principal {
	if g.engine == nil {
		return nil
	}

	if c, err := r.Cookie(g.cfg.AccessCookie); err == nil && c.Value != "" {
		if p, err := g.engine.CurrentUser(ctx, c.Value); err == nil {
			return p
		}
	}

	c, err := r.Cookie(g.cfg.RefreshCookie)
	if err != nil || c.Value == "" {
		return nil
	}

	session, err := g.engine.RefreshSession(ctx, c.Value)
	if err != nil {
		g.clearCookies(w)
		return nil
	}

	g.setCookie(w, g.cfg.AccessCookie, session.AccessToken)
	g.setCookie(w, g.cfg.RefreshCookie, session.RefreshToken)

	return &authgate.Principal{
		UserID:   session.User.ID,
		Email:    session.User.Email,
		Verified: !session.User.EmailConfirmedAt.IsZero(),
	}
}

func (g *Gate) isPublic(reqPath string) bool {
	for _, p := range g.cfg.PublicPaths {
		if reqPath == p {
			return true
		}
	}
	for _, prefix := range g.cfg.PublicPrefixes {
		if strings.HasPrefix(reqPath, prefix) {
			return true
		}
	}
	return false
}

func (g *Gate) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	dest := g.cfg.LoginPath + "?" + g.cfg.RedirectParam + "=" + url.QueryEscape(target)
	http.Redirect(w, r, dest, http.StatusFound)
}

func (g *Gate) setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   g.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (g *Gate) clearCookies(w http.ResponseWriter) {
	for _, name := range []string{g.cfg.AccessCookie, g.cfg.RefreshCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   g.cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
