package pkgsession

import (
	"context"
	"crypto/rand"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkglog"
)

const (
	// DefaultCookieName is used when Options.Name is empty.
	DefaultCookieName = "sheetboard-session"

	idKey = "sid"
)

// Generator generates unique session ids.
type Generator interface {
	Generate() string
}

// Options configures the session cookie.
type Options struct {
	Name   string
	Secret []byte
	// MaxAge in seconds; zero means a browser-session cookie.
	MaxAge int
	Secure bool
}

// Manager issues and reads session ids.
type Manager struct {
	store   sessions.Store
	name    string
	ids     Generator
	sliding bool
}

// NewManager builds a cookie-backed Manager. An empty secret is replaced by a
// random one, which invalidates every cookie on restart.
func NewManager(opts Options, ids Generator) *Manager {
	secret := opts.Secret
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			panic(err)
		}
		slog.Warn("session secret not configured, using an ephemeral key")
	}

	name := opts.Name
	if name == "" {
		name = DefaultCookieName
	}

	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{store: store, name: name, ids: ids, sliding: opts.MaxAge > 0}
}

// Middleware ensures the request carries a session id, creating and saving
// one when the cookie is missing or can no longer be decoded. Cookies with a
// MaxAge are re-issued on every request so their expiry follows activity.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.store.Get(r, m.name)
		if err != nil {
			slog.WarnContext(r.Context(), "discarding unreadable session cookie", "error", err)
		}

		sid, _ := sess.Values[idKey].(string)
		issued := sid == ""
		if issued {
			sid = m.ids.Generate()
			sess.Values[idKey] = sid
		}
		if issued || m.sliding {
			if err := sess.Save(r, w); err != nil {
				slog.ErrorContext(r.Context(), "failed to save session cookie", "error", err)
			}
		}

		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), sid)))
	})
}

// WithID stores the session id into ctx.
func WithID(ctx context.Context, sid string) context.Context {
	return pkglog.SetSessionID(ctx, sid)
}

// ID returns the session id of the request, or "" when the middleware did not run.
func ID(ctx context.Context) string {
	return pkglog.GetSessionID(ctx)
}
