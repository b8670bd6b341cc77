package http

import (
	"context"
	"net/http"
	"time"
)

type principalKey struct{}

// SessionValidator validates a session token and returns the username it
// was issued to.
type SessionValidator interface {
	Validate(token string) (string, error)
}

// SessionMiddleware resolves the authenticated principal from the session
// cookie and threads it through the request context. Browser requests
// without a valid session are redirected to the login page.
type SessionMiddleware struct {
	validator  SessionValidator
	cookieName string
	ttl        time.Duration
}

func NewSessionMiddleware(validator SessionValidator, cookieName string, ttl time.Duration) *SessionMiddleware {
	return &SessionMiddleware{
		validator:  validator,
		cookieName: cookieName,
		ttl:        ttl,
	}
}

// RequireAuth wraps a handler so it only runs with a resolved principal.
func (m *SessionMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		username, err := m.validator.Validate(cookie.Value)
		if err != nil {
			m.ClearSession(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey{}, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// SetSession writes the session cookie for an issued token.
func (m *SessionMiddleware) SetSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession expires the session cookie.
func (m *SessionMiddleware) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Principal returns the authenticated username stored in the context, or
// an empty string outside an authenticated request.
func Principal(ctx context.Context) string {
	username, _ := ctx.Value(principalKey{}).(string)
	return username
}

// ContextWithPrincipal is used by tests to simulate an authenticated request.
func ContextWithPrincipal(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, principalKey{}, username)
}
