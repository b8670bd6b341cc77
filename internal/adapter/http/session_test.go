package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubValidator struct {
	username string
	err      error
}

func (s *stubValidator) Validate(token string) (string, error) {
	return s.username, s.err
}

func TestSessionMiddleware_RequireAuth(t *testing.T) {
	t.Run("valid session resolves the principal", func(t *testing.T) {
		m := NewSessionMiddleware(&stubValidator{username: "alice"}, "session", time.Hour)

		var principal string
		next := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			principal = Principal(r.Context())
		})

		req := httptest.NewRequest("GET", "/tasks", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: "some-token"})
		rec := httptest.NewRecorder()
		next.ServeHTTP(rec, req)

		assert.Equal(t, "alice", principal)
	})

	t.Run("missing cookie redirects to login", func(t *testing.T) {
		m := NewSessionMiddleware(&stubValidator{username: "alice"}, "session", time.Hour)

		next := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not run")
		})

		req := httptest.NewRequest("GET", "/tasks", nil)
		rec := httptest.NewRecorder()
		next.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("invalid token clears the cookie and redirects", func(t *testing.T) {
		m := NewSessionMiddleware(&stubValidator{err: errors.New("expired")}, "session", time.Hour)

		next := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not run")
		})

		req := httptest.NewRequest("GET", "/tasks", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: "stale-token"})
		rec := httptest.NewRecorder()
		next.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		if assert.Len(t, cookies, 1) {
			assert.Equal(t, "session", cookies[0].Name)
			assert.Empty(t, cookies[0].Value)
		}
	})
}
