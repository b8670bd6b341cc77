package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taskboard/taskboard/internal/usecase"
)

// AuthService is the inbound port the auth handlers drive.
type AuthService interface {
	Login(ctx context.Context, username, password, originIP string) (string, error)
}

// AuthHandler handles the login and logout pages
type AuthHandler struct {
	auth    AuthService
	session *SessionMiddleware
	view    *View
}

type loginView struct {
	Error string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth AuthService, session *SessionMiddleware, view *View) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		session: session,
		view:    view,
	}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/login", h.LoginPage).Methods("GET")
	router.HandleFunc("/login", h.Login).Methods("POST")
	router.HandleFunc("/logout", h.Logout).Methods("POST")
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if err := h.view.Render(w, "login", loginView{}); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Login handles the login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.auth.Login(r.Context(), username, password, requestMeta(r).OriginIP)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			w.WriteHeader(http.StatusUnauthorized)
			h.view.Render(w, "login", loginView{Error: "Invalid username or password"})
		case errors.Is(err, usecase.ErrTooManyAttempts):
			w.WriteHeader(http.StatusTooManyRequests)
			h.view.Render(w, "login", loginView{Error: "Too many attempts, try again later"})
		default:
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	h.session.SetSession(w, token)
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
