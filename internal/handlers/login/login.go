// Package login serves the sign-in pages and manages the session identity.
// No credential is checked: whatever identifier is submitted becomes the
// session user, and its role follows from auth.RoleOf.
package login

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"photoportal/internal/auth"
	httpserver "photoportal/internal/http"
	"photoportal/internal/models"
	"photoportal/internal/views"
)

const (
	GeneralLoginPath = "/"
	AdminLoginPath   = "/admin"
	PortalPath       = "/portal"
)

type Handler struct {
	sessions *auth.Sessions
	views    *views.Renderer
}

func New(sessions *auth.Sessions, v *views.Renderer) *Handler {
	return &Handler{sessions: sessions, views: v}
}

// GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if err := h.views.Index(w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("render index")
		httpserver.Error(w, r, http.StatusInternalServerError)
	}
}

// GET /admin
func (h *Handler) AdminIndex(w http.ResponseWriter, r *http.Request) {
	if err := h.views.AdminIndex(w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("render admin index")
		httpserver.Error(w, r, http.StatusInternalServerError)
	}
}

// POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	if !h.identify(w, r, email) {
		return
	}
	zerolog.Ctx(r.Context()).Info().Str("email", email).Msg("general user logged in")
	http.Redirect(w, r, PortalPath, http.StatusFound)
}

// POST /admin/login
// The password field is accepted and ignored.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	if !h.identify(w, r, username) {
		return
	}
	zerolog.Ctx(r.Context()).Info().Str("username", username).Msg("admin logged in")
	http.Redirect(w, r, PortalPath, http.StatusFound)
}

// GET /logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessions.Clear(w, r)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("clear session")
		httpserver.Error(w, r, http.StatusInternalServerError)
		return
	}
	zerolog.Ctx(r.Context()).Info().Str("user", id.User).Msg("user logged out")
	http.Redirect(w, r, LogoutRedirect(id), http.StatusFound)
}

// LogoutRedirect sends general viewers back to the general sign-in page and
// everyone else, including an empty session, to the admin one.
func LogoutRedirect(id auth.Identity) string {
	if id.Authenticated() && id.Role() == models.RoleGeneral {
		return GeneralLoginPath
	}
	return AdminLoginPath
}

func (h *Handler) identify(w http.ResponseWriter, r *http.Request, user string) bool {
	if err := h.sessions.Identify(w, r, user); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("save session")
		httpserver.Error(w, r, http.StatusInternalServerError)
		return false
	}
	return true
}
