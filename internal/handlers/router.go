// internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	mux_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"photoportal/internal/auth"
	"photoportal/internal/handlers/login"
	"photoportal/internal/handlers/photos"
	"photoportal/internal/middleware"
	"photoportal/internal/repo"
	"photoportal/internal/storage"
	"photoportal/internal/views"
)

type Deps struct {
	Log         zerolog.Logger
	Repo        repo.Repo
	Uploads     *storage.Uploads
	Sessions    *auth.Sessions
	Views       *views.Renderer
	CORSOrigins []string
}

func NewRouter(d Deps) *chi.Mux {
	mux := chi.NewRouter()

	mux.Use(middleware.WithLogger(d.Log))
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Logger)
	mux.Use(mux_middleware.Recoverer)

	if len(d.CORSOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	RegisterRoutes(mux, d)
	return mux
}

func RegisterRoutes(mux *chi.Mux, d Deps) {
	lh := login.New(d.Sessions, d.Views)
	ph := photos.New(d.Repo, d.Uploads, d.Sessions, d.Views)

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Get(login.GeneralLoginPath, lh.Index)
	mux.Post("/login", lh.Login)
	mux.Get(login.AdminLoginPath, lh.AdminIndex)
	mux.Post("/admin/login", lh.AdminLogin)
	mux.Get("/logout", lh.Logout)

	mux.Group(func(sr chi.Router) {
		sr.Use(middleware.LoadIdentity(d.Sessions))

		// upload decides on role itself so non-admins land on /portal
		sr.Post("/upload", ph.Upload)

		sr.Group(func(sr chi.Router) {
			sr.Use(middleware.RequireIdentity(login.GeneralLoginPath))
			sr.Get(login.PortalPath, ph.Portal)
			sr.Post("/search", ph.Search)
		})
	})

	mux.Handle("/static/uploads/*", http.StripPrefix("/static/uploads/", d.Uploads.Handler()))
	mux.Handle("/static/scripts/*", http.StripPrefix("/static/", views.Static()))
}
