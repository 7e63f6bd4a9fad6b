// Package views renders the portal's HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"photoportal/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// PortalData is everything the portal page shows.
type PortalData struct {
	User      string         `json:"user"`
	IsAdmin   bool           `json:"is_admin"`
	Photos    []models.Photo `json:"photos"`
	StatusMsg string         `json:"status_msg"`
	Flashes   []string       `json:"flashes,omitempty"`
}

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: t}, nil
}

// Render executes the named page into a buffer first so a template error
// never produces a half-written 200.
func (v *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := v.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func (v *Renderer) Index(w http.ResponseWriter) error {
	return v.Render(w, http.StatusOK, "index.html", nil)
}

func (v *Renderer) AdminIndex(w http.ResponseWriter) error {
	return v.Render(w, http.StatusOK, "adminindex.html", nil)
}

func (v *Renderer) Portal(w http.ResponseWriter, data PortalData) error {
	return v.Render(w, http.StatusOK, "photo-portal.html", data)
}

// Static serves the bundled scripts; mount under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
