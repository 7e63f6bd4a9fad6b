// internal/handlers/photos/photos.go
package photos

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"photoportal/internal/auth"
	httpserver "photoportal/internal/http"
	"photoportal/internal/models"
	"photoportal/internal/repo"
	"photoportal/internal/storage"
	"photoportal/internal/views"
)

const (
	PortalStatus = "TODO: Implement slide-show functionality"
	NoFileNotice = "No file provided"
)

type Handler struct {
	repo     repo.Repo
	uploads  *storage.Uploads
	sessions *auth.Sessions
	views    *views.Renderer
}

func New(r repo.Repo, uploads *storage.Uploads, sessions *auth.Sessions, v *views.Renderer) *Handler {
	return &Handler{repo: r, uploads: uploads, sessions: sessions, views: v}
}

// UploadedMessage is the status shown after a successful upload.
func UploadedMessage(filename string) string {
	return fmt.Sprintf("Photo %s uploaded successfully.", filename)
}

// GET /portal
func (h *Handler) Portal(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	photos, err := h.repo.Load(r.Context())
	if err != nil {
		h.fail(w, r, err, "load catalog")
		return
	}
	flashes, err := h.sessions.Flashes(w, r)
	if err != nil {
		h.fail(w, r, err, "read flashes")
		return
	}
	h.respond(w, r, views.PortalData{
		User:      id.User,
		IsAdmin:   id.IsAdmin(),
		Photos:    photos,
		StatusMsg: PortalStatus,
		Flashes:   flashes,
	})
}

// POST /upload
// Non-admin callers are sent back to the portal without a notice.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())
	if !id.IsAdmin() {
		http.Redirect(w, r, "/portal", http.StatusFound)
		return
	}

	// FormFile fails for a non-multipart body, a missing part, or a part
	// without a filename; all of them mean no file was provided.
	file, header, err := r.FormFile("photo_name")
	dateTaken := strings.TrimSpace(r.FormValue("date_taken"))
	tags := strings.TrimSpace(r.FormValue("tags"))
	if err != nil || header.Filename == "" {
		if file != nil {
			file.Close()
		}
		if err := h.sessions.AddFlash(w, r, NoFileNotice); err != nil {
			h.fail(w, r, err, "save flash")
			return
		}
		http.Redirect(w, r, "/portal", http.StatusFound)
		return
	}
	defer file.Close()

	filename := header.Filename
	if err := h.uploads.Put(filename, file); err != nil {
		h.fail(w, r, err, "store upload")
		return
	}
	if err := h.repo.Upsert(r.Context(), models.NewPhoto(filename, dateTaken, tags)); err != nil {
		h.fail(w, r, err, "upsert photo")
		return
	}
	zerolog.Ctx(r.Context()).Info().
		Str("filename", filename).
		Str("date_taken", dateTaken).
		Str("tags", tags).
		Msg("photo uploaded")

	photos, err := h.repo.Load(r.Context())
	if err != nil {
		h.fail(w, r, err, "load catalog")
		return
	}
	h.respond(w, r, views.PortalData{
		User:      id.User,
		IsAdmin:   true,
		Photos:    photos,
		StatusMsg: UploadedMessage(filename),
	})
}

// POST /search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	q := repo.SearchQuery{
		Mode: repo.SearchMode(r.FormValue("searchBy")),
		Text: strings.TrimSpace(r.FormValue("searchText")),
		Date: strings.TrimSpace(r.FormValue("searchDate")),
		Tags: strings.TrimSpace(r.FormValue("searchTags")),
	}
	matched, status, err := repo.Search(r.Context(), h.repo, q)
	if err != nil {
		h.fail(w, r, err, "search catalog")
		return
	}
	h.respond(w, r, views.PortalData{
		User:      id.User,
		IsAdmin:   id.IsAdmin(),
		Photos:    matched,
		StatusMsg: status,
	})
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, data views.PortalData) {
	if httpserver.WantsJSON(r) {
		httpserver.JSON(w, http.StatusOK, data)
		return
	}
	if err := h.views.Portal(w, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("render portal")
		httpserver.Error(w, r, http.StatusInternalServerError)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, op string) {
	zerolog.Ctx(r.Context()).Error().Err(err).Str("op", op).Msg("request failed")
	httpserver.Error(w, r, http.StatusInternalServerError)
}
