package views

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"photoportal/internal/models"
)

func TestPortal_uploadFormOnlyForAdmins(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	data := PortalData{
		User:      "admin1",
		IsAdmin:   true,
		Photos:    []models.Photo{models.NewPhoto("cat.jpg", "2023-01-01", "beach")},
		StatusMsg: "Photo cat.jpg uploaded successfully.",
		Flashes:   []string{"No file provided"},
	}

	rec := httptest.NewRecorder()
	require.NoError(t, v.Portal(rec, data))
	body := rec.Body.String()
	require.Contains(t, body, `id="uploadForm"`)
	require.Contains(t, body, "Photo cat.jpg uploaded successfully.")
	require.Contains(t, body, "/static/uploads/cat.jpg")
	require.Contains(t, body, "No file provided")

	data.User, data.IsAdmin = "alice@gmail.com", false
	rec = httptest.NewRecorder()
	require.NoError(t, v.Portal(rec, data))
	require.NotContains(t, rec.Body.String(), `id="uploadForm"`)
}

func TestLoginPages(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, v.Index(rec))
	require.Contains(t, rec.Body.String(), `action="/login"`)

	rec = httptest.NewRecorder()
	require.NoError(t, v.AdminIndex(rec))
	require.Contains(t, rec.Body.String(), `action="/admin/login"`)
}

func TestStatic(t *testing.T) {
	srv := httptest.NewServer(http.StripPrefix("/static/", Static()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/static/scripts/photo-portal.js")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(b), "openPreview")
}
