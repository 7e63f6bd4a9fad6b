package storage

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploads_putOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "static", "uploads")
	u, err := NewUploads(dir)
	require.NoError(t, err)

	require.NoError(t, u.Put("a.jpg", strings.NewReader("first")))
	require.NoError(t, u.Put("a.jpg", strings.NewReader("second")))

	b, err := os.ReadFile(filepath.Join(dir, "a.jpg"))
	require.NoError(t, err)
	require.Equal(t, "second", string(b))
}

func TestUploads_handlerServesBlob(t *testing.T) {
	u, err := NewUploads(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, u.Put("cat.jpg", strings.NewReader("meow")))

	srv := httptest.NewServer(http.StripPrefix("/static/uploads/", u.Handler()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/static/uploads/cat.jpg")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "meow", string(body))
}

func TestUploads_handlerNamedFilesOnly(t *testing.T) {
	u, err := NewUploads(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, u.Put("index.html", strings.NewReader("<p>photo page</p>")))
	require.NoError(t, u.Put("cat.jpg", strings.NewReader("meow")))
	require.NoError(t, os.Mkdir(filepath.Join(u.Dir(), "album"), 0o755))

	h := http.StripPrefix("/static/uploads/", u.Handler())

	tests := []struct {
		name   string
		path   string
		status int
		body   string
	}{
		{name: "directory root", path: "/static/uploads/", status: http.StatusNotFound},
		{name: "sub directory", path: "/static/uploads/album/", status: http.StatusNotFound},
		{name: "directory without slash", path: "/static/uploads/album", status: http.StatusNotFound},
		{name: "missing file", path: "/static/uploads/nope.jpg", status: http.StatusNotFound},
		{name: "index.html is a plain file", path: "/static/uploads/index.html", status: http.StatusOK, body: "<p>photo page</p>"},
		{name: "traversal stays in dir", path: "/static/uploads/../../cat.jpg", status: http.StatusOK, body: "meow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				require.Equal(t, tt.body, rec.Body.String())
			}
			require.NotContains(t, rec.Body.String(), "cat.jpg")
		})
	}
}
