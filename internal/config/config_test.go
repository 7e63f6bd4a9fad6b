package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_defaults(t *testing.T) {
	chdir(t, t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:5009", c.Server.Addr)
	require.Equal(t, "file", c.Storage.Backend)
	require.Equal(t, "photos.json", c.Storage.DataPath)
	require.Equal(t, "static/uploads", c.Storage.UploadDir)
	require.True(t, c.Storage.SerializeUpserts)
	require.Equal(t, "photoportal.log", c.Log.Path)
	require.Equal(t, "photoportal", c.Session.Name)
	require.Equal(t, 86400, c.Session.MaxAge)
	require.False(t, c.Session.Secure)
}

func TestLoad_fileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  data_path: /data/photos.json
  upload_dir: /data/uploads
session:
  secret: from-file
cors:
  allowed_origins:
    - http://localhost:3000
`), 0o644))

	t.Setenv("SESSION_SECRET", "from-env")
	t.Setenv("PORT", "8081")
	t.Setenv("SESSION_SECURE", "true")

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/data/photos.json", c.Storage.DataPath)
	require.Equal(t, "/data/uploads", c.Storage.UploadDir)
	require.Equal(t, "from-env", c.Session.Secret)
	require.Equal(t, ":8081", c.Server.Addr)
	require.True(t, c.Session.Secure)
	require.Equal(t, []string{"http://localhost:3000"}, c.CORS.AllowedOrigins)
}

func TestLoad_validation(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("STORAGE_BACKEND", "postgres")
	_, err := Load("")
	require.ErrorContains(t, err, "database.url")

	t.Setenv("DATABASE_URL", "postgres://localhost/photos")
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "postgres", c.Storage.Backend)

	t.Setenv("STORAGE_BACKEND", "sqlite")
	_, err = Load("")
	require.ErrorContains(t, err, "unknown storage.backend")
}

func TestLoad_missingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
