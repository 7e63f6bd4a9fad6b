package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"photoportal/internal/models"
)

// fileRepo keeps the catalog as one indented JSON array on disk.
type fileRepo struct {
	path string

	// held only across Upsert when serialize is set
	mu        sync.Mutex
	serialize bool
}

func NewFile(path string, serialize bool) Repo {
	return &fileRepo{path: path, serialize: serialize}
}

func (f *fileRepo) Load(ctx context.Context) ([]models.Photo, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Photo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", f.path, err)
	}
	var photos []models.Photo
	if err := json.Unmarshal(b, &photos); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", f.path, err)
	}
	if photos == nil {
		photos = []models.Photo{}
	}
	zerolog.Ctx(ctx).Debug().Str("path", f.path).Int("count", len(photos)).Msg("catalog loaded")
	return photos, nil
}

// Save writes to a temp file in the same directory and renames it over the
// document so readers never observe a partial write.
func (f *fileRepo) Save(ctx context.Context, photos []models.Photo) error {
	if photos == nil {
		photos = []models.Photo{}
	}
	b, err := json.MarshalIndent(photos, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".photos-*.json")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp catalog: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace catalog %s: %w", f.path, err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", f.path).Int("count", len(photos)).Msg("catalog saved")
	return nil
}

func (f *fileRepo) Upsert(ctx context.Context, p models.Photo) error {
	if f.serialize {
		f.mu.Lock()
		defer f.mu.Unlock()
	}
	photos, err := f.Load(ctx)
	if err != nil {
		return err
	}
	return f.Save(ctx, replaceByName(photos, p))
}
