// internal/repo/repo.go
package repo

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"photoportal/internal/models"
)

var ErrUnknownBackend = errors.New("unknown catalog backend")

// Repo is the Catalog Store. It owns the full ordered list of photo records;
// insertion order is the order Load returns.
type Repo interface {
	// Load returns every record. An absent backing document is an empty catalog.
	Load(ctx context.Context) ([]models.Photo, error)
	// Save replaces the whole catalog with photos.
	Save(ctx context.Context, photos []models.Photo) error
	// Upsert drops any record named p.Name and appends p.
	Upsert(ctx context.Context, p models.Photo) error
}

// Options selects and configures a backend.
type Options struct {
	Backend     string // "file" or "postgres"
	DataPath    string
	DatabaseURL string
	// SerializeUpserts guards the read-modify-write in Upsert with a mutex.
	SerializeUpserts bool
}

// Open builds the configured Repo. The returned close func releases any
// connections and is never nil.
func Open(ctx context.Context, opts Options) (Repo, func(), error) {
	switch opts.Backend {
	case "", "file":
		return NewFile(opts.DataPath, opts.SerializeUpserts), func() {}, nil
	case "postgres":
		pg, err := NewPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, func() {}, err
		}
		return pg, pg.Close, nil
	default:
		return nil, func() {}, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// replaceByName is the upsert rule shared by the backends.
func replaceByName(photos []models.Photo, p models.Photo) []models.Photo {
	out := slices.DeleteFunc(slices.Clone(photos), func(existing models.Photo) bool {
		return existing.Name == p.Name
	})
	return append(out, p)
}
