package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"photoportal/internal/models"
)

// seq keeps insertion order: an upsert deletes the old row and inserts a
// new one, so the replaced record moves to the end like the file backend.
const schema = `
CREATE TABLE IF NOT EXISTS photos (
	seq        BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	url        TEXT NOT NULL,
	date_taken TEXT NOT NULL DEFAULT '',
	tags       TEXT NOT NULL DEFAULT ''
)`

// PostgresRepo stores the catalog in a single table.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, url string) (*PostgresRepo, error) {
	if url == "" {
		return nil, fmt.Errorf("postgres catalog: database url required")
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("db connect error: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create photos table: %w", err)
	}
	return &PostgresRepo{pool: pool}, nil
}

func (p *PostgresRepo) Close() { p.pool.Close() }

func (p *PostgresRepo) Load(ctx context.Context) ([]models.Photo, error) {
	rows, err := p.pool.Query(ctx, `SELECT name, url, date_taken, tags FROM photos ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query photos: %w", err)
	}
	photos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Photo, error) {
		var ph models.Photo
		err := row.Scan(&ph.Name, &ph.URL, &ph.DateTaken, &ph.Tags)
		return ph, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan photos: %w", err)
	}
	if photos == nil {
		photos = []models.Photo{}
	}
	zerolog.Ctx(ctx).Debug().Int("count", len(photos)).Msg("catalog loaded")
	return photos, nil
}

func (p *PostgresRepo) Save(ctx context.Context, photos []models.Photo) error {
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM photos`); err != nil {
			return fmt.Errorf("clear photos: %w", err)
		}
		for _, ph := range photos {
			if err := insertPhoto(ctx, tx, ph); err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *PostgresRepo) Upsert(ctx context.Context, ph models.Photo) error {
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM photos WHERE name = $1`, ph.Name); err != nil {
			return fmt.Errorf("delete photo %s: %w", ph.Name, err)
		}
		return insertPhoto(ctx, tx, ph)
	})
}

func insertPhoto(ctx context.Context, tx pgx.Tx, ph models.Photo) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO photos (name, url, date_taken, tags) VALUES ($1, $2, $3, $4)`,
		ph.Name, ph.URL, ph.DateTaken, ph.Tags)
	if err != nil {
		return fmt.Errorf("insert photo %s: %w", ph.Name, err)
	}
	return nil
}
