package repository

import (
	"context"
	"errors"
	"fmt"

	"locdir/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const geocodeCacheColumns = `id, query, lat, lng, display_name, hits, last_used_at, created_at`

// geocodeCacheRepository implements GeocodeCacheRepository on Postgres.
type geocodeCacheRepository struct {
	pool *pgxpool.Pool
}

// NewGeocodeCacheRepository creates a new geocode cache repository.
func NewGeocodeCacheRepository(pool *pgxpool.Pool) GeocodeCacheRepository {
	return &geocodeCacheRepository{pool: pool}
}

// FindByQuery retrieves a cached resolution for a normalized query string.
func (r *geocodeCacheRepository) FindByQuery(ctx context.Context, query string) (domain.GeocodeCacheEntry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+geocodeCacheColumns+`
		FROM geocode_cache
		WHERE query = $1`, query)

	entry, err := scanGeocodeCacheEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.GeocodeCacheEntry{}, ErrNotFound
		}
		return domain.GeocodeCacheEntry{}, fmt.Errorf("failed to read geocode cache: %w", err)
	}
	return entry, nil
}

// Save stores a resolved query, replacing the coordinates if the query is
// already cached.
func (r *geocodeCacheRepository) Save(ctx context.Context, entry domain.GeocodeCacheEntry) (domain.GeocodeCacheEntry, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO geocode_cache (query, lat, lng, display_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (query) DO UPDATE SET
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			display_name = EXCLUDED.display_name,
			hits = geocode_cache.hits + 1,
			last_used_at = now()
		RETURNING `+geocodeCacheColumns,
		entry.Query, entry.Lat, entry.Lng, entry.DisplayName)

	saved, err := scanGeocodeCacheEntry(row)
	if err != nil {
		return domain.GeocodeCacheEntry{}, fmt.Errorf("failed to save geocode cache entry: %w", err)
	}
	return saved, nil
}

// Touch bumps the usage metadata of a cache entry on a hit.
func (r *geocodeCacheRepository) Touch(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `
		UPDATE geocode_cache SET hits = hits + 1, last_used_at = now()
		WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to touch geocode cache entry: %w", err)
	}
	return nil
}

func scanGeocodeCacheEntry(row pgx.Row) (domain.GeocodeCacheEntry, error) {
	var entry domain.GeocodeCacheEntry
	err := row.Scan(
		&entry.ID, &entry.Query, &entry.Lat, &entry.Lng, &entry.DisplayName,
		&entry.Hits, &entry.LastUsedAt, &entry.CreatedAt,
	)
	return entry, err
}
