package repository

import (
	"context"
	"errors"
	"fmt"

	"locdir/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const locationColumns = `id, name, type, eircode, address, email, phone,
	contact1, contact2, contact3, link, lat, lng, is_active, source,
	COALESCE(source_id, ''), created_at, updated_at`

// locationRepository implements LocationRepository on Postgres.
type locationRepository struct {
	pool *pgxpool.Pool
}

// NewLocationRepository creates a new location repository.
func NewLocationRepository(pool *pgxpool.Pool) LocationRepository {
	return &locationRepository{pool: pool}
}

// Create inserts a new location. A zero ID is replaced with a fresh one.
func (r *locationRepository) Create(ctx context.Context, loc domain.Location) (domain.Location, error) {
	if loc.ID == uuid.Nil {
		loc.ID = uuid.New()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO locations (
			id, name, type, eircode, address, email, phone,
			contact1, contact2, contact3, link, lat, lng, is_active,
			source, source_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, NULLIF($16, '')
		)
		RETURNING `+locationColumns,
		loc.ID, loc.Name, loc.Type, loc.Eircode, loc.Address, loc.Email,
		loc.Phone, loc.Contact1, loc.Contact2, loc.Contact3, loc.Link,
		loc.Lat, loc.Lng, loc.IsActive, loc.Source, loc.SourceID,
	)

	created, err := scanLocation(row)
	if err != nil {
		return domain.Location{}, fmt.Errorf("failed to create location: %w", err)
	}
	return created, nil
}

// GetByID retrieves a location by its identifier.
func (r *locationRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Location, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+locationColumns+`
		FROM locations
		WHERE id = $1`, id)

	loc, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Location{}, ErrNotFound
		}
		return domain.Location{}, fmt.Errorf("failed to get location: %w", err)
	}
	return loc, nil
}

// FindBySourceKey looks up a location by its (source, sourceId) natural key.
func (r *locationRepository) FindBySourceKey(ctx context.Context, source, sourceID string) (domain.Location, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+locationColumns+`
		FROM locations
		WHERE source = $1 AND source_id = $2`, source, sourceID)

	loc, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Location{}, ErrNotFound
		}
		return domain.Location{}, fmt.Errorf("failed to find location by source key: %w", err)
	}
	return loc, nil
}

// List retrieves locations matching the filter, newest first.
func (r *locationRepository) List(ctx context.Context, filter domain.LocationFilter) ([]domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE 1=1`
	args := []any{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		query += fmt.Sprintf(" AND is_active = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	locations := []domain.Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read locations: %w", err)
	}
	return locations, nil
}

// Update replaces the mutable fields of an existing location.
func (r *locationRepository) Update(ctx context.Context, loc domain.Location) (domain.Location, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE locations SET
			name = $2, type = $3, eircode = $4, address = $5, email = $6,
			phone = $7, contact1 = $8, contact2 = $9, contact3 = $10,
			link = $11, lat = $12, lng = $13, is_active = $14,
			source = $15, source_id = NULLIF($16, ''), updated_at = now()
		WHERE id = $1
		RETURNING `+locationColumns,
		loc.ID, loc.Name, loc.Type, loc.Eircode, loc.Address, loc.Email,
		loc.Phone, loc.Contact1, loc.Contact2, loc.Contact3, loc.Link,
		loc.Lat, loc.Lng, loc.IsActive, loc.Source, loc.SourceID,
	)

	updated, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Location{}, ErrNotFound
		}
		return domain.Location{}, fmt.Errorf("failed to update location: %w", err)
	}
	return updated, nil
}

// Deactivate soft-deletes a location by clearing its active flag.
func (r *locationRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE locations SET is_active = FALSE, updated_at = now()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanLocation(row pgx.Row) (domain.Location, error) {
	var loc domain.Location
	err := row.Scan(
		&loc.ID, &loc.Name, &loc.Type, &loc.Eircode, &loc.Address,
		&loc.Email, &loc.Phone, &loc.Contact1, &loc.Contact2, &loc.Contact3,
		&loc.Link, &loc.Lat, &loc.Lng, &loc.IsActive, &loc.Source,
		&loc.SourceID, &loc.CreatedAt, &loc.UpdatedAt,
	)
	return loc, err
}
