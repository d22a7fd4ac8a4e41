package repository

import (
	"context"
	"errors"

	"locdir/internal/domain"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// LocationRepository defines the interface for location persistence.
// FindBySourceKey, Create and Update are the three operations the import
// pipeline depends on; the rest serve the CRUD endpoints.
type LocationRepository interface {
	Create(ctx context.Context, loc domain.Location) (domain.Location, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Location, error)
	FindBySourceKey(ctx context.Context, source, sourceID string) (domain.Location, error)
	List(ctx context.Context, filter domain.LocationFilter) ([]domain.Location, error)
	Update(ctx context.Context, loc domain.Location) (domain.Location, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// GeocodeCacheRepository persists resolved geocoding queries.
type GeocodeCacheRepository interface {
	FindByQuery(ctx context.Context, query string) (domain.GeocodeCacheEntry, error)
	Save(ctx context.Context, entry domain.GeocodeCacheEntry) (domain.GeocodeCacheEntry, error)
	Touch(ctx context.Context, id int64) error
}

// ImportLogRepository stores import events for observability.
type ImportLogRepository interface {
	Record(ctx context.Context, entry domain.ImportLogEntry) error
	List(ctx context.Context, fileName string, limit, offset int) ([]domain.ImportLogEntry, error)
}
