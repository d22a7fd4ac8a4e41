package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"locdir/internal/domain"
	"locdir/internal/repository"
)

// Provider resolves a free-text query to coordinates.
type Provider interface {
	Geocode(ctx context.Context, query string) (Result, error)
}

// Service is a read-through cache around the external provider: hits are
// served from the store and their usage metadata bumped, misses call the
// provider and persist the result.
type Service struct {
	cache  repository.GeocodeCacheRepository
	client Provider
}

// NewService creates a new geocoding service.
func NewService(cache repository.GeocodeCacheRepository, client Provider) *Service {
	return &Service{cache: cache, client: client}
}

// Lookup resolves a query, consulting the cache first. The cache key is the
// normalized query, so equivalent spellings share one entry.
func (s *Service) Lookup(ctx context.Context, query string) (Result, error) {
	normalized := NormalizeQuery(query)
	if normalized == "" {
		return Result{}, errors.New("query is required")
	}

	entry, err := s.cache.FindByQuery(ctx, normalized)
	if err == nil {
		_ = s.cache.Touch(ctx, entry.ID)
		return Result{Lat: entry.Lat, Lng: entry.Lng, DisplayName: entry.DisplayName}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return Result{}, fmt.Errorf("geocode cache lookup failed: %w", err)
	}

	result, err := s.client.Geocode(ctx, query)
	if err != nil {
		return Result{}, err
	}

	// A failed cache write must not fail the lookup itself.
	_, _ = s.cache.Save(ctx, domain.GeocodeCacheEntry{
		Query:       normalized,
		Lat:         result.Lat,
		Lng:         result.Lng,
		DisplayName: result.DisplayName,
	})

	return result, nil
}

// NormalizeQuery reduces a query to its cache key: trimmed, lowercased,
// internal whitespace collapsed.
func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
