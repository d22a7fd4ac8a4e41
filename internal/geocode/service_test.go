package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"locdir/internal/domain"
	"locdir/internal/repository"
)

func TestServiceLookupCacheMissCallsProviderAndSaves(t *testing.T) {
	cache := newStubCacheRepo()
	provider := &stubProvider{result: Result{Lat: 53.35, Lng: -6.26, DisplayName: "Dublin"}}
	service := NewService(cache, provider)

	result, err := service.Lookup(context.Background(), "  Dublin   Castle ")
	if err != nil {
		t.Fatalf("lookup returned error: %v", err)
	}
	if result.Lat != 53.35 || result.Lng != -6.26 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if provider.calls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.calls)
	}

	saved, ok := cache.entries["dublin castle"]
	if !ok {
		t.Fatalf("expected result cached under normalized query, have %v", cache.entries)
	}
	if saved.Lat != 53.35 {
		t.Fatalf("unexpected cached entry: %+v", saved)
	}
}

func TestServiceLookupCacheHitSkipsProvider(t *testing.T) {
	cache := newStubCacheRepo()
	cache.entries["d02 xy45"] = domain.GeocodeCacheEntry{
		ID: 7, Query: "d02 xy45", Lat: 53.34, Lng: -6.25,
	}
	provider := &stubProvider{}
	service := NewService(cache, provider)

	result, err := service.Lookup(context.Background(), "D02 XY45")
	if err != nil {
		t.Fatalf("lookup returned error: %v", err)
	}
	if result.Lat != 53.34 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if provider.calls != 0 {
		t.Fatalf("expected cache hit to skip provider, got %d calls", provider.calls)
	}
	if cache.touched != 7 {
		t.Fatalf("expected usage metadata bumped for entry 7, got %d", cache.touched)
	}
}

func TestServiceLookupPropagatesProviderError(t *testing.T) {
	cache := newStubCacheRepo()
	provider := &stubProvider{err: &ProviderError{Status: 404, Message: "no results for query"}}
	service := NewService(cache, provider)

	_, err := service.Lookup(context.Background(), "nowhere")
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.Status != 404 {
		t.Fatalf("unexpected status: %d", provErr.Status)
	}
	if len(cache.entries) != 0 {
		t.Fatalf("failed lookups must not be cached")
	}
}

func TestServiceLookupRejectsEmptyQuery(t *testing.T) {
	service := NewService(newStubCacheRepo(), &stubProvider{})
	if _, err := service.Lookup(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for empty query")
	}
}

type stubProvider struct {
	result Result
	err    error
	calls  int
}

func (s *stubProvider) Geocode(ctx context.Context, query string) (Result, error) {
	s.calls++
	if s.err != nil {
		return Result{}, s.err
	}
	return s.result, nil
}

type stubCacheRepo struct {
	entries map[string]domain.GeocodeCacheEntry
	touched int64
	nextID  int64
}

func newStubCacheRepo() *stubCacheRepo {
	return &stubCacheRepo{entries: map[string]domain.GeocodeCacheEntry{}, nextID: 1}
}

func (s *stubCacheRepo) FindByQuery(ctx context.Context, query string) (domain.GeocodeCacheEntry, error) {
	entry, ok := s.entries[query]
	if !ok {
		return domain.GeocodeCacheEntry{}, repository.ErrNotFound
	}
	return entry, nil
}

func (s *stubCacheRepo) Save(ctx context.Context, entry domain.GeocodeCacheEntry) (domain.GeocodeCacheEntry, error) {
	if existing, ok := s.entries[entry.Query]; ok {
		entry.ID = existing.ID
		entry.Hits = existing.Hits + 1
	} else {
		entry.ID = s.nextID
		s.nextID++
		entry.Hits = 1
	}
	entry.LastUsedAt = time.Now()
	s.entries[entry.Query] = entry
	return entry, nil
}

func (s *stubCacheRepo) Touch(ctx context.Context, id int64) error {
	s.touched = id
	return nil
}

var _ repository.GeocodeCacheRepository = (*stubCacheRepo)(nil)
var _ Provider = (*stubProvider)(nil)
