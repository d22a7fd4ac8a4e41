package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"locdir/internal/domain"
	"locdir/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func newTestRouter(locations repository.LocationRepository) http.Handler {
	return newTestRouterWithLogs(locations, newMemImportLogRepo())
}

func newTestRouterWithLogs(locations repository.LocationRepository, importLogs repository.ImportLogRepository) http.Handler {
	handler := NewHandler(locations, importLogs, nil, nil)
	router := chi.NewRouter()
	router.Route("/api", handler.Routes)
	return router
}

func TestListLocationsFiltersByTypeAndActive(t *testing.T) {
	repo := newMemLocationRepo()
	pharmacy := domain.NewLocation("Pharmacy A", "PHA", 53.35, -6.26)
	gp := domain.NewLocation("GP B", "GP", 52.66, -8.62)
	inactive := domain.NewLocation("Closed C", "PHA", 51.89, -8.47)
	inactive.IsActive = false
	for _, loc := range []domain.Location{pharmacy, gp, inactive} {
		if _, err := repo.Create(context.Background(), loc); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/locations?type=PHA&active=true", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var views []locationView
	if err := json.NewDecoder(rec.Body).Decode(&views); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(views) != 1 || views[0].Name != "Pharmacy A" {
		t.Fatalf("unexpected listing: %+v", views)
	}
	if views[0].Icon != "pharmacy" {
		t.Fatalf("expected pharmacy icon, got %q", views[0].Icon)
	}
}

func TestGetLocationNotFound(t *testing.T) {
	router := newTestRouter(newMemLocationRepo())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/locations/"+uuid.NewString(), nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateLocationRequiresNameAndType(t *testing.T) {
	router := newTestRouter(newMemLocationRepo())

	payload := bytes.NewBufferString(`{"name":"","type":"PHA","lat":53.35,"lng":-6.26}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/locations", payload))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteLocationDeactivates(t *testing.T) {
	repo := newMemLocationRepo()
	loc, err := repo.Create(context.Background(), domain.NewLocation("Pharmacy A", "PHA", 53.35, -6.26))
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/locations/"+loc.ID.String(), nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	stored, err := repo.GetByID(context.Background(), loc.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("expected location deactivated, record still active")
	}
}

func TestListImportsFiltersAndPaginates(t *testing.T) {
	logs := newMemImportLogRepo()
	rowIdx := 3
	entries := []domain.ImportLogEntry{
		{FileName: "a.csv", RowIndex: &rowIdx, Message: "missing name"},
		{FileName: "a.csv", Message: "import finished: rows=2 inserted=1 updated=0 skipped=1"},
		{FileName: "b.csv", Message: "import finished: rows=1 inserted=1 updated=0 skipped=0"},
	}
	for _, entry := range entries {
		if err := logs.Record(context.Background(), entry); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	router := newTestRouterWithLogs(newMemLocationRepo(), logs)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/imports?file=a.csv", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var listed []domain.ImportLogEntry
	if err := json.NewDecoder(rec.Body).Decode(&listed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 entries for a.csv, got %d", len(listed))
	}
	for _, entry := range listed {
		if entry.FileName != "a.csv" {
			t.Fatalf("unexpected file in listing: %q", entry.FileName)
		}
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/imports?limit=1&offset=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	listed = nil
	if err := json.NewDecoder(rec.Body).Decode(&listed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 entry with limit=1, got %d", len(listed))
	}
}

func TestListImportsRejectsBadPagination(t *testing.T) {
	router := newTestRouter(newMemLocationRepo())

	for _, target := range []string{"/api/imports?limit=0", "/api/imports?limit=abc", "/api/imports?offset=-1"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", target, rec.Code)
		}
	}
}

func TestMarkerIconFallsBack(t *testing.T) {
	if MarkerIcon("UNKNOWN") != defaultMarkerIcon {
		t.Fatalf("expected unknown types to use the default icon")
	}
}

// memLocationRepo is an in-memory LocationRepository for handler tests.
type memLocationRepo struct {
	records map[uuid.UUID]domain.Location
}

func newMemLocationRepo() *memLocationRepo {
	return &memLocationRepo{records: map[uuid.UUID]domain.Location{}}
}

func (m *memLocationRepo) Create(ctx context.Context, loc domain.Location) (domain.Location, error) {
	if loc.ID == uuid.Nil {
		loc.ID = uuid.New()
	}
	m.records[loc.ID] = loc
	return loc, nil
}

func (m *memLocationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Location, error) {
	loc, ok := m.records[id]
	if !ok {
		return domain.Location{}, repository.ErrNotFound
	}
	return loc, nil
}

func (m *memLocationRepo) FindBySourceKey(ctx context.Context, source, sourceID string) (domain.Location, error) {
	for _, loc := range m.records {
		if loc.Source == source && loc.SourceID == sourceID {
			return loc, nil
		}
	}
	return domain.Location{}, repository.ErrNotFound
}

func (m *memLocationRepo) List(ctx context.Context, filter domain.LocationFilter) ([]domain.Location, error) {
	out := []domain.Location{}
	for _, loc := range m.records {
		if filter.Type != nil && loc.Type != *filter.Type {
			continue
		}
		if filter.Active != nil && loc.IsActive != *filter.Active {
			continue
		}
		out = append(out, loc)
	}
	return out, nil
}

func (m *memLocationRepo) Update(ctx context.Context, loc domain.Location) (domain.Location, error) {
	if _, ok := m.records[loc.ID]; !ok {
		return domain.Location{}, repository.ErrNotFound
	}
	m.records[loc.ID] = loc
	return loc, nil
}

func (m *memLocationRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	loc, ok := m.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	loc.IsActive = false
	m.records[id] = loc
	return nil
}

var _ repository.LocationRepository = (*memLocationRepo)(nil)

// memImportLogRepo is an in-memory ImportLogRepository for handler tests.
type memImportLogRepo struct {
	entries []domain.ImportLogEntry
}

func newMemImportLogRepo() *memImportLogRepo {
	return &memImportLogRepo{}
}

func (m *memImportLogRepo) Record(ctx context.Context, entry domain.ImportLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memImportLogRepo) List(ctx context.Context, fileName string, limit, offset int) ([]domain.ImportLogEntry, error) {
	matched := []domain.ImportLogEntry{}
	for _, entry := range m.entries {
		if fileName != "" && entry.FileName != fileName {
			continue
		}
		matched = append(matched, entry)
	}
	if offset >= len(matched) {
		return []domain.ImportLogEntry{}, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

var _ repository.ImportLogRepository = (*memImportLogRepo)(nil)
