package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"locdir/internal/domain"
	"locdir/internal/geocode"
	"locdir/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Handler serves the thin CRUD and geocode endpoints consumed by the map
// front end.
type Handler struct {
	locations  repository.LocationRepository
	importLogs repository.ImportLogRepository
	geocoder   *geocode.Service
	logger     *logrus.Logger
}

// NewHandler creates the API handler.
func NewHandler(locations repository.LocationRepository, importLogs repository.ImportLogRepository, geocoder *geocode.Service, logger *logrus.Logger) *Handler {
	return &Handler{locations: locations, importLogs: importLogs, geocoder: geocoder, logger: logger}
}

// Routes mounts the handler's endpoints on a chi router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/locations", h.listLocations)
	r.Post("/locations", h.createLocation)
	r.Get("/locations/{id}", h.getLocation)
	r.Put("/locations/{id}", h.updateLocation)
	r.Delete("/locations/{id}", h.deleteLocation)
	r.Get("/icons", h.listIcons)
	r.Get("/geocode", h.lookupGeocode)
	r.Get("/imports", h.listImports)
}

type locationView struct {
	domain.Location
	Icon string `json:"icon"`
}

func toView(loc domain.Location) locationView {
	return locationView{Location: loc, Icon: MarkerIcon(loc.Type)}
}

func (h *Handler) listLocations(w http.ResponseWriter, r *http.Request) {
	filter := domain.LocationFilter{}

	if t := r.URL.Query().Get("type"); t != "" {
		filter.Type = &t
	}
	if a := r.URL.Query().Get("active"); a != "" {
		active, err := strconv.ParseBool(a)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid active filter: %v", err), http.StatusBadRequest)
			return
		}
		filter.Active = &active
	}

	locations, err := h.locations.List(r.Context(), filter)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	views := make([]locationView, len(locations))
	for i, loc := range locations {
		views[i] = toView(loc)
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) getLocation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid location id: %v", err), http.StatusBadRequest)
		return
	}

	loc, err := h.locations.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "location not found", http.StatusNotFound)
			return
		}
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toView(loc))
}

func (h *Handler) createLocation(w http.ResponseWriter, r *http.Request) {
	var loc domain.Location
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}
	if loc.Name == "" || loc.Type == "" {
		http.Error(w, "name and type are required", http.StatusBadRequest)
		return
	}

	created := domain.NewLocation(loc.Name, loc.Type, loc.Lat, loc.Lng)
	created.Eircode = loc.Eircode
	created.Address = loc.Address
	created.Email = loc.Email
	created.Phone = loc.Phone
	created.Contact1 = loc.Contact1
	created.Contact2 = loc.Contact2
	created.Contact3 = loc.Contact3
	created.Link = loc.Link
	if loc.Source != "" {
		created.Source = loc.Source
	}
	created.SourceID = loc.SourceID

	saved, err := h.locations.Create(r.Context(), created)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toView(saved))
}

func (h *Handler) updateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid location id: %v", err), http.StatusBadRequest)
		return
	}

	var loc domain.Location
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}
	loc.ID = id

	updated, err := h.locations.Update(r.Context(), loc)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "location not found", http.StatusNotFound)
			return
		}
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toView(updated))
}

func (h *Handler) deleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid location id: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.locations.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "location not found", http.StatusNotFound)
			return
		}
		h.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listImports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 50
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	offset := 0
	if raw := q.Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "invalid offset", http.StatusBadRequest)
			return
		}
		offset = parsed
	}

	entries, err := h.importLogs.List(r.Context(), q.Get("file"), limit, offset)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) listIcons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, markerIcons)
}

func (h *Handler) lookupGeocode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "q parameter is required", http.StatusBadRequest)
		return
	}

	result, err := h.geocoder.Lookup(r.Context(), query)
	if err != nil {
		var provErr *geocode.ProviderError
		if errors.As(err, &provErr) {
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"status":  provErr.Status,
				"message": provErr.Message,
			})
			return
		}
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	if h.logger != nil {
		h.logger.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Errorf("request failed: %v", err)
	}
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
