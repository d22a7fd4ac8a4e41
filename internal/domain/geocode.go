package domain

import "time"

// GeocodeCacheEntry maps a normalized free-text query (address or eircode)
// to the coordinates resolved by the external provider.
type GeocodeCacheEntry struct {
	ID          int64     `json:"id"`
	Query       string    `json:"query"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	DisplayName string    `json:"displayName,omitempty"`
	Hits        int       `json:"hits"`
	LastUsedAt  time.Time `json:"lastUsedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}
