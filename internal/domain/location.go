package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSource is the provider tag assigned to imported rows whose file
// carries no source column.
const DefaultSource = "import"

// Location represents a single point of interest rendered on the map.
type Location struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Eircode   string    `json:"eircode,omitempty"`
	Address   string    `json:"address,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Contact1  string    `json:"contact1,omitempty"`
	Contact2  string    `json:"contact2,omitempty"`
	Contact3  string    `json:"contact3,omitempty"`
	Link      string    `json:"link,omitempty"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	IsActive  bool      `json:"isActive"`
	Source    string    `json:"source"`
	SourceID  string    `json:"sourceId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewLocation creates a location with a fresh identifier and timestamps.
func NewLocation(name, locationType string, lat, lng float64) Location {
	now := time.Now()
	return Location{
		ID:        uuid.New(),
		Name:      name,
		Type:      locationType,
		Lat:       lat,
		Lng:       lng,
		IsActive:  true,
		Source:    DefaultSource,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasSourceKey reports whether the record carries the natural key used for
// idempotent re-import.
func (l Location) HasSourceKey() bool {
	return l.SourceID != ""
}

// LocationFilter narrows location listings for the map sidebar.
type LocationFilter struct {
	Type   *string
	Active *bool
}
