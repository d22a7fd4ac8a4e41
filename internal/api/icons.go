package api

// markerIcons maps a location type to the marker icon the map front end
// renders. Read-only; loaded once at startup.
var markerIcons = map[string]string{
	"PHA":      "pharmacy",
	"GP":       "doctor",
	"CLINIC":   "clinic",
	"HOSPITAL": "hospital",
	"DENTIST":  "dentist",
	"OPTICIAN": "optician",
	"OTHER":    "pin",
}

const defaultMarkerIcon = "pin"

// MarkerIcon resolves the icon name for a location type.
func MarkerIcon(locationType string) string {
	if icon, ok := markerIcons[locationType]; ok {
		return icon
	}
	return defaultMarkerIcon
}
