package importer

import (
	"fmt"
	"strings"
)

// Field identifies one canonical location attribute resolvable from a
// header alias.
type Field string

const (
	FieldName     Field = "name"
	FieldType     Field = "type"
	FieldEircode  Field = "eircode"
	FieldAddress  Field = "address"
	FieldLat      Field = "lat"
	FieldLng      Field = "lng"
	FieldEmail    Field = "email"
	FieldPhone    Field = "phone"
	FieldContact1 Field = "contact1"
	FieldContact2 Field = "contact2"
	FieldContact3 Field = "contact3"
	FieldLink     Field = "link"
	FieldSource   Field = "source"
	FieldSourceID Field = "sourceid"
)

// fieldAliases maps each canonical field to its accepted normalized header
// keys. Order within a group is the lookup preference; first match wins.
var fieldAliases = map[Field][]string{
	FieldName:     {"name"},
	FieldType:     {"type"},
	FieldEircode:  {"eircode"},
	FieldAddress:  {"address"},
	FieldLat:      {"lat", "latitude"},
	FieldLng:      {"lng", "lon", "long", "longitude"},
	FieldEmail:    {"email"},
	FieldPhone:    {"phone"},
	FieldContact1: {"contact1"},
	FieldContact2: {"contact2"},
	FieldContact3: {"contact3"},
	FieldLink:     {"link", "website", "url"},
	FieldSource:   {"source"},
	FieldSourceID: {"sourceid"},
}

// canonicalFields lists every resolvable field, in output order.
var canonicalFields = []Field{
	FieldName, FieldType, FieldEircode, FieldAddress, FieldLat, FieldLng,
	FieldEmail, FieldPhone, FieldContact1, FieldContact2, FieldContact3,
	FieldLink, FieldSource, FieldSourceID,
}

// NormalizeHeader reduces a raw header cell to its lookup key: BOM stripped,
// trimmed, lowercased, with internal whitespace, underscores and hyphens
// removed, so "Source Id", "source_id" and "sourceId" all become "sourceid".
func NormalizeHeader(raw string) string {
	key := CleanString(raw)
	key = strings.ToLower(key)
	key = strings.Join(strings.Fields(key), "")
	key = strings.ReplaceAll(key, "_", "")
	key = strings.ReplaceAll(key, "-", "")
	return key
}

// HeaderMap binds a parsed header line to canonical fields. It is built once
// per file and applied to every data row.
type HeaderMap struct {
	keys  []string
	index map[string]int
}

// NewHeaderMap normalizes the raw header fields into ordered keys. Cells
// that normalize to nothing get a synthetic column key so positions stay
// stable; duplicates keep the first occurrence for lookups.
func NewHeaderMap(rawHeaders []string) HeaderMap {
	keys := make([]string, len(rawHeaders))
	index := make(map[string]int, len(rawHeaders))

	for i, raw := range rawHeaders {
		key := NormalizeHeader(raw)
		if key == "" {
			key = fmt.Sprintf("column%d", i+1)
		}
		keys[i] = key
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	return HeaderMap{keys: keys, index: index}
}

// Keys returns the normalized header keys in column order.
func (m HeaderMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

// BindRow resolves each canonical field to its raw string value for one
// tokenized row. Fields past the end of a short row resolve to the empty
// string; extra row fields beyond the header are ignored.
func (m HeaderMap) BindRow(fields []string) map[Field]string {
	row := make(map[Field]string, len(canonicalFields))
	for _, field := range canonicalFields {
		row[field] = m.lookup(field, fields)
	}
	return row
}

// Sample builds the normalized-key to raw-value mapping returned to callers
// for the first data row. Row fields past the end of the header get
// synthetic column keys so over-long rows stay visible in the sample.
func (m HeaderMap) Sample(fields []string) map[string]string {
	sample := make(map[string]string, len(m.keys))
	for i, key := range m.keys {
		if i < len(fields) {
			sample[key] = fields[i]
		} else {
			sample[key] = ""
		}
	}
	for i := len(m.keys); i < len(fields); i++ {
		sample[fmt.Sprintf("column%d", i+1)] = fields[i]
	}
	return sample
}

func (m HeaderMap) lookup(field Field, fields []string) string {
	for _, alias := range fieldAliases[field] {
		col, ok := m.index[alias]
		if !ok {
			continue
		}
		if col < len(fields) {
			return fields[col]
		}
		return ""
	}
	return ""
}
