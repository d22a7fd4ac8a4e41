package importer

import "strings"

// SplitFields splits one line into raw fields on the detected delimiter,
// honoring double-quoted spans: a delimiter inside an open quote does not
// end the field, and a doubled quote inside a quoted span decodes to one
// literal quote. No column-count validation is performed against the header;
// short and long rows are both tolerated.
func SplitFields(line string, delimiter rune) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == delimiter && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(ch)
		}
	}
	fields = append(fields, field.String())
	return fields
}
