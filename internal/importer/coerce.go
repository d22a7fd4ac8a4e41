package importer

import (
	"math"
	"strconv"
	"strings"
)

// CleanString normalizes one raw field value: BOM stripped, surrounding
// whitespace trimmed, one matching pair of outer quotes (double or single)
// removed, and doubled double-quotes unescaped to a single literal quote.
// Callers treat the empty result as an absent optional field.
func CleanString(raw string) string {
	value := strings.TrimPrefix(raw, byteOrderMark)
	value = strings.TrimSpace(value)

	if len(value) >= 2 {
		first := value[0]
		last := value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			value = value[1 : len(value)-1]
		}
	}

	return strings.ReplaceAll(value, `""`, `"`)
}

// ToNumber coerces a raw field to a float64 using a dual-locale heuristic:
// when the value holds both a comma and a period the commas are thousands
// separators ("1,234.56" -> 1234.56); a comma without a period is a decimal
// separator ("51,901" -> 51.901). Characters other than digits, comma,
// period, plus and minus are discarded first. The second return value is
// false when the field is empty, unparseable, or non-finite.
func ToNumber(raw string) (float64, bool) {
	value := CleanString(raw)
	if value == "" {
		return 0, false
	}

	var b strings.Builder
	for _, ch := range value {
		switch {
		case ch >= '0' && ch <= '9', ch == ',', ch == '.', ch == '+', ch == '-':
			b.WriteRune(ch)
		}
	}
	value = b.String()

	hasComma := strings.Contains(value, ",")
	hasPeriod := strings.Contains(value, ".")
	switch {
	case hasComma && hasPeriod:
		value = strings.ReplaceAll(value, ",", "")
	case hasComma:
		value = strings.ReplaceAll(value, ",", ".")
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}
