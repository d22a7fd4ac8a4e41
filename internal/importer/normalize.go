package importer

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const byteOrderMark = "\uFEFF"

// ErrInvalidEncoding is returned when an upload is not valid UTF-8.
var ErrInvalidEncoding = errors.New("file is not valid utf-8")

// NormalizeText decodes the raw upload into logical lines: a single leading
// byte-order mark is stripped, CRLF and bare CR line endings are folded to
// LF, and all-whitespace lines are dropped entirely.
func NormalizeText(payload []byte) ([]string, error) {
	if !utf8.Valid(payload) {
		return nil, ErrInvalidEncoding
	}

	text := strings.TrimPrefix(string(payload), byteOrderMark)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}
