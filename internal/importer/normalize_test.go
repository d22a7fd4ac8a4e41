package importer

import (
	"errors"
	"testing"
)

func TestNormalizeTextStripsBOMAndLineEndings(t *testing.T) {
	payload := []byte("\xEF\xBB\xBFname,type\r\nClinic A,PHA\rClinic B,GP\n")

	lines, err := NormalizeText(payload)
	if err != nil {
		t.Fatalf("normalize returned error: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "name,type" {
		t.Fatalf("expected BOM stripped from header, got %q", lines[0])
	}
	if lines[1] != "Clinic A,PHA" || lines[2] != "Clinic B,GP" {
		t.Fatalf("unexpected data lines: %q", lines[1:])
	}
}

func TestNormalizeTextDropsBlankLines(t *testing.T) {
	payload := []byte("name,type\n\n   \t \nClinic A,PHA\n\n")

	lines, err := NormalizeText(payload)
	if err != nil {
		t.Fatalf("normalize returned error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected blank lines dropped, got %d lines: %q", len(lines), lines)
	}
}

func TestNormalizeTextRejectsInvalidUTF8(t *testing.T) {
	if _, err := NormalizeText([]byte{0xFF, 0xFE, 0x41}); !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
}
