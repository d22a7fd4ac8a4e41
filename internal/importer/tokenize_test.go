package importer

import (
	"reflect"
	"testing"
)

func TestSplitFieldsQuotedDelimiter(t *testing.T) {
	got := SplitFields(`a,"b,c",d`, ',')
	want := []string{"a", "b,c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitFields = %q, want %q", got, want)
	}
}

func TestSplitFieldsEscapedQuote(t *testing.T) {
	got := SplitFields(`"He said ""hi"""`, ',')
	if len(got) != 1 || got[0] != `He said "hi"` {
		t.Fatalf("SplitFields = %q, want one field %q", got, `He said "hi"`)
	}
}

func TestSplitFieldsEmptyTrailingField(t *testing.T) {
	got := SplitFields("a,b,", ',')
	want := []string{"a", "b", ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitFields = %q, want %q", got, want)
	}
}

func TestSplitFieldsSemicolon(t *testing.T) {
	got := SplitFields(`x;"y;z";w`, ';')
	want := []string{"x", "y;z", "w"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitFields = %q, want %q", got, want)
	}
}

func TestSplitFieldsUnterminatedQuoteConsumesRest(t *testing.T) {
	got := SplitFields(`a,"b,c`, ',')
	want := []string{"a", "b,c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitFields = %q, want %q", got, want)
	}
}
