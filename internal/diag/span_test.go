package diag_test

import (
	"testing"

	"github.com/td12dk/td12dk/internal/diag"
)

func TestSpanUnion_SameLine(t *testing.T) {
	a := diag.Span{File: "f.td", Line: 3, Col: 5, Length: 1}
	b := diag.Span{File: "f.td", Line: 3, Col: 9, Length: 4}

	u := a.Union(b)

	if u.Line != a.Line || u.Col != a.Col {
		t.Fatalf("union start: got (%d,%d), want (%d,%d)", u.Line, u.Col, a.Line, a.Col)
	}

	want := (b.Col + b.Length) - a.Col
	if u.Length != want {
		t.Errorf("union length: got %d, want %d", u.Length, want)
	}

	if u.ExtraLines != 0 {
		t.Errorf("extra lines: got %d, want 0", u.ExtraLines)
	}
}

func TestSpanUnion_MultiLine(t *testing.T) {
	a := diag.Span{File: "f.td", Line: 3, Col: 1, Length: 1}
	b := diag.Span{File: "f.td", Line: 5, Col: 2, Length: 1}

	u := a.Union(b)

	if u.ExtraLines != b.Line-a.Line {
		t.Errorf("extra lines: got %d, want %d", u.ExtraLines, b.Line-a.Line)
	}
}

func TestSpan_Multiline(t *testing.T) {
	single := diag.Span{Line: 1, Col: 1, Length: 3}
	if single.Multiline() {
		t.Error("single-line span reported as multiline")
	}

	multi := diag.Span{Line: 1, Col: 1, Length: 3, ExtraLines: 2}
	if !multi.Multiline() {
		t.Error("multi-line span not reported as multiline")
	}
}
