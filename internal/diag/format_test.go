package diag_test

import (
	"strings"
	"testing"

	"github.com/td12dk/td12dk/internal/diag"
)

func TestFormat_SingleLineCaret(t *testing.T) {
	source := "let x: int = y + 1;\n"

	span := diag.Span{File: "f.td", Line: 1, Col: 14, Length: 1}
	err := diag.New(diag.Semantic, "UndeclaredVariable", "y is not declared", span)

	out := diag.Format(source, err)
	lines := strings.Split(out, "\n")

	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines of output, got %d: %q", len(lines), out)
	}

	caretLine := lines[2]
	trimmed := strings.TrimLeft(caretLine, " ")
	spaces := len(caretLine) - len(trimmed)

	if spaces != 4+(span.Col-1) {
		t.Errorf("caret indent: got %d, want %d", spaces, 4+(span.Col-1))
	}

	if got := strings.Count(trimmed, "^"); got != span.Length {
		t.Errorf("caret count: got %d, want %d", got, span.Length)
	}
}

func TestFormat_MultiLine(t *testing.T) {
	source := "if (a) {\n  b;\n}\n"

	span := diag.Span{File: "f.td", Line: 1, Col: 1, Length: 1, ExtraLines: 2}
	err := diag.New(diag.Syntax, "UnexpectedToken", "unbalanced block", span)

	out := diag.Format(source, err)

	for _, want := range []string{"if (a) {", "  b;", "}"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestCategory_String(t *testing.T) {
	cases := map[diag.Category]string{
		diag.Lexical:        "Lexical",
		diag.Syntax:         "Syntax",
		diag.Semantic:       "Semantic",
		diag.CodeGeneration: "Code Generation",
		diag.Compiler:       "Compiler",
	}

	for cat, want := range cases {
		if got := cat.String(); got != want {
			t.Errorf("Category(%d).String() = %q, want %q", cat, got, want)
		}
	}
}
