// Package diag provides source-position tracking and diagnostic rendering
// shared by every stage of the compiler front end.
package diag

import "fmt"

// Span is a region of source text: a filename, a starting line and column, a
// length in characters on that line, and a count of any additional lines the
// region spans. Every syntax node, token and symbol reference carries a Span;
// it is the sole anchor used to render diagnostics.
type Span struct {
	File       string
	Line       int
	Col        int
	Length     int
	ExtraLines int
}

// String renders the span as "file:line:col".
func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
}

// Multiline reports whether the span covers more than one source line.
func (s Span) Multiline() bool {
	return s.ExtraLines > 0
}

// End returns the line and column immediately following the span.
func (s Span) End() (line, col int) {
	return s.Line + s.ExtraLines, s.Col + s.Length
}

// Union returns the span that starts at s's start and covers through other's
// end. When the two spans are on the same line, the resulting length is
// exactly the distance from s's column to the end of other; when they are on
// different lines, ExtraLines records how many lines the union covers.
func (s Span) Union(other Span) Span {
	if s.File == "" {
		s.File = other.File
	}

	u := Span{
		File: s.File,
		Line: s.Line,
		Col:  s.Col,
	}

	if s.Line == other.Line {
		u.ExtraLines = 0
		u.Length = (other.Col + other.Length) - s.Col
	} else {
		u.ExtraLines = other.Line - s.Line
		u.Length = other.Col + other.Length
	}

	return u
}
