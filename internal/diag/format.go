package diag

import (
	"fmt"
	"strings"
)

// Format renders a diagnostic as a human-readable header followed by an
// indented source snippet. source is the full text the span was computed
// against; callers (the CLI driver) own reading it from disk or wherever it
// came from - this package only ever works against in-memory strings.
func Format(source string, err *Error) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s error: %s: %s (%s)\n", err.Cat, err.Kind, err.Msg, err.Primary)

	lines := strings.Split(source, "\n")

	if err.Primary.Multiline() {
		writeMultiline(&b, lines, err.Primary)
	} else {
		writeSingleLine(&b, lines, err.Primary, err.Context)
	}

	return b.String()
}

func sourceLine(lines []string, n int) string {
	if n < 1 || n > len(lines) {
		return ""
	}

	return lines[n-1]
}

func writeSingleLine(b *strings.Builder, lines []string, primary Span, ctx *Span) {
	line := sourceLine(lines, primary.Line)

	fmt.Fprintf(b, "    %s\n", line)

	marker := make([]rune, 0, len(line)+primary.Col+primary.Length)

	width := primary.Col + primary.Length
	if ctx != nil {
		width = max(width, ctx.Col+ctx.Length)
	}

	for i := 1; i <= width; i++ {
		switch {
		case i >= primary.Col && i < primary.Col+primary.Length:
			marker = append(marker, '^')
		case ctx != nil && i >= ctx.Col && i < ctx.Col+ctx.Length:
			marker = append(marker, '~')
		default:
			marker = append(marker, ' ')
		}
	}

	fmt.Fprintf(b, "    %s\n", string(marker))
}

func writeMultiline(b *strings.Builder, lines []string, primary Span) {
	endLine, _ := primary.End()

	for n := primary.Line; n <= endLine; n++ {
		fmt.Fprintf(b, "    %s\n", sourceLine(lines, n))
	}
}
