package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// parseIntLiteral parses a lexed number-literal lexeme as a signed integer,
// accepting the decimal/0b/0o/0x forms with embedded '_' separators that the
// lexer admits. Fractional and exponent forms are rejected; enum values and
// array sizes are integral.
func parseIntLiteral(lexeme string) (int64, error) {
	clean := strings.ReplaceAll(lexeme, "_", "")

	if strings.ContainsAny(clean, ".eE") && !strings.HasPrefix(clean, "0x") && !strings.HasPrefix(clean, "0X") {
		return 0, fmt.Errorf("expected an integer literal, got %q", lexeme)
	}

	base := 10

	switch {
	case strings.HasPrefix(clean, "0b") || strings.HasPrefix(clean, "0B"):
		base = 2
		clean = clean[2:]
	case strings.HasPrefix(clean, "0o") || strings.HasPrefix(clean, "0O"):
		base = 8
		clean = clean[2:]
	case strings.HasPrefix(clean, "0x") || strings.HasPrefix(clean, "0X"):
		base = 16
		clean = clean[2:]
	}

	val, err := strconv.ParseInt(clean, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q: %w", lexeme, err)
	}

	return val, nil
}
