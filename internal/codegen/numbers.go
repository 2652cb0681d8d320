package codegen

import (
	"strconv"
	"strings"
)

// parseNumber parses a lexed number-literal lexeme as an integer. Runtime
// values are always 12-bit words regardless of declared type, so fractional
// and exponent forms have no representation here.
func parseNumber(lexeme string) (int, error) {
	clean := strings.ReplaceAll(lexeme, "_", "")

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

	v, err := strconv.ParseInt(clean, base, 64)
	if err != nil {
		return 0, err
	}

	return int(v), nil
}
