package asm

import "strings"

// Word is a 12-bit machine word. Only the low 12 bits are ever significant;
// callers mask after arithmetic that might overflow.
type Word uint16

const wordMask = 0x0FFF

// registerNames maps a register name to its 3-bit index, shared by every
// instruction family that takes register operands.
var registerNames = map[string]byte{
	"ZR": 0, "PC": 1, "SP": 2, "MP": 3,
	"D0": 4, "D1": 5, "D2": 6, "D3": 7,
}

// registerIndex resolves a register operand, either by name (case
// insensitive) or as a bare index 0-7.
func registerIndex(oper string) (byte, bool) {
	up := strings.ToUpper(strings.TrimSpace(oper))

	if idx, ok := registerNames[up]; ok {
		return idx, true
	}

	if len(up) == 1 && up[0] >= '0' && up[0] <= '7' {
		return up[0] - '0', true
	}

	return 0, false
}
