// Package codegen lowers an annotated tree (see package sema) to textual
// assembly for the target's 12-bit instruction set. Only immediate load,
// identifier load/store, addition, assignment and while(true) loops (with
// break/continue) are implemented; anything else raises
// CodeGenerationNotImplemented pointing at the offending span, rather than
// silently emitting wrong code.
package codegen

import (
	"fmt"
	"strings"

	"github.com/td12dk/td12dk/internal/diag"
)

// ramBase is the first RAM address; global variables are laid out
// consecutively starting here.
const ramBase = 0x800

// dataRegisters are the four general-purpose registers available to the
// round-robin allocator, in rotation order.
var dataRegisters = [4]string{"D0", "D1", "D2", "D3"}

// Generator holds per-function transient state: the frame-offset map for
// locals, the absolute-address map for globals (shared across functions),
// register occupancy, and the loop-label counter. One Generator emits one
// entire program; genFunction resets per-function state with enterFunction.
type Generator struct {
	out strings.Builder

	globals   map[string]int // Symbol name -> absolute RAM address
	nextGlobal int

	locals    map[string]int // Symbol name -> negative frame offset
	frameSize int

	occupant [4]string // name currently resident in each data register; "" if free
	cursor   int        // round-robin allocation cursor

	labelCounter int
	litCounter   int

	breakLabels    []string
	continueLabels []string
}

// anonName returns a unique binding key for a value with no symbol of its
// own (an immediate load feeding straight into an operator, say), so that
// register-occupancy tracking has something distinct to key on.
func (g *Generator) anonName() string {
	g.litCounter++
	return fmt.Sprintf("$imm%d", g.litCounter)
}

// NewGenerator returns a Generator with an empty global layout.
func NewGenerator() *Generator {
	return &Generator{globals: make(map[string]int), nextGlobal: ramBase}
}

func (g *Generator) emit(format string, args ...any) {
	fmt.Fprintf(&g.out, "\t"+format+"\n", args...)
}

func (g *Generator) label(name string) {
	fmt.Fprintf(&g.out, "%s:\n", name)
}

func (g *Generator) comment(format string, args ...any) {
	fmt.Fprintf(&g.out, "\t; "+format+"\n", args...)
}

// freshLabel returns a new function-unique label of the given purpose.
func (g *Generator) freshLabel(purpose string) string {
	name := fmt.Sprintf("_%s_%d", purpose, g.labelCounter)
	g.labelCounter++

	return name
}

// allocGlobal assigns the next consecutive RAM address to name if it is not
// already assigned.
func (g *Generator) allocGlobal(name string) int {
	if addr, ok := g.globals[name]; ok {
		return addr
	}

	addr := g.nextGlobal
	g.globals[name] = addr
	g.nextGlobal++

	return addr
}

// enterFunction resets the per-function allocator state before generating
// a new function body.
func (g *Generator) enterFunction() {
	g.locals = make(map[string]int)
	g.frameSize = 0
	g.occupant = [4]string{}
	g.cursor = 0
}

// allocLocal reserves one frame slot for name, returning its offset.
func (g *Generator) allocLocal(name string) int {
	if off, ok := g.locals[name]; ok {
		return off
	}

	g.frameSize++
	off := -g.frameSize
	g.locals[name] = off

	return off
}

// regFor returns the register currently holding name, if any.
func (g *Generator) regFor(name string) (string, bool) {
	for i, occ := range g.occupant {
		if occ == name {
			return dataRegisters[i], true
		}
	}

	return "", false
}

// allocReg picks the next register in round-robin order, spilling its
// current occupant to that occupant's home slot first if necessary, and
// marks it as now holding name (name may be "" for a scratch allocation).
func (g *Generator) allocReg(name string, sp diag.Span) (string, error) {
	idx := g.cursor
	g.cursor = (g.cursor + 1) % len(dataRegisters)

	if occ := g.occupant[idx]; occ != "" {
		if err := g.spill(idx, occ, sp); err != nil {
			return "", err
		}
	}

	g.occupant[idx] = name

	return dataRegisters[idx], nil
}

// spill stores the value resident in register idx back to its home slot:
// a global address if occ is a global, otherwise its local frame offset.
func (g *Generator) spill(idx int, occ string, sp diag.Span) error {
	reg := dataRegisters[idx]

	if addr, ok := g.globals[occ]; ok {
		if err := g.loadImmediate(addr, ""); err != nil {
			return err
		}

		g.emit("str %s", reg)

		return nil
	}

	// Any other occupant - a local variable or a temporary that has not
	// needed a home slot until now - gets (or reuses) a frame slot.
	off, ok := g.locals[occ]
	if !ok {
		off = g.allocLocal(occ)
	}

	if err := g.loadAddressOffset(off); err != nil {
		return err
	}

	g.emit("str %s", reg)

	return nil
}
