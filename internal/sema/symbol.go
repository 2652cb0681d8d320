package sema

import (
	"fmt"

	"github.com/td12dk/td12dk/internal/diag"
)

// Kind is the closed set of symbol roles a name can be declared under.
type Kind uint8

const (
	VariableSym Kind = iota
	ParameterSym
	ReturnVariableSym
	InternalSym
	FunctionSym
	StructSym
	EnumSym
)

func (k Kind) String() string {
	switch k {
	case VariableSym:
		return "variable"
	case ParameterSym:
		return "parameter"
	case ReturnVariableSym:
		return "return variable"
	case InternalSym:
		return "internal definition"
	case FunctionSym:
		return "function"
	case StructSym:
		return "struct"
	case EnumSym:
		return "enum"
	default:
		return "unknown"
	}
}

// Symbol is a declared name: its role, the node that introduced it, and
// every site that subsequently referenced it.
type Symbol struct {
	Name       string
	Kind       Kind
	Static     bool
	Def        Node
	References []diag.Span
}

func (s *Symbol) Span() diag.Span { return s.Def.Span() }

// Table is a lexically scoped symbol table. Child tables share their
// parent's Resolve chain but keep their own declarations. Each function
// gets a child of the global table and each for loop an overlay child;
// if, while and do bodies declare into the table of the enclosing block.
type Table struct {
	Parent  *Table
	Symbols map[string]*Symbol
	Order   []string
}

// NewTable creates a table nested under parent (nil for the top level).
func NewTable(parent *Table) *Table {
	return &Table{Parent: parent, Symbols: make(map[string]*Symbol)}
}

// Declare adds sym to the table. Redeclaring a name already present in this
// exact table (not an ancestor) is an error; shadowing a name from an
// ancestor table is permitted.
func (t *Table) Declare(sym *Symbol) error {
	if prior, ok := t.Symbols[sym.Name]; ok {
		return diag.New(diag.Semantic, "VariableAlreadyDeclared",
			fmt.Sprintf("%q is already declared", sym.Name), sym.Span()).
			WithContext(prior.Span()).
			WithCause(diag.ErrVariableAlreadyDeclared)
	}

	t.Symbols[sym.Name] = sym
	t.Order = append(t.Order, sym.Name)

	return nil
}

// Resolve looks up name in this table and, failing that, each ancestor in
// turn.
func (t *Table) Resolve(name string) (*Symbol, bool) {
	for cur := t; cur != nil; cur = cur.Parent {
		if sym, ok := cur.Symbols[name]; ok {
			return sym, true
		}
	}

	return nil, false
}

// reference records sp as a use site of sym.
func (sym *Symbol) reference(sp diag.Span) {
	sym.References = append(sym.References, sp)
}
