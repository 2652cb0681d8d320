package ast

import "github.com/td12dk/td12dk/internal/diag"

// Directive is a `#`-prefixed source line, passed through verbatim.
type Directive struct {
	Text string
	Sp   diag.Span
}

func (n *Directive) Span() diag.Span { return n.Sp }
func (*Directive) topLevelNode()     {}

// StructureMember is one member of a struct or one parameter of a function;
// the two share a grammar (optional static, identifier, optional pointer,
// type, optional literal default).
type StructureMember struct {
	Static  bool
	Name    string
	Pointer bool
	Type    DataType
	Default Expr // optional; nil if absent
	Sp      diag.Span
}

func (n StructureMember) Span() diag.Span { return n.Sp }

// StructBlock declares a struct type and its ordered members.
type StructBlock struct {
	Name    string
	Members []StructureMember
	Sp      diag.Span
}

func (n *StructBlock) Span() diag.Span { return n.Sp }
func (*StructBlock) topLevelNode()     {}

// EnumMember is one member of an enum, with an optional explicit value.
type EnumMember struct {
	Name  string
	Value *int64 // nil if implicit
	Sp    diag.Span
}

func (n EnumMember) Span() diag.Span { return n.Sp }

// EnumBlock declares an enum type and its ordered members, prior to
// normalization (see package sema).
type EnumBlock struct {
	Name    string
	Members []EnumMember
	Sp      diag.Span
}

func (n *EnumBlock) Span() diag.Span { return n.Sp }
func (*EnumBlock) topLevelNode()     {}

// FunctionBlock declares a function: its parameters (sharing the
// StructureMember grammar, without static and with a literal-only default),
// an optional pointer-return flag, an optional return type, and a body.
type FunctionBlock struct {
	Name          string
	Params        []StructureMember
	ReturnPointer bool
	ReturnType    *DataType // nil if the function returns nothing
	Body          []Stmt
	Sp            diag.Span
}

func (n *FunctionBlock) Span() diag.Span { return n.Sp }
func (*FunctionBlock) topLevelNode()     {}
