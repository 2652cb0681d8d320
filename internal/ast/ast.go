// Package ast defines the syntax tree produced by the parser. The tree is
// built once and never mutated; semantic analysis constructs a separate,
// annotated tree (see package sema) that references these nodes.
package ast

import "github.com/td12dk/td12dk/internal/diag"

// Node is implemented by every syntax tree node. Span is the node's sole
// diagnostic anchor.
type Node interface {
	Span() diag.Span
}

// Expr is the closed set of expression node variants. Dispatch on concrete
// type with a type switch; the set does not grow at runtime.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the closed set of statement node variants.
type Stmt interface {
	Node
	stmtNode()
}

// TopLevel is the closed set of top-level declaration variants.
type TopLevel interface {
	Node
	topLevelNode()
}

// File is the root of the syntax tree: an ordered sequence of top-level
// items.
type File struct {
	Name  string
	Items []TopLevel
}

// BuiltInKind names one of the four built-in scalar data types. Their
// semantic meaning (unsigned vs. signed vs. fixed vs. float) is entirely
// source-level: every runtime value is a 12-bit word regardless of declared
// type.
type BuiltInKind uint8

const (
	NotBuiltIn BuiltInKind = iota
	Unsigned
	Int
	Fixed
	Float
)

func (b BuiltInKind) String() string {
	switch b {
	case Unsigned:
		return "unsigned"
	case Int:
		return "int"
	case Fixed:
		return "fixed"
	case Float:
		return "float"
	default:
		return "none"
	}
}

// DataType names either one of the built-in scalar types or a struct/enum
// identifier declared elsewhere in the file.
type DataType struct {
	BuiltIn BuiltInKind
	Name    string // set when BuiltIn == NotBuiltIn
	Sp      diag.Span
}

func (d DataType) Span() diag.Span { return d.Sp }

func (d DataType) String() string {
	if d.BuiltIn != NotBuiltIn {
		return d.BuiltIn.String()
	}

	return d.Name
}
