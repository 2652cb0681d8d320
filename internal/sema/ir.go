// Package sema builds the annotated tree: symbol tables, resolved
// identifiers, and expressions flattened into three-address form. The
// syntax tree built by package parser is never mutated; this package
// constructs a second tree that references it.
package sema

import "github.com/td12dk/td12dk/internal/diag"

// Node is satisfied by any syntax, annotated, or symbol node that carries a
// diagnostic span. Syntax-tree nodes (ast.Expr, ast.Stmt, ast.TopLevel)
// already implement it structurally; the synthesized node types below do
// too, so both trees can be held in the same ordered lists without a
// conversion layer.
type Node interface {
	Span() diag.Span
}

// TempRef refers back to a previously introduced InternalDefinition by its
// synthesized name.
type TempRef struct {
	Name string
	Sp   diag.Span
}

func (n *TempRef) Span() diag.Span { return n.Sp }

// InternalDefinition holds the result of a sub-expression extracted during
// flattening, under an auto-generated name of the form `N`.
type InternalDefinition struct {
	Name string
	Expr Node
	Sp   diag.Span
}

func (n *InternalDefinition) Span() diag.Span { return n.Sp }

// CompoundIdentifier is a resolved `base.member` access.
type CompoundIdentifier struct {
	Base   Node
	Member string
	Sp     diag.Span
}

func (n *CompoundIdentifier) Span() diag.Span { return n.Sp }

// AddressOfIdentifier is the resolved form of unary `@operand`.
type AddressOfIdentifier struct {
	Operand Node
	Sp      diag.Span
}

func (n *AddressOfIdentifier) Span() diag.Span { return n.Sp }

// DereferenceIdentifier is the resolved form of unary `$operand`.
type DereferenceIdentifier struct {
	Operand Node
	Sp      diag.Span
}

func (n *DereferenceIdentifier) Span() diag.Span { return n.Sp }

// Assign is `lhs = rhs`, lhs asserted to be an lvalue.
type Assign struct {
	LHS Node
	RHS Node
	Sp  diag.Span
}

func (n *Assign) Span() diag.Span { return n.Sp }

// CompoundAssign is `lhs op= rhs` for the compound assignment operators.
type CompoundAssign struct {
	Op  string
	LHS Node
	RHS Node
	Sp  diag.Span
}

func (n *CompoundAssign) Span() diag.Span { return n.Sp }

// UnaryOp applies a unary operator to an already-flattened operand.
type UnaryOp struct {
	Op      string
	Operand Node
	Postfix bool
	Sp      diag.Span
}

func (n *UnaryOp) Span() diag.Span { return n.Sp }

// BinaryOp applies a binary operator (other than `.`, `=`, or compound
// assignment) to two already-flattened operands.
type BinaryOp struct {
	Op   string
	A, B Node
	Sp   diag.Span
}

func (n *BinaryOp) Span() diag.Span { return n.Sp }

// TernaryOp is a flattened `cond ? true : false`.
type TernaryOp struct {
	Cond, True, False Node
	Sp                diag.Span
}

func (n *TernaryOp) Span() diag.Span { return n.Sp }

// Call is a flattened function call: each argument has been reduced to a
// base value or a temporary reference.
type Call struct {
	Callee string
	Args   []Node
	Sp     diag.Span
}

func (n *Call) Span() diag.Span { return n.Sp }
