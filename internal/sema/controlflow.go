package sema

import "github.com/td12dk/td12dk/internal/diag"

// CodeBlock is the analyzed form of a statement list: an ordered code list
// (InternalDefinitions, resolved expression results, and nested control-flow
// nodes) plus the symbol table in effect for that list, plus any static
// locals hoisted to the enclosing function's member list.
type CodeBlock struct {
	Table   *Table
	Code    []Node
	Members []*Symbol
}

// IfIR is the analyzed form of an IfBlock.
type IfIR struct {
	CondItems []Node
	Cond      Node
	Body      *CodeBlock
	Else      *CodeBlock
	Sp        diag.Span
}

func (n *IfIR) Span() diag.Span { return n.Sp }

// WhileIR is the analyzed form of a WhileBlock.
type WhileIR struct {
	CondItems []Node
	Cond      Node
	Body      *CodeBlock
	Else      *CodeBlock
	Sp        diag.Span
}

func (n *WhileIR) Span() diag.Span { return n.Sp }

// DoIR is the analyzed form of a DoBlock.
type DoIR struct {
	Body      *CodeBlock
	CondItems []Node
	Cond      Node
	Second    *CodeBlock
	Else      *CodeBlock
	Sp        diag.Span
}

func (n *DoIR) Span() diag.Span { return n.Sp }

// ForIR is the analyzed form of a ForBlock. Table is the overlay scope that
// holds the pre-statement's declaration, scoped to the loop alone.
type ForIR struct {
	Table     *Table
	Pre       []Node
	CondItems []Node
	Cond      Node
	PostItems []Node
	Post      Node
	Body      *CodeBlock
	Else      *CodeBlock
	Sp        diag.Span
}

func (n *ForIR) Span() diag.Span { return n.Sp }
