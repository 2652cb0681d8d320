package ast

import "github.com/td12dk/td12dk/internal/diag"

// BuiltInConstKind is the closed set of built-in constant atoms.
type BuiltInConstKind uint8

const (
	ConstTrue BuiltInConstKind = iota
	ConstFalse
	ConstNone
)

// BuiltInConst is an atom for one of True, False or None.
type BuiltInConst struct {
	Kind BuiltInConstKind
	Sp   diag.Span
}

func (n *BuiltInConst) Span() diag.Span { return n.Sp }
func (*BuiltInConst) exprNode()         {}

// NumberLiteral is a numeric atom, retained as lexed text so the code
// generator can pick the narrowest encoding.
type NumberLiteral struct {
	Text string
	Sp   diag.Span
}

func (n *NumberLiteral) Span() diag.Span { return n.Sp }
func (*NumberLiteral) exprNode()         {}

// CharLiteral is a single-character atom.
type CharLiteral struct {
	Text string
	Sp   diag.Span
}

func (n *CharLiteral) Span() diag.Span { return n.Sp }
func (*CharLiteral) exprNode()         {}

// StringLiteral is a string atom.
type StringLiteral struct {
	Text string
	Sp   diag.Span
}

func (n *StringLiteral) Span() diag.Span { return n.Sp }
func (*StringLiteral) exprNode()         {}

// Identifier is a bare name reference.
type Identifier struct {
	Name string
	Sp   diag.Span
}

func (n *Identifier) Span() diag.Span { return n.Sp }
func (*Identifier) exprNode()         {}

// UnaryExpression is a prefix or postfix unary operator applied to an
// operand, e.g. -x, !x, x++, @x, $x.
type UnaryExpression struct {
	Op      string
	Operand Expr
	Postfix bool
	Sp      diag.Span
}

func (n *UnaryExpression) Span() diag.Span { return n.Sp }
func (*UnaryExpression) exprNode()         {}

// BinaryExpression is a binary operator applied to two operands.
type BinaryExpression struct {
	Op       string
	Operand1 Expr
	Operand2 Expr
	Sp       diag.Span
}

func (n *BinaryExpression) Span() diag.Span { return n.Sp }
func (*BinaryExpression) exprNode()         {}

// TernaryExpression is `cond ? then : else`.
type TernaryExpression struct {
	Condition Expr
	True      Expr
	False     Expr
	Sp        diag.Span
}

func (n *TernaryExpression) Span() diag.Span { return n.Sp }
func (*TernaryExpression) exprNode()         {}

// FunctionArgument is one ordered argument to a call: either a bare
// expression or a `name = expression` keyword argument.
type FunctionArgument struct {
	Name  string // empty for positional arguments
	Value Expr
	Sp    diag.Span
}

func (n FunctionArgument) Span() diag.Span { return n.Sp }

// FunctionCall is a call to a named function with ordered arguments.
type FunctionCall struct {
	Callee string
	Args   []FunctionArgument
	Sp     diag.Span
}

func (n *FunctionCall) Span() diag.Span { return n.Sp }
func (*FunctionCall) exprNode()         {}

// NoOperation is the empty expression-statement, a bare `;`.
type NoOperation struct {
	Sp diag.Span
}

func (n *NoOperation) Span() diag.Span { return n.Sp }
func (*NoOperation) exprNode()         {}
func (*NoOperation) stmtNode()         {}

// IsLvalue reports whether an expression denotes a storage location and may
// therefore appear as the operand of assignment, increment/decrement, @ or $.
func IsLvalue(e Expr) bool {
	switch v := e.(type) {
	case *Identifier:
		return true
	case *BinaryExpression:
		return v.Op == "."
	case *UnaryExpression:
		return v.Op == "@" || v.Op == "$"
	default:
		return false
	}
}
