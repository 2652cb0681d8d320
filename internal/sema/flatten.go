package sema

import (
	"fmt"

	"github.com/td12dk/td12dk/internal/ast"
	"github.com/td12dk/td12dk/internal/diag"
)

// tempCounter generates the globally monotonic `0`, `1`, ... names used by
// InternalDefinition. One counter is shared across an entire file so that
// synthesized names never collide, matching the "globally monotonically
// generated" rule.
type tempCounter struct{ next int }

func (c *tempCounter) fresh() string {
	name := fmt.Sprintf("`%d", c.next)
	c.next++

	return name
}

// isBaseValue reports whether v needs no further lifting: a literal, a
// plain identifier, a already-resolved compound/address/dereference form,
// or a reference to a prior temporary.
func isBaseValue(v Node) bool {
	switch v.(type) {
	case *ast.NumberLiteral, *ast.CharLiteral, *ast.StringLiteral, *ast.BuiltInConst,
		*ast.Identifier, *TempRef, *CompoundIdentifier, *AddressOfIdentifier, *DereferenceIdentifier:
		return true
	default:
		return false
	}
}

// lift appends an InternalDefinition for v to items (if it is not already a
// base value) and returns a reference to use in its place.
func (c *tempCounter) lift(items *[]Node, v Node, sp diag.Span) Node {
	if isBaseValue(v) {
		return v
	}

	name := c.fresh()
	*items = append(*items, &InternalDefinition{Name: name, Expr: v, Sp: sp})

	return &TempRef{Name: name, Sp: sp}
}

// resolveLvalue converts a syntax-tree expression known to be an lvalue
// (Identifier, `.` access, `@`, or `$`) into its annotated form, or raises
// InvalidOperand if it is not one.
func resolveLvalue(e ast.Expr) (Node, error) {
	switch v := e.(type) {
	case *ast.Identifier:
		return v, nil
	case *ast.BinaryExpression:
		if v.Op == "." {
			base, err := resolveLvalue(v.Operand1)
			if err != nil {
				return nil, err
			}

			member, ok := v.Operand2.(*ast.Identifier)
			if !ok {
				return nil, invalidOperand(v.Operand2.Span(), v.Sp)
			}

			return &CompoundIdentifier{Base: base, Member: member.Name, Sp: v.Sp}, nil
		}
	case *ast.UnaryExpression:
		switch v.Op {
		case "@":
			operand, err := resolveLvalue(v.Operand)
			if err != nil {
				return nil, err
			}

			return &AddressOfIdentifier{Operand: operand, Sp: v.Sp}, nil
		case "$":
			operand, err := resolveLvalue(v.Operand)
			if err != nil {
				return nil, err
			}

			return &DereferenceIdentifier{Operand: operand, Sp: v.Sp}, nil
		}
	}

	return nil, invalidOperand(e.Span(), e.Span())
}

func invalidOperand(primary, context diag.Span) error {
	return diag.New(diag.Semantic, "InvalidOperand", "expected an lvalue", primary).
		WithContext(context).
		WithCause(diag.ErrInvalidOperand)
}

// flatten translates e into an ordered sequence of three-address-style
// items plus a terminal value to be referenced by the caller. items is nil
// when e needed no hoisting.
func (c *tempCounter) flatten(e ast.Expr) ([]Node, Node, error) {
	switch v := e.(type) {
	case nil:
		return nil, nil, nil
	case *ast.NumberLiteral, *ast.CharLiteral, *ast.StringLiteral, *ast.BuiltInConst, *ast.Identifier:
		return nil, e, nil
	case *ast.NoOperation:
		return nil, nil, nil
	case *ast.UnaryExpression:
		return c.flattenUnary(v)
	case *ast.BinaryExpression:
		return c.flattenBinary(v)
	case *ast.TernaryExpression:
		return c.flattenTernary(v)
	case *ast.FunctionCall:
		return c.flattenCall(v)
	default:
		return nil, nil, diag.New(diag.Semantic, "UnsupportedExpression",
			fmt.Sprintf("cannot flatten %T", e), e.Span())
	}
}

func (c *tempCounter) flattenUnary(v *ast.UnaryExpression) ([]Node, Node, error) {
	switch v.Op {
	case "++", "--":
		operand, err := resolveLvalue(v.Operand)
		if err != nil {
			return nil, nil, err
		}

		item := &UnaryOp{Op: v.Op, Operand: operand, Postfix: v.Postfix, Sp: v.Sp}

		return []Node{item}, item, nil
	case "@":
		operand, err := resolveLvalue(v.Operand)
		if err != nil {
			return nil, nil, err
		}

		result := &AddressOfIdentifier{Operand: operand, Sp: v.Sp}

		return nil, result, nil
	case "$":
		operand, err := resolveLvalue(v.Operand)
		if err != nil {
			return nil, nil, err
		}

		result := &DereferenceIdentifier{Operand: operand, Sp: v.Sp}

		return nil, result, nil
	default:
		items, operand, err := c.flatten(v.Operand)
		if err != nil {
			return nil, nil, err
		}

		operand = c.lift(&items, operand, v.Operand.Span())

		return items, &UnaryOp{Op: v.Op, Operand: operand, Sp: v.Sp}, nil
	}
}

func (c *tempCounter) flattenBinary(v *ast.BinaryExpression) ([]Node, Node, error) {
	switch v.Op {
	case ".":
		base, err := resolveLvalue(v.Operand1)
		if err != nil {
			return nil, nil, err
		}

		member, ok := v.Operand2.(*ast.Identifier)
		if !ok {
			return nil, nil, invalidOperand(v.Operand2.Span(), v.Sp)
		}

		return nil, &CompoundIdentifier{Base: base, Member: member.Name, Sp: v.Sp}, nil
	case "=":
		items, rhs, err := c.flatten(v.Operand2)
		if err != nil {
			return nil, nil, err
		}

		lhs, err := resolveLvalue(v.Operand1)
		if err != nil {
			return nil, nil, err
		}

		item := &Assign{LHS: lhs, RHS: rhs, Sp: v.Sp}
		items = append(items, item)

		return items, item, nil
	case "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=":
		items, rhs, err := c.flatten(v.Operand2)
		if err != nil {
			return nil, nil, err
		}

		lhs, err := resolveLvalue(v.Operand1)
		if err != nil {
			return nil, nil, err
		}

		item := &CompoundAssign{Op: v.Op, LHS: lhs, RHS: rhs, Sp: v.Sp}
		items = append(items, item)

		return items, item, nil
	default:
		items1, val1, err := c.flatten(v.Operand1)
		if err != nil {
			return nil, nil, err
		}

		val1 = c.lift(&items1, val1, v.Operand1.Span())

		items2, val2, err := c.flatten(v.Operand2)
		if err != nil {
			return nil, nil, err
		}

		val2 = c.lift(&items2, val2, v.Operand2.Span())

		items := append(items1, items2...)

		return items, &BinaryOp{Op: v.Op, A: val1, B: val2, Sp: v.Sp}, nil
	}
}

func (c *tempCounter) flattenTernary(v *ast.TernaryExpression) ([]Node, Node, error) {
	condItems, cond, err := c.flatten(v.Condition)
	if err != nil {
		return nil, nil, err
	}

	cond = c.lift(&condItems, cond, v.Condition.Span())

	trueItems, trueVal, err := c.flatten(v.True)
	if err != nil {
		return nil, nil, err
	}

	trueVal = c.lift(&trueItems, trueVal, v.True.Span())

	falseItems, falseVal, err := c.flatten(v.False)
	if err != nil {
		return nil, nil, err
	}

	falseVal = c.lift(&falseItems, falseVal, v.False.Span())

	items := append(condItems, trueItems...)
	items = append(items, falseItems...)

	return items, &TernaryOp{Cond: cond, True: trueVal, False: falseVal, Sp: v.Sp}, nil
}

func (c *tempCounter) flattenCall(v *ast.FunctionCall) ([]Node, Node, error) {
	var items []Node

	args := make([]Node, 0, len(v.Args))

	for _, a := range v.Args {
		argItems, val, err := c.flatten(a.Value)
		if err != nil {
			return nil, nil, err
		}

		val = c.lift(&argItems, val, a.Value.Span())
		items = append(items, argItems...)
		args = append(args, val)
	}

	return items, &Call{Callee: v.Callee, Args: args, Sp: v.Sp}, nil
}
