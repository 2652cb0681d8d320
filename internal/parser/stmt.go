package parser

import (
	"github.com/td12dk/td12dk/internal/ast"
	"github.com/td12dk/td12dk/internal/diag"
	"github.com/td12dk/td12dk/internal/lexer"
)

// parseBody parses either a `{ ... }` block or a single statement.
func (p *parser) parseBody() ([]ast.Stmt, error) {
	if p.isPunct("{") {
		p.advance()

		var body []ast.Stmt

		for !p.isPunct("}") {
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}

			body = append(body, stmt)
		}

		if _, err := p.expectPunct("}"); err != nil {
			return nil, err
		}

		return body, nil
	}

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return []ast.Stmt{stmt}, nil
}

func (p *parser) parseElse() (*ast.ElseBlock, error) {
	if !p.isKeyword("else") {
		return nil, nil
	}

	start := p.advance()

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	sp := start.Span
	if len(body) > 0 {
		sp = sp.Union(body[len(body)-1].Span())
	}

	return &ast.ElseBlock{Body: body, Sp: sp}, nil
}

func (p *parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.isPunct(";"):
		t := p.advance()
		return &ast.NoOperation{Sp: t.Span}, nil
	case p.isKeyword("let") || p.isKeyword("static"):
		return p.parseLet()
	case p.isKeyword("break"):
		return p.parseLoopKeyword(ast.Break)
	case p.isKeyword("continue"):
		return p.parseLoopKeyword(ast.Continue)
	case p.isKeyword("if"):
		return p.parseIf()
	case p.isKeyword("do"):
		return p.parseDo()
	case p.isKeyword("while"):
		return p.parseWhile()
	case p.isKeyword("for"):
		return p.parseFor()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseLet() (*ast.LetStatement, error) {
	start := p.peek().Span

	static := false
	if p.isKeyword("static") {
		p.advance()
		static = true
	}

	if _, err := p.expectKeyword("let"); err != nil {
		return nil, err
	}

	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunct(":"); err != nil {
		return nil, err
	}

	pointer := false
	if p.isPunct("@") {
		p.advance()
		pointer = true
	}

	typ, err := p.parseDataType()
	if err != nil {
		return nil, err
	}

	stmt := &ast.LetStatement{Name: name.Lexeme, Type: typ, Pointer: pointer, Static: static}

	if p.isPunct("=") {
		p.advance()

		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		stmt.Init = init
	}

	end, err := p.expectPunct(";")
	if err != nil {
		return nil, err
	}

	stmt.Sp = start.Union(end.Span)

	return stmt, nil
}

func (p *parser) parseLoopKeyword(kw ast.LoopKeyword) (*ast.LoopStatement, error) {
	start := p.advance()

	end, err := p.expectPunct(";")
	if err != nil {
		return nil, err
	}

	return &ast.LoopStatement{Keyword: kw, Sp: start.Span.Union(end.Span)}, nil
}

func (p *parser) parseParenCondition() (ast.Expr, error) {
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	return cond, nil
}

func (p *parser) parseIf() (*ast.IfBlock, error) {
	start := p.advance()

	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	elseBlock, err := p.parseElse()
	if err != nil {
		return nil, err
	}

	ifb := &ast.IfBlock{Condition: cond, Body: body, Else: elseBlock, Sp: start.Span}
	ifb.Sp = p.spanOf(start.Span, body, elseBlock)

	return ifb, nil
}

func (p *parser) parseWhile() (*ast.WhileBlock, error) {
	start := p.advance()

	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	elseBlock, err := p.parseElse()
	if err != nil {
		return nil, err
	}

	wb := &ast.WhileBlock{Condition: cond, Body: body, Else: elseBlock}
	wb.Sp = p.spanOf(start.Span, body, elseBlock)

	return wb, nil
}

func (p *parser) parseDo() (*ast.DoBlock, error) {
	start := p.advance()

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectKeyword("while"); err != nil {
		return nil, err
	}

	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}

	db := &ast.DoBlock{Body: body, Condition: cond}

	// An optional second body may follow the condition; it is absent if the
	// statement instead ends with `;` or an `else` clause.
	if !p.isPunct(";") && !p.isKeyword("else") {
		second, err := p.parseBody()
		if err != nil {
			return nil, err
		}

		db.Second = second
	}

	if p.isPunct(";") {
		p.advance()
	}

	elseBlock, err := p.parseElse()
	if err != nil {
		return nil, err
	}

	db.Else = elseBlock
	db.Sp = p.spanOf(start.Span, db.Second, elseBlock)

	if db.Second == nil && elseBlock == nil {
		db.Sp = start.Span.Union(cond.Span())
	}

	return db, nil
}

func (p *parser) parseFor() (*ast.ForBlock, error) {
	start := p.advance()

	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}

	pre, err := p.parseForPre()
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	post, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	postStmt := &ast.ExpressionStatement{X: post, Sp: post.Span()}

	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	elseBlock, err := p.parseElse()
	if err != nil {
		return nil, err
	}

	fb := &ast.ForBlock{Pre: pre, Condition: cond, Post: postStmt, Body: body, Else: elseBlock}
	fb.Sp = p.spanOf(start.Span, body, elseBlock)

	return fb, nil
}

// parseForPre parses the pre-statement of a for loop: either a `let`
// declaration (without its own trailing consumption of the outer `;`, which
// the let grammar already consumes) or a bare expression statement.
func (p *parser) parseForPre() (ast.Stmt, error) {
	if p.isKeyword("let") || p.isKeyword("static") {
		return p.parseLet()
	}

	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	end, err := p.expectPunct(";")
	if err != nil {
		return nil, err
	}

	return &ast.ExpressionStatement{X: x, Sp: x.Span().Union(end.Span)}, nil
}

func (p *parser) parseExpressionStatement() (ast.Stmt, error) {
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	end, err := p.expectPunct(";")
	if err != nil {
		return nil, err
	}

	return &ast.ExpressionStatement{X: x, Sp: x.Span().Union(end.Span)}, nil
}

// spanOf computes the span for a construct whose end is either the else
// block (if present) or the last statement of body, falling back to start.
func (p *parser) spanOf(start diag.Span, body []ast.Stmt, elseBlock *ast.ElseBlock) diag.Span {
	if elseBlock != nil {
		return start.Union(elseBlock.Span())
	}

	if len(body) > 0 {
		return start.Union(body[len(body)-1].Span())
	}

	return start
}

var _ = lexer.EOF
