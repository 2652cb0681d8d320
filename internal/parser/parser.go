// Package parser implements a recursive-descent parser over the token stream
// produced by package lexer. Expressions are parsed by a tier of mutually
// recursive functions, one per precedence level in spec's operator table -
// a straightforward alternative to the "find the lowest-precedence operator
// and split" algorithm, producing the same trees.
package parser

import (
	"fmt"

	"github.com/td12dk/td12dk/internal/ast"
	"github.com/td12dk/td12dk/internal/diag"
	"github.com/td12dk/td12dk/internal/lexer"
)

// Parse lexes and parses source text into a syntax tree.
func Parse(file, source string) (*ast.File, error) {
	toks, err := lexer.Lex(file, source)
	if err != nil {
		return nil, err
	}

	p := &parser{file: file, toks: toks}

	return p.parseFile()
}

type parser struct {
	file string
	toks []lexer.Token
	pos  int
}

func (p *parser) peek() lexer.Token       { return p.toks[p.pos] }
func (p *parser) peekAt(n int) lexer.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}

	return p.toks[p.pos+n]
}

func (p *parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}

	return t
}

func (p *parser) atEnd() bool { return p.peek().Kind == lexer.EOF }

func (p *parser) errf(kind, format string, args ...any) error {
	return diag.New(diag.Syntax, kind, fmt.Sprintf(format, args...), p.peek().Span)
}

// isKeyword reports whether the current token is the keyword k.
func (p *parser) isKeyword(k string) bool {
	t := p.peek()
	return t.Kind == lexer.Keyword && t.Lexeme == k
}

func (p *parser) isPunct(s string) bool {
	t := p.peek()
	return t.Kind == lexer.Punctuation && t.Lexeme == s
}

func (p *parser) expectKeyword(k string) (lexer.Token, error) {
	if !p.isKeyword(k) {
		if p.atEnd() {
			return lexer.Token{}, diag.New(diag.Syntax, "UnexpectedEndOfTokenStream",
				fmt.Sprintf("expected keyword %q", k), p.peek().Span)
		}

		return lexer.Token{}, p.errf("ExpectedKeyword", "expected keyword %q, got %q", k, p.peek().Lexeme)
	}

	return p.advance(), nil
}

func (p *parser) expectPunct(s string) (lexer.Token, error) {
	if !p.isPunct(s) {
		if p.atEnd() {
			return lexer.Token{}, diag.New(diag.Syntax, "UnexpectedEndOfTokenStream",
				fmt.Sprintf("expected %q", s), p.peek().Span)
		}

		return lexer.Token{}, p.errf("ExpectedPunctuation", "expected %q, got %q", s, p.peek().Lexeme)
	}

	return p.advance(), nil
}

func (p *parser) expectIdentifier() (lexer.Token, error) {
	if p.peek().Kind != lexer.Identifier {
		if p.atEnd() {
			return lexer.Token{}, diag.New(diag.Syntax, "UnexpectedEndOfTokenStream",
				"expected identifier", p.peek().Span)
		}

		return lexer.Token{}, p.errf("ExpectedIdentifier", "expected identifier, got %q", p.peek().Lexeme)
	}

	return p.advance(), nil
}

func (p *parser) parseFile() (*ast.File, error) {
	file := &ast.File{Name: p.file}

	for !p.atEnd() {
		item, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}

		file.Items = append(file.Items, item)
	}

	return file, nil
}

func (p *parser) parseTopLevel() (ast.TopLevel, error) {
	switch {
	case p.peek().Kind == lexer.Directive:
		t := p.advance()
		return &ast.Directive{Text: t.Lexeme, Sp: t.Span}, nil
	case p.isKeyword("struct"):
		return p.parseStruct()
	case p.isKeyword("enum"):
		return p.parseEnum()
	case p.isKeyword("fn"):
		return p.parseFunction()
	default:
		return nil, p.errf("UnexpectedToken",
			"expected 'struct', 'enum', 'fn' or directive, got %q", p.peek().Lexeme)
	}
}

// parseDataType parses a built-in type keyword or a struct/enum identifier.
func (p *parser) parseDataType() (ast.DataType, error) {
	t := p.peek()

	if t.Kind == lexer.Keyword {
		switch t.Lexeme {
		case "unsigned":
			p.advance()
			return ast.DataType{BuiltIn: ast.Unsigned, Sp: t.Span}, nil
		case "int":
			p.advance()
			return ast.DataType{BuiltIn: ast.Int, Sp: t.Span}, nil
		case "fixed":
			p.advance()
			return ast.DataType{BuiltIn: ast.Fixed, Sp: t.Span}, nil
		case "float":
			p.advance()
			return ast.DataType{BuiltIn: ast.Float, Sp: t.Span}, nil
		}
	}

	ident, err := p.expectIdentifier()
	if err != nil {
		return ast.DataType{}, err
	}

	return ast.DataType{Name: ident.Lexeme, Sp: ident.Span}, nil
}

// parseStructureMember parses one `[static] name : [@] type [= default]`
// member, shared by struct bodies and function parameter lists.
func (p *parser) parseStructureMember(allowStatic bool) (ast.StructureMember, error) {
	start := p.peek().Span
	m := ast.StructureMember{}

	if allowStatic && p.isKeyword("static") {
		p.advance()
		m.Static = true
	}

	name, err := p.expectIdentifier()
	if err != nil {
		return m, err
	}

	m.Name = name.Lexeme

	if _, err := p.expectPunct(":"); err != nil {
		return m, err
	}

	if p.isPunct("@") {
		p.advance()
		m.Pointer = true
	}

	typ, err := p.parseDataType()
	if err != nil {
		return m, err
	}

	m.Type = typ

	if p.isPunct("=") {
		p.advance()

		def, err := p.parseExpression()
		if err != nil {
			return m, err
		}

		m.Default = def
	}

	m.Sp = start.Union(p.toks[p.pos-1].Span)

	return m, nil
}

func (p *parser) parseStruct() (*ast.StructBlock, error) {
	start, _ := p.expectKeyword("struct")

	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	block := &ast.StructBlock{Name: name.Lexeme}

	for !p.isPunct("}") {
		member, err := p.parseStructureMember(true)
		if err != nil {
			return nil, err
		}

		block.Members = append(block.Members, member)

		if p.isPunct(",") {
			p.advance()
		} else {
			break
		}
	}

	end, err := p.expectPunct("}")
	if err != nil {
		return nil, err
	}

	block.Sp = start.Span.Union(end.Span)

	return block, nil
}

func (p *parser) parseEnum() (*ast.EnumBlock, error) {
	start, _ := p.expectKeyword("enum")

	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	block := &ast.EnumBlock{Name: name.Lexeme}

	for !p.isPunct("}") {
		mname, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}

		member := ast.EnumMember{Name: mname.Lexeme, Sp: mname.Span}

		if p.isPunct("=") {
			p.advance()

			numTok := p.peek()
			if numTok.Kind != lexer.NumberLiteral {
				return nil, p.errf("ExpectedLiteral", "expected a number literal, got %q", numTok.Lexeme)
			}

			p.advance()

			val, err := parseIntLiteral(numTok.Lexeme)
			if err != nil {
				return nil, diag.New(diag.Syntax, "ExpectedLiteral", err.Error(), numTok.Span)
			}

			member.Value = &val
			member.Sp = mname.Span.Union(numTok.Span)
		}

		block.Members = append(block.Members, member)

		if p.isPunct(",") {
			p.advance()
		} else {
			break
		}
	}

	end, err := p.expectPunct("}")
	if err != nil {
		return nil, err
	}

	block.Sp = start.Span.Union(end.Span)

	return block, nil
}

func (p *parser) parseFunction() (*ast.FunctionBlock, error) {
	start, _ := p.expectKeyword("fn")

	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}

	fn := &ast.FunctionBlock{Name: name.Lexeme}

	for !p.isPunct(")") {
		param, err := p.parseStructureMember(false)
		if err != nil {
			return nil, err
		}

		fn.Params = append(fn.Params, param)

		if p.isPunct(",") {
			p.advance()
		} else {
			break
		}
	}

	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	if p.isPunct("->") {
		p.advance()

		if p.isPunct("@") {
			p.advance()
			fn.ReturnPointer = true
		}

		typ, err := p.parseDataType()
		if err != nil {
			return nil, err
		}

		fn.ReturnType = &typ
	}

	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	for !p.isPunct("}") {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		fn.Body = append(fn.Body, stmt)
	}

	end, err := p.expectPunct("}")
	if err != nil {
		return nil, err
	}

	fn.Sp = start.Span.Union(end.Span)

	return fn, nil
}
