// Package lexer turns source text into a stream of tokens.
package lexer

import (
	"fmt"

	"github.com/td12dk/td12dk/internal/diag"
)

// Kind identifies the closed set of token variants the lexer produces.
type Kind uint8

const (
	Directive Kind = iota
	Identifier
	Keyword
	NumberLiteral
	CharLiteral
	StringLiteral
	Punctuation
	EOF
)

func (k Kind) String() string {
	switch k {
	case Directive:
		return "Directive"
	case Identifier:
		return "Identifier"
	case Keyword:
		return "Keyword"
	case NumberLiteral:
		return "NumberLiteral"
	case CharLiteral:
		return "CharLiteral"
	case StringLiteral:
		return "StringLiteral"
	case Punctuation:
		return "Punctuation"
	case EOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// Token is a single lexeme tagged with its kind and source span.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   diag.Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Span)
}

// MaxIdentifierLength is the longest an Identifier or Keyword lexeme may be;
// longer words are a lexer error.
const MaxIdentifierLength = 15

// Keywords is the closed set of reserved words. A Word lexeme matching one of
// these is classified as Keyword rather than Identifier.
var Keywords = map[string]bool{
	"struct": true, "fn": true, "enum": true, "static": true,
	"if": true, "else": true, "do": true, "while": true, "for": true,
	"let": true, "break": true, "continue": true,
	"unsigned": true, "int": true, "fixed": true, "float": true,
	"True": true, "False": true, "None": true,
}
