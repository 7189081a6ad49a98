// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package lexer

import (
	"strconv"
)

// TokenType identifies the kind of a token.
type TokenType int

const (
	EOF TokenType = iota
	Number
	String
	Ident

	// Keywords
	Let
	And
	If
	Else
	Match
	True
	False
	Null
	Undefined

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Dot
	Colon
	Semicolon
	Underscore

	// Operators
	Plus
	Minus
	Star
	Slash
	Percent
	Eq
	NotEq
	Lt
	LtEq
	Gt
	GtEq
	AndAnd
	OrOr
	Bang
	Assign
	Arrow
)

var tokenNames = [...]string{
	EOF:        "EOF",
	Number:     "number",
	String:     "string",
	Ident:      "identifier",
	Let:        "let",
	And:        "and",
	If:         "if",
	Else:       "else",
	Match:      "match",
	True:       "true",
	False:      "false",
	Null:       "null",
	Undefined:  "undefined",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Comma:      ",",
	Dot:        ".",
	Colon:      ":",
	Semicolon:  ";",
	Underscore: "_",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Eq:         "==",
	NotEq:      "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	AndAnd:     "&&",
	OrOr:       "||",
	Bang:       "!",
	Assign:     "=",
	Arrow:      "=>",
}

// String returns the canonical spelling of the token type, or a generic
// class name for tokens with variable lexemes.
func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "unknown"
}

var keywords = map[string]TokenType{
	"let":       Let,
	"and":       And,
	"if":        If,
	"else":      Else,
	"match":     Match,
	"true":      True,
	"false":     False,
	"null":      Null,
	"undefined": Undefined,
}

// LookupIdent returns the keyword token type for an identifier lexeme,
// or Ident when the lexeme is not a keyword.
func LookupIdent(lexeme string) TokenType {
	if t, ok := keywords[lexeme]; ok {
		return t
	}
	return Ident
}

// Span marks a region of source text. Lines and columns are 1-based;
// the end position is just past the last character of the region.
type Span struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String renders the start of the span as line:col.
func (s Span) String() string {
	return strconv.Itoa(s.StartLine) + ":" + strconv.Itoa(s.StartCol)
}

// Join spans a region from the start of a to the end of b.
func Join(a, b Span) Span {
	return Span{StartLine: a.StartLine, StartCol: a.StartCol, EndLine: b.EndLine, EndCol: b.EndCol}
}

// Token is a single lexeme with its kind, decoded payload and source span.
// Num is set for Number tokens and Str for String tokens.
type Token struct {
	Type   TokenType
	Lexeme string
	Num    float64
	Str    string
	Span   Span
}

// Error is a lexical error at a source position.
type Error struct {
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg + " at " + strconv.Itoa(e.Line) + ":" + strconv.Itoa(e.Col)
}
