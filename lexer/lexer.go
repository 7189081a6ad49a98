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

// Lexer scans source text into a token stream in a single left-to-right pass.
type Lexer struct {
	src       []rune
	tokens    []Token
	start     int
	pos       int
	line      int
	col       int
	startLine int
	startCol  int
}

// Create a Lexer for the given source text.
func New(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1}
}

// Scan tokenizes src in a single pass.
func Scan(src string) ([]Token, error) {
	return New(src).Scan()
}

// Scan tokenizes the entire source. The returned stream always ends with an
// EOF token; whitespace and line comments are elided.
func (lx *Lexer) Scan() ([]Token, error) {
	for !lx.atEnd() {
		lx.start, lx.startLine, lx.startCol = lx.pos, lx.line, lx.col
		if err := lx.scanToken(); err != nil {
			return nil, err
		}
	}
	lx.start, lx.startLine, lx.startCol = lx.pos, lx.line, lx.col
	lx.emit(EOF)
	return lx.tokens, nil
}

func (lx *Lexer) scanToken() error {
	ch := lx.advance()
	switch ch {
	case ' ', '\t', '\r', '\n':
		return nil
	case '/':
		if lx.match('/') {
			for !lx.atEnd() && lx.peek() != '\n' {
				lx.advance()
			}
			return nil
		}
		lx.emit(Slash)
	case '(':
		lx.emit(LParen)
	case ')':
		lx.emit(RParen)
	case '{':
		lx.emit(LBrace)
	case '}':
		lx.emit(RBrace)
	case '[':
		lx.emit(LBracket)
	case ']':
		lx.emit(RBracket)
	case ',':
		lx.emit(Comma)
	case '.':
		lx.emit(Dot)
	case ':':
		lx.emit(Colon)
	case ';':
		lx.emit(Semicolon)
	case '+':
		lx.emit(Plus)
	case '-':
		lx.emit(Minus)
	case '*':
		lx.emit(Star)
	case '%':
		lx.emit(Percent)
	case '=':
		switch {
		case lx.match('='):
			lx.emit(Eq)
		case lx.match('>'):
			lx.emit(Arrow)
		default:
			lx.emit(Assign)
		}
	case '!':
		if lx.match('=') {
			lx.emit(NotEq)
		} else {
			lx.emit(Bang)
		}
	case '<':
		if lx.match('=') {
			lx.emit(LtEq)
		} else {
			lx.emit(Lt)
		}
	case '>':
		if lx.match('=') {
			lx.emit(GtEq)
		} else {
			lx.emit(Gt)
		}
	case '&':
		if lx.match('&') {
			lx.emit(AndAnd)
			return nil
		}
		return lx.err("Unexpected character '&'")
	case '|':
		if lx.match('|') {
			lx.emit(OrOr)
			return nil
		}
		return lx.err("Unexpected character '|'")
	case '"':
		return lx.scanString()
	default:
		switch {
		case isDigit(ch):
			lx.scanNumber()
		case isAlpha(ch):
			lx.scanIdent()
		default:
			return lx.err("Unexpected character " + strconv.QuoteRune(ch))
		}
	}
	return nil
}

func (lx *Lexer) scanNumber() {
	for !lx.atEnd() && isDigit(lx.peek()) {
		lx.advance()
	}
	if lx.peek() == '.' && isDigit(lx.peekNext()) {
		lx.advance()
		for !lx.atEnd() && isDigit(lx.peek()) {
			lx.advance()
		}
	}
	lexeme := string(lx.src[lx.start:lx.pos])
	num, _ := strconv.ParseFloat(lexeme, 64)
	lx.tokens = append(lx.tokens, Token{Type: Number, Lexeme: lexeme, Num: num, Span: lx.span()})
}

func (lx *Lexer) scanString() error {
	var decoded []rune
	for {
		if lx.atEnd() {
			return lx.err("Unterminated string literal")
		}
		ch := lx.advance()
		if ch == '"' {
			break
		}
		if ch != '\\' {
			decoded = append(decoded, ch)
			continue
		}
		if lx.atEnd() {
			return lx.err("Unterminated string literal")
		}
		esc := lx.advance()
		switch esc {
		case 'n':
			decoded = append(decoded, '\n')
		case 't':
			decoded = append(decoded, '\t')
		case 'r':
			decoded = append(decoded, '\r')
		case '\\':
			decoded = append(decoded, '\\')
		case '"':
			decoded = append(decoded, '"')
		default:
			return lx.err("Invalid escape sequence \\" + string(esc))
		}
	}
	lexeme := string(lx.src[lx.start:lx.pos])
	lx.tokens = append(lx.tokens, Token{Type: String, Lexeme: lexeme, Str: string(decoded), Span: lx.span()})
	return nil
}

func (lx *Lexer) scanIdent() {
	for !lx.atEnd() && isAlphaNumeric(lx.peek()) {
		lx.advance()
	}
	lexeme := string(lx.src[lx.start:lx.pos])
	if lexeme == "_" {
		lx.emit(Underscore)
		return
	}
	lx.emit(LookupIdent(lexeme))
}

func (lx *Lexer) emit(t TokenType) {
	lx.tokens = append(lx.tokens, Token{Type: t, Lexeme: string(lx.src[lx.start:lx.pos]), Span: lx.span()})
}

func (lx *Lexer) span() Span {
	return Span{StartLine: lx.startLine, StartCol: lx.startCol, EndLine: lx.line, EndCol: lx.col}
}

func (lx *Lexer) err(msg string) error {
	return &Error{Line: lx.startLine, Col: lx.startCol, Msg: msg}
}

func (lx *Lexer) advance() rune {
	ch := lx.src[lx.pos]
	lx.pos++
	if ch == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return ch
}

func (lx *Lexer) match(expected rune) bool {
	if lx.atEnd() || lx.src[lx.pos] != expected {
		return false
	}
	lx.advance()
	return true
}

func (lx *Lexer) peek() rune {
	if lx.atEnd() {
		return 0
	}
	return lx.src[lx.pos]
}

func (lx *Lexer) peekNext() rune {
	if lx.pos+1 >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+1]
}

func (lx *Lexer) atEnd() bool { return lx.pos >= len(lx.src) }

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isAlphaNumeric(ch rune) bool { return isAlpha(ch) || isDigit(ch) }
