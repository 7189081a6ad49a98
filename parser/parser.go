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

package parser

import (
	"github.com/wdamron/rowan/ast"
	"github.com/wdamron/rowan/lexer"
)

// Error is a parse error carrying the offending token's span.
type Error struct {
	Span lexer.Span
	Msg  string
}

func (e *Error) Error() string { return e.Msg + " at " + e.Span.String() }

// Parser translates a token stream into an AST by recursive descent.
// Errors propagate immediately; there is no recovery.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// Create a parser over a scanned token stream. The stream must end with an
// EOF token.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse scans and parses source text into a program.
func Parse(source string) (*ast.Program, error) {
	tokens, err := lexer.Scan(source)
	if err != nil {
		return nil, err
	}
	return New(tokens).Parse()
}

// Parse consumes the token stream and produces a program: a sequence of
// top-level expressions with optional semicolon separators.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.check(lexer.EOF) {
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		prog.Items = append(prog.Items, item)
		p.match(lexer.Semicolon)
	}
	return prog, nil
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	if p.check(lexer.Let) {
		return p.parseLet()
	}
	return p.parseLogicalOr()
}

// A let expression binds one group: bindings joined by ',' or 'and' are
// typed and evaluated together.
func (p *Parser) parseLet() (ast.Expr, error) {
	letTok := p.advance()
	group := &ast.Let{Loc: letTok.Span}
	for {
		binding, err := p.parseBinding()
		if err != nil {
			return nil, err
		}
		group.Bindings = append(group.Bindings, binding)
		if p.match(lexer.Comma) || p.match(lexer.And) {
			continue
		}
		break
	}
	last := group.Bindings[len(group.Bindings)-1]
	group.Loc = lexer.Join(letTok.Span, last.Init.Span())
	return group, nil
}

func (p *Parser) parseBinding() (ast.LetBinding, error) {
	if !p.check(lexer.Ident) {
		return ast.LetBinding{}, p.errExpect("Expected identifier in binding")
	}
	name := p.advance()
	var annot ast.TypeExpr
	if p.match(lexer.Colon) {
		t, err := p.parseType()
		if err != nil {
			return ast.LetBinding{}, err
		}
		annot = t
	}
	if !p.match(lexer.Assign) {
		return ast.LetBinding{}, p.errExpect("Expected '=' after binding name")
	}
	init, err := p.parseExpr()
	if err != nil {
		return ast.LetBinding{}, err
	}
	loc := lexer.Join(name.Span, init.Span())
	return ast.LetBinding{Name: name.Lexeme, Annot: annot, Init: init, Loc: loc}, nil
}

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	return p.parseBinaryChain(p.parseLogicalAnd, lexer.OrOr)
}

func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	return p.parseBinaryChain(p.parseEquality, lexer.AndAnd)
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseBinaryChain(p.parseRelational, lexer.Eq, lexer.NotEq)
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	return p.parseBinaryChain(p.parseAdditive, lexer.Lt, lexer.LtEq, lexer.Gt, lexer.GtEq)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.parseBinaryChain(p.parseMultiplicative, lexer.Plus, lexer.Minus)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.parseBinaryChain(p.parseUnary, lexer.Star, lexer.Slash, lexer.Percent)
}

// Parse a left-associative chain of binary operations at one precedence
// level, descending through next for the operands.
func (p *Parser) parseBinaryChain(next func() (ast.Expr, error), ops ...lexer.TokenType) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		matched := false
		for _, op := range ops {
			if p.check(op) {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
		op := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op.Type, Left: left, Right: right, Loc: lexer.Join(left.Span(), right.Span())}
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.check(lexer.Bang) || p.check(lexer.Minus) {
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op.Type, Operand: operand, Loc: lexer.Join(op.Span, operand.Span())}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.check(lexer.LParen):
			p.advance()
			var args []ast.Expr
			if !p.check(lexer.RParen) {
				for {
					arg, err := p.parseExpr()
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					if p.match(lexer.Comma) {
						continue
					}
					break
				}
			}
			rparen, err := p.expect(lexer.RParen, "Expected ')' after arguments")
			if err != nil {
				return nil, err
			}
			e = &ast.Call{Func: e, Args: args, Loc: lexer.Join(e.Span(), rparen.Span)}

		case p.check(lexer.Dot):
			p.advance()
			field, err := p.expect(lexer.Ident, "Expected field name after '.'")
			if err != nil {
				return nil, err
			}
			e = &ast.Select{Object: e, Field: field.Lexeme, Loc: lexer.Join(e.Span(), field.Span)}

		case p.check(lexer.LBracket):
			p.advance()
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			rbracket, err := p.expect(lexer.RBracket, "Expected ']' after index")
			if err != nil {
				return nil, err
			}
			e = &ast.Index{Container: e, Index: index, Loc: lexer.Join(e.Span(), rbracket.Span)}

		default:
			return e, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.Number:
		p.advance()
		return &ast.NumberLit{Value: tok.Num, Loc: tok.Span}, nil

	case lexer.String:
		p.advance()
		return &ast.StringLit{Value: tok.Str, Loc: tok.Span}, nil

	case lexer.True:
		p.advance()
		return &ast.BoolLit{Value: true, Loc: tok.Span}, nil

	case lexer.False:
		p.advance()
		return &ast.BoolLit{Value: false, Loc: tok.Span}, nil

	case lexer.Null:
		p.advance()
		return &ast.NullLit{Loc: tok.Span}, nil

	case lexer.Undefined:
		p.advance()
		return &ast.UndefinedLit{Loc: tok.Span}, nil

	case lexer.Ident:
		p.advance()
		if p.match(lexer.Arrow) {
			// IDENT => expr is the only function form without parentheses.
			body, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			params := []ast.Param{{Name: tok.Lexeme}}
			return &ast.Func{Params: params, Body: body, Loc: lexer.Join(tok.Span, body.Span())}, nil
		}
		return &ast.Var{Name: tok.Lexeme, Loc: tok.Span}, nil

	case lexer.If:
		return p.parseIf()

	case lexer.Match:
		return p.parseMatch()

	case lexer.LBracket:
		return p.parseArrayOrDict()

	case lexer.LBrace:
		return p.parseBlockOrRecord()

	case lexer.LParen:
		if fn, ok, err := p.tryParseFunc(); ok || err != nil {
			return fn, err
		}
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, "Expected ')' after expression"); err != nil {
			return nil, err
		}
		return e, nil
	}
	if tok.Type == lexer.EOF {
		return nil, &Error{Span: tok.Span, Msg: "Unexpected EOF"}
	}
	return nil, &Error{Span: tok.Span, Msg: "Unexpected token '" + tok.Lexeme + "'"}
}

// tryParseFunc speculatively parses a parenthesized function literal head:
// a parameter list, an optional return annotation, then '=>'. On any
// mismatch the position is restored and ok is false, so the caller parses
// a parenthesized expression instead. Once the head matches, the literal
// is committed and body errors propagate.
func (p *Parser) tryParseFunc() (ast.Expr, bool, error) {
	save := p.pos
	lparen := p.advance()
	var params []ast.Param
	if !p.check(lexer.RParen) {
		for {
			if !p.check(lexer.Ident) {
				p.pos = save
				return nil, false, nil
			}
			name := p.advance()
			var annot ast.TypeExpr
			if p.match(lexer.Colon) {
				t, err := p.parseType()
				if err != nil {
					p.pos = save
					return nil, false, nil
				}
				annot = t
			}
			params = append(params, ast.Param{Name: name.Lexeme, Annot: annot})
			if p.match(lexer.Comma) {
				continue
			}
			break
		}
	}
	if !p.match(lexer.RParen) {
		p.pos = save
		return nil, false, nil
	}
	var ret ast.TypeExpr
	if p.match(lexer.Colon) {
		t, err := p.parseType()
		if err != nil {
			p.pos = save
			return nil, false, nil
		}
		ret = t
	}
	if !p.match(lexer.Arrow) {
		p.pos = save
		return nil, false, nil
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, true, err
	}
	fn := &ast.Func{Params: params, RetAnnot: ret, Body: body, Loc: lexer.Join(lparen.Span, body.Span())}
	return fn, true, nil
}

func (p *Parser) parseIf() (ast.Expr, error) {
	ifTok := p.advance()
	if _, err := p.expect(lexer.LParen, "Expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen, "Expected ')' after condition"); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	e := &ast.If{Cond: cond, Then: then, Loc: lexer.Join(ifTok.Span, then.Span())}
	if p.match(lexer.Else) {
		els, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		e.Else = els
		e.Loc = lexer.Join(ifTok.Span, els.Span())
	}
	return e, nil
}

func (p *Parser) parseMatch() (ast.Expr, error) {
	matchTok := p.advance()
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBrace, "Expected '{' after match value"); err != nil {
		return nil, err
	}
	m := &ast.Match{Value: value}
	for {
		c, err := p.parseMatchCase()
		if err != nil {
			return nil, err
		}
		m.Cases = append(m.Cases, c)
		if p.match(lexer.Comma) {
			if p.check(lexer.RBrace) {
				break
			}
			continue
		}
		break
	}
	rbrace, err := p.expect(lexer.RBrace, "Expected '}' after match cases")
	if err != nil {
		return nil, err
	}
	m.Loc = lexer.Join(matchTok.Span, rbrace.Span)
	return m, nil
}

func (p *Parser) parseMatchCase() (ast.MatchCase, error) {
	pattern, err := p.parsePattern()
	if err != nil {
		return ast.MatchCase{}, err
	}
	var guard ast.Expr
	if p.match(lexer.If) {
		guard, err = p.parseExpr()
		if err != nil {
			return ast.MatchCase{}, err
		}
	}
	if _, err := p.expect(lexer.Arrow, "Expected '=>' after pattern"); err != nil {
		return ast.MatchCase{}, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return ast.MatchCase{}, err
	}
	return ast.MatchCase{Pattern: pattern, Guard: guard, Body: body}, nil
}

func (p *Parser) parsePattern() (ast.Pattern, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.Underscore:
		p.advance()
		return &ast.WildcardPattern{Loc: tok.Span}, nil
	case lexer.Number:
		p.advance()
		return &ast.LitPattern{Value: &ast.NumberLit{Value: tok.Num, Loc: tok.Span}, Loc: tok.Span}, nil
	case lexer.String:
		p.advance()
		return &ast.LitPattern{Value: &ast.StringLit{Value: tok.Str, Loc: tok.Span}, Loc: tok.Span}, nil
	case lexer.True:
		p.advance()
		return &ast.LitPattern{Value: &ast.BoolLit{Value: true, Loc: tok.Span}, Loc: tok.Span}, nil
	case lexer.False:
		p.advance()
		return &ast.LitPattern{Value: &ast.BoolLit{Value: false, Loc: tok.Span}, Loc: tok.Span}, nil
	case lexer.Null:
		p.advance()
		return &ast.LitPattern{Value: &ast.NullLit{Loc: tok.Span}, Loc: tok.Span}, nil
	case lexer.Ident:
		p.advance()
		return &ast.VarPattern{Name: tok.Lexeme, Loc: tok.Span}, nil
	}
	return nil, &Error{Span: tok.Span, Msg: "Unknown pattern"}
}

func (p *Parser) parseArrayOrDict() (ast.Expr, error) {
	lbracket := p.advance()
	if p.check(lexer.RBracket) {
		rbracket := p.advance()
		return &ast.ArrayLit{Loc: lexer.Join(lbracket.Span, rbracket.Span)}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.match(lexer.Colon) {
		// The first element is a key: a dictionary literal.
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		d := &ast.DictLit{Entries: []ast.DictEntry{{Key: first, Value: value}}}
		for p.match(lexer.Comma) {
			key, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.Colon, "Expected ':' in dictionary entry"); err != nil {
				return nil, err
			}
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			d.Entries = append(d.Entries, ast.DictEntry{Key: key, Value: value})
		}
		rbracket, err := p.expect(lexer.RBracket, "Expected ']' after dictionary entries")
		if err != nil {
			return nil, err
		}
		d.Loc = lexer.Join(lbracket.Span, rbracket.Span)
		return d, nil
	}
	a := &ast.ArrayLit{Elems: []ast.Expr{first}}
	for p.match(lexer.Comma) {
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		a.Elems = append(a.Elems, elem)
	}
	rbracket, err := p.expect(lexer.RBracket, "Expected ']' after array elements")
	if err != nil {
		return nil, err
	}
	a.Loc = lexer.Join(lbracket.Span, rbracket.Span)
	return a, nil
}

// A '{' opens a record literal when followed by '}', or by an identifier
// or string field name and ':'. Anything else is a block.
func (p *Parser) parseBlockOrRecord() (ast.Expr, error) {
	lbrace := p.advance()
	if p.check(lexer.RBrace) {
		rbrace := p.advance()
		return &ast.RecordLit{Loc: lexer.Join(lbrace.Span, rbrace.Span)}, nil
	}
	if (p.check(lexer.Ident) || p.check(lexer.String)) && p.peekNext().Type == lexer.Colon {
		return p.parseRecordRest(lbrace)
	}
	return p.parseBlockRest(lbrace)
}

func (p *Parser) parseRecordRest(lbrace lexer.Token) (ast.Expr, error) {
	r := &ast.RecordLit{}
	seen := make(map[string]bool)
	for {
		tok := p.current()
		var name string
		switch tok.Type {
		case lexer.Ident:
			name = tok.Lexeme
		case lexer.String:
			name = tok.Str
		default:
			return nil, p.errExpect("Expected field name")
		}
		p.advance()
		if seen[name] {
			return nil, &Error{Span: tok.Span, Msg: "Duplicate field " + name}
		}
		seen[name] = true
		if _, err := p.expect(lexer.Colon, "Expected ':' after field name"); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		r.Fields = append(r.Fields, ast.RecordField{Name: name, Value: value})
		if p.match(lexer.Comma) {
			continue
		}
		break
	}
	rbrace, err := p.expect(lexer.RBrace, "Expected '}' after record fields")
	if err != nil {
		return nil, err
	}
	r.Loc = lexer.Join(lbrace.Span, rbrace.Span)
	return r, nil
}

func (p *Parser) parseBlockRest(lbrace lexer.Token) (ast.Expr, error) {
	var stmts []ast.Expr
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, e)
		p.match(lexer.Semicolon)
		if p.check(lexer.RBrace) {
			break
		}
		if p.check(lexer.EOF) {
			return nil, p.errExpect("Expected '}' after block")
		}
	}
	rbrace := p.advance()
	b := &ast.Block{
		Stmts:  stmts[:len(stmts)-1],
		Result: stmts[len(stmts)-1],
		Loc:    lexer.Join(lbrace.Span, rbrace.Span),
	}
	return b, nil
}

func (p *Parser) parseType() (ast.TypeExpr, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.Ident:
		p.advance()
		switch tok.Lexeme {
		case "number", "string", "boolean", "null", "undefined", "unit":
			return &ast.PrimType{Name: tok.Lexeme, Loc: tok.Span}, nil
		case "Array":
			if _, err := p.expect(lexer.Lt, "Expected '<' after Array"); err != nil {
				return nil, err
			}
			elem, err := p.parseType()
			if err != nil {
				return nil, err
			}
			gt, err := p.expect(lexer.Gt, "Expected '>' after element type")
			if err != nil {
				return nil, err
			}
			return &ast.ArrayType{Elem: elem, Loc: lexer.Join(tok.Span, gt.Span)}, nil
		case "Dict":
			if _, err := p.expect(lexer.Lt, "Expected '<' after Dict"); err != nil {
				return nil, err
			}
			key, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.Comma, "Expected ',' after key type"); err != nil {
				return nil, err
			}
			value, err := p.parseType()
			if err != nil {
				return nil, err
			}
			gt, err := p.expect(lexer.Gt, "Expected '>' after value type")
			if err != nil {
				return nil, err
			}
			return &ast.DictType{Key: key, Value: value, Loc: lexer.Join(tok.Span, gt.Span)}, nil
		}
		return &ast.VarType{Name: tok.Lexeme, Loc: tok.Span}, nil

	case lexer.Null:
		p.advance()
		return &ast.PrimType{Name: "null", Loc: tok.Span}, nil

	case lexer.Undefined:
		p.advance()
		return &ast.PrimType{Name: "undefined", Loc: tok.Span}, nil

	case lexer.LBracket:
		p.advance()
		first, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if p.match(lexer.Colon) {
			value, err := p.parseType()
			if err != nil {
				return nil, err
			}
			rbracket, err := p.expect(lexer.RBracket, "Expected ']' after value type")
			if err != nil {
				return nil, err
			}
			return &ast.DictType{Key: first, Value: value, Loc: lexer.Join(tok.Span, rbracket.Span)}, nil
		}
		rbracket, err := p.expect(lexer.RBracket, "Expected ']' after element type")
		if err != nil {
			return nil, err
		}
		return &ast.ArrayType{Elem: first, Loc: lexer.Join(tok.Span, rbracket.Span)}, nil

	case lexer.LParen:
		p.advance()
		var params []ast.TypeExpr
		if !p.check(lexer.RParen) {
			for {
				param, err := p.parseType()
				if err != nil {
					return nil, err
				}
				params = append(params, param)
				if p.match(lexer.Comma) {
					continue
				}
				break
			}
		}
		if _, err := p.expect(lexer.RParen, "Expected ')' after parameter types"); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Arrow, "Expected '=>' in function type"); err != nil {
			return nil, err
		}
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.FuncType{Params: params, Return: ret, Loc: lexer.Join(tok.Span, ret.Span())}, nil
	}
	return nil, p.errExpect("Expected type annotation")
}

func (p *Parser) current() lexer.Token { return p.tokens[p.pos] }

func (p *Parser) peekNext() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

// advance returns the current token and moves past it. The EOF sentinel is
// never consumed.
func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Type != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t lexer.TokenType) bool { return p.current().Type == t }

func (p *Parser) match(t lexer.TokenType) bool {
	if !p.check(t) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) expect(t lexer.TokenType, msg string) (lexer.Token, error) {
	if !p.check(t) {
		return lexer.Token{}, p.errExpect(msg)
	}
	return p.advance(), nil
}

func (p *Parser) errExpect(msg string) error {
	tok := p.current()
	found := "'" + tok.Lexeme + "'"
	if tok.Type == lexer.EOF {
		found = "EOF"
	}
	return &Error{Span: tok.Span, Msg: msg + ", found " + found}
}
