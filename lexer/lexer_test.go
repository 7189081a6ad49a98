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
	"testing"
)

func scanTypes(t *testing.T, src string) []TokenType {
	t.Helper()
	tokens, err := Scan(src)
	if err != nil {
		t.Fatal(err)
	}
	kinds := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Type
	}
	return kinds
}

func TestScanKinds(t *testing.T) {
	kinds := scanTypes(t, `let f = (x) => x >= 1 && x != 2;`)
	expect := []TokenType{
		Let, Ident, Assign, LParen, Ident, RParen, Arrow,
		Ident, GtEq, Number, AndAnd, Ident, NotEq, Number, Semicolon, EOF,
	}
	if len(kinds) != len(expect) {
		t.Fatalf("token count: %d != %d", len(kinds), len(expect))
	}
	for i := range expect {
		if kinds[i] != expect[i] {
			t.Fatalf("token %d: %s != %s", i, kinds[i], expect[i])
		}
	}
}

func TestScanKeywordsAndIdents(t *testing.T) {
	tokens, err := Scan(`let and if else match true false null undefined _ _x lets`)
	if err != nil {
		t.Fatal(err)
	}
	expect := []TokenType{
		Let, And, If, Else, Match, True, False, Null, Undefined,
		Underscore, Ident, Ident, EOF,
	}
	for i := range expect {
		if tokens[i].Type != expect[i] {
			t.Fatalf("token %d: %s != %s", i, tokens[i].Type, expect[i])
		}
	}
	if tokens[10].Lexeme != "_x" || tokens[11].Lexeme != "lets" {
		t.Fatalf("lexemes: %q, %q", tokens[10].Lexeme, tokens[11].Lexeme)
	}
}

func TestScanNumbers(t *testing.T) {
	tokens, err := Scan(`42 3.14 0.5`)
	if err != nil {
		t.Fatal(err)
	}
	nums := []float64{42, 3.14, 0.5}
	for i, expect := range nums {
		if tokens[i].Type != Number || tokens[i].Num != expect {
			t.Fatalf("token %d: %s %v", i, tokens[i].Type, tokens[i].Num)
		}
	}

	// A dot not followed by a digit is member access, not a fraction.
	kinds := scanTypes(t, `10.x`)
	expect := []TokenType{Number, Dot, Ident, EOF}
	for i := range expect {
		if kinds[i] != expect[i] {
			t.Fatalf("token %d: %s != %s", i, kinds[i], expect[i])
		}
	}
}

func TestScanStrings(t *testing.T) {
	tokens, err := Scan(`"hi" "a\nb" "q\"q" "t\tr\r" "back\\slash"`)
	if err != nil {
		t.Fatal(err)
	}
	decoded := []string{"hi", "a\nb", `q"q`, "t\tr\r", `back\slash`}
	for i, expect := range decoded {
		if tokens[i].Type != String || tokens[i].Str != expect {
			t.Fatalf("token %d: %s %q", i, tokens[i].Type, tokens[i].Str)
		}
	}
}

func TestScanCommentsAndNewlines(t *testing.T) {
	src := "1 // rest of the line\n// a whole line\n2"
	tokens, err := Scan(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 3 || tokens[0].Type != Number || tokens[1].Type != Number || tokens[2].Type != EOF {
		t.Fatalf("tokens: %v", tokens)
	}
	if tokens[1].Span.StartLine != 3 || tokens[1].Span.StartCol != 1 {
		t.Fatalf("span: %s", tokens[1].Span)
	}
}

func TestScanSpans(t *testing.T) {
	tokens, err := Scan("let\n  abc")
	if err != nil {
		t.Fatal(err)
	}
	if tokens[0].Span != (Span{StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 4}) {
		t.Fatalf("let span: %v", tokens[0].Span)
	}
	if tokens[1].Span != (Span{StartLine: 2, StartCol: 3, EndLine: 2, EndCol: 6}) {
		t.Fatalf("abc span: %v", tokens[1].Span)
	}
}

func TestScanErrors(t *testing.T) {
	checks := []struct {
		src, msg string
	}{
		{`a & b`, "Unexpected character '&' at 1:3"},
		{`a | b`, "Unexpected character '|' at 1:3"},
		{`a # b`, "Unexpected character '#' at 1:3"},
		{`"abc`, "Unterminated string literal at 1:1"},
		{`"a\q"`, `Invalid escape sequence \q at 1:1`},
	}
	for _, check := range checks {
		_, err := Scan(check.src)
		if err == nil {
			t.Fatalf("expected a lexical error for %q", check.src)
		}
		if err.Error() != check.msg {
			t.Fatalf("error: %s", err)
		}
		if _, ok := err.(*Error); !ok {
			t.Fatalf("error type: %T", err)
		}
	}
}
