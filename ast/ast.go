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

package ast

import (
	"github.com/wdamron/rowan/lexer"
)

// Expr is the base for all expressions. Expressions are read-only after
// parsing; the inferencer and evaluator share them without copying.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	// Span returns the source region covered by the expression.
	Span() lexer.Span
}

var (
	_ Expr = (*NumberLit)(nil)
	_ Expr = (*StringLit)(nil)
	_ Expr = (*BoolLit)(nil)
	_ Expr = (*NullLit)(nil)
	_ Expr = (*UndefinedLit)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*ArrayLit)(nil)
	_ Expr = (*DictLit)(nil)
	_ Expr = (*RecordLit)(nil)
	_ Expr = (*Select)(nil)
	_ Expr = (*Index)(nil)
	_ Expr = (*Func)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Binary)(nil)
	_ Expr = (*Unary)(nil)
	_ Expr = (*If)(nil)
	_ Expr = (*Block)(nil)
	_ Expr = (*Match)(nil)
	_ Expr = (*Let)(nil)
)

// Program is an ordered sequence of top-level expressions.
type Program struct {
	Items []Expr
}

// Numeric literal: `42`
type NumberLit struct {
	Value float64
	Loc   lexer.Span
}

// String literal: `"hi"`. Value holds the decoded text.
type StringLit struct {
	Value string
	Loc   lexer.Span
}

// Boolean literal: `true`
type BoolLit struct {
	Value bool
	Loc   lexer.Span
}

// Null literal: `null`
type NullLit struct {
	Loc lexer.Span
}

// Undefined literal: `undefined`
type UndefinedLit struct {
	Loc lexer.Span
}

// Variable reference
type Var struct {
	Name string
	Loc  lexer.Span
}

// Array literal: `[1, 2, 3]`
type ArrayLit struct {
	Elems []Expr
	Loc   lexer.Span
}

// Dictionary literal: `["a": 1, "b": 2]`. Entries keep source order.
type DictLit struct {
	Entries []DictEntry
	Loc     lexer.Span
}

// One key/value pair of a dictionary literal.
type DictEntry struct {
	Key   Expr
	Value Expr
}

// Record literal: `{x: 1, y: 2}`. Fields keep source order; names are
// unique.
type RecordLit struct {
	Fields []RecordField
	Loc    lexer.Span
}

// One name/value pair of a record literal.
type RecordField struct {
	Name  string
	Value Expr
}

// Member access: `point.x`
type Select struct {
	Object Expr
	Field  string
	Loc    lexer.Span
}

// Index access: `xs[0]` or `d["k"]`
type Index struct {
	Container Expr
	Index     Expr
	Loc       lexer.Span
}

// Function literal: `(x, y) => x + y`
type Func struct {
	Params []Param
	// Return annotation, or nil.
	RetAnnot TypeExpr
	Body     Expr
	Loc      lexer.Span
}

// One parameter of a function literal, with an optional type annotation.
type Param struct {
	Name  string
	Annot TypeExpr
}

// Application: `f(x)`
type Call struct {
	Func Expr
	Args []Expr
	Loc  lexer.Span
}

// Binary operation: `a + b`
type Binary struct {
	Op    lexer.TokenType
	Left  Expr
	Right Expr
	Loc   lexer.Span
}

// Unary operation: `-a` or `!a`
type Unary struct {
	Op      lexer.TokenType
	Operand Expr
	Loc     lexer.Span
}

// Conditional: `if (c) a else b`. Else may be nil.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
	Loc  lexer.Span
}

// Block: `{ stmt; stmt; result }`. Statements are let groups or discarded
// expressions; the final expression supplies the block's type and value.
type Block struct {
	Stmts  []Expr
	Result Expr
	Loc    lexer.Span
}

// Match: `match v { pattern => body, ... }`
type Match struct {
	Value Expr
	Cases []MatchCase
	Loc   lexer.Span
}

// One case of a match expression. Guard may be nil.
type MatchCase struct {
	Pattern Pattern
	Guard   Expr
	Body    Expr
}

// Binding group: `let a = 1, b = 2 and c = 3`. All bindings in one group
// are typed and evaluated together, so they may refer to each other.
type Let struct {
	Bindings []LetBinding
	Loc      lexer.Span
}

// One binding of a group, with an optional type annotation.
type LetBinding struct {
	Name  string
	Annot TypeExpr
	Init  Expr
	Loc   lexer.Span
}

func (e *NumberLit) ExprName() string    { return "Number" }
func (e *StringLit) ExprName() string    { return "String" }
func (e *BoolLit) ExprName() string      { return "Bool" }
func (e *NullLit) ExprName() string      { return "Null" }
func (e *UndefinedLit) ExprName() string { return "Undefined" }
func (e *Var) ExprName() string          { return "Var" }
func (e *ArrayLit) ExprName() string     { return "Array" }
func (e *DictLit) ExprName() string      { return "Dict" }
func (e *RecordLit) ExprName() string    { return "Record" }
func (e *Select) ExprName() string       { return "Select" }
func (e *Index) ExprName() string        { return "Index" }
func (e *Func) ExprName() string         { return "Func" }
func (e *Call) ExprName() string         { return "Call" }
func (e *Binary) ExprName() string       { return "Binary" }
func (e *Unary) ExprName() string        { return "Unary" }
func (e *If) ExprName() string           { return "If" }
func (e *Block) ExprName() string        { return "Block" }
func (e *Match) ExprName() string        { return "Match" }
func (e *Let) ExprName() string          { return "Let" }

func (e *NumberLit) Span() lexer.Span    { return e.Loc }
func (e *StringLit) Span() lexer.Span    { return e.Loc }
func (e *BoolLit) Span() lexer.Span      { return e.Loc }
func (e *NullLit) Span() lexer.Span      { return e.Loc }
func (e *UndefinedLit) Span() lexer.Span { return e.Loc }
func (e *Var) Span() lexer.Span          { return e.Loc }
func (e *ArrayLit) Span() lexer.Span     { return e.Loc }
func (e *DictLit) Span() lexer.Span      { return e.Loc }
func (e *RecordLit) Span() lexer.Span    { return e.Loc }
func (e *Select) Span() lexer.Span       { return e.Loc }
func (e *Index) Span() lexer.Span        { return e.Loc }
func (e *Func) Span() lexer.Span         { return e.Loc }
func (e *Call) Span() lexer.Span         { return e.Loc }
func (e *Binary) Span() lexer.Span       { return e.Loc }
func (e *Unary) Span() lexer.Span        { return e.Loc }
func (e *If) Span() lexer.Span           { return e.Loc }
func (e *Block) Span() lexer.Span        { return e.Loc }
func (e *Match) Span() lexer.Span        { return e.Loc }
func (e *Let) Span() lexer.Span          { return e.Loc }

// Pattern is the base for all match patterns.
type Pattern interface {
	// Name of the syntax-type of the pattern.
	PatternName() string
	// Span returns the source region covered by the pattern.
	Span() lexer.Span
}

var (
	_ Pattern = (*LitPattern)(nil)
	_ Pattern = (*VarPattern)(nil)
	_ Pattern = (*WildcardPattern)(nil)
)

// Literal pattern: `0`, `"zero"`, `true`, `null`. Value is one of the
// literal expression variants; it matches by structural equality.
type LitPattern struct {
	Value Expr
	Loc   lexer.Span
}

// Identifier pattern: always matches and binds the discriminant.
type VarPattern struct {
	Name string
	Loc  lexer.Span
}

// Wildcard pattern: `_`. Always matches, binds nothing.
type WildcardPattern struct {
	Loc lexer.Span
}

func (p *LitPattern) PatternName() string      { return "Lit" }
func (p *VarPattern) PatternName() string      { return "Var" }
func (p *WildcardPattern) PatternName() string { return "Wildcard" }

func (p *LitPattern) Span() lexer.Span      { return p.Loc }
func (p *VarPattern) Span() lexer.Span      { return p.Loc }
func (p *WildcardPattern) Span() lexer.Span { return p.Loc }

// TypeExpr is the base for all type annotations.
type TypeExpr interface {
	// Name of the syntax-type of the type expression.
	TypeExprName() string
	// Span returns the source region covered by the type expression.
	Span() lexer.Span
}

var (
	_ TypeExpr = (*PrimType)(nil)
	_ TypeExpr = (*ArrayType)(nil)
	_ TypeExpr = (*DictType)(nil)
	_ TypeExpr = (*FuncType)(nil)
	_ TypeExpr = (*VarType)(nil)
)

// Primitive type annotation: `number`, `string`, `boolean`, `null`,
// `undefined` or `unit`.
type PrimType struct {
	Name string
	Loc  lexer.Span
}

// Array type annotation: `[number]` or `Array<number>`
type ArrayType struct {
	Elem TypeExpr
	Loc  lexer.Span
}

// Dictionary type annotation: `[string: number]` or `Dict<string, number>`
type DictType struct {
	Key   TypeExpr
	Value TypeExpr
	Loc   lexer.Span
}

// Function type annotation: `(number, number) => number`
type FuncType struct {
	Params []TypeExpr
	Return TypeExpr
	Loc    lexer.Span
}

// Named type variable annotation: any non-primitive identifier. Each name
// denotes one fresh variable per annotation site.
type VarType struct {
	Name string
	Loc  lexer.Span
}

func (t *PrimType) TypeExprName() string  { return "Prim" }
func (t *ArrayType) TypeExprName() string { return "Array" }
func (t *DictType) TypeExprName() string  { return "Dict" }
func (t *FuncType) TypeExprName() string  { return "Func" }
func (t *VarType) TypeExprName() string   { return "Var" }

func (t *PrimType) Span() lexer.Span  { return t.Loc }
func (t *ArrayType) Span() lexer.Span { return t.Loc }
func (t *DictType) Span() lexer.Span  { return t.Loc }
func (t *FuncType) Span() lexer.Span  { return t.Loc }
func (t *VarType) Span() lexer.Span   { return t.Loc }
