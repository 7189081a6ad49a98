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

// rowan implements a small expression language with type inference for a
// polymorphic type-system with extensible records, and a tree-walking
// evaluator over the same syntax tree.
//
// The type-system is an extension of Hindley-Milner with row-polymorphic
// records based on Daan Leijen's paper: Extensible Records with Scoped
// Labels (Microsoft Research).
//
//
// Supported Features:
//
//   * Parametric polymorphism with generalization at let bindings
//   * Row-polymorphic records with width subtyping at calls and annotations
//   * Mutually-recursive function expressions within grouped let bindings
//   * Deferred field-access constraints resolved against accumulated uses
//   * Arrays, insertion-ordered dictionaries with structural keys, records
//   * Pattern matching with literal, identifier and wildcard patterns
//   * Closures over lexical environments with recursive let bindings
//
//
// Links:
//
// Extensible Records with Scoped Labels (Leijen, 2005): https://www.microsoft.com/en-us/research/publication/extensible-records-with-scoped-labels/
//
// Hindley-Milner type system: https://en.wikipedia.org/wiki/Hindley–Milner_type_system
package rowan

import (
	"github.com/wdamron/rowan/ast"
	"github.com/wdamron/rowan/eval"
	"github.com/wdamron/rowan/parser"
	"github.com/wdamron/rowan/types"
)

// Parse scans and parses source text into a program. Failures are
// *lexer.Error or *parser.Error values.
func Parse(source string) (*ast.Program, error) {
	return parser.Parse(source)
}

// InferTypes infers and solves types for every top-level item of a program
// within env, returning the extended environment. A nil env starts from the
// builtin environment. Failures are *TypeError values.
func InferTypes(prog *ast.Program, env *TypeEnv) (*TypeEnv, error) {
	return NewInferencer().InferProgram(prog, env)
}

// InferExpr infers and solves the type of a single expression within env.
// A nil env starts from the builtin environment.
func InferExpr(expr ast.Expr, env *TypeEnv) (types.Type, error) {
	if env == nil {
		env = NewTypeEnv()
	}
	return NewInferencer().Infer(expr, env)
}

// Evaluate runs a program in a fresh runtime environment seeded with the
// builtin functions, returning the value of the final top-level item.
// Failures are *eval.RuntimeError values.
func Evaluate(prog *ast.Program) (eval.Value, error) {
	return eval.EvalProgram(prog, NewRuntimeEnv())
}

// Run parses, type-checks and evaluates source text, returning the value of
// the final top-level item. The first failure of any stage is returned.
func Run(source string) (eval.Value, error) {
	prog, err := Parse(source)
	if err != nil {
		return eval.Value{}, err
	}
	if _, err := InferTypes(prog, NewTypeEnv()); err != nil {
		return eval.Value{}, err
	}
	return Evaluate(prog)
}
