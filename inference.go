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

package rowan

import (
	"errors"

	"github.com/wdamron/rowan/ast"
	"github.com/wdamron/rowan/types"
)

// constraint requires two types to be equal when constraints are solved.
type constraint struct {
	a, b types.Type
	at   ast.Expr
}

// fieldAccess defers checking of a field selection on a type-variable until
// solving, when more of the object type may be known.
type fieldAccess struct {
	object types.Type
	field  string
	ftype  types.Type
	at     ast.Expr
}

// Inferencer is a re-usable context for type inference.
//
// An Inferencer cannot be used concurrently; type-environments may be shared
// across Inferencers.
type Inferencer struct {
	// Next unused type-variable and row-variable ids; the two id spaces are
	// tracked separately and never collide within a substitution.
	nextVarId int
	nextRowId int

	constraints   []constraint
	fieldAccesses []fieldAccess

	err        error
	invalid    ast.Expr
	needsReset bool
}

// Create a new type-inference context. A context may be re-used for
// inference.
func NewInferencer() *Inferencer { return &Inferencer{} }

func (ti *Inferencer) reset() {
	ti.constraints = ti.constraints[:0]
	ti.fieldAccesses = ti.fieldAccesses[:0]
	ti.nextVarId, ti.nextRowId = 0, 0
	ti.err, ti.invalid, ti.needsReset = nil, nil, false
}

// Reset the state of the context. The context will be reset automatically
// before inference.
func (ti *Inferencer) Reset() {
	if !ti.needsReset {
		return
	}
	ti.reset()
}

// Get the error which caused inference to fail.
func (ti *Inferencer) Error() error { return ti.err }

// Get the expression which caused inference to fail.
func (ti *Inferencer) InvalidExpr() ast.Expr { return ti.invalid }

// Create an unbound type-variable with a unique id.
func (ti *Inferencer) freshVar() *types.Var {
	id := ti.nextVarId
	ti.nextVarId++
	return types.NewVar(id)
}

// Create an unbound type-variable with a unique id, carrying the name used
// for it in a source annotation.
func (ti *Inferencer) freshNamedVar(name string) *types.Var {
	id := ti.nextVarId
	ti.nextVarId++
	return types.NewNamedVar(id, name)
}

// Create an unbound row-variable with a unique id.
func (ti *Inferencer) freshRow() *types.RowVar {
	id := ti.nextRowId
	ti.nextRowId++
	return types.NewRowVar(id)
}

// Record an equality constraint between two types, to be checked when
// constraints are solved.
func (ti *Inferencer) constrain(a, b types.Type, at ast.Expr) {
	ti.constraints = append(ti.constraints, constraint{a: a, b: b, at: at})
}

// Record a pending field access on an object type, to be checked when
// constraints are solved.
func (ti *Inferencer) deferAccess(object types.Type, field string, ftype types.Type, at ast.Expr) {
	ti.fieldAccesses = append(ti.fieldAccesses, fieldAccess{object: object, field: field, ftype: ftype, at: at})
}

// Record and return an inference failure at an expression. Only the first
// failure is retained for Error and InvalidExpr.
func (ti *Inferencer) invalidExpr(at ast.Expr, msg string) error {
	err := &TypeError{Msg: msg, Expr: at}
	if ti.err == nil {
		ti.invalid, ti.err = at, err
	}
	return err
}

// Infer a type for each item of a program in order, solving constraints
// after each item, and return the resulting type-environment. Bindings
// introduced by top-level let items remain visible to all following items.
//
// If env is nil, a type-environment containing the builtin functions is
// used.
func (ti *Inferencer) InferProgram(prog *ast.Program, env *TypeEnv) (*TypeEnv, error) {
	if prog == nil {
		return nil, errors.New("Empty program")
	}
	if ti.needsReset {
		ti.reset()
	}
	ti.needsReset = true
	if env == nil {
		env = NewTypeEnv()
	}
	for _, item := range prog.Items {
		var err error
		env, err = ti.inferItem(env, item)
		if err != nil {
			return nil, err
		}
	}
	return env, nil
}

// Infer the type of a single expression within env, solving constraints
// before returning the type.
//
// If env is nil, a type-environment containing the builtin functions is
// used.
func (ti *Inferencer) Infer(expr ast.Expr, env *TypeEnv) (types.Type, error) {
	if expr == nil {
		return nil, errors.New("Empty expression")
	}
	if ti.needsReset {
		ti.reset()
	}
	ti.needsReset = true
	if env == nil {
		env = NewTypeEnv()
	}
	t, err := ti.infer(env, expr)
	if err != nil {
		return nil, err
	}
	s, err := ti.solve()
	if err != nil {
		return nil, err
	}
	return s.Apply(t), nil
}

func (ti *Inferencer) inferItem(env *TypeEnv, item ast.Expr) (*TypeEnv, error) {
	if let, ok := item.(*ast.Let); ok {
		return ti.inferLet(env, let)
	}
	if _, err := ti.infer(env, item); err != nil {
		return nil, err
	}
	s, err := ti.solve()
	if err != nil {
		return nil, err
	}
	return env.Apply(s), nil
}
