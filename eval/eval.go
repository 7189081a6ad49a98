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

// Package eval implements a tree-walking evaluator over the shared syntax
// tree. Evaluation is strictly synchronous and single-threaded; all
// diagnostics are returned as *RuntimeError values.
package eval

import (
	"math"
	"strconv"

	"github.com/wdamron/rowan/ast"
	"github.com/wdamron/rowan/lexer"
)

// RuntimeError is an evaluation failure. Pos references the offending
// source position when one is known.
type RuntimeError struct {
	Msg string
	Pos lexer.Span
}

func (e *RuntimeError) Error() string {
	if e.Pos != (lexer.Span{}) {
		return e.Msg + " at " + e.Pos.String()
	}
	return e.Msg
}

func errAt(at ast.Expr, msg string) error {
	return &RuntimeError{Msg: msg, Pos: at.Span()}
}

// EvalProgram evaluates each item of a program in order within env,
// returning the value of the final item. Top-level let groups extend env
// for the items which follow them. An empty program evaluates to null.
func EvalProgram(prog *ast.Program, env *Env) (Value, error) {
	result := Null
	for _, item := range prog.Items {
		v, err := Eval(item, env)
		if err != nil {
			return Value{}, err
		}
		result = v
	}
	return result, nil
}

// Eval evaluates a single expression within env.
func Eval(e ast.Expr, env *Env) (Value, error) {
	switch e := e.(type) {
	case *ast.NumberLit:
		return Num(e.Value), nil

	case *ast.StringLit:
		return Str(e.Value), nil

	case *ast.BoolLit:
		return Bool(e.Value), nil

	case *ast.NullLit:
		return Null, nil

	case *ast.UndefinedLit:
		return Undefined, nil

	case *ast.Var:
		v, ok := env.Get(e.Name)
		if !ok {
			return Value{}, errAt(e, "Variable "+e.Name+" is not defined")
		}
		if v.Tag == tagPending {
			return Value{}, errAt(e, "Referenced before initialization: "+e.Name)
		}
		return v, nil

	case *ast.ArrayLit:
		b := NewArrayBuilder()
		for _, elem := range e.Elems {
			v, err := Eval(elem, env)
			if err != nil {
				return Value{}, err
			}
			b.Append(v)
		}
		return Arr(b.Build()), nil

	case *ast.DictLit:
		// Duplicate keys collapse to the last written value.
		b := NewDictBuilder()
		for i := range e.Entries {
			key, err := Eval(e.Entries[i].Key, env)
			if err != nil {
				return Value{}, err
			}
			value, err := Eval(e.Entries[i].Value, env)
			if err != nil {
				return Value{}, err
			}
			b.Set(key, value)
		}
		return DictVal(b.Build()), nil

	case *ast.RecordLit:
		r := NewRecord(len(e.Fields))
		for i := range e.Fields {
			v, err := Eval(e.Fields[i].Value, env)
			if err != nil {
				return Value{}, err
			}
			r.Set(e.Fields[i].Name, v)
		}
		return RecVal(r), nil

	case *ast.Select:
		obj, err := Eval(e.Object, env)
		if err != nil {
			return Value{}, err
		}
		if obj.Tag != TagRecord {
			return Value{}, errAt(e, "Cannot access field "+e.Field+" on "+obj.Tag.String())
		}
		if v, ok := obj.Data.(*RecordObject).Get(e.Field); ok {
			return v, nil
		}
		return Value{}, errAt(e, "Missing field "+e.Field)

	case *ast.Index:
		return evalIndex(e, env)

	case *ast.Func:
		params := make([]string, len(e.Params))
		for i := range e.Params {
			params[i] = e.Params[i].Name
		}
		return FunVal(&Closure{Params: params, Body: e.Body, Env: env}), nil

	case *ast.Call:
		return evalCall(e, env)

	case *ast.Binary:
		return evalBinary(e, env)

	case *ast.Unary:
		return evalUnary(e, env)

	case *ast.If:
		cond, err := Eval(e.Cond, env)
		if err != nil {
			return Value{}, err
		}
		if Truthy(cond) {
			return Eval(e.Then, env)
		}
		if e.Else == nil {
			return Null, nil
		}
		return Eval(e.Else, env)

	case *ast.Block:
		frame := NewEnv(env)
		for _, stmt := range e.Stmts {
			if _, err := Eval(stmt, frame); err != nil {
				return Value{}, err
			}
		}
		return Eval(e.Result, frame)

	case *ast.Match:
		return evalMatch(e, env)

	case *ast.Let:
		if err := evalLet(e, env); err != nil {
			return Value{}, err
		}
		return Null, nil
	}
	name := "nil"
	if e != nil {
		name = e.ExprName()
	}
	return Value{}, &RuntimeError{Msg: "Unhandled expression (" + name + ")"}
}

// evalLet binds a let group directly into env. Every name is pre-defined
// with a pending sentinel, then each slot is overwritten as its initializer
// completes, left to right. A read of a pending slot fails, so within the
// group only function bodies may refer forward or to their own binding.
func evalLet(e *ast.Let, env *Env) error {
	for i := range e.Bindings {
		env.Define(e.Bindings[i].Name, pendingValue)
	}
	for i := range e.Bindings {
		v, err := Eval(e.Bindings[i].Init, env)
		if err != nil {
			return err
		}
		env.Define(e.Bindings[i].Name, v)
	}
	return nil
}

func evalCall(e *ast.Call, env *Env) (Value, error) {
	callee, err := Eval(e.Func, env)
	if err != nil {
		return Value{}, err
	}
	args := make([]Value, len(e.Args))
	for i := range e.Args {
		if args[i], err = Eval(e.Args[i], env); err != nil {
			return Value{}, err
		}
	}
	switch callee.Tag {
	case TagClosure:
		fn := callee.Data.(*Closure)
		if len(args) != len(fn.Params) {
			return Value{}, errAt(e, "Function expects "+strconv.Itoa(len(fn.Params))+
				" arguments, found "+strconv.Itoa(len(args)))
		}
		frame := NewEnv(fn.Env)
		for i, name := range fn.Params {
			frame.Define(name, args[i])
		}
		return Eval(fn.Body, frame)

	case TagBuiltin:
		fn := callee.Data.(*Builtin)
		if len(args) != fn.Arity {
			return Value{}, errAt(e, fn.Name+" expects "+strconv.Itoa(fn.Arity)+
				" arguments, found "+strconv.Itoa(len(args)))
		}
		v, err := fn.Impl(args)
		if err != nil {
			// Builtins raise without a position; fill in the call site.
			if re, ok := err.(*RuntimeError); ok && re.Pos == (lexer.Span{}) {
				re.Pos = e.Span()
			}
			return Value{}, err
		}
		return v, nil
	}
	return Value{}, errAt(e, "Cannot call "+callee.Tag.String())
}

func evalBinary(e *ast.Binary, env *Env) (Value, error) {
	// Short-circuit operators evaluate the right side lazily and always
	// yield a boolean.
	if e.Op == lexer.AndAnd || e.Op == lexer.OrOr {
		left, err := Eval(e.Left, env)
		if err != nil {
			return Value{}, err
		}
		if e.Op == lexer.AndAnd {
			if !Truthy(left) {
				return False, nil
			}
		} else if Truthy(left) {
			return True, nil
		}
		right, err := Eval(e.Right, env)
		if err != nil {
			return Value{}, err
		}
		return Bool(Truthy(right)), nil
	}

	left, err := Eval(e.Left, env)
	if err != nil {
		return Value{}, err
	}
	right, err := Eval(e.Right, env)
	if err != nil {
		return Value{}, err
	}

	switch e.Op {
	case lexer.Eq:
		return Bool(Equal(left, right)), nil
	case lexer.NotEq:
		return Bool(!Equal(left, right)), nil
	case lexer.Plus:
		if left.Tag == TagString || right.Tag == TagString {
			return Str(ToString(left) + ToString(right)), nil
		}
	}

	if left.Tag != TagNumber || right.Tag != TagNumber {
		return Value{}, errAt(e, "Operator "+e.Op.String()+" expects numbers, found "+
			left.Tag.String()+" and "+right.Tag.String())
	}
	l, r := left.Data.(float64), right.Data.(float64)
	switch e.Op {
	case lexer.Plus:
		return Num(l + r), nil
	case lexer.Minus:
		return Num(l - r), nil
	case lexer.Star:
		return Num(l * r), nil
	case lexer.Slash:
		if r == 0 {
			return Value{}, errAt(e, "Division by zero")
		}
		return Num(l / r), nil
	case lexer.Percent:
		if r == 0 {
			return Value{}, errAt(e, "Modulo by zero")
		}
		return Num(math.Mod(l, r)), nil
	case lexer.Lt:
		return Bool(l < r), nil
	case lexer.LtEq:
		return Bool(l <= r), nil
	case lexer.Gt:
		return Bool(l > r), nil
	case lexer.GtEq:
		return Bool(l >= r), nil
	}
	return Value{}, errAt(e, "Unhandled operator "+e.Op.String())
}

func evalUnary(e *ast.Unary, env *Env) (Value, error) {
	operand, err := Eval(e.Operand, env)
	if err != nil {
		return Value{}, err
	}
	switch e.Op {
	case lexer.Minus:
		if operand.Tag != TagNumber {
			return Value{}, errAt(e, "Operator - expects a number, found "+operand.Tag.String())
		}
		return Num(-operand.Data.(float64)), nil
	case lexer.Bang:
		return Bool(!Truthy(operand)), nil
	}
	return Value{}, errAt(e, "Unhandled operator "+e.Op.String())
}

func evalIndex(e *ast.Index, env *Env) (Value, error) {
	container, err := Eval(e.Container, env)
	if err != nil {
		return Value{}, err
	}
	index, err := Eval(e.Index, env)
	if err != nil {
		return Value{}, err
	}
	switch container.Tag {
	case TagArray:
		arr := container.Data.(*ArrayObject)
		if index.Tag != TagNumber {
			return Value{}, errAt(e, "Array index must be a number, found "+index.Tag.String())
		}
		f := index.Data.(float64)
		i := int(f)
		if float64(i) != f {
			return Value{}, errAt(e, "Array index must be an integer, found "+FormatNumber(f))
		}
		if i < 0 || i >= arr.Len() {
			return Value{}, errAt(e, "Array index out of range: "+FormatNumber(f))
		}
		return arr.Get(i), nil

	case TagDict:
		// A missing key reads as undefined rather than failing.
		if v, ok := container.Data.(*DictObject).Get(index); ok {
			return v, nil
		}
		return Undefined, nil
	}
	return Value{}, errAt(e, "Cannot index "+container.Tag.String())
}

func evalMatch(e *ast.Match, env *Env) (Value, error) {
	value, err := Eval(e.Value, env)
	if err != nil {
		return Value{}, err
	}
	for i := range e.Cases {
		c := &e.Cases[i]
		frame, ok, err := matchPattern(c.Pattern, value, env)
		if err != nil {
			return Value{}, err
		}
		if !ok {
			continue
		}
		if c.Guard != nil {
			guard, err := Eval(c.Guard, frame)
			if err != nil {
				return Value{}, err
			}
			if !Truthy(guard) {
				continue
			}
		}
		return Eval(c.Body, frame)
	}
	return Value{}, errAt(e, "No case matched")
}

// matchPattern reports whether pattern matches value, returning the frame
// the guard and body should evaluate in.
func matchPattern(pattern ast.Pattern, value Value, env *Env) (*Env, bool, error) {
	switch pattern := pattern.(type) {
	case *ast.WildcardPattern:
		return env, true, nil

	case *ast.VarPattern:
		frame := NewEnv(env)
		frame.Define(pattern.Name, value)
		return frame, true, nil

	case *ast.LitPattern:
		lit, err := Eval(pattern.Value, env)
		if err != nil {
			return nil, false, err
		}
		return env, Equal(lit, value), nil
	}
	return nil, false, &RuntimeError{Msg: "Unknown pattern (" + pattern.PatternName() + ")", Pos: pattern.Span()}
}
