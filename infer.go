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
	"github.com/wdamron/rowan/ast"
	"github.com/wdamron/rowan/lexer"
	"github.com/wdamron/rowan/types"
)

func (ti *Inferencer) infer(env *TypeEnv, e ast.Expr) (types.Type, error) {
	switch e := e.(type) {
	case *ast.NumberLit:
		return types.Number, nil

	case *ast.StringLit:
		return types.String, nil

	case *ast.BoolLit:
		return types.Bool, nil

	case *ast.NullLit:
		return types.Null, nil

	case *ast.UndefinedLit:
		return types.Undefined, nil

	case *ast.Var:
		sch, ok := env.Lookup(e.Name)
		if !ok {
			return nil, ti.invalidExpr(e, "Variable "+e.Name+" not found")
		}
		return ti.instantiate(sch), nil

	case *ast.ArrayLit:
		if len(e.Elems) == 0 {
			return &types.Array{Elem: ti.freshVar()}, nil
		}
		elem, err := ti.infer(env, e.Elems[0])
		if err != nil {
			return nil, err
		}
		for _, el := range e.Elems[1:] {
			t, err := ti.infer(env, el)
			if err != nil {
				return nil, err
			}
			ti.constrain(t, elem, el)
		}
		return &types.Array{Elem: elem}, nil

	case *ast.DictLit:
		if len(e.Entries) == 0 {
			return &types.Dict{Key: ti.freshVar(), Value: ti.freshVar()}, nil
		}
		key, err := ti.infer(env, e.Entries[0].Key)
		if err != nil {
			return nil, err
		}
		val, err := ti.infer(env, e.Entries[0].Value)
		if err != nil {
			return nil, err
		}
		for i := range e.Entries[1:] {
			ent := &e.Entries[i+1]
			kt, err := ti.infer(env, ent.Key)
			if err != nil {
				return nil, err
			}
			ti.constrain(kt, key, ent.Key)
			vt, err := ti.infer(env, ent.Value)
			if err != nil {
				return nil, err
			}
			ti.constrain(vt, val, ent.Value)
		}
		return &types.Dict{Key: key, Value: val}, nil

	case *ast.RecordLit:
		fields := types.NewFieldMapBuilder()
		for i := range e.Fields {
			f := &e.Fields[i]
			t, err := ti.infer(env, f.Value)
			if err != nil {
				return nil, err
			}
			fields.Set(f.Name, t)
		}
		return &types.Record{Row: types.Row{Fields: fields.Build()}}, nil

	case *ast.Func:
		return ti.inferFunc(env, e)

	case *ast.Call:
		fn, err := ti.infer(env, e.Func)
		if err != nil {
			return nil, err
		}
		args := make([]types.Type, len(e.Args))
		for i, arg := range e.Args {
			if args[i], err = ti.infer(env, arg); err != nil {
				return nil, err
			}
		}
		ret := ti.freshVar()
		if err := ti.subsume(fn, &types.Arrow{Params: args, Return: ret}, e); err != nil {
			return nil, err
		}
		return ret, nil

	case *ast.Binary:
		lt, err := ti.infer(env, e.Left)
		if err != nil {
			return nil, err
		}
		rt, err := ti.infer(env, e.Right)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case lexer.Plus, lexer.Minus, lexer.Star, lexer.Slash, lexer.Percent:
			ti.constrain(lt, types.Number, e.Left)
			ti.constrain(rt, types.Number, e.Right)
			return types.Number, nil
		case lexer.Lt, lexer.LtEq, lexer.Gt, lexer.GtEq:
			ti.constrain(lt, types.Number, e.Left)
			ti.constrain(rt, types.Number, e.Right)
			return types.Bool, nil
		case lexer.Eq, lexer.NotEq:
			ti.constrain(lt, rt, e)
			return types.Bool, nil
		case lexer.AndAnd, lexer.OrOr:
			ti.constrain(lt, types.Bool, e.Left)
			ti.constrain(rt, types.Bool, e.Right)
			return types.Bool, nil
		}
		return nil, ti.invalidExpr(e, "Unhandled binary operator "+e.Op.String())

	case *ast.Unary:
		t, err := ti.infer(env, e.Operand)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case lexer.Minus:
			ti.constrain(t, types.Number, e.Operand)
			return types.Number, nil
		case lexer.Bang:
			ti.constrain(t, types.Bool, e.Operand)
			return types.Bool, nil
		}
		return nil, ti.invalidExpr(e, "Unhandled unary operator "+e.Op.String())

	case *ast.If:
		cond, err := ti.infer(env, e.Cond)
		if err != nil {
			return nil, err
		}
		ti.constrain(cond, types.Bool, e.Cond)
		thenType, err := ti.infer(env, e.Then)
		if err != nil {
			return nil, err
		}
		if e.Else == nil {
			ti.constrain(thenType, types.Unit, e.Then)
			return types.Unit, nil
		}
		elseType, err := ti.infer(env, e.Else)
		if err != nil {
			return nil, err
		}
		return ti.joinBranches(thenType, elseType, e), nil

	case *ast.Block:
		blockEnv := env
		for _, stmt := range e.Stmts {
			if let, ok := stmt.(*ast.Let); ok {
				var err error
				if blockEnv, err = ti.inferLet(blockEnv, let); err != nil {
					return nil, err
				}
				continue
			}
			if _, err := ti.infer(blockEnv, stmt); err != nil {
				return nil, err
			}
		}
		if let, ok := e.Result.(*ast.Let); ok {
			if _, err := ti.inferLet(blockEnv, let); err != nil {
				return nil, err
			}
			return types.Unit, nil
		}
		return ti.infer(blockEnv, e.Result)

	case *ast.Select:
		obj, err := ti.infer(env, e.Object)
		if err != nil {
			return nil, err
		}
		switch obj := obj.(type) {
		case *types.Record:
			if t, ok := obj.Row.Fields.Get(e.Field); ok {
				return t, nil
			}
			if obj.Row.Open() {
				return ti.freshVar(), nil
			}
			return nil, ti.invalidExpr(e, "Missing field "+e.Field+" in "+types.TypeString(obj))
		case *types.Var:
			ft := ti.freshVar()
			ti.deferAccess(obj, e.Field, ft, e)
			return ft, nil
		}
		return nil, ti.invalidExpr(e, "Cannot access field "+e.Field+" on "+types.TypeString(obj))

	case *ast.Index:
		container, err := ti.infer(env, e.Container)
		if err != nil {
			return nil, err
		}
		index, err := ti.infer(env, e.Index)
		if err != nil {
			return nil, err
		}
		_, stringIndex := e.Index.(*ast.StringLit)
		_, dictContainer := e.Container.(*ast.DictLit)
		if stringIndex || dictContainer {
			value := ti.freshVar()
			ti.constrain(container, &types.Dict{Key: index, Value: value}, e)
			return value, nil
		}
		elem := ti.freshVar()
		ti.constrain(container, &types.Array{Elem: elem}, e)
		ti.constrain(index, types.Number, e.Index)
		return elem, nil

	case *ast.Match:
		dt, err := ti.infer(env, e.Value)
		if err != nil {
			return nil, err
		}
		var result types.Type
		for i := range e.Cases {
			c := &e.Cases[i]
			caseEnv := env
			switch p := c.Pattern.(type) {
			case *ast.LitPattern:
				pt, err := ti.infer(env, p.Value)
				if err != nil {
					return nil, err
				}
				ti.constrain(pt, dt, p.Value)
			case *ast.VarPattern:
				// An identifier pattern binds the generalized discriminant type,
				// so the bound name may be used polymorphically in the guard.
				caseEnv = env.Extend(p.Name, generalize(env, dt))
			}
			if c.Guard != nil {
				gt, err := ti.infer(caseEnv, c.Guard)
				if err != nil {
					return nil, err
				}
				ti.constrain(gt, types.Bool, c.Guard)
			}
			bt, err := ti.infer(caseEnv, c.Body)
			if err != nil {
				return nil, err
			}
			if result == nil {
				result = bt
			} else {
				ti.constrain(bt, result, c.Body)
			}
		}
		if result == nil {
			result = ti.freshVar()
		}
		return result, nil

	case *ast.Let:
		// A let in expression position contributes its constraints but binds
		// nothing outside itself.
		if _, err := ti.inferLet(env, e); err != nil {
			return nil, err
		}
		return types.Unit, nil
	}

	var exprName string
	if e != nil {
		exprName = "(" + e.ExprName() + ")"
	} else {
		exprName = "(nil)"
	}
	return nil, ti.invalidExpr(e, "Unhandled expression "+exprName)
}

// Infer a let binding-group as a unit. Each name is pre-declared with a
// monomorphic placeholder (the annotation's type when present, a fresh
// variable otherwise), every initializer is inferred under the extended
// environment, then constraints are solved and each solved binding type is
// generalized against the outer environment, excluding the placeholders.
func (ti *Inferencer) inferLet(env *TypeEnv, e *ast.Let) (*TypeEnv, error) {
	placeholders := make([]types.Type, len(e.Bindings))
	groupEnv := env
	for i := range e.Bindings {
		b := &e.Bindings[i]
		if b.Annot != nil {
			names := make(map[string]*types.Var)
			placeholders[i] = ti.annotType(b.Annot, names)
		} else {
			placeholders[i] = ti.freshVar()
		}
		groupEnv = groupEnv.Extend(b.Name, types.MonoScheme(placeholders[i]))
	}
	for i := range e.Bindings {
		b := &e.Bindings[i]
		t, err := ti.infer(groupEnv, b.Init)
		if err != nil {
			return nil, err
		}
		if b.Annot != nil {
			// Annotated bindings are checked directionally, so a wider record
			// initializer may satisfy a narrower record annotation.
			if err := ti.subsume(t, placeholders[i], b.Init); err != nil {
				return nil, err
			}
		} else {
			ti.constrain(t, placeholders[i], b.Init)
		}
	}
	s, err := ti.solve()
	if err != nil {
		return nil, err
	}
	solved := env.Apply(s)
	result := solved
	for i := range e.Bindings {
		result = result.Extend(e.Bindings[i].Name, generalize(solved, s.Apply(placeholders[i])))
	}
	return result, nil
}

func (ti *Inferencer) inferFunc(env *TypeEnv, e *ast.Func) (types.Type, error) {
	// Named annotation variables are shared across the parameter list and
	// return annotation of a single function literal.
	names := make(map[string]*types.Var)
	params := make([]types.Type, len(e.Params))
	fnEnv := env
	for i := range e.Params {
		p := &e.Params[i]
		if p.Annot != nil {
			params[i] = ti.annotType(p.Annot, names)
		} else {
			params[i] = ti.freshVar()
		}
		fnEnv = fnEnv.Extend(p.Name, types.MonoScheme(params[i]))
	}
	ret, err := ti.infer(fnEnv, e.Body)
	if err != nil {
		return nil, err
	}
	if e.RetAnnot != nil {
		ti.constrain(ret, ti.annotType(e.RetAnnot, names), e.Body)
	}
	return &types.Arrow{Params: params, Return: ret}, nil
}

// Convert a source type annotation into a type. Named type-variables map to
// one fresh variable per name within a single annotation site.
func (ti *Inferencer) annotType(t ast.TypeExpr, names map[string]*types.Var) types.Type {
	switch t := t.(type) {
	case *ast.PrimType:
		switch t.Name {
		case "number":
			return types.Number
		case "string":
			return types.String
		case "boolean":
			return types.Bool
		case "null":
			return types.Null
		case "undefined":
			return types.Undefined
		case "unit":
			return types.Unit
		}

	case *ast.VarType:
		if tv, ok := names[t.Name]; ok {
			return tv
		}
		tv := ti.freshNamedVar(t.Name)
		names[t.Name] = tv
		return tv

	case *ast.ArrayType:
		return &types.Array{Elem: ti.annotType(t.Elem, names)}

	case *ast.DictType:
		return &types.Dict{Key: ti.annotType(t.Key, names), Value: ti.annotType(t.Value, names)}

	case *ast.FuncType:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = ti.annotType(p, names)
		}
		return &types.Arrow{Params: params, Return: ti.annotType(t.Return, names)}
	}
	panic("unexpected type annotation " + t.TypeExprName())
}
