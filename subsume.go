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
	"strconv"

	"github.com/wdamron/rowan/ast"
	"github.com/wdamron/rowan/types"
)

// Require that a value of type t may be used where type u is expected.
// Function types check contravariant parameters and a covariant return;
// record types check by width, allowing extra fields on the provided side;
// everything else falls back to an equality constraint. Subsumption is
// applied only at call sites and let-annotation boundaries.
func (ti *Inferencer) subsume(t, u types.Type, at ast.Expr) error {
	if types.Equal(t, u) {
		return nil
	}
	if _, ok := t.(*types.Var); ok {
		ti.constrain(t, u, at)
		return nil
	}
	if _, ok := u.(*types.Var); ok {
		ti.constrain(t, u, at)
		return nil
	}

	switch t := t.(type) {
	case *types.Arrow:
		if u, ok := u.(*types.Arrow); ok {
			if len(t.Params) != len(u.Params) {
				return ti.invalidExpr(at, "Function expects "+strconv.Itoa(len(t.Params))+
					" arguments, found "+strconv.Itoa(len(u.Params)))
			}
			for i := range t.Params {
				if err := ti.subsume(u.Params[i], t.Params[i], at); err != nil {
					return err
				}
			}
			return ti.subsume(t.Return, u.Return, at)
		}

	case *types.Record:
		if u, ok := u.(*types.Record); ok {
			var missing []string
			var err error
			u.Row.Fields.Range(func(name string, uField types.Type) bool {
				tField, ok := t.Row.Fields.Get(name)
				if !ok {
					missing = append(missing, name)
					return true
				}
				err = ti.subsume(tField, uField, at)
				return err == nil
			})
			if err != nil {
				return err
			}
			if len(missing) > 0 {
				return ti.invalidExpr(at, missingFields(missing, t).Error())
			}
			return nil
		}

	case *types.Array:
		if u, ok := u.(*types.Array); ok {
			ti.constrain(t.Elem, u.Elem, at)
			return nil
		}

	case *types.Dict:
		if u, ok := u.(*types.Dict); ok {
			ti.constrain(t.Key, u.Key, at)
			ti.constrain(t.Value, u.Value, at)
			return nil
		}
	}

	ti.constrain(t, u, at)
	return nil
}
