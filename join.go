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
	"github.com/wdamron/rowan/types"
)

// Join the types of two conditional branches. When both branches are known
// record types the result is a closed record over their common fields:
// common fields which are both records join recursively, all other common
// fields are equality-constrained, and fields on only one branch are
// dropped. For any other combination the branches are equality-constrained
// and the then-branch type is returned.
func (ti *Inferencer) joinBranches(t, u types.Type, at ast.Expr) types.Type {
	tRec, ok := t.(*types.Record)
	if !ok {
		ti.constrain(t, u, at)
		return t
	}
	uRec, ok := u.(*types.Record)
	if !ok {
		ti.constrain(t, u, at)
		return t
	}
	common := 0
	tRec.Row.Fields.Range(func(name string, _ types.Type) bool {
		if _, ok := uRec.Row.Fields.Get(name); ok {
			common++
		}
		return true
	})
	if common == 0 {
		ti.constrain(t, u, at)
		return t
	}
	fields := types.NewFieldMapBuilder()
	tRec.Row.Fields.Range(func(name string, tField types.Type) bool {
		uField, ok := uRec.Row.Fields.Get(name)
		if !ok {
			return true
		}
		_, tIsRec := tField.(*types.Record)
		_, uIsRec := uField.(*types.Record)
		if tIsRec && uIsRec {
			fields.Set(name, ti.joinBranches(tField, uField, at))
			return true
		}
		ti.constrain(tField, uField, at)
		fields.Set(name, tField)
		return true
	})
	return &types.Record{Row: types.Row{Fields: fields.Build()}}
}
