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
	"github.com/wdamron/rowan/types"
)

// Solve the accumulated constraints, returning the most-general
// substitution satisfying them. Equality constraints are processed in
// order, threading the substitution through each unification. Deferred
// field accesses are then grouped by their substituted object type: each
// group still headed by a type-variable synthesizes an open record which
// the variable is unified against, and the rest re-check their field
// directly. Both constraint lists are cleared before returning.
func (ti *Inferencer) solve() (types.Subst, error) {
	defer func() {
		ti.constraints = ti.constraints[:0]
		ti.fieldAccesses = ti.fieldAccesses[:0]
	}()

	var s types.Subst
	for i := range ti.constraints {
		c := &ti.constraints[i]
		mgu, err := unify(s.Apply(c.a), s.Apply(c.b))
		if err != nil {
			return nil, ti.invalidExpr(c.at, err.Error())
		}
		s = types.Compose(mgu, s)
	}

	// Group accesses on a shared object variable, so one record is
	// synthesized per variable no matter how many fields were selected.
	var varOrder []int
	varGroups := make(map[int][]*fieldAccess)
	var direct []*fieldAccess
	for i := range ti.fieldAccesses {
		fa := &ti.fieldAccesses[i]
		if v, ok := s.Apply(fa.object).(*types.Var); ok {
			if _, seen := varGroups[v.Id]; !seen {
				varOrder = append(varOrder, v.Id)
			}
			varGroups[v.Id] = append(varGroups[v.Id], fa)
			continue
		}
		direct = append(direct, fa)
	}

	for _, id := range varOrder {
		group := varGroups[id]
		fieldTypes := make(map[string]types.Type, len(group))
		for _, fa := range group {
			ft := s.Apply(fa.ftype)
			prior, ok := fieldTypes[fa.field]
			if !ok {
				fieldTypes[fa.field] = ft
				continue
			}
			mgu, err := unify(s.Apply(prior), s.Apply(ft))
			if err != nil {
				return nil, ti.invalidExpr(fa.at, err.Error())
			}
			s = types.Compose(mgu, s)
			fieldTypes[fa.field] = s.Apply(prior)
		}
		rec := &types.Record{Row: types.Row{Fields: types.NewFlatFieldMap(fieldTypes), Tail: ti.freshRow()}}
		mgu, err := unify(s.Apply(types.NewVar(id)), rec)
		if err != nil {
			return nil, ti.invalidExpr(group[0].at, err.Error())
		}
		s = types.Compose(mgu, s)
	}

	for _, fa := range direct {
		object := s.Apply(fa.object)
		rec, ok := object.(*types.Record)
		if !ok {
			return nil, ti.invalidExpr(fa.at, "Cannot access field "+fa.field+" on "+types.TypeString(object))
		}
		ft, ok := rec.Row.Fields.Get(fa.field)
		if !ok {
			if rec.Row.Open() {
				continue
			}
			return nil, ti.invalidExpr(fa.at, missingFields([]string{fa.field}, rec).Error())
		}
		mgu, err := unify(s.Apply(fa.ftype), ft)
		if err != nil {
			return nil, ti.invalidExpr(fa.at, err.Error())
		}
		s = types.Compose(mgu, s)
	}

	return s, nil
}
