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

package types

import (
	"github.com/hashicorp/go-set/v2"
)

// FreeVars collects the variable ids free in t. Row-variable ids appear
// under RowKey to keep the two id spaces disjoint within one set.
func FreeVars(t Type) *set.Set[int] {
	vars := set.New[int](8)
	freeVars(t, vars)
	return vars
}

func freeVars(t Type, vars *set.Set[int]) {
	switch t := t.(type) {
	case *Var:
		vars.Insert(t.Id)
	case *RowVar:
		vars.Insert(RowKey(t.Id))
	case *Array:
		freeVars(t.Elem, vars)
	case *Dict:
		freeVars(t.Key, vars)
		freeVars(t.Value, vars)
	case *Arrow:
		for _, p := range t.Params {
			freeVars(p, vars)
		}
		freeVars(t.Return, vars)
	case *Record:
		t.Row.Fields.Range(func(name string, ft Type) bool {
			freeVars(ft, vars)
			return true
		})
		if t.Row.Tail != nil {
			vars.Insert(RowKey(t.Row.Tail.Id))
		}
	}
}

// SchemeFreeVars collects the variable ids free in a scheme: those free in
// the body minus the quantified set.
func SchemeFreeVars(sch Scheme) *set.Set[int] {
	vars := FreeVars(sch.Body)
	for _, id := range sch.Vars {
		vars.Remove(id)
	}
	return vars
}
