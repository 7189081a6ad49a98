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
	"strings"

	"github.com/wdamron/rowan/types"
)

// Unify two types, returning the most-general substitution which makes
// them equal.
func unify(a, b types.Type) (types.Subst, error) {
	if types.Equal(a, b) {
		return nil, nil
	}

	// Row variables unify only with each other, ahead of plain
	// type-variable binding:

	if a, ok := a.(*types.RowVar); ok {
		if b, ok := b.(*types.RowVar); ok {
			if a.Id == b.Id {
				return nil, nil
			}
			return types.Subst{types.RowKey(a.Id): b}, nil
		}
		return nil, errors.New("Failed to unify row variable with " + types.TypeString(b))
	}
	if _, ok := b.(*types.RowVar); ok {
		return nil, errors.New("Failed to unify row variable with " + types.TypeString(a))
	}

	// Bind type variables:

	if a, ok := a.(*types.Var); ok {
		return bind(a, b)
	}
	if b, ok := b.(*types.Var); ok {
		return bind(b, a)
	}

	// Unify structurally:

	switch a := a.(type) {
	case *types.Array:
		if b, ok := b.(*types.Array); ok {
			return unify(a.Elem, b.Elem)
		}

	case *types.Dict:
		if b, ok := b.(*types.Dict); ok {
			s, err := unify(a.Key, b.Key)
			if err != nil {
				return nil, err
			}
			sv, err := unify(s.Apply(a.Value), s.Apply(b.Value))
			if err != nil {
				return nil, err
			}
			return types.Compose(sv, s), nil
		}

	case *types.Arrow:
		if b, ok := b.(*types.Arrow); ok {
			if len(a.Params) != len(b.Params) {
				return nil, errors.New("Cannot unify arrows with differing arity")
			}
			var s types.Subst
			for i := range a.Params {
				si, err := unify(s.Apply(a.Params[i]), s.Apply(b.Params[i]))
				if err != nil {
					return nil, err
				}
				s = types.Compose(si, s)
			}
			sr, err := unify(s.Apply(a.Return), s.Apply(b.Return))
			if err != nil {
				return nil, err
			}
			return types.Compose(sr, s), nil
		}

	case *types.Record:
		if b, ok := b.(*types.Record); ok {
			return unifyRows(a, b)
		}
	}

	return nil, errors.New("Failed to unify " + types.TypeString(a) + " with " + types.TypeString(b))
}

// Bind a type-variable to a type after checking for recursion.
func bind(v *types.Var, t types.Type) (types.Subst, error) {
	if tv, ok := t.(*types.Var); ok && tv.Id == v.Id {
		return nil, nil
	}
	if occursCheck(v, t) {
		return nil, errors.New("Implicitly recursive types are not supported")
	}
	return types.Subst{v.Id: t}, nil
}

// occursCheck reports whether v appears free in t. Record types are exempt,
// letting a variable resolve to an open record which mentions itself
// through a field.
func occursCheck(v *types.Var, t types.Type) bool {
	if _, ok := t.(*types.Record); ok {
		return false
	}
	return types.FreeVars(t).Contains(v.Id)
}

// Unify two record types fieldwise. Fields present on only one side
// require an open tail on the other side; when both rows are open, one row
// variable is mapped to the other.
func unifyRows(a, b *types.Record) (types.Subst, error) {
	var s types.Subst
	var err error
	a.Row.Fields.Range(func(name string, at types.Type) bool {
		bt, ok := b.Row.Fields.Get(name)
		if !ok {
			return true
		}
		var si types.Subst
		if si, err = unify(s.Apply(at), s.Apply(bt)); err != nil {
			return false
		}
		s = types.Compose(si, s)
		return true
	})
	if err != nil {
		return nil, err
	}
	if extra := extraFields(a, b); len(extra) > 0 && !b.Row.Open() {
		return nil, missingFields(extra, b)
	}
	if extra := extraFields(b, a); len(extra) > 0 && !a.Row.Open() {
		return nil, missingFields(extra, a)
	}
	if a.Row.Open() && b.Row.Open() && a.Row.Tail.Id != b.Row.Tail.Id {
		s = types.Compose(types.Subst{types.RowKey(a.Row.Tail.Id): b.Row.Tail}, s)
	}
	return s, nil
}

// extraFields lists the field names present on a but absent from b.
func extraFields(a, b *types.Record) []string {
	var extra []string
	a.Row.Fields.Range(func(name string, _ types.Type) bool {
		if _, ok := b.Row.Fields.Get(name); !ok {
			extra = append(extra, name)
		}
		return true
	})
	return extra
}

func missingFields(names []string, in *types.Record) error {
	if len(names) == 1 {
		return errors.New("Missing field " + names[0] + " in " + types.TypeString(in))
	}
	return errors.New("Missing fields " + strings.Join(names, ", ") + " in " + types.TypeString(in))
}
