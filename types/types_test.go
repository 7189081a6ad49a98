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
	"testing"
)

func TestEqual(t *testing.T) {
	if !Equal(NewVar(1), NewVar(1)) || Equal(NewVar(1), NewVar(2)) {
		t.Fatalf("variable equality should follow ids")
	}
	if !Equal(Number, Number) || Equal(Number, String) {
		t.Fatalf("constant equality should follow names")
	}
	if !Equal(&Array{Elem: Number}, &Array{Elem: Number}) {
		t.Fatalf("array equality should follow element types")
	}
	a := &Arrow{Params: []Type{Number, Bool}, Return: String}
	b := &Arrow{Params: []Type{Number, Bool}, Return: String}
	c := &Arrow{Params: []Type{Number}, Return: String}
	if !Equal(a, b) || Equal(a, c) {
		t.Fatalf("arrow equality should follow arity and positions")
	}

	closed := &Record{Row: Row{Fields: SingletonFieldMap("x", Number)}}
	open := &Record{Row: Row{Fields: SingletonFieldMap("x", Number), Tail: NewRowVar(0)}}
	if Equal(closed, open) {
		t.Fatalf("open and closed rows should differ")
	}
	if !Equal(open, &Record{Row: Row{Fields: SingletonFieldMap("x", Number), Tail: NewRowVar(0)}}) {
		t.Fatalf("open rows with the same tail id should be equal")
	}
}

func TestTypeString(t *testing.T) {
	checks := []struct {
		t      Type
		expect string
	}{
		{Number, "number"},
		{&Array{Elem: Number}, "[number]"},
		{&Dict{Key: String, Value: Number}, "[string: number]"},
		{&Arrow{Params: []Type{Number, Bool}, Return: String}, "(number, boolean) => string"},
		{&Arrow{Return: Unit}, "() => unit"},
		{&Arrow{Params: []Type{NewVar(4)}, Return: NewVar(4)}, "(a) => a"},
		{&Arrow{Params: []Type{NewVar(4)}, Return: NewVar(7)}, "(a) => b"},
		{&Arrow{Params: []Type{NewNamedVar(4, "t")}, Return: NewNamedVar(4, "t")}, "(t) => t"},
		{&Record{Row: Row{Fields: NewFlatFieldMap(map[string]Type{"y": String, "x": Number})}}, "{x: number, y: string}"},
		{&Record{Row: Row{Fields: SingletonFieldMap("x", Number), Tail: NewRowVar(3)}}, "{x: number | r0}"},
		{&Record{Row: Row{}}, "{}"},
	}
	for _, check := range checks {
		if s := TypeString(check.t); s != check.expect {
			t.Fatalf("type: %s != %s", s, check.expect)
		}
	}
}

func TestSubstApply(t *testing.T) {
	s := Subst{0: Number}
	if !Equal(s.Apply(NewVar(0)), Number) {
		t.Fatalf("apply: %s", TypeString(s.Apply(NewVar(0))))
	}
	if !Equal(s.Apply(NewVar(1)), NewVar(1)) {
		t.Fatalf("unbound variables should be unchanged")
	}
	arrow := &Arrow{Params: []Type{NewVar(0)}, Return: &Array{Elem: NewVar(0)}}
	if ts := TypeString(s.Apply(arrow)); ts != "(number) => [number]" {
		t.Fatalf("type: %s", ts)
	}

	// Images are not re-substituted in a single application.
	chain := Subst{0: NewVar(1), 1: Number}
	if !Equal(chain.Apply(NewVar(0)), NewVar(1)) {
		t.Fatalf("apply should substitute one step at a time")
	}

	// A row-variable tail is replaced only by another row variable.
	open := &Record{Row: Row{Fields: SingletonFieldMap("x", Number), Tail: NewRowVar(0)}}
	remap := Subst{RowKey(0): NewRowVar(1)}
	applied := remap.Apply(open).(*Record)
	if applied.Row.Tail == nil || applied.Row.Tail.Id != 1 {
		t.Fatalf("tail: %v", applied.Row.Tail)
	}
	noRemap := Subst{RowKey(0): Number}
	applied = noRemap.Apply(open).(*Record)
	if applied.Row.Tail == nil || applied.Row.Tail.Id != 0 {
		t.Fatalf("tail: %v", applied.Row.Tail)
	}
}

func TestSubstApplySelfReferentialRecord(t *testing.T) {
	// A variable may resolve to an open record which mentions itself
	// through a field; application must terminate.
	rec := &Record{Row: Row{Fields: SingletonFieldMap("self", NewVar(0)), Tail: NewRowVar(0)}}
	s := Subst{0: rec}
	applied := s.Apply(rec)
	if ts := TypeString(applied); ts != "{self: {self: a | r0} | r0}" {
		t.Fatalf("type: %s", ts)
	}
}

func TestSubstCompose(t *testing.T) {
	s2 := Subst{0: NewVar(1)}
	s1 := Subst{1: Number}
	s := Compose(s1, s2)
	if !Equal(s.Apply(NewVar(0)), Number) {
		t.Fatalf("composed images should be fully applied")
	}
	if !Equal(s.Apply(NewVar(1)), Number) {
		t.Fatalf("bindings unique to the second substitution should be kept")
	}
}

func TestApplyScheme(t *testing.T) {
	sch := Scheme{Vars: []int{0}, Body: &Arrow{Params: []Type{NewVar(0)}, Return: NewVar(1)}}
	s := Subst{0: Number, 1: String}
	applied := s.ApplyScheme(sch)
	if ts := TypeString(applied.Body); ts != "(a) => string" {
		t.Fatalf("scheme: %s", ts)
	}
	if len(applied.Vars) != 1 || applied.Vars[0] != 0 {
		t.Fatalf("quantified: %v", applied.Vars)
	}
}

func TestFreeVars(t *testing.T) {
	rec := &Record{Row: Row{Fields: SingletonFieldMap("x", NewVar(2)), Tail: NewRowVar(0)}}
	arrow := &Arrow{Params: []Type{NewVar(1), rec}, Return: &Array{Elem: NewVar(1)}}
	free := FreeVars(arrow)
	if free.Size() != 3 || !free.Contains(1) || !free.Contains(2) || !free.Contains(RowKey(0)) {
		t.Fatalf("free: %v", free.Slice())
	}

	sch := Scheme{Vars: []int{1}, Body: arrow}
	free = SchemeFreeVars(sch)
	if free.Size() != 2 || free.Contains(1) {
		t.Fatalf("free: %v", free.Slice())
	}
}

func TestFieldMap(t *testing.T) {
	b := NewFieldMapBuilder()
	b.Set("y", String)
	b.Set("x", Number)
	m := b.Build()
	if m.Len() != 2 {
		t.Fatalf("len: %d", m.Len())
	}
	if ft, ok := m.Get("x"); !ok || !Equal(ft, Number) {
		t.Fatalf("get: %v %v", ft, ok)
	}
	var names []string
	m.Range(func(name string, _ Type) bool {
		names = append(names, name)
		return true
	})
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Fatalf("iteration order: %v", names)
	}

	// Extending through a builder must not mutate the original map.
	b2 := m.Builder()
	b2.Set("z", Bool)
	m2 := b2.Build()
	if m.Len() != 2 || m2.Len() != 3 {
		t.Fatalf("len: %d %d", m.Len(), m2.Len())
	}
}
