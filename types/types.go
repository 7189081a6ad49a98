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

// Type is the base interface for all types.
type Type interface {
	TypeName() string
}

func (t *Var) TypeName() string    { return "Var" }
func (t *RowVar) TypeName() string { return "RowVar" }
func (t *Const) TypeName() string  { return "Const" }
func (t *Array) TypeName() string  { return "Array" }
func (t *Dict) TypeName() string   { return "Dict" }
func (t *Record) TypeName() string { return "Record" }
func (t *Arrow) TypeName() string  { return "Arrow" }

var (
	_ Type = (*Var)(nil)
	_ Type = (*RowVar)(nil)
	_ Type = (*Const)(nil)
	_ Type = (*Array)(nil)
	_ Type = (*Dict)(nil)
	_ Type = (*Record)(nil)
	_ Type = (*Arrow)(nil)
)

// Type variable. Ids are drawn from a per-run counter and are unique across
// a run. Name is non-empty for variables written in source annotations.
type Var struct {
	Id   int
	Name string
}

// Create a new type variable.
func NewVar(id int) *Var { return &Var{Id: id} }

// Create a new type variable carrying an annotation-site name.
func NewNamedVar(id int, name string) *Var { return &Var{Id: id, Name: name} }

// Row variable. Ids are drawn from a separate per-run counter; row variables
// unify only with row variables.
type RowVar struct {
	Id int
}

// Create a new row variable.
func NewRowVar(id int) *RowVar { return &RowVar{Id: id} }

// Type constant: `number` or `boolean`
type Const struct {
	Name string
}

// Primitive types, shared across all runs.
var (
	Number    = &Const{Name: "number"}
	String    = &Const{Name: "string"}
	Bool      = &Const{Name: "boolean"}
	Null      = &Const{Name: "null"}
	Undefined = &Const{Name: "undefined"}
	Unit      = &Const{Name: "unit"}
)

// Array type: `[number]`
type Array struct {
	Elem Type
}

// Dictionary type: `[string: number]`
type Dict struct {
	Key   Type
	Value Type
}

// Record type: `{x: number, y: number}`
type Record struct {
	Row Row
}

// Row is a mapping from field names to types, plus an optional row-variable
// tail. A row with a tail is open: the record admits fields beyond those
// listed. Field names are unique within a row.
type Row struct {
	Fields FieldMap
	Tail   *RowVar
}

// Open reports whether the row permits additional, unlisted fields.
func (r Row) Open() bool { return r.Tail != nil }

// Function type: `(number, number) => number`
type Arrow struct {
	Params []Type
	Return Type
}

// Scheme is a universally quantified type. Vars lists the quantified
// type-variable ids; row variables are never quantified.
type Scheme struct {
	Vars []int
	Body Type
}

// Create a scheme with no quantified variables.
func MonoScheme(t Type) Scheme { return Scheme{Body: t} }

// Equal reports whether two types are structurally identical, including
// variable ids.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case *Var:
		b, ok := b.(*Var)
		return ok && a.Id == b.Id
	case *RowVar:
		b, ok := b.(*RowVar)
		return ok && a.Id == b.Id
	case *Const:
		b, ok := b.(*Const)
		return ok && a.Name == b.Name
	case *Array:
		b, ok := b.(*Array)
		return ok && Equal(a.Elem, b.Elem)
	case *Dict:
		b, ok := b.(*Dict)
		return ok && Equal(a.Key, b.Key) && Equal(a.Value, b.Value)
	case *Arrow:
		b, ok := b.(*Arrow)
		if !ok || len(a.Params) != len(b.Params) {
			return false
		}
		for i, p := range a.Params {
			if !Equal(p, b.Params[i]) {
				return false
			}
		}
		return Equal(a.Return, b.Return)
	case *Record:
		b, ok := b.(*Record)
		if !ok || a.Row.Fields.Len() != b.Row.Fields.Len() {
			return false
		}
		if a.Row.Open() != b.Row.Open() {
			return false
		}
		if a.Row.Open() && a.Row.Tail.Id != b.Row.Tail.Id {
			return false
		}
		equal := true
		a.Row.Fields.Range(func(name string, at Type) bool {
			bt, ok := b.Row.Fields.Get(name)
			if !ok || !Equal(at, bt) {
				equal = false
			}
			return equal
		})
		return equal
	}
	return false
}
