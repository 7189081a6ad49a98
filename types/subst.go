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

// Subst is a substitution from variable ids to types, applied
// homomorphically. Type-variable ids are stored under their own value;
// row-variable ids are stored under RowKey(id), so the two id spaces
// never collide within one map.
type Subst map[int]Type

// RowKey maps a row-variable id into the substitution key space reserved
// for row variables.
func RowKey(id int) int { return -1 - id }

// Apply replaces every variable in t bound by the substitution with its
// image, recursing into arrays, dictionaries, rows and function types.
// Images are not re-substituted; Compose keeps them fully applied.
// A row-variable tail is replaced only when its image is another row
// variable, since row variables unify only with row variables.
func (s Subst) Apply(t Type) Type {
	if len(s) == 0 {
		return t
	}
	switch t := t.(type) {
	case *Var:
		if image, ok := s[t.Id]; ok {
			return image
		}
		return t
	case *RowVar:
		if image, ok := s[RowKey(t.Id)]; ok {
			if rv, ok := image.(*RowVar); ok {
				return rv
			}
		}
		return t
	case *Array:
		return &Array{Elem: s.Apply(t.Elem)}
	case *Dict:
		return &Dict{Key: s.Apply(t.Key), Value: s.Apply(t.Value)}
	case *Arrow:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = s.Apply(p)
		}
		return &Arrow{Params: params, Return: s.Apply(t.Return)}
	case *Record:
		b := NewFieldMapBuilder()
		t.Row.Fields.Range(func(name string, ft Type) bool {
			b.Set(name, s.Apply(ft))
			return true
		})
		tail := t.Row.Tail
		if tail != nil {
			if image, ok := s[RowKey(tail.Id)]; ok {
				if rv, ok := image.(*RowVar); ok {
					tail = rv
				}
			}
		}
		return &Record{Row: Row{Fields: b.Build(), Tail: tail}}
	}
	return t
}

// ApplyScheme applies the substitution to a scheme body, masking out any
// binding for a quantified variable.
func (s Subst) ApplyScheme(sch Scheme) Scheme {
	masked := s
	for _, id := range sch.Vars {
		if _, ok := s[id]; !ok {
			continue
		}
		masked = make(Subst, len(s))
		for k, v := range s {
			masked[k] = v
		}
		for _, id := range sch.Vars {
			delete(masked, id)
		}
		break
	}
	return Scheme{Vars: sch.Vars, Body: masked.Apply(sch.Body)}
}

// Compose builds the substitution equivalent to applying s2 first and s1
// second: s1 is applied to every image of s2, then every binding of s1
// whose key s2 does not bind is folded in.
func Compose(s1, s2 Subst) Subst {
	out := make(Subst, len(s1)+len(s2))
	for id, t := range s2 {
		out[id] = s1.Apply(t)
	}
	for id, t := range s1 {
		if _, ok := out[id]; !ok {
			out[id] = t
		}
	}
	return out
}
