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
	"github.com/benbjohnson/immutable"
	"github.com/hashicorp/go-set/v2"

	"github.com/wdamron/rowan/types"
)

// TypeEnv is a type-environment containing mappings from identifiers to
// declared type-schemes.
//
// A type-environment is persistent: extending an environment returns a new
// environment sharing structure with the original, and the original is never
// modified. Environments may be shared freely, including across inference
// runs.
type TypeEnv struct {
	m *immutable.SortedMap
}

// Create an empty type-environment with no declared identifiers.
func NewEmptyTypeEnv() *TypeEnv {
	return &TypeEnv{m: immutable.NewSortedMap(nil)}
}

// Create a type-environment containing the builtin functions.
func NewTypeEnv() *TypeEnv {
	b := immutable.NewSortedMapBuilder(immutable.NewSortedMap(nil))
	for _, bi := range builtins {
		b.Set(bi.name, bi.scheme)
	}
	return &TypeEnv{m: b.Map()}
}

// Lookup the type-scheme declared for an identifier in the environment.
func (e *TypeEnv) Lookup(name string) (types.Scheme, bool) {
	v, ok := e.m.Get(name)
	if !ok {
		return types.Scheme{}, false
	}
	return v.(types.Scheme), true
}

// Extend the environment with a declared type-scheme for an identifier,
// returning the extended environment. Any previous declaration for the
// identifier is shadowed in the returned environment only.
func (e *TypeEnv) Extend(name string, sch types.Scheme) *TypeEnv {
	return &TypeEnv{m: e.m.Set(name, sch)}
}

// Apply a substitution to every type-scheme declared in the environment,
// returning the rewritten environment.
func (e *TypeEnv) Apply(s types.Subst) *TypeEnv {
	if len(s) == 0 {
		return e
	}
	b := immutable.NewSortedMapBuilder(immutable.NewSortedMap(nil))
	iter := e.m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		b.Set(k, s.ApplyScheme(v.(types.Scheme)))
	}
	return &TypeEnv{m: b.Map()}
}

// Range calls f for each identifier and declared type-scheme in the
// environment, in sorted order by identifier, until f returns false.
func (e *TypeEnv) Range(f func(name string, sch types.Scheme) bool) {
	iter := e.m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), v.(types.Scheme)) {
			return
		}
	}
}

// FreeVars returns the set of variable ids free in any type-scheme declared
// in the environment. Row-variable ids are included in their negative key
// form.
func (e *TypeEnv) FreeVars() *set.Set[int] {
	free := set.New[int](8)
	e.Range(func(_ string, sch types.Scheme) bool {
		for _, id := range types.SchemeFreeVars(sch).Slice() {
			free.Insert(id)
		}
		return true
	})
	return free
}
