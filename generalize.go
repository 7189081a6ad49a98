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
	"sort"

	"github.com/wdamron/rowan/types"
)

// Generalize a type into a scheme, quantifying the type-variables free in t
// but not free in any scheme of env. Row-variables are never quantified;
// open rows stay open within the scheme body.
func generalize(env *TypeEnv, t types.Type) types.Scheme {
	free := types.FreeVars(t)
	if free.Size() == 0 {
		return types.MonoScheme(t)
	}
	envFree := env.FreeVars()
	var quantified []int
	for _, id := range free.Slice() {
		if id < 0 || envFree.Contains(id) {
			continue
		}
		quantified = append(quantified, id)
	}
	if len(quantified) == 0 {
		return types.MonoScheme(t)
	}
	sort.Ints(quantified)
	return types.Scheme{Vars: quantified, Body: t}
}
