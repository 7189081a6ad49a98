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

package rowan_test

import (
	"testing"

	. "github.com/wdamron/rowan"
)

const benchProgram = `
let even = (n) => if (n == 0) true else odd(n - 1)
and odd = (n) => if (n == 0) false else even(n - 1)
let id = (x) => x
let h = (x) => even(id(x))
{even: even, odd: odd, h: h, id: id}
`

const benchRunProgram = `
let fact = (n) => if (n < 2) 1 else n * fact(n - 1)
let nums = range(1, 10)
sum(nums) + fact(6)
`

func BenchmarkParse(b *testing.B) {
	for n := 0; n < b.N; n++ {
		prog, err := Parse(benchProgram)
		if err != nil || prog == nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMutuallyRecursiveLet(b *testing.B) {
	prog, err := Parse(benchProgram)
	if err != nil {
		b.Fatal(err)
	}
	env := NewTypeEnv()
	ti := NewInferencer()

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		final, err := ti.InferProgram(prog, env)
		if err != nil || final == nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRecursiveLet(b *testing.B) {
	prog, err := Parse(`(x) => { let f = (n) => if (n == 0) x else f(n - 1); f(x) }`)
	if err != nil {
		b.Fatal(err)
	}
	expr := prog.Items[0]
	env := NewTypeEnv()
	ti := NewInferencer()

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		ty, err := ti.Infer(expr, env)
		if err != nil || ty == nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRun(b *testing.B) {
	for n := 0; n < b.N; n++ {
		if _, err := Run(benchRunProgram); err != nil {
			b.Fatal(err)
		}
	}
}
