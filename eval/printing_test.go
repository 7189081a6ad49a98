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

package eval

import (
	"math"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		f      float64
		expect string
	}{
		{0, "0"},
		{42, "42"},
		{-7, "-7"},
		{1000000, "1000000"},
		{2.5, "2.5"},
		{-0.25, "-0.25"},
		{float64(0.1) + float64(0.2), "0.30000000000000004"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, c := range cases {
		if s := FormatNumber(c.f); s != c.expect {
			t.Fatalf("%v: %s", c.f, s)
		}
	}
}

func TestToString(t *testing.T) {
	// A top-level string renders verbatim:
	if s := ToString(Str("hi there")); s != "hi there" {
		t.Fatalf("string: %s", s)
	}
	if s := ToString(Num(3)); s != "3" {
		t.Fatalf("number: %s", s)
	}
	if s := ToString(True); s != "true" {
		t.Fatalf("bool: %s", s)
	}
	if s := ToString(Null); s != "null" {
		t.Fatalf("null: %s", s)
	}
	if s := ToString(Undefined); s != "undefined" {
		t.Fatalf("undefined: %s", s)
	}

	arr := Arr(NewArray().Append(Str("a")).Append(Num(1)).Append(Arr(NewArray().Append(True))))
	if s := ToString(arr); s != `["a", 1, [true]]` {
		t.Fatalf("array: %s", s)
	}
	if s := ToString(Arr(NewArray())); s != "[]" {
		t.Fatalf("empty array: %s", s)
	}

	dict := NewDict().Set(Str("k"), Str("v")).Set(Num(1), Num(2))
	if s := ToString(DictVal(dict)); s != `["k": "v", 1: 2]` {
		t.Fatalf("dict: %s", s)
	}
	if s := ToString(DictVal(NewDict())); s != "[:]" {
		t.Fatalf("empty dict: %s", s)
	}

	rec := NewRecord(2)
	rec.Set("x", Num(1))
	rec.Set("y", Str("s"))
	if s := ToString(RecVal(rec)); s != `{x: 1, y: "s"}` {
		t.Fatalf("record: %s", s)
	}
	if s := ToString(RecVal(NewRecord(0))); s != "{}" {
		t.Fatalf("empty record: %s", s)
	}

	if s := ToString(FunVal(&Closure{})); s != "<function>" {
		t.Fatalf("function: %s", s)
	}
	if s := ToString(BuiltinVal(&Builtin{Name: "length"})); s != "<builtin length>" {
		t.Fatalf("builtin: %s", s)
	}
}
