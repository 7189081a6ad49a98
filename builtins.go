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
	"math"
	"strconv"

	"github.com/wdamron/rowan/eval"
	"github.com/wdamron/rowan/types"
)

// builtin is one entry of the registry: a declared type-scheme for the
// inferencer and a native implementation for the evaluator. Implementations
// receive exactly arity evaluated arguments and check their shapes.
type builtin struct {
	name   string
	scheme types.Scheme
	arity  int
	impl   func(args []eval.Value) (eval.Value, error)
}

// Quantified variable ids local to each scheme; instantiation replaces them
// with fresh variables per use, so the shared pointers are never rewritten.
var (
	va = types.NewVar(0)
	vb = types.NewVar(1)
	vc = types.NewVar(2)
)

func mono(body types.Type) types.Scheme { return types.MonoScheme(body) }
func poly1(body types.Type) types.Scheme {
	return types.Scheme{Vars: []int{0}, Body: body}
}
func poly2(body types.Type) types.Scheme {
	return types.Scheme{Vars: []int{0, 1}, Body: body}
}
func poly3(body types.Type) types.Scheme {
	return types.Scheme{Vars: []int{0, 1, 2}, Body: body}
}

// fn builds an arrow type, return type first.
func fn(ret types.Type, params ...types.Type) types.Type {
	return &types.Arrow{Params: params, Return: ret}
}

func arrOf(elem types.Type) types.Type { return &types.Array{Elem: elem} }

func dictOf(key, value types.Type) types.Type { return &types.Dict{Key: key, Value: value} }

var builtins = []builtin{
	{"length", poly1(fn(types.Number, arrOf(va))), 1, biLength},
	{"head", poly1(fn(va, arrOf(va))), 1, biHead},
	{"tail", poly1(fn(arrOf(va), arrOf(va))), 1, biTail},
	{"push", poly1(fn(arrOf(va), arrOf(va), va)), 2, biPush},
	{"empty", poly1(fn(types.Bool, arrOf(va))), 1, biEmpty},
	{"range", mono(fn(arrOf(types.Number), types.Number, types.Number)), 2, biRange},
	{"sum", mono(fn(types.Number, arrOf(types.Number))), 1, biSum},
	{"product", mono(fn(types.Number, arrOf(types.Number))), 1, biProduct},
	{"flatten", poly1(fn(arrOf(va), arrOf(arrOf(va)))), 1, biFlatten},
	{"unique", poly1(fn(arrOf(va), arrOf(va))), 1, biUnique},
	{"chunk", poly1(fn(arrOf(arrOf(va)), arrOf(va), types.Number)), 2, biChunk},
	{"zip", poly3(fn(arrOf(arrOf(vc)), arrOf(va), arrOf(vb))), 2, biZip},
	{"concat", poly1(fn(arrOf(va), arrOf(va), arrOf(va))), 2, biConcat},
	{"substring", mono(fn(types.String, types.String, types.Number, types.Number)), 3, biSubstring},
	{"strlen", mono(fn(types.Number, types.String)), 1, biStrlen},
	{"sqrt", mono(fn(types.Number, types.Number)), 1, biSqrt},
	{"abs", mono(fn(types.Number, types.Number)), 1, biAbs},
	{"floor", mono(fn(types.Number, types.Number)), 1, biFloor},
	{"ceil", mono(fn(types.Number, types.Number)), 1, biCeil},
	{"toString", poly1(fn(types.String, va)), 1, biToString},
	{"toNumber", mono(fn(types.Number, types.String)), 1, biToNumber},
	{"dictKeys", poly2(fn(arrOf(va), dictOf(va, vb))), 1, biDictKeys},
	{"dictValues", poly2(fn(arrOf(vb), dictOf(va, vb))), 1, biDictValues},
	{"dictEntries", poly3(fn(arrOf(arrOf(vc)), dictOf(va, vb))), 1, biDictEntries},
	{"dictFromEntries", poly3(fn(dictOf(vb, vc), arrOf(arrOf(va)))), 1, biDictFromEntries},
	{"dictMerge", poly2(fn(dictOf(va, vb), dictOf(va, vb), dictOf(va, vb))), 2, biDictMerge},
	{"dictHas", poly2(fn(types.Bool, dictOf(va, vb), va)), 2, biDictHas},
	{"dictSet", poly2(fn(dictOf(va, vb), dictOf(va, vb), va, vb)), 3, biDictSet},
	{"dictDelete", poly2(fn(dictOf(va, vb), dictOf(va, vb), va)), 2, biDictDelete},
	{"dictSize", poly2(fn(types.Number, dictOf(va, vb))), 1, biDictSize},
}

// Create a root runtime environment containing the builtin functions.
func NewRuntimeEnv() *eval.Env {
	env := eval.NewEnv(nil)
	for i := range builtins {
		bi := &builtins[i]
		env.Define(bi.name, eval.BuiltinVal(&eval.Builtin{Name: bi.name, Arity: bi.arity, Impl: bi.impl}))
	}
	return env
}

// runtimeErr builds a positionless runtime error; the evaluator fills in
// the call site.
func runtimeErr(msg string) error { return &eval.RuntimeError{Msg: msg} }

func wantArray(name string, v eval.Value) (*eval.ArrayObject, error) {
	if v.Tag != eval.TagArray {
		return nil, runtimeErr(name + " expects an array, found " + v.Tag.String())
	}
	return v.Data.(*eval.ArrayObject), nil
}

func wantDict(name string, v eval.Value) (*eval.DictObject, error) {
	if v.Tag != eval.TagDict {
		return nil, runtimeErr(name + " expects a dictionary, found " + v.Tag.String())
	}
	return v.Data.(*eval.DictObject), nil
}

func wantNumber(name string, v eval.Value) (float64, error) {
	if v.Tag != eval.TagNumber {
		return 0, runtimeErr(name + " expects a number, found " + v.Tag.String())
	}
	return v.Data.(float64), nil
}

func wantString(name string, v eval.Value) (string, error) {
	if v.Tag != eval.TagString {
		return "", runtimeErr(name + " expects a string, found " + v.Tag.String())
	}
	return v.Data.(string), nil
}

func biLength(args []eval.Value) (eval.Value, error) {
	arr, err := wantArray("length", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	return eval.Num(float64(arr.Len())), nil
}

func biHead(args []eval.Value) (eval.Value, error) {
	arr, err := wantArray("head", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	if arr.Len() == 0 {
		return eval.Value{}, runtimeErr("head of an empty array")
	}
	return arr.Get(0), nil
}

func biTail(args []eval.Value) (eval.Value, error) {
	arr, err := wantArray("tail", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	if arr.Len() == 0 {
		return args[0], nil
	}
	return eval.Arr(arr.Slice(1, arr.Len())), nil
}

func biPush(args []eval.Value) (eval.Value, error) {
	arr, err := wantArray("push", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	return eval.Arr(arr.Append(args[1])), nil
}

func biEmpty(args []eval.Value) (eval.Value, error) {
	arr, err := wantArray("empty", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	return eval.Bool(arr.Len() == 0), nil
}

func biRange(args []eval.Value) (eval.Value, error) {
	lo, err := wantNumber("range", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	hi, err := wantNumber("range", args[1])
	if err != nil {
		return eval.Value{}, err
	}
	b := eval.NewArrayBuilder()
	for i := lo; i < hi; i++ {
		b.Append(eval.Num(i))
	}
	return eval.Arr(b.Build()), nil
}

func biSum(args []eval.Value) (eval.Value, error) {
	arr, err := wantArray("sum", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	sum := 0.0
	arr.Range(func(_ int, v eval.Value) bool {
		if v.Tag != eval.TagNumber {
			err = runtimeErr("sum expects an array of numbers, found " + v.Tag.String())
			return false
		}
		sum += v.Data.(float64)
		return true
	})
	if err != nil {
		return eval.Value{}, err
	}
	return eval.Num(sum), nil
}

func biProduct(args []eval.Value) (eval.Value, error) {
	arr, err := wantArray("product", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	product := 1.0
	arr.Range(func(_ int, v eval.Value) bool {
		if v.Tag != eval.TagNumber {
			err = runtimeErr("product expects an array of numbers, found " + v.Tag.String())
			return false
		}
		product *= v.Data.(float64)
		return true
	})
	if err != nil {
		return eval.Value{}, err
	}
	return eval.Num(product), nil
}

func biFlatten(args []eval.Value) (eval.Value, error) {
	arr, err := wantArray("flatten", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	b := eval.NewArrayBuilder()
	arr.Range(func(_ int, v eval.Value) bool {
		if v.Tag != eval.TagArray {
			err = runtimeErr("flatten expects an array of arrays, found " + v.Tag.String())
			return false
		}
		v.Data.(*eval.ArrayObject).Range(func(_ int, elem eval.Value) bool {
			b.Append(elem)
			return true
		})
		return true
	})
	if err != nil {
		return eval.Value{}, err
	}
	return eval.Arr(b.Build()), nil
}

func biUnique(args []eval.Value) (eval.Value, error) {
	arr, err := wantArray("unique", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	b := eval.NewArrayBuilder()
	var kept []eval.Value
	arr.Range(func(_ int, v eval.Value) bool {
		for i := range kept {
			if eval.Equal(kept[i], v) {
				return true
			}
		}
		kept = append(kept, v)
		b.Append(v)
		return true
	})
	return eval.Arr(b.Build()), nil
}

func biChunk(args []eval.Value) (eval.Value, error) {
	arr, err := wantArray("chunk", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	n, err := wantNumber("chunk", args[1])
	if err != nil {
		return eval.Value{}, err
	}
	size := int(n)
	if float64(size) != n {
		return eval.Value{}, runtimeErr("chunk expects an integer size, found " + eval.FormatNumber(n))
	}
	if size < 1 {
		return eval.Value{}, runtimeErr("chunk size must be at least 1")
	}
	outer := eval.NewArrayBuilder()
	for start := 0; start < arr.Len(); start += size {
		end := start + size
		if end > arr.Len() {
			end = arr.Len()
		}
		outer.Append(eval.Arr(arr.Slice(start, end)))
	}
	return eval.Arr(outer.Build()), nil
}

func biZip(args []eval.Value) (eval.Value, error) {
	x, err := wantArray("zip", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	y, err := wantArray("zip", args[1])
	if err != nil {
		return eval.Value{}, err
	}
	n := x.Len()
	if y.Len() < n {
		n = y.Len()
	}
	outer := eval.NewArrayBuilder()
	for i := 0; i < n; i++ {
		pair := eval.NewArrayBuilder()
		pair.Append(x.Get(i))
		pair.Append(y.Get(i))
		outer.Append(eval.Arr(pair.Build()))
	}
	return eval.Arr(outer.Build()), nil
}

func biConcat(args []eval.Value) (eval.Value, error) {
	x, err := wantArray("concat", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	y, err := wantArray("concat", args[1])
	if err != nil {
		return eval.Value{}, err
	}
	b := eval.NewArrayBuilder()
	x.Range(func(_ int, v eval.Value) bool {
		b.Append(v)
		return true
	})
	y.Range(func(_ int, v eval.Value) bool {
		b.Append(v)
		return true
	})
	return eval.Arr(b.Build()), nil
}

func biSubstring(args []eval.Value) (eval.Value, error) {
	s, err := wantString("substring", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	start, err := wantNumber("substring", args[1])
	if err != nil {
		return eval.Value{}, err
	}
	end, err := wantNumber("substring", args[2])
	if err != nil {
		return eval.Value{}, err
	}
	i, j := int(start), int(end)
	if i < 0 {
		i = 0
	}
	if j < 0 {
		j = 0
	}
	if j > len(s) {
		j = len(s)
	}
	if i > j {
		return eval.Str(""), nil
	}
	return eval.Str(s[i:j]), nil
}

func biStrlen(args []eval.Value) (eval.Value, error) {
	s, err := wantString("strlen", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	return eval.Num(float64(len(s))), nil
}

func biSqrt(args []eval.Value) (eval.Value, error) {
	f, err := wantNumber("sqrt", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	if f < 0 {
		return eval.Value{}, runtimeErr("sqrt of a negative number")
	}
	return eval.Num(math.Sqrt(f)), nil
}

func biAbs(args []eval.Value) (eval.Value, error) {
	f, err := wantNumber("abs", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	return eval.Num(math.Abs(f)), nil
}

func biFloor(args []eval.Value) (eval.Value, error) {
	f, err := wantNumber("floor", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	return eval.Num(math.Floor(f)), nil
}

func biCeil(args []eval.Value) (eval.Value, error) {
	f, err := wantNumber("ceil", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	return eval.Num(math.Ceil(f)), nil
}

func biToString(args []eval.Value) (eval.Value, error) {
	return eval.Str(eval.ToString(args[0])), nil
}

func biToNumber(args []eval.Value) (eval.Value, error) {
	s, err := wantString("toNumber", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return eval.Value{}, runtimeErr("toNumber cannot parse " + strconv.Quote(s))
	}
	return eval.Num(f), nil
}

func biDictKeys(args []eval.Value) (eval.Value, error) {
	d, err := wantDict("dictKeys", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	b := eval.NewArrayBuilder()
	d.Range(func(key, _ eval.Value) bool {
		b.Append(key)
		return true
	})
	return eval.Arr(b.Build()), nil
}

func biDictValues(args []eval.Value) (eval.Value, error) {
	d, err := wantDict("dictValues", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	b := eval.NewArrayBuilder()
	d.Range(func(_, value eval.Value) bool {
		b.Append(value)
		return true
	})
	return eval.Arr(b.Build()), nil
}

func biDictEntries(args []eval.Value) (eval.Value, error) {
	d, err := wantDict("dictEntries", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	outer := eval.NewArrayBuilder()
	d.Range(func(key, value eval.Value) bool {
		pair := eval.NewArrayBuilder()
		pair.Append(key)
		pair.Append(value)
		outer.Append(eval.Arr(pair.Build()))
		return true
	})
	return eval.Arr(outer.Build()), nil
}

func biDictFromEntries(args []eval.Value) (eval.Value, error) {
	arr, err := wantArray("dictFromEntries", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	b := eval.NewDictBuilder()
	arr.Range(func(_ int, v eval.Value) bool {
		if v.Tag != eval.TagArray {
			err = runtimeErr("dictFromEntries expects an array of [key, value] pairs, found " + v.Tag.String())
			return false
		}
		pair := v.Data.(*eval.ArrayObject)
		if pair.Len() != 2 {
			err = runtimeErr("dictFromEntries expects two-element [key, value] pairs")
			return false
		}
		b.Set(pair.Get(0), pair.Get(1))
		return true
	})
	if err != nil {
		return eval.Value{}, err
	}
	return eval.DictVal(b.Build()), nil
}

func biDictMerge(args []eval.Value) (eval.Value, error) {
	x, err := wantDict("dictMerge", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	y, err := wantDict("dictMerge", args[1])
	if err != nil {
		return eval.Value{}, err
	}
	b := eval.NewDictBuilder()
	x.Range(func(key, value eval.Value) bool {
		b.Set(key, value)
		return true
	})
	y.Range(func(key, value eval.Value) bool {
		b.Set(key, value)
		return true
	})
	return eval.DictVal(b.Build()), nil
}

func biDictHas(args []eval.Value) (eval.Value, error) {
	d, err := wantDict("dictHas", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	return eval.Bool(d.Has(args[1])), nil
}

func biDictSet(args []eval.Value) (eval.Value, error) {
	d, err := wantDict("dictSet", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	return eval.DictVal(d.Set(args[1], args[2])), nil
}

func biDictDelete(args []eval.Value) (eval.Value, error) {
	d, err := wantDict("dictDelete", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	return eval.DictVal(d.Delete(args[1])), nil
}

func biDictSize(args []eval.Value) (eval.Value, error) {
	d, err := wantDict("dictSize", args[0])
	if err != nil {
		return eval.Value{}, err
	}
	return eval.Num(float64(d.Len())), nil
}
