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
	"testing"

	"github.com/wdamron/rowan/ast"
	"github.com/wdamron/rowan/types"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, err := Parse(source)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func envLen(env *TypeEnv) int {
	n := 0
	env.Range(func(string, types.Scheme) bool {
		n++
		return true
	})
	return n
}

func checkScheme(t *testing.T, env *TypeEnv, name, expect string) {
	t.Helper()
	sch, ok := env.Lookup(name)
	if !ok {
		t.Fatalf("%s not found in environment", name)
	}
	typeString := types.TypeString(sch.Body)
	if typeString != expect {
		t.Fatalf("type of %s: %s", name, typeString)
	}
	t.Logf("type of %s: %s", name, typeString)
}

func checkInferError(t *testing.T, source, msg, expr string) {
	t.Helper()
	ti := NewInferencer()
	_, err := ti.InferProgram(mustParse(t, source), nil)
	if err == nil {
		t.Fatalf("expected inference error for %s", source)
	}
	terr, ok := err.(*TypeError)
	if !ok {
		t.Fatalf("error: %v", err)
	}
	if terr.Msg != msg {
		t.Fatalf("error: %s", terr.Msg)
	}
	if ti.Error() != err {
		t.Fatalf("expected matching error from the inference context")
	}
	if exprString := ast.ExprString(ti.InvalidExpr()); exprString != expr {
		t.Fatalf("invalid expr: %s", exprString)
	}
	t.Logf("Passed check for inference error: %v", err)
}

func TestLetPolymorphism(t *testing.T) {
	env := NewTypeEnv()
	ti := NewInferencer()

	prog := mustParse(t, `
let id = (x) => x
let n = id(1)
let s = id("one")
`)

	exprString := ast.ExprString(prog.Items[0])
	if exprString != "let id = (x) => x" {
		t.Fatalf("expr: %s", exprString)
	}
	t.Logf("expr: %s", exprString)

	// Infer twice to ensure state is properly reset between calls:

	envCount := envLen(env)

	final, err := ti.InferProgram(prog, env)
	if err != nil {
		t.Fatal(err)
	}

	if envLen(env) != envCount {
		t.Fatalf("expected unmodified type environment after inference")
	}

	final, err = ti.InferProgram(prog, env)
	if err != nil {
		t.Fatal(err)
	}

	checkScheme(t, final, "id", "(a) => a")
	checkScheme(t, final, "n", "number")
	checkScheme(t, final, "s", "string")
}

func TestInferSingleExpression(t *testing.T) {
	ti := NewInferencer()

	prog := mustParse(t, `((x) => x)(41) + 1`)

	exprString := ast.ExprString(prog.Items[0])
	if exprString != "((x) => x)(41) + 1" {
		t.Fatalf("expr: %s", exprString)
	}
	t.Logf("expr: %s", exprString)

	ty, err := ti.Infer(prog.Items[0], nil)
	if err != nil {
		t.Fatal(err)
	}

	typeString := types.TypeString(ty)
	if typeString != "number" {
		t.Fatalf("type: %s", typeString)
	}
	t.Logf("type: %s", typeString)

	ty, err = ti.Infer(mustParse(t, `(x) => x`).Items[0], nil)
	if err != nil {
		t.Fatal(err)
	}

	typeString = types.TypeString(ty)
	if typeString != "(a) => a" {
		t.Fatalf("type: %s", typeString)
	}
	t.Logf("type: %s", typeString)
}

func TestRecordFieldAccess(t *testing.T) {
	env := NewTypeEnv()
	ti := NewInferencer()

	prog := mustParse(t, `
let getX = (r) => r.x
let a = getX({x: 1, y: "one"})
let b = getX({x: true})
`)

	exprString := ast.ExprString(prog.Items[0])
	if exprString != "let getX = (r) => r.x" {
		t.Fatalf("expr: %s", exprString)
	}
	t.Logf("expr: %s", exprString)

	final, err := ti.InferProgram(prog, env)
	if err != nil {
		t.Fatal(err)
	}

	checkScheme(t, final, "getX", "({x: a | r0}) => a")
	checkScheme(t, final, "a", "number")
	checkScheme(t, final, "b", "boolean")
}

func TestDeferredFieldAccess(t *testing.T) {
	env := NewTypeEnv()
	ti := NewInferencer()

	prog := mustParse(t, `
let norm = (v) => v.x * v.x + v.y * v.y
let d = norm({x: 3, y: 4, z: 5})
`)

	exprString := ast.ExprString(prog.Items[0])
	if exprString != "let norm = (v) => (v.x * v.x) + (v.y * v.y)" {
		t.Fatalf("expr: %s", exprString)
	}
	t.Logf("expr: %s", exprString)

	final, err := ti.InferProgram(prog, env)
	if err != nil {
		t.Fatal(err)
	}

	checkScheme(t, final, "norm", "({x: number, y: number | r0}) => number")
	checkScheme(t, final, "d", "number")

	// A call must still provide every accessed field:

	_, err = ti.InferProgram(mustParse(t, `
let norm = (v) => v.x * v.x + v.y * v.y
let d = norm({x: 1})
`), env)
	if err == nil {
		t.Fatalf("expected missing field error")
	}
	terr, ok := err.(*TypeError)
	if !ok || terr.Msg != "Missing field y in {x: number}" {
		t.Fatalf("error: %v", err)
	}
	t.Logf("Passed check for missing field error: %v", err)
}

func TestMutuallyRecursiveLet(t *testing.T) {
	env := NewTypeEnv()
	ti := NewInferencer()

	prog := mustParse(t, `
let even = (n) => if (n == 0) true else odd(n - 1)
and odd = (n) => if (n == 0) false else even(n - 1)
let check = even(10)
`)

	exprString := ast.ExprString(prog.Items[0])
	expect := "let even = (n) => if (n == 0) true else odd(n - 1)" +
		" and odd = (n) => if (n == 0) false else even(n - 1)"
	if exprString != expect {
		t.Fatalf("expr: %s", exprString)
	}
	t.Logf("expr: %s", exprString)

	// Infer twice to ensure state is properly reset between calls:

	envCount := envLen(env)

	final, err := ti.InferProgram(prog, env)
	if err != nil {
		t.Fatal(err)
	}

	if envLen(env) != envCount {
		t.Fatalf("expected unmodified type environment after inference")
	}

	final, err = ti.InferProgram(prog, env)
	if err != nil {
		t.Fatal(err)
	}

	checkScheme(t, final, "even", "(number) => boolean")
	checkScheme(t, final, "odd", "(number) => boolean")
	checkScheme(t, final, "check", "boolean")
}

func TestRecursiveTypeRejected(t *testing.T) {
	checkInferError(t, `let f = (g) => g(g)`,
		"Implicitly recursive types are not supported", "g(g)")
}

func TestSelfReferentialRecord(t *testing.T) {
	env := NewTypeEnv()
	ti := NewInferencer()

	prog := mustParse(t, `let knot = (r) => r == r.self`)

	exprString := ast.ExprString(prog.Items[0])
	if exprString != "let knot = (r) => r == r.self" {
		t.Fatalf("expr: %s", exprString)
	}
	t.Logf("expr: %s", exprString)

	// The occurs check is suppressed for record types, so a variable may
	// resolve to an open record mentioning itself through a field:

	final, err := ti.InferProgram(prog, env)
	if err != nil {
		t.Fatal(err)
	}

	checkScheme(t, final, "knot", "({self: a | r0}) => boolean")
}

func TestAnnotatedBindings(t *testing.T) {
	env := NewTypeEnv()
	ti := NewInferencer()

	prog := mustParse(t, `
let count: number = 41 + 1
let nums: [number] = [1, 2, 3]
let inc: (number) => number = (x) => x + 1
let same: (t) => t = (x) => x
`)

	exprString := ast.ExprString(prog.Items[2])
	if exprString != "let inc: (number) => number = (x) => x + 1" {
		t.Fatalf("expr: %s", exprString)
	}
	t.Logf("expr: %s", exprString)

	final, err := ti.InferProgram(prog, env)
	if err != nil {
		t.Fatal(err)
	}

	checkScheme(t, final, "count", "number")
	checkScheme(t, final, "nums", "[number]")
	checkScheme(t, final, "inc", "(number) => number")
	checkScheme(t, final, "same", "(a) => a")

	// Array element types are invariant under an annotation:

	_, err = ti.InferProgram(mustParse(t, `let names: [string] = [1, 2]`), env)
	if err == nil {
		t.Fatalf("expected annotation mismatch error")
	}
	terr, ok := err.(*TypeError)
	if !ok || terr.Msg != "Failed to unify number with string" {
		t.Fatalf("error: %v", err)
	}
	t.Logf("Passed check for annotation mismatch error: %v", err)
}

func TestBranchJoin(t *testing.T) {
	env := NewTypeEnv()
	ti := NewInferencer()

	prog := mustParse(t, `
let pick = (c) => if (c) {x: 1, y: 2} else {x: 3, z: 4}
let merge = (c) => if (c) {p: {x: 1, y: 2}, q: 1} else {p: {x: 3}, r: 2}
let num = (c) => if (c) 1 else 2
let eff = (c) => if (c) { let x = 1 }
`)

	exprString := ast.ExprString(prog.Items[0])
	if exprString != "let pick = (c) => if (c) {x: 1, y: 2} else {x: 3, z: 4}" {
		t.Fatalf("expr: %s", exprString)
	}
	t.Logf("expr: %s", exprString)

	final, err := ti.InferProgram(prog, env)
	if err != nil {
		t.Fatal(err)
	}

	checkScheme(t, final, "pick", "(boolean) => {x: number}")
	checkScheme(t, final, "merge", "(boolean) => {p: {x: number}}")
	checkScheme(t, final, "num", "(boolean) => number")
	checkScheme(t, final, "eff", "(boolean) => unit")

	// An if without an else yields unit, so its branch must too:

	_, err = ti.InferProgram(mustParse(t, `let bad = (c) => if (c) 1`), env)
	if err == nil {
		t.Fatalf("expected branch type error")
	}
	terr, ok := err.(*TypeError)
	if !ok || terr.Msg != "Failed to unify number with unit" {
		t.Fatalf("error: %v", err)
	}
	t.Logf("Passed check for branch type error: %v", err)
}

func TestMatchInference(t *testing.T) {
	env := NewTypeEnv()
	ti := NewInferencer()

	prog := mustParse(t, `
let sign = (x) => match x { 0 => "zero", n if n > 0 => "plus", _ => "minus" }
let id = (x) => x
let tag = match id { f => f(1) + strlen(f("one")) }
`)

	exprString := ast.ExprString(prog.Items[0])
	if exprString != `let sign = (x) => match x { 0 => "zero", n if n > 0 => "plus", _ => "minus" }` {
		t.Fatalf("expr: %s", exprString)
	}
	t.Logf("expr: %s", exprString)

	final, err := ti.InferProgram(prog, env)
	if err != nil {
		t.Fatal(err)
	}

	checkScheme(t, final, "sign", "(number) => string")

	// An identifier pattern binds the generalized discriminant, so f is
	// used at both number and string below:
	checkScheme(t, final, "tag", "number")

	// Literal patterns constrain the discriminant type:

	_, err = ti.InferProgram(mustParse(t, `let bad = (x) => match x { 0 => 1, "one" => 2 }`), env)
	if err == nil {
		t.Fatalf("expected mixed pattern error")
	}
	terr, ok := err.(*TypeError)
	if !ok || terr.Msg != "Failed to unify string with number" {
		t.Fatalf("error: %v", err)
	}
	t.Logf("Passed check for mixed pattern error: %v", err)
}

func TestIndexInference(t *testing.T) {
	env := NewTypeEnv()
	ti := NewInferencer()

	prog := mustParse(t, `
let nums = [10, 20]
let first = nums[0]
let scores = ["a": 1, "b": 2]
let sa = scores["a"]
let pickFirst = (xs) => xs[0]
let lookup = (d) => d["k"]
`)

	final, err := ti.InferProgram(prog, env)
	if err != nil {
		t.Fatal(err)
	}

	checkScheme(t, final, "nums", "[number]")
	checkScheme(t, final, "first", "number")
	checkScheme(t, final, "scores", "[string: number]")
	checkScheme(t, final, "sa", "number")
	checkScheme(t, final, "pickFirst", "([a]) => a")
	checkScheme(t, final, "lookup", "([string: a]) => a")
}

func TestBuiltinSchemes(t *testing.T) {
	env := NewTypeEnv()

	checkScheme(t, env, "length", "([a]) => number")
	checkScheme(t, env, "push", "([a], a) => [a]")
	checkScheme(t, env, "zip", "([a], [b]) => [[c]]")
	checkScheme(t, env, "dictEntries", "([a: b]) => [[c]]")
	checkScheme(t, env, "substring", "(string, number, number) => string")
	checkScheme(t, env, "toString", "(a) => string")

	ti := NewInferencer()
	prog := mustParse(t, `
let xs = push([1], 2)
let pairs = zip([1, 2], ["a", "b"])
let d = dictSet(["a": 1], "b", 2)
let ks = dictKeys(d)
let n = toNumber("42")
`)

	final, err := ti.InferProgram(prog, env)
	if err != nil {
		t.Fatal(err)
	}

	checkScheme(t, final, "xs", "[number]")
	checkScheme(t, final, "pairs", "[[a]]")
	checkScheme(t, final, "d", "[string: number]")
	checkScheme(t, final, "ks", "[string]")
	checkScheme(t, final, "n", "number")
}

func TestBlockScoping(t *testing.T) {
	env := NewTypeEnv()
	ti := NewInferencer()

	prog := mustParse(t, `
let result = { let a = 1; let b = a + 1; a + b }
let x = 1
let shadow = (x) => x == "one"
`)

	exprString := ast.ExprString(prog.Items[0])
	if exprString != "let result = { let a = 1; let b = a + 1; a + b }" {
		t.Fatalf("expr: %s", exprString)
	}
	t.Logf("expr: %s", exprString)

	final, err := ti.InferProgram(prog, env)
	if err != nil {
		t.Fatal(err)
	}

	checkScheme(t, final, "result", "number")
	checkScheme(t, final, "x", "number")
	checkScheme(t, final, "shadow", "(string) => boolean")

	// Block bindings must not leak into the outer environment:

	if _, ok := final.Lookup("a"); ok {
		t.Fatalf("expected block binding to stay local")
	}
}

func TestInferenceErrors(t *testing.T) {
	checkInferError(t, `missing`,
		"Variable missing not found", "missing")
	checkInferError(t, `{x: 1}.y`,
		"Missing field y in {x: number}", "{x: 1}.y")
	checkInferError(t, `(1)("one")`,
		"Failed to unify number with (string) => a", `1("one")`)
	checkInferError(t, `if (1) 2 else 3`,
		"Failed to unify number with boolean", "1")
	checkInferError(t, `-true`,
		"Failed to unify boolean with number", "true")
	checkInferError(t, "let f = (x, y) => x\nf(1)",
		"Function expects 2 arguments, found 1", "f(1)")
	checkInferError(t, `[1, "one"]`,
		"Failed to unify string with number", `"one"`)
	checkInferError(t, `1 + "one"`,
		"Failed to unify string with number", `"one"`)

	ti := NewInferencer()
	if _, err := ti.InferProgram(nil, nil); err == nil || err.Error() != "Empty program" {
		t.Fatalf("error: %v", err)
	}
	if _, err := ti.Infer(nil, nil); err == nil || err.Error() != "Empty expression" {
		t.Fatalf("error: %v", err)
	}
}
