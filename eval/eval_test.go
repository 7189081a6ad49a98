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
	"testing"

	"github.com/wdamron/rowan/ast"
	"github.com/wdamron/rowan/lexer"
	"github.com/wdamron/rowan/parser"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(source)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func evalSource(t *testing.T, source string) Value {
	t.Helper()
	v, err := EvalProgram(mustParse(t, source), NewEnv(nil))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func checkEval(t *testing.T, source, expect string) {
	t.Helper()
	rendered := ToString(evalSource(t, source))
	if rendered != expect {
		t.Fatalf("%s: %s", source, rendered)
	}
	t.Logf("%s: %s", source, rendered)
}

func checkEvalError(t *testing.T, source, msg string) {
	t.Helper()
	_, err := EvalProgram(mustParse(t, source), NewEnv(nil))
	if err == nil {
		t.Fatalf("expected runtime error for %s", source)
	}
	re, ok := err.(*RuntimeError)
	if !ok || re.Msg != msg {
		t.Fatalf("error: %v", err)
	}
	t.Logf("Passed check for runtime error: %v", err)
}

func TestArithmetic(t *testing.T) {
	checkEval(t, `1 + 2 * 3`, "7")
	checkEval(t, `10 / 4`, "2.5")
	checkEval(t, `7 % 3`, "1")
	checkEval(t, `-(2 + 3)`, "-5")
	checkEval(t, `1 < 2`, "true")
	checkEval(t, `2 <= 1`, "false")
	checkEval(t, `3 > 2`, "true")
	checkEval(t, `2 >= 3`, "false")
	checkEval(t, `1 == 1`, "true")
	checkEval(t, `1 != 2`, "true")
}

func TestStringConcatenation(t *testing.T) {
	checkEval(t, `"a" + "b"`, "ab")
	checkEval(t, `"n = " + 42`, "n = 42")
	checkEval(t, `1 + "!"`, "1!")
	checkEval(t, `"" + true`, "true")
	checkEval(t, `"x: " + [1, 2]`, "x: [1, 2]")
}

func TestTruthiness(t *testing.T) {
	checkEval(t, `!0`, "true")
	checkEval(t, `!""`, "true")
	checkEval(t, `!null`, "true")
	checkEval(t, `!undefined`, "true")
	checkEval(t, `!1`, "false")
	checkEval(t, `!"a"`, "false")
	checkEval(t, `![]`, "false")
	checkEval(t, `!{}`, "false")

	// Logical operators coerce their result to a boolean, and skip the
	// right side when the left side decides:
	checkEval(t, `1 && 2`, "true")
	checkEval(t, `0 || ""`, "false")
	checkEval(t, `false && nope`, "false")
	checkEval(t, `true || nope`, "true")
}

func TestLetGroups(t *testing.T) {
	checkEval(t, "let a = 1, b = a + 1\nb", "2")
	checkEval(t, `
let fact = (n) => if (n < 2) 1 else n * fact(n - 1)
fact(5)
`, "120")
	checkEval(t, `
let even = (n) => if (n == 0) true else odd(n - 1)
and odd = (n) => if (n == 0) false else even(n - 1)
even(9)
`, "false")

	// Function bodies may refer forward within a group:
	checkEval(t, "let f = () => g(), g = () => 5\nf()", "5")

	// Data reads may not:
	checkEvalError(t, `let a = a + 1`, "Referenced before initialization: a")
	checkEvalError(t, `let a = b + 1, b = 2`, "Referenced before initialization: b")
}

func TestClosures(t *testing.T) {
	checkEval(t, `
let add = (a) => (b) => a + b
let add2 = add(2)
add2(3)
`, "5")

	// A closure reads from its defining environment, not the call site:
	checkEval(t, `
let x = 1
let get = () => x
let shadow = (x) => get()
shadow(99)
`, "1")
}

func TestArrayIndexing(t *testing.T) {
	checkEval(t, `[1, 2, 3][1]`, "2")
	checkEval(t, `[[1], [2]][1][0]`, "2")
	checkEval(t, `["a", "b"][0]`, "a")

	checkEvalError(t, `[1][5]`, "Array index out of range: 5")
	checkEvalError(t, `[1][0.5]`, "Array index must be an integer, found 0.5")
	checkEvalError(t, `[1]["x"]`, "Array index must be a number, found string")
	checkEvalError(t, `5[0]`, "Cannot index number")
}

func TestDictIndexing(t *testing.T) {
	checkEval(t, `["a": 1, "b": 2]["b"]`, "2")
	checkEval(t, `["a": 1]["z"]`, "undefined")
	checkEval(t, `[1: "one"][1]`, "one")

	// Keys compare structurally, and duplicate keys collapse to the last
	// written value:
	checkEval(t, `[[1, 2]: "pair"][[1, 2]]`, "pair")
	checkEval(t, `["k": 1, "k": 2]["k"]`, "2")
}

func TestRecordFields(t *testing.T) {
	checkEval(t, `{x: 1, y: 2}.y`, "2")
	checkEval(t, `{a: {b: 3}}.a.b`, "3")

	checkEvalError(t, `{x: 1}.y`, "Missing field y")
	checkEvalError(t, `(5).x`, "Cannot access field x on number")
}

func TestMatchEvaluation(t *testing.T) {
	checkEval(t, `match 2 { 1 => "one", 2 => "two", _ => "many" }`, "two")
	checkEval(t, `match 5 { n if n % 2 == 0 => "even", n => "odd" }`, "odd")
	checkEval(t, `match "hi" { "hi" => 1, _ => 0 }`, "1")
	checkEval(t, `match null { null => "nil", _ => "other" }`, "nil")

	checkEvalError(t, `match 3 { 1 => "one" }`, "No case matched")
}

func TestIfEvaluation(t *testing.T) {
	checkEval(t, `if (true) 1 else 2`, "1")
	checkEval(t, `if (false) 1 else 2`, "2")
	checkEval(t, `if (false) 1`, "null")
	checkEval(t, `if ("s") 1 else 2`, "1")
}

func TestBlockScopes(t *testing.T) {
	checkEval(t, `{ let a = 2; let b = 3; a * b }`, "6")
	checkEval(t, "let a = 1\n{ let a = 2; a } + a", "3")
}

func TestRuntimeErrors(t *testing.T) {
	checkEvalError(t, `1 / 0`, "Division by zero")
	checkEvalError(t, `5 % 0`, "Modulo by zero")
	checkEvalError(t, `1 - "a"`, "Operator - expects numbers, found number and string")
	checkEvalError(t, `-"a"`, "Operator - expects a number, found string")
	checkEvalError(t, `nope`, "Variable nope is not defined")
	checkEvalError(t, `5(1)`, "Cannot call number")
	checkEvalError(t, `((x) => x)(1, 2)`, "Function expects 1 arguments, found 2")
}

func TestRuntimeErrorFormat(t *testing.T) {
	re := &RuntimeError{Msg: "boom", Pos: lexer.Span{StartLine: 2, StartCol: 3, EndLine: 2, EndCol: 4}}
	if re.Error() != "boom at 2:3" {
		t.Fatalf("error: %s", re.Error())
	}
	re = &RuntimeError{Msg: "boom"}
	if re.Error() != "boom" {
		t.Fatalf("error: %s", re.Error())
	}

	_, err := EvalProgram(mustParse(t, "let x = 1\nx.y"), NewEnv(nil))
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	if re, ok := err.(*RuntimeError); !ok || re.Pos.StartLine != 2 {
		t.Fatalf("error: %v", err)
	}
	t.Logf("Passed check for positioned runtime error: %v", err)
}
