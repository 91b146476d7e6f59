package bop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHost records every print and never handles a custom call, mirroring
// the teacher's fake hosts built for driving a VM in isolation.
type testHost struct {
	BaseHost
	prints []string
}

func (h *testHost) OnPrint(message string) { h.prints = append(h.prints, message) }

func (h *testHost) lastPrint() string {
	if len(h.prints) == 0 {
		return ""
	}
	return h.prints[len(h.prints)-1]
}

func testLimits() Limits {
	return Limits{MaxSteps: 100_000, MaxMemory: 10 * 1024 * 1024}
}

// say runs code against a fresh testHost under generous limits and returns
// the last print.
func say(t *testing.T, code string) string {
	t.Helper()
	h := &testHost{}
	err := Run(code, h, testLimits())
	require.NoError(t, err)
	return h.lastPrint()
}

// runErr runs code, requires a failure, and returns its message.
func runErr(t *testing.T, code string) string {
	t.Helper()
	h := &testHost{}
	err := Run(code, h, testLimits())
	require.Error(t, err)
	return err.Error()
}

func TestArithmetic(t *testing.T) {
	assert.Equal(t, "3", say(t, "print(1 + 2)"))
	assert.Equal(t, "7", say(t, "print(10 - 3)"))
	assert.Equal(t, "20", say(t, "print(4 * 5)"))
	assert.Equal(t, "3.5", say(t, "print(7 / 2)"))
	assert.Equal(t, "1", say(t, "print(10 % 3)"))
	assert.Equal(t, "14", say(t, "print(2 + 3 * 4)"))
	assert.Equal(t, "20", say(t, "print((2 + 3) * 4)"))
	assert.Equal(t, "-5", say(t, "print(-5)"))
	assert.Equal(t, "false", say(t, "print(!true)"))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "hello world", say(t, `print("hello" + " " + "world")`))
	assert.Equal(t, "ababab", say(t, `print("ab" * 3)`))
	assert.Equal(t, "hi bop!", say(t, "let name = \"bop\"\nprint(\"hi {name}!\")"))
	assert.Equal(t, "val=42", say(t, `print("val=" + 42)`))
}

func TestComparisonsAndLogic(t *testing.T) {
	assert.Equal(t, "true", say(t, "print(1 == 1)"))
	assert.Equal(t, "false", say(t, "print(1 == 2)"))
	assert.Equal(t, "true", say(t, "print(3 < 5)"))
	assert.Equal(t, "false", say(t, "print(5 >= 6)"))
	assert.Equal(t, "false", say(t, "print(true && false)"))
	assert.Equal(t, "true", say(t, "print(true || false)"))
}

func TestShortCircuitNeverEvaluatesRHS(t *testing.T) {
	assert.Equal(t, "false", say(t, "print(false && x)"))
	assert.Equal(t, "true", say(t, "print(true || x)"))
}

func TestVariablesAndAssignment(t *testing.T) {
	assert.Equal(t, "10", say(t, "let x = 10\nprint(x)"))
	assert.Equal(t, "5", say(t, "let x = 1\nx = 5\nprint(x)"))
	assert.Equal(t, "15", say(t, "let x = 10\nx += 5\nprint(x)"))
	assert.Equal(t, "2.5", say(t, "let x = 10\nx /= 4\nprint(x)"))
}

func TestUndefinedVariable(t *testing.T) {
	assert.Contains(t, runErr(t, "print(nope)"), "not found")
}

func TestAssignUndeclared(t *testing.T) {
	assert.Contains(t, runErr(t, "x = 5"), "doesn't exist")
}

func TestIfElse(t *testing.T) {
	assert.Equal(t, "yes", say(t, `if true { print("yes") } else { print("no") }`))
	assert.Equal(t, "no", say(t, `if false { print("yes") } else { print("no") }`))
	assert.Equal(t, "two", say(t, "let x = 2\nif x == 1 { print(\"one\") } else if x == 2 { print(\"two\") } else { print(\"other\") }"))
	assert.Equal(t, "1", say(t, "let x = if true { 1 } else { 2 }\nprint(x)"))
}

func TestIfBlockScope(t *testing.T) {
	assert.Contains(t, runErr(t, "if true { let inner = 1 }\nprint(inner)"), "not found")
}

func TestWhileLoop(t *testing.T) {
	assert.Equal(t, "5", say(t, "let i = 0\nwhile i < 5 { i += 1 }\nprint(i)"))
	assert.Equal(t, "3", say(t, "let i = 0\nwhile true { i += 1\nif i == 3 { break } }\nprint(i)"))
	assert.Equal(t, "25", say(t, `let sum = 0
let i = 0
while i < 10 {
    i += 1
    if i % 2 == 0 { continue }
    sum += i
}
print(sum)`))
}

func TestForLoops(t *testing.T) {
	assert.Equal(t, "60", say(t, "let sum = 0\nfor x in [10, 20, 30] { sum += x }\nprint(sum)"))
	assert.Equal(t, "10", say(t, "let sum = 0\nfor i in range(5) { sum += i }\nprint(sum)"))
	assert.Equal(t, "a-b-c-", say(t, `let out = ""
for ch in "abc" { out += ch + "-" }
print(out)`))
	assert.Equal(t, "2", say(t, "let last = 0\nfor i in range(100) { if i == 3 { break }\nlast = i }\nprint(last)"))
}

func TestForLoopVarScoped(t *testing.T) {
	assert.Contains(t, runErr(t, "for item in [1, 2] { let x = item }\nprint(item)"), "not found")
}

func TestForLoopSnapshotsAtEntry(t *testing.T) {
	// mutations to the collection during iteration must not affect it.
	assert.Equal(t, "3", say(t, `let a = [1, 2, 3]
let count = 0
for x in a {
    count += 1
    a.push(99)
}
print(count)`))
}

func TestRepeat(t *testing.T) {
	assert.Equal(t, "4", say(t, "let n = 0\nrepeat 4 { n += 1 }\nprint(n)"))
	assert.Equal(t, "99", say(t, "let n = 99\nrepeat 0 { n = 0 }\nprint(n)"))
}

func TestFunctions(t *testing.T) {
	assert.Equal(t, "10", say(t, "fn double(x) { return x * 2 }\nprint(double(5))"))
	assert.Equal(t, "none", say(t, "fn noop() { let x = 1 }\nprint(type(noop()))"))
	assert.Equal(t, "10", say(t, "fn add(a, b) { return a + b }\nprint(add(3, 7))"))
	assert.Equal(t, "55", say(t, `fn fib(n) {
    if n <= 1 { return n }
    return fib(n - 1) + fib(n - 2)
}
print(fib(10))`))
}

func TestFunctionScopeIsolation(t *testing.T) {
	assert.Contains(t, runErr(t, `let secret = 42
fn peek() { return secret }
peek()`), "not found")
}

func TestFunctionWrongArgCount(t *testing.T) {
	assert.Contains(t, runErr(t, "fn f(a, b) { return a }\nf(1)"), "expects 2")
}

func TestRecursionDepthCap(t *testing.T) {
	msg := runErr(t, "fn inf(n) { return inf(n + 1) }\nprint(inf(0))")
	assert.Contains(t, msg, "Too many nested function calls")
}

func TestArrays(t *testing.T) {
	assert.Equal(t, "20", say(t, "let a = [10, 20, 30]\nprint(a[1])"))
	assert.Equal(t, "30", say(t, "let a = [10, 20, 30]\nprint(a[-1])"))
	assert.Equal(t, "99", say(t, "let a = [1, 2, 3]\na[1] = 99\nprint(a[1])"))
	assert.Equal(t, "3", say(t, "let a = [1, 2]\na.push(3)\nprint(a.len())"))
	assert.Equal(t, "3", say(t, "let a = [1, 2, 3]\nlet last = a.pop()\nprint(last)"))
	assert.Equal(t, "true", say(t, "print([1, 2, 3].has(2))"))
	assert.Equal(t, "1", say(t, "print([10, 20, 30].index_of(20))"))
	assert.Equal(t, "[2, 3, 4]", say(t, "print([1, 2, 3, 4, 5].slice(1, 4))"))
	assert.Equal(t, "1-2-3", say(t, `print([1, 2, 3].join("-"))`))
	assert.Equal(t, "[1, 2, 3]", say(t, "let a = [3, 1, 2]\na.sort()\nprint(a)"))
	assert.Equal(t, "[3, 2, 1]", say(t, "let a = [1, 2, 3]\na.reverse()\nprint(a)"))
	assert.Equal(t, "[1, 2, 3]", say(t, "let a = [1, 3]\na.insert(1, 2)\nprint(a)"))
	assert.Equal(t, "[1, 2, 3, 4]", say(t, "print([1, 2] + [3, 4])"))
}

func TestArrayOutOfBounds(t *testing.T) {
	assert.Contains(t, runErr(t, "let a = [1]\nprint(a[5])"), "out of bounds")
}

func TestMutatingMethodOnTemporaryDiscardsMutation(t *testing.T) {
	// push() always returns None; called on a literal temporary, the
	// mutated array has nowhere to be written back to, so the result is
	// unaffected by whether the receiver happened to be an identifier.
	assert.Equal(t, "none", say(t, "print(type([1, 2, 3].push(4)))"))
}

func TestMutatingMethodWritesBackOnIdentifier(t *testing.T) {
	assert.Equal(t, "4", say(t, "let a = [1, 2, 3]\na.push(4)\nprint(a.len())"))
}

func TestStringMethods(t *testing.T) {
	assert.Equal(t, "5", say(t, `print("hello".len())`))
	assert.Equal(t, "true", say(t, `print("abcdef".contains("cd"))`))
	assert.Equal(t, "true", say(t, `print("hello".starts_with("he"))`))
	assert.Equal(t, `["a", "b", "c"]`, say(t, `print("a,b,c".split(","))`))
	assert.Equal(t, "hello bop", say(t, `print("hello world".replace("world", "bop"))`))
	assert.Equal(t, "HELLO", say(t, `print("Hello".upper())`))
	assert.Equal(t, "hi", say(t, `print("  hi  ".trim())`))
	assert.Equal(t, "ell", say(t, `print("hello".slice(1, 4))`))
	assert.Equal(t, "2", say(t, `print("hello".index_of("ll"))`))
	assert.Equal(t, "b", say(t, `print("abc"[1])`))
	assert.Equal(t, "hello", say(t, `print("  HELLO  ".trim().lower())`))
}

func TestDicts(t *testing.T) {
	assert.Equal(t, "bop", say(t, `let d = {"name": "bop", "hp": 100}
print(d["name"])`))
	assert.Equal(t, "2", say(t, `let d = {"a": 1}
d["b"] = 2
print(d["b"])`))
	assert.Equal(t, "2", say(t, `print({"x": 1, "y": 2}.len())`))
	assert.Equal(t, "true", say(t, `print({"a": 1, "b": 2}.has("a"))`))
	assert.Equal(t, `["a", "b"]`, say(t, `print({"a": 1, "b": 2}.keys())`))
	assert.Equal(t, "[1, 2]", say(t, `print({"a": 1, "b": 2}.values())`))
}

func TestDictInsertKeySetPreservesOrder(t *testing.T) {
	assert.Equal(t, `["a", "b", "c"]`, say(t, `let d = {"a": 1, "b": 2}
d["c"] = 3
print(d.keys())`))
}

func TestDictEquality(t *testing.T) {
	assert.Equal(t, "true", say(t, `print({"a": 1, "b": 2} == {"b": 2, "a": 1})`))
	assert.Equal(t, "false", say(t, `print({"a": 1} == {"a": 2})`))
}

func TestBuiltins(t *testing.T) {
	assert.Equal(t, "[0, 1, 2, 3, 4]", say(t, "print(range(5))"))
	assert.Equal(t, "[2, 3, 4]", say(t, "print(range(2, 5))"))
	assert.Equal(t, "[0, 3, 6, 9]", say(t, "print(range(0, 10, 3))"))
	assert.Equal(t, "[5, 4, 3, 2, 1]", say(t, "print(range(5, 0))"))
	assert.Equal(t, "42", say(t, "print(str(42))"))
	assert.Equal(t, "3", say(t, "print(int(3.7))"))
	assert.Equal(t, "-2", say(t, "print(int(-2.9))"))
	assert.Equal(t, "number", say(t, "print(type(42))"))
	assert.Equal(t, "array", say(t, "print(type([]))"))
	assert.Equal(t, "5", say(t, "print(abs(-5))"))
	assert.Equal(t, "3", say(t, "print(min(3, 7))"))
	assert.Equal(t, "7", say(t, "print(max(3, 7))"))
	assert.Equal(t, "5", say(t, `print(len("hello"))`))
	assert.Equal(t, `"hi"`, say(t, `print(inspect("hi"))`))
}

func TestPrintJoinsArgsWithSpace(t *testing.T) {
	h := &testHost{}
	require.NoError(t, Run(`print("a", "b", "c")`, h, testLimits()))
	assert.Equal(t, []string{"a b c"}, h.prints)
}

func TestRandDeterministic(t *testing.T) {
	assert.Equal(t, say(t, "print(rand(100))"), say(t, "print(rand(100))"))
}

func TestErrorCases(t *testing.T) {
	assert.Contains(t, runErr(t, "print(1 / 0)"), "division by zero")
	assert.Contains(t, runErr(t, "nope()"), "not found")
	assert.Contains(t, runErr(t, "break"), "outside of a loop")
	assert.Contains(t, runErr(t, "continue"), "outside of a loop")
}

func TestInfiniteLoopProtection(t *testing.T) {
	assert.Contains(t, runErr(t, "while true { }"), "too many steps")
}

func TestEmptyProgram(t *testing.T) {
	h := &testHost{}
	require.NoError(t, Run("", h, testLimits()))
	assert.Empty(t, h.prints)
}

func TestTrailingCommas(t *testing.T) {
	assert.Equal(t, "[1, 2, 3]", say(t, "print([1, 2, 3,])"))
	assert.Equal(t, "1", say(t, `print({"a": 1,}.len())`))
}

func TestNoneValue(t *testing.T) {
	assert.Equal(t, "none", say(t, "print(none)"))
	assert.Equal(t, "true", say(t, "print(none == none)"))
}

func TestEqualityAcrossTypes(t *testing.T) {
	assert.Equal(t, "false", say(t, "print(1 == true)"))
	assert.Equal(t, "false", say(t, `print(0 == "")`))
}

func TestNestedArrayAccess(t *testing.T) {
	assert.Equal(t, "3", say(t, "let m = [[1, 2], [3, 4]]\nprint(m[1][0])"))
}

func TestComments(t *testing.T) {
	assert.Equal(t, "42", say(t, "# this is a comment\nlet x = 42 # inline comment\nprint(x)"))
}

// --- concrete end-to-end scenarios ------------------------------------

func TestScenarioArithmeticPrecedence(t *testing.T) {
	assert.Equal(t, "14", say(t, "let x = 2 + 3 * 4\nprint(x)"))
}

func TestScenarioFibonacci(t *testing.T) {
	assert.Equal(t, "55", say(t, "fn fib(n) { if n <= 1 { return n }\nreturn fib(n-1) + fib(n-2) }\nprint(fib(10))"))
}

func TestScenarioFizzBuzz(t *testing.T) {
	want := "1, 2, Fizz, 4, Buzz, Fizz, 7, 8, Fizz, Buzz, 11, Fizz, 13, 14, FizzBuzz"
	got := say(t, `let r = []
for i in range(1, 16) { if i % 15 == 0 { r.push("FizzBuzz") } else if i % 3 == 0 { r.push("Fizz") } else if i % 5 == 0 { r.push("Buzz") } else { r.push(str(i)) } }
print(r.join(", "))`)
	assert.Equal(t, want, got)
}

func TestScenarioStringInterpolation(t *testing.T) {
	assert.Equal(t, "hi bop!", say(t, "let name = \"bop\"\nprint(\"hi {name}!\")"))
}

func TestScenarioDictKeySet(t *testing.T) {
	assert.Equal(t, `["a", "b", "c"]`, say(t, `let d = {"a": 1, "b": 2}
d["c"] = 3
print(d.keys())`))
}

func TestScenarioInfiniteLoopResourceError(t *testing.T) {
	assert.Contains(t, runErr(t, "while true { }"), "took too many steps")
}

// --- universal properties ---------------------------------------------

func TestLedgerConservationAcrossSuccessAndFailure(t *testing.T) {
	programs := []string{
		`let s = "x"
repeat 10 { s = s + s }
print(len(s))`,
		`let a = []
repeat 50 { a.push(1) }
print(a.len())`,
		`let d = {"a": 1}
d["b"] = [1, 2, 3]
print(d.len())`,
		// a program that fails partway through still must not leak.
		`let a = [1]
print(a[5])`,
	}
	for _, p := range programs {
		e := New(WithHost(&testHost{}), WithLimits(testLimits()))
		_ = e.Run(p)
		assert.Zero(t, e.ledger.Bytes(), "ledger must return to 0 after %q", p)
	}
}

func TestParseDeterminism(t *testing.T) {
	src := "let x = 1\nfor i in range(3) { x += i }\nprint(x)"
	a := say(t, src)
	b := say(t, src)
	assert.Equal(t, a, b)
}

func TestResourceRobustnessMemoryBomb(t *testing.T) {
	tight := Limits{MaxSteps: 500, MaxMemory: 64 * 1024}
	h := &testHost{}
	err := Run(`let s = "x"
while true { s = s + s }`, h, tight)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "memory") || strings.Contains(err.Error(), "Memory") || strings.Contains(err.Error(), "steps"))
}

func TestReservedWordPrecheck(t *testing.T) {
	h := &testHost{}
	err := Run("let fn = 5\nprint(fn)", h, testLimits())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved word")
}
