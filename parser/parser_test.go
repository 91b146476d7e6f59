package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bop-lang/bop/ast"
)

func TestParseLetAndPrecedence(t *testing.T) {
	prog, err := Parse(`let x = 2 + 3 * 4`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	let, ok := prog.Stmts[0].(*ast.Let)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name)
	bin, ok := let.Value.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
	rbin, ok := bin.R.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "*", rbin.Op)
}

func TestParseFizzBuzzShape(t *testing.T) {
	src := `let r = []
for i in range(1, 16) {
  if i % 15 == 0 { r.push("FizzBuzz") } else if i % 3 == 0 { r.push("Fizz") } else { r.push(str(i)) }
}
print(r.join(", "))`
	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 3)
	forIn, ok := prog.Stmts[1].(*ast.ForIn)
	require.True(t, ok)
	assert.Equal(t, "i", forIn.Name)
	ifStmt, ok := forIn.Body[0].(*ast.If)
	require.True(t, ok)
	assert.Len(t, ifStmt.Conds, 2)
}

func TestAssignmentTargets(t *testing.T) {
	_, err := Parse(`let a = [1]
a[0] = 2`)
	require.NoError(t, err)

	_, err = Parse(`1 + 2 = 3`)
	require.Error(t, err)
}

func TestDictLiteralRequiresStringKeys(t *testing.T) {
	_, err := Parse(`let d = {a: 1}`)
	require.Error(t, err)

	_, err = Parse(`let d = {"a": 1, "b": 2,}`)
	require.NoError(t, err)
}

func TestIfExpression(t *testing.T) {
	prog, err := Parse(`let x = if true { 1 } else { 2 }`)
	require.NoError(t, err)
	let := prog.Stmts[0].(*ast.Let)
	_, ok := let.Value.(*ast.IfExpr)
	assert.True(t, ok)
}

func TestTrailingCommaInArray(t *testing.T) {
	_, err := Parse(`let a = [1, 2, 3,]`)
	require.NoError(t, err)
}

func TestDeepNestingFails(t *testing.T) {
	var b strings.Builder
	for i := 0; i < MaxDepth+10; i++ {
		b.WriteString("if true {")
	}
	for i := 0; i < MaxDepth+10; i++ {
		b.WriteString("}")
	}
	_, err := Parse(b.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested too deeply")
}

func TestInstructionCountIgnoresFormatting(t *testing.T) {
	a := `let x = 1
let y = 2
if x < y { print(x) }`
	b := `
	let x = 1
	let y = 2
	if x < y {

	   print(x)

	}
	`
	progA, err := Parse(a)
	require.NoError(t, err)
	progB, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, CountInstructions(progA), CountInstructions(progB))
}

func TestFnDeclDoesNotRecurseForInstructionCount(t *testing.T) {
	prog, err := Parse(`fn f() {
	let a = 1
	let b = 2
	let c = 3
}
f()`)
	require.NoError(t, err)
	assert.Equal(t, 2, CountInstructions(prog))
}

func TestParseDeterminism(t *testing.T) {
	src := `let x = 1 + 2 * 3
print(x)`
	p1, err := Parse(src)
	require.NoError(t, err)
	p2, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, CountInstructions(p1), CountInstructions(p2))
	assert.Equal(t, len(p1.Stmts), len(p2.Stmts))
}
