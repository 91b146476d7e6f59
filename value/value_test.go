package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	var l Ledger
	l.Init(0)

	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"zero number", NewNumber(0), false},
		{"nonzero number", NewNumber(-1), true},
		{"false bool", NewBool(false), false},
		{"true bool", NewBool(true), true},
		{"none", NewNone(), false},
		{"empty str", NewStr(&l, ""), false},
		{"nonempty str", NewStr(&l, "x"), true},
		{"empty array", NewArray(&l, nil), false},
		{"nonempty array", NewArray(&l, []Value{NewNumber(1)}), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.v.Truthy())
		})
	}
}

func TestDisplayAndInspect(t *testing.T) {
	var l Ledger
	l.Init(0)

	n := NewNumber(14)
	assert.Equal(t, "14", Display(n))
	assert.Equal(t, "3.5", Display(NewNumber(3.5)))

	s := NewStr(&l, "hi")
	assert.Equal(t, "hi", Display(s))
	assert.Equal(t, `"hi"`, Inspect(s))

	arr := NewArray(&l, []Value{NewStr(&l, "a"), NewNumber(1)})
	assert.Equal(t, `["a", 1]`, Display(arr))

	var d Value
	d = NewDict(&l)
	d.SetKey(&l, "a", NewNumber(1))
	d.SetKey(&l, "b", NewNumber(2))
	assert.Equal(t, `{"a": 1, "b": 2}`, Display(d))
}

func TestEqualityAndCompare(t *testing.T) {
	var l Ledger
	l.Init(0)

	assert.True(t, Equal(NewNumber(1), NewNumber(1)))
	one := NewStr(&l, "1")
	assert.False(t, Equal(NewNumber(1), one))
	one.Drop(&l)

	a := NewArray(&l, []Value{NewNumber(1), NewNumber(2)})
	b := NewArray(&l, []Value{NewNumber(1), NewNumber(2)})
	assert.True(t, Equal(a, b))
	a.Drop(&l)
	b.Drop(&l)

	d1 := NewDict(&l)
	d1.SetKey(&l, "a", NewNumber(1))
	d1.SetKey(&l, "b", NewNumber(2))
	d2 := NewDict(&l)
	d2.SetKey(&l, "b", NewNumber(2))
	d2.SetKey(&l, "a", NewNumber(1))
	assert.True(t, Equal(d1, d2), "dict equality must be order independent")
	d1.Drop(&l)
	d2.Drop(&l)

	require.True(t, Comparable(NewNumber(1), NewNumber(2)))
	assert.Equal(t, -1, Compare(NewNumber(1), NewNumber(2)))
	x := NewStr(&l, "x")
	assert.False(t, Comparable(NewNumber(1), x))
	x.Drop(&l)

	assert.Equal(t, uint64(0), l.Bytes())
}

func TestCloneIsIndependent(t *testing.T) {
	var l Ledger
	l.Init(0)

	a := NewArray(&l, []Value{NewStr(&l, "x")})
	before := l.Bytes()
	b := a.Clone(&l)
	assert.Equal(t, 2*before, l.Bytes(), "clone costs exactly twice one value")

	b.IndexSet(&l, NewNumber(0), NewStr(&l, "mutated"))
	got, err := a.IndexGet(&l, NewNumber(0))
	require.NoError(t, err)
	assert.Equal(t, "x", got.AsStr(), "mutating the clone must not affect the original")

	got.Drop(&l)
	a.Drop(&l)
	b.Drop(&l)
	assert.Equal(t, uint64(0), l.Bytes())
}

func TestIndexOutOfBounds(t *testing.T) {
	var l Ledger
	l.Init(0)
	a := NewArray(&l, []Value{NewNumber(1), NewNumber(2)})
	_, err := a.IndexGet(&l, NewNumber(5))
	require.Error(t, err)
	var ie IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 2, ie.Length)
	a.Drop(&l)
}

func TestNegativeIndex(t *testing.T) {
	var l Ledger
	l.Init(0)
	a := NewArray(&l, []Value{NewNumber(1), NewNumber(2), NewNumber(3)})
	got, err := a.IndexGet(&l, NewNumber(-1))
	require.NoError(t, err)
	assert.Equal(t, float64(3), got.AsNumber())
	a.Drop(&l)
}
