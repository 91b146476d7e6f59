package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerBasic(t *testing.T) {
	var l Ledger
	l.Init(100)
	assert.False(t, l.Exceeded())

	l.Alloc(50)
	assert.Equal(t, uint64(50), l.Bytes())
	assert.False(t, l.Exceeded())
	assert.True(t, l.WouldExceed(51))
	assert.False(t, l.WouldExceed(50))

	l.Alloc(60)
	assert.True(t, l.Exceeded())

	l.Dealloc(110)
	assert.Equal(t, uint64(0), l.Bytes())
	assert.False(t, l.Exceeded())
}

func TestLedgerSaturates(t *testing.T) {
	var l Ledger
	l.Init(0)
	l.Alloc(math.MaxUint64)
	l.Alloc(100)
	assert.Equal(t, uint64(math.MaxUint64), l.Bytes(), "alloc must saturate rather than wrap")

	l.Dealloc(math.MaxUint64)
	l.Dealloc(1)
	assert.Equal(t, uint64(0), l.Bytes(), "dealloc must saturate at zero rather than wrap")
}

func TestLedgerUnboundedWhenLimitZero(t *testing.T) {
	var l Ledger
	l.Init(0)
	l.Alloc(1 << 40)
	assert.False(t, l.Exceeded())
	assert.False(t, l.WouldExceed(1 << 40))
}

func TestConservationAfterDrop(t *testing.T) {
	var l Ledger
	l.Init(0)

	arr := NewArray(&l, []Value{
		NewStr(&l, "alpha"),
		NewStr(&l, "beta"),
	})
	d := NewDict(&l)
	d.SetKey(&l, "k", arr)
	assert.NotEqual(t, uint64(0), l.Bytes())

	d.Drop(&l)
	assert.Equal(t, uint64(0), l.Bytes(), "ledger must return to zero after a full drop")
}
