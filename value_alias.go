package bop

import "github.com/bop-lang/bop/value"

// Value is Bop's runtime value, re-exported so host implementations
// never need to import the internal value package directly.
type Value = value.Value

// Ledger is the execution-scoped Memory Ledger, re-exported so
// Host.Call implementations can construct Str/Array/Dict Values that
// charge the calling evaluator's own ledger rather than some global
// counter.
type Ledger = value.Ledger

// NewNumber, NewBool, NewNone construct ledger-free scalar Values for
// use from within a Host.Call implementation.
func NewNumber(n float64) Value { return value.NewNumber(n) }
func NewBool(b bool) Value      { return value.NewBool(b) }
func NewNone() Value            { return value.NewNone() }

// NewStr, NewArray construct ledger-tracked Values, charging l. A Host
// that returns a Str/Array/Dict from Call must build it against the
// Ledger handed to that call so the evaluator's byte accounting stays
// exact.
func NewStr(l *Ledger, s string) Value        { return value.NewStr(l, s) }
func NewArray(l *Ledger, elems []Value) Value { return value.NewArray(l, elems) }
