package value

import "math"

// Ledger is the execution-scoped Memory Ledger: a saturating byte counter
// against a configurable limit. It is a plain struct rather than package
// state so that every bop.Evaluator (or any concurrent host) owns an
// independent instance, per spec's isolation requirement.
type Ledger struct {
	limit   uint64
	current uint64
}

// Init resets the ledger to zero bytes tracked, with a new limit. A limit
// of 0 means unbounded.
func (l *Ledger) Init(limit uint64) {
	l.limit = limit
	l.current = 0
}

// Alloc charges n bytes against the ledger, saturating rather than
// overflowing.
func (l *Ledger) Alloc(n uint64) {
	l.current = satAdd(l.current, n)
}

// Dealloc credits n bytes back to the ledger, saturating at zero rather
// than underflowing.
func (l *Ledger) Dealloc(n uint64) {
	l.current = satSub(l.current, n)
}

// Bytes returns the currently tracked byte count.
func (l *Ledger) Bytes() uint64 { return l.current }

// Limit returns the configured limit (0 meaning unbounded).
func (l *Ledger) Limit() uint64 { return l.limit }

// Exceeded reports whether the ledger is currently over its limit. Checked
// once per tick by the evaluator; never by the constructors themselves, so
// a single allocation may briefly overshoot before the next tick notices.
func (l *Ledger) Exceeded() bool {
	return l.limit != 0 && l.current > l.limit
}

// WouldExceed reports whether allocating extra more bytes would push the
// ledger over its limit. Operations with unbounded input size (string
// repeat/concat, array concat, split, join, range) must call this before
// producing their result.
func (l *Ledger) WouldExceed(extra uint64) bool {
	return l.limit != 0 && satAdd(l.current, extra) > l.limit
}

func satAdd(a, b uint64) uint64 {
	s := a + b
	if s < a {
		return math.MaxUint64
	}
	return s
}

func satSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
