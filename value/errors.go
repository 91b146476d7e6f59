package value

import "fmt"

// These error kinds exist so bop's evaluator can attach the right line,
// message and hint to a single bop.Error without value itself knowing
// anything about source positions. Per spec, every kind ultimately
// surfaces as one error record distinguishable only by message content.

// IndexError reports an out-of-bounds Array/Str index, naming the length
// the caller should mention in its message.
type IndexError struct{ Length int }

func (e IndexError) Error() string { return fmt.Sprintf("index out of bounds (length %d)", e.Length) }

// KeyError reports a missing Dict key.
type KeyError struct{ Key string }

func (e KeyError) Error() string { return fmt.Sprintf("no such key %q", e.Key) }

// TypeError reports a variant that cannot satisfy the requested operation.
type TypeError struct{ Msg string }

func (e TypeError) Error() string { return e.Msg }

// ValueError reports a value that is the right type but an invalid value:
// division/modulo by zero, a negative or non-finite repeat count, an
// out-of-range insert/remove position, a pop from an empty array.
type ValueError struct{ Msg string }

func (e ValueError) Error() string { return e.Msg }

// ResourceError reports a pre-flight memory check that failed: the
// operation would have pushed the ledger over its limit.
type ResourceError struct{ Msg string }

func (e ResourceError) Error() string { return e.Msg }

func errMemoryLimit() error { return ResourceError{"Memory limit exceeded"} }
