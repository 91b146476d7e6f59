package bop

import (
	"fmt"
	"io"
	"os"

	"github.com/bop-lang/bop/internal/flushio"
)

// Host is the embedding contract: the four extension points a guest
// program can reach out through. All are default-implementable; embed
// BaseHost to get defaults for whichever you don't need to override.
type Host interface {
	// Call handles an unknown function name. Returning (zero Value,
	// nil, false) means "not handled" and lets resolution continue to
	// user-declared functions. ledger is the calling evaluator's own
	// Memory Ledger: implementations that return a Str/Array/Dict
	// must build it against ledger (via NewStr/NewArray) so the
	// evaluator's byte accounting stays exact.
	Call(name string, args []Value, line int, ledger *Ledger) (Value, error, bool)
	// OnPrint receives print()'s already-joined, display-formatted
	// message.
	OnPrint(message string)
	// FunctionHint is appended to "function not found" errors when
	// non-empty.
	FunctionHint() string
	// OnTick is called once per tick; a non-nil error halts execution.
	OnTick() error
}

// BaseHost implements Host with spec's defaults: no custom built-ins, no
// function hint, no tick interrupt, print discarded. Embed it and
// override only the methods a particular host needs.
type BaseHost struct{}

func (BaseHost) Call(name string, args []Value, line int, ledger *Ledger) (Value, error, bool) {
	return Value{}, nil, false
}
func (BaseHost) OnPrint(message string)  {}
func (BaseHost) FunctionHint() string    { return "" }
func (BaseHost) OnTick() error           { return nil }

// StdHost is the default CLI host: no custom built-ins, print() goes to
// a flushable writer (stdout by default), flushed after every line so
// output interleaves correctly with a REPL prompt.
type StdHost struct {
	BaseHost
	out flushio.WriteFlusher
}

// NewStdHost wraps w (os.Stdout if nil) as a StdHost.
func NewStdHost(w io.Writer) *StdHost {
	if w == nil {
		w = os.Stdout
	}
	return &StdHost{out: flushio.NewWriteFlusher(w)}
}

func (h *StdHost) OnPrint(message string) {
	fmt.Fprintln(h.out, message)
	h.out.Flush()
}
