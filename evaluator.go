package bop

import (
	"github.com/bop-lang/bop/ast"
	"github.com/bop-lang/bop/parser"
	"github.com/bop-lang/bop/value"
)

// maxCallDepth is the recursion cap: exceeding it fails with a hint
// about base cases.
const maxCallDepth = 64

// fnDef is a user function declaration: flat-namespace, no closures.
type fnDef struct {
	params []string
	body   []ast.Stmt
}

// Evaluator is Bop's single-threaded tree-walker. It owns the lexical
// scope stack, the flat function table, the host, the resource limits,
// the step counter, the call-depth counter, the Memory Ledger and the
// PRNG state -- all execution-scoped, so two Evaluators never share
// mutable state.
type Evaluator struct {
	scopes    *scopeStack
	functions map[string]fnDef
	host      Host
	limits    Limits
	steps     uint64
	callDepth int
	ledger    value.Ledger
	rng       rngState
	logf      func(level, mess string, args ...interface{})
}

// New constructs an Evaluator. Construction resets the Memory Ledger to
// limits.MaxMemory and installs a single outer scope, per spec.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{functions: make(map[string]fnDef)}
	defaultOptions.apply(e)
	Options(opts...).apply(e)
	e.ledger.Init(e.limits.MaxMemory)
	e.scopes = newScopeStack(&e.ledger)
	return e
}

// Run lexes, parses and evaluates src against e's host and limits.
func (e *Evaluator) Run(src string) error {
	if perr := CheckReservedWords(src); perr != nil {
		return perr
	}
	prog, err := parser.Parse(src)
	if err != nil {
		return err
	}
	return e.RunProgram(prog)
}

// RunProgram evaluates an already-parsed program, e.g. one parsed once
// via parser.Parse and reused, or inspected with CountInstructions
// first.
func (e *Evaluator) RunProgram(prog *ast.Program) error {
	sig, err := e.execBlock(prog.Stmts)
	e.scopes.dropAll()
	if err != nil {
		return err
	}
	switch sig.kind {
	case signalBreak:
		return newError(0, "break used outside of a loop")
	case signalContinue:
		return newError(0, "continue used outside of a loop")
	}
	return nil
}

// Run is the package-level convenience entry point matching spec's CLI
// surface: construct a throwaway Evaluator with host and limits, run
// src once.
func Run(src string, host Host, limits Limits) error {
	e := New(WithHost(host), WithLimits(limits))
	return e.Run(src)
}

// tick runs at the start of every statement and every loop iteration.
func (e *Evaluator) tick(line int) error {
	e.steps++
	if e.logf != nil {
		e.logf("TRACE", "step %d line %d depth %d scopes %d", e.steps, line, e.callDepth, len(e.scopes.frames))
	}
	if e.steps > e.limits.MaxSteps {
		return newError(line, "Your code took too many steps (possible infinite loop)").
			WithHint("Check your loops — make sure they have a condition that eventually stops them.")
	}
	if e.ledger.Exceeded() {
		return newError(line, "Memory limit exceeded").
			WithHint("Your code is using too much memory. Check for large strings or arrays growing in loops.")
	}
	if err := e.host.OnTick(); err != nil {
		return err
	}
	return nil
}
