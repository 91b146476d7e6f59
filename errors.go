// Package bop implements the Bop language: lexer, parser and a
// tree-walking evaluator that runs untrusted guest programs under a
// step/memory budget, with a small host-extension surface (custom
// built-ins, print, per-tick interrupts).
//
// The zero-value entry point is Run, which lexes, parses and evaluates
// source against a Host and a Limits in one call. Evaluator exposes the
// same pipeline split into stages for callers that want to parse once
// (e.g. to call parser.CountInstructions) and run many times.
package bop

import "github.com/bop-lang/bop/srcerr"

// Error is Bop's single error record, shared verbatim by every stage
// (lexer, parser, evaluator) so a host never type-switches across
// stages. Display form is "[line N] MESSAGE" when Line is set, else
// just MESSAGE; Hint, when non-empty, is a second line embedders may
// choose to show.
type Error = srcerr.Error

func newError(line int, format string, args ...interface{}) *Error {
	return srcerr.New(line, format, args...)
}
