package bop

import "github.com/bop-lang/bop/ast"

func (e *Evaluator) evalCall(n *ast.Call) (Value, error) {
	args := make([]Value, 0, len(n.Args))
	for _, argExpr := range n.Args {
		v, err := e.evalExpr(argExpr)
		if err != nil {
			for _, done := range args {
				done.Drop(&e.ledger)
			}
			return Value{}, err
		}
		args = append(args, v)
	}
	return e.callFunction(n.Name, args, n.Line())
}

// callFunction resolves name in spec's fixed order: built-ins, then the
// host's custom call(), then user-declared functions.
func (e *Evaluator) callFunction(name string, args []Value, line int) (Value, error) {
	if fn, ok := builtins[name]; ok {
		return fn(e, args, line)
	}

	if v, err, handled := e.host.Call(name, args, line, &e.ledger); handled {
		return v, err
	}

	fn, ok := e.functions[name]
	if !ok {
		for _, a := range args {
			a.Drop(&e.ledger)
		}
		hint := e.host.FunctionHint()
		err := newError(line, "Function `%s` not found", name)
		if hint != "" {
			err = err.WithHint(hint)
		}
		return Value{}, err
	}

	if len(args) != len(fn.params) {
		for _, a := range args {
			a.Drop(&e.ledger)
		}
		plural := "s"
		if len(fn.params) == 1 {
			plural = ""
		}
		return Value{}, newError(line, "`%s` expects %d argument%s, but got %d", name, len(fn.params), plural, len(args))
	}

	if e.callDepth >= maxCallDepth {
		for _, a := range args {
			a.Drop(&e.ledger)
		}
		return Value{}, newError(line, "Too many nested function calls (possible infinite recursion)").
			WithHint("Check that your recursive function has a base case that stops calling itself.")
	}

	// Clean scope stack for the call: the caller's scopes are not
	// visible inside a user function, per spec's strict function-scope
	// isolation.
	savedScopes := e.scopes
	e.scopes = newScopeStack(&e.ledger)
	for i, param := range fn.params {
		e.scopes.define(param, args[i])
	}
	e.callDepth++

	sig, err := e.execBlock(fn.body)
	e.scopes.dropAll()
	e.scopes = savedScopes
	e.callDepth--

	if err != nil {
		return Value{}, err
	}
	switch sig.kind {
	case signalReturn:
		return sig.value, nil
	case signalBreak:
		return Value{}, newError(line, "break used outside of a loop")
	case signalContinue:
		return Value{}, newError(line, "continue used outside of a loop")
	default:
		return NewNone(), nil
	}
}
