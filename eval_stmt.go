package bop

import (
	"github.com/bop-lang/bop/ast"
)

var assignBinOp = map[string]string{
	"+=": "+", "-=": "-", "*=": "*", "/=": "/", "%=": "%",
}

// execBlock runs stmts in order, stopping early and propagating the
// first non-normal signal or error.
func (e *Evaluator) execBlock(stmts []ast.Stmt) (signal, error) {
	for _, s := range stmts {
		sig, err := e.execStmt(s)
		if err != nil {
			return sigNone, err
		}
		if sig.kind != signalNone {
			return sig, nil
		}
	}
	return sigNone, nil
}

func (e *Evaluator) execStmt(s ast.Stmt) (signal, error) {
	if err := e.tick(s.Line()); err != nil {
		return sigNone, err
	}

	switch st := s.(type) {
	case *ast.Let:
		v, err := e.evalExpr(st.Value)
		if err != nil {
			return sigNone, err
		}
		e.scopes.define(st.Name, v)
		return sigNone, nil

	case *ast.Assign:
		v, err := e.evalExpr(st.Value)
		if err != nil {
			return sigNone, err
		}
		if err := e.execAssign(st, v); err != nil {
			return sigNone, err
		}
		return sigNone, nil

	case *ast.If:
		return e.execIf(st)

	case *ast.While:
		return e.execWhile(st)

	case *ast.Repeat:
		return e.execRepeat(st)

	case *ast.ForIn:
		return e.execForIn(st)

	case *ast.FnDecl:
		e.functions[st.Name] = fnDef{params: st.Params, body: st.Body}
		return sigNone, nil

	case *ast.Return:
		if st.Value == nil {
			return sigReturn(NewNone()), nil
		}
		v, err := e.evalExpr(st.Value)
		if err != nil {
			return sigNone, err
		}
		return sigReturn(v), nil

	case *ast.Break:
		return sigBreak, nil

	case *ast.Continue:
		return sigContinue, nil

	case *ast.ExprStmt:
		v, err := e.evalExpr(st.X)
		if err != nil {
			return sigNone, err
		}
		v.Drop(&e.ledger)
		return sigNone, nil
	}

	return sigNone, newError(s.Line(), "internal: unhandled statement %T", s)
}

func (e *Evaluator) execIf(st *ast.If) (signal, error) {
	for i, cond := range st.Conds {
		cv, err := e.evalExpr(cond)
		if err != nil {
			return sigNone, err
		}
		truthy := cv.Truthy()
		cv.Drop(&e.ledger)
		if truthy {
			e.scopes.push()
			sig, err := e.execBlock(st.Blocks[i])
			e.scopes.pop()
			return sig, err
		}
	}
	if st.Else != nil {
		e.scopes.push()
		sig, err := e.execBlock(st.Else)
		e.scopes.pop()
		return sig, err
	}
	return sigNone, nil
}

func (e *Evaluator) execWhile(st *ast.While) (signal, error) {
	for {
		if err := e.tick(st.Line()); err != nil {
			return sigNone, err
		}
		cv, err := e.evalExpr(st.Cond)
		if err != nil {
			return sigNone, err
		}
		truthy := cv.Truthy()
		cv.Drop(&e.ledger)
		if !truthy {
			break
		}
		e.scopes.push()
		sig, err := e.execBlock(st.Body)
		e.scopes.pop()
		if err != nil {
			return sigNone, err
		}
		switch sig.kind {
		case signalBreak:
			return sigNone, nil
		case signalContinue:
			continue
		case signalReturn:
			return sig, nil
		}
	}
	return sigNone, nil
}

func (e *Evaluator) execRepeat(st *ast.Repeat) (signal, error) {
	cv, err := e.evalExpr(st.Count)
	if err != nil {
		return sigNone, err
	}
	if cv.TypeName() != "number" {
		t := cv.TypeName()
		cv.Drop(&e.ledger)
		return sigNone, newError(st.Line(), "repeat needs a number, but got %s", t)
	}
	n := int64(cv.AsNumber())
	cv.Drop(&e.ledger)
	if n < 0 {
		n = 0
	}
	for i := int64(0); i < n; i++ {
		if err := e.tick(st.Line()); err != nil {
			return sigNone, err
		}
		e.scopes.push()
		sig, err := e.execBlock(st.Body)
		e.scopes.pop()
		if err != nil {
			return sigNone, err
		}
		switch sig.kind {
		case signalBreak:
			return sigNone, nil
		case signalContinue:
			continue
		case signalReturn:
			return sig, nil
		}
	}
	return sigNone, nil
}

func (e *Evaluator) execForIn(st *ast.ForIn) (signal, error) {
	iterVal, err := e.evalExpr(st.Iter)
	if err != nil {
		return sigNone, err
	}

	var items []Value
	switch iterVal.TypeName() {
	case "array":
		items = iterVal.Take(&e.ledger)
	case "string":
		for _, r := range iterVal.Runes() {
			items = append(items, NewStr(&e.ledger, string(r)))
		}
		iterVal.Drop(&e.ledger)
	default:
		t := iterVal.TypeName()
		iterVal.Drop(&e.ledger)
		return sigNone, newError(st.Line(), "Can't iterate over %s", t)
	}

	for i, item := range items {
		if err := e.tick(st.Line()); err != nil {
			for _, rest := range items[i:] {
				rest.Drop(&e.ledger)
			}
			return sigNone, err
		}
		e.scopes.push()
		e.scopes.define(st.Name, item)
		sig, err := e.execBlock(st.Body)
		e.scopes.pop()
		if err != nil {
			for _, rest := range items[i+1:] {
				rest.Drop(&e.ledger)
			}
			return sigNone, err
		}
		switch sig.kind {
		case signalBreak:
			for _, rest := range items[i+1:] {
				rest.Drop(&e.ledger)
			}
			return sigNone, nil
		case signalContinue:
			continue
		case signalReturn:
			for _, rest := range items[i+1:] {
				rest.Drop(&e.ledger)
			}
			return sig, nil
		}
	}
	return sigNone, nil
}

func (e *Evaluator) execAssign(st *ast.Assign, newVal Value) error {
	switch target := st.Target.(type) {
	case *ast.Identifier:
		var final Value
		if st.Op == "=" {
			final = newVal
		} else {
			cur, ok := e.scopes.lookup(target.Name)
			if !ok {
				newVal.Drop(&e.ledger)
				return newError(st.Line(), "Variable `%s` doesn't exist yet", target.Name)
			}
			v, err := e.applyCompound(cur, st.Op, newVal, st.Line())
			if err != nil {
				return err
			}
			final = v
		}
		if !e.scopes.set(target.Name, final) {
			final.Drop(&e.ledger)
			return newError(st.Line(), "Variable `%s` doesn't exist yet", target.Name).
				WithHint("Use `let` to create a new variable: let " + target.Name + " = ...")
		}
		return nil

	case *ast.Index:
		idxVal, err := e.evalExpr(target.Idx)
		if err != nil {
			newVal.Drop(&e.ledger)
			return err
		}

		ident, ok := target.Recv.(*ast.Identifier)
		if !ok {
			idxVal.Drop(&e.ledger)
			newVal.Drop(&e.ledger)
			return newError(st.Line(), "Can only assign to indexed variables (like `arr[0] = val`)")
		}

		var toSet Value
		if st.Op == "=" {
			toSet = newVal
		} else {
			obj, ok := e.scopes.lookup(ident.Name)
			if !ok {
				idxVal.Drop(&e.ledger)
				newVal.Drop(&e.ledger)
				return newError(st.Line(), "Variable `%s` doesn't exist", ident.Name)
			}
			cur, gerr := obj.IndexGet(&e.ledger, idxVal)
			obj.Drop(&e.ledger)
			if gerr != nil {
				idxVal.Drop(&e.ledger)
				newVal.Drop(&e.ledger)
				return wrap(st.Line(), gerr)
			}
			v, cerr := e.applyCompound(cur, st.Op, newVal, st.Line())
			if cerr != nil {
				idxVal.Drop(&e.ledger)
				return cerr
			}
			toSet = v
		}

		obj, ok := e.scopes.lookup(ident.Name)
		if !ok {
			idxVal.Drop(&e.ledger)
			toSet.Drop(&e.ledger)
			return newError(st.Line(), "Variable `%s` doesn't exist", ident.Name)
		}
		if err := obj.IndexSet(&e.ledger, idxVal, toSet); err != nil {
			idxVal.Drop(&e.ledger)
			obj.Drop(&e.ledger)
			toSet.Drop(&e.ledger)
			return wrap(st.Line(), err)
		}
		idxVal.Drop(&e.ledger)
		e.scopes.set(ident.Name, obj)
		return nil
	}

	return newError(st.Line(), "internal: invalid assignment target %T", st.Target)
}

// applyCompound implements compound assignment (+= -= *= /= %=) by
// reading the current value, applying the underlying binary operator,
// and returning the result; it always consumes (drops) cur and rhs.
func (e *Evaluator) applyCompound(cur Value, op string, rhs Value, line int) (Value, error) {
	binOp, ok := assignBinOp[op]
	if !ok {
		rhs.Drop(&e.ledger)
		cur.Drop(&e.ledger)
		return Value{}, newError(line, "internal: unknown compound operator %q", op)
	}
	v, err := e.binaryOp(binOp, cur, rhs, line)
	if err != nil {
		return Value{}, err
	}
	return v, nil
}
