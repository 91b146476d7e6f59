package bop

import (
	"strings"

	"github.com/bop-lang/bop/ast"
	"github.com/bop-lang/bop/value"
)

func (e *Evaluator) evalExpr(x ast.Expr) (Value, error) {
	switch n := x.(type) {
	case *ast.NumberLit:
		return NewNumber(n.Value), nil
	case *ast.StrLit:
		return NewStr(&e.ledger, n.Value), nil
	case *ast.BoolLit:
		return NewBool(n.Value), nil
	case *ast.NoneLit:
		return NewNone(), nil

	case *ast.InterpStr:
		var b strings.Builder
		for _, part := range n.Parts {
			if !part.IsVar {
				b.WriteString(part.Text)
				continue
			}
			v, ok := e.scopes.lookup(part.Text)
			if !ok {
				return Value{}, newError(n.Line(), "Variable `%s` not found", part.Text)
			}
			b.WriteString(value.Display(v))
			v.Drop(&e.ledger)
		}
		return NewStr(&e.ledger, b.String()), nil

	case *ast.Identifier:
		v, ok := e.scopes.lookup(n.Name)
		if !ok {
			return Value{}, newError(n.Line(), "Variable `%s` not found", n.Name).
				WithHint("Did you forget to create it with `let`?")
		}
		return v, nil

	case *ast.Binary:
		return e.evalBinary(n)

	case *ast.Unary:
		v, err := e.evalExpr(n.X)
		if err != nil {
			return Value{}, err
		}
		switch n.Op {
		case "-":
			r, err := value.Neg(&e.ledger, v)
			if err != nil {
				return Value{}, wrap(n.Line(), err)
			}
			return r, nil
		case "!":
			b := v.Truthy()
			v.Drop(&e.ledger)
			return NewBool(!b), nil
		}
		return Value{}, newError(n.Line(), "internal: unknown unary operator %q", n.Op)

	case *ast.Call:
		return e.evalCall(n)

	case *ast.MethodCall:
		return e.evalMethodCall(n)

	case *ast.Index:
		obj, err := e.evalExpr(n.Recv)
		if err != nil {
			return Value{}, err
		}
		idx, err := e.evalExpr(n.Idx)
		if err != nil {
			obj.Drop(&e.ledger)
			return Value{}, err
		}
		v, err := obj.IndexGet(&e.ledger, idx)
		obj.Drop(&e.ledger)
		idx.Drop(&e.ledger)
		if err != nil {
			return Value{}, wrap(n.Line(), err)
		}
		return v, nil

	case *ast.ArrayLit:
		elems := make([]Value, 0, len(n.Elems))
		for _, elemExpr := range n.Elems {
			v, err := e.evalExpr(elemExpr)
			if err != nil {
				for _, done := range elems {
					done.Drop(&e.ledger)
				}
				return Value{}, err
			}
			elems = append(elems, v)
		}
		return NewArray(&e.ledger, elems), nil

	case *ast.DictLit:
		d := value.NewDict(&e.ledger)
		for i, key := range n.Keys {
			v, err := e.evalExpr(n.Values[i])
			if err != nil {
				d.Drop(&e.ledger)
				return Value{}, err
			}
			d.SetKey(&e.ledger, key, v)
		}
		return d, nil

	case *ast.IfExpr:
		cv, err := e.evalExpr(n.Cond)
		if err != nil {
			return Value{}, err
		}
		truthy := cv.Truthy()
		cv.Drop(&e.ledger)
		if truthy {
			return e.evalExpr(n.Then)
		}
		return e.evalExpr(n.Else)
	}

	return Value{}, newError(x.Line(), "internal: unhandled expression %T", x)
}

func (e *Evaluator) evalBinary(n *ast.Binary) (Value, error) {
	if n.Op == "&&" {
		l, err := e.evalExpr(n.L)
		if err != nil {
			return Value{}, err
		}
		lt := l.Truthy()
		l.Drop(&e.ledger)
		if !lt {
			return NewBool(false), nil
		}
		r, err := e.evalExpr(n.R)
		if err != nil {
			return Value{}, err
		}
		rt := r.Truthy()
		r.Drop(&e.ledger)
		return NewBool(rt), nil
	}
	if n.Op == "||" {
		l, err := e.evalExpr(n.L)
		if err != nil {
			return Value{}, err
		}
		lt := l.Truthy()
		l.Drop(&e.ledger)
		if lt {
			return NewBool(true), nil
		}
		r, err := e.evalExpr(n.R)
		if err != nil {
			return Value{}, err
		}
		rt := r.Truthy()
		r.Drop(&e.ledger)
		return NewBool(rt), nil
	}

	l, err := e.evalExpr(n.L)
	if err != nil {
		return Value{}, err
	}
	r, err := e.evalExpr(n.R)
	if err != nil {
		l.Drop(&e.ledger)
		return Value{}, err
	}
	return e.binaryOp(n.Op, l, r, n.Line())
}

// binaryOp dispatches a binary operator over already-evaluated operands,
// always consuming both. Equality and ordered comparison are handled
// here directly (they never fail on a variant mismatch per spec, except
// ordered comparison); arithmetic and Str/Array combinators delegate to
// the value package.
func (e *Evaluator) binaryOp(op string, l, r Value, line int) (Value, error) {
	switch op {
	case "+":
		v, err := value.Plus(&e.ledger, l, r)
		if err != nil {
			return Value{}, wrap(line, err)
		}
		return v, nil
	case "-":
		v, err := value.Minus(&e.ledger, l, r)
		if err != nil {
			return Value{}, wrap(line, err)
		}
		return v, nil
	case "*":
		v, err := value.Mul(&e.ledger, l, r)
		if err != nil {
			return Value{}, wrap(line, err)
		}
		return v, nil
	case "/":
		v, err := value.Div(&e.ledger, l, r)
		if err != nil {
			return Value{}, wrap(line, err)
		}
		return v, nil
	case "%":
		v, err := value.Mod(&e.ledger, l, r)
		if err != nil {
			return Value{}, wrap(line, err)
		}
		return v, nil
	case "==":
		eq := value.Equal(l, r)
		l.Drop(&e.ledger)
		r.Drop(&e.ledger)
		return NewBool(eq), nil
	case "!=":
		eq := value.Equal(l, r)
		l.Drop(&e.ledger)
		r.Drop(&e.ledger)
		return NewBool(!eq), nil
	case "<", ">", "<=", ">=":
		if !value.Comparable(l, r) {
			lt, rt := l.TypeName(), r.TypeName()
			l.Drop(&e.ledger)
			r.Drop(&e.ledger)
			return Value{}, newError(line, "Can't compare %s and %s with `%s`", lt, rt, op)
		}
		c := value.Compare(l, r)
		l.Drop(&e.ledger)
		r.Drop(&e.ledger)
		switch op {
		case "<":
			return NewBool(c < 0), nil
		case ">":
			return NewBool(c > 0), nil
		case "<=":
			return NewBool(c <= 0), nil
		default:
			return NewBool(c >= 0), nil
		}
	}
	l.Drop(&e.ledger)
	r.Drop(&e.ledger)
	return Value{}, newError(line, "internal: unknown binary operator %q", op)
}
