package bop

import (
	"github.com/bop-lang/bop/ast"
	"github.com/bop-lang/bop/value"
)

func (e *Evaluator) evalMethodCall(n *ast.MethodCall) (Value, error) {
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

	recv, err := e.evalExpr(n.Recv)
	if err != nil {
		dropArgs(e, args)
		return Value{}, err
	}

	result, mutated, err := e.callMethod(recv, n.Name, args, n.Line())
	if err != nil {
		return Value{}, err
	}

	if value.MutatingArrayMethods[n.Name] {
		if ident, ok := n.Recv.(*ast.Identifier); ok {
			e.scopes.set(ident.Name, mutated)
		} else {
			mutated.Drop(&e.ledger)
		}
	}
	return result, nil
}

// callMethod dispatches recv.name(args) by recv's variant, taking
// ownership of recv and args. It always returns a usable "mutated"
// Value for symmetry with the mutating-method contract even when name
// is not a mutating method; callers should ignore it in that case.
func (e *Evaluator) callMethod(recv Value, name string, args []Value, line int) (result Value, mutated Value, err error) {
	switch recv.TypeName() {
	case "array":
		return e.callArrayMethod(recv, name, args, line)
	case "string":
		return e.callStringMethod(recv, name, args, line)
	case "dict":
		return e.callDictMethod(recv, name, args, line)
	default:
		t := recv.TypeName()
		recv.Drop(&e.ledger)
		dropArgs(e, args)
		return Value{}, Value{}, newError(line, "%s doesn't have a .%s() method", t, name)
	}
}

func wantArgs(e *Evaluator, recv Value, name string, args []Value, n int, line int, msg string) error {
	if len(args) != n {
		recv.Drop(&e.ledger)
		dropArgs(e, args)
		return newError(line, msg)
	}
	return nil
}

func (e *Evaluator) callArrayMethod(recv Value, name string, args []Value, line int) (Value, Value, error) {
	l := &e.ledger
	switch name {
	case "len":
		n := recv.Len()
		recv.Drop(l)
		return NewNumber(float64(n)), Value{}, nil
	case "push":
		if err := wantArgs(e, recv, name, args, 1, line, ".push() needs exactly 1 argument"); err != nil {
			return Value{}, Value{}, err
		}
		mutated := recv.ArrayPush(l, args[0])
		return NewNone(), mutated, nil
	case "pop":
		if len(args) != 0 {
			recv.Drop(l)
			dropArgs(e, args)
			return Value{}, Value{}, newError(line, ".pop() takes no arguments")
		}
		popped, mutated, perr := recv.ArrayPop(l)
		if perr != nil {
			return Value{}, Value{}, wrap(line, perr)
		}
		return popped, mutated, nil
	case "has":
		if err := wantArgs(e, recv, name, args, 1, line, ".has() needs exactly 1 argument"); err != nil {
			return Value{}, Value{}, err
		}
		found := recv.ArrayHas(args[0])
		args[0].Drop(l)
		recv.Drop(l)
		return NewBool(found), Value{}, nil
	case "index_of":
		if err := wantArgs(e, recv, name, args, 1, line, ".index_of() needs exactly 1 argument"); err != nil {
			return Value{}, Value{}, err
		}
		idx := recv.ArrayIndexOf(args[0])
		args[0].Drop(l)
		recv.Drop(l)
		return NewNumber(idx), Value{}, nil
	case "insert":
		if err := wantArgs(e, recv, name, args, 2, line, ".insert() needs 2 arguments: index and value"); err != nil {
			return Value{}, Value{}, err
		}
		idx, nerr := expectNumber(e, "insert", args[0], line)
		if nerr != nil {
			recv.Drop(l)
			args[1].Drop(l)
			return Value{}, Value{}, nerr
		}
		mutated, ierr := recv.ArrayInsert(l, int(idx), args[1])
		if ierr != nil {
			return Value{}, Value{}, wrap(line, ierr)
		}
		return NewNone(), mutated, nil
	case "remove":
		if err := wantArgs(e, recv, name, args, 1, line, ".remove() needs exactly 1 argument (index)"); err != nil {
			return Value{}, Value{}, err
		}
		idx, nerr := expectNumber(e, "remove", args[0], line)
		if nerr != nil {
			recv.Drop(l)
			return Value{}, Value{}, nerr
		}
		removed, mutated, rerr := recv.ArrayRemove(l, int(idx))
		if rerr != nil {
			return Value{}, Value{}, wrap(line, rerr)
		}
		return removed, mutated, nil
	case "slice":
		if err := wantArgs(e, recv, name, args, 2, line, ".slice() needs 2 arguments: start and end"); err != nil {
			return Value{}, Value{}, err
		}
		start, serr := expectNumber(e, "slice", args[0], line)
		if serr != nil {
			recv.Drop(l)
			args[1].Drop(l)
			return Value{}, Value{}, serr
		}
		end, eerr := expectNumber(e, "slice", args[1], line)
		if eerr != nil {
			recv.Drop(l)
			return Value{}, Value{}, eerr
		}
		sliced, slerr := recv.ArraySlice(l, int(start), int(end))
		recv.Drop(l)
		if slerr != nil {
			return Value{}, Value{}, wrap(line, slerr)
		}
		return sliced, Value{}, nil
	case "reverse":
		if len(args) != 0 {
			recv.Drop(l)
			dropArgs(e, args)
			return Value{}, Value{}, newError(line, ".reverse() takes no arguments")
		}
		mutated := recv.ArrayReverse(l)
		return NewNone(), mutated, nil
	case "sort":
		if len(args) != 0 {
			recv.Drop(l)
			dropArgs(e, args)
			return Value{}, Value{}, newError(line, ".sort() takes no arguments")
		}
		mutated, serr := recv.ArraySort(l)
		if serr != nil {
			mutated.Drop(l)
			return Value{}, Value{}, wrap(line, serr)
		}
		return NewNone(), mutated, nil
	case "join":
		if err := wantArgs(e, recv, name, args, 1, line, ".join() needs exactly 1 argument (separator)"); err != nil {
			return Value{}, Value{}, err
		}
		if args[0].TypeName() != "string" {
			recv.Drop(l)
			args[0].Drop(l)
			return Value{}, Value{}, newError(line, ".join() separator must be a string")
		}
		sep := args[0].AsStr()
		args[0].Drop(l)
		joined, jerr := recv.ArrayJoin(l, sep)
		recv.Drop(l)
		if jerr != nil {
			return Value{}, Value{}, wrap(line, jerr)
		}
		return joined, Value{}, nil
	default:
		recv.Drop(l)
		dropArgs(e, args)
		return Value{}, Value{}, newError(line, "Array doesn't have a .%s() method", name)
	}
}

func (e *Evaluator) callStringMethod(recv Value, name string, args []Value, line int) (Value, Value, error) {
	l := &e.ledger
	s := recv.AsStr()
	switch name {
	case "len":
		n := recv.Len()
		recv.Drop(l)
		return NewNumber(float64(n)), Value{}, nil
	case "contains", "starts_with", "ends_with", "index_of":
		if len(args) != 1 || args[0].TypeName() != "string" {
			recv.Drop(l)
			dropArgs(e, args)
			return Value{}, Value{}, newError(line, ".%s() needs a string argument", name)
		}
		sub := args[0].AsStr()
		args[0].Drop(l)
		recv.Drop(l)
		switch name {
		case "contains":
			return NewBool(recv.StrContains(sub)), Value{}, nil
		case "starts_with":
			return NewBool(recv.StrStartsWith(sub)), Value{}, nil
		case "ends_with":
			return NewBool(recv.StrEndsWith(sub)), Value{}, nil
		default:
			return NewNumber(recv.StrIndexOf(sub)), Value{}, nil
		}
	case "split":
		if len(args) != 1 || args[0].TypeName() != "string" {
			recv.Drop(l)
			dropArgs(e, args)
			return Value{}, Value{}, newError(line, ".split() needs a string argument")
		}
		sep := args[0].AsStr()
		args[0].Drop(l)
		parts, serr := recv.StrSplit(l, sep)
		recv.Drop(l)
		if serr != nil {
			return Value{}, Value{}, wrap(line, serr)
		}
		return parts, Value{}, nil
	case "replace":
		if len(args) != 2 || args[0].TypeName() != "string" || args[1].TypeName() != "string" {
			recv.Drop(l)
			dropArgs(e, args)
			return Value{}, Value{}, newError(line, ".replace() needs 2 string arguments")
		}
		old, repl := args[0].AsStr(), args[1].AsStr()
		args[0].Drop(l)
		args[1].Drop(l)
		replaced, rerr := recv.StrReplace(l, old, repl)
		recv.Drop(l)
		if rerr != nil {
			return Value{}, Value{}, wrap(line, rerr)
		}
		return replaced, Value{}, nil
	case "upper":
		if len(args) != 0 {
			recv.Drop(l)
			dropArgs(e, args)
			return Value{}, Value{}, newError(line, ".upper() takes no arguments")
		}
		u := recv.StrUpper(l)
		recv.Drop(l)
		return u, Value{}, nil
	case "lower":
		if len(args) != 0 {
			recv.Drop(l)
			dropArgs(e, args)
			return Value{}, Value{}, newError(line, ".lower() takes no arguments")
		}
		lo := recv.StrLower(l)
		recv.Drop(l)
		return lo, Value{}, nil
	case "trim":
		if len(args) != 0 {
			recv.Drop(l)
			dropArgs(e, args)
			return Value{}, Value{}, newError(line, ".trim() takes no arguments")
		}
		t := recv.StrTrim(l)
		recv.Drop(l)
		return t, Value{}, nil
	case "slice":
		if len(args) != 2 {
			recv.Drop(l)
			dropArgs(e, args)
			return Value{}, Value{}, newError(line, ".slice() needs 2 arguments: start and end")
		}
		start, serr := expectNumber(e, "slice", args[0], line)
		if serr != nil {
			recv.Drop(l)
			args[1].Drop(l)
			return Value{}, Value{}, serr
		}
		end, eerr := expectNumber(e, "slice", args[1], line)
		if eerr != nil {
			recv.Drop(l)
			return Value{}, Value{}, eerr
		}
		sliced, slerr := recv.StrSlice(l, int(start), int(end))
		recv.Drop(l)
		if slerr != nil {
			return Value{}, Value{}, wrap(line, slerr)
		}
		return sliced, Value{}, nil
	default:
		_ = s
		recv.Drop(l)
		dropArgs(e, args)
		return Value{}, Value{}, newError(line, "String doesn't have a .%s() method", name)
	}
}

func (e *Evaluator) callDictMethod(recv Value, name string, args []Value, line int) (Value, Value, error) {
	l := &e.ledger
	switch name {
	case "len":
		n := recv.Len()
		recv.Drop(l)
		return NewNumber(float64(n)), Value{}, nil
	case "keys":
		if len(args) != 0 {
			recv.Drop(l)
			dropArgs(e, args)
			return Value{}, Value{}, newError(line, ".keys() takes no arguments")
		}
		keys := recv.DictKeys(l)
		recv.Drop(l)
		return keys, Value{}, nil
	case "values":
		if len(args) != 0 {
			recv.Drop(l)
			dropArgs(e, args)
			return Value{}, Value{}, newError(line, ".values() takes no arguments")
		}
		vals := recv.DictValues(l)
		recv.Drop(l)
		return vals, Value{}, nil
	case "has":
		if len(args) != 1 || args[0].TypeName() != "string" {
			recv.Drop(l)
			dropArgs(e, args)
			return Value{}, Value{}, newError(line, ".has() needs a string argument")
		}
		found := recv.DictHas(args[0].AsStr())
		args[0].Drop(l)
		recv.Drop(l)
		return NewBool(found), Value{}, nil
	default:
		recv.Drop(l)
		dropArgs(e, args)
		return Value{}, Value{}, newError(line, "Dict doesn't have a .%s() method", name)
	}
}
