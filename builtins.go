package bop

import (
	"strconv"
	"strings"
	"unsafe"

	"github.com/bop-lang/bop/value"
)

// maxRangeItems caps the number of elements range() will ever produce,
// regardless of span, so a huge range fails fast rather than slowly
// exhausting the memory limit.
const maxRangeItems = 10_000

type builtinFunc func(e *Evaluator, args []Value, line int) (Value, error)

var builtins = map[string]builtinFunc{
	"range":   builtinRange,
	"str":     builtinStr,
	"int":     builtinInt,
	"type":    builtinType,
	"abs":     builtinAbs,
	"min":     builtinMin,
	"max":     builtinMax,
	"rand":    builtinRand,
	"len":     builtinLen,
	"inspect": builtinInspect,
	"print":   builtinPrint,
}

func dropArgs(e *Evaluator, args []Value) {
	for _, a := range args {
		a.Drop(&e.ledger)
	}
}

func expectArgs(e *Evaluator, name string, args []Value, n int, line int) error {
	if len(args) != n {
		dropArgs(e, args)
		plural := "s"
		if n == 1 {
			plural = ""
		}
		return newError(line, "`%s` expects %d argument%s, but got %d", name, n, plural, len(args))
	}
	return nil
}

func expectNumber(e *Evaluator, name string, v Value, line int) (float64, error) {
	if v.TypeName() != "number" {
		t := v.TypeName()
		v.Drop(&e.ledger)
		return 0, newError(line, "`%s` expects a number, but got %s", name, t)
	}
	return v.AsNumber(), nil
}

func builtinRange(e *Evaluator, args []Value, line int) (Value, error) {
	var start, end, step float64
	switch len(args) {
	case 1:
		n, err := expectNumber(e, "range", args[0], line)
		if err != nil {
			return Value{}, err
		}
		start, end, step = 0, n, 1
	case 2:
		a, err := expectNumber(e, "range", args[0], line)
		if err != nil {
			dropArgs(e, args[1:])
			return Value{}, err
		}
		b, err := expectNumber(e, "range", args[1], line)
		if err != nil {
			return Value{}, err
		}
		start, end = a, b
		if start <= end {
			step = 1
		} else {
			step = -1
		}
	case 3:
		a, err := expectNumber(e, "range", args[0], line)
		if err != nil {
			dropArgs(e, args[1:])
			return Value{}, err
		}
		b, err := expectNumber(e, "range", args[1], line)
		if err != nil {
			dropArgs(e, args[2:])
			return Value{}, err
		}
		c, err := expectNumber(e, "range", args[2], line)
		if err != nil {
			return Value{}, err
		}
		if c == 0 {
			return Value{}, newError(line, "range step can't be 0")
		}
		start, end, step = a, b, c
	default:
		dropArgs(e, args)
		return Value{}, newError(line, "range takes 1, 2, or 3 arguments")
	}

	var nums []float64
	for i := start; (step > 0 && i < end) || (step < 0 && i > end); i += step {
		if len(nums) >= maxRangeItems {
			return Value{}, newError(line, "range would produce more than %d items", maxRangeItems)
		}
		nums = append(nums, i)
	}
	if e.ledger.WouldExceed(uint64(len(nums)) * uint64(unsafe.Sizeof(Value{}))) {
		return Value{}, wrap(line, value.ResourceError{Msg: "Memory limit exceeded"})
	}
	elems := make([]Value, len(nums))
	for i, n := range nums {
		elems[i] = NewNumber(n)
	}
	return NewArray(&e.ledger, elems), nil
}

func builtinStr(e *Evaluator, args []Value, line int) (Value, error) {
	if err := expectArgs(e, "str", args, 1, line); err != nil {
		return Value{}, err
	}
	s := value.Display(args[0])
	args[0].Drop(&e.ledger)
	return NewStr(&e.ledger, s), nil
}

func builtinInt(e *Evaluator, args []Value, line int) (Value, error) {
	if err := expectArgs(e, "int", args, 1, line); err != nil {
		return Value{}, err
	}
	v := args[0]
	switch v.TypeName() {
	case "number":
		n := v.AsNumber()
		return NewNumber(float64(int64(n))), nil
	case "string":
		s := v.AsStr()
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		v.Drop(&e.ledger)
		if err != nil {
			return Value{}, newError(line, "Can't convert %q to a number", s)
		}
		return NewNumber(float64(int64(n))), nil
	case "bool":
		b := v.AsBool()
		if b {
			return NewNumber(1), nil
		}
		return NewNumber(0), nil
	default:
		t := v.TypeName()
		v.Drop(&e.ledger)
		return Value{}, newError(line, "Can't convert %s to int", t)
	}
}

func builtinType(e *Evaluator, args []Value, line int) (Value, error) {
	if err := expectArgs(e, "type", args, 1, line); err != nil {
		return Value{}, err
	}
	t := args[0].TypeName()
	args[0].Drop(&e.ledger)
	return NewStr(&e.ledger, t), nil
}

func builtinAbs(e *Evaluator, args []Value, line int) (Value, error) {
	if err := expectArgs(e, "abs", args, 1, line); err != nil {
		return Value{}, err
	}
	n, err := expectNumber(e, "abs", args[0], line)
	if err != nil {
		return Value{}, err
	}
	if n < 0 {
		n = -n
	}
	return NewNumber(n), nil
}

func builtinMin(e *Evaluator, args []Value, line int) (Value, error) {
	if err := expectArgs(e, "min", args, 2, line); err != nil {
		return Value{}, err
	}
	a, err := expectNumber(e, "min", args[0], line)
	if err != nil {
		args[1].Drop(&e.ledger)
		return Value{}, err
	}
	b, err := expectNumber(e, "min", args[1], line)
	if err != nil {
		return Value{}, err
	}
	if a < b {
		return NewNumber(a), nil
	}
	return NewNumber(b), nil
}

func builtinMax(e *Evaluator, args []Value, line int) (Value, error) {
	if err := expectArgs(e, "max", args, 2, line); err != nil {
		return Value{}, err
	}
	a, err := expectNumber(e, "max", args[0], line)
	if err != nil {
		args[1].Drop(&e.ledger)
		return Value{}, err
	}
	b, err := expectNumber(e, "max", args[1], line)
	if err != nil {
		return Value{}, err
	}
	if a > b {
		return NewNumber(a), nil
	}
	return NewNumber(b), nil
}

func builtinRand(e *Evaluator, args []Value, line int) (Value, error) {
	if err := expectArgs(e, "rand", args, 1, line); err != nil {
		return Value{}, err
	}
	n, err := expectNumber(e, "rand", args[0], line)
	if err != nil {
		return Value{}, err
	}
	k := int64(n)
	if k <= 0 {
		return Value{}, newError(line, "rand needs a positive number")
	}
	v := e.rng.next(uint64(k))
	return NewNumber(float64(v)), nil
}

func builtinLen(e *Evaluator, args []Value, line int) (Value, error) {
	if err := expectArgs(e, "len", args, 1, line); err != nil {
		return Value{}, err
	}
	v := args[0]
	switch v.TypeName() {
	case "string", "array", "dict":
		n := v.Len()
		v.Drop(&e.ledger)
		return NewNumber(float64(n)), nil
	default:
		t := v.TypeName()
		v.Drop(&e.ledger)
		return Value{}, newError(line, "Can't get length of %s", t)
	}
}

func builtinInspect(e *Evaluator, args []Value, line int) (Value, error) {
	if err := expectArgs(e, "inspect", args, 1, line); err != nil {
		return Value{}, err
	}
	s := value.Inspect(args[0])
	args[0].Drop(&e.ledger)
	return NewStr(&e.ledger, s), nil
}

func builtinPrint(e *Evaluator, args []Value, line int) (Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = value.Display(a)
		a.Drop(&e.ledger)
	}
	e.host.OnPrint(strings.Join(parts, " "))
	return NewNone(), nil
}
