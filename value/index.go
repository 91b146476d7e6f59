package value

import (
	"fmt"
	"math"
)

// maxSafeIndex bounds the float64→int64 index conversion to values it can
// represent exactly, so a huge negative index clamps to a clean
// out-of-bounds error instead of risking undefined float-to-int overflow.
const maxSafeIndex = 1 << 53

func resolveIndex(f float64, n int) (int, bool) {
	if math.IsNaN(f) || f < -maxSafeIndex || f > maxSafeIndex {
		return 0, false
	}
	i := int64(f)
	if i < 0 {
		i += int64(n)
	}
	if i < 0 || i >= int64(n) {
		return 0, false
	}
	return int(i), true
}

// IndexGet implements spec's indexed-read rules: Array by integer index
// (negative counts from the end), Str by Unicode code point, Dict by
// string key. The result is an independently-owned clone.
func (v Value) IndexGet(l *Ledger, idx Value) (Value, error) {
	switch v.kind {
	case Array:
		if idx.kind != Number {
			return Value{}, TypeError{"array index must be a number"}
		}
		i, ok := resolveIndex(idx.num, len(v.arr))
		if !ok {
			return Value{}, IndexError{len(v.arr)}
		}
		return v.arr[i].Clone(l), nil
	case Str:
		if idx.kind != Number {
			return Value{}, TypeError{"string index must be a number"}
		}
		runes := []rune(v.str)
		i, ok := resolveIndex(idx.num, len(runes))
		if !ok {
			return Value{}, IndexError{len(runes)}
		}
		return NewStr(l, string(runes[i])), nil
	case Dict:
		if idx.kind != Str {
			return Value{}, TypeError{"dict key must be a string"}
		}
		dv, ok := dictGet(v, idx.str)
		if !ok {
			return Value{}, KeyError{idx.str}
		}
		return dv.Clone(l), nil
	default:
		return Value{}, TypeError{fmt.Sprintf("cannot index into %s", v.kind)}
	}
}

// IndexSet implements spec's indexed-write rules: only an in-range Array
// slot or an existing-or-new Dict key. It takes ownership of newVal.
func (v *Value) IndexSet(l *Ledger, idx Value, newVal Value) error {
	switch v.kind {
	case Array:
		if idx.kind != Number {
			return TypeError{"array index must be a number"}
		}
		i, ok := resolveIndex(idx.num, len(v.arr))
		if !ok {
			return IndexError{len(v.arr)}
		}
		v.arr[i].Drop(l)
		v.arr[i] = newVal
		return nil
	case Dict:
		if idx.kind != Str {
			return TypeError{"dict key must be a string"}
		}
		v.dictSet(l, idx.str, newVal)
		return nil
	default:
		return TypeError{fmt.Sprintf("cannot index-assign into %s", v.kind)}
	}
}

func dictGet(v Value, key string) (Value, bool) {
	for _, e := range v.dict {
		if e.key == key {
			return e.val, true
		}
	}
	return Value{}, false
}

// dictSet inserts or replaces key, charging the ledger for a new key's
// bytes and for any growth in the entries buffer.
func (v *Value) dictSet(l *Ledger, key string, newVal Value) {
	for i, e := range v.dict {
		if e.key == key {
			e.val.Drop(l)
			v.dict[i].val = newVal
			return
		}
	}
	before := cap(v.dict)
	l.Alloc(uint64(len(key)))
	v.dict = append(v.dict, entry{key: key, val: newVal})
	if grown := cap(v.dict) - before; grown > 0 {
		l.Alloc(uint64(grown) * sizeofEntry)
	}
}

// DictKeys returns the dict's keys, in insertion order, as a fresh Array
// of Str values.
func (v Value) DictKeys(l *Ledger) Value {
	elems := make([]Value, len(v.dict))
	for i, e := range v.dict {
		elems[i] = NewStr(l, e.key)
	}
	return NewArray(l, elems)
}

// DictValues returns the dict's values, in insertion order, as a fresh
// Array, each value an independent clone.
func (v Value) DictValues(l *Ledger) Value {
	elems := make([]Value, len(v.dict))
	for i, e := range v.dict {
		elems[i] = e.val.Clone(l)
	}
	return NewArray(l, elems)
}

// DictHas reports whether key is present.
func (v Value) DictHas(key string) bool {
	_, ok := dictGet(v, key)
	return ok
}

// SetKey inserts or replaces a Dict entry; used by dict-literal
// construction as well as indexed assignment.
func (v *Value) SetKey(l *Ledger, key string, val Value) {
	v.dictSet(l, key, val)
}
