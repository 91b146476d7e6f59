package value

import (
	"fmt"
	"sort"
	"strings"
)

// MutatingArrayMethods is the fixed set of Array method names that produce
// a replacement receiver; the evaluator writes the replacement back only
// when the original receiver was a variable identifier.
var MutatingArrayMethods = map[string]bool{
	"push": true, "pop": true, "insert": true,
	"remove": true, "reverse": true, "sort": true,
}

// ArrayPush appends item (taking ownership of it) and returns the mutated
// receiver; the method call itself always yields None.
func (v Value) ArrayPush(l *Ledger, item Value) Value {
	before := cap(v.arr)
	v.arr = append(v.arr, item)
	if grown := cap(v.arr) - before; grown > 0 {
		l.Alloc(uint64(grown) * sizeofValue)
	}
	return v
}

// ArrayPop removes and returns the last element along with the mutated
// receiver. Popping an empty array is a ValueError.
func (v Value) ArrayPop(l *Ledger) (popped Value, mutated Value, err error) {
	n := len(v.arr)
	if n == 0 {
		return Value{}, v, ValueError{"pop from empty array"}
	}
	popped = v.arr[n-1]
	removedCap := cap(v.arr) - (n - 1)
	v.arr = v.arr[:n-1 : n-1]
	l.Dealloc(uint64(removedCap) * sizeofValue)
	return popped, v, nil
}

// ArrayHas reports whether item is deep-equal to any element.
func (v Value) ArrayHas(item Value) bool {
	for _, e := range v.arr {
		if Equal(e, item) {
			return true
		}
	}
	return false
}

// ArrayIndexOf returns the index of the first deep-equal element, or -1.
func (v Value) ArrayIndexOf(item Value) float64 {
	for i, e := range v.arr {
		if Equal(e, item) {
			return float64(i)
		}
	}
	return -1
}

// ArrayInsert inserts item at idx (0..=len), returning the mutated
// receiver. Any other position is a ValueError.
func (v Value) ArrayInsert(l *Ledger, idx int, item Value) (Value, error) {
	n := len(v.arr)
	if idx < 0 || idx > n {
		return v, ValueError{fmt.Sprintf("insert index %d out of range for length %d", idx, n)}
	}
	before := cap(v.arr)
	v.arr = append(v.arr, Value{})
	copy(v.arr[idx+1:], v.arr[idx:n])
	v.arr[idx] = item
	if grown := cap(v.arr) - before; grown > 0 {
		l.Alloc(uint64(grown) * sizeofValue)
	}
	return v, nil
}

// ArrayRemove removes and returns the element at idx, along with the
// mutated receiver. Out-of-range idx is a ValueError.
func (v Value) ArrayRemove(l *Ledger, idx int) (removed Value, mutated Value, err error) {
	n := len(v.arr)
	if idx < 0 || idx >= n {
		return Value{}, v, ValueError{fmt.Sprintf("remove index %d out of range for length %d", idx, n)}
	}
	removed = v.arr[idx]
	removedCap := cap(v.arr) - (n - 1)
	copy(v.arr[idx:], v.arr[idx+1:])
	v.arr = v.arr[:n-1 : n-1]
	l.Dealloc(uint64(removedCap) * sizeofValue)
	return removed, v, nil
}

// ArraySlice returns a new, independently-owned Array covering [start,end).
func (v Value) ArraySlice(l *Ledger, start, end int) (Value, error) {
	n := len(v.arr)
	if start < 0 || end < start || end > n {
		return Value{}, ValueError{fmt.Sprintf("slice [%d:%d] out of range for length %d", start, end, n)}
	}
	elems := make([]Value, end-start)
	for i := start; i < end; i++ {
		elems[i-start] = v.arr[i].Clone(l)
	}
	return NewArray(l, elems), nil
}

// ArrayReverse reverses the receiver's elements in place and returns it.
func (v Value) ArrayReverse(l *Ledger) Value {
	for i, j := 0, len(v.arr)-1; i < j; i, j = i+1, j-1 {
		v.arr[i], v.arr[j] = v.arr[j], v.arr[i]
	}
	return v
}

// ArraySort sorts the receiver in place using spec's ordered-comparison
// rules and returns it. All elements must be pairwise comparable (Numbers
// together or Strs together); otherwise a TypeError.
func (v Value) ArraySort(l *Ledger) (Value, error) {
	if len(v.arr) > 1 {
		want := v.arr[0].kind
		if want != Number && want != Str {
			return v, TypeError{fmt.Sprintf("cannot sort array of %s", want)}
		}
		for _, e := range v.arr[1:] {
			if e.kind != want {
				return v, TypeError{"cannot sort array of mixed types"}
			}
		}
	}
	var sortErr error
	sort.SliceStable(v.arr, func(i, j int) bool {
		return Compare(v.arr[i], v.arr[j]) < 0
	})
	return v, sortErr
}

// ArrayJoin renders each element in Display form and joins them with sep,
// pre-flight checking the result size since join is unbounded in input.
func (v Value) ArrayJoin(l *Ledger, sep string) (Value, error) {
	parts := make([]string, len(v.arr))
	total := 0
	for i, e := range v.arr {
		parts[i] = Display(e)
		total += len(parts[i])
	}
	total += len(sep) * maxInt(len(parts)-1, 0)
	if l.WouldExceed(uint64(total)) {
		return Value{}, errMemoryLimit()
	}
	return NewStr(l, strings.Join(parts, sep)), nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// StrContains, StrStartsWith, StrEndsWith, StrIndexOf are plain
// substring queries over the Str payload.
func (v Value) StrContains(sub string) bool    { return strings.Contains(v.str, sub) }
func (v Value) StrStartsWith(pre string) bool  { return strings.HasPrefix(v.str, pre) }
func (v Value) StrEndsWith(suf string) bool    { return strings.HasSuffix(v.str, suf) }

// StrIndexOf returns the rune index of the first occurrence of sub, or -1.
func (v Value) StrIndexOf(sub string) float64 {
	byteIdx := strings.Index(v.str, sub)
	if byteIdx < 0 {
		return -1
	}
	return float64(len([]rune(v.str[:byteIdx])))
}

// StrSplit splits on sep into an Array of Str, pre-flight checking the
// worst-case output size.
func (v Value) StrSplit(l *Ledger, sep string) (Value, error) {
	var parts []string
	if sep == "" {
		for _, r := range v.str {
			parts = append(parts, string(r))
		}
	} else {
		parts = strings.Split(v.str, sep)
	}
	if l.WouldExceed(uint64(len(parts)) * sizeofValue) {
		return Value{}, errMemoryLimit()
	}
	elems := make([]Value, len(parts))
	for i, p := range parts {
		elems[i] = NewStr(l, p)
	}
	return NewArray(l, elems), nil
}

// StrReplace replaces every occurrence of old with repl, pre-flight
// checking the worst-case result size.
func (v Value) StrReplace(l *Ledger, old, repl string) (Value, error) {
	n := strings.Count(v.str, old)
	growth := n * (len(repl) - len(old))
	resultLen := len(v.str) + growth
	if resultLen < 0 {
		resultLen = 0
	}
	if l.WouldExceed(uint64(resultLen)) {
		return Value{}, errMemoryLimit()
	}
	return NewStr(l, strings.ReplaceAll(v.str, old, repl)), nil
}

func (v Value) StrUpper(l *Ledger) Value { return NewStr(l, strings.ToUpper(v.str)) }
func (v Value) StrLower(l *Ledger) Value { return NewStr(l, strings.ToLower(v.str)) }
func (v Value) StrTrim(l *Ledger) Value  { return NewStr(l, strings.TrimSpace(v.str)) }

// StrSlice returns the code points [start,end) as a new Str.
func (v Value) StrSlice(l *Ledger, start, end int) (Value, error) {
	runes := []rune(v.str)
	n := len(runes)
	if start < 0 || end < start || end > n {
		return Value{}, ValueError{fmt.Sprintf("slice [%d:%d] out of range for length %d", start, end, n)}
	}
	return NewStr(l, string(runes[start:end])), nil
}

// Runes returns the Str payload's code points, for 'for x in str' and
// range-style iteration.
func (v Value) Runes() []rune { return []rune(v.str) }
