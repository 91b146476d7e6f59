package value

import (
	"math"
	"strconv"
	"strings"
)

// Display renders v the way print() and string interpolation do: strings
// unquoted, whole-number floats without a trailing decimal point.
func Display(v Value) string {
	if v.kind == Str {
		return v.str
	}
	return renderComposite(v)
}

// Inspect renders v the way it appears embedded inside an array or dict:
// strings double-quoted.
func Inspect(v Value) string {
	if v.kind == Str {
		return quoteStr(v.str)
	}
	return renderComposite(v)
}

// renderComposite handles every kind whose rendering is identical between
// Display and Inspect -- everything except the top-level Str case, since
// composites always render their children in Inspect form.
func renderComposite(v Value) string {
	switch v.kind {
	case Number:
		return formatNumber(v.num)
	case Bool:
		if v.boo {
			return "true"
		}
		return "false"
	case None:
		return "none"
	case Array:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = Inspect(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Dict:
		parts := make([]string, len(v.dict))
		for i, e := range v.dict {
			parts[i] = quoteStr(e.key) + ": " + Inspect(e.val)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case Str:
		return v.str
	default:
		return ""
	}
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "nan"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

func quoteStr(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
