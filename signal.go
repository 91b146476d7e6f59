package bop

// signalKind is the result of executing a block: normal completion, or
// one of the three block-escaping control signals.
type signalKind int

const (
	signalNone signalKind = iota
	signalBreak
	signalContinue
	signalReturn
)

// signal carries a return value alongside its kind; only signalReturn
// ever sets Value.
type signal struct {
	kind  signalKind
	value Value
}

var sigNone = signal{kind: signalNone}
var sigBreak = signal{kind: signalBreak}
var sigContinue = signal{kind: signalContinue}

func sigReturn(v Value) signal { return signal{kind: signalReturn, value: v} }
