package bop

// Option configures an Evaluator at construction. Follows the same
// apply-to-receiver shape as a small option set: each concrete option
// knows how to mutate an *Evaluator, and Options composes any number of
// them into one.
type Option interface{ apply(e *Evaluator) }

var defaultOptions = Options(
	withHost(NewStdHost(nil)),
	withLimits(Standard()),
)

// Options composes opts into a single Option, flattening any nested
// Options and dropping nil entries.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(*Evaluator) {}

type options []Option

func (opts options) apply(e *Evaluator) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(e)
		}
	}
}

type hostOption struct{ host Host }

func withHost(h Host) hostOption         { return hostOption{h} }
func (o hostOption) apply(e *Evaluator)  { e.host = o.host }

// WithHost sets the embedding Host. Default is a StdHost writing to
// os.Stdout.
func WithHost(h Host) Option { return withHost(h) }

type limitsOption struct{ limits Limits }

func withLimits(l Limits) limitsOption { return limitsOption{l} }
func (o limitsOption) apply(e *Evaluator) {
	e.limits = o.limits
}

// WithLimits sets the step/memory resource limits. Default is
// Standard().
func WithLimits(l Limits) Option { return withLimits(l) }

type logfOption struct{ logf func(level, mess string, args ...interface{}) }

func (o logfOption) apply(e *Evaluator) { e.logf = o.logf }

// WithLogf installs a tick-by-tick trace sink: logf is called once per
// tick with the "TRACE" level and the current step count, line and
// scope depth. logio.Logger.Printf matches this signature directly, so
// a host CLI can wire WithLogf(log.Printf) straight through. Nil (the
// default) disables tracing with no overhead beyond the nil check.
func WithLogf(logf func(level, mess string, args ...interface{})) Option {
	return logfOption{logf}
}
