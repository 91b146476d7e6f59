package bop

import "github.com/bop-lang/bop/value"

// wrap attaches a source line (and, for a few well-known value-package
// errors, a friendly hint) to any error the value package returns,
// producing the single *Error record every stage surfaces.
func wrap(line int, err error) *Error {
	if err == nil {
		return nil
	}
	e := newError(line, "%s", err.Error())
	switch v := err.(type) {
	case value.ValueError:
		switch v.Msg {
		case "division by zero":
			e.WithHint("You can't divide by 0.")
		case "modulo by zero":
			e.WithHint("You can't use % with 0.")
		}
	case value.ResourceError:
		e.WithHint("Your code is using too much memory. Check for large strings or arrays growing in loops.")
	}
	return e
}
