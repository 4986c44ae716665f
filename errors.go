package wareki

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArg is matched by every conversion failure: an impossible
	// Gregorian date, an unknown era, an era year below 1, or a date earlier
	// than the first supported era.
	ErrInvalidArg = errors.New("wareki: invalid argument")

	// ErrInvalidEraTable is returned by [New] when the era definitions are
	// inconsistent.
	ErrInvalidEraTable = errors.New("wareki: invalid era table")
)

// InvalidArgError describes which argument of which operation was rejected.
// It matches [ErrInvalidArg] under errors.Is.
type InvalidArgError struct {
	Op     string // operation name, e.g. "ToWareki"
	Arg    string // offending argument, e.g. "day"
	Value  any    // the rejected value
	Reason string
}

func (e *InvalidArgError) Error() string {
	return fmt.Sprintf("wareki: %s: invalid %s %v: %s", e.Op, e.Arg, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidArg.
func (e *InvalidArgError) Is(target error) bool {
	return target == ErrInvalidArg
}

func invalidArg(op, arg string, value any, reason string) error {
	return &InvalidArgError{Op: op, Arg: arg, Value: value, Reason: reason}
}

// invalidDate builds the error for an impossible (month, day) in year.
func invalidDate(op string, g gregorian) error {
	if g.month < 1 || g.month > 12 {
		return invalidArg(op, "month", int(g.month), "must be between 1 and 12")
	}
	return invalidArg(op, "day", g.day,
		fmt.Sprintf("must be between 1 and %d for %04d-%02d", DaysIn(g.year, g.month), g.year, int(g.month)))
}
