package merge

import (
	"errors"
	"fmt"
)

// Side identifies an input or the output of a merge.
type Side int

const (
	// Left is the first input.
	Left Side = iota
	// Right is the second input.
	Right
	// Output is the sink.
	Output
)

// String returns the string representation of Side.
func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Output:
		return "output"
	default:
		return fmt.Sprintf("Side(%d)", s)
	}
}

// ErrMalformedKey indicates a key field that the comparison strategy cannot parse.
var ErrMalformedKey = errors.New("malformed key")

// KeyError reports a key field that could not be compared. It aborts the merge.
type KeyError struct {
	// Side is the input the line came from.
	Side Side
	// Line is the 1-indexed line number within that input.
	Line int
	// Field is the key text.
	Field string
	// Err is the underlying parse error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *KeyError) Error() string {
	return fmt.Sprintf("merge: malformed key %q on %s line %d: %v", e.Field, e.Side, e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *KeyError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedKey.
func (e *KeyError) Is(target error) bool {
	return target == ErrMalformedKey
}

// IOError reports a read or write failure. It aborts the merge; output that
// was already written is not rolled back.
type IOError struct {
	// Side is the input or output that failed.
	Side Side
	// Op is "read", "write" or "flush".
	Op string
	// Line is the 1-indexed line being read or written.
	Line int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *IOError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("merge: %s %s line %d: %v", e.Op, e.Side, e.Line, e.Err)
	}
	return fmt.Sprintf("merge: %s %s: %v", e.Op, e.Side, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}
