package merge

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Comparator orders two key fields. Compare returns -1, 0 or +1; an error
// means one of the keys cannot be interpreted.
type Comparator interface {
	Compare(a, b string) (int, error)
}

// NumericComparator compares keys as base-10 64-bit integers.
type NumericComparator struct{}

// Compare implements Comparator.
func (NumericComparator) Compare(a, b string) (int, error) {
	x, err := strconv.ParseInt(a, 10, 64)
	if err != nil {
		return 0, &keyParseError{side: Left, key: a, err: err}
	}
	y, err := strconv.ParseInt(b, 10, 64)
	if err != nil {
		return 0, &keyParseError{side: Right, key: b, err: err}
	}
	return cmp.Compare(x, y), nil
}

// DurationComparator compares keys as clock durations.
//
// A key is read as [-]H[:M[:S[.fraction]]], fields in order as hours,
// minutes, seconds and fraction. Fields are not range checked: "1:70" is
// 2h10m and a bare "5" is five hours. Other values without a colon are
// parsed as Go duration literals such as "1h30m".
type DurationComparator struct{}

// Compare implements Comparator.
func (DurationComparator) Compare(a, b string) (int, error) {
	x, err := ParseDuration(a)
	if err != nil {
		return 0, &keyParseError{side: Left, key: a, err: err}
	}
	y, err := ParseDuration(b)
	if err != nil {
		return 0, &keyParseError{side: Right, key: b, err: err}
	}
	return cmp.Compare(x, y), nil
}

var errDurationSyntax = errors.New("invalid duration")

const maxDuration = time.Duration(1<<63 - 1)

// clockUnits are the units of the colon-separated fields, in order.
var clockUnits = [...]struct {
	name string
	unit time.Duration
}{
	{"hours", time.Hour},
	{"minutes", time.Minute},
	{"seconds", time.Second},
}

// ParseDuration parses a clock duration literal as described on
// DurationComparator. Fraction digits past nanoseconds are truncated.
func ParseDuration(s string) (time.Duration, error) {
	neg := false
	rest := s
	if strings.HasPrefix(rest, "-") {
		neg = true
		rest = rest[1:]
	}

	if !strings.Contains(rest, ":") && !isDigits(rest) {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("%w %q", errDurationSyntax, s)
		}
		return d, nil
	}

	clock, frac, hasFrac := strings.Cut(rest, ".")
	parts := strings.Split(clock, ":")
	if len(parts) > len(clockUnits) || (hasFrac && len(parts) != len(clockUnits)) {
		return 0, fmt.Errorf("%w %q", errDurationSyntax, s)
	}

	var d time.Duration
	for i, part := range parts {
		u := clockUnits[i]
		if !isDigits(part) {
			return 0, fmt.Errorf("%w %q: %s", errDurationSyntax, s, u.name)
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil || n > int64(maxDuration/u.unit) {
			return 0, fmt.Errorf("%w %q: out of range", errDurationSyntax, s)
		}
		if d, err = addDuration(d, time.Duration(n)*u.unit); err != nil {
			return 0, fmt.Errorf("%w %q: out of range", errDurationSyntax, s)
		}
	}

	if hasFrac {
		if !isDigits(frac) {
			return 0, fmt.Errorf("%w %q: fraction", errDurationSyntax, s)
		}
		if len(frac) > 9 {
			frac = frac[:9]
		}
		nanos, err := strconv.ParseInt(frac+strings.Repeat("0", 9-len(frac)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w %q: fraction", errDurationSyntax, s)
		}
		if d, err = addDuration(d, time.Duration(nanos)); err != nil {
			return 0, fmt.Errorf("%w %q: out of range", errDurationSyntax, s)
		}
	}

	if neg {
		d = -d
	}
	return d, nil
}

// addDuration adds two non-negative durations, failing on overflow.
func addDuration(a, b time.Duration) (time.Duration, error) {
	if a > maxDuration-b {
		return 0, errDurationSyntax
	}
	return a + b, nil
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// keyParseError carries which argument of Compare failed. The engine turns
// it into a *KeyError with line context.
type keyParseError struct {
	side Side
	key  string
	err  error
}

func (e *keyParseError) Error() string {
	return fmt.Sprintf("%s key %q: %v", e.side, e.key, e.err)
}

func (e *keyParseError) Unwrap() error {
	return e.err
}
