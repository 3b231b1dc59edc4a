package merge

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shapestone/csvmerge/internal/fields"
)

// CompareMode selects how key fields are ordered.
type CompareMode int

const (
	// CompareNumeric orders keys as base-10 integers (default).
	CompareNumeric CompareMode = iota
	// CompareDuration orders keys as clock durations such as 01:02:03.250.
	CompareDuration
)

// String returns the string representation of CompareMode.
func (m CompareMode) String() string {
	switch m {
	case CompareNumeric:
		return "numeric"
	case CompareDuration:
		return "duration"
	default:
		return fmt.Sprintf("CompareMode(%d)", m)
	}
}

// ParseCompareMode parses "numeric" or "duration" (also "time").
func ParseCompareMode(s string) (CompareMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "numeric", "number", "int":
		return CompareNumeric, nil
	case "duration", "time":
		return CompareDuration, nil
	}
	return 0, &OptionsError{Field: "Compare", Message: fmt.Sprintf("unknown compare mode %q", s)}
}

// Config configures a Merger. It is copied by New and never mutated afterwards.
type Config struct {
	// Delimiter separates fields in both inputs and in the output.
	// Default: ','
	Delimiter rune

	// Quoting enables quote-aware splitting with backslash escapes.
	// It is forced off when Delimiter is '"' or '\'.
	// Default: true
	Quoting bool

	// Compare selects the key comparison strategy.
	// Default: CompareNumeric
	Compare CompareMode

	// DropEmpty discards unmatched lines instead of emitting them padded.
	// Default: false
	DropEmpty bool

	// Header is the number of leading lines copied from the left input and
	// skipped on both sides without comparison.
	// Default: 0
	Header int

	// Key is the zero-based index of the key field.
	// Default: 0
	Key int
}

// DefaultConfig returns the default merge configuration.
func DefaultConfig() Config {
	return Config{
		Delimiter: ',',
		Quoting:   true,
		Compare:   CompareNumeric,
		DropEmpty: false,
		Header:    0,
		Key:       0,
	}
}

// validDelim reports whether r is a valid field delimiter.
func validDelim(r rune) bool {
	return r != 0 && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if !validDelim(c.Delimiter) {
		return &OptionsError{Field: "Delimiter", Message: fmt.Sprintf("invalid delimiter %q", c.Delimiter)}
	}
	if c.Header < 0 {
		return &OptionsError{Field: "Header", Message: "must not be negative"}
	}
	if c.Key < 0 {
		return &OptionsError{Field: "Key", Message: "must not be negative"}
	}
	if c.Compare != CompareNumeric && c.Compare != CompareDuration {
		return &OptionsError{Field: "Compare", Message: "unknown compare mode " + c.Compare.String()}
	}
	return nil
}

// Comparator returns the comparison strategy selected by Compare.
func (c Config) Comparator() Comparator {
	if c.Compare == CompareDuration {
		return DurationComparator{}
	}
	return NumericComparator{}
}

// fieldOptions returns the splitting options. Quoting is off for a '"' or '\'
// delimiter.
func (c Config) fieldOptions() fields.Options {
	return fields.NewOptions(c.Delimiter, c.Quoting)
}

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "merge: invalid " + e.Field + ": " + e.Message
}
