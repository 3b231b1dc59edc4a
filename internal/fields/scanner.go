package fields

import (
	"github.com/shapestone/csvmerge/internal/tokenizer"
)

// charClass represents the character classes the boundary scanner reacts to.
type charClass uint8

const (
	classOther     charClass = iota // everything else
	classDelimiter                  // configured delimiter
	classQuote                      // "
	classBackslash                  // \
)

// scanner is the (in-quote × escaped) automaton that decides field
// boundaries. Split and CountSeparators both drive the same scanner, so they
// agree on every boundary.
//
// Transitions in quoted mode:
//
//	backslash            escaped = !escaped
//	any, escaped         escaped = false
//	quote, in quote      leave quoted span
//	quote                enter quoted span
//	delimiter            boundary when not in a quoted span
//
// In raw mode only the delimiter is significant and it is always a boundary.
type scanner struct {
	quoting bool
	inQuote bool
	escaped bool
}

func newScanner(quoting bool) scanner {
	return scanner{quoting: quoting}
}

// step feeds one character class and reports whether it is a field boundary.
//
// A run of classOther characters may be fed as a single step: after the first
// one the scanner is never escaped, and further classOther steps are no-ops.
func (s *scanner) step(c charClass) bool {
	if !s.quoting {
		return c == classDelimiter
	}
	if c == classBackslash {
		s.escaped = !s.escaped
		return false
	}
	if s.escaped {
		s.escaped = false
		return false
	}
	if s.inQuote {
		if c == classQuote {
			s.inQuote = false
		}
		return false
	}
	switch c {
	case classQuote:
		s.inQuote = true
		return false
	case classDelimiter:
		return true
	}
	return false
}

// classify maps a rune to its class under opts.
func classify(r rune, opts Options) charClass {
	switch {
	case r == opts.Delimiter:
		return classDelimiter
	case !opts.Quoting:
		return classOther
	case r == '"':
		return classQuote
	case r == '\\':
		return classBackslash
	}
	return classOther
}

// tokenClass maps a line token to its class.
func tokenClass(kind string) charClass {
	switch kind {
	case tokenizer.TokenDelimiter:
		return classDelimiter
	case tokenizer.TokenQuote:
		return classQuote
	case tokenizer.TokenBackslash:
		return classBackslash
	}
	return classOther
}
