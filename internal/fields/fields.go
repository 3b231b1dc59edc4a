// Package fields splits delimited lines into fields and counts separators.
//
// Quoted mode honours double-quoted spans and backslash escapes; raw mode
// treats every delimiter as a field boundary. Field values are returned as
// they appear in the line: quotes and backslashes are kept.
package fields

import (
	"strings"
	"unicode/utf8"

	"github.com/shapestone/csvmerge/internal/tokenizer"
)

// Options configures field splitting.
type Options struct {
	// Delimiter is the field separator. Default: ','
	Delimiter rune
	// Quoting enables quote-aware splitting with backslash escapes. Default: true
	Quoting bool
}

// DefaultOptions returns comma-delimited, quote-aware options.
func DefaultOptions() Options {
	return Options{
		Delimiter: ',',
		Quoting:   true,
	}
}

// NewOptions returns options for delimiter. Quoting is forced off when the
// delimiter is the quote or escape character.
func NewOptions(delimiter rune, quoting bool) Options {
	if delimiter == '"' || delimiter == '\\' {
		quoting = false
	}
	return Options{Delimiter: delimiter, Quoting: quoting}
}

func (o Options) tokenizerOptions() tokenizer.Options {
	return tokenizer.Options{Delimiter: o.Delimiter, Quoting: o.Quoting}
}

// Split splits line into fields. An empty line yields a single empty field.
// An unterminated quote makes the rest of the line part of the last field.
//
// Fields are byte-exact substrings of line, so joining them with the
// delimiter gives line back, invalid UTF-8 included.
func Split(line string, opts Options) []string {
	fields := make([]string, 0, 8)
	if line == "" {
		return append(fields, "")
	}
	if !utf8.ValidString(line) {
		// The tokenizer decodes runes and would turn invalid bytes into U+FFFD.
		return splitBytes(fields, line, opts)
	}

	tok := tokenizer.NewLineTokenizer(line, opts.tokenizerOptions())
	sc := newScanner(opts.Quoting)

	var current strings.Builder
	for {
		token, ok := tok.NextToken()
		if !ok {
			break
		}
		if sc.step(tokenClass(token.Kind())) {
			fields = append(fields, current.String())
			current.Reset()
			continue
		}
		current.WriteString(token.ValueString())
	}

	// Don't forget the last field
	return append(fields, current.String())
}

// splitBytes cuts line at the boundaries found by the scanner, slicing by
// byte offset.
func splitBytes(fields []string, line string, opts Options) []string {
	sc := newScanner(opts.Quoting)
	start := 0
	for i, r := range line {
		if sc.step(classify(r, opts)) {
			fields = append(fields, line[start:i])
			start = i + utf8.RuneLen(r)
		}
	}
	return append(fields, line[start:])
}

// CountSeparators returns the number of field boundaries in line. It always
// equals len(Split(line, opts))-1 but does not build the fields.
func CountSeparators(line string, opts Options) int {
	sc := newScanner(opts.Quoting)
	count := 0
	for _, r := range line {
		if sc.step(classify(r, opts)) {
			count++
		}
	}
	return count
}

// Padding returns n repetitions of the delimiter.
func Padding(n int, opts Options) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(string(opts.Delimiter), n)
}

// Unquote strips quoting from a single field: unescaped double quotes are
// removed and a backslash yields the following character literally. In raw
// mode the field is returned unchanged.
func Unquote(field string, opts Options) string {
	if !opts.Quoting || !strings.ContainsAny(field, `"\`) {
		return field
	}

	var sb strings.Builder
	sb.Grow(len(field))
	escaped := false
	for _, r := range field {
		switch {
		case escaped:
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
