// Package dialect detects the delimiter and header row of a delimited sample.
package dialect

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shapestone/csvmerge/internal/fields"
)

// Candidates are the delimiters DetectDelimiter chooses from, in tie-break order.
var Candidates = []rune{',', '\t', ';', '|'}

var (
	headerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`),      // snake_case or identifier
		regexp.MustCompile(`^[a-zA-Z]+[A-Z][a-zA-Z]*$`),     // camelCase
		regexp.MustCompile(`^[A-Z][a-z]+([ ][A-Z][a-z]+)*$`), // Title Case
	}
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
		regexp.MustCompile(`^\d+:\d{2}(:\d{2}(\.\d+)?)?$`),
	}
)

// Sniffer detects the dialect of a sample of lines.
type Sniffer struct {
	lines     []string
	delimiter rune
	hasHeader bool
	analyzed  bool
}

// NewSniffer creates a Sniffer for sample. Empty lines in the sample are ignored.
// For best results, provide at least 2-3 complete lines.
func NewSniffer(sample string) *Sniffer {
	var lines []string
	for _, line := range strings.Split(sample, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return &Sniffer{lines: lines}
}

// analyze performs dialect detection on the sample.
func (s *Sniffer) analyze() {
	if s.analyzed {
		return
	}
	s.delimiter = s.detectDelimiter()
	s.hasHeader = s.detectHeader()
	s.analyzed = true
}

// DetectDelimiter returns the detected field delimiter, ',' when the sample
// gives no evidence.
func (s *Sniffer) DetectDelimiter() rune {
	s.analyze()
	return s.delimiter
}

// HasHeader reports whether the first line looks like column names.
func (s *Sniffer) HasHeader() bool {
	s.analyze()
	return s.hasHeader
}

// detectDelimiter scores each candidate by its separator count on the first
// line, with a bonus when every line has the same count.
func (s *Sniffer) detectDelimiter() rune {
	best := Candidates[0]
	bestScore := 0

	for _, delim := range Candidates {
		opts := fields.NewOptions(delim, true)
		score := 0
		if len(s.lines) > 0 {
			first := fields.CountSeparators(s.lines[0], opts)
			consistent := true
			for _, line := range s.lines[1:] {
				if fields.CountSeparators(line, opts) != first {
					consistent = false
					break
				}
			}
			score = first
			if consistent {
				score *= 10
			}
		}
		if score > bestScore {
			best = delim
			bestScore = score
		}
	}

	return best
}

// detectHeader compares how header-like and data-like the first line is.
func (s *Sniffer) detectHeader() bool {
	if len(s.lines) < 2 {
		return false
	}

	opts := fields.NewOptions(s.delimiter, true)
	headerScore := 0
	dataScore := 0

	for _, field := range fields.Split(s.lines[0], opts) {
		field = strings.TrimSpace(fields.Unquote(field, opts))
		if isLikelyHeader(field) {
			headerScore++
		}
		if isLikelyData(field) {
			dataScore++
		}
	}

	return headerScore > dataScore
}

// isLikelyHeader checks if a field looks like a column name.
func isLikelyHeader(s string) bool {
	if s == "" || isNumeric(s) {
		return false
	}
	for _, pattern := range headerPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// isLikelyData checks if a field looks like a value rather than a column name.
func isLikelyData(s string) bool {
	if s == "" {
		return false
	}
	if isNumeric(s) || strings.Contains(s, "@") {
		return true
	}
	for _, pattern := range datePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// isNumeric checks if a string represents a decimal number.
func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	// Allow leading sign
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}

	hasDot := false
	for _, ch := range s {
		if ch == '.' {
			if hasDot {
				return false
			}
			hasDot = true
		} else if !unicode.IsDigit(ch) {
			return false
		}
	}

	return len(s) > 0
}
