// Package merge joins two sorted, delimited line streams into one.
//
// Both inputs must be ordered by the same key field. The merger walks them
// like the merge phase of a merge sort: lines whose keys compare equal are
// joined into one output line, and a line without a counterpart is emitted
// on its own with empty columns standing in for the missing side.
//
// # Output
//
// For a comma delimiter and numeric keys in the first field:
//
//	left:  1,a      right:  1,x
//	       3,c              2,y
//
//	output: 1,a,1,x
//	        ,,2,y
//	        3,c,,
//
// With Config.DropEmpty set only the joined line is written.
//
// # Ordering rules
//
//   - A left line starting with '"' is joined with the current right line
//     without comparing keys.
//   - A line with no field at index Config.Key (or an empty line) has no
//     key and sorts after any keyed line. Two keyless lines are joined.
//   - Keys that the comparison strategy cannot parse abort the merge with a
//     *KeyError.
//
// # Resources
//
// Merge reads one line per side at a time and writes output incrementally,
// so memory use is bounded by the longest line. A Merger holds no mutable
// state and may be reused, but one Merge call owns its readers and writer.
package merge

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shapestone/csvmerge/internal/fields"
)

// Decision is the outcome of one merge round.
type Decision int

const (
	// Join writes both lines as one and advances both inputs.
	Join Decision = iota
	// LeftOnly writes the left line padded and advances the left input.
	LeftOnly
	// RightOnly writes the right line padded and advances the right input.
	RightOnly
)

// String returns the string representation of Decision.
func (d Decision) String() string {
	switch d {
	case Join:
		return "join"
	case LeftOnly:
		return "left-only"
	case RightOnly:
		return "right-only"
	default:
		return fmt.Sprintf("Decision(%d)", d)
	}
}

// Stats counts the lines handled by one Merge call.
type Stats struct {
	// Header is the number of header lines copied.
	Header int
	// Joined is the number of joined output lines.
	Joined int
	// LeftOnly and RightOnly count unmatched lines, including dropped ones.
	LeftOnly  int
	RightOnly int
	// Dropped is the number of unmatched lines discarded by DropEmpty.
	Dropped int
}

// Written returns the number of lines written to the output.
func (s Stats) Written() int {
	return s.Header + s.Joined + s.LeftOnly + s.RightOnly - s.Dropped
}

// Merger merges two sorted line streams according to a Config.
type Merger struct {
	cfg  Config
	opts fields.Options
	cmp  Comparator
}

// New returns a Merger for cfg. It fails with an *OptionsError if cfg is invalid.
func New(cfg Config) (*Merger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Merger{
		cfg:  cfg,
		opts: cfg.fieldOptions(),
		cmp:  cfg.Comparator(),
	}, nil
}

// Config returns the configuration of m.
func (m *Merger) Config() Config {
	return m.cfg
}

// MergeReaders wraps left and right with NewLineReader and calls Merge.
func (m *Merger) MergeReaders(left, right io.Reader, out io.Writer) (Stats, error) {
	return m.Merge(NewLineReader(left), NewLineReader(right), out)
}

// Merge reads both inputs to the end and writes the merged lines to out.
//
// The first error aborts the merge. Lines already written stay written; the
// returned Stats describe them.
func (m *Merger) Merge(left, right LineReader, out io.Writer) (Stats, error) {
	w := &lineWriter{w: bufio.NewWriter(out)}
	stats, err := m.run(newCursor(Left, left, m.opts), newCursor(Right, right, m.opts), w)
	if ferr := w.w.Flush(); ferr != nil && err == nil {
		err = &IOError{Side: Output, Op: "flush", Err: ferr}
	}
	return stats, err
}

func (m *Merger) run(l, r *cursor, w *lineWriter) (Stats, error) {
	var stats Stats

	// Prime
	if err := l.advance(); err != nil {
		return stats, err
	}
	if err := r.advance(); err != nil {
		return stats, err
	}

	// Header: copy left, skip right.
	for i := 0; i < m.cfg.Header && !l.eof && !r.eof; i++ {
		if err := w.writeLine(l.line); err != nil {
			return stats, err
		}
		stats.Header++
		if err := advanceBoth(l, r); err != nil {
			return stats, err
		}
	}

	for !l.eof && !r.eof {
		d, err := m.decide(l, r)
		if err != nil {
			return stats, err
		}
		switch d {
		case Join:
			if err := w.writeLine(l.line, string(m.opts.Delimiter), r.line); err != nil {
				return stats, err
			}
			stats.Joined++
			err = advanceBoth(l, r)
		case LeftOnly:
			if err := m.writeLeftOnly(w, l, r, &stats); err != nil {
				return stats, err
			}
			err = l.advance()
		case RightOnly:
			if err := m.writeRightOnly(w, l, r, &stats); err != nil {
				return stats, err
			}
			err = r.advance()
		}
		if err != nil {
			return stats, err
		}
	}

	// Drain whichever side is left over.
	for !l.eof {
		if err := m.writeLeftOnly(w, l, r, &stats); err != nil {
			return stats, err
		}
		if err := l.advance(); err != nil {
			return stats, err
		}
	}
	for !r.eof {
		if err := m.writeRightOnly(w, l, r, &stats); err != nil {
			return stats, err
		}
		if err := r.advance(); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

func advanceBoth(l, r *cursor) error {
	if err := l.advance(); err != nil {
		return err
	}
	return r.advance()
}

func (m *Merger) writeLeftOnly(w *lineWriter, l, r *cursor, stats *Stats) error {
	stats.LeftOnly++
	if m.cfg.DropEmpty {
		stats.Dropped++
		return nil
	}
	return w.writeLine(l.line, r.padding())
}

func (m *Merger) writeRightOnly(w *lineWriter, l, r *cursor, stats *Stats) error {
	stats.RightOnly++
	if m.cfg.DropEmpty {
		stats.Dropped++
		return nil
	}
	return w.writeLine(l.padding(), r.line)
}

// decide chooses the action for the current pair of lines.
func (m *Merger) decide(l, r *cursor) (Decision, error) {
	if strings.HasPrefix(l.line, `"`) {
		return Join, nil
	}

	lkey, lok := m.key(l.line)
	rkey, rok := m.key(r.line)
	switch {
	case !lok && !rok:
		return Join, nil
	case !lok:
		return RightOnly, nil
	case !rok:
		return LeftOnly, nil
	}

	c, err := m.cmp.Compare(lkey, rkey)
	if err != nil {
		return 0, m.keyError(l, r, lkey, err)
	}
	switch {
	case c < 0:
		return LeftOnly, nil
	case c > 0:
		return RightOnly, nil
	}
	return Join, nil
}

// key extracts the key field of line. It reports false for a line that has
// no key: an empty line, or one with too few fields.
func (m *Merger) key(line string) (string, bool) {
	if line == "" {
		return "", false
	}
	fs := fields.Split(line, m.opts)
	if len(fs) <= m.cfg.Key {
		return "", false
	}
	return fields.Unquote(fs[m.cfg.Key], m.opts), true
}

func (m *Merger) keyError(l, r *cursor, lkey string, err error) error {
	kerr := &KeyError{Side: Left, Line: l.lineNo, Field: lkey, Err: err}
	var perr *keyParseError
	if errors.As(err, &perr) {
		kerr.Field = perr.key
		kerr.Err = perr.err
		if perr.side == Right {
			kerr.Side = Right
			kerr.Line = r.lineNo
		}
	}
	return kerr
}

// lineWriter writes newline-terminated output lines and numbers them for errors.
type lineWriter struct {
	w     *bufio.Writer
	lines int
}

func (lw *lineWriter) writeLine(parts ...string) error {
	lw.lines++
	for _, p := range parts {
		if _, err := lw.w.WriteString(p); err != nil {
			return &IOError{Side: Output, Op: "write", Line: lw.lines, Err: err}
		}
	}
	if err := lw.w.WriteByte('\n'); err != nil {
		return &IOError{Side: Output, Op: "write", Line: lw.lines, Err: err}
	}
	return nil
}
