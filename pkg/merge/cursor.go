package merge

import (
	"errors"
	"io"

	"github.com/shapestone/csvmerge/internal/fields"
)

// cursor is the read position in one input. It holds only the current line.
type cursor struct {
	side Side
	src  LineReader
	opts fields.Options

	line   string
	eof    bool
	lineNo int // 1-indexed number of line; 0 before the first read
	seps   int // separator count of the most recently read line
}

func newCursor(side Side, src LineReader, opts fields.Options) *cursor {
	return &cursor{side: side, src: src, opts: opts}
}

// advance replaces the current line with the next one. At end of input the
// cursor is marked eof and seps keeps the count of the last line read.
func (c *cursor) advance() error {
	if c.eof {
		return nil
	}
	line, err := c.src.ReadLine()
	if errors.Is(err, io.EOF) {
		c.line = ""
		c.eof = true
		return nil
	}
	if err != nil {
		return &IOError{Side: c.side, Op: "read", Line: c.lineNo + 1, Err: err}
	}
	c.line = line
	c.lineNo++
	c.seps = fields.CountSeparators(line, c.opts)
	return nil
}

// padding returns the empty columns that stand in for this side in an
// unmatched row: one delimiter per column of its latest line.
func (c *cursor) padding() string {
	return fields.Padding(c.seps+1, c.opts)
}
