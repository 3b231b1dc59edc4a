package merge

import (
	"bufio"
	"io"
	"strings"
)

// LineReader is a source of lines without their terminators. ReadLine
// returns io.EOF, and no line, once the source is exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

// lineReader reads '\n'-terminated lines from a buffered reader.
type lineReader struct {
	r *bufio.Reader
}

// NewLineReader returns a LineReader over r. A final line without a
// terminator is returned as a regular line. Memory use is bounded by the
// longest line.
func NewLineReader(r io.Reader) LineReader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &lineReader{r: br}
}

// ReadLine implements LineReader.
func (lr *lineReader) ReadLine() (string, error) {
	line, err := lr.r.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", io.EOF
		}
		return line, nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}
