package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/shapestone/csvmerge/pkg/merge"
)

// sampleSize is how much of the left input the dialect sniffer sees.
const sampleSize = 64 * 1024

// inputs holds the opened left and right streams.
type inputs struct {
	left    *bufio.Reader
	right   io.Reader
	closers []io.Closer
}

func openInputs(left, right string, stdin io.Reader) (*inputs, error) {
	in := &inputs{}
	l, err := in.open(left, stdin)
	if err != nil {
		in.Close()
		return nil, err
	}
	r, err := in.open(right, stdin)
	if err != nil {
		in.Close()
		return nil, err
	}
	in.left = bufio.NewReaderSize(l, sampleSize)
	in.right = r
	return in, nil
}

func (in *inputs) open(path string, stdin io.Reader) (io.Reader, error) {
	if path == "-" {
		return stdin, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	in.closers = append(in.closers, f)
	return f, nil
}

// sample returns the complete lines at the start of the left input without
// consuming them.
func (in *inputs) sample() (string, error) {
	buf, err := in.left.Peek(sampleSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", &merge.IOError{Side: merge.Left, Op: "read", Line: 1, Err: err}
	}
	if len(buf) == sampleSize {
		if i := bytes.LastIndexByte(buf, '\n'); i >= 0 {
			buf = buf[:i]
		}
	}
	return string(buf), nil
}

func (in *inputs) Close() {
	for _, c := range in.closers {
		_ = c.Close()
	}
	in.closers = nil
}

// nopWriteCloser keeps stdout open after the merge.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return f, nil
}

// newLogger returns a JSON logger on w tagged with a fresh run id.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, ok := logLevels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return nil, usagef("invalid --log-level %q", level)
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h).With("run_id", uuid.NewString(), "comp", "csvmerge"), nil
}

// classify names the failure category for the error log line.
func classify(err error) string {
	var (
		kerr *merge.KeyError
		ierr *merge.IOError
	)
	switch {
	case errors.As(err, &kerr):
		return "malformed_key"
	case errors.As(err, &ierr):
		return "io_" + ierr.Op
	case errors.Is(err, os.ErrNotExist):
		return "not_found"
	default:
		return "io"
	}
}
