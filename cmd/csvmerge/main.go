// Command csvmerge merges two sorted delimited files on a key field.
//
//	csvmerge [flags] <left-file> <right-file> [<output-file>]
//
// Output goes to stdout when no output file is given. Either input (not both)
// may be "-" for stdin. Every flag can also be set through a CSVMERGE_<FLAG>
// environment variable (dashes become underscores) or a --config file.
//
// Exit codes: 0 on success, 1 when the merge fails, 2 on usage errors.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const version = "0.2.0"

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and maps its error to an exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdin, stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(stderr, "csvmerge: %v\n", err)
	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprint(stderr, cmd.UsageString())
		return exitUsage
	}
	return exitFail
}

// usageError marks invalid arguments or flags.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}
