// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"bprna/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitNoResult = 1 // nothing to evaluate
	ExitUsage    = 2 // bad flags, arguments, input file or label
	ExitOutput   = 3 // writing results failed
	ExitCanceled = 130
)

// exitError carries the process exit code for an error returned by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// outputErr classifies a writer error: broken pipes are not failures.
func outputErr(err error) error {
	if err == nil || writers.IsBrokenPipe(err) {
		return nil
	}
	return withCode(ExitOutput, err)
}

// RunContext executes one command line and returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	e := &env{stdout: stdout, out: outw, stderr: stderr}
	root := newRootCmd(e)
	if argv == nil {
		argv = []string{} // nil makes cobra fall back to os.Args
	}
	root.SetArgs(argv)
	root.SetOut(outw)
	root.SetErr(stderr)

	err := root.ExecuteContext(parent)

	code := ExitOK
	var xe *exitError
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		code = ExitCanceled
	case errors.As(err, &xe):
		code = xe.code
		if code == ExitNoResult {
			e.logger().Warn(err.Error())
		} else {
			_, _ = fmt.Fprintln(stderr, "error:", err)
		}
	default:
		// flag and argument errors raised by cobra before a command runs
		_, _ = fmt.Fprintln(stderr, "error:", err)
		_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.CommandPath())
		code = ExitUsage
	}

	if ferr := outw.Flush(); writers.IsBrokenPipe(ferr) {
		return code
	} else if ferr != nil {
		_, _ = fmt.Fprintln(stderr, ferr)
		return ExitOutput
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
