// Package appshell wraps a command runner with signal handling and process exit.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main runs run with os.Args and exits with its code.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	os.Exit(Exec(run, os.Args[1:], os.Stdout, os.Stderr))
}

// Exec is Main without the process exit. SIGINT and SIGTERM cancel the
// context; a run that is cut short exits 130 even if it reported success.
func Exec(run func(context.Context, []string, io.Writer, io.Writer) int, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
