package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"cfastq/internal/errs"
)

// RunFunc is an entry point: argv without the program name, output
// streams, and the process exit code as result.
type RunFunc func(context.Context, []string, io.Writer, io.Writer) int

// Main runs a cfastq entry point with SIGINT/SIGTERM cancelling its context
// and exits with the code it returns. SIGPIPE is ignored so a closed stdout
// surfaces as EPIPE from Write and the run can end with exit 0.
func Main(run RunFunc) {
	signal.Ignore(syscall.SIGPIPE)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := Run(ctx, run, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// Run calls run with argv unchanged (an empty argv is a usage error, not a
// help request) and normalizes the exit code.
func Run(ctx context.Context, run RunFunc, argv []string, stdout, stderr io.Writer) int {
	return normalize(ctx, run(ctx, argv, stdout, stderr))
}

// normalize maps a run that was interrupted but reported success to 130.
func normalize(ctx context.Context, code int) int {
	if ctx.Err() != nil && code == errs.ExitOK {
		return errs.ExitInterrupt
	}
	return code
}
