// Package errs holds the error taxonomy shared by readers, the pipeline and
// the entry points. Callers classify with errors.Is; exit codes are derived
// in one place.
package errs

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrConfig: invalid flag or argument combination, detected before any
	// stream is opened.
	ErrConfig = errors.New("configuration error")
	// ErrIO: an input could not be opened or an output sink could not be
	// created or written.
	ErrIO = errors.New("i/o error")
	// ErrDecode: the compressed container or the 4-line record framing is
	// corrupt or truncated.
	ErrDecode = errors.New("decode error")
	// ErrMalformed: a record violates a structural invariant (sequence and
	// quality lengths differ, or a barcode record is shorter than the
	// configured extraction).
	ErrMalformed = errors.New("malformed record")
	// ErrMisaligned: a companion stream ended before the primary stream
	// while strict alignment was requested.
	ErrMisaligned = errors.New("streams misaligned")
)

// Code is a short classification used in log fields.
type Code string

const (
	CodeUnknown    Code = "unknown"
	CodeConfig     Code = "config"
	CodeIO         Code = "io"
	CodeDecode     Code = "decode"
	CodeMalformed  Code = "malformed"
	CodeMisaligned Code = "misaligned"
	CodeCancel     Code = "cancel"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitUsage     = 2
	ExitRuntime   = 3
	ExitInterrupt = 130
)

// Configf returns an ErrConfig with a formatted message.
func Configf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, a...))
}

// RecordError locates a failure inside a stream.
// Record is 1-based; 0 means the failure is not tied to a record
// (for example opening the file).
type RecordError struct {
	Path   string
	Record int
	Kind   error
	Err    error
}

func (e *RecordError) Error() string {
	path := e.Path
	if path == "" {
		path = "<stream>"
	}
	if e.Err != nil && errors.Is(e.Err, e.Kind) {
		if e.Record > 0 {
			return fmt.Sprintf("%s: record %d: %v", path, e.Record, e.Err)
		}
		return fmt.Sprintf("%s: %v", path, e.Err)
	}
	switch {
	case e.Record > 0 && e.Err != nil:
		return fmt.Sprintf("%s: record %d: %v: %v", path, e.Record, e.Kind, e.Err)
	case e.Record > 0:
		return fmt.Sprintf("%s: record %d: %v", path, e.Record, e.Kind)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v: %v", path, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %v", path, e.Kind)
	}
}

// Unwrap exposes both the taxonomy sentinel and the underlying cause.
func (e *RecordError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// At builds a *RecordError of the given kind.
func At(kind error, path string, record int, cause error) error {
	return &RecordError{Path: path, Record: record, Kind: kind, Err: cause}
}

// Classify returns the log code for err.
func Classify(err error) Code {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCancel
	case errors.Is(err, ErrConfig):
		return CodeConfig
	case errors.Is(err, ErrMalformed):
		return CodeMalformed
	case errors.Is(err, ErrDecode):
		return CodeDecode
	case errors.Is(err, ErrMisaligned):
		return CodeMisaligned
	case errors.Is(err, ErrIO):
		return CodeIO
	default:
		return CodeUnknown
	}
}

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	switch Classify(err) {
	case "":
		return ExitOK
	case CodeConfig:
		return ExitUsage
	case CodeCancel:
		return ExitInterrupt
	default:
		return ExitRuntime
	}
}
