// Package generr defines the generator's error taxonomy. Fatal errors abort
// the whole run; warnings are printed and absorbed at the point of detection.
package generr

import (
	"errors"
	"fmt"
)

// Phase identifies the pipeline stage an error belongs to.
type Phase string

const (
	PhaseDump     Phase = "dump"
	PhaseLoad     Phase = "load"
	PhaseIndex    Phase = "index"
	PhaseClassify Phase = "classify"
	PhaseEmit     Phase = "emit"
	PhaseWrite    Phase = "write"
	PhaseFormat   Phase = "format"
	PhaseActivate Phase = "activate"
)

// Severity represents how an error affects the run.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Fatal
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// GenerationError is an error tagged with the pipeline phase, the schema
// version being processed, and a severity that decides the exit status.
type GenerationError struct {
	Phase    Phase
	Version  string // schema version being processed, empty for run-level errors
	Severity Severity
	Message  string
	Err      error // wrapped cause, may be nil
}

// Error implements the error interface
func (e *GenerationError) Error() string {
	prefix := string(e.Phase)
	if e.Version != "" {
		prefix = fmt.Sprintf("%s [%s]", e.Phase, e.Version)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the wrapped cause.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Fatalf creates a fatal GenerationError.
func Fatalf(phase Phase, version string, format string, args ...interface{}) *GenerationError {
	return &GenerationError{
		Phase:    phase,
		Version:  version,
		Severity: Fatal,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Wrap attaches phase and version context to an underlying fatal error.
func Wrap(phase Phase, version string, err error, message string) *GenerationError {
	return &GenerationError{
		Phase:    phase,
		Version:  version,
		Severity: Fatal,
		Message:  message,
		Err:      err,
	}
}

// Warnf creates a best-effort warning that must not abort the run.
func Warnf(phase Phase, version string, format string, args ...interface{}) *GenerationError {
	return &GenerationError{
		Phase:    phase,
		Version:  version,
		Severity: Warning,
		Message:  fmt.Sprintf(format, args...),
	}
}

// IsFatal reports whether err carries a fatal severity. Plain errors from
// outside the taxonomy are treated as fatal: nothing in the pipeline absorbs
// an error it does not recognize.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Severity == Fatal
	}
	return true
}
