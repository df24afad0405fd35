package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat marks malformed file names, dates, or file contents.
	ErrFormat = errors.New("format error")

	// ErrEmptyDirectory is returned when there are no files to scan.
	ErrEmptyDirectory = errors.New("directory is empty")

	// ErrNoMatch is returned when no file in a listing could be decoded.
	ErrNoMatch = errors.New("no matching forecast file")
)

// FormatError describes where and why input could not be interpreted.
// It matches ErrFormat under errors.Is.
type FormatError struct {
	Source string // file name or path
	Line   int    // 1-based line number, 0 when not line-oriented
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := e.Reason
	if e.Line > 0 {
		msg = fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Reason)
	} else if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is reports ErrFormat as a match so callers need not know the concrete type.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// NewFormatError builds a FormatError without position information.
func NewFormatError(source, reason string, err error) *FormatError {
	return &FormatError{Source: source, Reason: reason, Err: err}
}
