package swfio

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnexpectedEOF is returned when the underlying source is exhausted before a
// read could be satisfied. It wraps io.ErrUnexpectedEOF.
var ErrUnexpectedEOF = fmt.Errorf("SWF data truncated: %w", io.ErrUnexpectedEOF)

// FormatError flags data which violates the SWF format in a way that makes the
// remainder of a structure undecodable.
type FormatError struct {
	Offset int64  // absolute byte offset, -1 if unknown
	Msg    string // what went wrong
}

func (e *FormatError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("SWF format: %s (at offset %d)", e.Msg, e.Offset)
	}
	return "SWF format: " + e.Msg
}

// NewFormatError creates a FormatError for a position within the source.
func NewFormatError(offset int64, format string, args ...any) error {
	return &FormatError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func errFormat(msg string) error {
	return &FormatError{Offset: -1, Msg: msg}
}

// IsFormatError reports whether err is or wraps a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsEOF reports whether err signals truncated input.
func IsEOF(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}

func errTruncated(pos int64, want int) error {
	return fmt.Errorf("reading %d byte(s) at offset %d: %w", want, pos, ErrUnexpectedEOF)
}
