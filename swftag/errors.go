package swftag

import (
	"errors"
	"fmt"

	"github.com/npillmayer/swf/swfio"
)

// ErrorSeverity represents the severity level of a tag decoding error.
type ErrorSeverity int

const (
	// SeverityCritical indicates malformed tag data, the tag's content is lost.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates truncated tag data, the tag's content is lost.
	SeverityMajor
	// SeverityMinor indicates an issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// DecodeError represents an error encountered while decoding a tag.
// Errors are accumulated during parsing and can be inspected after parsing completes.
type DecodeError struct {
	Tag      Kind          // kind of the tag that failed to decode
	Section  string        // part of the tag (e.g., "Shape", "FilterList")
	Issue    string        // human-readable description of the issue
	Severity ErrorSeverity // severity level of the error
	Offset   int64         // absolute offset of the tag header (0 if unknown)
}

// Error implements the error interface.
func (e DecodeError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s/%s at offset %d: %s", e.Severity, e.Tag, e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Tag, e.Section, e.Issue)
}

// Warning represents a non-critical issue encountered during parsing.
type Warning struct {
	Tag    Kind   // kind of the tag the warning refers to
	Issue  string // human-readable description of the warning
	Offset int64  // absolute offset (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Tag, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Tag, w.Issue)
}

// errorCollector accumulates errors and warnings during parsing.
type errorCollector struct {
	errors   []DecodeError
	warnings []Warning
}

func (ec *errorCollector) addError(tag Kind, section string, issue string, severity ErrorSeverity, offset int64) {
	ec.errors = append(ec.errors, DecodeError{
		Tag:      tag,
		Section:  section,
		Issue:    issue,
		Severity: severity,
		Offset:   offset,
	})
}

func (ec *errorCollector) addWarning(tag Kind, issue string, offset int64) {
	ec.warnings = append(ec.warnings, Warning{
		Tag:    tag,
		Issue:  issue,
		Offset: offset,
	})
}

// addDecodeFailure records the failure of a tag decoder. Format errors are
// critical, anything else (mostly truncated content) is major.
func (ec *errorCollector) addDecodeFailure(h TagHeader, offset int64, err error) DecodeError {
	severity := SeverityMajor
	if swfio.IsFormatError(err) {
		severity = SeverityCritical
	}
	section := "Content"
	var se sectionError
	if errors.As(err, &se) {
		section = se.section
	}
	ec.addError(h.Kind, section, err.Error(), severity, offset)
	return ec.errors[len(ec.errors)-1]
}

func (ec *errorCollector) hasErrors() bool {
	return len(ec.errors) > 0
}

func (ec *errorCollector) hasWarnings() bool {
	return len(ec.warnings) > 0
}

// criticalErrors returns all errors with critical severity.
func (ec *errorCollector) criticalErrors() []DecodeError {
	critical := make([]DecodeError, 0)
	for _, err := range ec.errors {
		if err.Severity == SeverityCritical {
			critical = append(critical, err)
		}
	}
	return critical
}

func (ec *errorCollector) hasCriticalErrors() bool {
	for _, err := range ec.errors {
		if err.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// sectionError names the part of a tag a decoder failed in.
type sectionError struct {
	section string
	err     error
}

func (e sectionError) Error() string {
	return e.section + ": " + e.err.Error()
}

func (e sectionError) Unwrap() error {
	return e.err
}

// inSection wraps a decoder error with the name of the tag section it occurred in.
func inSection(section string, err error) error {
	if err == nil {
		return nil
	}
	return sectionError{section: section, err: err}
}
