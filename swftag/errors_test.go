package swftag

import (
	"errors"
	"io"
	"testing"

	"github.com/npillmayer/swf/swfio"
)

// TestErrorSeverity verifies the ErrorSeverity String() method.
func TestErrorSeverity(t *testing.T) {
	tests := []struct {
		severity ErrorSeverity
		expected string
	}{
		{SeverityCritical, "CRITICAL"},
		{SeverityMajor, "MAJOR"},
		{SeverityMinor, "MINOR"},
		{ErrorSeverity(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.severity.String()
		if result != tt.expected {
			t.Errorf("ErrorSeverity(%d).String() = %q; want %q", tt.severity, result, tt.expected)
		}
	}
}

// TestDecodeError verifies DecodeError formatting.
func TestDecodeError(t *testing.T) {
	tests := []struct {
		name     string
		err      DecodeError
		expected string
	}{
		{
			name: "Error with offset",
			err: DecodeError{
				Tag:      TagDefineShape3,
				Section:  "Shape",
				Issue:    "unknown fill style type 0x33",
				Severity: SeverityCritical,
				Offset:   1234,
			},
			expected: "[CRITICAL] DefineShape3/Shape at offset 1234: unknown fill style type 0x33",
		},
		{
			name: "Error without offset",
			err: DecodeError{
				Tag:      TagPlaceObject2,
				Section:  "Content",
				Issue:    "SWF data truncated",
				Severity: SeverityMajor,
			},
			expected: "[MAJOR] PlaceObject2/Content: SWF data truncated",
		},
		{
			name: "Unknown tag kind",
			err: DecodeError{
				Tag:      Kind(1000),
				Section:  "Header",
				Issue:    "bad",
				Severity: SeverityMinor,
			},
			expected: "[MINOR] Unknown(1000)/Header: bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("DecodeError.Error() = %q; want %q", result, tt.expected)
			}
		})
	}
}

// TestWarning verifies Warning formatting.
func TestWarning(t *testing.T) {
	tests := []struct {
		name     string
		warning  Warning
		expected string
	}{
		{
			name: "Warning with offset",
			warning: Warning{
				Tag:    TagDefineSprite,
				Issue:  "container ends without End tag",
				Offset: 5678,
			},
			expected: "[WARNING] DefineSprite at offset 5678: container ends without End tag",
		},
		{
			name: "Warning without offset",
			warning: Warning{
				Tag:   TagEnd,
				Issue: "truncated tag header",
			},
			expected: "[WARNING] End: truncated tag header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.warning.String()
			if result != tt.expected {
				t.Errorf("Warning.String() = %q; want %q", result, tt.expected)
			}
		})
	}
}

// TestErrorCollector verifies the errorCollector helper type.
func TestErrorCollector(t *testing.T) {
	ec := &errorCollector{}

	// Initially empty
	if ec.hasErrors() {
		t.Error("errorCollector should not have errors initially")
	}
	if ec.hasWarnings() {
		t.Error("errorCollector should not have warnings initially")
	}
	if ec.hasCriticalErrors() {
		t.Error("errorCollector should not have critical errors initially")
	}

	ec.addError(TagDefineFont2, "Test", "Minor issue", SeverityMinor, 100)
	if !ec.hasErrors() {
		t.Error("errorCollector should have errors after adding one")
	}
	if ec.hasCriticalErrors() {
		t.Error("errorCollector should not have critical errors yet")
	}

	ec.addError(TagDefineShape, "Test", "Critical issue", SeverityCritical, 200)
	if !ec.hasCriticalErrors() {
		t.Error("errorCollector should have critical errors after adding one")
	}
	if len(ec.errors) != 2 {
		t.Errorf("errorCollector should have 2 errors; got %d", len(ec.errors))
	}

	criticalErrs := ec.criticalErrors()
	if len(criticalErrs) != 1 {
		t.Errorf("errorCollector should have 1 critical error; got %d", len(criticalErrs))
	}

	ec.addWarning(TagEnd, "Warning issue", 400)
	if !ec.hasWarnings() {
		t.Error("errorCollector should have warnings after adding one")
	}
}

// TestDecodeFailureSeverity verifies that format errors are critical and
// truncation is major.
func TestDecodeFailureSeverity(t *testing.T) {
	ec := &errorCollector{}
	h := TagHeader{Kind: TagDefineShape, ContentLength: 10, HeaderLength: 2}

	de := ec.addDecodeFailure(h, 20, inSection("Shape", swfio.NewFormatError(25, "bad fill")))
	if de.Severity != SeverityCritical {
		t.Errorf("format error should be critical; got %s", de.Severity)
	}
	if de.Section != "Shape" {
		t.Errorf("section should be Shape; got %q", de.Section)
	}

	de = ec.addDecodeFailure(h, 40, swfio.ErrUnexpectedEOF)
	if de.Severity != SeverityMajor {
		t.Errorf("truncation should be major; got %s", de.Severity)
	}
	if de.Section != "Content" {
		t.Errorf("section should default to Content; got %q", de.Section)
	}
	if !errors.Is(swfio.ErrUnexpectedEOF, io.ErrUnexpectedEOF) {
		t.Error("ErrUnexpectedEOF should wrap io.ErrUnexpectedEOF")
	}
	if len(ec.criticalErrors()) != 1 {
		t.Errorf("expected 1 critical error; got %d", len(ec.criticalErrors()))
	}
}

// TestMovieErrorMethods verifies Movie error inspection methods.
func TestMovieErrorMethods(t *testing.T) {
	movie := &Movie{}
	movie.ec.addError(TagDefineShape, "Shape", "Critical issue", SeverityCritical, 200)
	movie.ec.addError(TagPlaceObject2, "Content", "Major issue", SeverityMajor, 300)
	movie.ec.addWarning(TagEnd, "Warning issue", 400)

	if len(movie.Errors()) != 2 {
		t.Errorf("Movie.Errors() should return 2 errors; got %d", len(movie.Errors()))
	}
	if len(movie.Warnings()) != 1 {
		t.Errorf("Movie.Warnings() should return 1 warning; got %d", len(movie.Warnings()))
	}
	if len(movie.CriticalErrors()) != 1 {
		t.Errorf("Movie.CriticalErrors() should return 1 critical error; got %d", len(movie.CriticalErrors()))
	}
	if !movie.HasCriticalErrors() {
		t.Error("Movie.HasCriticalErrors() should return true")
	}

	empty := &Movie{}
	if empty.Errors() == nil || len(empty.Errors()) != 0 {
		t.Error("Empty movie should return empty errors slice")
	}
	if empty.Warnings() == nil || len(empty.Warnings()) != 0 {
		t.Error("Empty movie should return empty warnings slice")
	}
	if empty.HasCriticalErrors() {
		t.Error("Empty movie should not have critical errors")
	}
}
