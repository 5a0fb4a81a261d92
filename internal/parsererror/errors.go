// Package parsererror defines the typed errors raised while reading invoice
// spreadsheets. Cell-level problems are never errors; these cover whole-file
// failures only.
package parsererror

import "fmt"

// ParseError represents a structural failure while reading an input file.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an input file whose type is not accepted.
type InvalidFormatError struct {
	FilePath       string
	Extension      string
	ExpectedFormat string
}

func (e *InvalidFormatError) Error() string {
	ext := e.Extension
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("File must be %s. You uploaded: %s", e.ExpectedFormat, ext)
}
