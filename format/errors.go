package format

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned by registry lookups for identifiers
// with no registered implementation. Callers match with errors.Is.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseError reports malformed input at a known source position. Line and
// Column are 1-based; a zero Column means the column is unknown.
type ParseError struct {
	Line   int
	Column int
	Token  string
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("parse error at line %d, column %d near %q: %s", e.Line, e.Column, e.Token, e.Msg)
	}
	if e.Column > 0 {
		return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
}

// MappingError reports input that parsed cleanly but cannot be expressed
// in the canonical schema.
type MappingError struct {
	Subject string
	Detail  string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("cannot map %q: %s", e.Subject, e.Detail)
}

// WriteError wraps a failure while serializing or emitting output.
type WriteError struct {
	Format string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s output: %v", e.Format, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
