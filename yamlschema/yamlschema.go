// Package yamlschema reads and writes the native slot/class schema format.
// It is the closest thing to an identity mapping over the canonical model
// and anchors round-trip testing for every other format.
package yamlschema

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/panschema/format"
	"github.com/c360studio/panschema/schema"
)

// Reader reads the native YAML schema format.
type Reader struct{}

// Identifiers returns the format identifiers handled by this reader.
func (r *Reader) Identifiers() []string {
	return []string{"yaml", "yml"}
}

// Read deserializes the schema and runs full invariant validation; typo'd
// hand-written input fails here, never downstream.
func (r *Reader) Read(data []byte) (*schema.Schema, []format.Warning, error) {
	var s schema.Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, nil, yamlParseError(err)
	}
	s.Normalize()
	if !s.Annotations.Has(schema.ReservedNamespace, schema.KeySourceFormat) {
		s.Annotations.Set(schema.ReservedNamespace, schema.KeySourceFormat, "yaml")
	}
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	return &s, nil, nil
}

// Writer writes the native YAML schema format.
type Writer struct{}

// FormatID returns "yaml".
func (w *Writer) FormatID() string { return "yaml" }

// Write serializes the schema. The document is fully rendered in memory
// before anything reaches out.
func (w *Writer) Write(s *schema.Schema, out io.Writer) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return &format.WriteError{Format: w.FormatID(), Err: err}
	}
	if _, err := out.Write(data); err != nil {
		return &format.WriteError{Format: w.FormatID(), Err: err}
	}
	return nil
}

// yamlParseError lifts the line number out of a yaml error message, which
// is the only positional context the decoder exposes.
func yamlParseError(err error) *format.ParseError {
	msg := err.Error()
	line := 0
	for _, part := range strings.Split(msg, " ") {
		trimmed := strings.TrimSuffix(part, ":")
		if n, convErr := strconv.Atoi(trimmed); convErr == nil {
			line = n
			break
		}
	}
	return &format.ParseError{
		Line: line,
		Msg:  strings.TrimPrefix(msg, fmt.Sprintf("yaml: line %d: ", line)),
	}
}
