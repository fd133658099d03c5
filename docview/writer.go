package docview

import (
	"encoding/json"
	"io"

	"github.com/c360studio/panschema/format"
	"github.com/c360studio/panschema/schema"
)

// Writer emits the documentation view as indented JSON for an external
// templating layer to render.
type Writer struct{}

// FormatID returns "docs".
func (w *Writer) FormatID() string { return "docs" }

// Write projects the schema and serializes the view data.
func (w *Writer) Write(s *schema.Schema, out io.Writer) error {
	view, err := Project(s)
	if err != nil {
		return &format.WriteError{Format: w.FormatID(), Err: err}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(view); err != nil {
		return &format.WriteError{Format: w.FormatID(), Err: err}
	}
	return nil
}
