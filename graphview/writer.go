package graphview

import (
	"encoding/json"
	"io"

	"github.com/c360studio/panschema/format"
	"github.com/c360studio/panschema/schema"
)

// Writer emits the graph topology as indented JSON.
type Writer struct {
	// Options configures the projection; the zero value includes every
	// entity kind except individuals.
	Options Options
}

// FormatID returns "graph".
func (w *Writer) FormatID() string { return "graph" }

// Write projects the schema and serializes the topology.
func (w *Writer) Write(s *schema.Schema, out io.Writer) error {
	g := Project(s, w.Options)
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(g); err != nil {
		return &format.WriteError{Format: w.FormatID(), Err: err}
	}
	return nil
}
