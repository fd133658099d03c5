// Package panschema translates schema definitions between an axiom-based
// ontology format and a slot/class-based native format through one
// canonical model. Readers parse and validate input; writers are pure
// functions of the model; the registries make the format set open for
// extension.
package panschema

import (
	"bytes"
	"fmt"

	"github.com/c360studio/panschema/docview"
	"github.com/c360studio/panschema/format"
	"github.com/c360studio/panschema/graphview"
	"github.com/c360studio/panschema/owl"
	"github.com/c360studio/panschema/rdf"
	"github.com/c360studio/panschema/schema"
	"github.com/c360studio/panschema/yamlschema"
)

// DefaultReaders returns a registry with every built-in reader.
func DefaultReaders() *format.ReaderRegistry {
	reg := format.NewReaderRegistry()
	reg.Register(&owl.Reader{})
	reg.Register(&yamlschema.Reader{})
	return reg
}

// DefaultWriters returns a registry with every built-in writer.
func DefaultWriters() *format.WriterRegistry {
	reg := format.NewWriterRegistry()
	reg.Register(&yamlschema.Writer{}, "yml")
	reg.Register(&rdf.TurtleWriter{}, "turtle", "owl")
	reg.Register(&rdf.NTriplesWriter{}, "ntriples")
	reg.Register(&rdf.JSONLDWriter{})
	reg.Register(&rdf.RDFXMLWriter{})
	reg.Register(&docview.Writer{})
	reg.Register(&graphview.Writer{})
	return reg
}

// Result is the outcome of one conversion.
type Result struct {
	Schema   *schema.Schema
	Output   []byte
	Warnings []format.Warning
}

// Convert reads input in the source format and serializes it in the
// target format. Output is fully built before return; a failed conversion
// produces no bytes.
func Convert(readers *format.ReaderRegistry, writers *format.WriterRegistry, from, to string, input []byte) (*Result, error) {
	reader, err := readers.For(from)
	if err != nil {
		return nil, err
	}
	writer, err := writers.For(to)
	if err != nil {
		return nil, err
	}

	s, warnings, err := reader.Read(input)
	if err != nil {
		return nil, fmt.Errorf("reading %s input: %w", from, err)
	}

	var buf bytes.Buffer
	if err := writer.Write(s, &buf); err != nil {
		return nil, err
	}
	return &Result{Schema: s, Output: buf.Bytes(), Warnings: warnings}, nil
}
