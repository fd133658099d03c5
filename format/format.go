// Package format defines the reader/writer contracts shared by every
// translator and the registries that dispatch on format identifiers.
// Adding a format means registering a new implementation; no existing
// entry is touched.
package format

import (
	"io"

	"github.com/c360studio/panschema/schema"
)

// Reader parses one external format into the canonical schema. A Reader
// must validate every model invariant before returning; it fails the whole
// call rather than returning a partially valid schema. Implementations
// hold no mutable state, so one instance is safe for concurrent use on
// different inputs.
type Reader interface {
	// Read parses input bytes into a schema, together with any
	// non-fatal warnings raised along the way.
	Read(data []byte) (*schema.Schema, []Warning, error)

	// Identifiers lists the format identifiers (file extensions) this
	// reader handles, e.g. ["ttl", "turtle"].
	Identifiers() []string
}

// Writer serializes the canonical schema into one external format. A
// Writer is a pure function of the schema and its explicit options: output
// is fully built before anything is written, so a caller never observes a
// half-serialized result on the stream it provided.
type Writer interface {
	// Write serializes the schema to w.
	Write(s *schema.Schema, w io.Writer) error

	// FormatID returns the primary identifier of this output format.
	FormatID() string
}
