package rdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/c360studio/panschema/schema"
)

// NTriplesWriter serializes the schema's triple graph as N-Triples: one
// statement per line, no prefixes, full IRIs. Line order follows graph
// build order, so output is deterministic.
type NTriplesWriter struct{}

// FormatID returns "nt".
func (nw *NTriplesWriter) FormatID() string { return "nt" }

// Write builds the graph and renders every triple on its own line.
func (nw *NTriplesWriter) Write(s *schema.Schema, w io.Writer) error {
	g := BuildGraph(s)
	var sb strings.Builder

	for _, t := range g.Triples {
		fmt.Fprintf(&sb, "%s <%s> %s .\n", ntriplesSubject(t.Subject), t.Predicate, ntriplesObject(t.Object))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func ntriplesSubject(subject string) string {
	if IsBlankID(subject) {
		return subject
	}
	return "<" + subject + ">"
}

func ntriplesObject(term Term) string {
	if term.Kind == TermBlank {
		return term.Value
	}
	if term.Kind == TermIRI {
		return "<" + term.Value + ">"
	}
	lit := `"` + escapeLiteral(term.Value) + `"`
	if term.Datatype != "" {
		return lit + "^^<" + term.Datatype + ">"
	}
	return lit
}
