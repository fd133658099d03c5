package rdf

import (
	"encoding/json"
	"io"

	"github.com/c360studio/panschema/schema"
)

// JSONLDWriter serializes the schema's triple graph as JSON-LD: a
// @context built from the prefix map and a @graph with one node object per
// subject.
type JSONLDWriter struct{}

// FormatID returns "jsonld".
func (jw *JSONLDWriter) FormatID() string { return "jsonld" }

// Write builds the graph and renders it as an indented JSON-LD document.
// encoding/json sorts object keys, so output is deterministic.
func (jw *JSONLDWriter) Write(s *schema.Schema, w io.Writer) error {
	g := BuildGraph(s)

	graph := make([]map[string]any, 0)
	for _, group := range groupBySubject(g.Triples) {
		node := map[string]any{"@id": group.subject}
		for _, t := range group.triples {
			if t.Predicate == RDFType && t.Object.Kind == TermIRI {
				node["@type"] = appendValue(node["@type"], t.Object.Value)
				continue
			}
			node[t.Predicate] = appendValue(node[t.Predicate], jsonldObject(t.Object))
		}
		graph = append(graph, node)
	}

	doc := map[string]any{
		"@context": g.Prefixes,
		"@graph":   graph,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// appendValue collects repeated predicate values into a slice while
// keeping single values unwrapped.
func appendValue(existing any, value any) any {
	switch prior := existing.(type) {
	case nil:
		return value
	case []any:
		return append(prior, value)
	default:
		return []any{prior, value}
	}
}

func jsonldObject(term Term) any {
	if term.Kind == TermIRI || term.Kind == TermBlank {
		return map[string]any{"@id": term.Value}
	}
	if term.Datatype != "" {
		return map[string]any{"@value": term.Value, "@type": term.Datatype}
	}
	return term.Value
}
