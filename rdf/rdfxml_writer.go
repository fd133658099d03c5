package rdf

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/c360studio/panschema/format"
	"github.com/c360studio/panschema/schema"
)

// RDFXMLWriter serializes the schema's triple graph as RDF/XML: one
// rdf:Description element per subject with property elements for each
// triple. Every namespace a predicate needs is declared on the root.
type RDFXMLWriter struct{}

// FormatID returns "rdfxml".
func (xw *RDFXMLWriter) FormatID() string { return "rdfxml" }

// Write builds the graph and renders it as an RDF/XML document.
func (xw *RDFXMLWriter) Write(s *schema.Schema, w io.Writer) error {
	g := BuildGraph(s)
	prefixes := xmlPrefixes(g)
	var sb strings.Builder

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString("<rdf:RDF")
	names := make([]string, 0, len(prefixes))
	for _, name := range prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	byName := make(map[string]string, len(prefixes))
	for ns, name := range prefixes {
		byName[name] = ns
	}
	for _, name := range names {
		fmt.Fprintf(&sb, "\n    xmlns:%s=%q", name, byName[name])
	}
	sb.WriteString(">\n")

	for _, group := range groupBySubject(g.Triples) {
		if IsBlankID(group.subject) {
			fmt.Fprintf(&sb, "  <rdf:Description rdf:nodeID=%q>\n", strings.TrimPrefix(group.subject, "_:"))
		} else {
			fmt.Fprintf(&sb, "  <rdf:Description rdf:about=%q>\n", xmlEscape(group.subject))
		}
		for _, t := range group.triples {
			elem, ok := xmlElement(prefixes, t.Predicate)
			if !ok {
				return &format.WriteError{Format: "rdfxml",
					Err: fmt.Errorf("predicate %s has no namespace split usable as an XML name", t.Predicate)}
			}
			switch t.Object.Kind {
			case TermIRI:
				fmt.Fprintf(&sb, "    <%s rdf:resource=%q/>\n", elem, xmlEscape(t.Object.Value))
			case TermBlank:
				fmt.Fprintf(&sb, "    <%s rdf:nodeID=%q/>\n", elem, strings.TrimPrefix(t.Object.Value, "_:"))
			default:
				if t.Object.Datatype != "" {
					fmt.Fprintf(&sb, "    <%s rdf:datatype=%q>%s</%s>\n",
						elem, xmlEscape(t.Object.Datatype), xmlEscape(t.Object.Value), elem)
				} else {
					fmt.Fprintf(&sb, "    <%s>%s</%s>\n", elem, xmlEscape(t.Object.Value), elem)
				}
			}
		}
		sb.WriteString("  </rdf:Description>\n")
	}
	sb.WriteString("</rdf:RDF>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// xmlPrefixes assigns a prefix to every namespace a predicate element
// needs. Declared graph prefixes keep their names; the rest get generated
// ones in sorted namespace order.
func xmlPrefixes(g *Graph) map[string]string {
	needed := make(map[string]bool)
	needed[RDFNS] = true
	for _, t := range g.Triples {
		if ns, _, ok := splitIRI(t.Predicate); ok {
			needed[ns] = true
		}
	}

	declared := make(map[string]string, len(g.Prefixes))
	for name, expansion := range g.Prefixes {
		// The smallest name wins when two prefixes share an expansion,
		// independent of map iteration order.
		if prior, ok := declared[expansion]; !ok || name < prior {
			declared[expansion] = name
		}
	}

	out := make(map[string]string, len(needed))
	var generated []string
	for ns := range needed {
		if name, ok := declared[ns]; ok {
			out[ns] = name
		} else {
			generated = append(generated, ns)
		}
	}
	sort.Strings(generated)
	for i, ns := range generated {
		out[ns] = fmt.Sprintf("ns%d", i)
	}
	return out
}

// xmlElement renders a predicate IRI as a prefixed XML element name.
func xmlElement(prefixes map[string]string, iri string) (string, bool) {
	ns, local, ok := splitIRI(iri)
	if !ok {
		return "", false
	}
	name, ok := prefixes[ns]
	if !ok {
		return "", false
	}
	return name + ":" + local, true
}

// splitIRI separates an IRI into namespace and local part at the last
// hash or slash. The local part must be usable as an XML name.
func splitIRI(iri string) (ns, local string, ok bool) {
	idx := strings.LastIndexAny(iri, "#/")
	if idx < 0 || idx+1 >= len(iri) {
		return "", "", false
	}
	ns, local = iri[:idx+1], iri[idx+1:]
	for i, r := range local {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '.'):
		default:
			return "", "", false
		}
	}
	return ns, local, true
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
