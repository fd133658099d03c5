package rdf

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/c360studio/panschema/schema"
)

// TurtleWriter serializes the schema's triple graph as Turtle.
type TurtleWriter struct{}

// FormatID returns "ttl".
func (tw *TurtleWriter) FormatID() string { return "ttl" }

// Write builds the graph and renders it grouped by subject, with prefixed
// names wherever a declared prefix matches. The full document is built in
// memory before anything reaches w.
func (tw *TurtleWriter) Write(s *schema.Schema, w io.Writer) error {
	g := BuildGraph(s)
	var sb strings.Builder

	prefixNames := make([]string, 0, len(g.Prefixes))
	for name := range g.Prefixes {
		prefixNames = append(prefixNames, name)
	}
	sort.Strings(prefixNames)
	for _, name := range prefixNames {
		fmt.Fprintf(&sb, "@prefix %s: <%s> .\n", name, g.Prefixes[name])
	}
	sb.WriteString("\n")

	for _, group := range groupBySubject(g.Triples) {
		fmt.Fprintf(&sb, "%s\n", turtleSubject(g.Prefixes, group.subject))
		for i, t := range group.triples {
			terminator := " ;"
			if i == len(group.triples)-1 {
				terminator = " ."
			}
			fmt.Fprintf(&sb, "    %s %s%s\n",
				turtlePredicate(g.Prefixes, t.Predicate),
				turtleObject(g.Prefixes, t.Object),
				terminator)
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

type subjectGroup struct {
	subject string
	triples []Triple
}

// groupBySubject clusters triples by subject, keeping the subjects in
// first-appearance order and triples in build order.
func groupBySubject(triples []Triple) []subjectGroup {
	index := make(map[string]int)
	var groups []subjectGroup
	for _, t := range triples {
		i, ok := index[t.Subject]
		if !ok {
			i = len(groups)
			index[t.Subject] = i
			groups = append(groups, subjectGroup{subject: t.Subject})
		}
		groups[i].triples = append(groups[i].triples, t)
	}
	return groups
}

func turtleSubject(prefixes map[string]string, subject string) string {
	if IsBlankID(subject) {
		return subject
	}
	return compactIRI(prefixes, subject)
}

func turtlePredicate(prefixes map[string]string, iri string) string {
	if iri == RDFType {
		return "a"
	}
	return compactIRI(prefixes, iri)
}

func turtleObject(prefixes map[string]string, term Term) string {
	if term.Kind == TermBlank {
		return term.Value
	}
	if term.Kind == TermIRI {
		return compactIRI(prefixes, term.Value)
	}
	lit := `"` + escapeLiteral(term.Value) + `"`
	if term.Datatype != "" {
		return lit + "^^" + compactIRI(prefixes, term.Datatype)
	}
	return lit
}

// compactIRI renders an IRI as a prefixed name when a declared prefix
// matches and the remaining local part is safe, falling back to an
// angle-bracketed IRI.
func compactIRI(prefixes map[string]string, iri string) string {
	best := ""
	local := ""
	for name, expansion := range prefixes {
		if expansion == "" || !strings.HasPrefix(iri, expansion) {
			continue
		}
		rest := iri[len(expansion):]
		if rest == "" || !safeLocalName(rest) {
			continue
		}
		// Longest expansion wins; ties broken by prefix name for
		// deterministic output.
		if best == "" || len(expansion) > len(prefixes[best]) ||
			(len(expansion) == len(prefixes[best]) && name < best) {
			best = name
			local = rest
		}
	}
	if best == "" {
		return "<" + iri + ">"
	}
	return best + ":" + local
}

// safeLocalName reports whether s can appear as the local part of a
// prefixed name without escaping.
func safeLocalName(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.':
		default:
			return false
		}
	}
	// A trailing dot would be parsed as the statement terminator.
	return !strings.HasSuffix(s, ".")
}

func escapeLiteral(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return replacer.Replace(s)
}
