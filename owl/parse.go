package owl

import "github.com/c360studio/panschema/rdf"

// ParseTriples parses Turtle (N-Triples is a subset) into raw triples with
// prefixes expanded, without any schema interpretation. Blank nodes keep
// their labels.
func ParseTriples(data []byte) ([]rdf.Triple, error) {
	doc, err := parseTurtle(string(data))
	if err != nil {
		return nil, err
	}
	out := make([]rdf.Triple, 0, len(doc.statements))
	for _, st := range doc.statements {
		out = append(out, rdf.Triple{
			Subject:   st.subject.value,
			Predicate: st.predicate.value,
			Object:    termOf(st.object),
		})
	}
	return out, nil
}

func termOf(n node) rdf.Term {
	switch n.kind {
	case nodeLiteral:
		if n.datatype != "" {
			return rdf.TypedLiteral(n.value, n.datatype)
		}
		return rdf.Literal(n.value)
	case nodeBlank:
		return rdf.Term{Kind: rdf.TermBlank, Value: n.value}
	default:
		return rdf.IRI(n.value)
	}
}
