package rdf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/panschema/schema"
)

// TermKind distinguishes the object position of a triple.
type TermKind int

const (
	// TermIRI is a resource reference.
	TermIRI TermKind = iota

	// TermLiteral is a literal value, optionally datatyped.
	TermLiteral

	// TermBlank is a labeled blank node reference.
	TermBlank
)

// Term is the object of a triple.
type Term struct {
	Kind  TermKind
	Value string

	// Datatype is the datatype IRI for typed literals, empty otherwise.
	Datatype string
}

// IRI builds a resource term.
func IRI(value string) Term {
	return Term{Kind: TermIRI, Value: value}
}

// Literal builds a plain string literal term.
func Literal(value string) Term {
	return Term{Kind: TermLiteral, Value: value}
}

// TypedLiteral builds a literal term with a datatype IRI.
func TypedLiteral(value, datatype string) Term {
	return Term{Kind: TermLiteral, Value: value, Datatype: datatype}
}

// Blank builds a blank node term. The label carries its "_:" marker so
// blank subjects and objects share one representation.
func Blank(label string) Term {
	return Term{Kind: TermBlank, Value: "_:" + label}
}

// IsBlankID reports whether an ID string names a blank node.
func IsBlankID(id string) bool {
	return strings.HasPrefix(id, "_:")
}

// Triple is one statement of the graph. Predicates are always IRIs;
// subjects are IRIs or "_:"-prefixed blank node labels, which enumeration
// axioms need for their owl:oneOf lists.
type Triple struct {
	Subject   string
	Predicate string
	Object    Term
}

// Graph is an ordered triple collection plus the prefix map used for
// compaction. Triple order is deterministic for a given schema, so every
// serialization of the same schema is byte-identical.
type Graph struct {
	Triples  []Triple
	Prefixes map[string]string

	// OntologyIRI is the subject of the ontology header.
	OntologyIRI string
}

func (g *Graph) add(subject, predicate string, object Term) {
	g.Triples = append(g.Triples, Triple{Subject: subject, Predicate: predicate, Object: object})
}

// BuildGraph projects a schema into its triple graph: ontology header,
// classes, properties, enumerations, named types, then preserved
// individuals. Entities are visited in sorted name order.
func BuildGraph(s *schema.Schema) *Graph {
	base := baseIRI(s)
	g := &Graph{
		Prefixes:    graphPrefixes(s),
		OntologyIRI: strings.TrimRight(base, "/#"),
	}

	buildHeader(g, s)
	for _, name := range s.ClassNames() {
		buildClass(g, s, base, s.Classes[name])
	}
	for _, name := range s.SlotNames() {
		buildProperty(g, s, base, slotIRI(base, s.Slots[name]), s.Slots[name])
	}
	for _, className := range s.ClassNames() {
		c := s.Classes[className]
		for _, attrName := range c.AttributeNames() {
			attr := c.Attributes[attrName]
			iri := attrIRI(base, className, attr)
			buildProperty(g, s, base, iri, attr)
			if attr.Domain == "" {
				g.add(iri, RDFSDomain, IRI(classIRI(base, c)))
			}
		}
	}
	for _, name := range s.EnumNames() {
		buildEnum(g, s, base, s.Enums[name])
	}
	for _, name := range s.TypeNames() {
		buildType(g, base, s.Types[name])
	}
	for _, ind := range s.Individuals() {
		buildIndividual(g, s, base, ind)
	}

	return g
}

func buildHeader(g *Graph, s *schema.Schema) {
	iri := g.OntologyIRI
	g.add(iri, RDFType, IRI(OWLOntology))
	if s.Title != "" {
		g.add(iri, RDFSLabel, Literal(s.Title))
	}
	if s.Description != "" {
		g.add(iri, RDFSComment, Literal(s.Description))
	}
	if s.Version != "" {
		g.add(iri, OWLVersionInfo, Literal(s.Version))
	}
	if s.License != "" {
		g.add(iri, DCTermsLicense, IRI(s.License))
	}
	for _, c := range s.Contributors {
		g.add(iri, DCTermsCreator, Literal(c.Name))
	}
	if s.Created != "" {
		g.add(iri, DCTermsCreated, TypedLiteral(s.Created, XSDDate))
	}
	if s.Modified != "" {
		g.add(iri, DCTermsModified, TypedLiteral(s.Modified, XSDDate))
	}
	for _, imp := range s.Imports {
		g.add(iri, OWLImports, IRI(imp))
	}
	buildAnnotations(g, s, iri, s.Annotations)
}

func buildClass(g *Graph, s *schema.Schema, base string, c *schema.Class) {
	iri := classIRI(base, c)
	g.add(iri, RDFType, IRI(OWLClass))
	g.add(iri, RDFSLabel, Literal(displayLabel(c.Annotations, c.Name)))
	if c.Description != "" {
		g.add(iri, RDFSComment, Literal(c.Description))
	}
	if c.IsA != "" {
		g.add(iri, RDFSSubClassOf, IRI(classIRI(base, s.Classes[c.IsA])))
	}
	for _, mixin := range c.Mixins {
		g.add(iri, RDFSSubClassOf, IRI(classIRI(base, s.Classes[mixin])))
	}
	for _, other := range c.DisjointWith {
		// The model holds both directions; emitting only the
		// lexicographically smaller side keeps the axiom single.
		if c.Name < other {
			g.add(iri, OWLDisjointWith, IRI(classIRI(base, s.Classes[other])))
		}
	}
	buildAnnotations(g, s, iri, c.Annotations)
}

func buildProperty(g *Graph, s *schema.Schema, base, iri string, sl *schema.Slot) {
	g.add(iri, RDFType, IRI(propertyType(s, sl)))
	g.add(iri, RDFSLabel, Literal(displayLabel(sl.Annotations, sl.Name)))
	if sl.Description != "" {
		g.add(iri, RDFSComment, Literal(sl.Description))
	}
	if sl.Domain != "" {
		g.add(iri, RDFSDomain, IRI(classIRI(base, s.Classes[sl.Domain])))
	}
	if r := rangeIRI(s, base, sl.Range); r != "" {
		g.add(iri, RDFSRange, IRI(r))
	}
	if sl.Inverse != "" {
		if other, ok := s.Slots[sl.Inverse]; ok {
			g.add(iri, OWLInverseOf, IRI(slotIRI(base, other)))
		}
	}
	if !sl.Multivalued {
		g.add(iri, RDFType, IRI(OWLFunctionalProp))
	}
	buildAnnotations(g, s, iri, sl.Annotations)
}

func buildEnum(g *Graph, s *schema.Schema, base string, e *schema.Enum) {
	iri := base + e.Name
	g.add(iri, RDFType, IRI(OWLClass))
	g.add(iri, RDFSLabel, Literal(displayLabel(e.Annotations, e.Name)))
	if e.Description != "" {
		g.add(iri, RDFSComment, Literal(e.Description))
	}

	// The enumeration axiom: equivalentClass to an anonymous class whose
	// owl:oneOf lists the member individuals, the idiom the ontology
	// reader recognizes.
	if len(e.PermissibleValues) > 0 {
		oneOf := "_:" + e.Name + "_oneof"
		g.add(iri, OWLEquivalentClass, Term{Kind: TermBlank, Value: oneOf})
		g.add(oneOf, RDFType, IRI(OWLClass))
		head := "_:" + e.Name + "_list0"
		g.add(oneOf, OWLOneOf, Term{Kind: TermBlank, Value: head})
		for i, pv := range e.PermissibleValues {
			node := fmt.Sprintf("_:%s_list%d", e.Name, i)
			g.add(node, RDFFirst, IRI(iri+"/"+pv.Text))
			if i == len(e.PermissibleValues)-1 {
				g.add(node, RDFRest, IRI(RDFNil))
			} else {
				g.add(node, RDFRest, Term{Kind: TermBlank, Value: fmt.Sprintf("_:%s_list%d", e.Name, i+1)})
			}
		}
	}

	for _, pv := range e.PermissibleValues {
		valueIRI := iri + "/" + pv.Text
		g.add(valueIRI, RDFType, IRI(OWLNamedIndividual))
		g.add(valueIRI, RDFType, IRI(iri))
		g.add(valueIRI, RDFSLabel, Literal(pv.Text))
		if pv.Description != "" {
			g.add(valueIRI, RDFSComment, Literal(pv.Description))
		}
		if pv.Meaning != "" {
			g.add(valueIRI, SKOSExactMatch, IRI(pv.Meaning))
		}
	}
	buildAnnotations(g, s, iri, e.Annotations)
}

func buildType(g *Graph, base string, t *schema.Type) {
	iri := t.URI
	if iri == "" || IsXSDDatatype(iri) {
		iri = base + t.Name
	}
	g.add(iri, RDFType, IRI(RDFSDatatype))
	g.add(iri, RDFSLabel, Literal(displayLabel(t.Annotations, t.Name)))
	if t.Description != "" {
		g.add(iri, RDFSComment, Literal(t.Description))
	}
	equivalent := t.URI
	if equivalent == "" || equivalent == iri {
		if xsd, ok := ScalarToXSD(t.Base); ok {
			equivalent = xsd
		} else {
			equivalent = ""
		}
	}
	if equivalent != "" {
		g.add(iri, OWLEquivalentClass, IRI(equivalent))
	}
}

func buildIndividual(g *Graph, s *schema.Schema, base string, ind schema.Individual) {
	g.add(ind.IRI, RDFType, IRI(OWLNamedIndividual))
	for _, t := range ind.Types {
		g.add(ind.IRI, RDFType, IRI(t))
	}
	if len(ind.Types) == 0 {
		if c, ok := s.Classes[ind.Class]; ok {
			g.add(ind.IRI, RDFType, IRI(classIRI(base, c)))
		}
	}
	if ind.Label != "" {
		g.add(ind.IRI, RDFSLabel, Literal(ind.Label))
	}
	if ind.Comment != "" {
		g.add(ind.IRI, RDFSComment, Literal(ind.Comment))
	}
	for _, pv := range ind.Values {
		pred := base + pv.Property
		if sl, ok := s.Slots[pv.Property]; ok {
			pred = slotIRI(base, sl)
		}
		if pv.IsIRI {
			g.add(ind.IRI, pred, IRI(pv.Value))
		} else {
			g.add(ind.IRI, pred, Literal(pv.Value))
		}
	}
}

// buildAnnotations re-emits annotations whose namespace is a declared
// schema prefix. The reserved namespace is internal bookkeeping and never
// serialized as triples.
func buildAnnotations(g *Graph, s *schema.Schema, subject string, a schema.Annotations) {
	for _, ns := range namespacesOf(a) {
		if ns == schema.ReservedNamespace {
			continue
		}
		expansion, ok := s.Prefixes[ns]
		if !ok {
			continue
		}
		for _, key := range a.InNamespace(ns) {
			value, _ := a.Get(ns, key)
			g.add(subject, expansion+key, Literal(value))
		}
	}
}

func namespacesOf(a schema.Annotations) []string {
	seen := make(map[string]bool)
	var out []string
	for k := range a {
		if i := strings.Index(k, ":"); i > 0 {
			ns := k[:i]
			if !seen[ns] {
				seen[ns] = true
				out = append(out, ns)
			}
		}
	}
	sort.Strings(out)
	return out
}

// propertyType picks owl:ObjectProperty or owl:DatatypeProperty by the
// slot's range. A preserved property-kind annotation wins over inference,
// so a round trip keeps the source's axiom even when the mapped range is
// ambiguous.
func propertyType(s *schema.Schema, sl *schema.Slot) string {
	if kind, ok := sl.Annotations.Get(schema.ReservedNamespace, schema.KeyPropertyKind); ok {
		if kind == "object" {
			return OWLObjectProperty
		}
		return OWLDatatypeProperty
	}
	if _, ok := s.Classes[sl.Range]; ok {
		return OWLObjectProperty
	}
	if _, ok := s.Enums[sl.Range]; ok {
		return OWLObjectProperty
	}
	return OWLDatatypeProperty
}

// rangeIRI resolves a range name to the IRI emitted as rdfs:range.
func rangeIRI(s *schema.Schema, base, r string) string {
	if r == "" {
		return ""
	}
	if c, ok := s.Classes[r]; ok {
		return classIRI(base, c)
	}
	if _, ok := s.Enums[r]; ok {
		return base + r
	}
	if t, ok := s.Types[r]; ok {
		if t.URI != "" {
			return t.URI
		}
		if xsd, ok := ScalarToXSD(t.Base); ok {
			return xsd
		}
		return base + r
	}
	if xsd, ok := ScalarToXSD(r); ok {
		return xsd
	}
	return ""
}

// baseIRI derives the namespace new entity IRIs are minted in. The schema
// ID is used when set; otherwise the schema name anchors a synthetic
// namespace so output is still valid RDF.
func baseIRI(s *schema.Schema) string {
	if s.ID != "" {
		if strings.HasSuffix(s.ID, "/") || strings.HasSuffix(s.ID, "#") {
			return s.ID
		}
		return s.ID + "/"
	}
	return "https://example.org/" + s.Name + "/"
}

func classIRI(base string, c *schema.Class) string {
	if c.ClassURI != "" {
		return c.ClassURI
	}
	return base + c.Name
}

func slotIRI(base string, sl *schema.Slot) string {
	if sl.SlotURI != "" {
		return sl.SlotURI
	}
	return base + sl.Name
}

func attrIRI(base, className string, sl *schema.Slot) string {
	if sl.SlotURI != "" {
		return sl.SlotURI
	}
	return base + className + "/" + sl.Name
}

func displayLabel(a schema.Annotations, fallback string) string {
	if label, ok := a.Get(schema.ReservedNamespace, schema.KeyLabel); ok && label != "" {
		return label
	}
	return fallback
}

// graphPrefixes merges the schema's prefix declarations with the standard
// vocabularies. Schema declarations win on conflict.
func graphPrefixes(s *schema.Schema) map[string]string {
	out := map[string]string{
		"rdf":     RDFNS,
		"rdfs":    RDFSNS,
		"owl":     OWLNS,
		"xsd":     XSDNS,
		"dcterms": DCTermsNS,
		"skos":    SKOSNS,
	}
	for name, expansion := range s.Prefixes {
		out[name] = expansion
	}
	return out
}
