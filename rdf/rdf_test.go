package rdf

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/panschema/schema"
)

func animalSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s := schema.New("animals")
	s.ID = "https://example.org/animals"
	s.Title = "Animal Ontology"
	s.Version = "1.2.0"

	animal := schema.NewClass("Animal")
	animal.Description = "A living creature."
	animal.Slots = []string{"hasName"}
	mammal := schema.NewClass("Mammal")
	mammal.IsA = "Animal"
	dog := schema.NewClass("Dog")
	dog.IsA = "Mammal"
	dog.DisjointWith = []string{"Cat"}
	cat := schema.NewClass("Cat")
	cat.IsA = "Mammal"

	s.Classes["Animal"] = animal
	s.Classes["Mammal"] = mammal
	s.Classes["Dog"] = dog
	s.Classes["Cat"] = cat

	hasName := schema.NewSlot("hasName")
	hasName.Range = schema.KindString
	hasName.Domain = "Animal"
	s.Slots["hasName"] = hasName

	owns := schema.NewSlot("owns")
	owns.Range = "Animal"
	owns.Domain = "Animal"
	s.Slots["owns"] = owns

	s.Normalize()
	require.NoError(t, s.Validate())
	return s
}

func findTriples(g *Graph, subject, predicate string) []Triple {
	var out []Triple
	for _, t := range g.Triples {
		if t.Subject == subject && t.Predicate == predicate {
			out = append(out, t)
		}
	}
	return out
}

func TestBuildGraphClassHierarchy(t *testing.T) {
	g := BuildGraph(animalSchema(t))

	base := "https://example.org/animals/"
	subs := findTriples(g, base+"Dog", RDFSSubClassOf)
	require.Len(t, subs, 1)
	assert.Equal(t, IRI(base+"Mammal"), subs[0].Object)

	types := findTriples(g, base+"Animal", RDFType)
	require.Len(t, types, 1)
	assert.Equal(t, IRI(OWLClass), types[0].Object)
}

func TestBuildGraphProperty(t *testing.T) {
	g := BuildGraph(animalSchema(t))
	base := "https://example.org/animals/"

	types := findTriples(g, base+"hasName", RDFType)
	require.Len(t, types, 2)
	assert.Equal(t, IRI(OWLDatatypeProperty), types[0].Object)
	assert.Equal(t, IRI(OWLFunctionalProp), types[1].Object)

	ranges := findTriples(g, base+"hasName", RDFSRange)
	require.Len(t, ranges, 1)
	assert.Equal(t, IRI(XSDString), ranges[0].Object)

	domains := findTriples(g, base+"hasName", RDFSDomain)
	require.Len(t, domains, 1)
	assert.Equal(t, IRI(base+"Animal"), domains[0].Object)

	ownsTypes := findTriples(g, base+"owns", RDFType)
	require.NotEmpty(t, ownsTypes)
	assert.Equal(t, IRI(OWLObjectProperty), ownsTypes[0].Object)

	// Single-valued slots carry the functional axiom.
	multi := schema.NewSlot("nicknames")
	multi.Range = schema.KindString
	multi.Multivalued = true
	s := animalSchema(t)
	s.Slots["nicknames"] = multi
	s.Normalize()
	g2 := BuildGraph(s)
	for _, tr := range findTriples(g2, base+"nicknames", RDFType) {
		assert.NotEqual(t, IRI(OWLFunctionalProp), tr.Object)
	}
}

func TestBuildGraphDisjointEmittedOnce(t *testing.T) {
	g := BuildGraph(animalSchema(t))
	base := "https://example.org/animals/"

	var disjoint []Triple
	for _, tr := range g.Triples {
		if tr.Predicate == OWLDisjointWith {
			disjoint = append(disjoint, tr)
		}
	}
	// Symmetric in the model, single axiom on the wire.
	require.Len(t, disjoint, 1)
	assert.Equal(t, base+"Cat", disjoint[0].Subject)
	assert.Equal(t, IRI(base+"Dog"), disjoint[0].Object)
}

func TestBuildGraphHeader(t *testing.T) {
	g := BuildGraph(animalSchema(t))

	assert.Equal(t, "https://example.org/animals", g.OntologyIRI)
	types := findTriples(g, g.OntologyIRI, RDFType)
	require.Len(t, types, 1)
	assert.Equal(t, IRI(OWLOntology), types[0].Object)

	versions := findTriples(g, g.OntologyIRI, OWLVersionInfo)
	require.Len(t, versions, 1)
	assert.Equal(t, Literal("1.2.0"), versions[0].Object)
}

func TestBuildGraphDeterministic(t *testing.T) {
	s := animalSchema(t)
	first := BuildGraph(s)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first.Triples, BuildGraph(s).Triples)
	}
}

func TestBuildGraphEnum(t *testing.T) {
	s := animalSchema(t)
	e := schema.NewEnum("CoatColor")
	e.PermissibleValues = []schema.PermissibleValue{
		{Text: "black"},
		{Text: "brown", Meaning: "https://example.org/colors/brown"},
	}
	s.Enums["CoatColor"] = e
	s.Normalize()
	require.NoError(t, s.Validate())

	g := BuildGraph(s)
	base := "https://example.org/animals/"

	valueTypes := findTriples(g, base+"CoatColor/black", RDFType)
	require.Len(t, valueTypes, 2)
	assert.Equal(t, IRI(OWLNamedIndividual), valueTypes[0].Object)
	assert.Equal(t, IRI(base+"CoatColor"), valueTypes[1].Object)

	matches := findTriples(g, base+"CoatColor/brown", SKOSExactMatch)
	require.Len(t, matches, 1)

	// The enumeration axiom itself: equivalentClass to a blank class
	// whose owl:oneOf lists both members in declaration order.
	equivs := findTriples(g, base+"CoatColor", OWLEquivalentClass)
	require.Len(t, equivs, 1)
	require.Equal(t, TermBlank, equivs[0].Object.Kind)
	oneOf := findTriples(g, equivs[0].Object.Value, OWLOneOf)
	require.Len(t, oneOf, 1)

	head := oneOf[0].Object.Value
	first := findTriples(g, head, RDFFirst)
	require.Len(t, first, 1)
	assert.Equal(t, IRI(base+"CoatColor/black"), first[0].Object)
	rest := findTriples(g, head, RDFRest)
	require.Len(t, rest, 1)

	second := findTriples(g, rest[0].Object.Value, RDFFirst)
	require.Len(t, second, 1)
	assert.Equal(t, IRI(base+"CoatColor/brown"), second[0].Object)
	tail := findTriples(g, rest[0].Object.Value, RDFRest)
	require.Len(t, tail, 1)
	assert.Equal(t, IRI(RDFNil), tail[0].Object)
}

func TestBuildGraphIndividuals(t *testing.T) {
	s := animalSchema(t)
	s.SetIndividuals([]schema.Individual{
		{IRI: "https://example.org/animals/rex", Class: "Dog", Label: "Rex"},
	})

	g := BuildGraph(s)
	types := findTriples(g, "https://example.org/animals/rex", RDFType)
	require.Len(t, types, 2)
	assert.Equal(t, IRI(OWLNamedIndividual), types[0].Object)
	assert.Equal(t, IRI("https://example.org/animals/Dog"), types[1].Object)

	labels := findTriples(g, "https://example.org/animals/rex", RDFSLabel)
	require.Len(t, labels, 1)
	assert.Equal(t, Literal("Rex"), labels[0].Object)
}

func TestBuildGraphIndividualDetails(t *testing.T) {
	s := animalSchema(t)
	s.SetIndividuals([]schema.Individual{{
		IRI:     "https://example.org/animals/rex",
		Class:   "Dog",
		Types:   []string{"https://example.org/animals/Dog", "https://other.org/Pet"},
		Label:   "Rex",
		Comment: "A very good dog.",
		Values: []schema.PropertyValue{
			{Property: "hasName", Value: "Rex the Third"},
			{Property: "owns", Value: "https://example.org/animals/bone", IsIRI: true},
		},
	}})

	g := BuildGraph(s)
	rex := "https://example.org/animals/rex"

	types := findTriples(g, rex, RDFType)
	require.Len(t, types, 3)
	assert.Equal(t, IRI("https://other.org/Pet"), types[2].Object)

	comments := findTriples(g, rex, RDFSComment)
	require.Len(t, comments, 1)
	assert.Equal(t, Literal("A very good dog."), comments[0].Object)

	names := findTriples(g, rex, "https://example.org/animals/hasName")
	require.Len(t, names, 1)
	assert.Equal(t, Literal("Rex the Third"), names[0].Object)

	owned := findTriples(g, rex, "https://example.org/animals/owns")
	require.Len(t, owned, 1)
	assert.Equal(t, IRI("https://example.org/animals/bone"), owned[0].Object)
}

func TestXSDMapping(t *testing.T) {
	for _, kind := range schema.ScalarKinds() {
		iri, ok := ScalarToXSD(kind)
		require.True(t, ok, kind)
		back, ok := XSDToScalar(iri)
		require.True(t, ok, iri)
		assert.Equal(t, kind, back)
	}

	kind, ok := XSDToScalar(XSDNS + "long")
	require.True(t, ok)
	assert.Equal(t, schema.KindInteger, kind)

	kind, ok = XSDToScalar(XSDNS + "decimal")
	require.True(t, ok)
	assert.Equal(t, schema.KindFloat, kind)

	_, ok = XSDToScalar(XSDNS + "gYearMonth")
	assert.False(t, ok)

	_, ok = XSDToScalar("https://example.org/NotXSD")
	assert.False(t, ok)
}

func TestTurtleWriter(t *testing.T) {
	s := animalSchema(t)
	var buf bytes.Buffer
	w := &TurtleWriter{}
	require.NoError(t, w.Write(s, &buf))
	out := buf.String()

	assert.Contains(t, out, "@prefix owl: <"+OWLNS+"> .")
	assert.Contains(t, out, "a owl:Class")
	assert.Contains(t, out, "rdfs:subClassOf")
	assert.Contains(t, out, `"Animal Ontology"`)

	// Same schema, same bytes.
	var again bytes.Buffer
	require.NoError(t, w.Write(s, &again))
	assert.Equal(t, out, again.String())
}

func TestTurtleEscapesLiterals(t *testing.T) {
	s := animalSchema(t)
	s.Classes["Dog"].Description = "Says \"woof\"\nand wags."
	var buf bytes.Buffer
	require.NoError(t, (&TurtleWriter{}).Write(s, &buf))
	assert.Contains(t, buf.String(), `"Says \"woof\"\nand wags."`)
}

func TestNTriplesWriter(t *testing.T) {
	s := animalSchema(t)
	g := BuildGraph(s)

	var buf bytes.Buffer
	require.NoError(t, (&NTriplesWriter{}).Write(s, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, len(g.Triples))
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "<"), line)
		assert.True(t, strings.HasSuffix(line, " ."), line)
	}
}

func TestJSONLDWriter(t *testing.T) {
	s := animalSchema(t)
	var buf bytes.Buffer
	require.NoError(t, (&JSONLDWriter{}).Write(s, &buf))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	ctx, ok := doc["@context"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, OWLNS, ctx["owl"])

	graph, ok := doc["@graph"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, graph)

	ids := make(map[string]bool)
	for _, node := range graph {
		n := node.(map[string]any)
		ids[n["@id"].(string)] = true
	}
	assert.True(t, ids["https://example.org/animals/Dog"])
	assert.True(t, ids["https://example.org/animals"])
}

func TestRDFXMLWriter(t *testing.T) {
	s := animalSchema(t)
	var buf bytes.Buffer
	require.NoError(t, (&RDFXMLWriter{}).Write(s, &buf))
	out := buf.String()

	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `xmlns:rdf="`+RDFNS+`"`)
	assert.Contains(t, out, `<rdf:Description rdf:about="https://example.org/animals/Dog">`)
	assert.Contains(t, out, `<rdf:type rdf:resource="`+OWLClass+`"/>`)
	assert.Contains(t, out, `<rdfs:subClassOf rdf:resource="https://example.org/animals/Mammal"/>`)
	assert.Contains(t, out, "</rdf:RDF>")

	// Same schema, same bytes.
	var again bytes.Buffer
	require.NoError(t, (&RDFXMLWriter{}).Write(s, &again))
	assert.Equal(t, out, again.String())
}

func TestRDFXMLEscapesText(t *testing.T) {
	s := animalSchema(t)
	s.Classes["Dog"].Description = `Says "woof" & <growls>.`
	var buf bytes.Buffer
	require.NoError(t, (&RDFXMLWriter{}).Write(s, &buf))
	assert.Contains(t, buf.String(), "Says &quot;woof&quot; &amp; &lt;growls&gt;.")
}

func TestRDFXMLBlankNodes(t *testing.T) {
	s := animalSchema(t)
	e := schema.NewEnum("CoatColor")
	e.PermissibleValues = []schema.PermissibleValue{{Text: "black"}}
	s.Enums["CoatColor"] = e
	s.Normalize()
	require.NoError(t, s.Validate())

	var buf bytes.Buffer
	require.NoError(t, (&RDFXMLWriter{}).Write(s, &buf))
	out := buf.String()

	assert.Contains(t, out, `<owl:equivalentClass rdf:nodeID="CoatColor_oneof"/>`)
	assert.Contains(t, out, `<rdf:Description rdf:nodeID="CoatColor_oneof">`)
	assert.Contains(t, out, `<rdf:first rdf:resource="https://example.org/animals/CoatColor/black"/>`)
	assert.Contains(t, out, `<rdf:rest rdf:resource="`+RDFNil+`"/>`)
}

func TestCompactIRI(t *testing.T) {
	prefixes := map[string]string{
		"ex":  "https://example.org/",
		"owl": OWLNS,
	}
	assert.Equal(t, "ex:Dog", compactIRI(prefixes, "https://example.org/Dog"))
	assert.Equal(t, "owl:Class", compactIRI(prefixes, OWLClass))
	// A slash in the local part cannot be a prefixed name.
	assert.Equal(t, "<https://example.org/a/b>", compactIRI(prefixes, "https://example.org/a/b"))
	assert.Equal(t, "<https://other.org/X>", compactIRI(prefixes, "https://other.org/X"))
}
