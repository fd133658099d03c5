package owl

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/panschema/format"
	"github.com/c360studio/panschema/rdf"
	"github.com/c360studio/panschema/schema"
)

const animalOntology = `
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix ex: <https://example.org/animals/> .

<https://example.org/animals> a owl:Ontology ;
    rdfs:label "Animal Ontology" ;
    owl:versionInfo "1.0.0" .

ex:Animal a owl:Class ;
    rdfs:label "Animal" ;
    rdfs:comment "A living creature." .

ex:Mammal a owl:Class ;
    rdfs:subClassOf ex:Animal .

ex:Dog a owl:Class ;
    rdfs:subClassOf ex:Mammal ;
    owl:disjointWith ex:Cat .

ex:Cat a owl:Class ;
    rdfs:subClassOf ex:Mammal .

ex:hasName a owl:DatatypeProperty ;
    rdfs:domain ex:Animal ;
    rdfs:range xsd:string .

ex:hasAge a owl:DatatypeProperty ;
    rdfs:domain ex:Animal ;
    rdfs:range xsd:integer .
`

func readOntology(t *testing.T, input string) (*schema.Schema, []format.Warning) {
	t.Helper()
	s, warnings, err := (&Reader{}).Read([]byte(input))
	require.NoError(t, err)
	require.NotNil(t, s)
	return s, warnings
}

func TestReadClassHierarchy(t *testing.T) {
	s, warnings := readOntology(t, animalOntology)
	assert.Empty(t, warnings)

	assert.Equal(t, "animals", s.Name)
	assert.Equal(t, "https://example.org/animals", s.ID)
	assert.Equal(t, "Animal Ontology", s.Title)
	assert.Equal(t, "1.0.0", s.Version)

	require.Contains(t, s.Classes, "Dog")
	assert.Equal(t, "Mammal", s.Classes["Dog"].IsA)
	assert.Equal(t, "Animal", s.Classes["Mammal"].IsA)
	assert.Equal(t, "A living creature.", s.Classes["Animal"].Description)
	assert.Equal(t, "https://example.org/animals/Dog", s.Classes["Dog"].ClassURI)
}

func TestReadResolvedSlotsThroughInheritance(t *testing.T) {
	s, _ := readOntology(t, animalOntology)

	resolved, err := s.ResolvedSlots("Dog")
	require.NoError(t, err)

	names := make([]string, len(resolved))
	for i, r := range resolved {
		names[i] = r.Slot.Name
	}
	assert.Contains(t, names, "hasName")
	assert.Contains(t, names, "hasAge")
	for _, r := range resolved {
		assert.Equal(t, "Animal", r.DefinedIn)
	}
}

func TestReadScalarRanges(t *testing.T) {
	s, _ := readOntology(t, animalOntology)
	assert.Equal(t, schema.KindString, s.Slots["hasName"].Range)
	assert.Equal(t, schema.KindInteger, s.Slots["hasAge"].Range)
	assert.Equal(t, "Animal", s.Slots["hasName"].Domain)
}

func TestReadDisjointSymmetric(t *testing.T) {
	s, _ := readOntology(t, animalOntology)
	// Declared on Dog only; present exactly once on each side.
	assert.Equal(t, []string{"Cat"}, s.Classes["Dog"].DisjointWith)
	assert.Equal(t, []string{"Dog"}, s.Classes["Cat"].DisjointWith)
}

func TestReadPropertyKindPreserved(t *testing.T) {
	s, _ := readOntology(t, animalOntology+`
ex:knows a owl:ObjectProperty ;
    rdfs:domain ex:Animal ;
    rdfs:range ex:Animal .
`)
	kind, ok := s.Slots["knows"].Annotations.Get(schema.ReservedNamespace, schema.KeyPropertyKind)
	require.True(t, ok)
	assert.Equal(t, "object", kind)

	kind, _ = s.Slots["hasName"].Annotations.Get(schema.ReservedNamespace, schema.KeyPropertyKind)
	assert.Equal(t, "data", kind)
}

func TestReadInversePopulatedBothSides(t *testing.T) {
	s, _ := readOntology(t, animalOntology+`
ex:owns a owl:ObjectProperty ;
    rdfs:range ex:Animal ;
    owl:inverseOf ex:ownedBy .
ex:ownedBy a owl:ObjectProperty ;
    rdfs:range ex:Animal .
`)
	assert.Equal(t, "ownedBy", s.Slots["owns"].Inverse)
	assert.Equal(t, "owns", s.Slots["ownedBy"].Inverse)
}

func TestReadFunctionalProperty(t *testing.T) {
	s, _ := readOntology(t, animalOntology+`
ex:hasID a owl:DatatypeProperty, owl:FunctionalProperty ;
    rdfs:range xsd:string .
`)
	assert.False(t, s.Slots["hasID"].Multivalued)
	assert.True(t, s.Slots["hasName"].Multivalued)
}

func TestReadLabelDiffersFromName(t *testing.T) {
	s, _ := readOntology(t, animalOntology+`
ex:GuideDog a owl:Class ;
    rdfs:label "Guide Dog" ;
    rdfs:subClassOf ex:Dog .
`)
	label, ok := s.Classes["GuideDog"].Annotations.Get(schema.ReservedNamespace, schema.KeyLabel)
	require.True(t, ok)
	assert.Equal(t, "Guide Dog", label)

	// A label equal to the derived name is not worth preserving.
	assert.False(t, s.Classes["Animal"].Annotations.Has(schema.ReservedNamespace, schema.KeyLabel))
}

func TestReadUnknownDatatypeWarnsAndDegrades(t *testing.T) {
	s, warnings := readOntology(t, animalOntology+`
ex:birthMonth a owl:DatatypeProperty ;
    rdfs:range xsd:gMonth .
`)
	assert.Equal(t, schema.KindString, s.Slots["birthMonth"].Range)

	require.NotEmpty(t, warnings)
	found := false
	for _, w := range warnings {
		if w.Code == format.WarnUnmappedDatatype {
			found = true
		}
	}
	assert.True(t, found)
}

func TestReadMultipleOntologyHeaders(t *testing.T) {
	s, warnings := readOntology(t, `
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
<https://example.org/first> a owl:Ontology ; rdfs:label "First" .
<https://example.org/second> a owl:Ontology ; rdfs:label "Second" .
`)
	assert.Equal(t, "First", s.Title)
	assert.Equal(t, "https://example.org/first", s.ID)

	require.Len(t, warnings, 1)
	assert.Equal(t, format.WarnMultipleOntologyHeaders, warnings[0].Code)
}

func TestReadRestrictionPreservedAsAnnotation(t *testing.T) {
	s, warnings := readOntology(t, animalOntology+`
ex:Puppy a owl:Class ;
    rdfs:subClassOf ex:Dog ;
    rdfs:subClassOf [ a owl:Restriction ;
        owl:onProperty ex:hasName ;
        owl:minCardinality 1 ] .
`)
	// The named parent still maps; the restriction becomes text.
	assert.Equal(t, "Dog", s.Classes["Puppy"].IsA)

	text, ok := s.Classes["Puppy"].Annotations.Get(schema.ReservedNamespace, "restrictions")
	require.True(t, ok)
	assert.Contains(t, text, "onProperty=hasName")
	assert.Contains(t, text, "minCardinality=1")

	found := false
	for _, w := range warnings {
		if w.Code == format.WarnUntranslatedAxiom {
			found = true
		}
	}
	assert.True(t, found)
}

func TestReadEnumFromOneOf(t *testing.T) {
	s, _ := readOntology(t, animalOntology+`
ex:CoatColor a owl:Class ;
    rdfs:comment "Coat colors." ;
    owl:equivalentClass [ owl:oneOf ( ex:black ex:brown ex:golden ) ] .
ex:black a owl:NamedIndividual .
ex:brown a owl:NamedIndividual .
ex:golden a owl:NamedIndividual .
ex:coatColor a owl:ObjectProperty ;
    rdfs:domain ex:Dog ;
    rdfs:range ex:CoatColor .
`)
	require.Contains(t, s.Enums, "CoatColor")
	e := s.Enums["CoatColor"]
	assert.Equal(t, "Coat colors.", e.Description)
	require.Len(t, e.PermissibleValues, 3)
	assert.Equal(t, "black", e.PermissibleValues[0].Text)
	assert.Equal(t, "golden", e.PermissibleValues[2].Text)

	assert.Equal(t, "CoatColor", s.Slots["coatColor"].Range)
	// Enum members are consumed, not preserved as individuals.
	assert.Empty(t, s.Individuals())
	assert.NotContains(t, s.Classes, "CoatColor")
}

func TestReadIndividualsPreserved(t *testing.T) {
	s, _ := readOntology(t, animalOntology+`
ex:rex a owl:NamedIndividual, ex:Dog ;
    rdfs:label "Rex" .
`)
	individuals := s.Individuals()
	require.Len(t, individuals, 1)
	assert.Equal(t, "https://example.org/animals/rex", individuals[0].IRI)
	assert.Equal(t, "Dog", individuals[0].Class)
	assert.Equal(t, "Rex", individuals[0].Label)
}

func TestReadCustomDatatype(t *testing.T) {
	s, _ := readOntology(t, animalOntology+`
ex:ChipID a rdfs:Datatype ;
    owl:equivalentClass xsd:long .
ex:hasChip a owl:DatatypeProperty ;
    rdfs:domain ex:Dog ;
    rdfs:range ex:ChipID .
`)
	require.Contains(t, s.Types, "ChipID")
	assert.Equal(t, schema.KindInteger, s.Types["ChipID"].Base)
	assert.Equal(t, "ChipID", s.Slots["hasChip"].Range)
}

func TestReadExternalSuperclassDropped(t *testing.T) {
	s, warnings := readOntology(t, animalOntology+`
ex:Robot a owl:Class ;
    rdfs:subClassOf owl:Thing ;
    rdfs:subClassOf <https://other.org/Machine> .
`)
	assert.Empty(t, s.Classes["Robot"].IsA)

	// owl:Thing is implicit and silent; the foreign parent warns.
	count := 0
	for _, w := range warnings {
		if w.Code == format.WarnUntranslatedAxiom {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestReadCycleIsStructuralError(t *testing.T) {
	_, _, err := (&Reader{}).Read([]byte(`
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix ex: <https://example.org/> .
ex:A a owl:Class ; rdfs:subClassOf ex:B .
ex:B a owl:Class ; rdfs:subClassOf ex:A .
`))
	require.Error(t, err)
	var structural *schema.StructuralError
	require.ErrorAs(t, err, &structural)
	assert.Contains(t, err.Error(), "inheritance cycle")
}

func TestReadParseErrorHasPosition(t *testing.T) {
	_, _, err := (&Reader{}).Read([]byte("@prefix ex: <https://example.org/> .\nex:A ex:broken"))
	require.Error(t, err)

	var parseErr *format.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}

func TestReadUndeclaredPrefix(t *testing.T) {
	_, _, err := (&Reader{}).Read([]byte("undeclared:A a undeclared:B ."))
	require.Error(t, err)

	var parseErr *format.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Msg, "undeclared")
}

func TestReadSourceFormatAnnotation(t *testing.T) {
	s, _ := readOntology(t, animalOntology)
	v, ok := s.Annotations.Get(schema.ReservedNamespace, schema.KeySourceFormat)
	require.True(t, ok)
	assert.Equal(t, "owl", v)
}

func TestReadWriteReadStable(t *testing.T) {
	s1, _ := readOntology(t, animalOntology)

	var buf bytes.Buffer
	require.NoError(t, (&rdf.TurtleWriter{}).Write(s1, &buf))

	s2, _, err := (&Reader{}).Read(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, s1.ClassNames(), s2.ClassNames())
	assert.Equal(t, s1.SlotNames(), s2.SlotNames())
	assert.Equal(t, s1.Classes["Dog"].IsA, s2.Classes["Dog"].IsA)
	assert.Equal(t, s1.Classes["Dog"].DisjointWith, s2.Classes["Dog"].DisjointWith)
	assert.Equal(t, s1.Slots["hasName"].Range, s2.Slots["hasName"].Range)
	assert.Equal(t, s1.Slots["hasName"].Domain, s2.Slots["hasName"].Domain)
}

func TestReadIndividualCommentAndValuesPreserved(t *testing.T) {
	s, _ := readOntology(t, animalOntology+`
ex:rex a owl:NamedIndividual, ex:Dog ;
    rdfs:label "Rex" ;
    rdfs:comment "A very good dog." ;
    ex:hasName "Rex the Third" ;
    ex:hasAge "7"^^xsd:integer ;
    ex:livesWith ex:mittens .
ex:mittens a owl:NamedIndividual, ex:Cat .
`)
	individuals := s.Individuals()
	require.Len(t, individuals, 2)

	rex := individuals[0]
	assert.Equal(t, "https://example.org/animals/rex", rex.IRI)
	assert.Equal(t, "Dog", rex.Class)
	assert.Equal(t, []string{"https://example.org/animals/Dog"}, rex.Types)
	assert.Equal(t, "Rex", rex.Label)
	assert.Equal(t, "A very good dog.", rex.Comment)
	require.Len(t, rex.Values, 3)
	assert.Contains(t, rex.Values, schema.PropertyValue{Property: "hasName", Value: "Rex the Third"})
	assert.Contains(t, rex.Values, schema.PropertyValue{Property: "hasAge", Value: "7"})
	assert.Contains(t, rex.Values, schema.PropertyValue{Property: "livesWith", Value: "https://example.org/animals/mittens", IsIRI: true})
}

func TestIndividualsSurviveTurtleRoundTrip(t *testing.T) {
	s1, _ := readOntology(t, animalOntology+`
ex:rex a owl:NamedIndividual, ex:Dog ;
    rdfs:label "Rex" ;
    rdfs:comment "A very good dog." ;
    ex:hasName "Rex the Third" .
`)

	var buf bytes.Buffer
	require.NoError(t, (&rdf.TurtleWriter{}).Write(s1, &buf))
	s2, _, err := (&Reader{}).Read(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, s1.Individuals(), s2.Individuals())
}

func TestEnumSurvivesTurtleRoundTrip(t *testing.T) {
	s1, _ := readOntology(t, animalOntology+`
ex:CoatColor a owl:Class ;
    rdfs:comment "Coat colors." ;
    owl:equivalentClass [ owl:oneOf ( ex:black ex:brown ) ] .
ex:black a owl:NamedIndividual .
ex:brown a owl:NamedIndividual .
`)
	require.Contains(t, s1.Enums, "CoatColor")

	var buf bytes.Buffer
	require.NoError(t, (&rdf.TurtleWriter{}).Write(s1, &buf))
	s2, _, err := (&Reader{}).Read(buf.Bytes())
	require.NoError(t, err)

	require.Contains(t, s2.Enums, "CoatColor")
	assert.NotContains(t, s2.Classes, "CoatColor")
	e := s2.Enums["CoatColor"]
	assert.Equal(t, "Coat colors.", e.Description)
	require.Len(t, e.PermissibleValues, 2)
	assert.Equal(t, "black", e.PermissibleValues[0].Text)
	assert.Equal(t, "brown", e.PermissibleValues[1].Text)
	// Enum members stay consumed on the second pass too.
	assert.Empty(t, s2.Individuals())
}

func TestReaderIdentifiers(t *testing.T) {
	assert.Equal(t, []string{"ttl", "turtle", "owl"}, (&Reader{}).Identifiers())
}

func TestUnsupportedFormatSentinel(t *testing.T) {
	reg := format.NewReaderRegistry()
	reg.Register(&Reader{})
	_, err := reg.For("owl")
	require.NoError(t, err)
	_, err = reg.For("obo")
	assert.True(t, errors.Is(err, format.ErrUnsupportedFormat))
}
