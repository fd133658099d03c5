package panschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/panschema/format"
	"github.com/c360studio/panschema/schema"
)

const animalTTL = `
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix ex: <https://example.org/animals/> .

<https://example.org/animals> a owl:Ontology .

ex:Animal a owl:Class .
ex:Mammal a owl:Class ; rdfs:subClassOf ex:Animal .
ex:Dog a owl:Class ; rdfs:subClassOf ex:Mammal ; owl:disjointWith ex:Cat .
ex:Cat a owl:Class ; rdfs:subClassOf ex:Mammal .
ex:hasName a owl:DatatypeProperty ; rdfs:domain ex:Animal ; rdfs:range xsd:string .
`

func TestDefaultRegistries(t *testing.T) {
	readers := DefaultReaders()
	assert.Equal(t, []string{"owl", "ttl", "turtle", "yaml", "yml"}, readers.Formats())

	writers := DefaultWriters()
	assert.Equal(t, []string{"docs", "graph", "jsonld", "nt", "ntriples", "owl", "rdfxml", "ttl", "turtle", "yaml", "yml"}, writers.Formats())

	// Every reader identifier resolves to a writer too.
	for _, id := range readers.Formats() {
		_, err := writers.For(id)
		assert.NoError(t, err, id)
	}
}

func TestConvertOntologyToNative(t *testing.T) {
	res, err := Convert(DefaultReaders(), DefaultWriters(), "ttl", "yaml", []byte(animalTTL))
	require.NoError(t, err)
	require.NotNil(t, res.Schema)
	assert.NotEmpty(t, res.Output)

	out := string(res.Output)
	assert.Contains(t, out, "Dog")
	assert.Contains(t, out, "is_a: Mammal")

	// The emitted native schema reads back cleanly.
	reader, err := DefaultReaders().For("yaml")
	require.NoError(t, err)
	reread, _, err := reader.Read(res.Output)
	require.NoError(t, err)
	assert.True(t, schema.Equal(res.Schema, reread))
}

func TestConvertNativeToEveryWriter(t *testing.T) {
	native := []byte(`
name: animals
classes:
  Animal:
    slots: [hasName]
  Dog:
    is_a: Animal
slots:
  hasName:
    range: string
    domain: Animal
`)
	writers := DefaultWriters()
	for _, target := range writers.Formats() {
		res, err := Convert(DefaultReaders(), writers, "yaml", target, native)
		require.NoError(t, err, target)
		assert.NotEmpty(t, res.Output, target)
	}
}

func TestConvertUnsupportedFormats(t *testing.T) {
	_, err := Convert(DefaultReaders(), DefaultWriters(), "xml", "yaml", nil)
	assert.ErrorIs(t, err, format.ErrUnsupportedFormat)

	_, err = Convert(DefaultReaders(), DefaultWriters(), "yaml", "pdf", []byte("name: x"))
	assert.ErrorIs(t, err, format.ErrUnsupportedFormat)
}

func TestConvertFailsWithoutPartialOutput(t *testing.T) {
	res, err := Convert(DefaultReaders(), DefaultWriters(), "ttl", "yaml", []byte("ex:broken"))
	require.Error(t, err)
	assert.Nil(t, res)

	var parseErr *format.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestConvertSurfacesWarnings(t *testing.T) {
	input := animalTTL + "\n<https://example.org/second> a owl:Ontology .\n"
	res, err := Convert(DefaultReaders(), DefaultWriters(), "ttl", "yaml", []byte(input))
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, format.WarnMultipleOntologyHeaders, res.Warnings[0].Code)
}
