// Package rdf turns the canonical schema into a deterministic triple graph
// and serializes that graph as Turtle, N-Triples, JSON-LD, or RDF/XML.
// All writers share one graph-building step; only the serialization
// grammar differs, so the formats can never drift apart semantically.
package rdf

import "strings"

// Well-known vocabulary namespaces.
const (
	RDFNS     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNS    = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNS     = "http://www.w3.org/2002/07/owl#"
	XSDNS     = "http://www.w3.org/2001/XMLSchema#"
	DCTermsNS = "http://purl.org/dc/terms/"
	SKOSNS    = "http://www.w3.org/2004/02/skos/core#"
)

// Frequently used vocabulary terms.
const (
	RDFType  = RDFNS + "type"
	RDFFirst = RDFNS + "first"
	RDFRest  = RDFNS + "rest"
	RDFNil   = RDFNS + "nil"

	RDFSLabel      = RDFSNS + "label"
	RDFSComment    = RDFSNS + "comment"
	RDFSSubClassOf = RDFSNS + "subClassOf"
	RDFSDomain     = RDFSNS + "domain"
	RDFSRange      = RDFSNS + "range"
	RDFSDatatype   = RDFSNS + "Datatype"

	OWLOntology         = OWLNS + "Ontology"
	OWLClass            = OWLNS + "Class"
	OWLObjectProperty   = OWLNS + "ObjectProperty"
	OWLDatatypeProperty = OWLNS + "DatatypeProperty"
	OWLNamedIndividual  = OWLNS + "NamedIndividual"
	OWLDisjointWith     = OWLNS + "disjointWith"
	OWLInverseOf        = OWLNS + "inverseOf"
	OWLImports          = OWLNS + "imports"
	OWLVersionInfo      = OWLNS + "versionInfo"
	OWLEquivalentClass  = OWLNS + "equivalentClass"
	OWLOneOf            = OWLNS + "oneOf"
	OWLFunctionalProp   = OWLNS + "FunctionalProperty"

	DCTermsLicense  = DCTermsNS + "license"
	DCTermsCreator  = DCTermsNS + "creator"
	DCTermsCreated  = DCTermsNS + "created"
	DCTermsModified = DCTermsNS + "modified"

	SKOSExactMatch = SKOSNS + "exactMatch"

	XSDString  = XSDNS + "string"
	XSDBoolean = XSDNS + "boolean"
	XSDInteger = XSDNS + "integer"
	XSDDouble  = XSDNS + "double"
	XSDDate    = XSDNS + "date"
	XSDateTime = XSDNS + "dateTime"
	XSDAnyURI  = XSDNS + "anyURI"
)

// scalarToXSD maps canonical scalar kinds to their XSD datatype IRIs.
var scalarToXSD = map[string]string{
	"string":   XSDString,
	"integer":  XSDInteger,
	"float":    XSDDouble,
	"boolean":  XSDBoolean,
	"date":     XSDDate,
	"datetime": XSDateTime,
	"uri":      XSDAnyURI,
}

// xsdToScalar maps XSD datatype local names to canonical scalar kinds.
// Numeric subtypes collapse onto integer and float.
var xsdToScalar = map[string]string{
	"string":             "string",
	"normalizedString":   "string",
	"token":              "string",
	"boolean":            "boolean",
	"integer":            "integer",
	"int":                "integer",
	"long":               "integer",
	"short":              "integer",
	"byte":               "integer",
	"nonNegativeInteger": "integer",
	"positiveInteger":    "integer",
	"unsignedInt":        "integer",
	"unsignedLong":       "integer",
	"float":              "float",
	"double":             "float",
	"decimal":            "float",
	"date":               "date",
	"dateTime":           "datetime",
	"anyURI":             "uri",
}

// ScalarToXSD returns the XSD datatype IRI for a canonical scalar kind.
func ScalarToXSD(kind string) (string, bool) {
	iri, ok := scalarToXSD[kind]
	return iri, ok
}

// XSDToScalar maps an XSD datatype IRI to a canonical scalar kind. The
// second result is false when the IRI is not in the XSD namespace or the
// local name is unknown; callers fall back to string with a warning.
func XSDToScalar(iri string) (string, bool) {
	local, ok := strings.CutPrefix(iri, XSDNS)
	if !ok {
		return "", false
	}
	kind, ok := xsdToScalar[local]
	return kind, ok
}

// IsXSDDatatype reports whether the IRI lives in the XSD namespace.
func IsXSDDatatype(iri string) bool {
	return strings.HasPrefix(iri, XSDNS)
}
