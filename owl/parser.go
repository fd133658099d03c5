package owl

import (
	"fmt"

	"github.com/c360studio/panschema/format"
	"github.com/c360studio/panschema/rdf"
)

type nodeKind int

const (
	nodeIRI nodeKind = iota
	nodeBlank
	nodeLiteral
)

// node is a parsed RDF term. Blank nodes keep their label; anonymous
// bracket nodes get a generated one.
type node struct {
	kind     nodeKind
	value    string
	datatype string
	lang     string
}

func iriNode(iri string) node     { return node{kind: nodeIRI, value: iri} }
func blankNode(label string) node { return node{kind: nodeBlank, value: "_:" + label} }

// statement is one raw triple in document order.
type statement struct {
	subject   node
	predicate node
	object    node
	line      int
}

// document is the product of the Turtle layer: raw triples plus the prefix
// declarations, before any OWL interpretation.
type document struct {
	statements []statement
	prefixes   map[string]string
	base       string
}

// parser is a single-token-lookahead recursive descent parser over the
// Turtle grammar subset used by OWL serializations: directives, triple
// blocks with ; and , separators, anonymous bracket nodes, collections,
// typed and language-tagged literals.
type parser struct {
	lex         *lexer
	tok         token
	doc         *document
	blankSerial int
}

func parseTurtle(input string) (*document, error) {
	p := &parser{
		lex: newLexer(input),
		doc: &document{prefixes: make(map[string]string)},
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.tok.kind != tokEOF {
		if err := p.parseStatement(); err != nil {
			return nil, err
		}
	}
	return p.doc, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errf(msgFormat string, args ...any) *format.ParseError {
	return &format.ParseError{
		Line:   p.tok.line,
		Column: p.tok.col,
		Token:  p.tok.value,
		Msg:    fmt.Sprintf(msgFormat, args...),
	}
}

func (p *parser) expect(kind tokenKind, what string) error {
	if p.tok.kind != kind {
		return p.errf("expected %s", what)
	}
	return p.advance()
}

func (p *parser) parseStatement() error {
	switch p.tok.kind {
	case tokPrefixDirective:
		return p.parsePrefixDirective()
	case tokBaseDirective:
		return p.parseBaseDirective()
	default:
		return p.parseTriples()
	}
}

func (p *parser) parsePrefixDirective() error {
	if err := p.advance(); err != nil {
		return err
	}
	if p.tok.kind != tokPrefixedName {
		return p.errf("expected prefix name after @prefix")
	}
	name := p.tok.value
	if len(name) == 0 || name[len(name)-1] != ':' {
		return p.errf("prefix declaration must end with a colon")
	}
	name = name[:len(name)-1]
	if err := p.advance(); err != nil {
		return err
	}
	if p.tok.kind != tokIRIRef {
		return p.errf("expected IRI after prefix name")
	}
	p.doc.prefixes[name] = p.resolveIRI(p.tok.value)
	if err := p.advance(); err != nil {
		return err
	}
	// SPARQL-style PREFIX has no terminating dot.
	if p.tok.kind == tokDot {
		return p.advance()
	}
	return nil
}

func (p *parser) parseBaseDirective() error {
	if err := p.advance(); err != nil {
		return err
	}
	if p.tok.kind != tokIRIRef {
		return p.errf("expected IRI after @base")
	}
	p.doc.base = p.tok.value
	if err := p.advance(); err != nil {
		return err
	}
	if p.tok.kind == tokDot {
		return p.advance()
	}
	return nil
}

func (p *parser) parseTriples() error {
	line := p.tok.line
	subject, err := p.parseSubject()
	if err != nil {
		return err
	}
	if err := p.parsePredicateObjectList(subject, line); err != nil {
		return err
	}
	return p.expect(tokDot, "end of statement")
}

func (p *parser) parseSubject() (node, error) {
	switch p.tok.kind {
	case tokIRIRef:
		n := iriNode(p.resolveIRI(p.tok.value))
		return n, p.advance()
	case tokPrefixedName:
		iri, err := p.expandPrefixed(p.tok.value)
		if err != nil {
			return node{}, err
		}
		return iriNode(iri), p.advance()
	case tokBlankNode:
		n := blankNode(p.tok.value)
		return n, p.advance()
	case tokOpenBracket:
		return p.parseAnonNode()
	default:
		return node{}, p.errf("expected subject")
	}
}

func (p *parser) parsePredicateObjectList(subject node, line int) error {
	for {
		predicate, err := p.parsePredicate()
		if err != nil {
			return err
		}
		if err := p.parseObjectList(subject, predicate, line); err != nil {
			return err
		}
		if p.tok.kind != tokSemicolon {
			return nil
		}
		// Consume the semicolon chain; a trailing semicolon before
		// the dot is legal Turtle.
		for p.tok.kind == tokSemicolon {
			if err := p.advance(); err != nil {
				return err
			}
		}
		if p.tok.kind == tokDot || p.tok.kind == tokCloseBracket {
			return nil
		}
	}
}

func (p *parser) parsePredicate() (node, error) {
	switch p.tok.kind {
	case tokA:
		return iriNode(rdf.RDFType), p.advance()
	case tokIRIRef:
		n := iriNode(p.resolveIRI(p.tok.value))
		return n, p.advance()
	case tokPrefixedName:
		iri, err := p.expandPrefixed(p.tok.value)
		if err != nil {
			return node{}, err
		}
		return iriNode(iri), p.advance()
	default:
		return node{}, p.errf("expected predicate")
	}
}

func (p *parser) parseObjectList(subject, predicate node, line int) error {
	for {
		object, err := p.parseObject()
		if err != nil {
			return err
		}
		p.doc.statements = append(p.doc.statements, statement{
			subject:   subject,
			predicate: predicate,
			object:    object,
			line:      line,
		})
		if p.tok.kind != tokComma {
			return nil
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
}

func (p *parser) parseObject() (node, error) {
	switch p.tok.kind {
	case tokIRIRef:
		n := iriNode(p.resolveIRI(p.tok.value))
		return n, p.advance()
	case tokPrefixedName:
		iri, err := p.expandPrefixed(p.tok.value)
		if err != nil {
			return node{}, err
		}
		return iriNode(iri), p.advance()
	case tokBlankNode:
		n := blankNode(p.tok.value)
		return n, p.advance()
	case tokOpenBracket:
		return p.parseAnonNode()
	case tokOpenParen:
		return p.parseCollection()
	case tokString:
		return p.parseLiteral()
	case tokInteger:
		n := node{kind: nodeLiteral, value: p.tok.value, datatype: rdf.XSDInteger}
		return n, p.advance()
	case tokDecimal:
		n := node{kind: nodeLiteral, value: p.tok.value, datatype: rdf.XSDNS + "decimal"}
		return n, p.advance()
	case tokBoolean:
		n := node{kind: nodeLiteral, value: p.tok.value, datatype: rdf.XSDBoolean}
		return n, p.advance()
	default:
		return node{}, p.errf("expected object")
	}
}

func (p *parser) parseLiteral() (node, error) {
	n := node{kind: nodeLiteral, value: p.tok.value}
	if err := p.advance(); err != nil {
		return node{}, err
	}
	switch p.tok.kind {
	case tokDatatypeMarker:
		if err := p.advance(); err != nil {
			return node{}, err
		}
		switch p.tok.kind {
		case tokIRIRef:
			n.datatype = p.resolveIRI(p.tok.value)
		case tokPrefixedName:
			iri, err := p.expandPrefixed(p.tok.value)
			if err != nil {
				return node{}, err
			}
			n.datatype = iri
		default:
			return node{}, p.errf("expected datatype IRI after ^^")
		}
		return n, p.advance()
	case tokLangTag:
		n.lang = p.tok.value
		return n, p.advance()
	default:
		return n, nil
	}
}

// parseAnonNode parses [ predicateObjectList ], emits the contained
// triples with a fresh blank subject, and returns that subject.
func (p *parser) parseAnonNode() (node, error) {
	line := p.tok.line
	if err := p.advance(); err != nil {
		return node{}, err
	}
	p.blankSerial++
	anon := blankNode(fmt.Sprintf("anon%d", p.blankSerial))
	if p.tok.kind == tokCloseBracket {
		return anon, p.advance()
	}
	if err := p.parsePredicateObjectList(anon, line); err != nil {
		return node{}, err
	}
	if p.tok.kind != tokCloseBracket {
		return node{}, p.errf("expected ] to close anonymous node")
	}
	return anon, p.advance()
}

// parseCollection parses ( item... ) into the standard rdf:first/rdf:rest
// linked list and returns the head node (rdf:nil for the empty list).
func (p *parser) parseCollection() (node, error) {
	line := p.tok.line
	if err := p.advance(); err != nil {
		return node{}, err
	}
	rdfFirst := iriNode(rdf.RDFNS + "first")
	rdfRest := iriNode(rdf.RDFNS + "rest")
	rdfNil := iriNode(rdf.RDFNS + "nil")

	var head, tail node
	for p.tok.kind != tokCloseParen {
		item, err := p.parseObject()
		if err != nil {
			return node{}, err
		}
		p.blankSerial++
		cell := blankNode(fmt.Sprintf("list%d", p.blankSerial))
		if head == (node{}) {
			head = cell
		} else {
			p.doc.statements = append(p.doc.statements, statement{subject: tail, predicate: rdfRest, object: cell, line: line})
		}
		p.doc.statements = append(p.doc.statements, statement{subject: cell, predicate: rdfFirst, object: item, line: line})
		tail = cell
	}
	if head == (node{}) {
		head = rdfNil
	} else {
		p.doc.statements = append(p.doc.statements, statement{subject: tail, predicate: rdfRest, object: rdfNil, line: line})
	}
	return head, p.advance()
}

func (p *parser) resolveIRI(iri string) string {
	if p.doc.base == "" || hasScheme(iri) {
		return iri
	}
	return p.doc.base + iri
}

func (p *parser) expandPrefixed(name string) (string, error) {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			prefix, local := name[:i], name[i+1:]
			expansion, ok := p.doc.prefixes[prefix]
			if !ok {
				return "", p.errf("undeclared prefix %q", prefix)
			}
			return expansion + local, nil
		}
	}
	return "", p.errf("not a prefixed name")
}

func hasScheme(iri string) bool {
	for i := 0; i < len(iri); i++ {
		c := iri[i]
		if c == ':' {
			return i > 0
		}
		isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !isAlpha && !(i > 0 && (c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'))) {
			return false
		}
	}
	return false
}
