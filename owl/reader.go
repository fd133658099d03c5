package owl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/panschema/format"
	"github.com/c360studio/panschema/rdf"
	"github.com/c360studio/panschema/schema"
)

// Reader reads Turtle-serialized OWL ontologies.
type Reader struct{}

// Identifiers returns the format identifiers handled by this reader.
func (r *Reader) Identifiers() []string {
	return []string{"ttl", "turtle", "owl"}
}

// Read parses the ontology and maps its axioms onto the canonical schema.
// Axioms with no canonical counterpart are preserved as annotations and
// reported as warnings; the returned schema is always fully validated.
func (r *Reader) Read(data []byte) (*schema.Schema, []format.Warning, error) {
	doc, err := parseTurtle(string(data))
	if err != nil {
		return nil, nil, err
	}
	m := newMapper(doc)
	return m.build()
}

// mapper groups the raw triples by subject and translates them. Subjects
// keep document order so that policy decisions phrased as "first wins"
// are deterministic.
type mapper struct {
	doc       *document
	bySubject map[string][]statement
	order     []string

	schema   *schema.Schema
	warnings []format.Warning

	// classNames maps class IRIs to canonical class names.
	classNames map[string]string
	// enumIRIs marks class IRIs recognized as enumerations.
	enumIRIs map[string]bool
	// enumMembers marks individual IRIs consumed by an enumeration.
	enumMembers map[string]bool
	// typeNames maps declared datatype IRIs to canonical type names.
	typeNames map[string]string
}

func newMapper(doc *document) *mapper {
	m := &mapper{
		doc:         doc,
		bySubject:   make(map[string][]statement),
		classNames:  make(map[string]string),
		enumIRIs:    make(map[string]bool),
		enumMembers: make(map[string]bool),
		typeNames:   make(map[string]string),
	}
	for _, st := range doc.statements {
		key := st.subject.value
		if _, seen := m.bySubject[key]; !seen {
			m.order = append(m.order, key)
		}
		m.bySubject[key] = append(m.bySubject[key], st)
	}
	return m
}

func (m *mapper) warnf(code, msgFormat string, args ...any) {
	m.warnings = append(m.warnings, format.Warnf(code, msgFormat, args...))
}

func (m *mapper) objects(subject, predicate string) []node {
	var out []node
	for _, st := range m.bySubject[subject] {
		if st.predicate.value == predicate {
			out = append(out, st.object)
		}
	}
	return out
}

func (m *mapper) firstLiteral(subject, predicate string) string {
	for _, obj := range m.objects(subject, predicate) {
		if obj.kind == nodeLiteral {
			return obj.value
		}
	}
	return ""
}

func (m *mapper) firstIRI(subject, predicate string) string {
	for _, obj := range m.objects(subject, predicate) {
		if obj.kind == nodeIRI {
			return obj.value
		}
	}
	return ""
}

func (m *mapper) hasType(subject, typeIRI string) bool {
	for _, obj := range m.objects(subject, rdf.RDFType) {
		if obj.kind == nodeIRI && obj.value == typeIRI {
			return true
		}
	}
	return false
}

// subjectsTyped returns the IRI subjects carrying the given rdf:type, in
// document order.
func (m *mapper) subjectsTyped(typeIRI string) []string {
	var out []string
	for _, subject := range m.order {
		if strings.HasPrefix(subject, "_:") {
			continue
		}
		if m.hasType(subject, typeIRI) {
			out = append(out, subject)
		}
	}
	return out
}

func (m *mapper) build() (*schema.Schema, []format.Warning, error) {
	m.buildHeader()
	if err := m.buildEnums(); err != nil {
		return nil, nil, err
	}
	if err := m.buildClasses(); err != nil {
		return nil, nil, err
	}
	m.buildTypes()
	if err := m.buildProperties(); err != nil {
		return nil, nil, err
	}
	m.buildClassDetails()
	m.buildIndividuals()

	m.schema.Annotations.Set(schema.ReservedNamespace, schema.KeySourceFormat, "owl")

	m.schema.Normalize()
	if err := m.schema.Validate(); err != nil {
		return nil, nil, err
	}
	return m.schema, m.warnings, nil
}

// buildHeader locates the ontology header and lifts its metadata onto the
// schema. With several headers, the first in document order wins.
func (m *mapper) buildHeader() {
	headers := m.subjectsTyped(rdf.OWLOntology)
	if len(headers) > 1 {
		m.warnf(format.WarnMultipleOntologyHeaders,
			"found %d ontology headers, keeping %s", len(headers), headers[0])
	}

	name := "ontology"
	if len(headers) > 0 {
		if n := localName(headers[0]); n != "" {
			name = n
		}
	}
	m.schema = schema.New(name)

	for prefix, expansion := range m.doc.prefixes {
		m.schema.Prefixes[prefix] = expansion
	}

	if len(headers) == 0 {
		return
	}
	iri := headers[0]
	m.schema.ID = iri
	m.schema.Title = m.firstLiteral(iri, rdf.RDFSLabel)
	m.schema.Description = m.firstLiteral(iri, rdf.RDFSComment)
	m.schema.Version = m.firstLiteral(iri, rdf.OWLVersionInfo)
	m.schema.Created = m.firstLiteral(iri, rdf.DCTermsCreated)
	m.schema.Modified = m.firstLiteral(iri, rdf.DCTermsModified)
	if license := m.firstIRI(iri, rdf.DCTermsLicense); license != "" {
		m.schema.License = license
	}
	for _, obj := range m.objects(iri, rdf.DCTermsCreator) {
		if obj.kind == nodeLiteral {
			m.schema.Contributors = append(m.schema.Contributors, schema.Contributor{Name: obj.value})
		}
	}
	for _, obj := range m.objects(iri, rdf.OWLImports) {
		if obj.kind == nodeIRI {
			m.schema.Imports = append(m.schema.Imports, obj.value)
		}
	}
}

// buildEnums recognizes the owl:oneOf idiom: a class equivalent to an
// enumeration of individuals becomes a canonical enum, and its members are
// consumed so they are not preserved again as individuals.
func (m *mapper) buildEnums() error {
	for _, classIRI := range m.subjectsTyped(rdf.OWLClass) {
		members, ok := m.oneOfMembers(classIRI)
		if !ok {
			continue
		}
		name := localName(classIRI)
		if name == "" {
			return &format.MappingError{Subject: classIRI, Detail: "cannot derive an enum name"}
		}
		if _, dup := m.schema.Enums[name]; dup {
			return &format.MappingError{Subject: classIRI, Detail: fmt.Sprintf("duplicate enum name %q", name)}
		}

		e := schema.NewEnum(name)
		e.Description = m.firstLiteral(classIRI, rdf.RDFSComment)
		m.applyLabel(e.Annotations, classIRI, name)
		for _, member := range members {
			pv := schema.PermissibleValue{Text: localName(member)}
			if comment := m.firstLiteral(member, rdf.RDFSComment); comment != "" {
				pv.Description = comment
			} else if label := m.firstLiteral(member, rdf.RDFSLabel); label != "" && label != pv.Text {
				pv.Description = label
			}
			if match := m.firstIRI(member, rdf.SKOSExactMatch); match != "" {
				pv.Meaning = match
			}
			e.PermissibleValues = append(e.PermissibleValues, pv)
			m.enumMembers[member] = true
		}
		m.schema.Enums[name] = e
		m.enumIRIs[classIRI] = true
	}
	return nil
}

// oneOfMembers returns the member IRIs when the class is equivalent to an
// owl:oneOf enumeration, either via an equivalentClass blank node or a
// direct owl:oneOf on the class.
func (m *mapper) oneOfMembers(classIRI string) ([]string, bool) {
	var heads []string
	for _, obj := range m.objects(classIRI, rdf.OWLNS+"equivalentClass") {
		if obj.kind != nodeBlank {
			continue
		}
		if head := m.firstAny(obj.value, rdf.OWLNS+"oneOf"); head != nil {
			heads = append(heads, head.value)
		}
	}
	if head := m.firstAny(classIRI, rdf.OWLNS+"oneOf"); head != nil {
		heads = append(heads, head.value)
	}

	for _, head := range heads {
		var members []string
		for _, item := range m.collectList(head) {
			if item.kind == nodeIRI {
				members = append(members, item.value)
			}
		}
		if len(members) > 0 {
			return members, true
		}
	}
	return nil, false
}

func (m *mapper) firstAny(subject, predicate string) *node {
	objs := m.objects(subject, predicate)
	if len(objs) == 0 {
		return nil
	}
	return &objs[0]
}

// collectList walks an rdf:first/rdf:rest chain.
func (m *mapper) collectList(head string) []node {
	var out []node
	seen := make(map[string]bool)
	for head != "" && head != rdf.RDFNS+"nil" && !seen[head] {
		seen[head] = true
		first := m.firstAny(head, rdf.RDFNS+"first")
		if first == nil {
			break
		}
		out = append(out, *first)
		rest := m.firstAny(head, rdf.RDFNS+"rest")
		if rest == nil {
			break
		}
		head = rest.value
	}
	return out
}

// buildClasses registers every named class and assigns canonical names.
// Two IRIs collapsing onto one local name cannot both be represented.
func (m *mapper) buildClasses() error {
	for _, classIRI := range m.subjectsTyped(rdf.OWLClass) {
		if m.enumIRIs[classIRI] {
			continue
		}
		name := localName(classIRI)
		if name == "" {
			return &format.MappingError{Subject: classIRI, Detail: "cannot derive a class name"}
		}
		if _, dup := m.schema.Classes[name]; dup {
			return &format.MappingError{Subject: classIRI, Detail: fmt.Sprintf("duplicate class name %q", name)}
		}
		c := schema.NewClass(name)
		c.ClassURI = classIRI
		m.schema.Classes[name] = c
		m.classNames[classIRI] = name
	}
	return nil
}

// buildClassDetails fills hierarchy and documentation once every class
// name is known, so forward references resolve regardless of declaration
// order.
func (m *mapper) buildClassDetails() {
	for _, classIRI := range m.subjectsTyped(rdf.OWLClass) {
		name, ok := m.classNames[classIRI]
		if !ok {
			continue
		}
		c := m.schema.Classes[name]
		c.Description = m.firstLiteral(classIRI, rdf.RDFSComment)
		m.applyLabel(c.Annotations, classIRI, name)

		var restrictions []string
		for _, parent := range m.objects(classIRI, rdf.RDFSSubClassOf) {
			switch parent.kind {
			case nodeIRI:
				parentName, known := m.classNames[parent.value]
				if !known {
					// owl:Thing is implicit; anything else
					// defined outside this document cannot be
					// represented as a parent.
					if parent.value != rdf.OWLNS+"Thing" {
						m.warnf(format.WarnUntranslatedAxiom,
							"class %s: external superclass %s dropped", name, parent.value)
					}
					continue
				}
				// The first named superclass is the primary
				// parent; the rest are mixins.
				if c.IsA == "" {
					c.IsA = parentName
				} else {
					c.Mixins = append(c.Mixins, parentName)
				}
			case nodeBlank:
				restrictions = append(restrictions, m.describeBlank(parent.value))
				m.warnf(format.WarnUntranslatedAxiom,
					"class %s: restriction preserved as annotation", name)
			}
		}
		if len(restrictions) > 0 {
			c.Annotations.Set(schema.ReservedNamespace, "restrictions", strings.Join(restrictions, "; "))
		}

		for _, obj := range m.objects(classIRI, rdf.OWLDisjointWith) {
			if obj.kind != nodeIRI {
				continue
			}
			if other, known := m.classNames[obj.value]; known {
				c.DisjointWith = append(c.DisjointWith, other)
			} else {
				m.warnf(format.WarnUntranslatedAxiom,
					"class %s: disjointness with external class %s dropped", name, obj.value)
			}
		}
	}
}

// buildTypes lifts declared custom datatypes into canonical types.
func (m *mapper) buildTypes() {
	for _, typeIRI := range m.subjectsTyped(rdf.RDFSDatatype) {
		name := localName(typeIRI)
		if name == "" {
			continue
		}
		t := schema.NewType(name)
		t.URI = typeIRI
		t.Description = m.firstLiteral(typeIRI, rdf.RDFSComment)
		t.Base = schema.KindString
		if equivalent := m.firstIRI(typeIRI, rdf.OWLEquivalentClass); equivalent != "" {
			if kind, ok := rdf.XSDToScalar(equivalent); ok {
				t.Base = kind
			}
		}
		m.schema.Types[name] = t
		m.typeNames[typeIRI] = name
	}
}

// buildProperties maps object and data properties to slots. The property
// kind is preserved as an annotation so a later ontology writer can emit
// the same axiom even when the mapped range is ambiguous.
func (m *mapper) buildProperties() error {
	process := func(propIRI, kind string) error {
		name := localName(propIRI)
		if name == "" {
			return &format.MappingError{Subject: propIRI, Detail: "cannot derive a slot name"}
		}
		if _, dup := m.schema.Slots[name]; dup {
			return &format.MappingError{Subject: propIRI, Detail: fmt.Sprintf("duplicate slot name %q", name)}
		}

		sl := schema.NewSlot(name)
		sl.SlotURI = propIRI
		sl.Description = m.firstLiteral(propIRI, rdf.RDFSComment)
		sl.Multivalued = !m.hasType(propIRI, rdf.OWLFunctionalProp)
		sl.Annotations.Set(schema.ReservedNamespace, schema.KeyPropertyKind, kind)
		m.applyLabel(sl.Annotations, propIRI, name)

		if domain := m.firstAny(propIRI, rdf.RDFSDomain); domain != nil {
			switch domain.kind {
			case nodeIRI:
				if className, ok := m.classNames[domain.value]; ok {
					sl.Domain = className
					owner := m.schema.Classes[className]
					owner.Slots = append(owner.Slots, name)
				} else {
					m.warnf(format.WarnUntranslatedAxiom,
						"property %s: external domain %s dropped", name, domain.value)
				}
			case nodeBlank:
				m.warnf(format.WarnUntranslatedAxiom,
					"property %s: complex domain dropped", name)
			}
		}

		if rangeNode := m.firstAny(propIRI, rdf.RDFSRange); rangeNode != nil {
			sl.Range = m.mapRange(name, rangeNode)
		}

		if inverse := m.firstIRI(propIRI, rdf.OWLInverseOf); inverse != "" {
			sl.Inverse = localName(inverse)
		}

		m.schema.Slots[name] = sl
		return nil
	}

	for _, propIRI := range m.subjectsTyped(rdf.OWLObjectProperty) {
		if err := process(propIRI, "object"); err != nil {
			return err
		}
	}
	for _, propIRI := range m.subjectsTyped(rdf.OWLDatatypeProperty) {
		if err := process(propIRI, "data"); err != nil {
			return err
		}
	}

	// Inverse references are recorded by local name before the other
	// side is necessarily built; drop those that never materialized.
	for _, name := range m.schema.SlotNames() {
		sl := m.schema.Slots[name]
		if sl.Inverse == "" {
			continue
		}
		if _, ok := m.schema.Slots[sl.Inverse]; !ok {
			m.warnf(format.WarnUntranslatedAxiom,
				"property %s: inverse %s not defined in this document, dropped", name, sl.Inverse)
			sl.Inverse = ""
		}
	}
	return nil
}

// mapRange translates an rdfs:range object into a canonical range name.
// Unknown XSD datatypes degrade to string with a warning; unknown IRIs
// keep their local name and fail validation as unresolved references.
func (m *mapper) mapRange(slotName string, rangeNode *node) string {
	if rangeNode.kind == nodeBlank {
		m.warnf(format.WarnUntranslatedAxiom, "property %s: complex range dropped", slotName)
		return ""
	}
	iri := rangeNode.value
	if className, ok := m.classNames[iri]; ok {
		return className
	}
	if m.enumIRIs[iri] {
		return localName(iri)
	}
	if typeName, ok := m.typeNames[iri]; ok {
		return typeName
	}
	if rdf.IsXSDDatatype(iri) {
		if kind, ok := rdf.XSDToScalar(iri); ok {
			return kind
		}
		m.warnf(format.WarnUnmappedDatatype,
			"property %s: unknown datatype %s treated as string", slotName, iri)
		return schema.KindString
	}
	return localName(iri)
}

// buildIndividuals preserves named individuals that are not enum members:
// every type assertion, label, comment, and property value survives the
// translation.
func (m *mapper) buildIndividuals() {
	var individuals []schema.Individual
	for _, subject := range m.subjectsTyped(rdf.OWLNamedIndividual) {
		if m.enumMembers[subject] {
			continue
		}
		ind := schema.Individual{
			IRI:     subject,
			Label:   m.firstLiteral(subject, rdf.RDFSLabel),
			Comment: m.firstLiteral(subject, rdf.RDFSComment),
		}
		for _, obj := range m.objects(subject, rdf.RDFType) {
			if obj.kind != nodeIRI || obj.value == rdf.OWLNamedIndividual {
				continue
			}
			ind.Types = append(ind.Types, obj.value)
			if className, ok := m.classNames[obj.value]; ok && ind.Class == "" {
				ind.Class = className
			}
		}
		for _, st := range m.bySubject[subject] {
			switch st.predicate.value {
			case rdf.RDFType, rdf.RDFSLabel, rdf.RDFSComment:
				continue
			}
			prop := localName(st.predicate.value)
			switch st.object.kind {
			case nodeLiteral:
				ind.Values = append(ind.Values, schema.PropertyValue{Property: prop, Value: st.object.value})
			case nodeIRI:
				ind.Values = append(ind.Values, schema.PropertyValue{Property: prop, Value: st.object.value, IsIRI: true})
			default:
				m.warnf(format.WarnUntranslatedAxiom,
					"individual %s: blank node value for %s dropped", subject, prop)
			}
		}
		individuals = append(individuals, ind)
	}
	m.schema.SetIndividuals(individuals)
}

// applyLabel records an rdfs:label annotation when it differs from the
// derived name.
func (m *mapper) applyLabel(a schema.Annotations, subject, name string) {
	if label := m.firstLiteral(subject, rdf.RDFSLabel); label != "" && label != name {
		a.Set(schema.ReservedNamespace, schema.KeyLabel, label)
	}
}

// describeBlank renders a blank node's statements as readable text for
// annotation preservation.
func (m *mapper) describeBlank(subject string) string {
	stmts := m.bySubject[subject]
	parts := make([]string, 0, len(stmts))
	for _, st := range stmts {
		pred := localName(st.predicate.value)
		var obj string
		switch st.object.kind {
		case nodeLiteral:
			obj = st.object.value
		case nodeBlank:
			obj = "(" + m.describeBlank(st.object.value) + ")"
		default:
			obj = localName(st.object.value)
		}
		parts = append(parts, pred+"="+obj)
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

// localName derives an entity name from an IRI: the fragment when one is
// present, otherwise the last path segment.
func localName(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 && i+1 < len(iri) {
		return iri[i+1:]
	}
	trimmed := strings.TrimRight(iri, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
