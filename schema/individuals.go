package schema

import (
	"sort"
	"strings"
)

// PropertyValue is one property assertion on a preserved individual.
type PropertyValue struct {
	// Property is the property's local name.
	Property string

	// Value is the asserted value: a literal's lexical form, or an IRI
	// when IsIRI is set.
	Value string

	// IsIRI marks object-valued assertions.
	IsIRI bool
}

// Individual is a preserved instance from an ontology source: schemas do
// not model instances, so readers park them on the schema's annotation set
// and ontology writers re-emit them in full.
type Individual struct {
	// IRI identifies the individual.
	IRI string

	// Class names the canonical class the individual belongs to, when
	// its type resolved to one.
	Class string

	// Types holds every asserted type IRI except owl:NamedIndividual,
	// including ones that did not resolve to a canonical class.
	Types []string

	// Label is the human-readable label, if any.
	Label string

	// Comment is the human-readable description, if any.
	Comment string

	// Values holds the individual's property assertions.
	Values []PropertyValue
}

// Name derives the individual's local name from its IRI.
func (ind Individual) Name() string {
	iri := ind.IRI
	if i := strings.LastIndex(iri, "#"); i >= 0 && i+1 < len(iri) {
		return iri[i+1:]
	}
	trimmed := strings.TrimRight(iri, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// Annotation keys under "panschema:individual:<name>". Meta keys start
// with an underscore so they cannot collide with property local names.
const (
	individualPrefix   = "individual:"
	individualKeyIRI   = "_iri"
	individualKeyClass = "_class"
	individualKeyLabel = "_label"
	individualKeyNote  = "_comment"
)

// SetIndividuals stores the individuals under the reserved annotation
// namespace: a name roster under KeyIndividuals, then one key group per
// individual carrying its IRI, types, label, comment, and property
// values. An empty list removes every stored entry.
func (s *Schema) SetIndividuals(individuals []Individual) {
	if s.Annotations == nil {
		s.Annotations = make(Annotations)
	}
	for _, key := range s.Annotations.InNamespace(ReservedNamespace) {
		if key == KeyIndividuals || strings.HasPrefix(key, individualPrefix) {
			delete(s.Annotations, ReservedNamespace+":"+key)
		}
	}
	if len(individuals) == 0 {
		return
	}

	names := make([]string, len(individuals))
	for i, ind := range individuals {
		name := ind.Name()
		names[i] = name
		base := individualPrefix + name

		s.Annotations.Set(ReservedNamespace, base, strings.Join(ind.Types, ","))
		s.Annotations.Set(ReservedNamespace, base+":"+individualKeyIRI, ind.IRI)
		if ind.Class != "" {
			s.Annotations.Set(ReservedNamespace, base+":"+individualKeyClass, ind.Class)
		}
		if ind.Label != "" {
			s.Annotations.Set(ReservedNamespace, base+":"+individualKeyLabel, ind.Label)
		}
		if ind.Comment != "" {
			s.Annotations.Set(ReservedNamespace, base+":"+individualKeyNote, ind.Comment)
		}
		for _, pv := range ind.Values {
			value := pv.Value
			if pv.IsIRI {
				value = "<" + value + ">"
			}
			key := base + ":" + pv.Property
			if prior, ok := s.Annotations.Get(ReservedNamespace, key); ok {
				value = prior + "\n" + value
			}
			s.Annotations.Set(ReservedNamespace, key, value)
		}
	}
	s.Annotations.Set(ReservedNamespace, KeyIndividuals, strings.Join(names, ","))
}

// Individuals decodes the preserved individuals, in stored order.
func (s *Schema) Individuals() []Individual {
	roster, ok := s.Annotations.Get(ReservedNamespace, KeyIndividuals)
	if !ok || roster == "" {
		return nil
	}
	out := make([]Individual, 0, strings.Count(roster, ",")+1)
	for _, name := range strings.Split(roster, ",") {
		base := individualPrefix + name
		ind := Individual{IRI: name}
		if iri, ok := s.Annotations.Get(ReservedNamespace, base+":"+individualKeyIRI); ok {
			ind.IRI = iri
		}
		if types, ok := s.Annotations.Get(ReservedNamespace, base); ok && types != "" {
			ind.Types = strings.Split(types, ",")
		}
		ind.Class, _ = s.Annotations.Get(ReservedNamespace, base+":"+individualKeyClass)
		ind.Label, _ = s.Annotations.Get(ReservedNamespace, base+":"+individualKeyLabel)
		ind.Comment, _ = s.Annotations.Get(ReservedNamespace, base+":"+individualKeyNote)
		ind.Values = decodeValues(s.Annotations, base)
		out = append(out, ind)
	}
	return out
}

// decodeValues collects the property assertions stored under one
// individual's key group, in sorted property order.
func decodeValues(a Annotations, base string) []PropertyValue {
	prefix := base + ":"
	var props []string
	for _, key := range a.InNamespace(ReservedNamespace) {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		prop := strings.TrimPrefix(key, prefix)
		if strings.HasPrefix(prop, "_") || strings.Contains(prop, ":") {
			continue
		}
		props = append(props, prop)
	}
	sort.Strings(props)

	var out []PropertyValue
	for _, prop := range props {
		raw, _ := a.Get(ReservedNamespace, prefix+prop)
		for _, value := range strings.Split(raw, "\n") {
			pv := PropertyValue{Property: prop, Value: value}
			if strings.HasPrefix(value, "<") && strings.HasSuffix(value, ">") {
				pv.IsIRI = true
				pv.Value = strings.TrimSuffix(strings.TrimPrefix(value, "<"), ">")
			}
			out = append(out, pv)
		}
	}
	return out
}
