// Package schema defines the canonical in-memory representation that every
// reader produces and every writer consumes. It is pure data: no I/O, no
// format knowledge. Format-specific detail that has no field here is carried
// in namespaced annotations so that no reader has to drop information.
package schema

import "sort"

// Scalar kinds recognized as built-in slot ranges.
const (
	KindString   = "string"
	KindInteger  = "integer"
	KindFloat    = "float"
	KindBoolean  = "boolean"
	KindDate     = "date"
	KindDatetime = "datetime"
	KindURI      = "uri"
)

// scalarKinds is the closed set of canonical scalar range names.
var scalarKinds = map[string]bool{
	KindString:   true,
	KindInteger:  true,
	KindFloat:    true,
	KindBoolean:  true,
	KindDate:     true,
	KindDatetime: true,
	KindURI:      true,
}

// IsScalarKind reports whether name is one of the canonical scalar kinds.
func IsScalarKind(name string) bool {
	return scalarKinds[name]
}

// ScalarKinds returns the canonical scalar kind names in sorted order.
func ScalarKinds() []string {
	kinds := make([]string, 0, len(scalarKinds))
	for k := range scalarKinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Contributor records schema authorship metadata.
type Contributor struct {
	Name  string `yaml:"name" json:"name"`
	ORCID string `yaml:"orcid,omitempty" json:"orcid,omitempty"`
	Role  string `yaml:"role,omitempty" json:"role,omitempty"`
}

// Schema is the root of the canonical model. It owns every child entity;
// classes, slots, enums and types have no lifetime outside their schema.
type Schema struct {
	// Name is the machine-readable schema identifier.
	Name string `yaml:"name" json:"name"`

	// ID is the official URI for the schema, when known.
	ID string `yaml:"id,omitempty" json:"id,omitempty"`

	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
	License     string `yaml:"license,omitempty" json:"license,omitempty"`

	Contributors []Contributor `yaml:"contributors,omitempty" json:"contributors,omitempty"`

	// Created and Modified are ISO 8601 dates.
	Created  string `yaml:"created,omitempty" json:"created,omitempty"`
	Modified string `yaml:"modified,omitempty" json:"modified,omitempty"`

	// Imports lists identifiers of imported schemas or ontologies.
	Imports []string `yaml:"imports,omitempty" json:"imports,omitempty"`

	// Prefixes maps short names to IRI expansions for compact identifiers.
	Prefixes map[string]string `yaml:"prefixes,omitempty" json:"prefixes,omitempty"`

	DefaultPrefix string `yaml:"default_prefix,omitempty" json:"default_prefix,omitempty"`
	DefaultRange  string `yaml:"default_range,omitempty" json:"default_range,omitempty"`

	Classes map[string]*Class `yaml:"classes,omitempty" json:"classes,omitempty"`
	Slots   map[string]*Slot  `yaml:"slots,omitempty" json:"slots,omitempty"`
	Enums   map[string]*Enum  `yaml:"enums,omitempty" json:"enums,omitempty"`
	Types   map[string]*Type  `yaml:"types,omitempty" json:"types,omitempty"`

	Annotations Annotations `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// New creates an empty schema with the given name.
func New(name string) *Schema {
	return &Schema{
		Name:        name,
		Prefixes:    make(map[string]string),
		Classes:     make(map[string]*Class),
		Slots:       make(map[string]*Slot),
		Enums:       make(map[string]*Enum),
		Types:       make(map[string]*Type),
		Annotations: make(Annotations),
	}
}

// DisplayTitle returns the human-readable title, falling back to the name.
func (s *Schema) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Name
}

// ClassNames returns all class names in sorted order. Writers iterate the
// sorted lists so that output is deterministic for a given schema.
func (s *Schema) ClassNames() []string {
	return sortedKeys(s.Classes)
}

// SlotNames returns all schema-level slot names in sorted order.
func (s *Schema) SlotNames() []string {
	return sortedKeys(s.Slots)
}

// EnumNames returns all enum names in sorted order.
func (s *Schema) EnumNames() []string {
	return sortedKeys(s.Enums)
}

// TypeNames returns all type names in sorted order.
func (s *Schema) TypeNames() []string {
	return sortedKeys(s.Types)
}

// PrefixNames returns all prefix short names in sorted order.
func (s *Schema) PrefixNames() []string {
	names := make([]string, 0, len(s.Prefixes))
	for name := range s.Prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Class is a class definition: single is_a parent, ordered mixins, owned
// slot names and inline class-scoped attributes.
type Class struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// IsA names the single primary parent class, if any.
	IsA string `yaml:"is_a,omitempty" json:"is_a,omitempty"`

	// Mixins lists secondary parents in declaration order. Earlier mixins
	// win slot-name conflicts over later ones.
	Mixins []string `yaml:"mixins,omitempty" json:"mixins,omitempty"`

	Abstract bool `yaml:"abstract,omitempty" json:"abstract,omitempty"`

	// Mixin marks a class intended only for mixing into others.
	Mixin bool `yaml:"mixin,omitempty" json:"mixin,omitempty"`

	// Slots lists the names of schema-level slots owned by this class,
	// in declaration order.
	Slots []string `yaml:"slots,omitempty" json:"slots,omitempty"`

	// Attributes holds inline slot definitions scoped to this class.
	Attributes map[string]*Slot `yaml:"attributes,omitempty" json:"attributes,omitempty"`

	// DisjointWith lists classes declared disjoint with this one. The
	// relation is symmetric: normalization materializes both directions.
	DisjointWith []string `yaml:"disjoint_with,omitempty" json:"disjoint_with,omitempty"`

	// ClassURI preserves the source identifier for lossless re-emission.
	ClassURI string `yaml:"class_uri,omitempty" json:"class_uri,omitempty"`

	Annotations Annotations `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// NewClass creates a class with the given name.
func NewClass(name string) *Class {
	return &Class{Name: name, Annotations: make(Annotations)}
}

// AttributeNames returns the class-scoped attribute names in sorted order.
func (c *Class) AttributeNames() []string {
	return sortedKeys(c.Attributes)
}

// Slot is a property definition: its range names a class, enum, type, or a
// canonical scalar kind.
type Slot struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Range names the entity or scalar kind this slot's values take.
	Range string `yaml:"range,omitempty" json:"range,omitempty"`

	// Domain names the class that owns this slot, when declared.
	Domain string `yaml:"domain,omitempty" json:"domain,omitempty"`

	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Multivalued bool   `yaml:"multivalued,omitempty" json:"multivalued,omitempty"`
	Identifier  bool   `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Pattern     string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// Inverse names the slot forming the other direction of a
	// bidirectional relationship. Populated on both sides.
	Inverse string `yaml:"inverse,omitempty" json:"inverse,omitempty"`

	// SlotURI preserves the source identifier for lossless re-emission.
	SlotURI string `yaml:"slot_uri,omitempty" json:"slot_uri,omitempty"`

	Annotations Annotations `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// NewSlot creates a slot with the given name.
func NewSlot(name string) *Slot {
	return &Slot{Name: name, Annotations: make(Annotations)}
}

// PermissibleValue is one allowed literal of an enum.
type PermissibleValue struct {
	Text        string `yaml:"text" json:"text"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Meaning is an optional URI giving the value a semantic anchor.
	Meaning string `yaml:"meaning,omitempty" json:"meaning,omitempty"`
}

// Enum is an enumeration with an ordered list of permissible values.
type Enum struct {
	Name             string             `yaml:"name" json:"name"`
	Description      string             `yaml:"description,omitempty" json:"description,omitempty"`
	PermissibleValues []PermissibleValue `yaml:"permissible_values,omitempty" json:"permissible_values,omitempty"`
	Annotations      Annotations        `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// NewEnum creates an enum with the given name.
func NewEnum(name string) *Enum {
	return &Enum{Name: name, Annotations: make(Annotations)}
}

// Type is a named scalar type with a canonical base representation.
type Type struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Base is the canonical scalar kind this type represents.
	Base string `yaml:"base,omitempty" json:"base,omitempty"`

	// URI is the underlying datatype identifier (e.g. an XSD datatype).
	URI string `yaml:"uri,omitempty" json:"uri,omitempty"`

	Pattern     string      `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Annotations Annotations `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// NewType creates a type with the given name.
func NewType(name string) *Type {
	return &Type{Name: name, Annotations: make(Annotations)}
}
