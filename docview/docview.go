// Package docview projects the canonical schema into structured view data
// for documentation rendering. The projection is a pure function of the
// model: two inputs describing the same domain in different source formats
// produce structurally identical view data, differing only in sections
// driven by preserved annotations.
package docview

import (
	"sort"

	"github.com/c360studio/panschema/schema"
)

// RangeKind classifies what a slot's range resolved to.
type RangeKind string

const (
	RangeClass  RangeKind = "class"
	RangeEnum   RangeKind = "enum"
	RangeType   RangeKind = "type"
	RangeScalar RangeKind = "scalar"
)

// RangeRef is a resolved range: linkable for classes, enums and types, a
// plain label for scalars.
type RangeRef struct {
	Name string    `json:"name"`
	Kind RangeKind `json:"kind"`
}

// SlotRow is one row of a class's effective slot table.
type SlotRow struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Range       RangeRef `json:"range"`
	Required    bool     `json:"required,omitempty"`
	Multivalued bool     `json:"multivalued,omitempty"`
	Identifier  bool     `json:"identifier,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
	Inverse     string   `json:"inverse,omitempty"`

	// DefinedIn names the class whose definition won resolution; equal
	// to the owning class for its own slots.
	DefinedIn string `json:"defined_in"`
}

// UsedByRef is a cross-reference: a slot somewhere in the schema whose
// range points at this entity.
type UsedByRef struct {
	Class string `json:"class,omitempty"`
	Slot  string `json:"slot"`
}

// ClassView is the documentation projection of one class.
type ClassView struct {
	Name         string      `json:"name"`
	Label        string      `json:"label,omitempty"`
	Description  string      `json:"description,omitempty"`
	Abstract     bool        `json:"abstract,omitempty"`
	IsA          string      `json:"is_a,omitempty"`
	Ancestors    []string    `json:"ancestors,omitempty"`
	Descendants  []string    `json:"descendants,omitempty"`
	Mixins       []string    `json:"mixins,omitempty"`
	DisjointWith []string    `json:"disjoint_with,omitempty"`
	Slots        []SlotRow   `json:"slots,omitempty"`
	UsedBy       []UsedByRef `json:"used_by,omitempty"`

	// Restrictions holds preserved untranslatable axiom text, shown as
	// an optional format-specific section.
	Restrictions string `json:"restrictions,omitempty"`
}

// ValueView is one permissible value of an enum.
type ValueView struct {
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
	Meaning     string `json:"meaning,omitempty"`
}

// EnumView is the documentation projection of one enum.
type EnumView struct {
	Name        string      `json:"name"`
	Label       string      `json:"label,omitempty"`
	Description string      `json:"description,omitempty"`
	Values      []ValueView `json:"values,omitempty"`
	UsedBy      []UsedByRef `json:"used_by,omitempty"`
}

// TypeView is the documentation projection of one named type.
type TypeView struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Base        string      `json:"base,omitempty"`
	URI         string      `json:"uri,omitempty"`
	Pattern     string      `json:"pattern,omitempty"`
	UsedBy      []UsedByRef `json:"used_by,omitempty"`
}

// IndividualView is a preserved instance shown in an optional section.
type IndividualView struct {
	IRI     string            `json:"iri"`
	Class   string            `json:"class,omitempty"`
	Label   string            `json:"label,omitempty"`
	Comment string            `json:"comment,omitempty"`
	Values  []IndividualValue `json:"values,omitempty"`
}

// IndividualValue is one property assertion on a preserved instance.
type IndividualValue struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// ViewData is everything a documentation template needs, pre-resolved.
type ViewData struct {
	Name         string           `json:"name"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	Version      string           `json:"version,omitempty"`
	License      string           `json:"license,omitempty"`
	SourceFormat string           `json:"source_format,omitempty"`
	Classes      []ClassView      `json:"classes,omitempty"`
	Enums        []EnumView       `json:"enums,omitempty"`
	Types        []TypeView       `json:"types,omitempty"`
	Individuals  []IndividualView `json:"individuals,omitempty"`
}

// Project computes the documentation view. Classes, enums and types are
// visited in sorted name order, so the projection is deterministic and
// independent of which reader produced the model.
func Project(s *schema.Schema) (*ViewData, error) {
	v := &ViewData{
		Name:        s.Name,
		Title:       s.DisplayTitle(),
		Description: s.Description,
		Version:     s.Version,
		License:     s.License,
	}
	if sf, ok := s.Annotations.Get(schema.ReservedNamespace, schema.KeySourceFormat); ok {
		v.SourceFormat = sf
	}

	usedBy := collectUsedBy(s)

	for _, name := range s.ClassNames() {
		cv, err := projectClass(s, s.Classes[name], usedBy[name])
		if err != nil {
			return nil, err
		}
		v.Classes = append(v.Classes, cv)
	}
	for _, name := range s.EnumNames() {
		v.Enums = append(v.Enums, projectEnum(s.Enums[name], usedBy[name]))
	}
	for _, name := range s.TypeNames() {
		t := s.Types[name]
		v.Types = append(v.Types, TypeView{
			Name:        t.Name,
			Description: t.Description,
			Base:        t.Base,
			URI:         t.URI,
			Pattern:     t.Pattern,
			UsedBy:      usedBy[name],
		})
	}
	for _, ind := range s.Individuals() {
		iv := IndividualView{
			IRI:     ind.IRI,
			Class:   ind.Class,
			Label:   ind.Label,
			Comment: ind.Comment,
		}
		for _, pv := range ind.Values {
			iv.Values = append(iv.Values, IndividualValue{Property: pv.Property, Value: pv.Value})
		}
		v.Individuals = append(v.Individuals, iv)
	}

	return v, nil
}

func projectClass(s *schema.Schema, c *schema.Class, usedBy []UsedByRef) (ClassView, error) {
	cv := ClassView{
		Name:         c.Name,
		Description:  c.Description,
		Abstract:     c.Abstract,
		IsA:          c.IsA,
		Mixins:       c.Mixins,
		DisjointWith: c.DisjointWith,
		UsedBy:       usedBy,
		Descendants:  s.Descendants(c.Name),
	}
	if label, ok := c.Annotations.Get(schema.ReservedNamespace, schema.KeyLabel); ok {
		cv.Label = label
	}
	if text, ok := c.Annotations.Get(schema.ReservedNamespace, "restrictions"); ok {
		cv.Restrictions = text
	}

	ancestors, err := s.Ancestors(c.Name)
	if err != nil {
		return ClassView{}, err
	}
	cv.Ancestors = ancestors

	resolved, err := s.ResolvedSlots(c.Name)
	if err != nil {
		return ClassView{}, err
	}
	for _, r := range resolved {
		cv.Slots = append(cv.Slots, SlotRow{
			Name:        r.Slot.Name,
			Description: r.Slot.Description,
			Range:       resolveRange(s, r.Slot.Range),
			Required:    r.Slot.Required,
			Multivalued: r.Slot.Multivalued,
			Identifier:  r.Slot.Identifier,
			Pattern:     r.Slot.Pattern,
			Inverse:     r.Slot.Inverse,
			DefinedIn:   r.DefinedIn,
		})
	}
	// Rows are sorted by name so the table does not depend on slot
	// declaration order, which varies across source formats.
	sort.Slice(cv.Slots, func(i, j int) bool { return cv.Slots[i].Name < cv.Slots[j].Name })
	return cv, nil
}

func projectEnum(e *schema.Enum, usedBy []UsedByRef) EnumView {
	ev := EnumView{
		Name:        e.Name,
		Description: e.Description,
		UsedBy:      usedBy,
	}
	if label, ok := e.Annotations.Get(schema.ReservedNamespace, schema.KeyLabel); ok {
		ev.Label = label
	}
	for _, pv := range e.PermissibleValues {
		ev.Values = append(ev.Values, ValueView{
			Text:        pv.Text,
			Description: pv.Description,
			Meaning:     pv.Meaning,
		})
	}
	return ev
}

// resolveRange classifies a range name. An empty range falls back to the
// schema default, then to string.
func resolveRange(s *schema.Schema, r string) RangeRef {
	if r == "" {
		r = s.DefaultRange
	}
	if r == "" {
		r = schema.KindString
	}
	if _, ok := s.Classes[r]; ok {
		return RangeRef{Name: r, Kind: RangeClass}
	}
	if _, ok := s.Enums[r]; ok {
		return RangeRef{Name: r, Kind: RangeEnum}
	}
	if _, ok := s.Types[r]; ok {
		return RangeRef{Name: r, Kind: RangeType}
	}
	return RangeRef{Name: r, Kind: RangeScalar}
}

// collectUsedBy inverts range references: for every class, enum and type,
// the slot definitions pointing at it. Schema-level slots are attributed
// to their domain class; attributes to their owning class.
func collectUsedBy(s *schema.Schema) map[string][]UsedByRef {
	out := make(map[string][]UsedByRef)
	for _, slotName := range s.SlotNames() {
		sl := s.Slots[slotName]
		if sl.Range == "" || schema.IsScalarKind(sl.Range) {
			continue
		}
		out[sl.Range] = append(out[sl.Range], UsedByRef{Class: sl.Domain, Slot: slotName})
	}
	for _, className := range s.ClassNames() {
		c := s.Classes[className]
		for _, attrName := range c.AttributeNames() {
			attr := c.Attributes[attrName]
			if attr.Range == "" || schema.IsScalarKind(attr.Range) {
				continue
			}
			out[attr.Range] = append(out[attr.Range], UsedByRef{Class: className, Slot: attrName})
		}
	}
	for name := range out {
		refs := out[name]
		sort.Slice(refs, func(i, j int) bool {
			if refs[i].Class != refs[j].Class {
				return refs[i].Class < refs[j].Class
			}
			return refs[i].Slot < refs[j].Slot
		})
		out[name] = refs
	}
	return out
}
