package schema

import "reflect"

// Equal reports structural equality of two schemas: same entities, same
// fields, annotation sets compared as unordered maps. Nil and empty
// collections compare equal, so a schema written out and re-read matches
// its original even when the serialization omits empty containers.
func Equal(a, b *Schema) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(canonical(a), canonical(b))
}

// canonical deep-copies a schema with every nil collection replaced by its
// empty counterpart.
func canonical(s *Schema) *Schema {
	out := *s
	out.Contributors = append([]Contributor{}, s.Contributors...)
	out.Imports = append([]string{}, s.Imports...)
	out.Prefixes = copyStringMap(s.Prefixes)
	out.Annotations = canonicalAnnotations(s.Annotations)

	out.Classes = make(map[string]*Class, len(s.Classes))
	for name, c := range s.Classes {
		cc := *c
		cc.Mixins = append([]string{}, c.Mixins...)
		cc.Slots = append([]string{}, c.Slots...)
		cc.DisjointWith = append([]string{}, c.DisjointWith...)
		cc.Annotations = canonicalAnnotations(c.Annotations)
		cc.Attributes = make(map[string]*Slot, len(c.Attributes))
		for attrName, attr := range c.Attributes {
			cc.Attributes[attrName] = canonicalSlot(attr)
		}
		out.Classes[name] = &cc
	}

	out.Slots = make(map[string]*Slot, len(s.Slots))
	for name, sl := range s.Slots {
		out.Slots[name] = canonicalSlot(sl)
	}

	out.Enums = make(map[string]*Enum, len(s.Enums))
	for name, e := range s.Enums {
		ee := *e
		ee.PermissibleValues = append([]PermissibleValue{}, e.PermissibleValues...)
		ee.Annotations = canonicalAnnotations(e.Annotations)
		out.Enums[name] = &ee
	}

	out.Types = make(map[string]*Type, len(s.Types))
	for name, t := range s.Types {
		tt := *t
		tt.Annotations = canonicalAnnotations(t.Annotations)
		out.Types[name] = &tt
	}

	return &out
}

func canonicalSlot(sl *Slot) *Slot {
	out := *sl
	out.Annotations = canonicalAnnotations(sl.Annotations)
	return &out
}

func canonicalAnnotations(a Annotations) Annotations {
	out := make(Annotations, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

func copyStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
