package schema

import "sort"

// Normalize brings a freshly parsed schema into canonical form: entity
// names are filled from their map keys, every entity gets a non-nil
// annotation set, and symmetric relations are closed in both directions.
// Readers call Normalize before Validate.
func (s *Schema) Normalize() {
	if s.Prefixes == nil {
		s.Prefixes = make(map[string]string)
	}
	if s.Classes == nil {
		s.Classes = make(map[string]*Class)
	}
	if s.Slots == nil {
		s.Slots = make(map[string]*Slot)
	}
	if s.Enums == nil {
		s.Enums = make(map[string]*Enum)
	}
	if s.Types == nil {
		s.Types = make(map[string]*Type)
	}
	if s.Annotations == nil {
		s.Annotations = make(Annotations)
	}

	for name, c := range s.Classes {
		if c.Name == "" {
			c.Name = name
		}
		if c.Annotations == nil {
			c.Annotations = make(Annotations)
		}
		for attrName, attr := range c.Attributes {
			if attr.Name == "" {
				attr.Name = attrName
			}
			if attr.Annotations == nil {
				attr.Annotations = make(Annotations)
			}
		}
	}
	for name, sl := range s.Slots {
		if sl.Name == "" {
			sl.Name = name
		}
		if sl.Annotations == nil {
			sl.Annotations = make(Annotations)
		}
	}
	for name, e := range s.Enums {
		if e.Name == "" {
			e.Name = name
		}
		if e.Annotations == nil {
			e.Annotations = make(Annotations)
		}
	}
	for name, t := range s.Types {
		if t.Name == "" {
			t.Name = name
		}
		if t.Annotations == nil {
			t.Annotations = make(Annotations)
		}
	}

	s.closeDisjoint()
	s.closeInverse()
}

// closeDisjoint materializes the symmetric closure of disjoint_with: a
// declaration in either direction yields exactly one entry on each side.
func (s *Schema) closeDisjoint() {
	pairs := make(map[string]map[string]bool)
	add := func(a, b string) {
		if pairs[a] == nil {
			pairs[a] = make(map[string]bool)
		}
		pairs[a][b] = true
	}
	for name, c := range s.Classes {
		for _, other := range c.DisjointWith {
			add(name, other)
			add(other, name)
		}
	}
	for name, c := range s.Classes {
		set := pairs[name]
		if len(set) == 0 {
			c.DisjointWith = nil
			continue
		}
		list := make([]string, 0, len(set))
		for other := range set {
			list = append(list, other)
		}
		sort.Strings(list)
		c.DisjointWith = list
	}
}

// closeInverse populates the inverse reference on both slots when only one
// side declares it.
func (s *Schema) closeInverse() {
	for name, sl := range s.Slots {
		if sl.Inverse == "" {
			continue
		}
		other, ok := s.Slots[sl.Inverse]
		if ok && other.Inverse == "" {
			other.Inverse = name
		}
	}
}

// Validate checks every model invariant and returns a StructuralError for
// the first violation found. A schema that fails validation must not be
// handed to any writer.
func (s *Schema) Validate() error {
	if s.Name == "" {
		return structErrf("", "schema has no name")
	}

	// Map keys are the authoritative names; a mismatched Name field is a
	// duplicate-name hazard and rejected outright.
	for name, c := range s.Classes {
		if c.Name != name {
			return structErrf(name, "class name %q does not match its key", c.Name)
		}
	}
	for name, sl := range s.Slots {
		if sl.Name != name {
			return structErrf(name, "slot name %q does not match its key", sl.Name)
		}
	}
	for name, e := range s.Enums {
		if e.Name != name {
			return structErrf(name, "enum name %q does not match its key", e.Name)
		}
	}
	for name, t := range s.Types {
		if t.Name != name {
			return structErrf(name, "type name %q does not match its key", t.Name)
		}
	}

	// Parent and mixin references must resolve.
	for name, c := range s.Classes {
		if c.IsA != "" {
			if _, ok := s.Classes[c.IsA]; !ok {
				return structErrf(name, "is_a references unknown class %q", c.IsA)
			}
		}
		for _, m := range c.Mixins {
			if _, ok := s.Classes[m]; !ok {
				return structErrf(name, "mixin references unknown class %q", m)
			}
		}
		for _, d := range c.DisjointWith {
			if _, ok := s.Classes[d]; !ok {
				return structErrf(name, "disjoint_with references unknown class %q", d)
			}
		}
		for _, slotName := range c.Slots {
			if _, ok := s.Slots[slotName]; !ok {
				if _, ok := c.Attributes[slotName]; !ok {
					return structErrf(name, "slot list references unknown slot %q", slotName)
				}
			}
		}
	}

	// The is_a/mixin relation must be acyclic.
	for name := range s.Classes {
		if err := s.checkAcyclic(name, nil); err != nil {
			return err
		}
	}

	// Disjointness must be symmetric after normalization.
	for name, c := range s.Classes {
		for _, other := range c.DisjointWith {
			if !contains(s.Classes[other].DisjointWith, name) {
				return structErrf(name, "disjoint_with %q is not symmetric", other)
			}
		}
	}

	// Slot ranges and inverses must resolve.
	for name, sl := range s.Slots {
		if err := s.checkSlot(name, sl); err != nil {
			return err
		}
	}
	for className, c := range s.Classes {
		for attrName, attr := range c.Attributes {
			if err := s.checkSlot(className+"."+attrName, attr); err != nil {
				return err
			}
		}
	}

	if s.DefaultRange != "" && !s.rangeResolves(s.DefaultRange) {
		return structErrf("", "default_range %q does not resolve", s.DefaultRange)
	}
	for name, t := range s.Types {
		if t.Base != "" && !IsScalarKind(t.Base) {
			return structErrf(name, "base %q is not a canonical scalar kind", t.Base)
		}
	}

	return nil
}

// checkAcyclic walks the is_a/mixin edges from name, failing when the
// current visitation path is re-entered.
func (s *Schema) checkAcyclic(name string, path []string) error {
	for _, seen := range path {
		if seen == name {
			return structErrf(name, "inheritance cycle: %s", cycleString(append(path, name)))
		}
	}
	c, ok := s.Classes[name]
	if !ok {
		return nil
	}
	path = append(path, name)
	if c.IsA != "" {
		if err := s.checkAcyclic(c.IsA, path); err != nil {
			return err
		}
	}
	for _, m := range c.Mixins {
		if err := s.checkAcyclic(m, path); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) checkSlot(context string, sl *Slot) error {
	if sl.Range != "" && !s.rangeResolves(sl.Range) {
		return structErrf(context, "range %q names no class, enum, type, or scalar kind", sl.Range)
	}
	if sl.Domain != "" {
		if _, ok := s.Classes[sl.Domain]; !ok {
			return structErrf(context, "domain references unknown class %q", sl.Domain)
		}
	}
	if sl.Inverse != "" {
		if _, ok := s.Slots[sl.Inverse]; !ok {
			return structErrf(context, "inverse references unknown slot %q", sl.Inverse)
		}
	}
	return nil
}

func (s *Schema) rangeResolves(r string) bool {
	if IsScalarKind(r) {
		return true
	}
	if _, ok := s.Classes[r]; ok {
		return true
	}
	if _, ok := s.Enums[r]; ok {
		return true
	}
	_, ok := s.Types[r]
	return ok
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func cycleString(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += " -> "
		}
		out += p
	}
	return out
}
