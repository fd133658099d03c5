package schema

// ResolvedSlot is one entry of a class's effective slot set, tagged with
// the class whose definition won.
type ResolvedSlot struct {
	Slot *Slot

	// DefinedIn names the class that contributed this definition. Equal
	// to the queried class for its own slots and attributes.
	DefinedIn string
}

// ResolvedSlots computes the effective slot set of a class on demand: the
// class's own attributes and slots first, then each mixin in declaration
// order, then the is_a parent, recursively. A more specific definition
// shadows an inherited one of the same name; among mixins the first
// declared wins. The result is deterministic for a given schema. Nothing
// is cached; the model stays minimal.
func (s *Schema) ResolvedSlots(className string) ([]ResolvedSlot, error) {
	if _, ok := s.Classes[className]; !ok {
		return nil, structErrf(className, "unknown class")
	}
	seen := make(map[string]bool)
	var out []ResolvedSlot
	if err := s.resolveInto(className, nil, seen, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Schema) resolveInto(className string, path []string, seen map[string]bool, out *[]ResolvedSlot) error {
	for _, p := range path {
		if p == className {
			return structErrf(className, "inheritance cycle: %s", cycleString(append(path, className)))
		}
	}
	c, ok := s.Classes[className]
	if !ok {
		return structErrf(className, "unknown class")
	}
	path = append(path, className)

	add := func(sl *Slot) {
		if sl == nil || seen[sl.Name] {
			return
		}
		seen[sl.Name] = true
		*out = append(*out, ResolvedSlot{Slot: sl, DefinedIn: className})
	}

	// Own attributes in sorted order, then owned schema-level slots in
	// declaration order.
	for _, name := range c.AttributeNames() {
		add(c.Attributes[name])
	}
	for _, name := range c.Slots {
		if attr, ok := c.Attributes[name]; ok {
			add(attr)
			continue
		}
		add(s.Slots[name])
	}

	for _, mixin := range c.Mixins {
		if err := s.resolveInto(mixin, path, seen, out); err != nil {
			return err
		}
	}
	if c.IsA != "" {
		if err := s.resolveInto(c.IsA, path, seen, out); err != nil {
			return err
		}
	}
	return nil
}

// Ancestors returns the is_a chain of a class from nearest parent to root.
// Mixins are not part of the chain; they are reachable via Class.Mixins.
func (s *Schema) Ancestors(className string) ([]string, error) {
	c, ok := s.Classes[className]
	if !ok {
		return nil, structErrf(className, "unknown class")
	}
	var chain []string
	visited := map[string]bool{className: true}
	for c.IsA != "" {
		parent := c.IsA
		if visited[parent] {
			return nil, structErrf(className, "inheritance cycle through %q", parent)
		}
		visited[parent] = true
		chain = append(chain, parent)
		c, ok = s.Classes[parent]
		if !ok {
			return nil, structErrf(className, "is_a references unknown class %q", parent)
		}
	}
	return chain, nil
}

// Descendants returns the names of classes whose is_a chain includes
// className, in sorted order.
func (s *Schema) Descendants(className string) []string {
	var out []string
	for _, name := range s.ClassNames() {
		if name == className {
			continue
		}
		chain, err := s.Ancestors(name)
		if err != nil {
			continue
		}
		if contains(chain, className) {
			out = append(out, name)
		}
	}
	return out
}
