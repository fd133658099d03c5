package schema

import "fmt"

// StructuralError reports a violated model invariant: an inheritance cycle,
// a duplicate or mismatched name, an unresolved reference. Readers raise it
// before any partial schema is exposed to the caller.
type StructuralError struct {
	// Entity names the class, slot, enum or type at fault.
	Entity string

	// Detail describes the violation.
	Detail string
}

func (e *StructuralError) Error() string {
	if e.Entity == "" {
		return "structural error: " + e.Detail
	}
	return fmt.Sprintf("structural error in %q: %s", e.Entity, e.Detail)
}

// structErrf builds a StructuralError for entity with a formatted detail.
func structErrf(entity, format string, args ...any) *StructuralError {
	return &StructuralError{Entity: entity, Detail: fmt.Sprintf(format, args...)}
}
