package schema

import (
	"sort"
	"strings"
)

// ReservedNamespace is the annotation namespace for system-internal
// preserved metadata: source format, untranslatable restriction text,
// preserved instance data. Readers and writers must not use it for
// anything else.
const ReservedNamespace = "panschema"

// Well-known keys under the reserved namespace.
const (
	// KeySourceFormat records which reader produced the schema.
	KeySourceFormat = "source_format"

	// KeyLabel preserves a human-readable label that differs from the
	// derived entity name.
	KeyLabel = "label"

	// KeyPropertyKind preserves whether a slot came from an
	// object-valued or data-valued property.
	KeyPropertyKind = "property_kind"

	// KeyIndividuals holds a comma-separated list of preserved
	// instance identifiers on the schema.
	KeyIndividuals = "individuals"
)

// Annotations is a namespaced key/value side channel attached to every
// entity. Keys are stored as "namespace:key" so the set serializes as a
// flat string mapping; the accessors keep the (namespace, key) structure.
type Annotations map[string]string

// Set stores value under (namespace, key).
func (a Annotations) Set(namespace, key, value string) {
	a[namespace+":"+key] = value
}

// Get returns the value stored under (namespace, key).
func (a Annotations) Get(namespace, key string) (string, bool) {
	v, ok := a[namespace+":"+key]
	return v, ok
}

// Has reports whether (namespace, key) is present.
func (a Annotations) Has(namespace, key string) bool {
	_, ok := a.Get(namespace, key)
	return ok
}

// InNamespace returns the keys (namespace prefix stripped) present under
// the given namespace, in sorted order.
func (a Annotations) InNamespace(namespace string) []string {
	prefix := namespace + ":"
	var keys []string
	for k := range a {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, strings.TrimPrefix(k, prefix))
		}
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a copy of the annotation set.
func (a Annotations) Clone() Annotations {
	if a == nil {
		return nil
	}
	out := make(Annotations, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
