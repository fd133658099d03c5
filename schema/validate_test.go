package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsAnimalHierarchy(t *testing.T) {
	s := animalSchema()
	s.Normalize()
	require.NoError(t, s.Validate())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Schema)
		wantMsg string
	}{
		{
			name:    "missing schema name",
			mutate:  func(s *Schema) { s.Name = "" },
			wantMsg: "no name",
		},
		{
			name:    "class name key mismatch",
			mutate:  func(s *Schema) { s.Classes["Dog"].Name = "Wolf" },
			wantMsg: "does not match its key",
		},
		{
			name:    "unknown is_a parent",
			mutate:  func(s *Schema) { s.Classes["Dog"].IsA = "Canine" },
			wantMsg: `unknown class "Canine"`,
		},
		{
			name:    "unknown mixin",
			mutate:  func(s *Schema) { s.Classes["Dog"].Mixins = []string{"Pet"} },
			wantMsg: `unknown class "Pet"`,
		},
		{
			name:    "unknown slot in slot list",
			mutate:  func(s *Schema) { s.Classes["Dog"].Slots = []string{"hasTail"} },
			wantMsg: `unknown slot "hasTail"`,
		},
		{
			name:    "unresolved slot range",
			mutate:  func(s *Schema) { s.Slots["hasName"].Range = "Nothing" },
			wantMsg: "names no class, enum, type, or scalar kind",
		},
		{
			name:    "unknown slot domain",
			mutate:  func(s *Schema) { s.Slots["hasName"].Domain = "Ghost" },
			wantMsg: `unknown class "Ghost"`,
		},
		{
			name:    "unknown inverse",
			mutate:  func(s *Schema) { s.Slots["hasName"].Inverse = "namedBy" },
			wantMsg: `unknown slot "namedBy"`,
		},
		{
			name:    "unresolved default range",
			mutate:  func(s *Schema) { s.DefaultRange = "Nothing" },
			wantMsg: "default_range",
		},
		{
			name: "type base not scalar",
			mutate: func(s *Schema) {
				s.Types["Identifier"] = &Type{Name: "Identifier", Base: "Animal"}
			},
			wantMsg: "not a canonical scalar kind",
		},
		{
			name: "asymmetric disjointness",
			mutate: func(s *Schema) {
				s.Classes["Dog"].DisjointWith = []string{"Cat"}
			},
			wantMsg: "not symmetric",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := animalSchema()
			s.Normalize()
			tt.mutate(s)

			err := s.Validate()
			require.Error(t, err)

			var structural *StructuralError
			require.ErrorAs(t, err, &structural)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateRejectsInheritanceCycle(t *testing.T) {
	s := animalSchema()
	s.Classes["Animal"].IsA = "Dog"
	s.Normalize()

	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inheritance cycle")
	assert.Contains(t, err.Error(), "->")
}

func TestValidateRejectsMixinCycle(t *testing.T) {
	s := New("s")
	a := NewClass("A")
	a.Mixins = []string{"B"}
	b := NewClass("B")
	b.Mixins = []string{"A"}
	s.Classes["A"] = a
	s.Classes["B"] = b
	s.Normalize()

	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inheritance cycle")
}

func TestValidateSelfCycle(t *testing.T) {
	s := New("s")
	a := NewClass("A")
	a.IsA = "A"
	s.Classes["A"] = a
	s.Normalize()

	err := s.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "A -> A"))
}

func TestValidateAcceptsAttributeOnlySlotList(t *testing.T) {
	s := New("s")
	c := NewClass("Event")
	c.Attributes = map[string]*Slot{
		"timestamp": {Name: "timestamp", Range: KindDatetime},
	}
	c.Slots = []string{"timestamp"}
	s.Classes["Event"] = c
	s.Normalize()
	require.NoError(t, s.Validate())
}

func TestValidateChecksAttributeRanges(t *testing.T) {
	s := New("s")
	c := NewClass("Event")
	c.Attributes = map[string]*Slot{
		"payload": {Name: "payload", Range: "Missing"},
	}
	s.Classes["Event"] = c
	s.Normalize()

	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Event.payload")
}
