// Package graphview projects the canonical schema into nodes and edges
// for visualization. Like the documentation view it is a pure function of
// the model; layout and rendering belong to the consumer.
package graphview

import (
	"sort"

	"github.com/c360studio/panschema/schema"
)

// NodeKind classifies a graph node.
type NodeKind string

const (
	NodeClass      NodeKind = "class"
	NodeEnum       NodeKind = "enum"
	NodeType       NodeKind = "type"
	NodeSlot       NodeKind = "slot"
	NodeIndividual NodeKind = "individual"
)

// EdgeKind classifies a graph edge.
type EdgeKind string

const (
	EdgeSubclassOf EdgeKind = "subclass_of"
	EdgeMixin      EdgeKind = "mixin"
	EdgeDomain     EdgeKind = "domain"
	EdgeRange      EdgeKind = "range"
	EdgeInverse    EdgeKind = "inverse"
	EdgeTypeOf     EdgeKind = "type_of"
)

// Node is one vertex of the topology.
type Node struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Kind        NodeKind `json:"kind"`
	Description string   `json:"description,omitempty"`
	URI         string   `json:"uri,omitempty"`
	Abstract    bool     `json:"abstract,omitempty"`
}

// Edge is one directed edge of the topology.
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Kind   EdgeKind `json:"kind"`
	Label  string   `json:"label,omitempty"`
}

// Options selects which parts of the schema appear in the projection.
type Options struct {
	// ClassesOnly restricts the graph to class nodes and their
	// subclass/mixin edges.
	ClassesOnly bool

	// IncludeIndividuals adds preserved individuals with type_of edges.
	IncludeIndividuals bool
}

// GraphData is the full projection result.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Project computes the topology. Nodes appear in sorted name order per
// kind; edges follow node order, so output is deterministic.
func Project(s *schema.Schema, opts Options) *GraphData {
	g := &GraphData{}

	for _, name := range s.ClassNames() {
		c := s.Classes[name]
		g.Nodes = append(g.Nodes, Node{
			ID:          name,
			Label:       displayLabel(c.Annotations, name),
			Kind:        NodeClass,
			Description: c.Description,
			URI:         c.ClassURI,
			Abstract:    c.Abstract,
		})
		if c.IsA != "" {
			g.Edges = append(g.Edges, Edge{Source: name, Target: c.IsA, Kind: EdgeSubclassOf})
		}
		for _, mixin := range c.Mixins {
			g.Edges = append(g.Edges, Edge{Source: name, Target: mixin, Kind: EdgeMixin})
		}
	}

	if opts.ClassesOnly {
		return g
	}

	for _, name := range s.EnumNames() {
		e := s.Enums[name]
		g.Nodes = append(g.Nodes, Node{
			ID:          name,
			Label:       displayLabel(e.Annotations, name),
			Kind:        NodeEnum,
			Description: e.Description,
		})
	}
	for _, name := range s.TypeNames() {
		t := s.Types[name]
		g.Nodes = append(g.Nodes, Node{
			ID:          name,
			Label:       name,
			Kind:        NodeType,
			Description: t.Description,
			URI:         t.URI,
		})
	}

	for _, name := range s.SlotNames() {
		projectSlot(s, g, name, s.Slots[name])
	}
	for _, className := range s.ClassNames() {
		c := s.Classes[className]
		for _, attrName := range c.AttributeNames() {
			attr := c.Attributes[attrName]
			nodeID := className + "." + attrName
			g.Nodes = append(g.Nodes, Node{
				ID:          nodeID,
				Label:       displayLabel(attr.Annotations, attrName),
				Kind:        NodeSlot,
				Description: attr.Description,
				URI:         attr.SlotURI,
			})
			g.Edges = append(g.Edges, Edge{Source: nodeID, Target: className, Kind: EdgeDomain})
			if target := rangeTarget(s, attr.Range); target != "" {
				g.Edges = append(g.Edges, Edge{Source: nodeID, Target: target, Kind: EdgeRange})
			}
		}
	}

	if opts.IncludeIndividuals {
		for _, ind := range s.Individuals() {
			label := ind.Label
			if label == "" {
				label = ind.IRI
			}
			g.Nodes = append(g.Nodes, Node{
				ID:    ind.IRI,
				Label: label,
				Kind:  NodeIndividual,
				URI:   ind.IRI,
			})
			if ind.Class != "" {
				g.Edges = append(g.Edges, Edge{Source: ind.IRI, Target: ind.Class, Kind: EdgeTypeOf})
			}
		}
	}

	return g
}

func projectSlot(s *schema.Schema, g *GraphData, name string, sl *schema.Slot) {
	g.Nodes = append(g.Nodes, Node{
		ID:          name,
		Label:       displayLabel(sl.Annotations, name),
		Kind:        NodeSlot,
		Description: sl.Description,
		URI:         sl.SlotURI,
	})
	if sl.Domain != "" {
		g.Edges = append(g.Edges, Edge{Source: name, Target: sl.Domain, Kind: EdgeDomain})
	}
	if target := rangeTarget(s, sl.Range); target != "" {
		g.Edges = append(g.Edges, Edge{Source: name, Target: target, Kind: EdgeRange})
	}
	// Emit the inverse edge from the lexicographically smaller side so
	// the symmetric pair yields a single edge.
	if sl.Inverse != "" && name < sl.Inverse {
		g.Edges = append(g.Edges, Edge{Source: name, Target: sl.Inverse, Kind: EdgeInverse})
	}
}

// rangeTarget returns the node ID a range edge should point at: named
// entities only, scalars have no node.
func rangeTarget(s *schema.Schema, r string) string {
	if r == "" || schema.IsScalarKind(r) {
		return ""
	}
	if _, ok := s.Classes[r]; ok {
		return r
	}
	if _, ok := s.Enums[r]; ok {
		return r
	}
	if _, ok := s.Types[r]; ok {
		return r
	}
	return ""
}

func displayLabel(a schema.Annotations, fallback string) string {
	if label, ok := a.Get(schema.ReservedNamespace, schema.KeyLabel); ok && label != "" {
		return label
	}
	return fallback
}

// SortEdges orders edges by source, kind, then target. Projections are
// already deterministic; this helper is for consumers that merge graphs.
func SortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		if edges[i].Kind != edges[j].Kind {
			return edges[i].Kind < edges[j].Kind
		}
		return edges[i].Target < edges[j].Target
	})
}
