package digraph

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when an edge with the
	// same (From, To) pair already exists. The reverse pair is a different
	// edge and is accepted.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// Attrs stores arbitrary attributes attached to a node or an edge.
// Values are typically strings, numbers, booleans or lists of those.
// Attrs maps are never nil once stored in a graph.
type Attrs map[string]any

// Clone returns a shallow copy of a. A nil receiver yields an empty map.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	maps.Copy(out, a)
	return out
}

// Has reports whether key is present, regardless of its value.
func (a Attrs) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Node is a vertex of the graph.
type Node struct {
	ID    string // Unique identifier
	Attrs Attrs  // Arbitrary attributes (never nil after AddNode)
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From  string // Source node ID
	To    string // Target node ID
	Attrs Attrs  // Arbitrary attributes (never nil after AddEdge)
}

type pair struct{ from, to string }

// Graph is a directed graph that remembers insertion order of nodes and
// edges. Unlike a DAG it accepts cycles and reverse edges, but at most one
// edge per ordered (From, To) pair.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization;
// concurrent readers are fine once construction is finished.
type Graph struct {
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	edgeSet  map[pair]int
	outgoing map[string][]string
	incoming map[string][]string
	attrs    Attrs
}

// New creates an empty graph with optional graph-level attributes.
func New(attrs Attrs) *Graph {
	if attrs == nil {
		attrs = Attrs{}
	}
	return &Graph{
		nodes:    make(map[string]*Node),
		edgeSet:  make(map[pair]int),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		attrs:    attrs,
	}
}

// Attrs returns the graph-level attribute map.
func (g *Graph) Attrs() Attrs { return g.attrs }

// AddNode appends a node to the graph. Returns ErrInvalidNodeID if the ID is
// empty or ErrDuplicateNodeID if the ID is already taken. A nil Attrs map is
// replaced by an empty one.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Attrs == nil {
		n.Attrs = Attrs{}
	}
	g.nodes[n.ID] = &n
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge appends a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode for missing
// endpoints, and ErrDuplicateEdge if From->To is already present.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	key := pair{e.From, e.To}
	if _, exists := g.edgeSet[key]; exists {
		return ErrDuplicateEdge
	}
	if e.Attrs == nil {
		e.Attrs = Attrs{}
	}
	g.edgeSet[key] = len(g.edges)
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// RemoveEdge removes the edge from->to if it exists.
// No error is returned if the edge does not exist.
func (g *Graph) RemoveEdge(from, to string) {
	if _, ok := g.edgeSet[pair{from, to}]; !ok {
		return
	}
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool { return e.From == from && e.To == to })
	g.outgoing[from] = slices.DeleteFunc(g.outgoing[from], func(s string) bool { return s == to })
	g.incoming[to] = slices.DeleteFunc(g.incoming[to], func(s string) bool { return s == from })
	g.reindexEdges()
}

func (g *Graph) reindexEdges() {
	clear(g.edgeSet)
	for i, e := range g.edges {
		g.edgeSet[pair{e.From, e.To}] = i
	}
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the stored nodes, so modifications affect the graph.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order. The Attrs maps are
// shared with the graph.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns the node with the given ID and true, or nil and false if not found.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Edge returns the edge from->to and true, or a zero Edge and false.
func (g *Graph) Edge(from, to string) (Edge, bool) {
	i, ok := g.edgeSet[pair{from, to}]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

// HasEdge reports whether the directed edge from->to exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edgeSet[pair{from, to}]
	return ok
}

// Children returns the IDs of nodes this node has edges to, in edge order.
// The returned slice should not be modified.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the IDs of nodes that have edges to this node, in edge order.
// The returned slice should not be modified.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Sources returns nodes with no incoming edges, in insertion order.
func (g *Graph) Sources() []*Node {
	var sources []*Node
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, g.nodes[id])
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges, in insertion order.
func (g *Graph) Sinks() []*Node {
	var sinks []*Node
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 {
			sinks = append(sinks, g.nodes[id])
		}
	}
	return sinks
}

// NodeIDs extracts the ID from each node in a slice, preserving order.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
