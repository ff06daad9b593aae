package digraph

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/dominikbraun/graph"
)

// FromGraph copies a github.com/dominikbraun/graph graph into a new Graph.
//
// The id function turns a vertex hash into a node ID; pass nil when K is
// string. Vertex and edge attributes are copied as string values, and a
// non-zero weight is stored under the "weight" attribute.
//
// dominikbraun graphs are backed by maps and have no insertion order, so
// nodes are added sorted by ID and edges sorted by (From, To). Callers that
// need a specific order (which affects reverse-edge merging) should build a
// Graph directly instead.
func FromGraph[K comparable, T any](src graph.Graph[K, T], id func(K) string) (*Graph, error) {
	if id == nil {
		id = func(k K) string { return fmt.Sprint(k) }
	}

	adj, err := src.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("adjacency map: %w", err)
	}

	hashes := slices.Collect(maps.Keys(adj))
	slices.SortFunc(hashes, func(a, b K) int { return cmp.Compare(id(a), id(b)) })

	g := New(nil)
	for _, h := range hashes {
		_, props, err := src.VertexWithProperties(h)
		if err != nil {
			return nil, fmt.Errorf("vertex %s: %w", id(h), err)
		}
		attrs := stringAttrs(props.Attributes)
		if props.Weight != 0 {
			attrs["weight"] = props.Weight
		}
		if err := g.AddNode(Node{ID: id(h), Attrs: attrs}); err != nil {
			return nil, fmt.Errorf("node %s: %w", id(h), err)
		}
	}

	edges, err := src.Edges()
	if err != nil {
		return nil, fmt.Errorf("edges: %w", err)
	}
	slices.SortFunc(edges, func(a, b graph.Edge[K]) int {
		return cmp.Or(cmp.Compare(id(a.Source), id(b.Source)), cmp.Compare(id(a.Target), id(b.Target)))
	})
	for _, e := range edges {
		attrs := stringAttrs(e.Properties.Attributes)
		if e.Properties.Weight != 0 {
			attrs["weight"] = e.Properties.Weight
		}
		from, to := id(e.Source), id(e.Target)
		if err := g.AddEdge(Edge{From: from, To: to, Attrs: attrs}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", from, to, err)
		}
	}

	return g, nil
}

func stringAttrs(m map[string]string) Attrs {
	attrs := make(Attrs, len(m))
	for k, v := range m {
		attrs[k] = v
	}
	return attrs
}
