package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/netviz/pkg/digraph"
	"github.com/matzehuels/netviz/pkg/network"
)

// WriteJSON encodes a graph as JSON and writes it to w, preserving node and
// edge order. The output can be read back with [ReadJSON].
func WriteJSON(g *digraph.Graph, w io.Writer) error {
	out := graph{
		Nodes: make([]node, 0, g.NodeCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	if len(g.Attrs()) > 0 {
		out.Attrs = g.Attrs()
	}

	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, node{ID: n.ID, Attrs: nonEmpty(n.Attrs)})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edge{From: e.From, To: e.To, Attrs: nonEmpty(e.Attrs)})
	}

	return encode(w, out)
}

// ExportJSON writes a graph to a JSON file at path.
func ExportJSON(g *digraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// WriteNetworkJSON encodes a converted network, including colors, titles
// and the render options, and writes it to w.
func WriteNetworkJSON(net *network.Network, w io.Writer) error {
	return encode(w, net)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func nonEmpty(a digraph.Attrs) digraph.Attrs {
	if len(a) == 0 {
		return nil
	}
	return a
}
