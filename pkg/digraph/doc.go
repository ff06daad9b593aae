// Package digraph provides the source graph consumed by the network converter.
//
// # Overview
//
// A [Graph] is a directed graph whose nodes and edges carry free-form
// attribute maps ([Attrs]). It is intentionally permissive: cycles and
// reverse edges (A→B next to B→A) are allowed, since bidirectional
// relationships are exactly what the converter merges into one tooltip.
// The only structural rules are unique, non-empty node IDs and at most one
// edge per ordered (From, To) pair.
//
// # Ordering
//
// Nodes and edges are returned in insertion order. The converter relies on
// this: color assignment and reverse-edge merging both follow iteration
// order, so a graph built in the same order always converts to the same
// structure.
//
// # Building Graphs
//
//	g := digraph.New(nil)
//	_ = g.AddNode(digraph.Node{ID: "A"})
//	_ = g.AddNode(digraph.Node{ID: "B"})
//	_ = g.AddEdge(digraph.Edge{From: "A", To: "B", Attrs: digraph.Attrs{"depth": 1}})
//
// Graphs built with github.com/dominikbraun/graph can be imported with
// [FromGraph], which copies vertex and edge attributes and fixes a
// deterministic order.
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. Once built, any number of
// goroutines may read it; the converter never writes to it.
package digraph
