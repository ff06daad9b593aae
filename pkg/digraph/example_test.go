package digraph_test

import (
	"fmt"

	"github.com/matzehuels/netviz/pkg/digraph"
)

func ExampleGraph_basic() {
	// A small call graph with one bidirectional relationship
	g := digraph.New(nil)
	_ = g.AddNode(digraph.Node{ID: "api"})
	_ = g.AddNode(digraph.Node{ID: "db"})
	_ = g.AddEdge(digraph.Edge{From: "api", To: "db", Attrs: digraph.Attrs{"depth": 1}})
	_ = g.AddEdge(digraph.Edge{From: "db", To: "api", Attrs: digraph.Attrs{"depth": 2}})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Children of api:", g.Children("api"))
	// Output:
	// Nodes: 2
	// Edges: 2
	// Children of api: [db]
}

func ExampleGraph_AddEdge_duplicate() {
	g := digraph.New(nil)
	_ = g.AddNode(digraph.Node{ID: "a"})
	_ = g.AddNode(digraph.Node{ID: "b"})
	_ = g.AddEdge(digraph.Edge{From: "a", To: "b"})

	err := g.AddEdge(digraph.Edge{From: "a", To: "b"})
	fmt.Println(err)
	// Output:
	// duplicate edge
}
