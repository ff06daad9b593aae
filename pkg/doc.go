// Package pkg provides the core libraries for netviz network visualization.
//
// # Overview
//
// Netviz turns a directed graph into an interactive network page: each node
// gets a unique random color, edges with a "depth" attribute get a tooltip
// naming their endpoints, and the vis-network page is written to disk or
// served locally. The pkg directory is organized by stage:
//
//  1. [digraph] - Ordered directed graph with free-form node and edge attributes
//  2. [network] - The converter: colors, tooltips and the fixed render options
//  3. [render] - Renderers for the converted network: [render/vis] builds the
//     HTML page, [nodelink] the DOT source, SVG, PNG and PDF
//  4. [sink] - Delivery to files and a local HTTP server
//  5. [pipeline] - Orchestration (convert → render → deliver) with caching
//
// # Architecture
//
//	graph.json ──[io]──▶ digraph.Graph
//	                        │
//	                   [network].Convert
//	                        │
//	                  network.Network
//	                 ╱      │       ╲
//	        [render/vis] [nodelink]  [io] JSON
//	                 ╲      │       ╱
//	                     [sink] files / HTTP
//
// # Quick Start
//
//	g := digraph.New(nil)
//	_ = g.AddNode(digraph.Node{ID: "api"})
//	_ = g.AddNode(digraph.Node{ID: "db"})
//	_ = g.AddEdge(digraph.Edge{From: "api", To: "db", Attrs: digraph.Attrs{"depth": 1}})
//
//	net, err := network.Convert(g, network.Options{})
//	if err != nil {
//	    return err
//	}
//	page, err := vis.RenderHTML(net, vis.WithTitle("Services"))
//	if err != nil {
//	    return err
//	}
//	return sink.WriteFile(sink.DefaultPath, page)
//
// # Supporting Packages
//
// [io] reads and writes the JSON graph format. [cache] stores rendered SVGs
// on disk or in Redis. [config] loads the TOML config file. [errors]
// defines the coded errors shared by every package, and [observability]
// exposes hooks for metrics and tracing.
//
// [digraph]: https://pkg.go.dev/github.com/matzehuels/netviz/pkg/digraph
// [network]: https://pkg.go.dev/github.com/matzehuels/netviz/pkg/network
// [render]: https://pkg.go.dev/github.com/matzehuels/netviz/pkg/render
// [render/vis]: https://pkg.go.dev/github.com/matzehuels/netviz/pkg/render/vis
// [nodelink]: https://pkg.go.dev/github.com/matzehuels/netviz/pkg/render/nodelink
// [sink]: https://pkg.go.dev/github.com/matzehuels/netviz/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/netviz/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/netviz/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/netviz/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/netviz/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/netviz/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/netviz/pkg/observability
package pkg
