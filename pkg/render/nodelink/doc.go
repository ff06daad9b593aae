// Package nodelink renders converted networks as static node-link diagrams.
//
// # Overview
//
// This package produces Graphviz diagrams of a [network.Network]: nodes are
// filled with their allocated color and carry their title as a tooltip,
// edges are labeled with their depth and carry the derived edge title.
// It is the static counterpart of the interactive vis-network page.
//
// # Usage
//
// Convert a network to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(net, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - EdgeLabel: edge attribute shown as the edge label (default "depth")
//   - Detailed: append a node's extra attributes to its label
//
// The DOT source can also be saved and processed with external Graphviz
// tools. Merged reverse-edge titles are split onto separate tooltip lines.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required. [RenderPNG] and
// [RenderPDF] additionally need rsvg-convert from librsvg on PATH.
//
// [network.Network]: github.com/matzehuels/netviz/pkg/network.Network
package nodelink
