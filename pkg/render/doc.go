// Package render groups the output renderers for converted networks.
//
// # Overview
//
// Every renderer consumes a [network.Network] produced by the converter:
//
//   - Interactive pages (in [vis] subpackage)
//   - Node-link diagrams (in [nodelink] subpackage)
//
// # Interactive Pages
//
// The [vis] subpackage writes a self-contained HTML page driven by
// vis-network, embedding the fixed render options:
//
//	page, err := vis.RenderHTML(net, vis.WithTitle("deps"))
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the same network through Graphviz,
// keeping node colors and tooltips:
//
//	dot := nodelink.ToDOT(net, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Raster and Print Formats
//
// [ToPNG] and [ToPDF] convert an SVG with rsvg-convert from librsvg. When
// the tool is missing they fail with an UNSUPPORTED error; [Available]
// reports whether it is installed.
//
// [network.Network]: github.com/matzehuels/netviz/pkg/network.Network
// [vis]: github.com/matzehuels/netviz/pkg/render/vis
// [nodelink]: github.com/matzehuels/netviz/pkg/render/nodelink
package render
