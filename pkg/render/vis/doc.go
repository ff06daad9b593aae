// Package vis renders a converted network as an interactive vis-network page.
//
// [RenderHTML] produces a single HTML file that loads vis-network from a CDN
// and embeds the nodes, edges and render options as JSON:
//
//	net, _ := network.Convert(g, network.Options{})
//	page, err := vis.RenderHTML(net, vis.WithTitle("dependencies"))
//
// Directed networks draw an arrow at each edge's target. Tooltips are
// interpreted as HTML, so merged reverse-edge titles appear on two lines.
package vis
