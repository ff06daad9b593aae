// Package network turns a source graph into an annotated, renderable network.
//
// # Overview
//
// [Convert] is the heart of netviz. For a [digraph.Graph] it produces a
// [Network] in which:
//
//   - every node has a unique random [Color] and its ID as tooltip,
//   - every edge has a tooltip derived from its "depth" attribute,
//   - a bidirectional pair is described from both directions on the edge
//     processed second,
//   - the fixed [RenderConfig] is attached.
//
// Renderers in [render/vis] and [render/nodelink] consume the result.
//
// # Colors
//
// An [Allocator] draws each RGB channel uniformly and rejects colors it has
// already handed out. Each conversion owns its allocator, so colors are
// unique within one Network but unrelated across calls. Pass
// [Options.Seed] to make them reproducible.
//
// # Edge Tooltips
//
// An edge with a "depth" attribute and neither "value" nor "width" gets
//
//	Parent: {from} Child: {to}. Depths: {depth}
//
// If the reverse edge was converted earlier, "<br>" and the reverse edge's
// tooltip are appended. The merge is one-way by contract: the earlier edge
// is never rewritten.
//
// # Attributes
//
// Attributes vis-network understands (label, size, value, x, y for nodes;
// value, width, hidden, physics, arrowStrikethrough for edges) land in
// typed fields. Everything else is kept in Extra and emitted unchanged by
// the JSON encoding.
//
// [digraph.Graph]: github.com/matzehuels/netviz/pkg/digraph.Graph
// [render/vis]: github.com/matzehuels/netviz/pkg/render/vis
// [render/nodelink]: github.com/matzehuels/netviz/pkg/render/nodelink
package network
