package network

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netviz/pkg/digraph"
)

// canvasSize is the width and height of the rendered canvas.
const canvasSize = "100%"

// Options configures a conversion.
type Options struct {
	// Seed fixes the color sequence. Zero picks a fresh seed per call, so
	// colors differ between runs.
	Seed uint64

	// Logger receives a debug entry per edge. Nil discards.
	Logger *log.Logger
}

// Convert annotates g and returns a new Network.
//
// Nodes are visited in g's insertion order and each receives a color from
// a fresh [Allocator] and its own ID as title. Edges are then visited in
// insertion order and titled by the edge annotator, which merges in the
// title of an earlier reverse edge. The fixed [DefaultRenderConfig] is
// attached.
//
// Convert never mutates g and keeps no state between calls, so concurrent
// conversions are safe. The only error is [ErrColorSpaceExhausted].
func Convert(g *digraph.Graph, opts Options) (*Network, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	net := &Network{
		Directed: true,
		Width:    canvasSize,
		Height:   canvasSize,
		Config:   DefaultRenderConfig(),
	}
	if g == nil {
		return net, nil
	}

	colors := NewAllocator(newRand(opts.Seed))
	net.Nodes = make([]Node, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		color, err := colors.Next()
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
		net.Nodes = append(net.Nodes, newNode(n, color))
	}

	titles := newAnnotator()
	net.Edges = make([]Edge, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		logger.Debug("edge", "source", e.From, "target", e.To, "attrs", e.Attrs)
		net.Edges = append(net.Edges, newEdge(e, titles.annotate(e.From, e.To, e.Attrs)))
	}

	logger.Debug("converted graph", "nodes", net.NodeCount(), "edges", net.EdgeCount())
	return net, nil
}

func newNode(n *digraph.Node, color Color) Node {
	nd := Node{ID: n.ID, Title: n.ID, Color: color, Label: n.ID}
	for k, v := range n.Attrs {
		switch k {
		case "title", "color":
			// derived
		case "label":
			if s, ok := v.(string); ok {
				nd.Label = s
				continue
			}
			// Renderers show the text; JSON keeps the original value.
			nd.Label = FormatValue(v)
			nd.extra(k, v)
		case "size":
			nd.Size = nodeFloat(&nd, k, v)
		case "value":
			nd.Value = nodeFloat(&nd, k, v)
		case "x":
			nd.X = nodeFloat(&nd, k, v)
		case "y":
			nd.Y = nodeFloat(&nd, k, v)
		default:
			nd.extra(k, v)
		}
	}
	return nd
}

func (nd *Node) extra(k string, v any) {
	if nd.Extra == nil {
		nd.Extra = make(map[string]any)
	}
	nd.Extra[k] = v
}

func nodeFloat(nd *Node, k string, v any) *float64 {
	if f, ok := toFloat(v); ok {
		return &f
	}
	nd.extra(k, v)
	return nil
}

func newEdge(e digraph.Edge, title string) Edge {
	out := Edge{From: e.From, To: e.To, Title: title}
	for k, v := range e.Attrs {
		switch k {
		case "title":
			// derived
		case attrValue:
			out.Value = edgeFloat(&out, k, v)
		case attrWidth:
			out.Width = edgeFloat(&out, k, v)
		case "hidden":
			out.Hidden = edgeBool(&out, k, v)
		case "physics":
			out.Physics = edgeBool(&out, k, v)
		case "arrowStrikethrough":
			out.ArrowStrikethrough = edgeBool(&out, k, v)
		default:
			out.extra(k, v)
		}
	}
	return out
}

func (e *Edge) extra(k string, v any) {
	if e.Extra == nil {
		e.Extra = make(map[string]any)
	}
	e.Extra[k] = v
}

func edgeFloat(e *Edge, k string, v any) *float64 {
	if f, ok := toFloat(v); ok {
		return &f
	}
	e.extra(k, v)
	return nil
}

func edgeBool(e *Edge, k string, v any) *bool {
	if b, ok := v.(bool); ok {
		return &b
	}
	e.extra(k, v)
	return nil
}
