package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/netviz/pkg/network"
	"github.com/matzehuels/netviz/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// EdgeLabel names the edge attribute printed next to each edge.
	// Defaults to "depth". Edges without the attribute are unlabeled.
	EdgeLabel string

	// Detailed adds a node's extra attributes to its label.
	Detailed bool
}

const defaultEdgeLabel = "depth"

// ToDOT converts a network to Graphviz DOT format. Node fill colors and
// tooltips come from the network, so the static diagram matches the
// interactive page. The result can be rendered with [RenderSVG].
func ToDOT(net *network.Network, opts Options) string {
	if opts.EdgeLabel == "" {
		opts.EdgeLabel = defaultEdgeLabel
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fontsize=12, margin=\"0.1,0.05\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	if net == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	for _, n := range net.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range net.Edges {
		attrs := edgeAttrs(e, opts.EdgeLabel)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n network.Node, detailed bool) []string {
	return []string{
		fmt.Sprintf("label=%q", fmtLabel(n, detailed)),
		fmt.Sprintf("tooltip=%q", n.Title),
		fmt.Sprintf("fillcolor=%q", n.Color.String()),
		fmt.Sprintf("fontcolor=%q", fontColor(n.Color)),
	}
}

func fmtLabel(n network.Node, detailed bool) string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	if !detailed {
		return label
	}

	keys := make([]string, 0, len(n.Extra))
	for k := range n.Extra {
		if k != "label" { // already the first line
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return label
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, network.FormatValue(n.Extra[k])))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func edgeAttrs(e network.Edge, labelKey string) []string {
	var attrs []string
	if v, ok := e.Extra[labelKey]; ok {
		attrs = append(attrs, fmt.Sprintf("label=%q", network.FormatValue(v)))
	}
	if e.Title != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", strings.ReplaceAll(e.Title, "<br>", "\n")))
	}
	if e.Hidden != nil && *e.Hidden {
		attrs = append(attrs, "style=invis")
	}
	return attrs
}

// fontColor picks black or white text for legibility on a fill color,
// using the Rec. 601 luma approximation.
func fontColor(c network.Color) string {
	luma := 299*int(c.R()) + 587*int(c.G()) + 114*int(c.B())
	if luma > 128*1000 {
		return "#000000"
	}
	return "#FFFFFF"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given
// scale. This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales to its
// container with an origin-anchored viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}
