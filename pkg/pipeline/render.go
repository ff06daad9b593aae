package pipeline

import (
	"bytes"
	"context"
	"fmt"

	errs "github.com/matzehuels/netviz/pkg/errors"
	nvio "github.com/matzehuels/netviz/pkg/io"
	"github.com/matzehuels/netviz/pkg/network"
	"github.com/matzehuels/netviz/pkg/render"
	"github.com/matzehuels/netviz/pkg/render/nodelink"
	"github.com/matzehuels/netviz/pkg/render/vis"
)

// RenderFormat renders a network in one output format without caching.
// SVG rendering runs Graphviz, PNG and PDF additionally run rsvg-convert;
// see [Runner.Render] for the cached path.
func RenderFormat(ctx context.Context, net *network.Network, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatHTML:
		return vis.RenderHTML(net, vis.WithTitle(opts.Title))
	case FormatDOT:
		return []byte(nodelink.ToDOT(net, opts.NodelinkOptions())), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(net, opts.NodelinkOptions()))
	case FormatPNG:
		return nodelink.RenderPNG(ctx, nodelink.ToDOT(net, opts.NodelinkOptions()), opts.scale())
	case FormatPDF:
		return nodelink.RenderPDF(ctx, nodelink.ToDOT(net, opts.NodelinkOptions()))
	case FormatJSON:
		var buf bytes.Buffer
		if err := nvio.WriteNetworkJSON(net, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}

// usesSVG reports whether a format is produced from the Graphviz SVG.
func usesSVG(format string) bool {
	return format == FormatSVG || format == FormatPNG || format == FormatPDF
}

// fromSVG derives an SVG-based format from a rendered SVG.
func fromSVG(ctx context.Context, svg []byte, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatPNG:
		return render.ToPNG(ctx, svg, opts.scale())
	case FormatPDF:
		return render.ToPDF(ctx, svg)
	default:
		return svg, nil
	}
}

// Render renders a network in every requested format.
func Render(ctx context.Context, net *network.Network, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := RenderFormat(ctx, net, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
