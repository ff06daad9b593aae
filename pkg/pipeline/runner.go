package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netviz/pkg/cache"
	"github.com/matzehuels/netviz/pkg/digraph"
	errs "github.com/matzehuels/netviz/pkg/errors"
	"github.com/matzehuels/netviz/pkg/network"
	"github.com/matzehuels/netviz/pkg/observability"
	"github.com/matzehuels/netviz/pkg/render/nodelink"
	"github.com/matzehuels/netviz/pkg/sink"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options and graphs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ConvertAndRender runs the complete convert → render → deliver pipeline.
//
// Outputs are written next to opts.OutputPath, one file per format. In
// interactive mode the call then serves the outputs on opts.Addr and only
// returns once ctx is cancelled; cancellation after the files are written
// is not an error.
func (r *Runner) ConvertAndRender(ctx context.Context, g *digraph.Graph, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Convert
	convertStart := time.Now()
	net, err := r.Convert(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	result.Network = net
	result.Stats.ConvertTime = time.Since(convertStart)
	result.Stats.NodeCount = net.NodeCount()
	result.Stats.EdgeCount = net.EdgeCount()

	r.Logger.Info("converted network",
		"nodes", net.NodeCount(),
		"edges", net.EdgeCount(),
		"duration", result.Stats.ConvertTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, svgHit, err := r.RenderWithCacheInfo(ctx, net, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.SVGHit = svgHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	// Stage 3: Deliver
	paths, err := r.Write(artifacts, opts)
	if err != nil {
		return nil, err
	}
	result.Paths = paths

	if opts.IsInteractive() {
		if err := r.Serve(ctx, artifacts, opts); err != nil {
			return result, err
		}
	}

	return result, nil
}

// Convert annotates a source graph into a renderable network. Running out
// of unique colors is reported as COLOR_SPACE_EXHAUSTED.
func (r *Runner) Convert(ctx context.Context, g *digraph.Graph, opts Options) (*network.Network, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	opts.SetDefaults()

	var nodes, edges int
	if g != nil {
		nodes, edges = g.NodeCount(), g.EdgeCount()
	}
	hooks := observability.Pipeline()
	hooks.OnConvertStart(ctx, nodes, edges)
	start := time.Now()

	net, err := network.Convert(g, network.Options{Seed: opts.Seed, Logger: opts.Logger})
	if errors.Is(err, network.ErrColorSpaceExhausted) {
		err = errs.Wrap(errs.ErrCodeColorSpaceExhausted, err, "graph has %d nodes", nodes)
	}
	hooks.OnConvertComplete(ctx, nodes, edges, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return net, nil
}

// RenderWithCacheInfo renders every requested format and reports whether
// the SVG came from cache. Only SVG renders are cached: they are keyed by
// the hash of their DOT source, and PNG and PDF outputs are converted from
// the same SVG. Cache failures are logged and treated as
// misses.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, net *network.Network, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	svgHit := false
	var svg []byte
	var err error
	for _, format := range opts.Formats {
		if err = ctx.Err(); err != nil {
			break
		}
		var data []byte
		if usesSVG(format) {
			// PNG and PDF are converted from the (cached) SVG.
			if svg == nil {
				svg, svgHit, err = r.renderSVG(ctx, net, opts)
			}
			if err == nil {
				data, err = fromSVG(ctx, svg, format, opts)
			}
		} else {
			data, err = RenderFormat(ctx, net, format, opts)
		}
		if err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			break
		}
		artifacts[format] = data
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	return artifacts, svgHit, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, net *network.Network, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, net, opts)
	return artifacts, err
}

func (r *Runner) renderSVG(ctx context.Context, net *network.Network, opts Options) ([]byte, bool, error) {
	dot := nodelink.ToDOT(net, opts.NodelinkOptions())
	key := r.Keyer.ArtifactKey(cache.Hash([]byte(dot)), opts.ArtifactKeyOpts(FormatSVG))
	hooks := observability.Cache()

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "error", err)
	}
	if err == nil && hit {
		hooks.OnCacheHit(ctx, FormatSVG)
		opts.Logger.Debug("svg from cache", "key", key)
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, FormatSVG)

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, false, errs.Wrap(errs.ErrCodeRender, err, "graphviz")
	}

	if err := r.Cache.Set(ctx, key, svg, opts.CacheTTL); err != nil {
		opts.Logger.Warn("cache write failed", "error", err)
	} else {
		hooks.OnCacheSet(ctx, FormatSVG, len(svg))
	}
	return svg, false, nil
}

// Write stores each artifact at [Options.PathFor] its format and returns
// the written paths keyed by format.
func (r *Runner) Write(artifacts map[string][]byte, opts Options) (map[string]string, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()

	paths := make(map[string]string, len(artifacts))
	for _, format := range opts.Formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := opts.PathFor(format)
		if err := sink.WriteFile(path, data); err != nil {
			return nil, err
		}
		opts.Logger.Debug("wrote output", "format", format, "path", path, "bytes", len(data))
		paths[format] = path
	}
	return paths, nil
}

// Serve serves the artifacts on opts.Addr until ctx is cancelled. The
// first requested format is the page the root URL redirects to.
func (r *Runner) Serve(ctx context.Context, artifacts map[string][]byte, opts Options) error {
	r.applyLogger(&opts)
	opts.SetDefaults()

	var served []sink.Artifact
	for _, format := range opts.Formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		served = append(served, sink.Artifact{
			Name:        filepath.Base(opts.PathFor(format)),
			ContentType: sink.ContentType(format),
			Data:        data,
		})
	}

	if len(served) == 0 {
		return errs.New(errs.ErrCodeNotFound, "nothing to serve: no artifact for formats %v", opts.Formats)
	}

	srv := sink.NewServer(opts.Logger, served...)
	return srv.ListenAndServe(ctx, opts.Addr, opts.OnServe)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
