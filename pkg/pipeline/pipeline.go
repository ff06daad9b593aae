// Package pipeline provides the convert → render → deliver pipeline for netviz.
//
// This package ties the converter, the renderers and the sinks together so
// the CLI and library callers share one code path.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Convert: annotate a source graph into a renderable network
//  2. Render: produce outputs in the requested formats (HTML, SVG, DOT, JSON)
//  3. Deliver: write the outputs to disk and, in interactive mode, serve
//     them over local HTTP until the context is cancelled
//
// Each stage can be run on its own through the [Runner].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    OutputPath: "graph_files/graph.html",
//	    Formats:    []string{"html", "svg"},
//	}
//	result, err := runner.ConvertAndRender(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
//
// Run individual stages:
//
//	net, err := runner.Convert(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, net, opts)
//	paths, err := runner.Write(artifacts, opts)
package pipeline

import (
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netviz/pkg/cache"
	errs "github.com/matzehuels/netviz/pkg/errors"
	"github.com/matzehuels/netviz/pkg/network"
	"github.com/matzehuels/netviz/pkg/render/nodelink"
	"github.com/matzehuels/netviz/pkg/sink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultOutputPath is where outputs are written when no path is given.
	DefaultOutputPath = sink.DefaultPath

	// DefaultAddr is the listen address for interactive display.
	DefaultAddr = "127.0.0.1:8080"

	// DefaultTitle is the HTML page title.
	DefaultTitle = "Network"

	// DefaultCacheTTL is how long rendered SVGs stay cached.
	DefaultCacheTTL = 7 * 24 * time.Hour

	// DefaultScale is the PNG zoom factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// Display modes.
const (
	// DisplayFile writes outputs to disk only.
	DisplayFile = "file"

	// DisplayInteractive writes outputs and then serves them for a browser.
	DisplayInteractive = "interactive"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// ValidDisplays is the set of supported display modes.
var ValidDisplays = map[string]bool{
	DisplayFile:        true,
	DisplayInteractive: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Output options
	OutputPath string   `json:"output_path,omitempty"`
	Formats    []string `json:"formats,omitempty"`
	Display    string   `json:"display,omitempty"`
	Addr       string   `json:"addr,omitempty"`
	Title      string   `json:"title,omitempty"`

	// Convert options
	Seed uint64 `json:"seed,omitempty"`

	// Detailed adds extra node attributes to SVG and DOT labels.
	Detailed bool `json:"detailed,omitempty"`

	// Scale is the PNG zoom factor; zero means DefaultScale.
	Scale float64 `json:"scale,omitempty"`

	// Cache options
	CacheTTL time.Duration `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// OnServe is called with the page URL once the interactive server is
	// listening.
	OnServe func(url string) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Network is the converted network the artifacts were rendered from.
	Network *network.Network

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Paths contains the file each artifact was written to, keyed by format.
	Paths map[string]string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which renders hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	ConvertTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for cached renders.
type CacheInfo struct {
	SVGHit bool // Whether the SVG came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: html, svg, dot, json, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDisplay checks that a display mode is valid.
func ValidateDisplay(display string) error {
	if !ValidDisplays[display] {
		return errs.New(errs.ErrCodeInvalidDisplay, "invalid display: %q (must be one of: file, interactive)", display)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates. An empty string yields nil.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateDisplay(o.Display); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "scale must not be negative, got %g", o.Scale)
	}
	if err := errs.ValidateOutputPath(o.OutputPath, slices.Sorted(maps.Keys(ValidFormats))...); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// SetDefaults fills every unset field with its default.
func (o *Options) SetDefaults() {
	if o.OutputPath == "" {
		o.OutputPath = DefaultOutputPath
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{formatFromPath(o.OutputPath)}
	}
	if o.Display == "" {
		o.Display = DisplayFile
	}
	if o.Addr == "" {
		o.Addr = DefaultAddr
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsInteractive returns true if outputs should be served after writing.
func (o *Options) IsInteractive() bool {
	return o.Display == DisplayInteractive
}

// PathFor returns the file an artifact of the given format is written to:
// the output path with its extension replaced by the format.
func (o *Options) PathFor(format string) string {
	return sink.SiblingPath(o.OutputPath, format)
}

func (o *Options) scale() float64 {
	if o.Scale <= 0 {
		return DefaultScale
	}
	return o.Scale
}

// NodelinkOptions returns the options for the DOT and SVG renderers.
func (o *Options) NodelinkOptions() nodelink.Options {
	return nodelink.Options{Detailed: o.Detailed}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}

// formatFromPath infers a format from the output path's extension, falling
// back to HTML.
func formatFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ValidFormats[ext] {
		return ext
	}
	return FormatHTML
}
