package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netviz/pkg/config"
	"github.com/matzehuels/netviz/pkg/io"
	"github.com/matzehuels/netviz/pkg/pipeline"
)

// convertFlags holds the command-line flags of the convert command. Zero
// values defer to the config file.
type convertFlags struct {
	output   string
	formats  string
	display  string
	addr     string
	title    string
	seed     uint64
	scale    float64
	detailed bool
	noCache  bool
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert [graph.json]",
		Short: "Convert a graph into a network visualization",
		Long: `Convert a directed graph into a network visualization.

The input is a JSON graph with "nodes" and "edges" arrays. Every node gets a
unique random color, and edges carrying a "depth" attribute get a tooltip
naming their endpoints. When both directions of an edge exist, the later
edge's tooltip also lists the earlier one.

By default a standalone HTML page is written to graph_files/graph.html.
With --display interactive the outputs are also served on a local address
until interrupted.

SVG renders are cached; use --seed for reproducible colors and cache hits.
PNG and PDF are converted from the SVG and need rsvg-convert (librsvg).`,
		Example: `  netviz convert deps.json
  netviz convert deps.json -o out/deps.html -f html,svg --seed 7
  netviz convert deps.json --display interactive --addr 127.0.0.1:9000`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := flags.apply(cfg)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runConvert(cmd.Context(), args[0], cfg, opts, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default "+pipeline.DefaultOutputPath+")")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): html (default), svg, dot, json, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&flags.display, "display", "", "display mode: file (default), interactive")
	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address for interactive display (default "+pipeline.DefaultAddr+")")
	cmd.Flags().StringVar(&flags.title, "title", "", "HTML page title")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "color seed for reproducible output (0 picks fresh colors)")
	cmd.Flags().Float64Var(&flags.scale, "scale", 0, "PNG zoom factor (default 2)")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "show node attributes in SVG and DOT labels")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("display", cobra.FixedCompletions(
		[]string{pipeline.DisplayFile, pipeline.DisplayInteractive}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// apply layers the flags over the config file settings.
func (f convertFlags) apply(cfg *config.Config) pipeline.Options {
	opts := cfg.PipelineOptions()
	if f.output != "" {
		opts.OutputPath = f.output
		// An explicit path picks its own format unless -f says otherwise.
		opts.Formats = nil
	}
	if formats := pipeline.ParseFormats(f.formats); len(formats) > 0 {
		opts.Formats = formats
	}
	if f.display != "" {
		opts.Display = f.display
	}
	if f.addr != "" {
		opts.Addr = f.addr
	}
	if f.title != "" {
		opts.Title = f.title
	}
	if f.seed != 0 {
		opts.Seed = f.seed
	}
	if f.scale > 0 {
		opts.Scale = f.scale
	}
	opts.Detailed = opts.Detailed || f.detailed
	return opts
}

// runConvert loads the graph and runs the pipeline stage by stage so the
// spinner is gone before an interactive server takes over the terminal.
func (c *CLI) runConvert(ctx context.Context, input string, cfg *config.Config, opts pipeline.Options, noCache bool) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	g, err := io.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	logger.Debug("loaded graph", "path", input, "nodes", g.NodeCount(), "edges", g.EdgeCount())

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Converting %s...", input))
	spinner.Start()
	prog := newProgress(logger)

	net, err := runner.Convert(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Conversion failed")
		return fmt.Errorf("convert: %w", err)
	}
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, net, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	paths, err := runner.Write(artifacts, opts)
	if err != nil {
		spinner.StopWithError("Writing outputs failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Converted %d nodes", net.NodeCount()))

	printSuccess("Network written")
	printStats(net.NodeCount(), net.EdgeCount(), cacheHit)
	for _, format := range opts.Formats {
		if path, ok := paths[format]; ok {
			printFile(path)
		}
	}

	if !opts.IsInteractive() {
		printNewline()
		printNextStep("Open it in a browser", fmt.Sprintf("%s convert %s --display interactive", appName, input))
		return nil
	}

	opts.OnServe = func(url string) {
		printNewline()
		printInfo("Serving at %s", StyleLink.Render(url))
		printDetail("Press Ctrl+C to stop")
	}
	return runner.Serve(ctx, artifacts, opts)
}
