package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/netviz/pkg/config"
	errs "github.com/matzehuels/netviz/pkg/errors"
	"github.com/matzehuels/netviz/pkg/pipeline"
)

const testGraph = `{
  "nodes": [{"id": "api"}, {"id": "db"}],
  "edges": [
    {"from": "api", "to": "db", "attrs": {"depth": 1}},
    {"from": "db", "to": "api", "attrs": {"depth": 2}}
  ]
}`

// isolate points config and cache lookups at a temp dir and captures
// user-facing output.
func isolate(t *testing.T) (dir string, out *bytes.Buffer) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	out = &bytes.Buffer{}
	old := stdout
	stdout = out
	t.Cleanup(func() { stdout = old })
	return dir, out
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeGraph(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "graph.json")
	if err := os.WriteFile(path, []byte(testGraph), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvertWritesHTML(t *testing.T) {
	dir, out := isolate(t)
	input := writeGraph(t, dir)
	output := filepath.Join(dir, "out", "graph.html")

	if err := execute(t, "convert", input, "-o", output, "--no-cache"); err != nil {
		t.Fatalf("convert: %v", err)
	}

	page, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(page), "Parent: db Child: api. Depths: 2") {
		t.Error("page should carry the merged edge tooltip")
	}
	if !strings.Contains(out.String(), output) {
		t.Errorf("output should list %s:\n%s", output, out.String())
	}
}

func TestConvertMultipleFormats(t *testing.T) {
	dir, _ := isolate(t)
	input := writeGraph(t, dir)
	output := filepath.Join(dir, "graph.html")

	if err := execute(t, "convert", input, "-o", output, "-f", "html,dot,json", "--seed", "7", "--no-cache"); err != nil {
		t.Fatalf("convert: %v", err)
	}
	for _, ext := range []string{".html", ".dot", ".json"} {
		if _, err := os.Stat(filepath.Join(dir, "graph"+ext)); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
	}
}

func TestConvertErrors(t *testing.T) {
	dir, _ := isolate(t)
	input := writeGraph(t, dir)

	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"missing input", []string{"convert", filepath.Join(dir, "nope.json")}, errs.ErrCodeFileNotFound},
		{"bad format", []string{"convert", input, "-f", "gif"}, errs.ErrCodeInvalidFormat},
		{"bad display", []string{"convert", input, "--display", "notebook"}, errs.ErrCodeInvalidDisplay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestConvertBadConfig(t *testing.T) {
	dir, _ := isolate(t)
	input := writeGraph(t, dir)
	cfgPath := filepath.Join(dir, "netviz.toml")
	if err := os.WriteFile(cfgPath, []byte("[output]\ncolour = \"red\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := execute(t, "--config", cfgPath, "convert", input)
	if !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

var cmpOptions = cmpopts.IgnoreUnexported(pipeline.Options{})

func TestConvertFlagsApply(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Formats = []string{"html", "svg"}
	cfg.Output.Title = "From config"
	cfg.Render.Seed = 3

	tests := []struct {
		name  string
		flags convertFlags
		want  pipeline.Options
	}{
		{
			name:  "config only",
			flags: convertFlags{},
			want: pipeline.Options{
				OutputPath: pipeline.DefaultOutputPath,
				Formats:    []string{"html", "svg"},
				Display:    pipeline.DisplayFile,
				Addr:       pipeline.DefaultAddr,
				Title:      "From config",
				Seed:       3,
				CacheTTL:   pipeline.DefaultCacheTTL,
			},
		},
		{
			name:  "output path resets formats",
			flags: convertFlags{output: "out/graph.svg", seed: 9},
			want: pipeline.Options{
				OutputPath: "out/graph.svg",
				Display:    pipeline.DisplayFile,
				Addr:       pipeline.DefaultAddr,
				Title:      "From config",
				Seed:       9,
				CacheTTL:   pipeline.DefaultCacheTTL,
			},
		},
		{
			name:  "flags win",
			flags: convertFlags{formats: "DOT, json", display: "interactive", addr: ":0", title: "T", detailed: true},
			want: pipeline.Options{
				OutputPath: pipeline.DefaultOutputPath,
				Formats:    []string{"dot", "json"},
				Display:    pipeline.DisplayInteractive,
				Addr:       ":0",
				Title:      "T",
				Seed:       3,
				Detailed:   true,
				CacheTTL:   pipeline.DefaultCacheTTL,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.flags.apply(cfg)
			if diff := cmp.Diff(tt.want, got, cmpOptions); diff != "" {
				t.Errorf("apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
