package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/netviz/pkg/digraph"
	"github.com/matzehuels/netviz/pkg/network"
	"github.com/matzehuels/netviz/pkg/render"
)

func convert(t *testing.T) *network.Network {
	t.Helper()
	g := digraph.New(nil)
	_ = g.AddNode(digraph.Node{ID: "api"})
	_ = g.AddNode(digraph.Node{ID: "db", Attrs: digraph.Attrs{"label": "Postgres", "team": "data"}})
	_ = g.AddEdge(digraph.Edge{From: "api", To: "db", Attrs: digraph.Attrs{"depth": 1}})
	_ = g.AddEdge(digraph.Edge{From: "db", To: "api", Attrs: digraph.Attrs{"depth": 2, "hidden": true}})

	net, err := network.Convert(g, network.Options{Seed: 42})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	return net
}

func TestToDOT(t *testing.T) {
	net := convert(t)
	dot := ToDOT(net, Options{})

	api, _ := net.Node("api")
	db, _ := net.Node("db")
	for _, want := range []string{
		"digraph G {",
		`"api" [label="api", tooltip="api", fillcolor="` + api.Color.String() + `"`,
		`"db" [label="Postgres", tooltip="db", fillcolor="` + db.Color.String() + `"`,
		`"api" -> "db" [label="1", tooltip="Parent: api Child: db. Depths: 1"]`,
		`tooltip="Parent: db Child: api. Depths: 2\nParent: api Child: db. Depths: 1"`,
		"style=invis",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(convert(t), Options{Detailed: true})
	if !strings.Contains(dot, `label="Postgres\nteam: data"`) {
		t.Errorf("detailed label missing extra attributes:\n%s", dot)
	}
}

func TestToDOTNumericLabel(t *testing.T) {
	g := digraph.New(nil)
	_ = g.AddNode(digraph.Node{ID: "n", Attrs: digraph.Attrs{"label": 5, "rank": 1}})
	net, err := network.Convert(g, network.Options{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(net, Options{Detailed: true})
	if !strings.Contains(dot, `label="5\nrank: 1"`) {
		t.Errorf("numeric label not rendered once as text:\n%s", dot)
	}
}

func TestToDOTEdgeLabelKey(t *testing.T) {
	dot := ToDOT(convert(t), Options{EdgeLabel: "weight"})
	if strings.Contains(dot, `label="1"`) {
		t.Error("depth label rendered although another key was requested")
	}
}

func TestToDOTNil(t *testing.T) {
	dot := ToDOT(nil, Options{})
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("unexpected DOT for nil network:\n%s", dot)
	}
}

func TestFontColor(t *testing.T) {
	tests := []struct {
		color network.Color
		want  string
	}{
		{network.RGB(255, 255, 255), "#000000"},
		{network.RGB(255, 255, 0), "#000000"},
		{network.RGB(0, 0, 0), "#FFFFFF"},
		{network.RGB(0, 0, 255), "#FFFFFF"},
	}
	for _, tt := range tests {
		if got := fontColor(tt.color); got != tt.want {
			t.Errorf("fontColor(%s) = %s, want %s", tt.color, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.HasSuffix(out, "<g/></svg>") {
		t.Errorf("body changed: %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(convert(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, "<svg") || !strings.Contains(s, "Postgres") {
		t.Errorf("unexpected SVG output: %.200s", s)
	}
}

func TestRenderSVGInvalid(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("expected parse error")
	}
}

func TestRenderRaster(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	dot := ToDOT(convert(t), Options{})
	ctx := context.Background()

	png, err := RenderPNG(ctx, dot, 1.5)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !strings.HasPrefix(string(png), "\x89PNG") {
		t.Error("RenderPNG output lacks the PNG signature")
	}

	pdf, err := RenderPDF(ctx, dot)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !strings.HasPrefix(string(pdf), "%PDF") {
		t.Error("RenderPDF output lacks the PDF header")
	}
}

func TestRenderRasterInvalidDOT(t *testing.T) {
	if _, err := RenderPNG(context.Background(), "digraph {", 1); err == nil {
		t.Error("expected parse error before conversion")
	}
}
