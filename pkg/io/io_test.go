package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/netviz/pkg/digraph"
	errs "github.com/matzehuels/netviz/pkg/errors"
	"github.com/matzehuels/netviz/pkg/network"
)

const sampleGraph = `{
  "nodes": [{"id": "A"}, {"id": "B", "attrs": {"label": "Bee"}}],
  "edges": [
    {"from": "A", "to": "B", "attrs": {"depth": 1}},
    {"from": "B", "to": "A", "attrs": {"depth": 2.0}}
  ]
}`

func TestReadJSON(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(sampleGraph))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if g.NodeCount() != 2 || g.EdgeCount() != 2 {
		t.Fatalf("got %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	if ids := digraph.NodeIDs(g.Nodes()); !cmp.Equal(ids, []string{"A", "B"}) {
		t.Errorf("node order = %v", ids)
	}
	e, _ := g.Edge("B", "A")
	if e.Attrs["depth"] != json.Number("2.0") {
		t.Errorf("depth = %#v, want json.Number(\"2.0\")", e.Attrs["depth"])
	}
}

func TestReadJSONFeedsConverter(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(sampleGraph))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	net, err := network.Convert(g, network.Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	e, _ := net.Edge("B", "A")
	want := "Parent: B Child: A. Depths: 2.0<br>Parent: A Child: B. Depths: 1"
	if e.Title != want {
		t.Errorf("title = %q, want %q", e.Title, want)
	}
	b, _ := net.Node("B")
	if b.Label != "Bee" {
		t.Errorf("label = %q, want Bee", b.Label)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cause error
	}{
		{"malformed", `{"nodes": [`, nil},
		{"empty id", `{"nodes": [{"id": ""}], "edges": []}`, nil},
		{"duplicate node", `{"nodes": [{"id": "a"}, {"id": "a"}], "edges": []}`, digraph.ErrDuplicateNodeID},
		{"unknown source", `{"nodes": [{"id": "a"}], "edges": [{"from": "x", "to": "a"}]}`, digraph.ErrUnknownSourceNode},
		{"unknown target", `{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "x"}]}`, digraph.ErrUnknownTargetNode},
		{"duplicate edge", `{"nodes": [{"id": "a"}, {"id": "b"}], "edges": [{"from": "a", "to": "b"}, {"from": "a", "to": "b"}]}`, digraph.ErrDuplicateEdge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errs.Is(err, errs.ErrCodeInvalidGraph) {
				t.Errorf("code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidGraph)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("error %v should wrap %v", err, tt.cause)
			}
		})
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON(missing) = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(sampleGraph))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}

	var a, b bytes.Buffer
	_ = WriteJSON(g, &a)
	_ = WriteJSON(back, &b)
	if diff := cmp.Diff(a.String(), b.String()); diff != "" {
		t.Errorf("round trip changed the graph (-first +second):\n%s", diff)
	}
}

func TestWriteNetworkJSON(t *testing.T) {
	net, err := network.Convert(digraph.New(nil), network.Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteNetworkJSON(net, &buf); err != nil {
		t.Fatalf("WriteNetworkJSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if nodes, ok := decoded["nodes"].([]any); !ok || len(nodes) != 0 {
		t.Errorf("nodes = %v, want empty array", decoded["nodes"])
	}
	if _, ok := decoded["options"]; !ok {
		t.Error("options missing")
	}
}

func TestExportJSONBadPath(t *testing.T) {
	g := digraph.New(nil)
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ExportJSON(g, filepath.Join(blocker, "graph.json")); err == nil {
		t.Error("ExportJSON into a file-as-directory should fail")
	}
}
