package pipeline

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netviz/pkg/cache"
	"github.com/matzehuels/netviz/pkg/digraph"
	errs "github.com/matzehuels/netviz/pkg/errors"
	"github.com/matzehuels/netviz/pkg/observability"
	"github.com/matzehuels/netviz/pkg/render"
)

func testGraph(t *testing.T) *digraph.Graph {
	t.Helper()
	g := digraph.New(nil)
	for _, id := range []string{"web", "api", "db"} {
		if err := g.AddNode(digraph.Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range []digraph.Edge{
		{From: "web", To: "api", Attrs: digraph.Attrs{"depth": 1}},
		{From: "api", To: "db", Attrs: digraph.Attrs{"depth": 2}},
		{From: "db", To: "api", Attrs: digraph.Attrs{"depth": 3}},
	} {
		if err := g.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

// memCache is an in-memory cache.Cache that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

// failingCache reports an error on every call.
type failingCache struct{ *cache.NullCache }

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, cache.ErrNetwork
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return cache.ErrNetwork
}

func TestConvertAndRenderWritesFiles(t *testing.T) {
	dir := t.TempDir()
	runner := NewRunner(nil, nil, log.New(io.Discard))

	res, err := runner.ConvertAndRender(context.Background(), testGraph(t), Options{
		OutputPath: filepath.Join(dir, "out", "graph.html"),
		Formats:    []string{"html", "dot", "json"},
		Seed:       1,
	})
	if err != nil {
		t.Fatalf("ConvertAndRender: %v", err)
	}

	if res.Stats.NodeCount != 3 || res.Stats.EdgeCount != 3 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Network == nil || res.Network.NodeCount() != 3 {
		t.Fatal("result should carry the converted network")
	}

	for _, format := range []string{"html", "dot", "json"} {
		path := res.Paths[format]
		if path != filepath.Join(dir, "out", "graph."+format) {
			t.Errorf("path[%s] = %q", format, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", format, err)
		}
		if !bytes.Equal(data, res.Artifacts[format]) {
			t.Errorf("%s on disk differs from artifact", format)
		}
	}

	e, _ := res.Network.Edge("db", "api")
	if want := "Parent: db Child: api. Depths: 3<br>Parent: api Child: db. Depths: 2"; e.Title != want {
		t.Errorf("merged title = %q, want %q", e.Title, want)
	}
}

func TestConvertAndRenderDefaultPath(t *testing.T) {
	t.Chdir(t.TempDir())

	res, err := NewRunner(nil, nil, nil).ConvertAndRender(context.Background(), testGraph(t), Options{})
	if err != nil {
		t.Fatalf("ConvertAndRender: %v", err)
	}
	if res.Paths["html"] != "graph_files/graph.html" {
		t.Errorf("paths = %v", res.Paths)
	}
	if _, err := os.Stat("graph_files/graph.html"); err != nil {
		t.Errorf("default output missing: %v", err)
	}
}

func TestConvertAndRenderInvalidOptions(t *testing.T) {
	_, err := NewRunner(nil, nil, nil).ConvertAndRender(context.Background(), testGraph(t), Options{Display: "notebook"})
	if !errs.Is(err, errs.ErrCodeInvalidDisplay) {
		t.Errorf("error = %v, want INVALID_DISPLAY", err)
	}
}

func TestConvertAndRenderSinkError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewRunner(nil, nil, nil).ConvertAndRender(context.Background(), testGraph(t), Options{
		OutputPath: filepath.Join(blocker, "graph.html"),
	})
	if !errs.Is(err, errs.ErrCodeIO) {
		t.Errorf("error = %v, want IO_ERROR", err)
	}
}

func TestConvertCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRunner(nil, nil, nil).Convert(ctx, testGraph(t), Options{}); err != context.Canceled {
		t.Errorf("Convert on cancelled context = %v", err)
	}
}

func TestConvertLogsEdges(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	if _, err := NewRunner(nil, nil, logger).Convert(context.Background(), testGraph(t), Options{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Count(out, "edge") < 3 || !strings.Contains(out, "source=web") {
		t.Errorf("expected one debug entry per edge, got:\n%s", out)
	}
}

func TestRenderSVGUsesCache(t *testing.T) {
	mc := newMemCache()
	runner := NewRunner(mc, nil, nil)
	ctx := context.Background()
	opts := Options{Formats: []string{"svg"}, Seed: 99}

	net, err := runner.Convert(ctx, testGraph(t), opts)
	if err != nil {
		t.Fatal(err)
	}

	first, hit, err := runner.RenderWithCacheInfo(ctx, net, opts)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	if hit {
		t.Error("first render should miss")
	}
	if mc.sets != 1 {
		t.Errorf("sets = %d, want 1", mc.sets)
	}

	second, hit, err := runner.RenderWithCacheInfo(ctx, net, opts)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !hit {
		t.Error("second render should hit")
	}
	if !bytes.Equal(first["svg"], second["svg"]) {
		t.Error("cached SVG differs")
	}
}

func TestRenderRasterSharesSVG(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	mc := newMemCache()
	runner := NewRunner(mc, nil, nil)
	ctx := context.Background()
	opts := Options{Formats: []string{"svg", "png", "pdf"}, Seed: 5}

	net, err := runner.Convert(ctx, testGraph(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	artifacts, _, err := runner.RenderWithCacheInfo(ctx, net, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !bytes.HasPrefix(artifacts["png"], []byte("\x89PNG")) {
		t.Error("png output lacks the PNG signature")
	}
	if !bytes.HasPrefix(artifacts["pdf"], []byte("%PDF")) {
		t.Error("pdf output lacks the PDF header")
	}
	if mc.gets != 1 || mc.sets != 1 {
		t.Errorf("cache gets=%d sets=%d, want one SVG render shared by all formats", mc.gets, mc.sets)
	}
}

func TestRenderRasterWithoutConverter(t *testing.T) {
	if render.Available() {
		t.Skip("rsvg-convert installed")
	}
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()
	opts := Options{Formats: []string{"png"}}

	net, err := runner.Convert(ctx, testGraph(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = runner.RenderWithCacheInfo(ctx, net, opts)
	if !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("error = %v, want UNSUPPORTED", err)
	}
}

func TestRenderSVGCacheFailureIsMiss(t *testing.T) {
	runner := NewRunner(failingCache{cache.NewNullCache()}, nil, nil)
	ctx := context.Background()
	opts := Options{Formats: []string{"svg"}}

	net, err := runner.Convert(ctx, testGraph(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	arts, err := runner.Render(ctx, net, opts)
	if err != nil {
		t.Fatalf("cache errors must not fail the render: %v", err)
	}
	if !strings.Contains(string(arts["svg"]), "<svg") {
		t.Error("svg missing")
	}
}

type recordingPipelineHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingPipelineHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingPipelineHooks) OnConvertStart(context.Context, int, int) {
	h.record("convert-start")
}

func (h *recordingPipelineHooks) OnConvertComplete(context.Context, int, int, time.Duration, error) {
	h.record("convert-complete")
}

func (h *recordingPipelineHooks) OnRenderStart(context.Context, []string) {
	h.record("render-start")
}

func (h *recordingPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render-complete")
}

func TestPipelineHooks(t *testing.T) {
	hooks := &recordingPipelineHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	_, err := NewRunner(nil, nil, nil).ConvertAndRender(context.Background(), testGraph(t), Options{
		OutputPath: filepath.Join(t.TempDir(), "g.html"),
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"convert-start", "convert-complete", "render-start", "render-complete"}
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if strings.Join(hooks.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}

func TestServeWithoutArtifacts(t *testing.T) {
	err := NewRunner(nil, nil, nil).Serve(context.Background(), map[string][]byte{"svg": []byte("<svg/>")}, Options{
		Formats: []string{"html"},
		Addr:    "127.0.0.1:0",
	})
	if !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("Serve = %v, want NOT_FOUND", err)
	}
}

func TestConvertAndRenderInteractive(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	urls := make(chan string, 1)
	done := make(chan error, 1)
	path := filepath.Join(t.TempDir(), "graph.html")
	g := testGraph(t)
	go func() {
		_, err := NewRunner(nil, nil, nil).ConvertAndRender(ctx, g, Options{
			OutputPath: path,
			Display:    DisplayInteractive,
			Addr:       "127.0.0.1:0",
			OnServe:    func(url string) { urls <- url },
		})
		done <- err
	}()

	var url string
	select {
	case url = <-urls:
	case err := <-done:
		t.Fatalf("returned before serving: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not start")
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("file should be written before serving: %v", err)
	}

	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "vis.Network") {
		t.Errorf("served page is not the network page: %.200s", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ConvertAndRender after cancel = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("interactive run did not stop")
	}
}
