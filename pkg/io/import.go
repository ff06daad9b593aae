package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/netviz/pkg/digraph"
	errs "github.com/matzehuels/netviz/pkg/errors"
)

type graph struct {
	Attrs digraph.Attrs `json:"attrs,omitempty"`
	Nodes []node        `json:"nodes"`
	Edges []edge        `json:"edges"`
}

type node struct {
	ID    string        `json:"id"`
	Attrs digraph.Attrs `json:"attrs,omitempty"`
}

type edge struct {
	From  string        `json:"from"`
	To    string        `json:"to"`
	Attrs digraph.Attrs `json:"attrs,omitempty"`
}

// ReadJSON decodes a JSON graph from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "a"}, {"id": "b", "attrs": {"label": "B"}}],
//	  "edges": [{"from": "a", "to": "b", "attrs": {"depth": 1}}]
//	}
//
// Numbers inside attrs are kept as [json.Number], so a depth written as
// 2.0 is shown as 2.0 and a depth written as 2 is shown as 2.
//
// ReadJSON returns an INVALID_GRAPH error if the JSON is malformed, a node
// ID is empty or repeated, an edge references an unknown node, or the same
// (from, to) pair appears twice. The wrapped cause is the digraph sentinel
// where one applies. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*digraph.Graph, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var data graph
	if err := dec.Decode(&data); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidGraph, err, "decode graph")
	}

	g := digraph.New(data.Attrs)
	for _, n := range data.Nodes {
		if err := errs.ValidateNodeID(n.ID); err != nil {
			return nil, err
		}
		if err := g.AddNode(digraph.Node{ID: n.ID, Attrs: n.Attrs}); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidGraph, err, "node %s", n.ID)
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(digraph.Edge{From: e.From, To: e.To, Attrs: e.Attrs}); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidGraph, err, "edge %s->%s", e.From, e.To)
		}
	}

	return g, nil
}

// ImportJSON reads the JSON graph file at path. A missing file yields a
// FILE_NOT_FOUND error; decoding errors are those of [ReadJSON].
func ImportJSON(path string) (*digraph.Graph, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "graph file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
