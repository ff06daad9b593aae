// Package io provides JSON import and export for source graphs and
// converted networks.
//
// # JSON Format
//
// A graph file has two required arrays and optional attribute objects:
//
//	{
//	  "nodes": [
//	    {"id": "api"},
//	    {"id": "db", "attrs": {"label": "Postgres"}}
//	  ],
//	  "edges": [
//	    {"from": "api", "to": "db", "attrs": {"depth": 1}},
//	    {"from": "db", "to": "api", "attrs": {"depth": 2}}
//	  ]
//	}
//
// Order matters: nodes and edges are added in file order, which is the
// order the converter assigns colors and merges reverse-edge tooltips in.
//
// # Import
//
// Use [ImportJSON] for a file path or [ReadJSON] for any io.Reader:
//
//	g, err := io.ImportJSON("graph.json")
//
// Errors carry codes from [errors]: FILE_NOT_FOUND for a missing file and
// INVALID_GRAPH for malformed content, wrapping the digraph sentinel
// (duplicate node, duplicate edge, unknown endpoint) where one applies.
//
// # Export
//
// [WriteJSON] and [ExportJSON] write a graph back in the same format, so a
// graph survives import → export → import unchanged. [WriteNetworkJSON]
// writes a converted [network.Network] (the "json" output format).
//
// [errors]: github.com/matzehuels/netviz/pkg/errors
// [network.Network]: github.com/matzehuels/netviz/pkg/network.Network
package io
