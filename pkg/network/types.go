package network

import (
	"encoding/json"
	"maps"
)

// Node is a renderable node: the source node's attributes split into the
// fields vis-network understands and an Extra bag for everything else.
type Node struct {
	ID    string // Source node ID
	Title string // Tooltip, always the node ID
	Color Color  // Unique within one Network
	Label string // Display label; the node ID unless a "label" attribute is set

	Size  *float64
	Value *float64
	X     *float64
	Y     *float64

	// Extra holds attributes with no dedicated field, or with a value of
	// the wrong type for their field. They are passed through untouched.
	Extra map[string]any
}

// Edge is a renderable directed edge.
type Edge struct {
	From  string
	To    string
	Title string // Derived tooltip, possibly empty

	Value              *float64
	Width              *float64
	Hidden             *bool
	Physics            *bool
	ArrowStrikethrough *bool

	Extra map[string]any
}

// Network is the annotated graph handed to renderers. Nodes and Edges keep
// the source graph's iteration order.
type Network struct {
	Nodes    []Node
	Edges    []Edge
	Directed bool
	Width    string
	Height   string
	Config   RenderConfig
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int { return len(n.Nodes) }

// EdgeCount returns the number of edges.
func (n *Network) EdgeCount() int { return len(n.Edges) }

// Node returns the node with the given ID.
func (n *Network) Node(id string) (Node, bool) {
	for _, nd := range n.Nodes {
		if nd.ID == id {
			return nd, true
		}
	}
	return Node{}, false
}

// Edge returns the edge from->to.
func (n *Network) Edge(from, to string) (Edge, bool) {
	for _, e := range n.Edges {
		if e.From == from && e.To == to {
			return e, true
		}
	}
	return Edge{}, false
}

// ColorOf returns a lookup of node ID to color.
func (n *Network) ColorOf() map[string]Color {
	m := make(map[string]Color, len(n.Nodes))
	for _, nd := range n.Nodes {
		m[nd.ID] = nd.Color
	}
	return m
}

// MarshalJSON flattens the node into a vis-network node object. Extra
// attributes come first so that dedicated fields win on key collisions,
// except a non-string label, which is written with its original type.
func (nd Node) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(nd.Extra)+8)
	maps.Copy(m, nd.Extra)
	m["id"] = nd.ID
	m["title"] = nd.Title
	m["color"] = nd.Color.String()
	if _, ok := nd.Extra["label"]; !ok {
		m["label"] = nd.Label
	}
	putFloat(m, "size", nd.Size)
	putFloat(m, "value", nd.Value)
	putFloat(m, "x", nd.X)
	putFloat(m, "y", nd.Y)
	return json.Marshal(m)
}

// MarshalJSON flattens the edge into a vis-network edge object.
func (e Edge) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(e.Extra)+8)
	maps.Copy(m, e.Extra)
	m["from"] = e.From
	m["to"] = e.To
	m["title"] = e.Title
	putFloat(m, "value", e.Value)
	putFloat(m, "width", e.Width)
	putBool(m, "hidden", e.Hidden)
	putBool(m, "physics", e.Physics)
	putBool(m, "arrowStrikethrough", e.ArrowStrikethrough)
	return json.Marshal(m)
}

type networkJSON struct {
	Nodes    []Node       `json:"nodes"`
	Edges    []Edge       `json:"edges"`
	Directed bool         `json:"directed"`
	Width    string       `json:"width"`
	Height   string       `json:"height"`
	Options  RenderConfig `json:"options"`
}

// MarshalJSON writes nodes, edges, canvas size and the options object.
func (n *Network) MarshalJSON() ([]byte, error) {
	out := networkJSON{
		Nodes:    n.Nodes,
		Edges:    n.Edges,
		Directed: n.Directed,
		Width:    n.Width,
		Height:   n.Height,
		Options:  n.Config,
	}
	if out.Nodes == nil {
		out.Nodes = []Node{}
	}
	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	return json.Marshal(out)
}

func putFloat(m map[string]any, key string, v *float64) {
	if v != nil {
		m[key] = *v
	}
}

func putBool(m map[string]any, key string, v *bool) {
	if v != nil {
		m[key] = *v
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}
