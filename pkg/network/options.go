package network

import "encoding/json"

// RenderConfig is the rendering configuration attached to every Network.
// It is fixed: [Convert] always attaches [DefaultRenderConfig] and offers no
// override. Callers wanting different options must edit the returned
// Network.
type RenderConfig struct {
	NodePhysics            bool    // nodes.physics
	NodeSize               int     // nodes.size
	EdgeArrowStrikethrough bool    // edges.arrowStrikethrough
	EdgeColorInherit       bool    // edges.color.inherit
	EdgePhysics            bool    // edges.physics
	EdgeSmooth             bool    // edges.smooth
	MinVelocity            float64 // physics.minVelocity
}

// DefaultRenderConfig returns the fixed configuration: no physics, node size
// 12, plain arrows, edges colored after their source node, straight edges.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NodePhysics:            false,
		NodeSize:               12,
		EdgeArrowStrikethrough: false,
		EdgeColorInherit:       true,
		EdgePhysics:            false,
		EdgeSmooth:             false,
		MinVelocity:            0.75,
	}
}

type visOptions struct {
	Nodes struct {
		Physics bool `json:"physics"`
		Size    int  `json:"size"`
	} `json:"nodes"`
	Edges struct {
		ArrowStrikethrough bool `json:"arrowStrikethrough"`
		Color              struct {
			Inherit bool `json:"inherit"`
		} `json:"color"`
		Physics bool `json:"physics"`
		Smooth  bool `json:"smooth"`
	} `json:"edges"`
	Physics struct {
		MinVelocity float64 `json:"minVelocity"`
	} `json:"physics"`
}

// MarshalJSON emits the vis-network options object.
func (c RenderConfig) MarshalJSON() ([]byte, error) {
	var o visOptions
	o.Nodes.Physics = c.NodePhysics
	o.Nodes.Size = c.NodeSize
	o.Edges.ArrowStrikethrough = c.EdgeArrowStrikethrough
	o.Edges.Color.Inherit = c.EdgeColorInherit
	o.Edges.Physics = c.EdgePhysics
	o.Edges.Smooth = c.EdgeSmooth
	o.Physics.MinVelocity = c.MinVelocity
	return json.Marshal(o)
}

// UnmarshalJSON reads a vis-network options object written by MarshalJSON.
func (c *RenderConfig) UnmarshalJSON(data []byte) error {
	var o visOptions
	if err := json.Unmarshal(data, &o); err != nil {
		return err
	}
	*c = RenderConfig{
		NodePhysics:            o.Nodes.Physics,
		NodeSize:               o.Nodes.Size,
		EdgeArrowStrikethrough: o.Edges.ArrowStrikethrough,
		EdgeColorInherit:       o.Edges.Color.Inherit,
		EdgePhysics:            o.Edges.Physics,
		EdgeSmooth:             o.Edges.Smooth,
		MinVelocity:            o.Physics.MinVelocity,
	}
	return nil
}
