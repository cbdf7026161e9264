// Package mindmap computes render-ready layouts for mind maps: a central
// topic with a strict two-level tree of branches and children below it.
// Branches split into balanced left and right columns around the topic,
// children stack beside their branch, and every node carries an adaptive
// pixel box sized from its label.
//
// Unlike concept maps, mind-map coordinates are pixel-space offsets from
// the topic; the renderer translates them onto the recommended canvas.
package mindmap

import (
	"github.com/lycosa9527/mindgraph/pkg/canvas"
	"github.com/lycosa9527/mindgraph/pkg/layout"
)

// Child is a leaf node under a branch.
type Child struct {
	Label string `json:"label" bson:"label"`
}

// Branch is a direct child of the topic, optionally holding children.
type Branch struct {
	Label    string  `json:"label" bson:"label"`
	Children []Child `json:"children,omitempty" bson:"children,omitempty"`
}

// Spec is the raw mind-map input.
type Spec struct {
	Topic    string   `json:"topic" bson:"topic"`
	Branches []Branch `json:"children" bson:"children"`
}

// NodeType identifies the tree level of a positioned node.
type NodeType string

const (
	NodeTopic  NodeType = "topic"
	NodeBranch NodeType = "branch"
	NodeChild  NodeType = "child"
)

// Side is the column a branch and its children occupy.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Node is a positioned, sized mind-map node. X and Y are the pixel
// center relative to the topic before recentering.
type Node struct {
	X           float64  `json:"x" bson:"x"`
	Y           float64  `json:"y" bson:"y"`
	Width       float64  `json:"width" bson:"width"`
	Height      float64  `json:"height" bson:"height"`
	FontSize    float64  `json:"font_size" bson:"fontSize"`
	Text        string   `json:"text" bson:"text"`
	Type        NodeType `json:"node_type" bson:"nodeType"`
	Side        Side     `json:"side,omitempty" bson:"side,omitempty"`
	BranchIndex int      `json:"branch_index" bson:"branchIndex"`
	ChildIndex  int      `json:"child_index" bson:"childIndex"`
}

// Endpoint is one end of a connection line.
type Endpoint struct {
	X    float64  `json:"x" bson:"x"`
	Y    float64  `json:"y" bson:"y"`
	Type NodeType `json:"type" bson:"type"`
}

// Connection describes one line the renderer draws between two nodes.
type Connection struct {
	Type        string   `json:"type" bson:"type"`
	From        Endpoint `json:"from" bson:"from"`
	To          Endpoint `json:"to" bson:"to"`
	BranchIndex int      `json:"branch_index" bson:"branchIndex"`
	ChildIndex  int      `json:"child_index,omitempty" bson:"childIndex,omitempty"`
	StrokeWidth int      `json:"stroke_width" bson:"strokeWidth"`
	StrokeColor string   `json:"stroke_color" bson:"strokeColor"`
}

// Connection types and styles.
const (
	ConnTopicToBranch = "topic_to_branch"
	ConnBranchToChild = "branch_to_child"

	topicBranchStrokeWidth = 3
	branchChildStrokeWidth = 2
	topicBranchStrokeColor = "#2c3e50"
	branchChildStrokeColor = "#34495e"
)

// Layout is the computed placement for every node of a mind map.
// Position keys are "topic", "branch_<i>", and "child_<i>_<j>".
type Layout struct {
	Algorithm   string             `json:"algorithm" bson:"algorithm"`
	Positions   map[string]Node    `json:"positions" bson:"positions"`
	Connections []Connection       `json:"connections" bson:"connections"`
	Params      map[string]float64 `json:"params,omitempty" bson:"params,omitempty"`
}

// Enhanced is the normalized spec plus layout, canvas dimensions, and
// the warnings describing every repair applied to the input.
type Enhanced struct {
	Topic      string            `json:"topic" bson:"topic"`
	Branches   []Branch          `json:"children" bson:"children"`
	Layout     Layout            `json:"_layout" bson:"layout"`
	Dimensions canvas.Dimensions `json:"_recommended_dimensions" bson:"recommendedDimensions"`
	Warnings   []layout.Warning  `json:"_warnings,omitempty" bson:"warnings,omitempty"`
}
