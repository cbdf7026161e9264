// Package graphmap computes render-ready layouts for concept maps: a
// central topic, a set of concept labels, and labeled relationships
// between them. Input specs are typically produced by a language model,
// so normalization repairs malformed input instead of rejecting it.
//
// Positions are normalized to [-1, 1] on both axes with the topic near
// the origin. Three placement strategies are available: layered (default),
// sector, and radial.
package graphmap

import (
	"github.com/lycosa9527/mindgraph/pkg/canvas"
	"github.com/lycosa9527/mindgraph/pkg/layout"
)

// Relationship is a labeled edge between two node labels. Endpoints refer
// to the topic or to entries of Spec.Concepts by display text.
type Relationship struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Label string `json:"label" bson:"label"`
}

// Spec is the raw concept-map input. Keys and KeyParts are an optional
// pre-grouping produced by an upstream categorization pass; when present
// they select the sector strategy by default.
type Spec struct {
	Topic         string              `json:"topic" bson:"topic"`
	Concepts      []string            `json:"concepts" bson:"concepts"`
	Relationships []Relationship      `json:"relationships" bson:"relationships"`
	Keys          []string            `json:"keys,omitempty" bson:"keys,omitempty"`
	KeyParts      map[string][]string `json:"key_parts,omitempty" bson:"keyParts,omitempty"`
}

// Layout is the computed placement for every node of a concept map.
type Layout struct {
	Algorithm      string                     `json:"algorithm" bson:"algorithm"`
	Layers         map[string][]string        `json:"layers,omitempty" bson:"layers,omitempty"`
	Keys           []string                   `json:"keys,omitempty" bson:"keys,omitempty"`
	KeyParts       map[string][]string        `json:"key_parts,omitempty" bson:"keyParts,omitempty"`
	Positions      map[string]layout.Position `json:"positions" bson:"positions"`
	EdgeCurvatures map[string]float64         `json:"edgeCurvatures" bson:"edgeCurvatures"`
	Params         map[string]float64         `json:"params,omitempty" bson:"params,omitempty"`
}

// RenderConfig carries spacing hints the renderer applies on top of the
// computed positions.
type RenderConfig struct {
	NodeSpacing     float64 `json:"nodeSpacing" bson:"nodeSpacing"`
	CanvasPadding   float64 `json:"canvasPadding" bson:"canvasPadding"`
	MinNodeDistance float64 `json:"minNodeDistance" bson:"minNodeDistance"`
}

// Enhanced is the normalized spec plus everything a renderer needs:
// positions, curvature hints, recommended canvas dimensions, and the
// warnings describing every repair applied to the input.
type Enhanced struct {
	Topic         string            `json:"topic" bson:"topic"`
	Concepts      []string          `json:"concepts" bson:"concepts"`
	Relationships []Relationship    `json:"relationships" bson:"relationships"`
	Layout        Layout            `json:"_layout" bson:"layout"`
	Dimensions    canvas.Dimensions `json:"_recommended_dimensions" bson:"recommendedDimensions"`
	Config        RenderConfig      `json:"_config" bson:"config"`
	Warnings      []layout.Warning  `json:"_warnings,omitempty" bson:"warnings,omitempty"`
}
