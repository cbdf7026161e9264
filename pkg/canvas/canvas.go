// Package canvas recommends pixel dimensions for rendering a computed
// layout. The two sizing modes deliberately differ: concept maps live in
// normalized coordinates and get hard-clamped to a fixed pixel range, while
// mind maps live in pixel coordinates and get content-derived minimums
// rounded up to clean 50px steps.
package canvas

import (
	"math"

	"github.com/lycosa9527/mindgraph/pkg/layout"
	"github.com/lycosa9527/mindgraph/pkg/text"
)

// Dimensions is the recommended canvas size for a layout. BaseWidth and
// BaseHeight mirror Width and Height; renderers that apply device scaling
// keep the base pair untouched.
type Dimensions struct {
	BaseWidth  int     `json:"baseWidth" bson:"baseWidth"`
	BaseHeight int     `json:"baseHeight" bson:"baseHeight"`
	Width      int     `json:"width" bson:"width"`
	Height     int     `json:"height" bson:"height"`
	Padding    float64 `json:"padding" bson:"padding"`
}

// =============================================================================
// Graph Mode - Fixed Clamp Range
// =============================================================================

const (
	graphScale       = 180.0 // px per normalized coordinate unit
	graphBasePadding = 80.0
	graphMinSpan     = 0.4

	topicFontSize     = 26.0
	topicMaxTextWidth = 350.0

	conceptFontSize     = 22.0
	conceptMaxTextWidth = 300.0

	graphMinWidth  = 600
	graphMinHeight = 500
	graphMaxWidth  = 1400
	graphMaxHeight = 1200
)

// ForGraph sizes a concept-map canvas from normalized node positions and
// the labels that will be drawn at them. The predicted text boxes reserve
// margin so that nodes at the extremes do not clip, and the result is
// clamped to [600, 1400] x [500, 1200] regardless of content.
func ForGraph(positions map[string]layout.Position, topic string, concepts []string) Dimensions {
	if len(positions) == 0 {
		return Dimensions{BaseWidth: 800, BaseHeight: 600, Width: 800, Height: 600, Padding: 100}
	}

	topicBox := text.EstimateBox(topic, topicFontSize, topicMaxTextWidth)

	maxConceptW, maxConceptH := 100.0, 40.0
	for _, c := range concepts {
		box := text.EstimateBox(c, conceptFontSize, conceptMaxTextWidth)
		maxConceptW = math.Max(maxConceptW, box.W)
		maxConceptH = math.Max(maxConceptH, box.H)
	}

	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, p := range positions {
		xmin = math.Min(xmin, p.X)
		xmax = math.Max(xmax, p.X)
		ymin = math.Min(ymin, p.Y)
		ymax = math.Max(ymax, p.Y)
	}

	spanX := math.Max(graphMinSpan, xmax-xmin)
	spanY := math.Max(graphMinSpan, ymax-ymin)

	// Content area plus half the widest node on each side.
	marginX := math.Floor(math.Max(topicBox.W, maxConceptW) / 2)
	marginY := math.Floor(math.Max(topicBox.H, maxConceptH) / 2)

	totalW := spanX*graphScale + 2*marginX + 2*graphBasePadding
	totalH := spanY*graphScale + 2*marginY + 2*graphBasePadding

	n := len(concepts)
	minW := math.Max(graphMinWidth, float64(400+n*10))
	minH := math.Max(graphMinHeight, float64(350+n*8))

	w := int(math.Max(minW, math.Min(graphMaxWidth, totalW)))
	h := int(math.Max(minH, math.Min(graphMaxHeight, totalH)))

	return Dimensions{BaseWidth: w, BaseHeight: h, Width: w, Height: h, Padding: graphBasePadding}
}

// =============================================================================
// Tree Mode - Content-Derived Minimums
// =============================================================================

// NodeBox is a positioned pixel-space box in a mind-map layout: center
// coordinates plus full width and height.
type NodeBox struct {
	X, Y float64
	W, H float64
}

const (
	treeMinWidth  = 800.0
	treeMinHeight = 500.0
	treeRound     = 50.0
)

// ForTree sizes a mind-map canvas from the pixel-space boxes the layout
// produced. Padding adapts to content extent and node counts, the minimums
// grow with content, and the final size is rounded up to a 50px grid.
func ForTree(boxes []NodeBox, numBranches, numChildren int) Dimensions {
	if len(boxes) == 0 {
		return Dimensions{BaseWidth: 800, BaseHeight: 600, Width: 800, Height: 600, Padding: 80}
	}

	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, b := range boxes {
		xmin = math.Min(xmin, b.X-b.W/2)
		xmax = math.Max(xmax, b.X+b.W/2)
		ymin = math.Min(ymin, b.Y-b.H/2)
		ymax = math.Max(ymax, b.Y+b.H/2)
	}

	requiredW := xmax - xmin
	requiredH := ymax - ymin
	contentSize := math.Max(requiredW, requiredH)

	basePadding := adaptiveBasePadding(contentSize, numBranches, numChildren)
	pct := math.Min(0.10, math.Max(0.06, contentSize/1500))
	padding := math.Min(float64(basePadding), contentSize*pct)

	w := requiredW + 2*padding
	h := requiredH + 2*padding

	// Content-derived floors, never below the absolute minimums.
	floorPad := float64(adaptiveBasePadding(contentSize, 1, 1))
	minW := math.Max(treeMinWidth, requiredW+floorPad)
	minH := math.Max(treeMinHeight, requiredH+math.Floor(floorPad*0.7))

	w = math.Ceil(math.Max(w, minW)/treeRound) * treeRound
	h = math.Ceil(math.Max(h, minH)/treeRound) * treeRound

	return Dimensions{
		BaseWidth:  int(w),
		BaseHeight: int(h),
		Width:      int(w),
		Height:     int(h),
		Padding:    padding,
	}
}

// adaptiveBasePadding grows with content extent and is nudged up by the
// branch and child counts.
func adaptiveBasePadding(contentSize float64, numBranches, numChildren int) int {
	var base float64
	switch {
	case contentSize < 300:
		base = 60
	case contentSize < 500:
		base = 80
	case contentSize < 800:
		base = 100
	default:
		base = 120
	}

	branchFactor := math.Min(float64(numBranches)/4, 1.5)
	base *= 1 + (branchFactor-1)*0.2

	childFactor := math.Min(float64(numChildren)/10, 1.3)
	base *= 1 + (childFactor-1)*0.15

	return int(base)
}
