// Package text estimates rendered text dimensions without a font rasterizer.
//
// The layout engines and the canvas sizer need to know roughly how wide a
// node's label will render in the browser before any drawing happens. The
// estimates here mirror the measurement heuristics of the SVG renderer:
// a per-character width table for proportional fonts, a flat per-character
// approximation for quick slotting, and a box estimator with line-wrap
// prediction.
package text

// Per-character width factors in em units for common proportional fonts.
// Characters not listed fall back to defaultCharWidth.
var charWidths = map[rune]float64{
	// Narrow characters
	'i': 0.25, 'l': 0.25, 'I': 0.3, 'f': 0.35, 't': 0.35, 'r': 0.35, 'j': 0.25,
	// Medium characters
	'a': 0.55, 'b': 0.55, 'c': 0.5, 'd': 0.55, 'e': 0.5, 'g': 0.55, 'h': 0.55,
	'k': 0.55, 'n': 0.55, 'o': 0.55, 'p': 0.55, 'q': 0.55, 's': 0.5, 'u': 0.55,
	'v': 0.5, 'x': 0.5, 'y': 0.5, 'z': 0.5,
	// Wide characters
	'm': 0.8, 'w': 0.8, 'M': 0.8, 'W': 0.8,
	// Digits
	'0': 0.55, '1': 0.35, '2': 0.55, '3': 0.55, '4': 0.55, '5': 0.55,
	'6': 0.55, '7': 0.55, '8': 0.55, '9': 0.55,
}

const defaultCharWidth = 0.55

// Width estimates the rendered width in pixels of text at the given font
// size, using the per-character width table plus length-scaled padding.
// Returns 0 for empty text.
func Width(text string, fontSize float64) float64 {
	if text == "" {
		return 0
	}

	var total float64
	n := 0
	for _, r := range text {
		w, ok := charWidths[r]
		if !ok {
			w = defaultCharWidth
		}
		total += w * fontSize
		n++
	}

	// Base padding plus extra padding for longer labels.
	padding := 20.0 + float64(n)*2.0
	return total + padding
}

// Box is an estimated rendered text box in pixels.
type Box struct {
	W float64
	H float64
}

const (
	boxPaddingX      = 16.0
	boxPaddingY      = 10.0
	lineHeightFactor = 1.2
	flatCharWidth    = 0.6 // flat em approximation used by the box estimator
)

// EstimateBox predicts the pixel box a label occupies once drawn, including
// the renderer's box padding and line wrapping when the text exceeds
// maxTextWidth. This mirrors the renderer's drawBox sizing so the canvas
// sizer and the layout spacing agree with what actually gets painted.
func EstimateBox(text string, fontSize, maxTextWidth float64) Box {
	charWidth := fontSize * flatCharWidth
	textWidth := float64(len([]rune(text))) * charWidth

	lines := 1.0
	if textWidth > maxTextWidth {
		lines = float64(int(textWidth/maxTextWidth) + 1)
		textWidth = maxTextWidth
	}

	lineHeight := float64(int(fontSize * lineHeightFactor))
	return Box{
		W: textWidth + boxPaddingX*2,
		H: lines*lineHeight + boxPaddingY*2,
	}
}

const (
	slotCharWidth    = 9.0  // px per char for coarse slotting
	slotPadding      = 32.0 // box padding either side
	slotMaxConceptPx = 220.0
	slotMaxTopicPx   = 260.0
)

// SlotWidth returns a coarse horizontal slot for a node label, used by the
// layered strategy to space siblings within a layer. Topic labels get a
// slightly wider cap than concept labels.
func SlotWidth(label string, isTopic bool) float64 {
	maxText := slotMaxConceptPx
	if isTopic {
		maxText = slotMaxTopicPx
	}

	n := len([]rune(label))
	if n < 1 {
		n = 1
	}
	w := slotCharWidth * float64(n)
	if w > maxText {
		w = maxText
	}
	return w + slotPadding
}
