package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/lycosa9527/mindgraph/pkg/mindmap"
)

// Node styling per tree level.
var treeStyles = map[mindmap.NodeType]struct {
	fill, stroke, textColor, weight string
	strokeWidth                     float64
	cornerRadius                    int
}{
	mindmap.NodeTopic:  {"#ecf0f1", "#2c3e50", "#2c3e50", "bold", 2, 12},
	mindmap.NodeBranch: {"#ffffff", "#34495e", "#34495e", "bold", 2, 10},
	mindmap.NodeChild:  {"#ffffff", "#3498db", "#2c3e50", "normal", 1.5, 8},
}

// RenderTreeSVG renders an enhanced mind map as a standalone SVG document.
// Node coordinates are pixel offsets from the topic, so everything is
// translated onto the center of the recommended canvas. Connection lines
// are drawn first so nodes sit on top of them.
func RenderTreeSVG(e *mindmap.Enhanced) []byte {
	w, h := e.Dimensions.Width, e.Dimensions.Height
	cx, cy := float64(w)/2, float64(h)/2

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		w, h, w, h)

	for _, c := range e.Layout.Connections {
		fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%d" stroke-linecap="round"/>`+"\n",
			cx+c.From.X, cy+c.From.Y, cx+c.To.X, cy+c.To.Y, c.StrokeColor, c.StrokeWidth)
	}

	for _, key := range slices.Sorted(maps.Keys(e.Layout.Positions)) {
		n := e.Layout.Positions[key]
		s := treeStyles[n.Type]
		x, y := cx+n.X, cy+n.Y

		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%d" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
			x-n.Width/2, y-n.Height/2, n.Width, n.Height, s.cornerRadius, s.fill, s.stroke, s.strokeWidth)
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" fill="%s" font-weight="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			x, y, n.FontSize, s.textColor, s.weight, escapeText(n.Text))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderTreePDF renders a mind map as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderTreePDF(e *mindmap.Enhanced) ([]byte, error) {
	return ToPDF(RenderTreeSVG(e))
}

// RenderTreePNG renders a mind map as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderTreePNG(e *mindmap.Enhanced, scale float64) ([]byte, error) {
	return ToPNG(RenderTreeSVG(e), scale)
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
