package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/lycosa9527/mindgraph/pkg/graphmap"
)

// DOTOptions configures concept-map DOT generation.
type DOTOptions struct {
	// Labeled includes relationship labels on edges.
	// When false, edges are drawn as plain lines.
	Labeled bool
}

// ToDOT converts an enhanced concept map to Graphviz DOT format.
// Nodes are pinned to the computed positions (scaled onto the recommended
// canvas), so the neato engine reproduces the layout instead of inventing
// its own. The resulting DOT string can be rendered using [RenderSVG],
// [RenderPDF], or [RenderPNG].
func ToDOT(e *graphmap.Enhanced, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [color=\"#7f8c8d\", fontsize=11];\n")
	buf.WriteString("\n")

	keys := make(map[string]bool, len(e.Layout.Keys))
	for _, k := range e.Layout.Keys {
		keys[k] = true
	}

	x, y := canvasPos(e, e.Topic)
	fmt.Fprintf(&buf, "  %q [fillcolor=\"#2c3e50\", fontcolor=white, fontsize=18, pos=\"%.0f,%.0f!\"];\n",
		e.Topic, x, y)
	for _, c := range e.Concepts {
		x, y := canvasPos(e, c)
		if keys[c] {
			fmt.Fprintf(&buf, "  %q [fillcolor=\"#ecf0f1\", pos=\"%.0f,%.0f!\"];\n", c, x, y)
		} else {
			fmt.Fprintf(&buf, "  %q [pos=\"%.0f,%.0f!\"];\n", c, x, y)
		}
	}

	buf.WriteString("\n")
	for _, r := range e.Relationships {
		if opts.Labeled && r.Label != "" {
			fmt.Fprintf(&buf, "  %q -- %q [label=%q];\n", r.From, r.To, r.Label)
		} else {
			fmt.Fprintf(&buf, "  %q -- %q;\n", r.From, r.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// canvasPos maps a node's normalized [-1, 1] position onto the
// recommended canvas, leaving the padding free on every side. Graphviz
// y grows upward, matching the layout's axis, so no flip is needed.
func canvasPos(e *graphmap.Enhanced, name string) (float64, float64) {
	p, ok := e.Layout.Positions[name]
	if !ok {
		return 0, 0
	}
	halfW := float64(e.Dimensions.Width)/2 - e.Dimensions.Padding
	halfH := float64(e.Dimensions.Height)/2 - e.Dimensions.Padding
	return p.X * max(halfW, 1), p.Y * max(halfH, 1)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [ToPDF] or [ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}
