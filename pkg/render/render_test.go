package render

import (
	"context"
	"strings"
	"testing"

	"github.com/lycosa9527/mindgraph/pkg/config"
	"github.com/lycosa9527/mindgraph/pkg/graphmap"
	"github.com/lycosa9527/mindgraph/pkg/mindmap"
)

func graphFixture(t *testing.T) *graphmap.Enhanced {
	t.Helper()
	engine := graphmap.New(config.Default().Graph)
	enhanced, err := engine.Enhance(context.Background(), graphmap.Spec{
		Topic:    "Water Cycle",
		Concepts: []string{"Evaporation", "Condensation", "Rain & Snow"},
		Relationships: []graphmap.Relationship{
			{From: "Water Cycle", To: "Evaporation", Label: "starts with"},
			{From: "Evaporation", To: "Condensation", Label: "leads to"},
		},
	}, graphmap.Options{})
	if err != nil {
		t.Fatalf("Enhance error: %v", err)
	}
	return enhanced
}

func treeFixture(t *testing.T) *mindmap.Enhanced {
	t.Helper()
	engine := mindmap.New(config.Default().Tree)
	enhanced, err := engine.Enhance(context.Background(), mindmap.Spec{
		Topic: "Planning",
		Branches: []mindmap.Branch{
			{Label: "Goals", Children: []mindmap.Child{{Label: "Short <term>"}}},
			{Label: "Budget"},
		},
	}, mindmap.Options{})
	if err != nil {
		t.Fatalf("Enhance error: %v", err)
	}
	return enhanced
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(graphFixture(t), DOTOptions{Labeled: true})

	for _, want := range []string{
		"graph G {",
		"layout=neato;",
		`"Water Cycle" [fillcolor="#2c3e50"`,
		`"Evaporation" [pos=`,
		`"Water Cycle" -- "Evaporation" [label="starts with"];`,
		`"Evaporation" -- "Condensation" [label="leads to"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("DOT should end with closing brace")
	}
}

func TestToDOTUnlabeled(t *testing.T) {
	dot := ToDOT(graphFixture(t), DOTOptions{})
	if strings.Contains(dot, "label=\"starts with\"") {
		t.Error("unlabeled DOT should not carry edge labels")
	}
	if !strings.Contains(dot, `"Water Cycle" -- "Evaporation";`) {
		t.Errorf("unlabeled DOT missing plain edge:\n%s", dot)
	}
}

func TestToDOTPinsEveryNode(t *testing.T) {
	e := graphFixture(t)
	dot := ToDOT(e, DOTOptions{})
	pins := strings.Count(dot, `pos="`)
	if want := 1 + len(e.Concepts); pins != want {
		t.Errorf("pinned %d nodes, want %d", pins, want)
	}
}

func TestRenderSVG(t *testing.T) {
	dot := ToDOT(graphFixture(t), DOTOptions{Labeled: true})
	svg, err := RenderSVG(dot)
	if err != nil {
		t.Fatalf("RenderSVG error: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, "<svg") {
		t.Error("output should contain an svg tag")
	}
	if !strings.Contains(out, "Water Cycle") {
		t.Error("output should contain the topic label")
	}
}

func TestRenderSVGBadDOT(t *testing.T) {
	if _, err := RenderSVG("digraph {"); err == nil {
		t.Error("malformed DOT should fail")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?><svg width="8.5in" height="11in" viewBox="0.00 0.00 612.00 792.00" xmlns="http://www.w3.org/2000/svg">body</svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 612.00 792.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="612" height="792"`) {
		t.Errorf("dimensions not rewritten to pixels: %s", out)
	}

	// No viewBox passes through untouched.
	plain := []byte(`<svg>body</svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should pass through")
	}
}

func TestRenderTreeSVG(t *testing.T) {
	e := treeFixture(t)
	out := string(RenderTreeSVG(e))

	if !strings.Contains(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("missing svg root element")
	}
	for _, want := range []string{"Planning", "Goals", "Budget"} {
		if !strings.Contains(out, ">"+want+"<") {
			t.Errorf("missing node label %q", want)
		}
	}
	if !strings.Contains(out, "Short &lt;term&gt;") {
		t.Error("labels should be XML-escaped")
	}

	// One line per connection, one rect per node.
	if got, want := strings.Count(out, "<line"), len(e.Layout.Connections); got != want {
		t.Errorf("drew %d lines, want %d", got, want)
	}
	if got, want := strings.Count(out, "<rect"), len(e.Layout.Positions); got != want {
		t.Errorf("drew %d rects, want %d", got, want)
	}

	// Connections render before nodes.
	if strings.Index(out, "<line") > strings.Index(out, "<rect") {
		t.Error("connection lines should be drawn behind nodes")
	}
}

func TestRenderTreeSVGDeterministic(t *testing.T) {
	e := treeFixture(t)
	if string(RenderTreeSVG(e)) != string(RenderTreeSVG(e)) {
		t.Error("rendering the same layout twice should be byte-identical")
	}
}
