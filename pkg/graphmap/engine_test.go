package graphmap

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/lycosa9527/mindgraph/pkg/config"
	"github.com/lycosa9527/mindgraph/pkg/errors"
	"github.com/lycosa9527/mindgraph/pkg/layout"
)

func testEngine() *Engine {
	return New(config.Default().Graph)
}

func enhance(t *testing.T, spec Spec, opts Options) *Enhanced {
	t.Helper()
	result, err := testEngine().Enhance(context.Background(), spec, opts)
	if err != nil {
		t.Fatalf("Enhance error: %v", err)
	}
	return result
}

func TestEnhanceMissingTopic(t *testing.T) {
	_, err := testEngine().Enhance(context.Background(), Spec{Topic: "   "}, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Errorf("want INVALID_SPEC, got %v", err)
	}
}

func TestEnhanceUnknownStrategy(t *testing.T) {
	_, err := testEngine().Enhance(context.Background(), Spec{Topic: "T"}, Options{Strategy: "spiral"})
	if !errors.Is(err, errors.ErrCodeInvalidStrategy) {
		t.Errorf("want INVALID_STRATEGY, got %v", err)
	}
}

// Disconnected concepts land one layer past the deepest reached layer,
// and every node still gets a position with the topic at y=0.
func TestLayeredDisconnectedGraph(t *testing.T) {
	result := enhance(t, Spec{Topic: "X", Concepts: []string{"A", "B"}}, Options{})

	if result.Layout.Algorithm != "layered" {
		t.Fatalf("algorithm = %q, want layered", result.Layout.Algorithm)
	}
	for _, node := range []string{"X", "A", "B"} {
		if _, ok := result.Layout.Positions[node]; !ok {
			t.Errorf("no position for %q", node)
		}
	}
	if got := result.Layout.Positions["X"].Y; got != 0 {
		t.Errorf("topic y = %g, want 0", got)
	}
	orphans := result.Layout.Layers["1"]
	if len(orphans) != 2 {
		t.Errorf("layer 1 = %v, want both disconnected concepts", orphans)
	}
}

func TestNormalizeDedup(t *testing.T) {
	result := enhance(t, Spec{
		Topic:    "Fruit",
		Concepts: []string{"Apple", "apple ", "APPLE"},
	}, Options{})

	if !reflect.DeepEqual(result.Concepts, []string{"Apple"}) {
		t.Errorf("concepts = %v, want [Apple]", result.Concepts)
	}
	if !hasWarning(result.Warnings, layout.WarnDuplicateNode) {
		t.Error("expected duplicate_node warning")
	}
}

func TestNormalizeSelfLoop(t *testing.T) {
	result := enhance(t, Spec{
		Topic:         "T",
		Concepts:      []string{"A"},
		Relationships: []Relationship{{From: "A", To: "A", Label: "x"}},
	}, Options{})

	if len(result.Relationships) != 0 {
		t.Errorf("relationships = %v, want empty", result.Relationships)
	}
	if !hasWarning(result.Warnings, layout.WarnSelfLoop) {
		t.Error("expected self_loop warning")
	}
}

// A relationship naming a 31st node finds no capacity for promotion and
// is dropped entirely.
func TestCapOverflowPromotion(t *testing.T) {
	concepts := make([]string, 30)
	for i := range concepts {
		concepts[i] = fmt.Sprintf("concept %d", i)
	}
	result := enhance(t, Spec{
		Topic:         "T",
		Concepts:      concepts,
		Relationships: []Relationship{{From: "concept 0", To: "intruder", Label: "links"}},
	}, Options{})

	if len(result.Concepts) != 30 {
		t.Errorf("concepts = %d, want 30", len(result.Concepts))
	}
	if len(result.Relationships) != 0 {
		t.Errorf("relationships = %v, want empty", result.Relationships)
	}
	if !hasWarning(result.Warnings, layout.WarnDanglingEndpoint) {
		t.Error("expected dangling_endpoint warning")
	}
}

// With spare capacity, an unknown endpoint is promoted into the concept
// set and the relationship survives.
func TestEndpointPromotion(t *testing.T) {
	result := enhance(t, Spec{
		Topic:         "T",
		Concepts:      []string{"A"},
		Relationships: []Relationship{{From: "A", To: "B", Label: "links"}},
	}, Options{})

	if !reflect.DeepEqual(result.Concepts, []string{"A", "B"}) {
		t.Errorf("concepts = %v, want [A B]", result.Concepts)
	}
	if len(result.Relationships) != 1 {
		t.Errorf("relationships = %v, want the promoted edge kept", result.Relationships)
	}
	if !hasWarning(result.Warnings, layout.WarnPromotedConcept) {
		t.Error("expected promoted_concept warning")
	}
}

func TestSingleEdgePerPair(t *testing.T) {
	result := enhance(t, Spec{
		Topic:    "T",
		Concepts: []string{"A", "B"},
		Relationships: []Relationship{
			{From: "A", To: "B", Label: "first"},
			{From: "B", To: "A", Label: "reversed duplicate"},
			{From: "a", To: "b", Label: "case duplicate"},
		},
	}, Options{})

	if len(result.Relationships) != 1 {
		t.Fatalf("relationships = %v, want exactly one", result.Relationships)
	}
	if result.Relationships[0].Label != "first" {
		t.Errorf("kept %q, want first occurrence", result.Relationships[0].Label)
	}
}

// Running normalization on already-normalized output changes nothing
// and emits no warnings.
func TestNormalizeIdempotent(t *testing.T) {
	first := enhance(t, Spec{
		Topic:    "  Topic  with   spaces ",
		Concepts: []string{" A ", "A", "", "B"},
		Relationships: []Relationship{
			{From: "A", To: "B", Label: "x"},
			{From: "A", To: "B", Label: "y"},
		},
	}, Options{})

	second := enhance(t, Spec{
		Topic:         first.Topic,
		Concepts:      first.Concepts,
		Relationships: first.Relationships,
	}, Options{})

	if !reflect.DeepEqual(second.Concepts, first.Concepts) {
		t.Errorf("concepts changed: %v -> %v", first.Concepts, second.Concepts)
	}
	if !reflect.DeepEqual(second.Relationships, first.Relationships) {
		t.Errorf("relationships changed: %v -> %v", first.Relationships, second.Relationships)
	}
	if len(second.Warnings) != 0 {
		t.Errorf("normalized input produced warnings: %v", second.Warnings)
	}
}

func TestPositionsCoverAllNodesAndStayBounded(t *testing.T) {
	spec := Spec{
		Topic:    "Biology",
		Concepts: []string{"Cell", "DNA", "Protein", "Enzyme", "Membrane", "Nucleus", "Ribosome"},
		Relationships: []Relationship{
			{From: "Biology", To: "Cell", Label: "studies"},
			{From: "Cell", To: "DNA", Label: "contains"},
			{From: "DNA", To: "Protein", Label: "encodes"},
			{From: "Protein", To: "Enzyme", Label: "includes"},
		},
	}

	for _, strategy := range Strategies() {
		t.Run(string(strategy), func(t *testing.T) {
			result := enhance(t, spec, Options{Strategy: strategy})

			want := append([]string{result.Topic}, result.Concepts...)
			if len(result.Layout.Positions) != len(want) {
				t.Errorf("positions = %d entries, want %d", len(result.Layout.Positions), len(want))
			}
			for _, node := range want {
				p, ok := result.Layout.Positions[node]
				if !ok {
					t.Errorf("no position for %q", node)
					continue
				}
				if p.X < -1 || p.X > 1 || p.Y < -1 || p.Y > 1 {
					t.Errorf("position of %q out of bounds: %+v", node, p)
				}
			}
		})
	}
}

func TestStrategyDefaults(t *testing.T) {
	plain := enhance(t, Spec{Topic: "T", Concepts: []string{"A"}}, Options{})
	if plain.Layout.Algorithm != "layered" {
		t.Errorf("default algorithm = %q, want layered", plain.Layout.Algorithm)
	}

	grouped := enhance(t, Spec{
		Topic:    "T",
		Concepts: []string{"A", "B", "C"},
		Keys:     []string{"A"},
		KeyParts: map[string][]string{"A": {"B", "C"}},
	}, Options{})
	if grouped.Layout.Algorithm != "sector" {
		t.Errorf("keyed spec algorithm = %q, want sector", grouped.Layout.Algorithm)
	}
}

func TestSectorKeysCapped(t *testing.T) {
	var concepts []string
	var rels []Relationship
	for i := 0; i < 12; i++ {
		c := fmt.Sprintf("key %d", i)
		concepts = append(concepts, c)
		rels = append(rels, Relationship{From: "T", To: c, Label: "has"})
	}

	result := enhance(t, Spec{Topic: "T", Concepts: concepts, Relationships: rels},
		Options{Strategy: StrategySector})

	if len(result.Layout.Keys) > 8 {
		t.Errorf("keys = %d, want <= 8", len(result.Layout.Keys))
	}
}

func TestRadialReproducible(t *testing.T) {
	spec := Spec{Topic: "T", Concepts: []string{"A", "B", "C", "D", "E", "F", "G", "H"}}

	a := enhance(t, spec, Options{Strategy: StrategyRadial, Seed: 7})
	b := enhance(t, spec, Options{Strategy: StrategyRadial, Seed: 7})
	if !reflect.DeepEqual(a.Layout.Positions, b.Layout.Positions) {
		t.Error("same seed produced different layouts")
	}

	c := enhance(t, spec, Options{Strategy: StrategyRadial, Seed: 8})
	if reflect.DeepEqual(a.Layout.Positions, c.Layout.Positions) {
		t.Error("different seeds produced identical layouts")
	}
}

func TestTruncation(t *testing.T) {
	long := "this concept label is far far far too long to survive normalization without truncation"
	result := enhance(t, Spec{Topic: "T", Concepts: []string{long}}, Options{})

	runes := []rune(result.Concepts[0])
	if len(runes) > 60 {
		t.Errorf("label length = %d runes, want <= 60", len(runes))
	}
	if runes[len(runes)-1] != '…' {
		t.Errorf("truncated label %q should end in ellipsis", result.Concepts[0])
	}
	if !hasWarning(result.Warnings, layout.WarnTruncatedLabel) {
		t.Error("expected truncated_label warning")
	}
}

func TestCanvasDimensionsInvariant(t *testing.T) {
	result := enhance(t, Spec{Topic: "T", Concepts: []string{"A", "B", "C"}}, Options{})
	d := result.Dimensions
	if d.Width != d.BaseWidth || d.Height != d.BaseHeight {
		t.Errorf("dimensions %+v violate width==baseWidth invariant", d)
	}
}

func TestNewZeroConfig(t *testing.T) {
	// The zero value bypasses config validation; the constructor must
	// fall back to defaults instead of panicking on the first label.
	engine := New(config.GraphConfig{})

	result, err := engine.Enhance(context.Background(), Spec{
		Topic:    "Water Cycle",
		Concepts: []string{"Evaporation", "Condensation"},
	}, Options{})
	if err != nil {
		t.Fatalf("Enhance with zero config: %v", err)
	}
	if len(result.Concepts) != 2 {
		t.Errorf("concepts = %d, want 2", len(result.Concepts))
	}
	if len(result.Layout.Positions) != 3 {
		t.Errorf("positions = %d, want 3", len(result.Layout.Positions))
	}
}

func hasWarning(ws []layout.Warning, code layout.WarningCode) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}
