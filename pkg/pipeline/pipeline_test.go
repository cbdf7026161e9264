package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/lycosa9527/mindgraph/pkg/cache"
	"github.com/lycosa9527/mindgraph/pkg/config"
	"github.com/lycosa9527/mindgraph/pkg/graphmap"
	"github.com/lycosa9527/mindgraph/pkg/mindmap"
	"github.com/lycosa9527/mindgraph/pkg/observability"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func graphSpec() *graphmap.Spec {
	return &graphmap.Spec{
		Topic:    "Photosynthesis",
		Concepts: []string{"Sunlight", "Chlorophyll", "Glucose"},
		Relationships: []graphmap.Relationship{
			{From: "Photosynthesis", To: "Sunlight", Label: "requires"},
			{From: "Photosynthesis", To: "Glucose", Label: "produces"},
		},
	}
}

func treeSpec() *mindmap.Spec {
	return &mindmap.Spec{
		Topic: "Trip",
		Branches: []mindmap.Branch{
			{Label: "Packing", Children: []mindmap.Child{{Label: "Clothes"}}},
			{Label: "Route"},
		},
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no spec", Options{}},
		{"both specs", Options{Graph: graphSpec(), Tree: treeSpec()}},
		{"bad strategy", Options{Graph: graphSpec(), Strategy: "spiral"}},
		{"bad complexity", Options{Tree: treeSpec(), Complexity: "galactic"}},
		{"bad format", Options{Graph: graphSpec(), Formats: []string{"gif"}}},
		{"dot for tree", Options{Tree: treeSpec(), Formats: []string{"dot"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Graph: graphSpec()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should be defaulted")
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should succeed: %v", err)
	}
}

func TestExecuteGraph(t *testing.T) {
	runner := NewRunner(nil, config.Default(), nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Graph:   graphSpec(),
		Formats: []string{FormatJSON, FormatDOT},
		Labeled: true,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Graph == nil {
		t.Fatal("result should carry the enhanced graph")
	}
	if result.Tree != nil {
		t.Error("graph run should not produce a tree")
	}
	if result.SpecHash == "" {
		t.Error("spec hash should be set")
	}
	if result.Stats.NodeCount != 4 {
		t.Errorf("NodeCount = %d, want 4", result.Stats.NodeCount)
	}

	var decoded graphmap.Enhanced
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &decoded); err != nil {
		t.Fatalf("json artifact should decode: %v", err)
	}
	if decoded.Topic != "Photosynthesis" {
		t.Errorf("decoded topic = %q", decoded.Topic)
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, `"Photosynthesis" -- "Sunlight" [label="requires"];`) {
		t.Errorf("dot artifact missing labeled edge:\n%s", dot)
	}
}

func TestExecuteTree(t *testing.T) {
	runner := NewRunner(nil, config.Default(), nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Tree:    treeSpec(),
		Formats: []string{FormatSVG},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Tree == nil {
		t.Fatal("result should carry the enhanced tree")
	}
	// topic + 2 branches + 1 child
	if result.Stats.NodeCount != 4 {
		t.Errorf("NodeCount = %d, want 4", result.Stats.NodeCount)
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact should contain an svg element")
	}
}

func TestExecuteCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(c, config.Default(), nil)
	defer runner.Close()

	opts := Options{Graph: graphSpec(), Formats: []string{FormatJSON}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(first.Artifacts[FormatJSON]) != string(second.Artifacts[FormatJSON]) {
		t.Error("cached artifact should match the computed one")
	}

	// Refresh bypasses the layout cache.
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute error: %v", err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("refresh run should recompute the layout")
	}
}

func TestCacheKeySeparatesStrategies(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(c, config.Default(), nil)
	defer runner.Close()

	ctx := context.Background()
	if _, err := runner.Execute(ctx, Options{Graph: graphSpec()}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	radial, err := runner.Execute(ctx, Options{Graph: graphSpec(), Strategy: "radial"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if radial.CacheInfo.LayoutHit {
		t.Error("different strategy should not hit the layered cache entry")
	}
	if radial.Graph.Layout.Algorithm != "radial" {
		t.Errorf("Algorithm = %q, want radial", radial.Graph.Layout.Algorithm)
	}
}

// recordingHooks counts pipeline and cache events for assertions.
type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	kinds  []string
	nodes  int
	hits   int
	misses int
	sets   int
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, kind string, nodeCount int, _ time.Duration, _ error) {
	h.kinds = append(h.kinds, kind)
	h.nodes = nodeCount
}

func (h *recordingHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *recordingHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *recordingHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestExecuteEmitsEvents(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	t.Cleanup(observability.Reset)

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(c, config.Default(), nil)
	defer runner.Close()
	ctx := context.Background()

	opts := Options{Graph: graphSpec(), Formats: []string{FormatJSON}}
	if _, err := runner.Execute(ctx, opts); err != nil {
		t.Fatalf("first Execute error: %v", err)
	}

	if len(h.kinds) != 1 || h.kinds[0] != "concept_map" {
		t.Errorf("layout kinds = %v, want [concept_map]", h.kinds)
	}
	if h.nodes != 4 {
		t.Errorf("node count = %d, want 4", h.nodes)
	}
	// First run misses both stages and writes both entries.
	if h.hits != 0 || h.misses != 2 || h.sets != 2 {
		t.Errorf("cache events = %d hits, %d misses, %d sets; want 0/2/2", h.hits, h.misses, h.sets)
	}

	if _, err := runner.Execute(ctx, opts); err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if h.hits != 2 {
		t.Errorf("hits after cached run = %d, want 2", h.hits)
	}
}
