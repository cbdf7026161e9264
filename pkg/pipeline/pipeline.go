// Package pipeline provides the core layout pipeline for MindGraph.
//
// This package implements the complete enhance → render pipeline that
// can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Enhance: Normalize the raw spec and compute node positions
//  2. Render: Generate output in various formats (JSON, DOT, SVG, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline,
// and each stage result is cached under a content hash of its input.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, config.Default(), logger)
//	opts := pipeline.Options{
//	    Graph:   &spec,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lycosa9527/mindgraph/pkg/errors"
	"github.com/lycosa9527/mindgraph/pkg/graphmap"
	"github.com/lycosa9527/mindgraph/pkg/mindmap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the default PNG scale factor. 2.0 produces a 2x
	// resolution image suitable for high-DPI displays.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input spec. Exactly one of Graph or Tree must be set.
	Graph *graphmap.Spec `json:"graph,omitempty"`
	Tree  *mindmap.Spec  `json:"tree,omitempty"`

	// Layout options
	Strategy   string `json:"strategy,omitempty"`   // concept maps only
	Complexity string `json:"complexity,omitempty"` // mind maps only
	Seed       int64  `json:"seed,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"` // bypass the layout cache

	// Render options
	Formats []string `json:"formats,omitempty"`
	Labeled bool     `json:"labeled,omitempty"` // relationship labels on DOT edges
	Scale   float64  `json:"scale,omitempty"`   // PNG scale factor

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run. Graph or Tree is set
// matching the input spec.
type Result struct {
	// Graph is the enhanced concept map.
	Graph *graphmap.Enhanced

	// Tree is the enhanced mind map.
	Tree *mindmap.Enhanced

	// SpecHash is the content hash of the input spec.
	SpecHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the enhanced spec came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout checks required fields for the enhance stage.
func (o *Options) ValidateForLayout() error {
	if o.Graph == nil && o.Tree == nil {
		return errors.New(errors.ErrCodeInvalidSpec, "a graph or tree spec is required")
	}
	if o.Graph != nil && o.Tree != nil {
		return errors.New(errors.ErrCodeInvalidSpec, "graph and tree specs are mutually exclusive")
	}
	if o.IsGraph() {
		if _, err := graphmap.ParseStrategy(o.Strategy); err != nil {
			return err
		}
	} else {
		if _, err := mindmap.ParseComplexity(o.Complexity); err != nil {
			return err
		}
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.IsTree() {
		for _, f := range o.Formats {
			if f == FormatDOT {
				return errors.New(errors.ErrCodeInvalidFormat,
					"dot output requires a concept map")
			}
		}
	}
	return nil
}

// IsGraph returns true if the input is a concept map.
func (o *Options) IsGraph() bool {
	return o.Graph != nil
}

// IsTree returns true if the input is a mind map.
func (o *Options) IsTree() bool {
	return o.Tree != nil
}
