package mindmap

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lycosa9527/mindgraph/pkg/canvas"
	"github.com/lycosa9527/mindgraph/pkg/config"
)

// Options configures a single Enhance call. The zero value is valid and
// uses the medium complexity tier.
type Options struct {
	// Complexity selects the branch and child caps. Empty means medium.
	Complexity Complexity `json:"complexity,omitempty"`

	// Logger receives repair warnings at debug level.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the complexity name and fills runtime
// defaults. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	c, err := ParseComplexity(string(o.Complexity))
	if err != nil {
		return err
	}
	o.Complexity = c
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Engine turns raw mind-map specs into render-ready enhanced specs.
type Engine struct {
	cfg config.TreeConfig
}

// New creates an engine with the given tuning. Use config.Default().Tree
// for standard behavior.
func New(cfg config.TreeConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Enhance normalizes the tree, computes the balanced column layout, and
// sizes the canvas. Oversized trees are truncated to the complexity
// tier's caps; the hard failures are a missing topic and an empty tree.
func (e *Engine) Enhance(ctx context.Context, spec Spec, opts Options) (*Enhanced, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Tier caps, overridable from the config file.
	maxBranches, maxChildren := opts.Complexity.caps()
	if e.cfg.MaxBranches > 0 {
		maxBranches = e.cfg.MaxBranches
	}
	if e.cfg.MaxChildren > 0 {
		maxChildren = e.cfg.MaxChildren
	}

	norm, err := normalize(spec, maxBranches, maxChildren)
	if err != nil {
		return nil, err
	}
	for _, w := range norm.Warnings {
		opts.Logger.Debug("spec repaired", "code", w.Code, "detail", w.Message)
	}

	lay := layoutTree(norm.Topic, norm.Branches, e.cfg)

	boxes := make([]canvas.NodeBox, 0, len(lay.Positions))
	numChildren := 0
	for _, node := range lay.Positions {
		boxes = append(boxes, canvas.NodeBox{X: node.X, Y: node.Y, W: node.Width, H: node.Height})
		if node.Type == NodeChild {
			numChildren++
		}
	}
	dims := canvas.ForTree(boxes, len(norm.Branches), numChildren)

	return &Enhanced{
		Topic:      norm.Topic,
		Branches:   norm.Branches,
		Layout:     lay,
		Dimensions: dims,
		Warnings:   norm.Warnings,
	}, nil
}
