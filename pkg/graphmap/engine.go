package graphmap

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lycosa9527/mindgraph/pkg/canvas"
	"github.com/lycosa9527/mindgraph/pkg/config"
)

// =============================================================================
// Options - Engine Configuration
// =============================================================================

// Options configures a single Enhance call. The zero value is valid:
// strategy is inferred from the spec shape and the seed comes from the
// engine configuration.
type Options struct {
	// Strategy picks the placement algorithm. Empty selects sector when
	// the spec carries an explicit key grouping, layered otherwise.
	Strategy Strategy `json:"strategy,omitempty"`

	// Seed overrides the configured jitter seed. Zero keeps the default.
	Seed int64 `json:"seed,omitempty"`

	// Logger receives repair warnings at debug level.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the strategy name and fills runtime
// defaults. Idempotent.
func (o *Options) ValidateAndSetDefaults(cfg config.GraphConfig) error {
	if _, err := ParseStrategy(string(o.Strategy)); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = cfg.Seed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// =============================================================================
// Engine
// =============================================================================

// Engine turns raw concept-map specs into render-ready enhanced specs.
type Engine struct {
	cfg config.GraphConfig
}

// New creates an engine with the given tuning. Zero fields fall back to
// the compiled-in defaults, so config.GraphConfig{} is a valid input.
func New(cfg config.GraphConfig) *Engine {
	def := config.Default().Graph
	if cfg.MaxConcepts <= 0 {
		cfg.MaxConcepts = def.MaxConcepts
	}
	if cfg.MaxLabelLen <= 0 {
		cfg.MaxLabelLen = def.MaxLabelLen
	}
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	if cfg.NodeSpacing <= 0 {
		cfg.NodeSpacing = def.NodeSpacing
	}
	if cfg.CanvasPadding <= 0 {
		cfg.CanvasPadding = def.CanvasPadding
	}
	if cfg.MinNodeDistance <= 0 {
		cfg.MinNodeDistance = def.MinNodeDistance
	}
	return &Engine{cfg: cfg}
}

// Enhance normalizes the spec, computes a layout with the selected
// strategy, and sizes the canvas. Input is repaired rather than
// rejected: the only input error is a missing topic. The same spec,
// strategy, and seed always produce the same result.
func (e *Engine) Enhance(ctx context.Context, spec Spec, opts Options) (*Enhanced, error) {
	if err := opts.ValidateAndSetDefaults(e.cfg); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	norm, err := normalize(spec, e.cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range norm.Warnings {
		opts.Logger.Debug("spec repaired", "code", w.Code, "detail", w.Message)
	}

	strategy := opts.Strategy
	if strategy == "" {
		strategy = StrategyLayered
		if len(spec.Keys) > 0 {
			strategy = StrategySector
		}
	}

	var lay Layout
	switch strategy {
	case StrategySector:
		keys := normalizeKeyLabels(spec.Keys, e.cfg.MaxLabelLen)
		keyParts := normalizeKeyParts(spec.KeyParts, e.cfg.MaxLabelLen)
		lay = layoutSector(norm.Topic, norm.Concepts, norm.Relationships, keys, keyParts)
	case StrategyRadial:
		lay = layoutRadial(norm.Topic, norm.Concepts, opts.Seed)
	default:
		lay = layoutLayered(norm.Topic, norm.Concepts, norm.Relationships)
	}

	dims := canvas.ForGraph(lay.Positions, norm.Topic, norm.Concepts)

	return &Enhanced{
		Topic:         norm.Topic,
		Concepts:      norm.Concepts,
		Relationships: norm.Relationships,
		Layout:        lay,
		Dimensions:    dims,
		Config: RenderConfig{
			NodeSpacing:     e.cfg.NodeSpacing,
			CanvasPadding:   e.cfg.CanvasPadding,
			MinNodeDistance: e.cfg.MinNodeDistance,
		},
		Warnings: norm.Warnings,
	}, nil
}

// normalizeKeyLabels cleans explicit key labels the same way concepts
// are cleaned, so they match the normalized concept set.
func normalizeKeyLabels(keys []string, maxLen int) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if clean, _ := cleanText(k, maxLen); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func normalizeKeyParts(parts map[string][]string, maxLen int) map[string][]string {
	if parts == nil {
		return nil
	}
	out := make(map[string][]string, len(parts))
	for k, ps := range parts {
		ck, _ := cleanText(k, maxLen)
		if ck == "" {
			continue
		}
		out[ck] = normalizeKeyLabels(ps, maxLen)
	}
	return out
}
