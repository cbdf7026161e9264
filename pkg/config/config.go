// Package config loads layout tuning parameters from TOML files.
//
// All parameters ship with compiled-in defaults, so a config file is only
// needed to override specific values. Partial files are fine: unset fields
// keep their defaults.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lycosa9527/mindgraph/pkg/errors"
)

// Config holds every tunable knob of the layout engines.
type Config struct {
	Graph GraphConfig `toml:"graph"`
	Tree  TreeConfig  `toml:"tree"`
}

// GraphConfig tunes the concept-map engine.
type GraphConfig struct {
	// MaxConcepts caps the number of concepts retained after normalization.
	MaxConcepts int `toml:"max_concepts"`
	// MaxLabelLen caps label length; longer labels are truncated with an ellipsis.
	MaxLabelLen int `toml:"max_label_len"`
	// Seed seeds the deterministic jitter used by the radial strategy.
	Seed int64 `toml:"seed"`
	// NodeSpacing scales inter-node separation in the sector strategy.
	NodeSpacing float64 `toml:"node_spacing"`
	// CanvasPadding is the pixel padding reserved around graph content.
	CanvasPadding float64 `toml:"canvas_padding"`
	// MinNodeDistance is the target minimum pixel distance between nodes.
	MinNodeDistance float64 `toml:"min_node_distance"`
}

// TreeConfig tunes the mind-map engine.
type TreeConfig struct {
	// MaxBranches caps branch count per complexity tier; zero keeps the
	// tier's built-in cap.
	MaxBranches int `toml:"max_branches"`
	// MaxChildren caps children per branch; zero keeps the tier's cap.
	MaxChildren int `toml:"max_children"`
	// BranchGap is the vertical pixel gap between sibling branch blocks.
	BranchGap float64 `toml:"branch_gap"`
	// ColumnGap is the horizontal pixel gap between layout columns.
	ColumnGap float64 `toml:"column_gap"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Graph: GraphConfig{
			MaxConcepts:     30,
			MaxLabelLen:     60,
			Seed:            42,
			NodeSpacing:     4.0,
			CanvasPadding:   140,
			MinNodeDistance: 320,
		},
		Tree: TreeConfig{
			BranchGap: 40,
			ColumnGap: 120,
		},
	}
}

// Load reads a TOML config file and merges it over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Graph.MaxConcepts < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "graph.max_concepts must be >= 1, got %d", c.Graph.MaxConcepts)
	}
	if c.Graph.MaxLabelLen < 4 {
		return errors.New(errors.ErrCodeInvalidConfig, "graph.max_label_len must be >= 4, got %d", c.Graph.MaxLabelLen)
	}
	if c.Graph.NodeSpacing <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "graph.node_spacing must be positive, got %g", c.Graph.NodeSpacing)
	}
	if c.Tree.BranchGap < 0 || c.Tree.ColumnGap < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tree gaps must be non-negative")
	}
	return nil
}
