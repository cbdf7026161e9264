package graphmap

import "github.com/lycosa9527/mindgraph/pkg/errors"

// Strategy selects the placement algorithm for a concept map.
type Strategy string

const (
	// StrategyLayered arranges nodes in horizontal layers by topic
	// distance, with barycenter crossing reduction. The default.
	StrategyLayered Strategy = "layered"
	// StrategySector divides the canvas into angular sectors, one per
	// key concept, and clusters parts inside their sector.
	StrategySector Strategy = "sector"
	// StrategyRadial places concepts on concentric rings around the topic.
	StrategyRadial Strategy = "radial"
)

// Strategies lists the valid strategy names.
func Strategies() []Strategy {
	return []Strategy{StrategyLayered, StrategySector, StrategyRadial}
}

// ParseStrategy validates a strategy name. The empty string resolves to
// the zero value, letting the engine pick a default from the spec shape.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyLayered, StrategySector, StrategyRadial:
		return Strategy(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q (valid: layered, sector, radial)", s)
}
