package cli

import (
	"encoding/json"
	"os"

	"github.com/lycosa9527/mindgraph/pkg/errors"
	"github.com/lycosa9527/mindgraph/pkg/graphmap"
	"github.com/lycosa9527/mindgraph/pkg/mindmap"
	"github.com/lycosa9527/mindgraph/pkg/pipeline"
)

// Diagram type names accepted by --type.
const (
	typeConceptMap = "concept_map"
	typeMindMap    = "mind_map"
)

// loadSpec reads a spec file and fills the pipeline options with the
// parsed spec. When typ is empty the JSON shape decides: a "concepts" or
// "relationships" field selects a concept map, otherwise the spec is
// treated as a mind map.
func loadSpec(path, typ string, opts *pipeline.Options) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeFileNotFound, "spec file %s not found", path)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "read spec %s", path)
	}

	if typ == "" {
		typ = detectType(data)
	}

	switch typ {
	case typeConceptMap:
		var spec graphmap.Spec
		if err := json.Unmarshal(data, &spec); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSpec, err, "parse spec %s", path)
		}
		opts.Graph = &spec
	case typeMindMap:
		var spec mindmap.Spec
		if err := json.Unmarshal(data, &spec); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSpec, err, "parse spec %s", path)
		}
		opts.Tree = &spec
	default:
		return errors.New(errors.ErrCodeInvalidSpec,
			"unknown diagram type %q (must be concept_map or mind_map)", typ)
	}
	return nil
}

// detectType inspects the raw JSON shape to pick a diagram type.
func detectType(data []byte) string {
	var probe struct {
		Concepts      []json.RawMessage `json:"concepts"`
		Relationships []json.RawMessage `json:"relationships"`
	}
	if err := json.Unmarshal(data, &probe); err == nil {
		if probe.Concepts != nil || probe.Relationships != nil {
			return typeConceptMap
		}
	}
	return typeMindMap
}

// warningsOf returns the repair warnings of whichever enhanced spec the
// result carries.
func warningsOf(result *pipeline.Result) int {
	if result.Graph != nil {
		return len(result.Graph.Warnings)
	}
	if result.Tree != nil {
		return len(result.Tree.Warnings)
	}
	return 0
}
