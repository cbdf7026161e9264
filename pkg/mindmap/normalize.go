package mindmap

import (
	"github.com/lycosa9527/mindgraph/pkg/errors"
	"github.com/lycosa9527/mindgraph/pkg/layout"
)

// maxLabelLen caps every label; longer text is truncated with an ellipsis.
const maxLabelLen = 60

type normalized struct {
	Topic    string
	Branches []Branch
	Warnings []layout.Warning
}

func (n *normalized) warn(code layout.WarningCode, format string, args ...any) {
	n.Warnings = append(n.Warnings, layout.Warn(code, format, args...))
}

// normalize repairs a raw tree spec: labels are cleaned, nodes are
// deduplicated globally across the whole tree, and branch and child
// counts are truncated to the given caps. The hard failures are a
// missing topic and a tree with no surviving branches.
func normalize(spec Spec, maxBranches, maxChildren int) (*normalized, error) {
	topic, topicTrunc := layout.CleanLabel(spec.Topic, maxLabelLen)
	if topic == "" {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "missing or empty topic")
	}

	n := &normalized{Topic: topic}
	if topicTrunc {
		n.warn(layout.WarnTruncatedLabel, "topic truncated to %d chars", maxLabelLen)
	}

	// Global dedup: a label may appear once in the entire tree, and
	// never shadow the topic.
	seen := map[string]bool{layout.CanonicalKey(topic): true}
	branchCapped := false
	for _, raw := range spec.Branches {
		label, trunc := layout.CleanLabel(raw.Label, maxLabelLen)
		if label == "" {
			n.warn(layout.WarnEmptyField, "dropped branch with empty label")
			continue
		}
		canon := layout.CanonicalKey(label)
		if seen[canon] {
			n.warn(layout.WarnDuplicateNode, "duplicate branch %q", label)
			continue
		}
		if len(n.Branches) >= maxBranches {
			if !branchCapped {
				n.warn(layout.WarnCapExceeded, "branch cap %d reached, extra branches dropped", maxBranches)
				branchCapped = true
			}
			continue
		}
		seen[canon] = true
		if trunc {
			n.warn(layout.WarnTruncatedLabel, "branch truncated to %d chars", maxLabelLen)
		}

		branch := Branch{Label: label}
		childCapped := false
		for _, rawChild := range raw.Children {
			childLabel, childTrunc := layout.CleanLabel(rawChild.Label, maxLabelLen)
			if childLabel == "" {
				n.warn(layout.WarnEmptyField, "dropped child with empty label under %q", label)
				continue
			}
			childCanon := layout.CanonicalKey(childLabel)
			if seen[childCanon] {
				n.warn(layout.WarnDuplicateNode, "duplicate child %q", childLabel)
				continue
			}
			if len(branch.Children) >= maxChildren {
				if !childCapped {
					n.warn(layout.WarnCapExceeded, "child cap %d reached under %q, extra children dropped", maxChildren, label)
					childCapped = true
				}
				continue
			}
			seen[childCanon] = true
			if childTrunc {
				n.warn(layout.WarnTruncatedLabel, "child truncated to %d chars", maxLabelLen)
			}
			branch.Children = append(branch.Children, Child{Label: childLabel})
		}

		n.Branches = append(n.Branches, branch)
	}

	if len(n.Branches) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "no branches after normalization")
	}
	return n, nil
}
