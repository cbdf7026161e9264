package graphmap

import (
	"github.com/lycosa9527/mindgraph/pkg/config"
	"github.com/lycosa9527/mindgraph/pkg/errors"
	"github.com/lycosa9527/mindgraph/pkg/layout"
)

// normalized is a repaired spec: clean labels, deduplicated concepts,
// sanitized relationships, and one warning per repair applied.
type normalized struct {
	Topic         string
	Concepts      []string
	Relationships []Relationship
	Warnings      []layout.Warning
}

func (n *normalized) warn(code layout.WarningCode, format string, args ...any) {
	n.Warnings = append(n.Warnings, layout.Warn(code, format, args...))
}

func cleanText(s string, maxLen int) (string, bool) {
	return layout.CleanLabel(s, maxLen)
}

func canonical(s string) string {
	return layout.CanonicalKey(s)
}

// normalize repairs a raw spec. Malformed nodes and edges are fixed or
// dropped with a warning; the only hard failure is a missing topic.
func normalize(spec Spec, cfg config.GraphConfig) (*normalized, error) {
	topic, topicTrunc := cleanText(spec.Topic, cfg.MaxLabelLen)
	if topic == "" {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "missing or empty topic")
	}

	n := &normalized{Topic: topic}
	if topicTrunc {
		n.warn(layout.WarnTruncatedLabel, "topic truncated to %d chars", cfg.MaxLabelLen)
	}
	topicCanon := canonical(topic)

	// Dedupe concepts on canonical form, keeping the first display form.
	seen := make(map[string]bool)
	canonToDisplay := map[string]string{topicCanon: topic}
	capped := false
	for _, raw := range spec.Concepts {
		clean, trunc := cleanText(raw, cfg.MaxLabelLen)
		if clean == "" {
			n.warn(layout.WarnEmptyField, "dropped empty concept")
			continue
		}
		canon := canonical(clean)
		if canon == topicCanon {
			n.warn(layout.WarnDuplicateNode, "concept %q duplicates the topic", clean)
			continue
		}
		if seen[canon] {
			n.warn(layout.WarnDuplicateNode, "duplicate concept %q", clean)
			continue
		}
		if len(n.Concepts) >= cfg.MaxConcepts {
			if !capped {
				n.warn(layout.WarnCapExceeded, "concept cap %d reached, extra concepts dropped", cfg.MaxConcepts)
				capped = true
			}
			continue
		}
		if trunc {
			n.warn(layout.WarnTruncatedLabel, "concept truncated to %d chars", cfg.MaxLabelLen)
		}
		n.Concepts = append(n.Concepts, clean)
		seen[canon] = true
		canonToDisplay[canon] = clean
	}

	// Sanitize relationships: one edge per unordered pair, no self loops,
	// endpoints resolved through their canonical forms.
	pairSeen := make(map[[2]string]bool)
	var missingOrder []string
	missingDisplay := make(map[string]string)
	for _, rel := range spec.Relationships {
		from, _ := cleanText(rel.From, cfg.MaxLabelLen)
		to, _ := cleanText(rel.To, cfg.MaxLabelLen)
		label, _ := cleanText(rel.Label, cfg.MaxLabelLen)
		if from == "" || to == "" || label == "" {
			n.warn(layout.WarnEmptyField, "dropped relationship with empty endpoint or label")
			continue
		}
		fromC, toC := canonical(from), canonical(to)
		if fromC == toC {
			n.warn(layout.WarnSelfLoop, "dropped self loop on %q", from)
			continue
		}
		key := [2]string{fromC, toC}
		if toC < fromC {
			key = [2]string{toC, fromC}
		}
		if pairSeen[key] {
			n.warn(layout.WarnDuplicateEdge, "duplicate relationship %q - %q", from, to)
			continue
		}
		pairSeen[key] = true

		if d, ok := canonToDisplay[fromC]; ok {
			from = d
		} else if missingDisplay[fromC] == "" {
			missingOrder = append(missingOrder, fromC)
			missingDisplay[fromC] = from
		}
		if d, ok := canonToDisplay[toC]; ok {
			to = d
		} else if missingDisplay[toC] == "" {
			missingOrder = append(missingOrder, toC)
			missingDisplay[toC] = to
		}

		n.Relationships = append(n.Relationships, Relationship{From: from, To: to, Label: label})
	}

	// Promote dangling endpoints into concepts while capacity allows.
	for _, canon := range missingOrder {
		if len(n.Concepts) >= cfg.MaxConcepts || seen[canon] {
			continue
		}
		display := missingDisplay[canon]
		n.Concepts = append(n.Concepts, display)
		seen[canon] = true
		canonToDisplay[canon] = display
		n.warn(layout.WarnPromotedConcept, "promoted relationship endpoint %q to concept", display)
	}

	// Final filter: both endpoints must now be the topic or a concept.
	known := make(map[string]bool, len(n.Concepts)+1)
	known[topic] = true
	for _, c := range n.Concepts {
		known[c] = true
	}
	kept := n.Relationships[:0]
	for _, rel := range n.Relationships {
		if !known[rel.From] || !known[rel.To] {
			n.warn(layout.WarnDanglingEndpoint, "dropped relationship %q - %q with unknown endpoint", rel.From, rel.To)
			continue
		}
		kept = append(kept, rel)
	}
	n.Relationships = kept

	return n, nil
}

// adjacency builds the undirected neighbor sets over topic and concepts.
// Relationships referencing unknown labels are ignored.
func adjacency(topic string, concepts []string, rels []Relationship) map[string]map[string]bool {
	adj := make(map[string]map[string]bool, len(concepts)+1)
	adj[topic] = make(map[string]bool)
	for _, c := range concepts {
		adj[c] = make(map[string]bool)
	}
	for _, rel := range rels {
		if adj[rel.From] == nil || adj[rel.To] == nil {
			continue
		}
		adj[rel.From][rel.To] = true
		adj[rel.To][rel.From] = true
	}
	return adj
}
