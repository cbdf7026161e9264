package graphmap

import (
	"math"

	"github.com/lycosa9527/mindgraph/pkg/layout"
)

// Curvature cycle for sector keys; parts use the shared cycle.
var sectorKeyCurvatures = []float64{0, 12, -12}

// layoutSector divides the canvas into angular sectors, one per key
// concept, and bands each key's parts across adaptive radii inside the
// sector. Keys come from the spec's explicit grouping when present,
// otherwise they are derived from the topic's direct neighbors.
func layoutSector(topic string, concepts []string, rels []Relationship, keys []string, keyParts map[string][]string) Layout {
	adj := adjacency(topic, concepts, rels)
	degree := make(map[string]int, len(adj))
	for n, nbs := range adj {
		degree[n] = len(nbs)
	}

	keys, keyParts = resolveGroups(topic, concepts, adj, degree, keys, keyParts)

	positions := map[string]layout.Position{topic: {X: 0, Y: 0}}
	curv := make(map[string]float64, len(concepts)+len(keys))

	s := max(1, len(keys))
	sectorSpan := 2 * math.Pi / float64(s)

	totalParts := 0
	maxGroup := 1
	for _, parts := range keyParts {
		totalParts += len(parts)
		if len(parts) > maxGroup {
			maxGroup = len(parts)
		}
	}

	// Adaptive geometry: inner radius shrinks with more keys, canvas
	// utilization grows with concept count, parts band across enough
	// radial layers to keep the densest sector readable.
	innerR := layout.Clamp(0.8/float64(s), 0.2, 0.5)
	utilization := math.Min(0.95, 0.7+float64(totalParts)/60)
	radialLayers := max(3, int(math.Ceil(float64(maxGroup)/4)))
	radialSpacing := (utilization - innerR - 0.1) / float64(radialLayers)
	minR := innerR + radialSpacing
	maxR := utilization
	gapFactor := layout.Clamp(1.0-float64(maxGroup-3)*0.05, 0.6, 0.9)
	bound := utilization * 1.05

	for i, k := range keys {
		centerAng := float64(i) * sectorSpan
		positions[k] = layout.Position{
			X: innerR * math.Cos(centerAng),
			Y: innerR * math.Sin(centerAng),
		}
		curv[k] = sectorKeyCurvatures[i%len(sectorKeyCurvatures)]

		parts := keyParts[k]
		for idx, p := range parts {
			ang := centerAng
			if len(parts) > 1 {
				halfSpan := sectorSpan * gapFactor / 2
				t := float64(idx) / float64(len(parts)-1)
				ang = centerAng - halfSpan + t*2*halfSpan
			}

			// Band across radial layers, nudging repeats outward so
			// same-layer parts never align perfectly.
			band := idx % radialLayers
			pass := idx / radialLayers
			rad := minR + float64(band)*radialSpacing + float64(pass)*0.05
			rad = math.Min(maxR, rad)

			positions[p] = layout.Position{
				X: layout.Clamp(rad*math.Cos(ang), -bound, bound),
				Y: layout.Clamp(rad*math.Sin(ang), -bound, bound),
			}
			curv[p] = layout.CurvatureAt(idx)
		}
	}

	return Layout{
		Algorithm:      string(StrategySector),
		Keys:           keys,
		KeyParts:       keyParts,
		Positions:      positions,
		EdgeCurvatures: curv,
		Params: map[string]float64{
			"innerRadius": innerR,
			"minRadius":   minR,
			"maxRadius":   maxR,
			"gapFactor":   gapFactor,
		},
	}
}

// resolveGroups produces the final key list and a part assignment that
// covers every concept. Explicit groupings are honored; missing keys are
// derived from topic neighbors (or top-degree concepts when the topic is
// isolated), and every unassigned concept falls back to its best
// connected key.
func resolveGroups(topic string, concepts []string, adj map[string]map[string]bool, degree map[string]int, keys []string, keyParts map[string][]string) ([]string, map[string][]string) {
	conceptSet := make(map[string]bool, len(concepts))
	for _, c := range concepts {
		conceptSet[c] = true
	}

	// Keep only keys that are actual concepts, capped at 8.
	var kept []string
	for _, k := range keys {
		if conceptSet[k] {
			kept = append(kept, k)
		}
	}
	if len(kept) == 0 {
		var candidates []string
		for c := range adj[topic] {
			if conceptSet[c] {
				candidates = append(candidates, c)
			}
		}
		limit := 8
		if len(candidates) == 0 {
			candidates = append(candidates, concepts...)
			limit = 6
		}
		sortByDegree(candidates, degree)
		if limit > len(candidates) {
			limit = len(candidates)
		}
		if limit < 4 && len(candidates) >= 4 {
			limit = 4
		}
		kept = candidates[:limit]
	}
	if len(kept) > 8 {
		sortByDegree(kept, degree)
		kept = kept[:8]
	}

	isKey := make(map[string]bool, len(kept))
	for _, k := range kept {
		isKey[k] = true
	}

	parts := make(map[string][]string, len(kept))
	assigned := make(map[string]bool, len(concepts))
	for _, k := range kept {
		for _, p := range keyParts[k] {
			if conceptSet[p] && !isKey[p] && !assigned[p] {
				parts[k] = append(parts[k], p)
				assigned[p] = true
			}
		}
	}

	// Fallback: attach leftovers to a linked key, or to the
	// highest-degree key when nothing links them.
	fallback := append([]string(nil), kept...)
	sortByDegree(fallback, degree)
	for _, c := range concepts {
		if isKey[c] || assigned[c] {
			continue
		}
		target := fallback[0]
		var linked []string
		for _, k := range kept {
			if adj[k][c] {
				linked = append(linked, k)
			}
		}
		if len(linked) > 0 {
			sortByDegree(linked, degree)
			target = linked[0]
		}
		parts[target] = append(parts[target], c)
		assigned[c] = true
	}

	return kept, parts
}
