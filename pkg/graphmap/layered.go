package graphmap

import (
	"math"
	"sort"
	"strconv"

	"github.com/lycosa9527/mindgraph/pkg/layout"
	"github.com/lycosa9527/mindgraph/pkg/text"
)

// layeredGap is the horizontal pixel gap between sibling slots.
const layeredGap = 40.0

// layoutLayered computes a layered placement: BFS from the topic assigns
// each node a layer, four alternating barycenter sweeps reduce edge
// crossings, and nodes get text-width-aware slots within their layer.
// Layers alternate above and below the topic so the map grows outward
// from the center instead of downward.
func layoutLayered(topic string, concepts []string, rels []Relationship) Layout {
	nodes := make([]string, 0, len(concepts)+1)
	nodes = append(nodes, topic)
	nodes = append(nodes, concepts...)
	adj := adjacency(topic, concepts, rels)

	// BFS layering from the topic. Unreachable nodes land one past the
	// deepest reached layer.
	const unreached = math.MaxInt32
	layerOf := make(map[string]int, len(nodes))
	for _, n := range nodes {
		layerOf[n] = unreached
	}
	layerOf[topic] = 0
	queue := []string{topic}
	maxLayer := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for nb := range adj[cur] {
			if layerOf[nb] == unreached {
				layerOf[nb] = layerOf[cur] + 1
				if layerOf[nb] > maxLayer {
					maxLayer = layerOf[nb]
				}
				queue = append(queue, nb)
			}
		}
	}
	orphan := maxLayer + 1
	hasOrphans := false
	for _, n := range nodes {
		if layerOf[n] == unreached {
			layerOf[n] = orphan
			hasOrphans = true
		}
	}
	if hasOrphans {
		maxLayer = orphan
	}

	degree := make(map[string]int, len(nodes))
	for n, nbs := range adj {
		degree[n] = len(nbs)
	}

	// Group by layer, initial order by degree then name for determinism.
	layers := make([][]string, maxLayer+1)
	for _, n := range nodes {
		layers[layerOf[n]] = append(layers[layerOf[n]], n)
	}
	for _, l := range layers {
		sortByDegree(l, degree)
	}

	// Directed edges from lower to higher layer; same-layer links do not
	// participate in the sweeps.
	type edge struct{ from, to string }
	var dirEdges []edge
	for _, rel := range rels {
		a, b := rel.From, rel.To
		la, lb := layerOf[a], layerOf[b]
		if la == lb {
			continue
		}
		if la > lb {
			a, b = b, a
		}
		dirEdges = append(dirEdges, edge{a, b})
	}

	// Barycenter ordering against a fixed neighbor layer. Nodes with no
	// neighbors in that layer sort last.
	order := func(cur, neighbor []string, neighborIsLower bool) []string {
		index := make(map[string]int, len(neighbor))
		for i, n := range neighbor {
			index[n] = i
		}
		bc := make(map[string]float64, len(cur))
		for _, n := range cur {
			sum, cnt := 0.0, 0
			for _, e := range dirEdges {
				var other string
				switch {
				case neighborIsLower && e.to == n:
					other = e.from
				case !neighborIsLower && e.from == n:
					other = e.to
				default:
					continue
				}
				sum += float64(index[other])
				cnt++
			}
			if cnt == 0 {
				bc[n] = math.Inf(1)
			} else {
				bc[n] = sum / float64(cnt)
			}
		}
		out := append([]string(nil), cur...)
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if bc[a] != bc[b] {
				return bc[a] < bc[b]
			}
			if degree[a] != degree[b] {
				return degree[a] > degree[b]
			}
			return a < b
		})
		return out
	}

	const sweeps = 4
	for s := 0; s < sweeps; s++ {
		for l := 1; l <= maxLayer; l++ {
			layers[l] = order(layers[l], layers[l-1], true)
		}
		for l := maxLayer - 1; l >= 0; l-- {
			layers[l] = order(layers[l], layers[l+1], false)
		}
	}

	// Horizontal slots per layer, centered on zero, then normalized
	// against the widest layer.
	type slotted struct {
		node string
		cx   float64
	}
	slots := make([][]slotted, maxLayer+1)
	maxSpan := 0.0
	for l, nodesInLayer := range layers {
		widths := make([]float64, len(nodesInLayer))
		total := 0.0
		for i, n := range nodesInLayer {
			widths[i] = text.SlotWidth(n, n == topic)
			total += widths[i]
		}
		span := total + layeredGap*float64(max(0, len(nodesInLayer)-1))
		if span > maxSpan {
			maxSpan = span
		}
		x := -span / 2
		for i, n := range nodesInLayer {
			slots[l] = append(slots[l], slotted{node: n, cx: x + widths[i]/2})
			x += widths[i] + layeredGap
		}
	}

	// Normalize: topic layer at y=0, then +d, -2d, +3d outward so odd
	// layers sit above and even layers below.
	d := 0.9 / float64(max(1, maxLayer))
	positions := make(map[string]layout.Position, len(nodes))
	curv := make(map[string]float64, len(nodes))
	layersOut := make(map[string][]string, maxLayer+1)
	for l, row := range slots {
		y := 0.0
		if l > 0 {
			y = float64(l) * d
			if l%2 == 0 {
				y = -y
			}
		}
		y = layout.Clamp(y, -0.95, 0.95)
		for i, s := range row {
			x := 0.0
			if maxSpan > 0 {
				x = s.cx / (maxSpan / 2)
			}
			positions[s.node] = layout.Position{
				X: layout.Clamp(x, -0.95, 0.95),
				Y: y,
			}
			curv[s.node] = layout.CurvatureAt(i)
		}
		layersOut[strconv.Itoa(l)] = layers[l]
	}

	return Layout{
		Algorithm:      string(StrategyLayered),
		Layers:         layersOut,
		Positions:      positions,
		EdgeCurvatures: curv,
		Params: map[string]float64{
			"maxLayer": float64(maxLayer),
			"layerGap": d,
		},
	}
}

// sortByDegree orders nodes by descending degree, then name.
func sortByDegree(nodes []string, degree map[string]int) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if degree[nodes[i]] != degree[nodes[j]] {
			return degree[nodes[i]] > degree[nodes[j]]
		}
		return nodes[i] < nodes[j]
	})
}
