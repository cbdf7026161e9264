package graphmap

import (
	"math"
	"math/rand"

	"github.com/lycosa9527/mindgraph/pkg/layout"
)

// Radial edges are short, so the curvature cycle is gentler here.
var radialCurvatures = []float64{0, 8, -8, 16, -16}

const (
	radialInnerRadius = 0.35
	radialOuterRadius = 0.95
	radialJitter      = 0.1 // radians
)

// layoutRadial places concepts on concentric rings around the topic.
// Ring count follows concept count (2 rings up to 10 concepts, 3 up to
// 20, 4 beyond), inner rings hold fewer nodes than outer ones, and ring
// radii spread evenly between the inner and outer bounds so every node
// stays inside the normalized canvas. Angles get a small seeded jitter
// to break perfect alignment; the same seed always reproduces the same
// layout.
func layoutRadial(topic string, concepts []string, seed int64) Layout {
	positions := map[string]layout.Position{topic: {X: 0, Y: 0}}
	curv := make(map[string]float64, len(concepts))

	if len(concepts) == 0 {
		return Layout{
			Algorithm:      string(StrategyRadial),
			Positions:      positions,
			EdgeCurvatures: curv,
		}
	}

	total := len(concepts)
	targetRings := 4
	switch {
	case total <= 10:
		targetRings = 2
	case total <= 20:
		targetRings = 3
	}

	// Bucket by index with widening thresholds so the inner ring stays
	// sparse and outer rings absorb the bulk.
	per := float64(total) / float64(targetRings)
	ringOf := make(map[string]int, total)
	maxRing := 1
	for i, c := range concepts {
		ring := min(4, targetRings)
		switch {
		case float64(i) < per*0.7:
			ring = 1
		case float64(i) < per*1.8:
			ring = 2
		case float64(i) < per*3.0:
			ring = 3
		}
		if ring > targetRings {
			ring = targetRings
		}
		ringOf[c] = ring
		if ring > maxRing {
			maxRing = ring
		}
	}

	rings := make([][]string, maxRing+1)
	for _, c := range concepts {
		rings[ringOf[c]] = append(rings[ringOf[c]], c)
	}

	radiusOf := func(ring int) float64 {
		if maxRing == 1 {
			return (radialInnerRadius + radialOuterRadius) / 2
		}
		step := (radialOuterRadius - radialInnerRadius) / float64(maxRing-1)
		return math.Min(radialOuterRadius, radialInnerRadius+float64(ring-1)*step)
	}

	rng := rand.New(rand.NewSource(seed))
	for ring := 1; ring <= maxRing; ring++ {
		nodes := rings[ring]
		if len(nodes) == 0 {
			continue
		}
		radius := radiusOf(ring)
		for i, c := range nodes {
			ang := 2 * math.Pi * float64(i) / float64(len(nodes))
			if len(nodes) > 1 {
				ang += rng.Float64()*2*radialJitter - radialJitter
			}
			positions[c] = layout.Position{
				X: radius * math.Cos(ang),
				Y: radius * math.Sin(ang),
			}
		}
	}

	for i, c := range concepts {
		curv[c] = radialCurvatures[i%len(radialCurvatures)]
	}

	return Layout{
		Algorithm:      string(StrategyRadial),
		Positions:      positions,
		EdgeCurvatures: curv,
		Params: map[string]float64{
			"innerRadius": radialInnerRadius,
			"outerRadius": radialOuterRadius,
			"rings":       float64(maxRing),
		},
	}
}
