package mindmap

import (
	"fmt"
	"math"

	"github.com/lycosa9527/mindgraph/pkg/config"
)

// Horizontal gap between the branch column and its child column.
const branchChildGap = 100.0

// Vertical slots for branches without children, per side in column
// order. Cursor stacking only applies to branches that carry a children
// block; bare branches take a fixed slot instead.
var childlessSlots = []float64{-130, 0, 130, 260, -260, 390}

// layoutTree computes the clockwise balanced column layout. The first
// half of the branches (by index) takes the right column, the second
// half the left, which balances the two sides for any branch count.
// Children stack vertically beside their branch, each branch floats to
// the midpoint of its children block, the topic centers on the branch
// extremes, and the whole tree is recentered on the origin at the end.
func layoutTree(topic string, branches []Branch, cfg config.TreeConfig) Layout {
	positions := make(map[string]Node, 16)

	topicNode := Node{
		Text:     topic,
		Type:     NodeTopic,
		Width:    nodeWidth(topic, NodeTopic),
		Height:   nodeHeight(topic, NodeTopic),
		FontSize: fontSize(topic, NodeTopic),
	}

	// Column offsets from the widest labels so every branch sits on one
	// of two vertical lines and every child on two further-out lines.
	maxBranchW, maxChildW := 1.0, 1.0
	for _, b := range branches {
		maxBranchW = math.Max(maxBranchW, nodeWidth(b.Label, NodeBranch))
		for _, c := range b.Children {
			maxChildW = math.Max(maxChildW, nodeWidth(c.Label, NodeChild))
		}
	}
	branchX := topicNode.Width/2 + cfg.ColumnGap + maxBranchW/2
	childX := branchX + maxBranchW/2 + branchChildGap + maxChildW/2

	n := len(branches)
	sideOf := func(i int) Side {
		if 2*i < n {
			return SideRight
		}
		return SideLeft
	}
	sign := map[Side]float64{SideRight: 1, SideLeft: -1}

	// Stack branch blocks per side with a running y cursor.
	cursor := map[Side]float64{}
	ordinal := map[Side]int{}
	for i, b := range branches {
		side := sideOf(i)
		branch := Node{
			Text:        b.Label,
			Type:        NodeBranch,
			Side:        side,
			BranchIndex: i,
			X:           sign[side] * branchX,
			Width:       nodeWidth(b.Label, NodeBranch),
			Height:      nodeHeight(b.Label, NodeBranch),
			FontSize:    fontSize(b.Label, NodeBranch),
		}

		k := len(b.Children)
		if k == 0 {
			branch.Y = childlessSlots[ordinal[side]%len(childlessSlots)]
		} else {
			spacing := childSpacing(k)
			blockH := -spacing
			heights := make([]float64, k)
			for j, c := range b.Children {
				heights[j] = nodeHeight(c.Label, NodeChild)
				blockH += heights[j] + spacing
			}
			total := math.Max(blockH, branch.Height)
			branch.Y = cursor[side] + total/2
			cursor[side] += total + cfg.BranchGap

			cy := branch.Y - blockH/2
			for j, c := range b.Children {
				positions[childKey(i, j)] = Node{
					Text:        c.Label,
					Type:        NodeChild,
					Side:        side,
					BranchIndex: i,
					ChildIndex:  j,
					X:           sign[side] * childX,
					Y:           cy + heights[j]/2,
					Width:       nodeWidth(c.Label, NodeChild),
					Height:      heights[j],
					FontSize:    fontSize(c.Label, NodeChild),
				}
				cy += heights[j] + spacing
			}
		}

		positions[branchKey(i)] = branch
		ordinal[side]++
	}

	// Topic centers on the branch extremes; then branch 1 (and branch 4
	// on large maps) snaps to the topic line for horizontal symmetry.
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i := range branches {
		y := positions[branchKey(i)].Y
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	topicNode.Y = (minY + maxY) / 2
	if n >= 2 {
		snapBranch(positions, 1, topicNode.Y)
	}
	if n >= 5 {
		snapBranch(positions, 4, topicNode.Y)
	}
	positions["topic"] = topicNode

	recenter(positions)

	return Layout{
		Algorithm:   "clockwise_balanced",
		Positions:   positions,
		Connections: connections(branches, positions),
		Params: map[string]float64{
			"branchColumnX": branchX,
			"childColumnX":  childX,
			"branchCount":   float64(n),
		},
	}
}

func branchKey(i int) string   { return fmt.Sprintf("branch_%d", i) }
func childKey(i, j int) string { return fmt.Sprintf("child_%d_%d", i, j) }

func snapBranch(positions map[string]Node, i int, y float64) {
	b := positions[branchKey(i)]
	b.Y = y
	positions[branchKey(i)] = b
}

// recenter translates every node so the bounding box of all boxes is
// centered on the origin.
func recenter(positions map[string]Node) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, node := range positions {
		minX = math.Min(minX, node.X-node.Width/2)
		maxX = math.Max(maxX, node.X+node.Width/2)
		minY = math.Min(minY, node.Y-node.Height/2)
		maxY = math.Max(maxY, node.Y+node.Height/2)
	}
	dx := (minX + maxX) / 2
	dy := (minY + maxY) / 2
	for key, node := range positions {
		node.X -= dx
		node.Y -= dy
		positions[key] = node
	}
}

// connections builds the line descriptors the renderer draws, from the
// final node positions.
func connections(branches []Branch, positions map[string]Node) []Connection {
	topic := positions["topic"]
	var out []Connection
	for i, b := range branches {
		branch, ok := positions[branchKey(i)]
		if !ok {
			continue
		}
		out = append(out, Connection{
			Type:        ConnTopicToBranch,
			From:        Endpoint{X: topic.X, Y: topic.Y, Type: NodeTopic},
			To:          Endpoint{X: branch.X, Y: branch.Y, Type: NodeBranch},
			BranchIndex: i,
			StrokeWidth: topicBranchStrokeWidth,
			StrokeColor: topicBranchStrokeColor,
		})
		for j := range b.Children {
			child, ok := positions[childKey(i, j)]
			if !ok {
				continue
			}
			out = append(out, Connection{
				Type:        ConnBranchToChild,
				From:        Endpoint{X: branch.X, Y: branch.Y, Type: NodeBranch},
				To:          Endpoint{X: child.X, Y: child.Y, Type: NodeChild},
				BranchIndex: i,
				ChildIndex:  j,
				StrokeWidth: branchChildStrokeWidth,
				StrokeColor: branchChildStrokeColor,
			})
		}
	}
	return out
}
