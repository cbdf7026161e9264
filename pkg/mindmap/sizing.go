package mindmap

import "github.com/lycosa9527/mindgraph/pkg/text"

// Adaptive sizing: font size and node height shrink in discrete steps as
// the label grows, three tiers per node type. Widths come from the
// shared per-character width table plus length-scaled padding.

// fontSize returns the pixel font size for a label at a tree level.
func fontSize(label string, typ NodeType) float64 {
	n := len([]rune(label))
	switch typ {
	case NodeTopic:
		switch {
		case n <= 10:
			return 28
		case n <= 20:
			return 24
		default:
			return 20
		}
	case NodeBranch:
		switch {
		case n <= 8:
			return 20
		case n <= 15:
			return 18
		default:
			return 16
		}
	default:
		switch {
		case n <= 6:
			return 16
		case n <= 12:
			return 14
		default:
			return 12
		}
	}
}

// nodeHeight returns the pixel box height for a label at a tree level.
func nodeHeight(label string, typ NodeType) float64 {
	n := len([]rune(label))
	switch typ {
	case NodeTopic:
		switch {
		case n <= 10:
			return 70
		case n <= 20:
			return 60
		default:
			return 50
		}
	case NodeBranch:
		switch {
		case n <= 8:
			return 60
		case n <= 15:
			return 50
		default:
			return 45
		}
	default:
		switch {
		case n <= 6:
			return 45
		case n <= 12:
			return 40
		default:
			return 35
		}
	}
}

// boxPadding widens a node's box for longer labels.
func boxPadding(label string) float64 {
	switch n := len([]rune(label)); {
	case n <= 5:
		return 15
	case n <= 15:
		return 20
	default:
		return 25
	}
}

// nodeWidth returns the pixel box width for a label at a tree level.
// The topic box hugs its text; branch and child boxes get extra padding.
func nodeWidth(label string, typ NodeType) float64 {
	w := text.Width(label, fontSize(label, typ))
	if typ == NodeTopic {
		return w
	}
	return w + boxPadding(label)
}

// childSpacing is the vertical gap between stacked children, loosening
// as the stack grows.
func childSpacing(numChildren int) float64 {
	switch {
	case numChildren <= 2:
		return 15
	case numChildren <= 5:
		return 20
	default:
		return 25
	}
}
