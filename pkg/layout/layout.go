// Package layout defines the value types shared by the concept-map and
// mind-map layout engines: normalized positions, curvature hints, and the
// data-quality warnings emitted during spec repair.
//
// Coordinates are normalized to [-1, 1] on both axes. The renderer scales
// them to pixels using the canvas dimensions recommended by [canvas].
package layout

import (
	"fmt"
	"strings"
	"unicode"
)

// Position is a normalized 2D coordinate for a single node.
// Both X and Y lie in [-1, 1]; (0, 0) is the canvas center.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Curvatures is the fixed cycle of signed pixel offsets handed to the
// renderer so it can bend edge paths and reduce visual overlap.
var Curvatures = []float64{0, 12, -12, 24, -24}

// CurvatureAt returns the curvature hint for the i-th node of a group,
// cycling through the fixed offset pattern.
func CurvatureAt(i int) float64 {
	return Curvatures[i%len(Curvatures)]
}

// CleanLabel collapses runs of whitespace and truncates to maxLen runes,
// appending an ellipsis when truncation happened. A non-positive maxLen
// disables truncation.
func CleanLabel(s string, maxLen int) (clean string, truncated bool) {
	clean = strings.Join(strings.Fields(s), " ")
	runes := []rune(clean)
	if maxLen > 0 && len(runes) > maxLen {
		clean = strings.TrimRight(string(runes[:maxLen-1]), " ") + "…"
		truncated = true
	}
	return clean, truncated
}

// CanonicalKey is the matching form of a label: lowercase with all
// whitespace removed. Two labels with equal canonical keys are treated
// as the same node.
func CanonicalKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// =============================================================================
// Warnings - Data-Quality Repair Reporting
// =============================================================================

// WarningCode identifies a class of silent spec repair.
type WarningCode string

// Repair classes. Every malformed node or edge is fixed rather than
// rejected; the warning records what was fixed so callers can log it.
const (
	WarnDuplicateNode    WarningCode = "duplicate_node"
	WarnDuplicateEdge    WarningCode = "duplicate_edge"
	WarnSelfLoop         WarningCode = "self_loop"
	WarnEmptyField       WarningCode = "empty_field"
	WarnTruncatedLabel   WarningCode = "truncated_label"
	WarnDanglingEndpoint WarningCode = "dangling_endpoint"
	WarnPromotedConcept  WarningCode = "promoted_concept"
	WarnCapExceeded      WarningCode = "cap_exceeded"
)

// Warning records one silent repair applied during normalization.
// Warnings never indicate failure: the engine always produces a
// renderable result from best-effort input.
type Warning struct {
	Code    WarningCode `json:"code" bson:"code"`
	Message string      `json:"message" bson:"message"`
}

// Warn builds a Warning with a formatted message.
func Warn(code WarningCode, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
