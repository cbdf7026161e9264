package mindmap

import "github.com/lycosa9527/mindgraph/pkg/errors"

// Complexity selects how much structure a mind map may carry. Each tier
// caps the branch count and the children per branch; overflow is
// truncated, never rejected.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
	ComplexityExtreme Complexity = "extreme"
)

// caps returns (maxBranches, maxChildrenPerBranch) for the tier.
func (c Complexity) caps() (int, int) {
	switch c {
	case ComplexitySimple:
		return 4, 4
	case ComplexityComplex:
		return 12, 8
	case ComplexityExtreme:
		return 16, 10
	default:
		return 8, 6
	}
}

// Complexities lists the valid tier names.
func Complexities() []Complexity {
	return []Complexity{ComplexitySimple, ComplexityMedium, ComplexityComplex, ComplexityExtreme}
}

// ParseComplexity validates a tier name. Empty resolves to medium.
func ParseComplexity(s string) (Complexity, error) {
	switch Complexity(s) {
	case "":
		return ComplexityMedium, nil
	case ComplexitySimple, ComplexityMedium, ComplexityComplex, ComplexityExtreme:
		return Complexity(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidComplexity, "unknown complexity %q (valid: simple, medium, complex, extreme)", s)
}
