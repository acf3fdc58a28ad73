// Package kernel implements the normalizing arithmetic operations — add,
// multiply, pow, subtract, divide, sqrt — that keep a term.Term in
// canonical form across every group shape.
package kernel

import (
	"github.com/symcore/symcore/internal/rational"
	"github.com/symcore/symcore/internal/term"
)

// isZero reports whether t is the numeric constant zero.
func isZero(t *term.Term) bool {
	return t.Group == term.N && t.Multiplier.IsZero()
}

// isOne reports whether t is the numeric constant one.
func isOne(t *term.Term) bool {
	return t.Group == term.N && t.Multiplier.IsOne()
}

// zero builds a fresh numeric constant 0.
func zero() *term.Term { return term.NewNumber(rational.Zero()) }

// sameCombineShape reports whether a and b are non-composite terms with
// identical identity and power, so that combining them is a simple
// multiplier sum rather than a promotion.
func sameCombineShape(a, b *term.Term) bool {
	switch a.Group {
	case term.CP, term.CB, term.PL:
		return false
	}
	if a.Group != b.Group {
		return false
	}
	return a.ContentHash() == b.ContentHash()
}

// normalizeComposite enforces canonicalization invariants common to
// CP/PL/CB after a mutation: no composite has zero children (demotes to
// the group's identity element) or exactly one child (demotes to that
// child).
func normalizeComposite(t *term.Term) *term.Term {
	if len(t.Children) == 0 {
		if t.Group == term.CB {
			// An empty product's identity is 1, not 0: every child
			// folded away by cancellation (e.g. (x*y) * 1/(x*y))
			// already carries its net coefficient in t.Multiplier.
			return term.NewNumber(t.Multiplier)
		}
		return zero()
	}
	if len(t.Children) == 1 {
		for _, c := range t.Children {
			if t.Multiplier.IsOne() {
				return c
			}
			c = c.Clone()
			c.Multiplier = c.Multiplier.Mul(t.Multiplier)
			return c
		}
	}
	t.UpdateHash()
	return t
}
