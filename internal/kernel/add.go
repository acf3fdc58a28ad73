package kernel

import (
	"github.com/symcore/symcore/internal/rational"
	"github.com/symcore/symcore/internal/term"
)

// Add returns a + b in canonical form.
func Add(a, b *term.Term) *term.Term {
	a, b = a.Clone(), b.Clone()
	return add(a, b)
}

// add assumes a and b are already owned clones.
func add(a, b *term.Term) *term.Term {
	if isZero(a) {
		return b
	}
	if isZero(b) {
		return a
	}
	if a.Group == term.N && b.Group == term.N {
		sum := a.Multiplier.Add(b.Multiplier)
		if sum.IsZero() {
			return zero()
		}
		return term.NewNumber(sum)
	}
	if sameCombineShape(a, b) {
		sum := a.Multiplier.Add(b.Multiplier)
		if sum.IsZero() {
			return zero()
		}
		a.Multiplier = sum
		return a
	}
	if result, ok := tryPLAbsorb(a, b); ok {
		return result
	}
	if canShareBase(a, b) {
		return newPL(a, b)
	}
	return cpCombine(a, b)
}

// canShareBase reports whether a and b are bare symbolic/irrational-power
// atoms (group S or P) raised to different powers of the same base —
// candidates for grouping into a PL instead of a general CP.
func canShareBase(a, b *term.Term) bool {
	if (a.Group != term.S && a.Group != term.P) || (b.Group != term.S && b.Group != term.P) {
		return false
	}
	return a.BaseHash() == b.BaseHash()
}

func baseMatches(base, t *term.Term) bool {
	if t.Group != term.S && t.Group != term.P {
		return false
	}
	return base.BaseHash() == t.BaseHash()
}

// tryPLAbsorb handles every combination where one side is already a PL
// sharing a base with the other (or with a second PL).
func tryPLAbsorb(a, b *term.Term) (*term.Term, bool) {
	switch {
	case a.Group == term.PL && baseMatches(a.Base, b):
		insertPL(a, b)
		return normalizeComposite(a), true
	case b.Group == term.PL && baseMatches(b.Base, a):
		insertPL(b, a)
		return normalizeComposite(b), true
	case a.Group == term.PL && b.Group == term.PL && a.Base.BaseHash() == b.Base.BaseHash():
		for _, c := range b.Children {
			insertPL(a, c)
		}
		return normalizeComposite(a), true
	}
	return nil, false
}

// newPL builds a fresh power-list from two atoms sharing a base.
func newPL(a, b *term.Term) *term.Term {
	base := a.Clone()
	base.Multiplier = rational.One()
	base.SetPower(rational.One())

	pl := &term.Term{Group: term.PL, Multiplier: rational.One(), Base: base, Children: map[string]*term.Term{}}
	insertPL(pl, a)
	insertPL(pl, b)
	return normalizeComposite(pl)
}

// insertPL inserts child into pl, keyed by its power; a collision combines
// coefficients (which, sharing power, is always a sameCombineShape sum).
func insertPL(pl, child *term.Term) {
	key := child.PowerKey()
	if existing, ok := pl.Children[key]; ok {
		merged := add(existing, child)
		if isZero(merged) {
			delete(pl.Children, key)
		} else {
			pl.Children[key] = merged
		}
		return
	}
	pl.Children[key] = child
}

// cpCombine is the general fallback: wrap a into a CP (if it isn't one
// already) and insert b, flattening nested sums as it goes.
func cpCombine(a, b *term.Term) *term.Term {
	parent := toCP(a)
	insertChildCP(parent, b)
	return normalizeComposite(parent)
}

func toCP(t *term.Term) *term.Term {
	if t.Group == term.CP {
		return t
	}
	parent := &term.Term{Group: term.CP, Multiplier: rational.One(), Children: map[string]*term.Term{}}
	insertChildCP(parent, t)
	return parent
}

func insertChildCP(parent, child *term.Term) {
	if child.Group == term.CP {
		for _, gc := range child.Children {
			insertChildCP(parent, gc)
		}
		return
	}
	key := child.ContentHash()
	if existing, ok := parent.Children[key]; ok {
		merged := add(existing, child)
		if isZero(merged) {
			delete(parent.Children, key)
		} else {
			parent.Children[key] = merged
		}
		return
	}
	parent.Children[key] = child
}
