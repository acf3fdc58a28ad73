package kernel

import (
	"github.com/symcore/symcore/internal/rational"
	"github.com/symcore/symcore/internal/term"
)

// Multiply returns a * b in canonical form.
func Multiply(a, b *term.Term) *term.Term {
	a, b = a.Clone(), b.Clone()
	return multiply(a, b)
}

func multiply(a, b *term.Term) *term.Term {
	if isZero(a) || isZero(b) {
		return zero()
	}
	if isOne(a) {
		return b
	}
	if isOne(b) {
		return a
	}
	if a.Group == term.N && b.Group == term.N {
		return term.NewNumber(a.Multiplier.Mul(b.Multiplier))
	}
	if sameBaseForPower(a, b) {
		return combinePowers(a, b)
	}
	return cbCombine(a, b)
}

// sameBaseForPower reports whether a and b are non-composite terms with
// the same identity (base hash) so their powers can be added together,
// per the kernel's exponent-folding rule for multiplication.
func sameBaseForPower(a, b *term.Term) bool {
	switch a.Group {
	case term.CP, term.CB, term.PL:
		return false
	}
	if a.Group != b.Group {
		return false
	}
	return a.BaseHash() == b.BaseHash()
}

// combinePowers folds a*b into a single term with the summed power and
// product multiplier, demoting to N if the resulting power is 0 or the
// term is group P with an integer power.
func combinePowers(a, b *term.Term) *term.Term {
	mult := a.Multiplier.Mul(b.Multiplier)
	if a.IsExponentTerm() || b.IsExponentTerm() {
		// Both carry the same base but heterogeneous (term) powers;
		// combine by building an EX whose power is the sum. The base
		// here was already proven non-zero by multiply's own isZero
		// guard, so Pow cannot return an error.
		r, _ := Pow(restoreBase(a), Add(exponentOf(a), exponentOf(b)), mult)
		return r
	}
	power := a.Power().Add(b.Power())
	if power.IsZero() {
		return term.NewNumber(mult)
	}
	c := a.Clone()
	c.Multiplier = mult
	c.SetPower(power)
	if c.Group == term.P && power.IsInteger() {
		return foldPToN(c)
	}
	return c
}

func exponentOf(t *term.Term) *term.Term {
	if t.IsExponentTerm() {
		return t.PowerTerm()
	}
	return term.NewNumber(t.Power())
}

func restoreBase(t *term.Term) *term.Term {
	c := t.Clone()
	c.Multiplier = rational.One()
	if c.PreviousGroup != nil {
		c.Group = *c.PreviousGroup
	}
	c.SetPower(rational.One())
	return c
}

// cbCombine is the general fallback: wrap a into a CB (if it isn't one
// already) and insert b, flattening nested products and floating every
// child multiplier up to the CB's own.
func cbCombine(a, b *term.Term) *term.Term {
	parent := toCB(a)
	insertChildCB(parent, b)
	return normalizeComposite(parent)
}

func toCB(t *term.Term) *term.Term {
	if t.Group == term.CB {
		return t
	}
	parent := &term.Term{Group: term.CB, Multiplier: rational.One(), Children: map[string]*term.Term{}}
	insertChildCB(parent, t)
	return parent
}

func insertChildCB(parent, child *term.Term) {
	if child.Group == term.CB {
		parent.Multiplier = parent.Multiplier.Mul(child.Multiplier)
		for _, gc := range child.Children {
			insertChildCB(parent, gc)
		}
		return
	}
	parent.Multiplier = parent.Multiplier.Mul(child.Multiplier)
	unit := child.Clone()
	unit.Multiplier = rational.One()

	key := unit.BaseHash()
	if existing, ok := parent.Children[key]; ok {
		merged := combinePowers(existing, unit)
		if merged.Group == term.N {
			// Integer power collapsed to a numeric constant (e.g. x^1 *
			// x^-1 -> 1): fold its value into the CB multiplier and drop
			// the slot entirely.
			parent.Multiplier = parent.Multiplier.Mul(merged.Multiplier)
			delete(parent.Children, key)
			return
		}
		merged.Multiplier = rational.One()
		parent.Children[key] = merged
		return
	}
	parent.Children[key] = unit
}
