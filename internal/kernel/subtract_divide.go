package kernel

import (
	"github.com/symcore/symcore/internal/errors"
	"github.com/symcore/symcore/internal/rational"
	"github.com/symcore/symcore/internal/term"
)

// Subtract returns a - b, defined as Add(a, Negate(b)).
func Subtract(a, b *term.Term) *term.Term {
	return Add(a, Negate(b))
}

// Negate returns -t.
func Negate(t *term.Term) *term.Term {
	return Multiply(t, term.NewNumber(rational.NegOne()))
}

// Divide returns a / b, defined as Multiply(a, Invert(b)). It fails with a
// DivisionByZero error when b is the numeric constant zero.
func Divide(a, b *term.Term) (*term.Term, error) {
	inv, err := Invert(b)
	if err != nil {
		return nil, err
	}
	return Multiply(a, inv), nil
}

// Invert returns 1/t: negates the power of every multiplicative factor and
// inverts the multiplier.
func Invert(t *term.Term) (*term.Term, error) {
	t = t.Clone()
	if isZero(t) {
		return nil, errors.NewDivisionByZero("cannot invert zero")
	}
	return invert(t), nil
}

func invert(t *term.Term) *term.Term {
	switch t.Group {
	case term.N:
		return term.NewNumber(t.Multiplier.Invert())
	case term.CB:
		c := t.Clone()
		c.Multiplier = c.Multiplier.Invert()
		for k, child := range c.Children {
			c.Children[k] = invertPower(child)
		}
		return c
	case term.CP, term.PL:
		// 1/(a+b+...) has no finite CP/PL representation in this core;
		// represent it as the base raised to the power -1.
		return negatePower(t)
	default:
		return negatePower(t)
	}
}

// negatePower flips the sign of t's power (or, for EX, of its power term)
// and inverts the multiplier, used for every group without a distributive
// inverse (S, P, FN, EX, CP, PL).
func negatePower(t *term.Term) *term.Term {
	c := t.Clone()
	c.Multiplier = c.Multiplier.Invert()
	if c.IsExponentTerm() {
		c.SetPowerTerm(Negate(c.PowerTerm()))
		return c
	}
	c.SetPower(c.Power().Negate())
	if c.Group == term.P && c.Power().IsInteger() {
		return foldPToN(c)
	}
	return c
}

func invertPower(t *term.Term) *term.Term {
	return negatePower(t)
}
