package kernel

import (
	"math/big"

	"github.com/symcore/symcore/internal/errors"
	"github.com/symcore/symcore/internal/rational"
	"github.com/symcore/symcore/internal/term"
)

// expansionCap bounds how large an integer exponent may be before pow()
// falls back to promoting instead of expanding a composite base by
// repeated multiplication.
const expansionCap = 64

// Pow returns base^exp in canonical form, or a DivisionByZero error for
// the one undefined case: zero raised to a negative power.
func Pow(base, exp *term.Term, extraMultiplier ...*rational.Frac) (*term.Term, error) {
	base = base.Clone()
	exp = exp.Clone()
	if isZero(base) && exp.Group == term.N && exp.Multiplier.Sign() < 0 {
		return nil, errors.NewDivisionByZero("cannot raise zero to a negative power")
	}
	mult := rational.One()
	for _, m := range extraMultiplier {
		mult = mult.Mul(m)
	}
	return pow(base, exp, mult), nil
}

func pow(base, exp *term.Term, extraMult *rational.Frac) *term.Term {
	if exp.Group == term.N {
		return powNumericExp(base, exp.Multiplier, extraMult)
	}
	// Non-numeric exponent: promote base to group EX, remembering its
	// previous group so a later demotion (power collapses to rational)
	// can restore it.
	return promoteToEX(base, exp, extraMult)
}

func powNumericExp(base *term.Term, exp *rational.Frac, extraMult *rational.Frac) *term.Term {
	if exp.IsZero() {
		return term.NewNumber(extraMult)
	}
	if exp.IsOne() {
		c := base.Clone()
		c.Multiplier = c.Multiplier.Mul(extraMult)
		return c
	}
	if isZero(base) {
		if exp.Sign() > 0 {
			return zero()
		}
		// 0^0 defined as 1 by convention; 0^(negative) is rejected by
		// the exported Pow before this is reached.
		return term.NewNumber(extraMult)
	}

	switch base.Group {
	case term.N:
		return powOfNumber(base, exp, extraMult)
	case term.P:
		return powOfP(base, exp, extraMult)
	case term.CB, term.CP, term.PL:
		if exp.IsInteger() && exp.Sign() >= 0 && exp.Num().Cmp(big.NewInt(expansionCap)) <= 0 {
			return expandInteger(base, exp, extraMult)
		}
		return promoteToEX(base, term.NewNumber(exp), extraMult)
	case term.EX:
		// (x^p1)^p2 = x^(p1*p2): multiplicative exponent chaining.
		combined := Multiply(base.PowerTerm().Clone(), term.NewNumber(exp))
		restored := restoreBase(base)
		m := base.Multiplier.Mul(extraMult)
		return promoteToEX(restored, combined, m)
	default:
		return promoteToEX(base, term.NewNumber(exp), extraMult)
	}
}

func powOfNumber(base *term.Term, exp *rational.Frac, extraMult *rational.Frac) *term.Term {
	if exp.IsInteger() {
		val := intPow(base.Multiplier, exp)
		return term.NewNumber(val.Mul(extraMult))
	}
	// Fractional power of a constant: try to reduce, e.g. 4^(1/2) -> 2,
	// via sqrt-style perfect-power folding for 1/2; general fractional
	// roots beyond square root are left as a group-P term.
	if num := exp.Num(); num.Cmp(big.NewInt(1)) == 0 && exp.Den().Cmp(big.NewInt(2)) == 0 {
		if root, ok := base.Multiplier.Abs().Sqrt(); ok && base.Multiplier.Sign() >= 0 {
			return term.NewNumber(root.Mul(extraMult))
		}
	}
	if !base.Multiplier.IsInteger() {
		// Group P's Value is always an integer literal; distribute the
		// fractional power over numerator and denominator separately
		// rather than stringifying a non-integer base into it:
		// (n/d)^e = n^e / d^e.
		numTerm := term.NewNumber(rational.NewBig(base.Multiplier.Num(), big.NewInt(1)))
		denTerm := term.NewNumber(rational.NewBig(base.Multiplier.Den(), big.NewInt(1)))
		numPow := powOfNumber(numTerm, exp, rational.One())
		denPow := powOfNumber(denTerm, exp, rational.One())
		inv, err := Invert(denPow)
		if err != nil {
			// A Frac's denominator is never zero, so denPow is never
			// zero either; this branch is unreachable.
			inv = term.NewNumber(rational.One())
		}
		result := Multiply(numPow, inv)
		result.Multiplier = result.Multiplier.Mul(extraMult)
		return result
	}
	p := &term.Term{Group: term.P, Multiplier: extraMult, Value: base.Multiplier.String()}
	p.SetPower(exp)
	return p
}

func powOfP(base *term.Term, exp *rational.Frac, extraMult *rational.Frac) *term.Term {
	combined := base.Power().Mul(exp)
	mult := base.Multiplier.Mul(extraMult)
	if combined.IsInteger() {
		baseVal, ok := new(big.Int).SetString(base.Value, 10)
		if !ok {
			baseVal = big.NewInt(0)
		}
		val := intPowBig(baseVal, combined)
		return term.NewNumber(mult.Mul(val))
	}
	p := &term.Term{Group: term.P, Multiplier: mult, Value: base.Value}
	p.SetPower(combined)
	return p
}

// intPow raises an integer-valued Frac to the integer power exp.
func intPow(baseFrac *rational.Frac, exp *rational.Frac) *rational.Frac {
	n := exp.Num()
	neg := n.Sign() < 0
	if neg {
		n = new(big.Int).Neg(n)
	}
	result := rational.One()
	b := baseFrac
	e := new(big.Int).Set(n)
	for e.Sign() > 0 {
		result = result.Mul(b)
		e.Sub(e, big.NewInt(1))
	}
	if neg {
		result = result.Invert()
	}
	return result
}

// intPowBig raises an integer base (as big.Int) to the integer power exp,
// returning the result as a Frac (handles negative exponents).
func intPowBig(base *big.Int, exp *rational.Frac) *rational.Frac {
	return intPow(rational.NewBig(base, big.NewInt(1)), exp)
}

func foldPToN(p *term.Term) *term.Term {
	baseVal, ok := new(big.Int).SetString(p.Value, 10)
	if !ok {
		baseVal = big.NewInt(0)
	}
	folded := intPowBig(baseVal, p.Power())
	return term.NewNumber(p.Multiplier.Mul(folded))
}

// expandInteger distributes a non-negative integer power over a composite
// base by repeated multiplication: (a*b)^n = a^n * b^n for integer n.
func expandInteger(base *term.Term, exp *rational.Frac, extraMult *rational.Frac) *term.Term {
	n := int(exp.Num().Int64())
	result := term.NewNumber(extraMult)
	for i := 0; i < n; i++ {
		result = Multiply(result, base)
	}
	return result
}

// promoteToEX wraps base as a group-EX term whose power is the Term exp,
// remembering base's previous group for later demotion.
func promoteToEX(base *term.Term, exp *term.Term, extraMult *rational.Frac) *term.Term {
	prev := base.Group
	ex := base.Clone()
	ex.PreviousGroup = &prev
	ex.Group = term.EX
	ex.Multiplier = ex.Multiplier.Mul(extraMult)
	ex.SetPowerTerm(exp)
	return ex
}

// Sqrt returns sqrt(x) == x^(1/2), folding to a rational when x is a
// perfect square. The exponent is always positive, so the zero-base
// error Pow can return never triggers here.
func Sqrt(x *term.Term) *term.Term {
	r, _ := Pow(x, term.NewNumber(rational.New(1, 2)))
	return r
}
