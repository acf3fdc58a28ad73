// Package rational implements an exact rational number backed by
// arbitrary-precision integers, the numeric foundation the term package
// builds its multipliers and powers on.
package rational

import (
	"fmt"
	"math/big"
	"strings"
)

// Frac is a signed rational number, always kept in lowest terms with the
// sign carried on Num and Den non-negative. A distinguished infinity value
// is representable (Den == 0, Num != 0) but is never itself reduced.
type Frac struct {
	num *big.Int
	den *big.Int
}

// Zero, One and NegOne are convenience constants; callers must not mutate
// the returned values in place since Frac methods return new values.
func Zero() *Frac { return &Frac{num: big.NewInt(0), den: big.NewInt(1)} }
func One() *Frac  { return &Frac{num: big.NewInt(1), den: big.NewInt(1)} }
func NegOne() *Frac {
	return &Frac{num: big.NewInt(-1), den: big.NewInt(1)}
}

// Infinity returns the distinguished, unreduced infinity value.
func Infinity() *Frac { return &Frac{num: big.NewInt(1), den: big.NewInt(0)} }

// NewInt builds a Frac equal to n.
func NewInt(n int64) *Frac {
	return reduce(big.NewInt(n), big.NewInt(1))
}

// New builds a Frac equal to num/den, reduced to lowest terms. Panics if
// den is zero and num is also zero (0/0 is not representable); use
// Infinity() for n/0, n != 0.
func New(num, den int64) *Frac {
	return reduce(big.NewInt(num), big.NewInt(den))
}

// NewBig builds a Frac from big.Int values, reduced to lowest terms. The
// inputs are copied, never aliased.
func NewBig(num, den *big.Int) *Frac {
	return reduce(new(big.Int).Set(num), new(big.Int).Set(den))
}

// FromDecimal parses a decimal literal such as "1.25" or "-0.5" into an
// exact Frac, as required for literal construction during tokenization.
func FromDecimal(s string) (*Frac, error) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	num := new(big.Int)
	if _, ok := num.SetString(intPart+fracPart, 10); !ok {
		return nil, fmt.Errorf("rational: invalid decimal literal %q", s)
	}
	den := big.NewInt(1)
	if hasFrac {
		den.Exp(big.NewInt(10), big.NewInt(int64(len(fracPart))), nil)
	}
	if neg {
		num.Neg(num)
	}
	return reduce(num, den), nil
}

func reduce(num, den *big.Int) *Frac {
	if den.Sign() == 0 {
		if num.Sign() == 0 {
			panic("rational: 0/0 is not representable")
		}
		return &Frac{num: num, den: big.NewInt(0)}
	}
	if den.Sign() < 0 {
		num = new(big.Int).Neg(num)
		den = new(big.Int).Neg(den)
	}
	if num.Sign() == 0 {
		return &Frac{num: big.NewInt(0), den: big.NewInt(1)}
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), den)
	if g.Cmp(big.NewInt(1)) != 0 {
		num = new(big.Int).Quo(num, g)
		den = new(big.Int).Quo(den, g)
	}
	return &Frac{num: num, den: den}
}

// IsInfinity reports whether f is the distinguished infinity value.
func (f *Frac) IsInfinity() bool { return f.den.Sign() == 0 }

// Num and Den expose copies of the reduced numerator/denominator.
func (f *Frac) Num() *big.Int { return new(big.Int).Set(f.num) }
func (f *Frac) Den() *big.Int { return new(big.Int).Set(f.den) }

// Add returns f + g.
func (f *Frac) Add(g *Frac) *Frac {
	if f.IsInfinity() || g.IsInfinity() {
		return Infinity()
	}
	num := new(big.Int).Add(new(big.Int).Mul(f.num, g.den), new(big.Int).Mul(g.num, f.den))
	den := new(big.Int).Mul(f.den, g.den)
	return reduce(num, den)
}

// Sub returns f - g.
func (f *Frac) Sub(g *Frac) *Frac {
	return f.Add(g.Negate())
}

// Mul returns f * g.
func (f *Frac) Mul(g *Frac) *Frac {
	if f.IsInfinity() || g.IsInfinity() {
		if f.IsZero() || g.IsZero() {
			panic("rational: 0 * infinity is not representable")
		}
		return Infinity()
	}
	return reduce(new(big.Int).Mul(f.num, g.num), new(big.Int).Mul(f.den, g.den))
}

// Div returns f / g. Panics with a rational-level message if g is zero;
// callers that need the DivisionByZero error kind check IsZero first.
func (f *Frac) Div(g *Frac) *Frac {
	return f.Mul(g.Invert())
}

// Invert returns 1/f.
func (f *Frac) Invert() *Frac {
	if f.IsZero() {
		return Infinity()
	}
	if f.IsInfinity() {
		return Zero()
	}
	return reduce(new(big.Int).Set(f.den), new(big.Int).Set(f.num))
}

// Negate returns -f.
func (f *Frac) Negate() *Frac {
	if f.IsInfinity() {
		return Infinity()
	}
	return &Frac{num: new(big.Int).Neg(f.num), den: new(big.Int).Set(f.den)}
}

// Abs returns |f|.
func (f *Frac) Abs() *Frac {
	if f.Sign() >= 0 {
		return f
	}
	return f.Negate()
}

// Sign returns -1, 0, or 1.
func (f *Frac) Sign() int { return f.num.Sign() }

// IsZero reports whether f == 0.
func (f *Frac) IsZero() bool { return !f.IsInfinity() && f.num.Sign() == 0 }

// IsOne reports whether f == 1 exactly.
func (f *Frac) IsOne() bool {
	return !f.IsInfinity() && f.num.Cmp(f.den) == 0
}

// IsInteger reports whether f has denominator 1.
func (f *Frac) IsInteger() bool {
	return !f.IsInfinity() && f.den.Cmp(big.NewInt(1)) == 0
}

// Equals reports exact equality.
func (f *Frac) Equals(g *Frac) bool {
	if f.IsInfinity() != g.IsInfinity() {
		return false
	}
	return f.num.Cmp(g.num) == 0 && f.den.Cmp(g.den) == 0
}

// Cmp returns -1, 0, or 1 as f is less than, equal to, or greater than g.
// Both operands must be finite.
func (f *Frac) Cmp(g *Frac) int {
	lhs := new(big.Int).Mul(f.num, g.den)
	rhs := new(big.Int).Mul(g.num, f.den)
	return lhs.Cmp(rhs)
}

// LessThan and GreaterThan are numeric-only convenience comparisons.
func (f *Frac) LessThan(g *Frac) bool    { return f.Cmp(g) < 0 }
func (f *Frac) GreaterThan(g *Frac) bool { return f.Cmp(g) > 0 }

// Clone returns a deep copy.
func (f *Frac) Clone() *Frac {
	return &Frac{num: new(big.Int).Set(f.num), den: new(big.Int).Set(f.den)}
}

// String renders f in a canonical "n" or "n/d" form.
func (f *Frac) String() string {
	if f.IsInfinity() {
		if f.num.Sign() < 0 {
			return "-Infinity"
		}
		return "Infinity"
	}
	if f.IsInteger() {
		return f.num.String()
	}
	return f.num.String() + "/" + f.den.String()
}

// Decimal renders f as a decimal string truncated/rounded to prec digits
// after the point. prec <= 0 yields an integer-rounded string.
func (f *Frac) Decimal(prec int) string {
	if f.IsInfinity() {
		return f.String()
	}
	if prec <= 0 {
		q := new(big.Int)
		q.Quo(f.num, f.den)
		return q.String()
	}
	neg := f.num.Sign() < 0
	num := new(big.Int).Abs(f.num)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(prec)), nil)
	scaled := new(big.Int).Mul(num, scale)
	// round to nearest
	q, r := new(big.Int).QuoRem(scaled, f.den, new(big.Int))
	twice := new(big.Int).Lsh(r, 1)
	if twice.CmpAbs(f.den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	s := q.String()
	for len(s) <= prec {
		s = "0" + s
	}
	intPart, fracPart := s[:len(s)-prec], s[len(s)-prec:]
	out := intPart + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// Sqrt returns (root, true) when f is a perfect square of a rational,
// i.e. both numerator and denominator are perfect squares, and false
// otherwise. Negative f never has a rational square root.
func (f *Frac) Sqrt() (*Frac, bool) {
	if f.Sign() < 0 || f.IsInfinity() {
		return nil, false
	}
	n, okN := isqrt(f.num)
	d, okD := isqrt(f.den)
	if !okN || !okD {
		return nil, false
	}
	return reduce(n, d), true
}

func isqrt(n *big.Int) (*big.Int, bool) {
	if n.Sign() == 0 {
		return big.NewInt(0), true
	}
	root := new(big.Int).Sqrt(n)
	check := new(big.Int).Mul(root, root)
	if check.Cmp(n) != 0 {
		return nil, false
	}
	return root, true
}
