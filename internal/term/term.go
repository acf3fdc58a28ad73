// Package term implements the canonical symbolic term type ("Symbol" in
// the specification this core is built from): a group-tagged value with an
// exact rational multiplier, a rational-or-term power, and — for the
// composite groups — a child map keyed by a per-group hash.
package term

import (
	"sort"

	"github.com/symcore/symcore/internal/rational"
)

// Group partitions terms by structural shape. It determines which fields
// of a Term are meaningful and how its children (if any) are hashed.
type Group int

const (
	N  Group = iota // pure numeric constant
	P                // numeric base raised to a non-integer rational power
	S                // symbolic atom (variable or named constant)
	EX               // term raised to another term's power
	FN               // function application
	PL               // power-list: sum of terms sharing a base, keyed by power
	CP               // composite polynomial: general sum
	CB               // combination: product of terms
)

func (g Group) String() string {
	switch g {
	case N:
		return "N"
	case P:
		return "P"
	case S:
		return "S"
	case EX:
		return "EX"
	case FN:
		return "FN"
	case PL:
		return "PL"
	case CP:
		return "CP"
	case CB:
		return "CB"
	default:
		return "?"
	}
}

// ConstHash is the sentinel value string carried by group-N terms, where
// all numeric information lives in the multiplier instead.
const ConstHash = "#"

// Term is the recursive, canonical symbolic value. Terms are conceptually
// value-typed: every mutation path in the kernel clones before mutating,
// so a Term observed by a caller never changes underneath it.
type Term struct {
	Group      Group
	Multiplier *rational.Frac
	Value      string // identity/content hash; meaning depends on Group

	// powerRat holds the exponent for every group except EX, where
	// powerTerm holds it instead. Never read both through the same path;
	// use Power()/SetPower() and IsExponentTerm().
	powerRat  *rational.Frac
	powerTerm *Term

	// FName and Args are populated only for Group == FN.
	FName string
	Args  []*Term

	// Base is the shared base of a PL (power-list) parent; nil otherwise.
	Base *Term

	// Children holds the child map for CP/PL/CB, keyed by content hash,
	// power key, or base hash respectively.
	Children map[string]*Term

	// PreviousGroup remembers the group a term had before promotion to EX,
	// so pow() can demote it back when the EX power collapses to a
	// rational.
	PreviousGroup *Group

	Imaginary  bool
	IsInfinity bool
	IsUnit     bool
}

// NewNumber builds a group-N term with the given multiplier.
func NewNumber(mult *rational.Frac) *Term {
	return &Term{Group: N, Multiplier: mult, Value: ConstHash, powerRat: rational.One()}
}

// NewInt is a convenience wrapper for NewNumber(rational.NewInt(n)).
func NewInt(n int64) *Term {
	return NewNumber(rational.NewInt(n))
}

// NewSymbol builds a group-S atom named name with unit multiplier and power.
func NewSymbol(name string) *Term {
	return &Term{Group: S, Multiplier: rational.One(), Value: name, powerRat: rational.One()}
}

// NewFunction builds an unreduced group-FN application fname(args...).
func NewFunction(fname string, args ...*Term) *Term {
	return &Term{
		Group:      FN,
		Multiplier: rational.One(),
		FName:      fname,
		Args:       args,
		powerRat:   rational.One(),
		Value:      functionHash(fname, args),
	}
}

// Power returns the exponent as a Frac, valid only when Group != EX.
func (t *Term) Power() *rational.Frac {
	if t.powerRat == nil {
		return rational.One()
	}
	return t.powerRat
}

// SetPower sets a rational exponent and clears any EX power term.
func (t *Term) SetPower(p *rational.Frac) {
	t.powerRat = p
	t.powerTerm = nil
}

// PowerTerm returns the exponent Term, valid only when Group == EX.
func (t *Term) PowerTerm() *Term { return t.powerTerm }

// SetPowerTerm installs a Term exponent, used when promoting to group EX.
func (t *Term) SetPowerTerm(p *Term) { t.powerTerm = p }

// IsExponentTerm reports whether the power is carried as a Term (EX) as
// opposed to a Frac (every other group).
func (t *Term) IsExponentTerm() bool { return t.Group == EX }

// Clone returns a deep copy: children, args, and the power/base are
// recursively cloned; the multiplier is copied by value.
func (t *Term) Clone() *Term {
	if t == nil {
		return nil
	}
	c := &Term{
		Group:      t.Group,
		Multiplier: t.Multiplier.Clone(),
		Value:      t.Value,
		FName:      t.FName,
		Imaginary:  t.Imaginary,
		IsInfinity: t.IsInfinity,
		IsUnit:     t.IsUnit,
	}
	if t.powerRat != nil {
		c.powerRat = t.powerRat.Clone()
	}
	if t.powerTerm != nil {
		c.powerTerm = t.powerTerm.Clone()
	}
	if t.PreviousGroup != nil {
		pg := *t.PreviousGroup
		c.PreviousGroup = &pg
	}
	if t.Base != nil {
		c.Base = t.Base.Clone()
	}
	if t.Args != nil {
		c.Args = make([]*Term, len(t.Args))
		for i, a := range t.Args {
			c.Args[i] = a.Clone()
		}
	}
	if t.Children != nil {
		c.Children = make(map[string]*Term, len(t.Children))
		for k, v := range t.Children {
			c.Children[k] = v.Clone()
		}
	}
	return c
}

// sortedKeys returns the children's keys in a fixed, sorted order, used for
// reproducible canonical-text emission and iteration.
func (t *Term) sortedKeys() []string {
	keys := make([]string, 0, len(t.Children))
	for k := range t.Children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equals implements structural equality: value, group, power, and
// multiplier must coincide, and children maps must agree key-wise.
func (t *Term) Equals(o *Term) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Group != o.Group {
		return false
	}
	if !t.Multiplier.Equals(o.Multiplier) {
		return false
	}
	if t.IsExponentTerm() {
		if !t.powerTerm.Equals(o.powerTerm) {
			return false
		}
	} else if !t.Power().Equals(o.Power()) {
		return false
	}
	switch t.Group {
	case FN:
		if t.FName != o.FName || len(t.Args) != len(o.Args) {
			return false
		}
		for i := range t.Args {
			if !t.Args[i].Equals(o.Args[i]) {
				return false
			}
		}
		return true
	case CP, CB, PL:
		if len(t.Children) != len(o.Children) {
			return false
		}
		for k, v := range t.Children {
			ov, ok := o.Children[k]
			if !ok || !v.Equals(ov) {
				return false
			}
		}
		if t.Group == PL {
			return t.Base.Equals(o.Base)
		}
		return true
	default:
		return t.Value == o.Value
	}
}

// IsConstant reports whether t contains no free symbols or functions.
func (t *Term) IsConstant() bool {
	switch t.Group {
	case N, P:
		return true
	case S:
		return false
	case FN:
		for _, a := range t.Args {
			if !a.IsConstant() {
				return false
			}
		}
		return true
	case EX:
		return t.PreviousGroupIsConstant() && t.powerTerm.IsConstant()
	case CP, CB, PL:
		for _, c := range t.Children {
			if !c.IsConstant() {
				return false
			}
		}
		if t.Group == PL {
			return t.Base.IsConstant()
		}
		return true
	}
	return false
}

// PreviousGroupIsConstant is a helper for EX.IsConstant: an EX term's base
// identity (aside from its term-power) is constant unless it wraps a
// symbol/composite containing one.
func (t *Term) PreviousGroupIsConstant() bool {
	if t.PreviousGroup == nil {
		return true
	}
	return *t.PreviousGroup == N || *t.PreviousGroup == P
}

// IsImaginary reports whether t carries the imaginary flag, directly or
// (for composites) on any child.
func (t *Term) IsImaginary() bool {
	if t.Imaginary {
		return true
	}
	switch t.Group {
	case CP, CB, PL:
		for _, c := range t.Children {
			if c.IsImaginary() {
				return true
			}
		}
	case FN:
		for _, a := range t.Args {
			if a.IsImaginary() {
				return true
			}
		}
	}
	return false
}

// IsInteger reports whether t is a numeric constant with an integer value.
func (t *Term) IsInteger() bool {
	return t.Group == N && t.Multiplier.IsInteger()
}

// IsPoly reports whether t is built purely from +, -, *, and non-negative
// integer powers (no functions, no fractional/negative exponents, no EX).
func (t *Term) IsPoly() bool {
	switch t.Group {
	case N, S:
		return true
	case P, FN, EX:
		return false
	case CP, CB, PL:
		for _, c := range t.Children {
			if !c.IsPoly() {
				return false
			}
		}
		if t.Group == PL {
			return t.Base.IsPoly()
		}
		return true
	}
	return false
}

// IsLinear reports whether t is a polynomial of degree <= 1 in its
// variables: a sum of symbols/constants or a single symbol times a
// constant, with no higher powers and no products of two symbols.
func (t *Term) IsLinear() bool {
	if !t.IsPoly() {
		return false
	}
	switch t.Group {
	case N, S:
		return true
	case CB:
		symCount := 0
		for _, c := range t.Children {
			if c.Group == N {
				continue
			}
			if !c.Power().Equals(rational.One()) {
				return false
			}
			symCount++
		}
		return symCount <= 1
	case CP, PL:
		for _, c := range t.Children {
			if !c.IsLinear() {
				return false
			}
		}
		return true
	}
	return true
}

// Contains reports whether the symbol named name occurs anywhere in t.
func (t *Term) Contains(name string) bool {
	switch t.Group {
	case S:
		return t.Value == name
	case FN:
		for _, a := range t.Args {
			if a.Contains(name) {
				return true
			}
		}
		return false
	case EX:
		return t.powerTerm.Contains(name)
	case CP, CB, PL:
		for _, c := range t.Children {
			if c.Contains(name) {
				return true
			}
		}
		if t.Group == PL && t.Base.Contains(name) {
			return true
		}
		return false
	}
	return false
}

// Variables returns the alphabetically sorted list of distinct symbol
// names occurring in t.
func (t *Term) Variables() []string {
	set := map[string]bool{}
	t.collectVariables(set)
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (t *Term) collectVariables(set map[string]bool) {
	switch t.Group {
	case S:
		set[t.Value] = true
	case FN:
		for _, a := range t.Args {
			a.collectVariables(set)
		}
	case EX:
		t.powerTerm.collectVariables(set)
	case CP, CB, PL:
		for _, c := range t.Children {
			c.collectVariables(set)
		}
		if t.Group == PL {
			t.Base.collectVariables(set)
		}
	}
}

// Sign returns the sign of a numeric term's multiplier: -1, 0, or 1.
// Only meaningful for constant terms.
func (t *Term) Sign() int { return t.Multiplier.Sign() }

// LessThan and GreaterThan compare two numeric (group-N) terms.
func (t *Term) LessThan(o *Term) bool    { return t.Multiplier.LessThan(o.Multiplier) }
func (t *Term) GreaterThan(o *Term) bool { return t.Multiplier.GreaterThan(o.Multiplier) }

// GetNum and GetDenom expose the multiplier's numerator/denominator.
func (t *Term) GetNum() *Term {
	return NewNumber(rational.NewBig(t.Multiplier.Num(), bigOne()))
}
func (t *Term) GetDenom() *Term {
	return NewNumber(rational.NewBig(t.Multiplier.Den(), bigOne()))
}
