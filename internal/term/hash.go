package term

import (
	"math/big"
	"strings"
)

func bigOne() *big.Int { return big.NewInt(1) }

// functionHash computes the FN value hash: fname(arg_text_csv).
func functionHash(fname string, args []*Term) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.CanonicalText()
	}
	return fname + "(" + strings.Join(parts, ",") + ")"
}

// CanonicalText renders t's canonical text form, excluding its own
// top-level multiplier, for use in hashing (base/content hash) and as the
// minimal internal text representation the kernel needs for round-trip
// and hashing purposes. It is not a pretty printer.
func (t *Term) CanonicalText() string {
	var sb strings.Builder
	t.writeBase(&sb)
	if !t.IsExponentTerm() {
		p := t.Power()
		if !p.IsOne() {
			sb.WriteString("^")
			sb.WriteString(p.String())
		}
	} else {
		sb.WriteString("^")
		sb.WriteString(t.powerTerm.CanonicalText())
	}
	return sb.String()
}

// writeBase writes the identity part of t (no exponent, no multiplier).
func (t *Term) writeBase(sb *strings.Builder) {
	switch t.Group {
	case N:
		sb.WriteString(t.Multiplier.String())
	case S, P:
		sb.WriteString(t.Value)
	case FN:
		sb.WriteString(t.FName)
		sb.WriteString("(")
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(a.FullText())
		}
		sb.WriteString(")")
	case EX:
		// An EX term keeps every field of the group it was promoted from
		// (Value, Children, FName/Args); only the Group tag and power
		// changed. Render its identity by borrowing that group briefly.
		if t.PreviousGroup != nil {
			saved := t.Group
			t.Group = *t.PreviousGroup
			t.writeBase(sb)
			t.Group = saved
			return
		}
		sb.WriteString(t.Value)
	case CP, PL:
		sb.WriteString("(")
		keys := t.sortedKeys()
		for i, k := range keys {
			if i > 0 {
				sb.WriteString("+")
			}
			sb.WriteString(t.Children[k].FullText())
		}
		sb.WriteString(")")
	case CB:
		sb.WriteString("(")
		keys := t.sortedKeys()
		for i, k := range keys {
			if i > 0 {
				sb.WriteString("*")
			}
			sb.WriteString(t.Children[k].FullText())
		}
		sb.WriteString(")")
	}
}

// FullText renders t including its top-level multiplier; this is the
// canonical internal text used for content hashing and for the CP/CB
// key-of-children computations.
func (t *Term) FullText() string {
	body := t.CanonicalText()
	if t.Multiplier.IsOne() {
		return body
	}
	return t.Multiplier.String() + "*" + body
}

// BaseHash is the key used when inserting t into a CB (product) parent:
// the canonical text with power and multiplier excluded, so x^2 and x^3
// collide as the same base.
func (t *Term) BaseHash() string {
	var sb strings.Builder
	t.writeBase(&sb)
	return sb.String()
}

// ContentHash is the key used when inserting t into a CP (sum) parent:
// the canonical text including power but excluding multiplier, so 3x and
// 5x collide and their coefficients add.
func (t *Term) ContentHash() string {
	return t.CanonicalText()
}

// PowerKey is the key used when inserting t into a PL parent: the
// stringified power.
func (t *Term) PowerKey() string {
	if t.IsExponentTerm() {
		return t.powerTerm.CanonicalText()
	}
	return t.Power().String()
}

// UpdateHash recomputes Value for composite/FN groups from their current
// children; it is a no-op for N/S/P/EX which carry their identity
// directly.
func (t *Term) UpdateHash() {
	switch t.Group {
	case FN:
		t.Value = functionHash(t.FName, t.Args)
	case CP, CB, PL:
		t.Value = t.BaseHash()
	}
}
