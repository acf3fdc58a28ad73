package kernel

import (
	"testing"

	"github.com/symcore/symcore/internal/rational"
	"github.com/symcore/symcore/internal/term"
)

func num(n int64) *term.Term { return term.NewInt(n) }

func sym(name string) *term.Term { return term.NewSymbol(name) }

func powT(t *testing.T, base, exp *term.Term) *term.Term {
	t.Helper()
	got, err := Pow(base, exp)
	if err != nil {
		t.Fatalf("Pow(%s, %s): %v", base.FullText(), exp.FullText(), err)
	}
	return got
}

func TestAddCombinesLikeTerms(t *testing.T) {
	// 2x + 3x -> 5x
	two := num(2)
	three := num(3)
	x := sym("x")
	twoX := Multiply(two, x)
	threeX := Multiply(three, x)
	got := Add(twoX, threeX)
	want := Multiply(num(5), x)
	if !got.Equals(want) {
		t.Fatalf("2x+3x = %s, want %s", got.FullText(), want.FullText())
	}
}

func TestSubtractCancelsToZero(t *testing.T) {
	x := sym("a")
	threeA := Multiply(num(3), x)
	got := Subtract(threeA, threeA)
	if got.Group != term.N || !got.Multiplier.IsZero() {
		t.Fatalf("3a-3a = %s, want 0", got.FullText())
	}
}

func TestMultiplySumsExponents(t *testing.T) {
	x := sym("x")
	x2 := powT(t, x, num(2))
	x3 := powT(t, x, num(3))
	got := Multiply(x2, x3)
	want := powT(t, x, num(5))
	if !got.Equals(want) {
		t.Fatalf("x^2*x^3 = %s, want %s", got.FullText(), want.FullText())
	}
}

func TestPowOfProductDistributes(t *testing.T) {
	// (2x)^3 = 8x^3
	twoX := Multiply(num(2), sym("x"))
	got := powT(t, twoX, num(3))
	want := Multiply(num(8), powT(t, sym("x"), num(3)))
	if !got.Equals(want) {
		t.Fatalf("(2x)^3 = %s, want %s", got.FullText(), want.FullText())
	}
}

func TestSqrtOfPerfectSquare(t *testing.T) {
	got := Sqrt(num(4))
	if got.Group != term.N || got.Multiplier.Cmp(rational.NewInt(2)) != 0 {
		t.Fatalf("sqrt(4) = %s, want 2", got.FullText())
	}
}

func TestSqrtOfNonSquareFoldsCoefficient(t *testing.T) {
	// sqrt(8) = 2*sqrt(2)
	got := Sqrt(num(8))
	want := Multiply(num(2), Sqrt(num(2)))
	if !got.Equals(want) {
		t.Fatalf("sqrt(8) = %s, want %s", got.FullText(), want.FullText())
	}
}

func TestInvertOfInvertRoundTrips(t *testing.T) {
	x := sym("x")
	inv, err := Invert(x)
	if err != nil {
		t.Fatalf("Invert(x): %v", err)
	}
	back, err := Invert(inv)
	if err != nil {
		t.Fatalf("Invert(1/x): %v", err)
	}
	if !back.Equals(x) {
		t.Fatalf("1/(1/x) = %s, want x", back.FullText())
	}
}

func TestDivideByZeroErrors(t *testing.T) {
	_, err := Divide(sym("x"), num(0))
	if err == nil {
		t.Fatal("Divide(x, 0) should error")
	}
}

func TestFractionalPowerOfRationalBaseDistributes(t *testing.T) {
	// (1/4)^(1/2) should distribute the square root over numerator and
	// denominator rather than carrying a non-integer P value.
	quarter := term.NewNumber(rational.New(1, 4))
	half := term.NewNumber(rational.New(1, 2))
	got := powT(t, quarter, half)
	want := term.NewNumber(rational.New(1, 2))
	if !got.Equals(want) {
		t.Fatalf("(1/4)^(1/2) = %s, want %s", got.FullText(), want.FullText())
	}
}

func TestCBCancellationDemotesToOneNotZero(t *testing.T) {
	// (x*y) * 1/(x*y) -> 1: every CB child cancels away, leaving an
	// empty product, whose identity is 1, not 0.
	xy := Multiply(sym("x"), sym("y"))
	invXY, err := Invert(xy)
	if err != nil {
		t.Fatalf("Invert(x*y): %v", err)
	}
	got := Multiply(xy, invXY)
	if got.Group != term.N || !got.Multiplier.IsOne() {
		t.Fatalf("(x*y)*(1/(x*y)) = %s, want 1", got.FullText())
	}
}

func TestZeroToNegativePowerErrors(t *testing.T) {
	_, err := Pow(num(0), num(-1))
	if err == nil {
		t.Fatal("Pow(0, -1) should error")
	}
}

func TestZeroToZeroPowerIsOne(t *testing.T) {
	got := powT(t, num(0), num(0))
	if got.Group != term.N || !got.Multiplier.IsOne() {
		t.Fatalf("0^0 = %s, want 1", got.FullText())
	}
}

func TestZeroTimesXPlusYSimplifies(t *testing.T) {
	// 0*x + y -> y
	y := sym("y")
	got := Add(Multiply(num(0), sym("x")), y)
	if !got.Equals(y) {
		t.Fatalf("0*x+y = %s, want y", got.FullText())
	}
}

func TestAddIsCommutativeAtCanonicalLevel(t *testing.T) {
	a := Multiply(num(2), sym("x"))
	b := sym("y")
	ab := Add(a, b)
	ba := Add(b, a)
	if !ab.Equals(ba) {
		t.Fatalf("a+b = %s, b+a = %s, want equal", ab.FullText(), ba.FullText())
	}
}

func TestMultiplyIsCommutativeAtCanonicalLevel(t *testing.T) {
	a := sym("x")
	b := sym("y")
	ab := Multiply(a, b)
	ba := Multiply(b, a)
	if !ab.Equals(ba) {
		t.Fatalf("a*b = %s, b*a = %s, want equal", ab.FullText(), ba.FullText())
	}
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	x := sym("x")
	sum := Add(Multiply(num(2), x), sym("y"))
	clone := sum.Clone()
	clone.Multiplier = clone.Multiplier.Add(rational.One())
	if sum.Multiplier.Equals(clone.Multiplier) {
		t.Fatal("mutating a clone's multiplier should not affect the original")
	}
}

func TestCBChildrenAreAlwaysUnitMultiplier(t *testing.T) {
	got := Multiply(Multiply(num(2), sym("x")), Multiply(num(3), sym("y")))
	if got.Group != term.CB {
		t.Fatalf("expected CB, got %s", got.Group)
	}
	for _, c := range got.Children {
		if !c.Multiplier.IsOne() {
			t.Fatalf("CB child %s has non-unit multiplier %s", c.FullText(), c.Multiplier.String())
		}
	}
	if got.Multiplier.Cmp(rational.NewInt(6)) != 0 {
		t.Fatalf("CB multiplier = %s, want 6", got.Multiplier.String())
	}
}

func TestNoZeroMultiplierChildrenSurviveAdd(t *testing.T) {
	// (x+y) - x -> y, the CP must not retain a zero-multiplier x slot.
	xy := Add(sym("x"), sym("y"))
	got := Subtract(xy, sym("x"))
	if !got.Equals(sym("y")) {
		t.Fatalf("(x+y)-x = %s, want y", got.FullText())
	}
}

func TestExpandBinomialSquare(t *testing.T) {
	// (x+1)^2 = x^2 + 2x + 1
	xPlus1 := Add(sym("x"), num(1))
	got := powT(t, xPlus1, num(2))
	want := Add(Add(powT(t, sym("x"), num(2)), Multiply(num(2), sym("x"))), num(1))
	if !got.Equals(want) {
		t.Fatalf("(x+1)^2 = %s, want %s", got.FullText(), want.FullText())
	}
}

func TestVariablesEnumeratesFreeNames(t *testing.T) {
	expr := Add(Multiply(sym("x"), sym("y")), sym("z"))
	vars := expr.Variables()
	seen := map[string]bool{}
	for _, v := range vars {
		seen[v] = true
	}
	for _, want := range []string{"x", "y", "z"} {
		if !seen[want] {
			t.Fatalf("Variables() = %v, missing %s", vars, want)
		}
	}
}

func TestContentHashCollidesForLikeTerms(t *testing.T) {
	a := Multiply(num(3), sym("x"))
	b := Multiply(num(5), sym("x"))
	if a.ContentHash() != b.ContentHash() {
		t.Fatalf("3x and 5x should share a content hash, got %q vs %q", a.ContentHash(), b.ContentHash())
	}
}

func TestPowZeroExponentIsOne(t *testing.T) {
	got := powT(t, sym("x"), num(0))
	if got.Group != term.N || !got.Multiplier.IsOne() {
		t.Fatalf("x^0 = %s, want 1", got.FullText())
	}
}

func TestExponentTermDemotesOnCollapse(t *testing.T) {
	// x^(1-1) collapses to x^0 = 1 once the exponent term reduces to a
	// rational, even though Pow was driven by a term-valued exponent.
	exp := Subtract(num(1), num(1))
	got := powT(t, sym("x"), exp)
	if got.Group != term.N || !got.Multiplier.IsOne() {
		t.Fatalf("x^(1-1) = %s, want 1", got.FullText())
	}
}
