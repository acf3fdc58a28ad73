package rational

import "testing"

func TestReduction(t *testing.T) {
	f := New(4, 8)
	if f.String() != "1/2" {
		t.Errorf("New(4,8) = %s, want 1/2", f.String())
	}
}

func TestSignOnNumerator(t *testing.T) {
	f := New(3, -4)
	if f.Sign() != -1 || f.Den().Sign() != 1 {
		t.Errorf("New(3,-4) = %s, sign should live on num", f.String())
	}
}

func TestAddSubMulDiv(t *testing.T) {
	a := New(1, 2)
	b := New(1, 3)
	if got := a.Add(b).String(); got != "5/6" {
		t.Errorf("1/2+1/3 = %s, want 5/6", got)
	}
	if got := a.Sub(b).String(); got != "1/6" {
		t.Errorf("1/2-1/3 = %s, want 1/6", got)
	}
	if got := a.Mul(b).String(); got != "1/6" {
		t.Errorf("1/2*1/3 = %s, want 1/6", got)
	}
	if got := a.Div(b).String(); got != "3/2" {
		t.Errorf("1/2 / 1/3 = %s, want 3/2", got)
	}
}

func TestInvertZero(t *testing.T) {
	if got := Zero().Invert(); !got.IsInfinity() {
		t.Errorf("Invert(0) = %s, want Infinity", got.String())
	}
}

func TestFromDecimal(t *testing.T) {
	cases := map[string]string{
		"1.25":  "5/4",
		"-0.5":  "-1/2",
		"2":     "2",
		"0.001": "1/1000",
	}
	for in, want := range cases {
		f, err := FromDecimal(in)
		if err != nil {
			t.Fatalf("FromDecimal(%q): %v", in, err)
		}
		if f.String() != want {
			t.Errorf("FromDecimal(%q) = %s, want %s", in, f.String(), want)
		}
	}
}

func TestEqualsAndCmp(t *testing.T) {
	if !New(2, 4).Equals(New(1, 2)) {
		t.Error("2/4 should equal 1/2")
	}
	if !New(1, 3).LessThan(New(1, 2)) {
		t.Error("1/3 should be less than 1/2")
	}
	if !New(1, 2).GreaterThan(New(1, 3)) {
		t.Error("1/2 should be greater than 1/3")
	}
}

func TestIsIntegerIsOne(t *testing.T) {
	if !NewInt(4).IsInteger() {
		t.Error("4 should be integer")
	}
	if New(1, 2).IsInteger() {
		t.Error("1/2 should not be integer")
	}
	if !One().IsOne() {
		t.Error("1 should be one")
	}
}

func TestSqrt(t *testing.T) {
	r, ok := New(4, 9).Sqrt()
	if !ok || r.String() != "2/3" {
		t.Errorf("Sqrt(4/9) = %v, %v, want 2/3, true", r, ok)
	}
	if _, ok := New(2, 1).Sqrt(); ok {
		t.Error("Sqrt(2) should not be rational")
	}
}

func TestDecimal(t *testing.T) {
	f := New(1, 3)
	if got := f.Decimal(4); got != "0.3333" {
		t.Errorf("1/3 to 4 places = %s, want 0.3333", got)
	}
	if got := NewInt(-5).Decimal(2); got != "-5.00" {
		t.Errorf("-5 to 2 places = %s, want -5.00", got)
	}
}

func TestCloneIndependence(t *testing.T) {
	a := New(1, 2)
	b := a.Clone()
	if !a.Equals(b) {
		t.Error("clone should equal original")
	}
}
