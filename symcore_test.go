package symcore

import (
	"testing"

	"github.com/symcore/symcore/internal/term"
)

func mustParse(t *testing.T, expr string) *Term {
	t.Helper()
	term, err := Parse(expr)
	if err != nil {
		t.Fatalf("Parse(%q): %v", expr, err)
	}
	return term
}

func TestParseCombinesLikeTerms(t *testing.T) {
	got := mustParse(t, "2x + 3x")
	if got.FullText() != "5*x" {
		t.Fatalf("Parse(2x + 3x).FullText() = %q, want 5*x", got.FullText())
	}
}

func TestParseSqrtPerfectSquare(t *testing.T) {
	got := mustParse(t, "sqrt(4)")
	if got.FullText() != "2" {
		t.Fatalf("Parse(sqrt(4)).FullText() = %q, want 2", got.FullText())
	}
}

func TestParseSqrtNonPerfectSquare(t *testing.T) {
	got := mustParse(t, "sqrt(8)")
	if got.FullText() != "2*sqrt(2)" {
		t.Fatalf("Parse(sqrt(8)).FullText() = %q, want 2*sqrt(2)", got.FullText())
	}
}

func TestParseDoubleInversionCancels(t *testing.T) {
	got := mustParse(t, "1/(1/x)")
	if got.FullText() != "x" {
		t.Fatalf("Parse(1/(1/x)).FullText() = %q, want x", got.FullText())
	}
}

func TestParseZeroMultiplierAbsorbs(t *testing.T) {
	got := mustParse(t, "0*x + y")
	if got.FullText() != "y" {
		t.Fatalf("Parse(0*x + y).FullText() = %q, want y", got.FullText())
	}
}

func TestParseWithSubstitution(t *testing.T) {
	got, err := Parse("x+1", Substitutions{"x": "2"})
	if err != nil {
		t.Fatalf("Parse with substitution: %v", err)
	}
	if got.FullText() != "3" {
		t.Fatalf("Parse(x+1, {x: 2}).FullText() = %q, want 3", got.FullText())
	}
}

func TestParseWithTermSubstitution(t *testing.T) {
	got, err := Parse("x*x", Substitutions{"x": NewNumber(3)})
	if err != nil {
		t.Fatalf("Parse with term substitution: %v", err)
	}
	if got.FullText() != "9" {
		t.Fatalf("Parse(x*x, {x: 3}).FullText() = %q, want 9", got.FullText())
	}
}

func TestParseDivisionByZeroErrors(t *testing.T) {
	_, err := Parse("1/0")
	if err == nil {
		t.Fatal("Parse(1/0) should return an error")
	}
}

func TestParseSpaceScopeMatchesParens(t *testing.T) {
	withParens := mustParse(t, "sin(x)+1")
	withSpace := mustParse(t, "sin x + 1")
	if withParens.FullText() != withSpace.FullText() {
		t.Fatalf("sin(x)+1 and sin x + 1 should parse identically, got %q vs %q",
			withParens.FullText(), withSpace.FullText())
	}
}

func TestEngineWithCustomPreprocessor(t *testing.T) {
	e := NewEngine()
	if err := e.AddPreprocessor("dollar-to-x", func(s string) string {
		out := make([]rune, 0, len(s))
		for _, r := range s {
			if r == '$' {
				out = append(out, 'x')
				continue
			}
			out = append(out, r)
		}
		return string(out)
	}, 0); err != nil {
		t.Fatalf("AddPreprocessor: %v", err)
	}
	got, err := e.Parse("$+1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !got.Contains("x") {
		t.Fatalf("expected the custom preprocessor to rewrite $ to x, got %q", got.FullText())
	}
}

func TestEvaluateFoldsResidualFunctionCall(t *testing.T) {
	// abs(-3) built directly as an unfolded FN node, as might arrive
	// from a Term assembled by hand rather than through Parse, gets
	// folded once Evaluate re-attempts the call.
	unfolded := term.NewFunction("abs", NewNumber(-3))
	got, err := Evaluate(unfolded)
	if err != nil {
		t.Fatalf("Evaluate(abs(-3)): %v", err)
	}
	if got.FullText() != "3" {
		t.Fatalf("Evaluate(abs(-3)) = %q, want 3", got.FullText())
	}
}

func TestEvaluateLeavesUnfoldableCallIntactButCloned(t *testing.T) {
	unfolded := mustParse(t, "abs(x)")
	got, err := Evaluate(unfolded)
	if err != nil {
		t.Fatalf("Evaluate(abs(x)): %v", err)
	}
	if got.FullText() != unfolded.FullText() {
		t.Fatalf("Evaluate(abs(x)) = %q, want unchanged %q", got.FullText(), unfolded.FullText())
	}
	if got == unfolded {
		t.Fatal("Evaluate should return an independent Term, not the same pointer")
	}
}

func TestVariablesEnumeratesFreeNames(t *testing.T) {
	got := mustParse(t, "x*y + x")
	names := got.Variables()
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	if !seen["x"] || !seen["y"] {
		t.Fatalf("Variables() = %v, want to contain x and y", names)
	}
}
