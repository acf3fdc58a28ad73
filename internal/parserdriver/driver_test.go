package parserdriver

import (
	"testing"

	"github.com/symcore/symcore/internal/opdict"
	"github.com/symcore/symcore/internal/term"
	"github.com/symcore/symcore/internal/tokenizer"
)

func evalExpr(t *testing.T, expr string, opts Options) *term.Term {
	t.Helper()
	dict, brackets := opdict.Default()
	funcs := NewBuiltinFunctions()
	prepared := tokenizer.Prepare(expr, nil, tokenizer.DefaultOptions())
	root, err := tokenizer.Tokenize(prepared, dict, brackets, funcs)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", expr, err)
	}
	tree, err := tokenizer.BuildTree(root)
	if err != nil {
		t.Fatalf("BuildTree(%q): %v", expr, err)
	}
	got, err := Evaluate(tree, funcs, opts)
	if err != nil {
		t.Fatalf("Evaluate(%q): %v", expr, err)
	}
	return got
}

func TestSubstitutionReplacesFreeVariable(t *testing.T) {
	two := term.NewInt(2)
	got := evalExpr(t, "x+1", Options{Substitutions: map[string]*term.Term{"x": two}})
	if got.FullText() != "3" {
		t.Fatalf("evaluate(x+1, {x:2}) = %q, want 3", got.FullText())
	}
}

func TestSubstitutionLeavesUnknownNamesFree(t *testing.T) {
	two := term.NewInt(2)
	got := evalExpr(t, "x+y", Options{Substitutions: map[string]*term.Term{"x": two}})
	if !got.Contains("y") {
		t.Fatalf("evaluate(x+y, {x:2}) = %q, want y to remain free", got.FullText())
	}
}

func TestSubstitutionDoesNotMutateCaller(t *testing.T) {
	two := term.NewInt(2)
	subs := map[string]*term.Term{"x": two}
	evalExpr(t, "x*x", Options{Substitutions: subs})
	if subs["x"].FullText() != "2" {
		t.Fatalf("substitution map value was mutated: %s", subs["x"].FullText())
	}
}

func TestBuiltinSqrtFunction(t *testing.T) {
	got := evalExpr(t, "sqrt(9)", Options{})
	if got.FullText() != "3" {
		t.Fatalf("evaluate(sqrt(9)) = %q, want 3", got.FullText())
	}
}

func TestFoldFunctionsRefoldsResidualNumericCall(t *testing.T) {
	// abs(-3) built directly as an unfolded FN node (bypassing Call,
	// the way a term assembled by hand or replayed from storage might
	// arrive) should fold once FoldFunctions re-attempts the call.
	unfolded := term.NewFunction("abs", term.NewInt(-3))
	got, err := FoldFunctions(unfolded, NewBuiltinFunctions())
	if err != nil {
		t.Fatalf("FoldFunctions(abs(-3)): %v", err)
	}
	if got.FullText() != "3" {
		t.Fatalf("FoldFunctions(abs(-3)) = %q, want 3", got.FullText())
	}
}

func TestFoldFunctionsLeavesUnfoldableCallIntact(t *testing.T) {
	got := evalExpr(t, "abs(x)", Options{})
	if got.Group != term.FN || got.FName != "abs" {
		t.Fatalf("evaluate(abs(x)) = %s, want an unfolded abs(x)", got.FullText())
	}
	refolded, err := FoldFunctions(got, NewBuiltinFunctions())
	if err != nil {
		t.Fatalf("FoldFunctions(abs(x)): %v", err)
	}
	if !refolded.Equals(got) {
		t.Fatalf("FoldFunctions(abs(x)) = %s, want unchanged %s", refolded.FullText(), got.FullText())
	}
}

func TestParse2NumberOptionFoldsFinishedTerm(t *testing.T) {
	// abs(x) + abs(x) combines at the FN content-hash level into a
	// multiplier-2 FN node before any fold is attempted; x stays free,
	// so Parse2Number's extra pass leaves it as 2*abs(x).
	got := evalExpr(t, "abs(x)+abs(x)", Options{Parse2Number: true})
	if got.Group != term.FN || !got.Multiplier.Equals(term.NewInt(2).Multiplier) {
		t.Fatalf("evaluate(abs(x)+abs(x)) = %s, want 2*abs(x)", got.FullText())
	}
}

func TestDivisionByZeroPropagatesError(t *testing.T) {
	dict, brackets := opdict.Default()
	funcs := NewBuiltinFunctions()
	prepared := tokenizer.Prepare("x/0", nil, tokenizer.DefaultOptions())
	root, err := tokenizer.Tokenize(prepared, dict, brackets, funcs)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	tree, err := tokenizer.BuildTree(root)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	if _, err := Evaluate(tree, funcs, Options{}); err == nil {
		t.Fatal("evaluate(x/0) should return a division-by-zero error")
	}
}
