package symcore

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// corpus is a representative sweep of expressions exercising every
// canonical-text shape the engine can produce: like-term combination,
// power distribution, sqrt folding and non-folding, binomial
// expansion, negative coefficients, and nested function calls.
var corpus = []string{
	"2x + 3x",
	"x - x",
	"2*(x+1)",
	"(x+1)^2",
	"sqrt(8)",
	"sqrt(9)",
	"1/(1/x)",
	"-x^2",
	"0*x + y",
	"sin(x)+1",
	"x*y*x",
	"2^3^2",
	"abs(-3)",
}

func TestCanonicalTextSnapshot(t *testing.T) {
	for _, expr := range corpus {
		got, err := Parse(expr)
		if err != nil {
			t.Fatalf("Parse(%q): %v", expr, err)
		}
		snaps.MatchSnapshot(t, expr, got.FullText())
	}
}
