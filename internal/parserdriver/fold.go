package parserdriver

import (
	"github.com/symcore/symcore/internal/kernel"
	"github.com/symcore/symcore/internal/rational"
	"github.com/symcore/symcore/internal/term"
)

// FoldFunctions walks t bottom-up and re-invokes funcs.Call on every FN
// node it finds, recombining each fold through the arithmetic kernel so
// the result stays canonical. A Term can carry an unreduced FN wrapper
// because the function's Call implementation only folds for certain
// argument shapes (BuiltinFunctions' abs/sign fold a numeric argument but
// leave a symbolic one as an FN node); FoldFunctions gives such a node a
// second chance once its arguments have themselves been folded.
//
// It recurses into CP, PL, and CB children and FN arguments. It does not
// descend into an EX term's wrapped base, since that base is not itself
// reachable as a distinct Term without the kernel's internal demotion
// logic.
func FoldFunctions(t *term.Term, funcs FunctionProvider) (*term.Term, error) {
	if t == nil || funcs == nil {
		return t.Clone(), nil
	}
	switch t.Group {
	case term.FN:
		return foldFunctionCall(t, funcs)
	case term.CP, term.PL, term.CB:
		return foldComposite(t, funcs)
	default:
		return t.Clone(), nil
	}
}

func foldFunctionCall(t *term.Term, funcs FunctionProvider) (*term.Term, error) {
	args := make([]*term.Term, len(t.Args))
	for i, a := range t.Args {
		v, err := FoldFunctions(a, funcs)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	folded, err := funcs.Call(t.FName, args)
	if err != nil {
		return nil, err
	}
	return scaleMultiplier(folded, t.Multiplier), nil
}

// scaleMultiplier folds factor into t's own multiplier directly, the way
// pow.go rescales a cloned term rather than routing a bare-number product
// through the kernel's general multiply dispatch.
func scaleMultiplier(t *term.Term, factor *rational.Frac) *term.Term {
	if factor.IsOne() {
		return t
	}
	t.Multiplier = t.Multiplier.Mul(factor)
	return t
}

func foldComposite(t *term.Term, funcs FunctionProvider) (*term.Term, error) {
	combine := kernel.Add
	if t.Group == term.CB {
		combine = kernel.Multiply
	}
	var result *term.Term
	for _, c := range t.Children {
		folded, err := FoldFunctions(c, funcs)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = folded
			continue
		}
		result = combine(result, folded)
	}
	if result == nil {
		return t.Clone(), nil
	}
	return scaleMultiplier(result, t.Multiplier), nil
}
