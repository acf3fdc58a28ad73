// Package symcore is the public entry point of the symbolic
// mathematics core: parsing infix expressions into canonical Terms,
// running the normalizing arithmetic kernel directly, and observing
// Terms (equality, free variables, substitution). Internals
// (tokenizer, parser driver, kernel, settings) are not meant to be
// imported directly; this package is the supported surface.
package symcore

import (
	"fmt"

	"github.com/symcore/symcore/internal/kernel"
	"github.com/symcore/symcore/internal/opdict"
	"github.com/symcore/symcore/internal/parserdriver"
	"github.com/symcore/symcore/internal/rational"
	"github.com/symcore/symcore/internal/settings"
	"github.com/symcore/symcore/internal/term"
	"github.com/symcore/symcore/internal/tokenizer"
)

// Term is the canonical symbolic value every public operation
// consumes and returns.
type Term = term.Term

// Engine bundles the configuration a Parse/Evaluate call needs: an
// operator dictionary and bracket table, a function provider, and a
// preprocessor registry. The zero value is not usable; construct one
// with NewEngine.
type Engine struct {
	dict     *tokenizer.OperatorDictionary
	brackets *tokenizer.Brackets
	funcs    parserdriver.FunctionProvider
	registry *tokenizer.Registry
	settings *settings.Context
}

// EngineOption configures a NewEngine call.
type EngineOption func(*Engine)

// WithFunctionProvider overrides the default built-in function table.
func WithFunctionProvider(p parserdriver.FunctionProvider) EngineOption {
	return func(e *Engine) { e.funcs = p }
}

// WithOperators overrides the default operator dictionary and bracket
// table, e.g. with opdict.Load's result.
func WithOperators(dict *tokenizer.OperatorDictionary, brackets *tokenizer.Brackets) EngineOption {
	return func(e *Engine) { e.dict, e.brackets = dict, brackets }
}

// WithSettings overrides the default settings context.
func WithSettings(ctx *settings.Context) EngineOption {
	return func(e *Engine) { e.settings = ctx }
}

// NewEngine builds an Engine from the built-in operator/bracket
// tables, the built-in function provider, an empty preprocessor
// registry, and the default settings context.
func NewEngine(opts ...EngineOption) *Engine {
	dict, brackets := opdict.Default()
	e := &Engine{
		dict:     dict,
		brackets: brackets,
		funcs:    parserdriver.NewBuiltinFunctions(),
		registry: tokenizer.NewRegistry(),
		settings: settings.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// defaultEngine backs the package-level convenience functions.
var defaultEngine = NewEngine()

// AddPreprocessor registers a named, ordered rewrite hook on the
// default engine.
func AddPreprocessor(name string, fn func(string) string, order int) error {
	return defaultEngine.AddPreprocessor(name, fn, order)
}

// RemovePreprocessor unregisters a hook on the default engine.
func RemovePreprocessor(name string) { defaultEngine.RemovePreprocessor(name) }

// GetPreprocessors lists the default engine's registered hooks.
func GetPreprocessors() []tokenizer.Preprocessor { return defaultEngine.GetPreprocessors() }

func (e *Engine) AddPreprocessor(name string, fn func(string) string, order int) error {
	return e.registry.AddPreprocessor(name, fn, order)
}

func (e *Engine) RemovePreprocessor(name string) { e.registry.RemovePreprocessor(name) }

func (e *Engine) GetPreprocessors() []tokenizer.Preprocessor { return e.registry.GetPreprocessors() }

// Substitutions maps a free variable name to the Term or source
// expression it should be replaced with.
type Substitutions map[string]any

func (e *Engine) resolveSubs(subs Substitutions) (map[string]*term.Term, error) {
	if len(subs) == 0 {
		return nil, nil
	}
	out := make(map[string]*term.Term, len(subs))
	for name, v := range subs {
		switch val := v.(type) {
		case *term.Term:
			out[name] = val
		case string:
			t, err := e.Parse(val)
			if err != nil {
				return nil, err
			}
			out[name] = t
		default:
			return nil, fmt.Errorf("symcore: unsupported substitution value for %q: %T", name, v)
		}
	}
	return out, nil
}

// Parse tokenizes, preprocesses, builds the operator tree, and
// evaluates expr with subs applied.
func (e *Engine) Parse(expr string, subs ...Substitutions) (*term.Term, error) {
	var merged Substitutions
	if len(subs) > 0 {
		merged = subs[0]
	}
	resolved, err := e.resolveSubs(merged)
	if err != nil {
		return nil, err
	}

	implicitMulRe, err := e.settings.ImpliedMultiplicationRegexp()
	if err != nil {
		implicitMulRe = tokenizer.DefaultImplicitMultiplicationRegex
	}
	prepared := tokenizer.Prepare(expr, e.registry, tokenizer.Options{
		ImplicitMultiplicationRegex: implicitMulRe,
		UseMultiCharacterVars:       e.settings.UseMultiCharacterVars,
		IsFunction:                  e.funcs.IsFunction,
	})

	root, err := tokenizer.Tokenize(prepared, e.dict, e.brackets, e.funcs)
	if err != nil {
		return nil, err
	}
	tree, err := tokenizer.BuildTree(root)
	if err != nil {
		return nil, err
	}
	return parserdriver.Evaluate(tree, e.funcs, parserdriver.Options{Substitutions: resolved})
}

// Evaluate gives t a second folding pass under PARSE2NUMBER semantics:
// it walks t for any residual FN node (a function call whose Call
// implementation didn't reduce it at parse time, e.g. abs of a symbol
// that has since been substituted elsewhere) and re-attempts the call,
// recombining through the kernel. A Term with no such wrapper comes
// back an equal, independent clone.
func (e *Engine) Evaluate(t *term.Term) (*term.Term, error) {
	return parserdriver.FoldFunctions(t, e.funcs)
}

// Parse runs Engine.Parse on the default engine.
func Parse(expr string, subs ...Substitutions) (*term.Term, error) {
	return defaultEngine.Parse(expr, subs...)
}

// Evaluate runs Engine.Evaluate on the default engine.
func Evaluate(t *term.Term) (*term.Term, error) {
	return defaultEngine.Evaluate(t)
}

// Arithmetic kernel entry points, each taking and returning canonical
// Terms directly (no parsing involved).
func Add(a, b *term.Term) *term.Term             { return kernel.Add(a, b) }
func Subtract(a, b *term.Term) *term.Term        { return kernel.Subtract(a, b) }
func Multiply(a, b *term.Term) *term.Term        { return kernel.Multiply(a, b) }
func Divide(a, b *term.Term) (*term.Term, error) { return kernel.Divide(a, b) }
func Pow(a, b *term.Term) (*term.Term, error)    { return kernel.Pow(a, b) }
func Sqrt(a *term.Term) *term.Term               { return kernel.Sqrt(a) }

// NewSymbol builds a group-S atom named name.
func NewSymbol(name string) *term.Term { return term.NewSymbol(name) }

// NewNumber builds a group-N constant from an int64.
func NewNumber(n int64) *term.Term { return term.NewInt(n) }

// NewRational builds a group-N constant from a numerator/denominator pair.
func NewRational(num, den int64) *term.Term { return term.NewNumber(rational.New(num, den)) }
