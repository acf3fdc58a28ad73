package parserdriver

import (
	"fmt"

	"github.com/symcore/symcore/internal/kernel"
	"github.com/symcore/symcore/internal/rational"
	"github.com/symcore/symcore/internal/term"
)

// FunctionDescriptor is the minimal metadata the driver needs about a
// registered function: its name (for error messages) and arity (-1
// means variadic).
type FunctionDescriptor struct {
	Name  string
	Arity int
}

// FunctionProvider answers what the tokenizer and driver both need to
// know about function names: whether a name is a function at all
// (IsFunction, consulted by the tokenizer to disambiguate `x(y)` from
// `sin(x)`), its descriptor, and how to evaluate a call.
type FunctionProvider interface {
	IsFunction(name string) bool
	GetFunctionDescriptor(name string) (FunctionDescriptor, bool)
	Call(name string, args []*term.Term) (*term.Term, error)
}

type fnEntry struct {
	desc FunctionDescriptor
	call func([]*term.Term) (*term.Term, error)
}

// BuiltinFunctions is a small, extensible FunctionProvider seeded with
// the handful of functions the arithmetic kernel itself knows how to
// reduce (sqrt, abs, sign); anything else registered through Register
// is called the same way, and an unrecognized name simply isn't a
// function at all (IsFunction returns false), letting the tokenizer
// fall back to implicit multiplication.
type BuiltinFunctions struct {
	entries map[string]fnEntry
}

// NewBuiltinFunctions returns a provider seeded with sqrt, abs, and
// sign.
func NewBuiltinFunctions() *BuiltinFunctions {
	f := &BuiltinFunctions{entries: map[string]fnEntry{}}
	f.Register("sqrt", 1, func(args []*term.Term) (*term.Term, error) {
		return kernel.Sqrt(args[0]), nil
	})
	f.Register("abs", 1, func(args []*term.Term) (*term.Term, error) {
		x := args[0]
		if x.Group == term.N {
			return term.NewNumber(x.Multiplier.Abs()), nil
		}
		return term.NewFunction("abs", x), nil
	})
	f.Register("sign", 1, func(args []*term.Term) (*term.Term, error) {
		x := args[0]
		if x.Group == term.N {
			return term.NewNumber(rational.NewInt(int64(x.Sign()))), nil
		}
		return term.NewFunction("sign", x), nil
	})
	return f
}

// Register adds or replaces a function entry.
func (f *BuiltinFunctions) Register(name string, arity int, fn func([]*term.Term) (*term.Term, error)) {
	f.entries[name] = fnEntry{desc: FunctionDescriptor{Name: name, Arity: arity}, call: fn}
}

func (f *BuiltinFunctions) IsFunction(name string) bool {
	_, ok := f.entries[name]
	return ok
}

func (f *BuiltinFunctions) GetFunctionDescriptor(name string) (FunctionDescriptor, bool) {
	e, ok := f.entries[name]
	return e.desc, ok
}

func (f *BuiltinFunctions) Call(name string, args []*term.Term) (*term.Term, error) {
	e, ok := f.entries[name]
	if !ok {
		return term.NewFunction(name, args...), nil
	}
	if e.desc.Arity >= 0 && len(args) != e.desc.Arity {
		return nil, fmt.Errorf("%s expects %d argument(s), got %d", name, e.desc.Arity, len(args))
	}
	return e.call(args)
}
