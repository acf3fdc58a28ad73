// Package parserdriver walks the operator tree produced by the
// tokenizer and dispatches each node to the arithmetic kernel,
// producing a single canonical Term.
package parserdriver

import (
	"github.com/symcore/symcore/internal/errors"
	"github.com/symcore/symcore/internal/kernel"
	"github.com/symcore/symcore/internal/rational"
	"github.com/symcore/symcore/internal/term"
	"github.com/symcore/symcore/internal/tokenizer"
)

// Options configures one Evaluate call.
type Options struct {
	// Substitutions maps a free variable name to the Term it should
	// be replaced with before dispatch.
	Substitutions map[string]*term.Term
	// Parse2Number, when set, asks FoldFunctions to make a second pass
	// over the finished Term, re-attempting every FN node that the
	// first pass left unreduced. It never introduces floating point,
	// since FoldFunctions only recombines through the exact-rational
	// kernel.
	Parse2Number bool
}

// Evaluate walks tree post-order: operator nodes dispatch to the
// kernel function named by their descriptor, function nodes evaluate
// their arguments and call FunctionProvider.Call, and leaves resolve
// to a substituted Term, a parsed numeric literal, or a fresh symbol.
// When opts.Parse2Number is set, the finished Term is given a second,
// whole-tree fold pass via FoldFunctions before it's returned.
func Evaluate(tree *tokenizer.Node, funcs FunctionProvider, opts Options) (*term.Term, error) {
	result, err := evalNode(tree, funcs, opts)
	if err != nil {
		return nil, err
	}
	if opts.Parse2Number {
		return FoldFunctions(result, funcs)
	}
	return result, nil
}

func evalNode(tree *tokenizer.Node, funcs FunctionProvider, opts Options) (*term.Term, error) {
	switch tree.Kind {
	case tokenizer.NodeLeaf:
		return evalLeaf(tree, opts)
	case tokenizer.NodeFunction:
		args := make([]*term.Term, len(tree.Children))
		for i, c := range tree.Children {
			v, err := evalNode(c, funcs, opts)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		if funcs == nil {
			return term.NewFunction(tree.Value, args...), nil
		}
		return funcs.Call(tree.Value, args)
	case tokenizer.NodeOperator:
		return evalOperator(tree, funcs, opts)
	default:
		return nil, errors.NewKernelTypeError("unrecognized node kind in operator tree")
	}
}

func evalLeaf(n *tokenizer.Node, opts Options) (*term.Term, error) {
	if opts.Substitutions != nil {
		if sub, ok := opts.Substitutions[n.Value]; ok {
			return sub.Clone(), nil
		}
	}
	if f, err := rational.FromDecimal(n.Value); err == nil {
		return term.NewNumber(f), nil
	}
	name, err := ValidateName(n.Value, n.Column, "")
	if err != nil {
		return nil, err
	}
	return term.NewSymbol(name), nil
}

func evalOperator(n *tokenizer.Node, funcs FunctionProvider, opts Options) (*term.Term, error) {
	if n.Unary {
		operand, err := evalNode(n.Children[0], funcs, opts)
		if err != nil {
			return nil, err
		}
		switch n.Op.Func {
		case "subtract":
			return kernel.Negate(operand), nil
		default:
			return nil, errors.NewKernelTypeError("operator \"" + n.Value + "\" has no unary form")
		}
	}

	left, err := evalNode(n.Children[0], funcs, opts)
	if err != nil {
		return nil, err
	}
	right, err := evalNode(n.Children[1], funcs, opts)
	if err != nil {
		return nil, err
	}
	switch n.Op.Func {
	case "add":
		return kernel.Add(left, right), nil
	case "subtract":
		return kernel.Subtract(left, right), nil
	case "multiply":
		return kernel.Multiply(left, right), nil
	case "divide":
		return kernel.Divide(left, right)
	case "pow":
		return kernel.Pow(left, right)
	default:
		return nil, errors.NewKernelTypeError("unknown operator dispatch \"" + n.Op.Func + "\"")
	}
}
