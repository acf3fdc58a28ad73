package tokenizer

import "github.com/symcore/symcore/internal/errors"

// NodeKind partitions the operator-tree nodes the tree-construction
// pass produces.
type NodeKind int

const (
	NodeLeaf NodeKind = iota
	NodeOperator
	NodeFunction
)

// Node is one vertex of the operator tree consumed by the parser
// driver. Leaves carry raw VARIABLE_OR_LITERAL text (a number or a
// name, disambiguated later by the driver); operator nodes carry
// their OperatorDescriptor and one (prefix/postfix) or two (binary)
// children; function nodes carry one child per argument.
type Node struct {
	Kind     NodeKind
	Value    string
	Op       *OperatorDescriptor
	Column   int
	Children []*Node
	// Unary marks an operator node instance applied as a prefix
	// operator (one operand), distinct from descriptors like "-"
	// that are registered as both a unary prefix and a binary
	// operator.
	Unary bool
}

// BuildTree walks scope's token list with the standard operator-
// precedence algorithm (a value stack and an operator stack, popping
// the operator stack whenever the next operator does not bind more
// tightly than the one on top) to produce a single Node, honoring
// a work-stack algorithm: operands push a leaf, prefix/postfix
// operators pop one operand, binary operators pop two.
func BuildTree(scope *Scope) (*Node, error) {
	groups, err := splitArgs(scope)
	if err != nil {
		return nil, err
	}
	if len(groups) != 1 {
		return nil, errors.NewParityError(errors.Position{Line: 1, Column: scope.Column},
			"", "expected a single expression, found a comma-separated list")
	}
	return buildExpr(groups[0])
}

// splitArgs partitions scope's top-level tokens at Separator tokens,
// which only ever appear inside a function's argument scope.
func splitArgs(scope *Scope) ([][]*Token, error) {
	var groups [][]*Token
	var cur []*Token
	for _, tok := range scope.Tokens {
		if tok.Kind == Separator {
			groups = append(groups, cur)
			cur = nil
			continue
		}
		cur = append(cur, tok)
	}
	groups = append(groups, cur)
	if !scope.IsArgs && len(groups) > 1 {
		return nil, errors.NewParityError(errors.Position{Line: 1, Column: scope.Column},
			"", "unexpected comma outside a function argument list")
	}
	return groups, nil
}

type treeBuilder struct {
	values []*Node
	ops    []*Node
}

func (b *treeBuilder) pushValue(n *Node) { b.values = append(b.values, n) }

func (b *treeBuilder) popValue() *Node {
	n := b.values[len(b.values)-1]
	b.values = b.values[:len(b.values)-1]
	return n
}

func (b *treeBuilder) reduceOnce() {
	op := b.ops[len(b.ops)-1]
	b.ops = b.ops[:len(b.ops)-1]
	switch {
	case op.Unary, op.Op.Postfix && !op.Op.Binary:
		arg := b.popValue()
		op.Children = []*Node{arg}
	default:
		right := b.popValue()
		left := b.popValue()
		op.Children = []*Node{left, right}
	}
	b.pushValue(op)
}

func (b *treeBuilder) bindsAtLeastAsTightAsTop(desc *OperatorDescriptor) bool {
	if len(b.ops) == 0 {
		return false
	}
	top := b.ops[len(b.ops)-1].Op
	if top.Precedence > desc.Precedence {
		return true
	}
	if top.Precedence == desc.Precedence && desc.Assoc == LeftAssoc {
		return true
	}
	return false
}

// buildExpr runs precedence-climbing over one comma-free token group,
// dereferencing leaves/groups/functions into Nodes as it goes.
func buildExpr(tokens []*Token) (*Node, error) {
	b := &treeBuilder{}
	expectOperand := true

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.Kind {
		case VariableOrLiteral:
			b.pushValue(&Node{Kind: NodeLeaf, Value: tok.Value, Column: tok.Column})
			expectOperand = false
		case UnitToken:
			b.pushValue(&Node{Kind: NodeLeaf, Value: tok.Value, Column: tok.Column})
			expectOperand = false
		case GroupToken:
			child, err := BuildTree(tok.Nested)
			if err != nil {
				return nil, err
			}
			b.pushValue(child)
			expectOperand = false
		case FunctionToken:
			argGroups, err := splitArgs(tok.Nested)
			if err != nil {
				return nil, err
			}
			fn := &Node{Kind: NodeFunction, Value: tok.Value, Column: tok.Column}
			for _, g := range argGroups {
				arg, err := buildExpr(g)
				if err != nil {
					return nil, err
				}
				fn.Children = append(fn.Children, arg)
			}
			b.pushValue(fn)
			expectOperand = false
		case OperatorToken:
			desc := tok.Op
			isPrefix := expectOperand && desc.Prefix
			if isPrefix {
				node := &Node{Kind: NodeOperator, Value: tok.Value, Op: desc, Column: tok.Column, Unary: true}
				b.ops = append(b.ops, node)
				continue
			}
			for b.bindsAtLeastAsTightAsTop(desc) {
				b.reduceOnce()
			}
			node := &Node{Kind: NodeOperator, Value: tok.Value, Op: desc, Column: tok.Column}
			b.ops = append(b.ops, node)
			expectOperand = true
		}
	}
	for len(b.ops) > 0 {
		b.reduceOnce()
	}
	if len(b.values) != 1 {
		col := 1
		if len(tokens) > 0 {
			col = tokens[0].Column
		}
		return nil, errors.NewParityError(errors.Position{Line: 1, Column: col}, "", "malformed expression")
	}
	return b.values[0], nil
}
