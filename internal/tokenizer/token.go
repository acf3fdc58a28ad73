// Package tokenizer converts an infix expression string into a nested
// token stream and, from that, an operator tree ready for the parser
// driver to walk. It disambiguates implicit multiplication, unary
// operators, function application, and bracket scopes by hand — no
// generated lexer, no regex-only scanning for the structural pass.
package tokenizer

// Kind partitions tokens the way the scanner emits them.
type Kind int

const (
	// VariableOrLiteral is an identifier or numeric literal run.
	VariableOrLiteral Kind = iota
	// OperatorToken is a glyph resolved against an OperatorDictionary.
	OperatorToken
	// FunctionToken names a function application; its argument list
	// follows as a nested Scope on the next token.
	FunctionToken
	// UnitToken is an identifier recognized in the injected Units map.
	UnitToken
	// GroupToken is a parenthesized sub-expression with no function
	// name attached; its contents live in Nested.
	GroupToken
	// Separator marks a top-level comma inside a function's argument
	// scope; it is consumed by tree construction and never reaches a
	// Node.
	Separator
)

func (k Kind) String() string {
	switch k {
	case VariableOrLiteral:
		return "VARIABLE_OR_LITERAL"
	case OperatorToken:
		return "OPERATOR"
	case FunctionToken:
		return "FUNCTION"
	case UnitToken:
		return "UNIT"
	case GroupToken:
		return "GROUP"
	case Separator:
		return "SEPARATOR"
	default:
		return "?"
	}
}

// Token is a single lexical unit produced by the scanning pass.
type Token struct {
	Value  string
	Kind   Kind
	Column int
	Op     *OperatorDescriptor // non-nil only for OperatorToken
	Nested *Scope              // non-nil for FunctionToken's arg list and GroupToken
}

// Scope is an ordered token stream opened by a bracket or by the
// space-after-function rule, and closed by its matching bracket or a
// terminating space/operator. The tokenize pass produces a tree of
// scopes, not a flat list: nested scopes hang off FunctionToken and
// GroupToken entries via Token.Nested.
type Scope struct {
	Column int
	// Type names the bracket family that opened this scope ("" for
	// the root scope or a space-scope with no bracket).
	Type   string
	Tokens []*Token
	// IsArgs marks a scope whose top-level commas separate function
	// arguments rather than denoting a tuple/list literal.
	IsArgs bool
}
