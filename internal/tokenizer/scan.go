package tokenizer

import (
	"strings"

	"github.com/symcore/symcore/internal/errors"
)

// FunctionNamer answers whether name is a known function, so the
// scanner can tell `sin(x)` (a call) from `x(y)` (implicit
// multiplication of a variable against a parenthesized group).
type FunctionNamer interface {
	IsFunction(name string) bool
}

type bracketFrame struct {
	desc   *BracketDescriptor
	scope  *Scope
	column int
}

// scanner holds the one-pass scanning state: a
// cursor, the last-token-start position, an open-bracket stack, a
// scope stack, and the has_space flag implementing space-as-scope.
type scanner struct {
	src      []rune
	pos      int // rune cursor
	dict     *OperatorDictionary
	brackets *Brackets
	funcs    FunctionNamer
	source   string // original text, for error reporting

	bracketStack []bracketFrame
	scopeStack   []*Scope
	startBytes   map[byte]bool

	pending      strings.Builder
	pendingStart int
	hasSpace     bool
	// spaceScopeStack records the bracket-stack depth at which each
	// open space-scope (from `fn arg` with no parens) began, so it
	// can be closed independently of real brackets.
	spaceScopeStack []int
}

// Tokenize runs the scanning pass over input (already preprocessed)
// and returns the root Scope, or a ParityError on bracket mismatch.
func Tokenize(input string, dict *OperatorDictionary, brackets *Brackets, funcs FunctionNamer) (*Scope, error) {
	s := &scanner{
		src:        []rune(input),
		dict:       dict,
		brackets:   brackets,
		funcs:      funcs,
		source:     input,
		startBytes: dict.StartBytes(),
	}
	root := &Scope{Column: 1}
	s.scopeStack = []*Scope{root}
	if err := s.run(); err != nil {
		return nil, err
	}
	if len(s.bracketStack) > 0 {
		top := s.bracketStack[len(s.bracketStack)-1]
		return nil, errors.NewParityError(errors.Position{Line: 1, Column: len(s.src) + 1}, s.source,
			"unclosed bracket opened at column "+itoa(top.column))
	}
	return root, nil
}

func (s *scanner) top() *Scope { return s.scopeStack[len(s.scopeStack)-1] }

func (s *scanner) isOperatorStart(r rune) bool {
	return r < 128 && s.startBytes[byte(r)]
}

func (s *scanner) run() error {
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		switch {
		case r == ' ' || r == '\t':
			s.handleSpace()
			s.pos++
		case r == ',':
			s.flushPending()
			s.closeSpaceScope()
			s.top().Tokens = append(s.top().Tokens, &Token{Value: ",", Kind: Separator, Column: s.col()})
			s.pos++
		case s.isBracket(r):
			if err := s.handleBracket(r); err != nil {
				return err
			}
		case s.isOperatorStart(r):
			s.handleOperatorRun()
		default:
			if s.pending.Len() == 0 {
				s.pendingStart = s.col()
			}
			s.pending.WriteRune(r)
			s.pos++
		}
	}
	s.flushPending()
	s.closeSpaceScope()
	return nil
}

func (s *scanner) col() int { return s.pos + 1 }

func (s *scanner) isBracket(r rune) bool {
	_, ok := s.brackets.Lookup(string(r))
	return ok
}

// handleSpace implements the space-as-scope rule: a space terminates
// the pending identifier; if that identifier names a function, a
// space-scope opens (has_space = true) to collect the following
// single operand as its argument; a later space or operator at the
// same bracket depth closes the most recently opened space-scope.
func (s *scanner) handleSpace() {
	if s.pending.Len() > 0 {
		name := s.pending.String()
		col := s.pendingStart
		s.pending.Reset()
		if s.funcs != nil && s.funcs.IsFunction(name) {
			fnTok := &Token{Value: name, Kind: FunctionToken, Column: col}
			s.top().Tokens = append(s.top().Tokens, fnTok)
			argScope := &Scope{Column: s.col(), Type: "space", IsArgs: true}
			fnTok.Nested = argScope
			s.scopeStack = append(s.scopeStack, argScope)
			s.spaceScopeStack = append(s.spaceScopeStack, len(s.bracketStack))
			s.hasSpace = true
			return
		}
		s.top().Tokens = append(s.top().Tokens, &Token{Value: name, Kind: VariableOrLiteral, Column: col})
	}
	// A second consecutive space-terminating event (no pending ident)
	// closes the innermost space-scope if one is open at this depth.
	s.closeSpaceScopeIfIdle()
}

func (s *scanner) closeSpaceScopeIfIdle() {
	if len(s.spaceScopeStack) == 0 {
		return
	}
	if s.spaceScopeStack[len(s.spaceScopeStack)-1] == len(s.bracketStack) && len(s.top().Tokens) > 0 {
		s.closeSpaceScope()
	}
}

// closeSpaceScope pops the innermost open space-scope, if any, once
// it has collected exactly one operand.
func (s *scanner) closeSpaceScope() {
	if len(s.spaceScopeStack) == 0 {
		return
	}
	if s.spaceScopeStack[len(s.spaceScopeStack)-1] != len(s.bracketStack) {
		return
	}
	if len(s.top().Tokens) == 0 {
		return
	}
	s.spaceScopeStack = s.spaceScopeStack[:len(s.spaceScopeStack)-1]
	s.scopeStack = s.scopeStack[:len(s.scopeStack)-1]
	s.hasSpace = len(s.spaceScopeStack) > 0
}

func (s *scanner) flushPending() {
	if s.pending.Len() == 0 {
		return
	}
	name := s.pending.String()
	col := s.pendingStart
	s.pending.Reset()
	s.top().Tokens = append(s.top().Tokens, &Token{Value: name, Kind: VariableOrLiteral, Column: col})
}

// handleBracket implements the opening/closing bracket case.
func (s *scanner) handleBracket(r rune) error {
	glyph := string(r)
	desc, _ := s.brackets.Lookup(glyph)
	col := s.col()

	if desc.IsOpen {
		var fnTok *Token
		if s.pending.Len() > 0 {
			name := s.pending.String()
			pcol := s.pendingStart
			s.pending.Reset()
			if s.funcs != nil && s.funcs.IsFunction(name) {
				fnTok = &Token{Value: name, Kind: FunctionToken, Column: pcol}
			} else {
				s.top().Tokens = append(s.top().Tokens, &Token{Value: name, Kind: VariableOrLiteral, Column: pcol})
			}
		}
		scope := &Scope{Column: col + 1, Type: desc.MapsTo, IsArgs: fnTok != nil}
		if fnTok != nil {
			fnTok.Nested = scope
			s.top().Tokens = append(s.top().Tokens, fnTok)
		} else {
			groupTok := &Token{Value: glyph, Kind: GroupToken, Column: col, Nested: scope}
			s.top().Tokens = append(s.top().Tokens, groupTok)
		}
		s.bracketStack = append(s.bracketStack, bracketFrame{desc: desc, scope: scope, column: col})
		s.scopeStack = append(s.scopeStack, scope)
		s.pos++
		return nil
	}

	// Closing bracket.
	s.flushPending()
	s.closeSpaceScope()
	if len(s.bracketStack) == 0 {
		return errors.NewParityError(errors.Position{Line: 1, Column: col}, s.source,
			"unexpected closing bracket '"+glyph+"'")
	}
	frame := s.bracketStack[len(s.bracketStack)-1]
	if !Matches(frame.desc, desc) {
		return errors.NewParityError(errors.Position{Line: 1, Column: col}, s.source,
			"mismatched bracket '"+glyph+"'")
	}
	s.bracketStack = s.bracketStack[:len(s.bracketStack)-1]
	s.scopeStack = s.scopeStack[:len(s.scopeStack)-1]
	s.pos++
	return nil
}

// handleOperatorRun implements the operator-char case: flush the
// pending token, detect implicit multiplication, close any open
// space-scope, then chunkify the maximal operator-character run.
func (s *scanner) handleOperatorRun() {
	s.flushPending()
	s.closeSpaceScope()

	start := s.pos
	startCol := s.col()
	for s.pos < len(s.src) && s.isOperatorStart(s.src[s.pos]) {
		s.pos++
	}
	run := string(s.src[start:s.pos])

	col := startCol
	for _, glyph := range s.dict.Chunkify(run) {
		desc, _ := s.dict.Get(glyph)
		tok := &Token{Value: glyph, Kind: OperatorToken, Column: col, Op: desc}
		s.top().Tokens = append(s.top().Tokens, tok)
		col += len(glyph)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}
