package tokenizer

import "sort"

// Associativity governs how the parser driver groups a chain of equal-
// precedence binary operators.
type Associativity int

const (
	LeftAssoc Associativity = iota
	RightAssoc
)

// OperatorDescriptor carries everything the tree-construction pass and
// the parser driver need to know about one operator glyph: how tightly
// it binds, whether it is prefix/postfix/binary, and which kernel
// function it dispatches to.
type OperatorDescriptor struct {
	Glyph         string
	Precedence    int
	Assoc         Associativity
	Binary        bool
	Prefix        bool
	Postfix       bool
	Func          string // kernel dispatch name, e.g. "add"
}

// OperatorDictionary is an injected map from operator glyph to
// descriptor, consulted by the scanner's longest-match chunkify step.
type OperatorDictionary struct {
	byGlyph map[string]*OperatorDescriptor
	maxLen  int
}

// NewOperatorDictionary builds an empty dictionary.
func NewOperatorDictionary() *OperatorDictionary {
	return &OperatorDictionary{byGlyph: map[string]*OperatorDescriptor{}}
}

// Add registers desc under its own glyph.
func (d *OperatorDictionary) Add(desc *OperatorDescriptor) {
	d.byGlyph[desc.Glyph] = desc
	if len(desc.Glyph) > d.maxLen {
		d.maxLen = len(desc.Glyph)
	}
}

// Get looks up an exact glyph.
func (d *OperatorDictionary) Get(glyph string) (*OperatorDescriptor, bool) {
	desc, ok := d.byGlyph[glyph]
	return desc, ok
}

// LongestMatch finds the longest registered glyph that prefixes s,
// the longest-match-when-tokenizing rule. It returns nil, 0
// when no registered operator starts at s[0].
func (d *OperatorDictionary) LongestMatch(s string) (*OperatorDescriptor, int) {
	limit := d.maxLen
	if limit > len(s) {
		limit = len(s)
	}
	for n := limit; n > 0; n-- {
		if desc, ok := d.byGlyph[s[:n]]; ok {
			return desc, n
		}
	}
	return nil, 0
}

// Glyphs returns every registered glyph's first byte, used by the
// scanner to recognize the start of an operator run.
func (d *OperatorDictionary) StartBytes() map[byte]bool {
	out := map[byte]bool{}
	for g := range d.byGlyph {
		out[g[0]] = true
	}
	return out
}

// Chunkify greedily splits a maximal operator-character run into
// longest-match glyphs. It is the same algorithm LongestMatch uses,
// applied repeatedly until the run is consumed; any leftover
// character that matches no glyph is returned as a final single-rune
// descriptor-less chunk so the caller can report it.
func (d *OperatorDictionary) Chunkify(run string) []string {
	var chunks []string
	for len(run) > 0 {
		desc, n := d.LongestMatch(run)
		if desc == nil {
			chunks = append(chunks, run[:1])
			run = run[1:]
			continue
		}
		chunks = append(chunks, run[:n])
		run = run[n:]
	}
	return chunks
}

// BracketDescriptor describes one side of a bracket pair. Matching
// between an opener and a closer is by (opener.ID == closer.ID - 1),
// by ID, not by glyph shape.
type BracketDescriptor struct {
	ID      int
	IsOpen  bool
	IsClose bool
	// MapsTo names the scope type recorded when this bracket opens a
	// scope (e.g. "paren", "bracket", "brace").
	MapsTo string
}

// Brackets is an injected opener/closer glyph table.
type Brackets struct {
	byGlyph map[string]*BracketDescriptor
}

// NewBrackets builds an empty bracket table.
func NewBrackets() *Brackets {
	return &Brackets{byGlyph: map[string]*BracketDescriptor{}}
}

// Add registers a bracket glyph.
func (b *Brackets) Add(glyph string, desc *BracketDescriptor) {
	b.byGlyph[glyph] = desc
}

// Lookup resolves a single bracket glyph.
func (b *Brackets) Lookup(glyph string) (*BracketDescriptor, bool) {
	desc, ok := b.byGlyph[glyph]
	return desc, ok
}

// Matches reports whether an opener and closer pair per the
// (opener.ID == closer.ID - 1) convention.
func Matches(opener, closer *BracketDescriptor) bool {
	return opener.ID == closer.ID-1
}

// DefaultOperators returns the built-in operator set: the four
// arithmetic binary operators, unary minus, and exponentiation
// (right-associative, binding tighter than unary minus so that
// `-x^2` parses as `-(x^2)`).
func DefaultOperators() *OperatorDictionary {
	d := NewOperatorDictionary()
	d.Add(&OperatorDescriptor{Glyph: "+", Precedence: 1, Assoc: LeftAssoc, Binary: true, Func: "add"})
	d.Add(&OperatorDescriptor{Glyph: "-", Precedence: 1, Assoc: LeftAssoc, Binary: true, Prefix: true, Func: "subtract"})
	d.Add(&OperatorDescriptor{Glyph: "*", Precedence: 2, Assoc: LeftAssoc, Binary: true, Func: "multiply"})
	d.Add(&OperatorDescriptor{Glyph: "/", Precedence: 2, Assoc: LeftAssoc, Binary: true, Func: "divide"})
	d.Add(&OperatorDescriptor{Glyph: "^", Precedence: 3, Assoc: RightAssoc, Binary: true, Func: "pow"})
	return d
}

// DefaultBrackets returns the built-in bracket set: parentheses for
// grouping and function calls, square brackets reserved for a future
// array/matrix extension (accepted by the scanner, never required by
// the core kernel).
func DefaultBrackets() *Brackets {
	b := NewBrackets()
	b.Add("(", &BracketDescriptor{ID: 0, IsOpen: true, MapsTo: "paren"})
	b.Add(")", &BracketDescriptor{ID: 1, IsClose: true, MapsTo: "paren"})
	b.Add("[", &BracketDescriptor{ID: 2, IsOpen: true, MapsTo: "bracket"})
	b.Add("]", &BracketDescriptor{ID: 3, IsClose: true, MapsTo: "bracket"})
	return b
}

// Glyphs returns every registered glyph, sorted, for deterministic
// iteration over a dictionary's contents (dumping, tests).
func (d *OperatorDictionary) Glyphs() []string {
	out := make([]string, 0, len(d.byGlyph))
	for g := range d.byGlyph {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}
