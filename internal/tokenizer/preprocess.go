package tokenizer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/symcore/symcore/internal/errors"
)

// Preprocessor is one named, ordered rewrite hook applied to the raw
// expression text before scanning.
type Preprocessor struct {
	Name  string
	Fn    func(string) string
	Order int
	seq   int // registration sequence, used to break Order ties
}

// Registry holds the process's preprocessor hooks. It is not safe for
// concurrent use, matching the process-wide Settings/registry model
// described for this core.
type Registry struct {
	items []Preprocessor
	seq   int
}

// NewRegistry builds an empty preprocessor registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// AddPreprocessor registers fn under name at the given order (hooks
// run lowest order first; ties break by registration order). It
// returns a PreprocessorError if fn is nil.
func (r *Registry) AddPreprocessor(name string, fn func(string) string, order int) error {
	if fn == nil {
		return errors.NewPreprocessorError("preprocessor \"" + name + "\" has no action")
	}
	r.seq++
	r.items = append(r.items, Preprocessor{Name: name, Fn: fn, Order: order, seq: r.seq})
	sort.SliceStable(r.items, func(i, j int) bool {
		if r.items[i].Order != r.items[j].Order {
			return r.items[i].Order < r.items[j].Order
		}
		return r.items[i].seq < r.items[j].seq
	})
	return nil
}

// RemovePreprocessor unregisters a hook by name.
func (r *Registry) RemovePreprocessor(name string) {
	out := r.items[:0]
	for _, p := range r.items {
		if p.Name != name {
			out = append(out, p)
		}
	}
	r.items = out
}

// GetPreprocessors returns the registered hooks in run order.
func (r *Registry) GetPreprocessors() []Preprocessor {
	out := make([]Preprocessor, len(r.items))
	copy(out, r.items)
	return out
}

// Apply runs every user hook, in order, over input.
func (r *Registry) Apply(input string) string {
	for _, p := range r.items {
		input = p.Fn(input)
	}
	return input
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// collapseWhitespace implements built-in hook 1: runs of whitespace
// collapse to a single space, and the result is trimmed.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

var bracketSpace = regexp.MustCompile(`\s*([()\[\],])\s*`)

// trimBracketWhitespace implements built-in hook 2: whitespace
// touching a bracket or comma is removed, so `( x , y )` and
// `(x,y)` scan identically.
func trimBracketWhitespace(s string) string {
	return bracketSpace.ReplaceAllString(s, "$1")
}

var scientificNotation = regexp.MustCompile(`(\d+(?:\.\d+)?)[eE]([+-]?\d+)`)

// expandScientificNotation implements built-in hook 3: `1.2e-3`
// becomes its decimal expansion, since the tokenizer's number scanner
// only understands digit-and-dot literals.
func expandScientificNotation(s string) string {
	return scientificNotation.ReplaceAllStringFunc(s, func(m string) string {
		parts := scientificNotation.FindStringSubmatch(m)
		mantissa, exp := parts[1], parts[2]
		return expandDecimalExponent(mantissa, exp)
	})
}

// DefaultImplicitMultiplicationRegex matches a coefficient directly
// followed by an identifier or opening paren, or a closing paren
// directly followed by an identifier/opening paren/number — the
// configurable implicit-multiplication pattern.
var DefaultImplicitMultiplicationRegex = regexp.MustCompile(
	`(\d|\))\s*([A-Za-z(])`,
)

// InsertImplicitMultiplication implements built-in hook 4: it splices
// a `*` between a coefficient/closing-bracket and the following
// identifier/opening-bracket, unless the identifier names a function
// (isFunction reports that), iterating to a fixpoint — each rewrite
// strictly shrinks the set of un-rewritten adjacencies so the loop
// terminates.
func InsertImplicitMultiplication(s string, re *regexp.Regexp, isFunction func(name string) bool) string {
	for {
		next := re.ReplaceAllStringFunc(s, func(m string) string {
			loc := re.FindStringSubmatchIndex(m)
			left := m[loc[2]:loc[3]]
			right := m[loc[4]:loc[5]]
			if isFunction != nil && isFunction(identifierAt(s, right)) {
				return m
			}
			return left + "*" + right
		})
		if next == s {
			return s
		}
		s = next
	}
}

// identifierAt is a best-effort lookup used only to decide whether the
// right-hand side of a candidate implicit-multiplication site names a
// known function; it reads the maximal identifier run starting at the
// first letter of frag.
func identifierAt(_ string, frag string) string {
	var sb strings.Builder
	for _, r := range frag {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			sb.WriteRune(r)
			continue
		}
		break
	}
	return sb.String()
}

// SplitSingleCharacterVariables implements the USE_MULTICHARACTER_VARS
// = false extension of hook 4: an identifier run that names no known
// function is split into single-letter factors, `abc` -> `a*b*c`.
func SplitSingleCharacterVariables(s string, isFunction func(name string) bool) string {
	var sb strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if !isLetter(c) {
			sb.WriteByte(c)
			i++
			continue
		}
		j := i
		for j < len(s) && (isLetter(s[j]) || isDigit(s[j])) {
			j++
		}
		word := s[i:j]
		if len(word) > 1 && (isFunction == nil || !isFunction(word)) {
			for k, r := range word {
				if k > 0 {
					sb.WriteByte('*')
				}
				sb.WriteRune(r)
			}
		} else {
			sb.WriteString(word)
		}
		i = j
	}
	return sb.String()
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }

// Options configures the built-in preprocessing pipeline.
type Options struct {
	ImplicitMultiplicationRegex *regexp.Regexp
	UseMultiCharacterVars       bool
	IsFunction                  func(name string) bool
}

// DefaultOptions returns the default pipeline configuration: multi-
// character variables allowed, default implicit-multiplication regex.
func DefaultOptions() Options {
	return Options{
		ImplicitMultiplicationRegex: DefaultImplicitMultiplicationRegex,
		UseMultiCharacterVars:       true,
	}
}

// Prepare runs the user registry, then the built-in pipeline, over
// input, in a fixed order: user hooks first, then
// whitespace collapsing, bracket-whitespace trimming, scientific-
// notation expansion, and implicit multiplication to fixpoint.
func Prepare(input string, user *Registry, opts Options) string {
	if user != nil {
		input = user.Apply(input)
	}
	input = collapseWhitespace(input)
	input = trimBracketWhitespace(input)
	input = expandScientificNotation(input)
	re := opts.ImplicitMultiplicationRegex
	if re == nil {
		re = DefaultImplicitMultiplicationRegex
	}
	input = InsertImplicitMultiplication(input, re, opts.IsFunction)
	if !opts.UseMultiCharacterVars {
		input = SplitSingleCharacterVariables(input, opts.IsFunction)
	}
	return input
}
