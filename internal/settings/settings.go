// Package settings implements the process-wide-by-default, injectable
// configuration record consulted by the tokenizer and kernel: numeric
// precision, the reserved names used in canonical hashes, and the
// implicit-multiplication policy.
package settings

import (
	"errors"
	"regexp"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var errInvalidJSON = errors.New("settings: invalid JSON document")

// Context holds every option listed in the configuration table: the
// numeric-group constant-hash sentinel, the reserved atom/function
// names used in canonical hashes, the implicit-multiplication regex,
// the multi-character-variable policy, and decimal precision.
type Context struct {
	ConstHash                 string
	Imaginary                 string
	Sqrt                      string
	Parenthesis               string
	PowerOperator             string
	UseMultiCharacterVars     bool
	ImpliedMultiplicationExpr string
	Precision                 int
}

// Option configures a Context built by New.
type Option func(*Context)

// WithPrecisionOption sets the constructed Context's decimal precision.
func WithPrecisionOption(prec int) Option {
	return func(c *Context) { c.Precision = prec }
}

// WithImaginaryName overrides the atom name reserved for the
// imaginary unit.
func WithImaginaryName(name string) Option {
	return func(c *Context) { c.Imaginary = name }
}

// WithMultiCharacterVars toggles USE_MULTICHARACTER_VARS.
func WithMultiCharacterVars(enabled bool) Option {
	return func(c *Context) { c.UseMultiCharacterVars = enabled }
}

// WithImpliedMultiplicationRegex overrides IMPLIED_MULTIPLICATION_REGEX.
func WithImpliedMultiplicationRegex(pattern string) Option {
	return func(c *Context) { c.ImpliedMultiplicationExpr = pattern }
}

// New builds a Context from the built-in defaults, then applies opts.
func New(opts ...Option) *Context {
	c := &Context{
		ConstHash:                 "#",
		Imaginary:                 "i",
		Sqrt:                      "sqrt",
		Parenthesis:               "parens",
		PowerOperator:             "^",
		UseMultiCharacterVars:     true,
		ImpliedMultiplicationExpr: `(\d|\))\s*([A-Za-z(])`,
		Precision:                 16,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultContext = New()

// Default returns the package's shared convenience instance, for
// callers that do not need an isolated Context.
func Default() *Context { return defaultContext }

// ImpliedMultiplicationRegexp compiles the configured pattern.
func (c *Context) ImpliedMultiplicationRegexp() (*regexp.Regexp, error) {
	return regexp.Compile(c.ImpliedMultiplicationExpr)
}

// WithPrecision implements the scoped acquire/perform/restore
// discipline decimal rendering needs: it sets prec for the
// duration of fn, then restores whatever precision c held before.
func (c *Context) WithPrecision(prec int, fn func()) {
	prev := c.Precision
	c.Precision = prec
	defer func() { c.Precision = prev }()
	fn()
}

// ToJSON serializes c using sjson, field by field, so callers get
// ad hoc field-level control rather than committing to a single
// struct-tag layout.
func (c *Context) ToJSON() ([]byte, error) {
	var err error
	out := []byte("{}")
	set := func(path string, value interface{}) {
		if err != nil {
			return
		}
		out, err = sjson.SetBytes(out, path, value)
	}
	set("constHash", c.ConstHash)
	set("imaginary", c.Imaginary)
	set("sqrt", c.Sqrt)
	set("parenthesis", c.Parenthesis)
	set("powerOperator", c.PowerOperator)
	set("useMultiCharacterVars", c.UseMultiCharacterVars)
	set("impliedMultiplicationRegex", c.ImpliedMultiplicationExpr)
	set("precision", c.Precision)
	return out, err
}

// FromJSON populates c from a JSON document via gjson, leaving any
// field the document omits at its current value.
func (c *Context) FromJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if v := root.Get("constHash"); v.Exists() {
		c.ConstHash = v.String()
	}
	if v := root.Get("imaginary"); v.Exists() {
		c.Imaginary = v.String()
	}
	if v := root.Get("sqrt"); v.Exists() {
		c.Sqrt = v.String()
	}
	if v := root.Get("parenthesis"); v.Exists() {
		c.Parenthesis = v.String()
	}
	if v := root.Get("powerOperator"); v.Exists() {
		c.PowerOperator = v.String()
	}
	if v := root.Get("useMultiCharacterVars"); v.Exists() {
		c.UseMultiCharacterVars = v.Bool()
	}
	if v := root.Get("impliedMultiplicationRegex"); v.Exists() {
		c.ImpliedMultiplicationExpr = v.String()
	}
	if v := root.Get("precision"); v.Exists() {
		c.Precision = int(v.Int())
	}
	return nil
}
