// Package opdict supplies the default operator/bracket tables the
// tokenizer is constructed with, and lets a caller override glyphs,
// precedence, or associativity from a YAML document instead of
// touching Go source.
package opdict

import (
	"github.com/goccy/go-yaml"

	"github.com/symcore/symcore/internal/tokenizer"
)

// entry is the YAML-facing shape of one operator definition.
type entry struct {
	Glyph      string `yaml:"glyph"`
	Precedence int    `yaml:"precedence"`
	RightAssoc bool   `yaml:"rightAssoc"`
	Binary     bool   `yaml:"binary"`
	Prefix     bool   `yaml:"prefix"`
	Postfix    bool   `yaml:"postfix"`
	Func       string `yaml:"func"`
}

// bracketEntry is the YAML-facing shape of one bracket pair.
type bracketEntry struct {
	Open   string `yaml:"open"`
	Close  string `yaml:"close"`
	MapsTo string `yaml:"mapsTo"`
}

// document is the top-level YAML shape loaded by Load.
type document struct {
	Operators []entry        `yaml:"operators"`
	Brackets  []bracketEntry `yaml:"brackets"`
}

// Default returns the built-in operator dictionary and bracket table
// (the default arithmetic operators and parenthesis/bracket
// pairs), expressed in Go rather than loaded from YAML.
func Default() (*tokenizer.OperatorDictionary, *tokenizer.Brackets) {
	return tokenizer.DefaultOperators(), tokenizer.DefaultBrackets()
}

// Load parses a YAML document into a fresh operator dictionary and
// bracket table, replacing the built-in defaults entirely — callers
// wanting to extend rather than replace should build on top of
// Default() instead.
func Load(data []byte) (*tokenizer.OperatorDictionary, *tokenizer.Brackets, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}

	dict := tokenizer.NewOperatorDictionary()
	for _, e := range doc.Operators {
		assoc := tokenizer.LeftAssoc
		if e.RightAssoc {
			assoc = tokenizer.RightAssoc
		}
		dict.Add(&tokenizer.OperatorDescriptor{
			Glyph:      e.Glyph,
			Precedence: e.Precedence,
			Assoc:      assoc,
			Binary:     e.Binary,
			Prefix:     e.Prefix,
			Postfix:    e.Postfix,
			Func:       e.Func,
		})
	}

	brackets := tokenizer.NewBrackets()
	id := 0
	for _, b := range doc.Brackets {
		brackets.Add(b.Open, &tokenizer.BracketDescriptor{ID: id, IsOpen: true, MapsTo: b.MapsTo})
		brackets.Add(b.Close, &tokenizer.BracketDescriptor{ID: id + 1, IsClose: true, MapsTo: b.MapsTo})
		id += 2
	}

	return dict, brackets, nil
}

// Dump renders dict/brackets back into the YAML shape Load accepts,
// letting a caller start from the defaults and hand-edit the result.
func Dump(dict *tokenizer.OperatorDictionary) ([]byte, error) {
	doc := document{}
	for _, glyph := range dict.Glyphs() {
		desc, _ := dict.Get(glyph)
		doc.Operators = append(doc.Operators, entry{
			Glyph:      desc.Glyph,
			Precedence: desc.Precedence,
			RightAssoc: desc.Assoc == tokenizer.RightAssoc,
			Binary:     desc.Binary,
			Prefix:     desc.Prefix,
			Postfix:    desc.Postfix,
			Func:       desc.Func,
		})
	}
	return yaml.Marshal(doc)
}
