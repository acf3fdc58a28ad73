package opdict

import (
	"testing"

	"github.com/symcore/symcore/internal/tokenizer"
)

func TestDumpLoadRoundTrip(t *testing.T) {
	dict, _ := Default()
	data, err := Dump(dict)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}

	reloaded, _, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, glyph := range dict.Glyphs() {
		want, _ := dict.Get(glyph)
		got, ok := reloaded.Get(glyph)
		if !ok {
			t.Fatalf("reloaded dictionary is missing glyph %q", glyph)
		}
		if got.Precedence != want.Precedence || got.Func != want.Func || got.Assoc != want.Assoc {
			t.Fatalf("glyph %q round-tripped to %+v, want %+v", glyph, got, want)
		}
	}
}

func TestLoadCustomOperators(t *testing.T) {
	yamlDoc := []byte(`
operators:
  - glyph: "+"
    precedence: 1
    binary: true
    func: add
  - glyph: "**"
    precedence: 4
    rightAssoc: true
    binary: true
    func: pow
brackets:
  - open: "("
    close: ")"
    mapsTo: paren
`)
	dict, brackets, err := Load(yamlDoc)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	desc, ok := dict.Get("**")
	if !ok || desc.Func != "pow" || desc.Assoc != tokenizer.RightAssoc {
		t.Fatalf("** should load as a right-associative pow operator, got %+v", desc)
	}
	opener, ok := brackets.Lookup("(")
	if !ok || !opener.IsOpen {
		t.Fatalf("( should load as an opening bracket, got %+v", opener)
	}
}
