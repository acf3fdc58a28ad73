package parserdriver

import (
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/symcore/symcore/internal/errors"
)

// ValidateName enforces the identifier rules a tokenized VARIABLE
// token must satisfy before it becomes a group-S atom: non-empty,
// does not start with a digit, and contains no reserved glyph. The
// name is first run through NFC normalization so that visually
// identical identifiers typed with different Unicode compositions
// (e.g. a precomposed "é" vs. "e" + combining acute) hash the same.
func ValidateName(raw string, col int, source string) (string, error) {
	name := norm.NFC.String(raw)
	if name == "" {
		return "", errors.NewNameValidationError(errors.Position{Line: 1, Column: col}, source, "identifier is empty")
	}
	runes := []rune(name)
	if unicode.IsDigit(runes[0]) {
		return "", errors.NewNameValidationError(errors.Position{Line: 1, Column: col}, source,
			"identifier \""+name+"\" starts with a digit")
	}
	for _, r := range runes {
		if isReservedGlyph(r) {
			return "", errors.NewNameValidationError(errors.Position{Line: 1, Column: col}, source,
				"identifier \""+name+"\" contains reserved glyph '"+string(r)+"'")
		}
	}
	return name, nil
}

func isReservedGlyph(r rune) bool {
	switch r {
	case '(', ')', '[', ']', ',', '+', '-', '*', '/', '^':
		return true
	default:
		return false
	}
}
