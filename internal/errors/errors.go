// Package errors implements the error kinds raised by the tokenizer and
// arithmetic kernel, formatted with source context and a column caret in
// the same shape as a compiler diagnostic.
package errors

import (
	"fmt"
	"strings"
)

// Position identifies a 1-based column within the input being processed.
// Line is carried for reuse by callers that splice expressions into
// multi-line documents; expressions themselves are always single-line, so
// Line is 1 unless a caller overrides it.
type Position struct {
	Line   int
	Column int
}

// Formatted is implemented by every error kind below. Format reproduces the
// offending source line and places a caret under the reported column.
type Formatted interface {
	error
	Format(color bool) string
}

// base carries the fields shared by every error kind.
type base struct {
	Pos     Position
	Source  string
	Message string
}

func (b *base) getSourceLine() string {
	if b.Source == "" {
		return ""
	}
	lines := strings.Split(b.Source, "\n")
	if b.Pos.Line < 1 || b.Pos.Line > len(lines) {
		return ""
	}
	return lines[b.Pos.Line-1]
}

// Format renders the error the way a compiler would: a header citing the
// position, the source line, a caret, and the message.
func (b *base) Format(color bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error at column %d", b.Pos.Column))
	if b.Pos.Line > 1 {
		sb.WriteString(fmt.Sprintf(" (line %d)", b.Pos.Line))
	}
	sb.WriteString("\n")

	if line := b.getSourceLine(); line != "" {
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", b.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(b.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (b *base) Error() string {
	return b.Format(false)
}

// ParityError is raised when the bracket stack mismatches or a bracket is
// left unclosed at end of input.
type ParityError struct{ base }

// NewParityError builds a ParityError citing the column of the offending
// bracket (or, for an unclosed bracket, the column past the end of input).
func NewParityError(pos Position, source, message string) *ParityError {
	return &ParityError{base{Pos: pos, Source: source, Message: message}}
}

// PreprocessorError is raised by AddPreprocessor when handed a non-callable
// or otherwise malformed hook.
type PreprocessorError struct{ base }

func NewPreprocessorError(message string) *PreprocessorError {
	return &PreprocessorError{base{Message: message}}
}

// KernelTypeError is raised when the arithmetic kernel is asked to perform
// a structurally impossible operation, e.g. substituting into a term shape
// that has no children.
type KernelTypeError struct{ base }

func NewKernelTypeError(message string) *KernelTypeError {
	return &KernelTypeError{base{Message: message}}
}

// NameValidationError is raised when an identifier fails name validation
// (empty, starts with a digit, contains a reserved glyph, ...).
type NameValidationError struct{ base }

func NewNameValidationError(pos Position, source, message string) *NameValidationError {
	return &NameValidationError{base{Pos: pos, Source: source, Message: message}}
}

// DivisionByZero is raised by Invert/Divide on a multiplier-zero term.
type DivisionByZero struct{ base }

func NewDivisionByZero(message string) *DivisionByZero {
	return &DivisionByZero{base{Message: message}}
}
