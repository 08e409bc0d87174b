// Package formatter turns raw configuration values into display strings that fit a
// fixed column width.
package formatter

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	fcolor "github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
	"github.com/scandiweb/configdiff/pkg/svc/diff"
)

// DefaultWidth is the column width used when none is configured.
const DefaultWidth = 50

// MissingMarker is printed in place of a value that does not exist on one side.
const MissingMarker = "MISSING"

// ErrInvalidWidth is returned when the column width is smaller than one.
var ErrInvalidWidth = errors.New("column width must be at least 1")

// Formatter wraps values to a fixed width.
type Formatter struct {
	width   int
	missing string
}

// New creates a formatter for the given column width.
func New(width int) (*Formatter, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWidth, width)
	}

	return &Formatter{
		width:   width,
		missing: fcolor.New(fcolor.FgRed).Sprint(MissingMarker),
	}, nil
}

// Width returns the configured column width.
func (f *Formatter) Width() int {
	return f.width
}

// Format normalises carriage returns, trims surrounding whitespace and wraps the
// value at the column width. Tokens longer than the width are cut.
func (f *Formatter) Format(raw string) string {
	normalized := strings.TrimSpace(strings.ReplaceAll(raw, "\r", "\n"))

	return Wrap(normalized, f.width)
}

// FormatValue formats a present value or returns the missing marker.
func (f *Formatter) FormatValue(value diff.Value) string {
	raw, ok := value.Get()
	if !ok {
		return f.Missing()
	}

	return f.Format(raw)
}

// Missing returns the coloured missing marker.
func (f *Formatter) Missing() string {
	return f.missing
}

// Wrap breaks text into lines of at most width runes. It prefers breaking at a
// single space between words and falls back to cutting inside a word. A break
// either replaces exactly one space or is inserted between two runes, so no
// character of text is lost.
func Wrap(text string, width int) string {
	if width < 1 {
		return text
	}

	original := []rune(text)
	wrapped := []rune(wordwrap.WrapString(string(glueWhitespace(original)), uint(width)))

	if len(wrapped) != len(original) {
		return strings.Join(hardBreakLines(text, width), "\n")
	}

	restored := make([]rune, len(original))
	for i, r := range original {
		restored[i] = r
		if wrapped[i] == '\n' && r == ' ' {
			restored[i] = '\n'
		}
	}

	return strings.Join(hardBreakLines(string(restored), width), "\n")
}

// glue is a rune wordwrap never breaks at.
const glue = '\u00a0'

// glueWhitespace returns a copy of text in which the only whitespace left for
// wordwrap is newlines and the leading space of each run that sits between two
// words. Every other whitespace rune is replaced by glue, keeping rune offsets.
func glueWhitespace(text []rune) []rune {
	out := make([]rune, len(text))
	copy(out, text)

	for start := 0; start < len(out); {
		if !breakable(out[start]) {
			start++

			continue
		}

		end := start
		hasNewline := false

		for end < len(out) && breakable(out[end]) {
			if out[end] == '\n' {
				hasNewline = true
			}

			end++
		}

		for i := start; i < end; i++ {
			if out[i] == '\n' || (!hasNewline && i == start && out[i] == ' ' && start > 0 && end < len(out)) {
				continue
			}

			out[i] = glue
		}

		start = end
	}

	return out
}

// breakable reports whether wordwrap treats r as whitespace.
func breakable(r rune) bool {
	return unicode.IsSpace(r) && r != glue
}

func hardBreakLines(text string, width int) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		out = append(out, hardBreak(line, width)...)
	}

	return out
}

func hardBreak(line string, width int) []string {
	runes := []rune(line)
	if len(runes) <= width {
		return []string{line}
	}

	parts := make([]string, 0, len(runes)/width+1)
	for len(runes) > width {
		parts = append(parts, string(runes[:width]))
		runes = runes[width:]
	}

	return append(parts, string(runes))
}
