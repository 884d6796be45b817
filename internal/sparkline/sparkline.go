// Package sparkline renders a numeric sequence as a single-line ASCII
// density plot, with a marker separating observed history from forecast.
package sparkline

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// DefaultAlphabet orders glyphs from sparse to dense.
const DefaultAlphabet = " .:-=+*#%@"

// DefaultSeparator marks the history/forecast boundary.
const DefaultSeparator = '|'

var (
	// ErrEmptyInput is returned when there are no values to render.
	ErrEmptyInput = errors.New("sparkline: empty input")
	// ErrSplitOutOfRange is returned when the split index is not in [0, len(values)].
	ErrSplitOutOfRange = errors.New("sparkline: split index out of range")
)

// Renderer maps values onto a character gradient. The zero value is not
// usable; construct with New.
type Renderer struct {
	alphabet  []rune
	separator rune
}

// Option configures Renderer.
type Option func(*Renderer)

// WithAlphabet replaces the gradient alphabet (ordered sparse to dense).
func WithAlphabet(alphabet string) Option {
	return func(r *Renderer) {
		if alphabet != "" {
			r.alphabet = []rune(alphabet)
		}
	}
}

// WithSeparator replaces the history/forecast separator.
func WithSeparator(sep rune) Option {
	return func(r *Renderer) {
		if sep != 0 {
			r.separator = sep
		}
	}
}

// New creates a renderer with the default alphabet and separator.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		alphabet:  []rune(DefaultAlphabet),
		separator: DefaultSeparator,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render maps each value to one glyph by min/max normalization and emits
// them in order, inserting the separator at split when it falls strictly
// inside the sequence. A constant sequence maps every value to the
// midpoint glyph. split is the index of the first forecast value, or
// len(values) when there is no forecast.
func (r *Renderer) Render(values []float64, split int) (string, error) {
	if len(values) == 0 {
		return "", ErrEmptyInput
	}
	if split < 0 || split > len(values) {
		return "", fmt.Errorf("%w: split=%d, n=%d", ErrSplitOutOfRange, split, len(values))
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo

	var sb strings.Builder
	sb.Grow(len(values) + 1)
	for i, v := range values {
		if i == split && i > 0 {
			sb.WriteRune(r.separator)
		}
		norm := 0.5 // constant series pins every value to the midpoint
		if span > 0 {
			norm = (v - lo) / span
		}
		sb.WriteRune(r.glyph(norm))
	}
	return sb.String(), nil
}

func (r *Renderer) glyph(norm float64) rune {
	idx := int(math.Round(norm * float64(len(r.alphabet)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx > len(r.alphabet)-1 {
		idx = len(r.alphabet) - 1
	}
	return r.alphabet[idx]
}
