package sparkline

import (
	"errors"
	"strings"
	"testing"
)

func TestRenderLength(t *testing.T) {
	r := New()
	values := []float64{1, 2, 3, 4, 5}

	out, err := r.Render(values, len(values))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len([]rune(out)) != len(values) {
		t.Fatalf("split at end must not insert separator: got %q", out)
	}

	out, err = r.Render(values, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len([]rune(out)) != len(values)+1 {
		t.Fatalf("internal split must insert one separator: got %q", out)
	}
	if []rune(out)[3] != DefaultSeparator {
		t.Fatalf("separator expected at index 3: got %q", out)
	}
}

func TestRenderSplitAtStart(t *testing.T) {
	r := New()
	out, err := r.Render([]float64{1, 2, 3}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.ContainsRune(out, DefaultSeparator) {
		t.Fatalf("split at 0 must omit separator: got %q", out)
	}
}

func TestRenderMonotonicDensity(t *testing.T) {
	r := New()
	out, err := r.Render([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rank := func(ch rune) int { return strings.IndexRune(DefaultAlphabet, ch) }
	runes := []rune(out)
	for i := 1; i < len(runes); i++ {
		if rank(runes[i]) < rank(runes[i-1]) {
			t.Fatalf("density must be non-decreasing for increasing input: %q", out)
		}
	}
	if runes[0] != ' ' || runes[len(runes)-1] != '@' {
		t.Errorf("extremes should map to the alphabet ends: %q", out)
	}
}

func TestRenderConstantSeries(t *testing.T) {
	r := New()
	out, err := r.Render([]float64{7, 7, 7, 7}, 4)
	if err != nil {
		t.Fatalf("constant series must not error: %v", err)
	}
	runes := []rune(out)
	for _, ch := range runes[1:] {
		if ch != runes[0] {
			t.Fatalf("constant series must render a single repeated glyph: %q", out)
		}
	}
}

func TestRenderEmptyInput(t *testing.T) {
	r := New()
	if _, err := r.Render(nil, 0); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestRenderSplitOutOfRange(t *testing.T) {
	r := New()
	for _, split := range []int{-1, 4} {
		if _, err := r.Render([]float64{1, 2, 3}, split); !errors.Is(err, ErrSplitOutOfRange) {
			t.Errorf("split %d: expected ErrSplitOutOfRange, got %v", split, err)
		}
	}
}

func TestRenderCustomAlphabet(t *testing.T) {
	r := New(WithAlphabet("abc"), WithSeparator('/'))
	out, err := r.Render([]float64{0, 5, 10}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ab/c" {
		t.Fatalf("expected %q, got %q", "ab/c", out)
	}
}

func TestRenderSingleValue(t *testing.T) {
	r := New()
	out, err := r.Render([]float64{3.14}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len([]rune(out)) != 1 {
		t.Fatalf("expected one glyph, got %q", out)
	}
}
