package source

import (
	"context"
	"testing"
	"time"
)

func TestSyntheticLength(t *testing.T) {
	s, err := NewSynthetic(time.Time{}, 48).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != 48 {
		t.Fatalf("expected 48 points, got %d", len(s))
	}
}

func TestSyntheticMonthlyCadence(t *testing.T) {
	s, _ := NewSynthetic(time.Time{}, 14).Load(context.Background())
	if !s[0].Date.Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected start 2021-01-01, got %v", s[0].Date)
	}
	if !s[13].Date.Equal(time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected monthly cadence, last is %v", s[13].Date)
	}
}

func TestSyntheticDeterministic(t *testing.T) {
	gen := NewSynthetic(time.Time{}, 36)
	a, _ := gen.Load(context.Background())
	b, _ := gen.Load(context.Background())
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("synthetic series not deterministic at %d", i)
		}
	}
}

func TestSyntheticDefaultsLength(t *testing.T) {
	s, _ := NewSynthetic(time.Time{}, 0).Load(context.Background())
	if len(s) != DefaultSyntheticLength {
		t.Fatalf("expected default length %d, got %d", DefaultSyntheticLength, len(s))
	}
}
