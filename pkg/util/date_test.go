package util

import (
	"testing"
	"time"
)

func TestAddMonthsSimple(t *testing.T) {
	d := time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC)
	got := AddMonths(d, 3)
	want := time.Date(2021, 4, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAddMonthsClampsDay(t *testing.T) {
	d := time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC)
	got := AddMonths(d, 1)
	want := time.Date(2021, 2, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAddMonthsYearRollover(t *testing.T) {
	d := time.Date(2021, 11, 30, 0, 0, 0, 0, time.UTC)
	got := AddMonths(d, 3)
	want := time.Date(2022, 2, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestIsMonthlyStep(t *testing.T) {
	jan := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC)
	if !IsMonthlyStep(jan, feb) {
		t.Fatalf("expected monthly step")
	}
	if IsMonthlyStep(jan, jan.AddDate(0, 0, 7)) {
		t.Fatalf("weekly step reported as monthly")
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("expected default, got %d", got)
	}
	if got := ParseIntDefault("12", 7); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
	if got := ParseIntDefault("x", 7); got != 7 {
		t.Fatalf("expected default on invalid, got %d", got)
	}
}
