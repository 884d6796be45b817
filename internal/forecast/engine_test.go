package forecast

import (
	"errors"
	"math"
	"testing"
	"time"

	"TrendCast/internal/domain/models"
)

func monthlySeries(values ...float64) models.Series {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.Point, len(values))
	for i, v := range values {
		points[i] = models.Point{Date: start.AddDate(0, i, 0), Value: v}
	}
	return models.NewSeries(points)
}

func TestRollingMean(t *testing.T) {
	s := monthlySeries(1, 2, 3, 4)
	ma, err := RollingMean(s, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ma) != len(s) {
		t.Fatalf("expected aligned length %d, got %d", len(s), len(ma))
	}
	if ma[0].Valid {
		t.Fatalf("position 0 should be undefined for window 2")
	}
	want := []float64{0, 1.5, 2.5, 3.5}
	for i := 1; i < len(ma); i++ {
		if !ma[i].Valid {
			t.Fatalf("position %d should be defined", i)
		}
		if math.Abs(ma[i].Mean-want[i]) > 1e-12 {
			t.Errorf("position %d: expected %f, got %f", i, want[i], ma[i].Mean)
		}
		if !ma[i].Date.Equal(s[i].Date) {
			t.Errorf("position %d: date misaligned", i)
		}
	}
}

func TestRollingMeanFullWindowOnly(t *testing.T) {
	s := monthlySeries(5, 6, 7, 8, 9)
	ma, err := RollingMean(s, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if ma[i].Valid {
			t.Errorf("position %d: expected undefined", i)
		}
	}
	if !ma[3].Valid || math.Abs(ma[3].Mean-6.5) > 1e-12 {
		t.Errorf("position 3: expected 6.5, got %+v", ma[3])
	}
}

func TestRollingMeanWindowEqualsLength(t *testing.T) {
	s := monthlySeries(2, 4, 6)
	ma, err := RollingMean(s, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ma[2].Valid || math.Abs(ma[2].Mean-4) > 1e-12 {
		t.Errorf("expected single mean 4 at final position, got %+v", ma[2])
	}
}

func TestRollingMeanInvalidWindow(t *testing.T) {
	s := monthlySeries(1, 2, 3)
	for _, w := range []int{0, -1, 4} {
		if _, err := RollingMean(s, w); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("window %d: expected ErrInvalidWindow, got %v", w, err)
		}
	}
}

func TestForecastFlatExtrapolation(t *testing.T) {
	s := monthlySeries(10, 20, 30)
	fc, err := Forecast(s, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fc) != 3 {
		t.Fatalf("expected 3 forecast points, got %d", len(fc))
	}
	for i, p := range fc {
		if math.Abs(p.Value-25) > 1e-12 {
			t.Errorf("forecast %d: expected flat 25, got %f", i, p.Value)
		}
	}
}

func TestForecastMonthlyDates(t *testing.T) {
	s := monthlySeries(1, 2, 3)
	fc, err := Forecast(s, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []time.Time{
		time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, p := range fc {
		if !p.Date.Equal(want[i]) {
			t.Errorf("forecast %d: expected %v, got %v", i, want[i], p.Date)
		}
	}
}

func TestForecastDurationCadence(t *testing.T) {
	base := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	points := []models.Point{
		{Date: base, Value: 1},
		{Date: base.Add(time.Hour), Value: 2},
		{Date: base.Add(2 * time.Hour), Value: 3},
	}
	fc, err := Forecast(models.NewSeries(points), 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fc[0].Date.Equal(base.Add(3 * time.Hour)) {
		t.Errorf("expected hourly cadence, got %v", fc[0].Date)
	}
	if !fc[1].Date.Equal(base.Add(4 * time.Hour)) {
		t.Errorf("expected hourly cadence, got %v", fc[1].Date)
	}
}

func TestForecastSinglePointDefaultsMonthly(t *testing.T) {
	d := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	s := models.NewSeries([]models.Point{{Date: d, Value: 42}})
	fc, err := Forecast(s, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fc[0].Date.Equal(time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected monthly default cadence, got %v", fc[0].Date)
	}
	if fc[0].Value != 42 {
		t.Errorf("expected 42, got %f", fc[0].Value)
	}
}

func TestForecastZeroHorizon(t *testing.T) {
	s := monthlySeries(1, 2, 3)
	fc, err := Forecast(s, 2, 0)
	if err != nil {
		t.Fatalf("h=0 must not error: %v", err)
	}
	if len(fc) != 0 {
		t.Fatalf("expected empty forecast, got %d points", len(fc))
	}
}

func TestForecastErrors(t *testing.T) {
	s := monthlySeries(1, 2, 3)
	if _, err := Forecast(s, 0, 1); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow, got %v", err)
	}
	if _, err := Forecast(s, 4, 1); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow, got %v", err)
	}
	if _, err := Forecast(s, 2, -1); !errors.Is(err, ErrInvalidHorizon) {
		t.Errorf("expected ErrInvalidHorizon, got %v", err)
	}
}

func TestDeterminism(t *testing.T) {
	s := monthlySeries(3, 1, 4, 1, 5, 9, 2, 6)
	a, _ := RollingMean(s, 3)
	b, _ := RollingMean(s, 3)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("rolling mean not deterministic at %d", i)
		}
	}
	fa, _ := Forecast(s, 3, 4)
	fb, _ := Forecast(s, 3, 4)
	for i := range fa {
		if fa[i] != fb[i] {
			t.Fatalf("forecast not deterministic at %d", i)
		}
	}
}
