// Package source provides the injectable series sources the forecaster
// consumes: a synthetic demo signal, CSV files, ClickHouse tables, and
// remote JSON endpoints.
package source

import (
	"context"
	"math"
	"time"

	"TrendCast/internal/domain/models"
	"TrendCast/pkg/util"
)

// DefaultSyntheticLength is the demo series length when none is configured.
const DefaultSyntheticLength = 36

// Synthetic generates a deterministic monthly demo signal: a linear trend
// with annual seasonality and a small 5-period cycle.
type Synthetic struct {
	start  time.Time
	length int
}

// NewSynthetic creates a synthetic source of the given length starting at
// start (2021-01-01 when zero).
func NewSynthetic(start time.Time, length int) *Synthetic {
	if start.IsZero() {
		start = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if length < 1 {
		length = DefaultSyntheticLength
	}
	return &Synthetic{start: start, length: length}
}

func (s *Synthetic) Name() string { return "synthetic" }

func (s *Synthetic) Load(_ context.Context) (models.Series, error) {
	points := make([]models.Point, s.length)
	for i := range points {
		seasonal := 12 * math.Sin((2*math.Pi*float64(i))/12)
		trend := 0.9 * float64(i)
		cyclical := float64((i%5)-2) * 1.8
		value := 120 + trend + seasonal + cyclical
		points[i] = models.Point{
			Date:  util.AddMonths(s.start, i),
			Value: math.Round(value*100) / 100,
		}
	}
	return models.NewSeries(points), nil
}
