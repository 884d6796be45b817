// Package forecast implements the rolling-mean smoother and the naive
// moving-average forecaster built on top of it.
package forecast

import (
	"errors"
	"fmt"
	"time"

	"TrendCast/internal/domain/models"
	"TrendCast/pkg/util"
)

var (
	// ErrInvalidWindow is returned when the window is not in [1, len(series)].
	ErrInvalidWindow = errors.New("window out of range")
	// ErrInvalidHorizon is returned when the horizon is negative.
	ErrInvalidHorizon = errors.New("horizon must be non-negative")
)

// RollingMean computes the trailing mean of the last window observations
// at every position of the series. Positions before the first full window
// carry Valid=false; there is no partial-window averaging. The result is
// positionally aligned with the input.
func RollingMean(series models.Series, window int) (models.RollingMeanSeries, error) {
	if window < 1 || window > len(series) {
		return nil, fmt.Errorf("%w: window=%d, n=%d", ErrInvalidWindow, window, len(series))
	}

	out := make(models.RollingMeanSeries, len(series))
	sum := 0.0
	for i, p := range series {
		sum += p.Value
		if i >= window {
			sum -= series[i-window].Value
		}
		out[i] = models.MAPoint{Date: p.Date}
		if i >= window-1 {
			out[i].Mean = sum / float64(window)
			out[i].Valid = true
		}
	}
	return out, nil
}

// Forecast extends the final window's mean horizon periods into the
// future. Every forecast value equals the mean of the last window
// observed values; forecast values are never fed back into the window.
// Future dates repeat the cadence of the last two observed dates
// (calendar months when the series steps by months, monthly by default
// for a single-point series).
func Forecast(series models.Series, window, horizon int) (models.ForecastSeries, error) {
	if window < 1 || window > len(series) {
		return nil, fmt.Errorf("%w: window=%d, n=%d", ErrInvalidWindow, window, len(series))
	}
	if horizon < 0 {
		return nil, fmt.Errorf("%w: horizon=%d", ErrInvalidHorizon, horizon)
	}
	if horizon == 0 {
		return models.ForecastSeries{}, nil
	}

	sum := 0.0
	for _, p := range series[len(series)-window:] {
		sum += p.Value
	}
	mean := sum / float64(window)

	out := make(models.ForecastSeries, horizon)
	for i, d := range futureDates(series, horizon) {
		out[i] = models.Point{Date: d, Value: mean}
	}
	return out, nil
}

// futureDates extrapolates horizon dates past the end of the series.
func futureDates(series models.Series, horizon int) []time.Time {
	last := series.Last().Date
	monthly := true
	var step time.Duration
	if len(series) >= 2 {
		prev := series[len(series)-2].Date
		monthly = util.IsMonthlyStep(prev, last)
		step = last.Sub(prev)
	}

	dates := make([]time.Time, horizon)
	for i := range dates {
		if monthly {
			dates[i] = util.AddMonths(last, i+1)
		} else {
			dates[i] = last.Add(time.Duration(i+1) * step)
		}
	}
	return dates
}
