package models

import (
	"sort"
	"time"
)

// Point is a single observation in a time series.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is an ordered sequence of observations, ascending by date.
type Series []Point

// NewSeries copies points and orders them by date ascending.
func NewSeries(points []Point) Series {
	s := make(Series, len(points))
	copy(s, points)
	sort.Slice(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
	return s
}

// Values extracts the numeric values in order.
func (s Series) Values() []float64 {
	vals := make([]float64, len(s))
	for i, p := range s {
		vals[i] = p.Value
	}
	return vals
}

// Last returns the most recent observation. Callers must check Len first.
func (s Series) Last() Point {
	return s[len(s)-1]
}

// Tail returns the last n points (all points when n exceeds the length,
// nothing when n <= 0).
func (s Series) Tail(n int) Series {
	if n <= 0 {
		return Series{}
	}
	if n > len(s) {
		n = len(s)
	}
	return s[len(s)-n:]
}

// MAPoint is one rolling-mean value aligned with an observation.
// Valid is false at positions with insufficient history.
type MAPoint struct {
	Date  time.Time `json:"date"`
	Mean  float64   `json:"mean"`
	Valid bool      `json:"valid"`
}

// RollingMeanSeries is positionally aligned with the series it was
// computed from.
type RollingMeanSeries []MAPoint

// ForecastSeries holds forecast points with synthetic future dates.
type ForecastSeries []Point

// Values extracts the forecast values in order.
func (f ForecastSeries) Values() []float64 {
	vals := make([]float64, len(f))
	for i, p := range f {
		vals[i] = p.Value
	}
	return vals
}
