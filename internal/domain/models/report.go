package models

import "time"

// HistoryRow is one line of the recent-history table: the observed value
// and its rolling mean, when defined.
type HistoryRow struct {
	Date    time.Time `json:"date"`
	Actual  float64   `json:"actual"`
	Mean    float64   `json:"mean,omitempty"`
	HasMean bool      `json:"has_mean"`
}

// ForecastRow is one line of the forecast table.
type ForecastRow struct {
	Date       time.Time `json:"date"`
	Prediction float64   `json:"prediction"`
}

// Report is the assembled output of one forecast run: recent history with
// rolling means, the forecast horizon, and a sparkline spanning both.
type Report struct {
	Source       string        `json:"source"`
	Window       int           `json:"window"`
	Horizon      int           `json:"horizon"`
	History      []HistoryRow  `json:"history"`
	Forecast     []ForecastRow `json:"forecast"`
	Sparkline    string        `json:"sparkline"`
	LastActual   float64       `json:"last_actual"`
	NextForecast *float64      `json:"next_forecast,omitempty"`
	GeneratedAt  time.Time     `json:"generated_at"`
}
