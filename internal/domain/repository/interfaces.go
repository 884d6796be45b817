package repository

import (
	"context"

	"TrendCast/internal/domain/models"
)

// SeriesSource yields the ordered series of observations to forecast.
type SeriesSource interface {
	// Name identifies the source in reports and metrics labels.
	Name() string
	Load(ctx context.Context) (models.Series, error)
}

// Metrics records operational measurements.
type Metrics interface {
	RecordReportBuild(source string)
	RecordError(kind string)
	RecordLastForecast(value float64)
	RecordLatency(op string, seconds float64)
	SetWSClients(n int)
}
