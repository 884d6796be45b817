package usecase

import (
	"context"
	"fmt"
	"time"

	"TrendCast/internal/domain/models"
	domrepo "TrendCast/internal/domain/repository"
	"TrendCast/internal/forecast"
	"TrendCast/internal/sparkline"
	"TrendCast/pkg/cache"
	"TrendCast/pkg/logger"
)

// ReportBuilder assembles a forecast report from a series source: it
// loads observations, computes the rolling mean and the flat forecast,
// renders the sparkline, and caches the result.
type ReportBuilder struct {
	source   domrepo.SeriesSource
	renderer *sparkline.Renderer
	cache    cache.Service
	metrics  domrepo.Metrics
	log      *logger.Logger
	cacheTTL time.Duration
}

func NewReportBuilder(
	source domrepo.SeriesSource,
	renderer *sparkline.Renderer,
	cacheSvc cache.Service,
	metrics domrepo.Metrics,
	log *logger.Logger,
	cacheTTL time.Duration,
) *ReportBuilder {
	return &ReportBuilder{
		source:   source,
		renderer: renderer,
		cache:    cacheSvc,
		metrics:  metrics,
		log:      log,
		cacheTTL: cacheTTL,
	}
}

// BuildParams selects the shape of one report.
type BuildParams struct {
	Window  int
	Horizon int
	History int
}

// Build produces the report for the builder's source. Results are cached
// by (source, window, horizon, history) for the configured TTL.
func (b *ReportBuilder) Build(ctx context.Context, p BuildParams) (*models.Report, error) {
	key := cache.GenerateKeyWithParams("report", b.source.Name(), p.Window, p.Horizon, p.History)
	if b.cache != nil {
		var cached models.Report
		if err := b.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	start := time.Now()
	report, err := b.build(ctx, p)
	if err != nil {
		return nil, err
	}
	b.metrics.RecordReportBuild(b.source.Name())
	b.metrics.RecordLatency("report_build", time.Since(start).Seconds())

	if b.cache != nil {
		if err := b.cache.Set(ctx, key, report, b.cacheTTL); err != nil {
			b.log.Warn("report cache write failed", logger.Error(err))
		}
	}
	return report, nil
}

// BuildFrom produces a report for an already-loaded series, bypassing
// the source and the cache. Used for live series snapshots.
func (b *ReportBuilder) BuildFrom(series models.Series, sourceName string, p BuildParams) (*models.Report, error) {
	return b.assemble(series, sourceName, p)
}

func (b *ReportBuilder) build(ctx context.Context, p BuildParams) (*models.Report, error) {
	series, err := b.source.Load(ctx)
	if err != nil {
		b.metrics.RecordError("source_load")
		return nil, fmt.Errorf("load series from %s: %w", b.source.Name(), err)
	}
	return b.assemble(series, b.source.Name(), p)
}

func (b *ReportBuilder) assemble(series models.Series, sourceName string, p BuildParams) (*models.Report, error) {
	ma, err := forecast.RollingMean(series, p.Window)
	if err != nil {
		b.metrics.RecordError("rolling_mean")
		return nil, err
	}
	fc, err := forecast.Forecast(series, p.Window, p.Horizon)
	if err != nil {
		b.metrics.RecordError("forecast")
		return nil, err
	}

	report := &models.Report{
		Source:      sourceName,
		Window:      p.Window,
		Horizon:     p.Horizon,
		History:     historyRows(series, ma, p.History),
		Forecast:    make([]models.ForecastRow, len(fc)),
		LastActual:  series.Last().Value,
		GeneratedAt: time.Now().UTC(),
	}
	for i, pt := range fc {
		report.Forecast[i] = models.ForecastRow{Date: pt.Date, Prediction: pt.Value}
	}
	if len(fc) > 0 {
		report.NextForecast = &fc[0].Value
		b.metrics.RecordLastForecast(fc[0].Value)
	}

	values := append(series.Values(), fc.Values()...)
	line, err := b.renderer.Render(values, len(series))
	if err != nil {
		b.metrics.RecordError("sparkline")
		return nil, err
	}
	report.Sparkline = line
	return report, nil
}

// historyRows zips the last n observations with their rolling means.
// The mean series is positionally aligned with the observations.
func historyRows(series models.Series, ma models.RollingMeanSeries, n int) []models.HistoryRow {
	if n > len(series) {
		n = len(series)
	}
	if n < 0 {
		n = 0
	}
	offset := len(series) - n

	rows := make([]models.HistoryRow, n)
	for i := 0; i < n; i++ {
		p := series[offset+i]
		m := ma[offset+i]
		rows[i] = models.HistoryRow{Date: p.Date, Actual: p.Value, Mean: m.Mean, HasMean: m.Valid}
	}
	return rows
}
