package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"TrendCast/internal/domain/models"
	"TrendCast/internal/sparkline"
	"TrendCast/internal/usecase"
	xlogger "TrendCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

type fixedSource struct {
	serie models.Series
}

func (s *fixedSource) Name() string { return "fixed" }

func (s *fixedSource) Load(context.Context) (models.Series, error) {
	return s.serie, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordReportBuild(string)      {}
func (nopMetrics) RecordError(string)            {}
func (nopMetrics) RecordLastForecast(float64)    {}
func (nopMetrics) RecordLatency(string, float64) {}
func (nopMetrics) SetWSClients(int)              {}

func newTestHandler(t *testing.T) (*ForecastEchoHandler, *echo.Echo) {
	t.Helper()
	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json"})
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	pts := make([]models.Point, 12)
	for i := range pts {
		pts[i] = models.Point{Date: start.AddDate(0, i, 0), Value: 100 + float64(i)}
	}
	src := &fixedSource{serie: models.NewSeries(pts)}

	builder := usecase.NewReportBuilder(src, sparkline.New(), nil, nopMetrics{}, log, time.Minute)
	h := NewForecastEchoHandler(log, builder, src, nil, NewHub(log, nopMetrics{}))

	e := echo.New()
	h.RegisterRoutes(e)
	return h, e
}

func doRequest(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestForecastEndpoint(t *testing.T) {
	_, e := newTestHandler(t)

	rec := doRequest(e, "/api/forecast?window=3&horizon=4&history=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Status int           `json:"status"`
		Data   models.Report `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Status != http.StatusOK {
		t.Errorf("envelope status = %d", body.Status)
	}
	if body.Data.Window != 3 || body.Data.Horizon != 4 {
		t.Errorf("report params = %d/%d, want 3/4", body.Data.Window, body.Data.Horizon)
	}
	if len(body.Data.History) != 5 || len(body.Data.Forecast) != 4 {
		t.Errorf("rows = %d history, %d forecast", len(body.Data.History), len(body.Data.Forecast))
	}
	if !strings.ContainsRune(body.Data.Sparkline, '|') {
		t.Errorf("sparkline missing separator: %q", body.Data.Sparkline)
	}
}

func TestForecastDefaults(t *testing.T) {
	_, e := newTestHandler(t)

	rec := doRequest(e, "/api/forecast")
	var body struct {
		Data models.Report `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Data.Window != 3 || body.Data.Horizon != 6 || len(body.Data.History) != 10 {
		t.Errorf("defaults not applied: window=%d horizon=%d history=%d",
			body.Data.Window, body.Data.Horizon, len(body.Data.History))
	}
}

func TestForecastValidation(t *testing.T) {
	_, e := newTestHandler(t)

	for _, path := range []string{
		"/api/forecast?window=-1",
		"/api/forecast?horizon=-2",
		"/api/forecast?window=100", // larger than the 12-point series
	} {
		rec := doRequest(e, path)
		var body struct {
			Status int `json:"status"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal %s: %v", path, err)
		}
		if body.Status != http.StatusBadRequest {
			t.Errorf("%s: envelope status = %d, want 400", path, body.Status)
		}
	}
}

func TestSeriesEndpoint(t *testing.T) {
	_, e := newTestHandler(t)

	rec := doRequest(e, "/api/series")
	var body struct {
		Data models.SeriesResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Data.Source != "fixed" {
		t.Errorf("source = %q", body.Data.Source)
	}
	if len(body.Data.Points) != 12 {
		t.Errorf("points = %d, want 12", len(body.Data.Points))
	}
}

func TestHealthEndpoint(t *testing.T) {
	_, e := newTestHandler(t)

	rec := doRequest(e, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("health = %v", body)
	}
}

func TestDashboardServed(t *testing.T) {
	_, e := newTestHandler(t)

	rec := doRequest(e, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "TrendCast") {
		t.Error("dashboard page missing title")
	}
}
