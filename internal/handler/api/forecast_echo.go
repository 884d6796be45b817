package api

import (
	"errors"
	"net/http"
	"time"

	"TrendCast/internal/domain/models"
	domrepo "TrendCast/internal/domain/repository"
	"TrendCast/internal/forecast"
	"TrendCast/internal/service/ratelimit"
	"TrendCast/internal/sparkline"
	"TrendCast/internal/usecase"
	xhttp "TrendCast/pkg/http"
	xlogger "TrendCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ForecastEchoHandler serves the dashboard and the forecast API.
type ForecastEchoHandler struct {
	logger  *xlogger.Logger
	builder *usecase.ReportBuilder
	source  domrepo.SeriesSource
	live    *usecase.LiveSeries // nil when live ingestion is disabled
	hub     *Hub
	rl      *ratelimit.Limiter
	started time.Time
}

func NewForecastEchoHandler(
	logger *xlogger.Logger,
	builder *usecase.ReportBuilder,
	source domrepo.SeriesSource,
	live *usecase.LiveSeries,
	hub *Hub,
) *ForecastEchoHandler {
	return &ForecastEchoHandler{
		logger:  logger,
		builder: builder,
		source:  source,
		live:    live,
		hub:     hub,
		rl:      ratelimit.New(),
		started: time.Now(),
	}
}

func (h *ForecastEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Dashboard)
	e.GET("/healthz", h.Health)
	e.GET("/ws", h.WS)

	g := e.Group("/api")
	g.GET("/forecast", h.Forecast)
	g.GET("/series", h.Series)
	g.GET("/logs", h.Logs)
}

func (h *ForecastEchoHandler) Dashboard(c echo.Context) error {
	return c.HTML(http.StatusOK, dashboardHTML)
}

func (h *ForecastEchoHandler) Forecast(c echo.Context) error {
	if !h.rl.Allow(c.RealIP()+":forecast", 10, 5) {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limited"})
	}

	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	params := usecase.BuildParams{Window: req.Window, Horizon: req.Horizon, History: req.History}

	var (
		report *models.Report
		err    error
	)
	if c.QueryParam("live") == "true" && h.live != nil {
		report, err = h.builder.BuildFrom(h.live.Snapshot(), h.live.Name(), params)
	} else {
		report, err = h.builder.Build(c.Request().Context(), params)
	}
	if err != nil {
		if isRequestError(err) {
			return xhttp.BadRequestResponse(c, map[string]string{"error": err.Error()})
		}
		h.logger.Error("forecast build error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, report)
}

func (h *ForecastEchoHandler) Series(c echo.Context) error {
	series, err := h.source.Load(c.Request().Context())
	if err != nil {
		h.logger.Error("series load error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, models.SeriesResponse{
		Source: h.source.Name(),
		Points: series,
	})
}

func (h *ForecastEchoHandler) Logs(c echo.Context) error {
	collector := h.logger.Collector()
	if collector == nil {
		return xhttp.SuccessResponse(c, []xlogger.Entry{})
	}
	return xhttp.SuccessResponse(c, collector.Entries())
}

func (h *ForecastEchoHandler) Health(c echo.Context) error {
	res := map[string]interface{}{
		"status":     "ok",
		"uptime":     time.Since(h.started).Round(time.Second).String(),
		"ws_clients": h.hub.ClientCount(),
	}
	if h.live != nil {
		res["live_points"] = h.live.Len()
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ForecastEchoHandler) WS(c echo.Context) error {
	return h.hub.ServeWS(c.Response(), c.Request())
}

// isRequestError reports whether the failure was caused by the request
// parameters rather than the backend.
func isRequestError(err error) bool {
	return errors.Is(err, forecast.ErrInvalidWindow) ||
		errors.Is(err, forecast.ErrInvalidHorizon) ||
		errors.Is(err, sparkline.ErrEmptyInput) ||
		errors.Is(err, sparkline.ErrSplitOutOfRange)
}
