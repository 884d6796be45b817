package source

import (
	"context"
	"fmt"
	"time"

	"TrendCast/internal/domain/models"
	xhttp "TrendCast/pkg/http"
)

// HTTP fetches a series from a remote endpoint returning a JSON array of
// {"date": "YYYY-MM-DD", "value": n} objects.
type HTTP struct {
	client *xhttp.Client
	url    string
}

// NewHTTP creates an HTTP-backed series source.
func NewHTTP(client *xhttp.Client, url string) *HTTP {
	if client == nil {
		client = xhttp.NewClient()
	}
	return &HTTP{client: client, url: url}
}

func (h *HTTP) Name() string { return "http" }

func (h *HTTP) Load(ctx context.Context) (models.Series, error) {
	var rows []struct {
		Date  string  `json:"date"`
		Value float64 `json:"value"`
	}
	if err := h.client.GetJSON(ctx, h.url, &rows); err != nil {
		return nil, fmt.Errorf("fetch series: %w", err)
	}

	points := make([]models.Point, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			continue
		}
		points = append(points, models.Point{Date: date, Value: row.Value})
	}
	if len(points) == 0 {
		return nil, ErrNoData
	}
	return models.NewSeries(points), nil
}
