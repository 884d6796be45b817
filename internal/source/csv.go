package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"TrendCast/internal/domain/models"
)

// ErrNoData is returned when a source yields no usable observations.
var ErrNoData = errors.New("source: no valid observations")

// CSV loads observations from a file with 'date' (YYYY-MM-DD) and 'value'
// columns. Rows with a blank or unparseable field are skipped; the result
// is ordered by date.
type CSV struct {
	path string
}

// NewCSV creates a CSV-backed series source.
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

func (c *CSV) Name() string { return "csv" }

func (c *CSV) Load(_ context.Context) (models.Series, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()
	return readCSV(f)
}

func readCSV(r io.Reader) (models.Series, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	dateIdx, valueIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "date":
			dateIdx = i
		case "value":
			valueIdx = i
		}
	}
	if dateIdx < 0 || valueIdx < 0 {
		return nil, fmt.Errorf("csv must have 'date' and 'value' columns, got %v", header)
	}

	var points []models.Point
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if dateIdx >= len(record) || valueIdx >= len(record) {
			continue
		}
		dateStr := strings.TrimSpace(record[dateIdx])
		valStr := strings.TrimSpace(record[valueIdx])
		if dateStr == "" || valStr == "" {
			continue
		}
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		value, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			continue
		}
		points = append(points, models.Point{Date: date, Value: value})
	}

	if len(points) == 0 {
		return nil, ErrNoData
	}
	return models.NewSeries(points), nil
}
