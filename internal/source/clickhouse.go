package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"TrendCast/internal/domain/models"
)

// ClickHouse reads (date, value) rows from a table ordered by date. The
// table needs 'd Date' and 'v Float64' columns; nothing is ever written.
type ClickHouse struct {
	db    *sql.DB
	table string
}

// NewClickHouse creates a ClickHouse-backed series source.
func NewClickHouse(db *sql.DB, table string) *ClickHouse {
	return &ClickHouse{db: db, table: table}
}

func (c *ClickHouse) Name() string { return "clickhouse" }

func (c *ClickHouse) Load(ctx context.Context) (models.Series, error) {
	query := fmt.Sprintf("SELECT d, v FROM %s ORDER BY d ASC", c.table)
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("clickhouse query: %w", err)
	}
	defer rows.Close()

	var points []models.Point
	for rows.Next() {
		var (
			d time.Time
			v float64
		)
		if err := rows.Scan(&d, &v); err != nil {
			return nil, fmt.Errorf("clickhouse scan: %w", err)
		}
		points = append(points, models.Point{Date: d, Value: v})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("clickhouse rows: %w", err)
	}
	if len(points) == 0 {
		return nil, ErrNoData
	}
	return models.NewSeries(points), nil
}
