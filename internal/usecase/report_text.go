package usecase

import (
	"fmt"
	"strings"

	"TrendCast/internal/domain/models"
)

const dateLayout = "2006-01-02"

// RenderText formats a report as the plain-text summary printed by the
// CLI: header, recent-history table, forecast table, and the sparkline.
func RenderText(r *models.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Moving-average forecast (%s)\n", r.Source)
	fmt.Fprintf(&sb, "Window size: %d\n", r.Window)
	fmt.Fprintf(&sb, "Forecast horizon: %d\n", r.Horizon)

	sb.WriteString("\nRecent history\n")
	sb.WriteString("Date        Actual    MA\n")
	sb.WriteString("----------------------------\n")
	for _, row := range r.History {
		ma := "    --  "
		if row.HasMean {
			ma = fmt.Sprintf("%8.2f", row.Mean)
		}
		fmt.Fprintf(&sb, "%s  %7.2f  %s\n", row.Date.Format(dateLayout), row.Actual, ma)
	}

	if len(r.Forecast) > 0 {
		sb.WriteString("\nForecast horizon\n")
		sb.WriteString("Date        Prediction\n")
		sb.WriteString("----------------------\n")
		for _, row := range r.Forecast {
			fmt.Fprintf(&sb, "%s  %10.2f\n", row.Date.Format(dateLayout), row.Prediction)
		}
	}

	sb.WriteString("\nASCII sparkline (| separates history/prediction)\n")
	sb.WriteString(r.Sparkline)
	sb.WriteString("\n")
	return sb.String()
}
