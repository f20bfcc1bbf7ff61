package dashboard

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatBookValue formats a book value as currency: 150 -> "$150",
// 1234.5 -> "$1,234.5". Non-finite values render as "-".
func FormatBookValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return "$" + humanize.Commaf(v)
}

// ProfitPercent converts a profit fraction to a whole percent by flooring
// profit*100 in decimal arithmetic: 0.1234 -> 12, 0.999 -> 99, 0.29 -> 29.
// Truncation is intentional; the display never rounds up.
func ProfitPercent(profit float64) int64 {
	if math.IsNaN(profit) || math.IsInf(profit, 0) {
		return 0
	}
	return decimal.NewFromFloat(profit).Shift(2).Floor().IntPart()
}

// FormatProfit formats a profit fraction as an integer percent, e.g. "23%".
func FormatProfit(profit float64) string {
	if math.IsNaN(profit) || math.IsInf(profit, 0) {
		return "-"
	}
	return fmt.Sprintf("%d%%", ProfitPercent(profit))
}

// FormatPrice formats a chart price with two decimals, e.g. "$120.50".
func FormatPrice(p float64) string {
	if math.IsNaN(p) {
		return "-"
	}
	return fmt.Sprintf("$%.2f", p)
}

// FormatTooltip is the hover text for one chart point.
func FormatTooltip(p float64) string {
	return "Price: " + FormatPrice(p)
}

// FormatDate converts unix seconds to a M/D/YYYY label in loc.
func FormatDate(ts int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(ts, 0).In(loc).Format("1/2/2006")
}

// DateLabels converts every timestamp with FormatDate.
func DateLabels(ts []int64, loc *time.Location) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = FormatDate(t, loc)
	}
	return out
}

// ChartTitle is the dataset label shown above the chart.
func ChartTitle(sym string, tf TimeFrame) string {
	return fmt.Sprintf("%s Stock Price (%s)", sym, tf)
}
