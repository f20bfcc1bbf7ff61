// Package chart draws the price line chart in the terminal with ntcharts and
// exports it to PNG with go-chart. A Renderer owns at most one live Chart;
// every Render disposes the previous chart and constructs a new one.
package chart

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"

	"stockdash/internal/dashboard"
)

// ErrLengthMismatch is returned when prices and labels differ in length.
var ErrLengthMismatch = errors.New("prices and labels differ in length")

// ErrClosed is returned by operations on a disposed chart.
var ErrClosed = errors.New("chart is closed")

// Chart is one constructed line chart and its hover cursor.
type Chart struct {
	title  string
	prices []float64
	labels []string

	width, height int
	lineStyle     lipgloss.Style
	cursorStyle   lipgloss.Style

	lc     *linechart.Model
	cursor int
	closed bool
}

func newChart(title string, prices []float64, labels []string, w, h int, line, cur lipgloss.Style) *Chart {
	c := &Chart{
		title:       title,
		prices:      append([]float64(nil), prices...),
		labels:      append([]string(nil), labels...),
		width:       w,
		height:      h,
		lineStyle:   line,
		cursorStyle: cur,
		cursor:      len(prices) - 1,
	}
	c.draw()
	return c
}

// Title returns the dataset label.
func (c *Chart) Title() string { return c.title }

// Points returns the number of plotted points.
func (c *Chart) Points() int { return len(c.prices) }

// Labels returns the x-axis labels, one per point.
func (c *Chart) Labels() []string { return c.labels }

// Prices returns the plotted prices.
func (c *Chart) Prices() []float64 { return c.prices }

// Closed reports whether the chart has been disposed.
func (c *Chart) Closed() bool { return c.closed }

// Close releases the chart's canvas. A closed chart renders nothing.
func (c *Chart) Close() {
	c.closed = true
	c.lc = nil
	c.prices = nil
	c.labels = nil
}

// Cursor returns the index of the hovered point, or -1 for an empty chart.
func (c *Chart) Cursor() int {
	if len(c.prices) == 0 {
		return -1
	}
	return c.cursor
}

// View renders the chart.
func (c *Chart) View() string {
	if c.closed || c.lc == nil {
		return ""
	}
	return c.lc.View()
}

// bounds returns the min and max of the finite prices.
func (c *Chart) bounds() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range c.prices {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			continue
		}
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return lo, hi, !math.IsInf(lo, 1)
}

// yRange pads the data range so the line never sits on the frame. The
// range follows the data; it is not anchored at zero.
func (c *Chart) yRange() (float64, float64) {
	lo, hi, ok := c.bounds()
	if !ok {
		return 0, 1
	}
	margin := (hi - lo) * 0.05
	if margin == 0 {
		margin = math.Max(math.Abs(hi)*0.01, 1)
	}
	return lo - margin, hi + margin
}

func yLabel(_ int, v float64) string {
	switch {
	case math.Abs(v) >= 1000:
		return fmt.Sprintf("%.0f", v)
	case math.Abs(v) >= 100:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// hiddenX keeps the x axis free of labels.
func hiddenX(int, float64) string { return "" }

func (c *Chart) draw() {
	n := len(c.prices)
	minY, maxY := c.yRange()
	maxX := float64(max(n-1, 1))

	lc := linechart.New(c.width, c.height,
		0, maxX,
		minY, maxY,
		linechart.WithXYSteps(4, 4),
		linechart.WithXLabelFormatter(hiddenX),
		linechart.WithYLabelFormatter(yLabel),
		linechart.WithStyles(lipgloss.Style{}, lipgloss.Style{}, c.lineStyle),
	)

	if n == 1 && finite(c.prices[0]) {
		p := canvas.Float64Point{X: 0, Y: c.prices[0]}
		lc.DrawBrailleLineWithStyle(p, p, c.lineStyle)
	}
	for i := 0; i < n-1; i++ {
		if !finite(c.prices[i]) || !finite(c.prices[i+1]) {
			continue
		}
		p1 := canvas.Float64Point{X: float64(i), Y: c.prices[i]}
		p2 := canvas.Float64Point{X: float64(i + 1), Y: c.prices[i+1]}
		lc.DrawBrailleLineWithStyle(p1, p2, c.lineStyle)
	}

	if n > 1 {
		x := float64(c.cursor)
		lc.DrawBrailleLineWithStyle(
			canvas.Float64Point{X: x, Y: minY},
			canvas.Float64Point{X: x, Y: maxY},
			c.cursorStyle,
		)
	}

	lc.DrawXYAxisAndLabel()
	c.lc = &lc
}

func (c *Chart) setCursor(i int) {
	n := len(c.prices)
	if n == 0 || c.closed {
		return
	}
	i = min(max(i, 0), n-1)
	if i == c.cursor {
		return
	}
	c.cursor = i
	c.draw()
}

// axisWidth estimates the columns taken by the y labels and axis line.
func (c *Chart) axisWidth() int {
	lo, hi := c.yRange()
	return max(len(yLabel(0, lo)), len(yLabel(0, hi))) + 1
}

// nearest maps a column inside the chart to the closest point index.
func (c *Chart) nearest(col int) int {
	n := len(c.prices)
	if n <= 1 {
		return 0
	}
	graphW := c.width - c.axisWidth()
	if graphW < 2 {
		return 0
	}
	rel := float64(col-c.axisWidth()) / float64(graphW-1)
	rel = math.Min(math.Max(rel, 0), 1)
	return int(math.Round(rel * float64(n-1)))
}

// Tooltip is the hover text for the cursor point: its date label and the
// price with two decimals.
func (c *Chart) Tooltip() string {
	i := c.Cursor()
	if i < 0 || c.closed {
		return ""
	}
	return strings.TrimSpace(c.labels[i] + "  " + dashboard.FormatTooltip(c.prices[i]))
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
