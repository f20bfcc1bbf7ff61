package chart

import (
	"github.com/charmbracelet/lipgloss"
)

// Renderer exclusively owns the dashboard's single chart.
type Renderer struct {
	width, height int
	lineStyle     lipgloss.Style
	cursorStyle   lipgloss.Style

	current *Chart
	built   int
}

// NewRenderer creates a renderer drawing charts of the given size.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:       max(width, 10),
		height:      max(height, 4),
		lineStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		cursorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Render disposes the current chart and constructs a new one for prices
// labelled by labels.
func (r *Renderer) Render(prices []float64, labels []string, title string) error {
	if len(prices) != len(labels) {
		return ErrLengthMismatch
	}
	if r.current != nil {
		r.current.Close()
	}
	r.current = newChart(title, prices, labels, r.width, r.height, r.lineStyle, r.cursorStyle)
	r.built++
	return nil
}

// Resize changes the chart size and rebuilds the current chart, keeping its
// cursor.
func (r *Renderer) Resize(width, height int) {
	width, height = max(width, 10), max(height, 4)
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	if r.current == nil {
		return
	}
	old := r.current
	cursor := old.Cursor()
	r.current = newChart(old.title, old.prices, old.labels, r.width, r.height, r.lineStyle, r.cursorStyle)
	old.Close()
	r.current.setCursor(cursor)
	r.built++
}

// Current returns the live chart, or nil before the first render.
func (r *Renderer) Current() *Chart { return r.current }

// Built counts the charts constructed so far.
func (r *Renderer) Built() int { return r.built }

// Size returns the chart size in cells.
func (r *Renderer) Size() (int, int) { return r.width, r.height }

// View renders the live chart.
func (r *Renderer) View() string {
	if r.current == nil {
		return ""
	}
	return r.current.View()
}

// MoveCursor shifts the hover cursor by delta points.
func (r *Renderer) MoveCursor(delta int) {
	if r.current == nil {
		return
	}
	r.current.setCursor(r.current.cursor + delta)
}

// HoverColumn moves the cursor to the point nearest column col of the chart.
func (r *Renderer) HoverColumn(col int) {
	if r.current == nil {
		return
	}
	r.current.setCursor(r.current.nearest(col))
}

// Tooltip returns the hover text for the cursor point.
func (r *Renderer) Tooltip() string {
	if r.current == nil {
		return ""
	}
	return r.current.Tooltip()
}
