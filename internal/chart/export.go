package chart

import (
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Export sizes in pixels.
const (
	exportWidth  = 1024
	exportHeight = 480
)

// ExportPNG writes the live chart as a PNG image. Missing prices are left out.
func (r *Renderer) ExportPNG(w io.Writer) error {
	if r.current == nil {
		return fmt.Errorf("exporting chart: nothing rendered")
	}
	return r.current.ExportPNG(w)
}

// ExportPNG writes the chart as a PNG image.
func (c *Chart) ExportPNG(w io.Writer) error {
	if c.closed {
		return ErrClosed
	}

	var xs, ys []float64
	for i, p := range c.prices {
		if !finite(p) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, p)
	}
	if len(xs) < 2 {
		return fmt.Errorf("exporting chart: need at least 2 data points, got %d", len(xs))
	}

	lo, hi := c.yRange()
	graph := gochart.Chart{
		Title:  c.title,
		Width:  exportWidth,
		Height: exportHeight,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: gochart.XAxis{
			Style: gochart.Style{Hidden: true},
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.2f", f)
				}
				return ""
			},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name: c.title,
				Style: gochart.Style{
					StrokeColor: drawing.ColorFromHex("2563eb"),
					StrokeWidth: 2,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("chart render failed: %w", err)
	}
	return nil
}
