package chart

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"strings"
	"testing"
)

func TestRenderReplacesChart(t *testing.T) {
	r := NewRenderer(60, 12)
	if r.Current() != nil || r.View() != "" {
		t.Fatal("new renderer already holds a chart")
	}

	if err := r.Render([]float64{100, 110, 120}, []string{"1/1/1970", "1/2/1970", "1/3/1970"}, "AAPL Stock Price (5y)"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	first := r.Current()
	if first.Points() != 3 {
		t.Errorf("Points() = %d, want 3", first.Points())
	}
	if got := first.Labels(); len(got) != 3 || got[2] != "1/3/1970" {
		t.Errorf("Labels() = %v", got)
	}
	if first.Title() != "AAPL Stock Price (5y)" {
		t.Errorf("Title() = %q", first.Title())
	}
	if r.View() == "" {
		t.Error("View() is empty after Render")
	}

	if err := r.Render([]float64{1, 2}, []string{"a", "b"}, "MSFT Stock Price (1mo)"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !first.Closed() {
		t.Error("previous chart not closed after redraw")
	}
	if first.View() != "" {
		t.Error("closed chart still renders")
	}
	if r.Current() == first || r.Current().Points() != 2 {
		t.Error("renderer did not replace the chart")
	}
	if r.Built() != 2 {
		t.Errorf("Built() = %d, want 2", r.Built())
	}
}

func TestRenderLengthMismatch(t *testing.T) {
	r := NewRenderer(40, 10)
	_ = r.Render([]float64{1, 2}, []string{"a", "b"}, "x")
	prev := r.Current()

	err := r.Render([]float64{1, 2, 3}, []string{"a"}, "y")
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("Render error = %v, want ErrLengthMismatch", err)
	}
	if r.Current() != prev || prev.Closed() {
		t.Error("failed render disturbed the live chart")
	}
}

func TestYRangeNotAnchoredAtZero(t *testing.T) {
	r := NewRenderer(40, 10)
	_ = r.Render([]float64{100, 110, 120}, []string{"a", "b", "c"}, "x")
	lo, hi := r.Current().yRange()
	if lo <= 0 || lo >= 100 {
		t.Errorf("y min = %v, want just below 100", lo)
	}
	if hi <= 120 {
		t.Errorf("y max = %v, want above 120", hi)
	}
}

func TestYRangeFlatAndMissing(t *testing.T) {
	c := &Chart{prices: []float64{50, 50}}
	lo, hi := c.yRange()
	if lo >= 50 || hi <= 50 {
		t.Errorf("flat range = [%v, %v], want around 50", lo, hi)
	}

	c = &Chart{prices: []float64{math.NaN(), 10, math.NaN(), 20}}
	lo, hi = c.yRange()
	if lo >= 10 || hi <= 20 || math.IsNaN(lo) {
		t.Errorf("range with gaps = [%v, %v]", lo, hi)
	}
}

func TestTooltipAndCursor(t *testing.T) {
	r := NewRenderer(60, 12)
	_ = r.Render([]float64{100, 110.5, 120.126}, []string{"1/1/1970", "1/2/1970", "1/3/1970"}, "x")

	if got := r.Tooltip(); got != "1/3/1970  Price: $120.13" {
		t.Errorf("Tooltip() = %q", got)
	}
	r.MoveCursor(-1)
	if got := r.Tooltip(); !strings.HasSuffix(got, "Price: $110.50") {
		t.Errorf("Tooltip() after move = %q", got)
	}
	r.MoveCursor(-10)
	if r.Current().Cursor() != 0 {
		t.Errorf("Cursor() = %d, want clamped to 0", r.Current().Cursor())
	}

	r.HoverColumn(0)
	if r.Current().Cursor() != 0 {
		t.Errorf("HoverColumn(0) cursor = %d, want 0", r.Current().Cursor())
	}
	r.HoverColumn(59)
	if r.Current().Cursor() != 2 {
		t.Errorf("HoverColumn(59) cursor = %d, want 2", r.Current().Cursor())
	}
}

func TestResizeKeepsCursor(t *testing.T) {
	r := NewRenderer(40, 10)
	_ = r.Render([]float64{1, 2, 3, 4}, []string{"a", "b", "c", "d"}, "x")
	r.MoveCursor(-2)
	old := r.Current()

	r.Resize(80, 20)
	if !old.Closed() {
		t.Error("resize did not dispose the old chart")
	}
	if r.Current().Cursor() != 1 {
		t.Errorf("Cursor() after resize = %d, want 1", r.Current().Cursor())
	}
	if w, h := r.Size(); w != 80 || h != 20 {
		t.Errorf("Size() = %d,%d, want 80,20", w, h)
	}
}

func TestEmptySeries(t *testing.T) {
	r := NewRenderer(40, 10)
	if err := r.Render(nil, nil, "empty"); err != nil {
		t.Fatalf("Render(empty): %v", err)
	}
	if r.Current().Cursor() != -1 || r.Tooltip() != "" {
		t.Errorf("empty chart cursor=%d tooltip=%q", r.Current().Cursor(), r.Tooltip())
	}
}

func TestExportPNG(t *testing.T) {
	r := NewRenderer(40, 10)
	var buf bytes.Buffer
	if err := r.ExportPNG(&buf); err == nil {
		t.Error("ExportPNG before Render = nil error")
	}

	_ = r.Render([]float64{100, math.NaN(), 105, 103}, []string{"a", "b", "c", "d"}, "AAPL Stock Price (1y)")
	if err := r.ExportPNG(&buf); err != nil {
		t.Fatalf("ExportPNG: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("export is not a PNG: %v", err)
	}

	_ = r.Render([]float64{1}, []string{"a"}, "one")
	if err := r.ExportPNG(&buf); err == nil {
		t.Error("ExportPNG with one point = nil error")
	}
}
