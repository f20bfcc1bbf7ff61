// Package report prints the dashboard's contents as plain console output:
// the stock list as a table, then the details panel and a price summary for
// one symbol.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"stockdash/internal/dashboard"
	"stockdash/pkg/stocksapi"
)

// Options controls the output.
type Options struct {
	Symbol    string
	TimeFrame dashboard.TimeFrame
	Location  *time.Location
	// Plain disables colours, for pipes and tests.
	Plain bool
}

// Write prints the list table, then the details and price summary of
// opts.Symbol (or the first symbol when it is absent).
func Write(w io.Writer, docs *stocksapi.Documents, opts Options) error {
	var list dashboard.List
	list.Build(&docs.Stats)
	WriteList(w, list.Rows(), opts.Plain)

	sym, ok := dashboard.ResolveSymbol(opts.Symbol, &docs.Stats)
	if !ok {
		return fmt.Errorf("stats document has no symbols")
	}
	d, err := dashboard.BuildDetails(sym, docs)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	WriteDetails(w, d)

	tf := opts.TimeFrame
	if tf == "" {
		tf = dashboard.DefaultTimeFrame
	}
	series, err := docs.PriceSeries(sym, string(tf))
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	WriteSeries(w, dashboard.ChartTitle(sym, tf), series, opts.Location, opts.Plain)
	return nil
}

// WriteList renders the stock picker rows as a table.
func WriteList(w io.Writer, rows []dashboard.Row, plain bool) {
	t := newTable(w, plain)
	t.AppendHeader(table.Row{"Symbol", "Price", "Profit"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Symbol, r.BookValue, r.Profit})
	}
	t.Render()
}

// WriteDetails prints the label lines and the overview as plain text.
func WriteDetails(w io.Writer, d dashboard.Details) {
	for _, l := range d.Labels() {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, dashboard.OverviewHeading)
	if s := dashboard.PlainText(d.Summary); s != "" {
		fmt.Fprintln(w, s)
	}
}

// WriteSeries prints first, last, low and high of a price series. Missing
// prices are skipped.
func WriteSeries(w io.Writer, title string, s stocksapi.Series, loc *time.Location, plain bool) {
	fmt.Fprintln(w, title)

	first, last, lo, hi := -1, -1, -1, -1
	for i, v := range s.Value {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
		if lo < 0 || v < s.Value[lo] {
			lo = i
		}
		if hi < 0 || v > s.Value[hi] {
			hi = i
		}
	}
	if first < 0 {
		fmt.Fprintln(w, "no prices")
		return
	}

	t := newTable(w, plain)
	t.AppendHeader(table.Row{"", "Date", "Price"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	for _, p := range []struct {
		name string
		i    int
	}{{"First", first}, {"Last", last}, {"Low", lo}, {"High", hi}} {
		t.AppendRow(table.Row{p.name, dateAt(s, p.i, loc), dashboard.FormatPrice(s.Value[p.i])})
	}
	t.Render()
}

func dateAt(s stocksapi.Series, i int, loc *time.Location) string {
	if i >= len(s.TimeStamp) {
		return ""
	}
	return dashboard.FormatDate(s.TimeStamp[i], loc)
}

func newTable(w io.Writer, plain bool) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if plain {
		t.SetStyle(table.StyleLight)
	} else {
		t.SetStyle(table.StyleColoredDark)
	}
	t.Style().Options.DrawBorder = false
	t.Style().Format.Header = text.FormatDefault
	return t
}

// Summary is a one-line description of a load, for logs and the console
// footer.
func Summary(docs *stocksapi.Documents) string {
	return strings.Join([]string{
		fmt.Sprintf("%d symbols", docs.Stats.Len()),
		fmt.Sprintf("%d profiles", docs.Profiles.Len()),
		fmt.Sprintf("%d series", docs.Series.Len()),
	}, ", ")
}
