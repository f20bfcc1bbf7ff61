package dashboard

import "stockdash/pkg/stocksapi"

// Row is one entry of the stock picker.
type Row struct {
	Symbol    string
	BookValue string
	Profit    string
}

// List is the stock picker's rows, one per symbol of the stats document.
type List struct {
	rows []Row
}

// Build clears the list and adds one row per symbol in document order. The
// reserved key never produces a row, and rebuilding never duplicates rows.
func (l *List) Build(stats *stocksapi.StatsDoc) {
	l.Clear()
	for _, sym := range stats.Symbols() {
		st, _ := stats.Get(sym)
		l.rows = append(l.rows, Row{
			Symbol:    sym,
			BookValue: FormatBookValue(st.BookValue),
			Profit:    FormatProfit(st.Profit),
		})
	}
}

// Clear removes every row.
func (l *List) Clear() { l.rows = nil }

// Rows returns the rows in display order.
func (l *List) Rows() []Row { return l.rows }

// Len returns the number of rows.
func (l *List) Len() int { return len(l.rows) }

// Index returns the row position of sym, or -1.
func (l *List) Index(sym string) int {
	for i, r := range l.rows {
		if r.Symbol == sym {
			return i
		}
	}
	return -1
}

// Request is the action bound to row i: that symbol at the current frame.
func (l *List) Request(i int, current TimeFrame) (Request, bool) {
	if i < 0 || i >= len(l.rows) {
		return Request{}, false
	}
	return Request{Symbol: l.rows[i].Symbol, TimeFrame: current}, true
}
