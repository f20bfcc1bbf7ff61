package dashboard

import (
	"stockdash/pkg/stocksapi"
)

// Details is the view model of the details panel.
type Details struct {
	Symbol    string
	BookValue string
	Profit    string
	Summary   []Line
}

// BuildDetails looks up sym in the stats and profile documents. A missing
// key is a *stocksapi.MissingKeyError; callers log it and keep the panel.
func BuildDetails(sym string, docs *stocksapi.Documents) (Details, error) {
	st, err := docs.Stat(sym)
	if err != nil {
		return Details{}, err
	}
	prof, err := docs.Profile(sym)
	if err != nil {
		return Details{}, err
	}
	return Details{
		Symbol:    sym,
		BookValue: FormatBookValue(st.BookValue),
		Profit:    FormatProfit(st.Profit),
		Summary:   ParseSummary(prof.Summary),
	}, nil
}

// Labels returns the three label lines in display order.
func (d Details) Labels() []string {
	return []string{
		"Company: " + d.Symbol,
		"Current Price: " + d.BookValue,
		"Profit: " + d.Profit,
	}
}

// OverviewHeading precedes the summary block.
const OverviewHeading = "Company Overview:"
