package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stockdash/internal/dashboard"
)

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	sel := m.state.Selection()
	headerText := " stockdash"
	if !sel.IsZero() {
		headerText += "    " + dashboard.ChartTitle(sel.Symbol, sel.TimeFrame)
	}
	headerBar := headerBarStyle.Render(padOrTrunc(headerText, m.width))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderList(),
		" ",
		m.renderRight(),
	)

	footerLeft := " q quit  up/dn move  enter select  1-4 frame  left/right inspect  r reload  p png"
	footerRight := m.status + " "
	gap := max(m.width-len(footerLeft)-len(footerRight), 0)
	footerBar := footerBarStyle.Render(padOrTrunc(footerLeft+strings.Repeat(" ", gap)+footerRight, m.width))

	return headerBar + "\n" + m.renderTimeFrameBar() + "\n" + body + "\n" + footerBar
}

// tfButtonLabel is the text of time-frame button tf.
func tfButtonLabel(tf dashboard.TimeFrame) string {
	return " " + string(tf) + " "
}

// tfButtonAt returns the time-frame button under column x, or -1.
func tfButtonAt(x int) int {
	col := tfBarStart
	for i, tf := range dashboard.TimeFrames() {
		w := len(tfButtonLabel(tf))
		if x >= col && x < col+w {
			return i
		}
		col += w + 1
	}
	return -1
}

func (m Model) renderTimeFrameBar() string {
	active := m.current().TimeFrame
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", tfBarStart))
	for i, tf := range dashboard.TimeFrames() {
		if i > 0 {
			b.WriteString(" ")
		}
		st := buttonStyle
		if tf == active {
			st = buttonOnStyle
		}
		b.WriteString(st.Render(tfButtonLabel(tf)))
	}
	return b.String()
}

func (m Model) renderList() string {
	var b strings.Builder
	b.WriteString(colHeaderStyle.Render(padOrTrunc(fmt.Sprintf("  %-6s %12s %8s", "Symbol", "Price", "Profit"), listWidth)))

	selected := m.state.Selection().Symbol
	rows := m.list.Rows()
	end := min(m.listTop+m.listRows(), len(rows))
	for i := m.listTop; i < end; i++ {
		r := rows[i]
		hl := i == m.cursor
		marker := "  "
		if r.Symbol == selected {
			marker = "> "
		}
		b.WriteString("\n")
		b.WriteString(hlStyle(dimStyle, hl).Render(marker))
		b.WriteString(hlStyle(symbolStyle, hl).Render(fmt.Sprintf("%-6s", r.Symbol)))
		b.WriteString(hlStyle(lipgloss.NewStyle(), hl).Render(" "))
		b.WriteString(hlStyle(priceStyle, hl).Render(fmt.Sprintf("%12s", r.BookValue)))
		b.WriteString(hlStyle(lipgloss.NewStyle(), hl).Render(" "))
		b.WriteString(hlStyle(profitStyle(r.Profit), hl).Render(fmt.Sprintf("%8s", r.Profit)))
		pad := listWidth - (2 + 6 + 1 + 12 + 1 + 8)
		b.WriteString(hlStyle(lipgloss.NewStyle(), hl).Render(strings.Repeat(" ", max(pad, 0))))
	}
	return lipgloss.NewStyle().Width(listWidth).MaxWidth(listWidth).Render(b.String())
}

func (m Model) renderRight() string {
	w, _ := m.chart.Size()
	tooltip := dimStyle.Render(padOrTrunc(" "+m.chart.Tooltip(), w))
	return lipgloss.JoinVertical(lipgloss.Left,
		m.chart.View(),
		tooltip,
		m.viewport.View(),
	)
}

// renderDetails builds the details panel text: the three labels, then the
// company overview.
func (m Model) renderDetails() string {
	d := m.details
	if d.Symbol == "" {
		return ""
	}
	wrap := lipgloss.NewStyle().Width(max(m.viewport.Width-1, 10))

	var b strings.Builder
	styles := []lipgloss.Style{symbolStyle, priceStyle, profitStyle(d.Profit)}
	for i, l := range d.Labels() {
		name, value, _ := strings.Cut(l, ": ")
		b.WriteString(labelStyle.Render(name + ":"))
		b.WriteString(" ")
		b.WriteString(styles[i].Render(value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render(dashboard.OverviewHeading))
	b.WriteString("\n")
	for _, line := range d.Summary {
		var lb strings.Builder
		for _, sp := range line {
			lb.WriteString(spanStyle(sp).Render(sp.Text))
		}
		b.WriteString(wrap.Render(lb.String()))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
