package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stockdash/internal/dashboard"
)

// Styles.
var (
	headerBarStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	footerBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	buttonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238"))
	buttonOnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	symbolStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	gainStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	priceStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	colHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	labelStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	highlightBG    = lipgloss.Color("236") // dark grey background
)

// hlStyle returns a copy of s with the highlight background applied when hl is true.
func hlStyle(s lipgloss.Style, hl bool) lipgloss.Style {
	if hl {
		return s.Background(highlightBG)
	}
	return s
}

// profitStyle colours a formatted profit by sign.
func profitStyle(p string) lipgloss.Style {
	if strings.HasPrefix(p, "-") {
		return lossStyle
	}
	return gainStyle
}

// spanStyle maps rich-text attributes onto a terminal style.
func spanStyle(s dashboard.Span) lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}
	return st
}

// padOrTrunc pads s with spaces to width, or truncates if longer. s must be
// unstyled ASCII.
func padOrTrunc(s string, width int) string {
	if width <= 0 {
		return ""
	}
	n := len(s)
	if n >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-n)
}
