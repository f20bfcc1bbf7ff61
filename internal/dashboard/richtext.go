package dashboard

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Span is a run of text with one set of attributes.
type Span struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
}

// Line is one rendered line of rich text.
type Line []Span

// String returns the line without attributes.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// PlainText joins lines with newlines.
func PlainText(lines []Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, "\n")
}

// ParseSummary turns a company summary, which the API sends as trusted HTML,
// into lines of styled spans. Inline emphasis tags become attributes, block
// tags and <br> become line breaks, and entities are unescaped. Whitespace is
// collapsed as a browser would.
func ParseSummary(s string) []Line {
	p := summaryParser{}
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return p.finish()
		case html.TextToken:
			if p.skip == 0 {
				p.text(string(z.Text()))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			p.open(atom.Lookup(name), tt == html.SelfClosingTagToken)
		case html.EndTagToken:
			name, _ := z.TagName()
			p.close(atom.Lookup(name))
		}
	}
}

type summaryParser struct {
	lines     []Line
	cur       Line
	bold      int
	italic    int
	underline int
	skip      int
}

func (p *summaryParser) open(a atom.Atom, selfClosing bool) {
	switch a {
	case atom.B, atom.Strong:
		p.bold++
	case atom.I, atom.Em:
		p.italic++
	case atom.U:
		p.underline++
	case atom.Br:
		p.breakLine(true)
	case atom.P, atom.Div, atom.Ul, atom.Ol, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		p.paragraph()
	case atom.Li:
		p.breakLine(false)
		p.cur = append(p.cur, Span{Text: "• "})
	case atom.Script, atom.Style:
		if !selfClosing {
			p.skip++
		}
	}
}

func (p *summaryParser) close(a atom.Atom) {
	switch a {
	case atom.B, atom.Strong:
		p.bold = max(p.bold-1, 0)
	case atom.I, atom.Em:
		p.italic = max(p.italic-1, 0)
	case atom.U:
		p.underline = max(p.underline-1, 0)
	case atom.P, atom.Div, atom.Ul, atom.Ol, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		p.paragraph()
	case atom.Li:
		p.breakLine(false)
	case atom.Script, atom.Style:
		p.skip = max(p.skip-1, 0)
	}
}

func (p *summaryParser) text(s string) {
	t := collapseSpace(s)
	if t == "" {
		return
	}
	if len(p.cur) == 0 || strings.HasSuffix(p.cur[len(p.cur)-1].Text, " ") {
		t = strings.TrimLeft(t, " ")
		if t == "" {
			return
		}
	}
	sp := Span{Text: t, Bold: p.bold > 0, Italic: p.italic > 0, Underline: p.underline > 0}
	if n := len(p.cur); n > 0 {
		last := &p.cur[n-1]
		if last.Bold == sp.Bold && last.Italic == sp.Italic && last.Underline == sp.Underline {
			last.Text += sp.Text
			return
		}
	}
	p.cur = append(p.cur, sp)
}

// breakLine ends the current line. force keeps an empty line (for <br>).
func (p *summaryParser) breakLine(force bool) {
	if n := len(p.cur); n > 0 {
		p.cur[n-1].Text = strings.TrimRight(p.cur[n-1].Text, " ")
	}
	if len(p.cur) > 0 || force {
		p.lines = append(p.lines, p.cur)
	}
	p.cur = nil
}

// paragraph ends the current line and leaves one blank line before the next
// block.
func (p *summaryParser) paragraph() {
	p.breakLine(false)
	if n := len(p.lines); n > 0 && len(p.lines[n-1]) > 0 {
		p.lines = append(p.lines, Line{})
	}
}

func (p *summaryParser) finish() []Line {
	p.breakLine(false)
	for len(p.lines) > 0 && len(p.lines[len(p.lines)-1]) == 0 {
		p.lines = p.lines[:len(p.lines)-1]
	}
	return p.lines
}

// collapseSpace folds whitespace runs to one space, keeping a single leading
// or trailing space when the input had one.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
