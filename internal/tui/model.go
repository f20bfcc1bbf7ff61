// Package tui is the bubbletea stock dashboard: a stock picker, a time-frame
// bar, a price chart and a details panel, repainted by fetch-and-render
// cycles.
package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"stockdash/internal/chart"
	"stockdash/internal/dashboard"
	"stockdash/pkg/stocksapi"
)

// Fetcher loads the three documents of one cycle.
type Fetcher interface {
	FetchAll(ctx context.Context) (stocksapi.Documents, error)
}

// Options configures a Model.
type Options struct {
	Fetcher   Fetcher
	Logger    *slog.Logger
	Location  *time.Location // chart date labels
	Symbol    string         // initial symbol; the first listed one when absent
	TimeFrame dashboard.TimeFrame
	ExportDir string
}

// Messages.

// RefreshMsg reloads the current selection.
type RefreshMsg struct{}

type fetchedMsg struct {
	gen      uint64
	cycle    string
	req      dashboard.Request
	fallback bool // resolve the symbol against the stats document
	docs     stocksapi.Documents
	err      error
}

type exportedMsg struct {
	path string
	err  error
}

var errNoSymbols = errors.New("stats document lists no symbols")

// Layout.
const (
	listWidth   = 32
	headerLines = 2 // header bar + time-frame bar
	footerLines = 1
	tfBarStart  = 1
)

// Model is the dashboard's bubbletea model.
type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	fetcher Fetcher
	logger  *slog.Logger
	loc     *time.Location

	defaults  dashboard.Selection
	exportDir string

	state    *dashboard.State
	list     dashboard.List
	chart    *chart.Renderer
	details  dashboard.Details
	viewport viewport.Model

	cursor  int // highlighted list row
	listTop int // first visible list row
	status  string

	width, height int
	ready         bool
}

// New creates the dashboard model.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	tf := opts.TimeFrame
	if tf == "" {
		tf = dashboard.DefaultTimeFrame
	}
	dir := opts.ExportDir
	if dir == "" {
		dir = "."
	}

	vp := viewport.New(40, 10)
	vp.MouseWheelEnabled = true

	return Model{
		ctx:       ctx,
		cancel:    cancel,
		fetcher:   opts.Fetcher,
		logger:    logger,
		loc:       loc,
		defaults:  dashboard.Selection{Symbol: opts.Symbol, TimeFrame: tf},
		exportDir: dir,
		state:     dashboard.NewState(),
		chart:     chart.NewRenderer(48, 12),
		viewport:  vp,
		width:     80,
		height:    24,
	}
}

// State exposes the application state.
func (m Model) State() *dashboard.State { return m.state }

// Init starts the initial load.
func (m Model) Init() tea.Cmd {
	return m.startCycle(dashboard.Request{
		Symbol:    m.defaults.Symbol,
		TimeFrame: m.defaults.TimeFrame,
	}, true, "startup")
}

// current returns the committed selection, falling back to the defaults
// before the first successful cycle.
func (m *Model) current() dashboard.Selection {
	sel := m.state.Selection()
	if sel.IsZero() {
		return m.defaults
	}
	return sel
}

// startCycle issues a new generation and fetches all three documents.
func (m *Model) startCycle(req dashboard.Request, fallback bool, trigger string) tea.Cmd {
	gen := m.state.Begin()
	cycle := uuid.NewString()
	m.logger.Info("fetch cycle",
		"cycle", cycle, "gen", gen, "trigger", trigger,
		"symbol", req.Symbol, "timeframe", req.TimeFrame)

	ctx, f := m.ctx, m.fetcher
	return func() tea.Msg {
		docs, err := f.FetchAll(ctx)
		return fetchedMsg{gen: gen, cycle: cycle, req: req, fallback: fallback, docs: docs, err: err}
	}
}

// selectRow dispatches a cycle for list row i at the current time frame.
func (m *Model) selectRow(i int) tea.Cmd {
	req, ok := m.list.Request(i, m.current().TimeFrame)
	if !ok {
		return nil
	}
	m.cursor = i
	return m.startCycle(req, false, "row")
}

// selectTimeFrame dispatches a cycle for the current symbol at button i.
func (m *Model) selectTimeFrame(i int) tea.Cmd {
	sel := m.current()
	req, ok := dashboard.TimeFrameRequest(i, sel.Symbol)
	if !ok {
		return nil
	}
	return m.startCycle(req, m.state.Selection().IsZero(), "timeframe")
}

// refresh reloads the current selection.
func (m *Model) refresh(trigger string) tea.Cmd {
	sel := m.current()
	return m.startCycle(dashboard.Request{Symbol: sel.Symbol, TimeFrame: sel.TimeFrame}, m.state.Selection().IsZero(), trigger)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
			return m, nil
		case "down", "j":
			m.moveCursor(1)
			return m, nil
		case "enter":
			return m, m.selectRow(m.cursor)
		case "1", "2", "3", "4":
			return m, m.selectTimeFrame(int(msg.String()[0] - '1'))
		case "left", "h":
			m.chart.MoveCursor(-1)
			return m, nil
		case "right", "l":
			m.chart.MoveCursor(1)
			return m, nil
		case "r":
			return m, m.refresh("key")
		case "p":
			return m, m.exportChart()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		return m, nil

	case RefreshMsg:
		return m, m.refresh("cron")

	case fetchedMsg:
		m.applyFetched(msg)
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.logger.Error("exporting chart", "error", msg.err)
			return m, nil
		}
		m.logger.Info("exported chart", "path", msg.path)
		m.status = "saved " + msg.path
		return m, nil
	}

	return m, nil
}

// applyFetched finishes a cycle. Stale and failed cycles leave every piece
// of state untouched.
func (m *Model) applyFetched(msg fetchedMsg) {
	log := m.logger.With("cycle", msg.cycle, "gen", msg.gen)

	if !m.state.IsCurrent(msg.gen) {
		log.Debug("dropping stale response", "latest", m.state.Latest())
		return
	}
	if msg.err != nil {
		log.Error("fetch cycle failed", "symbol", msg.req.Symbol, "timeframe", msg.req.TimeFrame, "error", msg.err)
		return
	}

	sel, err := m.render(msg)
	if err != nil {
		log.Error("rendering", "symbol", msg.req.Symbol, "timeframe", msg.req.TimeFrame, "error", err)
		return
	}

	if !m.state.Commit(msg.gen, msg.docs, sel) {
		return
	}
	m.list.Build(&msg.docs.Stats)
	if i := m.list.Index(sel.Symbol); i >= 0 {
		m.cursor = i
	}
	m.ensureVisible()
	log.Info("rendered", "symbol", sel.Symbol, "timeframe", sel.TimeFrame, "points", m.chart.Current().Points())
}

// render draws the chart and details for msg. Every lookup happens before
// the chart is replaced, so a failure leaves the previous view intact.
func (m *Model) render(msg fetchedMsg) (dashboard.Selection, error) {
	sym := msg.req.Symbol
	if msg.fallback {
		s, ok := dashboard.ResolveSymbol(sym, &msg.docs.Stats)
		if !ok {
			return dashboard.Selection{}, errNoSymbols
		}
		sym = s
	}
	tf := msg.req.TimeFrame

	series, err := msg.docs.PriceSeries(sym, string(tf))
	if err != nil {
		return dashboard.Selection{}, err
	}
	details, err := dashboard.BuildDetails(sym, &msg.docs)
	if err != nil {
		return dashboard.Selection{}, err
	}

	labels := dashboard.DateLabels(series.TimeStamp, m.loc)
	if err := m.chart.Render(series.Value, labels, dashboard.ChartTitle(sym, tf)); err != nil {
		return dashboard.Selection{}, fmt.Errorf("%s %s: %w", sym, tf, err)
	}

	m.details = details
	m.viewport.SetContent(m.renderDetails())
	m.viewport.GotoTop()
	return dashboard.Selection{Symbol: sym, TimeFrame: tf}, nil
}

func (m *Model) moveCursor(delta int) {
	if m.list.Len() == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), m.list.Len()-1)
	m.ensureVisible()
}

// ensureVisible scrolls the list so the cursor row is on screen.
func (m *Model) ensureVisible() {
	rows := m.listRows()
	if m.cursor < m.listTop {
		m.listTop = m.cursor
	}
	if m.cursor >= m.listTop+rows {
		m.listTop = m.cursor - rows + 1
	}
	m.listTop = max(m.listTop, 0)
}

// exportChart renders the live chart to PNG and writes it in the background.
func (m *Model) exportChart() tea.Cmd {
	cur := m.chart.Current()
	if cur == nil {
		return nil
	}
	sel := m.current()
	var buf bytes.Buffer
	if err := m.chart.ExportPNG(&buf); err != nil {
		return func() tea.Msg { return exportedMsg{err: err} }
	}
	path := filepath.Join(m.exportDir, fmt.Sprintf("%s-%s.png", sel.Symbol, sel.TimeFrame))
	return func() tea.Msg {
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return exportedMsg{err: fmt.Errorf("writing %s: %w", path, err)}
		}
		return exportedMsg{path: path}
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	bodyTop := headerLines
	chartX := listWidth + 1
	_, chartH := m.chart.Size()

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.Y == 1 {
			if i := tfButtonAt(msg.X); i >= 0 {
				return m.selectTimeFrame(i)
			}
			return nil
		}
		if msg.X < listWidth && msg.Y > bodyTop {
			row := msg.Y - bodyTop - 1 + m.listTop
			if row < m.list.Len() {
				return m.selectRow(row)
			}
		}
		return nil

	case msg.Action == tea.MouseActionMotion:
		if msg.X >= chartX && msg.Y >= bodyTop && msg.Y < bodyTop+chartH {
			m.chart.HoverColumn(msg.X - chartX)
		}
		return nil

	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if msg.X >= chartX {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return cmd
		}
		if msg.Button == tea.MouseButtonWheelUp {
			m.listTop = max(m.listTop-1, 0)
		} else if m.listTop+m.listRows() < m.list.Len() {
			m.listTop++
		}
		return nil
	}
	return nil
}

// layout sizes the chart and details panel from the window size.
func (m *Model) layout() {
	bodyH := max(m.height-headerLines-footerLines, 4)
	rightW := max(m.width-listWidth-1, 20)
	chartH := max(bodyH*11/20, 4)
	vpH := max(bodyH-chartH-1, 1)

	m.chart.Resize(rightW, chartH)
	m.viewport.Width = rightW
	m.viewport.Height = vpH
	m.viewport.SetContent(m.renderDetails())
	m.ensureVisible()
}

// listRows is the number of stock rows that fit under the list header.
func (m *Model) listRows() int {
	return max(m.height-headerLines-footerLines-1, 1)
}
