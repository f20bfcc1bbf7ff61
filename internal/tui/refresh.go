package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"
)

// Refresher reloads the current selection on a cron schedule.
type Refresher struct {
	cron *cron.Cron
	log  *slog.Logger
}

// NewRefresher registers a job that calls send(RefreshMsg{}) on every tick
// of spec, a standard five-field expression or a descriptor such as
// "@every 5m".
func NewRefresher(spec string, send func(tea.Msg), log *slog.Logger) (*Refresher, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		log.Debug("scheduled refresh")
		send(RefreshMsg{})
	}); err != nil {
		return nil, fmt.Errorf("register refresh %q: %w", spec, err)
	}
	return &Refresher{cron: c, log: log}, nil
}

// Start starts the scheduler.
func (r *Refresher) Start() {
	r.cron.Start()
	r.log.Info("refresh scheduler started", "entries", len(r.cron.Entries()))
}

// Stop stops the scheduler and waits for a running job.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
	r.log.Info("refresh scheduler stopped")
}
