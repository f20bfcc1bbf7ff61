// Terminal stock dashboard: a stock picker, a time-frame bar, a price chart
// and a company details panel, fed by the stocks API.
//
// Usage:
//
//	go build -o bin/stockdash ./cmd/stockdash/
//	bin/stockdash [-config stockdash.yaml]
//
// Keys: up/down move, enter select, 1-4 time frame, left/right inspect
// prices, r reload, p save chart PNG, q quit. Rows, buttons and the chart
// also respond to the mouse.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"stockdash/internal/config"
	"stockdash/internal/dashboard"
	"stockdash/internal/tui"
	"stockdash/internal/util"
	"stockdash/pkg/stocksapi"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfgPath := flag.String("config", os.Getenv("STOCKDASH_CONFIG"), "path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := util.OpenLogFile(cfg.Logging.File, "stockdash")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := util.NewLogger(logFile, cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	tf, err := dashboard.ParseTimeFrame(cfg.Dashboard.TimeFrame)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	client := stocksapi.NewClient(cfg.API.BaseURL,
		stocksapi.WithTimeout(cfg.API.Timeout),
		stocksapi.WithRateLimit(cfg.API.RatePerSec, cfg.API.Burst),
	)
	logger.Info("starting", "base_url", cfg.API.BaseURL, "symbol", cfg.Dashboard.Symbol, "timeframe", tf)

	model := tui.New(tui.Options{
		Fetcher:   client,
		Logger:    logger,
		Location:  cfg.TimeLocation(),
		Symbol:    cfg.Dashboard.Symbol,
		TimeFrame: tf,
		ExportDir: cfg.Export.Dir,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	if cfg.Refresh.Cron != "" {
		refresher, err := tui.NewRefresher(cfg.Refresh.Cron, p.Send, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		refresher.Start()
		defer refresher.Stop()
	}

	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
