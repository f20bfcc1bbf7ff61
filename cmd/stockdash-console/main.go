// One-shot console view of the stocks API: loads the three documents once and
// prints the stock list, the details of one symbol and a price summary.
//
// Usage:
//
//	go build -o bin/stockdash-console ./cmd/stockdash-console/
//	bin/stockdash-console [-config stockdash.yaml] [-symbol MSFT] [-timeframe 1y] [-plain]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"stockdash/internal/config"
	"stockdash/internal/dashboard"
	"stockdash/internal/report"
	"stockdash/internal/util"
	"stockdash/pkg/stocksapi"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", os.Getenv("STOCKDASH_CONFIG"), "path to YAML config (optional)")
	symbol := flag.String("symbol", "", "symbol to detail (default from config)")
	timeframe := flag.String("timeframe", "", "time frame: 1mo, 3mo, 1y or 5y (default from config)")
	plain := flag.Bool("plain", false, "disable colours")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	logger := util.NewLogger(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	sym := cfg.Dashboard.Symbol
	if *symbol != "" {
		sym = *symbol
	}
	tfName := cfg.Dashboard.TimeFrame
	if *timeframe != "" {
		tfName = *timeframe
	}
	tf, err := dashboard.ParseTimeFrame(tfName)
	if err != nil {
		logger.Error("invalid time frame", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	client := stocksapi.NewClient(cfg.API.BaseURL,
		stocksapi.WithTimeout(cfg.API.Timeout),
		stocksapi.WithRateLimit(cfg.API.RatePerSec, cfg.API.Burst),
	)
	docs, err := client.FetchAll(ctx)
	if err != nil {
		logger.Error("fetching documents", "base_url", cfg.API.BaseURL, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded", "summary", report.Summary(&docs))

	err = report.Write(os.Stdout, &docs, report.Options{
		Symbol:    sym,
		TimeFrame: tf,
		Location:  cfg.TimeLocation(),
		Plain:     *plain,
	})
	if err != nil {
		logger.Error("printing report", "symbol", sym, "timeframe", tf, "error", err)
		os.Exit(1)
	}
}
