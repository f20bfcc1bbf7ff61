// Serves a fixture file on the stocks API endpoint paths so the dashboard can
// run without the remote API.
//
// Usage:
//
//	go build -o bin/stockdash-fixture ./cmd/stockdash-fixture/
//	bin/stockdash-fixture [-addr localhost:8090] [-file fixture.json]
//	STOCKDASH_BASE_URL=http://localhost:8090/api/stocks/ bin/stockdash
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stockdash/internal/fixture"
	"stockdash/internal/util"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", "localhost:8090", "listen address")
	file := flag.String("file", "", "fixture JSON (default: embedded sample)")
	prefix := flag.String("prefix", "/api/stocks/", "path prefix of the endpoints")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger := util.NewLogger(os.Stderr, *level, "text")

	var (
		srv *fixture.Server
		err error
	)
	if *file != "" {
		srv, err = fixture.LoadFile(*file, *prefix, logger)
	} else {
		srv, err = fixture.NewServer(fixture.Sample(), *prefix, logger)
	}
	if err != nil {
		logger.Error("loading fixture", "error", err)
		os.Exit(1)
	}

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	logger.Info("fixture server listening", "addr", *addr, "prefix", *prefix)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("serving", "error", err)
		os.Exit(1)
	}
}
