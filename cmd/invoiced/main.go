package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/freightdocs/invoice-extractor/internal/batch"
	"github.com/freightdocs/invoice-extractor/internal/common"
	"github.com/freightdocs/invoice-extractor/internal/export"
	"github.com/freightdocs/invoice-extractor/internal/extract"
	"github.com/freightdocs/invoice-extractor/internal/pdftext"
	"github.com/freightdocs/invoice-extractor/internal/server"
	"github.com/freightdocs/invoice-extractor/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	profile, err := extract.ProfileByName(cfg.Extract.Template)
	if err != nil {
		logger.Error("invalid template", "error", err)
		os.Exit(1)
	}
	logger.Info("using invoice template", "template", profile.Name)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var saver server.BatchSaver
	if cfg.Store.Path != "" {
		st, err := store.Open(ctx, cfg.Store.Path, logger)
		if err != nil {
			logger.Error("failed to open batch store", "error", err, "path", cfg.Store.Path)
			os.Exit(1)
		}
		defer st.Close()
		saver = st
	}

	parser := extract.NewParser(logger, profile)
	driver := batch.NewDriver(logger, pdftext.NewReader(), parser)
	exporter := export.NewService(logger)
	srv := server.NewServer(logger, driver, exporter, saver)

	httpSrv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           srv.Router(cfg.Server.MaxUploadsBytes),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
