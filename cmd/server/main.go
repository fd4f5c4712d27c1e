package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/archithareddy21/portfolio-project/internal/api"
	"github.com/archithareddy21/portfolio-project/internal/config"
	"github.com/archithareddy21/portfolio-project/internal/extract"
	"github.com/archithareddy21/portfolio-project/internal/pipeline"
	"github.com/archithareddy21/portfolio-project/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage.
	st, err := store.Open(cfg.DataDir)
	if err != nil {
		log.Error("failed to open store", "error", err)
		os.Exit(1)
	}

	extractor := extract.NewService(cfg.PDFFallbackPdftotext)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, st, extractor, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(st, orch, extractor, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		st.Close()
	}()

	log.Info("starting resume service", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
