package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/outliner/internal/api"
	"github.com/dgallion1/outliner/internal/config"
	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/pipeline"
	"github.com/dgallion1/outliner/internal/resultstore"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the outliner HTTP service",
	Long: `Start the outliner HTTP service.

The service accepts document uploads and returns inferred outlines,
either synchronously (POST /api/outline) or through the async job API
(POST /api/ingest). Configuration comes from environment variables
(PORT, OUTLINER_API_KEY, WORKER_COUNT, RESULT_SINK_URL, the scoring
weights, and more).

Examples:
  outliner serve                 # Start on default port 8095
  outliner serve --port 3000     # Start on custom port
  PORT=3000 outliner serve       # Same, via environment`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		cfg := config.Load()
		if servePort != "" {
			cfg.Port = servePort
		}
		oc, err := cfg.Outline()
		if err != nil {
			log.Error("invalid configuration", "error", err)
			return err
		}
		extractor, err := outline.NewExtractor(oc)
		if err != nil {
			log.Error("invalid configuration", "error", err)
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Optional result sink.
		var sink *resultstore.Client
		if cfg.ResultSinkURL != "" {
			sink = resultstore.NewClient(cfg.ResultSinkURL, cfg.ResultSinkAPIKey)
			if err := sink.WaitReady(ctx, 30*time.Second); err != nil {
				log.Error("result sink unreachable", "url", cfg.ResultSinkURL, "error", err)
				return err
			}
			log.Info("result sink ready", "url", cfg.ResultSinkURL)
		}

		orch := pipeline.NewOrchestrator(cfg, extractor, sink, log)
		orch.Start(ctx)

		srv := api.NewServer(orch, log, cfg)

		httpServer := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Graceful shutdown on context cancellation (SIGINT/SIGTERM).
		go func() {
			<-cmd.Context().Done()
			log.Info("shutting down...")

			orch.Stop()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			httpServer.Shutdown(shutdownCtx)

			if sink != nil {
				sink.Close()
			}
		}()

		log.Info("starting outliner", "port", cfg.Port, "workers", cfg.WorkerCount)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
}
