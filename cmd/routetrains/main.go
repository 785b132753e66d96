package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"railwatch/internal/collector"
	"railwatch/internal/config"
	"railwatch/internal/gtfs"
	"railwatch/internal/irail"
	"railwatch/internal/metrics"
	"railwatch/internal/publisher"
	"railwatch/internal/sink"
	"railwatch/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.Load()

	// CLI flags
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Directory for the output CSV file")
	flag.DurationVar(&cfg.FetchDelay, "delay", cfg.FetchDelay, "Pause between vehicle fetches")
	flag.Parse()

	// SIGINT/SIGTERM ends the run cleanly so open sinks get closed
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var mcol *metrics.Collector
	if cfg.MetricsAddr != "" {
		mcol = metrics.NewCollector()
		srv := mcol.Serve(cfg.MetricsAddr, logger)
		defer shutdownMetrics(srv)
	}

	csvSink, err := sink.NewRouteCSV(cfg.OutputDir, cfg.Location, logger)
	if err != nil {
		logger.Error("failed to open output file", "error", err)
		os.Exit(1)
	}

	sinks := []collector.Sink{csvSink}
	if cfg.DBPath != "" {
		db, err := storage.Open(cfg.DBPath, logger)
		if err != nil {
			logger.Error("failed to open archive database", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, db)
	}
	if cfg.NATSURL != "" {
		pub, err := publisher.NewNATS(cfg.NATSURL, logger)
		if err != nil {
			logger.Error("failed to connect to nats", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, pub)
	}
	defer closeSinks(sinks, logger)

	feed := gtfs.NewClient(cfg.GTFSBaseURL, logger)
	api := irail.NewClient(cfg.APIBaseURL, cfg.Lang, logger)

	routes := collector.NewRoutes(feed, api, sinks, mcol, cfg.FetchDelay, logger)
	if err := routes.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("collection interrupted")
			return
		}
		logger.Error("collection failed", "error", err)
		closeSinks(sinks, logger)
		os.Exit(1)
	}

	logger.Info("results saved", "path", csvSink.Path())
}

func closeSinks(sinks []collector.Sink, logger *slog.Logger) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			logger.Error("close sink failed", "error", err)
		}
	}
}

func shutdownMetrics(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
