package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ledgerd/internal/amqp"
	"ledgerd/internal/config"
	"ledgerd/internal/log"
	"ledgerd/internal/store/jsonfile"
	"ledgerd/internal/store/sqlite"
	"ledgerd/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the archive worker")
		os.Exit(1)
	}

	archive, err := sqlite.New(cfg.ArchiveDBPath)
	if err != nil {
		logger.Error("Failed to open archive database",
			"path", cfg.ArchiveDBPath,
			log.FieldError, err)
		os.Exit(1)
	}
	defer archive.Close()

	// The reconciliation pass reads the primary ledger file directly.
	source, err := jsonfile.New(cfg.JSONFilePath)
	if err != nil {
		logger.Warn("Failed to restore primary ledger, reconciling from empty",
			log.FieldLedgerPath, cfg.JSONFilePath,
			log.FieldError, err)
		source = jsonfile.Empty(cfg.JSONFilePath)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to message bus", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := worker.NewArchiveWorker(archive, source, cfg.ReconcileInterval)

	logger.Info("Archive worker started",
		"archive_path", cfg.ArchiveDBPath,
		log.FieldLedgerPath, cfg.JSONFilePath,
		"reconcile_interval", cfg.ReconcileInterval.String())

	if err := w.Run(ctx, client); err != nil {
		logger.Error("Archive worker failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Archive worker stopped")
}
