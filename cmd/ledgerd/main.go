package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ledgerd/internal/backend"
	"ledgerd/internal/config"
	ledgerdhttp "ledgerd/internal/http"
	"ledgerd/internal/log"
)

func main() {
	// Load .env file if present (ignore error in production)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentApp)
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.Create(backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		JSONFilePath: cfg.JSONFilePath,
		SQLiteDBPath: cfg.SQLiteDBPath,
		AMQPURL:      cfg.AMQPURL,
		AMQPExchange: cfg.AMQPExchange,
		AMQPQueue:    cfg.AMQPQueue,
	})
	if err != nil {
		logger.Error("Failed to create ledger backend",
			log.FieldBackend, cfg.DataBackend,
			log.FieldError, err)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup == nil {
			return
		}
		if err := result.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()

	server, err := ledgerdhttp.NewServer(":"+cfg.Port, result.Backend, result.Backend, result.Backend)
	if err != nil {
		logger.Error("Failed to create server", log.FieldError, err)
		os.Exit(1)
	}

	// Run the server in a goroutine so the main goroutine can wait on signals
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			"addr", server.Addr,
			log.FieldBackend, cfg.DataBackend)
		serverErr <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", log.FieldError, err)
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("Shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown failed", log.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Server stopped")
	}
}
