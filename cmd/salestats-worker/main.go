package main

import (
	"context"
	"os"
	"time"

	"salestats/internal/amqp"
	"salestats/internal/cli"
	"salestats/internal/worker"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()

	logger.Info("Starting salestats-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	// The worker reads directly from SQLite: it consumes reseed events and
	// summarizes the freshly loaded dataset.
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	reportWorker := worker.NewReportWorker(repo)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	go func() {
		handler := func(msg *amqp.DatasetReseededMessage) error {
			return reportWorker.HandleReseedMessage(ctx, msg)
		}
		if err := amqpClient.ConsumeWithReconnect(ctx, handler); err != nil {
			if err != context.Canceled {
				logger.Error("Message consumption failed", "error", err)
			}
		}
	}()

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
