package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"ledgerd/internal/amqp"
	"ledgerd/internal/cli"
	"ledgerd/internal/worker"
)

func main() {
	cfg, logger := cli.Bootstrap()

	logger.Info("Starting ledgerd-worker", "database", cfg.DBPath)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the relay worker")
		os.Exit(1)
	}

	repo := cli.InitSQLite(logger, cfg.DBPath)
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	logger.Info("AMQP client initialized",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)

	relay := worker.NewRelay(repo, amqpClient, cfg.SyncBatchSize, cfg.SyncInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return relay.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Relay error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
