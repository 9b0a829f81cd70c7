package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"ledgerd/internal/accounts"
	"ledgerd/internal/auth"
	"ledgerd/internal/cli"
	apphttp "ledgerd/internal/http"
	"ledgerd/internal/ledger"
	applog "ledgerd/internal/log"
	"ledgerd/internal/tools"
)

func main() {
	cfg, logger := cli.Bootstrap()

	logger.Info("Starting ledgerd",
		"address", cfg.Addr,
		"database", cfg.DBPath)

	repo := cli.InitSQLite(logger, cfg.DBPath)
	defer repo.Close()

	credentials := accounts.NewService(repo, cfg.PBKDF2Iterations)
	gate := auth.NewGate(credentials)
	books := ledger.NewService(repo)
	toolSvc := tools.NewService(gate, credentials, books)

	srv := apphttp.NewServer(cfg.Addr, toolSvc, repo, applog.New(logger, applog.ComponentHTTP))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server listening", "address", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
