// Package cli provides common initialization shared by cmd/ledgerd and
// cmd/ledgerd-worker.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"ledgerd/internal/config"
	"ledgerd/internal/log"
	"ledgerd/internal/storage"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger installs the process default text logger at the given
// level and returns it.
func SetupLogger(level string) *slog.Logger {
	return log.Setup(log.ParseLevel(level))
}

// Bootstrap loads the environment file, the configuration, and the
// logger, in that order: the log level comes from config, and config
// problems go to the configured logger. Exits the process when the
// configuration is invalid.
func Bootstrap() (*config.Config, *slog.Logger) {
	LoadEnvFile()
	cfg := config.Load()
	logger := SetupLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg, logger
}

// InitSQLite opens the repository with the given path.
// Returns the repository or exits the process on failure.
func InitSQLite(logger *slog.Logger, dbPath string) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}
