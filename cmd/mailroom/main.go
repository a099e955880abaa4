package main

import (
	"context"
	"log/slog"
	"os"

	"mailroom/internal/cli"
	"mailroom/internal/services"
	"mailroom/internal/shell"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(slog.LevelInfo)
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.SlogLevel())

	repo := cli.InitSQLite(logger, cfg.DBPath)
	defer repo.Close()

	letters := services.NewLetterService(repo, cfg.LettersDir)

	sh := shell.New(repo, letters, os.Stdin, os.Stdout)
	if err := sh.Run(context.Background()); err != nil {
		logger.Error("Shell terminated", "error", err)
		os.Exit(1)
	}

	logger.Info("Mailroom closed", "db", cfg.DBPath)
}
