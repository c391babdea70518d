package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/knickoriuk/Galactic-Rotation/cmd/heatmap/app"
)

func main() {
	config, err := app.NewConfigFromCLI()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stdout, nil)).Error(err.Error())
		os.Exit(1)
	}

	level := slog.LevelInfo
	if config.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err = app.Run(ctx, config, logger); err != nil {
		logger.Error(err.Error())

		cancel()
		os.Exit(1)
	}
}
