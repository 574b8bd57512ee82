package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"VaultSync/cmd"
	"VaultSync/internal/console"
	"VaultSync/internal/logger"
	"VaultSync/internal/version"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	l, err := logger.NewLogger("")
	slog.SetDefault(l)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err != nil {
		logger.Warn(ctx, "Failed to open log file: %v", err)
	}

	defer logger.Cleanup()

	// Recover from logger.FatalError so the log file is flushed
	defer func() {
		if logger.Recover(ctx, recover()) {
			exitCode = 1
		}
		if exitCode != 0 {
			fmt.Fprintln(os.Stderr, console.Parse(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} did not finish running successfully.", version.ApplicationName)))
		}
	}()

	opts, err := cmd.Parse(os.Args[1:])
	if err != nil {
		logger.FatalNoTrace(ctx, err.Error())
	}

	return cmd.Execute(ctx, opts, os.Stdout)
}
