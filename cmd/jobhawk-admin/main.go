// Command jobhawk-admin inspects and maintains the engine's durable state:
// the applied ledger, the retry set, cumulative stats, and the history
// archive.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jobhawk/jobhawk/config"
	"github.com/jobhawk/jobhawk/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2)
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2)
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1)
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1)
	}
}

func commands() map[string]command {
	return map[string]command{
		"stats": {
			name:        "stats",
			description: "Show cumulative application statistics",
			run:         runStats,
		},
		"daily-report": {
			name:        "daily-report",
			description: "Show applications per day",
			run:         runDailyReport,
		},
		"history": {
			name:        "history",
			description: "List records from the history archive",
			run:         runHistory,
		},
		"retry": {
			name:        "retry",
			description: "Inspect or clear the retry set",
			run:         runRetry,
		},
		"applied": {
			name:        "applied",
			description: "Inspect the applied-id ledger",
			run:         runApplied,
		},
		"export": {
			name:        "export",
			description: "Export history archive records as JSON",
			run:         runExport,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: jobhawk-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-16s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}
