// Command jobhawk runs the application engine: discover postings, score them
// against the operator profile, and apply under admission control.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobhawk/jobhawk/config"
	"github.com/jobhawk/jobhawk/internal/bootstrap"
)

func main() {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		bootstrap.InitLogger().Error("fatal error", "error", err)
		os.Exit(1)
	}

	logger := bootstrap.InitLogger()
	if cfg.IsDev {
		logger = bootstrap.InitDevLogger()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) error {
	engine, err := bootstrap.BuildEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := engine.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close engine failed", "error", cerr)
		}
	}()

	logger.InfoContext(ctx, "jobhawk starting",
		"profile", engine.Profile.Name,
		"once", cfg.Engine.Once,
		"interval", cfg.Engine.Interval,
		"score_floor", cfg.Engine.ScoreFloor)

	if cfg.Engine.Once {
		_, err := engine.Cycle.Run(ctx)
		return err
	}

	for {
		if _, err := engine.Cycle.Run(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			// A failed cycle is logged and the loop continues; the
			// next cycle starts from the last durable checkpoint.
			logger.ErrorContext(ctx, "cycle failed", "error", err)
		}

		if err := waitForNext(ctx, cfg.Engine.Interval); err != nil {
			return err
		}
	}
}

func waitForNext(ctx context.Context, interval time.Duration) error {
	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
