package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/jobhawk/jobhawk/config"
	"github.com/jobhawk/jobhawk/internal/adapters/browserpilot"
	"github.com/jobhawk/jobhawk/internal/adapters/feed"
	"github.com/jobhawk/jobhawk/internal/adapters/remoteok"
	"github.com/jobhawk/jobhawk/internal/core"
	"github.com/jobhawk/jobhawk/internal/data"
	"github.com/jobhawk/jobhawk/internal/domain/letter"
	"github.com/jobhawk/jobhawk/internal/domain/model"
	"github.com/jobhawk/jobhawk/internal/domain/rank"
	"github.com/jobhawk/jobhawk/internal/domain/scoring"
	"github.com/jobhawk/jobhawk/internal/observability/notify/webhook"
	"github.com/jobhawk/jobhawk/internal/observability/statsd"
	"github.com/jobhawk/jobhawk/internal/service"
)

// Engine is the fully wired application engine plus the handles an operator
// process needs to run and shut it down.
type Engine struct {
	Cycle   *service.CycleService
	Profile *model.UserProfile
	Archive core.HistoryArchive

	closers []func() error
}

// Close releases engine resources in reverse acquisition order.
func (e *Engine) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BuildEngine wires every component from configuration. The returned engine
// owns its resources; callers must Close it.
func BuildEngine(cfg config.AppConfig, logger *slog.Logger) (*Engine, error) {
	profile, err := data.LoadProfile(cfg.State.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	store, err := data.NewFileStateStore(cfg.State.Dir)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	engine := &Engine{Profile: profile}

	if cfg.State.HistoryEnabled() {
		db, err := data.OpenHistoryDB(cfg.State.HistoryDBPath)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		engine.closers = append(engine.closers, db.Close)
		engine.Archive = data.NewHistoryRepo(db, &data.RealTimeProvider{})
	}

	sources, err := buildSources(cfg.Sources, logger)
	if err != nil {
		_ = engine.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	executor, err := browserpilot.NewClient(browserpilot.Config{
		BaseURL:    cfg.Executor.BaseURL,
		Timeout:    cfg.Executor.Timeout,
		RetryLimit: cfg.Executor.RetryLimit,
		AuthToken:  cfg.Executor.AuthToken,
	})
	if err != nil {
		_ = engine.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	metrics, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.Metrics.IsEnabled(),
		Address: cfg.Observability.Metrics.StatsdAddress,
		Prefix:  cfg.Observability.Metrics.Prefix,
		Logger:  logger,
	})
	if err != nil {
		_ = engine.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	engine.closers = append(engine.closers, metrics.Close)

	var notifier service.CycleNotifier
	if cfg.Observability.Notifications.Enabled {
		notifier, err = webhook.NewClient(webhook.Config{
			URL:        cfg.Observability.Notifications.WebhookURL,
			Username:   cfg.Observability.Notifications.Username,
			Timeout:    cfg.Observability.Notifications.Timeout,
			RetryLimit: cfg.Observability.Notifications.RetryLimit,
		})
		if err != nil {
			_ = engine.Close()
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
	}

	clock := &data.RealTimeProvider{}
	pacer := service.NewAdmissionController(service.AdmissionControllerOptions{
		Config: service.PacingConfig{
			BusinessMin: cfg.Engine.Pacing.BusinessMin,
			BusinessMax: cfg.Engine.Pacing.BusinessMax,
			EveningMin:  cfg.Engine.Pacing.EveningMin,
			EveningMax:  cfg.Engine.Pacing.EveningMax,
			NightMin:    cfg.Engine.Pacing.NightMin,
			NightMax:    cfg.Engine.Pacing.NightMax,
			Adaptive:    cfg.Engine.Pacing.Adaptive,
			MaxPerCycle: cfg.Engine.Pacing.MaxPerCycle,
			MaxPerHour:  cfg.Engine.Pacing.MaxPerHour,
			MinDelay:    cfg.Engine.Pacing.MinDelay,
		},
		Clock:  clock,
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		Logger: logger,
	})

	engine.Cycle = service.NewCycleService(service.CycleServiceOptions{
		Deps: service.CycleDeps{
			Sources:  sources,
			Executor: executor,
			Letters:  letter.NewGenerator(profile),
			Store:    store,
			Archive:  engine.Archive,
			Ledger:   service.NewLedgerService(service.LedgerServiceOptions{Store: store, Logger: logger}),
			Pacer:    pacer,
			Classifier: service.NewOutcomeClassifier(service.OutcomeClassifierOptions{
				MaxAttempts: cfg.Engine.MaxAttempts,
				Logger:      logger,
			}),
			Scorer:   scoring.NewEngine(scoring.EngineOptions{Weights: scoring.DefaultWeights(), Logger: logger}),
			Ranker:   rank.NewRanker(rank.DefaultConfig()),
			Clock:    clock,
			Sleeper:  data.TimerSleeper{},
			Metrics:  metrics,
			Notifier: notifier,
		},
		Config: service.CycleConfig{
			Profile:         profile,
			ScoreFloor:      cfg.Engine.ScoreFloor,
			CheckpointEvery: cfg.Engine.CheckpointEvery,
		},
		Logger: logger,
	})

	return engine, nil
}

func buildSources(cfg config.SourcesConfig, logger *slog.Logger) ([]core.SourceAdapter, error) {
	var sources []core.SourceAdapter

	if cfg.RemoteOK.Enabled {
		sources = append(sources, remoteok.New(remoteok.Config{
			BaseURL:           cfg.RemoteOK.BaseURL,
			Timeout:           cfg.Timeout,
			MaxPostings:       cfg.RemoteOK.MaxPostings,
			RequestsPerMinute: cfg.RemoteOK.RequestsPerMinute,
		}, logger))
	}

	for _, pair := range cfg.Feeds() {
		adapter, err := feed.New(feed.Config{
			Platform:  pair[0],
			URL:       pair[1],
			ItemsPath: cfg.FeedItemsPath,
			Timeout:   cfg.Timeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", pair[0], err)
		}
		sources = append(sources, adapter)
	}

	if len(sources) == 0 {
		return nil, errors.New("no source adapters enabled")
	}
	return sources, nil
}
