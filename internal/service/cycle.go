package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jobhawk/jobhawk/internal/core"
	"github.com/jobhawk/jobhawk/internal/domain/model"
	"github.com/jobhawk/jobhawk/internal/domain/rank"
	"github.com/jobhawk/jobhawk/internal/domain/scoring"
	"github.com/jobhawk/jobhawk/internal/observability/statsd"
)

// fetchConcurrency bounds parallel source fetches per cycle.
const fetchConcurrency = 4

// CycleDeps bundles the collaborators the orchestrator drives. Sources,
// Executor, Letters, Store, Ledger, Pacer, Classifier, Scorer, Ranker, Clock,
// and Sleeper are required; Archive, Metrics, and Notifier are optional.
type CycleDeps struct {
	Sources    []core.SourceAdapter
	Executor   core.ActionExecutor
	Letters    core.CoverLetterGenerator
	Store      core.StateStore
	Archive    core.HistoryArchive
	Ledger     *LedgerService
	Pacer      *AdmissionController
	Classifier *OutcomeClassifier
	Scorer     *scoring.Engine
	Ranker     *rank.Ranker
	Clock      core.Clock
	Sleeper    core.Sleeper
	Metrics    statsd.Sink
	Notifier   CycleNotifier
}

// CycleConfig holds per-run tuning.
type CycleConfig struct {
	Profile *model.UserProfile

	// ScoreFloor is the minimum overall score admitted to the attempt
	// queue. Postings below it are recorded as skipped but stay
	// re-scoreable in later cycles.
	ScoreFloor float64

	// CheckpointEvery flushes durable state after this many successful
	// applications within a cycle, in addition to the end-of-cycle flush.
	CheckpointEvery int
}

// CycleServiceOptions groups dependencies for CycleService.
type CycleServiceOptions struct {
	Deps   CycleDeps
	Config CycleConfig
	Logger *slog.Logger
}

// CycleService runs one discovery-to-report cycle: load state, fetch from all
// platforms, merge the retry set ahead of fresh postings, dedup, score, rank,
// then walk the ranked queue applying one posting at a time under admission
// control. Attempts are strictly sequential; only source fetches fan out.
type CycleService struct {
	deps   CycleDeps
	cfg    CycleConfig
	logger *slog.Logger
}

// NewCycleService constructs a CycleService, panicking on any missing
// required dependency.
func NewCycleService(opts CycleServiceOptions) *CycleService {
	d := opts.Deps
	switch {
	case len(d.Sources) == 0:
		panic("at least one SourceAdapter is required")
	case d.Executor == nil:
		panic("ActionExecutor is required")
	case d.Letters == nil:
		panic("CoverLetterGenerator is required")
	case d.Store == nil:
		panic("StateStore is required")
	case d.Ledger == nil:
		panic("LedgerService is required")
	case d.Pacer == nil:
		panic("AdmissionController is required")
	case d.Classifier == nil:
		panic("OutcomeClassifier is required")
	case d.Scorer == nil:
		panic("scoring Engine is required")
	case d.Ranker == nil:
		panic("Ranker is required")
	case d.Clock == nil:
		panic("Clock is required")
	case d.Sleeper == nil:
		panic("Sleeper is required")
	}
	if opts.Config.Profile == nil {
		panic("Profile is required")
	}
	cfg := opts.Config
	if cfg.ScoreFloor <= 0 {
		cfg.ScoreFloor = 70
	}
	if cfg.CheckpointEvery <= 0 {
		cfg.CheckpointEvery = 10
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CycleService{deps: d, cfg: cfg, logger: logger}
}

// Run executes one full cycle and returns its summary. The summary is
// populated from whatever accumulated even when an error is returned.
// Cancellation mid-queue stops cleanly after the in-flight attempt and still
// flushes state.
func (s *CycleService) Run(ctx context.Context) (model.CycleSummary, error) {
	start := s.deps.Clock.Now()
	summary := model.CycleSummary{
		RunID:     uuid.NewString(),
		StartedAt: start,
	}
	logger := s.logger.With("run_id", summary.RunID)
	logger.InfoContext(ctx, "cycle started", "platforms", len(s.deps.Sources))

	if err := s.deps.Ledger.Load(ctx); err != nil {
		return summary, fmt.Errorf("cycle %s: %w", summary.RunID, err)
	}
	stats, err := s.deps.Store.LoadStats(ctx)
	if err != nil {
		return summary, fmt.Errorf("cycle %s: load stats: %w", summary.RunID, err)
	}
	retrySet, err := s.deps.Store.LoadRetrySet(ctx)
	if err != nil {
		return summary, fmt.Errorf("cycle %s: load retry set: %w", summary.RunID, err)
	}

	s.deps.Pacer.ResetCycle()

	postings, sourceErrors := s.fetchAll(ctx, logger)
	summary.Found = len(postings)
	summary.SourceErrors = sourceErrors

	candidates, dropped := s.deps.Ledger.Dedup(postings)
	summary.Deduped = dropped

	retried, fresh := splitRetried(candidates, retrySet)
	summary.Retried = len(retried)

	queue := s.scoreAndRank(ctx, logger, stats, &summary, retried, fresh)
	summary.ScoredAboveFloor = len(queue)

	// Entries not re-added by a retryable failure below disappear for good.
	newRetry := make(map[string]model.RetryEntry)

	s.drainQueue(ctx, logger, stats, &summary, queue, retrySet, newRetry)

	stats.LastCycleAt = s.deps.Clock.Now()
	s.checkpoint(ctx, logger, stats, newRetry)

	summary.Duration = s.deps.Clock.Now().Sub(start)
	s.report(ctx, logger, summary)
	return summary, ctx.Err()
}

// fetchAll fans out to every source adapter and flattens results in adapter
// order so discovery order stays deterministic regardless of which fetch
// finishes first.
func (s *CycleService) fetchAll(ctx context.Context, logger *slog.Logger) ([]model.JobPosting, int) {
	perSource := make([][]model.JobPosting, len(s.deps.Sources))
	var mu sync.Mutex
	failures := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, src := range s.deps.Sources {
		g.Go(func() error {
			found, err := src.Fetch(gctx, s.cfg.Profile)
			if err != nil {
				logger.WarnContext(gctx, "source fetch failed",
					"platform", src.Platform(), "error", err)
				mu.Lock()
				failures++
				mu.Unlock()
				return nil
			}
			perSource[i] = found
			return nil
		})
	}
	_ = g.Wait()

	var flat []model.JobPosting
	for i, src := range s.deps.Sources {
		for j := range perSource[i] {
			p := perSource[i][j]
			p.Normalize()
			if err := p.Validate(); err != nil {
				logger.Warn("dropping invalid posting",
					"platform", src.Platform(), "error", err)
				continue
			}
			p.DiscoveredAt = s.deps.Clock.Now()
			flat = append(flat, p)
		}
	}
	return flat, failures
}

// splitRetried partitions candidates into retry-set members and fresh
// postings, preserving discovery order within each group.
func splitRetried(candidates []model.JobPosting, retrySet map[string]model.RetryEntry) (retried, fresh []model.JobPosting) {
	for i := range candidates {
		p := candidates[i]
		if _, ok := retrySet[p.Fingerprint()]; ok {
			retried = append(retried, p)
			continue
		}
		fresh = append(fresh, p)
	}
	return retried, fresh
}

// scoreAndRank scores both groups against the profile, records skips below
// the floor, and returns the final execution queue with retried postings
// ranked ahead of fresh ones.
func (s *CycleService) scoreAndRank(ctx context.Context, logger *slog.Logger, stats *model.RunStats, summary *model.CycleSummary, retried, fresh []model.JobPosting) []model.ScoredPosting {
	score := func(group []model.JobPosting, offset int) []model.ScoredPosting {
		kept := make([]model.ScoredPosting, 0, len(group))
		for i := range group {
			p := group[i]
			vec := s.deps.Scorer.Score(s.cfg.Profile, &p)
			if vec.Overall < s.cfg.ScoreFloor {
				s.recordSkipped(ctx, logger, stats, summary, &p, vec.Overall)
				continue
			}
			kept = append(kept, model.ScoredPosting{
				Posting:        p,
				Score:          vec,
				DiscoveryIndex: offset + i,
			})
		}
		return kept
	}

	queue := s.deps.Ranker.Rank(score(retried, 0))
	queue = append(queue, s.deps.Ranker.Rank(score(fresh, len(retried)))...)
	return queue
}

// drainQueue walks the ranked queue sequentially, gating each attempt through
// the admission controller and classifying its outcome.
func (s *CycleService) drainQueue(ctx context.Context, logger *slog.Logger, stats *model.RunStats, summary *model.CycleSummary, queue []model.ScoredPosting, retrySet, newRetry map[string]model.RetryEntry) {
	appliedSinceCheckpoint := 0

	for i := range queue {
		if ctx.Err() != nil {
			logger.InfoContext(ctx, "cycle canceled, flushing state",
				"remaining", len(queue)-i)
			return
		}

		sp := &queue[i]
		gate := s.deps.Pacer.Gate(stats.SuccessRate())
		if !gate.Allowed {
			summary.Denied = len(queue) - i
			logger.InfoContext(ctx, "admission denied, ending queue",
				"reason", gate.Reason, "denied", summary.Denied)
			s.count("jobhawk.attempts.denied", int64(summary.Denied), nil)
			return
		}
		if err := s.deps.Sleeper.Sleep(ctx, gate.Delay); err != nil {
			return
		}

		posting := &sp.Posting
		fp := posting.Fingerprint()
		attemptCount := 1
		if prev, ok := retrySet[fp]; ok {
			attemptCount = prev.AttemptCount + 1
		}

		letter := s.deps.Letters.Generate(posting.Title, posting.Company)
		attemptStart := s.deps.Clock.Now()
		result, execErr := s.deps.Executor.Execute(ctx, posting, letter)
		summary.Attempted++
		s.timing("jobhawk.attempt.duration", s.deps.Clock.Now().Sub(attemptStart),
			map[string]string{"platform": posting.Platform})

		cls := s.deps.Classifier.Classify(result, execErr, attemptCount)
		now := s.deps.Clock.Now()
		rec := s.buildRecord(sp, cls, attemptCount, now)

		switch cls.Status {
		case model.StatusApplied:
			s.deps.Ledger.Record(posting)
			stats.RecordApplied(rec, now)
			summary.Applied++
			appliedSinceCheckpoint++
			logger.InfoContext(ctx, "applied",
				"platform", posting.Platform,
				"company", posting.Company,
				"title", posting.Title,
				"score", sp.Score.Overall,
				"verification", string(cls.Verification))
			s.count("jobhawk.applications.applied", 1,
				map[string]string{"platform": posting.Platform})

			if appliedSinceCheckpoint%s.cfg.CheckpointEvery == 0 {
				s.checkpoint(ctx, logger, stats, newRetry)
			}

		case model.StatusFailed:
			stats.RecordFailed()
			summary.Failed++
			logger.WarnContext(ctx, "attempt failed",
				"platform", posting.Platform,
				"company", posting.Company,
				"title", posting.Title,
				"attempt", attemptCount,
				"retry", cls.Retry,
				"reason", cls.Reason)
			s.count("jobhawk.applications.failed", 1,
				map[string]string{"platform": posting.Platform})

			if cls.Retry {
				newRetry[fp] = model.RetryEntry{
					Fingerprint:   fp,
					ExternalID:    posting.ExternalID,
					Platform:      posting.Platform,
					AttemptCount:  attemptCount,
					Reason:        cls.Reason,
					LastAttemptAt: now,
				}
			}
		}

		s.archive(ctx, logger, rec)
	}
}

func (s *CycleService) recordSkipped(ctx context.Context, logger *slog.Logger, stats *model.RunStats, summary *model.CycleSummary, posting *model.JobPosting, score float64) {
	stats.RecordSkipped()
	summary.Skipped++
	logger.DebugContext(ctx, "skipped below floor",
		"platform", posting.Platform,
		"company", posting.Company,
		"title", posting.Title,
		"score", score)

	now := s.deps.Clock.Now()
	s.archive(ctx, logger, &model.ApplicationRecord{
		Fingerprint:   posting.Fingerprint(),
		ExternalID:    posting.ExternalID,
		Platform:      posting.Platform,
		Company:       posting.Company,
		Title:         posting.Title,
		URL:           posting.URL,
		Status:        model.StatusSkipped,
		Score:         score,
		SkipReason:    "score below floor",
		FirstSeenAt:   now,
		LastAttemptAt: now,
	})
}

func (s *CycleService) buildRecord(sp *model.ScoredPosting, cls Classification, attemptCount int, now time.Time) *model.ApplicationRecord {
	p := &sp.Posting
	rec := &model.ApplicationRecord{
		Fingerprint:   p.Fingerprint(),
		ExternalID:    p.ExternalID,
		Platform:      p.Platform,
		Company:       p.Company,
		Title:         p.Title,
		URL:           p.URL,
		Status:        cls.Status,
		Verification:  cls.Verification,
		Score:         sp.Score.Overall,
		AttemptCount:  attemptCount,
		FirstSeenAt:   p.DiscoveredAt,
		LastAttemptAt: now,
	}
	if cls.Status == model.StatusFailed {
		rec.FailReason = cls.Reason
	}
	return rec
}

// checkpoint flushes all three durable structures. Persistence failures are
// logged and the cycle continues with in-memory state authoritative; the next
// checkpoint retries the write.
func (s *CycleService) checkpoint(ctx context.Context, logger *slog.Logger, stats *model.RunStats, retry map[string]model.RetryEntry) {
	// State must land even when the cycle is being canceled.
	flushCtx := context.WithoutCancel(ctx)
	if err := s.deps.Ledger.Flush(flushCtx); err != nil {
		logger.ErrorContext(ctx, "checkpoint: applied set", "error", err)
	}
	if err := s.deps.Store.SaveStats(flushCtx, stats); err != nil {
		logger.ErrorContext(ctx, "checkpoint: stats", "error", err)
	}
	if err := s.deps.Store.SaveRetrySet(flushCtx, retry); err != nil {
		logger.ErrorContext(ctx, "checkpoint: retry set", "error", err)
	}
}

func (s *CycleService) archive(ctx context.Context, logger *slog.Logger, rec *model.ApplicationRecord) {
	if s.deps.Archive == nil {
		return
	}
	if err := s.deps.Archive.Upsert(context.WithoutCancel(ctx), rec); err != nil {
		logger.WarnContext(ctx, "history archive write failed",
			"fingerprint", rec.Fingerprint, "error", err)
	}
}

func (s *CycleService) report(ctx context.Context, logger *slog.Logger, summary model.CycleSummary) {
	logger.InfoContext(ctx, "cycle finished",
		"duration", summary.Duration,
		"found", summary.Found,
		"retried", summary.Retried,
		"deduped", summary.Deduped,
		"queued", summary.ScoredAboveFloor,
		"attempted", summary.Attempted,
		"applied", summary.Applied,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
		"denied", summary.Denied,
		"source_errors", summary.SourceErrors)

	s.count("jobhawk.cycle.applied", int64(summary.Applied), nil)
	s.count("jobhawk.cycle.failed", int64(summary.Failed), nil)
	s.count("jobhawk.cycle.skipped", int64(summary.Skipped), nil)
	s.timing("jobhawk.cycle.duration", summary.Duration, nil)

	if s.deps.Notifier != nil {
		if err := s.deps.Notifier.PublishCycleReport(context.WithoutCancel(ctx), summary); err != nil {
			logger.WarnContext(ctx, "cycle report publish failed", "error", err)
		}
	}
}

func (s *CycleService) count(name string, value int64, tags map[string]string) {
	if s.deps.Metrics != nil {
		s.deps.Metrics.Count(name, value, tags)
	}
}

func (s *CycleService) timing(name string, value time.Duration, tags map[string]string) {
	if s.deps.Metrics != nil {
		s.deps.Metrics.Timing(name, value, tags)
	}
}
