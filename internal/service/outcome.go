package service

import (
	"log/slog"

	"github.com/jobhawk/jobhawk/internal/domain/model"
)

// DefaultMaxAttempts bounds retries per posting across cycles.
const DefaultMaxAttempts = 5

// Classification is the classifier's verdict for one attempt result.
type Classification struct {
	Status       model.ApplicationStatus
	Verification model.VerificationStatus
	// Retry requests that the posting be requeued ahead of fresh postings
	// in the next cycle. Never set alongside StatusApplied.
	Retry  bool
	Reason string
}

// OutcomeClassifierOptions groups dependencies for OutcomeClassifier.
type OutcomeClassifierOptions struct {
	MaxAttempts int          // Optional: defaults to DefaultMaxAttempts
	Logger      *slog.Logger // Optional: structured logger
}

// OutcomeClassifier maps raw attempt results to terminal or retryable
// application states. The ambiguous case, where the apply control is missing
// but the posting page itself was reached, is treated as applied with
// verification pending: double-applying is worse than a false positive that
// a later verification pass can correct.
type OutcomeClassifier struct {
	maxAttempts int
	logger      *slog.Logger
}

// NewOutcomeClassifier constructs an OutcomeClassifier.
func NewOutcomeClassifier(opts OutcomeClassifierOptions) *OutcomeClassifier {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	return &OutcomeClassifier{maxAttempts: opts.MaxAttempts, logger: opts.Logger}
}

// MaxAttempts returns the retry bound.
func (c *OutcomeClassifier) MaxAttempts() int { return c.maxAttempts }

// Classify turns an attempt result into a Classification. attemptCount is
// the total number of attempts made so far for this posting, including the
// one being classified. execErr is a transport-level failure from the
// executor; it dominates whatever partial result came back with it.
func (c *OutcomeClassifier) Classify(result model.AttemptResult, execErr error, attemptCount int) Classification {
	if execErr != nil {
		return c.failed(attemptCount, "executor error: "+execErr.Error())
	}

	switch result.Outcome {
	case model.OutcomeApplied:
		verification := model.VerificationConfirmed
		if result.Confirmation == "" {
			verification = model.VerificationPending
		}
		return Classification{
			Status:       model.StatusApplied,
			Verification: verification,
			Reason:       "application submitted",
		}

	case model.OutcomeApplyButtonNotFound:
		if result.PageReached {
			// Page loaded but the control is gone: the posting was
			// likely already applied to or just closed. Marking it
			// applied keeps the id out of future cycles.
			return Classification{
				Status:       model.StatusApplied,
				Verification: model.VerificationPending,
				Reason:       "apply control missing on reached page",
			}
		}
		return c.failed(attemptCount, "apply control not found")

	case model.OutcomeNetworkOrPageError:
		return c.failed(attemptCount, reasonOrDefault(result.Detail, "network or page error"))

	default:
		return c.failed(attemptCount, "unknown outcome "+string(result.Outcome))
	}
}

func (c *OutcomeClassifier) failed(attemptCount int, reason string) Classification {
	retry := attemptCount < c.maxAttempts
	if !retry && c.logger != nil {
		c.logger.Warn("retry budget exhausted", "attempts", attemptCount, "reason", reason)
	}
	return Classification{
		Status: model.StatusFailed,
		Retry:  retry,
		Reason: reason,
	}
}

func reasonOrDefault(detail, fallback string) string {
	if detail != "" {
		return detail
	}
	return fallback
}
