package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobhawk/jobhawk/internal/domain/model"
)

func TestOutcomeClassifier_AppliedWithConfirmation(t *testing.T) {
	t.Parallel()

	c := NewOutcomeClassifier(OutcomeClassifierOptions{})
	cls := c.Classify(model.AttemptResult{
		Outcome:      model.OutcomeApplied,
		PageReached:  true,
		Confirmation: "APP-4411",
	}, nil, 1)

	assert.Equal(t, model.StatusApplied, cls.Status)
	assert.Equal(t, model.VerificationConfirmed, cls.Verification)
	assert.False(t, cls.Retry)
}

func TestOutcomeClassifier_AppliedWithoutConfirmationIsPending(t *testing.T) {
	t.Parallel()

	c := NewOutcomeClassifier(OutcomeClassifierOptions{})
	cls := c.Classify(model.AttemptResult{
		Outcome:     model.OutcomeApplied,
		PageReached: true,
	}, nil, 1)

	assert.Equal(t, model.StatusApplied, cls.Status)
	assert.Equal(t, model.VerificationPending, cls.Verification)
}

func TestOutcomeClassifier_MissingControlOnReachedPage(t *testing.T) {
	t.Parallel()

	c := NewOutcomeClassifier(OutcomeClassifierOptions{})
	cls := c.Classify(model.AttemptResult{
		Outcome:     model.OutcomeApplyButtonNotFound,
		PageReached: true,
	}, nil, 1)

	assert.Equal(t, model.StatusApplied, cls.Status, "ambiguous outcome resolves toward applied to prevent double submission")
	assert.Equal(t, model.VerificationPending, cls.Verification)
	assert.False(t, cls.Retry)
}

func TestOutcomeClassifier_MissingControlWithoutPageRetries(t *testing.T) {
	t.Parallel()

	c := NewOutcomeClassifier(OutcomeClassifierOptions{})
	cls := c.Classify(model.AttemptResult{
		Outcome: model.OutcomeApplyButtonNotFound,
	}, nil, 1)

	assert.Equal(t, model.StatusFailed, cls.Status)
	assert.True(t, cls.Retry)
}

func TestOutcomeClassifier_NetworkErrorRetriesUntilBudget(t *testing.T) {
	t.Parallel()

	c := NewOutcomeClassifier(OutcomeClassifierOptions{})
	result := model.AttemptResult{Outcome: model.OutcomeNetworkOrPageError, Detail: "challenge page"}

	first := c.Classify(result, nil, 1)
	assert.Equal(t, model.StatusFailed, first.Status)
	assert.True(t, first.Retry)
	assert.Equal(t, "challenge page", first.Reason)

	last := c.Classify(result, nil, DefaultMaxAttempts)
	assert.Equal(t, model.StatusFailed, last.Status)
	assert.False(t, last.Retry, "attempt budget exhausted")
}

func TestOutcomeClassifier_ExecutorErrorDominates(t *testing.T) {
	t.Parallel()

	c := NewOutcomeClassifier(OutcomeClassifierOptions{})
	cls := c.Classify(model.AttemptResult{Outcome: model.OutcomeApplied}, errors.New("session lost"), 2)

	assert.Equal(t, model.StatusFailed, cls.Status)
	assert.True(t, cls.Retry)
	assert.Contains(t, cls.Reason, "session lost")
}
