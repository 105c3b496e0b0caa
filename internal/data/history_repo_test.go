package data

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobhawk/jobhawk/internal/core"
	"github.com/jobhawk/jobhawk/internal/domain/model"
	apperrors "github.com/jobhawk/jobhawk/internal/errors"
)

func newTestHistoryRepo(t *testing.T) *HistoryRepo {
	t.Helper()

	db, err := OpenHistoryDB(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	fixed := NewFixedTimeProvider(time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC))
	return NewHistoryRepo(db, fixed)
}

func appliedRecord(fingerprint, platform string) *model.ApplicationRecord {
	return &model.ApplicationRecord{
		Fingerprint:   fingerprint,
		ExternalID:    fingerprint + "-ext",
		Platform:      platform,
		Company:       "Acme",
		Title:         "SRE",
		Status:        model.StatusApplied,
		Verification:  model.VerificationConfirmed,
		Score:         82.5,
		AttemptCount:  1,
		LastAttemptAt: time.Date(2026, 4, 1, 11, 0, 0, 0, time.UTC),
	}
}

func TestHistoryRepo_UpsertAndGet(t *testing.T) {
	t.Parallel()
	repo := newTestHistoryRepo(t)
	ctx := context.Background()

	rec := appliedRecord("remoteok_acme_sre", "remoteok")
	require.NoError(t, repo.Upsert(ctx, rec))

	got, err := repo.GetByFingerprint(ctx, "remoteok_acme_sre")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApplied, got.Status)
	assert.InDelta(t, 82.5, got.Score, 1e-9)
	assert.Equal(t, 1, got.AttemptCount)
}

func TestHistoryRepo_UpsertUpdatesExisting(t *testing.T) {
	t.Parallel()
	repo := newTestHistoryRepo(t)
	ctx := context.Background()

	rec := appliedRecord("dice_acme_sre", "dice")
	rec.Status = model.StatusFailed
	rec.FailReason = "network_or_page_error"
	require.NoError(t, repo.Upsert(ctx, rec))

	rec.Status = model.StatusApplied
	rec.AttemptCount = 2
	require.NoError(t, repo.Upsert(ctx, rec))

	got, err := repo.GetByFingerprint(ctx, "dice_acme_sre")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApplied, got.Status)
	assert.Equal(t, 2, got.AttemptCount)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total, "upsert must not duplicate the row")
}

func TestHistoryRepo_GetMissingIsNotFound(t *testing.T) {
	t.Parallel()
	repo := newTestHistoryRepo(t)

	_, err := repo.GetByFingerprint(context.Background(), "nope")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestHistoryRepo_ListFilters(t *testing.T) {
	t.Parallel()
	repo := newTestHistoryRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, appliedRecord("remoteok_acme_sre", "remoteok")))
	failed := appliedRecord("dice_acme_sre", "dice")
	failed.Status = model.StatusFailed
	failed.Verification = ""
	require.NoError(t, repo.Upsert(ctx, failed))

	all, err := repo.List(ctx, core.HistoryQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	applied, err := repo.List(ctx, core.HistoryQuery{Status: model.StatusApplied})
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "remoteok", applied[0].Platform)

	dice, err := repo.List(ctx, core.HistoryQuery{Platform: "dice", Limit: 10})
	require.NoError(t, err)
	require.Len(t, dice, 1)
	assert.Equal(t, model.StatusFailed, dice[0].Status)
}

func TestHistoryRepo_Stats(t *testing.T) {
	t.Parallel()
	repo := newTestHistoryRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, appliedRecord("remoteok_acme_sre", "remoteok")))
	require.NoError(t, repo.Upsert(ctx, appliedRecord("remoteok_initech_sre", "remoteok")))
	failed := appliedRecord("dice_acme_sre", "dice")
	failed.Status = model.StatusFailed
	require.NoError(t, repo.Upsert(ctx, failed))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByStatus["applied"])
	assert.Equal(t, 1, stats.ByStatus["failed"])
	assert.Equal(t, 2, stats.ByPlatform["remoteok"])
	assert.Equal(t, 3, stats.RecentWeek, "all attempts are within the last week of the fixed clock")
}
