package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobhawk/jobhawk/internal/core"
	"github.com/jobhawk/jobhawk/internal/data"
	"github.com/jobhawk/jobhawk/internal/domain/letter"
	"github.com/jobhawk/jobhawk/internal/domain/model"
	"github.com/jobhawk/jobhawk/internal/domain/rank"
	"github.com/jobhawk/jobhawk/internal/domain/scoring"
	"github.com/jobhawk/jobhawk/internal/mocks"
	"github.com/jobhawk/jobhawk/internal/testutil"
)

// cycleHarness wires a CycleService with a real file store, a fixed clock,
// a recording sleeper, and gomock sources/executors. No test here sleeps.
type cycleHarness struct {
	source   *mocks.MockSourceAdapter
	executor *mocks.MockActionExecutor
	store    core.StateStore
	clock    *data.FixedTimeProvider
	sleeper  *testutil.FakeSleeper
	profile  *model.UserProfile

	extraSources []core.SourceAdapter
	pacing       PacingConfig
	checkpoint   int
}

func newCycleHarness(t *testing.T) *cycleHarness {
	t.Helper()

	ctrl := gomock.NewController(t)
	store, err := data.NewFileStateStore(t.TempDir())
	require.NoError(t, err)

	source := mocks.NewMockSourceAdapter(ctrl)
	source.EXPECT().Platform().Return("remoteok").AnyTimes()

	return &cycleHarness{
		source:   source,
		executor: mocks.NewMockActionExecutor(ctrl),
		store:    store,
		clock:    data.NewFixedTimeProvider(time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)),
		sleeper:  &testutil.FakeSleeper{},
		profile:  testutil.NewProfile().Build(),
		pacing:   DefaultPacingConfig(),
	}
}

func (h *cycleHarness) build(t *testing.T) *CycleService {
	t.Helper()

	pacer := NewAdmissionController(AdmissionControllerOptions{
		Config: h.pacing,
		Clock:  h.clock,
		Rand:   rand.New(rand.NewSource(7)),
	})
	sources := append([]core.SourceAdapter{h.source}, h.extraSources...)

	return NewCycleService(CycleServiceOptions{
		Deps: CycleDeps{
			Sources:    sources,
			Executor:   h.executor,
			Letters:    letter.NewGenerator(h.profile),
			Store:      h.store,
			Ledger:     NewLedgerService(LedgerServiceOptions{Store: h.store}),
			Pacer:      pacer,
			Classifier: NewOutcomeClassifier(OutcomeClassifierOptions{}),
			Scorer:     scoring.NewEngine(scoring.EngineOptions{Weights: scoring.DefaultWeights()}),
			Ranker:     rank.NewRanker(rank.DefaultConfig()),
			Clock:      h.clock,
			Sleeper:    h.sleeper,
		},
		Config: CycleConfig{
			Profile:         h.profile,
			ScoreFloor:      70,
			CheckpointEvery: h.checkpoint,
		},
	})
}

func appliedResult() model.AttemptResult {
	return model.AttemptResult{
		Outcome:      model.OutcomeApplied,
		PageReached:  true,
		Confirmation: "APP-1",
	}
}

func TestCycleService_Run_AppliesAboveFloorSkipsBelow(t *testing.T) {
	t.Parallel()

	h := newCycleHarness(t)
	strong := testutil.NewPosting().Build()
	weak := testutil.NewPosting().
		WithExternalID("rok-2002").
		WithTitle("Data Entry Clerk").
		WithCompany("Unknown LLC").
		WithDescription("manual data entry and typing").
		WithLocation("On-site Omaha").
		WithSalaryText("").
		Build()

	h.source.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return([]model.JobPosting{strong, weak}, nil)
	h.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(appliedResult(), nil)

	summary, err := h.build(t).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Found)
	assert.Equal(t, 1, summary.Applied)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Attempted)
	require.Len(t, h.sleeper.Delays, 1, "exactly one paced wait per attempt")
	assert.Positive(t, h.sleeper.Delays[0])

	ids, err := h.store.LoadAppliedIDs(context.Background())
	require.NoError(t, err)
	assert.True(t, ids[strong.Fingerprint()])
	assert.True(t, ids[strong.ExternalID])

	stats, err := h.store.LoadStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalApplied)
	assert.Equal(t, 1, stats.TotalSkipped)
}

func TestCycleService_Run_NeverAppliesTwice(t *testing.T) {
	t.Parallel()

	h := newCycleHarness(t)
	posting := testutil.NewPosting().Build()
	require.NoError(t, h.store.SaveAppliedIDs(context.Background(),
		map[string]bool{posting.Fingerprint(): true}))

	// Same posting back under a fresh external id; the executor must not run.
	reshuffled := testutil.NewPosting().WithExternalID("rok-7777").Build()
	h.source.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return([]model.JobPosting{reshuffled}, nil)

	summary, err := h.build(t).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Deduped)
	assert.Equal(t, 0, summary.Attempted)
	assert.Empty(t, h.sleeper.Delays)
}

func TestCycleService_Run_FailureEntersRetrySet(t *testing.T) {
	t.Parallel()

	h := newCycleHarness(t)
	posting := testutil.NewPosting().Build()

	h.source.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return([]model.JobPosting{posting}, nil)
	h.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(model.AttemptResult{Outcome: model.OutcomeNetworkOrPageError, Detail: "timeout"}, nil)

	summary, err := h.build(t).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Applied)

	retry, err := h.store.LoadRetrySet(context.Background())
	require.NoError(t, err)
	entry, ok := retry[posting.Fingerprint()]
	require.True(t, ok)
	assert.Equal(t, 1, entry.AttemptCount)
	assert.Equal(t, "timeout", entry.Reason)

	ids, err := h.store.LoadAppliedIDs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids, "failed postings never enter the applied set")
}

func TestCycleService_Run_RetriedRunsAheadThenClears(t *testing.T) {
	t.Parallel()

	h := newCycleHarness(t)
	fresh := testutil.NewPosting().Build()
	retried := testutil.NewPosting().
		WithExternalID("rok-3003").
		WithCompany("Initech").
		WithTitle("Backend Engineer").
		Build()

	require.NoError(t, h.store.SaveRetrySet(context.Background(), map[string]model.RetryEntry{
		retried.Fingerprint(): {
			Fingerprint:  retried.Fingerprint(),
			ExternalID:   retried.ExternalID,
			Platform:     "remoteok",
			AttemptCount: 1,
			Reason:       "timeout",
		},
	}))

	h.source.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return([]model.JobPosting{fresh, retried}, nil)

	var order []string
	h.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *model.JobPosting, _ string) (model.AttemptResult, error) {
			order = append(order, p.Company)
			return appliedResult(), nil
		}).Times(2)

	summary, err := h.build(t).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Initech", "Acme Corp"}, order,
		"retried posting runs before the higher-scoring fresh one")
	assert.Equal(t, 1, summary.Retried)
	assert.Equal(t, 2, summary.Applied)

	retry, err := h.store.LoadRetrySet(context.Background())
	require.NoError(t, err)
	assert.Empty(t, retry, "successful retry leaves the retry set")
}

func TestCycleService_Run_CapDeniesRemainder(t *testing.T) {
	t.Parallel()

	h := newCycleHarness(t)
	h.pacing.MaxPerHour = 2
	postings := []model.JobPosting{
		testutil.NewPosting().Build(),
		testutil.NewPosting().WithCompany("Initech").WithExternalID("rok-2").Build(),
		testutil.NewPosting().WithCompany("Globex").WithExternalID("rok-3").Build(),
	}

	h.source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(postings, nil)
	h.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(appliedResult(), nil).Times(2)

	summary, err := h.build(t).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Applied)
	assert.Equal(t, 1, summary.Denied)
	assert.Len(t, h.sleeper.Delays, 2)
}

func TestCycleService_Run_CheckpointsMidCycle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockStateStore(ctrl)
	h := newCycleHarness(t)
	h.store = store
	h.checkpoint = 2

	store.EXPECT().LoadAppliedIDs(gomock.Any()).Return(map[string]bool{}, nil)
	store.EXPECT().LoadStats(gomock.Any()).Return(model.NewRunStats(), nil)
	store.EXPECT().LoadRetrySet(gomock.Any()).Return(map[string]model.RetryEntry{}, nil)

	// One checkpoint after the second success plus the end-of-cycle flush.
	store.EXPECT().SaveAppliedIDs(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	store.EXPECT().SaveStats(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	store.EXPECT().SaveRetrySet(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	postings := []model.JobPosting{
		testutil.NewPosting().Build(),
		testutil.NewPosting().WithCompany("Initech").WithExternalID("rok-2").Build(),
		testutil.NewPosting().WithCompany("Globex").WithExternalID("rok-3").Build(),
	}
	h.source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(postings, nil)
	h.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(appliedResult(), nil).Times(3)

	summary, err := h.build(t).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Applied)
}

func TestCycleService_Run_SourceFailureIsIsolated(t *testing.T) {
	t.Parallel()

	h := newCycleHarness(t)
	ctrl := gomock.NewController(t)
	broken := mocks.NewMockSourceAdapter(ctrl)
	broken.EXPECT().Platform().Return("dice").AnyTimes()
	broken.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("dial tcp: connection refused"))
	h.extraSources = []core.SourceAdapter{broken}

	h.source.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return([]model.JobPosting{testutil.NewPosting().Build()}, nil)
	h.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(appliedResult(), nil)

	summary, err := h.build(t).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.SourceErrors)
	assert.Equal(t, 1, summary.Applied, "healthy platforms proceed when one fails")
}

func TestCycleService_Run_CancellationFlushesState(t *testing.T) {
	t.Parallel()

	h := newCycleHarness(t)
	ctx, cancel := context.WithCancel(context.Background())

	postings := []model.JobPosting{
		testutil.NewPosting().Build(),
		testutil.NewPosting().WithCompany("Initech").WithExternalID("rok-2").Build(),
	}
	h.source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(postings, nil)
	h.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *model.JobPosting, string) (model.AttemptResult, error) {
			cancel()
			return appliedResult(), nil
		})

	summary, err := h.build(t).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, summary.Applied)

	ids, loadErr := h.store.LoadAppliedIDs(context.Background())
	require.NoError(t, loadErr)
	assert.Len(t, ids, 2, "the in-flight result lands on disk despite cancellation")
}
