package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobhawk/jobhawk/internal/domain/model"
	"github.com/jobhawk/jobhawk/internal/mocks"
	"github.com/jobhawk/jobhawk/internal/testutil"
)

func newTestLedger(t *testing.T, preloaded map[string]bool) (*LedgerService, *mocks.MockStateStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockStateStore(ctrl)
	ledger := NewLedgerService(LedgerServiceOptions{Store: store})

	if preloaded != nil {
		store.EXPECT().LoadAppliedIDs(gomock.Any()).Return(preloaded, nil)
		require.NoError(t, ledger.Load(context.Background()))
	}
	return ledger, store
}

func TestLedgerService_SeenByFingerprintOrExternalID(t *testing.T) {
	t.Parallel()

	posting := testutil.NewPosting().Build()
	byFingerprint, _ := newTestLedger(t, map[string]bool{posting.Fingerprint(): true})
	byExternal, _ := newTestLedger(t, map[string]bool{posting.ExternalID: true})
	empty, _ := newTestLedger(t, map[string]bool{})

	assert.True(t, byFingerprint.Seen(&posting))
	assert.True(t, byExternal.Seen(&posting))
	assert.False(t, empty.Seen(&posting))
}

func TestLedgerService_RecordInsertsBothIDs(t *testing.T) {
	t.Parallel()

	ledger, _ := newTestLedger(t, nil)
	posting := testutil.NewPosting().Build()

	ledger.Record(&posting)

	reshuffled := testutil.NewPosting().WithExternalID("rok-9999").Build()
	assert.True(t, ledger.Seen(&reshuffled), "same company and title must stay seen under a new external id")
	assert.Equal(t, 2, ledger.Size())
}

func TestLedgerService_DedupCollapsesBatchDuplicates(t *testing.T) {
	t.Parallel()

	ledger, _ := newTestLedger(t, nil)
	batch := []model.JobPosting{
		testutil.NewPosting().WithExternalID("rok-1").Build(),
		testutil.NewPosting().WithExternalID("rok-2").Build(),
		testutil.NewPosting().WithCompany("Initech").WithExternalID("rok-3").Build(),
	}

	kept, dropped := ledger.Dedup(batch)
	require.Len(t, kept, 2)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "rok-1", kept[0].ExternalID, "first occurrence wins")
}

func TestLedgerService_DedupIsIdempotent(t *testing.T) {
	t.Parallel()

	ledger, _ := newTestLedger(t, nil)
	batch := []model.JobPosting{
		testutil.NewPosting().Build(),
		testutil.NewPosting().WithCompany("Initech").Build(),
	}

	once, dropped := ledger.Dedup(batch)
	require.Equal(t, 0, dropped)
	twice, dropped := ledger.Dedup(once)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, once, twice)
}

func TestLedgerService_FlushPersistsSet(t *testing.T) {
	t.Parallel()

	ledger, store := newTestLedger(t, nil)
	posting := testutil.NewPosting().Build()
	ledger.Record(&posting)

	store.EXPECT().SaveAppliedIDs(gomock.Any(), gomock.Len(2)).Return(nil)
	assert.NoError(t, ledger.Flush(context.Background()))
}
