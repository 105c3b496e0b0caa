// Package service contains the business logic of the application engine:
// deduplication, pacing, outcome classification, and cycle orchestration.
// Services depend on port interfaces from internal/core, never on concrete
// implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jobhawk/jobhawk/internal/core"
	"github.com/jobhawk/jobhawk/internal/domain/model"
)

// LedgerServiceOptions groups dependencies for LedgerService.
type LedgerServiceOptions struct {
	Store  core.StateStore // Required: durable applied-id set
	Logger *slog.Logger    // Optional: structured logger
}

// LedgerService is the fingerprint/dedup store. Membership is checked
// against both the normalized fingerprint and the raw external id, because
// platforms reuse and reshuffle ids across cycles while the (company, title)
// pair stays stable. The set only grows.
type LedgerService struct {
	store  core.StateStore
	logger *slog.Logger

	applied map[string]bool
}

// NewLedgerService constructs a LedgerService.
func NewLedgerService(opts LedgerServiceOptions) *LedgerService {
	if opts.Store == nil {
		panic("StateStore is required")
	}
	return &LedgerService{
		store:   opts.Store,
		logger:  opts.Logger,
		applied: make(map[string]bool),
	}
}

// Load pulls the applied-id set into memory. Called once at cycle start.
func (s *LedgerService) Load(ctx context.Context) error {
	ids, err := s.store.LoadAppliedIDs(ctx)
	if err != nil {
		return fmt.Errorf("load applied ids: %w", err)
	}
	s.applied = ids
	if s.logger != nil {
		s.logger.InfoContext(ctx, "applied ledger loaded", "ids", len(ids))
	}
	return nil
}

// Seen reports whether the posting was already acted on, by fingerprint or
// by external id.
func (s *LedgerService) Seen(posting *model.JobPosting) bool {
	if posting == nil {
		return false
	}
	return s.applied[posting.Fingerprint()] || s.applied[posting.ExternalID]
}

// Record inserts both the fingerprint and the external id. Only terminal
// Applied outcomes are recorded; the set never shrinks.
func (s *LedgerService) Record(posting *model.JobPosting) {
	if posting == nil {
		return
	}
	s.applied[posting.Fingerprint()] = true
	if posting.ExternalID != "" {
		s.applied[posting.ExternalID] = true
	}
}

// Size returns the number of ids in the ledger.
func (s *LedgerService) Size() int {
	return len(s.applied)
}

// Flush atomically persists the applied-id set.
func (s *LedgerService) Flush(ctx context.Context) error {
	if err := s.store.SaveAppliedIDs(ctx, s.applied); err != nil {
		return fmt.Errorf("save applied ids: %w", err)
	}
	return nil
}

// Dedup filters postings already acted on, including duplicates within the
// batch itself: two postings normalizing to the same fingerprint collapse to
// the first occurrence even when their external ids differ. Dedup is
// idempotent: applying it to its own output removes nothing further.
func (s *LedgerService) Dedup(postings []model.JobPosting) (kept []model.JobPosting, dropped int) {
	kept = make([]model.JobPosting, 0, len(postings))
	inBatch := make(map[string]bool, len(postings))

	for i := range postings {
		p := &postings[i]
		fp := p.Fingerprint()
		if s.Seen(p) || inBatch[fp] || (p.ExternalID != "" && inBatch[p.ExternalID]) {
			dropped++
			continue
		}
		inBatch[fp] = true
		if p.ExternalID != "" {
			inBatch[p.ExternalID] = true
		}
		kept = append(kept, *p)
	}
	return kept, dropped
}
