// Package core defines the port interfaces the service layer depends on.
// Concrete implementations live in internal/data and internal/adapters.
package core

import (
	"context"

	"github.com/jobhawk/jobhawk/internal/domain/model"
)

// StateStore persists the three durable structures the engine depends on:
// the applied-id set, the cumulative stats aggregate, and the failed/retry
// set. Each structure loads and saves independently, and every save is
// atomic so a crash can never leave a truncated file behind.
type StateStore interface {
	// LoadAppliedIDs returns the grow-only set of applied fingerprints and
	// external ids. A missing file yields an empty set, not an error.
	LoadAppliedIDs(ctx context.Context) (map[string]bool, error)

	// SaveAppliedIDs atomically replaces the applied-id set on disk.
	SaveAppliedIDs(ctx context.Context, ids map[string]bool) error

	// LoadStats returns the cumulative stats aggregate. A missing file
	// yields a fresh aggregate.
	LoadStats(ctx context.Context) (*model.RunStats, error)

	// SaveStats atomically replaces the stats aggregate on disk.
	SaveStats(ctx context.Context, stats *model.RunStats) error

	// LoadRetrySet returns the failed/retry set keyed by fingerprint.
	LoadRetrySet(ctx context.Context) (map[string]model.RetryEntry, error)

	// SaveRetrySet atomically replaces the retry set on disk.
	SaveRetrySet(ctx context.Context, entries map[string]model.RetryEntry) error
}

// HistoryArchive is the non-authoritative application history used for
// analytics and export. Writes are best-effort: the orchestrator logs archive
// failures and continues, because the state store remains the source of
// truth for at-most-once semantics.
type HistoryArchive interface {
	// Upsert inserts or updates the record for a fingerprint.
	Upsert(ctx context.Context, rec *model.ApplicationRecord) error

	// List returns records matching the query, most recent first.
	List(ctx context.Context, q HistoryQuery) ([]model.ApplicationRecord, error)

	// Stats aggregates archive-wide counters.
	Stats(ctx context.Context) (*ArchiveStats, error)
}

// HistoryQuery filters archive listings.
type HistoryQuery struct {
	Platform string
	Status   model.ApplicationStatus
	Limit    int
	Offset   int
}

// ArchiveStats summarizes the archive for reporting.
type ArchiveStats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByPlatform map[string]int `json:"by_platform"`
	RecentWeek int            `json:"recent_week"`
}
