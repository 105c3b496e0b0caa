// Package data provides concrete persistence for the engine: the atomic
// file-backed state store and the sqlite history archive.
package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	apperrors "github.com/jobhawk/jobhawk/internal/errors"

	"github.com/jobhawk/jobhawk/internal/core"
	"github.com/jobhawk/jobhawk/internal/domain/model"
)

const (
	appliedFileName = "applied.json"
	statsFileName   = "stats.json"
	retryFileName   = "retry.json"
)

// FileStateStore persists the applied-id set, stats aggregate, and retry set
// as three independent JSON files in one directory. Every save writes to a
// temp file in the same directory and renames it into place, so a crash mid
// write can never truncate live state.
type FileStateStore struct {
	dir string
}

var _ core.StateStore = (*FileStateStore)(nil)

// NewFileStateStore creates the state directory if needed and returns a store
// rooted there.
func NewFileStateStore(dir string) (*FileStateStore, error) {
	if dir == "" {
		return nil, errors.New("state directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir %s: %w", dir, err)
	}
	return &FileStateStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *FileStateStore) Dir() string {
	return s.dir
}

// LoadAppliedIDs reads the applied-id set; a missing file yields an empty set.
func (s *FileStateStore) LoadAppliedIDs(ctx context.Context) (map[string]bool, error) {
	var ids []string
	if err := s.load(ctx, appliedFileName, &ids); err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// SaveAppliedIDs atomically replaces the applied-id set. Ids are sorted so
// the file content is deterministic for a given set.
func (s *FileStateStore) SaveAppliedIDs(ctx context.Context, ids map[string]bool) error {
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)
	return s.save(ctx, appliedFileName, sorted)
}

// LoadStats reads the cumulative stats aggregate; a missing file yields a
// fresh aggregate.
func (s *FileStateStore) LoadStats(ctx context.Context) (*model.RunStats, error) {
	stats := model.NewRunStats()
	if err := s.load(ctx, statsFileName, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// SaveStats atomically replaces the stats aggregate.
func (s *FileStateStore) SaveStats(ctx context.Context, stats *model.RunStats) error {
	if stats == nil {
		return apperrors.Validation("stats aggregate is required")
	}
	return s.save(ctx, statsFileName, stats)
}

// LoadRetrySet reads the failed/retry set; a missing file yields an empty set.
func (s *FileStateStore) LoadRetrySet(ctx context.Context) (map[string]model.RetryEntry, error) {
	entries := make(map[string]model.RetryEntry)
	if err := s.load(ctx, retryFileName, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveRetrySet atomically replaces the retry set.
func (s *FileStateStore) SaveRetrySet(ctx context.Context, entries map[string]model.RetryEntry) error {
	if entries == nil {
		entries = map[string]model.RetryEntry{}
	}
	return s.save(ctx, retryFileName, entries)
}

func (s *FileStateStore) load(ctx context.Context, name string, dest any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return apperrors.Persistence(err, "read "+name)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return apperrors.Persistence(err, "decode "+name)
	}
	return nil
}

// save implements write-temp-then-rename. The temp file lives in the state
// directory so the rename stays on one filesystem and is atomic.
func (s *FileStateStore) save(ctx context.Context, name string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return apperrors.Persistence(err, "encode "+name)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return apperrors.Persistence(err, "create temp for "+name)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		cleanupTemp(tmp, tmpName)
		return apperrors.Persistence(err, "write "+name)
	}
	if err := tmp.Sync(); err != nil {
		cleanupTemp(tmp, tmpName)
		return apperrors.Persistence(err, "sync "+name)
	}
	if err := tmp.Close(); err != nil {
		removeQuiet(tmpName)
		return apperrors.Persistence(err, "close temp for "+name)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		removeQuiet(tmpName)
		return apperrors.Persistence(err, "rename "+name)
	}
	return nil
}

func cleanupTemp(f *os.File, name string) {
	_ = f.Close()
	removeQuiet(name)
}

func removeQuiet(name string) {
	_ = os.Remove(name)
}
