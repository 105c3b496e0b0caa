package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	// Register the sqlite3 driver for the history archive.
	_ "github.com/mattn/go-sqlite3"

	"github.com/jobhawk/jobhawk/internal/core"
	"github.com/jobhawk/jobhawk/internal/domain/model"
	apperrors "github.com/jobhawk/jobhawk/internal/errors"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS applications (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	fingerprint     TEXT NOT NULL UNIQUE,
	external_id     TEXT NOT NULL,
	platform        TEXT NOT NULL,
	company         TEXT NOT NULL,
	title           TEXT NOT NULL,
	url             TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL,
	verification    TEXT NOT NULL DEFAULT '',
	score           REAL NOT NULL DEFAULT 0,
	attempt_count   INTEGER NOT NULL DEFAULT 0,
	skip_reason     TEXT NOT NULL DEFAULT '',
	fail_reason     TEXT NOT NULL DEFAULT '',
	first_seen_at   TEXT NOT NULL,
	last_attempt_at TEXT NOT NULL DEFAULT '',
	UNIQUE(platform, external_id)
);
CREATE INDEX IF NOT EXISTS idx_applications_status   ON applications(status);
CREATE INDEX IF NOT EXISTS idx_applications_platform ON applications(platform);
`

// OpenHistoryDB opens (and initializes) the sqlite archive at path.
func OpenHistoryDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}
	// sqlite allows one writer; keep the pool at a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(historySchema); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, errors.Join(
				fmt.Errorf("init history schema: %w", err),
				fmt.Errorf("close history db: %w", closeErr),
			)
		}
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return db, nil
}

// HistoryRepo is the sqlite-backed application history archive.
type HistoryRepo struct {
	db   *sql.DB
	time TimeProvider
}

var _ core.HistoryArchive = (*HistoryRepo)(nil)

// NewHistoryRepo constructs a HistoryRepo. A nil TimeProvider defaults to
// real time.
func NewHistoryRepo(db *sql.DB, tp TimeProvider) *HistoryRepo {
	if db == nil {
		panic("history repo requires a database handle")
	}
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	return &HistoryRepo{db: db, time: tp}
}

// Upsert inserts a record on first sighting and updates the mutable fields
// afterwards, keyed by fingerprint.
func (r *HistoryRepo) Upsert(ctx context.Context, rec *model.ApplicationRecord) error {
	if rec == nil {
		return apperrors.Validation("application record is required")
	}
	if err := rec.Validate(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "validate application record")
	}

	firstSeen := rec.FirstSeenAt
	if firstSeen.IsZero() {
		firstSeen = r.time.Now()
	}
	lastAttempt := ""
	if !rec.LastAttemptAt.IsZero() {
		lastAttempt = r.time.FormatForDB(rec.LastAttemptAt)
	}

	const upsert = `
INSERT INTO applications (
	fingerprint, external_id, platform, company, title, url,
	status, verification, score, attempt_count, skip_reason, fail_reason,
	first_seen_at, last_attempt_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(fingerprint) DO UPDATE SET
	external_id     = excluded.external_id,
	status          = excluded.status,
	verification    = excluded.verification,
	score           = excluded.score,
	attempt_count   = excluded.attempt_count,
	skip_reason     = excluded.skip_reason,
	fail_reason     = excluded.fail_reason,
	last_attempt_at = excluded.last_attempt_at`

	_, err := r.db.ExecContext(ctx, upsert,
		rec.Fingerprint, rec.ExternalID, rec.Platform, rec.Company, rec.Title, rec.URL,
		string(rec.Status), string(rec.Verification), rec.Score, rec.AttemptCount,
		rec.SkipReason, rec.FailReason,
		r.time.FormatForDB(firstSeen), lastAttempt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.Conflictf("application %s/%s already archived under another fingerprint",
				rec.Platform, rec.ExternalID)
		}
		return apperrors.Persistence(err, "upsert application")
	}
	return nil
}

// GetByFingerprint returns one archived record.
func (r *HistoryRepo) GetByFingerprint(ctx context.Context, fingerprint string) (*model.ApplicationRecord, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+" FROM applications WHERE fingerprint = ?", fingerprint)
	rec, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("application %s not found", fingerprint)
	}
	if err != nil {
		return nil, apperrors.Persistence(err, "get application")
	}
	return rec, nil
}

// List returns archived records matching the query, most recent first.
func (r *HistoryRepo) List(ctx context.Context, q core.HistoryQuery) ([]model.ApplicationRecord, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if q.Platform != "" {
		where = append(where, "platform = ?")
		args = append(args, q.Platform)
	}
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(q.Status))
	}

	query := selectColumns + " FROM applications"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY first_seen_at DESC, id DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
		if q.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, q.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Persistence(err, "list applications")
	}
	defer func() { _ = rows.Close() }()

	out := make([]model.ApplicationRecord, 0)
	for rows.Next() {
		rec, scanErr := scanApplication(rows)
		if scanErr != nil {
			return nil, apperrors.Persistence(scanErr, "scan application row")
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence(err, "iterate application rows")
	}
	return out, nil
}

// Stats aggregates archive-wide counters for reporting.
func (r *HistoryRepo) Stats(ctx context.Context) (*core.ArchiveStats, error) {
	stats := &core.ArchiveStats{
		ByStatus:   make(map[string]int),
		ByPlatform: make(map[string]int),
	}

	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM applications").Scan(&stats.Total); err != nil {
		return nil, apperrors.Persistence(err, "count applications")
	}

	if err := r.countGroup(ctx, "status", stats.ByStatus); err != nil {
		return nil, err
	}
	if err := r.countGroup(ctx, "platform", stats.ByPlatform); err != nil {
		return nil, err
	}

	weekAgo := r.time.FormatForDB(r.time.Now().AddDate(0, 0, -7))
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM applications WHERE last_attempt_at >= ?", weekAgo,
	).Scan(&stats.RecentWeek); err != nil {
		return nil, apperrors.Persistence(err, "count recent applications")
	}
	return stats, nil
}

func (r *HistoryRepo) countGroup(ctx context.Context, column string, dest map[string]int) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+column+", COUNT(*) FROM applications GROUP BY "+column)
	if err != nil {
		return apperrors.Persistence(err, "group applications by "+column)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return apperrors.Persistence(err, "scan group row")
		}
		dest[key] = count
	}
	if err := rows.Err(); err != nil {
		return apperrors.Persistence(err, "iterate group rows")
	}
	return nil
}

const selectColumns = `SELECT fingerprint, external_id, platform, company, title, url,
	status, verification, score, attempt_count, skip_reason, fail_reason,
	first_seen_at, last_attempt_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*model.ApplicationRecord, error) {
	var rec model.ApplicationRecord
	var status, verification, firstSeen, lastAttempt string
	if err := row.Scan(
		&rec.Fingerprint, &rec.ExternalID, &rec.Platform, &rec.Company, &rec.Title, &rec.URL,
		&status, &verification, &rec.Score, &rec.AttemptCount, &rec.SkipReason, &rec.FailReason,
		&firstSeen, &lastAttempt,
	); err != nil {
		return nil, err
	}
	rec.Status = model.ApplicationStatus(status)
	rec.Verification = model.VerificationStatus(verification)
	rec.FirstSeenAt = parseDBTime(firstSeen)
	rec.LastAttemptAt = parseDBTime(lastAttempt)
	return &rec, nil
}

func parseDBTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
