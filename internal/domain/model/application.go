package model

import (
	"errors"
	"time"
)

// ApplicationStatus is the terminal-or-retryable state of an application record.
type ApplicationStatus string

const (
	// StatusApplied means the action completed; terminal and immutable.
	StatusApplied ApplicationStatus = "applied"
	// StatusFailed means the attempt failed; the record is eligible for retry.
	StatusFailed ApplicationStatus = "failed"
	// StatusSkipped means the posting scored below the floor or was denied by
	// pacing; it may be re-scored in a later cycle.
	StatusSkipped ApplicationStatus = "skipped"
)

// VerificationStatus records whether an Applied outcome was confirmed by the
// external confirmation collaborator.
type VerificationStatus string

const (
	// VerificationConfirmed means the application was positively confirmed.
	VerificationConfirmed VerificationStatus = "confirmed"
	// VerificationPending means the outcome was ambiguous and awaits
	// out-of-band confirmation.
	VerificationPending VerificationStatus = "pending"
	// VerificationError means confirmation itself failed.
	VerificationError VerificationStatus = "error"
)

// ApplicationRecord is the per-unique-job record owned by the state store.
// One exists per fingerprint; it is never deleted, only transitioned.
type ApplicationRecord struct {
	Fingerprint   string             `json:"fingerprint"`
	ExternalID    string             `json:"external_id"`
	Platform      string             `json:"platform"`
	Company       string             `json:"company"`
	Title         string             `json:"title"`
	URL           string             `json:"url,omitempty"`
	Status        ApplicationStatus  `json:"status"`
	Verification  VerificationStatus `json:"verification,omitempty"`
	Score         float64            `json:"score"`
	AttemptCount  int                `json:"attempt_count"`
	SkipReason    string             `json:"skip_reason,omitempty"`
	FailReason    string             `json:"fail_reason,omitempty"`
	FirstSeenAt   time.Time          `json:"first_seen_at"`
	LastAttemptAt time.Time          `json:"last_attempt_at"`
}

// Terminal reports whether the record may never be attempted again.
func (r *ApplicationRecord) Terminal() bool {
	return r.Status == StatusApplied
}

// Validate checks the record carries the identity the state store keys on.
func (r *ApplicationRecord) Validate() error {
	if r.Fingerprint == "" {
		return errors.New("fingerprint is required")
	}
	if r.Platform == "" {
		return errors.New("platform is required")
	}
	switch r.Status {
	case StatusApplied, StatusFailed, StatusSkipped:
	default:
		return errors.New("status must be applied, failed, or skipped")
	}
	return nil
}
