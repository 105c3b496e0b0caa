package model

import "time"

// RetryEntry is one member of the failed/retry set persisted between cycles.
// The set is re-queued ahead of fresh postings at the start of the next cycle
// and then cleared; entries that fail again are re-added until the attempt
// cap is reached.
type RetryEntry struct {
	Fingerprint   string    `json:"fingerprint"`
	ExternalID    string    `json:"external_id"`
	Platform      string    `json:"platform"`
	AttemptCount  int       `json:"attempt_count"`
	Reason        string    `json:"reason,omitempty"`
	LastAttemptAt time.Time `json:"last_attempt_at"`
}
