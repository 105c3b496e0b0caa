package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunStats_RecordApplied(t *testing.T) {
	t.Parallel()

	stats := NewRunStats()
	at := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	rec := &ApplicationRecord{
		Fingerprint: "remoteok_acme_sre",
		Platform:    "remoteok",
		Company:     "Acme",
		Title:       "SRE",
	}

	stats.RecordApplied(rec, at)
	stats.RecordApplied(rec, at)

	assert.Equal(t, 2, stats.TotalApplied)
	assert.Equal(t, 2, stats.ByPlatform["remoteok"])
	assert.Equal(t, 2, stats.ByDate["2026-03-14"])
	assert.Equal(t, 2, stats.ByCompany["Acme"])
}

func TestRunStats_SuccessRate(t *testing.T) {
	t.Parallel()

	stats := NewRunStats()
	assert.InDelta(t, 1.0, stats.SuccessRate(), 1e-9, "no attempts yet should not penalize pacing")

	stats.TotalApplied = 3
	stats.TotalFailed = 1
	assert.InDelta(t, 0.75, stats.SuccessRate(), 1e-9)
}

func TestRunStats_RecordApplied_NilMaps(t *testing.T) {
	t.Parallel()

	// Aggregates decoded from an older stats file may have nil maps.
	stats := &RunStats{}
	stats.RecordApplied(&ApplicationRecord{Platform: "dice", Company: "Acme", Title: "SRE"}, time.Now())

	assert.Equal(t, 1, stats.ByPlatform["dice"])
}
