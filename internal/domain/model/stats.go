package model

import "time"

// RunStats is the cumulative, never-reset statistics aggregate persisted in
// the stats file. Counters only grow; the date key format is YYYY-MM-DD.
type RunStats struct {
	TotalApplications int            `json:"total_applications"`
	TotalApplied      int            `json:"total_applied"`
	TotalFailed       int            `json:"total_failed"`
	TotalSkipped      int            `json:"total_skipped"`
	ByPlatform        map[string]int `json:"by_platform"`
	ByDate            map[string]int `json:"by_date"`
	ByCompany         map[string]int `json:"by_company"`
	ByTitle           map[string]int `json:"by_title"`
	LastCycleAt       time.Time      `json:"last_cycle_at,omitzero"`
}

// NewRunStats returns an empty aggregate with initialized counter maps.
func NewRunStats() *RunStats {
	return &RunStats{
		ByPlatform: make(map[string]int),
		ByDate:     make(map[string]int),
		ByCompany:  make(map[string]int),
		ByTitle:    make(map[string]int),
	}
}

// ensureMaps guards against aggregates decoded from older stats files where a
// counter map was absent.
func (s *RunStats) ensureMaps() {
	if s.ByPlatform == nil {
		s.ByPlatform = make(map[string]int)
	}
	if s.ByDate == nil {
		s.ByDate = make(map[string]int)
	}
	if s.ByCompany == nil {
		s.ByCompany = make(map[string]int)
	}
	if s.ByTitle == nil {
		s.ByTitle = make(map[string]int)
	}
}

// RecordApplied increments the applied counters for one successful action.
func (s *RunStats) RecordApplied(rec *ApplicationRecord, at time.Time) {
	s.ensureMaps()
	s.TotalApplications++
	s.TotalApplied++
	s.ByPlatform[rec.Platform]++
	s.ByDate[at.Format(time.DateOnly)]++
	s.ByCompany[rec.Company]++
	s.ByTitle[rec.Title]++
}

// RecordFailed increments the failure counter.
func (s *RunStats) RecordFailed() {
	s.TotalApplications++
	s.TotalFailed++
}

// RecordSkipped increments the skip counter.
func (s *RunStats) RecordSkipped() {
	s.TotalSkipped++
}

// SuccessRate returns applied/(applied+failed) in [0,1]. With no attempts on
// record it returns 1.0 so the admission controller starts unpenalized.
func (s *RunStats) SuccessRate() float64 {
	attempts := s.TotalApplied + s.TotalFailed
	if attempts == 0 {
		return 1.0
	}
	return float64(s.TotalApplied) / float64(attempts)
}

// CycleSummary is the per-cycle report emitted by the orchestrator. It is
// always produced from whatever accumulated, even on partial failure.
type CycleSummary struct {
	RunID            string        `json:"run_id"`
	StartedAt        time.Time     `json:"started_at"`
	Duration         time.Duration `json:"duration"`
	Found            int           `json:"found"`
	Retried          int           `json:"retried"`
	Deduped          int           `json:"deduped"`
	ScoredAboveFloor int           `json:"scored_above_floor"`
	Attempted        int           `json:"attempted"`
	Applied          int           `json:"applied"`
	Failed           int           `json:"failed"`
	Skipped          int           `json:"skipped"`
	Denied           int           `json:"denied"`
	SourceErrors     int           `json:"source_errors"`
}
