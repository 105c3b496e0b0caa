//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// JobPosting is the canonical posting record. Each source adapter maps its
// native payload into this shape at the boundary; postings live for one cycle.
type JobPosting struct {
	Platform     string    `json:"platform"`
	ExternalID   string    `json:"external_id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements,omitempty"`
	Location     string    `json:"location,omitempty"`
	SalaryText   string    `json:"salary_text,omitempty"`
	URL          string    `json:"url,omitempty"`
	DiscoveredAt time.Time `json:"discovered_at"`
}

// Fingerprint returns the normalized duplicate-detection key for the posting.
// Platform, company, and title are joined with underscores, lowercased, and
// spaces are replaced with underscores so the key is stable across platforms
// that reshuffle their own ids.
func (p *JobPosting) Fingerprint() string {
	return Fingerprint(p.Platform, p.Company, p.Title)
}

// Fingerprint builds a normalized (platform, company, title) dedup key.
func Fingerprint(platform, company, title string) string {
	raw := platform + "_" + company + "_" + title
	raw = strings.ToLower(raw)
	return strings.ReplaceAll(raw, " ", "_")
}

// Normalize trims whitespace from identifying fields.
func (p *JobPosting) Normalize() {
	p.Platform = strings.TrimSpace(p.Platform)
	p.ExternalID = strings.TrimSpace(p.ExternalID)
	p.Title = strings.TrimSpace(p.Title)
	p.Company = strings.TrimSpace(p.Company)
	p.Location = strings.TrimSpace(p.Location)
	p.SalaryText = strings.TrimSpace(p.SalaryText)
	p.URL = strings.TrimSpace(p.URL)
}

// Validate checks the posting carries enough identity to be deduplicated.
func (p *JobPosting) Validate() error {
	if p.Platform == "" {
		return errors.New("platform is required")
	}
	if p.ExternalID == "" {
		return errors.New("external_id is required")
	}
	if p.Title == "" {
		return errors.New("title is required")
	}
	if p.Company == "" {
		return errors.New("company is required")
	}
	return nil
}

// SearchText returns the posting text consulted by keyword heuristics.
func (p *JobPosting) SearchText() string {
	return strings.ToLower(p.Title + " " + p.Description + " " + p.Requirements)
}
