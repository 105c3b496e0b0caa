package model

import (
	"errors"
	"strings"
)

// UserProfile describes the operator the engine scores postings against.
// It is loaded once per process and treated as immutable during a cycle.
type UserProfile struct {
	Name                 string   `json:"name,omitempty"`
	Email                string   `json:"email,omitempty"`
	Skills               []string `json:"skills"`
	ExperienceYears      int      `json:"experience_years"`
	PreferredRoles       []string `json:"preferred_roles"`
	PreferredCompanies   []string `json:"preferred_companies,omitempty"`
	BlacklistedCompanies []string `json:"blacklisted_companies,omitempty"`
	Location             string   `json:"location,omitempty"`
	RemoteOnly           bool     `json:"remote_only"`
	SalaryMin            int      `json:"salary_min,omitempty"`
	Keywords             []string `json:"keywords,omitempty"`
	Summary              string   `json:"summary,omitempty"`
}

// Normalize lowercases and trims the list fields so matching is case-insensitive.
func (p *UserProfile) Normalize() {
	p.Skills = normalizeTerms(p.Skills)
	p.PreferredRoles = normalizeTerms(p.PreferredRoles)
	p.PreferredCompanies = normalizeTerms(p.PreferredCompanies)
	p.BlacklistedCompanies = normalizeTerms(p.BlacklistedCompanies)
	p.Keywords = normalizeTerms(p.Keywords)
	p.Location = strings.TrimSpace(p.Location)
}

// Validate checks the profile is usable for scoring.
func (p *UserProfile) Validate() error {
	if len(p.Skills) == 0 && len(p.PreferredRoles) == 0 {
		return errors.New("profile must declare skills or preferred roles")
	}
	if p.ExperienceYears < 0 {
		return errors.New("experience_years must be >= 0")
	}
	if p.SalaryMin < 0 {
		return errors.New("salary_min must be >= 0")
	}
	return nil
}

// MatchText returns the profile text used for similarity comparison against
// posting descriptions.
func (p *UserProfile) MatchText() string {
	parts := make([]string, 0, 4)
	if len(p.Skills) > 0 {
		parts = append(parts, strings.Join(p.Skills, " "))
	}
	if len(p.PreferredRoles) > 0 {
		parts = append(parts, strings.Join(p.PreferredRoles, " "))
	}
	if len(p.Keywords) > 0 {
		parts = append(parts, strings.Join(p.Keywords, " "))
	}
	if p.Summary != "" {
		parts = append(parts, p.Summary)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
