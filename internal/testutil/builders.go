// Package testutil provides builders and fakes shared by the engine's tests.
package testutil

import (
	"time"

	"github.com/jobhawk/jobhawk/internal/domain/model"
)

// PostingBuilder provides a fluent interface for building JobPosting values.
type PostingBuilder struct {
	posting model.JobPosting
}

// NewPosting creates a PostingBuilder with sensible defaults.
func NewPosting() *PostingBuilder {
	return &PostingBuilder{
		posting: model.JobPosting{
			Platform:     "remoteok",
			ExternalID:   "rok-1001",
			Title:        "DevOps Engineer",
			Company:      "Acme Corp",
			Description:  "Build and operate cloud infrastructure with kubernetes, terraform and go.",
			Requirements: "kubernetes terraform aws go ci/cd",
			Location:     "Remote",
			SalaryText:   "$120,000 - $150,000",
			URL:          "https://remoteok.example/jobs/1001",
			DiscoveredAt: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

// WithPlatform sets the platform.
func (b *PostingBuilder) WithPlatform(platform string) *PostingBuilder {
	b.posting.Platform = platform
	return b
}

// WithExternalID sets the external id.
func (b *PostingBuilder) WithExternalID(id string) *PostingBuilder {
	b.posting.ExternalID = id
	return b
}

// WithTitle sets the title.
func (b *PostingBuilder) WithTitle(title string) *PostingBuilder {
	b.posting.Title = title
	return b
}

// WithCompany sets the company.
func (b *PostingBuilder) WithCompany(company string) *PostingBuilder {
	b.posting.Company = company
	return b
}

// WithDescription sets the description.
func (b *PostingBuilder) WithDescription(description string) *PostingBuilder {
	b.posting.Description = description
	return b
}

// WithLocation sets the location.
func (b *PostingBuilder) WithLocation(location string) *PostingBuilder {
	b.posting.Location = location
	return b
}

// WithSalaryText sets the raw salary text.
func (b *PostingBuilder) WithSalaryText(salary string) *PostingBuilder {
	b.posting.SalaryText = salary
	return b
}

// Build returns the posting value.
func (b *PostingBuilder) Build() model.JobPosting {
	return b.posting
}

// ProfileBuilder provides a fluent interface for building UserProfile values.
type ProfileBuilder struct {
	profile model.UserProfile
}

// NewProfile creates a ProfileBuilder with a strong infrastructure profile.
func NewProfile() *ProfileBuilder {
	return &ProfileBuilder{
		profile: model.UserProfile{
			Name:            "Jordan Rivera",
			Email:           "jordan@example.com",
			Skills:          []string{"kubernetes", "terraform", "go", "aws", "docker"},
			ExperienceYears: 8,
			PreferredRoles:  []string{"devops engineer", "site reliability engineer"},
			Location:        "Remote",
			RemoteOnly:      true,
			SalaryMin:       100000,
			Keywords:        []string{"remote", "cloud", "automation"},
		},
	}
}

// WithSkills replaces the skills list.
func (b *ProfileBuilder) WithSkills(skills ...string) *ProfileBuilder {
	b.profile.Skills = skills
	return b
}

// WithPreferredRoles replaces the preferred roles.
func (b *ProfileBuilder) WithPreferredRoles(roles ...string) *ProfileBuilder {
	b.profile.PreferredRoles = roles
	return b
}

// WithPreferredCompanies replaces the preferred companies.
func (b *ProfileBuilder) WithPreferredCompanies(companies ...string) *ProfileBuilder {
	b.profile.PreferredCompanies = companies
	return b
}

// WithBlacklistedCompanies replaces the blacklist.
func (b *ProfileBuilder) WithBlacklistedCompanies(companies ...string) *ProfileBuilder {
	b.profile.BlacklistedCompanies = companies
	return b
}

// WithExperienceYears sets the experience.
func (b *ProfileBuilder) WithExperienceYears(years int) *ProfileBuilder {
	b.profile.ExperienceYears = years
	return b
}

// WithSalaryMin sets the salary floor.
func (b *ProfileBuilder) WithSalaryMin(min int) *ProfileBuilder {
	b.profile.SalaryMin = min
	return b
}

// Build normalizes and returns the profile.
func (b *ProfileBuilder) Build() *model.UserProfile {
	p := b.profile
	p.Normalize()
	return &p
}
