// Package letter generates cover-letter text for an application attempt.
// Generation is pure: the same profile, title, and company always produce the
// same text.
package letter

import (
	"fmt"
	"strings"

	"github.com/jobhawk/jobhawk/internal/domain/model"
)

// companyInsights carries a tailored opening line for companies we know.
// Lookup is case-insensitive on the normalized company name.
var companyInsights = map[string]string{
	"google":     "I have long admired Google's engineering culture and its investment in reliability at planetary scale.",
	"amazon":     "Amazon's operational excellence and ownership principles closely match how I approach infrastructure work.",
	"microsoft":  "Microsoft's developer-first platform strategy aligns with my background in automation tooling.",
	"gitlab":     "As a daily GitLab user I appreciate the all-remote, handbook-driven way the company operates.",
	"cloudflare": "Cloudflare's edge platform is exactly the kind of high-leverage infrastructure I want to help run.",
}

// Generator renders cover letters from the operator profile.
type Generator struct {
	profile *model.UserProfile
}

// NewGenerator constructs a cover-letter generator for a profile.
func NewGenerator(profile *model.UserProfile) *Generator {
	if profile == nil {
		panic("letter: profile is required")
	}
	return &Generator{profile: profile}
}

// Generate returns the cover-letter text for one posting. Called once per
// attempt.
func (g *Generator) Generate(title, company string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s Hiring Team,\n\n", company)

	if insight, ok := companyInsights[strings.ToLower(strings.TrimSpace(company))]; ok {
		b.WriteString(insight)
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "I am excited to apply for the %s position.", title)

	if years := g.profile.ExperienceYears; years > 0 {
		fmt.Fprintf(&b, " I bring %d years of hands-on experience", years)
		if skills := topSkills(g.profile.Skills, 3); skills != "" {
			fmt.Fprintf(&b, " with %s", skills)
		}
		b.WriteString(".")
	}

	b.WriteString("\n\nI would welcome the chance to discuss how I can contribute to your team.\n\n")
	b.WriteString("Best regards,\n")
	if g.profile.Name != "" {
		b.WriteString(g.profile.Name)
	} else {
		b.WriteString("The Applicant")
	}
	return b.String()
}

// topSkills joins up to n skills into a readable list.
func topSkills(skills []string, n int) string {
	if len(skills) == 0 {
		return ""
	}
	if len(skills) > n {
		skills = skills[:n]
	}
	switch len(skills) {
	case 1:
		return skills[0]
	case 2:
		return skills[0] + " and " + skills[1]
	default:
		return strings.Join(skills[:len(skills)-1], ", ") + ", and " + skills[len(skills)-1]
	}
}
