package scoring

import (
	"log/slog"
	"math"
	"strings"

	"github.com/jobhawk/jobhawk/internal/domain/model"
)

// EngineOptions groups dependencies for Engine.
type EngineOptions struct {
	Weights Weights      // Required: must validate
	Logger  *slog.Logger // Optional: structured logger for degraded scoring
}

// Engine computes score vectors. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	weights Weights
	logger  *slog.Logger
}

// NewEngine constructs a scoring engine.
func NewEngine(opts EngineOptions) *Engine {
	if err := opts.Weights.Validate(); err != nil {
		panic("scoring: " + err.Error())
	}
	return &Engine{
		weights: opts.Weights,
		logger:  opts.Logger,
	}
}

// Score evaluates a posting against the profile. It never panics past this
// boundary: malformed input produces the neutral all-0.5 vector and the fault
// is logged.
func (e *Engine) Score(profile *model.UserProfile, posting *model.JobPosting) (vec model.ScoreVector) {
	defer func() {
		if r := recover(); r != nil {
			if e.logger != nil {
				e.logger.Warn("scoring degraded to neutral vector", "panic", r)
			}
			vec = model.NeutralScoreVector()
		}
	}()

	if profile == nil || posting == nil || posting.Validate() != nil {
		if e.logger != nil {
			e.logger.Warn("scoring received malformed input",
				"has_profile", profile != nil,
				"has_posting", posting != nil)
		}
		return model.NeutralScoreVector()
	}

	text := posting.SearchText()
	description := strings.ToLower(posting.Description)

	vec = model.ScoreVector{
		Skills:           skillsScore(profile.Skills, text),
		Experience:       experienceScore(profile.ExperienceYears, text),
		Location:         locationScore(profile, posting),
		Salary:           salaryScore(posting.SalaryText, profile.SalaryMin),
		Company:          companyScore(profile, posting.Company),
		TitleRelevance:   titleRelevanceScore(profile.PreferredRoles, posting.Title),
		DescriptionMatch: fractionMatched(profile.Keywords, description),
		NLPSimilarity:    similarityScore(profile.MatchText(), description),

		RequirementsMatch: fractionMatched(profile.Skills, strings.ToLower(posting.Requirements)),
		Sentiment:         sentimentScore(text),
		Urgency:           keywordRatio(urgencyKeywords, text),
		Competition:       keywordRatio(competitionKeywords, text),
		GrowthPotential:   keywordRatio(growthKeywords, text),
	}
	vec.Overall = e.overall(vec)
	return vec
}

// overall is the weighted sum expressed 0-100, rounded to one decimal.
func (e *Engine) overall(vec model.ScoreVector) float64 {
	sum := e.weights.Skills*vec.Skills +
		e.weights.Experience*vec.Experience +
		e.weights.Location*vec.Location +
		e.weights.Salary*vec.Salary +
		e.weights.Company*vec.Company +
		e.weights.TitleRelevance*vec.TitleRelevance +
		e.weights.DescriptionMatch*vec.DescriptionMatch +
		e.weights.NLPSimilarity*vec.NLPSimilarity
	return math.Round(sum*1000) / 10
}

// skillsScore combines the matched-skill fraction with a taxonomy category
// bonus, capped at 1.0. A profile without skills scores neutral.
func skillsScore(skills []string, text string) float64 {
	if len(skills) == 0 {
		return 0.5
	}

	matched := make([]string, 0, len(skills))
	for _, skill := range skills {
		if strings.Contains(text, skill) {
			matched = append(matched, skill)
		}
	}
	score := float64(len(matched)) / float64(len(skills))

	for _, terms := range skillTaxonomy {
		if categoryMatched(terms, matched) {
			score += skillCategoryBonus
		}
	}
	return clamp01(score)
}

func categoryMatched(categoryTerms, matchedSkills []string) bool {
	for _, term := range categoryTerms {
		for _, skill := range matchedSkills {
			if skill == term {
				return true
			}
		}
	}
	return false
}

// experienceScore penalizes the distance between the posting's seniority
// level and the profile's, one ladder rung at a time.
func experienceScore(years int, text string) float64 {
	postingLevel := defaultExperienceLevel
	for i, level := range experienceLevels {
		if anyKeyword(level.keywords, text) {
			postingLevel = i
			break
		}
	}

	distance := math.Abs(float64(postingLevel - profileExperienceLevel(years)))
	return math.Max(0, 1-experienceLevelDistancePenalty*distance)
}

func locationScore(profile *model.UserProfile, posting *model.JobPosting) float64 {
	postingLoc := strings.ToLower(posting.Location)
	if profile.RemoteOnly {
		haystack := postingLoc + " " + posting.SearchText()
		if strings.Contains(haystack, "remote") || strings.Contains(haystack, "anywhere") {
			return 1.0
		}
	}

	userLoc := strings.ToLower(profile.Location)
	if userLoc == "" || postingLoc == "" {
		return 0.5
	}
	if strings.Contains(postingLoc, userLoc) {
		return 1.0
	}
	for _, fragment := range strings.Split(userLoc, ",") {
		fragment = strings.TrimSpace(fragment)
		if fragment != "" && strings.Contains(postingLoc, fragment) {
			return 0.8
		}
	}
	return 0.5
}

// companyScore checks the blacklist before the preferred list; a blacklisted
// company scores zero regardless of preference.
func companyScore(profile *model.UserProfile, company string) float64 {
	name := strings.ToLower(company)
	for _, blocked := range profile.BlacklistedCompanies {
		if strings.Contains(name, blocked) {
			return 0.0
		}
	}
	for _, preferred := range profile.PreferredCompanies {
		if strings.Contains(name, preferred) {
			return 1.0
		}
	}
	return 0.5
}

// titleRelevanceScore averages per-role relevance: full phrase match 1.0,
// any-word match 0.5, otherwise 0.
func titleRelevanceScore(roles []string, title string) float64 {
	if len(roles) == 0 {
		return 0.5
	}

	titleLower := strings.ToLower(title)
	total := 0.0
	for _, role := range roles {
		switch {
		case strings.Contains(titleLower, role):
			total += 1.0
		case anyKeyword(strings.Fields(role), titleLower):
			total += 0.5
		}
	}
	return clamp01(total / float64(len(roles)))
}

// fractionMatched returns the fraction of terms present in text, neutral when
// either side is empty.
func fractionMatched(terms []string, text string) float64 {
	if len(terms) == 0 || text == "" {
		return 0.5
	}
	matched := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

// similarityScore is TF-IDF cosine similarity, neutral when either document
// is empty.
func similarityScore(profileText, description string) float64 {
	if strings.TrimSpace(profileText) == "" || strings.TrimSpace(description) == "" {
		return 0.5
	}
	return tfidfCosine(profileText, description)
}

// sentimentScore weighs positive signals against scam signals; text with
// neither scores neutral. It doubles as a scam filter: scam-heavy postings
// trend toward 0.
func sentimentScore(text string) float64 {
	positive := countKeywords(positiveKeywords, text)
	scam := countKeywords(scamKeywords, text)
	if positive+scam == 0 {
		return 0.5
	}
	return float64(positive) / float64(positive+scam)
}

// keywordRatio is the bounded count heuristic behind the informational
// sub-scores.
func keywordRatio(keywords []string, text string) float64 {
	hits := countKeywords(keywords, text)
	return clamp01(float64(hits) / float64(keywordHeuristicCap))
}

func countKeywords(keywords []string, text string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return count
}

func anyKeyword(keywords []string, text string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
