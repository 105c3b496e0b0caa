package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobhawk/jobhawk/internal/domain/model"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(EngineOptions{Weights: DefaultWeights()})
}

func strongProfile() *model.UserProfile {
	p := &model.UserProfile{
		Skills:               []string{"docker", "kubernetes", "terraform", "aws", "python"},
		ExperienceYears:      8,
		PreferredRoles:       []string{"devops engineer", "site reliability engineer"},
		PreferredCompanies:   []string{"google"},
		BlacklistedCompanies: []string{"badcorp"},
		RemoteOnly:           true,
		SalaryMin:            100000,
		Keywords:             []string{"automation", "infrastructure"},
	}
	p.Normalize()
	return p
}

func devopsPosting() *model.JobPosting {
	return &model.JobPosting{
		Platform:   "remoteok",
		ExternalID: "101",
		Title:      "Senior DevOps Engineer",
		Company:    "Google",
		Description: "Remote role building infrastructure automation with Docker, " +
			"Kubernetes, Terraform and AWS. Competitive salary and benefits.",
		Requirements: "docker kubernetes terraform aws",
		Location:     "Remote",
		SalaryText:   "$150,000 - $180,000",
		DiscoveredAt: time.Now(),
	}
}

func TestEngine_Score_StrongMatch(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	vec := engine.Score(strongProfile(), devopsPosting())

	assert.Greater(t, vec.Overall, 70.0)
	assert.False(t, vec.Degraded)
	assert.InDelta(t, 1.0, vec.Salary, 1e-9)
	assert.InDelta(t, 1.0, vec.Company, 1e-9)
	assert.InDelta(t, 1.0, vec.Location, 1e-9)
}

func TestEngine_Score_WeakMatch(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	weak := &model.JobPosting{
		Platform:    "dice",
		ExternalID:  "999",
		Title:       "Data Entry Clerk",
		Company:     "Unknown Corp",
		Description: "On-site data entry, typing and filing.",
	}

	strong := engine.Score(strongProfile(), devopsPosting())
	vec := engine.Score(strongProfile(), weak)

	assert.Less(t, vec.Overall, 30.0)
	assert.Greater(t, strong.Overall, vec.Overall)
}

func TestEngine_Score_Bounds(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	postings := []*model.JobPosting{
		devopsPosting(),
		{Platform: "a", ExternalID: "1", Title: "x", Company: "y"},
		{Platform: "b", ExternalID: "2", Title: "Chief Executive", Company: "badcorp", SalaryText: "nonsense"},
	}
	for _, p := range postings {
		vec := engine.Score(strongProfile(), p)
		assert.GreaterOrEqual(t, vec.Overall, 0.0)
		assert.LessOrEqual(t, vec.Overall, 100.0)
		for _, sub := range []float64{
			vec.Skills, vec.Experience, vec.Location, vec.Salary, vec.Company,
			vec.TitleRelevance, vec.DescriptionMatch, vec.NLPSimilarity,
			vec.RequirementsMatch, vec.Sentiment, vec.Urgency, vec.Competition,
			vec.GrowthPotential,
		} {
			assert.GreaterOrEqual(t, sub, 0.0)
			assert.LessOrEqual(t, sub, 1.0)
		}
	}
}

func TestEngine_Score_MalformedInputNeutral(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	vec := engine.Score(nil, devopsPosting())
	assert.True(t, vec.Degraded)
	assert.InDelta(t, 50.0, vec.Overall, 1e-9)

	vec = engine.Score(strongProfile(), &model.JobPosting{Platform: "remoteok"})
	assert.True(t, vec.Degraded)
	assert.InDelta(t, 0.5, vec.Skills, 1e-9)
}

func TestSkillsScore_Monotonic(t *testing.T) {
	t.Parallel()

	profile := strongProfile()
	without := skillsScore(profile.Skills, "we use docker and kubernetes")
	with := skillsScore(profile.Skills, "we use docker and kubernetes and terraform")

	assert.GreaterOrEqual(t, with, without)
}

func TestCompanyScore_BlacklistOverridesPreferred(t *testing.T) {
	t.Parallel()

	profile := strongProfile()
	profile.PreferredCompanies = append(profile.PreferredCompanies, "badcorp")

	assert.Zero(t, companyScore(profile, "BadCorp"))
	assert.InDelta(t, 1.0, companyScore(profile, "Google"), 1e-9)
	assert.InDelta(t, 0.5, companyScore(profile, "Initech"), 1e-9)
}

func TestEngine_Score_BlacklistReducesButNotZeroOverall(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	posting := devopsPosting()
	posting.Company = "BadCorp"

	vec := engine.Score(strongProfile(), posting)
	assert.Zero(t, vec.Company)
	assert.Greater(t, vec.Overall, 0.0, "other sub-scores still contribute")
}

func TestExperienceScore_LevelDistance(t *testing.T) {
	t.Parallel()

	// Senior posting against a senior profile has no penalty.
	assert.InDelta(t, 1.0, experienceScore(8, "senior devops engineer"), 1e-9)
	// Junior posting against a senior profile is two rungs away.
	assert.InDelta(t, 0.6, experienceScore(8, "junior developer wanted"), 1e-9)
	// No seniority cue defaults to mid.
	assert.InDelta(t, 0.8, experienceScore(8, "devops engineer"), 1e-9)
}

func TestTitleRelevanceScore(t *testing.T) {
	t.Parallel()

	roles := []string{"devops engineer"}
	assert.InDelta(t, 1.0, titleRelevanceScore(roles, "Senior DevOps Engineer"), 1e-9)
	assert.InDelta(t, 0.5, titleRelevanceScore(roles, "Platform Engineer"), 1e-9)
	assert.Zero(t, titleRelevanceScore(roles, "Accountant"))
	assert.InDelta(t, 0.5, titleRelevanceScore(nil, "Anything"), 1e-9)
}

func TestSentimentScore_ScamHeavyTextScoresLow(t *testing.T) {
	t.Parallel()

	scam := "no experience necessary, unlimited earning, be your own boss, payment upfront"
	healthy := "competitive salary, benefits, 401k, flexible work-life balance"

	assert.Less(t, sentimentScore(scam), 0.5)
	assert.Greater(t, sentimentScore(healthy), 0.5)
	require.InDelta(t, 0.5, sentimentScore("plain role description"), 1e-9)
}
