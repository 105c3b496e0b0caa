package scoring

// The keyword tables below are the single source of truth for every keyword
// heuristic in the engine. Matching is case-insensitive; callers lowercase
// text before lookup.

// skillTaxonomy groups skill terms into categories. Each category with at
// least one term present in the posting text adds a fixed bonus to the
// skills sub-score.
var skillTaxonomy = map[string][]string{
	"languages":  {"python", "go", "golang", "java", "javascript", "typescript", "ruby", "rust", "c++", "c#"},
	"cloud":      {"aws", "azure", "gcp", "google cloud", "cloud"},
	"containers": {"docker", "kubernetes", "k8s", "containerd", "helm"},
	"ci_cd":      {"jenkins", "gitlab ci", "github actions", "ci/cd", "argocd", "circleci"},
	"iac":        {"terraform", "ansible", "puppet", "chef", "cloudformation"},
	"observability": {
		"prometheus", "grafana", "datadog", "splunk", "elk", "opentelemetry",
	},
	"data": {"sql", "postgresql", "mysql", "redis", "kafka", "elasticsearch"},
	"os":   {"linux", "unix", "bash", "shell"},
}

// skillCategoryBonus is added once per matched taxonomy category.
const skillCategoryBonus = 0.1

// experienceLevel is one rung of the seniority ladder. Posting classification
// walks the ladder in order and takes the first keyword hit.
type experienceLevel struct {
	name     string
	keywords []string
}

// experienceLevels is ordered; index distance between posting and profile
// levels drives the experience sub-score penalty.
var experienceLevels = []experienceLevel{
	{name: "junior", keywords: []string{"junior", "entry level", "entry-level", "graduate", "intern", "associate"}},
	{name: "mid", keywords: []string{"mid level", "mid-level", "intermediate", "2-5 years", "3+ years"}},
	{name: "senior", keywords: []string{"senior", "sr.", "sr ", "lead", "principal", "staff", "5+ years"}},
	{name: "executive", keywords: []string{"director", "vp", "vice president", "head of", "chief", "executive"}},
}

// experienceLevelDistancePenalty is subtracted per level of distance.
const experienceLevelDistancePenalty = 0.2

// defaultExperienceLevel is assumed when a posting mentions no seniority cue.
const defaultExperienceLevel = 1 // mid

// profileExperienceLevel maps years of experience onto the ladder.
func profileExperienceLevel(years int) int {
	switch {
	case years <= 2:
		return 0
	case years <= 5:
		return 1
	case years <= 10:
		return 2
	default:
		return 3
	}
}

// positiveKeywords signal a healthy, well-run position.
var positiveKeywords = []string{
	"competitive salary", "benefits", "401k", "health insurance", "pto",
	"flexible", "work-life balance", "equity", "bonus", "great culture",
}

// scamKeywords signal likely scam or spam postings.
var scamKeywords = []string{
	"no experience necessary", "unlimited earning", "be your own boss",
	"wire transfer", "payment upfront", "registration fee", "quick money",
	"earn up to", "work from home immediately",
}

// urgencyKeywords signal pressure to fill the position fast.
var urgencyKeywords = []string{
	"urgent", "immediate start", "asap", "hiring now", "apply today",
	"fast-paced", "immediately",
}

// competitionKeywords signal a crowded applicant pool.
var competitionKeywords = []string{
	"competitive", "top talent", "best of the best", "high volume",
	"many applicants", "popular",
}

// growthKeywords signal room to advance.
var growthKeywords = []string{
	"growth", "career development", "promotion", "mentorship", "learning",
	"training", "advancement",
}

// keywordHeuristicCap bounds the count-based informational heuristics: four
// or more hits saturate the sub-score at 1.0.
const keywordHeuristicCap = 4
