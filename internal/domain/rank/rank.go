// Package rank orders scored postings deterministically: descending overall
// score, with ties broken by preferred-title tier, platform priority, and
// finally stable discovery order.
package rank

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/jobhawk/jobhawk/internal/domain/model"
)

// fuzzyTierThreshold is the minimum normalized similarity for a title to
// count as a tier member without an exact phrase match.
const fuzzyTierThreshold = 0.7

// Config holds the tie-break tables. Tiers are ordered highest priority
// first; earlier tiers win ties.
type Config struct {
	Tiers            [][]string
	PlatformPriority map[string]int
}

// DefaultConfig returns the production tier lists and platform priorities.
func DefaultConfig() Config {
	return Config{
		Tiers: [][]string{
			{"devops engineer", "site reliability engineer", "platform engineer"},
			{"cloud engineer", "infrastructure engineer", "systems engineer"},
			{"backend engineer", "software engineer"},
			{"automation engineer", "build engineer", "release engineer"},
		},
		PlatformPriority: map[string]int{
			"x/twitter":      5,
			"remoteok":       4,
			"turing":         4,
			"flexjobs":       3,
			"weworkremotely": 3,
			"dice":           2,
			"indeed":         2,
		},
	}
}

// Ranker orders scored postings. It is stateless and safe for concurrent use.
type Ranker struct {
	cfg Config
}

// NewRanker constructs a ranker; a zero-value config disables tier and
// platform tie-breaks but keeps ordering deterministic.
func NewRanker(cfg Config) *Ranker {
	return &Ranker{cfg: cfg}
}

// Rank returns a new slice ordered for attempt execution. Identical input
// always produces identical output.
func (r *Ranker) Rank(scored []model.ScoredPosting) []model.ScoredPosting {
	out := make([]model.ScoredPosting, len(scored))
	copy(out, scored)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		if a.Score.Overall != b.Score.Overall {
			return a.Score.Overall > b.Score.Overall
		}
		tierA, tierB := r.tierBonus(a.Posting.Title), r.tierBonus(b.Posting.Title)
		if tierA != tierB {
			return tierA > tierB
		}
		prioA := r.cfg.PlatformPriority[strings.ToLower(a.Posting.Platform)]
		prioB := r.cfg.PlatformPriority[strings.ToLower(b.Posting.Platform)]
		if prioA != prioB {
			return prioA > prioB
		}
		return a.DiscoveryIndex < b.DiscoveryIndex
	})
	return out
}

// tierBonus returns a bonus for membership in a preferred-title tier; the
// first (highest) tier earns the largest bonus and non-members earn zero.
func (r *Ranker) tierBonus(title string) int {
	titleLower := strings.ToLower(title)
	for i, tier := range r.cfg.Tiers {
		for _, preferred := range tier {
			if titleMatches(titleLower, preferred) {
				return len(r.cfg.Tiers) - i
			}
		}
	}
	return 0
}

// titleMatches accepts an exact phrase match or a fuzzy match at or above the
// normalized-similarity threshold.
func titleMatches(title, preferred string) bool {
	if strings.Contains(title, preferred) {
		return true
	}
	return normalizedSimilarity(title, preferred) >= fuzzyTierThreshold
}

// normalizedSimilarity maps Levenshtein distance to [0,1], where 1 is an
// exact match.
func normalizedSimilarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}
	distance := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}
