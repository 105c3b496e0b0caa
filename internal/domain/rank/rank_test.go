package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobhawk/jobhawk/internal/domain/model"
)

func scored(title, platform string, overall float64, idx int) model.ScoredPosting {
	return model.ScoredPosting{
		Posting: model.JobPosting{
			Platform:   platform,
			ExternalID: title + "-" + platform,
			Title:      title,
			Company:    "Acme",
		},
		Score:          model.ScoreVector{Overall: overall},
		DiscoveryIndex: idx,
	}
}

func TestRanker_DescendingByOverall(t *testing.T) {
	t.Parallel()
	ranker := NewRanker(DefaultConfig())

	out := ranker.Rank([]model.ScoredPosting{
		scored("Accountant", "dice", 40, 0),
		scored("DevOps Engineer", "dice", 90, 1),
		scored("Clerk", "dice", 60, 2),
	})

	require.Len(t, out, 3)
	assert.Equal(t, "DevOps Engineer", out[0].Posting.Title)
	assert.Equal(t, "Clerk", out[1].Posting.Title)
	assert.Equal(t, "Accountant", out[2].Posting.Title)
}

func TestRanker_TierBreaksTies(t *testing.T) {
	t.Parallel()
	ranker := NewRanker(DefaultConfig())

	out := ranker.Rank([]model.ScoredPosting{
		scored("Backend Engineer", "dice", 80, 0),
		scored("DevOps Engineer", "dice", 80, 1),
	})

	// Same score, but devops engineer sits in a higher tier.
	assert.Equal(t, "DevOps Engineer", out[0].Posting.Title)
}

func TestRanker_PlatformBreaksRemainingTies(t *testing.T) {
	t.Parallel()
	ranker := NewRanker(DefaultConfig())

	out := ranker.Rank([]model.ScoredPosting{
		scored("DevOps Engineer", "indeed", 80, 0),
		scored("DevOps Engineer", "remoteok", 80, 1),
	})

	assert.Equal(t, "remoteok", out[0].Posting.Platform)
}

func TestRanker_DiscoveryOrderIsFinalTieBreak(t *testing.T) {
	t.Parallel()
	ranker := NewRanker(DefaultConfig())

	out := ranker.Rank([]model.ScoredPosting{
		scored("DevOps Engineer", "dice", 80, 7),
		scored("DevOps Engineer", "dice", 80, 3),
	})

	assert.Equal(t, 3, out[0].DiscoveryIndex)
	assert.Equal(t, 7, out[1].DiscoveryIndex)
}

func TestRanker_Deterministic(t *testing.T) {
	t.Parallel()
	ranker := NewRanker(DefaultConfig())

	in := []model.ScoredPosting{
		scored("Platform Engineer", "remoteok", 75, 0),
		scored("Cloud Engineer", "dice", 75, 1),
		scored("DevOps Engineer", "indeed", 75, 2),
		scored("Accountant", "turing", 75, 3),
	}

	first := ranker.Rank(in)
	for range 10 {
		assert.Equal(t, first, ranker.Rank(in))
	}
}

func TestTitleMatches_Fuzzy(t *testing.T) {
	t.Parallel()

	// A close typo still counts as tier membership.
	assert.True(t, titleMatches("devops enginer", "devops engineer"))
	// An unrelated title does not.
	assert.False(t, titleMatches("accountant", "devops engineer"))
}

func TestNormalizedSimilarity_Bounds(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, normalizedSimilarity("abc", "abc"), 1e-9)
	assert.InDelta(t, 1.0, normalizedSimilarity("", ""), 1e-9)
	assert.Less(t, normalizedSimilarity("abc", "xyz"), 0.5)
}
