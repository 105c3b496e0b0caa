package model

// ScoreVector is the pure output of the scoring engine. Weighted sub-scores
// contribute to Overall; informational sub-scores are exposed for diagnostics
// and manual review only.
type ScoreVector struct {
	// Weighted sub-scores, each in [0,1].
	Skills           float64 `json:"skills"`
	Experience       float64 `json:"experience"`
	Location         float64 `json:"location"`
	Salary           float64 `json:"salary"`
	Company          float64 `json:"company"`
	TitleRelevance   float64 `json:"title_relevance"`
	DescriptionMatch float64 `json:"description_match"`
	NLPSimilarity    float64 `json:"nlp_similarity"`

	// Informational sub-scores, each in [0,1]; not weighted into Overall.
	RequirementsMatch float64 `json:"requirements_match"`
	Sentiment         float64 `json:"sentiment"`
	Urgency           float64 `json:"urgency"`
	Competition       float64 `json:"competition"`
	GrowthPotential   float64 `json:"growth_potential"`

	// Overall is the weighted sum expressed 0-100, rounded to one decimal.
	Overall float64 `json:"overall"`

	// Degraded is set when malformed input forced the neutral vector.
	Degraded bool `json:"degraded,omitempty"`
}

// NeutralScoreVector is returned when a posting cannot be scored; every
// sub-score is 0.5 so the posting is neither promoted nor buried.
func NeutralScoreVector() ScoreVector {
	return ScoreVector{
		Skills:            0.5,
		Experience:        0.5,
		Location:          0.5,
		Salary:            0.5,
		Company:           0.5,
		TitleRelevance:    0.5,
		DescriptionMatch:  0.5,
		NLPSimilarity:     0.5,
		RequirementsMatch: 0.5,
		Sentiment:         0.5,
		Urgency:           0.5,
		Competition:       0.5,
		GrowthPotential:   0.5,
		Overall:           50.0,
		Degraded:          true,
	}
}

// ScoredPosting pairs a posting with its score vector and the position it was
// discovered at, which the ranker uses as the final stable tie-break.
type ScoredPosting struct {
	Posting JobPosting  `json:"posting"`
	Score   ScoreVector `json:"score"`
	// DiscoveryIndex is the posting's position in cycle discovery order.
	DiscoveryIndex int `json:"discovery_index"`
}
