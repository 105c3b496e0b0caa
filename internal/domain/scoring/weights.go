// Package scoring turns a (profile, posting) pair into a ScoreVector. All
// scoring is pure; malformed input degrades to a neutral vector instead of
// propagating an error past the package boundary.
package scoring

import (
	"errors"
	"math"
)

// Weights holds the contribution of each weighted sub-score. The eight
// weights must sum to 1.0.
type Weights struct {
	Skills           float64 `json:"skills"`
	Experience       float64 `json:"experience"`
	Location         float64 `json:"location"`
	Salary           float64 `json:"salary"`
	Company          float64 `json:"company"`
	TitleRelevance   float64 `json:"title_relevance"`
	DescriptionMatch float64 `json:"description_match"`
	NLPSimilarity    float64 `json:"nlp_similarity"`
}

// DefaultWeights returns the hand-tuned production weighting.
func DefaultWeights() Weights {
	return Weights{
		Skills:           0.25,
		Experience:       0.15,
		Location:         0.10,
		Salary:           0.10,
		Company:          0.10,
		TitleRelevance:   0.10,
		DescriptionMatch: 0.10,
		NLPSimilarity:    0.10,
	}
}

const weightSumTolerance = 1e-6

// Validate checks every weight is non-negative and the set sums to 1.0.
func (w Weights) Validate() error {
	values := []float64{
		w.Skills, w.Experience, w.Location, w.Salary,
		w.Company, w.TitleRelevance, w.DescriptionMatch, w.NLPSimilarity,
	}
	sum := 0.0
	for _, v := range values {
		if v < 0 {
			return errors.New("scoring weights must be non-negative")
		}
		sum += v
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return errors.New("scoring weights must sum to 1.0")
	}
	return nil
}
