package scoring

import (
	"math"
	"strings"
	"unicode"
)

// tokenize lowercases text and splits it into alphanumeric terms, dropping
// single-character noise.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 1 {
			terms = append(terms, f)
		}
	}
	return terms
}

// termFrequencies returns per-term counts normalized by document length.
func termFrequencies(terms []string) map[string]float64 {
	if len(terms) == 0 {
		return nil
	}
	tf := make(map[string]float64, len(terms))
	for _, t := range terms {
		tf[t]++
	}
	n := float64(len(terms))
	for t := range tf {
		tf[t] /= n
	}
	return tf
}

// tfidfCosine computes the cosine similarity of two documents under a
// two-document TF-IDF model. Terms appearing in both documents are damped,
// terms unique to one weigh more; the result is in [0,1]. Either document
// being empty yields 0.
func tfidfCosine(a, b string) float64 {
	tfA := termFrequencies(tokenize(a))
	tfB := termFrequencies(tokenize(b))
	if len(tfA) == 0 || len(tfB) == 0 {
		return 0
	}

	idf := func(term string) float64 {
		df := 0
		if _, ok := tfA[term]; ok {
			df++
		}
		if _, ok := tfB[term]; ok {
			df++
		}
		// Smoothed IDF over the two-document corpus.
		return math.Log(1+2.0/float64(df)) + 1
	}

	var dot, normA, normB float64
	for term, fa := range tfA {
		wa := fa * idf(term)
		normA += wa * wa
		if fb, ok := tfB[term]; ok {
			dot += wa * fb * idf(term)
		}
	}
	for term, fb := range tfB {
		wb := fb * idf(term)
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return clamp01(sim)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
