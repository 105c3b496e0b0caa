package scoring

import (
	"strconv"
	"strings"
	"unicode"
)

// parseSalaryFloor extracts the first numeric token from free-form salary
// text. Dollar signs and thousands separators are stripped and a trailing
// "k" multiplies by 1000, so "$120,000 - $150,000" and "120k-150k" both
// parse to 120000. The second return is false when no number is present.
func parseSalaryFloor(text string) (float64, bool) {
	cleaned := strings.ReplaceAll(text, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	i := 0
	for i < len(cleaned) && !unicode.IsDigit(rune(cleaned[i])) {
		i++
	}
	if i == len(cleaned) {
		return 0, false
	}

	j := i
	for j < len(cleaned) && (unicode.IsDigit(rune(cleaned[j])) || cleaned[j] == '.') {
		j++
	}

	value, err := strconv.ParseFloat(cleaned[i:j], 64)
	if err != nil {
		return 0, false
	}

	if j < len(cleaned) && (cleaned[j] == 'k' || cleaned[j] == 'K') {
		value *= 1000
	}
	return value, true
}

// salaryScore compares the parsed salary floor against the profile minimum.
// Unparsable text or an unset minimum yields the neutral 0.5.
func salaryScore(salaryText string, salaryMin int) float64 {
	if salaryMin <= 0 {
		return 0.5
	}
	parsed, ok := parseSalaryFloor(salaryText)
	if !ok {
		return 0.5
	}
	if parsed >= float64(salaryMin) {
		return 1.0
	}
	return parsed / float64(salaryMin)
}
