package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSalaryFloor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want float64
		ok   bool
	}{
		{name: "plain dollars", text: "$40,000", want: 40000, ok: true},
		{name: "range takes first number", text: "$120,000 - $150,000", want: 120000, ok: true},
		{name: "k suffix", text: "120k-150k", want: 120000, ok: true},
		{name: "embedded text", text: "up to $95,000 DOE", want: 95000, ok: true},
		{name: "no number", text: "competitive", ok: false},
		{name: "empty", text: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := parseSalaryFloor(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestSalaryScore(t *testing.T) {
	t.Parallel()

	// Below the floor scores proportionally.
	assert.InDelta(t, 0.4, salaryScore("$40,000", 100000), 1e-9)
	// At or above the floor scores full marks off the first parsed number.
	assert.InDelta(t, 1.0, salaryScore("$120,000 - $150,000", 100000), 1e-9)
	// Unparsable text and unset floors are neutral.
	assert.InDelta(t, 0.5, salaryScore("competitive", 100000), 1e-9)
	assert.InDelta(t, 0.5, salaryScore("$40,000", 0), 1e-9)
}
