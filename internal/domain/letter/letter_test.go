package letter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobhawk/jobhawk/internal/domain/model"
)

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(&model.UserProfile{
		Name:            "Jordan Rivera",
		Skills:          []string{"kubernetes", "terraform", "go", "aws"},
		ExperienceYears: 8,
	})

	text := gen.Generate("Senior DevOps Engineer", "GitLab")

	assert.Contains(t, text, "Dear GitLab Hiring Team")
	assert.Contains(t, text, "Senior DevOps Engineer")
	assert.Contains(t, text, "8 years")
	assert.Contains(t, text, "kubernetes, terraform, and go")
	assert.Contains(t, text, "handbook-driven", "known companies get a tailored opening")
	assert.Contains(t, text, "Jordan Rivera")
}

func TestGenerator_Generate_Deterministic(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(&model.UserProfile{Skills: []string{"python"}, ExperienceYears: 3})

	first := gen.Generate("SRE", "Initech")
	require.Equal(t, first, gen.Generate("SRE", "Initech"))
	assert.Contains(t, first, "The Applicant", "unnamed profiles fall back to a generic signature")
}
