package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_Normalization(t *testing.T) {
	t.Parallel()

	got := Fingerprint("RemoteOK", "Acme Corp", "DevOps Engineer")
	assert.Equal(t, "remoteok_acme_corp_devops_engineer", got)
}

func TestFingerprint_CollapsesAcrossExternalIDs(t *testing.T) {
	t.Parallel()

	// Same company and title from different listings must collapse to one
	// fingerprint even when the platform hands out fresh external ids.
	a := JobPosting{Platform: "dice", ExternalID: "id-1", Company: "Acme", Title: "DevOps Engineer"}
	b := JobPosting{Platform: "dice", ExternalID: "id-9999", Company: "Acme", Title: "DevOps Engineer"}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestJobPosting_Normalize(t *testing.T) {
	t.Parallel()

	p := JobPosting{
		Platform:   "  remoteok ",
		ExternalID: " 42 ",
		Title:      " Site Reliability Engineer ",
		Company:    " Initech ",
	}
	p.Normalize()

	assert.Equal(t, "remoteok", p.Platform)
	assert.Equal(t, "42", p.ExternalID)
	assert.Equal(t, "Site Reliability Engineer", p.Title)
	assert.Equal(t, "Initech", p.Company)
}

func TestJobPosting_Validate(t *testing.T) {
	t.Parallel()

	valid := JobPosting{Platform: "remoteok", ExternalID: "1", Title: "SRE", Company: "Initech"}
	require.NoError(t, valid.Validate())

	missing := JobPosting{Platform: "remoteok", Title: "SRE", Company: "Initech"}
	assert.Error(t, missing.Validate())
}
