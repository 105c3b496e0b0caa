package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"name": "Jordan Rivera",
		"skills": ["Docker", " Kubernetes ", "go"],
		"experience_years": 8,
		"preferred_roles": ["DevOps Engineer"],
		"remote_only": true,
		"salary_min": 100000
	}`), 0o644))

	profile, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"docker", "kubernetes", "go"}, profile.Skills)
	assert.True(t, profile.RemoteOnly)
}

func TestLoadProfile_Invalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"experience_years": -1}`), 0o644))

	_, err := LoadProfile(path)
	assert.Error(t, err)
}

func TestTimerSleeper_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := TimerSleeper{}.Sleep(ctx, time.Hour)
	assert.Error(t, err)
}
