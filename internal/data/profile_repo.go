package data

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jobhawk/jobhawk/internal/domain/model"
)

// LoadProfile reads, normalizes, and validates the operator profile from a
// JSON file. The profile is loaded once per process and treated as immutable
// afterwards.
func LoadProfile(path string) (*model.UserProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}

	var profile model.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", path, err)
	}

	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("validate profile %s: %w", path, err)
	}
	return &profile, nil
}
