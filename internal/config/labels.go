package config

import (
	"fmt"
	"os"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"

	"gopkg.in/yaml.v2"
)

// LoadLabels returns the default labels overlaid with the YAML file at
// path. An empty path returns the defaults.
func LoadLabels(path string) (domain.Labels, error) {
	defaults := domain.DefaultLabels()
	if path == "" {
		return defaults, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return defaults, fmt.Errorf("read labels file: %w", err)
	}

	var overrides domain.Labels
	if err := yaml.UnmarshalStrict(raw, &overrides); err != nil {
		return defaults, fmt.Errorf("parse labels file %s: %w", path, err)
	}
	return overrides.Merge(defaults), nil
}
