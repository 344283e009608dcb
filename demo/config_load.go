//go:build !tinygo

package demo

import (
	"encoding/json"
	"fmt"
)

// LoadConfig parses a JSON configuration on top of DefaultConfig.
// Fields missing from the document keep their default value.
func LoadConfig(jsonData []byte) (*Config, error) {
	config := DefaultConfig()

	if err := json.Unmarshal(jsonData, &config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Apply defaults
	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
