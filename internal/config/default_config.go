package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// DefaultConfigJSON is the shipped default configuration, printed by
// "narcscan init --print-defaults"
//
//go:embed default_config.json
var DefaultConfigJSON string

// LoadDefaultConfig parses the embedded default config
func LoadDefaultConfig() (*Config, error) {
	var cfg Config
	if err := json.Unmarshal([]byte(DefaultConfigJSON), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid embedded defaults: %w", err)
	}
	return &cfg, nil
}
