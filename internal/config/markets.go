package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MarketEntry is one market to start tracking at boot.
type MarketEntry struct {
	Address     string `yaml:"address"`
	TriggerOnly bool   `yaml:"triggerOnly"`
}

type marketsFile struct {
	Markets []MarketEntry `yaml:"markets"`
}

// LoadMarketsFile reads the optional YAML list of markets to track. An
// empty path means no startup markets.
func LoadMarketsFile(path string) ([]MarketEntry, error) {
	if path == "" {
		return nil, nil
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markets file %q: %w", path, err)
	}

	var parsed marketsFile
	if err := yaml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse markets file %q: %w", path, err)
	}

	return parsed.Markets, nil
}
