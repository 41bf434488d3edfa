package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "bopdrop.yaml"

// LoadBopDrop loads Bop Drop configuration.
// Search order: customPath -> ~/.bopdrop/configs/bopdrop.yaml -> ./configs/bopdrop.yaml -> embedded default
// Values missing from a file keep their defaults.
func LoadBopDrop(customPath string) (BopDropConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultBopDropConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseBopDrop(data)
		if err != nil {
			return DefaultBopDropConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseBopDrop(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parseBopDrop(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseBopDrop(defaultBopDropYAML)
	if err != nil {
		return DefaultBopDropConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseBopDrop decodes YAML over the defaults and validates the result.
func parseBopDrop(data []byte) (BopDropConfig, error) {
	cfg := DefaultBopDropConfig()
	ranks := cfg.Ranks
	cfg.Ranks = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if len(cfg.Ranks) == 0 {
		cfg.Ranks = ranks
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML, e.g. for `bopdrop ranks --yaml`.
func Marshal(cfg BopDropConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bopdrop", "configs", filename)
}
