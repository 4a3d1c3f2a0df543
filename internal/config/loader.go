package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadForager loads forager configuration.
// Search order: customPath -> ~/.forager/configs/forager.yaml -> ./configs/forager.yaml -> embedded default
//
// Files are decoded over DefaultForagerConfig, so a partial file only
// overrides the keys it sets. The result is validated.
func LoadForager(customPath string) (ForagerConfig, error) {
	cfg, err := loadForager(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadForager(customPath string) (ForagerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultForagerConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseForager(data)
		if err != nil {
			return DefaultForagerConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("forager.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseForager(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "forager.yaml")); err == nil {
		if cfg, err := parseForager(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseForager(defaultForagerYAML)
	if err != nil {
		return DefaultForagerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseForager decodes data over the hardcoded defaults. Lists in the file
// replace the default lists; animation entries merge by name.
func parseForager(data []byte) (ForagerConfig, error) {
	cfg := DefaultForagerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ConfigDir returns ~/.forager, or empty if home is unavailable.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".forager")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
