package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const t2048File = "t2048.yaml"

// LoadT2048 loads the 2048 configuration.
//
// An explicit path must exist and be valid. Otherwise the first usable file of
// ~/.t2048/configs/t2048.yaml and ./configs/t2048.yaml wins, and the embedded
// default is used when neither is. Files only need the keys they change.
func LoadT2048(customPath string) (T2048Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return T2048Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseT2048(data)
		if err != nil {
			return T2048Config{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths(t2048File) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		// Unreadable or invalid files fall through to the next candidate.
		if cfg, err := parseT2048(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parseT2048(defaultT2048YAML); err == nil {
		return cfg, nil
	}
	return DefaultT2048Config(), nil
}

// parseT2048 decodes data over the defaults and validates the result.
func parseT2048(data []byte) (T2048Config, error) {
	cfg := DefaultT2048Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return T2048Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return T2048Config{}, err
	}
	return cfg, nil
}

// searchPaths lists the implicit locations of a config file, user directory first.
func searchPaths(filename string) []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".t2048", "configs", filename))
	}
	return append(paths, filepath.Join("configs", filename))
}
