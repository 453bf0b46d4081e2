package config

import (
	"os"
	"path/filepath"
)

const appDir = "sisstore"

// DefaultConfigPath is $XDG_CONFIG_HOME/sisstore/config.yaml, falling back
// to ~/.config when the variable is unset.
func DefaultConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "config.yaml")
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appDir, "config.yaml")
}

// DefaultCachePath is $XDG_CACHE_HOME/sisstore/catalog.json, falling back
// to ~/.cache when the variable is unset.
func DefaultCachePath() string {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "catalog-cache.json")
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, appDir, "catalog.json")
}
