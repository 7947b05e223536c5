package config

import (
	"os"
	"path/filepath"
)

var configNames = []string{"flake.yaml", "flake.yml", "flake.json", "flake.toml"}

// DefaultConfigDir returns the default configuration directory based on the
// host OS. It prefers standard locations when available and falls back to a
// dotdir in the user's home directory.
func DefaultConfigDir() string {
	// XDG (Linux) override
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "flake")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return "./config"
	}

	// macOS: ~/Library/Application Support/Flake
	if isDir(filepath.Join(homeDir, "Library")) {
		return filepath.Join(homeDir, "Library", "Application Support", "Flake")
	}

	// Windows: %USERPROFILE%/AppData/Roaming/Flake
	if isDir(filepath.Join(homeDir, "AppData")) {
		return filepath.Join(homeDir, "AppData", "Roaming", "Flake")
	}

	if isDir(filepath.Join(homeDir, ".config")) {
		return filepath.Join(homeDir, ".config", "flake")
	}

	// Fallback: ~/.flake
	return filepath.Join(homeDir, ".flake")
}

// FindConfigFile returns the first flake.{yaml,yml,json,toml} in dir, or ""
// when none exists.
func FindConfigFile(dir string) string {
	for _, name := range configNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
