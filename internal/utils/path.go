package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/tally/internal/constants"
)

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// DefaultConfigDir is the directory holding the default database, logs and backups.
func DefaultConfigDir() (string, error) {
	path, err := ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// ConfigDir returns the directory logs are written to for a given --config value.
// File backed stores keep them next to the database; anything else falls back
// to the default config directory.
func ConfigDir(config string) (string, error) {
	if config == "" || IsPostgres(config) {
		return DefaultConfigDir()
	}
	path, err := ExpandPath(config)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// IsPostgres reports whether config is a PostgreSQL URI or key=value DSN
// rather than a file path.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") ||
		strings.HasPrefix(config, "postgresql://") ||
		strings.Contains(config, "host=")
}
