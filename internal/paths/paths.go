// Package paths resolves the directories still stores its data in.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// StateDirEnv overrides the state directory when set.
const StateDirEnv = "STILL_STATE_DIR"

// DefaultStateDir returns the directory holding the local session database.
func DefaultStateDir() (string, error) {
	if dir := os.Getenv(StateDirEnv); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, ".local", "state", "still"), nil
}

// ConfigPath returns the path to the global config file.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, ".config", "still", "config.toml"), nil
}
