// Package config handles loading the still config file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/stillapp/still/internal/paths"
)

// VolatileEnv forces the volatile store when set to a non-empty value.
// Sandboxed environments (tests, CI) set it so runs never touch real data.
const VolatileEnv = "STILL_VOLATILE"

// DefaultMinutes is the planned duration used when none is configured.
const DefaultMinutes = 10

// Config represents the config file at ~/.config/still/config.toml.
type Config struct {
	Sync    Sync    `toml:"sync"`
	Session Session `toml:"session"`
}

// Sync contains cloud-sync configuration.
type Sync struct {
	// Enabled turns the synced storage tier on. When false, sessions are
	// recorded in the local-only store.
	Enabled bool `toml:"enabled"`

	// Dir is the sync-managed directory holding the synced database.
	Dir string `toml:"dir"`

	// StatusURL is the sync service endpoint probed for account
	// availability before the synced store is opened.
	StatusURL string `toml:"status-url"`
}

// Session contains session defaults.
type Session struct {
	// DefaultMinutes is the planned duration when `still sit` is run
	// without an argument.
	DefaultMinutes int `toml:"default-minutes"`
}

// Load loads configuration from the global config file.
// Returns defaults if no config file exists.
func Load() (*Config, error) {
	path, err := paths.ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads configuration from the given path, applying defaults for
// keys the file does not define.
func LoadFile(path string) (*Config, error) {
	cfg := Config{
		Session: Session{DefaultMinutes: DefaultMinutes},
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if meta.IsDefined("session", "default-minutes") && cfg.Session.DefaultMinutes <= 0 {
		return nil, fmt.Errorf("parse config file %s: session.default-minutes must be positive", path)
	}

	return &cfg, nil
}

// Sandboxed reports whether the process runs in a sandboxed environment
// where only the volatile store may be used.
func Sandboxed() bool {
	return os.Getenv(VolatileEnv) != ""
}
