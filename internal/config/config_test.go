package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stillapp/still/internal/testsupport"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Session.DefaultMinutes != DefaultMinutes {
		t.Errorf("DefaultMinutes = %d, want %d", cfg.Session.DefaultMinutes, DefaultMinutes)
	}
	if cfg.Sync.Enabled {
		t.Error("expected sync disabled by default")
	}
}

func TestLoadFileFullConfig(t *testing.T) {
	path := writeConfig(t, `
[sync]
enabled = true
dir = "/mnt/sync/still"
status-url = "https://sync.example.com/v1/status"

[session]
default-minutes = 20
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !cfg.Sync.Enabled {
		t.Error("expected sync enabled")
	}
	if cfg.Sync.Dir != "/mnt/sync/still" {
		t.Errorf("Sync.Dir = %q", cfg.Sync.Dir)
	}
	if cfg.Sync.StatusURL != "https://sync.example.com/v1/status" {
		t.Errorf("Sync.StatusURL = %q", cfg.Sync.StatusURL)
	}
	if cfg.Session.DefaultMinutes != 20 {
		t.Errorf("DefaultMinutes = %d, want 20", cfg.Session.DefaultMinutes)
	}
}

func TestLoadReadsGlobalConfigFile(t *testing.T) {
	home := testsupport.SetupTestHome(t)

	configDir := filepath.Join(home, ".config", "still")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	content := []byte("[session]\ndefault-minutes = 25\n")
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Session.DefaultMinutes != 25 {
		t.Errorf("DefaultMinutes = %d, want 25", cfg.Session.DefaultMinutes)
	}
}

func TestLoadWithEmptyHomeUsesDefaults(t *testing.T) {
	testsupport.SetupTestHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Session.DefaultMinutes != DefaultMinutes {
		t.Errorf("DefaultMinutes = %d, want %d", cfg.Session.DefaultMinutes, DefaultMinutes)
	}
}

func TestLoadFilePartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[sync]
enabled = true
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Session.DefaultMinutes != DefaultMinutes {
		t.Errorf("DefaultMinutes = %d, want %d", cfg.Session.DefaultMinutes, DefaultMinutes)
	}
}

func TestLoadFileRejectsNonPositiveMinutes(t *testing.T) {
	path := writeConfig(t, `
[session]
default-minutes = 0
`)

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for non-positive default-minutes")
	}
}

func TestLoadFileInvalidTOML(t *testing.T) {
	path := writeConfig(t, `[sync`)

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSandboxed(t *testing.T) {
	t.Setenv(VolatileEnv, "")
	if Sandboxed() {
		t.Error("expected not sandboxed with empty env")
	}
	t.Setenv(VolatileEnv, "1")
	if !Sandboxed() {
		t.Error("expected sandboxed with env set")
	}
}
