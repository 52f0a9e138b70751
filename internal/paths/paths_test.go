package paths

import (
	"path/filepath"
	"testing"
)

func TestDefaultStateDirUsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(StateDirEnv, "")

	dir, err := DefaultStateDir()
	if err != nil {
		t.Fatalf("DefaultStateDir: %v", err)
	}
	want := filepath.Join(home, ".local", "state", "still")
	if dir != want {
		t.Errorf("DefaultStateDir = %q, want %q", dir, want)
	}
}

func TestDefaultStateDirEnvOverride(t *testing.T) {
	override := t.TempDir()
	t.Setenv(StateDirEnv, override)

	dir, err := DefaultStateDir()
	if err != nil {
		t.Fatalf("DefaultStateDir: %v", err)
	}
	if dir != override {
		t.Errorf("DefaultStateDir = %q, want %q", dir, override)
	}
}

func TestConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	want := filepath.Join(home, ".config", "still", "config.toml")
	if path != want {
		t.Errorf("ConfigPath = %q, want %q", path, want)
	}
}
