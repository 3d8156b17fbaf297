package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Columns != 6 || cfg.Rows != 5 {
		t.Errorf("default grid = %dx%d, want 6x5", cfg.Columns, cfg.Rows)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywell.toml")
	data := `
row_radius = 90.0
case_height = 20.0

[thumb]
radius = 58.0
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RowRadius != 90 {
		t.Errorf("row_radius = %g, want 90", cfg.RowRadius)
	}
	if cfg.Thumb.Radius != 58 {
		t.Errorf("thumb.radius = %g, want 58", cfg.Thumb.Radius)
	}
	// Untouched keys keep their defaults.
	if cfg.Columns != 6 {
		t.Errorf("columns = %d, want default 6", cfg.Columns)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywell.toml")
	if err := os.WriteFile(path, []byte("no_such_key = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Fatal("unknown key accepted")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
