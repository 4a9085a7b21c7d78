package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InstallMethod != "auto" {
		t.Fatalf("install_method: got %q, want %q", cfg.InstallMethod, "auto")
	}
	if cfg.Network.TimeoutSeconds != 30 {
		t.Fatalf("timeout: got %d, want 30", cfg.Network.TimeoutSeconds)
	}
}

func TestLoadAppliesDefaultsToPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("install_method: binary\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InstallMethod != "binary" {
		t.Fatalf("install_method: got %q, want %q", cfg.InstallMethod, "binary")
	}
	if cfg.Network.TimeoutSeconds != 30 {
		t.Fatalf("timeout: got %d, want 30", cfg.Network.TimeoutSeconds)
	}
	if cfg.Version != 1 {
		t.Fatalf("version: got %d, want 1", cfg.Version)
	}
}

func TestLoadDataDirOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data_dir: /custom/data\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/custom/data" {
		t.Fatalf("data_dir: got %q, want %q", cfg.DataDir, "/custom/data")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("install_method: [broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
