package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Repository.DefaultBranch != "master" {
		t.Errorf("expected default branch 'master', got %q", cfg.Repository.DefaultBranch)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level 'warn', got %q", cfg.Log.Level)
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("expected color 'auto', got %q", cfg.Output.Color)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := DefaultConfig()
	cfg.Repository.Name = "demo"
	cfg.Repository.DefaultBranch = "main"
	cfg.Output.Format = FormatOneline
	cfg.Log.File = "/tmp/twig.log"

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Repository.Name != "demo" {
		t.Errorf("name = %q, want %q", loaded.Repository.Name, "demo")
	}
	if loaded.Repository.DefaultBranch != "main" {
		t.Errorf("default branch = %q, want %q", loaded.Repository.DefaultBranch, "main")
	}
	if loaded.Output.Format != FormatOneline {
		t.Errorf("format = %q, want %q", loaded.Output.Format, FormatOneline)
	}
	if loaded.Log.File != "/tmp/twig.log" {
		t.Errorf("log file = %q, want %q", loaded.Log.File, "/tmp/twig.log")
	}
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Repository.Name != DefaultConfig().Repository.Name {
		t.Errorf("expected defaults, got %+v", cfg.Repository)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("repository:\n  name: partial\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Repository.Name != "partial" {
		t.Errorf("name = %q, want %q", cfg.Repository.Name, "partial")
	}
	if cfg.Repository.DefaultBranch != "master" {
		t.Errorf("default branch = %q, want %q", cfg.Repository.DefaultBranch, "master")
	}
	if cfg.Export.Author != "twig" {
		t.Errorf("export author = %q, want %q", cfg.Export.Author, "twig")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("repository: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("expected parse error")
	}

	color := filepath.Join(dir, "color.yaml")
	if err := os.WriteFile(color, []byte("output:\n  color: sometimes\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(color); err == nil {
		t.Error("expected validation error for output.color")
	}
}
