package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Source != "./src/main/java" {
		t.Errorf("expected Source=./src/main/java, got %s", cfg.Source)
	}
	if cfg.Output != "./src/test/java" {
		t.Errorf("expected Output=./src/test/java, got %s", cfg.Output)
	}
	if cfg.Naming != "camel" {
		t.Errorf("expected Naming=camel, got %s", cfg.Naming)
	}
	if cfg.Category != "unit" {
		t.Errorf("expected Category=unit, got %s", cfg.Category)
	}
	if !cfg.CreateDirs {
		t.Error("expected CreateDirs=true")
	}
	if cfg.Watch.DebounceMS != 500 {
		t.Errorf("expected DebounceMS=500, got %d", cfg.Watch.DebounceMS)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	// Ensure no env vars interfere
	t.Setenv("TESTFORGE_SOURCE", "")
	t.Setenv("TESTFORGE_OUTPUT", "")
	t.Setenv("TESTFORGE_NAMING", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Source = "app/src/main/java"
	cfg.Naming = "snake"
	cfg.Exclude = []string{"com.example.internal.*"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Naming != "snake" {
		t.Errorf("expected Naming=snake, got %s", loaded.Naming)
	}
	if loaded.Source != "app/src/main/java" {
		t.Errorf("expected overridden source, got %s", loaded.Source)
	}
	if len(loaded.Exclude) != 1 || loaded.Exclude[0] != "com.example.internal.*" {
		t.Errorf("unexpected excludes: %v", loaded.Exclude)
	}
}

func TestConfig_LoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("TESTFORGE_NAMING", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Naming != "camel" {
		t.Errorf("expected defaults, got Naming=%s", cfg.Naming)
	}
}

func TestConfig_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("source: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error for malformed config")
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TESTFORGE_SOURCE", "/work/src")
	t.Setenv("TESTFORGE_NAMING", "given-when-then")
	t.Setenv("TESTFORGE_CONCURRENCY", "8")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.Source != "/work/src" {
		t.Errorf("expected source override, got %s", cfg.Source)
	}
	if cfg.Naming != "given-when-then" {
		t.Errorf("expected Naming=given-when-then, got %s", cfg.Naming)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("expected Concurrency=8, got %d", cfg.Concurrency)
	}
}

func TestConfig_EnvOverrideBadConcurrencyIgnored(t *testing.T) {
	t.Setenv("TESTFORGE_CONCURRENCY", "lots")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.Concurrency != 0 {
		t.Errorf("expected Concurrency=0, got %d", cfg.Concurrency)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}

	cfg.Naming = "kebab"
	err := cfg.Validate()
	if err == nil {
		t.Error("expected validation error for invalid naming")
	} else if !strings.Contains(err.Error(), "Naming") {
		t.Errorf("expected error to name the field, got: %v", err)
	}

	cfg = DefaultConfig()
	cfg.Category = "smoke"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid category")
	}

	cfg = DefaultConfig()
	cfg.Source = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty source")
	}

	cfg = DefaultConfig()
	cfg.Concurrency = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative concurrency")
	}

	cfg = DefaultConfig()
	cfg.Watch.DebounceMS = 10
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for sub-50ms debounce")
	}
}

func TestConfig_GetDebounce(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GetDebounce() != 500*time.Millisecond {
		t.Errorf("expected default debounce 500ms, got %v", cfg.GetDebounce())
	}

	cfg.Watch.DebounceMS = 250
	if cfg.GetDebounce() != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.GetDebounce())
	}

	cfg.Watch.DebounceMS = 0
	if cfg.GetDebounce() != 500*time.Millisecond {
		t.Errorf("expected fallback 500ms, got %v", cfg.GetDebounce())
	}
}
