package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseRuntimeConfig_ValidFull(t *testing.T) {
	yaml := `
suspension_interval: 128
host_budget: 5s
`
	cfg, err := ParseRuntimeConfig([]byte(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SuspensionInterval != 128 {
		t.Errorf("SuspensionInterval = %d, want 128", cfg.SuspensionInterval)
	}
	if cfg.HostBudget != 5*time.Second {
		t.Errorf("HostBudget = %v, want 5s", cfg.HostBudget)
	}
}

func TestParseRuntimeConfig_EmptyFallsBackToDefaults(t *testing.T) {
	cfg, err := ParseRuntimeConfig([]byte(``))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SuspensionInterval != DefaultSuspensionInterval {
		t.Errorf("SuspensionInterval = %d, want default %d", cfg.SuspensionInterval, DefaultSuspensionInterval)
	}
}

func TestParseRuntimeConfig_ZeroIntervalFallsBackToDefault(t *testing.T) {
	cfg, err := ParseRuntimeConfig([]byte(`suspension_interval: 0`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SuspensionInterval != DefaultSuspensionInterval {
		t.Errorf("SuspensionInterval = %d, want default %d", cfg.SuspensionInterval, DefaultSuspensionInterval)
	}
}

func TestParseRuntimeConfig_Malformed(t *testing.T) {
	_, err := ParseRuntimeConfig([]byte("suspension_interval: [not, a, scalar"))
	if err == nil {
		t.Fatal("expected an error for malformed yaml")
	}
}

func TestLoadOrDefault_MissingFileReturnsDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != DefaultRuntimeConfig() {
		t.Errorf("got %+v, want default %+v", cfg, DefaultRuntimeConfig())
	}
}

func TestLoadOrDefault_ReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	if err := os.WriteFile(path, []byte("suspension_interval: 64\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	cfg, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SuspensionInterval != 64 {
		t.Errorf("SuspensionInterval = %d, want 64", cfg.SuspensionInterval)
	}
}
