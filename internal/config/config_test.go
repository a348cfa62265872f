package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider.Type != "hashed" || cfg.Provider.BatchSize != 20 {
		t.Errorf("defaults = %+v", cfg.Provider)
	}
	if cfg.Run.OutputDir != "output" {
		t.Errorf("run defaults = %+v", cfg.Run)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
provider:
  type: remote
  remote:
    base_url: http://embedder:9000/v1
run:
  seed: 7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider.Remote.BaseURL != "http://embedder:9000/v1" {
		t.Errorf("base url = %q", cfg.Provider.Remote.BaseURL)
	}
	if cfg.Provider.Remote.Model != "bert-large-uncased" {
		t.Errorf("model default = %q", cfg.Provider.Remote.Model)
	}
	if cfg.Provider.Remote.TimeoutSecs != 30 {
		t.Errorf("timeout default = %d", cfg.Provider.Remote.TimeoutSecs)
	}
	if cfg.Run.Seed != 7 {
		t.Errorf("seed = %d", cfg.Run.Seed)
	}
	if cfg.Run.LogLevel != "info" {
		t.Errorf("log level default = %q", cfg.Run.LogLevel)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := defaultConfig()
	want.Run.Seed = 99
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Run.Seed != 99 || got.Provider.Type != "hashed" {
		t.Errorf("round trip = %+v", got)
	}
}
