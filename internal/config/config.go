package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RemoteProviderConfig holds configuration for the HTTP embedding provider.
type RemoteProviderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ProviderConfig selects and configures the embedding provider implementation.
type ProviderConfig struct {
	Type      string                `yaml:"type"`
	BatchSize int                   `yaml:"batch_size"`
	Dimension int                   `yaml:"dimension"`
	Remote    *RemoteProviderConfig `yaml:"remote,omitempty"`
}

// RunConfig holds run-level defaults; the CLI flags override them.
type RunConfig struct {
	OutputDir string `yaml:"output_dir"`
	Seed      int64  `yaml:"seed"`
	WritePCA  bool   `yaml:"write_pca"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Provider ProviderConfig `yaml:"provider"`
	Run      RunConfig      `yaml:"run"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then
// ~/.config/idiomprobe/config.yaml. If neither exists, it writes defaults to
// the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "idiomprobe", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Provider: ProviderConfig{Type: "hashed", BatchSize: 20, Dimension: 64},
		Run:      RunConfig{OutputDir: "output", LogLevel: "info", LogFormat: "text"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Provider.Type == "" {
		cfg.Provider.Type = "hashed"
	}
	if cfg.Provider.BatchSize == 0 {
		cfg.Provider.BatchSize = 20
	}
	if cfg.Provider.Dimension == 0 {
		cfg.Provider.Dimension = 64
	}
	if cfg.Provider.Type == "remote" && cfg.Provider.Remote != nil {
		if cfg.Provider.Remote.BaseURL == "" {
			cfg.Provider.Remote.BaseURL = "http://localhost:8080/v1"
		}
		if cfg.Provider.Remote.APIKeyEnv == "" {
			cfg.Provider.Remote.APIKeyEnv = "EMBEDDING_API_KEY"
		}
		if cfg.Provider.Remote.Model == "" {
			cfg.Provider.Remote.Model = "bert-large-uncased"
		}
		if cfg.Provider.Remote.TimeoutSecs == 0 {
			cfg.Provider.Remote.TimeoutSecs = 30
		}
	}
	if cfg.Run.OutputDir == "" {
		cfg.Run.OutputDir = "output"
	}
	if cfg.Run.LogLevel == "" {
		cfg.Run.LogLevel = "info"
	}
	if cfg.Run.LogFormat == "" {
		cfg.Run.LogFormat = "text"
	}
}
