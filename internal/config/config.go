package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures the persistent nimfox settings.
type Config struct {
	Version       int           `yaml:"version"`
	InstallMethod string        `yaml:"install_method"`
	DataDir       string        `yaml:"data_dir"`
	Network       NetworkConfig `yaml:"network"`
}

// NetworkConfig holds HTTP behaviour for probes and API calls.
type NetworkConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version:       1,
		InstallMethod: "auto",
		Network: NetworkConfig{
			TimeoutSeconds: 30,
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults ensures fields fall back to sensible defaults when the YAML
// omits them.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if strings.TrimSpace(c.InstallMethod) == "" {
		c.InstallMethod = defaults.InstallMethod
	}
	if c.Network.TimeoutSeconds == 0 {
		c.Network.TimeoutSeconds = defaults.Network.TimeoutSeconds
	}
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
