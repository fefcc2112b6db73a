package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`

	// Dataset is a GeoJSON FeatureCollection of municipalities. Empty means
	// the bundled sample layer.
	Dataset string        `yaml:"dataset,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
	Zoom    int           `yaml:"zoom,omitempty"`
	Listen  string        `yaml:"listen,omitempty"`

	Log LogConfig `yaml:"log"`

	// keyEnv names the variable the API key came from. Such keys are never
	// written back to disk.
	keyEnv string
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider: "openrouter",
		Model:    "openai/gpt-4o-mini",
		Timeout:  15 * time.Second,
		Zoom:     10,
		Listen:   "localhost:8080",
		Log: LogConfig{
			Level: "info",
		},
	}
}

func ConfigDir() (string, error) {
	if dir := os.Getenv("DIVIMAP_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "divimap"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config file on top of the defaults. A missing file yields
// nil, nil so callers can tell first runs apart.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Resolve loads the config file (or the defaults when there is none) and
// applies environment overrides. The bool reports whether a file was found.
func Resolve() (*Config, bool, error) {
	cfg, err := Load()
	if err != nil {
		return nil, false, err
	}
	found := cfg != nil
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.ApplyEnv()
	return cfg, found, nil
}

func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	out := *c
	if out.keyEnv != "" {
		out.APIKey = ""
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// SetAPIKey stores a key typed by the user; unlike environment keys it is
// persisted by Save.
func (c *Config) SetAPIKey(key string) {
	c.APIKey = key
	c.keyEnv = ""
}

// KeyEnv returns the environment variable that supplied the API key, or ""
// when the key was typed or read from the config file.
func (c *Config) KeyEnv() string {
	return c.keyEnv
}
