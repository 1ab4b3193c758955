// Package config loads optional user defaults for flask-unsign from a
// YAML file. A missing file is not an error: everything falls back to
// the built-in defaults, and command-line flags always win.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable defaults.
type Config struct {
	Threads   int    `yaml:"threads"`
	ChunkSize int    `yaml:"chunk_size"`
	Wordlist  string `yaml:"wordlist"`
	UserAgent string `yaml:"user_agent"`
	Salt      string `yaml:"salt"`
}

// Path returns the config file location:
// $XDG_CONFIG_HOME/flask-unsign/config.yaml, falling back to
// ~/.config/flask-unsign/config.yaml.
func Path() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "flask-unsign", "config.yaml"), nil
}

// Load reads the user config from the default location. A missing
// file yields a zero-value config.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return &Config{}, nil
	}
	return load(afero.NewOsFs(), path)
}

func load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
