// Package clientconfig loads the CLI client's YAML configuration.
package clientconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigFailed marks any problem reading or parsing the config file.
var ErrConfigFailed = errors.New("client config: failed to load")

// Config holds the user-adjustable client settings. ServerURL is where
// the task API lives; ClientURL is the web login surface the handoff
// opens (the same host in the default single-binary deployment).
type Config struct {
	ServerURL string `yaml:"server_url"`
	ClientURL string `yaml:"client_url"`
	DataDir   string `yaml:"data_dir"`
	LogLevel  string `yaml:"log_level"`
}

// Error carries the config path alongside the underlying failure.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ErrConfigFailed.Error()
	}
	return fmt.Sprintf("%v: %s: %v", ErrConfigFailed, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DefaultPath returns the config location under the user's home
// directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taskbridge.yaml"
	}
	return filepath.Join(home, ".taskbridge", "config.yaml")
}

// Default returns the configuration used when no config file exists:
// a local single-binary server serving both the API and the login page.
func Default() *Config {
	cfg := &Config{
		ServerURL: "http://localhost:8080",
		ClientURL: "http://localhost:8080",
		LogLevel:  "info",
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates the YAML config. A missing file is not an
// error: defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, &Error{Path: path, Err: errors.New("config path is empty")}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ServerURL == "" {
		c.ServerURL = "http://localhost:8080"
	}
	if c.ClientURL == "" {
		c.ClientURL = c.ServerURL
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			c.DataDir = filepath.Join(home, ".taskbridge")
		} else {
			c.DataDir = ".taskbridge"
		}
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	if _, ok := allowedLevels[c.LogLevel]; !ok {
		return fmt.Errorf("unsupported log_level %q", c.LogLevel)
	}
	return nil
}

var allowedLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}
