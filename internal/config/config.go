package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/simon/vimdrive/internal/vim"
)

type StartConfig struct {
	Interval time.Duration `yaml:"interval"`
	Attempts int           `yaml:"attempts"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Executable string        `yaml:"executable"`
	ServerName string        `yaml:"server_name"`
	Start      StartConfig   `yaml:"start"`
	Env        []string      `yaml:"env"`
	PTY        bool          `yaml:"pty"`
	Fixtures   string        `yaml:"fixtures"`
	StateDB    string        `yaml:"state_db"`
	Logging    LoggingConfig `yaml:"logging"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Executable: vim.DefaultExecutable,
		ServerName: vim.DefaultServerName,
		Start: StartConfig{
			Interval: 200 * time.Millisecond,
			Attempts: 10,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/vimdrive/config.yaml, falling back
// to ~/.config/vimdrive/config.yaml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "vimdrive", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vimdrive", "config.yaml"), nil
}

// Load reads the config from path, or from DefaultPath when path is empty.
// A missing file yields the defaults. VIMDRIVE_VIM and VIMDRIVE_SERVER
// override the file.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			cfg := Default()
			cfg.applyEnv()
			return cfg, nil
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, err
	}

	cfg.applyEnv()
	cfg.fill()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("VIMDRIVE_VIM"); v != "" {
		c.Executable = v
	}
	if v := os.Getenv("VIMDRIVE_SERVER"); v != "" {
		c.ServerName = v
	}
}

// fill restores defaults for fields a file left empty and expands ~.
func (c *Config) fill() {
	def := Default()
	if c.Executable == "" {
		c.Executable = def.Executable
	}
	if c.ServerName == "" {
		c.ServerName = def.ServerName
	}
	if c.Start.Interval <= 0 {
		c.Start.Interval = def.Start.Interval
	}
	if c.Start.Attempts <= 0 {
		c.Start.Attempts = def.Start.Attempts
	}
	c.Fixtures = expandHome(c.Fixtures)
	c.StateDB = expandHome(c.StateDB)
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// DriverOptions converts the config into vim.Driver options.
func (c *Config) DriverOptions() []vim.Option {
	return []vim.Option{
		vim.WithExecutable(c.Executable),
		vim.WithServerName(c.ServerName),
		vim.WithEnv(c.Env...),
		vim.WithStartPolling(c.Start.Interval, c.Start.Attempts),
	}
}
