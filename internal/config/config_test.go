package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	t.Setenv("VIMDRIVE_VIM", "")
	t.Setenv("VIMDRIVE_SERVER", "")
	path := writeConfig(t, `
executable: /usr/bin/vim
server_name: pytest_vim_class
pty: true
start:
  interval: 50ms
  attempts: 4
env:
  - DISPLAY=:99
logging:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Executable != "/usr/bin/vim" || cfg.ServerName != "pytest_vim_class" || !cfg.PTY {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Start.Interval != 50*time.Millisecond || cfg.Start.Attempts != 4 {
		t.Errorf("Start = %+v", cfg.Start)
	}
	if len(cfg.Env) != 1 || cfg.Env[0] != "DISPLAY=:99" {
		t.Errorf("Env = %v", cfg.Env)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if n := len(cfg.DriverOptions()); n != 4 {
		t.Errorf("DriverOptions() has %d entries", n)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	t.Setenv("VIMDRIVE_VIM", "")
	t.Setenv("VIMDRIVE_SERVER", "")
	cfg, err := Load(writeConfig(t, "pty: false\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Executable != def.Executable || cfg.ServerName != def.ServerName {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Start != def.Start {
		t.Errorf("Start = %+v, want %+v", cfg.Start, def.Start)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("VIMDRIVE_VIM", "")
	t.Setenv("VIMDRIVE_SERVER", "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Executable != "gvim" || cfg.ServerName != "PYTEST_VIM" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "start: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VIMDRIVE_VIM", "/opt/gvim")
	t.Setenv("VIMDRIVE_SERVER", "ci_vim")
	cfg, err := Load(writeConfig(t, "executable: vim\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Executable != "/opt/gvim" || cfg.ServerName != "ci_vim" {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if p != filepath.Join("/xdg", "vimdrive", "config.yaml") {
		t.Errorf("DefaultPath() = %q", p)
	}
}
