package cmd

import (
	"errors"
	"strings"
	"testing"
)

type fakeRegistry struct {
	known map[string]bool
	err   error
}

func (f fakeRegistry) Known(name string) (bool, error) {
	return f.known[name], f.err
}

func TestCheckOwned(t *testing.T) {
	reg := fakeRegistry{known: map[string]bool{"PYTEST_VIM": true}}

	if err := checkOwned(reg, "PYTEST_VIM", false); err != nil {
		t.Errorf("known server: %v", err)
	}

	err := checkOwned(reg, "GVIM", false)
	if err == nil || !strings.Contains(err.Error(), "--force") {
		t.Errorf("unknown server: err = %v, want a --force hint", err)
	}

	if err := checkOwned(reg, "GVIM", true); err != nil {
		t.Errorf("forced: %v", err)
	}
}

func TestCheckOwnedRegistryError(t *testing.T) {
	boom := errors.New("disk full")
	err := checkOwned(fakeRegistry{err: boom}, "PYTEST_VIM", false)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"start", "stop", "forget", "list", "mode", "normal", "insert", "exec", "eval", "raw", "buffer", "reg", "run"}
	for _, name := range want {
		c, _, err := rootCmd.Find([]string{name})
		if err != nil || c.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}
