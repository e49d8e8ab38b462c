package vim

import (
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultExecutable = "gvim"
	DefaultServerName = "PYTEST_VIM"
)

// ListServers returns the names printed by `vim --serverlist`. A failing
// listing (no X display, no servers) is reported as an empty list.
func ListServers(ex Executor, executable string, env []string) ([]string, error) {
	res, err := ex.Run([]string{executable, "--serverlist"}, env, false)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, nil
	}

	var names []string
	for _, line := range strings.Split(res.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		names = append(names, strings.ToUpper(line))
	}
	return names, nil
}

// NormalizeName returns the form vim registers a server name under.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// UniqueServerName returns a server name that will not collide with other
// test runs on the same display.
func UniqueServerName(prefix string) string {
	if prefix == "" {
		prefix = DefaultServerName
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return NormalizeName(prefix + "_" + id)
}
