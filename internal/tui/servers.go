package tui

import (
	"sort"
	"time"

	"github.com/simon/vimdrive/internal/state"
	"github.com/simon/vimdrive/internal/vim"
)

// Server is one row of the dashboard.
type Server struct {
	Name       string
	Live       bool // listed by --serverlist right now
	Registered bool // started through vimdrive
	Mode       vim.Mode
	Vimrc      string
	StartedAt  time.Time
}

// Source lists servers and opens drivers for them.
type Source struct {
	Exec       vim.Executor
	Executable string
	Env        []string
	Store      *state.Store // optional
	Options    []vim.Option
}

// Driver returns a driver addressing name.
func (s Source) Driver(name string) *vim.Driver {
	opts := append([]vim.Option{}, s.Options...)
	opts = append(opts, vim.WithExecutable(s.Executable), vim.WithServerName(name), vim.WithEnv(s.Env...))
	return vim.New(s.Exec, opts...)
}

// List merges the live server list with the registry. Modes are only
// queried for servers vimdrive started.
func (s Source) List() ([]Server, error) {
	live, err := vim.ListServers(s.Exec, s.Executable, s.Env)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*Server)
	for _, name := range live {
		byName[name] = &Server{Name: name, Live: true}
	}

	if s.Store != nil {
		registered, err := s.Store.List(100)
		if err != nil {
			return nil, err
		}
		for _, r := range registered {
			srv, ok := byName[r.Name]
			if !ok {
				srv = &Server{Name: r.Name}
				byName[r.Name] = srv
			}
			srv.Registered = true
			srv.Vimrc = r.Vimrc
			srv.StartedAt = r.StartedAt
		}
	}

	servers := make([]Server, 0, len(byName))
	for _, srv := range byName {
		if srv.Live && srv.Registered {
			if mode, err := s.Driver(srv.Name).Mode(); err == nil {
				srv.Mode = mode
			}
		}
		servers = append(servers, *srv)
	}
	SortServers(servers)
	return servers, nil
}

// SortServers puts live servers first, then orders by name.
func SortServers(servers []Server) {
	sort.SliceStable(servers, func(i, j int) bool {
		if servers[i].Live != servers[j].Live {
			return servers[i].Live
		}
		return servers[i].Name < servers[j].Name
	})
}
