package harness

import (
	"log/slog"
	"os/exec"
	"strings"
	"testing"

	"github.com/simon/vimdrive/internal/config"
	"github.com/simon/vimdrive/internal/proc"
	"github.com/simon/vimdrive/internal/vim"
)

type openOptions struct {
	executor vim.Executor
	vimrc    string
	setup    []string
	driver   []vim.Option
}

// Option configures Open.
type Option func(*openOptions)

// WithExecutor runs vim through ex instead of a real process runner.
func WithExecutor(ex vim.Executor) Option {
	return func(o *openOptions) { o.executor = ex }
}

// WithVimrc starts vim with -u path.
func WithVimrc(path string) Option {
	return func(o *openOptions) { o.vimrc = path }
}

// WithSetup runs Ex commands right after the server comes up.
func WithSetup(cmds ...string) Option {
	return func(o *openOptions) { o.setup = append(o.setup, cmds...) }
}

// WithDriverOptions passes options through to vim.New.
func WithDriverOptions(opts ...vim.Option) Option {
	return func(o *openOptions) { o.driver = append(o.driver, opts...) }
}

// Open starts a vim server for the test and stops it at cleanup. Without
// WithExecutor the server is described by the vimdrive config (see
// config.Load), and the test is skipped when its vim binary is not
// installed.
func Open(t testing.TB, opts ...Option) *vim.Driver {
	t.Helper()

	o := collect(opts)
	if o.executor == nil {
		cfg, err := config.Load("")
		if err != nil {
			t.Fatalf("harness: open: %v", err)
		}
		return OpenWithConfig(t, cfg, opts...)
	}
	return start(t, o)
}

// OpenWithConfig is Open for a server described by cfg: its executable,
// name, environment, start polling and PTY setting. Options given here
// override cfg.
func OpenWithConfig(t testing.TB, cfg *config.Config, opts ...Option) *vim.Driver {
	t.Helper()

	o := collect(opts)
	o.driver = append(cfg.DriverOptions(), o.driver...)
	if o.executor == nil {
		if _, err := exec.LookPath(cfg.Executable); err != nil {
			t.Skipf("harness: open: %s not found", cfg.Executable)
		}
		runner := proc.New(TestLogger(t))
		runner.Env = cfg.Env
		runner.PTY = cfg.PTY
		o.executor = runner
	}
	return start(t, o)
}

func collect(opts []Option) openOptions {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func start(t testing.TB, o openOptions) *vim.Driver {
	t.Helper()

	logger := TestLogger(t)
	driverOpts := append([]vim.Option{vim.WithLogger(logger)}, o.driver...)

	d := vim.New(o.executor, driverOpts...)
	if err := d.Start(o.vimrc); err != nil {
		t.Fatalf("harness: open: %v", err)
	}
	t.Cleanup(func() {
		logger.Info("stopping vim server")
		if err := d.Stop(); err != nil {
			t.Errorf("harness: stop: %v", err)
			return
		}
		if err := d.WaitStopped(); err != nil {
			t.Errorf("harness: stop: %v", err)
		}
	})

	for _, cmd := range o.setup {
		if err := d.RawCommand(cmd); err != nil {
			t.Fatalf("harness: setup %q: %v", cmd, err)
		}
	}
	return d
}

// TestLogger returns a debug-level logger writing through t.Log.
func TestLogger(t testing.TB) *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
