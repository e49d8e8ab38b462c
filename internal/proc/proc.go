// Package proc runs external commands for the harness. Launch starts a
// command and leaves it alone. Run waits for it and hands back its
// decoded stdout, stderr and exit code.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/creack/pty"
)

// ErrEmptyCommand is returned when argv has no program.
var ErrEmptyCommand = errors.New("empty command")

// Result is the captured outcome of a Run.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner spawns commands. The zero value is usable and logs nowhere.
type Runner struct {
	// Logger receives the command line and every captured output line.
	Logger *slog.Logger
	// Env holds KEY=VALUE overrides applied to every command.
	Env []string
	// PTY makes Launch attach the child to a pseudo-terminal instead of
	// plain pipes. Console vim needs one to start.
	PTY bool
}

// New creates a Runner logging to logger.
func New(logger *slog.Logger) *Runner {
	return &Runner{Logger: logger}
}

// Launch starts argv without waiting for it or reading its output.
func (r *Runner) Launch(argv []string, env []string) (*Process, error) {
	cmd, err := r.command(argv, env)
	if err != nil {
		return nil, err
	}

	p := &Process{cmd: cmd, done: make(chan struct{})}

	if r.PTY {
		tty, err := pty.Start(cmd)
		if err != nil {
			return nil, fmt.Errorf("launch %s: %w", argv[0], err)
		}
		p.tty = tty
		// Nobody reads the terminal; keep it from filling up and stalling the child.
		go func() { _, _ = io.Copy(io.Discard, tty) }()
	} else {
		if _, err := cmd.StdinPipe(); err != nil {
			return nil, err
		}
		if _, err := cmd.StdoutPipe(); err != nil {
			return nil, err
		}
		if _, err := cmd.StderrPipe(); err != nil {
			return nil, err
		}
		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("launch %s: %w", argv[0], err)
		}
	}

	go p.reap()
	return p, nil
}

// Run starts argv, waits for it to exit and returns everything it wrote.
// A non-zero exit is reported through Result.ExitCode, not as an error;
// err is only set when the command could not be started. Output lines
// are logged at info level when verbose is set or the exit code is
// non-zero, and at debug level otherwise.
func (r *Runner) Run(argv []string, env []string, verbose bool) (Result, error) {
	cmd, err := r.command(argv, env)
	if err != nil {
		return Result{}, err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if _, err := cmd.StdinPipe(); err != nil {
		return Result{}, err
	}

	code := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("run %s: %w", argv[0], err)
		}
		code = exitErr.ExitCode()
	}

	res := Result{
		Stdout:   decode(stdout.Bytes()),
		Stderr:   decode(stderr.Bytes()),
		ExitCode: code,
	}

	if res.ExitCode != 0 {
		verbose = true
	}

	// stdout first, then stderr, so the two never interleave in the log.
	for _, line := range splitLines(res.Stdout) {
		r.logLine("stdout", line, verbose)
	}
	for _, line := range splitLines(res.Stderr) {
		r.logLine("stderr", line, verbose)
	}
	return res, nil
}

func (r *Runner) command(argv []string, env []string) (*exec.Cmd, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrEmptyCommand
	}
	r.logger().Info("running command", "cmd", CommandLine(argv))

	cmd := exec.Command(argv[0], argv[1:]...)
	if len(r.Env) > 0 || len(env) > 0 {
		cmd.Env = append(append(os.Environ(), r.Env...), env...)
	}
	return cmd, nil
}

func (r *Runner) logLine(stream, line string, verbose bool) {
	level := slog.LevelDebug
	if verbose {
		level = slog.LevelInfo
	}
	r.logger().Log(context.Background(), level, "output", "stream", stream, "line", line, "verbose", verbose)
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// CommandLine renders argv as a single shell-quoted line for logs.
func CommandLine(argv []string) string {
	return shellescape.QuoteCommand(argv)
}

func decode(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}

// splitLines splits s on line breaks without producing a trailing empty line.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
