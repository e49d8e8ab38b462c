// Package vim drives a vim server through its clientserver interface:
// --serverlist, --remote-send and --remote-expr.
//
// A Driver is bound to one server name and is not safe for concurrent use.
package vim

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/simon/vimdrive/internal/wait"
)

// captureVar holds redirected command output between calls.
const captureVar = "vimdriver_temp"

// State is the lifecycle of the server a Driver controls. Starting is not
// a State: it only lasts for the duration of a Start call.
type State int

const (
	NotStarted State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "not started"
	}
}

// Driver controls a single named vim server.
type Driver struct {
	exec    Executor
	name    string
	opts    options
	log     *slog.Logger
	vimrc   string
	started bool
}

// New creates a Driver. No vim is started until Start.
func New(ex Executor, userOpts ...Option) *Driver {
	opts := defaultOptions()
	for _, o := range userOpts {
		o(&opts)
	}
	log := opts.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	name := NormalizeName(opts.serverName)
	return &Driver{
		exec: ex,
		name: name,
		opts: opts,
		log:  log.With("server", name),
	}
}

// Name returns the upper-cased server name.
func (d *Driver) Name() string { return d.name }

// Executable returns the vim binary the driver invokes.
func (d *Driver) Executable() string { return d.opts.executable }

// Vimrc returns the config file passed to the last Start, if any.
func (d *Driver) Vimrc() string { return d.vimrc }

// IsRunning reports whether the server currently appears in the server list.
func (d *Driver) IsRunning() (bool, error) {
	names, err := ListServers(d.exec, d.opts.executable, d.opts.env)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		d.log.Debug("server list", "entry", n)
		if strings.EqualFold(n, d.name) {
			return true, nil
		}
	}
	return false, nil
}

// State derives the lifecycle state from the live server list.
func (d *Driver) State() (State, error) {
	running, err := d.IsRunning()
	if err != nil {
		return NotStarted, err
	}
	switch {
	case running:
		return Running, nil
	case d.started:
		return Stopped, nil
	default:
		return NotStarted, nil
	}
}

// Start launches vim as the named server, optionally with -u vimrc, and
// waits until it is listed. It does nothing if the server is already up.
func (d *Driver) Start(vimrc string) error {
	running, err := d.IsRunning()
	if err != nil {
		return err
	}
	if running {
		return nil
	}

	argv := []string{d.opts.executable, "--servername", d.name}
	if vimrc != "" {
		d.vimrc = vimrc
		argv = append(argv, "-u", vimrc)
	}
	if _, err := d.exec.Launch(argv, d.opts.env); err != nil {
		return fmt.Errorf("start vim server %s: %w", d.name, err)
	}

	err = d.poller().Until(d.IsRunning)
	if errors.Is(err, wait.ErrExhausted) {
		return &StartError{Name: d.name, Attempts: d.opts.startAttempts}
	}
	if err != nil {
		return err
	}
	d.started = true
	d.log.Info("vim is now running")
	return nil
}

// Stop makes vim quit without saving. Nothing is read back; the server is
// gone before a reply could arrive.
func (d *Driver) Stop() error {
	return d.RawCommand("qall!")
}

// WaitStopped polls until the server has left the server list.
func (d *Driver) WaitStopped() error {
	err := d.poller().Until(func() (bool, error) {
		running, err := d.IsRunning()
		return !running, err
	})
	if err != nil {
		return fmt.Errorf("vim server %s still running: %w", d.name, err)
	}
	return nil
}

func (d *Driver) poller() wait.Poller {
	return wait.Poller{
		Interval: d.opts.startInterval,
		Attempts: d.opts.startAttempts,
		Sleep:    d.opts.sleep,
	}
}

// Mode returns the current mode(1).
func (d *Driver) Mode() (Mode, error) {
	out, err := d.Evaluate("mode(1)")
	if err != nil {
		return "", err
	}
	return Mode(strings.Trim(out, "\r\n")), nil
}

// Normal leaves any pending mode and types keys with mappings applied.
func (d *Driver) Normal(keys string) error {
	return d.Feedkeys("<esc>"+keys, true, true)
}

// NormalNoRemap is Normal with mappings ignored.
func (d *Driver) NormalNoRemap(keys string) error {
	return d.Feedkeys("<esc>"+keys, false, true)
}

// Insert enters insert mode and types text.
func (d *Driver) Insert(text string) error {
	return d.Normal("i" + text)
}

// Feedkeys queues keys as if typed. addUndoEntry closes the current undo
// block first so separate edits stay separately undoable.
func (d *Driver) Feedkeys(keys string, remap, addUndoEntry bool) error {
	if addUndoEntry {
		if err := d.addUndoEntry(); err != nil {
			return err
		}
	}
	flag := "n"
	if remap {
		flag = "m"
	}
	return d.RawCommand(fmt.Sprintf(`call feedkeys("%s", "%s")`, escapeFeedKeys(keys), flag))
}

func (d *Driver) addUndoEntry() error {
	levels, err := d.Evaluate("&ul")
	if err != nil {
		return err
	}
	return d.RawCommand("set undolevels=" + levels)
}

// Command runs an Ex command and returns what it printed.
func (d *Driver) Command(cmd string) (string, error) {
	if err := d.Normal(""); err != nil {
		return "", err
	}
	for _, c := range []string{"redir => " + captureVar, "silent " + cmd, "redir end"} {
		if err := d.RawCommand(c); err != nil {
			return "", err
		}
	}

	out, err := d.remoteExpr(captureVar)
	if err != nil {
		return "", err
	}
	out = strings.TrimLeft(out, "\r\n")
	if err := checkReply("command", cmd, out); err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// Evaluate returns the value of a vim expression.
func (d *Driver) Evaluate(expr string) (string, error) {
	out, err := d.remoteExpr(expr)
	if err != nil {
		return "", err
	}
	if err := checkReply("evaluate", expr, out); err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

func (d *Driver) remoteExpr(expr string) (string, error) {
	res, err := d.exec.Run([]string{d.opts.executable, "--servername", d.name, "--remote-expr", expr}, d.opts.env, false)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		stderr := strings.TrimSpace(res.Stderr)
		if err := checkReply("evaluate", expr, stderr); err != nil {
			return "", err
		}
		return "", &SendError{Server: d.name, Flag: "--remote-expr", Input: expr, ExitCode: res.ExitCode, Stderr: stderr}
	}
	return res.Stdout, nil
}

// RawCommand types an Ex command from whatever mode vim is in and returns
// to that mode. Output is not captured.
func (d *Driver) RawCommand(cmd string) error {
	mode, err := d.Mode()
	if err != nil {
		return err
	}
	k := mode.cmdline()
	return d.send(k.prefix + escapeRawCommand(cmd) + "<cr>" + k.suffix)
}

// send forwards keys to vim untouched.
func (d *Driver) send(keys string) error {
	res, err := d.exec.Run([]string{d.opts.executable, "--servername", d.name, "--remote-send", keys}, d.opts.env, false)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &SendError{Server: d.name, Flag: "--remote-send", Input: keys, ExitCode: res.ExitCode, Stderr: strings.TrimSpace(res.Stderr)}
	}
	return nil
}

// Getreg returns the contents of register name.
func (d *Driver) Getreg(name string) (string, error) {
	return d.Evaluate(fmt.Sprintf("getreg('%s')", name))
}

// ClearBuffer deletes every line into the black hole register, leaving
// the unnamed register alone.
func (d *Driver) ClearBuffer() error {
	return d.NormalNoRemap(`gg"_dG`)
}

// Buffer yanks the whole buffer and returns it from the yank register.
// The cursor moves; the text does not change.
func (d *Driver) Buffer() (string, error) {
	if err := d.Normal("ggVGy"); err != nil {
		return "", err
	}
	return d.Getreg("0")
}

// Contents returns the buffer text without touching cursor or registers.
func (d *Driver) Contents() (string, error) {
	return d.Evaluate(`join(getline(1, '$'), "\n")`)
}

// Getline returns the line addressed by expr, e.g. "." or "$".
func (d *Driver) Getline(expr string) (string, error) {
	return d.Evaluate(fmt.Sprintf("getline('%s')", expr))
}

// Line returns the cursor line number.
func (d *Driver) Line() (int, error) {
	return d.evalInt("line('.')")
}

// Col returns the cursor column number.
func (d *Driver) Col() (int, error) {
	return d.evalInt("col('.')")
}

func (d *Driver) evalInt(expr string) (int, error) {
	out, err := d.Evaluate(expr)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("%s: unexpected reply %q", expr, out)
	}
	return n, nil
}

// Undo reverts the last change.
func (d *Driver) Undo() error {
	_, err := d.Command("undo")
	return err
}

// Redo reapplies the last undone change.
func (d *Driver) Redo() error {
	_, err := d.Command("redo")
	return err
}
