package vim

import (
	"strings"
	"time"

	"github.com/simon/vimdrive/internal/proc"
)

// fakeVim scripts the replies of a vim clientserver binary.
type fakeVim struct {
	servers   []string
	liveAfter int // serverlist calls after Launch before the server shows up
	exprs     map[string]proc.Result
	mode      string
	undo      string
	launchErr error

	launches  [][]string
	sends     []string
	exprCalls []string
	listCalls int
	launched  bool
	argv      [][]string
}

func newFakeVim() *fakeVim {
	return &fakeVim{
		exprs: make(map[string]proc.Result),
		mode:  "n",
		undo:  "1000",
	}
}

func (f *fakeVim) Launch(argv []string, env []string) (*proc.Process, error) {
	f.argv = append(f.argv, argv)
	if f.launchErr != nil {
		return nil, f.launchErr
	}
	f.launches = append(f.launches, argv)
	f.launched = true
	return nil, nil
}

func (f *fakeVim) Run(argv []string, env []string, verbose bool) (proc.Result, error) {
	f.argv = append(f.argv, argv)
	switch {
	case len(argv) == 2 && argv[1] == "--serverlist":
		f.listCalls++
		if f.launched && f.liveAfter > 0 {
			f.liveAfter--
			if f.liveAfter == 0 {
				f.servers = append(f.servers, DefaultServerName)
			}
		}
		if len(f.servers) == 0 {
			return proc.Result{}, nil
		}
		return proc.Result{Stdout: strings.Join(f.servers, "\n") + "\n"}, nil

	case len(argv) == 5 && argv[3] == "--remote-expr":
		expr := argv[4]
		f.exprCalls = append(f.exprCalls, expr)
		if res, ok := f.exprs[expr]; ok {
			return res, nil
		}
		switch expr {
		case "mode(1)":
			return proc.Result{Stdout: f.mode + "\n"}, nil
		case "&ul":
			return proc.Result{Stdout: f.undo + "\n"}, nil
		}
		return proc.Result{Stdout: "\n"}, nil

	case len(argv) == 5 && argv[3] == "--remote-send":
		f.sends = append(f.sends, argv[4])
		if strings.Contains(argv[4], "qall!") {
			f.servers = nil
		}
		return proc.Result{}, nil
	}
	return proc.Result{ExitCode: 2, Stderr: "unexpected argv"}, nil
}

func noSleep() Option {
	return func(o *options) {
		o.sleep = func(time.Duration) {}
	}
}

func recordSleep(slept *[]time.Duration) Option {
	return func(o *options) {
		o.sleep = func(d time.Duration) { *slept = append(*slept, d) }
	}
}
