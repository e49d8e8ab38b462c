package proc

import (
	"os"
	"os/exec"
)

// Process is a handle to a command started by Launch.
type Process struct {
	cmd  *exec.Cmd
	tty  *os.File
	done chan struct{}
	err  error
}

// Pid returns the operating system process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Done is closed once the process has exited and been reaped.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Err reports how the process exited. Only valid after Done is closed.
func (p *Process) Err() error {
	<-p.done
	return p.err
}

func (p *Process) reap() {
	p.err = p.cmd.Wait()
	if p.tty != nil {
		p.tty.Close()
	}
	close(p.done)
}
