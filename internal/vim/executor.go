package vim

import "github.com/simon/vimdrive/internal/proc"

// Executor abstracts process execution so the driver can run against a
// real vim or a scripted fake.
type Executor interface {
	Launch(argv []string, env []string) (*proc.Process, error)
	Run(argv []string, env []string, verbose bool) (proc.Result, error)
}

var _ Executor = (*proc.Runner)(nil)
