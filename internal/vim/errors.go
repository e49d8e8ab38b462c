package vim

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/simon/vimdrive/internal/wait"
)

// ErrRemote matches every RemoteError.
var ErrRemote = errors.New("vim reported an error")

// errorReply matches vim messages such as "E492: Not an editor command".
var errorReply = regexp.MustCompile(`^E\d+:`)

// RemoteError is a vim error message returned for a command or expression.
type RemoteError struct {
	Op    string // "command" or "evaluate"
	Input string
	Reply string
}

func (e *RemoteError) Error() string {
	if e.Op == "command" {
		return fmt.Sprintf("error while executing command '%s': %s", e.Input, e.Reply)
	}
	return fmt.Sprintf("error while running evaluate with '%s': %s", e.Input, e.Reply)
}

func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

func checkReply(op, input, reply string) error {
	if errorReply.MatchString(reply) {
		return &RemoteError{Op: op, Input: input, Reply: strings.TrimRight(reply, "\r\n")}
	}
	return nil
}

// StartError is returned when a started server never shows up in the
// server list.
type StartError struct {
	Name     string
	Attempts int
}

func (e *StartError) Error() string {
	return fmt.Sprintf("unable to start vim server %q after %d tries", e.Name, e.Attempts)
}

func (e *StartError) Unwrap() error {
	return wait.ErrExhausted
}

// SendError is a failed --remote-send or --remote-expr invocation.
type SendError struct {
	Server   string
	Flag     string
	Input    string
	ExitCode int
	Stderr   string
}

func (e *SendError) Error() string {
	msg := fmt.Sprintf("vim %s to %s exited with status %d", e.Flag, e.Server, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}
