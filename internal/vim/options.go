package vim

import (
	"log/slog"
	"time"
)

type options struct {
	executable    string
	serverName    string
	env           []string
	startInterval time.Duration
	startAttempts int
	logger        *slog.Logger
	sleep         func(time.Duration)
}

// Option configures a Driver created by New.
type Option func(*options)

// WithExecutable sets the vim binary. Defaults to "gvim".
func WithExecutable(path string) Option {
	return func(o *options) {
		if path != "" {
			o.executable = path
		}
	}
}

// WithServerName sets the server name. It is upper-cased, as vim does.
func WithServerName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.serverName = name
		}
	}
}

// WithEnv appends KEY=VALUE entries to the environment of every vim call.
func WithEnv(env ...string) Option {
	return func(o *options) {
		o.env = append(o.env, env...)
	}
}

// WithStartPolling sets how often and how many times Start checks the
// server list after launching vim.
func WithStartPolling(interval time.Duration, attempts int) Option {
	return func(o *options) {
		if interval > 0 {
			o.startInterval = interval
		}
		if attempts > 0 {
			o.startAttempts = attempts
		}
	}
}

// WithLogger sets the logger for lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

const (
	defaultStartInterval = 200 * time.Millisecond
	defaultStartAttempts = 10
)

func defaultOptions() options {
	return options{
		executable:    DefaultExecutable,
		serverName:    DefaultServerName,
		startInterval: defaultStartInterval,
		startAttempts: defaultStartAttempts,
	}
}
