// Package wait provides a bounded polling loop.
package wait

import (
	"errors"
	"fmt"
	"time"
)

// ErrExhausted is returned when the condition never held.
var ErrExhausted = errors.New("condition not met")

// Poller checks a condition up to Attempts times, sleeping Interval before
// each check.
type Poller struct {
	Interval time.Duration
	Attempts int

	// Sleep replaces time.Sleep in tests.
	Sleep func(time.Duration)
}

// Until runs cond until it reports true. A cond error stops polling and is
// returned as is. If every attempt reports false, the error wraps
// ErrExhausted.
func (p Poller) Until(cond func() (bool, error)) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for i := 0; i < p.Attempts; i++ {
		sleep(p.Interval)
		ok, err := cond()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return fmt.Errorf("%w after %d tries", ErrExhausted, p.Attempts)
}
