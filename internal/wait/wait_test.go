package wait

import (
	"errors"
	"testing"
	"time"
)

func TestUntilSucceeds(t *testing.T) {
	var slept []time.Duration
	calls := 0
	p := Poller{
		Interval: 200 * time.Millisecond,
		Attempts: 10,
		Sleep:    func(d time.Duration) { slept = append(slept, d) },
	}

	err := p.Until(func() (bool, error) {
		calls++
		return calls == 3, nil
	})
	if err != nil {
		t.Fatalf("Until: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if len(slept) != 3 {
		t.Errorf("slept %d times, want 3", len(slept))
	}
}

func TestUntilExhausts(t *testing.T) {
	var slept []time.Duration
	calls := 0
	p := Poller{
		Interval: 200 * time.Millisecond,
		Attempts: 10,
		Sleep:    func(d time.Duration) { slept = append(slept, d) },
	}

	err := p.Until(func() (bool, error) {
		calls++
		return false, nil
	})
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("err = %v, want ErrExhausted", err)
	}
	if calls != 10 {
		t.Errorf("calls = %d, want exactly 10", calls)
	}
	for i, d := range slept {
		if d != 200*time.Millisecond {
			t.Errorf("sleep %d = %v, want 200ms", i, d)
		}
	}
	if len(slept) != 10 {
		t.Errorf("slept %d times, want 10", len(slept))
	}
}

func TestUntilStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	p := Poller{Attempts: 5, Sleep: func(time.Duration) {}}

	err := p.Until(func() (bool, error) {
		calls++
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestUntilRealSleep(t *testing.T) {
	p := Poller{Interval: 5 * time.Millisecond, Attempts: 2}
	start := time.Now()
	_ = p.Until(func() (bool, error) { return false, nil })
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("elapsed %v, want at least 10ms", elapsed)
	}
}
