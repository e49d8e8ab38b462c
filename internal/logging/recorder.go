package logging

import (
	"context"
	"log/slog"
	"sync"
)

// Entry is one record captured by a Recorder.
type Entry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// Recorder captures log records in memory so tests can assert on them.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder returns a Recorder and a debug-level logger feeding it.
func NewRecorder() (*Recorder, *slog.Logger) {
	r := &Recorder{}
	return r, slog.New(&recordHandler{rec: r})
}

// Entries returns a copy of everything logged so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages returns the entries whose message equals msg.
func (r *Recorder) Messages(msg string) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.Message == msg {
			out = append(out, e)
		}
	}
	return out
}

type recordHandler struct {
	rec   *Recorder
	attrs []slog.Attr
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	e := Entry{Level: r.Level, Message: r.Message, Attrs: make(map[string]any)}
	for _, a := range h.attrs {
		e.Attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		e.Attrs[a.Key] = a.Value.Any()
		return true
	})

	h.rec.mu.Lock()
	h.rec.entries = append(h.rec.entries, e)
	h.rec.mu.Unlock()
	return nil
}

func (h *recordHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &recordHandler{rec: h.rec, attrs: merged}
}

// Groups are flattened; nothing here logs grouped attrs.
func (h *recordHandler) WithGroup(string) slog.Handler { return h }
