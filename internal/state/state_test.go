package state

import (
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "state.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordStartAndStop(t *testing.T) {
	s := openTemp(t)

	known, err := s.Known("PYTEST_VIM")
	if err != nil || known {
		t.Fatalf("Known before start = %v, %v", known, err)
	}

	if err := s.RecordStart("PYTEST_VIM", "gvim", "/tmp/vimrc"); err != nil {
		t.Fatalf("RecordStart: %v", err)
	}
	known, err = s.Known("PYTEST_VIM")
	if err != nil || !known {
		t.Fatalf("Known after start = %v, %v", known, err)
	}

	servers, err := s.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(servers) != 1 {
		t.Fatalf("List returned %d servers", len(servers))
	}
	srv := servers[0]
	if srv.Name != "PYTEST_VIM" || srv.Executable != "gvim" || srv.Vimrc != "/tmp/vimrc" || !srv.Running {
		t.Errorf("server = %+v", srv)
	}
	if srv.StartedAt.IsZero() || time.Since(srv.StartedAt) > time.Hour {
		t.Errorf("StartedAt = %v", srv.StartedAt)
	}
	if !srv.StoppedAt.IsZero() {
		t.Errorf("StoppedAt = %v, want zero", srv.StoppedAt)
	}

	if err := s.RecordStop("PYTEST_VIM"); err != nil {
		t.Fatalf("RecordStop: %v", err)
	}
	servers, _ = s.List(10)
	if servers[0].Running || servers[0].StoppedAt.IsZero() {
		t.Errorf("after stop: %+v", servers[0])
	}

	// Restarting clears the stop time.
	if err := s.RecordStart("PYTEST_VIM", "vim", ""); err != nil {
		t.Fatalf("RecordStart: %v", err)
	}
	servers, _ = s.List(10)
	if !servers[0].Running || !servers[0].StoppedAt.IsZero() || servers[0].Executable != "vim" {
		t.Errorf("after restart: %+v", servers[0])
	}
}

func TestRecordStopUnknown(t *testing.T) {
	s := openTemp(t)
	if err := s.RecordStop("NOBODY"); err != nil {
		t.Errorf("RecordStop: %v", err)
	}
	if servers, _ := s.List(10); len(servers) != 0 {
		t.Errorf("unknown stop created a row: %+v", servers)
	}
}

func TestListLimitAndForget(t *testing.T) {
	s := openTemp(t)
	for _, name := range []string{"A", "B", "C"} {
		if err := s.RecordStart(name, "gvim", ""); err != nil {
			t.Fatal(err)
		}
	}
	servers, err := s.List(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(servers) != 2 {
		t.Errorf("List(2) returned %d", len(servers))
	}

	if err := s.Forget("B"); err != nil {
		t.Fatal(err)
	}
	if known, _ := s.Known("B"); known {
		t.Error("B still known after Forget")
	}
}
