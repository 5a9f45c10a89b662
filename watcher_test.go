package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")
	write := func(data string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(`[{"uuid":"a","type":"turn"}]`)

	w := newRecordWatcher(path)
	go w.run()
	defer w.stop()

	// Let the fsnotify watch attach before rewriting.
	time.Sleep(100 * time.Millisecond)
	write(`[{"uuid":"a","type":"turn"},{"uuid":"b","parentUuid":"a","type":"turn"}]`)

	select {
	case msg := <-w.sub:
		if len(msg.messages) != 2 {
			t.Errorf("reloaded %d messages, want 2", len(msg.messages))
		}
	case err := <-w.errc:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("no reload within 5s")
	}
}

func TestRecordWatcher_StopUnblocksWaiters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	w := newRecordWatcher(path)
	go w.run()
	time.Sleep(50 * time.Millisecond)
	w.stop()

	select {
	case _, ok := <-w.sub:
		if ok {
			t.Errorf("sub delivered a message after stop")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("sub not closed after stop")
	}
}

func TestWaitForReload_NilOnClosedChannel(t *testing.T) {
	sub := make(chan reloadMsg)
	close(sub)
	if got := waitForReload(sub)(); got != nil {
		t.Errorf("waitForReload on closed channel = %v, want nil", got)
	}

	errc := make(chan error)
	close(errc)
	if got := waitForReloadErr(errc)(); got != nil {
		t.Errorf("waitForReloadErr on closed channel = %v, want nil", got)
	}
}
