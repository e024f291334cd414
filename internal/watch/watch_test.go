package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu      sync.Mutex
	batches [][]Change
	signal  chan struct{}
}

func newRecorder() *recorder {
	return &recorder{signal: make(chan struct{}, 16)}
}

func (r *recorder) handle(changes []Change) {
	r.mu.Lock()
	r.batches = append(r.batches, changes)
	r.mu.Unlock()
	r.signal <- struct{}{}
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.signal:
	case <-time.After(5 * time.Second):
		t.Fatal("no batch delivered")
	}
}

func (r *recorder) snapshot() [][]Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]Change(nil), r.batches...)
}

func TestDedupe(t *testing.T) {
	now := time.Now()
	got := dedupe([]Change{
		{Path: "/a", Op: OpCreate, Time: now},
		{Path: "/b", Op: OpWrite, Time: now},
		{Path: "/a", Op: OpWrite, Time: now.Add(time.Millisecond)},
	})
	if len(got) != 2 {
		t.Fatalf("dedupe() = %v, want 2 changes", got)
	}
	if got[0].Path != "/a" || got[0].Op != OpWrite {
		t.Errorf("got[0] = %+v, want latest change to /a", got[0])
	}
	if got[1].Path != "/b" {
		t.Errorf("got[1] = %+v", got[1])
	}
}

func TestOp_String(t *testing.T) {
	tests := map[Op]string{
		OpCreate: "create",
		OpWrite:  "write",
		OpRemove: "remove",
		OpRename: "rename",
		Op(42):   "unknown",
	}
	for op, want := range tests {
		if got := op.String(); got != want {
			t.Errorf("Op(%d).String() = %q, want %q", op, got, want)
		}
	}
}

func TestWatcher_CoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.json")
	other := filepath.Join(dir, "other.json")
	if err := os.WriteFile(doc, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	rec := newRecorder()
	w, err := New([]string{doc, doc}, rec.handle, &Options{Debounce: 100 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(w.Files()) != 1 {
		t.Errorf("Files() = %v, want duplicates merged", w.Files())
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()
	if !w.IsWatching() {
		t.Error("IsWatching() = false after Start")
	}

	for i := range 5 {
		if err := os.WriteFile(doc, []byte{'{', byte('0' + i), '}'}, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(other, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	rec.wait(t)

	batches := rec.snapshot()
	if len(batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(batches))
	}
	if len(batches[0]) != 1 || batches[0][0].Path != w.Files()[0] {
		t.Errorf("batch = %+v, want one change to %s", batches[0], doc)
	}
}

func TestWatcher_StopFlushes(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.json")

	rec := newRecorder()
	w, err := New([]string{doc}, rec.handle, &Options{Debounce: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(doc, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	// Give the event time to reach the debouncer before stopping.
	time.Sleep(300 * time.Millisecond)

	w.Stop()
	w.Stop()
	if w.IsWatching() {
		t.Error("IsWatching() = true after Stop")
	}
	if n := len(rec.snapshot()); n != 1 {
		t.Errorf("got %d batches after Stop, want pending batch flushed", n)
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	w, err := New([]string{filepath.Join(t.TempDir(), "nope", "doc.json")}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	if err := w.Start(context.Background()); err == nil {
		t.Error("Start() on missing directory: error = nil")
	}
}
