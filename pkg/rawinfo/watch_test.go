package rawinfo

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/go-cmp/cmp"
)

func TestWatcherFlush(t *testing.T) {
	ps := samplePhotos()
	clock := &fakeClock{now: t0}
	c := &Config{Sections: AllSections, Silent: true, Settle: time.Second}

	var buf bytes.Buffer
	b := Fold([]Record{ps["a.ARW"].Record})
	w := NewWatcher(c, &fakeExtractor{photos: ps}, NewPrinter(&buf, c.Sections, clock), clock, b, []string{"a.ARW"})

	w.queue("a.ARW")
	w.queue("notes.txt")
	w.queue("b.CR2")
	w.queue("c.CR3")
	if len(w.pending) != 2 {
		t.Fatalf("pending = %v, want b.CR2 and c.CR3", w.pending)
	}

	clock.now = t0.Add(500 * time.Millisecond)
	if err := w.flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if b.Len() != 1 || buf.Len() != 0 {
		t.Fatalf("unsettled files were read: Len() = %d, output %q", b.Len(), buf.String())
	}

	clock.now = t0.Add(time.Second)
	if err := w.flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
	if len(w.pending) != 0 {
		t.Errorf("pending = %v, want empty", w.pending)
	}
	if !strings.Contains(buf.String(), "Analyzed 3 photos in 1000ms (333.33ms/photo)\n") {
		t.Errorf("summary missing from output:\n%s", buf.String())
	}

	// files already read are never queued again
	buf.Reset()
	w.queue("b.CR2")
	clock.now = t0.Add(time.Hour)
	if err := w.flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if b.Len() != 3 || buf.Len() != 0 {
		t.Errorf("re-read a seen file: Len() = %d, output %q", b.Len(), buf.String())
	}
}

func TestWatcherSkipsBadFiles(t *testing.T) {
	ps := samplePhotos()
	clock := &fakeClock{now: t0}
	c := &Config{Silent: true, Settle: time.Second}

	b := NewBatch(0)
	w := NewWatcher(c, &fakeExtractor{photos: ps}, NewPrinter(&bytes.Buffer{}, c.Sections, clock), clock, b, nil)

	w.queue("a.ARW")
	w.queue("half-written.CR2")
	clock.now = t0.Add(time.Minute)
	if err := w.flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
	if c.KeepGoing {
		t.Error("flush modified the caller's config")
	}
}

func TestWatcherSkipsHiddenDirs(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, ".trash", "DSC09999.ARW"))
	touch(t, filepath.Join(root, "card", "DSC00001.ARW"))

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer fw.Close()

	clock := &fakeClock{now: t0}
	c := &Config{Silent: true, Settle: time.Second}
	b := NewBatch(0)
	w := NewWatcher(c, &fakeExtractor{fallback: samplePhotos()["a.ARW"]}, NewPrinter(&bytes.Buffer{}, c.Sections, clock), clock, b, nil)

	for _, name := range []string{".trash", "card"} {
		w.handle(fw, fsnotify.Event{Name: filepath.Join(root, name), Op: fsnotify.Create})
	}

	if diff := cmp.Diff([]string{filepath.Join(root, "card")}, fw.WatchList()); diff != "" {
		t.Errorf("watched dirs mismatch (-want +got):\n%s", diff)
	}

	clock.now = t0.Add(time.Minute)
	if err := w.flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
	if w.seen[filepath.Join(root, ".trash", "DSC09999.ARW")] {
		t.Error("read a file from a hidden directory")
	}
}

// writeUntil rewrites path until the extractor reports it, or fails after a deadline.
func writeUntil(t *testing.T, path string, notify <-chan string) {
	t.Helper()
	deadline := time.After(10 * time.Second)
	for {
		if err := os.WriteFile(path, []byte("raw"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		select {
		case got := <-notify:
			if got != path {
				t.Fatalf("extracted %s, want %s", got, path)
			}
			return
		case <-time.After(100 * time.Millisecond):
		case <-deadline:
			t.Fatalf("%s was never extracted", path)
		}
	}
}

func TestWatcherRun(t *testing.T) {
	root := t.TempDir()
	ps := samplePhotos()
	notify := make(chan string, 1)
	ex := &fakeExtractor{fallback: ps["a.ARW"], notify: notify}
	c := &Config{Silent: true, Settle: 20 * time.Millisecond}

	var buf bytes.Buffer
	b := NewBatch(0)
	w := NewWatcher(c, ex, NewPrinter(&buf, c.Sections, SystemClock{}), SystemClock{}, b, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, []string{root}) }()

	writeUntil(t, filepath.Join(root, "DSC00001.ARW"), notify)

	sub := filepath.Join(root, "card")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeUntil(t, filepath.Join(sub, "IMG_0001.CR3"), notify)

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}

	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
	if !strings.Contains(buf.String(), "Analyzed 2 photos in ") {
		t.Errorf("summary missing from output:\n%s", buf.String())
	}
}
