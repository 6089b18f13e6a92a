package rawinfo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"
)

// DefaultSettle is how long a raw file must go unchanged before it is read.
var DefaultSettle = 2 * time.Second

// Watcher adds raw files to a running batch as they appear, e.g. while shooting tethered.
type Watcher struct {
	c     *Config
	ex    Extractor
	p     *Printer
	clock Clock
	b     *Batch
	start time.Time

	seen    map[string]bool
	pending map[string]time.Time
}

// NewWatcher returns a Watcher that grows b. Paths in done are never re-read.
func NewWatcher(c *Config, ex Extractor, p *Printer, clock Clock, b *Batch, done []string) *Watcher {
	w := &Watcher{
		c:       c,
		ex:      ex,
		p:       p,
		clock:   clock,
		b:       b,
		start:   clock.Now(),
		seen:    map[string]bool{},
		pending: map[string]time.Time{},
	}
	for _, d := range done {
		w.seen[d] = true
	}
	return w
}

func (w *Watcher) settle() time.Duration {
	if w.c.Settle > 0 {
		return w.c.Settle
	}
	return DefaultSettle
}

// Run watches roots and their subdirectories until ctx is done.
func (w *Watcher) Run(ctx context.Context, roots []string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer fw.Close()

	dirs, err := Dirs(roots)
	if err != nil {
		return fmt.Errorf("dirs: %w", err)
	}

	klog.Infof("watching %d dirs ...", len(dirs))
	for _, d := range dirs {
		if err := fw.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	tick := time.NewTicker(max(w.settle()/2, 10*time.Millisecond))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			klog.V(1).Infof("event: %s", event)
			w.handle(fw, event)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			klog.Warningf("watch error: %v", err)
		case <-tick.C:
			if err := w.flush(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

func (w *Watcher) handle(fw *fsnotify.Watcher, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	// hidden entries are skipped here just as Find skips them
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}

	if event.Has(fsnotify.Create) {
		if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
			w.addDir(fw, event.Name)
			return
		}
	}

	w.queue(event.Name)
}

// addDir watches a new directory and queues raw files already copied into it.
func (w *Watcher) addDir(fw *fsnotify.Watcher, dir string) {
	dirs, err := Dirs([]string{dir})
	if err != nil {
		klog.Warningf("unable to list %s: %v", dir, err)
		return
	}
	for _, d := range dirs {
		if err := fw.Add(d); err != nil {
			klog.Warningf("unable to watch %s: %v", d, err)
		}
	}

	found, err := Find([]string{dir})
	if err != nil {
		klog.Warningf("unable to scan %s: %v", dir, err)
		return
	}
	for _, f := range found {
		w.queue(f)
	}
}

func (w *Watcher) queue(path string) {
	if !IsRaw(path) || w.seen[path] {
		return
	}
	w.pending[path] = w.clock.Now()
}

// flush reads every pending file that has settled, then reprints the summary.
func (w *Watcher) flush(ctx context.Context) error {
	now := w.clock.Now()
	ready := []string{}
	for path, t := range w.pending {
		if now.Sub(t) >= w.settle() {
			ready = append(ready, path)
		}
	}
	if len(ready) == 0 {
		return nil
	}

	sort.Strings(ready)
	for _, path := range ready {
		delete(w.pending, path)
		w.seen[path] = true
	}

	// a half-written or foreign file must not end the session
	c := *w.c
	c.KeepGoing = true

	var onPhoto func(*Photo)
	if !c.Silent {
		onPhoto = w.p.Photo
	}

	before := w.b.Len()
	if err := Analyze(ctx, &c, w.ex, ready, w.b, onPhoto); err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	if w.b.Len() == before || w.b.Len() < 2 {
		return nil
	}

	s, err := Summarize(w.b.Clone())
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	w.p.printf("\n")
	w.p.Summary(s, w.clock.Now().Sub(w.start))
	return nil
}
