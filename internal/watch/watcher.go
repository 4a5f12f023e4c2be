// Package watch reacts to files appearing in the vault so they can be
// renamed automatically.
package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher subscribes to file-creation events below a vault root. Each newly
// created file is reported to the handler after a settle delay, giving the
// creating process time to finish writing. The delay is best effort: a
// process still writing past it will race the rename, which is an accepted
// limitation of event-driven renaming.
type Watcher struct {
	fw      *fsnotify.Watcher
	root    string
	settle  time.Duration
	handler func(relPath string)

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// New creates a watcher over root. The handler receives vault-relative
// forward-slash paths; it may be invoked from multiple goroutines.
func New(root string, settle time.Duration, handler func(relPath string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		fw:      fw,
		root:    root,
		settle:  settle,
		handler: handler,
		done:    make(chan struct{}),
	}, nil
}

// Start registers the vault directory tree with the watcher and begins
// dispatching events. Directories created later are added to the watch set as
// they appear.
func (w *Watcher) Start() error {
	if err := w.addRecursive(w.root); err != nil {
		_ = w.fw.Close() // nolint:errcheck // Already failing, close is best effort
		return err
	}

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Close unsubscribes from file-system events and waits for the dispatch loop
// to stop. Settle timers still pending are discarded; their files are picked
// up by the next explicit check. Safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.closeErr = w.fw.Close()
		w.wg.Wait()
	})
	return w.closeErr
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				w.handleCreate(event.Name)
			}

		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			// Watch errors are transient (e.g., a directory vanishing
			// mid-walk); the next event or explicit check catches up.
		}
	}
}

// handleCreate classifies a creation event: new directories join the watch
// set, new files are scheduled for a rename after the settle delay.
func (w *Watcher) handleCreate(name string) {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return
	}

	info, err := os.Stat(name)
	if err != nil {
		// Created and removed before we could look; nothing to do.
		return
	}

	if info.IsDir() {
		_ = w.addRecursive(name) // nolint:errcheck // Missed subdirectories surface on their own events
		return
	}

	rel, err := filepath.Rel(w.root, name)
	if err != nil {
		return
	}
	relSlash := filepath.ToSlash(rel)

	time.AfterFunc(w.settle, func() {
		select {
		case <-w.done:
			// Watcher closed while the file was settling.
		default:
			w.handler(relSlash)
		}
	})
}

// addRecursive registers dir and every non-hidden directory below it.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fw.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", p, err)
		}
		return nil
	})
}
