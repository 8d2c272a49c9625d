// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package watch drives a rebuild loop on source changes, adapted from
// the teacher's gopls/internal/filewatcher.Watcher: a receiver
// goroutine drains fsnotify as fast as possible and owns the debounce
// timer, a separate processing goroutine filters the events down to
// changed source paths, and once the timer fires after a quiet period
// the receiver goroutine invokes the rebuild callback with the batch.
package watch

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher batches filesystem change events for one or more watched
// directories and invokes a rebuild callback after a quiet period.
type Watcher struct {
	logger *slog.Logger

	stop chan struct{}
	wg   sync.WaitGroup

	ready chan struct{}

	fs *fsnotify.Watcher

	mu  sync.Mutex
	in  []fsnotify.Event
	out map[string]struct{} // changed paths pending flush
}

// New creates a Watcher and starts its event loop. rebuild is called
// with the set of changed paths (deduplicated) after delay has elapsed
// since the last observed event. errHandler receives fsnotify errors;
// it is called from the same goroutine as rebuild, so the two never run
// concurrently, and it must not block.
func New(delay time.Duration, logger *slog.Logger, rebuild func(changed []string), errHandler func(error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	w := &Watcher{
		logger: logger,
		fs:     fsw,
		stop:   make(chan struct{}),
		ready:  make(chan struct{}, 1),
		out:    make(map[string]struct{}),
	}

	w.wg.Add(1)
	go w.run(rebuild, errHandler, delay)

	w.wg.Add(1)
	go w.process(errHandler)

	return w, nil
}

// WatchFile adds path's containing directory to the watch set (Nyx
// sources are flat per-directory; this core does not itself walk a
// tree of imports, that is srcload's/the external parser's concern).
func (w *Watcher) WatchFile(path string) error {
	return w.fs.Add(filepath.Dir(path))
}

// WatchDir adds dir to the watch set directly.
func (w *Watcher) WatchDir(dir string) error {
	return w.fs.Add(dir)
}

func (w *Watcher) run(rebuild func([]string), errHandler func(error), delay time.Duration) {
	defer w.wg.Done()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-w.stop:
			return

		case <-timer.C:
			w.mu.Lock()
			changed := w.out
			w.out = make(map[string]struct{})
			w.mu.Unlock()

			if len(changed) > 0 {
				paths := make([]string, 0, len(changed))
				for p := range changed {
					paths = append(paths, p)
				}
				rebuild(paths)
			}
			timer.Reset(delay)

		case ev, ok := <-w.fs.Events:
			if !ok {
				continue
			}
			timer.Reset(delay)

			w.mu.Lock()
			w.in = append(w.in, ev)
			w.mu.Unlock()
			w.signal()

		case err, ok := <-w.fs.Errors:
			if !ok {
				continue
			}
			errHandler(err)
		}
	}
}

func (w *Watcher) process(errHandler func(error)) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stop:
			return
		case <-w.ready:
			w.mu.Lock()
			events := w.in
			w.in = nil
			w.mu.Unlock()

			for _, ev := range events {
				if !isSourceFile(ev.Name) {
					continue
				}
				w.mu.Lock()
				w.out[filepath.Clean(ev.Name)] = struct{}{}
				w.mu.Unlock()
			}
		}
	}
}

func (w *Watcher) signal() {
	select {
	case w.ready <- struct{}{}:
	default:
	}
}

func isSourceFile(name string) bool {
	return strings.HasSuffix(name, ".nx")
}

// Close stops the watcher and waits for its goroutines to exit.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	close(w.stop)
	w.wg.Wait()
	return err
}
