// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsSourceFile(t *testing.T) {
	cases := map[string]bool{
		"main.nx":       true,
		"src/main.nx":   true,
		"main.nx.bak":   false,
		"README.md":     false,
		"main":          false,
		"/tmp/a/b/c.nx": true,
	}
	for name, want := range cases {
		if got := isSourceFile(name); got != want {
			t.Errorf("isSourceFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestWatcherDebouncesBurstIntoOneRebuild(t *testing.T) {
	dir := t.TempDir()

	rebuilds := make(chan []string, 8)
	errs := make(chan error, 8)

	w, err := New(50*time.Millisecond, nil, func(changed []string) {
		rebuilds <- changed
	}, func(err error) {
		errs <- err
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if err := w.WatchDir(dir); err != nil {
		t.Fatalf("WatchDir: %v", err)
	}

	path := filepath.Join(dir, "main.nx")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case changed := <-rebuilds:
		if len(changed) != 1 || changed[0] != filepath.Clean(path) {
			t.Errorf("rebuild changed = %v, want [%s]", changed, filepath.Clean(path))
		}
	case err := <-errs:
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a debounced rebuild")
	}
}

func TestWatcherIgnoresNonSourceFiles(t *testing.T) {
	dir := t.TempDir()

	rebuilds := make(chan []string, 8)

	w, err := New(30*time.Millisecond, nil, func(changed []string) {
		rebuilds <- changed
	}, func(error) {})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if err := w.WatchDir(dir); err != nil {
		t.Fatalf("WatchDir: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case changed := <-rebuilds:
		t.Errorf("unexpected rebuild for a non-.nx file: %v", changed)
	case <-time.After(200 * time.Millisecond):
	}
}
