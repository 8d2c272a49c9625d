// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package project

import (
	"testing"

	"github.com/nyxlang/nyxc/typesystem"
)

const sampleManifest = `module example.com/game

target "32"
entry "src/main.nx"
entry "src/debug.nx"

require github.com/nyxlang/collections v1.2.0
`

func TestParseReadsModuleTargetAndEntries(t *testing.T) {
	m, err := Parse("nyx.mod", []byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.ModulePath != "example.com/game" {
		t.Errorf("ModulePath = %q, want %q", m.ModulePath, "example.com/game")
	}
	if m.Target != "32" {
		t.Errorf("Target = %q, want %q", m.Target, "32")
	}
	if want := []string{"src/main.nx", "src/debug.nx"}; len(m.EntryFiles) != 2 || m.EntryFiles[0] != want[0] || m.EntryFiles[1] != want[1] {
		t.Errorf("EntryFiles = %v, want %v", m.EntryFiles, want)
	}
	if got := m.DependencyVersion("github.com/nyxlang/collections"); got != "v1.2.0" {
		t.Errorf("DependencyVersion = %q, want v1.2.0", got)
	}
	if got := m.DependencyVersion("github.com/nyxlang/nonexistent"); got != "" {
		t.Errorf("DependencyVersion for an unlisted dependency = %q, want empty", got)
	}
}

func TestParseDefaultsToTarget64WhenOmitted(t *testing.T) {
	m, err := Parse("nyx.mod", []byte("module example.com/app\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Target != "64" {
		t.Errorf("Target = %q, want default %q", m.Target, "64")
	}
}

func TestParseRejectsInvalidDependencyVersion(t *testing.T) {
	_, err := Parse("nyx.mod", []byte("module example.com/app\n\nrequire bad/dep notasemver\n"))
	if err == nil {
		t.Fatal("expected an error for a non-semver dependency version")
	}
}

func TestNewerThan(t *testing.T) {
	older := Dependency{Path: "d", Version: "v1.0.0"}
	newer := Dependency{Path: "d", Version: "v1.1.0"}
	if !NewerThan(newer, older) {
		t.Errorf("NewerThan(v1.1.0, v1.0.0) = false, want true")
	}
	if NewerThan(older, newer) {
		t.Errorf("NewerThan(v1.0.0, v1.1.0) = true, want false")
	}
}

func TestManifestOptionsSelectsWidthByTarget(t *testing.T) {
	m32 := &Manifest{Target: "32"}
	opts := m32.Options()
	if opts.PointerSize != 4 || opts.IsizeKind != typesystem.I32 || opts.UsizeKind != typesystem.U32 {
		t.Errorf("32-bit Options = %+v, want PointerSize=4, Isize=I32, Usize=U32", opts)
	}

	m64 := &Manifest{Target: "64"}
	opts64 := m64.Options()
	if opts64.PointerSize != 8 {
		t.Errorf("64-bit Options.PointerSize = %d, want 8", opts64.PointerSize)
	}
}
