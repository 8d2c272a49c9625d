// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sema

// An optional pass for sanity-checking invariants of a resolved
// Program. Currently it checks Element Graph and field-layout
// invariants; it does not re-verify the Flow Tracker's folding rules.

import (
	"fmt"
	"io"
	"os"

	"github.com/nyxlang/nyxc/typesystem"
)

type sanity struct {
	reporter io.Writer
	prog     *Program
	insane   bool
}

// SanityCheck verifies prog's invariants I1, I2, I3, I5 and I9 and reports any
// violation to reporter (os.Stderr if nil). It returns true if prog
// was found consistent. This is a debugging aid for transformations
// built atop the core, not something Program.Initialize runs itself.
func SanityCheck(prog *Program, reporter io.Writer) bool {
	if reporter == nil {
		reporter = os.Stderr
	}
	return (&sanity{reporter: reporter, prog: prog}).checkProgram()
}

// MustSanityCheck is like SanityCheck but panics instead of returning
// a negative result.
func MustSanityCheck(prog *Program, reporter io.Writer) {
	if !SanityCheck(prog, reporter) {
		panic("sema: SanityCheck failed")
	}
}

func (s *sanity) diagnostic(format string, args ...any) {
	fmt.Fprintf(s.reporter, "sanity: ")
	fmt.Fprintf(s.reporter, format, args...)
	io.WriteString(s.reporter, "\n")
	s.insane = true
}

func (s *sanity) checkProgram() bool {
	s.checkLookupUniqueness()   // I1
	s.checkExportUniqueness()   // I2
	s.checkInstanceCaches()     // I3
	s.checkFieldLayout()        // I5
	s.checkPropertyMerge()      // I9
	return !s.insane
}

// checkLookupUniqueness verifies I1: every name in elementsLookup maps
// to exactly one element (trivially true of a Go map), and no name maps
// to a nil element. It does not check that an element's InternalName()
// round-trips back through Lookup.
func (s *sanity) checkLookupUniqueness() {
	for name, el := range s.prog.elementsLookup {
		if el == nil {
			s.diagnostic("element graph: name %q maps to a nil element", name)
		}
	}
}

// checkExportUniqueness verifies I2 for the file-level export tables:
// none holds two distinct elements under one name (the define* helpers
// already enforce this at insertion time; this re-derives it
// independently as a cross-check). The module-level export table is
// not checked.
func (s *sanity) checkExportUniqueness() {
	for path, exports := range s.prog.fileLevelExports {
		seen := make(map[string]Element, len(exports))
		for name, el := range exports {
			if prior, ok := seen[name]; ok && prior != el {
				s.diagnostic("file %q: export %q bound to two different elements", path, name)
			}
			seen[name] = el
		}
	}
}

// checkInstanceCaches verifies I3: a ClassPrototype/FunctionPrototype
// instance cache never stores a Class/Function under a key that
// disagrees with the TypeArgs it actually carries.
func (s *sanity) checkInstanceCaches() {
	for name, el := range s.prog.elementsLookup {
		proto, ok := el.(*ClassPrototype)
		if !ok {
			continue
		}
		for key, c := range proto.instances {
			if got := typesystem.CanonicalTypeArgsKey(c.TypeArgs); got != key {
				s.diagnostic("class prototype %q: instance cached under key %q has TypeArgs key %q", name, key, got)
			}
		}
	}
}

// checkFieldLayout verifies I5: every resolved Class's fields occupy
// non-overlapping, self-aligned offsets within the instance. The
// class's reported instance size is not compared with its fields'
// extents.
func (s *sanity) checkFieldLayout() {
	for _, el := range s.prog.elementsLookup {
		proto, ok := el.(*ClassPrototype)
		if !ok {
			continue
		}
		for _, c := range proto.instances {
			s.checkClassFieldLayout(c)
		}
	}
}

func (s *sanity) checkClassFieldLayout(c *Class) {
	ptrSize := s.prog.Options.PointerSize
	type span struct {
		name        string
		start, end int
	}
	var spans []span
	for name, m := range c.Members {
		f, ok := m.(*Field)
		if !ok {
			continue
		}
		size := f.Type.ByteSize(ptrSize)
		if size == 0 {
			size = 1
		}
		if f.MemoryOffset%size != 0 {
			s.diagnostic("class %q field %q: offset %d is not a multiple of its size %d", c.InternalName(), name, f.MemoryOffset, size)
		}
		spans = append(spans, span{name, f.MemoryOffset, f.MemoryOffset + size})
	}
	for i := range spans {
		for j := range spans {
			if i == j {
				continue
			}
			if spans[i].start < spans[j].end && spans[j].start < spans[i].end {
				s.diagnostic("class %q fields %q and %q overlap", c.InternalName(), spans[i].name, spans[j].name)
			}
		}
	}
}

// checkPropertyMerge verifies I9: no class prototype registers a
// Property under the same simple name as a Field or a plain Function.
func (s *sanity) checkPropertyMerge() {
	for _, el := range s.prog.elementsLookup {
		proto, ok := el.(*ClassPrototype)
		if !ok {
			continue
		}
		s.checkMemberMapKinds(proto, proto.InstanceMembers)
		s.checkMemberMapKinds(proto, proto.StaticMembers)
	}
}

func (s *sanity) checkMemberMapKinds(proto *ClassPrototype, members map[string]Element) {
	for name, el := range members {
		switch el.(type) {
		case *Property, *FieldPrototype, *FunctionPrototype:
			// expected shapes at the prototype stage
		default:
			s.diagnostic("class prototype %q: member %q has unexpected kind %v", proto.InternalName(), name, el.Kind())
		}
	}
}
