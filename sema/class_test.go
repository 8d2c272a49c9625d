// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sema

import (
	"testing"

	"github.com/nyxlang/nyxc/ast"
	"github.com/nyxlang/nyxc/typesystem"
)

func fieldPrototype(name string, t *ast.NamedTypeNode) *FieldPrototype {
	fp := &FieldPrototype{Decl: &ast.FieldDeclaration{Name: name, Type: t}}
	fp.simpleName = name
	fp.internalName = name
	return fp
}

func TestResolveLaysOutFieldsByByteSize(t *testing.T) {
	p, _ := newTestProgram()

	proto := &ClassPrototype{
		InstanceMembers: map[string]Element{
			"flag": fieldPrototype("flag", &ast.NamedTypeNode{Name: "bool"}),
			"n":    fieldPrototype("n", &ast.NamedTypeNode{Name: "i64"}),
		},
		StaticMembers: map[string]Element{},
	}
	proto.simpleName = "Box"
	proto.internalName = "src/main/Box"

	cls := proto.Resolve(p, nil)

	flag := cls.Members["flag"].(*Field)
	n := cls.Members["n"].(*Field)

	if flag.MemoryOffset != 0 {
		t.Errorf("flag (bool, 1 byte) offset = %d, want 0", flag.MemoryOffset)
	}
	// "n" (i64, 8 bytes) must be realigned to its own size per invariant
	// I5, even though layout order (alphabetical: flag, n) would
	// otherwise place it right after the 1-byte bool.
	if n.MemoryOffset != 8 {
		t.Errorf("n (i64, 8 bytes) offset = %d, want 8 (aligned up from 1)", n.MemoryOffset)
	}
	if cls.InstanceSize() != 16 {
		t.Errorf("InstanceSize() = %d, want 16", cls.InstanceSize())
	}
}

func TestResolveMemoizesInstancesByTypeArgsKey(t *testing.T) {
	p, _ := newTestProgram()

	proto := &ClassPrototype{InstanceMembers: map[string]Element{}, StaticMembers: map[string]Element{}}
	proto.simpleName = "Box"
	proto.internalName = "src/main/Box"

	a := proto.Resolve(p, []typesystem.Type{typesystem.Primitive(typesystem.I32)})
	b := proto.Resolve(p, []typesystem.Type{typesystem.Primitive(typesystem.I32)})
	c := proto.Resolve(p, []typesystem.Type{typesystem.Primitive(typesystem.I64)})

	if a != b {
		t.Errorf("Resolve with identical type args must return the memoized instance")
	}
	if a == c {
		t.Errorf("Resolve with different type args must not share an instance")
	}
}

func TestResolveInheritsBaseFieldsAndOffset(t *testing.T) {
	p, _ := newTestProgram()

	base := &ClassPrototype{
		InstanceMembers: map[string]Element{"x": fieldPrototype("x", &ast.NamedTypeNode{Name: "i32"})},
		StaticMembers:   map[string]Element{},
	}
	base.simpleName = "Base"
	base.internalName = "src/main/Base"

	derived := &ClassPrototype{
		BasePrototype:   base,
		ExtendsType:     &ast.NamedTypeNode{Name: "Base"},
		InstanceMembers: map[string]Element{"y": fieldPrototype("y", &ast.NamedTypeNode{Name: "i32"})},
		StaticMembers:   map[string]Element{},
	}
	derived.simpleName = "Derived"
	derived.internalName = "src/main/Derived"

	cls := derived.Resolve(p, nil)

	if _, ok := cls.Members["x"]; !ok {
		t.Errorf("a derived class must inherit its base's members")
	}
	y := cls.Members["y"].(*Field)
	if y.MemoryOffset != 4 {
		t.Errorf("derived field offset = %d, want 4 (continuing after base's 4-byte instance)", y.MemoryOffset)
	}
	if cls.Base == nil || cls.Base.Prototype != base {
		t.Errorf("cls.Base was not resolved from BasePrototype")
	}
}

func TestSelfReferentialFieldDoesNotRecurseInfinitely(t *testing.T) {
	p, _ := newTestProgram()

	proto := &ClassPrototype{StaticMembers: map[string]Element{}}
	proto.simpleName = "Node"
	proto.internalName = "src/main/Node"
	proto.InstanceMembers = map[string]Element{
		"next": fieldPrototype("next", &ast.NamedTypeNode{Name: "Node"}),
	}
	p.define("Node", proto, ast.Range{})

	cls := proto.Resolve(p, nil)

	next := cls.Members["next"].(*Field)
	if next.Type.ClassRef() != cls {
		t.Errorf("self-referential field must resolve to the same (partially built) instance being constructed")
	}
}
