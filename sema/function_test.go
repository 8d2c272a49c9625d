// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sema

import (
	"testing"

	"github.com/nyxlang/nyxc/ast"
	"github.com/nyxlang/nyxc/typesystem"
)

func freeFunctionPrototype(name string, params []*ast.ParameterNode, ret *ast.NamedTypeNode) *FunctionPrototype {
	decl := &ast.FunctionDeclaration{
		Name:      name,
		Signature: &ast.FunctionTypeNode{Parameters: params, ReturnType: ret},
	}
	fp := &FunctionPrototype{Decl: decl, Signature: decl.Signature}
	fp.simpleName = name
	fp.internalName = name
	return fp
}

func TestResolveFreeFunctionOrdersParamsAsLocals(t *testing.T) {
	p, _ := newTestProgram()

	params := []*ast.ParameterNode{
		{Name: "a", Type: &ast.NamedTypeNode{Name: "i32"}},
		{Name: "b", Type: &ast.NamedTypeNode{Name: "i32"}},
	}
	fp := freeFunctionPrototype("add", params, &ast.NamedTypeNode{Name: "i32"})

	fn := fp.Resolve(p, nil, nil)

	if len(fn.Locals) != 2 {
		t.Fatalf("got %d locals, want 2", len(fn.Locals))
	}
	if fn.Locals[0].SimpleName() != "a" || fn.Locals[1].SimpleName() != "b" {
		t.Errorf("locals = [%s, %s], want [a, b]", fn.Locals[0].SimpleName(), fn.Locals[1].SimpleName())
	}
	if fn.Locals[0].Slot != 0 || fn.Locals[1].Slot != 1 {
		t.Errorf("param slots = %d, %d, want 0, 1", fn.Locals[0].Slot, fn.Locals[1].Slot)
	}
	if fn.Signature.Results.Kind() != typesystem.I32 {
		t.Errorf("return type = %v, want i32", fn.Signature.Results.Kind())
	}
}

func TestResolveInstanceMethodAddsThisBeforeParams(t *testing.T) {
	p, _ := newTestProgram()

	owner := &Class{Type: typesystem.Primitive(typesystem.I32)}
	params := []*ast.ParameterNode{{Name: "n", Type: &ast.NamedTypeNode{Name: "i32"}}}
	fp := freeFunctionPrototype("bump", params, nil)

	fn := fp.Resolve(p, nil, owner)

	if len(fn.Locals) != 2 {
		t.Fatalf("got %d locals, want 2 (this, n)", len(fn.Locals))
	}
	if fn.Locals[0].SimpleName() != "this" {
		t.Errorf("Locals[0] = %q, want \"this\"", fn.Locals[0].SimpleName())
	}
	if fn.Locals[1].SimpleName() != "n" {
		t.Errorf("Locals[1] = %q, want \"n\"", fn.Locals[1].SimpleName())
	}
	if !fn.Signature.This.Equal(owner.Type) {
		t.Errorf("Signature.This = %v, want owner.Type %v", fn.Signature.This, owner.Type)
	}
}

func TestResolveStaticMethodHasNoThis(t *testing.T) {
	p, _ := newTestProgram()

	owner := &Class{Type: typesystem.Primitive(typesystem.I32)}
	fp := freeFunctionPrototype("make", nil, nil)
	fp.flags = StaticFlag

	fn := fp.Resolve(p, nil, owner)

	if len(fn.Locals) != 0 {
		t.Errorf("a static method must not get an implicit 'this' local, got %d locals", len(fn.Locals))
	}
	if !fn.Signature.This.IsZero() {
		t.Errorf("a static method's Signature.This must stay the zero Type, got %v", fn.Signature.This)
	}
}

func TestFunctionPrototypeResolveMemoizesByTypeArgs(t *testing.T) {
	p, _ := newTestProgram()

	fp := freeFunctionPrototype("id", nil, nil)

	a := fp.Resolve(p, []typesystem.Type{typesystem.Primitive(typesystem.I32)}, nil)
	b := fp.Resolve(p, []typesystem.Type{typesystem.Primitive(typesystem.I32)}, nil)
	c := fp.Resolve(p, []typesystem.Type{typesystem.Primitive(typesystem.I64)}, nil)

	if a != b {
		t.Errorf("Resolve with identical type args should return the memoized Function")
	}
	if a == c {
		t.Errorf("Resolve with different type args must not share a Function")
	}
}

func TestPartialApplyReturnsSamePrototypeWhenNoClassContext(t *testing.T) {
	fp := freeFunctionPrototype("f", nil, nil)
	got := fp.partialApply(nil)
	if got != fp {
		t.Errorf("partialApply with no class type args and no owning class should be a no-op")
	}
}

func TestPartialApplyAlwaysCopiesForOwningClassMethod(t *testing.T) {
	fp := freeFunctionPrototype("method", nil, nil)
	fp.OwningClass = &ClassPrototype{}

	got := fp.partialApply(nil)
	if got == fp {
		t.Errorf("partialApply on a method must return a distinct partial prototype, even with empty class type args")
	}
	if got.instances != nil {
		t.Errorf("a fresh partial application must start with its own empty instance cache")
	}
}
