// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sema

import (
	"testing"

	"github.com/nyxlang/nyxc/ast"
	"github.com/nyxlang/nyxc/diag"
	"github.com/nyxlang/nyxc/typesystem"
)

// boxClassWithGetter builds and resolves a `class Box { value: i32;
// get(): i32 { return this.value; } }` class through the full
// Initializer + Resolver pipeline, returning the resolved Class and its
// "get" Function.
func boxClassWithGetter(t *testing.T) (*Program, *Class, *Function) {
	t.Helper()
	p, _ := newTestProgram()

	field := &ast.FieldDeclaration{Name: "value", Type: i32Type()}
	getter := &ast.MethodDeclaration{
		Name:      "get",
		Signature: &ast.FunctionTypeNode{ReturnType: i32Type()},
		Body: []ast.Statement{
			&ast.ReturnStatement{Value: &ast.PropertyAccessExpression{
				Target: &ast.ThisExpression{},
				Name:   "value",
			}},
		},
	}
	cls := &ast.ClassDeclaration{Name: "Box", Members: []ast.Statement{field, getter}}
	src := &ast.Source{Path: "src/main", IsEntry: true, Statements: []ast.Statement{cls}}
	p.Initialize([]*ast.Source{src})

	proto := p.Lookup("src/main/Box").(*ClassPrototype)
	c := proto.Resolve(p, nil)

	getProto := proto.InstanceMembers["get"].(*FunctionPrototype)
	fn := getProto.Resolve(p, nil, c)
	return p, c, fn
}

func TestResolveThisReturnsImplicitReceiverLocal(t *testing.T) {
	p, c, fn := boxClassWithGetter(t)
	flow := newRootFlow(fn, typesystem.Type{}, nil)

	el := p.ResolveExpression(fn, flow, &ast.ThisExpression{})
	local, ok := el.(*Local)
	if !ok {
		t.Fatalf("ResolveExpression(this) = %T, want *Local", el)
	}
	if local.SimpleName() != "this" {
		t.Errorf("resolved this local = %q, want \"this\"", local.SimpleName())
	}
	if !local.Type.Equal(c.Type) {
		t.Errorf("this local's Type = %v, want owner class type %v", local.Type, c.Type)
	}
}

func TestResolvePropertyAccessOnThisResolvesFieldAndPublishesReceiver(t *testing.T) {
	p, c, fn := boxClassWithGetter(t)
	flow := newRootFlow(fn, typesystem.Type{}, nil)

	access := &ast.PropertyAccessExpression{Target: &ast.ThisExpression{}, Name: "value"}
	el := p.ResolveExpression(fn, flow, access)

	field, ok := el.(*Field)
	if !ok {
		t.Fatalf("ResolveExpression(this.value) = %T, want *Field", el)
	}
	if field.SimpleName() != "value" {
		t.Errorf("field name = %q, want value", field.SimpleName())
	}
	if _, ok := c.Members["value"].(*Field); !ok {
		t.Fatalf("Box's resolved class has no 'value' field")
	}

	if p.ResolvedThisExpression != access.Target {
		t.Errorf("ResolvedThisExpression was not published for an instance field access")
	}
	if p.ResolvedElementExpression != nil {
		t.Errorf("ResolvedElementExpression should stay nil for a property access, got %v", p.ResolvedElementExpression)
	}
}

func TestResolvePropertyAccessUnknownNameReportsDiagnostic(t *testing.T) {
	p, _, fn := boxClassWithGetter(t)
	rec := p.Sink.(*diag.Recorder)
	flow := newRootFlow(fn, typesystem.Type{}, nil)

	access := &ast.PropertyAccessExpression{Target: &ast.ThisExpression{}, Name: "bogus"}
	el := p.ResolveExpression(fn, flow, access)

	if _, ok := el.(*errorIdentifier); !ok {
		t.Fatalf("ResolveExpression(this.bogus) = %T, want the error sentinel", el)
	}
	if !rec.Has(diag.PropertyDoesNotExist) {
		t.Errorf("expected a PropertyDoesNotExist diagnostic for an unknown member")
	}
}

func TestResolveIdentifierFindsFunctionParamLocal(t *testing.T) {
	p, _ := newTestProgram()

	params := []*ast.ParameterNode{{Name: "n", Type: i32Type()}}
	fp := freeFunctionPrototype("bump", params, i32Type())
	fn := fp.Resolve(p, nil, nil)
	flow := newRootFlow(fn, typesystem.Type{}, nil)

	el := p.ResolveExpression(fn, flow, &ast.IdentifierExpression{Name: "n"})
	local, ok := el.(*Local)
	if !ok || local.SimpleName() != "n" {
		t.Fatalf("ResolveExpression(n) = %v, want the 'n' parameter local", el)
	}
}

func TestResolveIdentifierUnknownNameReportsCannotFindName(t *testing.T) {
	p, _ := newTestProgram()
	rec := p.Sink.(*diag.Recorder)

	fp := freeFunctionPrototype("f", nil, nil)
	fn := fp.Resolve(p, nil, nil)
	flow := newRootFlow(fn, typesystem.Type{}, nil)

	el := p.ResolveExpression(fn, flow, &ast.IdentifierExpression{Name: "nope"})
	if _, ok := el.(*errorIdentifier); !ok {
		t.Fatalf("ResolveExpression(nope) = %T, want the error sentinel", el)
	}
	if !rec.Has(diag.CannotFindName) {
		t.Errorf("expected a CannotFindName diagnostic for an unresolved identifier")
	}
}

func TestResolveCallToFreeFunctionReturnsItsFunction(t *testing.T) {
	p, _ := newTestProgram()

	fp := freeFunctionPrototype("make", nil, i32Type())
	fp.simpleName = "make"
	fp.internalName = "src/main/make"
	p.define("make", fp, ast.Range{})

	callerProto := freeFunctionPrototype("caller", nil, nil)
	fn := callerProto.Resolve(p, nil, nil)
	flow := newRootFlow(fn, typesystem.Type{}, nil)

	call := &ast.CallExpression{Target: &ast.IdentifierExpression{Name: "make"}}
	el := p.ResolveExpression(fn, flow, call)

	got, ok := el.(*Function)
	if !ok {
		t.Fatalf("ResolveExpression(make()) = %T, want *Function", el)
	}
	if got.SimpleName() != "make" {
		t.Errorf("resolved call target = %q, want make", got.SimpleName())
	}
}
