// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sema

import (
	"testing"

	"github.com/nyxlang/nyxc/ast"
	"github.com/nyxlang/nyxc/diag"
)

func newTestProgram() (*Program, *diag.Recorder) {
	rec := &diag.Recorder{}
	return NewProgram(DefaultOptions(), rec, nil), rec
}

func i32Type() *ast.NamedTypeNode { return &ast.NamedTypeNode{Name: "i32"} }

func TestInitializeRegistersClassAndFields(t *testing.T) {
	p, rec := newTestProgram()

	cls := &ast.ClassDeclaration{
		Name: "Point",
		Members: []ast.Statement{
			&ast.FieldDeclaration{Name: "x", Type: i32Type()},
			&ast.FieldDeclaration{Name: "y", Type: i32Type()},
		},
	}
	src := &ast.Source{Path: "src/main", IsEntry: true, Statements: []ast.Statement{cls}}

	p.Initialize([]*ast.Source{src})

	el := p.Lookup("src/main/Point")
	proto, ok := el.(*ClassPrototype)
	if !ok {
		t.Fatalf("Lookup(%q) = %T, want *ClassPrototype", "src/main/Point", el)
	}
	if len(proto.InstanceMembers) != 2 {
		t.Errorf("got %d instance members, want 2", len(proto.InstanceMembers))
	}
	if rec.Count(diag.DuplicateIdentifier) != 0 {
		t.Errorf("unexpected DuplicateIdentifier diagnostics: %d", rec.Count(diag.DuplicateIdentifier))
	}
}

func TestDuplicateFieldReportsDuplicateIdentifier(t *testing.T) {
	p, rec := newTestProgram()

	cls := &ast.ClassDeclaration{
		Name: "Point",
		Members: []ast.Statement{
			&ast.FieldDeclaration{Name: "x", Type: i32Type()},
			&ast.FieldDeclaration{Name: "x", Type: i32Type()},
		},
	}
	src := &ast.Source{Path: "src/main", Statements: []ast.Statement{cls}}
	p.Initialize([]*ast.Source{src})

	if rec.Count(diag.DuplicateIdentifier) != 1 {
		t.Errorf("got %d DuplicateIdentifier diagnostics, want 1", rec.Count(diag.DuplicateIdentifier))
	}
}

func TestGetterSetterMergeIntoOneProperty(t *testing.T) {
	p, rec := newTestProgram()

	getter := &ast.MethodDeclaration{Name: "value", Flags: ast.FlagGet, Signature: &ast.FunctionTypeNode{ReturnType: i32Type()}}
	setter := &ast.MethodDeclaration{Name: "value", Flags: ast.FlagSet, Signature: &ast.FunctionTypeNode{
		Parameters: []*ast.ParameterNode{{Name: "v", Type: i32Type()}},
	}}
	cls := &ast.ClassDeclaration{Name: "Box", Members: []ast.Statement{getter, setter}}
	src := &ast.Source{Path: "src/main", Statements: []ast.Statement{cls}}
	p.Initialize([]*ast.Source{src})

	proto := p.Lookup("src/main/Box").(*ClassPrototype)
	el, ok := proto.InstanceMembers["value"]
	if !ok {
		t.Fatalf("property 'value' was not registered")
	}
	prop, ok := el.(*Property)
	if !ok {
		t.Fatalf("members[%q] = %T, want *Property", "value", el)
	}
	if prop.Getter == nil || prop.Setter == nil {
		t.Errorf("expected both Getter and Setter to be set, got getter=%v setter=%v", prop.Getter, prop.Setter)
	}
	if rec.Count(diag.DuplicateFunctionImplementation) != 0 {
		t.Errorf("unexpected DuplicateFunctionImplementation diagnostics")
	}
}

func TestTwoGettersOfSameNameReportDuplicate(t *testing.T) {
	p, rec := newTestProgram()

	g1 := &ast.MethodDeclaration{Name: "value", Flags: ast.FlagGet, Signature: &ast.FunctionTypeNode{ReturnType: i32Type()}}
	g2 := &ast.MethodDeclaration{Name: "value", Flags: ast.FlagGet, Signature: &ast.FunctionTypeNode{ReturnType: i32Type()}}
	cls := &ast.ClassDeclaration{Name: "Box", Members: []ast.Statement{g1, g2}}
	src := &ast.Source{Path: "src/main", Statements: []ast.Statement{cls}}
	p.Initialize([]*ast.Source{src})

	if rec.Count(diag.DuplicateFunctionImplementation) != 1 {
		t.Errorf("got %d DuplicateFunctionImplementation diagnostics, want 1", rec.Count(diag.DuplicateFunctionImplementation))
	}
}

func TestMultipleConstructorsReportsError(t *testing.T) {
	p, rec := newTestProgram()

	c1 := &ast.MethodDeclaration{Name: "constructor", Flags: ast.FlagConstructor, Signature: &ast.FunctionTypeNode{}}
	c2 := &ast.MethodDeclaration{Name: "constructor", Flags: ast.FlagConstructor, Signature: &ast.FunctionTypeNode{}}
	cls := &ast.ClassDeclaration{Name: "Box", Members: []ast.Statement{c1, c2}}
	src := &ast.Source{Path: "src/main", Statements: []ast.Statement{cls}}
	p.Initialize([]*ast.Source{src})

	if rec.Count(diag.MultipleConstructorImplementations) != 1 {
		t.Errorf("got %d MultipleConstructorImplementations diagnostics, want 1", rec.Count(diag.MultipleConstructorImplementations))
	}
}

func TestNamespaceDeclarationMerging(t *testing.T) {
	p, rec := newTestProgram()

	fn1 := &ast.FunctionDeclaration{Name: "f", Signature: &ast.FunctionTypeNode{}}
	fn2 := &ast.FunctionDeclaration{Name: "g", Signature: &ast.FunctionTypeNode{}}
	ns1 := &ast.NamespaceDeclaration{Name: "NS", Members: []ast.Statement{fn1}}
	ns2 := &ast.NamespaceDeclaration{Name: "NS", Members: []ast.Statement{fn2}}
	src := &ast.Source{Path: "src/main", Statements: []ast.Statement{ns1, ns2}}
	p.Initialize([]*ast.Source{src})

	el := p.Lookup("src/main/NS")
	ns, ok := el.(*Namespace)
	if !ok {
		t.Fatalf("Lookup(NS) = %T, want *Namespace", el)
	}
	if len(ns.Members) != 2 {
		t.Errorf("merged namespace has %d members, want 2", len(ns.Members))
	}
	if rec.Count(diag.MergedDeclarationMismatch) != 0 {
		t.Errorf("unexpected MergedDeclarationMismatch: consistent export-ness across blocks should not report")
	}
}

func TestNamespaceDeclarationMergingMismatchedExport(t *testing.T) {
	p, rec := newTestProgram()

	ns1 := &ast.NamespaceDeclaration{Name: "NS", Flags: ast.FlagExport}
	ns2 := &ast.NamespaceDeclaration{Name: "NS"}
	src := &ast.Source{Path: "src/main", Statements: []ast.Statement{ns1, ns2}}
	p.Initialize([]*ast.Source{src})

	if rec.Count(diag.MergedDeclarationMismatch) != 1 {
		t.Errorf("got %d MergedDeclarationMismatch diagnostics, want 1", rec.Count(diag.MergedDeclarationMismatch))
	}
}

func TestExportInEntrySourcePromotesToModuleLevel(t *testing.T) {
	p, _ := newTestProgram()

	fn := &ast.FunctionDeclaration{Name: "main", Flags: ast.FlagExport, Signature: &ast.FunctionTypeNode{}}
	src := &ast.Source{Path: "src/main", IsEntry: true, Statements: []ast.Statement{fn}}
	p.Initialize([]*ast.Source{src})

	if p.moduleLevelExports["main"] == nil {
		t.Errorf("exported declaration in an entry source should be promoted to a module-level export")
	}
	el := p.Lookup("src/main/main")
	if h := headerOf(el); h == nil || !h.flags.Has(ModuleExportFlag) {
		t.Errorf("ModuleExportFlag was not stamped onto the exported element (spec P6)")
	}
}

func TestOperatorDecoratorRecognized(t *testing.T) {
	p, _ := newTestProgram()

	method := &ast.MethodDeclaration{
		Name:       "add",
		Signature:  &ast.FunctionTypeNode{Parameters: []*ast.ParameterNode{{Name: "o", Type: &ast.NamedTypeNode{Name: "Box"}}}, ReturnType: &ast.NamedTypeNode{Name: "Box"}},
		Decorators: []*ast.Decorator{{Name: "operator", Arguments: []ast.Expression{&ast.StringLiteralExpression{Value: "+"}}}},
	}
	cls := &ast.ClassDeclaration{Name: "Box", Members: []ast.Statement{method}}
	src := &ast.Source{Path: "src/main", Statements: []ast.Statement{cls}}
	p.Initialize([]*ast.Source{src})

	proto := p.Lookup("src/main/Box").(*ClassPrototype)
	fp := proto.InstanceMembers["add"].(*FunctionPrototype)
	if fp.OperatorKind != Add {
		t.Errorf("OperatorKind = %v, want Add", fp.OperatorKind)
	}
}

func TestExternalDecoratorRecorded(t *testing.T) {
	p, _ := newTestProgram()

	fn := &ast.FunctionDeclaration{
		Name:       "jsLog",
		Flags:      ast.FlagDeclare,
		Signature:  &ast.FunctionTypeNode{},
		Decorators: []*ast.Decorator{{Name: "external", Arguments: []ast.Expression{
			&ast.StringLiteralExpression{Value: "env"},
			&ast.StringLiteralExpression{Value: "log"},
		}}},
	}
	src := &ast.Source{Path: "~lib/bindings", IsLibrary: true, Statements: []ast.Statement{fn}}
	p.Initialize([]*ast.Source{src})

	el := p.Lookup("jsLog")
	fp, ok := el.(*FunctionPrototype)
	if !ok {
		t.Fatalf("ambient declared function should be promoted to global scope")
	}
	if fp.External == nil || fp.External.Module != "env" || fp.External.Name != "log" {
		t.Errorf("External = %+v, want {Module: env, Name: log}", fp.External)
	}
}

func TestInvalidIdentifierCharacterRejected(t *testing.T) {
	p, rec := newTestProgram()

	fn := &ast.FunctionDeclaration{Name: "bad/name", Signature: &ast.FunctionTypeNode{}}
	src := &ast.Source{Path: "src/main", Statements: []ast.Statement{fn}}
	p.Initialize([]*ast.Source{src})

	if !rec.Has(diag.InvalidIdentifierCharacter) {
		t.Errorf("expected InvalidIdentifierCharacter for a name containing '/'")
	}
	if p.Lookup("src/main/bad/name") != nil {
		t.Errorf("an invalid identifier must not be registered in the Element Graph")
	}
}
