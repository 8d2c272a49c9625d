// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srcload

import (
	"testing"

	"github.com/nyxlang/nyxc/ast"
)

const classFixture = `{
	"path": "src/main",
	"isEntry": true,
	"statements": [
		{
			"kind": "class",
			"name": "Box",
			"flags": ["export"],
			"members": [
				{"kind": "field", "name": "value", "type": {"kind": "named", "name": "i32"}, "r": {"start": 10, "end": 20}},
				{
					"kind": "method",
					"name": "get",
					"flags": ["get"],
					"signature": {"kind": "function", "returnType": {"kind": "named", "name": "i32"}},
					"body": [
						{"kind": "return", "value": {"kind": "propertyAccess", "target": {"kind": "this"}, "name": "value"}}
					]
				}
			],
			"r": {"start": 0, "end": 100}
		}
	]
}`

func TestDecodeSourceClassWithFieldAndMethod(t *testing.T) {
	src, err := DecodeSource([]byte(classFixture))
	if err != nil {
		t.Fatalf("DecodeSource: %v", err)
	}
	if src.Path != "src/main" || !src.IsEntry {
		t.Fatalf("Source = %+v, want Path=src/main IsEntry=true", src)
	}
	if len(src.Statements) != 1 {
		t.Fatalf("got %d top-level statements, want 1", len(src.Statements))
	}

	cls, ok := src.Statements[0].(*ast.ClassDeclaration)
	if !ok {
		t.Fatalf("Statements[0] = %T, want *ast.ClassDeclaration", src.Statements[0])
	}
	if cls.Name != "Box" || !cls.Flags.Has(ast.FlagExport) {
		t.Errorf("class = %+v, want Name=Box exported", cls)
	}
	if len(cls.Members) != 2 {
		t.Fatalf("got %d class members, want 2", len(cls.Members))
	}

	field, ok := cls.Members[0].(*ast.FieldDeclaration)
	if !ok {
		t.Fatalf("Members[0] = %T, want *ast.FieldDeclaration", cls.Members[0])
	}
	namedType, ok := field.Type.(*ast.NamedTypeNode)
	if !ok || namedType.Name != "i32" {
		t.Errorf("field.Type = %+v, want NamedTypeNode{Name: i32}", field.Type)
	}
	if field.R.Start != 10 || field.R.End != 20 {
		t.Errorf("field.R = %+v, want {10 20}", field.R)
	}

	method, ok := cls.Members[1].(*ast.MethodDeclaration)
	if !ok {
		t.Fatalf("Members[1] = %T, want *ast.MethodDeclaration", cls.Members[1])
	}
	if !method.Flags.Has(ast.FlagGet) {
		t.Errorf("method.Flags missing FlagGet")
	}
	if len(method.Body) != 1 {
		t.Fatalf("got %d body statements, want 1", len(method.Body))
	}
	ret, ok := method.Body[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ast.ReturnStatement", method.Body[0])
	}
	access, ok := ret.Value.(*ast.PropertyAccessExpression)
	if !ok {
		t.Fatalf("return value = %T, want *ast.PropertyAccessExpression", ret.Value)
	}
	if _, ok := access.Target.(*ast.ThisExpression); !ok {
		t.Errorf("access.Target = %T, want *ast.ThisExpression", access.Target)
	}
	if access.Name != "value" {
		t.Errorf("access.Name = %q, want %q", access.Name, "value")
	}
}

func TestDecodeSourcesArray(t *testing.T) {
	data := []byte(`[` + classFixture + `, {"path": "src/other", "statements": []}]`)
	srcs, err := DecodeSources(data)
	if err != nil {
		t.Fatalf("DecodeSources: %v", err)
	}
	if len(srcs) != 2 {
		t.Fatalf("got %d sources, want 2", len(srcs))
	}
	if srcs[0].Path != "src/main" || srcs[1].Path != "src/other" {
		t.Errorf("sources = [%s, %s], want [src/main, src/other]", srcs[0].Path, srcs[1].Path)
	}
}

func TestDecodeStatementUnknownKindErrors(t *testing.T) {
	_, err := decodeStatement([]byte(`{"kind": "bogus"}`))
	if err == nil {
		t.Fatal("expected an error for an unrecognized statement kind")
	}
}

func TestDecodeFunctionTypeRejectsNonFunctionSignature(t *testing.T) {
	_, err := decodeFunctionType([]byte(`{"kind": "named", "name": "i32"}`))
	if err == nil {
		t.Fatal("expected an error when a method signature isn't a function type node")
	}
}

func TestDecodeSourceNilStatementsAreSkipped(t *testing.T) {
	src, err := DecodeSource([]byte(`{"path": "src/main", "statements": [null]}`))
	if err != nil {
		t.Fatalf("DecodeSource: %v", err)
	}
	if len(src.Statements) != 0 {
		t.Errorf("a null statement entry should be skipped, got %d statements", len(src.Statements))
	}
}
