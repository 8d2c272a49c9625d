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

func TestResolveNamedTypeExpandsSimpleAlias(t *testing.T) {
	p, _ := newTestProgram()

	alias := &ast.TypeDeclaration{Name: "Int", Type: i32Type()}
	src := &ast.Source{Path: "src/main", Statements: []ast.Statement{alias}}
	p.Initialize([]*ast.Source{src})

	got := resolveType(p, &ast.NamedTypeNode{Name: "Int"}, nil)
	if got.Kind() != typesystem.I32 {
		t.Errorf("resolveType(Int) = %v, want i32 via alias expansion", got.Kind())
	}
}

func TestResolveNamedTypeExpandsGenericAlias(t *testing.T) {
	p, _ := newTestProgram()

	// type Pair<T> = T
	alias := &ast.TypeDeclaration{
		Name:           "Pair",
		TypeParameters: []*ast.TypeParameter{{Name: "T"}},
		Type:           &ast.NamedTypeNode{Name: "T"},
	}
	src := &ast.Source{Path: "src/main", Statements: []ast.Statement{alias}}
	p.Initialize([]*ast.Source{src})

	ref := &ast.NamedTypeNode{Name: "Pair", TypeArguments: []ast.TypeNode{i32Type()}}
	got := resolveType(p, ref, nil)
	if got.Kind() != typesystem.I32 {
		t.Errorf("resolveType(Pair<i32>) = %v, want i32 via generic alias expansion", got.Kind())
	}
}

func TestResolveNamedTypeUnknownNameReportsCannotFindName(t *testing.T) {
	p, rec := newTestProgram()

	resolveType(p, &ast.NamedTypeNode{Name: "Nope"}, nil)

	if !rec.Has(diag.CannotFindName) {
		t.Errorf("expected a CannotFindName diagnostic for a name with no element, alias, or table entry")
	}
}
