// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sema

import (
	"sync"

	"github.com/nyxlang/nyxc/ast"
	"github.com/nyxlang/nyxc/typesystem"
)

// functionInstantiatorMu guards every FunctionPrototype's instances
// map, the same coarse-but-simple locking the teacher uses for
// generic.instancesMu (go/ssa/instantiate.go): one mutex for the whole
// package rather than one per prototype, since instantiation is rare
// enough next to lookup that contention is not a concern here.
var functionInstantiatorMu sync.Mutex

// partialApply returns a new FunctionPrototype identical to m except
// for ClassTypeArguments, which records the owning class instance's
// resolved type arguments (spec's "partial resolution": an instance
// method keeps its own type parameters free while closing over its
// class's). For a free function given no class type arguments it
// returns m itself; otherwise the copy has its own empty instances cache;
// it is never registered in the Element Graph under its own name since
// it exists only to be resolved once per owning Class (spec §4.2.7).
func (m *FunctionPrototype) partialApply(classTypeArgs []typesystem.Type) *FunctionPrototype {
	if len(classTypeArgs) == 0 && m.OwningClass == nil {
		return m
	}
	cp := *m
	cp.ClassTypeArguments = classTypeArgs
	cp.instances = nil
	return &cp
}

// Resolve returns the Function instance of m for the given (already
// resolved) own type arguments, creating and memoizing it on first
// request (spec §4.2.7, invariant I3). owner is the Class this
// function is a static or instance member of, or nil for a free
// function; it supplies the contextual type arguments m's body and
// signature resolve against, layered under m's own type parameters.
func (m *FunctionPrototype) Resolve(prog *Program, typeArgs []typesystem.Type, owner *Class) *Function {
	key := typesystem.CanonicalTypeArgsKey(typeArgs)

	functionInstantiatorMu.Lock()
	if m.instances == nil {
		m.instances = make(map[string]*Function)
	}
	if fn, ok := m.instances[key]; ok {
		functionInstantiatorMu.Unlock()
		return fn
	}
	fn := &Function{Prototype: m, TypeArguments: typeArgs}
	fn.simpleName = m.simpleName
	fn.internalName = typesystem.NameWithTypeArgs(m.internalName, typeArgs)
	fn.decl = m.decl
	fn.flags = m.flags
	fn.decoratorFlags = m.decoratorFlags
	fn.namespace = m.namespace
	if owner != nil {
		fn.Owner = owner
	}
	m.instances[key] = fn
	functionInstantiatorMu.Unlock()

	ctx := mergeContextualTypeArgs(ownerContextualTypeArgs(owner), contextualTypeArgsOf(m.TypeParameters, typeArgs))
	fn.Signature = resolveSignature(prog, m.Signature, ctx)
	if owner != nil && !m.flags.Has(StaticFlag) {
		fn.Signature.This = owner.Type
	}

	fn.Root = newRootFlow(fn, fn.Signature.Results, ctx)
	fn.current = fn.Root

	if owner != nil && !m.flags.Has(StaticFlag) {
		fn.AddLocal("this", owner.Type)
	}
	for i, name := range fn.Signature.ParamNames {
		fn.AddLocal(name, fn.Signature.Params[i])
	}

	if body := methodBody(m); body != nil {
		resolveStatements(prog, fn, body)
	}

	return fn
}

// methodBody extracts the statement list from m's declaration, or nil
// for an abstract/ambient/external prototype with no body.
func methodBody(m *FunctionPrototype) []ast.Statement {
	switch d := m.Decl.(type) {
	case *ast.FunctionDeclaration:
		return d.Body
	case *ast.MethodDeclaration:
		return d.Body
	default:
		return nil
	}
}

// ownerContextualTypeArgs returns owner's own contextual type
// arguments, or nil for a free function.
func ownerContextualTypeArgs(owner *Class) map[string]typesystem.Type {
	if owner == nil {
		return nil
	}
	return owner.ContextualTypeArgs
}

// mergeContextualTypeArgs layers b over a (b wins on name collision,
// which cannot actually happen since class and function type
// parameter names are resolved in disjoint scopes, but the explicit
// layering keeps the merge direction documented).
func mergeContextualTypeArgs(a, b map[string]typesystem.Type) map[string]typesystem.Type {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]typesystem.Type, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
