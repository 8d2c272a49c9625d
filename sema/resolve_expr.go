// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sema

import (
	"github.com/nyxlang/nyxc/ast"
	"github.com/nyxlang/nyxc/diag"
	"github.com/nyxlang/nyxc/typesystem"
)

// ResolveExpression resolves e to the Element it denotes, from inside
// fn's body at flow (spec §4.2.3-§4.2.5). This is the public entry
// point named in spec §6.3; it threads an explicit
// (element, thisExpr, indexExpr) tuple through the recursive
// resolution internally — see resolveExpr below — and publishes the
// thisExpr/indexExpr halves into Program.ResolvedThisExpression /
// Program.ResolvedElementExpression only here, at the outermost call,
// per spec §9's reimplementation note: a reimplementation should
// prefer returning an explicit record over mutating shared scratch
// state mid-traversal, while still satisfying the public two-field
// contract spec §6.3 describes.
func (p *Program) ResolveExpression(fn *Function, flow *Flow, e ast.Expression) Element {
	el, thisExpr, indexExpr := resolveExpr(p, fn, flow, e)
	p.ResolvedThisExpression = thisExpr
	p.ResolvedElementExpression = indexExpr
	return el
}

// resolveExpr is the internal recursive resolver. thisExpr is the
// expression that should be evaluated to produce the receiver when el
// denotes an instance member reached through a PropertyAccessExpression
// or ElementAccessExpression's IndexedGet/IndexedSet overload;
// indexExpr is the index expression for an ElementAccessExpression.
// Both are nil when not applicable.
func resolveExpr(p *Program, fn *Function, flow *Flow, e ast.Expression) (el Element, thisExpr, indexExpr ast.Expression) {
	switch x := e.(type) {
	case *ast.IdentifierExpression:
		return resolveIdentifier(p, fn, flow, x), nil, nil

	case *ast.ThisExpression:
		return resolveThis(p, fn, flow, x), nil, nil

	case *ast.SuperExpression:
		return resolveSuper(p, fn, flow, x), nil, nil

	case *ast.ParenthesizedExpression:
		return resolveExpr(p, fn, flow, x.Expr)

	case *ast.AssertionExpression:
		return resolveAssertion(p, flow, x), nil, nil

	case *ast.PropertyAccessExpression:
		return resolvePropertyAccess(p, fn, flow, x)

	case *ast.ElementAccessExpression:
		return resolveElementAccess(p, fn, flow, x)

	case *ast.CallExpression:
		return resolveCall(p, fn, flow, x)

	case *ast.StringLiteralExpression:
		// A string literal resolves to the interned String class
		// (spec §4.2.3 "StringLiteral" case); x itself is the receiver
		// expression for any member subsequently accessed off it.
		if p.wellKnown.stringClass == nil {
			return nil, nil, nil
		}
		return p.wellKnown.stringClass, x, nil

	case *ast.BinaryExpression, *ast.ArrayLiteralExpression:
		// Binary-operator typing and array-literal element inference
		// are out of this core's scope (spec §9); they resolve to no
		// Element.
		return nil, nil, nil

	default:
		return nil, nil, nil
	}
}

// resolveThis resolves the `this` keyword: either fn's own receiver
// local, or (inside an @inline-substituted flow) the scoped `this`
// captured on the innermost INLINE_CONTEXT Flow (spec §4.2.3 "This"
// case, §9's inline-context note).
func resolveThis(p *Program, fn *Function, flow *Flow, x *ast.ThisExpression) Element {
	for f := flow; f != nil; f = f.parent {
		if f.Has(InlineContext) && f.scopedThis != nil {
			return f.scopedThis
		}
	}
	if fn != nil {
		if l := fn.localsByName["this"]; l != nil {
			return l
		}
	}
	p.Sink.Emit(diag.ThisCannotBeReferencedHere, x.R)
	return errorElement("this", x.R)
}

// resolveSuper resolves the `super` keyword to fn's owning class's
// base class (spec §4.2.3 "Super" case).
func resolveSuper(p *Program, fn *Function, flow *Flow, x *ast.SuperExpression) Element {
	if fn != nil && fn.Owner != nil {
		if c, ok := fn.Owner.(*Class); ok && c.Base != nil {
			return c.Base
		}
	}
	p.Sink.Emit(diag.SuperRequiresDerivedClass, x.R)
	return errorElement("super", x.R)
}

// resolveAssertion resolves a type-assertion expression (spec §4.2.3
// "Assertion" case): the asserted type is resolved against flow's
// contextual type arguments, and the class it names becomes the
// expression's Element. The operand's own resolution is not needed
// here; a cast changes the static type the rest of resolution sees,
// it does not inspect the value being cast.
func resolveAssertion(p *Program, flow *Flow, x *ast.AssertionExpression) Element {
	t := resolveType(p, x.ToType, flow.ContextualTypeArguments())
	if c, ok := t.ClassRef().(*Class); ok {
		return c
	}
	return errorElement("assertion", x.R)
}

// resolvePropertyAccess resolves `target.Name`: resolves target,
// normalizes a Global/Local/Field target through its type's class
// reference (spec §4.2.4 step 2 — a Class's Members already include
// its base chain's, flattened in by resolveClassBody, so no separate
// base walk is needed here), then looks up Name among its instance
// (or static, for a prototype/namespace target) members, reporting
// PropertyDoesNotExist on a miss (spec §4.2.4 step 3).
func resolvePropertyAccess(p *Program, fn *Function, flow *Flow, x *ast.PropertyAccessExpression) (el Element, thisExpr, indexExpr ast.Expression) {
	target, _, _ := resolveExpr(p, fn, flow, x.Target)
	normalized := normalizeMemberTarget(target)

	member := lookupMember(normalized, x.Name)
	if member == nil {
		p.Sink.Emit(diag.PropertyDoesNotExist, x.R, x.Name, typeNameOf(target))
		return errorElement(x.Name, x.R), nil, nil
	}
	if isInstanceMember(member) {
		return member, x.Target, nil
	}
	return member, nil, nil
}

// normalizeMemberTarget normalizes a variable-like target (Global,
// Local, Field) to its type's class reference, so lookupMember never
// has to special-case those kinds itself; a target that is already a
// Class/ClassPrototype/Namespace/Enum, or has no class type, passes
// through unchanged.
func normalizeMemberTarget(el Element) Element {
	if c, ok := classOf(el); ok {
		return c
	}
	return el
}

// resolveElementAccess resolves `target[index]` via the target class's
// (or its base chain's) IndexedGet `[]` operator overload (spec §4.2.5,
// invariant P7); the `[]=` overload is not consulted. The overload Function itself is returned as el; the
// emitter is responsible for combining it with thisExpr/indexExpr to
// build the actual call.
func resolveElementAccess(p *Program, fn *Function, flow *Flow, x *ast.ElementAccessExpression) (el Element, thisExpr, indexExpr ast.Expression) {
	target, _, _ := resolveExpr(p, fn, flow, x.Target)

	c, ok := classOf(target)
	if !ok {
		p.Sink.Emit(diag.IndexSignatureMissing, x.R, typeNameOf(target))
		return errorElement("[]", x.R), nil, nil
	}
	overload := c.LookupOverload(IndexedGet)
	if overload == nil {
		p.Sink.Emit(diag.IndexSignatureMissing, x.R, c.InternalName())
		return errorElement("[]", x.R), nil, nil
	}
	return overload, x.Target, x.Index
}

// resolveCall resolves `target<TypeArgs>(args...)`. When target
// resolves to a still-generic FunctionPrototype (an unresolved free
// function, or an instance/static method left partial by class.go
// because it had its own type parameters), the call's explicit or
// inferred type arguments complete the monomorphization lazily here
// (spec §4.2.3 "Call" case, §4.2.7's lazy-resolution note). A
// FunctionTarget is produced instead when target resolves to a value
// of function type rather than a named function (spec §3.2).
func resolveCall(p *Program, fn *Function, flow *Flow, x *ast.CallExpression) (el Element, thisExpr, indexExpr ast.Expression) {
	target, recvExpr, _ := resolveExpr(p, fn, flow, x.Target)

	switch t := target.(type) {
	case *FunctionPrototype:
		var owner *Class
		if c, ok := classOwnerOf(p, t); ok {
			owner = c
		}
		ctx := ownerContextualTypeArgs(owner)
		args := resolveTypeArguments(p, x.TypeArguments, ctx)
		fn := t.Resolve(p, args, owner)
		return fn, recvExpr, nil
	case *Function:
		if len(x.TypeArguments) == 0 {
			return t, recvExpr, nil
		}
		// Re-instantiating an already-concrete Function with different
		// call-site type arguments is not meaningful; spec's
		// monomorphization key is fixed at the prototype, so fall back
		// to the existing instance.
		return t, recvExpr, nil
	case *Local:
		return functionTargetFor(p, t.Type), recvExpr, nil
	case *Global:
		return functionTargetFor(p, t.Type), recvExpr, nil
	default:
		p.Sink.Emit(diag.CannotInvokeNonCallable, x.R)
		return errorElement("call", x.R), nil, nil
	}
}

// functionTargetFor returns (creating and memoizing if needed) the
// FunctionTarget cached on t's Signature, used for indirect calls
// through a function-typed value (spec §3.2, §4.2.3's "Call" case).
func functionTargetFor(p *Program, t typesystem.Type) Element {
	sig := t.Signature()
	if sig == nil {
		return nil
	}
	if ft, ok := p.functionTargets[sig]; ok {
		return ft
	}
	ft := &FunctionTarget{Signature: sig}
	ft.simpleName = "(function)"
	ft.internalName = sig.String()
	p.functionTargets[sig] = ft
	return ft
}

// classOwnerOf reports the Class a partial FunctionPrototype is scoped
// to, derived from its captured ClassTypeArguments and OwningClass
// prototype (spec's "partial resolution").
func classOwnerOf(p *Program, m *FunctionPrototype) (*Class, bool) {
	if m.OwningClass == nil || m.ClassTypeArguments == nil {
		return nil, false
	}
	return m.OwningClass.Resolve(p, m.ClassTypeArguments), true
}

// lookupMember resolves a named member on el: instance/static members
// of a Class, members of a Namespace, or values of an Enum.
func lookupMember(el Element, name string) Element {
	switch t := el.(type) {
	case *Class:
		return t.Members[name]
	case *ClassPrototype:
		return t.StaticMembers[name]
	case *Namespace:
		return t.Members[name]
	case *Enum:
		if v, ok := t.Values[name]; ok {
			return v
		}
		return nil
	default:
		return nil
	}
}

// isInstanceMember reports whether accessing member requires a
// receiver expression (a Field, a non-static Function, or a Property
// backed by a non-static accessor).
func isInstanceMember(member Element) bool {
	switch m := member.(type) {
	case *Field:
		return true
	case *Function:
		return !m.Flags().Has(StaticFlag)
	case *Property:
		return !m.Flags().Has(StaticFlag)
	default:
		return false
	}
}

// classOf reports the Class a resolved target denotes: itself if
// already a Class, or the class of a Local/Global/Field's Type.
func classOf(el Element) (*Class, bool) {
	var t typesystem.Type
	switch x := el.(type) {
	case *Class:
		return x, true
	case *Local:
		t = x.Type
	case *Global:
		t = x.Type
	case *Field:
		t = x.Type
	default:
		return nil, false
	}
	if t.Kind() != typesystem.Class {
		return nil, false
	}
	c, ok := t.ClassRef().(*Class)
	return c, ok
}

// typeNameOf renders a best-effort type name for diagnostics; elements
// without an obvious Type (functions, namespaces) fall back to their
// simple name.
func typeNameOf(el Element) string {
	if el == nil {
		return "<unknown>"
	}
	if c, ok := classOf(el); ok {
		return c.InternalName()
	}
	return el.SimpleName()
}
