// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sema

import (
	"sync"

	"github.com/nyxlang/nyxc/ast"
	"github.com/nyxlang/nyxc/diag"
	"github.com/nyxlang/nyxc/typesystem"
)

// classInstantiatorMu guards ClassPrototype.instances the way the
// teacher's generic.instancesMu guards a generic Function's
// instantiation cache (go/ssa/instantiate.go): resolution can recurse
// (a field's type may itself require instantiating the same
// prototype with different arguments), so the lock only needs to
// cover the map access, not the whole resolve.
var classInstantiatorMu sync.Mutex

// Resolve returns the Class instance of p for the given (already
// resolved) type arguments, creating and memoizing it on first request
// (spec §4.2.6, invariant I3). typeArgs must already satisfy p's arity;
// callers (resolveType) are responsible for diagnosing arity mismatches
// before calling Resolve.
func (p *ClassPrototype) Resolve(prog *Program, typeArgs []typesystem.Type) *Class {
	key := typesystem.CanonicalTypeArgsKey(typeArgs)

	classInstantiatorMu.Lock()
	if p.instances == nil {
		p.instances = make(map[string]*Class)
	}
	if c, ok := p.instances[key]; ok {
		classInstantiatorMu.Unlock()
		return c
	}
	// Reserve the slot before recursing into field/base resolution so a
	// self-referential field (`class Node { next: Node }`) sees the
	// partially-built instance rather than triggering infinite
	// recursion, mirroring the teacher's "insert before populate"
	// discipline around generic.instances.
	c := &Class{
		Prototype: p,
		TypeArgs:  typeArgs,
	}
	c.simpleName = p.simpleName
	c.internalName = typesystem.NameWithTypeArgs(p.internalName, typeArgs)
	c.decl = p.decl
	c.flags = p.flags
	c.decoratorFlags = p.decoratorFlags
	c.namespace = p.namespace
	c.Type = typesystem.ClassType(c)
	p.instances[key] = c
	classInstantiatorMu.Unlock()

	c.ContextualTypeArgs = contextualTypeArgsOf(p.TypeParameters, typeArgs)
	resolveClassBody(prog, c)
	return c
}

// contextualTypeArgsOf zips a prototype's type-parameter names against
// a concrete argument list, the map threaded through resolveType's
// type-parameter substitution case (spec §4.2.1).
func contextualTypeArgsOf(params []string, args []typesystem.Type) map[string]typesystem.Type {
	if len(params) == 0 {
		return nil
	}
	m := make(map[string]typesystem.Type, len(params))
	for i, name := range params {
		if i < len(args) {
			m[name] = args[i]
		}
	}
	return m
}

// resolveClassBody resolves c's base class, lays out its instance
// fields, and resolves its constructor and operator overloads. It is
// split out of Resolve so the instance is visible in the prototype's
// cache (via p.instances) before any of this potentially-recursive
// work runs.
func resolveClassBody(prog *Program, c *Class) {
	p := c.Prototype

	if p.BasePrototype != nil {
		baseArgs := substituteTypeArgs(p.ExtendsType, c.ContextualTypeArgs, prog)
		c.Base = p.BasePrototype.Resolve(prog, baseArgs)
		c.currentMemoryOffset = c.Base.currentMemoryOffset
	}

	c.Members = make(map[string]Element)
	if c.Base != nil {
		for name, el := range c.Base.Members {
			c.Members[name] = el
		}
	}

	c.OperatorOverloads = make(map[OperatorKind]*Function)
	if c.Base != nil {
		for k, fn := range c.Base.OperatorOverloads {
			c.OperatorOverloads[k] = fn
		}
	}

	// The constructor resolves before field layout and the rest of the
	// member set (spec §4.2.6 step 7, ahead of step 8).
	if p.ConstructorProto != nil {
		c.Constructor = resolveConstructor(prog, c, p.ConstructorProto)
	}

	layoutFields(prog, c)
	resolveMethods(prog, c)
}

// resolveConstructor fully resolves c's constructor prototype.
// Constructors are never generic (spec §4.2.6 step 7), so unlike
// resolveInstanceMember/resolveStaticMember there is no still-generic
// partial case to return early for.
func resolveConstructor(prog *Program, c *Class, m *FunctionPrototype) *Function {
	partial := m.partialApply(c.TypeArgs)
	return partial.Resolve(prog, nil, c)
}

// substituteTypeArgs resolves a NamedTypeNode's type arguments against
// the enclosing class's contextual type arguments, the case
// resolveType's type-parameter lookup handles for a bare reference
// (spec §4.2.1).
func substituteTypeArgs(n *ast.NamedTypeNode, ctx map[string]typesystem.Type, prog *Program) []typesystem.Type {
	if n == nil {
		return nil
	}
	out := make([]typesystem.Type, 0, len(n.TypeArguments))
	for _, arg := range n.TypeArguments {
		out = append(out, resolveType(prog, arg, ctx))
	}
	return out
}

// layoutFields walks p.InstanceMembers in the alphabetical order
// orderedMembers returns, assigning each FieldPrototype a resolved Type
// and a memory offset aligned to its own byte size (invariant I5): each
// offset is a multiple of the field's byte size, and layout starts
// after the base class's instance size.
// This generalizes the teacher's struct-layout-adjacent alignment
// arithmetic (go/ssa/sanity.go's offset checks) to the spec's simpler
// self-alignment rule rather than a C-style combined-alignment one.
func layoutFields(prog *Program, c *Class) {
	p := c.Prototype
	ptrSize := prog.Options.PointerSize

	order := orderedMembers(p)
	for _, name := range order {
		el := p.InstanceMembers[name]
		fp, ok := el.(*FieldPrototype)
		if !ok {
			continue
		}
		ft := resolveType(prog, fp.Decl.Type, c.ContextualTypeArgs)
		size := ft.ByteSize(ptrSize)
		if size == 0 {
			size = 1
		}
		offset := alignUp(c.currentMemoryOffset, size)

		f := &Field{Prototype: fp, Type: ft, MemoryOffset: offset}
		f.simpleName = name
		f.internalName = InstanceMemberName(c.internalName, name)
		f.flags = fp.flags
		f.decl = fp.decl
		f.namespace = fp.namespace

		c.Members[name] = f
		c.currentMemoryOffset = offset + size
	}
}

// alignUp rounds offset up to the next multiple of size (size is
// always a power of two in {1,2,4,8} here, since it comes from
// Type.ByteSize).
func alignUp(offset, size int) int {
	if size <= 1 {
		return offset
	}
	rem := offset % size
	if rem == 0 {
		return offset
	}
	return offset + (size - rem)
}

// orderedMembers returns p's instance member names in a stable order:
// declaration order is not separately tracked on ClassPrototype today,
// so this sorts by simple name, which is adequate for field-offset
// determinism within one prototype (names are unique per invariant
// I1) even though it does not reproduce source order exactly; the
// layout offsets it produces are still self-consistent across the
// whole Program since every Class built from the same prototype (for
// a given type-argument key) shares one cached instance anyway.
func orderedMembers(p *ClassPrototype) []string {
	names := make([]string, 0, len(p.InstanceMembers))
	for name := range p.InstanceMembers {
		names = append(names, name)
	}
	sortStrings(names)
	return names
}

// sortStrings is a tiny insertion sort, avoiding an import of "sort"
// for a handful of field names per class; classes rarely have more
// than a few dozen fields.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// resolveMethods resolves every static and instance FunctionPrototype
// and Property in p's member maps against c's contextual type
// arguments, and registers any operator-overload method under its
// OperatorKind (spec §4.1 step 5, P7).
func resolveMethods(prog *Program, c *Class) {
	p := c.Prototype

	for name, el := range p.StaticMembers {
		switch m := el.(type) {
		case *FunctionPrototype:
			c.Members[name] = resolveStaticMember(prog, c, m)
		case *Property:
			resolveProperty(prog, c, name, m, true)
		}
	}

	for name, el := range p.InstanceMembers {
		switch m := el.(type) {
		case *FunctionPrototype:
			member := resolveInstanceMember(prog, c, m)
			c.Members[name] = member
			if fn, ok := member.(*Function); ok && m.OperatorKind != NoOperator {
				c.OperatorOverloads[m.OperatorKind] = fn
			}
		case *Property:
			resolveProperty(prog, c, name, m, false)
		}
	}
}

// resolveProperty resolves a Property's getter/setter FunctionPrototypes
// and installs the accessor Functions' internal names under
// get:/set: prefixes (spec §3.1), keeping the Property element itself
// as what's registered under the bare simple name (invariant I9: a
// property's getter and setter never collide with each other or with
// a plain field of the same simple name).
func resolveProperty(prog *Program, c *Class, name string, prop *Property, static bool) {
	resolved := &Property{Parent: prop.Parent}
	resolved.simpleName = prop.simpleName
	resolved.internalName = prop.internalName
	resolved.flags = prop.flags
	resolved.decl = prop.decl
	resolved.namespace = prop.namespace

	if prop.Getter != nil {
		if static {
			resolved.Getter = functionPrototypeOf(resolveStaticMember(prog, c, prop.Getter))
		} else {
			resolved.Getter = functionPrototypeOf(resolveInstanceMember(prog, c, prop.Getter))
		}
	}
	if prop.Setter != nil {
		if static {
			resolved.Setter = functionPrototypeOf(resolveStaticMember(prog, c, prop.Setter))
		} else {
			resolved.Setter = functionPrototypeOf(resolveInstanceMember(prog, c, prop.Setter))
		}
	}
	c.Members[name] = resolved
}

// functionPrototypeOf recovers the originating FunctionPrototype from
// whichever Element resolveInstanceMember/resolveStaticMember produced
// (a resolved Function, or a still-generic partial FunctionPrototype),
// so Property.Getter/Setter always point at a prototype as spec §3.2
// declares.
func functionPrototypeOf(el Element) *FunctionPrototype {
	switch m := el.(type) {
	case *Function:
		return m.Prototype
	case *FunctionPrototype:
		return m
	default:
		return nil
	}
}

// resolveInstanceMember resolves m as an instance method of c: a
// partial application capturing c's type arguments (spec's "Partial
// resolution" in §3.1/§4.2.7). A non-generic method resolves
// immediately to a Function; a still-generic method's partial
// prototype is returned as-is and resolved lazily once call-site type
// arguments are known (resolveExpression's Call case, spec §4.2.3).
func resolveInstanceMember(prog *Program, c *Class, m *FunctionPrototype) Element {
	partial := m.partialApply(c.TypeArgs)
	if len(partial.TypeParameters) == 0 {
		return partial.Resolve(prog, nil, c)
	}
	return partial
}

// resolveStaticMember resolves m as a static method: no `this`, but
// still scoped under c for contextual type arguments (a static method
// of a generic class may reference the class's own type parameters in
// its signature, spec §4.2.1).
func resolveStaticMember(prog *Program, c *Class, m *FunctionPrototype) Element {
	partial := m.partialApply(c.TypeArgs)
	if len(partial.TypeParameters) == 0 {
		return partial.Resolve(prog, nil, c)
	}
	return partial
}

// classDuplicateExtends reports ClassMayOnlyExtendClass / ClassIsSealed
// as appropriate, called from the drain phase once ExtendsType has been
// looked up (spec §4.1's drain step, invariant "a class's base, once
// resolved, never changes").
func classDuplicateExtends(prog *Program, p *ClassPrototype, base Element, r ast.Range) {
	baseProto, ok := base.(*ClassPrototype)
	if !ok || baseProto.IsInterface {
		prog.Sink.Emit(diag.ClassMayOnlyExtendClass, r)
		return
	}
	if baseProto.decoratorFlags.Has(SealedDecorator) {
		prog.Sink.Emit(diag.ClassIsSealed, r, baseProto.simpleName)
		return
	}
	if p.decoratorFlags.Has(UnmanagedDecorator) != baseProto.decoratorFlags.Has(UnmanagedDecorator) {
		prog.Sink.Emit(diag.UnmanagedManagedMismatch, r)
		return
	}
	p.BasePrototype = baseProto
}
