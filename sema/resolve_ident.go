// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sema

import (
	"github.com/nyxlang/nyxc/ast"
	"github.com/nyxlang/nyxc/diag"
)

// resolveIdentifier resolves a bare name reference from inside fn's
// body at the given Flow: scoped/function locals first, then (inside a
// method) the owning class's members, then the Program's global lookup
// table under the bare name. Enclosing namespaces and the current
// source's file scope are not searched. It never returns nil; an unresolved name reports
// CannotFindName and resolves to a synthetic error element so callers
// can keep traversing without a nil check at every use site.
func resolveIdentifier(prog *Program, fn *Function, flow *Flow, e *ast.IdentifierExpression) Element {
	if flow != nil {
		if l := flow.GetScopedLocal(e.Name); l != nil {
			return l
		}
	}
	if fn != nil {
		if l := fn.localsByName[e.Name]; l != nil {
			return l
		}
		if fn.Owner != nil {
			if c, ok := fn.Owner.(*Class); ok {
				if member, ok := c.Members[e.Name]; ok {
					return member
				}
			}
		}
	}
	if el := prog.Lookup(e.Name); el != nil {
		return el
	}
	prog.Sink.Emit(diag.CannotFindName, e.R, e.Name)
	return errorElement(e.Name, e.R)
}

// errorIdentifier is the sentinel Element resolution falls back to on
// an unresolved name, so downstream member/call resolution can
// silently no-op (it has no members, no signature) rather than the
// core needing a nil check at every resolution call site.
type errorIdentifier struct {
	elementHeader
}

func (*errorIdentifier) Kind() ElementKind { return GlobalKind }

func errorElement(name string, r ast.Range) Element {
	e := &errorIdentifier{}
	e.simpleName = name
	e.internalName = name
	e.decl = rangeNode(r)
	return e
}

// rangeNode adapts a bare ast.Range to ast.Node for elementHeader.decl,
// which wants a Node; the error sentinel has no real declaration.
type rangeNode ast.Range

func (r rangeNode) Range() ast.Range { return ast.Range(r) }
