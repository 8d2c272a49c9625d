// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sema

import (
	"github.com/nyxlang/nyxc/ast"
	"github.com/nyxlang/nyxc/diag"
)

// drainQueues runs the post-initialization drain phase (spec §4.1
// steps 6-8 and its "drain" note): resolves queued imports, queued
// exports (including re-export chains), queued `extends` clauses, the
// configured global aliases, and the well-known prototypes the
// Resolver assumes are present (Array, ArrayBufferView, String). It is
// idempotent-by-construction: each queue is drained to empty and
// Initialize appends to the same queues on subsequent calls, so a
// second Initialize naturally only drains what it just queued.
func (p *Program) drainQueues() {
	p.drainExtends()
	p.drainImplements()
	p.drainImports()
	p.drainExports()
	p.drainGlobalAliases()
	p.resolveWellKnown()
}

// drainExtends resolves each queued ClassPrototype's ExtendsType
// against the Element Graph, enforcing ClassMayOnlyExtendClass /
// ClassIsSealed (spec §4.1's drain step).
func (p *Program) drainExtends() {
	for _, proto := range p.queuedExtends {
		name := proto.ExtendsType.Name
		base := p.resolveImportAwareName(proto.namespace, name)
		if base == nil {
			p.Sink.Emit(diag.CannotFindName, proto.ExtendsType.R, name)
			continue
		}
		classDuplicateExtends(p, proto, base, proto.ExtendsType.R)
	}
	p.queuedExtends = nil
}

// drainImplements resolves each queued ClassPrototype's ImplementsTypes
// against the Element Graph (spec §4.1's drain step) and enforces
// invariant I6's "unmanaged classes may not implement interfaces"
// half; the managed/unmanaged extends-mismatch half is enforced
// alongside ExtendsType resolution, in classDuplicateExtends.
func (p *Program) drainImplements() {
	for _, proto := range p.queuedImplements {
		var resolved []*ClassPrototype
		for _, ref := range proto.ImplementsTypes {
			base := p.resolveImportAwareName(proto.namespace, ref.Name)
			if base == nil {
				p.Sink.Emit(diag.CannotFindName, ref.R, ref.Name)
				continue
			}
			ifaceProto, ok := base.(*ClassPrototype)
			if !ok || !ifaceProto.IsInterface {
				continue
			}
			resolved = append(resolved, ifaceProto)
		}
		proto.Implements = resolved
		if !proto.IsInterface && proto.decoratorFlags.Has(UnmanagedDecorator) && len(resolved) > 0 {
			p.Sink.Emit(diag.UnmanagedCannotImplementInterfaces, proto.ImplementsTypes[0].R)
		}
	}
	p.queuedImplements = nil
}

// resolveImportAwareName looks up name first against ns's members (if
// ns is non-nil), then the Element Graph's global table, the shape
// every reference to a type/value name in this core eventually uses.
func (p *Program) resolveImportAwareName(ns *Namespace, name string) Element {
	if ns != nil {
		if el, ok := ns.Members[name]; ok {
			return el
		}
	}
	return p.Lookup(name)
}

// drainImports resolves each queued import's referencedName against
// fileLevelExports (trying the "/index" equivalence alternative on a
// miss, spec §4.1 step 7 / §6.3), then binds it under localName.
func (p *Program) drainImports() {
	for _, qi := range p.queuedImports {
		el := p.resolveImportTarget(qi.referencedName)
		if el == nil {
			mod, name := splitLastSlash(qi.referencedName)
			p.Sink.Emit(diag.ModuleHasNoExportedMember, qi.r, mod, name)
			continue
		}
		p.elementsLookup[qi.localName] = el
	}
	p.queuedImports = nil
}

// resolveImportTarget splits a queued "path/externalName" reference
// into its module path and export name, tries the file-level export
// table for that path, and on a miss retries with the path's
// "/index" equivalent form, then with the exports still queued for
// either form (following their re-export chains).
func (p *Program) resolveImportTarget(referenced string) Element {
	path, name := splitLastSlash(referenced)
	if el := p.lookupFileExport(path, name); el != nil {
		return el
	}
	if alt, ok := IndexEquivalent(path); ok {
		if el := p.lookupFileExport(alt, name); el != nil {
			return el
		}
	}
	alt, _ := IndexEquivalent(path)
	for _, qe := range p.queuedExports {
		if qe.externalName == name && (qe.sourcePath == path || qe.sourcePath == alt) {
			if el := p.tryResolveExport(qe, make(map[*queuedExport]bool)); el != nil {
				return el
			}
		}
	}
	return nil
}

func (p *Program) lookupFileExport(path, name string) Element {
	m, ok := p.fileLevelExports[path]
	if !ok {
		return nil
	}
	return m[name]
}

func splitLastSlash(s string) (dir, base string) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return s[:i], s[i+1:]
		}
	}
	return "", s
}

// drainExports resolves each queued export, following re-export chains
// (referencedPath != "") through tryResolveExport until a concrete
// element is found or the chain dead-ends, per spec §4.1 step 8.
func (p *Program) drainExports() {
	for _, qe := range p.queuedExports {
		el := p.tryResolveExport(qe, make(map[*queuedExport]bool))
		if el == nil {
			modName := qe.referencedPath
			if modName == "" {
				modName = qe.sourcePath
			}
			p.Sink.Emit(diag.ModuleHasNoExportedMember, qe.r, modName, qe.localName)
			continue
		}
		p.defineFileExport(qe.sourcePath, qe.externalName, el, qe.r)
		if qe.isEntry {
			p.defineModuleExport(qe.externalName, el, qe.r)
		}
	}
	p.queuedExports = nil
}

// tryResolveExport resolves one queued export to a concrete Element,
// recursing through re-export chains. seen guards against an export
// cycle (`export {x} from "./a"` / `"./a"` re-exporting back)
// resolving into infinite recursion; a cycle resolves to nil, which
// surfaces as ModuleHasNoExportedMember at the originating site.
func (p *Program) tryResolveExport(qe *queuedExport, seen map[*queuedExport]bool) Element {
	if seen[qe] {
		return nil
	}
	seen[qe] = true

	if qe.referencedPath == "" {
		return p.Lookup(FileLevelName(qe.sourcePath, qe.localName))
	}

	if el := p.lookupFileExport(qe.referencedPath, qe.localName); el != nil {
		return el
	}
	if alt, ok := IndexEquivalent(qe.referencedPath); ok {
		if el := p.lookupFileExport(alt, qe.localName); el != nil {
			return el
		}
	}
	alt, _ := IndexEquivalent(qe.referencedPath)
	for _, next := range p.queuedExports {
		if next.externalName == qe.localName && (next.sourcePath == qe.referencedPath || next.sourcePath == alt) {
			if el := p.tryResolveExport(next, seen); el != nil {
				return el
			}
		}
	}
	return nil
}

// drainGlobalAliases binds each configured alias name to its target
// global's existing Element, per Options.GlobalAliases (spec §4.1's
// drain phase, generalized from the teacher's nothing-quite-like-this
// but modeled the same way as drainImports: late-binding by name).
func (p *Program) drainGlobalAliases() {
	for alias, target := range p.Options.GlobalAliases {
		if el := p.Lookup(target); el != nil {
			p.elementsLookup[alias] = el
		}
	}
}

// resolveWellKnown locates the Array, ArrayBufferView, and String
// prototypes the Resolver assumes are present once the standard
// library has been initialized (spec §4.4's "well-known types").
// Absence is not an error here: a Program built over a partial or
// test fixture legitimately may not define them, and callers that need
// them (e.g. string-literal resolution) check for nil.
func (p *Program) resolveWellKnown() {
	if el := p.Lookup(LibRoot + "array/Array"); el != nil {
		p.wellKnown.array, _ = el.(*ClassPrototype)
	}
	if el := p.Lookup(LibRoot + "arraybuffer/ArrayBufferView"); el != nil {
		p.wellKnown.arrayBufferView, _ = el.(*ClassPrototype)
	}
	if el := p.Lookup(LibRoot + "string/String"); el != nil {
		p.wellKnown.stringProto, _ = el.(*ClassPrototype)
		if p.wellKnown.stringProto != nil {
			p.wellKnown.stringClass = p.wellKnown.stringProto.Resolve(p, nil)
			if !p.Table.Define("string", p.wellKnown.stringClass.Type) {
				var r ast.Range
				if d := p.wellKnown.stringProto.Declaration(); d != nil {
					r = d.Range()
				}
				p.Sink.Emit(diag.DuplicateIdentifier, r, "string")
			}
		}
	}
}
