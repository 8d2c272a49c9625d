// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sema

import (
	"strconv"

	"github.com/nyxlang/nyxc/ast"
	"github.com/nyxlang/nyxc/diag"
	"github.com/nyxlang/nyxc/typesystem"
)

// FlowFlags is the per-branch bitset of control-flow facts the Flow
// Tracker maintains (spec §4.3).
type FlowFlags uint32

const (
	Returns FlowFlags = 1 << iota
	ReturnsConditional
	Throws
	ThrowsConditional
	Breaks
	BreaksConditional
	Continues
	ContinuesConditional
	Allocates
	AllocatesConditional
	InlineContext
)

// conditionalOf maps an unconditional flag to its conditional
// counterpart, used when folding a child's flags into its parent
// (spec §4.3's leaveBranchOrScope: "unconditional X in child becomes
// conditional X in parent").
var conditionalOf = map[FlowFlags]FlowFlags{
	Returns:   ReturnsConditional,
	Throws:    ThrowsConditional,
	Breaks:    BreaksConditional,
	Continues: ContinuesConditional,
	Allocates: AllocatesConditional,
}

// Flow is one node in a Function's tree of branch contexts (spec §4.3,
// "Flow: a node in the per-function control-flow tree").
type Flow struct {
	parent *Flow
	fn     *Function
	flags  FlowFlags

	continueLabel int // -1 if this flow is not a loop/switch target
	breakLabel    int
	returnLabel   int

	returnType         typesystem.Type
	contextualTypeArgs map[string]typesystem.Type

	scopedLocals map[string]*Local
	scopedThis   Element // non-nil only in an INLINE_CONTEXT flow that scoped `this`
}

// newRootFlow creates fn's root Flow (spec §4.2.7 step 7).
func newRootFlow(fn *Function, returnType typesystem.Type, contextualTypeArgs map[string]typesystem.Type) *Flow {
	return &Flow{
		fn:                 fn,
		continueLabel:      -1,
		breakLabel:         -1,
		returnLabel:        -1,
		returnType:         returnType,
		contextualTypeArgs: contextualTypeArgs,
	}
}

// Has reports whether flag is set on f.
func (f *Flow) Has(flag FlowFlags) bool { return f.flags&flag != 0 }

// Set adds flag to f's flags.
func (f *Flow) Set(flag FlowFlags) { f.flags |= flag }

// ContextualTypeArguments returns the name->Type map in scope at this
// point of resolution (spec §9, "Contextual type arguments").
func (f *Flow) ContextualTypeArguments() map[string]typesystem.Type { return f.contextualTypeArgs }

// ReturnType is the enclosing function's resolved return type.
func (f *Flow) ReturnType() typesystem.Type { return f.returnType }

// GetScopedLocal walks the parent chain, then the function's main
// locals map, per spec §4.3.
func (f *Flow) GetScopedLocal(name string) *Local {
	for cur := f; cur != nil; cur = cur.parent {
		if cur.scopedLocals != nil {
			if l, ok := cur.scopedLocals[name]; ok {
				return l
			}
		}
	}
	if f.fn != nil {
		return f.fn.localsByName[name]
	}
	return nil
}

// AddScopedLocal allocates a temp local of the given type from fn's
// temp free-list and binds it to name in the current scope. A
// duplicate name in the same scope reports DuplicateIdentifier and
// returns the existing Local (spec §4.3).
func (f *Flow) AddScopedLocal(p *Program, name string, t typesystem.Type, r ast.Range) *Local {
	if f.scopedLocals == nil {
		f.scopedLocals = make(map[string]*Local)
	}
	if existing, ok := f.scopedLocals[name]; ok {
		p.Sink.Emit(diag.DuplicateIdentifier, r, name)
		return existing
	}
	l := f.fn.GetTempLocal(t)
	l.simpleName = name
	f.scopedLocals[name] = l
	return l
}

// EnterBranchOrScope creates a child Flow that copies the parent's
// flags (child modifications do not propagate to the parent until
// LeaveBranchOrScope folds them back), pushes it as fn's current flow,
// and returns it. Exposed via Function.EnterBranchOrScope (spec §6.3).
func (fn *Function) EnterBranchOrScope() *Flow {
	parent := fn.current
	child := &Flow{
		parent:             parent,
		fn:                 fn,
		flags:              parent.flags,
		continueLabel:      parent.continueLabel,
		breakLabel:         parent.breakLabel,
		returnLabel:        parent.returnLabel,
		returnType:         parent.returnType,
		contextualTypeArgs: parent.contextualTypeArgs,
	}
	fn.current = child
	return child
}

// LeaveBranchOrScope frees every scoped local in the current flow
// (returning each to fn's free-list for its native type), folds
// applicable flags up into the parent (unconditional becomes
// conditional; BREAKS/CONTINUES only fold when the child's label
// matches the parent's, otherwise the jump escapes this frame), and
// pops back to the parent. Exposed via Function.LeaveBranchOrScope
// (spec §6.3 as part of the Flow Tracker contract).
func (fn *Function) LeaveBranchOrScope() {
	child := fn.current
	if child == nil || child.parent == nil {
		return
	}
	parent := child.parent

	for _, l := range child.scopedLocals {
		if !l.Inlined {
			fn.FreeTempLocal(l)
		}
	}

	for flag, cond := range conditionalOf {
		if child.flags&flag != 0 {
			switch flag {
			case Breaks, Continues:
				label := child.breakLabel
				if flag == Continues {
					label = child.continueLabel
				}
				parentLabel := parent.breakLabel
				if flag == Continues {
					parentLabel = parent.continueLabel
				}
				if label == parentLabel {
					parent.flags |= flag
				} else {
					parent.flags |= cond
				}
			default:
				parent.flags |= cond
			}
		} else if child.flags&cond != 0 {
			parent.flags |= cond
		}
	}

	fn.current = parent
}

// --- Function-level temp locals & break/continue label stack (spec §4.3) ---

// GetTempLocal pops a free temp local of t's native bucket, or
// allocates a new one, per spec §4.3/§6.3.
func (fn *Function) GetTempLocal(t typesystem.Type) *Local {
	nk := NativeKindOf(t)
	bucket := fn.tempFree[nk]
	if n := len(bucket); n > 0 {
		l := bucket[n-1]
		fn.tempFree[nk] = bucket[:n-1]
		l.Type = t
		return l
	}
	l := &Local{Type: t, Native: nk, Slot: fn.nextSlot}
	fn.nextSlot++
	fn.Locals = append(fn.Locals, l)
	return l
}

// FreeTempLocal returns l to fn's free-list for its native type.
// Inlined locals are never recycled (spec §4.3).
func (fn *Function) FreeTempLocal(l *Local) {
	if l.Inlined {
		return
	}
	fn.tempFree[l.Native] = append(fn.tempFree[l.Native], l)
}

// EnterBreakContext allocates a new break/continue label id and pushes
// it; labels are decimal strings of the id (spec §9, "matches the
// target IR's label discipline").
func (fn *Function) EnterBreakContext() string {
	id := fn.nextBreakID
	fn.nextBreakID++
	fn.breakStack = append(fn.breakStack, id)
	return strconv.Itoa(id)
}

// LeaveBreakContext pops the innermost break/continue label.
func (fn *Function) LeaveBreakContext() {
	if n := len(fn.breakStack); n > 0 {
		fn.breakStack = fn.breakStack[:n-1]
	}
}

// AddLocal appends a new named Local (parameter or declared local) to
// fn, assigning it the next slot index.
func (fn *Function) AddLocal(name string, t typesystem.Type) *Local {
	l := &Local{Type: t, Native: NativeKindOf(t), Slot: fn.nextSlot}
	l.simpleName = name
	fn.nextSlot++
	fn.Locals = append(fn.Locals, l)
	if fn.localsByName == nil {
		fn.localsByName = make(map[string]*Local)
	}
	fn.localsByName[name] = l
	return l
}

// Finalize is a no-op hook exposed per spec §6.3 for the emitter to
// call once it has finished consuming fn; the core holds no emit-time
// state of its own beyond the opaque EmitRef.
func (fn *Function) Finalize(ref any) { fn.EmitRef = ref }
