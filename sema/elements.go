// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sema is the semantic-analysis core: the Element Graph,
// Initializer, Resolver and Flow Tracker sub-components of the spec's
// Program aggregate.
package sema

import (
	"github.com/nyxlang/nyxc/ast"
	"github.com/nyxlang/nyxc/typesystem"
)

// ElementKind discriminates the tagged-union Element variants of
// spec §3.2. Dispatch is entirely by Kind at lookup sites; there are
// no virtual methods (see spec §9, "Tagged unions vs class hierarchy").
type ElementKind uint8

const (
	GlobalKind ElementKind = iota
	LocalKind
	EnumKind
	EnumValueKind
	FunctionPrototypeKind
	FunctionKind
	FunctionTargetKind
	ClassPrototypeKind
	ClassKind
	InterfacePrototypeKind
	InterfaceKind
	FieldPrototypeKind
	FieldKind
	PropertyKind
	NamespaceKind
)

func (k ElementKind) String() string {
	switch k {
	case GlobalKind:
		return "global"
	case LocalKind:
		return "local"
	case EnumKind:
		return "enum"
	case EnumValueKind:
		return "enum value"
	case FunctionPrototypeKind:
		return "function prototype"
	case FunctionKind:
		return "function"
	case FunctionTargetKind:
		return "function target"
	case ClassPrototypeKind:
		return "class prototype"
	case ClassKind:
		return "class"
	case InterfacePrototypeKind:
		return "interface prototype"
	case InterfaceKind:
		return "interface"
	case FieldPrototypeKind:
		return "field prototype"
	case FieldKind:
		return "field"
	case PropertyKind:
		return "property"
	case NamespaceKind:
		return "namespace"
	default:
		return "<invalid element kind>"
	}
}

// Element is implemented by every node of the Element Graph. All
// cross-references between elements are plain Go pointers: per spec
// §9 ("Ownership of the graph") these are conceptually weak handles —
// the Program's lookup tables are the only owners — but Go's garbage
// collector tolerates the resulting reference cycles natively, so no
// actual weak-pointer machinery is required.
type Element interface {
	SimpleName() string
	InternalName() string
	Flags() CommonFlags
	Kind() ElementKind
}

// CommonFlags is the bitset every element carries: declared modifiers
// copied straight from the AST, plus flags the core itself derives
// during initialization and resolution (spec §3.2).
type CommonFlags uint32

const (
	// Declared modifiers (mirror ast.DeclFlags 1:1).
	ImportFlag CommonFlags = 1 << iota
	ExportFlag
	DeclareFlag
	ConstFlag
	LetFlag
	StaticFlag
	ReadonlyFlag
	AbstractFlag
	PublicFlag
	PrivateFlag
	ProtectedFlag
	GetFlag
	SetFlag
	LazyFlag // @lazy global initialization (SPEC_FULL addition)

	// Derived.
	AmbientFlag
	GenericFlag
	GenericContextFlag
	InstanceFlag
	ConstructorFlag
	ArrowFlag
	ModuleExportFlag
	ModuleImportFlag
	BuiltinFlag
	CompiledFlag
	InlinedFlag
	ScopedFlag
	TrampolineFlag
)

func (f CommonFlags) Has(bit CommonFlags) bool { return f&bit != 0 }

// declaredFlagsFromAST copies the declared-modifier subset of
// ast.DeclFlags into a CommonFlags value; derived bits are added
// separately by the Initializer/Resolver as they're computed.
func declaredFlagsFromAST(f ast.DeclFlags) CommonFlags {
	var out CommonFlags
	set := func(astBit ast.DeclFlags, bit CommonFlags) {
		if f.Has(astBit) {
			out |= bit
		}
	}
	set(ast.FlagImport, ImportFlag)
	set(ast.FlagExport, ExportFlag)
	set(ast.FlagDeclare, DeclareFlag)
	set(ast.FlagConst, ConstFlag)
	set(ast.FlagLet, LetFlag)
	set(ast.FlagStatic, StaticFlag)
	set(ast.FlagReadonly, ReadonlyFlag)
	set(ast.FlagAbstract, AbstractFlag)
	set(ast.FlagPublic, PublicFlag)
	set(ast.FlagPrivate, PrivateFlag)
	set(ast.FlagProtected, ProtectedFlag)
	set(ast.FlagGet, GetFlag)
	set(ast.FlagSet, SetFlag)
	set(ast.FlagLazy, LazyFlag)
	return out
}

// DecoratorFlags is the bitset of recognized class/interface-level
// decorators (spec §3.2).
type DecoratorFlags uint8

const (
	GlobalDecorator DecoratorFlags = 1 << iota
	UnmanagedDecorator
	SealedDecorator
	InlineDecorator
)

func (f DecoratorFlags) Has(bit DecoratorFlags) bool { return f&bit != 0 }

// elementHeader is the shared header every concrete Element embeds:
// names, flags, the enclosing namespace (if any) and a retained AST
// reference for diagnostics (spec §3.5: "AST nodes ... are retained
// for diagnostics").
type elementHeader struct {
	simpleName     string
	internalName   string
	flags          CommonFlags
	decoratorFlags DecoratorFlags
	namespace      *Namespace // enclosing namespace, nil at file/global scope
	decl           ast.Node
}

func (h *elementHeader) SimpleName() string          { return h.simpleName }
func (h *elementHeader) InternalName() string         { return h.internalName }
func (h *elementHeader) Flags() CommonFlags            { return h.flags }
func (h *elementHeader) Decorators() DecoratorFlags    { return h.decoratorFlags }
func (h *elementHeader) Declaration() ast.Node         { return h.decl }

// OperatorKind identifies one overloadable operator (spec §3.1, §4.1
// step 5). Lookup of an overload walks the base chain (spec P7).
type OperatorKind uint8

const (
	NoOperator OperatorKind = iota
	IndexedGet              // []
	IndexedSet              // []=
	Add                     // +
	Sub                     // -
	Mul                     // *
	Div                     // /
	Rem                     // %
	Pow                     // **
	BitAnd                  // &
	BitOr                   // |
	BitXor                  // ^
	Eq                      // ==
	Ne                      // !=
	Gt                      // >
	Ge                      // >=
	Lt                      // <
	Le                      // <=
)

// operatorSymbols recognizes the exact symbol set spec §4.1 step 5 lists.
var operatorSymbols = map[string]OperatorKind{
	"[]": IndexedGet, "[]=": IndexedSet,
	"+": Add, "-": Sub, "*": Mul, "/": Div, "%": Rem, "**": Pow,
	"&": BitAnd, "|": BitOr, "^": BitXor,
	"==": Eq, "!=": Ne, ">": Gt, ">=": Ge, "<": Lt, "<=": Le,
}

// ExternalImport records an `@external("module","name")` decorator on
// an ambient function declaration (SPEC_FULL addition). It is metadata
// only: the core records it and exposes it to the emitter, nothing more.
type ExternalImport struct {
	Module string
	Name   string
}

// --- Global ---

// Global is a module-level variable. Its Type starts as the zero
// typesystem.Type ("unresolved") until the Resolver processes its
// declared or inferred type.
type Global struct {
	elementHeader
	Type          typesystem.Type
	Decl          *ast.VariableDeclarator
	ConstantValue any // non-nil for `const`/computed-constant globals
}

func (*Global) Kind() ElementKind { return GlobalKind }

// --- Local ---

// NativeKind buckets a Local by the native instruction-set type its
// slot holds, for the Flow Tracker's per-type temp free-lists (spec §4.3).
type NativeKind uint8

const (
	NativeI32 NativeKind = iota
	NativeI64
	NativeF32
	NativeF64
)

// NativeKindOf maps a resolved Type to the native slot type used for
// temp-local recycling.
func NativeKindOf(t typesystem.Type) NativeKind {
	switch t.Kind() {
	case typesystem.I64, typesystem.U64, typesystem.Isize, typesystem.Usize, typesystem.Class, typesystem.Function:
		// isize/usize/class/function are pointer-or-64-bit sized on the
		// reference 64-bit target this core assumes for native bucketing;
		// Options.PointerSize narrows isize/usize for byte layout but
		// bucketing temps only needs "fits in I32 or needs I64".
		if t.ByteSize(8) == 4 {
			return NativeI32
		}
		return NativeI64
	case typesystem.F32:
		return NativeF32
	case typesystem.F64:
		return NativeF64
	default:
		return NativeI32
	}
}

// Local is a function parameter, scoped local, or temp local.
type Local struct {
	elementHeader
	Type    typesystem.Type
	Slot    int
	Native  NativeKind
	Inlined bool // inlined locals are never recycled (spec §4.3)
}

func (*Local) Kind() ElementKind { return LocalKind }

// --- Enum / EnumValue ---

// Enum is a declared enum and its ordered members.
type Enum struct {
	elementHeader
	Decl   *ast.EnumDeclaration
	Values map[string]*EnumValue
	Order  []string // declaration order, needed for auto-increment
}

func (*Enum) Kind() ElementKind { return EnumKind }

// EnumValue is one member of an Enum.
type EnumValue struct {
	elementHeader
	Parent *Enum
	Value  *int64 // nil until computed
}

func (*EnumValue) Kind() ElementKind { return EnumValueKind }

// --- Function prototype / instance ---

// FunctionPrototype is an unresolved, generic-aware function or method.
// A partial-resolved prototype (spec "Partial resolution") captures an
// owning instance method's class type arguments while leaving its own
// function type parameters free; ClassTypeArguments is non-nil only
// for such partial prototypes.
type FunctionPrototype struct {
	elementHeader
	Decl               ast.Node // *ast.FunctionDeclaration or *ast.MethodDeclaration
	Signature          *ast.FunctionTypeNode
	TypeParameters     []string
	OwningClass        *ClassPrototype // nil for free functions
	OperatorKind       OperatorKind
	External           *ExternalImport
	ClassTypeArguments []typesystem.Type // non-nil => partial application

	instances map[string]*Function // keyed by canonicalized function type-arg string
}

func (*FunctionPrototype) Kind() ElementKind { return FunctionPrototypeKind }

// Function is the resolved instantiation of a FunctionPrototype.
type Function struct {
	elementHeader
	Prototype     *FunctionPrototype
	Signature     *typesystem.Signature
	TypeArguments []typesystem.Type
	Owner         Element // e.g. *Class for instance methods/constructors; nil otherwise

	Locals       []*Local
	localsByName map[string]*Local
	tempFree     [4][]*Local // one free-list per NativeKind
	nextSlot     int

	Root    *Flow // root Flow, created in FunctionPrototype.Resolve
	current *Flow // Flow Tracker's "current" branch context

	breakStack  []int // stack of allocated break/continue label ids
	nextBreakID int

	EmitRef any // opaque handle the emitter attaches post-resolution
}

func (*Function) Kind() ElementKind { return FunctionKind }

// FunctionTarget is a signature-only function reference used for
// indirect calls, cached on the Signature that produced it (spec §3.2,
// §4.2.3's "Call" case).
type FunctionTarget struct {
	elementHeader
	Signature *typesystem.Signature
}

func (*FunctionTarget) Kind() ElementKind { return FunctionTargetKind }

// --- Class / Interface prototype & instance ---

// ClassPrototype is an unresolved, generic-aware class or interface
// declaration. Interfaces share this Go type with classes per spec §3.2
// ("same shape ... with a distinguishing kind"); IsInterface picks the
// reported ElementKind.
type ClassPrototype struct {
	elementHeader
	Decl            ast.Node // *ast.ClassDeclaration or *ast.InterfaceDeclaration
	IsInterface     bool
	TypeParameters  []string
	ExtendsType     *ast.NamedTypeNode
	ImplementsTypes []*ast.NamedTypeNode

	BasePrototype *ClassPrototype   // resolved during the drain phase
	Implements    []*ClassPrototype // resolved during the drain phase

	InstanceMembers     map[string]Element // FieldPrototype | FunctionPrototype | Property
	StaticMembers       map[string]Element
	ConstructorProto    *FunctionPrototype
	OperatorPrototypes  map[OperatorKind]*FunctionPrototype

	instances map[string]*Class // keyed by CanonicalTypeArgsKey(classTypeArgs)
}

func (p *ClassPrototype) Kind() ElementKind {
	if p.IsInterface {
		return InterfacePrototypeKind
	}
	return ClassPrototypeKind
}

// Class is the resolved, monomorphized instantiation of a ClassPrototype.
type Class struct {
	elementHeader
	Prototype  *ClassPrototype
	TypeArgs   []typesystem.Type
	Type       typesystem.Type // ClassType(this), cached

	Base                *Class // resolved base class, nil for root classes
	ContextualTypeArgs  map[string]typesystem.Type

	Members           map[string]Element // inherited + own, by simple name
	Constructor       *Function
	OperatorOverloads map[OperatorKind]*Function

	currentMemoryOffset int // advances during field layout; final value is the instance size
}

func (c *Class) Kind() ElementKind {
	if c.Prototype != nil && c.Prototype.IsInterface {
		return InterfaceKind
	}
	return ClassKind
}

// TypeInternalName implements typesystem.ClassLike.
func (c *Class) TypeInternalName() string { return c.InternalName() }

// InstanceSize implements typesystem.ClassLike.
func (c *Class) InstanceSize() int { return c.currentMemoryOffset }

// LookupOverload walks the base chain for operator kind k and returns
// the lowest-depth definition, or nil (spec P7).
func (c *Class) LookupOverload(k OperatorKind) *Function {
	for cur := c; cur != nil; cur = cur.Base {
		if fn, ok := cur.OperatorOverloads[k]; ok {
			return fn
		}
	}
	return nil
}

// IsAssignableTo reports whether c is target or a (transitive) subclass
// of target, the exposed emitter-facing predicate from spec §6.3.
func (c *Class) IsAssignableTo(target *Class) bool {
	for cur := c; cur != nil; cur = cur.Base {
		if cur == target {
			return true
		}
	}
	return false
}

// --- Field ---

// FieldPrototype is an unresolved field declaration.
type FieldPrototype struct {
	elementHeader
	Decl   *ast.FieldDeclaration
	Parent *ClassPrototype
}

func (*FieldPrototype) Kind() ElementKind { return FieldPrototypeKind }

// Field is a resolved, laid-out instance field.
type Field struct {
	elementHeader
	Prototype    *FieldPrototype
	Type         typesystem.Type
	MemoryOffset int
}

func (*Field) Kind() ElementKind { return FieldKind }

// --- Property ---

// Property joins a getter and/or setter under one element keyed by the
// property's simple name (spec §4.1 step 4, invariant I9).
type Property struct {
	elementHeader
	Parent *ClassPrototype
	Getter *FunctionPrototype
	Setter *FunctionPrototype
}

func (*Property) Kind() ElementKind { return PropertyKind }

// --- Namespace ---

// Namespace supports declaration merging: repeated `namespace N { ... }`
// blocks in the same or different files combine into one element with
// unioned members (spec §4.1 step 6).
type Namespace struct {
	elementHeader
	Decls   []*ast.NamespaceDeclaration
	Members map[string]Element

	sawFirst     bool
	firstExported bool
}

func (*Namespace) Kind() ElementKind { return NamespaceKind }
