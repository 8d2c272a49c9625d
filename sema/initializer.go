// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sema

import (
	"github.com/nyxlang/nyxc/ast"
	"github.com/nyxlang/nyxc/diag"
)

// Initialize runs the one-pass population step (spec §4.1): every
// source's top-level statements are walked once, registering a
// FunctionPrototype/ClassPrototype/Global/Enum/Namespace element per
// declaration in the Element Graph, and queuing imports/exports/
// extends clauses for the drain phase that follows (drainQueues,
// worklist.go). Initialize may be called multiple times with
// different sources appended to the same Program; the queues and the
// Element Graph accumulate across calls, matching an incremental
// compiler driver's typical usage (spec §6.3's "Program.initialize can
// be called more than once").
func (p *Program) Initialize(sources []*ast.Source) {
	for _, src := range sources {
		p.sources[src.Path] = src
		p.sourceOrder = append(p.sourceOrder, src.Path)
	}
	for _, src := range sources {
		p.initSource(src)
	}
	p.drainQueues()
}

// initSource walks one source's top-level statements, dispatching by
// concrete AST type the way the teacher's SSA builder dispatches over
// ast.Stmt (go/ssa/builder.go), generalized here to declaration
// registration rather than instruction emission.
func (p *Program) initSource(src *ast.Source) {
	for _, stmt := range src.Statements {
		p.initTopLevelStatement(src, nil, stmt)
	}
}

// initTopLevelStatement registers one top- or namespace-level
// declaration. ns is the enclosing Namespace element, or nil at file
// scope.
func (p *Program) initTopLevelStatement(src *ast.Source, ns *Namespace, stmt ast.Statement) {
	switch d := stmt.(type) {
	case *ast.ClassDeclaration:
		p.initClass(src, ns, d)
	case *ast.InterfaceDeclaration:
		p.initInterface(src, ns, d)
	case *ast.FunctionDeclaration:
		p.initFunction(src, ns, d)
	case *ast.EnumDeclaration:
		p.initEnum(src, ns, d)
	case *ast.NamespaceDeclaration:
		p.initNamespace(src, ns, d)
	case *ast.VariableStatement:
		p.initGlobals(src, ns, d)
	case *ast.TypeDeclaration:
		p.initTypeAlias(src, ns, d)
	case *ast.ImportStatement:
		p.queueImports(src, d)
	case *ast.ExportStatement:
		p.queueExports(src, ns, d)
	default:
		// Bare expression statements etc. are not legal at file/
		// namespace scope; the parser is assumed to reject them before
		// the core ever sees this source.
	}
}

// scopedName returns simpleName's file-level internal name, or its
// namespace-inner name when ns is non-nil.
func scopedName(src *ast.Source, ns *Namespace, simpleName string) string {
	if ns != nil {
		return InnerName(ns.InternalName(), simpleName)
	}
	return FileLevelName(src.Path, simpleName)
}

func (p *Program) initClass(src *ast.Source, ns *Namespace, d *ast.ClassDeclaration) {
	name := scopedName(src, ns, d.Name)
	if !CheckIdentifier(p, d.Name, d.R) {
		return
	}
	proto := &ClassPrototype{
		Decl:            d,
		TypeParameters:  typeParamNames(d.TypeParameters),
		ExtendsType:     d.ExtendsType,
		ImplementsTypes: d.ImplementsTypes,
		InstanceMembers: make(map[string]Element),
		StaticMembers:   make(map[string]Element),
	}
	proto.simpleName = d.Name
	proto.internalName = name
	proto.flags = declaredFlagsFromAST(d.Flags) | classDerivedFlags(d.TypeParameters)
	proto.decoratorFlags = p.decoratorFlagsOf(d.Decorators, GlobalDecorator|SealedDecorator|UnmanagedDecorator)
	proto.namespace = ns
	proto.decl = d

	if !p.define(name, proto, d.R) {
		return
	}
	p.registerExportOrPromote(src, ns, d.Name, name, proto, d.Flags, d.R)

	p.initClassMembers(proto, d.Members)
	if d.ExtendsType != nil {
		p.queuedExtends = append(p.queuedExtends, proto)
	}
	if len(d.ImplementsTypes) > 0 {
		p.queuedImplements = append(p.queuedImplements, proto)
	}
}

func (p *Program) initInterface(src *ast.Source, ns *Namespace, d *ast.InterfaceDeclaration) {
	name := scopedName(src, ns, d.Name)
	if !CheckIdentifier(p, d.Name, d.R) {
		return
	}
	proto := &ClassPrototype{
		Decl:            d,
		IsInterface:     true,
		TypeParameters:  typeParamNames(d.TypeParameters),
		ImplementsTypes: d.ImplementsTypes,
		InstanceMembers: make(map[string]Element),
		StaticMembers:   make(map[string]Element),
	}
	proto.simpleName = d.Name
	proto.internalName = name
	proto.flags = declaredFlagsFromAST(d.Flags) | classDerivedFlags(d.TypeParameters)
	proto.decoratorFlags = p.decoratorFlagsOf(d.Decorators, GlobalDecorator)
	proto.namespace = ns
	proto.decl = d

	if !p.define(name, proto, d.R) {
		return
	}
	p.registerExportOrPromote(src, ns, d.Name, name, proto, d.Flags, d.R)
	p.initClassMembers(proto, d.Members)
	if len(d.ImplementsTypes) > 0 {
		p.queuedImplements = append(p.queuedImplements, proto)
	}
}

// initClassMembers registers each field/method declaration of a class
// or interface body into its prototype's instance/static member maps,
// merging getter/setter pairs into one Property (spec §4.1 step 4,
// invariant I9), and recording the constructor and any operator
// overload separately.
func (p *Program) initClassMembers(proto *ClassPrototype, members []ast.Statement) {
	for _, m := range members {
		switch md := m.(type) {
		case *ast.FieldDeclaration:
			p.initField(proto, md)
		case *ast.MethodDeclaration:
			p.initMethod(proto, md)
		}
	}
}

func (p *Program) initField(proto *ClassPrototype, d *ast.FieldDeclaration) {
	if !CheckIdentifier(p, d.Name, d.R) {
		return
	}
	fp := &FieldPrototype{Decl: d, Parent: proto}
	fp.simpleName = d.Name
	fp.flags = declaredFlagsFromAST(d.Flags)
	fp.decl = d
	fp.namespace = proto.namespace

	members := proto.InstanceMembers
	if d.Flags.Has(ast.FlagStatic) {
		members = proto.StaticMembers
		fp.internalName = StaticMemberName(proto.internalName, d.Name)
	} else {
		fp.internalName = InstanceMemberName(proto.internalName, d.Name)
	}
	if _, exists := members[d.Name]; exists {
		p.Sink.Emit(diag.DuplicateIdentifier, d.R, d.Name)
		return
	}
	members[d.Name] = fp
}

func (p *Program) initMethod(proto *ClassPrototype, d *ast.MethodDeclaration) {
	if !CheckIdentifier(p, d.Name, d.R) {
		return
	}
	fp := &FunctionPrototype{
		Decl:           d,
		Signature:      d.Signature,
		TypeParameters: typeParamNames(d.TypeParameters),
		OwningClass:    proto,
	}
	fp.simpleName = d.Name
	fp.flags = declaredFlagsFromAST(d.Flags) | methodDerivedFlags(d)
	fp.decoratorFlags = p.decoratorFlagsOf(d.Decorators, InlineDecorator)
	fp.decl = d
	fp.namespace = proto.namespace

	if sym, ok := operatorSymbolOf(d.Decorators); ok {
		fp.OperatorKind = sym
		if proto.OperatorPrototypes == nil {
			proto.OperatorPrototypes = make(map[OperatorKind]*FunctionPrototype)
		}
		if _, dup := proto.OperatorPrototypes[sym]; dup {
			p.Sink.Emit(diag.DuplicateFunctionImplementation, d.R)
			return
		}
		proto.OperatorPrototypes[sym] = fp
	}

	if d.Flags.Has(ast.FlagConstructor) {
		fp.internalName = InstanceMemberName(proto.internalName, "constructor")
		if proto.ConstructorProto != nil {
			p.Sink.Emit(diag.MultipleConstructorImplementations, d.R)
			return
		}
		proto.ConstructorProto = fp
		return
	}

	members := proto.InstanceMembers
	if d.Flags.Has(ast.FlagStatic) {
		members = proto.StaticMembers
		fp.internalName = StaticMemberName(proto.internalName, d.Name)
	} else {
		fp.internalName = InstanceMemberName(proto.internalName, d.Name)
	}

	if d.Flags.Has(ast.FlagGet) || d.Flags.Has(ast.FlagSet) {
		mergeAccessorIntoProperty(p, proto, members, d.Name, fp, d)
		return
	}

	if _, exists := members[d.Name]; exists {
		p.Sink.Emit(diag.DuplicateFunctionImplementation, d.R)
		return
	}
	members[d.Name] = fp
}

// mergeAccessorIntoProperty implements invariant I9: a getter and a
// setter of the same simple name merge into one Property; two getters
// (or two setters) of the same name report DuplicateFunctionImplementation.
func mergeAccessorIntoProperty(p *Program, proto *ClassPrototype, members map[string]Element, name string, fp *FunctionPrototype, d *ast.MethodDeclaration) {
	existing, ok := members[name]
	var prop *Property
	if ok {
		prop, ok = existing.(*Property)
		if !ok {
			p.Sink.Emit(diag.DuplicateFunctionImplementation, d.R)
			return
		}
	} else {
		prop = &Property{Parent: proto}
		prop.simpleName = name
		prop.internalName = StaticMemberName(proto.internalName, name)
		prop.namespace = proto.namespace
		prop.flags = fp.flags
		members[name] = prop
	}
	if d.Flags.Has(ast.FlagGet) {
		if prop.Getter != nil {
			p.Sink.Emit(diag.DuplicateFunctionImplementation, d.R)
			return
		}
		fp.internalName = GetterName(fp.internalName)
		prop.Getter = fp
	} else {
		if prop.Setter != nil {
			p.Sink.Emit(diag.DuplicateFunctionImplementation, d.R)
			return
		}
		fp.internalName = SetterName(fp.internalName)
		prop.Setter = fp
	}
}

func (p *Program) initFunction(src *ast.Source, ns *Namespace, d *ast.FunctionDeclaration) {
	name := scopedName(src, ns, d.Name)
	if !CheckIdentifier(p, d.Name, d.R) {
		return
	}
	fp := &FunctionPrototype{
		Decl:           d,
		Signature:      d.Signature,
		TypeParameters: typeParamNames(d.TypeParameters),
		External:       externalImportOf(d.Decorators),
	}
	fp.simpleName = d.Name
	fp.internalName = name
	fp.flags = declaredFlagsFromAST(d.Flags)
	fp.decoratorFlags = p.decoratorFlagsOf(d.Decorators, GlobalDecorator|InlineDecorator)
	fp.namespace = ns
	fp.decl = d

	if !p.define(name, fp, d.R) {
		return
	}
	p.registerExportOrPromote(src, ns, d.Name, name, fp, d.Flags, d.R)
}

func (p *Program) initEnum(src *ast.Source, ns *Namespace, d *ast.EnumDeclaration) {
	name := scopedName(src, ns, d.Name)
	if !CheckIdentifier(p, d.Name, d.R) {
		return
	}
	e := &Enum{Decl: d, Values: make(map[string]*EnumValue)}
	e.simpleName = d.Name
	e.internalName = name
	e.flags = declaredFlagsFromAST(d.Flags)
	e.namespace = ns
	e.decl = d

	if !p.define(name, e, d.R) {
		return
	}
	p.registerExportOrPromote(src, ns, d.Name, name, e, d.Flags, d.R)

	for _, vd := range d.Values {
		if _, exists := e.Values[vd.Name]; exists {
			p.Sink.Emit(diag.DuplicateIdentifier, vd.R, vd.Name)
			continue
		}
		ev := &EnumValue{Parent: e}
		ev.simpleName = vd.Name
		ev.internalName = StaticMemberName(name, vd.Name)
		ev.namespace = ns
		ev.decl = vd
		e.Values[vd.Name] = ev
		e.Order = append(e.Order, vd.Name)
	}
	assignEnumValues(e, d)
}

// assignEnumValues computes each member's integer value in declaration
// order (Enum.Order): an explicit initializer folds as a constant, and
// a member without one takes the previous member's value + 1 (0 for
// the first), the auto-increment default spec §3.2's "optional integer
// value" implies but never states outright.
func assignEnumValues(e *Enum, d *ast.EnumDeclaration) {
	initializers := make(map[string]ast.Expression, len(d.Values))
	for _, vd := range d.Values {
		initializers[vd.Name] = vd.Initializer
	}
	var next int64
	for _, name := range e.Order {
		value := next
		if init := initializers[name]; init != nil {
			if v, ok := evalEnumInitializer(init); ok {
				value = v
			}
		}
		e.Values[name].Value = &value
		next = value + 1
	}
}

// evalEnumInitializer evaluates an enum value's explicit initializer to
// a constant int64. Only a (possibly parenthesized) integer literal is
// recognized; anything else isn't a constant this core can fold, so
// the member falls back to the auto-increment default.
func evalEnumInitializer(e ast.Expression) (int64, bool) {
	for {
		switch x := e.(type) {
		case *ast.NumberLiteralExpression:
			return x.Value, true
		case *ast.ParenthesizedExpression:
			e = x.Expr
		default:
			return 0, false
		}
	}
}

// initNamespace implements declaration merging: repeated `namespace N`
// blocks combine into one Namespace element (spec §4.1 step 6).
// Export-consistency across merged blocks (MergedDeclarationMismatch)
// is enforced the first time a second block's export-ness disagrees
// with the first.
func (p *Program) initNamespace(src *ast.Source, ns *Namespace, d *ast.NamespaceDeclaration) {
	name := scopedName(src, ns, d.Name)
	if !CheckIdentifier(p, d.Name, d.R) {
		return
	}
	existing := p.Lookup(name)
	var n *Namespace
	if existing != nil {
		n, _ = existing.(*Namespace)
		if n == nil {
			p.Sink.Emit(diag.DuplicateIdentifier, d.R, d.Name)
			return
		}
	} else {
		n = &Namespace{Members: make(map[string]Element)}
		n.simpleName = d.Name
		n.internalName = name
		n.namespace = ns
		n.decl = d
		p.elementsLookup[name] = n
		p.registerExportOrPromote(src, ns, d.Name, name, n, d.Flags, d.R)
	}
	exported := d.Flags.Has(ast.FlagExport)
	if !n.sawFirst {
		n.sawFirst = true
		n.firstExported = exported
	} else if n.firstExported != exported {
		p.Sink.Emit(diag.MergedDeclarationMismatch, d.R, d.Name)
	}
	n.Decls = append(n.Decls, d)

	for _, stmt := range d.Members {
		p.initTopLevelStatement(src, n, stmt)
		if decl, ok := namedDeclOf(stmt); ok {
			if el := p.Lookup(scopedName(src, n, decl)); el != nil {
				n.Members[decl] = el
			}
		}
	}
}

// namedDeclOf extracts the simple name a top-level statement declares,
// if any, so initNamespace can populate Namespace.Members after
// delegating to initTopLevelStatement.
func namedDeclOf(stmt ast.Statement) (string, bool) {
	switch d := stmt.(type) {
	case *ast.ClassDeclaration:
		return d.Name, true
	case *ast.InterfaceDeclaration:
		return d.Name, true
	case *ast.FunctionDeclaration:
		return d.Name, true
	case *ast.EnumDeclaration:
		return d.Name, true
	case *ast.NamespaceDeclaration:
		return d.Name, true
	default:
		return "", false
	}
}

func (p *Program) initGlobals(src *ast.Source, ns *Namespace, d *ast.VariableStatement) {
	for _, decl := range d.Declarations {
		name := scopedName(src, ns, decl.Name)
		if !CheckIdentifier(p, decl.Name, decl.R) {
			continue
		}
		g := &Global{Decl: decl}
		g.simpleName = decl.Name
		g.internalName = name
		g.flags = declaredFlagsFromAST(decl.Flags)
		g.namespace = ns
		g.decl = decl

		if !p.define(name, g, decl.R) {
			continue
		}
		p.registerExportOrPromote(src, ns, decl.Name, name, g, decl.Flags, decl.R)
	}
}

func (p *Program) initTypeAlias(src *ast.Source, ns *Namespace, d *ast.TypeDeclaration) {
	if _, exists := p.typeAliases[d.Name]; exists {
		p.Sink.Emit(diag.DuplicateIdentifier, d.R, d.Name)
		return
	}
	p.typeAliases[d.Name] = d
}

// registerExportOrPromote handles the module-global promotion and
// per-file export bookkeeping common to every top-level declaration
// kind (spec §4.1 steps 2-3, invariants I1/I2/P6): a `declare`d,
// ambient, or otherwise global-scope declaration is additionally
// reachable by its bare simple name, and an `export`ed one is recorded
// under the source's file-level export table.
func (p *Program) registerExportOrPromote(src *ast.Source, ns *Namespace, simpleName, internalName string, el Element, flags ast.DeclFlags, r ast.Range) {
	if ns == nil && (src.IsLibrary || flags.Has(ast.FlagDeclare)) {
		p.elementsLookup[simpleName] = el
	}
	if ns == nil && flags.Has(ast.FlagExport) {
		p.defineFileExport(src.Path, simpleName, el, r)
		if src.IsEntry {
			p.defineModuleExport(simpleName, el, r)
		}
	}
}

func classDerivedFlags(tps []*ast.TypeParameter) CommonFlags {
	if len(tps) > 0 {
		return GenericFlag
	}
	return 0
}

func methodDerivedFlags(d *ast.MethodDeclaration) CommonFlags {
	var f CommonFlags
	if len(d.TypeParameters) > 0 {
		f |= GenericFlag
	}
	if !d.Flags.Has(ast.FlagStatic) {
		f |= InstanceFlag
	}
	if d.Flags.Has(ast.FlagConstructor) {
		f |= ConstructorFlag
	}
	return f
}

// decoratorBits maps a recognized flag-style decorator's name to its
// DecoratorFlags bit. @operator and @external are handled separately
// (operatorSymbolOf, externalImportOf); they carry arguments and aren't
// simple presence flags.
var decoratorBits = map[string]DecoratorFlags{
	"global":    GlobalDecorator,
	"unmanaged": UnmanagedDecorator,
	"sealed":    SealedDecorator,
	"inline":    InlineDecorator,
}

// decoratorFlagsOf filters decs against allowed, the per-declaration-
// kind set spec §4.1 step 2 lists (class: global|sealed|unmanaged;
// interface: global; function: global|inline; method: inline). A
// decorator outside that set reports DecoratorNotValidHere; a second
// occurrence of one already seen reports DuplicateDecorator. Both are
// warnings in the sense that flag computation continues regardless —
// only the first, allowed occurrence of each bit is kept.
func (p *Program) decoratorFlagsOf(decs []*ast.Decorator, allowed DecoratorFlags) DecoratorFlags {
	var f DecoratorFlags
	for _, d := range decs {
		bit, ok := decoratorBits[d.Name]
		if !ok {
			continue
		}
		if allowed&bit == 0 {
			p.Sink.Emit(diag.DecoratorNotValidHere, d.R, d.Name)
			continue
		}
		if f.Has(bit) {
			p.Sink.Emit(diag.DuplicateDecorator, d.R, d.Name)
			continue
		}
		f |= bit
	}
	return f
}

// operatorSymbolOf recognizes an `@operator("...")` decorator's
// argument against the spec's fixed symbol table (spec §4.1 step 5).
func operatorSymbolOf(decs []*ast.Decorator) (OperatorKind, bool) {
	for _, d := range decs {
		if d.Name != "operator" || len(d.Arguments) == 0 {
			continue
		}
		lit, ok := d.Arguments[0].(*ast.StringLiteralExpression)
		if !ok {
			continue
		}
		if k, ok := operatorSymbols[lit.Value]; ok {
			return k, true
		}
	}
	return NoOperator, false
}

// externalImportOf recognizes an `@external("module","name")`
// decorator on an ambient function declaration (SPEC_FULL addition).
func externalImportOf(decs []*ast.Decorator) *ExternalImport {
	for _, d := range decs {
		if d.Name != "external" || len(d.Arguments) < 2 {
			continue
		}
		mod, ok1 := d.Arguments[0].(*ast.StringLiteralExpression)
		name, ok2 := d.Arguments[1].(*ast.StringLiteralExpression)
		if ok1 && ok2 {
			return &ExternalImport{Module: mod.Value, Name: name.Value}
		}
	}
	return nil
}

// queueImports records an ImportStatement's declarations for the drain
// phase (spec §4.1 step 7). Only the named Declarations are queued; a
// NamespaceName import (`import * as NS`) is ignored.
func (p *Program) queueImports(src *ast.Source, d *ast.ImportStatement) {
	for _, decl := range d.Declarations {
		p.queuedImports = append(p.queuedImports, &queuedImport{
			localName:      scopedName(src, nil, decl.Name),
			referencedName: d.InternalPath + "/" + decl.ExternalName,
			r:              decl.R,
		})
	}
}

// queueExports records an ExportStatement's members for the drain
// phase (spec §4.1 step 8).
func (p *Program) queueExports(src *ast.Source, ns *Namespace, d *ast.ExportStatement) {
	for _, m := range d.Members {
		ext := m.ExternalName
		if ext == "" {
			ext = m.Name
		}
		p.queuedExports = append(p.queuedExports, &queuedExport{
			sourcePath:     src.Path,
			externalName:   ext,
			localName:      m.Name,
			referencedPath: d.InternalPath,
			isEntry:        src.IsEntry,
			r:              d.R,
		})
	}
}
