// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ast defines the node shapes produced by a Nyx lexer/parser
// that the semantic core (package sema) consumes. The parser itself is
// an external collaborator; this package only pins down the contract.
package ast

// Pos is a byte offset into a Source's text, used only for diagnostic
// ranges. The lexer/parser assigns these; the core never interprets them.
type Pos int

// Range is a source range, end-exclusive.
type Range struct {
	Start, End Pos
}

// Node is implemented by every syntax node the core touches.
type Node interface {
	Range() Range
}

// Source is one parsed input file.
type Source struct {
	Path       string // normalized path (no extension), e.g. "~lib/array" or "src/main"
	IsLibrary  bool   // path falls under the "~lib/" root
	IsEntry    bool   // designated module entry point
	Statements []Statement
}

// Statement is implemented by every top-level or nested statement,
// including declarations (ClassDeclaration, FunctionDeclaration, ...).
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented by every expression node.
type Expression interface {
	Node
	expressionNode()
}

// TypeNode is implemented by every type-expression node.
type TypeNode interface {
	Node
	typeNode()
}

// DeclFlags mirrors CommonFlags' declared-modifier bits as written on
// the source; the core derives the rest (ambient, generic, instance, ...).
type DeclFlags uint32

const (
	FlagImport DeclFlags = 1 << iota
	FlagExport
	FlagDeclare
	FlagConst
	FlagLet
	FlagStatic
	FlagReadonly
	FlagAbstract
	FlagPublic
	FlagPrivate
	FlagProtected
	FlagGet
	FlagSet
	FlagConstructor
	FlagLazy // @lazy global initialization (SPEC_FULL addition)
)

func (f DeclFlags) Has(bit DeclFlags) bool { return f&bit != 0 }

// Decorator is a `@name(args...)` annotation attached to a declaration.
type Decorator struct {
	Name      string
	Arguments []Expression
	R         Range
}

func (d *Decorator) Range() Range { return d.R }

// TypeParameter is a single generic parameter on a class/interface/
// function/method declaration.
type TypeParameter struct {
	Name string
	R    Range
}

func (t *TypeParameter) Range() Range { return t.R }

// NamedTypeNode refers to a type by name, optionally instantiated with
// type arguments, e.g. `Box<i32>`.
type NamedTypeNode struct {
	Name          string
	TypeArguments []TypeNode
	R             Range
}

func (n *NamedTypeNode) Range() Range { return n.R }
func (*NamedTypeNode) typeNode()      {}

// ParameterNode is one parameter of a function/method signature.
type ParameterNode struct {
	Name       string
	Type       TypeNode
	Default    Expression // non-nil if this parameter has a default value
	IsRest     bool
	R          Range
}

func (p *ParameterNode) Range() Range { return p.R }

// FunctionTypeNode is a function signature, either a standalone type
// node (`(i32) => bool`) or the signature of a function/method
// declaration.
type FunctionTypeNode struct {
	This       TypeNode // explicit `this` type, nil if absent
	Parameters []*ParameterNode
	ReturnType TypeNode // nil if omitted (defaults to void)
	R          Range
}

func (f *FunctionTypeNode) Range() Range { return f.R }
func (*FunctionTypeNode) typeNode()      {}

// ClassDeclaration declares a class or (when Flags has no distinguishing
// bit; see InterfaceDeclaration for interfaces) is reused structurally
// by interfaces via InterfaceDeclaration below.
type ClassDeclaration struct {
	Name            string
	TypeParameters  []*TypeParameter
	ExtendsType     *NamedTypeNode
	ImplementsTypes []*NamedTypeNode
	Members         []Statement // FieldDeclaration | MethodDeclaration
	Flags           DeclFlags
	Decorators      []*Decorator
	R               Range
}

func (d *ClassDeclaration) Range() Range { return d.R }
func (*ClassDeclaration) statementNode() {}

// InterfaceDeclaration declares an interface. It has the same shape as
// ClassDeclaration minus ExtendsType (interfaces do not extend classes
// in this language; they may be re-declared across files like
// namespaces, which the core does not currently merge).
type InterfaceDeclaration struct {
	Name            string
	TypeParameters  []*TypeParameter
	ImplementsTypes []*NamedTypeNode
	Members         []Statement
	Flags           DeclFlags
	Decorators      []*Decorator
	R               Range
}

func (d *InterfaceDeclaration) Range() Range { return d.R }
func (*InterfaceDeclaration) statementNode() {}

// FieldDeclaration declares an instance or static field of a class.
type FieldDeclaration struct {
	Name        string
	Type        TypeNode // nil if inferred from Initializer (unsupported, see Non-goals)
	Initializer Expression
	Flags       DeclFlags
	R           Range
}

func (d *FieldDeclaration) Range() Range { return d.R }
func (*FieldDeclaration) statementNode() {}

// MethodDeclaration declares a method, accessor, or constructor of a
// class or interface.
type MethodDeclaration struct {
	Name           string
	TypeParameters []*TypeParameter
	Signature      *FunctionTypeNode
	Body           []Statement // nil for abstract/ambient methods
	Flags          DeclFlags   // Get/Set/Static/Constructor bits apply
	Decorators     []*Decorator
	R              Range
}

func (d *MethodDeclaration) Range() Range { return d.R }
func (*MethodDeclaration) statementNode() {}

// FunctionDeclaration declares a top-level or namespace-nested function.
type FunctionDeclaration struct {
	Name           string
	TypeParameters []*TypeParameter
	Signature      *FunctionTypeNode
	Body           []Statement
	Flags          DeclFlags
	Decorators     []*Decorator
	R              Range
}

func (d *FunctionDeclaration) Range() Range { return d.R }
func (*FunctionDeclaration) statementNode() {}

// EnumValueDeclaration is one member of an EnumDeclaration.
type EnumValueDeclaration struct {
	Name        string
	Initializer Expression // nil means auto-increment from the previous value
	R           Range
}

func (d *EnumValueDeclaration) Range() Range { return d.R }
func (*EnumValueDeclaration) statementNode() {}

// EnumDeclaration declares an enum and its values.
type EnumDeclaration struct {
	Name   string
	Values []*EnumValueDeclaration
	Flags  DeclFlags
	R      Range
}

func (d *EnumDeclaration) Range() Range { return d.R }
func (*EnumDeclaration) statementNode() {}

// NamespaceDeclaration declares (or extends, via declaration merging) a
// namespace.
type NamespaceDeclaration struct {
	Name    string
	Members []Statement
	Flags   DeclFlags
	R       Range
}

func (d *NamespaceDeclaration) Range() Range { return d.R }
func (*NamespaceDeclaration) statementNode() {}

// TypeDeclaration declares a program-global type alias: `type T<...> = ...`.
type TypeDeclaration struct {
	Name           string
	TypeParameters []*TypeParameter
	Type           TypeNode
	Flags          DeclFlags
	R              Range
}

func (d *TypeDeclaration) Range() Range { return d.R }
func (*TypeDeclaration) statementNode() {}

// VariableDeclarator is one `name: Type = init` binding in a
// VariableStatement.
type VariableDeclarator struct {
	Name        string
	Type        TypeNode
	Initializer Expression
	Flags       DeclFlags
	R           Range
}

// VariableStatement declares one or more globals or locals.
type VariableStatement struct {
	Declarations []*VariableDeclarator
	R            Range
}

func (d *VariableStatement) Range() Range { return d.R }
func (*VariableStatement) statementNode() {}

// ImportDeclaration binds a single external name to a local simple name
// within an ImportStatement.
type ImportDeclaration struct {
	Name         string // local binding
	ExternalName string // name exported by the referenced module
	R            Range
}

// ImportStatement imports one or more names, or (NamespaceName != "")
// imports a whole module under a namespace alias — the latter form is
// intentionally unimplemented; see sema's Open Questions notes.
type ImportStatement struct {
	Declarations  []*ImportDeclaration
	NamespaceName string
	InternalPath  string
	R             Range
}

func (d *ImportStatement) Range() Range { return d.R }
func (*ImportStatement) statementNode() {}

// ExportMember is one `name as externalName` entry in an ExportStatement.
type ExportMember struct {
	Name         string
	ExternalName string
}

// ExportStatement exports local declarations, or (InternalPath != "")
// re-exports from another module.
type ExportStatement struct {
	Members      []*ExportMember
	InternalPath string
	R            Range
}

func (d *ExportStatement) Range() Range { return d.R }
func (*ExportStatement) statementNode() {}

// ExpressionStatement wraps a bare expression used as a statement.
type ExpressionStatement struct {
	Expr Expression
	R    Range
}

func (d *ExpressionStatement) Range() Range { return d.R }
func (*ExpressionStatement) statementNode() {}

// BlockStatement is a `{ ... }` statement sequence introducing a new
// scope for the Flow Tracker (spec §4.3).
type BlockStatement struct {
	Statements []Statement
	R          Range
}

func (d *BlockStatement) Range() Range { return d.R }
func (*BlockStatement) statementNode() {}

// IfStatement is `if (cond) then else Else`; Else is nil if absent.
type IfStatement struct {
	Condition Expression
	Then      Statement
	Else      Statement
	R         Range
}

func (d *IfStatement) Range() Range { return d.R }
func (*IfStatement) statementNode() {}

// WhileStatement is `while (cond) Body`.
type WhileStatement struct {
	Condition Expression
	Body      Statement
	R         Range
}

func (d *WhileStatement) Range() Range { return d.R }
func (*WhileStatement) statementNode() {}

// ForStatement is `for (Init; Condition; Update) Body`; any clause may
// be nil.
type ForStatement struct {
	Init      Statement
	Condition Expression
	Update    Expression
	Body      Statement
	R         Range
}

func (d *ForStatement) Range() Range { return d.R }
func (*ForStatement) statementNode() {}

// ReturnStatement is `return Value;`; Value is nil for a bare return.
type ReturnStatement struct {
	Value Expression
	R     Range
}

func (d *ReturnStatement) Range() Range { return d.R }
func (*ReturnStatement) statementNode() {}

// BreakStatement is `break;` (labels are unsupported, see Non-goals).
type BreakStatement struct{ R Range }

func (d *BreakStatement) Range() Range { return d.R }
func (*BreakStatement) statementNode() {}

// ContinueStatement is `continue;`.
type ContinueStatement struct{ R Range }

func (d *ContinueStatement) Range() Range { return d.R }
func (*ContinueStatement) statementNode() {}

// ThrowStatement is `throw Value;`.
type ThrowStatement struct {
	Value Expression
	R     Range
}

func (d *ThrowStatement) Range() Range { return d.R }
func (*ThrowStatement) statementNode() {}

// --- expressions ---

// IdentifierExpression is a bare name reference.
type IdentifierExpression struct {
	Name string
	R    Range
}

func (e *IdentifierExpression) Range() Range { return e.R }
func (*IdentifierExpression) expressionNode() {}

// ThisExpression is the `this` keyword.
type ThisExpression struct{ R Range }

func (e *ThisExpression) Range() Range { return e.R }
func (*ThisExpression) expressionNode() {}

// SuperExpression is the `super` keyword.
type SuperExpression struct{ R Range }

func (e *SuperExpression) Range() Range { return e.R }
func (*SuperExpression) expressionNode() {}

// StringLiteralExpression is a string literal.
type StringLiteralExpression struct {
	Value string
	R     Range
}

func (e *StringLiteralExpression) Range() Range { return e.R }
func (*StringLiteralExpression) expressionNode() {}

// NumberLiteralExpression is an integer literal, already sign-folded by
// the parser (a leading `-` is part of Value, not a separate unary
// node). General numeric-literal typing is out of the core's scope
// (spec §9); this node exists only so a constant context — an enum
// value's explicit initializer — has something concrete to evaluate.
type NumberLiteralExpression struct {
	Value int64
	R     Range
}

func (e *NumberLiteralExpression) Range() Range { return e.R }
func (*NumberLiteralExpression) expressionNode() {}

// ParenthesizedExpression wraps `(expr)`.
type ParenthesizedExpression struct {
	Expr Expression
	R    Range
}

func (e *ParenthesizedExpression) Range() Range { return e.R }
func (*ParenthesizedExpression) expressionNode() {}

// AssertionExpression is `expr as Type`.
type AssertionExpression struct {
	Expr   Expression
	ToType TypeNode
	R      Range
}

func (e *AssertionExpression) Range() Range { return e.R }
func (*AssertionExpression) expressionNode() {}

// PropertyAccessExpression is `target.Name`.
type PropertyAccessExpression struct {
	Target Expression
	Name   string
	R      Range
}

func (e *PropertyAccessExpression) Range() Range { return e.R }
func (*PropertyAccessExpression) expressionNode() {}

// ElementAccessExpression is `target[index]`.
type ElementAccessExpression struct {
	Target Expression
	Index  Expression
	R      Range
}

func (e *ElementAccessExpression) Range() Range { return e.R }
func (*ElementAccessExpression) expressionNode() {}

// CallExpression is `target<TypeArgs>(args...)`.
type CallExpression struct {
	Target        Expression
	TypeArguments []TypeNode
	Arguments     []Expression
	R             Range
}

func (e *CallExpression) Range() Range { return e.R }
func (*CallExpression) expressionNode() {}

// BinaryExpression is `left op right`. Resolution of binary expressions
// to elements is deliberately stubbed; see sema's resolveExpression.
type BinaryExpression struct {
	Op    string
	Left  Expression
	Right Expression
	R     Range
}

func (e *BinaryExpression) Range() Range { return e.R }
func (*BinaryExpression) expressionNode() {}

// ArrayLiteralExpression is `[a, b, c]`. Resolution is deliberately
// deferred; see spec §9.
type ArrayLiteralExpression struct {
	Elements []Expression
	R        Range
}

func (e *ArrayLiteralExpression) Range() Range { return e.R }
func (*ArrayLiteralExpression) expressionNode() {}
