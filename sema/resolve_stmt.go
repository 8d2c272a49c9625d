// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sema

import (
	"github.com/nyxlang/nyxc/ast"
	"github.com/nyxlang/nyxc/typesystem"
)

// resolveStatements resolves fn's body statements against fn.Root,
// threading the Flow Tracker through nested scopes (spec §4.3). It is
// called once, from FunctionPrototype.Resolve, after fn.Root and fn's
// parameter locals have been set up.
func resolveStatements(prog *Program, fn *Function, stmts []ast.Statement) {
	for _, s := range stmts {
		resolveStatement(prog, fn, s)
	}
}

// resolveStatement dispatches one statement, updating fn.current's
// flow flags (Returns/Throws/Breaks/Continues) as it goes.
func resolveStatement(prog *Program, fn *Function, s ast.Statement) {
	switch st := s.(type) {
	case *ast.BlockStatement:
		fn.EnterBranchOrScope()
		resolveStatements(prog, fn, st.Statements)
		fn.LeaveBranchOrScope()

	case *ast.VariableStatement:
		resolveLocalVariableStatement(prog, fn, st)

	case *ast.ExpressionStatement:
		prog.ResolveExpression(fn, fn.current, st.Expr)

	case *ast.IfStatement:
		resolveIf(prog, fn, st)

	case *ast.WhileStatement:
		resolveWhile(prog, fn, st)

	case *ast.ForStatement:
		resolveFor(prog, fn, st)

	case *ast.ReturnStatement:
		if st.Value != nil {
			prog.ResolveExpression(fn, fn.current, st.Value)
		}
		fn.current.Set(Returns)

	case *ast.ThrowStatement:
		prog.ResolveExpression(fn, fn.current, st.Value)
		fn.current.Set(Throws)

	case *ast.BreakStatement:
		fn.current.Set(Breaks)

	case *ast.ContinueStatement:
		fn.current.Set(Continues)

	default:
		// Any other statement, including a declaration nested inside a
		// function body (class, inner function, namespace), is not
		// resolved and leaves the flow flags unchanged.
	}
}

// resolveLocalVariableStatement resolves each declarator's type and
// initializer and binds it as a scoped local of fn.current (spec
// §4.2.2's local-declaration case).
func resolveLocalVariableStatement(prog *Program, fn *Function, st *ast.VariableStatement) {
	for _, decl := range st.Declarations {
		var t = resolveDeclaredOrInferredType(prog, fn, decl)
		fn.current.AddScopedLocal(prog, decl.Name, t, decl.R)
		if decl.Initializer != nil {
			prog.ResolveExpression(fn, fn.current, decl.Initializer)
		}
	}
}

// resolveDeclaredOrInferredType resolves decl's explicit type, or
// falls back to void when omitted (initializer-based inference is out
// of scope, spec's Non-goals).
func resolveDeclaredOrInferredType(prog *Program, fn *Function, decl *ast.VariableDeclarator) typesystem.Type {
	if decl.Type != nil {
		return resolveType(prog, decl.Type, contextualTypeArgsFor(fn))
	}
	return typesystem.Primitive(typesystem.Void)
}

// contextualTypeArgsFor returns fn's contextual type-argument map,
// threaded from its root Flow.
func contextualTypeArgsFor(fn *Function) map[string]typesystem.Type {
	if fn.Root != nil {
		return fn.Root.ContextualTypeArguments()
	}
	return nil
}

// resolveIf resolves an if/else, entering a fresh branch scope for
// each arm so BreaksConditional/ReturnsConditional fold correctly when
// only one arm unconditionally returns (spec §4.3's folding rule).
func resolveIf(prog *Program, fn *Function, st *ast.IfStatement) {
	prog.ResolveExpression(fn, fn.current, st.Condition)

	fn.EnterBranchOrScope()
	resolveStatement(prog, fn, st.Then)
	fn.LeaveBranchOrScope()

	if st.Else != nil {
		fn.EnterBranchOrScope()
		resolveStatement(prog, fn, st.Else)
		fn.LeaveBranchOrScope()
	}
}

// resolveWhile resolves a while loop's condition and body inside a new
// break/continue label context (spec §4.3).
func resolveWhile(prog *Program, fn *Function, st *ast.WhileStatement) {
	fn.EnterBreakContext()
	flow := fn.EnterBranchOrScope()
	flow.breakLabel = fn.breakStack[len(fn.breakStack)-1]
	flow.continueLabel = flow.breakLabel

	prog.ResolveExpression(fn, fn.current, st.Condition)
	resolveStatement(prog, fn, st.Body)

	fn.LeaveBranchOrScope()
	fn.LeaveBreakContext()
}

// resolveFor resolves a C-style for loop, scoping Init's declarations
// to the loop body (spec §4.3).
func resolveFor(prog *Program, fn *Function, st *ast.ForStatement) {
	fn.EnterBreakContext()
	flow := fn.EnterBranchOrScope()
	flow.breakLabel = fn.breakStack[len(fn.breakStack)-1]
	flow.continueLabel = flow.breakLabel

	if st.Init != nil {
		resolveStatement(prog, fn, st.Init)
	}
	if st.Condition != nil {
		prog.ResolveExpression(fn, fn.current, st.Condition)
	}
	if st.Update != nil {
		prog.ResolveExpression(fn, fn.current, st.Update)
	}
	resolveStatement(prog, fn, st.Body)

	fn.LeaveBranchOrScope()
	fn.LeaveBreakContext()
}
