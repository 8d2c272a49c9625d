// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"testing"

	"github.com/nyxlang/nyxc/ast"
)

func TestRenderFormatsTemplate(t *testing.T) {
	got := Render(DuplicateIdentifier, "foo")
	if want := "Duplicate identifier 'foo'."; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderUnknownCode(t *testing.T) {
	got := Render(Code(999))
	if got == "" {
		t.Errorf("Render of an unknown code should not be empty")
	}
}

func TestRecorderHasAndCount(t *testing.T) {
	r := &Recorder{}
	r.Emit(DuplicateIdentifier, ast.Range{Start: 1, End: 2}, "a")
	r.Emit(DuplicateIdentifier, ast.Range{Start: 3, End: 4}, "b")
	r.Emit(CannotFindName, ast.Range{}, "c")

	if !r.Has(DuplicateIdentifier) {
		t.Errorf("Has(DuplicateIdentifier) = false, want true")
	}
	if r.Has(ClassIsSealed) {
		t.Errorf("Has(ClassIsSealed) = true, want false")
	}
	if got := r.Count(DuplicateIdentifier); got != 2 {
		t.Errorf("Count(DuplicateIdentifier) = %d, want 2", got)
	}
	if got := r.Count(CannotFindName); got != 1 {
		t.Errorf("Count(CannotFindName) = %d, want 1", got)
	}
	if len(r.Diagnostics) != 3 {
		t.Errorf("got %d recorded diagnostics, want 3", len(r.Diagnostics))
	}
	if r.Diagnostics[0].Message != "Duplicate identifier 'a'." {
		t.Errorf("Diagnostics[0].Message = %q", r.Diagnostics[0].Message)
	}
}
