// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import "testing"

func TestRuneNameKnownRune(t *testing.T) {
	if got := RuneName('$'); got == "" || got == "$" {
		t.Errorf("RuneName('$') = %q, want a known Unicode character name", got)
	}
}

func TestRuneNameFallsBackToLiteral(t *testing.T) {
	r := rune(0xFFFF) // not a named character
	if got := RuneName(r); got != string(r) {
		t.Errorf("RuneName(unnamed) = %q, want the literal rune %q", got, string(r))
	}
}
