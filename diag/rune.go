// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import "golang.org/x/text/unicode/runenames"

// RuneName renders r the way a terminal diagnostic should name it —
// its Unicode character name when one is known, or a quoted literal
// otherwise — adapting the teacher's use of
// golang.org/x/text/unicode/runenames in gopls/internal/golang/hover.go
// for hovering over a rune literal to this core's
// InvalidIdentifierCharacter diagnostic.
func RuneName(r rune) string {
	if name := runenames.Name(r); name != "" {
		return name
	}
	return string(r)
}
