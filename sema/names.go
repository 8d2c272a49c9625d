// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sema

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/nyxlang/nyxc/ast"
	"github.com/nyxlang/nyxc/diag"
)

// LibRoot is the path prefix marking a source as part of the standard
// library (spec §3.1, §6.3).
const LibRoot = "~lib/"

// NormalizePath applies Unicode NFC normalization to path (so two
// byte-distinct but canonically-equivalent paths compare equal) and
// strips a trailing ".nx" extension. It does not case-fold. The
// Initializer builds internal names from each source's Path as given
// and does not call NormalizePath.
func NormalizePath(path string) string {
	n := norm.NFC.String(path)
	n = strings.TrimSuffix(n, ".nx")
	return n
}

var caseFold = cases.Fold()

// FoldForLookup applies Unicode case-folding to s. Import resolution
// does not call it: the "/index" equivalence rule and the export
// lookups compare paths byte for byte.
func FoldForLookup(s string) string { return caseFold.String(s) }

// FileLevelName builds a file-scope internal name: sourcePath + "/" + simpleName.
func FileLevelName(sourcePath, simpleName string) string {
	return sourcePath + "/" + simpleName
}

// StaticMemberName builds a static member's internal name:
// owner + "." + simpleName.
func StaticMemberName(ownerInternalName, simpleName string) string {
	return ownerInternalName + "." + simpleName
}

// InstanceMemberName builds an instance member's internal name:
// owner + "#" + simpleName.
func InstanceMemberName(ownerInternalName, simpleName string) string {
	return ownerInternalName + "#" + simpleName
}

// InnerName builds an inner element's internal name (nested inside a
// function): owner + "~" + simpleName.
func InnerName(ownerInternalName, simpleName string) string {
	return ownerInternalName + "~" + simpleName
}

// GetterName and SetterName prepend the accessor prefix spec §3.1 lists.
func GetterName(simpleName string) string { return "get:" + simpleName }
func SetterName(simpleName string) string { return "set:" + simpleName }

// reservedNameRunes are the separator characters §3.1 reserves for
// building internal names (file/static/instance/inner scoping, getter/
// setter prefixes); a simple name carrying one of these would corrupt
// internal-name parsing, so the Initializer rejects it up front.
var reservedNameRunes = map[rune]bool{
	'/': true, '.': true, '#': true, '~': true,
}

// CheckIdentifier reports InvalidIdentifierCharacter for the first
// reserved or non-printable rune found in name, and returns false; it
// returns true if name is clean. Called by the Initializer before
// registering any declaration (spec §4.1 step 1's implicit precondition
// that a simple name is a valid identifier).
func CheckIdentifier(p *Program, name string, r ast.Range) bool {
	for _, ch := range name {
		if reservedNameRunes[ch] || !isPrintableIdentChar(ch) {
			p.Sink.Emit(diag.InvalidIdentifierCharacter, r, diag.RuneName(ch))
			return false
		}
	}
	return true
}

func isPrintableIdentChar(r rune) bool {
	return r >= 0x20 && r != 0x7f
}

// IndexEquivalent returns the "/index" <-> parent-directory alternative
// name for path, per spec §4.1 step 7 / §6.3 ("a path ending in
// '/index' is equivalent to its parent under import resolution").
// It always reports true: a path ending in "/index" maps to its
// parent, and any other path maps to path + "/index".
func IndexEquivalent(path string) (string, bool) {
	if strings.HasSuffix(path, "/index") {
		return strings.TrimSuffix(path, "/index"), true
	}
	return path + "/index", true
}
