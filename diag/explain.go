// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	goldast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

//go:embed docs/*.md
var explainDocs embed.FS

// codeSlugs maps a Code to its embedded docs/<slug>.md file, mirroring
// the teacher's goldmark use (named in the root go.mod) for rendering
// Markdown into plain text at the terminal, e.g. for `nyxc -explain`.
var codeSlugs = map[Code]string{
	DuplicateIdentifier:                "duplicate-identifier",
	CannotFindName:                     "cannot-find-name",
	ModuleHasNoExportedMember:          "module-has-no-exported-member",
	ExportDeclarationConflicts:         "export-declaration-conflicts",
	ClassMayOnlyExtendClass:            "class-may-only-extend-class",
	ClassIsSealed:                      "class-is-sealed",
	UnmanagedCannotImplementInterfaces: "unmanaged-interfaces",
	PropertyDoesNotExist:               "property-does-not-exist",
	DuplicateFunctionImplementation:    "duplicate-function-implementation",
}

// Explain renders the embedded Markdown explanation for code to plain
// text for a terminal `-explain` flag. It returns an error if code has
// no explain doc.
func Explain(code Code) (string, error) {
	slug, ok := codeSlugs[code]
	if !ok {
		return "", fmt.Errorf("diag: no explanation available for code %d", int(code))
	}
	raw, err := explainDocs.ReadFile("docs/" + slug + ".md")
	if err != nil {
		return "", fmt.Errorf("diag: reading explain doc for %d: %w", int(code), err)
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(raw))

	var out bytes.Buffer
	err = goldast.Walk(doc, func(n goldast.Node, entering bool) (goldast.WalkStatus, error) {
		if !entering {
			switch n.Kind() {
			case goldast.KindParagraph, goldast.KindHeading, goldast.KindListItem, goldast.KindFencedCodeBlock:
				out.WriteByte('\n')
			}
			return goldast.WalkContinue, nil
		}
		switch tn := n.(type) {
		case *goldast.Text:
			out.Write(tn.Segment.Value(raw))
			if tn.SoftLineBreak() || tn.HardLineBreak() {
				out.WriteByte(' ')
			}
		case *goldast.FencedCodeBlock:
			for i := 0; i < tn.Lines().Len(); i++ {
				seg := tn.Lines().At(i)
				out.Write(seg.Value(raw))
			}
		}
		return goldast.WalkContinue, nil
	})
	if err != nil {
		return string(raw), nil
	}
	return strings.TrimSpace(out.String()), nil
}

// Codes returns every diagnostic Code that has an -explain doc, sorted
// by code number.
func Codes() []Code {
	codes := make([]Code, 0, len(codeSlugs))
	for c := range codeSlugs {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
