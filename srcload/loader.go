// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srcload

import (
	"bytes"
	"context"
	"os"

	exec "golang.org/x/sys/execabs"
	"golang.org/x/xerrors"

	"github.com/nyxlang/nyxc/ast"
)

// Config selects where Load gathers sources from: a static JSON fixture
// file, or an external parser process invoked per entry file. Exactly
// one of FixturePath or (Parser, EntryFiles) is expected to be set.
type Config struct {
	// FixturePath, if non-empty, names a JSON file holding either one
	// source fixture or a JSON array of them (DecodeSource /
	// DecodeSources).
	FixturePath string

	// Parser names an external executable that, given entry file paths
	// as arguments, writes a JSON array of source fixtures to stdout.
	// Resolved the same way the teacher's cmd/godoc looks up external
	// tools: through exec.LookPath (via execabs, which refuses a
	// relative PATH match on non-Unix setups the way exec.Command alone
	// would not).
	Parser string

	// EntryFiles are passed as positional arguments to Parser.
	EntryFiles []string
}

// Load gathers an ordered slice of ast.Source values per cfg, fulfilling
// the Initializer's "ordered sequence of parsed sources" input without
// this repository owning a lexer/parser itself.
func Load(ctx context.Context, cfg Config) ([]*ast.Source, error) {
	if cfg.FixturePath != "" {
		data, err := os.ReadFile(cfg.FixturePath)
		if err != nil {
			return nil, xerrors.Errorf("srcload: reading fixture %s: %w", cfg.FixturePath, err)
		}
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
			return DecodeSources(data)
		}
		src, err := DecodeSource(data)
		if err != nil {
			return nil, err
		}
		return []*ast.Source{src}, nil
	}
	if cfg.Parser == "" {
		return nil, xerrors.Errorf("srcload: no fixture path or parser configured")
	}
	return runParser(ctx, cfg.Parser, cfg.EntryFiles)
}

// runParser invokes the external parser executable, capturing its
// stdout as a JSON array of source fixtures. Stderr is passed through
// for the parser's own diagnostics.
func runParser(ctx context.Context, parser string, entryFiles []string) ([]*ast.Source, error) {
	path, err := exec.LookPath(parser)
	if err != nil {
		return nil, xerrors.Errorf("srcload: locating parser %q: %w", parser, err)
	}
	cmd := exec.CommandContext(ctx, path, entryFiles...)
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, xerrors.Errorf("srcload: running parser %q: %w", parser, err)
	}
	return DecodeSources(out)
}
