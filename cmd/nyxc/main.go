// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	_ "embed"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nyxlang/nyxc/diag"
	"github.com/nyxlang/nyxc/project"
	"github.com/nyxlang/nyxc/sema"
	"github.com/nyxlang/nyxc/srcload"
	"github.com/nyxlang/nyxc/watch"
)

//go:embed doc.go
var doc string

var (
	parserFlag  = flag.String("parser", "", "external parser executable to invoke per entry file")
	fixtureFlag = flag.String("fixture", "", "JSON fixture file to load sources from")
	watchFlag   = flag.Bool("watch", false, "rebuild all projects when a manifest file changes")
	explainFlag = flag.String("explain", "", "print the explanation for diagnostic code N and exit")
	jFlag       = flag.Int("j", runtime.GOMAXPROCS(0), "maximum concurrent project initializations")
	jsonFlag    = flag.Bool("json", false, "emit diagnostics as JSON")
)

func usage() {
	fmt.Fprint(flag.CommandLine.Output(), doc+"\nFlags:\n\n")
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("nyxc: ")
	log.SetFlags(0)

	flag.Usage = usage
	flag.Parse()

	if *explainFlag != "" {
		runExplain(*explainFlag)
		return
	}

	manifestPaths := flag.Args()
	if len(manifestPaths) == 0 {
		usage()
		os.Exit(2)
	}

	if *parserFlag != "" && *fixtureFlag != "" {
		log.Fatalf("you cannot specify both -parser and -fixture")
	}

	ctx := context.Background()
	results, err := buildAll(ctx, manifestPaths, *jFlag)
	if err != nil {
		log.Fatalf("%v", err)
	}

	anyInsane := reportAll(results)

	if *watchFlag {
		runWatch(ctx, manifestPaths)
		return
	}

	if anyInsane {
		os.Exit(1)
	}
}

// projectResult bundles one initialized Program with the manifest it came
// from and the diagnostics it accumulated.
type projectResult struct {
	manifestPath string
	manifest     *project.Manifest
	prog         *sema.Program
	rec          *diag.Recorder
	insane       bool
}

// buildAll initializes every named project, at most limit at a time,
// mirroring the teacher's use of golang.org/x/sync/errgroup for
// bounded-concurrency fan-out over independent units of work.
func buildAll(ctx context.Context, manifestPaths []string, limit int) ([]*projectResult, error) {
	results := make([]*projectResult, len(manifestPaths))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, path := range manifestPaths {
		i, path := i, path
		g.Go(func() error {
			res, err := buildOne(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func buildOne(ctx context.Context, manifestPath string) (*projectResult, error) {
	m, err := project.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	sources, err := srcload.Load(ctx, srcload.Config{
		FixturePath: *fixtureFlag,
		Parser:      *parserFlag,
		EntryFiles:  m.EntryFiles,
	})
	if err != nil {
		return nil, err
	}

	rec := &diag.Recorder{}
	prog := sema.NewProgram(m.Options(), rec, slog.Default())
	prog.Initialize(sources)

	insane := !sema.SanityCheck(prog, os.Stderr)

	return &projectResult{manifestPath: manifestPath, manifest: m, prog: prog, rec: rec, insane: insane}, nil
}

// reportAll prints every project's diagnostics and returns whether any
// project failed its sanity check.
func reportAll(results []*projectResult) bool {
	anyInsane := false
	for _, res := range results {
		if res.insane {
			anyInsane = true
		}
		if *jsonFlag {
			printJSON(res)
			continue
		}
		for _, d := range res.rec.Diagnostics {
			fmt.Printf("%s: [%d:%d] %s\n", res.manifestPath, d.Range.Start, d.Range.End, d.Message)
		}
	}
	return anyInsane
}

func printJSON(res *projectResult) {
	type jsonDiag struct {
		Code    int    `json:"code"`
		Start   int    `json:"start"`
		End     int    `json:"end"`
		Message string `json:"message"`
	}
	out := make([]jsonDiag, 0, len(res.rec.Diagnostics))
	for _, d := range res.rec.Diagnostics {
		out = append(out, jsonDiag{Code: int(d.Code), Start: int(d.Range.Start), End: int(d.Range.End), Message: d.Message})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "\t")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("internal error: %v", err)
	}
}

func runExplain(codeArg string) {
	n, err := strconv.Atoi(codeArg)
	if err != nil {
		log.Fatalf("-explain wants a numeric diagnostic code: %v", err)
	}
	text, err := diag.Explain(diag.Code(n))
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println(text)
}

// runWatch rebuilds every named project whenever one of the manifest
// files changes, until interrupted (Ctrl-C). Only the manifest files
// themselves are watched; source files are not.
func runWatch(ctx context.Context, manifestPaths []string) {
	w, err := watch.New(300*time.Millisecond, slog.Default(), func(changed []string) {
		log.Printf("rebuilding %d project(s) after change to %v", len(manifestPaths), changed)
		results, err := buildAll(ctx, manifestPaths, *jFlag)
		if err != nil {
			log.Printf("rebuild failed: %v", err)
			return
		}
		reportAll(results)
	}, func(err error) {
		log.Printf("watch error: %v", err)
	})
	if err != nil {
		log.Fatalf("starting watcher: %v", err)
	}
	defer w.Close()

	for _, path := range manifestPaths {
		if err := w.WatchFile(path); err != nil {
			log.Printf("watching %s: %v", path, err)
		}
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	<-sigCtx.Done()
}
