// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Command nyxc runs the Nyx semantic-analysis core over one or more
projects and reports diagnostics.

Usage: nyxc [flags] <manifest.mod> ...

Each positional argument names a nyx.mod manifest file. Projects are
initialized independently; with -j>1 they are processed concurrently.

Flags:

	-parser exe
	    external parser executable invoked per entry file, writing a
	    JSON array of source fixtures to stdout (mutually exclusive
	    with -fixture)
	-fixture file
	    JSON fixture file to load sources from instead of invoking an
	    external parser
	-watch
	    after the initial pass, rebuild all projects whenever a
	    manifest file changes, until interrupted; source files are
	    not watched
	-explain code
	    print the explanation for diagnostic code N and exit
	-j n
	    maximum number of projects to initialize concurrently (default
	    GOMAXPROCS)
	-json
	    emit diagnostics as JSON instead of text
*/
package main
