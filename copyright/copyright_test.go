// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package copyright

import "testing"

func TestModuleFilesCarryCopyrightHeader(t *testing.T) {
	files, err := checkCopyright("..")
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		t.Errorf("%s: missing (or malformed) copyright header", f)
	}
}
