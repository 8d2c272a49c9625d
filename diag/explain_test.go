// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"strings"
	"testing"
)

func TestExplainKnownCode(t *testing.T) {
	text, err := Explain(DuplicateIdentifier)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if strings.TrimSpace(text) == "" {
		t.Errorf("Explain returned empty text for a documented code")
	}
}

func TestExplainUnknownCodeErrors(t *testing.T) {
	if _, err := Explain(Code(0)); err == nil {
		t.Errorf("expected an error for a code with no explain doc")
	}
}

func TestCodesMatchesEmbeddedDocs(t *testing.T) {
	codes := Codes()
	if len(codes) == 0 {
		t.Fatal("Codes() returned no entries")
	}
	for _, c := range codes {
		if _, err := Explain(c); err != nil {
			t.Errorf("Explain(%v) failed for a code Codes() advertises: %v", c, err)
		}
	}
}
