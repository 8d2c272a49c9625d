// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typesystem

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrimitiveEqual(t *testing.T) {
	a := Primitive(I32)
	b := Primitive(I32)
	if !a.Equal(b) {
		t.Errorf("Primitive(I32).Equal(Primitive(I32)) = false, want true")
	}
	if a.Equal(Primitive(I64)) {
		t.Errorf("Primitive(I32).Equal(Primitive(I64)) = true, want false")
	}
}

func TestNullableDoesNotAffectPrimitiveIdentityExceptEquality(t *testing.T) {
	a := Primitive(I32)
	b := a.AsNullable()
	if a.Equal(b) {
		t.Errorf("non-nullable should not equal its nullable variant")
	}
	if !b.Nullable() {
		t.Errorf("AsNullable did not set the nullable bit")
	}
}

type fakeClass struct {
	name string
	size int
}

func (f *fakeClass) TypeInternalName() string { return f.name }
func (f *fakeClass) InstanceSize() int        { return f.size }

func TestClassTypeReferentialEquality(t *testing.T) {
	c1 := &fakeClass{name: "Box", size: 8}
	c2 := &fakeClass{name: "Box", size: 8}

	t1 := ClassType(c1)
	t1b := ClassType(c1)
	t2 := ClassType(c2)

	if !t1.Equal(t1b) {
		t.Errorf("two Types over the same class pointer should be Equal")
	}
	if t1.Equal(t2) {
		t.Errorf("Types over distinct class pointers with identical contents should not be Equal (spec P8)")
	}
}

func TestSignatureEqual(t *testing.T) {
	sig1 := &Signature{Params: []Type{Primitive(I32), Primitive(Bool)}, Required: 2, Results: Primitive(Void)}
	sig2 := &Signature{Params: []Type{Primitive(I32), Primitive(Bool)}, Required: 2, Results: Primitive(Void)}
	sig3 := &Signature{Params: []Type{Primitive(I32)}, Required: 1, Results: Primitive(Void)}

	if !sig1.Equal(sig2) {
		t.Errorf("structurally identical signatures should be Equal")
	}
	if sig1.Equal(sig3) {
		t.Errorf("signatures with different param counts should not be Equal")
	}
}

func TestByteSizeRespectsPointerWidth(t *testing.T) {
	cases := []struct {
		typ     Type
		ptrSize int
		want    int
	}{
		{Primitive(I8), 8, 1},
		{Primitive(I64), 4, 8},
		{Primitive(Isize), 4, 4},
		{Primitive(Isize), 8, 8},
		{Primitive(Usize), 4, 4},
		{FunctionType(&Signature{}), 4, 4},
		{FunctionType(&Signature{}), 8, 8},
	}
	for _, c := range cases {
		if got := c.typ.ByteSize(c.ptrSize); got != c.want {
			t.Errorf("%v.ByteSize(%d) = %d, want %d", c.typ, c.ptrSize, got, c.want)
		}
	}
}

func TestTypeString(t *testing.T) {
	sig := &Signature{Params: []Type{Primitive(I32)}, ParamNames: []string{"x"}, Required: 1, Results: Primitive(Bool)}
	got := FunctionType(sig).String()
	want := "(x: i32) => bool"
	if got != want {
		t.Errorf("FunctionType(sig).String() = %q, want %q", got, want)
	}

	c := &fakeClass{name: "Box<i32>", size: 4}
	if got := ClassType(c).AsNullable().String(); got != "?Box<i32>" {
		t.Errorf("nullable class type String() = %q, want %q", got, "?Box<i32>")
	}
}

func TestCanonicalTypeArgsKey(t *testing.T) {
	if got := CanonicalTypeArgsKey(nil); got != "" {
		t.Errorf("CanonicalTypeArgsKey(nil) = %q, want empty", got)
	}
	key := CanonicalTypeArgsKey([]Type{Primitive(I32), Primitive(Bool)})
	if want := "i32,bool"; key != want {
		t.Errorf("CanonicalTypeArgsKey = %q, want %q", key, want)
	}
	if diff := cmp.Diff("Box<i32,bool>", NameWithTypeArgs("Box", []Type{Primitive(I32), Primitive(Bool)})); diff != "" {
		t.Errorf("NameWithTypeArgs mismatch (-want +got):\n%s", diff)
	}
	if got := NameWithTypeArgs("Box", nil); got != "Box" {
		t.Errorf("NameWithTypeArgs with no args = %q, want %q", got, "Box")
	}
}
