// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package snode_test

import (
	"testing"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/vecmem/build/snode"
)

func TestParentIsFixed(t *testing.T) {
	root := snode.NewRoot()
	dense := root.Add(snode.Fixed, "dense", 16)
	x := dense.Place("x", dtype.Float32)
	sparse := root.Add(snode.Hash, "sparse", 16)
	y := sparse.Place("y", dtype.Float32)
	tests := []struct {
		node *snode.SNode
		want bool
	}{
		{node: x, want: true},
		{node: y, want: false},
		{node: dense, want: false},
		{node: root, want: false},
		{node: nil, want: false},
	}
	for i, test := range tests {
		if got := test.node.ParentIsFixed(); got != test.want {
			t.Errorf("test %d: %s.ParentIsFixed() = %t but want %t", i, test.node, got, test.want)
		}
	}
}

func TestPathAndFind(t *testing.T) {
	root := snode.NewRoot()
	root.Add(snode.Fixed, "blk", 8).Place("x", dtype.Int32)
	x := root.Find("x")
	if x == nil {
		t.Fatal("cannot find x in the layout tree")
	}
	if got, want := x.Path(), "root.blk.x"; got != want {
		t.Errorf("got path %q but want %q", got, want)
	}
	if got := root.Find("unknown"); got != nil {
		t.Errorf("got %s but want nil", got)
	}
}

func TestKindFromString(t *testing.T) {
	for _, kind := range []snode.Kind{snode.Root, snode.Fixed, snode.Dynamic, snode.Hash, snode.Pointer, snode.Bitmasked, snode.Place} {
		if got := snode.KindFromString(kind.String()); got != kind {
			t.Errorf("KindFromString(%q) = %v but want %v", kind.String(), got, kind)
		}
	}
	if got := snode.KindFromString("dense"); got != snode.Invalid {
		t.Errorf("KindFromString(\"dense\") = %v but want invalid", got)
	}
}
