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

package interp_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/vecmem/build/ir"
	"github.com/gx-org/vecmem/build/snode"
	"github.com/gx-org/vecmem/interp"
)

func toStrings(accs []interp.Access) []string {
	ss := make([]string, len(accs))
	for i, acc := range accs {
		ss[i] = acc.String()
	}
	return ss
}

func TestAccesses(t *testing.T) {
	root := snode.NewRoot()
	x := root.Add(snode.Fixed, "blk", 4).Place("x", dtype.Int32)
	tree := ir.NewTree()
	addr := tree.NewAddress(x, x, x, x)
	outer := tree.NewIndex("j", 2, 2, 2, 2)
	inner := tree.NewIndex("i", 0, 1, 2, 3)
	load := tree.NewLoad(tree.NewPointer(addr, outer, inner), nil)

	vload := tree.Create(ir.VLoad, addr, tree.NewIndex("j", 2), tree.NewIndex("i", 0))
	tree.SetSimilar(vload, load)

	want := []string{
		"root.blk.x[2 0]",
		"root.blk.x[2 1]",
		"root.blk.x[2 2]",
		"root.blk.x[2 3]",
	}
	for _, id := range []ir.NodeID{load, vload} {
		accs, err := interp.Accesses(tree, id)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, toStrings(accs)); diff != "" {
			t.Errorf("incorrect accesses for %s node:\n%s", tree.Node(id).Kind, diff)
		}
	}
}

func TestAccessesStrided(t *testing.T) {
	root := snode.NewRoot()
	x := root.Add(snode.Fixed, "blk", 8).Place("x", dtype.Int32)
	tree := ir.NewTree()
	store := tree.NewStore(
		tree.NewPointer(tree.NewAddress(x, x), tree.NewIndex("i", 0, 2)),
		tree.NewConst(2, 0),
		nil,
	)
	accs, err := interp.Accesses(tree, store)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"root.blk.x[0]", "root.blk.x[2]"}, toStrings(accs)); diff != "" {
		t.Errorf("incorrect accesses:\n%s", diff)
	}
}

func TestAccessesVStore(t *testing.T) {
	root := snode.NewRoot()
	x := root.Add(snode.Fixed, "blk", 4).Place("x", dtype.Int32)
	tree := ir.NewTree()
	addr := tree.NewAddress(x, x, x, x)
	value := tree.NewVar(4, "v")
	vstore := tree.Create(ir.VStore, addr, value, tree.NewIndex("i", 0))
	tree.SetSimilar(vstore, value)
	accs, err := interp.Accesses(tree, vstore)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"root.blk.x[0]", "root.blk.x[1]", "root.blk.x[2]", "root.blk.x[3]"}
	if diff := cmp.Diff(want, toStrings(accs)); diff != "" {
		t.Errorf("incorrect accesses:\n%s", diff)
	}
}

func TestAccessesErrors(t *testing.T) {
	root := snode.NewRoot()
	x := root.Add(snode.Fixed, "blk", 8).Place("x", dtype.Int32)
	tree := ir.NewTree()
	cst := tree.NewConst(1, 0)
	if _, err := interp.Accesses(tree, cst); err == nil {
		t.Errorf("expected an error for a constant")
	}
	load := tree.NewLoad(tree.NewPointer(tree.NewAddress(x, x), tree.NewVar(2, "i")), nil)
	if _, err := interp.Accesses(tree, load); err == nil {
		t.Errorf("expected an error for a variable index")
	}
	vload := tree.Create(ir.VLoad)
	if _, err := interp.Accesses(tree, vload); err == nil {
		t.Errorf("expected an error for a vload without children")
	}
}
