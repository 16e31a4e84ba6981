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

package ir

import (
	"slices"

	"github.com/gx-org/backend/shape"
	"github.com/gx-org/vecmem/build/snode"
)

// NewAddress creates an address node with one lane per location.
func (t *Tree) NewAddress(addrs ...*snode.SNode) NodeID {
	return t.Add(&Node{
		Kind:      Address,
		Lanes:     len(addrs),
		Addresses: slices.Clone(addrs),
	})
}

// NewIndex creates an index node with one lane per offset.
// name is the loop variable the index is derived from.
func (t *Tree) NewIndex(name string, offsets ...int) NodeID {
	return t.Add(&Node{
		Kind:    Index,
		Lanes:   len(offsets),
		Offsets: slices.Clone(offsets),
		Name:    name,
	})
}

// NewPointer creates a pointer from an address and the indices of each
// dimension, the innermost dimension last.
// The pointer has the same number of lanes as its address.
func (t *Tree) NewPointer(addr NodeID, indices ...NodeID) NodeID {
	return t.Add(&Node{
		Kind:  Pointer,
		Ch:    append([]NodeID{addr}, indices...),
		Lanes: t.Node(addr).Lanes,
	})
}

// NewLoad creates a load from a pointer.
func (t *Tree) NewLoad(ptr NodeID, sim *shape.Shape) NodeID {
	return t.Add(&Node{
		Kind:    Load,
		Ch:      []NodeID{ptr},
		Lanes:   t.Node(ptr).Lanes,
		Similar: sim,
	})
}

// NewStore creates a store of a value to a pointer.
func (t *Tree) NewStore(ptr, value NodeID, sim *shape.Shape) NodeID {
	return t.Add(&Node{
		Kind:    Store,
		Ch:      []NodeID{ptr, value},
		Lanes:   t.Node(ptr).Lanes,
		Similar: sim,
	})
}

// NewConst creates a constant broadcast over a number of lanes.
func (t *Tree) NewConst(lanes int, val int64) NodeID {
	return t.Add(&Node{
		Kind:  Const,
		Lanes: lanes,
		Value: val,
	})
}

// NewVar creates a reference to a loop variable.
func (t *Tree) NewVar(lanes int, name string) NodeID {
	return t.Add(&Node{
		Kind:  Var,
		Lanes: lanes,
		Name:  name,
	})
}

// NewBinary creates a binary operation.
func (t *Tree) NewBinary(op string, x, y NodeID) NodeID {
	return t.Add(&Node{
		Kind:    Binary,
		Ch:      []NodeID{x, y},
		Lanes:   t.Node(x).Lanes,
		Similar: cloneShape(t.Node(x).Similar),
		Name:    op,
	})
}

// NewBlock creates a sequence of statements.
func (t *Tree) NewBlock(stmts ...NodeID) NodeID {
	return t.Create(Block, stmts...)
}
