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

// Package interp evaluates the elements accessed by memory operations.
//
// It is used to check that replacing scalar memory accesses by vector
// memory accesses does not change which elements are read or written.
package interp

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"
	"github.com/gx-org/vecmem/build/ir"
	"github.com/gx-org/vecmem/build/snode"
)

// Access is the element accessed by one lane.
type Access struct {
	// Place is the location in the layout tree.
	Place *snode.SNode
	// Coord are the element offsets in each dimension, innermost last.
	Coord []int
}

// String representation of the access.
func (a Access) String() string {
	return fmt.Sprintf("%s%v", a.Place.Path(), a.Coord)
}

// Accesses returns the element accessed by each lane of a memory access.
func Accesses(t *ir.Tree, id ir.NodeID) ([]Access, error) {
	node := t.Node(id)
	if !node.Kind.IsMemoryAccess() {
		return nil, errors.Errorf("%s node %d is not a memory access", node.Kind, id)
	}
	if !node.Kind.IsVector() {
		return scalarAccesses(t, id)
	}
	// The value stored by a vstore comes before its indices.
	first := 1
	if node.Kind == ir.VStore {
		first = 2
	}
	if len(node.Ch) < first {
		return nil, errors.Errorf("%s node %d has %d children: want at least %d", node.Kind, id, len(node.Ch), first)
	}
	return vectorAccesses(t, id, node.Ch[first:])
}

func offset(t *ir.Tree, idx ir.NodeID, lane int) (int, error) {
	node := t.Node(idx)
	if node.Kind != ir.Index {
		return 0, errors.Errorf("cannot evaluate the offset of %s node %d", node.Kind, idx)
	}
	if len(node.Offsets) == 1 {
		// Uniform index broadcast to all lanes.
		return node.Offsets[0], nil
	}
	if lane >= len(node.Offsets) {
		return 0, errors.Errorf("index node %d has no offset for lane %d", idx, lane)
	}
	return node.Offsets[lane], nil
}

func scalarAccesses(t *ir.Tree, id ir.NodeID) ([]Access, error) {
	ptr, err := t.Pointer(id)
	if err != nil {
		return nil, err
	}
	addr, err := t.Address(ptr)
	if err != nil {
		return nil, err
	}
	indices := t.Node(ptr).Ch[1:]
	lanes := t.Node(addr).Lanes
	accs := make([]Access, lanes)
	for lane := range lanes {
		acc := Access{
			Place: t.NewAddresses(addr, lane),
			Coord: make([]int, len(indices)),
		}
		for d, idx := range indices {
			if acc.Coord[d], err = offset(t, idx, lane); err != nil {
				return nil, err
			}
		}
		accs[lane] = acc
	}
	return accs, nil
}

func vectorAccesses(t *ir.Tree, id ir.NodeID, indices []ir.NodeID) ([]Access, error) {
	node := t.Node(id)
	addr := node.Ch[0]
	if kind := t.Node(addr).Kind; kind != ir.Address {
		return nil, errors.Errorf("first child of %s node %d is a %s node: want an address", node.Kind, id, kind)
	}
	base := make([]int, len(indices))
	for d, idx := range indices {
		var err error
		if base[d], err = offset(t, idx, 0); err != nil {
			return nil, err
		}
	}
	accs := make([]Access, node.Lanes)
	for lane := range node.Lanes {
		coord := slices.Clone(base)
		if len(coord) > 0 {
			coord[len(coord)-1] += lane
		}
		accs[lane] = Access{
			Place: t.NewAddresses(addr, 0),
			Coord: coord,
		}
	}
	return accs, nil
}
