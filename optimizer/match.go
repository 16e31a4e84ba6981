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

package optimizer

import (
	"github.com/gx-org/vecmem/base/progression"
	"github.com/gx-org/vecmem/build/fmterr"
	"github.com/gx-org/vecmem/build/ir"
)

// match is a memory access that can be vectorized.
type match struct {
	node ir.NodeID
	ptr  ir.NodeID
	addr ir.NodeID
}

// match returns a non-nil match if the node is a load or a store accessing
// contiguous elements of a fixed layout node, starting at the first element.
//
// Only the innermost index of the pointer is checked.
// TODO: check that the indices of the other dimensions are uniform across lanes.
func (v *Vectorizer) match(t *ir.Tree, id ir.NodeID) (*match, error) {
	node := t.Node(id)
	if node.Kind != ir.Load && node.Kind != ir.Store {
		return nil, nil
	}
	if node.Kind == ir.Store && len(node.Ch) < 2 {
		return nil, fmterr.Internalf("store node %d has no value", id)
	}
	ptr, err := t.Pointer(id)
	if err != nil {
		return nil, err
	}
	addr, err := t.Address(ptr)
	if err != nil {
		return nil, err
	}
	lanes := t.Node(addr).Lanes
	allSame := true
	for i := range lanes {
		if t.NewAddresses(addr, i) != t.NewAddresses(addr, 0) {
			allSame = false
		}
	}

	ptrCh := t.Node(ptr).Ch
	idx := ptrCh[len(ptrCh)-1]
	idxNode := t.Node(idx)
	if idxNode.Kind != ir.Index {
		return nil, nil
	}
	if idxNode.Lanes == 1 && len(idxNode.Offsets) == 1 {
		// A uniform index is broadcast to all lanes: stride 0.
		return nil, nil
	}
	if len(idxNode.Offsets) < lanes {
		return nil, fmterr.Internalf("index node %d has %d offsets for an address with %d lanes", idx, len(idxNode.Offsets), lanes)
	}
	start, stride, incremental := progression.Arithmetic(lanes, func(i int) int {
		return t.IndexOffset(idx, i)
	})
	if !allSame || !incremental || start != 0 || stride != 1 {
		return nil, nil
	}
	if !t.NewAddresses(addr, 0).ParentIsFixed() {
		return nil, nil
	}
	return &match{node: id, ptr: ptr, addr: addr}, nil
}
