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

// Package ir is the expression tree rewritten by the optimizer.
//
// Nodes are stored in an arena (a Tree) and refer to their children by
// NodeID. Replacing a node in the tree writes the NodeID of the
// replacement in the slot referencing the original node: either a child
// slot of its parent or a root handle held by the caller. Replaced nodes
// stay in the arena but are unreachable.
package ir

import (
	"slices"

	"github.com/gx-org/backend/shape"
	"github.com/gx-org/vecmem/build/fmterr"
	"github.com/gx-org/vecmem/build/snode"
)

// NodeID identifies a node in a tree.
type NodeID int

// Nil is an invalid node identifier.
const Nil NodeID = -1

type (
	// Node in the expression tree.
	Node struct {
		Kind Kind
		// Ch are the children of the node.
		Ch []NodeID
		// Lanes is the number of lanes the node represents:
		// 1 for a scalar, the vector width for a group of lanes.
		Lanes int
		// Similar is the type and shape annotation computed by type inference.
		Similar *shape.Shape

		// Addresses are the locations in the layout tree for each lane.
		// Only set for Address nodes.
		Addresses []*snode.SNode
		// Offsets are the element offsets for each lane.
		// Only set for Index nodes.
		Offsets []int

		// Name of a variable or of a binary operator.
		Name string
		// Value of a constant.
		Value int64
	}

	// Tree is an arena storing all the nodes of an expression tree.
	Tree struct {
		nodes []*Node
	}
)

// NewTree returns a new empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Len returns the number of nodes allocated in the arena,
// including nodes that have been replaced.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Valid returns true if the identifier refers to a node of the tree.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns the node given its identifier.
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes[id]
}

// Add a node to the arena and returns its identifier.
func (t *Tree) Add(node *Node) NodeID {
	t.nodes = append(t.nodes, node)
	return NodeID(len(t.nodes) - 1)
}

// Create a new scalar node of a given kind with some children.
func (t *Tree) Create(kind Kind, ch ...NodeID) NodeID {
	return t.Add(&Node{
		Kind:  kind,
		Ch:    slices.Clone(ch),
		Lanes: 1,
	})
}

// CopyFrom creates a new node with the same content as another node.
// The children are shared between the two nodes.
func (t *Tree) CopyFrom(id NodeID) NodeID {
	src := t.Node(id)
	return t.Add(&Node{
		Kind:      src.Kind,
		Ch:        slices.Clone(src.Ch),
		Lanes:     src.Lanes,
		Similar:   cloneShape(src.Similar),
		Addresses: slices.Clone(src.Addresses),
		Offsets:   slices.Clone(src.Offsets),
		Name:      src.Name,
		Value:     src.Value,
	})
}

// CheckSetLanes returns an error if SetLanes would fail for the same
// arguments. The node is not modified.
func (t *Tree) CheckSetLanes(id NodeID, lanes int) error {
	node := t.Node(id)
	if lanes < 1 {
		return fmterr.Internalf("cannot set %d lanes to %s node %d", lanes, node.Kind, id)
	}
	switch node.Kind {
	case Address:
		if lanes > len(node.Addresses) {
			return fmterr.Internalf("cannot set %d lanes to address node %d: only %d addresses", lanes, id, len(node.Addresses))
		}
	case Index:
		if lanes > len(node.Offsets) {
			return fmterr.Internalf("cannot set %d lanes to index node %d: only %d offsets", lanes, id, len(node.Offsets))
		}
	}
	return nil
}

// SetLanes sets the number of lanes of a node.
// Per-lane data of address and index nodes are truncated to the new
// number of lanes. A node cannot get more lanes than it has data for.
func (t *Tree) SetLanes(id NodeID, lanes int) error {
	if err := t.CheckSetLanes(id, lanes); err != nil {
		return err
	}
	node := t.Node(id)
	switch node.Kind {
	case Address:
		node.Addresses = node.Addresses[:lanes:lanes]
	case Index:
		node.Offsets = node.Offsets[:lanes:lanes]
	}
	node.Lanes = lanes
	return nil
}

// SetSimilar copies the number of lanes and the type annotation
// of a node to another.
func (t *Tree) SetSimilar(dst, src NodeID) {
	dstNode, srcNode := t.Node(dst), t.Node(src)
	dstNode.Lanes = srcNode.Lanes
	dstNode.Similar = cloneShape(srcNode.Similar)
}

// Pointer returns the pointer child of a load or a store.
func (t *Tree) Pointer(id NodeID) (NodeID, error) {
	node := t.Node(id)
	if len(node.Ch) == 0 {
		return Nil, fmterr.Internalf("%s node %d has no pointer", node.Kind, id)
	}
	ptr := node.Ch[0]
	if kind := t.Node(ptr).Kind; kind != Pointer {
		return Nil, fmterr.Internalf("first child of %s node %d is a %s node: want a pointer", node.Kind, id, kind)
	}
	return ptr, nil
}

// Address returns the address child of a pointer.
func (t *Tree) Address(ptr NodeID) (NodeID, error) {
	node := t.Node(ptr)
	if len(node.Ch) == 0 {
		return Nil, fmterr.Internalf("pointer node %d has no address", ptr)
	}
	addr := node.Ch[0]
	addrNode := t.Node(addr)
	if addrNode.Kind != Address {
		return Nil, fmterr.Internalf("first child of pointer node %d is a %s node: want an address", ptr, addrNode.Kind)
	}
	if len(addrNode.Addresses) != addrNode.Lanes {
		return Nil, fmterr.Internalf("address node %d has %d lanes but %d addresses", addr, addrNode.Lanes, len(addrNode.Addresses))
	}
	return addr, nil
}

// NewAddresses returns the location in the layout tree of a given lane
// of an address node.
func (t *Tree) NewAddresses(addr NodeID, lane int) *snode.SNode {
	return t.Node(addr).Addresses[lane]
}

// IndexOffset returns the element offset of a given lane of an index node.
func (t *Tree) IndexOffset(idx NodeID, lane int) int {
	return t.Node(idx).Offsets[lane]
}

// Walk calls f on all the nodes reachable from root, parents before children.
// The children of a node are skipped if f returns false.
func (t *Tree) Walk(root NodeID, f func(NodeID) bool) {
	if !f(root) {
		return
	}
	for _, ch := range t.Node(root).Ch {
		t.Walk(ch, f)
	}
}

func cloneShape(sh *shape.Shape) *shape.Shape {
	if sh == nil {
		return nil
	}
	return &shape.Shape{
		DType:       sh.DType,
		AxisLengths: slices.Clone(sh.AxisLengths),
	}
}
