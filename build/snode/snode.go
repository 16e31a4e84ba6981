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

// Package snode is the structured layout tree describing how the data
// accessed by an expression tree is laid out in memory.
//
// Each layout node has a kind. Only the fixed kind guarantees that the
// elements of the node are allocated densely and contiguously.
package snode

import (
	"fmt"
	"strings"

	"github.com/gx-org/backend/dtype"
)

// Kind of a layout node.
type Kind uint

// Kinds of layout nodes.
const (
	Invalid Kind = iota
	// Root of a layout tree.
	Root
	// Fixed is a dense, contiguous, pointer-free allocation.
	Fixed
	// Dynamic is a dense allocation whose length is only known at runtime.
	Dynamic
	// Hash is a sparse allocation indexed by a hash table.
	Hash
	// Pointer is an allocation where each cell is a pointer to its children.
	Pointer
	// Bitmasked is a dense allocation with a bit mask for active cells.
	Bitmasked
	// Place is a leaf storing elements of a data type.
	Place
)

var kindNames = map[Kind]string{
	Root:      "root",
	Fixed:     "fixed",
	Dynamic:   "dynamic",
	Hash:      "hash",
	Pointer:   "pointer",
	Bitmasked: "bitmasked",
	Place:     "place",
}

// String returns a string representation of a kind.
func (k Kind) String() string {
	s, ok := kindNames[k]
	if !ok {
		return "invalid"
	}
	return s
}

// KindFromString returns a kind given its name.
// It returns Invalid if the name is unknown.
func KindFromString(s string) Kind {
	for k, name := range kindNames {
		if name == s {
			return k
		}
	}
	return Invalid
}

// SNode is a node in the layout tree.
type SNode struct {
	Kind Kind
	Name string
	// Extent is the number of cells allocated by the node.
	Extent int
	// DType is the element type of a place.
	DType dtype.DataType

	Parent   *SNode
	Children []*SNode
}

// NewRoot returns the root of a new layout tree.
func NewRoot() *SNode {
	return &SNode{Kind: Root, Name: "root"}
}

// Add a child to the node.
func (sn *SNode) Add(kind Kind, name string, extent int) *SNode {
	child := &SNode{
		Kind:   kind,
		Name:   name,
		Extent: extent,
		Parent: sn,
	}
	sn.Children = append(sn.Children, child)
	return child
}

// Place adds a leaf storing elements of the given type.
func (sn *SNode) Place(name string, dt dtype.DataType) *SNode {
	leaf := sn.Add(Place, name, 1)
	leaf.DType = dt
	return leaf
}

// IsFixed returns true if the node is a fixed layout node.
func (sn *SNode) IsFixed() bool {
	return sn != nil && sn.Kind == Fixed
}

// ParentIsFixed returns true if the node is stored in a fixed layout node,
// that is if consecutive elements of the node are contiguous in memory.
func (sn *SNode) ParentIsFixed() bool {
	return sn != nil && sn.Parent.IsFixed()
}

// Path returns the names of all the nodes from the root to this node.
func (sn *SNode) Path() string {
	var names []string
	for cur := sn; cur != nil; cur = cur.Parent {
		names = append(names, cur.Name)
	}
	var s strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		s.WriteString(names[i])
		if i > 0 {
			s.WriteString(".")
		}
	}
	return s.String()
}

// Find returns the first node in the subtree with the given name.
func (sn *SNode) Find(name string) *SNode {
	if sn == nil {
		return nil
	}
	if sn.Name == name {
		return sn
	}
	for _, child := range sn.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// String returns the name of the node and its kind.
func (sn *SNode) String() string {
	if sn == nil {
		return "<nil>"
	}
	if sn.Kind == Place {
		return fmt.Sprintf("%s:%s", sn.Name, sn.DType)
	}
	return fmt.Sprintf("%s:%s[%d]", sn.Name, sn.Kind, sn.Extent)
}
