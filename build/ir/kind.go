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

// Kind of a node in the expression tree.
type Kind uint

// Kinds of nodes.
const (
	Invalid Kind = iota

	// Block is a sequence of statements.
	Block
	// Const is a constant integer value.
	Const
	// Var is a reference to a loop variable.
	Var
	// Binary is a binary operation between its two children.
	Binary

	// Pointer computes the location of an element in the layout tree.
	// Its first child is an Address node and the remaining children
	// are the Index nodes of each dimension, the innermost last.
	Pointer
	// Address is the base location resolved for each lane.
	Address
	// Index is the offset of one dimension for each lane.
	Index

	// Load reads one element per lane.
	// Its only child is a Pointer node.
	Load
	// Store writes one element per lane.
	// Its children are a Pointer node and the value to store.
	Store
	// VLoad reads contiguous elements in one vector operation.
	// Its children are an Address node followed by scalar indices.
	VLoad
	// VStore writes contiguous elements in one vector operation.
	// Its children are an Address node, the value to store,
	// and scalar indices.
	VStore

	// Max value for a Kind constant.
	Max
)

var kindNames = [Max]string{
	Invalid: "invalid",
	Block:   "block",
	Const:   "const",
	Var:     "var",
	Binary:  "binary",
	Pointer: "pointer",
	Address: "address",
	Index:   "index",
	Load:    "load",
	Store:   "store",
	VLoad:   "vload",
	VStore:  "vstore",
}

// String returns a string representation of a kind.
func (k Kind) String() string {
	if k >= Max {
		return "invalid"
	}
	return kindNames[k]
}

// KindFromString returns a kind given its name.
// It returns Invalid if the name is unknown.
func KindFromString(s string) Kind {
	for k, name := range kindNames {
		if name == s {
			return Kind(k)
		}
	}
	return Invalid
}

// IsMemoryAccess returns true if the kind reads or writes memory.
func (k Kind) IsMemoryAccess() bool {
	switch k {
	case Load, Store, VLoad, VStore:
		return true
	default:
		return false
	}
}

// IsVector returns true if the kind is a vector memory access.
func (k Kind) IsVector() bool {
	return k == VLoad || k == VStore
}
