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

// Package optimizer vectorizes memory accesses in an expression tree.
//
// The pass looks for scalar loads and stores whose lanes access contiguous
// elements of a fixed layout node, starting at the first element, and
// replaces each of them by a single vector load or store.
//
// One invocation performs at most one rewrite: the tree is traversed
// depth-first, children before their parent, and the traversal stops at
// the first rewrite. The driver (see Run) invokes the pass until a
// traversal finds nothing to rewrite.
package optimizer

import (
	"github.com/gx-org/vecmem/api/options"
	"github.com/gx-org/vecmem/build/ir"
)

type (
	// Outcome of the search for a rewrite in a subtree.
	// It is one of NoChange, Replaced, or Rewritten.
	Outcome interface {
		// outcome marks a structure as an outcome.
		// It prevents external implementations of the interface.
		outcome()
	}

	// NoChange means that no node of the subtree has been rewritten.
	NoChange struct{}

	// Replaced means that the root of the subtree needs to be replaced.
	// The caller owns the slot referencing the root and is responsible for
	// writing the identifier of the replacement in it.
	Replaced struct {
		Rewrite
	}

	// Rewritten means that a node strictly below the root of the subtree
	// has been replaced. The slot referencing it has already been updated.
	Rewritten struct {
		Rewrite
	}

	// Rewrite describes a node replacement.
	Rewrite struct {
		// Old is the node that has been replaced.
		Old ir.NodeID
		// New is the replacement.
		New ir.NodeID
		// Kind of the node that has been replaced.
		Kind ir.Kind
	}
)

func (NoChange) outcome()  {}
func (Replaced) outcome()  {}
func (Rewritten) outcome() {}

// Vectorizer replaces scalar memory accesses by vector memory accesses.
// A Vectorizer does not keep any reference to a tree between invocations.
type Vectorizer struct {
	opts *options.Options
}

// New returns a new vectorizer.
func New(opts ...options.Option) (*Vectorizer, error) {
	o, err := options.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Vectorizer{opts: o}, nil
}

// Width returns the number of lanes of the vector memory accesses.
func (v *Vectorizer) Width() int {
	return v.opts.Width
}

// Search looks for one rewrite in the subtree rooted at root.
// If the root itself has to be replaced, the caller needs to update the slot
// referencing it (see Replaced).
func (v *Vectorizer) Search(t *ir.Tree, root ir.NodeID) (Outcome, error) {
	node := t.Node(root)
	for i, ch := range node.Ch {
		out, err := v.Search(t, ch)
		if err != nil {
			return nil, err
		}
		switch outT := out.(type) {
		case Replaced:
			node.Ch[i] = outT.New
			return Rewritten{Rewrite: outT.Rewrite}, nil
		case Rewritten:
			return outT, nil
		}
	}
	m, err := v.match(t, root)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return NoChange{}, nil
	}
	repl, err := v.rewrite(t, m)
	if err != nil {
		return nil, err
	}
	return Replaced{Rewrite: Rewrite{
		Old:  root,
		New:  repl,
		Kind: node.Kind,
	}}, nil
}

// Apply performs at most one rewrite in the subtree referenced by expr.
// If the node referenced by expr is replaced, expr is updated to reference
// the replacement. Apply returns nil if nothing has been rewritten.
func (v *Vectorizer) Apply(t *ir.Tree, expr *ir.NodeID) (*Rewrite, error) {
	out, err := v.Search(t, *expr)
	if err != nil {
		return nil, err
	}
	switch outT := out.(type) {
	case Replaced:
		*expr = outT.New
		return &outT.Rewrite, nil
	case Rewritten:
		return &outT.Rewrite, nil
	}
	return nil, nil
}

// SearchAndReplace performs at most one rewrite in the subtree referenced
// by expr and returns true if a node has been rewritten.
func (v *Vectorizer) SearchAndReplace(t *ir.Tree, expr *ir.NodeID) (bool, error) {
	rw, err := v.Apply(t, expr)
	return rw != nil, err
}
