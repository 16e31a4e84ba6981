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
	"github.com/gx-org/vecmem/build/fmterr"
	"github.com/gx-org/vecmem/build/ir"
)

// rewrite creates the vector memory access replacing a match.
// All the checks are done before the first node is allocated: if an error
// is returned, neither the tree nor its arena has been modified.
func (v *Vectorizer) rewrite(t *ir.Tree, m *match) (ir.NodeID, error) {
	node := t.Node(m.node)
	indices := t.Node(m.ptr).Ch[1:]
	for _, idx := range indices {
		if lanes := t.Node(idx).Lanes; lanes != v.opts.Width {
			return ir.Nil, fmterr.Internalf("cannot downcast %s node %d of %s node %d to 1 lane: got %d lanes but want %d", t.Node(idx).Kind, idx, node.Kind, m.node, lanes, v.opts.Width)
		}
		if err := t.CheckSetLanes(idx, 1); err != nil {
			return ir.Nil, err
		}
	}
	if node.Kind != ir.Load && node.Kind != ir.Store {
		return ir.Nil, fmterr.Internalf("cannot vectorize %s node %d", node.Kind, m.node)
	}

	var repl ir.NodeID
	switch node.Kind {
	case ir.Load:
		repl = t.Create(ir.VLoad, m.addr)
	case ir.Store:
		repl = t.Create(ir.VStore, m.addr, node.Ch[1])
	}
	replNode := t.Node(repl)
	for _, idx := range indices {
		scalar := t.CopyFrom(idx)
		if err := t.SetLanes(scalar, 1); err != nil {
			return ir.Nil, err
		}
		replNode.Ch = append(replNode.Ch, scalar)
	}
	t.SetSimilar(repl, m.node)
	v.opts.Logger.Info("optimized "+node.Kind.String(), "node", int(m.node), "replacement", int(repl), "lanes", v.opts.Width)
	return repl, nil
}
