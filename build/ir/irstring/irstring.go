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

// Package irstring builds a string representation of an expression tree.
package irstring

import (
	"fmt"
	"strings"

	"github.com/gx-org/vecmem/build/ir"
)

// String returns a representation of the tree rooted at a node,
// one node per line, children indented below their parent.
func String(t *ir.Tree, root ir.NodeID) string {
	return build(t, root, false)
}

// WithIDs returns the same representation as String with each line
// prefixed by the node identifier.
func WithIDs(t *ir.Tree, root ir.NodeID) string {
	return build(t, root, true)
}

func build(t *ir.Tree, root ir.NodeID, ids bool) string {
	var s strings.Builder
	write(&s, t, root, 0, ids)
	return strings.TrimSuffix(s.String(), "\n")
}

func write(s *strings.Builder, t *ir.Tree, id ir.NodeID, depth int, ids bool) {
	s.WriteString(strings.Repeat("\t", depth))
	if ids {
		fmt.Fprintf(s, "#%d ", id)
	}
	s.WriteString(Node(t.Node(id)))
	s.WriteString("\n")
	for _, ch := range t.Node(id).Ch {
		write(s, t, ch, depth+1, ids)
	}
}

// Node returns a one line representation of a node, excluding its children.
func Node(node *ir.Node) string {
	var s strings.Builder
	fmt.Fprintf(&s, "%s<%d>", node.Kind, node.Lanes)
	switch node.Kind {
	case ir.Const:
		fmt.Fprintf(&s, " %d", node.Value)
	case ir.Var, ir.Binary:
		fmt.Fprintf(&s, " %s", node.Name)
	case ir.Address:
		names := make([]string, len(node.Addresses))
		for i, addr := range node.Addresses {
			names[i] = "<nil>"
			if addr != nil {
				names[i] = addr.Name
			}
		}
		fmt.Fprintf(&s, " [%s]", strings.Join(names, " "))
	case ir.Index:
		fmt.Fprintf(&s, " %s %v", node.Name, node.Offsets)
	}
	if sim := ir.SimilarString(node.Similar); sim != "" {
		s.WriteString(" ")
		s.WriteString(sim)
	}
	return s.String()
}
