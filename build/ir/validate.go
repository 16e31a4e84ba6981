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
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Validate checks that a tree is well formed for a given vector width:
// every node reachable from root has either 1 or width lanes, per-lane data
// match the number of lanes, and memory accesses have the expected children.
// All the problems found are returned.
func Validate(t *Tree, root NodeID, width int) error {
	if !t.Valid(root) {
		return errors.Errorf("invalid root node %d", root)
	}
	var errs error
	t.Walk(root, func(id NodeID) bool {
		node := t.Node(id)
		for _, ch := range node.Ch {
			if !t.Valid(ch) {
				errs = multierr.Append(errs, errors.Errorf("%s node %d: invalid child %d", node.Kind, id, ch))
				return false
			}
		}
		if node.Lanes != 1 && node.Lanes != width {
			errs = multierr.Append(errs, errors.Errorf("%s node %d has %d lanes: want 1 or %d", node.Kind, id, node.Lanes, width))
		}
		errs = multierr.Append(errs, validateNode(t, id, node))
		return true
	})
	return errs
}

func validateNode(t *Tree, id NodeID, node *Node) error {
	switch node.Kind {
	case Invalid:
		return errors.Errorf("node %d has an invalid kind", id)
	case Address:
		if len(node.Addresses) != node.Lanes {
			return errors.Errorf("address node %d has %d lanes but %d addresses", id, node.Lanes, len(node.Addresses))
		}
		for lane, addr := range node.Addresses {
			if addr == nil {
				return errors.Errorf("address node %d: no location for lane %d", id, lane)
			}
		}
	case Index:
		if len(node.Offsets) != node.Lanes {
			return errors.Errorf("index node %d has %d lanes but %d offsets", id, node.Lanes, len(node.Offsets))
		}
	case Pointer:
		if _, err := t.Address(id); err != nil {
			return err
		}
	case Load:
		if len(node.Ch) != 1 {
			return errors.Errorf("load node %d has %d children: want 1", id, len(node.Ch))
		}
		if _, err := t.Pointer(id); err != nil {
			return err
		}
	case Store:
		if len(node.Ch) != 2 {
			return errors.Errorf("store node %d has %d children: want 2", id, len(node.Ch))
		}
		if _, err := t.Pointer(id); err != nil {
			return err
		}
	case VLoad, VStore:
		minCh := 1
		if node.Kind == VStore {
			minCh = 2
		}
		if len(node.Ch) < minCh {
			return errors.Errorf("%s node %d has %d children: want at least %d", node.Kind, id, len(node.Ch), minCh)
		}
		if kind := t.Node(node.Ch[0]).Kind; kind != Address {
			return errors.Errorf("first child of %s node %d is a %s node: want an address", node.Kind, id, kind)
		}
	case Binary:
		if len(node.Ch) != 2 {
			return errors.Errorf("binary node %d has %d children: want 2", id, len(node.Ch))
		}
	}
	return nil
}
