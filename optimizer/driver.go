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
	"github.com/pkg/errors"
	"github.com/gx-org/vecmem/build/ir"
)

// Stats counts what the driver did.
type Stats struct {
	// Invocations is the number of times the pass has been invoked,
	// including the last invocation on each root finding nothing to rewrite.
	Invocations int
	// Loads is the number of loads replaced by vector loads.
	Loads int
	// Stores is the number of stores replaced by vector stores.
	Stores int
}

// Rewrites returns the total number of rewrites.
func (s Stats) Rewrites() int {
	return s.Loads + s.Stores
}

// Run invokes the pass on each root until an invocation does not rewrite
// anything. Roots are updated when the node they reference is replaced.
func (v *Vectorizer) Run(t *ir.Tree, roots ...*ir.NodeID) (Stats, error) {
	var stats Stats
	for i, root := range roots {
		n := 0
		for ; ; n++ {
			if n >= v.opts.MaxIterations {
				return stats, errors.Errorf("root %d: no fixed point after %d invocations", i, n)
			}
			stats.Invocations++
			rw, err := v.Apply(t, root)
			if err != nil {
				return stats, errors.Wrapf(err, "root %d", i)
			}
			if rw == nil {
				break
			}
			switch rw.Kind {
			case ir.Load:
				stats.Loads++
			case ir.Store:
				stats.Stores++
			}
		}
		v.opts.Logger.Debug("fixed point reached", "root", i, "rewrites", n)
	}
	return stats, nil
}
