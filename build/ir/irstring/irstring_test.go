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

package irstring_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/vecmem/build/ir"
	"github.com/gx-org/vecmem/build/ir/irstring"
	"github.com/gx-org/vecmem/build/snode"
)

func TestString(t *testing.T) {
	root := snode.NewRoot()
	x := root.Add(snode.Fixed, "blk", 4).Place("x", dtype.Float32)
	tree := ir.NewTree()
	addr := tree.NewAddress(x, x, x, x)
	idx := tree.NewIndex("i", 0, 1, 2, 3)
	ptr := tree.NewPointer(addr, idx)
	val := tree.NewBinary("+", tree.NewVar(4, "i"), tree.NewConst(4, 1))
	store := tree.NewStore(ptr, val, &shape.Shape{DType: dtype.Float32, AxisLengths: []int{4}})
	tests := []struct {
		got  string
		want string
	}{
		{
			got: irstring.String(tree, store),
			want: `
store<4> float32[4]
	pointer<4>
		address<4> [x x x x]
		index<4> i [0 1 2 3]
	binary<4> +
		var<4> i
		const<4> 1
`,
		},
		{
			got: irstring.WithIDs(tree, ptr),
			want: `
#2 pointer<4>
	#0 address<4> [x x x x]
	#1 index<4> i [0 1 2 3]
`,
		},
	}
	for i, test := range tests {
		want := strings.TrimSpace(test.want)
		if test.got != want {
			t.Errorf("test %d: got:\n%s\nbut want:\n%s\ndiff:\n%s", i, test.got, want, cmp.Diff(test.got, want))
		}
	}
}
