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

// Package progression detects arithmetic progressions in integer sequences.
package progression

import "golang.org/x/exp/constraints"

// Arithmetic checks if the first n values returned by at form an arithmetic
// progression, that is at(i) + stride == at(i+1) for all i.
// The start and the stride are computed from the first two values.
// ok is false if n is less than 2.
func Arithmetic[T constraints.Integer](n int, at func(int) T) (start, stride T, ok bool) {
	if n < 2 {
		return
	}
	start = at(0)
	stride = at(1) - start
	ok = true
	for i := 0; i+1 < n; i++ {
		if at(i)+stride != at(i+1) {
			ok = false
		}
	}
	return
}

// Of checks if a slice is an arithmetic progression.
func Of[T constraints.Integer](vals []T) (start, stride T, ok bool) {
	return Arithmetic(len(vals), func(i int) T { return vals[i] })
}

// IsUnit returns true if the sequence starts at 0 and increments by 1.
func IsUnit[T constraints.Integer](n int, at func(int) T) bool {
	start, stride, ok := Arithmetic(n, at)
	return ok && start == 0 && stride == 1
}
