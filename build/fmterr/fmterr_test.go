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

package fmterr_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/gx-org/vecmem/build/fmterr"
)

func TestInternal(t *testing.T) {
	err := fmterr.Internalf("node %d has %d lanes", 3, 4)
	if !fmterr.IsInternal(err) {
		t.Errorf("error %v not marked as internal", err)
	}
	wrapped := errors.Wrap(err, "cannot optimize")
	if !fmterr.IsInternal(wrapped) {
		t.Errorf("wrapped error %v not marked as internal", wrapped)
	}
	if !strings.Contains(err.Error(), "node 3 has 4 lanes") {
		t.Errorf("error message %q does not contain the cause", err.Error())
	}
	if fmterr.IsInternal(errors.New("not internal")) {
		t.Errorf("error incorrectly marked as internal")
	}
	if fmterr.Internal(nil) != nil {
		t.Errorf("Internal(nil) should return nil")
	}
	if s := fmt.Sprintf("%+v", err); !strings.Contains(s, "node 3 has 4 lanes") {
		t.Errorf("verbose format %q does not contain the cause", s)
	}
}
