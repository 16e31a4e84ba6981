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

// Package fmterr provides helpers to report errors caused by a malformed
// tree. These errors are bugs in an earlier pass and are never expected
// during a normal compilation.
package fmterr

import (
	"fmt"

	"github.com/pkg/errors"
)

type internalError struct {
	err error
}

// Internal marks an error as internal.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	return &internalError{err: err}
}

// Internalf returns a formatted internal error.
func Internalf(format string, a ...any) error {
	return Internal(errors.Errorf(format, a...))
}

// IsInternal returns true if the error, or an error it wraps, has been
// marked as internal.
func IsInternal(err error) bool {
	var iErr *internalError
	return errors.As(err, &iErr)
}

// Error returns a string description of the error.
func (err *internalError) Error() string {
	return fmt.Sprintf("vecmem internal error. This is a bug in a previous pass. Error:\n%s", err.err.Error())
}

// Unwrap the error.
func (err *internalError) Unwrap() error {
	return err.err
}

// Format writes the error into the state of the formatter.
// The stack trace of the wrapped error is printed with %+v.
func (err *internalError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "vecmem internal error. This is a bug in a previous pass. Error:\n%+v", err.err)
		return
	}
	fmt.Fprint(s, err.Error())
}
