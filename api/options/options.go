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

// Package options specifies options for the memory access vectorizer.
package options

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
)

const (
	// DefaultWidth is the default number of lanes of a vector memory access.
	DefaultWidth = 8
	// DefaultMaxIterations is the default maximum number of pass invocations
	// on one root before the driver gives up reaching a fixed point.
	DefaultMaxIterations = 1 << 16
)

type (
	// Options of the vectorizer.
	Options struct {
		// Width is the number of lanes W of a vector memory access.
		Width int
		// Logger receives diagnostics about the rewrites.
		Logger *slog.Logger
		// MaxIterations bounds the number of pass invocations on one root.
		MaxIterations int
	}

	// Option modifies options.
	Option func(*Options)
)

// WithWidth sets the vector width.
func WithWidth(width int) Option {
	return func(o *Options) {
		o.Width = width
	}
}

// WithLogger sets the logger receiving diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithMaxIterations sets the maximum number of invocations of the pass on
// a single root.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		o.MaxIterations = n
	}
}

// New returns options with default values modified by opts.
func New(opts ...Option) (*Options, error) {
	o := &Options{
		Width:         DefaultWidth,
		MaxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Width < 2 {
		return nil, errors.Errorf("invalid vector width %d: must be at least 2", o.Width)
	}
	if o.MaxIterations < 1 {
		return nil, errors.Errorf("invalid maximum number of iterations %d: must be at least 1", o.MaxIterations)
	}
	return o, nil
}
