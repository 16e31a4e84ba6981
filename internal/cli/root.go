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

// Package cli implements the vecmem command line tool.
package cli

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/gx-org/vecmem/api/options"
	"github.com/gx-org/vecmem/build/ir"
	"github.com/gx-org/vecmem/build/ir/irtext"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	// Width overrides the vector width of the description file if not zero.
	Width int
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cmd := &cobra.Command{
		Use:   "vecmem",
		Short: "Vectorize memory accesses of expression trees",
		Long: `vecmem replaces scalar loads and stores accessing contiguous elements
of a fixed layout node by vector loads and stores.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log every rewrite on stderr")
	cmd.PersistentFlags().IntVar(&opts.Width, "width", 0, "vector width (default: width of the description file, or 8)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	return cmd
}

func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	if !o.Verbose {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (o *RootOptions) width(prog *irtext.Program) int {
	if o.Width != 0 {
		return o.Width
	}
	if prog.Width != 0 {
		return prog.Width
	}
	return options.DefaultWidth
}

// stdinPath is the path reading the description from the standard input.
const stdinPath = "-"

func read(cmd *cobra.Command, path string) (*irtext.Program, error) {
	if path != stdinPath {
		return irtext.ReadFile(path)
	}
	prog, err := irtext.Read(cmd.InOrStdin())
	if err != nil {
		return nil, errors.Wrap(err, "cannot parse standard input")
	}
	return prog, nil
}

// load reads a description file and validates all its roots.
func (o *RootOptions) load(cmd *cobra.Command, path string) (*irtext.Program, int, error) {
	prog, err := read(cmd, path)
	if err != nil {
		return nil, 0, err
	}
	width := o.width(prog)
	for i, root := range prog.Roots {
		if err := ir.Validate(prog.Tree, root, width); err != nil {
			return nil, 0, errors.Wrapf(err, "%s: invalid root %d", path, i)
		}
	}
	return prog, width, nil
}
