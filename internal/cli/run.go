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

package cli

import (
	"fmt"

	"github.com/gx-org/vecmem/api/options"
	"github.com/gx-org/vecmem/build/ir"
	"github.com/gx-org/vecmem/build/ir/irstring"
	"github.com/gx-org/vecmem/optimizer"
	"github.com/spf13/cobra"
)

type runOptions struct {
	maxIterations int
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <file.yaml|->",
		Short: "Vectorize the memory accesses of a description file",
		Long: `Load a description file, validate it, invoke the vectorizer on each
root until nothing is left to rewrite, and print the resulting trees.
The description is read from the standard input if the path is "-".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, rootOpts, opts, args[0])
		},
	}
	cmd.Flags().IntVar(&opts.maxIterations, "max-iterations", options.DefaultMaxIterations, "maximum number of invocations of the pass on one root")
	return cmd
}

func runRun(cmd *cobra.Command, rootOpts *RootOptions, opts *runOptions, path string) error {
	prog, width, err := rootOpts.load(cmd, path)
	if err != nil {
		return err
	}
	vec, err := optimizer.New(
		options.WithWidth(width),
		options.WithMaxIterations(opts.maxIterations),
		options.WithLogger(rootOpts.logger(cmd.ErrOrStderr())),
	)
	if err != nil {
		return err
	}
	roots := make([]*ir.NodeID, len(prog.Roots))
	for i := range prog.Roots {
		roots[i] = &prog.Roots[i]
	}
	stats, err := vec.Run(prog.Tree, roots...)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for i, root := range prog.Roots {
		fmt.Fprintf(w, "root %d:\n%s\n", i, irstring.String(prog.Tree, root))
	}
	fmt.Fprintf(w, "width: %d, invocations: %d, loads: %d, stores: %d\n", vec.Width(), stats.Invocations, stats.Loads, stats.Stores)
	return nil
}
