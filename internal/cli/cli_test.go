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
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"run", "validate"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	width := cmd.PersistentFlags().Lookup("width")
	require.NotNil(t, width)
	assert.Equal(t, "0", width.DefValue)
}

func TestRun(t *testing.T) {
	stdout, stderr, err := execute(t, "run", "testdata/scenarios.yaml")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "run_scenarios", []byte(stdout))
}

func TestRunStdin(t *testing.T) {
	src, err := os.ReadFile("testdata/scenarios.yaml")
	require.NoError(t, err)
	cmd := NewRootCommand()
	var stdout bytes.Buffer
	cmd.SetIn(bytes.NewReader(src))
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"run", "-"})
	require.NoError(t, cmd.Execute())
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "run_scenarios", stdout.Bytes())
}

func TestRunStdinInvalid(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetIn(strings.NewReader("version: v1.0.0\nwidth: [8]\n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"validate", "-"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse standard input")
}

func TestRunVerbose(t *testing.T) {
	_, stderr, err := execute(t, "run", "-v", "testdata/scenarios.yaml")
	require.NoError(t, err)
	assert.Contains(t, stderr, `msg="optimized load"`)
	assert.Contains(t, stderr, `msg="optimized store"`)
}

func TestRunWidthMismatch(t *testing.T) {
	_, _, err := execute(t, "run", "--width", "4", "testdata/scenarios.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 1 or 4")
}

func TestValidate(t *testing.T) {
	stdout, _, err := execute(t, "validate", "testdata/scenarios.yaml")
	require.NoError(t, err)
	assert.Equal(t, "testdata/scenarios.yaml: 5 root(s) valid for width 8\n", stdout)

	_, _, err = execute(t, "validate", "testdata/invalid.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index node")
}

func TestMissingFile(t *testing.T) {
	_, _, err := execute(t, "run", "testdata/missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read")
}
