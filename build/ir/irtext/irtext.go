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

// Package irtext reads a layout tree and expression trees from a YAML
// description.
//
// Example:
//
//	version: v1.0.0
//	width: 4
//	layout:
//	  kind: root
//	  children:
//	    - name: blk
//	      kind: fixed
//	      extent: 16
//	      children:
//	        - name: x
//	          kind: place
//	          dtype: float32
//	roots:
//	  - kind: load
//	    similar: {dtype: float32, axes: [4]}
//	    children:
//	      - kind: pointer
//	        children:
//	          - kind: address
//	            addresses: [x, x, x, x]
//	          - kind: index
//	            name: i
//	            offsets: [0, 1, 2, 3]
//
// The number of lanes of a node is optional. If absent, it is inferred
// from the per-lane data of address and index nodes, or from the first
// child for other nodes.
package irtext

import (
	"io"
	"os"

	"github.com/gx-org/backend/shape"
	"github.com/pkg/errors"
	"github.com/gx-org/vecmem/build/ir"
	"github.com/gx-org/vecmem/build/snode"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FormatMajor is the major version of the format supported by this package.
const FormatMajor = "v1"

type (
	// File is the content of a description file.
	File struct {
		Version string `yaml:"version"`
		Width   int    `yaml:"width,omitempty"`
		Layout  *SNode `yaml:"layout"`
		Roots   []Node `yaml:"roots"`
	}

	// SNode describes a layout node.
	SNode struct {
		Name     string  `yaml:"name,omitempty"`
		Kind     string  `yaml:"kind"`
		Extent   int     `yaml:"extent,omitempty"`
		DType    string  `yaml:"dtype,omitempty"`
		Children []SNode `yaml:"children,omitempty"`
	}

	// Similar describes a type annotation.
	Similar struct {
		DType string `yaml:"dtype"`
		Axes  []int  `yaml:"axes,omitempty"`
	}

	// Node describes an expression node.
	Node struct {
		Kind      string   `yaml:"kind"`
		Lanes     int      `yaml:"lanes,omitempty"`
		Similar   *Similar `yaml:"similar,omitempty"`
		Name      string   `yaml:"name,omitempty"`
		Value     int64    `yaml:"value,omitempty"`
		Addresses []string `yaml:"addresses,omitempty"`
		Offsets   []int    `yaml:"offsets,omitempty"`
		Children  []Node   `yaml:"children,omitempty"`
	}

	// Program is a layout tree and expression trees referencing it.
	Program struct {
		// Width is the vector width requested by the description.
		// Zero if unspecified.
		Width  int
		Layout *snode.SNode
		Tree   *ir.Tree
		Roots  []ir.NodeID
	}
)

// ReadFile reads a program from a file.
func ReadFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}
	prog, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse %s", path)
	}
	return prog, nil
}

// Read reads a program from a reader.
func Read(r io.Reader) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return Parse(data)
}

// Parse a program from its YAML description.
func Parse(data []byte) (*Program, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.WithStack(err)
	}
	return f.Build()
}

func checkVersion(version string) error {
	if version == "" {
		return errors.Errorf("missing format version: want %s.x.y", FormatMajor)
	}
	if !semver.IsValid(version) {
		return errors.Errorf("invalid format version %q", version)
	}
	if major := semver.Major(version); major != FormatMajor {
		return errors.Errorf("format version %s not supported: want %s.x.y", version, FormatMajor)
	}
	return nil
}

// Build the layout tree and the expression trees of a description.
func (f *File) Build() (*Program, error) {
	if err := checkVersion(f.Version); err != nil {
		return nil, err
	}
	if f.Layout == nil {
		return nil, errors.Errorf("missing layout")
	}
	if f.Width < 0 {
		return nil, errors.Errorf("invalid width %d", f.Width)
	}
	layout, err := buildLayout(f.Layout)
	if err != nil {
		return nil, err
	}
	prog := &Program{
		Width:  f.Width,
		Layout: layout,
		Tree:   ir.NewTree(),
	}
	b := builder{layout: layout, tree: prog.Tree}
	for i := range f.Roots {
		root, err := b.node(&f.Roots[i])
		if err != nil {
			return nil, errors.Wrapf(err, "root %d", i)
		}
		prog.Roots = append(prog.Roots, root)
	}
	return prog, nil
}

func buildLayout(desc *SNode) (*snode.SNode, error) {
	if kind := snode.KindFromString(desc.Kind); kind != snode.Root {
		return nil, errors.Errorf("layout tree has a %s root: want root", desc.Kind)
	}
	root := snode.NewRoot()
	if desc.Name != "" {
		root.Name = desc.Name
	}
	for i := range desc.Children {
		if err := addSNode(root, &desc.Children[i]); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func addSNode(parent *snode.SNode, desc *SNode) error {
	if desc.Name == "" {
		return errors.Errorf("layout node in %s has no name", parent.Path())
	}
	kind := snode.KindFromString(desc.Kind)
	switch kind {
	case snode.Invalid, snode.Root:
		return errors.Errorf("layout node %s: invalid kind %q", desc.Name, desc.Kind)
	case snode.Place:
		dt, ok := ir.DTypeFromString(desc.DType)
		if !ok {
			return errors.Errorf("place %s: unknown data type %q", desc.Name, desc.DType)
		}
		if len(desc.Children) > 0 {
			return errors.Errorf("place %s cannot have children", desc.Name)
		}
		parent.Place(desc.Name, dt)
		return nil
	}
	sn := parent.Add(kind, desc.Name, desc.Extent)
	for i := range desc.Children {
		if err := addSNode(sn, &desc.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

type builder struct {
	layout *snode.SNode
	tree   *ir.Tree
}

func (b *builder) similar(desc *Similar) (*shape.Shape, error) {
	if desc == nil {
		return nil, nil
	}
	dt, ok := ir.DTypeFromString(desc.DType)
	if !ok {
		return nil, errors.Errorf("unknown data type %q", desc.DType)
	}
	return &shape.Shape{DType: dt, AxisLengths: desc.Axes}, nil
}

func (b *builder) node(desc *Node) (ir.NodeID, error) {
	kind := ir.KindFromString(desc.Kind)
	if kind == ir.Invalid {
		return ir.Nil, errors.Errorf("invalid node kind %q", desc.Kind)
	}
	sim, err := b.similar(desc.Similar)
	if err != nil {
		return ir.Nil, err
	}
	node := &ir.Node{
		Kind:    kind,
		Similar: sim,
		Name:    desc.Name,
		Value:   desc.Value,
		Offsets: desc.Offsets,
	}
	for _, name := range desc.Addresses {
		sn := b.layout.Find(name)
		if sn == nil {
			return ir.Nil, errors.Errorf("unknown layout node %q", name)
		}
		node.Addresses = append(node.Addresses, sn)
	}
	for i := range desc.Children {
		ch, err := b.node(&desc.Children[i])
		if err != nil {
			return ir.Nil, err
		}
		node.Ch = append(node.Ch, ch)
	}
	node.Lanes = b.lanes(desc, node)
	return b.tree.Add(node), nil
}

func (b *builder) lanes(desc *Node, node *ir.Node) int {
	if desc.Lanes > 0 {
		return desc.Lanes
	}
	switch node.Kind {
	case ir.Address:
		return len(node.Addresses)
	case ir.Index:
		return len(node.Offsets)
	case ir.Block:
		return 1
	}
	if len(node.Ch) > 0 {
		return b.tree.Node(node.Ch[0]).Lanes
	}
	return 1
}
