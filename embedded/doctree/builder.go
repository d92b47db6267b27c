/*
Copyright 2025 Codenotary Inc. All rights reserved.

SPDX-License-Identifier: BUSL-1.1
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://mariadb.com/bsl11/

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package doctree unfolds schema-less JSON documents into labeled trees for
// progressive-disclosure display.
package doctree

import (
	"fmt"
	"strconv"
)

// Category selects how a node is drawn.
type Category uint8

const (
	// CategoryContainer is the root node wrapping a whole document.
	CategoryContainer Category = iota
	// CategoryScalar is a leaf holding a displayable scalar.
	CategoryScalar
	// CategoryComposite holds the entries of a map or the elements of a sequence.
	CategoryComposite
)

func (c Category) String() string {
	switch c {
	case CategoryContainer:
		return "container"
	case CategoryScalar:
		return "scalar"
	case CategoryComposite:
		return "composite"
	}
	return fmt.Sprintf("category(%d)", c)
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

const (
	// LabelSeparator separates field key and value in leaf labels.
	LabelSeparator = " : "
	// PathSeparator joins the keys of ancestors into a node key.
	PathSeparator = "/"
)

// Node is a display-only tree node. Key is unique among its siblings.
type Node struct {
	Key      string   `json:"key" yaml:"key"`
	Label    string   `json:"label" yaml:"label"`
	Category Category `json:"category" yaml:"category"`
	Children []Node   `json:"children,omitempty" yaml:"children,omitempty"`
}

// Size returns the number of nodes in the subtree rooted at n.
func (n Node) Size() int {
	size := 1
	for _, c := range n.Children {
		size += c.Size()
	}
	return size
}

// Find returns the first descendant (or n itself) with the given label.
func (n Node) Find(label string) (Node, bool) {
	if n.Label == label {
		return n, true
	}
	for _, c := range n.Children {
		if found, ok := c.Find(label); ok {
			return found, true
		}
	}
	return Node{}, false
}

// Build unfolds the field key with value v:
//
//   - a sequence becomes a composite node labeled key whose children are the
//     elements, each built under key "<key>_<index>"
//   - a map becomes a composite node labeled key whose children are its entries
//   - a truthy scalar becomes a leaf labeled "<key> : <value>"
//   - null, false, 0 and "" produce no node at all
//
// The result holds zero or one node.
func Build(key string, v Value) []Node {
	return build("", key, v)
}

func build(parent, key string, v Value) []Node {
	nodeKey := key
	if parent != "" {
		nodeKey = parent + PathSeparator + key
	}

	switch v.Kind() {
	case KindSequence:
		n := Node{Key: nodeKey, Label: key, Category: CategoryComposite, Children: []Node{}}
		for i, it := range v.Items() {
			n.Children = append(n.Children, build(nodeKey, key+"_"+strconv.Itoa(i), it)...)
		}
		return []Node{n}
	case KindMap:
		n := Node{Key: nodeKey, Label: key, Category: CategoryComposite, Children: []Node{}}
		for _, f := range v.Fields() {
			n.Children = append(n.Children, build(nodeKey, f.Key, f.Value)...)
		}
		return []Node{n}
	}

	if !v.Truthy() {
		return nil
	}

	return []Node{{
		Key:      nodeKey,
		Label:    key + LabelSeparator + v.String(),
		Category: CategoryScalar,
	}}
}

// BuildDocument wraps the unfolded fields of doc under a root node keyed and
// labeled by the value of its idKey field. A missing id yields an empty root
// label.
func BuildDocument(doc Value, idKey string) (Node, error) {
	if doc.Kind() != KindMap {
		return Node{}, fmt.Errorf("%w: got %s", ErrNotADocument, doc.Kind())
	}

	var id string
	if idv, ok := doc.Get(idKey); ok && idv.Kind() != KindNull {
		id = idv.String()
	}

	root := Node{Key: id, Label: id, Category: CategoryContainer, Children: []Node{}}
	for _, f := range doc.Fields() {
		root.Children = append(root.Children, build(id, f.Key, f.Value)...)
	}

	return root, nil
}
