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

package view

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/codenotary/docadmin/embedded/doctree"
	"github.com/codenotary/docadmin/pkg/api/model"
	"gopkg.in/yaml.v3"
)

// Format of the command output
type Format string

const (
	FormatTree Format = "tree"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrInvalidFormat = errors.New("invalid output format")

// ParseFormat ...
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTree, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTree, nil
	}
	return "", fmt.Errorf("%w: '%s', expected one of tree, json, yaml", ErrInvalidFormat, s)
}

// Encode writes v as indented JSON or as YAML. Document values keep their
// field order in both formats.
func Encode(w io.Writer, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(yamlOf(v)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: '%s' cannot encode values", ErrInvalidFormat, format)
}

// documentValue is implemented by doctree.Value and the types embedding it.
type documentValue interface {
	Kind() doctree.Kind
	Items() []doctree.Value
	Fields() []doctree.Field
	String() string
}

func yamlOf(v interface{}) interface{} {
	switch val := v.(type) {
	case documentValue:
		return valueNode(val)
	case []doctree.Value:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, it := range val {
			seq.Content = append(seq.Content, valueNode(it))
		}
		return seq
	case []model.Document:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, doc := range val {
			seq.Content = append(seq.Content, valueNode(doc))
		}
		return seq
	}
	return v
}

func valueNode(v documentValue) *yaml.Node {
	switch v.Kind() {
	case doctree.KindSequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, it := range v.Items() {
			n.Content = append(n.Content, valueNode(it))
		}
		return n
	case doctree.KindMap:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range v.Fields() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
				valueNode(f.Value),
			)
		}
		return n
	}

	switch v.Kind() {
	case doctree.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case doctree.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v.String()}
	case doctree.KindNumber:
		tag := "!!float"
		if _, err := json.Number(v.String()).Int64(); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String()}
	}

	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.String()}
}
