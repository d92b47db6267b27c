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

package model

import (
	"fmt"

	"github.com/codenotary/docadmin/embedded/doctree"
)

// Document is one schema-less JSON object of a collection. Field order is
// preserved as received.
type Document struct {
	doctree.Value
}

// NewDocument wraps v, which must be a JSON object.
func NewDocument(v doctree.Value) (Document, error) {
	if v.Kind() != doctree.KindMap {
		return Document{}, fmt.Errorf("%w: got %s", ErrNotADocument, v.Kind())
	}
	return Document{Value: v}, nil
}

// ParseDocument decodes a JSON object.
func ParseDocument(data []byte) (Document, error) {
	v, err := doctree.Parse(data)
	if err != nil {
		return Document{}, err
	}
	return NewDocument(v)
}

// ID returns the display form of the idKey field.
func (d Document) ID(idKey string) (string, bool) {
	v, ok := d.Get(idKey)
	if !ok || v.Kind() == doctree.KindNull {
		return "", false
	}
	return v.String(), true
}

// Tree unfolds the document under a root node named after its id.
func (d Document) Tree(idKey string) (doctree.Node, error) {
	return doctree.BuildDocument(d.Value, idKey)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := ParseDocument(data)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}
