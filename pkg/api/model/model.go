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

// Package model holds the resources exchanged with the document store:
// collections, their schema-less documents and the indexes defined on them.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/codenotary/docadmin/embedded/doctree"
	"github.com/codenotary/docadmin/embedded/indexkey"
)

var (
	ErrIllegalArguments = errors.New("illegal arguments")
	ErrNotADocument     = doctree.ErrNotADocument
)

// Collection is a named group of documents sharing an id field and an
// ordering field. Name never changes once the collection exists; IDKey and
// OrderingKey are trusted to match the member documents.
type Collection struct {
	Name             string     `json:"name" yaml:"name"`
	IDKey            string     `json:"idKey" yaml:"idKey"`
	OrderingKey      string     `json:"orderingKey,omitempty" yaml:"orderingKey,omitempty"`
	Active           bool       `json:"active" yaml:"active"`
	CreationDateTime *time.Time `json:"creationDateTime,omitempty" yaml:"creationDateTime,omitempty"`
}

// DocumentType is the legacy name of Collection still served by the store.
type DocumentType = Collection

func (c Collection) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: collection name is required", ErrIllegalArguments)
	}
	if c.IDKey == "" {
		return fmt.Errorf("%w: collection '%s' requires an id key", ErrIllegalArguments, c.Name)
	}
	return nil
}

// CollectionRef points an index to its owning collection.
type CollectionRef struct {
	Name string `json:"name" yaml:"name"`
}

// Index is identified by its encoded name; fields and ordering key are
// recovered by decoding it.
type Index struct {
	Name       string        `json:"name" yaml:"name"`
	Collection CollectionRef `json:"collection" yaml:"collection"`
}

// NewIndex encodes fields and the optional ordering key into the index name.
func NewIndex(collection string, key indexkey.Key) (Index, error) {
	if collection == "" {
		return Index{}, fmt.Errorf("%w: index requires a collection", ErrIllegalArguments)
	}

	name, err := key.Encode()
	if err != nil {
		return Index{}, err
	}

	return Index{Name: name, Collection: CollectionRef{Name: collection}}, nil
}

// Key decodes the index name.
func (i Index) Key() indexkey.Key {
	return indexkey.Decode(i.Name)
}

type indexWire struct {
	Name        string        `json:"name"`
	Collection  CollectionRef `json:"collection"`
	Conditions  []string      `json:"conditions,omitempty"`
	OrderingKey string        `json:"ordering_key,omitempty"`
}

// MarshalJSON also sends the decoded conditions and ordering key, which the
// store accepts alongside the name.
func (i Index) MarshalJSON() ([]byte, error) {
	k := i.Key()
	return json.Marshal(indexWire{
		Name:        i.Name,
		Collection:  i.Collection,
		Conditions:  k.Fields,
		OrderingKey: k.OrderingKey,
	})
}

// UnmarshalJSON ignores conditions and ordering key: the name is the only
// source of truth.
func (i *Index) UnmarshalJSON(data []byte) error {
	var w indexWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	i.Name = w.Name
	i.Collection = w.Collection
	return nil
}
