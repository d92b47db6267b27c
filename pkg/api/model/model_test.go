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
	"encoding/json"
	"testing"

	"github.com/codenotary/docadmin/embedded/indexkey"
	"github.com/stretchr/testify/require"
)

func TestNewIndex(t *testing.T) {
	idx, err := NewIndex("orders", indexkey.Key{Fields: []string{"owner", "status"}})
	require.NoError(t, err)
	require.Equal(t, "owner__status", idx.Name)
	require.Equal(t, "orders", idx.Collection.Name)

	bs, err := json.Marshal(idx)
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"owner__status","collection":{"name":"orders"},"conditions":["owner","status"]}`, string(bs))

	_, err = NewIndex("", indexkey.Key{Fields: []string{"a"}})
	require.ErrorIs(t, err, ErrIllegalArguments)

	_, err = NewIndex("orders", indexkey.Key{Fields: []string{"a__b"}})
	require.ErrorIs(t, err, indexkey.ErrInvalidFieldName)
}

func TestIndexNameIsSourceOfTruth(t *testing.T) {
	var idx Index
	err := json.Unmarshal([]byte(`{"name":"a__ORDER_BY__c","collection":{"name":"x"},"conditions":["stale"],"ordering_key":"old"}`), &idx)
	require.NoError(t, err)

	k := idx.Key()
	require.Equal(t, []string{"a"}, k.Fields)
	require.Equal(t, "c", k.OrderingKey)

	bs, err := json.Marshal(idx)
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"a__ORDER_BY__c","collection":{"name":"x"},"conditions":["a"],"ordering_key":"c"}`, string(bs))
}

func TestCollection(t *testing.T) {
	var c Collection
	err := json.Unmarshal([]byte(`{"name":"orders","idKey":"id","orderingKey":"created","active":true,"creationDateTime":"2024-05-01T10:00:00Z"}`), &c)
	require.NoError(t, err)
	require.Equal(t, "orders", c.Name)
	require.Equal(t, "id", c.IDKey)
	require.Equal(t, "created", c.OrderingKey)
	require.True(t, c.Active)
	require.NotNil(t, c.CreationDateTime)
	require.NoError(t, c.Validate())

	require.ErrorIs(t, Collection{}.Validate(), ErrIllegalArguments)
	require.ErrorIs(t, Collection{Name: "x"}.Validate(), ErrIllegalArguments)

	bs, err := json.Marshal(Collection{Name: "a", IDKey: "id"})
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"a","idKey":"id","active":false}`, string(bs))
}

func TestDocument(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","tags":["a","b"],"active":false,"meta":{"k":1}}`), &doc))

	id, ok := doc.ID("id")
	require.True(t, ok)
	require.Equal(t, "x", id)

	_, ok = doc.ID("missing")
	require.False(t, ok)

	tree, err := doc.Tree("id")
	require.NoError(t, err)
	require.Equal(t, "x", tree.Label)
	require.Len(t, tree.Children, 3)

	bs, err := json.Marshal(doc)
	require.NoError(t, err)
	require.Equal(t, `{"id":"x","tags":["a","b"],"active":false,"meta":{"k":1}}`, string(bs))

	require.ErrorIs(t, json.Unmarshal([]byte(`[1]`), &doc), ErrNotADocument)
}

func TestQuery(t *testing.T) {
	bs, err := json.Marshal(All())
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(bs))

	bs, err = json.Marshal(IndexesOf("orders"))
	require.NoError(t, err)
	require.JSONEq(t, `{"matches":{"eq":{"field_name":"collection.name","value":"orders"}}}`, string(bs))

	bs, err = json.Marshal(Query{Matches: And{Conditions: []Predicate{
		Eq{FieldName: "status", Value: "open"},
		Range{FieldName: "total", From: 10, To: 20},
	}}})
	require.NoError(t, err)
	require.JSONEq(t, `{"matches":{"and":[
		{"eq":{"field_name":"status","value":"open"}},
		{"range":{"field_name":"total","from":10,"to":20}}
	]}}`, string(bs))
}
