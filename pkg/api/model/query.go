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
)

// Predicate is a condition of a query.
type Predicate interface {
	predicate()
}

// Eq matches documents whose field equals Value.
type Eq struct {
	FieldName string
	Value     interface{}
}

// Range matches documents whose field lies between From and To.
type Range struct {
	FieldName string
	From      interface{}
	To        interface{}
}

// And matches documents satisfying every condition.
type And struct {
	Conditions []Predicate
}

func (Eq) predicate()    {}
func (Range) predicate() {}
func (And) predicate()   {}

func (p Eq) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"eq": map[string]interface{}{
			"field_name": p.FieldName,
			"value":      p.Value,
		},
	})
}

func (p Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"range": map[string]interface{}{
			"field_name": p.FieldName,
			"from":       p.From,
			"to":         p.To,
		},
	})
}

func (p And) MarshalJSON() ([]byte, error) {
	conditions := p.Conditions
	if conditions == nil {
		conditions = []Predicate{}
	}
	return json.Marshal(map[string]interface{}{
		"and": conditions,
	})
}

// Query is the body of a query request. A nil Matches selects everything.
type Query struct {
	Matches Predicate `json:"matches,omitempty"`
}

// All selects every resource.
func All() Query {
	return Query{}
}

// IndexesOf selects the indexes owned by a collection.
func IndexesOf(collection string) Query {
	return Query{Matches: Eq{FieldName: "collection.name", Value: collection}}
}
