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
	"io"
	"strconv"
	"strings"

	"github.com/codenotary/docadmin/embedded/indexkey"
	"github.com/codenotary/docadmin/pkg/api/model"
	"github.com/olekukonko/tablewriter"
)

// IndexSpec is the decoded form of an index name.
type IndexSpec struct {
	Name        string   `json:"name" yaml:"name"`
	Collection  string   `json:"collection" yaml:"collection"`
	Fields      []string `json:"fields" yaml:"fields"`
	OrderingKey string   `json:"orderingKey,omitempty" yaml:"orderingKey,omitempty"`
}

// SpecOf decodes the name of i.
func SpecOf(i model.Index) IndexSpec {
	k := indexkey.Decode(i.Name)
	return IndexSpec{
		Name:        i.Name,
		Collection:  i.Collection.Name,
		Fields:      k.Fields,
		OrderingKey: k.OrderingKey,
	}
}

// RenderIndexes prints one row per index with its decoded fields and
// ordering key.
func RenderIndexes(w io.Writer, indexes []model.Index) {
	table := newTable(w, "Name", "Collection", "Fields", "Ordering key")

	for _, i := range indexes {
		spec := SpecOf(i)
		table.Append([]string{spec.Name, spec.Collection, strings.Join(spec.Fields, ", "), spec.OrderingKey})
	}

	table.Render()
}

// RenderCollections prints one row per collection.
func RenderCollections(w io.Writer, collections []model.Collection) {
	table := newTable(w, "Name", "Id key", "Ordering key", "Active")

	for _, c := range collections {
		table.Append([]string{c.Name, c.IDKey, c.OrderingKey, strconv.FormatBool(c.Active)})
	}

	table.Render()
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return table
}
