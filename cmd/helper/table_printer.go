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

package helper

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// PrintTable prints data (string arrays) in a tabular format
func PrintTable(
	w io.Writer,
	cols []string,
	nbRows int,
	getRow func(int) []string,
	caption string,
) {
	if nbRows == 0 {
		return
	}
	nbCols := len(cols)
	if nbCols == 0 {
		return
	}

	if len(caption) <= 0 {
		caption = fmt.Sprintf("%d row(s)", nbRows)
	}
	fmt.Fprint(w, caption+"\n")

	table := tablewriter.NewWriter(w)
	table.SetHeader(append([]string{"#"}, cols...))
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for i := 0; i < nbRows; i++ {
		row := getRow(i)
		line := make([]string, nbCols+1)
		line[0] = strconv.Itoa(i + 1)
		for j := 0; j < nbCols && j < len(row); j++ {
			line[j+1] = row[j]
		}
		table.Append(line)
	}

	table.Render()
}
