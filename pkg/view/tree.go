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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/codenotary/docadmin/embedded/doctree"
	"github.com/fatih/color"
)

const missingID = "(no id)"

var (
	rootColor      = color.New(color.FgYellow, color.Bold)
	compositeColor = color.New(color.FgBlue)
	keyColor       = color.New(color.FgCyan)
	collapsedColor = color.New(color.Faint)
)

// RenderTree draws document trees one after the other.
//
// Nodes deeper than depth levels below their root are hidden: a composite at
// the last shown level is drawn collapsed with the number of its children,
// e.g. "meta [+2]". A depth of zero or less draws everything.
func RenderTree(w io.Writer, roots []doctree.Node, depth int) error {
	bw := bufio.NewWriter(w)

	for _, root := range roots {
		label := root.Label
		if label == "" {
			label = missingID
		}

		rootColor.Fprint(bw, label)
		fmt.Fprintln(bw)

		renderChildren(bw, root.Children, "", 1, depth)
	}

	return bw.Flush()
}

func renderChildren(w io.Writer, nodes []doctree.Node, prefix string, level, depth int) {
	for i, n := range nodes {
		last := i == len(nodes)-1

		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}

		fmt.Fprint(w, prefix, branch)

		switch n.Category {
		case doctree.CategoryScalar:
			key, value, _ := strings.Cut(n.Label, doctree.LabelSeparator)
			keyColor.Fprint(w, key)
			fmt.Fprint(w, doctree.LabelSeparator, value, "\n")
			continue
		default:
			compositeColor.Fprint(w, n.Label)
		}

		if depth > 0 && level >= depth && len(n.Children) > 0 {
			collapsedColor.Fprint(w, collapsed(len(n.Children)))
			fmt.Fprintln(w)
			continue
		}
		fmt.Fprintln(w)

		renderChildren(w, n.Children, prefix+indent, level+1, depth)
	}
}

func collapsed(n int) string {
	return fmt.Sprintf(" [+%d]", n)
}
