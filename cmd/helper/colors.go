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
	"io"

	"github.com/fatih/color"
)

var (
	Red    = color.New(color.FgRed)
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Blue   = color.New(color.FgBlue)
	Purple = color.New(color.FgMagenta)
	Cyan   = color.New(color.FgCyan)
	White  = color.New(color.FgWhite)
)

// PrintfColorW writes a formatted string to w in color c. Colors are
// dropped when color.NoColor is set, which fatih/color does for non-tty
// stdout.
func PrintfColorW(w io.Writer, c *color.Color, format string, args ...interface{}) {
	_, _ = c.Fprintf(w, format, args...)
}

// SetColor enables or disables colored output.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}
