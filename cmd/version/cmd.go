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

package version

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/codenotary/docadmin/pkg/view"
	"github.com/spf13/cobra"
)

// App application name
var App = "docadmin"

// Version holds the version
var Version string

// Commit the most recent commit from which this version has been built
var Commit string

// BuiltBy built by email
var BuiltBy string

// BuiltAt unix time of the build
var BuiltAt string

// Info is the structured form of the version string
type Info struct {
	App       string `json:"app" yaml:"app"`
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit,omitempty" yaml:"commit,omitempty"`
	BuiltBy   string `json:"builtBy,omitempty" yaml:"builtBy,omitempty"`
	BuiltAt   string `json:"builtAt,omitempty" yaml:"builtAt,omitempty"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
}

// VersionCmd returns a new version command
func VersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Show the %s version", App),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			format, err := view.ParseFormat(output)
			if err != nil {
				return err
			}
			if format != view.FormatTree {
				return view.Encode(cmd.OutOrStdout(), format, Get())
			}
			fmt.Fprintln(cmd.OutOrStdout(), VersionStr())
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "output format, one of json, yaml")
	return cmd
}

// Get returns the version info of the running binary
func Get() Info {
	info := Info{
		App:       App,
		Version:   Version,
		Commit:    Commit,
		BuiltBy:   BuiltBy,
		GoVersion: runtime.Version(),
	}
	if i, err := strconv.ParseInt(BuiltAt, 10, 64); err == nil {
		info.BuiltAt = time.Unix(i, 0).UTC().Format(time.RFC1123)
	}
	return info
}

// VersionStr formats and returns the version string
func VersionStr() string {
	info := Get()
	if info.App == "" || info.Version == "" {
		return "no version info available"
	}

	const strPattern = "%-*s: %s"
	const longestLabelLength = 8

	pieces := []string{fmt.Sprintf("%s %s", info.App, info.Version)}
	for _, p := range []struct{ label, value string }{
		{"Commit", info.Commit},
		{"Built by", info.BuiltBy},
		{"Built at", info.BuiltAt},
	} {
		if p.value != "" {
			pieces = append(pieces, fmt.Sprintf(strPattern, longestLabelLength, p.label, p.value))
		}
	}
	pieces = append(pieces, fmt.Sprintf(strPattern, longestLabelLength, "Go", info.GoVersion))

	return strings.Join(pieces, "\n")
}
