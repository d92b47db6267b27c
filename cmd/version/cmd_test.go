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
	"bytes"
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func setVersion(t *testing.T, version, commit, builtBy, builtAt string) {
	v, c, b, a := Version, Commit, BuiltBy, BuiltAt
	t.Cleanup(func() { Version, Commit, BuiltBy, BuiltAt = v, c, b, a })

	Version, Commit, BuiltBy, BuiltAt = version, commit, builtBy, builtAt
}

func TestVersionStr(t *testing.T) {
	setVersion(t, "", "", "", "")
	require.Equal(t, "no version info available", VersionStr())

	setVersion(t, "1.2.3", "abcdef", "dev@example.org", "0")
	require.Equal(t, ""+
		"docadmin 1.2.3\n"+
		"Commit  : abcdef\n"+
		"Built by: dev@example.org\n"+
		"Built at: Thu, 01 Jan 1970 00:00:00 UTC\n"+
		"Go      : "+runtime.Version(),
		VersionStr())
}

func TestVersionCmd(t *testing.T) {
	setVersion(t, "1.2.3", "abcdef", "", "not a number")

	var buf bytes.Buffer
	cmd := VersionCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	require.Contains(t, buf.String(), "docadmin 1.2.3")
	require.NotContains(t, buf.String(), "Built at")

	buf.Reset()
	cmd = VersionCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"-o", "json"})
	require.NoError(t, cmd.Execute())

	var info Info
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	require.Equal(t, "1.2.3", info.Version)
	require.Equal(t, "abcdef", info.Commit)

	cmd = VersionCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"-o", "xml"})
	require.Error(t, cmd.Execute())
}
