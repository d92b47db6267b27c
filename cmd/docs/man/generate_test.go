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

package man

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spf13/cobra"
)

func TestGenerate(t *testing.T) {
	rootCmd := &cobra.Command{
		Use:   "docadmin",
		Short: "some command short description",
		Long:  "some command long description",
	}
	rootCmd.AddCommand(&cobra.Command{Use: "collection", Short: "Issue collection commands", Run: func(*cobra.Command, []string) {}})

	dir := filepath.Join(t.TempDir(), "man")

	cmd := Generate(rootCmd, rootCmd.Use, dir)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "SUCCESS")

	bs, err := os.ReadFile(filepath.Join(dir, "docadmin.1"))
	require.NoError(t, err)
	require.NotEmpty(t, bs)

	_, err = os.Stat(filepath.Join(dir, "docadmin-collection.1"))
	require.NoError(t, err)
}

func TestGenerateTooManyArgs(t *testing.T) {
	cmd := Generate(&cobra.Command{Use: "docadmin"}, "docadmin", t.TempDir())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"a", "b"})
	require.Error(t, cmd.Execute())
}
