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

package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"
)

func TestStaticTokenSource(t *testing.T) {
	tok, err := StaticTokenSource("abc").Token()
	require.NoError(t, err)
	require.Equal(t, "abc", tok.AccessToken)
	require.Equal(t, "Bearer", tok.Type())
}

func TestFileTokenSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")

	ts, err := NewFileTokenSource(path)
	require.NoError(t, err)
	require.Equal(t, path, ts.Path())

	present, err := ts.IsTokenPresent()
	require.NoError(t, err)
	require.False(t, present)

	_, err = ts.Token()
	require.True(t, os.IsNotExist(err))

	require.ErrorIs(t, ts.SetToken("  "), ErrEmptyTokenProvided)

	require.NoError(t, ts.SetToken("s3cret\n"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	present, err = ts.IsTokenPresent()
	require.NoError(t, err)
	require.True(t, present)

	tok, err := ts.Token()
	require.NoError(t, err)
	require.Equal(t, "s3cret", tok.AccessToken)

	require.NoError(t, ts.DeleteToken())
	require.NoError(t, ts.DeleteToken())

	present, err = ts.IsTokenPresent()
	require.NoError(t, err)
	require.False(t, present)
}

func TestFileTokenSourceEmptyContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0600))

	ts, err := NewFileTokenSource(path)
	require.NoError(t, err)

	_, err = ts.Token()
	require.ErrorIs(t, err, ErrTokenContentNotPresent)

	present, err := ts.IsTokenPresent()
	require.NoError(t, err)
	require.False(t, present)
}

func TestFileTokenSourceInHomeDir(t *testing.T) {
	hd, err := homedir.Dir()
	require.NoError(t, err)

	ts, err := NewFileTokenSource("")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(hd, DefaultTokenFileName), ts.Path())

	ts, err = NewFileTokenSource("other_token")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(hd, "other_token"), ts.Path())
}
