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
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/codenotary/docadmin/embedded/logger"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	l := logger.NewMemoryLogger()
	ts := StaticTokenSource("t0ken")

	op := DefaultOptions().
		WithEndpoint("https://example.org/dev/dynamoplus").
		WithTokenSource(ts).
		WithLogger(l).
		WithUserAgent("docadmin-test").
		WithTimeout(5 * time.Second)

	require.Equal(t, "https://example.org/dev/dynamoplus", op.Endpoint)
	require.Equal(t, ts, op.TokenSource)
	require.Equal(t, l, op.Logger)
	require.Equal(t, "docadmin-test", op.UserAgent)
	require.Equal(t, 5*time.Second, op.HTTPClient.Timeout)
	require.NoError(t, op.Validate())
}

func TestOptionsWithTimeoutDoesNotAlterSharedClient(t *testing.T) {
	shared := &http.Client{Timeout: time.Second}

	op := DefaultOptions().WithHTTPClient(shared).WithTimeout(time.Minute)

	require.Equal(t, time.Second, shared.Timeout)
	require.Equal(t, time.Minute, op.HTTPClient.Timeout)
}

func TestOptionsValidate(t *testing.T) {
	var nilOpts *Options
	require.ErrorIs(t, nilOpts.Validate(), ErrIllegalArguments)

	require.ErrorIs(t, DefaultOptions().Validate(), ErrIllegalArguments)

	op := DefaultOptions().WithTokenSource(StaticTokenSource("t")).WithEndpoint("")
	require.True(t, errors.Is(op.Validate(), ErrIllegalArguments))

	op = DefaultOptions().WithTokenSource(StaticTokenSource("t")).WithHTTPClient(nil)
	require.ErrorIs(t, op.Validate(), ErrIllegalArguments)
}
