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

package logger_test

import (
	"fmt"
	"testing"

	"github.com/codenotary/docadmin/embedded/logger"
	"github.com/stretchr/testify/require"
)

func TestMemoryLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	ml := logger.NewMemoryLogger()
	defer ml.Close()

	ml.Infof("query %s dispatched", "collection")
	ml.Errorf("query %s failed", "index")

	require.Len(t, ml.GetLogs(), 1)
	require.Regexp(t, `^\[.*\] ERR: query index failed`, ml.GetLogs()[0])

	for _, d := range []struct {
		level           logger.LogLevel
		expectedNewLogs int
	}{
		{logger.LogDebug, 4},
		{logger.LogInfo, 3},
		{logger.LogWarn, 2},
		{logger.LogError, 1},
	} {
		t.Run(fmt.Sprintf("filtering test (%+v)", d), func(t *testing.T) {
			ml2 := logger.NewMemoryLoggerWithLevel(d.level)
			ml2.Debugf("request %d", 1)
			ml2.Infof("query %s", "collection")
			ml2.Warningf("query %s failed", "collection")
			ml2.Errorf("create %s failed", "index")

			require.Len(t, ml2.GetLogs(), d.expectedNewLogs)
		})
	}
}

func TestMemoryLoggerContains(t *testing.T) {
	ml := logger.NewMemoryLoggerWithLevel(logger.LogWarn)
	ml.Warningf("fetch of %s failed", "collection")

	require.True(t, ml.Contains("fetch of collection failed"))
	require.False(t, ml.Contains("index"))
}
