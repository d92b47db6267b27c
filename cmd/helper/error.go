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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/codenotary/docadmin/pkg/client"
)

var osexit = os.Exit

var stderr io.Writer = os.Stderr

// ErrUnauthenticated is shown when the store rejects or lacks the credential.
var ErrUnauthenticated = errors.New("unauthenticated, please login")

// QuitToStdErr prints an error on stderr and closes
func QuitToStdErr(msg interface{}) {
	_, _ = fmt.Fprintln(stderr, msg)
	osexit(1)
}

// QuitWithUserError ...
func QuitWithUserError(err error) {
	if client.IsUnauthorized(err) {
		QuitToStdErr(ErrUnauthenticated)
		return
	}
	QuitToStdErr(UnwrapMessage(err))
}

func OverrideQuitter(quitter func(int)) {
	osexit = quitter
}

// UnwrapMessage returns the message sent by the store for HTTP failures.
func UnwrapMessage(msg interface{}) interface{} {
	if err, ok := msg.(error); ok {
		var netErr *client.NetworkError
		if errors.As(err, &netErr) && netErr.Message != "" {
			return netErr.Message
		}
	}
	return msg
}
