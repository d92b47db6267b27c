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
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

type PasswordReader interface {
	Read(string) ([]byte, error)
}

type stdinPasswordReader struct{}

// Read prompts msg and reads a line from stdin without echoing it.
func (pr *stdinPasswordReader) Read(msg string) ([]byte, error) {
	fmt.Fprint(os.Stderr, msg)
	pass, err := terminal.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, err
	}
	return pass, nil
}

var DefaultPasswordReader PasswordReader = new(stdinPasswordReader)
