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

package docadmin

import (
	"github.com/codenotary/docadmin/cmd/docs/man"
	"github.com/codenotary/docadmin/cmd/version"
	"github.com/spf13/cobra"
)

// NewCmd returns the docadmin root command with every subcommand registered.
func NewCmd() (*cobra.Command, error) {
	return NewCommandLine().newCmd()
}

func (cl *commandline) newCmd() (*cobra.Command, error) {
	cmd, err := cl.rootCmd()
	if err != nil {
		return nil, err
	}

	cl.Register(cmd)

	cmd.AddCommand(version.VersionCmd())
	cmd.AddCommand(man.Generate(cmd, "docadmin", "./cmd/docs/man/docadmin"))

	return cmd, nil
}
