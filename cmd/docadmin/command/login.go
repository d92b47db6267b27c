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
	"errors"
	"strings"

	c "github.com/codenotary/docadmin/cmd/helper"
	"github.com/codenotary/docadmin/pkg/api/model"
	"github.com/codenotary/docadmin/pkg/client"
	"github.com/spf13/cobra"
)

var errLoginWithoutTokenFile = errors.New("login saves the token file, which is ignored when --token or the OAuth2 flags are set")

func (cl *commandline) login(cmd *cobra.Command) {
	ccmd := &cobra.Command{
		Use:               "login (you will be prompted for the token)",
		Short:             "Verify a bearer token against the store and save it in the token file",
		Aliases:           []string{"l"},
		PersistentPreRunE: cl.ConfigChain(nil),
		PersistentPostRun: cl.disconnect,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cl.usesTokenFile() {
				return errLoginWithoutTokenFile
			}

			pass, err := cl.passwordReader.Read("Token:")
			if err != nil {
				return err
			}
			token := strings.TrimSpace(string(pass))
			if token == "" {
				return client.ErrEmptyTokenProvided
			}

			// the token is verified before it is saved
			opts := *cl.options
			dc, err := client.NewClient(opts.WithTokenSource(client.StaticTokenSource(token)))
			if err != nil {
				return err
			}
			if _, err := dc.Query(cl.context, client.ResourceCollection, model.All(), client.Page{Limit: 1}); err != nil {
				return err
			}

			if err := cl.tokenFile.SetToken(token); err != nil {
				return err
			}

			c.PrintfColorW(cmd.OutOrStdout(), c.Green, "logged in\n")
			return nil
		},
	}
	cmd.AddCommand(ccmd)
}

func (cl *commandline) logout(cmd *cobra.Command) {
	ccmd := &cobra.Command{
		Use:               "logout",
		Short:             "Delete the saved token",
		Aliases:           []string{"x"},
		PersistentPreRunE: cl.ConfigChain(nil),
		PersistentPostRun: cl.disconnect,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.tokenFile.DeleteToken(); err != nil {
				return err
			}
			c.PrintfColorW(cmd.OutOrStdout(), c.Green, "logged out\n")
			return nil
		},
	}
	cmd.AddCommand(ccmd)
}
