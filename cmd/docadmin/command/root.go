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
	"fmt"

	"github.com/codenotary/docadmin/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func (cl *commandline) rootCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "docadmin",
		Short: "CLI admin client for the schema-less document store",
		Long: `CLI admin client for the schema-less document store.

Lists and creates collections, their documents and their indexes.

Environment variables:
  DOCADMIN_ENDPOINT=http://localhost:3000/dynamoplus
  DOCADMIN_TOKEN=
  DOCADMIN_TOKEN_FILE=docadmin_token
  DOCADMIN_OUTPUT=tree
  DOCADMIN_LOG_LEVEL=error`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	if err := configureFlags(cmd); err != nil {
		return nil, err
	}

	cobra.OnInitialize(func() { cl.config.Init(cl.config.Name) })

	return cmd, nil
}

func configureFlags(cmd *cobra.Command) error {
	cmd.PersistentFlags().StringP("endpoint", "e", client.DefaultOptions().Endpoint, "base URL of the document store API")
	cmd.PersistentFlags().String("token-file", client.DefaultTokenFileName, "file holding the token saved by login, relative to the home directory")
	cmd.PersistentFlags().String("token", "", "bearer token, overrides the token file")
	cmd.PersistentFlags().String("oauth-client-id", "", "OAuth2 client id, enables the client credentials flow")
	cmd.PersistentFlags().String("oauth-client-secret", "", "OAuth2 client secret")
	cmd.PersistentFlags().String("oauth-token-url", "", "OAuth2 token endpoint")
	cmd.PersistentFlags().StringSlice("oauth-scopes", nil, "OAuth2 scopes")
	cmd.PersistentFlags().Duration("timeout", client.DefaultOptions().HTTPClient.Timeout, "timeout of every request")
	cmd.PersistentFlags().String("log-level", "error", "log level (error, warning, info, debug)")
	cmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	cmd.PersistentFlags().String("log-file", "", "append logs to this file instead of stderr")
	cmd.PersistentFlags().StringP("output", "o", "tree", "output format (tree, json, yaml)")
	cmd.PersistentFlags().Int("depth", 0, "levels of nested values shown by tree output, 0 shows everything")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().Bool("print-metrics", false, "print request metrics on stderr on exit")
	cmd.PersistentFlags().String("config", "", fmt.Sprintf("config file (default paths are configs, /etc/docadmin or $HOME. Default filename is %s.yaml)", "docadmin"))

	for _, name := range []string{
		"endpoint", "token-file", "token",
		"oauth-client-id", "oauth-client-secret", "oauth-token-url", "oauth-scopes",
		"timeout", "log-level", "log-format", "log-file",
		"output", "depth", "no-color", "print-metrics",
	} {
		if err := viper.BindPFlag(name, cmd.PersistentFlags().Lookup(name)); err != nil {
			return err
		}
	}

	viper.SetDefault("endpoint", client.DefaultOptions().Endpoint)
	viper.SetDefault("token-file", client.DefaultTokenFileName)
	viper.SetDefault("timeout", client.DefaultOptions().HTTPClient.Timeout)
	viper.SetDefault("log-level", "error")
	viper.SetDefault("log-format", "text")
	viper.SetDefault("output", "tree")

	return nil
}
