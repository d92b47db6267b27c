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
	"context"
	"os"

	"github.com/codenotary/docadmin/embedded/logger"
	"github.com/codenotary/docadmin/pkg/client"
	"github.com/codenotary/docadmin/pkg/view"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Options builds the client options from the loaded configuration. The
// credential supplier is set by the caller.
func Options() *client.Options {
	return client.DefaultOptions().
		WithEndpoint(viper.GetString("endpoint")).
		WithTimeout(viper.GetDuration("timeout")).
		WithUserAgent("docadmin")
}

// newTokenSource picks the credential supplier: a static token, the OAuth2
// client credentials flow, or the token file written by login, in this
// order.
func (cl *commandline) newTokenSource() (oauth2.TokenSource, error) {
	if token := viper.GetString("token"); token != "" {
		return client.StaticTokenSource(token), nil
	}

	if viper.GetString("oauth-client-id") != "" && viper.GetString("oauth-token-url") != "" {
		cfg := clientcredentials.Config{
			ClientID:     viper.GetString("oauth-client-id"),
			ClientSecret: viper.GetString("oauth-client-secret"),
			TokenURL:     viper.GetString("oauth-token-url"),
			Scopes:       viper.GetStringSlice("oauth-scopes"),
		}
		return cfg.TokenSource(context.Background()), nil
	}

	return cl.tokenFile, nil
}

func (cl *commandline) usesTokenFile() bool {
	return viper.GetString("token") == "" &&
		(viper.GetString("oauth-client-id") == "" || viper.GetString("oauth-token-url") == "")
}

func newLogger() (logger.Logger, error) {
	level, err := logger.ParseLogLevel(viper.GetString("log-level"))
	if err != nil {
		return nil, err
	}
	return logger.NewLogger(&logger.Options{
		Name:      "docadmin",
		Level:     level,
		Output:    os.Stderr,
		LogFormat: viper.GetString("log-format"),
		LogFile:   viper.GetString("log-file"),
	})
}

func outputFormat() (view.Format, error) {
	return view.ParseFormat(viper.GetString("output"))
}
