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
	"errors"
	"fmt"

	c "github.com/codenotary/docadmin/cmd/helper"
	"github.com/codenotary/docadmin/embedded/logger"
	"github.com/codenotary/docadmin/pkg/client"
	"github.com/codenotary/docadmin/pkg/resource"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"
)

var errNotLoggedIn = errors.New("please login first")

type commandline struct {
	options        *client.Options
	config         c.Config
	client         client.Client
	factory        *resource.Factory
	logger         logger.Logger
	passwordReader c.PasswordReader
	context        context.Context
	tokenFile      *client.FileTokenSource
	tokenSource    oauth2.TokenSource
	registry       *prometheus.Registry
	metrics        *resource.Metrics
	onError        func(msg interface{})
}

func NewCommandLine() *commandline {
	cl := &commandline{}
	cl.config.Name = "docadmin"
	cl.passwordReader = c.DefaultPasswordReader
	cl.context = context.Background()
	cl.registry = prometheus.NewRegistry()
	cl.metrics = resource.NewMetrics(cl.registry)
	return cl
}

// ConfigChain loads the config file given by --config, resolves the
// options and the credential supplier, then runs post.
func (cl *commandline) ConfigChain(post func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err = cl.config.LoadConfig(cmd); err != nil {
			return err
		}

		if cl.logger, err = newLogger(); err != nil {
			return err
		}

		c.SetColor(!viper.GetBool("no-color"))

		// token file is needed by login and logout even when another
		// credential supplier is configured
		if cl.tokenFile, err = client.NewFileTokenSource(viper.GetString("token-file")); err != nil {
			return err
		}

		if cl.tokenSource, err = cl.newTokenSource(); err != nil {
			return err
		}

		cl.options = Options().
			WithTokenSource(cl.tokenSource).
			WithLogger(cl.logger)

		if post != nil {
			return post(cmd, args)
		}
		return nil
	}
}

func (cl *commandline) Register(rootCmd *cobra.Command) *cobra.Command {
	cl.login(rootCmd)
	cl.logout(rootCmd)
	cl.collection(rootCmd)
	cl.document(rootCmd)
	cl.index(rootCmd)
	return rootCmd
}

func (cl *commandline) quit(msg interface{}) {
	if cl.onError == nil {
		c.QuitToStdErr(msg)
		return
	}
	cl.onError(msg)
}

func (cl *commandline) connect(cmd *cobra.Command, args []string) (err error) {
	if cl.client, err = client.NewClient(cl.options); err != nil {
		return err
	}
	cl.factory = resource.NewFactory(cl.client, cl.resourceOptions())
	return nil
}

func (cl *commandline) resourceOptions() *resource.Options {
	return resource.DefaultOptions().
		WithLogger(cl.logger).
		WithMetrics(cl.metrics)
}

func (cl *commandline) disconnect(cmd *cobra.Command, args []string) {
	if err := cl.printMetrics(cmd.ErrOrStderr()); err != nil {
		cl.quit(err)
	}
	if cl.logger != nil {
		if err := cl.logger.Close(); err != nil {
			cl.quit(err)
		}
	}
}

// checkLoggedIn is only meaningful when the token file is the credential
// supplier.
func (cl *commandline) checkLoggedIn(cmd *cobra.Command, args []string) (err error) {
	if !cl.usesTokenFile() {
		return nil
	}
	possiblyLoggedIn, err2 := cl.tokenFile.IsTokenPresent()
	if err2 != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "error checking if token file exists:", err2)
	} else if !possiblyLoggedIn {
		err = errNotLoggedIn
	}
	return
}

func (cl *commandline) checkLoggedInAndConnect(cmd *cobra.Command, args []string) (err error) {
	if err = cl.checkLoggedIn(cmd, args); err != nil {
		return err
	}
	return cl.connect(cmd, args)
}
