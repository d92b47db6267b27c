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
	"io/fs"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DotEnvFile is loaded into the environment, if present, before the config
// is read. Variables already set are not overridden.
var DotEnvFile = ".env"

// Config cmd options
type Config struct {
	Name  string
	CfgFn string
}

// Init initializes config
func (c *Config) Init(name string) {
	c.Name = name

	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		QuitToStdErr(fmt.Errorf("loading %s: %w", DotEnvFile, err))
	}

	if c.CfgFn != "" {
		viper.SetConfigFile(c.CfgFn)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			QuitToStdErr(err)
		}
		viper.AddConfigPath("configs")
		if runtime.GOOS != "windows" {
			viper.AddConfigPath("/etc/" + name)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(name)
	}
	viper.SetEnvPrefix(strings.ToUpper(name))
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		c.CfgFn = viper.ConfigFileUsed()
	}
}

// LoadConfig reads the config file given by the --config flag, if any.
func (c *Config) LoadConfig(cmd *cobra.Command) (err error) {
	if c.CfgFn, err = cmd.Flags().GetString("config"); err != nil {
		return err
	}
	if c.CfgFn != "" {
		viper.SetConfigFile(c.CfgFn)
		if err = viper.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}

// ConfigFileUsed returns the path of the config file read, if any.
func (c *Config) ConfigFileUsed() string {
	return c.CfgFn
}
