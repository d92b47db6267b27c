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

package resource

import (
	"github.com/codenotary/docadmin/embedded/logger"
	"github.com/codenotary/docadmin/pkg/client"
)

// Options of the hooks
type Options struct {
	Logger  logger.Logger
	Metrics *Metrics    // Optional, nil disables metrics
	Page    client.Page // Pagination of fetch requests, the zero value fetches everything
}

// DefaultOptions ...
func DefaultOptions() *Options {
	return &Options{
		Logger: logger.NewDiscardLogger(),
	}
}

// WithLogger sets the logger swallowed failures are reported to
func (o *Options) WithLogger(l logger.Logger) *Options {
	o.Logger = l
	return o
}

// WithMetrics sets the metrics collection
func (o *Options) WithMetrics(m *Metrics) *Options {
	o.Metrics = m
	return o
}

// WithPage sets the pagination of fetch requests
func (o *Options) WithPage(p client.Page) *Options {
	o.Page = p
	return o
}

func (o *Options) logger() logger.Logger {
	if o == nil || o.Logger == nil {
		return logger.NewDiscardLogger()
	}
	return o.Logger
}
