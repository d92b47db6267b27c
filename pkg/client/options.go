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

package client

import (
	"net/http"
	"time"

	"github.com/codenotary/docadmin/embedded/logger"
	"golang.org/x/oauth2"
)

// DefaultTokenFileName is the name of the file holding the bearer token
const DefaultTokenFileName = "docadmin_token"

// Options client options
type Options struct {
	Endpoint    string             // Base URL of the document store API, eg. https://host/dev/dynamoplus
	HTTPClient  *http.Client       // Client used for every request, its Timeout is the only request timeout
	TokenSource oauth2.TokenSource // Credential supplier asked for a token before each request
	Logger      logger.Logger
	UserAgent   string
}

// DefaultOptions ...
func DefaultOptions() *Options {
	return &Options{
		Endpoint:   "http://localhost:3000/dynamoplus",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Logger:     logger.NewDiscardLogger(),
		UserAgent:  "docadmin",
	}
}

// WithEndpoint sets the base URL of the API
func (o *Options) WithEndpoint(endpoint string) *Options {
	o.Endpoint = endpoint
	return o
}

// WithHTTPClient sets the http client
func (o *Options) WithHTTPClient(c *http.Client) *Options {
	o.HTTPClient = c
	return o
}

// WithTimeout sets the timeout of the http client
func (o *Options) WithTimeout(timeout time.Duration) *Options {
	c := *o.HTTPClient
	c.Timeout = timeout
	o.HTTPClient = &c
	return o
}

// WithTokenSource sets the credential supplier
func (o *Options) WithTokenSource(ts oauth2.TokenSource) *Options {
	o.TokenSource = ts
	return o
}

// WithLogger sets the logger
func (o *Options) WithLogger(l logger.Logger) *Options {
	o.Logger = l
	return o
}

// WithUserAgent sets the User-Agent header
func (o *Options) WithUserAgent(ua string) *Options {
	o.UserAgent = ua
	return o
}

// Validate ...
func (o *Options) Validate() error {
	if o == nil || o.Endpoint == "" || o.HTTPClient == nil || o.TokenSource == nil {
		return ErrIllegalArguments
	}
	return nil
}
