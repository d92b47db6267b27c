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

package clienttest

import (
	"context"
	"encoding/json"

	"github.com/codenotary/docadmin/pkg/client"
	"golang.org/x/oauth2"
)

// ClientMock ...
type ClientMock struct {
	QueryF  func(ctx context.Context, resource string, body interface{}, page client.Page) (*client.QueryResult, error)
	CreateF func(ctx context.Context, resource string, payload interface{}) (json.RawMessage, error)
	GetF    func(ctx context.Context, resource string, id string) (json.RawMessage, error)
}

func (c *ClientMock) Query(ctx context.Context, resource string, body interface{}, page client.Page) (*client.QueryResult, error) {
	if c.QueryF != nil {
		return c.QueryF(ctx, resource, body, page)
	}
	return &client.QueryResult{Data: []json.RawMessage{}}, nil
}

func (c *ClientMock) Create(ctx context.Context, resource string, payload interface{}) (json.RawMessage, error) {
	if c.CreateF != nil {
		return c.CreateF(ctx, resource, payload)
	}
	return json.Marshal(payload)
}

func (c *ClientMock) Get(ctx context.Context, resource string, id string) (json.RawMessage, error) {
	if c.GetF != nil {
		return c.GetF(ctx, resource, id)
	}
	return nil, client.ErrNotFound
}

// TokenSourceMock ...
type TokenSourceMock struct {
	TokenF func() (*oauth2.Token, error)
}

func (ts *TokenSourceMock) Token() (*oauth2.Token, error) {
	if ts.TokenF != nil {
		return ts.TokenF()
	}
	return &oauth2.Token{AccessToken: "token", TokenType: "Bearer"}, nil
}
