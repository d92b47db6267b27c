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

package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/codenotary/docadmin/embedded/indexkey"
	"github.com/codenotary/docadmin/embedded/logger"
	"github.com/codenotary/docadmin/pkg/api/model"
	"github.com/codenotary/docadmin/pkg/client"
	"github.com/codenotary/docadmin/pkg/client/clienttest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const testToken = "t0ken"

func setupServer(t *testing.T) (*clienttest.Server, client.Client) {
	srv := clienttest.NewServer(testToken)
	t.Cleanup(srv.Close)

	cli, err := srv.Client(testToken)
	require.NoError(t, err)

	return srv, cli
}

func TestNewClient(t *testing.T) {
	_, err := client.NewClient(client.DefaultOptions())
	require.ErrorIs(t, err, client.ErrIllegalArguments)

	_, err = client.NewClient(client.DefaultOptions().
		WithEndpoint("ftp://example.org").
		WithTokenSource(client.StaticTokenSource(testToken)))
	require.ErrorIs(t, err, client.ErrIllegalArguments)

	_, err = client.NewClient(client.DefaultOptions().
		WithEndpoint("http://example.org/dev/dynamoplus/").
		WithTokenSource(client.StaticTokenSource(testToken)))
	require.NoError(t, err)
}

func TestQueryCollections(t *testing.T) {
	srv, cli := setupServer(t)

	srv.AddCollection("orders", "order_id")
	srv.AddCollection("customers", "id")

	res, err := cli.Query(context.Background(), client.ResourceCollection, nil, client.Page{})
	require.NoError(t, err)
	require.False(t, res.HasMore)
	require.Len(t, res.Data, 2)

	var c model.Collection
	require.NoError(t, json.Unmarshal(res.Data[0], &c))
	require.Equal(t, "orders", c.Name)
	require.Equal(t, "order_id", c.IDKey)

	require.Equal(t, 1, srv.Requests(clienttest.OpQuery, client.ResourceCollection))
}

func TestQueryEmpty(t *testing.T) {
	_, cli := setupServer(t)

	res, err := cli.Query(context.Background(), client.ResourceDocumentType, model.All(), client.Page{})
	require.NoError(t, err)
	require.NotNil(t, res.Data)
	require.Empty(t, res.Data)
}

func TestQueryIndexesByCollection(t *testing.T) {
	srv, cli := setupServer(t)

	srv.AddCollection("orders", "order_id")
	srv.AddCollection("customers", "id")

	for _, idx := range []struct {
		collection string
		fields     []string
	}{
		{"orders", []string{"owner", "status"}},
		{"customers", []string{"name"}},
		{"orders", []string{"created"}},
	} {
		i, err := model.NewIndex(idx.collection, indexkey.Key{Fields: idx.fields})
		require.NoError(t, err)
		srv.MustPut(client.ResourceIndex, i)
	}

	res, err := cli.Query(context.Background(), client.ResourceIndex, model.IndexesOf("orders"), client.Page{})
	require.NoError(t, err)
	require.Len(t, res.Data, 2)

	var names []string
	for _, raw := range res.Data {
		var i model.Index
		require.NoError(t, json.Unmarshal(raw, &i))
		require.Equal(t, "orders", i.Collection.Name)
		names = append(names, i.Name)
	}
	require.Equal(t, []string{"owner__status", "created"}, names)
}

func TestQueryPagination(t *testing.T) {
	srv, cli := setupServer(t)

	srv.AddCollection("books", "isbn")
	for _, isbn := range []string{"1", "2", "3", "4", "5"} {
		srv.AddDocument("books", `{"isbn":"`+isbn+`"}`)
	}

	res, err := cli.Query(context.Background(), "books", nil, client.Page{Limit: 2})
	require.NoError(t, err)
	require.Len(t, res.Data, 2)
	require.True(t, res.HasMore)
	require.Equal(t, "2", res.LastKey)

	res, err = cli.Query(context.Background(), "books", nil, client.Page{Limit: 2, StartFrom: res.LastKey})
	require.NoError(t, err)
	require.Len(t, res.Data, 2)
	require.Equal(t, "4", res.LastKey)

	res, err = cli.Query(context.Background(), "books", nil, client.Page{Limit: 2, StartFrom: res.LastKey})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	require.False(t, res.HasMore)
	require.Empty(t, res.LastKey)

	_, err = cli.Query(context.Background(), "books", nil, client.Page{Limit: -1})
	require.ErrorIs(t, err, client.ErrIllegalArguments)
}

func TestRequestHeaders(t *testing.T) {
	srv, _ := setupServer(t)

	cli, err := client.NewClient(client.DefaultOptions().
		WithEndpoint(srv.URL()).
		WithUserAgent("docadmin-test").
		WithTokenSource(client.StaticTokenSource(testToken)))
	require.NoError(t, err)

	_, err = cli.Query(context.Background(), client.ResourceCollection, nil, client.Page{})
	require.NoError(t, err)

	h := srv.LastRequestHeader()
	require.Equal(t, "Bearer "+testToken, h.Get("Authorization"))
	require.Equal(t, "application/json", h.Get("Content-Type"))
	require.Equal(t, "application/json", h.Get("Accept"))
	require.Equal(t, "docadmin-test", h.Get("User-Agent"))

	_, err = uuid.Parse(h.Get("X-Request-Id"))
	require.NoError(t, err)
}

func TestTokenIsRequestedBeforeEachRequest(t *testing.T) {
	srv, _ := setupServer(t)

	calls := 0
	ts := &clienttest.TokenSourceMock{
		TokenF: func() (*oauth2.Token, error) {
			calls++
			return &oauth2.Token{AccessToken: testToken}, nil
		},
	}

	cli, err := client.NewClient(client.DefaultOptions().WithEndpoint(srv.URL()).WithTokenSource(ts))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = cli.Query(context.Background(), client.ResourceCollection, nil, client.Page{})
		require.NoError(t, err)
	}
	require.Equal(t, 3, calls)
}

func TestAuthFailures(t *testing.T) {
	srv, _ := setupServer(t)

	cli, err := srv.Client("wrong")
	require.NoError(t, err)

	_, err = cli.Query(context.Background(), client.ResourceCollection, nil, client.Page{})
	require.ErrorIs(t, err, client.ErrNetwork)
	require.True(t, client.IsUnauthorized(err))

	var netErr *client.NetworkError
	require.True(t, errors.As(err, &netErr))
	require.Equal(t, http.StatusUnauthorized, netErr.StatusCode)
	require.Equal(t, "unauthorized", netErr.Message)

	supplierErr := errors.New("no credentials")
	cli, err = client.NewClient(client.DefaultOptions().
		WithEndpoint(srv.URL()).
		WithTokenSource(&clienttest.TokenSourceMock{
			TokenF: func() (*oauth2.Token, error) { return nil, supplierErr },
		}))
	require.NoError(t, err)

	_, err = cli.Query(context.Background(), client.ResourceCollection, nil, client.Page{})
	require.ErrorIs(t, err, client.ErrAuth)
	require.ErrorIs(t, err, supplierErr)

	cli, err = client.NewClient(client.DefaultOptions().
		WithEndpoint(srv.URL()).
		WithTokenSource(&clienttest.TokenSourceMock{
			TokenF: func() (*oauth2.Token, error) { return &oauth2.Token{}, nil },
		}))
	require.NoError(t, err)

	_, err = cli.Query(context.Background(), client.ResourceCollection, nil, client.Page{})
	require.ErrorIs(t, err, client.ErrEmptyToken)

	// credential failures never reach the network
	require.Equal(t, 1, srv.Requests(clienttest.OpQuery, client.ResourceCollection))
}

func TestServerFailure(t *testing.T) {
	srv, cli := setupServer(t)

	srv.Fail(clienttest.OpQuery, client.ResourceCollection, http.StatusInternalServerError, "boom")

	_, err := cli.Query(context.Background(), client.ResourceCollection, nil, client.Page{})
	require.ErrorIs(t, err, client.ErrNetwork)
	require.False(t, client.IsUnauthorized(err))
	require.Contains(t, err.Error(), "boom")

	srv.Recover(clienttest.OpQuery, client.ResourceCollection)

	_, err = cli.Query(context.Background(), client.ResourceCollection, nil, client.Page{})
	require.NoError(t, err)
}

func TestUnreachableEndpoint(t *testing.T) {
	srv := clienttest.NewServer(testToken)
	url := srv.URL()
	srv.Close()

	cli, err := client.NewClient(client.DefaultOptions().
		WithEndpoint(url).
		WithTimeout(time.Second).
		WithTokenSource(client.StaticTokenSource(testToken)))
	require.NoError(t, err)

	_, err = cli.Get(context.Background(), client.ResourceCollection, "orders")
	require.ErrorIs(t, err, client.ErrNetwork)
}

func TestCanceledContext(t *testing.T) {
	srv, cli := setupServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cli.Query(ctx, client.ResourceCollection, nil, client.Page{})
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, client.ErrNetwork)
	require.Zero(t, srv.Requests(clienttest.OpQuery, client.ResourceCollection))
}

func TestCancelInFlightRequest(t *testing.T) {
	srv, cli := setupServer(t)

	srv.Hold()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)

	go func() {
		_, err := cli.Query(ctx, client.ResourceCollection, nil, client.Page{})
		errCh <- err
	}()

	require.Eventually(t, func() bool { return srv.InFlight() == 1 }, 5*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		require.Fail(t, "query not canceled")
	}

	srv.Release()
}

func TestCreate(t *testing.T) {
	srv, cli := setupServer(t)

	raw, err := cli.Create(context.Background(), client.ResourceCollection, model.Collection{Name: "orders", IDKey: "order_id"})
	require.NoError(t, err)

	var c model.Collection
	require.NoError(t, json.Unmarshal(raw, &c))
	require.Equal(t, "orders", c.Name)
	require.Len(t, srv.Objects(client.ResourceCollection), 1)

	_, err = cli.Create(context.Background(), client.ResourceCollection, model.Collection{Name: "orders", IDKey: "order_id"})
	require.ErrorIs(t, err, client.ErrNetwork)
	require.Contains(t, err.Error(), "already exists")

	_, err = cli.Create(context.Background(), client.ResourceCollection, nil)
	require.ErrorIs(t, err, client.ErrIllegalArguments)
}

func TestCreateEnvelope(t *testing.T) {
	srv, cli := setupServer(t)
	srv.EnvelopeCreated = true
	srv.AddCollection("orders", "order_id")

	raw, err := cli.Create(context.Background(), "orders", json.RawMessage(`{"order_id":"o-1","total":"1.50"}`))
	require.NoError(t, err)

	doc, err := model.ParseDocument(raw)
	require.NoError(t, err)

	id, ok := doc.ID("order_id")
	require.True(t, ok)
	require.Equal(t, "o-1", id)
}

func TestCreateDocumentInUnknownCollection(t *testing.T) {
	_, cli := setupServer(t)

	_, err := cli.Create(context.Background(), "nothing", map[string]string{"id": "1"})
	require.ErrorIs(t, err, client.ErrNotFound)
}

func TestGet(t *testing.T) {
	srv, cli := setupServer(t)

	srv.AddCollection("orders", "order_id")
	srv.AddDocument("orders", `{"order_id":"a/b","owner":"alice"}`)

	raw, err := cli.Get(context.Background(), "orders", "a/b")
	require.NoError(t, err)
	require.JSONEq(t, `{"order_id":"a/b","owner":"alice"}`, string(raw))

	_, err = cli.Get(context.Background(), "orders", "missing")
	require.ErrorIs(t, err, client.ErrNotFound)

	_, err = cli.Get(context.Background(), "orders", "")
	require.ErrorIs(t, err, client.ErrIllegalArguments)
}

func TestDebugLogging(t *testing.T) {
	srv := clienttest.NewServer(testToken)
	defer srv.Close()

	l := logger.NewMemoryLoggerWithLevel(logger.LogDebug)

	cli, err := client.NewClient(client.DefaultOptions().
		WithEndpoint(srv.URL()).
		WithLogger(l).
		WithTokenSource(client.StaticTokenSource(testToken)))
	require.NoError(t, err)

	_, err = cli.Query(context.Background(), client.ResourceCollection, nil, client.Page{})
	require.NoError(t, err)

	require.True(t, l.Contains("/collection/query"))
}
