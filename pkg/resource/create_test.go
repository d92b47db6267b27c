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
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/codenotary/docadmin/embedded/indexkey"
	"github.com/codenotary/docadmin/pkg/api/model"
	"github.com/codenotary/docadmin/pkg/client"
	"github.com/codenotary/docadmin/pkg/client/clienttest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func indexKey(fields ...string) indexkey.Key {
	return indexkey.Key{Fields: fields}
}

func await[T any](t *testing.T, ch <-chan Outcome[T]) Outcome[T] {
	select {
	case o, ok := <-ch:
		require.True(t, ok, "creator closed")
		return o
	case <-time.After(5 * time.Second):
		require.Fail(t, "create not settled")
	}
	return Outcome[T]{}
}

func TestCreatorIdle(t *testing.T) {
	_, f, _ := setup(t)

	creator := f.CreateCollection()
	defer creator.Close()

	require.Equal(t, client.ResourceCollection, creator.Resource())
	require.False(t, creator.IsLoading())
	require.Equal(t, StatusIdle, creator.Outcome().Status)

	_, ok := creator.LastCreated()
	require.False(t, ok)
}

func TestCreateCollection(t *testing.T) {
	srv, f, _ := setup(t)

	creator := f.CreateCollection()
	defer creator.Close()

	srv.Hold()

	ch := creator.Create(context.Background(), model.Collection{Name: "orders", IDKey: "order_id", OrderingKey: "created"})
	require.True(t, creator.IsLoading())
	require.Equal(t, StatusLoading, creator.Outcome().Status)

	srv.Release()

	outcome := await(t, ch)
	require.Equal(t, StatusSuccess, outcome.Status)
	require.Equal(t, "orders", outcome.Data.Name)
	require.Equal(t, "created", outcome.Data.OrderingKey)

	require.False(t, creator.IsLoading())

	created, ok := creator.LastCreated()
	require.True(t, ok)
	require.Equal(t, outcome.Data, created)
	require.Len(t, srv.Objects(client.ResourceCollection), 1)
}

func TestCreateDoesNotRefetch(t *testing.T) {
	srv, f, _ := setup(t)

	fetcher := f.Collections()
	defer fetcher.Close()

	creator := f.CreateCollection()
	defer creator.Close()

	fetcher.Use(context.Background(), model.All())
	waitSettled(t, fetcher)
	require.Empty(t, fetcher.Data())

	await(t, creator.Create(context.Background(), model.Collection{Name: "orders", IDKey: "order_id"}))
	waitSettled(t, fetcher)

	require.Equal(t, 1, srv.Requests(clienttest.OpQuery, client.ResourceCollection))
	require.Empty(t, fetcher.Data())

	// callers chain the refresh themselves
	creator.OnCreated(func(model.Collection) { fetcher.Refresh(context.Background()) })

	await(t, creator.Create(context.Background(), model.Collection{Name: "customers", IDKey: "id"}))
	waitSettled(t, fetcher)

	require.Equal(t, 2, srv.Requests(clienttest.OpQuery, client.ResourceCollection))
	require.Len(t, fetcher.Data(), 2)
}

func TestCreateFailureIsSwallowed(t *testing.T) {
	srv, f, l := setup(t)

	creator := f.CreateCollection()
	defer creator.Close()

	first := await(t, creator.Create(context.Background(), model.Collection{Name: "orders", IDKey: "order_id"}))
	require.Equal(t, StatusSuccess, first.Status)

	outcome := await(t, creator.Create(context.Background(), model.Collection{Name: "orders", IDKey: "order_id"}))
	require.Equal(t, StatusFailed, outcome.Status)
	require.ErrorIs(t, outcome.Err, client.ErrNetwork)
	require.Equal(t, "orders", outcome.Data.Name)

	srv.Fail(clienttest.OpCreate, client.ResourceCollection, http.StatusServiceUnavailable, "maintenance")

	outcome = await(t, creator.Create(context.Background(), model.Collection{Name: "customers", IDKey: "id"}))
	require.Equal(t, StatusFailed, outcome.Status)

	require.False(t, creator.IsLoading())

	last, ok := creator.LastCreated()
	require.True(t, ok)
	require.Equal(t, "orders", last.Name)

	require.ErrorIs(t, creator.Err(), client.ErrNetwork)
	require.True(t, l.Contains("create collection failed"))
}

func TestCreateMalformedResponse(t *testing.T) {
	mock := &clienttest.ClientMock{
		CreateF: func(ctx context.Context, resource string, payload interface{}) (json.RawMessage, error) {
			return json.RawMessage(`[1,2]`), nil
		},
	}

	creator := NewFactory(mock, nil).CreateDocument("orders")
	defer creator.Close()

	outcome := await(t, creator.Create(context.Background(), map[string]string{"id": "1"}))
	require.Equal(t, StatusFailed, outcome.Status)
	require.ErrorIs(t, outcome.Err, client.ErrMalformedResponse)

	_, ok := creator.LastCreated()
	require.False(t, ok)
}

func TestCreateIndexEncodesName(t *testing.T) {
	srv, f, _ := setup(t)
	srv.AddCollection("orders", "order_id")

	idx, err := model.NewIndex("orders", indexKey("owner", "status"))
	require.NoError(t, err)

	creator := f.CreateIndex()
	defer creator.Close()

	outcome := await(t, creator.Create(context.Background(), idx))
	require.Equal(t, StatusSuccess, outcome.Status)
	require.Equal(t, "owner__status", outcome.Data.Name)

	stored := srv.Objects(client.ResourceIndex)
	require.Len(t, stored, 1)

	var sent struct {
		Name       string   `json:"name"`
		Conditions []string `json:"conditions"`
		Collection struct {
			Name string `json:"name"`
		} `json:"collection"`
	}
	require.NoError(t, json.Unmarshal(stored[0], &sent))
	require.Equal(t, "owner__status", sent.Name)
	require.Equal(t, "orders", sent.Collection.Name)
	require.Equal(t, []string{"owner", "status"}, sent.Conditions)
}

func TestCreateDocument(t *testing.T) {
	srv, f, _ := setup(t)
	srv.AddCollection("orders", "order_id")
	srv.EnvelopeCreated = true

	creator := f.CreateDocument("orders")
	defer creator.Close()

	id := uuid.NewString()

	doc, err := model.ParseDocument([]byte(`{"order_id":"` + id + `","owner":"alice","status":"open"}`))
	require.NoError(t, err)

	outcome := await(t, creator.Create(context.Background(), doc))
	require.Equal(t, StatusSuccess, outcome.Status)

	got, ok := outcome.Data.ID("order_id")
	require.True(t, ok)
	require.Equal(t, id, got)
}

func TestCreatorClose(t *testing.T) {
	srv, f, _ := setup(t)

	creator := f.CreateCollection()

	srv.Hold()

	ch := creator.Create(context.Background(), model.Collection{Name: "orders", IDKey: "order_id"})
	require.Eventually(t, func() bool { return srv.InFlight() == 1 }, 5*time.Second, 10*time.Millisecond)

	creator.Close()
	waitSettled(t, creator)

	_, ok := <-ch
	require.False(t, ok)
	require.False(t, creator.IsLoading())

	_, ok = <-creator.Create(context.Background(), model.Collection{Name: "customers", IDKey: "id"})
	require.False(t, ok)
}

func TestCreateDocumentType(t *testing.T) {
	srv, f, _ := setup(t)

	creator := f.CreateDocumentType()
	defer creator.Close()

	fetcher := f.DocumentTypes()
	defer fetcher.Close()

	await(t, creator.Create(context.Background(), model.DocumentType{Name: "books", IDKey: "isbn"}))

	fetcher.Use(context.Background(), model.All())
	waitSettled(t, fetcher)

	require.Len(t, fetcher.Data(), 1)
	require.Equal(t, "isbn", fetcher.Data()[0].IDKey)
	require.Equal(t, 1, srv.Requests(clienttest.OpCreate, client.ResourceDocumentType))
}
