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

// Package resource implements the lifecycle of list-fetch and create
// requests against one remote resource of the document store.
//
// A Fetcher dispatches a query when first used and whenever its dependency
// list changes. A Creator dispatches one create request per call. Both run
// requests in the background and never report failures to the caller: a
// failed request is logged, leaves the data unchanged and clears the loading
// flag. The Outcome of the latest settlement can be inspected for auditing.
package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/codenotary/docadmin/embedded/logger"
	"github.com/codenotary/docadmin/pkg/client"
)

// Transform decodes one item of a response.
type Transform[T any] func(raw json.RawMessage) (T, error)

// JSON decodes items with encoding/json.
func JSON[T any]() Transform[T] {
	return func(raw json.RawMessage) (T, error) {
		var v T
		err := json.Unmarshal(raw, &v)
		return v, err
	}
}

// Fetcher holds the items of a remote resource matching a request body.
type Fetcher[T any] struct {
	client    client.Client
	resource  string
	transform Transform[T]
	log       logger.Logger
	metrics   *Metrics
	page      client.Page

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	mounted  bool
	closed   bool
	body     interface{}
	deps     []interface{}
	data     []T
	hasMore  bool
	lastKey  string
	loading  bool
	outcome  Outcome[[]T]
	pending  pending
	onChange func(Outcome[[]T])
}

// NewFetcher returns an idle Fetcher of resource. Nothing is requested
// until Use is called.
func NewFetcher[T any](c client.Client, resource string, transform Transform[T], opts *Options) *Fetcher[T] {
	if transform == nil {
		transform = JSON[T]()
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Fetcher[T]{
		client:    c,
		resource:  resource,
		transform: transform,
		log:       opts.logger(),
		metrics:   opts.Metrics,
		page:      opts.Page,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Resource is the name of the remote resource.
func (f *Fetcher[T]) Resource() string {
	return f.resource
}

// OnChange registers fn to be called after every settlement, outside of any
// lock. It replaces the previous callback.
func (f *Fetcher[T]) OnChange(fn func(Outcome[[]T])) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.onChange = fn
}

// Use dispatches a query with body on the first call and whenever deps
// differ from the deps of the previous call, compared element by element by
// value. It never blocks and reports whether a request was dispatched.
//
// The request is bound to ctx and to the lifetime of the Fetcher.
func (f *Fetcher[T]) Use(ctx context.Context, body interface{}, deps ...interface{}) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || (f.mounted && !depsChanged(f.deps, deps)) {
		return false
	}

	f.mounted = true
	f.body = body
	f.deps = append([]interface{}(nil), deps...)

	f.dispatch(ctx, body)

	return true
}

// Refresh dispatches the query of the latest Use again. It does nothing
// before the first Use or after Close.
func (f *Fetcher[T]) Refresh(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || !f.mounted {
		return false
	}

	f.dispatch(ctx, f.body)

	return true
}

// dispatch must be called with f.mu held.
func (f *Fetcher[T]) dispatch(ctx context.Context, body interface{}) {
	f.loading = true
	f.outcome = Outcome[[]T]{Status: StatusLoading, Data: f.data}
	f.pending.add()

	reqCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(f.ctx, cancel)

	start := f.metrics.dispatched(f.resource, opQuery)

	go func() {
		defer cancel()
		defer stop()

		items, res, err := f.fetch(reqCtx, body)

		f.metrics.settled(f.resource, opQuery, start, err)

		f.settle(items, res, err)

		f.mu.Lock()
		f.pending.done()
		f.mu.Unlock()
	}()
}

func (f *Fetcher[T]) fetch(ctx context.Context, body interface{}) ([]T, *client.QueryResult, error) {
	res, err := f.client.Query(ctx, f.resource, body, f.page)
	if err != nil {
		return nil, nil, err
	}

	items := make([]T, 0, len(res.Data))

	for i, raw := range res.Data {
		item, err := f.transform(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s item %d: %v", client.ErrMalformedResponse, f.resource, i, err)
		}
		items = append(items, item)
	}

	return items, res, nil
}

func (f *Fetcher[T]) settle(items []T, res *client.QueryResult, err error) {
	f.mu.Lock()

	f.loading = false

	if f.closed {
		f.mu.Unlock()
		return
	}

	if err != nil {
		f.outcome = Outcome[[]T]{Status: StatusFailed, Data: f.data, Err: err}

		if errors.Is(err, context.Canceled) {
			f.log.Debugf("fetch %s canceled", f.resource)
		} else {
			f.log.Warningf("fetch %s failed: %v", f.resource, err)
		}
	} else {
		f.data = items
		f.hasMore = res.HasMore
		f.lastKey = res.LastKey
		f.outcome = Outcome[[]T]{Status: StatusSuccess, Data: items}

		f.log.Debugf("fetch %s: %d items", f.resource, len(items))
	}

	outcome := f.outcome
	onChange := f.onChange

	f.mu.Unlock()

	if onChange != nil {
		onChange(outcome)
	}
}

// Data returns the items of the latest successful fetch, nil before any.
func (f *Fetcher[T]) Data() []T {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.data == nil {
		return nil
	}
	return append([]T(nil), f.data...)
}

// IsLoading is set when a request is dispatched and cleared when any
// request settles.
func (f *Fetcher[T]) IsLoading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.loading
}

// HasMore reports whether the latest successful fetch was truncated by the
// page limit. LastKey is the key to continue from.
func (f *Fetcher[T]) HasMore() (bool, string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.hasMore, f.lastKey
}

// Outcome returns the state after the latest dispatch or settlement.
func (f *Fetcher[T]) Outcome() Outcome[[]T] {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.outcome
}

// Err returns the cause of the latest settlement if it failed.
func (f *Fetcher[T]) Err() error {
	return f.Outcome().Err
}

// Wait blocks until every request dispatched so far has settled.
func (f *Fetcher[T]) Wait(ctx context.Context) error {
	f.mu.Lock()
	settled := f.pending.settled()
	f.mu.Unlock()

	select {
	case <-settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels in-flight requests and freezes the state: later Use and
// Refresh calls do nothing and pending settlements only clear the loading
// flag.
func (f *Fetcher[T]) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()

	f.cancel()
}
